package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/listlab/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent answer checks",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		checks, err := s.EventRepo().QueryAnswerChecks(cmd.Context(), store.QueryOpts{Limit: limit})
		if err != nil {
			return fmt.Errorf("query answer checks: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(checks) == 0 {
			fmt.Fprintln(out, "No answer checks found.")
			return nil
		}

		fmt.Fprintf(out, "%-5s  %-19s  %-26s  %3s  %6s  %-3s  %-9s  %s\n",
			"ID", "Timestamp", "Topic", "Try", "Status", "", "Source", "Answer")
		fmt.Fprintln(out, strings.Repeat("─", 100))
		for _, c := range checks {
			fmt.Fprintf(out, "%-5d  %-19s  %-26s  %3d  %6d  %-3s  %-9s  %s\n",
				c.ID,
				c.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(orDash(c.Topic), 26),
				c.Attempt,
				c.Status,
				c.Reaction,
				c.Source,
				truncate(strings.ReplaceAll(c.Answer, "\n", " "), 30),
			)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of checks to show")
}
