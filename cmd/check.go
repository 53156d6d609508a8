package cmd

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/abhisek/listlab/internal/evaluation"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check one answer the way the API does",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		in := evaluation.Input{}
		in.Question, _ = cmd.Flags().GetString("question")
		in.Answer, _ = cmd.Flags().GetString("answer")
		in.Context, _ = cmd.Flags().GetString("context")
		if cmd.Flags().Changed("attempt") {
			attempt, _ := cmd.Flags().GetInt("attempt")
			in.Attempt = &attempt
		}
		if cmd.Flags().Changed("topic") {
			topic, _ := cmd.Flags().GetString("topic")
			in.Topic = &topic
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		evaluator, err := newEvaluator(ctx, st.EventRepo(), nil, slog.Default())
		if err != nil {
			return err
		}

		out, err := evaluator.Check(ctx, in)
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "Topic:    %s\n", orDash(string(out.Topic)))
		fmt.Fprintf(w, "Status:   %d\n", out.Status)
		fmt.Fprintf(w, "Reaction: %s\n", orDash(out.Reaction))
		fmt.Fprintf(w, "Source:   %s\n", out.Source)
		fmt.Fprintf(w, "\n%s\n", out.Feedback)

		if out.Status != http.StatusOK {
			return fmt.Errorf("answer check failed with status %d: %w", out.Status, err)
		}
		return nil
	},
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func init() {
	checkCmd.Flags().StringP("question", "q", "", "Question text (required)")
	checkCmd.Flags().StringP("answer", "a", "", "Student answer")
	checkCmd.Flags().StringP("context", "c", "", "Lesson context sent with the answer")
	checkCmd.Flags().Int("attempt", 1, "1-based attempt number")
	checkCmd.Flags().String("topic", "", "Topic override, e.g. \"doubly linked list\"")
}
