package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/listlab/internal/lesson"
)

var lessonsCmd = &cobra.Command{
	Use:   "lessons",
	Short: "Inspect the lesson catalog",
}

var lessonsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lessons",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(cmd)
		if err != nil {
			return fmt.Errorf("load lessons: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-4s  %-28s  %5s  %s\n", "ID", "Title", "Steps", "Description")
		fmt.Fprintln(out, strings.Repeat("─", 90))
		for _, l := range c.Lessons() {
			fmt.Fprintf(out, "%-4d  %-28s  %5d  %s\n", l.ID, truncate(l.Title, 28), len(l.Steps), l.Description)
		}
		return nil
	},
}

var lessonsShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show the steps of a lesson",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid lesson id %q", args[0])
		}
		c, err := loadCatalog(cmd)
		if err != nil {
			return fmt.Errorf("load lessons: %w", err)
		}
		l, err := c.Lesson(id)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d. %s\n%s\n\n", l.ID, l.Title, l.Description)
		for i, s := range l.Steps {
			fmt.Fprintf(out, "%2d  %-20s  %-13s  %s%s\n", i+1, s.ID, s.Kind, s.Title, stepDetail(s))
		}
		return nil
	},
}

var lessonsValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the catalog for dangling references and bad line indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := loadCatalog(cmd)
		if err != nil {
			return fmt.Errorf("load lessons: %w", err)
		}

		issues := lesson.Validate(c)
		out := cmd.OutOrStdout()
		for _, is := range issues {
			fmt.Fprintln(out, is.String())
		}
		if len(issues) > 0 {
			return fmt.Errorf("%d issue(s) found", len(issues))
		}
		fmt.Fprintf(out, "%d lessons OK\n", c.Len())
		return nil
	},
}

// stepDetail summarises what a step carries, e.g. " (7 frames, 2 questions)".
func stepDetail(s lesson.Step) string {
	var parts []string
	if n := len(s.ExecutionSteps); n > 0 {
		parts = append(parts, plural(n, "frame"))
	}
	if n := len(s.Chatbot); n > 0 {
		parts = append(parts, plural(n, "question"))
	}
	if len(parts) == 0 {
		return ""
	}
	return " (" + strings.Join(parts, ", ") + ")"
}

func plural(n int, noun string) string {
	if n == 1 {
		return "1 " + noun
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func init() {
	lessonsCmd.AddCommand(lessonsListCmd)
	lessonsCmd.AddCommand(lessonsShowCmd)
	lessonsCmd.AddCommand(lessonsValidateCmd)
}
