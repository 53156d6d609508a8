package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/listlab/internal/app"
	"github.com/abhisek/listlab/internal/logging"
	"github.com/abhisek/listlab/internal/screen"
	"github.com/abhisek/listlab/internal/screens/catalog"
	"github.com/abhisek/listlab/internal/screens/player"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Open the terminal lesson player",
	RunE: func(cmd *cobra.Command, args []string) error {
		lessonID, _ := cmd.Flags().GetInt("lesson")
		stepID, _ := cmd.Flags().GetString("step")
		return runPlayer(cmd, lessonID, stepID)
	},
}

func init() {
	playCmd.Flags().Int("lesson", 0, "Open this lesson directly")
	playCmd.Flags().String("step", "", "Open the lesson on this step id")
	playCmd.Flags().Duration("interval", 0, "Delay between automatic playback steps (default 2s)")
}

// runPlayer opens the TUI on the lesson list, or on lessonID when it is
// non-zero. Logs are discarded while the terminal is owned by the UI.
func runPlayer(cmd *cobra.Command, lessonID int, stepID string) error {
	ctx := cmd.Context()

	cat, err := loadCatalog(cmd)
	if err != nil {
		return fmt.Errorf("load lessons: %w", err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	evaluator, err := newEvaluator(ctx, st.EventRepo(), nil, logging.NewNop())
	if err != nil {
		return err
	}

	deps := player.Deps{Evaluator: evaluator}
	if cmd.Flags().Lookup("interval") != nil {
		deps.Interval, _ = cmd.Flags().GetDuration("interval")
	}

	root := catalog.New(cat, deps)
	var pushed []screen.Screen
	if lessonID != 0 {
		l, err := cat.Lesson(lessonID)
		if err != nil {
			return err
		}
		pushed = append(pushed, player.New(l, stepID, deps))
	}
	return app.Run(root, pushed...)
}
