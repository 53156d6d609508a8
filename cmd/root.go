package cmd

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/abhisek/listlab/internal/lesson"
	"github.com/abhisek/listlab/internal/logging"
	"github.com/abhisek/listlab/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "listlab",
	Short: "Interactive linked list lessons",
	Long: "ListLab plays step-by-step linked list algorithm visualizations and " +
		"checks free-text answers with a generative text API.",
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetString("log-level")
		level, err := logging.ParseLevel(raw)
		if err != nil {
			return err
		}
		slog.SetDefault(logging.New(level))
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runPlayer(cmd, 0, "")
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides LISTLAB_DB env var)")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().String("lessons", "", "Lesson catalog YAML file (defaults to the built-in lessons)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(lessonsCmd)
	rootCmd.AddCommand(checkCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then LISTLAB_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore opens the audit database selected by --db.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}

// loadCatalog returns the --lessons catalog, or the built-in one.
func loadCatalog(cmd *cobra.Command) (*lesson.Catalog, error) {
	if p, _ := cmd.Flags().GetString("lessons"); p != "" {
		return lesson.LoadCatalogFile(p)
	}
	return lesson.Default()
}
