package cmd

import (
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/listlab/internal/metrics"
	"github.com/abhisek/listlab/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		catalog, err := loadCatalog(cmd)
		if err != nil {
			return fmt.Errorf("load lessons: %w", err)
		}

		st, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer st.Close()

		logger := slog.Default()
		registry := metrics.NewRegistry()

		evaluator, err := newEvaluator(ctx, st.EventRepo(), registry, logger)
		if err != nil {
			return err
		}

		srv := server.New(catalog, evaluator,
			server.WithMetrics(registry),
			server.WithLogger(logger),
		)
		return srv.Run(ctx, addr)
	},
}

func init() {
	serveCmd.Flags().String("addr", server.DefaultAddr, "Listen address")
}
