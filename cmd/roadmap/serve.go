package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"github.com/careerpath/roadmappdf/internal/progress"
	"github.com/careerpath/roadmappdf/internal/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the roadmap HTTP API",
	RunE:  runServe,
}

var serveAddr string

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if serveAddr != "" {
		cfg.Server.Addr = serveAddr
	}
	logger := newLogger()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	store, err := progress.Open(ctx, cfg.ProgressOptions(logger))
	if err != nil {
		return err
	}
	defer store.Close()

	exporter, err := exporterFor(cfg, logger)
	if err != nil {
		return err
	}
	assembler, err := exporter.Assembler()
	if err != nil {
		return err
	}

	srv := server.New(server.Config{
		BodyLimit:    cfg.Server.BodyLimit,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}, assembler, store, logger)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Listen(cfg.Server.Addr) }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Printf("[HTTP] shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
