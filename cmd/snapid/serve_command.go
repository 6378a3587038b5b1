package main

import (
	"context"
	"fmt"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"snapid/internal/daemon"
	"snapid/internal/logging"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the recognition daemon",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logPath := filepath.Join(cfg.Paths.LogDir, "snapid.log")
			logger, err := buildLogger(cfg, "stdout", logPath)
			if err != nil {
				return fmt.Errorf("init logger: %w", err)
			}

			runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			engine, store, err := buildEngine(runCtx, cfg, logger)
			if err != nil {
				return err
			}

			d, err := daemon.New(cfg, engine, store, logger)
			if err != nil {
				_ = store.Close()
				return fmt.Errorf("create daemon: %w", err)
			}
			defer d.Close()

			if err := d.Start(runCtx); err != nil {
				return err
			}

			<-runCtx.Done()
			logger.Info("snapid shutting down", logging.String("reason", runCtx.Err().Error()))
			d.Stop()
			return nil
		},
	}
}
