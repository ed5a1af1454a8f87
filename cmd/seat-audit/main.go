// Command seat-audit consumes seat assignment events from RabbitMQ and
// appends one line per event to the audit log.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/iliyamo/office-management/internal/config"
	"github.com/iliyamo/office-management/internal/queue"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger, err := zap.NewProduction()
	if cfg.IsDev() {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("seat-audit: consuming",
		zap.String("queue", cfg.Queue.Name),
		zap.String("log_path", cfg.AuditLogPath))

	c := queue.NewConsumer(cfg.Queue.URL, cfg.Queue.Name, cfg.AuditLogPath, logger)
	if err := c.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("seat-audit: stopped", zap.Error(err))
		return
	}
	logger.Info("seat-audit: stopped")
}
