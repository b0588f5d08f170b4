package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"writecoach-backend/infrastructure/config"
	"writecoach-backend/infrastructure/di"
	pkgerrors "writecoach-backend/pkg/errors"
)

func main() {
	os.Exit(run())
}

func run() int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		return 1
	}

	container, cleanup, err := di.InitializeContainer(ctx, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize container: %v\n", err)
		return 1
	}
	defer cleanup()
	defer container.Logger.Sync() //nolint:errcheck

	err = newRootCmd(container).ExecuteContext(ctx)

	if cfg.EnableMetrics && cfg.MetricsFile != "" {
		if werr := prometheus.WriteToTextfile(cfg.MetricsFile, container.Metrics.Registry()); werr != nil {
			container.Logger.Warn("Failed to write metrics", zap.String("file", cfg.MetricsFile), zap.Error(werr))
		}
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return exitCode(err)
	}
	return 0
}

// exitCode maps an error onto the process exit status
func exitCode(err error) int {
	if appErr := pkgerrors.GetAppError(err); appErr != nil {
		return appErr.ExitCode()
	}
	return 1
}
