package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/tkoskela/floraest/cmd"
	"github.com/tkoskela/floraest/internal/conf"
	"github.com/tkoskela/floraest/internal/logging"
)

// version is set at build time via ldflags.
var version = "dev"

func main() {
	os.Exit(mainWithExitCode())
}

func mainWithExitCode() int {
	settings, err := conf.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		return 1
	}
	settings.Version = version

	level := settings.LogLevel()
	if settings.Debug {
		level = logging.LevelTrace
	}
	logging.Init(level)

	// Stop cleanly on interrupt, the pipeline honors context cancellation.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rootCmd := cmd.RootCommand(settings)
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		logging.Error("Command failed", "error", err.Error())
		return 1
	}
	return 0
}
