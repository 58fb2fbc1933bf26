// Command foodbiz runs the frozen-treats vending challenge: an HTTP
// game server and a headless strategy simulator.
package main

import (
	"log/slog"
	"os"

	"github.com/maciej-vess/business-food-truck/internal/cli"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := cli.NewRootCommand().Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
