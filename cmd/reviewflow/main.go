package main

import (
	"log/slog"
	"os"

	"github.com/randalmurphal/reviewflow/internal/cli"
)

func main() {
	level := slog.LevelWarn
	if os.Getenv("REVIEWFLOW_DEBUG") == "1" {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	os.Exit(cli.Execute())
}
