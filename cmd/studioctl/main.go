// Copyright (c) 2026 DreamWeaver Studio. All rights reserved.

// Command studioctl runs catalog maintenance tasks: migrations, seeding and
// default inspection.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload"

	"github.com/nicolomanni/dreamweaverstudio-sub000/internal/cli"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})).
		With(slog.String("app", "studioctl"))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.NewRootCommand(logger).ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "studioctl:", err)
		stop()
		os.Exit(1)
	}
}
