// Copyright (c) 2025 Team 4206 and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Command battleaid validates and inspects robot config files.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"

	"github.com/frc4206/battleaid/internal/command"
	"github.com/frc4206/battleaid/internal/slogfield"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)

	err := command.New().Run(ctx, os.Args[1:]...)
	cancel()
	if err != nil {
		slog.New(slog.NewTextHandler(os.Stderr, nil)).Error("battleaid failed", slogfield.Error(err))
		os.Exit(1)
	}
}
