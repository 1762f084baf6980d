package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/patioshop/storefront/internal/app"
)

func main() {
	cfg, err := app.LoadConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	lg, err := buildLogger(cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer lg.Sync()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	// Attach the logger to the context so the transport stack can pick it up.
	ctx = zctx.Base(ctx, lg)

	if err := app.Run(ctx, lg, cfg); err != nil && ctx.Err() == nil {
		lg.Error("Storefront failed", zap.Error(err))
		os.Exit(1)
	}
}

// buildLogger keeps the terminal usable: warnings and errors only unless
// debug logging is enabled.
func buildLogger(debug bool) (*zap.Logger, error) {
	cfg := zap.NewDevelopmentConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}
