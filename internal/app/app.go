// Package app wires a storefront session from configuration and drives it
// through a line-oriented command loop. The loop is the stand-in for the UI
// layer: one command per user action, all state changes through the session.
package app

import (
	"context"

	"github.com/go-faster/errors"
	"go.uber.org/zap"

	"github.com/patioshop/storefront/internal/api"
	"github.com/patioshop/storefront/internal/session"
	"github.com/patioshop/storefront/internal/storage/file"
	"github.com/patioshop/storefront/pkg/httpclient"
)

// Run creates all dependencies, warms up the session, and hands control to
// the command loop. It is the single wiring point for the application.
func Run(ctx context.Context, lg *zap.Logger, cfg *Config) error {
	lg.Info("Initializing",
		zap.String("api_base_url", cfg.APIBaseURL),
		zap.String("state_dir", cfg.StateDir))

	hc := httpclient.New(cfg.HTTP.Timeout, cfg.HTTP.UserAgent)
	client := api.NewClient(cfg.APIBaseURL, hc)

	store, err := file.New(cfg.StateDir)
	if err != nil {
		return errors.Wrap(err, "open state dir")
	}

	sess := session.New(client, store, lg)
	defer sess.Close()

	if err := sess.Warmup(ctx); err != nil {
		return errors.Wrap(err, "session warmup")
	}

	loop := newLoop(sess)
	return loop.run(ctx)
}
