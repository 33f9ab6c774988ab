package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/quotevault/internal/config"
	"github.com/jon4hz/quotevault/internal/database"
	"github.com/jon4hz/quotevault/internal/engine"
	"github.com/jon4hz/quotevault/internal/remote"
)

// app is the wiring shared by all commands.
type app struct {
	cfg    *config.Config
	db     *database.Client
	remote *remote.Client
	engine *engine.Engine
}

// newApp loads the config, opens the local cache and restores the persisted session.
func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	client := remote.New(&remote.Config{
		URL:          cfg.Backend.URL,
		AnonKey:      cfg.Backend.AnonKey,
		AvatarBucket: cfg.Backend.AvatarBucket,
		Timeout:      cfg.Backend.Timeout,
	}, db)

	if err := client.RestoreSession(ctx); err != nil {
		log.Warn("failed to restore session", "error", err)
	}

	eng, err := engine.New(cfg, db, client)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create engine: %w", err)
	}

	return &app{cfg: cfg, db: db, remote: client, engine: eng}, nil
}

func (a *app) Close() error {
	return errors.Join(a.engine.Close(), a.db.Close())
}

// withApp runs fn with a freshly wired app and closes it afterwards.
func withApp(ctx context.Context, fn func(a *app) error) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			log.Error("failed to close", "error", err)
		}
	}()
	return fn(a)
}
