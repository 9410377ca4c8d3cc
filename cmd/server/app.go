package main

import (
	"context"
	"fmt"
	"time"

	"github.com/stwalsh4118/rentdesk/internal/auth"
	"github.com/stwalsh4118/rentdesk/internal/config"
	"github.com/stwalsh4118/rentdesk/internal/database"
	"github.com/stwalsh4118/rentdesk/internal/logger"
	"github.com/stwalsh4118/rentdesk/internal/services"
)

const slowQueryThreshold = 200 * time.Millisecond

// app is the shared state every command starts from.
type app struct {
	cfg      *config.Config
	log      *logger.Logger
	db       *database.Database
	tokens   *auth.TokenManager
	store    auth.TokenStore
	services *services.Registry
}

// newApp loads configuration, connects to the database and, when
// withStore is set, to the token store.
func newApp(ctx context.Context, withStore bool) (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.New(cfg.Server.Env)

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		log.Error("Failed to connect to database", err, map[string]interface{}{
			"driver": cfg.Database.Driver,
			"host":   cfg.Database.Host,
			"name":   cfg.Database.Name,
		})
		return nil, err
	}
	db.DB.Logger = log.Gorm(slowQueryThreshold)

	log.Info("Database connection established", map[string]interface{}{
		"driver":   cfg.Database.Driver,
		"host":     cfg.Database.Host,
		"database": cfg.Database.Name,
		"pool_min": cfg.Database.PoolMin,
		"pool_max": cfg.Database.PoolMax,
	})

	a := &app{
		cfg:    cfg,
		log:    log,
		db:     db,
		tokens: auth.NewTokenManager(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL),
	}

	if withStore {
		store, err := auth.NewTokenStore(ctx, cfg.Redis)
		if err != nil {
			db.Close()
			return nil, err
		}
		a.store = store
	} else {
		a.store = auth.NewMemoryTokenStore()
	}

	a.services = services.NewRegistry(db, a.tokens, a.store, log)
	return a, nil
}

func (a *app) Close() {
	if err := a.store.Close(); err != nil {
		a.log.Warn("Failed to close token store", map[string]interface{}{"error": err.Error()})
	}
	a.db.Close()
}
