// Package engine assembles a ready-to-embed tournament engine from
// configuration: logger, storage backend, event hub and the service on top.
package engine

import (
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"tournament-engine/config"
	"tournament-engine/db"
	"tournament-engine/logger"
	"tournament-engine/repositories"
	"tournament-engine/services"
)

const connectTimeout = 10 * time.Second

// Engine is the assembled unit a host application embeds.
type Engine struct {
	Service services.TournamentService
	Hub     *services.Hub
	Logger  zerolog.Logger

	closer io.Closer
}

// Open builds the engine per the configuration: Postgres when DATABASE_URL
// is set, a SQLite file otherwise. Migrations run on open.
func Open(cfg *config.Config) (*Engine, error) {
	log := logger.New(cfg.LogLevel)

	var (
		repo   repositories.TournamentRepository
		closer io.Closer
	)
	if cfg.DatabaseURL != "" {
		conn, err := db.Connect(cfg.DatabaseURL, connectTimeout)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres backend: %w", err)
		}
		repo = repositories.NewPostgresTournamentRepository(conn)
		closer = conn
		log.Info().Msg("using postgres storage")
	} else {
		conn, err := db.OpenSQLite(cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite backend: %w", err)
		}
		repo = repositories.NewSQLiteTournamentRepository(conn)
		closer = conn
		log.Info().Str("path", cfg.SQLitePath).Msg("using sqlite storage")
	}

	hub := services.NewHub(log)
	return &Engine{
		Service: services.NewTournamentService(repo, hub, log),
		Hub:     hub,
		Logger:  log,
		closer:  closer,
	}, nil
}

// Close releases the storage backend.
func (e *Engine) Close() error {
	return e.closer.Close()
}
