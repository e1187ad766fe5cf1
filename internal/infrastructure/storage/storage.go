package storage

import (
	"context"
	"fmt"

	"licensekeeper/internal/app/server/config"
	"licensekeeper/internal/domain/mirror"
	"licensekeeper/internal/infrastructure/storage/postgres"
	"licensekeeper/internal/infrastructure/storage/sqlite"

	"golang.org/x/exp/slog"
)

// Storage is the mirror's database: a repository plus the handle to close it.
type Storage interface {
	Repository() mirror.Repository
	Close() error
}

type postgresStorage struct {
	db   *postgres.Storage
	repo *postgres.MirrorRepository
}

func (s *postgresStorage) Repository() mirror.Repository { return s.repo }
func (s *postgresStorage) Close() error                  { return s.db.Close() }

type sqliteStorage struct {
	db   *sqlite.Storage
	repo *sqlite.MirrorRepository
}

func (s *sqliteStorage) Repository() mirror.Repository { return s.repo }
func (s *sqliteStorage) Close() error                  { return s.db.Close() }

// Open migrates and connects the database selected by cfg.DB.Driver.
func Open(ctx context.Context, cfg *config.Config, log *slog.Logger) (Storage, error) {
	switch cfg.DB.Driver {
	case config.DriverPostgres:
		db, err := postgres.New(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return &postgresStorage{db: db, repo: postgres.NewMirrorRepository(db.Pool(), log)}, nil
	case config.DriverSQLite:
		db, err := sqlite.New(cfg)
		if err != nil {
			return nil, err
		}
		return &sqliteStorage{db: db, repo: sqlite.NewMirrorRepository(db.DB(), log)}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.DB.Driver)
	}
}
