package root

import (
	"context"
	"database/sql"

	"github.com/octagorm/priorities/internal/config"
	"github.com/octagorm/priorities/internal/engine"
	"github.com/octagorm/priorities/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cfg, nil, err
	}

	path := cfg.DBPath
	if path == "" {
		path, err = storage.ResolveDBPath()
		if err != nil {
			return nil, cfg, nil, err
		}
	}

	db, err := storage.Open(ctx, path)
	if err != nil {
		return nil, cfg, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cfg, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, config.Config, func(), error) {
	db, cfg, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, cfg, nil, err
	}
	return engine.NewService(db), cfg, cleanup, nil
}
