package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"cloudnav/internal/config"
	"cloudnav/internal/storage"

	"google.golang.org/api/option"
)

// openBackend opens the storage backend named by cfg.Backend.
func openBackend(ctx context.Context, cfg *config.Config) (storage.Manager, error) {
	switch cfg.Backend {
	case config.BackendLocal:
		return storage.NewLocal(cfg.Root)
	case config.BackendSQLite:
		if cfg.DB != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(cfg.DB), 0o755); err != nil {
				return nil, fmt.Errorf("create catalog dir: %w", err)
			}
		}
		return storage.OpenSQLite(ctx, cfg.DB)
	case config.BackendDrive:
		client, err := storage.DriveHTTPClient(ctx, cfg.Drive.Credentials, cfg.Drive.Token)
		if errors.Is(err, storage.ErrNoDriveToken) {
			return nil, fmt.Errorf("%w: run `cloudnav login` first", err)
		}
		if err != nil {
			return nil, err
		}
		return storage.NewDrive(ctx, option.WithHTTPClient(client))
	default:
		return nil, fmt.Errorf("%w %q", config.ErrUnknownBackend, cfg.Backend)
	}
}
