package cmd

import (
	"context"
	"fmt"

	"github.com/tadeyemo32/career26-vanguard/internal/config"
	"github.com/tadeyemo32/career26-vanguard/internal/core/store"
)

// openStore opens and migrates the configured store.
func openStore(ctx context.Context, cfg *config.Config) (*store.Store, error) {
	if cfg == nil {
		return nil, fmt.Errorf("no configuration loaded")
	}

	db, err := store.Open(ctx, cfg.Store)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	if err := db.Migrate(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate store: %w", err)
	}

	return db, nil
}
