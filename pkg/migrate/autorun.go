package migrate

import (
	"context"
	"fmt"

	"github.com/marisolvega/vendorhub-backend/pkg/config"
	"github.com/marisolvega/vendorhub-backend/pkg/db"
	"github.com/marisolvega/vendorhub-backend/pkg/logger"
)

// MaybeRunDev applies pending migrations at boot when the auto-migrate
// flag is set. Intended for dev environments only; production runs
// cmd/migrate explicitly.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if cfg == nil || !cfg.FeatureFlags.AutoMigrate {
		return nil
	}
	if cfg.FeatureFlags.UseSQLite {
		if logg != nil {
			logg.Warn(ctx, "auto-migrate skipped: goose migrations target postgres")
		}
		return nil
	}
	sqlDB, err := client.SQLDB()
	if err != nil {
		return fmt.Errorf("getting sql handle for migrations: %w", err)
	}
	if logg != nil {
		logg.Info(ctx, "running dev auto-migrations")
	}
	return Run(ctx, sqlDB, DefaultDir, "up")
}
