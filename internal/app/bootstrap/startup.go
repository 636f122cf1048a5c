// internal/app/bootstrap/startup.go
package bootstrap

import (
	"context"
	"errors"
	"fmt"

	"github.com/dalemusser/projecthub/internal/app/store/users"
	"github.com/dalemusser/projecthub/internal/domain/models"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

// Startup runs one-time application initialization after DB connections and
// schema setup are complete, but before the HTTP handler is built.
//
// ProjectHub uses it to seed the bootstrap admin account: when admin_email
// and admin_password are configured and no admin account exists yet, one is
// created. An existing admin (any admin, not just the configured email)
// disables seeding, so rotating the configured password never silently
// rewrites a live account.
func Startup(ctx context.Context, coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) error {
	if appCfg.AdminEmail == "" || appCfg.AdminPassword == "" {
		return nil
	}

	store := users.New(deps.MongoDatabase)

	n, err := store.CountByRole(ctx, models.RoleAdmin)
	if err != nil {
		return fmt.Errorf("count admin accounts: %w", err)
	}
	if n > 0 {
		return nil
	}

	u, err := store.Create(ctx, models.User{
		Name:  appCfg.AdminName,
		Email: appCfg.AdminEmail,
		Role:  models.RoleAdmin,
	}, appCfg.AdminPassword)
	if err != nil {
		// A concurrent instance may have seeded the same account.
		if errors.Is(err, users.ErrDuplicateEmail) {
			logger.Info("bootstrap admin already exists", zap.String("email", appCfg.AdminEmail))
			return nil
		}
		return fmt.Errorf("seed bootstrap admin: %w", err)
	}

	logger.Info("seeded bootstrap admin account",
		zap.String("email", u.Email),
		zap.String("user_id", u.ID.Hex()),
	)
	return nil
}
