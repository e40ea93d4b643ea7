package seed

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/dheeraj5988/sustainable-cities/internal/app/models"
	"github.com/dheeraj5988/sustainable-cities/internal/app/repositories"
	"github.com/dheeraj5988/sustainable-cities/internal/config"
	"github.com/dheeraj5988/sustainable-cities/internal/db"
	"github.com/dheeraj5988/sustainable-cities/internal/pkg/auth"
)

// CreateDefaultAdmin creates the initial admin account configured via
// app.admin_email and app.admin_password. It does nothing when the account
// already exists or when the credentials are not configured.
func CreateDefaultAdmin(ctx context.Context, database *db.PostgresDB, cfg *config.Config, lgr zerolog.Logger) error {
	if cfg.App.AdminEmail == "" || cfg.App.AdminPassword == "" {
		lgr.Info().Msg("No default admin configured, skipping admin seeding")
		return nil
	}

	userRepo := repositories.NewUserRepository(database)

	exists, err := userRepo.EmailExists(ctx, cfg.App.AdminEmail)
	if err != nil {
		return fmt.Errorf("failed to check for existing admin account: %w", err)
	}
	if exists {
		return nil
	}

	lgr.Info().Str("email", cfg.App.AdminEmail).Msg("Creating default admin account...")

	hashedPassword, err := auth.HashPassword(cfg.App.AdminPassword)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Email:    cfg.App.AdminEmail,
		Password: hashedPassword,
		Name:     "Administrator",
		RoleType: models.RoleAdmin,
		IsActive: true,
	}

	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create default admin account: %w", err)
	}

	lgr.Info().Str("userId", admin.ID).Msg("Default admin account created")
	return nil
}
