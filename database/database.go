package database

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"deals-backend/config"
	"deals-backend/models"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

const defaultDSN = "host=localhost user=postgres password=postgres dbname=deals247 port=5432 sslmode=disable"

func Connect(dsn string) (*gorm.DB, error) {
	if dsn == "" {
		dsn = defaultDSN
	}

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, err
	}

	return db, nil
}

// Migrate creates or updates every table. The join tables are registered first
// so deal_categories and deal_tags use the composite-key join models.
func Migrate(db *gorm.DB) error {
	if err := db.SetupJoinTable(&models.Deal{}, "Categories", &models.DealCategory{}); err != nil {
		return fmt.Errorf("failed to set up deal_categories: %w", err)
	}
	if err := db.SetupJoinTable(&models.Deal{}, "Tags", &models.DealTag{}); err != nil {
		return fmt.Errorf("failed to set up deal_tags: %w", err)
	}

	return db.AutoMigrate(
		&models.Admin{},
		&models.Store{},
		&models.Category{},
		&models.Tag{},
		&models.Deal{},
		&models.DealCategory{},
		&models.DealTag{},
		&models.DealClick{},
		&models.Page{},
	)
}

// AdminCreator is satisfied by services.AdminService.
type AdminCreator interface {
	CreateAdmin(ctx context.Context, name, email, password string, role models.AdminRole) (*models.Admin, error)
}

// CreateDefaultAdmin bootstraps the first ADMIN account from configuration.
// It does nothing when the account exists or no password is configured.
func CreateDefaultAdmin(ctx context.Context, db *gorm.DB, creator AdminCreator, cfg *config.Config, logger *zap.Logger) error {
	if cfg.AdminPassword == "" {
		logger.Warn("ADMIN_PASSWORD not set, skipping default admin")
		return nil
	}

	var existing models.Admin
	err := db.WithContext(ctx).Where("email = ?", strings.ToLower(strings.TrimSpace(cfg.AdminEmail))).First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to look up default admin: %w", err)
	}

	admin, err := creator.CreateAdmin(ctx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword, models.AdminRoleAdmin)
	if err != nil {
		return err
	}

	logger.Info("Default admin created", zap.String("email", admin.Email))
	return nil
}
