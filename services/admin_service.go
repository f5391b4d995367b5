package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"deals-backend/dtos"
	"deals-backend/metrics"
	"deals-backend/models"
	"deals-backend/utils"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const invalidCredentials = "Invalid credentials"

// dummyPasswordHash is compared against on unknown emails so both failure paths cost one bcrypt check.
var dummyPasswordHash = mustHash("deals-backend-dummy-password")

func mustHash(password string) []byte {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		panic(err)
	}
	return hash
}

type AdminService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewAdminService(db *gorm.DB, logger *zap.Logger) *AdminService {
	return &AdminService{db: db, logger: logger}
}

// Login checks the password before the account status, so an inactive account
// is only revealed to someone who knows its password.
func (s *AdminService) Login(ctx context.Context, email, password string) (*dtos.LoginResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, utils.NewValidationError("Email and password are required")
	}

	db := s.db.WithContext(ctx)
	var admin models.Admin
	err := db.Where("email = ?", email).First(&admin).Error
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("failed to load admin: %w", err)
		}
		_ = bcrypt.CompareHashAndPassword(dummyPasswordHash, []byte(password))
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginFailed).Inc()
		return nil, utils.NewAuthError(http.StatusUnauthorized, invalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginFailed).Inc()
		return nil, utils.NewAuthError(http.StatusUnauthorized, invalidCredentials)
	}

	if !admin.IsActive() {
		metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginInactive).Inc()
		return nil, utils.NewAuthError(http.StatusForbidden, "Account is inactive")
	}

	now := time.Now()
	if err := db.Model(&admin).Update("last_login_at", now).Error; err != nil {
		return nil, fmt.Errorf("failed to record login: %w", err)
	}

	token, err := utils.GenerateToken(admin.ID, admin.Email, string(admin.Role))
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	metrics.LoginAttemptsTotal.WithLabelValues(metrics.LoginSuccess).Inc()
	s.logger.Info("Admin logged in", zap.Uint("admin_id", admin.ID))

	return &dtos.LoginResponse{
		Token: token,
		Admin: dtos.AdminSummary{
			ID:    admin.ID,
			Name:  admin.Name,
			Email: admin.Email,
			Role:  admin.Role,
		},
	}, nil
}

func (s *AdminService) GetAdminByID(ctx context.Context, id uint) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).First(&admin, id).Error; err != nil {
		return nil, mapNotFound(err, "Admin")
	}
	return &admin, nil
}

// CreateAdmin stores a new admin with a bcrypt hash. Role defaults to EDITOR.
func (s *AdminService) CreateAdmin(ctx context.Context, name, email, password string, role models.AdminRole) (*models.Admin, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if strings.TrimSpace(name) == "" || email == "" || password == "" {
		return nil, utils.NewValidationError("Name, email and password are required")
	}
	if role == "" {
		role = models.AdminRoleEditor
	}
	if role != models.AdminRoleAdmin && role != models.AdminRoleEditor {
		return nil, utils.NewValidationError("Invalid role %q", role)
	}

	db := s.db.WithContext(ctx)
	var count int64
	if err := db.Model(&models.Admin{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return nil, fmt.Errorf("failed to check admin email: %w", err)
	}
	if count > 0 {
		return nil, utils.NewConflictError("Admin with email %q already exists", email)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	admin := models.Admin{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		Status:       models.AdminStatusActive,
	}
	if err := db.Create(&admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return &admin, nil
}
