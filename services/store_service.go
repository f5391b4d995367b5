package services

import (
	"context"
	"fmt"
	"strings"

	"deals-backend/dtos"
	"deals-backend/models"
	"deals-backend/utils"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type StoreService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewStoreService(db *gorm.DB, logger *zap.Logger) *StoreService {
	return &StoreService{db: db, logger: logger}
}

// ListStores orders by name; a non-empty status filters the result.
func (s *StoreService) ListStores(ctx context.Context, status string) ([]models.Store, error) {
	query := s.db.WithContext(ctx).Order("name ASC")
	if status != "" {
		if !models.StoreStatus(status).Valid() {
			return nil, utils.NewValidationError("Invalid status %q", status)
		}
		query = query.Where("status = ?", status)
	}

	stores := []models.Store{}
	if err := query.Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

func (s *StoreService) GetStore(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	if err := s.db.WithContext(ctx).First(&store, id).Error; err != nil {
		return nil, mapNotFound(err, "Store")
	}
	return &store, nil
}

func (s *StoreService) GetStoreBySlug(ctx context.Context, slug string) (*models.Store, error) {
	var store models.Store
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&store).Error; err != nil {
		return nil, mapNotFound(err, "Store")
	}
	return &store, nil
}

func (s *StoreService) CreateStore(ctx context.Context, req *dtos.CreateStoreRequest) (*models.Store, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	status := req.Status
	if status == "" {
		status = models.StoreStatusActive
	}
	store := models.Store{
		Name:                 strings.TrimSpace(req.Name),
		Slug:                 strings.TrimSpace(req.Slug),
		LogoURL:              req.LogoURL,
		WebsiteURL:           strings.TrimSpace(req.WebsiteURL),
		AffiliateProgramName: req.AffiliateProgramName,
		AffiliateBaseURL:     req.AffiliateBaseURL,
		Status:               status,
	}

	db := s.db.WithContext(ctx)
	if err := ensureSlugFree(db, &models.Store{}, "Store", store.Slug, 0); err != nil {
		return nil, err
	}
	if err := db.Create(&store).Error; err != nil {
		return nil, mapWriteError(err, "Store", store.Slug)
	}

	s.logger.Info("Store created", zap.Uint("store_id", store.ID), zap.String("slug", store.Slug))
	return &store, nil
}

func (s *StoreService) UpdateStore(ctx context.Context, id uint, req *dtos.UpdateStoreRequest) (*models.Store, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var store models.Store
	if err := db.First(&store, id).Error; err != nil {
		return nil, mapNotFound(err, "Store")
	}

	updates := map[string]interface{}{}
	if req.Name.Set {
		updates["name"] = strings.TrimSpace(req.Name.Value)
	}
	if req.Slug.Set {
		slug := strings.TrimSpace(req.Slug.Value)
		if slug != store.Slug {
			if err := ensureSlugFree(db, &models.Store{}, "Store", slug, id); err != nil {
				return nil, err
			}
		}
		updates["slug"] = slug
	}
	if req.LogoURL.Set {
		updates["logo_url"] = req.LogoURL.Ptr()
	}
	if req.WebsiteURL.Set {
		updates["website_url"] = strings.TrimSpace(req.WebsiteURL.Value)
	}
	if req.AffiliateProgramName.Set {
		updates["affiliate_program_name"] = req.AffiliateProgramName.Ptr()
	}
	if req.AffiliateBaseURL.Set {
		updates["affiliate_base_url"] = req.AffiliateBaseURL.Ptr()
	}
	if req.Status.Set {
		updates["status"] = req.Status.Value
	}

	if len(updates) > 0 {
		if err := db.Model(&store).Updates(updates).Error; err != nil {
			return nil, mapWriteError(err, "Store", req.Slug.Value)
		}
	}

	return s.GetStore(ctx, id)
}

// DeleteStore refuses to remove a store that still has deals, archived ones included.
func (s *StoreService) DeleteStore(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var store models.Store
		if err := tx.First(&store, id).Error; err != nil {
			return mapNotFound(err, "Store")
		}

		var dealCount int64
		if err := tx.Model(&models.Deal{}).Where("store_id = ?", id).Count(&dealCount).Error; err != nil {
			return fmt.Errorf("failed to count store deals: %w", err)
		}
		if dealCount > 0 {
			return utils.NewConflictError("Cannot delete store with %d existing deals", dealCount)
		}

		if err := tx.Delete(&store).Error; err != nil {
			return fmt.Errorf("failed to delete store: %w", err)
		}
		s.logger.Info("Store deleted", zap.Uint("store_id", id))
		return nil
	})
}
