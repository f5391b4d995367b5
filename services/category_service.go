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

type CategoryService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewCategoryService(db *gorm.DB, logger *zap.Logger) *CategoryService {
	return &CategoryService{db: db, logger: logger}
}

// ListCategories orders by sortOrder then name, with parent and children loaded.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := s.db.WithContext(ctx).
		Preload("Parent").
		Preload("Children", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC").Order("name ASC")
		}).
		Order("sort_order ASC").
		Order("name ASC").
		Find(&categories).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

func (s *CategoryService) GetCategory(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).Preload("Parent").Preload("Children").First(&category, id).Error; err != nil {
		return nil, mapNotFound(err, "Category")
	}
	return &category, nil
}

func (s *CategoryService) GetCategoryBySlug(ctx context.Context, slug string) (*models.Category, error) {
	var category models.Category
	if err := s.db.WithContext(ctx).Preload("Parent").Preload("Children").Where("slug = ?", slug).First(&category).Error; err != nil {
		return nil, mapNotFound(err, "Category")
	}
	return &category, nil
}

func (s *CategoryService) CreateCategory(ctx context.Context, req *dtos.CreateCategoryRequest) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	category := models.Category{
		Name:      strings.TrimSpace(req.Name),
		Slug:      strings.TrimSpace(req.Slug),
		ParentID:  req.ParentID,
		SortOrder: req.SortOrder,
	}

	db := s.db.WithContext(ctx)
	if category.ParentID != nil {
		if err := ensureParentExists(db, *category.ParentID); err != nil {
			return nil, err
		}
	}
	if err := ensureSlugFree(db, &models.Category{}, "Category", category.Slug, 0); err != nil {
		return nil, err
	}
	if err := db.Create(&category).Error; err != nil {
		return nil, mapWriteError(err, "Category", category.Slug)
	}

	s.logger.Info("Category created", zap.Uint("category_id", category.ID), zap.String("slug", category.Slug))
	return s.GetCategory(ctx, category.ID)
}

// UpdateCategory can set or clear the parent. The new parent may not be the
// category itself or one of its descendants.
func (s *CategoryService) UpdateCategory(ctx context.Context, id uint, req *dtos.UpdateCategoryRequest) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var category models.Category
	if err := db.First(&category, id).Error; err != nil {
		return nil, mapNotFound(err, "Category")
	}

	updates := map[string]interface{}{}
	if req.Name.Set {
		updates["name"] = strings.TrimSpace(req.Name.Value)
	}
	if req.Slug.Set {
		slug := strings.TrimSpace(req.Slug.Value)
		if slug != category.Slug {
			if err := ensureSlugFree(db, &models.Category{}, "Category", slug, id); err != nil {
				return nil, err
			}
		}
		updates["slug"] = slug
	}
	if req.ParentID.Set {
		if parentID := req.ParentID.Ptr(); parentID != nil {
			if *parentID == id {
				return nil, utils.NewValidationError("A category cannot be its own parent")
			}
			if err := ensureParentExists(db, *parentID); err != nil {
				return nil, err
			}
			if err := ensureNotDescendant(db, id, *parentID); err != nil {
				return nil, err
			}
		}
		updates["parent_id"] = req.ParentID.Ptr()
	}
	if req.SortOrder.Set {
		updates["sort_order"] = req.SortOrder.Value
	}

	if len(updates) > 0 {
		if err := db.Model(&category).Updates(updates).Error; err != nil {
			return nil, mapWriteError(err, "Category", req.Slug.Value)
		}
	}

	return s.GetCategory(ctx, id)
}

// DeleteCategory refuses while children exist and drops the category's deal links.
func (s *CategoryService) DeleteCategory(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var category models.Category
		if err := tx.First(&category, id).Error; err != nil {
			return mapNotFound(err, "Category")
		}

		var childCount int64
		if err := tx.Model(&models.Category{}).Where("parent_id = ?", id).Count(&childCount).Error; err != nil {
			return fmt.Errorf("failed to count child categories: %w", err)
		}
		if childCount > 0 {
			return utils.NewConflictError("Cannot delete category with %d subcategories", childCount)
		}

		if err := tx.Where("category_id = ?", id).Delete(&models.DealCategory{}).Error; err != nil {
			return fmt.Errorf("failed to detach category from deals: %w", err)
		}
		if err := tx.Delete(&category).Error; err != nil {
			return fmt.Errorf("failed to delete category: %w", err)
		}
		s.logger.Info("Category deleted", zap.Uint("category_id", id))
		return nil
	})
}

// ensureNotDescendant walks up from parentID and fails if the chain reaches id.
func ensureNotDescendant(tx *gorm.DB, id, parentID uint) error {
	visited := map[uint]bool{}
	for current := &parentID; current != nil; {
		if *current == id {
			return utils.NewValidationError("A category cannot be moved under its own descendant")
		}
		if visited[*current] {
			return nil
		}
		visited[*current] = true

		var ancestor models.Category
		if err := tx.Select("id", "parent_id").First(&ancestor, *current).Error; err != nil {
			return fmt.Errorf("failed to walk category ancestors: %w", err)
		}
		current = ancestor.ParentID
	}
	return nil
}

func ensureParentExists(tx *gorm.DB, parentID uint) error {
	var count int64
	if err := tx.Model(&models.Category{}).Where("id = ?", parentID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check parent category: %w", err)
	}
	if count == 0 {
		return utils.NewValidationError("Parent category %d does not exist", parentID)
	}
	return nil
}
