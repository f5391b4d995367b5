package services

import (
	"context"
	"fmt"
	"strings"

	"deals-backend/dtos"
	"deals-backend/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type TagService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewTagService(db *gorm.DB, logger *zap.Logger) *TagService {
	return &TagService{db: db, logger: logger}
}

func (s *TagService) ListTags(ctx context.Context) ([]models.Tag, error) {
	tags := []models.Tag{}
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&tags).Error; err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

func (s *TagService) GetTag(ctx context.Context, id uint) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).First(&tag, id).Error; err != nil {
		return nil, mapNotFound(err, "Tag")
	}
	return &tag, nil
}

func (s *TagService) GetTagBySlug(ctx context.Context, slug string) (*models.Tag, error) {
	var tag models.Tag
	if err := s.db.WithContext(ctx).Where("slug = ?", slug).First(&tag).Error; err != nil {
		return nil, mapNotFound(err, "Tag")
	}
	return &tag, nil
}

func (s *TagService) CreateTag(ctx context.Context, req *dtos.CreateTagRequest) (*models.Tag, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	tag := models.Tag{
		Name: strings.TrimSpace(req.Name),
		Slug: strings.TrimSpace(req.Slug),
	}

	db := s.db.WithContext(ctx)
	if err := ensureSlugFree(db, &models.Tag{}, "Tag", tag.Slug, 0); err != nil {
		return nil, err
	}
	if err := db.Create(&tag).Error; err != nil {
		return nil, mapWriteError(err, "Tag", tag.Slug)
	}

	s.logger.Info("Tag created", zap.Uint("tag_id", tag.ID), zap.String("slug", tag.Slug))
	return &tag, nil
}

func (s *TagService) UpdateTag(ctx context.Context, id uint, req *dtos.UpdateTagRequest) (*models.Tag, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	db := s.db.WithContext(ctx)
	var tag models.Tag
	if err := db.First(&tag, id).Error; err != nil {
		return nil, mapNotFound(err, "Tag")
	}

	updates := map[string]interface{}{}
	if req.Name.Set {
		updates["name"] = strings.TrimSpace(req.Name.Value)
	}
	if req.Slug.Set {
		slug := strings.TrimSpace(req.Slug.Value)
		if slug != tag.Slug {
			if err := ensureSlugFree(db, &models.Tag{}, "Tag", slug, id); err != nil {
				return nil, err
			}
		}
		updates["slug"] = slug
	}

	if len(updates) > 0 {
		if err := db.Model(&tag).Updates(updates).Error; err != nil {
			return nil, mapWriteError(err, "Tag", req.Slug.Value)
		}
	}

	return s.GetTag(ctx, id)
}

// DeleteTag removes the tag together with its deal links.
func (s *TagService) DeleteTag(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var tag models.Tag
		if err := tx.First(&tag, id).Error; err != nil {
			return mapNotFound(err, "Tag")
		}
		if err := tx.Where("tag_id = ?", id).Delete(&models.DealTag{}).Error; err != nil {
			return fmt.Errorf("failed to detach tag from deals: %w", err)
		}
		if err := tx.Delete(&tag).Error; err != nil {
			return fmt.Errorf("failed to delete tag: %w", err)
		}
		s.logger.Info("Tag deleted", zap.Uint("tag_id", id))
		return nil
	})
}
