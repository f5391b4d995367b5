package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"deals-backend/utils"

	"gorm.io/gorm"
)

const dateOnlyLayout = "2006-01-02"

// parseDate accepts RFC3339 timestamps or plain YYYY-MM-DD dates (UTC midnight).
func parseDate(field, value string) (*time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return &t, nil
	}
	if t, err := time.Parse(dateOnlyLayout, value); err == nil {
		return &t, nil
	}
	return nil, utils.NewValidationError("%s must be an RFC3339 timestamp or YYYY-MM-DD date", field)
}

func parseOptionalDate(field string, value *string) (*time.Time, error) {
	if value == nil {
		return nil, nil
	}
	return parseDate(field, *value)
}

// uniqueIDs drops duplicates and zero ids, keeping first-seen order.
func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if id == 0 {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// mapNotFound turns gorm's missing-row error into a NotFoundError for entity.
func mapNotFound(err error, entity string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return utils.NewNotFoundError(entity)
	}
	return fmt.Errorf("failed to load %s: %w", strings.ToLower(entity), err)
}

// mapWriteError reports unique violations that slipped past the pre-check as conflicts.
func mapWriteError(err error, entity, slug string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return utils.NewConflictError("%s with slug %q already exists", entity, slug)
	}
	return fmt.Errorf("failed to save %s: %w", strings.ToLower(entity), err)
}

// ensureSlugFree returns a ConflictError when another row of model already uses slug.
func ensureSlugFree(tx *gorm.DB, model interface{}, entity, slug string, excludeID uint) error {
	query := tx.Model(model).Where("slug = ?", slug)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var count int64
	if err := query.Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check %s slug: %w", strings.ToLower(entity), err)
	}
	if count > 0 {
		return utils.NewConflictError("%s with slug %q already exists", entity, slug)
	}
	return nil
}
