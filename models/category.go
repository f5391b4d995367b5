package models

import (
	"time"
)

// Category is at most one level deep by convention; the schema does not enforce it.
type Category struct {
	ID        uint       `gorm:"primaryKey" json:"id"`
	Name      string     `gorm:"not null" json:"name"`
	Slug      string     `gorm:"uniqueIndex;not null" json:"slug"`
	ParentID  *uint      `gorm:"index" json:"parentId"`
	Parent    *Category  `gorm:"foreignKey:ParentID" json:"parent,omitempty"`
	Children  []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	SortOrder int        `gorm:"not null;default:0" json:"sortOrder"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}
