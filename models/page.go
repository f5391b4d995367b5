package models

import (
	"time"
)

type PageStatus string

const (
	PageStatusDraft     PageStatus = "DRAFT"
	PageStatusPublished PageStatus = "PUBLISHED"
)

// Page holds static site content (about, terms, privacy). Only the seed writes it.
type Page struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	Slug        string     `gorm:"uniqueIndex;not null" json:"slug"`
	Title       string     `gorm:"not null" json:"title"`
	ContentHTML string     `gorm:"column:content_html;type:text" json:"contentHtml"`
	Status      PageStatus `gorm:"type:varchar(16);not null;default:DRAFT" json:"status"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}
