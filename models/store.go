package models

import (
	"time"
)

type StoreStatus string

const (
	StoreStatusActive   StoreStatus = "ACTIVE"
	StoreStatusInactive StoreStatus = "INACTIVE"
)

// Valid reports whether s is one of the known store statuses.
func (s StoreStatus) Valid() bool {
	return s == StoreStatusActive || s == StoreStatusInactive
}

type Store struct {
	ID                   uint        `gorm:"primaryKey" json:"id"`
	Name                 string      `gorm:"not null" json:"name"`
	Slug                 string      `gorm:"uniqueIndex;not null" json:"slug"`
	LogoURL              *string     `gorm:"column:logo_url" json:"logoUrl"`
	WebsiteURL           string      `gorm:"column:website_url;not null" json:"websiteUrl"`
	AffiliateProgramName *string     `json:"affiliateProgramName"`
	AffiliateBaseURL     *string     `gorm:"column:affiliate_base_url" json:"affiliateBaseUrl"`
	Status               StoreStatus `gorm:"type:varchar(16);not null;default:ACTIVE;index" json:"status"`
	CreatedAt            time.Time   `json:"createdAt"`
	UpdatedAt            time.Time   `json:"updatedAt"`
}
