package models

import (
	"time"

	"github.com/shopspring/decimal"
)

func init() {
	// Prices travel as JSON numbers, not strings.
	decimal.MarshalJSONWithoutQuotes = true
}

type DealStatus string

const (
	DealStatusDraft     DealStatus = "DRAFT"
	DealStatusPublished DealStatus = "PUBLISHED"
	DealStatusArchived  DealStatus = "ARCHIVED"
)

// Valid reports whether s is one of the known deal statuses.
func (s DealStatus) Valid() bool {
	switch s {
	case DealStatusDraft, DealStatusPublished, DealStatusArchived:
		return true
	}
	return false
}

const DefaultCurrency = "INR"

type Deal struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	Title            string          `gorm:"not null" json:"title"`
	Slug             string          `gorm:"uniqueIndex;not null" json:"slug"`
	StoreID          uint            `gorm:"not null;index" json:"storeId"`
	Store            *Store          `gorm:"foreignKey:StoreID;constraint:OnDelete:RESTRICT" json:"store,omitempty"`
	ShortDescription string          `gorm:"not null" json:"shortDescription"`
	LongDescription  *string         `gorm:"type:text" json:"longDescription"`
	ProductImageURL  *string         `gorm:"column:product_image_url" json:"productImageUrl"`
	ProductURL       *string         `gorm:"column:product_url" json:"productUrl"`
	AffiliateURL     string          `gorm:"column:affiliate_url;not null" json:"affiliateUrl"`
	CouponCode       *string         `json:"couponCode"`
	OriginalPrice    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"originalPrice"`
	DealPrice        decimal.Decimal `gorm:"type:decimal(12,2);not null;index" json:"dealPrice"`
	Currency         string          `gorm:"type:varchar(3);not null;default:INR" json:"currency"`
	DiscountPercent  decimal.Decimal `gorm:"type:decimal(5,2);not null;index" json:"discountPercent"`
	StartsAt         *time.Time      `json:"startsAt"`
	ExpiresAt        *time.Time      `json:"expiresAt"`
	Status           DealStatus      `gorm:"type:varchar(16);not null;default:DRAFT;index" json:"status"`
	IsFeatured       bool            `gorm:"not null;default:false" json:"isFeatured"`
	CreatedBy        uint            `gorm:"not null;index" json:"createdBy"`
	Creator          *Admin          `gorm:"foreignKey:CreatedBy" json:"-"`
	Categories       []Category      `gorm:"many2many:deal_categories" json:"categories"`
	Tags             []Tag           `gorm:"many2many:deal_tags" json:"tags"`
	CreatedAt        time.Time       `gorm:"index" json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// DealCategory is a join row; rows are only inserted or deleted.
type DealCategory struct {
	DealID     uint `gorm:"primaryKey"`
	CategoryID uint `gorm:"primaryKey;index"`
}

// DealTag is a join row; rows are only inserted or deleted.
type DealTag struct {
	DealID uint `gorm:"primaryKey"`
	TagID  uint `gorm:"primaryKey;index"`
}

// ComputeDiscountPercent derives the discount from a price pair, rounded to two places.
// A non-positive original price yields zero.
func ComputeDiscountPercent(original, deal decimal.Decimal) decimal.Decimal {
	if !original.IsPositive() {
		return decimal.Zero
	}
	return original.Sub(deal).Div(original).Mul(decimal.NewFromInt(100)).Round(2)
}
