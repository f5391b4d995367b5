package dtos

import (
	"strings"

	"deals-backend/models"
	"deals-backend/utils"

	"github.com/shopspring/decimal"
)

type DealsQuery struct {
	Page        int      `form:"page"`
	Limit       int      `form:"limit"`
	Category    string   `form:"category"`
	Store       string   `form:"store"`
	MinDiscount *float64 `form:"minDiscount"`
	MaxPrice    *float64 `form:"maxPrice"`
	Q           string   `form:"q"`
	Status      string   `form:"status"`
}

type DealsPage struct {
	Deals      []models.Deal `json:"deals"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	Limit      int           `json:"limit"`
	TotalPages int           `json:"totalPages"`
}

type CreateDealRequest struct {
	Title            string            `json:"title" binding:"required"`
	Slug             string            `json:"slug" binding:"required"`
	StoreID          uint              `json:"storeId" binding:"required"`
	ShortDescription string            `json:"shortDescription" binding:"required"`
	LongDescription  *string           `json:"longDescription"`
	ProductImageURL  *string           `json:"productImageUrl"`
	ProductURL       *string           `json:"productUrl"`
	AffiliateURL     string            `json:"affiliateUrl" binding:"required"`
	CouponCode       *string           `json:"couponCode"`
	OriginalPrice    *decimal.Decimal  `json:"originalPrice" binding:"required"`
	DealPrice        *decimal.Decimal  `json:"dealPrice" binding:"required"`
	Currency         string            `json:"currency" binding:"omitempty,len=3"`
	DiscountPercent  *decimal.Decimal  `json:"discountPercent"`
	StartsAt         *string           `json:"startsAt"`
	ExpiresAt        *string           `json:"expiresAt"`
	Status           models.DealStatus `json:"status" binding:"omitempty,oneof=DRAFT PUBLISHED ARCHIVED"`
	IsFeatured       bool              `json:"isFeatured"`
	CategoryIDs      []uint            `json:"categoryIds"`
	TagIDs           []uint            `json:"tagIds"`
}

// Validate runs the binding tags, then the checks they cannot express.
func (r *CreateDealRequest) Validate() error {
	if err := checkStruct(r); err != nil {
		return err
	}
	if err := requireText(
		[2]string{"title", r.Title},
		[2]string{"slug", r.Slug},
		[2]string{"shortDescription", r.ShortDescription},
		[2]string{"affiliateUrl", r.AffiliateURL},
	); err != nil {
		return err
	}
	return validatePrices(*r.OriginalPrice, *r.DealPrice)
}

type UpdateDealRequest struct {
	Title            Optional[string]            `json:"title"`
	Slug             Optional[string]            `json:"slug"`
	StoreID          Optional[uint]              `json:"storeId"`
	ShortDescription Optional[string]            `json:"shortDescription"`
	LongDescription  Optional[string]            `json:"longDescription"`
	ProductImageURL  Optional[string]            `json:"productImageUrl"`
	ProductURL       Optional[string]            `json:"productUrl"`
	AffiliateURL     Optional[string]            `json:"affiliateUrl"`
	CouponCode       Optional[string]            `json:"couponCode"`
	OriginalPrice    Optional[decimal.Decimal]   `json:"originalPrice"`
	DealPrice        Optional[decimal.Decimal]   `json:"dealPrice"`
	Currency         Optional[string]            `json:"currency"`
	DiscountPercent  Optional[decimal.Decimal]   `json:"discountPercent"`
	StartsAt         Optional[string]            `json:"startsAt"`
	ExpiresAt        Optional[string]            `json:"expiresAt"`
	Status           Optional[models.DealStatus] `json:"status"`
	IsFeatured       Optional[bool]              `json:"isFeatured"`
	CategoryIDs      Optional[[]uint]            `json:"categoryIds"`
	TagIDs           Optional[[]uint]            `json:"tagIds"`
}

// Validate rejects nulls and blanks on fields that cannot be cleared.
func (r *UpdateDealRequest) Validate() error {
	required := []struct {
		name  string
		field Optional[string]
	}{
		{"title", r.Title},
		{"slug", r.Slug},
		{"shortDescription", r.ShortDescription},
		{"affiliateUrl", r.AffiliateURL},
		{"currency", r.Currency},
	}
	for _, f := range required {
		if f.field.IsNull() || (f.field.Set && strings.TrimSpace(f.field.Value) == "") {
			return utils.NewValidationError("%s cannot be empty", f.name)
		}
	}
	if r.StoreID.IsNull() || (r.StoreID.Set && r.StoreID.Value == 0) {
		return utils.NewValidationError("storeId cannot be empty")
	}
	if r.OriginalPrice.IsNull() || r.DealPrice.IsNull() {
		return utils.NewValidationError("prices cannot be null")
	}
	if r.Currency.Set && len(strings.TrimSpace(r.Currency.Value)) != 3 {
		return utils.NewValidationError("currency must be exactly 3 characters")
	}
	if r.Status.IsNull() || (r.Status.Set && !r.Status.Value.Valid()) {
		return utils.NewValidationError("Invalid status %q", r.Status.Value)
	}
	if r.IsFeatured.IsNull() {
		return utils.NewValidationError("isFeatured cannot be null")
	}
	return nil
}

// HasPriceChange reports whether either price is being overwritten.
func (r *UpdateDealRequest) HasPriceChange() bool {
	return r.OriginalPrice.Set || r.DealPrice.Set
}

type ClickRequest struct {
	SubID *string `json:"subId"`
}

type ClickResponse struct {
	Success      bool   `json:"success"`
	AffiliateURL string `json:"affiliateUrl"`
}

func validatePrices(original, deal decimal.Decimal) error {
	if !original.IsPositive() {
		return utils.NewValidationError("originalPrice must be greater than zero")
	}
	if deal.IsNegative() {
		return utils.NewValidationError("dealPrice cannot be negative")
	}
	return nil
}

// ValidatePrices is used by updates once the resulting price pair is known.
func ValidatePrices(original, deal decimal.Decimal) error {
	return validatePrices(original, deal)
}
