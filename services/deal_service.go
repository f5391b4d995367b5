package services

import (
	"context"
	"fmt"
	"math"
	"strings"

	"deals-backend/dtos"
	"deals-backend/metrics"
	"deals-backend/models"
	"deals-backend/utils"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	DefaultPage  = 1
	DefaultLimit = 12
	MaxLimit     = 100
	// MaxPage keeps (page-1)*limit well inside int64.
	MaxPage      = math.MaxInt32
)

var likeEscaper = strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)

var maxDiscount = decimal.NewFromInt(100)

// ClickMetadata is what the click endpoint knows about the visitor.
type ClickMetadata struct {
	IPAddress *string
	UserAgent *string
	Referrer  *string
	SubID     *string
}

type DealService struct {
	db     *gorm.DB
	logger *zap.Logger
}

func NewDealService(db *gorm.DB, logger *zap.Logger) *DealService {
	return &DealService{db: db, logger: logger}
}

// NormalizePaging clamps page and limit into their allowed ranges.
func NormalizePaging(page, limit int) (int, int) {
	if page < 1 {
		page = DefaultPage
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return page, limit
}

// TotalPages is ceil(total/limit); zero rows means zero pages.
func TotalPages(total int64, limit int) int {
	if total <= 0 || limit <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

func applyDealFilters(tx *gorm.DB, q dtos.DealsQuery) *gorm.DB {
	if q.Status != "" {
		tx = tx.Where("deals.status = ?", q.Status)
	}
	if q.Category != "" {
		tx = tx.Where("deals.id IN (SELECT dc.deal_id FROM deal_categories dc JOIN categories c ON c.id = dc.category_id WHERE c.slug = ?)", q.Category)
	}
	if q.Store != "" {
		tx = tx.Where("deals.store_id IN (SELECT id FROM stores WHERE slug = ?)", q.Store)
	}
	if q.MinDiscount != nil {
		tx = tx.Where("deals.discount_percent >= ?", *q.MinDiscount)
	}
	if q.MaxPrice != nil {
		tx = tx.Where("deals.deal_price <= ?", *q.MaxPrice)
	}
	if search := strings.TrimSpace(q.Q); search != "" {
		// The search term is matched literally, so its own % and _ are escaped.
		pattern := "%" + likeEscaper.Replace(search) + "%"
		tx = tx.Where(`(LOWER(deals.title) LIKE LOWER(?) ESCAPE '\' OR LOWER(deals.short_description) LIKE LOWER(?) ESCAPE '\')`, pattern, pattern)
	}
	return tx
}

func withDealRelations(tx *gorm.DB) *gorm.DB {
	return tx.Preload("Store").Preload("Categories").Preload("Tags")
}

// ListDeals returns one page of deals matching every supplied filter.
// An empty status places no constraint on status.
func (s *DealService) ListDeals(ctx context.Context, q dtos.DealsQuery) (*dtos.DealsPage, error) {
	if q.Status != "" && !models.DealStatus(q.Status).Valid() {
		return nil, utils.NewValidationError("Invalid status %q", q.Status)
	}
	page, limit := NormalizePaging(q.Page, q.Limit)

	var total int64
	if err := applyDealFilters(s.db.WithContext(ctx).Model(&models.Deal{}), q).Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count deals: %w", err)
	}

	deals := []models.Deal{}
	offset := int64(page-1) * int64(limit)
	if offset < total {
		err := withDealRelations(applyDealFilters(s.db.WithContext(ctx), q)).
			Order("deals.created_at DESC").
			Order("deals.id DESC").
			Offset(int(offset)).
			Limit(limit).
			Find(&deals).Error
		if err != nil {
			return nil, fmt.Errorf("failed to list deals: %w", err)
		}
	}

	return &dtos.DealsPage{
		Deals:      deals,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: TotalPages(total, limit),
	}, nil
}

// ListPublishedDeals is the public listing: status is always PUBLISHED.
func (s *DealService) ListPublishedDeals(ctx context.Context, q dtos.DealsQuery) (*dtos.DealsPage, error) {
	q.Status = string(models.DealStatusPublished)
	return s.ListDeals(ctx, q)
}

func (s *DealService) GetDeal(ctx context.Context, lookup DealLookup) (*models.Deal, error) {
	var deal models.Deal
	query := withDealRelations(s.db.WithContext(ctx))
	var err error
	if lookup.IsID() {
		err = query.First(&deal, lookup.ID()).Error
	} else {
		err = query.Where("slug = ?", lookup.Slug()).First(&deal).Error
	}
	if err != nil {
		return nil, mapNotFound(err, "Deal")
	}
	return &deal, nil
}

func (s *DealService) CreateDeal(ctx context.Context, creatorID uint, req *dtos.CreateDealRequest) (*models.Deal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	startsAt, err := parseOptionalDate("startsAt", req.StartsAt)
	if err != nil {
		return nil, err
	}
	expiresAt, err := parseOptionalDate("expiresAt", req.ExpiresAt)
	if err != nil {
		return nil, err
	}

	discount := models.ComputeDiscountPercent(*req.OriginalPrice, *req.DealPrice)
	if req.DiscountPercent != nil {
		if err := validateDiscount(*req.DiscountPercent); err != nil {
			return nil, err
		}
		discount = *req.DiscountPercent
	}

	status := req.Status
	if status == "" {
		status = models.DealStatusDraft
	}
	currency := strings.ToUpper(strings.TrimSpace(req.Currency))
	if currency == "" {
		currency = models.DefaultCurrency
	}

	deal := models.Deal{
		Title:            strings.TrimSpace(req.Title),
		Slug:             strings.TrimSpace(req.Slug),
		StoreID:          req.StoreID,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		ProductImageURL:  req.ProductImageURL,
		ProductURL:       req.ProductURL,
		AffiliateURL:     strings.TrimSpace(req.AffiliateURL),
		CouponCode:       req.CouponCode,
		OriginalPrice:    *req.OriginalPrice,
		DealPrice:        *req.DealPrice,
		Currency:         currency,
		DiscountPercent:  discount,
		StartsAt:         startsAt,
		ExpiresAt:        expiresAt,
		Status:           status,
		IsFeatured:       req.IsFeatured,
		CreatedBy:        creatorID,
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureStoreExists(tx, deal.StoreID); err != nil {
			return err
		}
		if err := ensureSlugFree(tx, &models.Deal{}, "Deal", deal.Slug, 0); err != nil {
			return err
		}
		if err := tx.Omit(clause.Associations).Create(&deal).Error; err != nil {
			return mapWriteError(err, "Deal", deal.Slug)
		}
		if err := replaceDealCategories(tx, deal.ID, req.CategoryIDs); err != nil {
			return err
		}
		return replaceDealTags(tx, deal.ID, req.TagIDs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Deal created",
		zap.Uint("deal_id", deal.ID),
		zap.String("slug", deal.Slug),
		zap.Uint("created_by", creatorID),
	)

	return s.GetDeal(ctx, ByID(deal.ID))
}

// UpdateDeal applies only the fields present in req. Present association lists
// replace the current set wholesale.
func (s *DealService) UpdateDeal(ctx context.Context, id uint, req *dtos.UpdateDealRequest) (*models.Deal, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing models.Deal
		if err := tx.First(&existing, id).Error; err != nil {
			return mapNotFound(err, "Deal")
		}

		updates, err := dealUpdates(tx, &existing, req)
		if err != nil {
			return err
		}
		if len(updates) > 0 {
			if err := tx.Model(&existing).Updates(updates).Error; err != nil {
				return mapWriteError(err, "Deal", req.Slug.Value)
			}
		}

		if req.CategoryIDs.Set {
			if err := replaceDealCategories(tx, id, req.CategoryIDs.Value); err != nil {
				return err
			}
		}
		if req.TagIDs.Set {
			if err := replaceDealTags(tx, id, req.TagIDs.Value); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("Deal updated", zap.Uint("deal_id", id))
	return s.GetDeal(ctx, ByID(id))
}

func dealUpdates(tx *gorm.DB, existing *models.Deal, req *dtos.UpdateDealRequest) (map[string]interface{}, error) {
	updates := map[string]interface{}{}

	if req.Title.Set {
		updates["title"] = strings.TrimSpace(req.Title.Value)
	}
	if req.Slug.Set {
		slug := strings.TrimSpace(req.Slug.Value)
		if slug != existing.Slug {
			if err := ensureSlugFree(tx, &models.Deal{}, "Deal", slug, existing.ID); err != nil {
				return nil, err
			}
		}
		updates["slug"] = slug
	}
	if req.StoreID.Set {
		if err := ensureStoreExists(tx, req.StoreID.Value); err != nil {
			return nil, err
		}
		updates["store_id"] = req.StoreID.Value
	}
	if req.ShortDescription.Set {
		updates["short_description"] = req.ShortDescription.Value
	}
	if req.LongDescription.Set {
		updates["long_description"] = req.LongDescription.Ptr()
	}
	if req.ProductImageURL.Set {
		updates["product_image_url"] = req.ProductImageURL.Ptr()
	}
	if req.ProductURL.Set {
		updates["product_url"] = req.ProductURL.Ptr()
	}
	if req.AffiliateURL.Set {
		updates["affiliate_url"] = strings.TrimSpace(req.AffiliateURL.Value)
	}
	if req.CouponCode.Set {
		updates["coupon_code"] = req.CouponCode.Ptr()
	}
	if req.Currency.Set {
		updates["currency"] = strings.ToUpper(strings.TrimSpace(req.Currency.Value))
	}
	if req.Status.Set {
		updates["status"] = req.Status.Value
	}
	if req.IsFeatured.Set {
		updates["is_featured"] = req.IsFeatured.Value
	}
	if req.StartsAt.Set {
		startsAt, err := parseOptionalDate("startsAt", req.StartsAt.Ptr())
		if err != nil {
			return nil, err
		}
		updates["starts_at"] = startsAt
	}
	if req.ExpiresAt.Set {
		expiresAt, err := parseOptionalDate("expiresAt", req.ExpiresAt.Ptr())
		if err != nil {
			return nil, err
		}
		updates["expires_at"] = expiresAt
	}

	original, dealPrice := existing.OriginalPrice, existing.DealPrice
	if req.OriginalPrice.Set {
		original = req.OriginalPrice.Value
		updates["original_price"] = original
	}
	if req.DealPrice.Set {
		dealPrice = req.DealPrice.Value
		updates["deal_price"] = dealPrice
	}
	if req.HasPriceChange() {
		if err := dtos.ValidatePrices(original, dealPrice); err != nil {
			return nil, err
		}
	}

	switch {
	case req.DiscountPercent.Set && req.DiscountPercent.Valid:
		if err := validateDiscount(req.DiscountPercent.Value); err != nil {
			return nil, err
		}
		updates["discount_percent"] = req.DiscountPercent.Value
	case req.DiscountPercent.IsNull() || req.HasPriceChange():
		updates["discount_percent"] = models.ComputeDiscountPercent(original, dealPrice)
	}

	return updates, nil
}

// SetCategories replaces the deal's category set. Duplicate ids are ignored.
func (s *DealService) SetCategories(ctx context.Context, dealID uint, categoryIDs []uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureDealExists(tx, dealID); err != nil {
			return err
		}
		return replaceDealCategories(tx, dealID, categoryIDs)
	})
}

// SetTags replaces the deal's tag set. Duplicate ids are ignored.
func (s *DealService) SetTags(ctx context.Context, dealID uint, tagIDs []uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureDealExists(tx, dealID); err != nil {
			return err
		}
		return replaceDealTags(tx, dealID, tagIDs)
	})
}

// SoftDeleteDeal archives the deal. Associations and click history stay.
func (s *DealService) SoftDeleteDeal(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var deal models.Deal
		if err := tx.Select("id").First(&deal, id).Error; err != nil {
			return mapNotFound(err, "Deal")
		}
		if err := tx.Model(&deal).Update("status", models.DealStatusArchived).Error; err != nil {
			return fmt.Errorf("failed to archive deal: %w", err)
		}
		s.logger.Info("Deal archived", zap.Uint("deal_id", id))
		return nil
	})
}

// RecordClick stores one click row and returns the affiliate URL to redirect to.
// Status and expiry are not checked.
func (s *DealService) RecordClick(ctx context.Context, dealID uint, meta ClickMetadata) (string, error) {
	var deal models.Deal
	if err := s.db.WithContext(ctx).Preload("Store").First(&deal, dealID).Error; err != nil {
		return "", mapNotFound(err, "Deal")
	}

	click := models.DealClick{
		DealID:    deal.ID,
		IPAddress: meta.IPAddress,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
		SubID:     meta.SubID,
	}
	if err := s.db.WithContext(ctx).Create(&click).Error; err != nil {
		return "", fmt.Errorf("failed to record click: %w", err)
	}

	storeLabel := "unknown"
	if deal.Store != nil {
		storeLabel = deal.Store.Slug
	}
	metrics.DealClicksTotal.WithLabelValues(storeLabel).Inc()

	return deal.AffiliateURL, nil
}

func validateDiscount(d decimal.Decimal) error {
	if d.IsNegative() || d.GreaterThan(maxDiscount) {
		return utils.NewValidationError("discountPercent must be between 0 and 100")
	}
	return nil
}

func ensureStoreExists(tx *gorm.DB, storeID uint) error {
	var count int64
	if err := tx.Model(&models.Store{}).Where("id = ?", storeID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check store: %w", err)
	}
	if count == 0 {
		return utils.NewValidationError("Store %d does not exist", storeID)
	}
	return nil
}

func ensureDealExists(tx *gorm.DB, dealID uint) error {
	var count int64
	if err := tx.Model(&models.Deal{}).Where("id = ?", dealID).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check deal: %w", err)
	}
	if count == 0 {
		return utils.NewNotFoundError("Deal")
	}
	return nil
}

func replaceDealCategories(tx *gorm.DB, dealID uint, categoryIDs []uint) error {
	ids := uniqueIDs(categoryIDs)
	if err := ensureAllExist(tx, &models.Category{}, "categoryIds", ids); err != nil {
		return err
	}
	if err := tx.Where("deal_id = ?", dealID).Delete(&models.DealCategory{}).Error; err != nil {
		return fmt.Errorf("failed to clear deal categories: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	rows := make([]models.DealCategory, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, models.DealCategory{DealID: dealID, CategoryID: id})
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to attach deal categories: %w", err)
	}
	return nil
}

func replaceDealTags(tx *gorm.DB, dealID uint, tagIDs []uint) error {
	ids := uniqueIDs(tagIDs)
	if err := ensureAllExist(tx, &models.Tag{}, "tagIds", ids); err != nil {
		return err
	}
	if err := tx.Where("deal_id = ?", dealID).Delete(&models.DealTag{}).Error; err != nil {
		return fmt.Errorf("failed to clear deal tags: %w", err)
	}
	if len(ids) == 0 {
		return nil
	}
	rows := make([]models.DealTag, 0, len(ids))
	for _, id := range ids {
		rows = append(rows, models.DealTag{DealID: dealID, TagID: id})
	}
	if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
		return fmt.Errorf("failed to attach deal tags: %w", err)
	}
	return nil
}

func ensureAllExist(tx *gorm.DB, model interface{}, field string, ids []uint) error {
	if len(ids) == 0 {
		return nil
	}
	var count int64
	if err := tx.Model(model).Where("id IN ?", ids).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check %s: %w", field, err)
	}
	if int(count) != len(ids) {
		return utils.NewValidationError("%s contains unknown ids", field)
	}
	return nil
}
