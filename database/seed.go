package database

import (
	"fmt"

	"deals-backend/models"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type seedDeal struct {
	deal       models.Deal
	store      string
	categories []string
	tags       []string
}

func strPtr(s string) *string {
	return &s
}

// SeedDemoData inserts a small demo catalog. Rows are matched by slug, so running it
// twice is harmless.
func SeedDemoData(db *gorm.DB, creatorID uint, logger *zap.Logger) error {
	return db.Transaction(func(tx *gorm.DB) error {
		stores := map[string]*models.Store{}
		for _, s := range []models.Store{
			{Name: "Amazon", Slug: "amazon", WebsiteURL: "https://amazon.in", LogoURL: strPtr("https://logo.clearbit.com/amazon.in"), AffiliateProgramName: strPtr("Amazon Associates")},
			{Name: "Flipkart", Slug: "flipkart", WebsiteURL: "https://flipkart.com", LogoURL: strPtr("https://logo.clearbit.com/flipkart.com"), AffiliateProgramName: strPtr("Flipkart Affiliate")},
			{Name: "Myntra", Slug: "myntra", WebsiteURL: "https://myntra.com", LogoURL: strPtr("https://logo.clearbit.com/myntra.com")},
			{Name: "Ajio", Slug: "ajio", WebsiteURL: "https://ajio.com", LogoURL: strPtr("https://logo.clearbit.com/ajio.com")},
			{Name: "Croma", Slug: "croma", WebsiteURL: "https://croma.com", LogoURL: strPtr("https://logo.clearbit.com/croma.com")},
		} {
			store := s
			store.Status = models.StoreStatusActive
			if err := tx.Where(models.Store{Slug: store.Slug}).FirstOrCreate(&store).Error; err != nil {
				return fmt.Errorf("failed to seed store %s: %w", store.Slug, err)
			}
			stores[store.Slug] = &store
		}

		categories := map[string]*models.Category{}
		seedCategory := func(c models.Category, parent string) error {
			if parent != "" {
				c.ParentID = &categories[parent].ID
			}
			if err := tx.Where(models.Category{Slug: c.Slug}).FirstOrCreate(&c).Error; err != nil {
				return fmt.Errorf("failed to seed category %s: %w", c.Slug, err)
			}
			categories[c.Slug] = &c
			return nil
		}
		for _, c := range []models.Category{
			{Name: "Electronics", Slug: "electronics", SortOrder: 1},
			{Name: "Fashion", Slug: "fashion", SortOrder: 2},
			{Name: "Home & Kitchen", Slug: "home-kitchen", SortOrder: 3},
			{Name: "Beauty & Personal Care", Slug: "beauty", SortOrder: 4},
			{Name: "Sports & Fitness", Slug: "sports", SortOrder: 5},
		} {
			if err := seedCategory(c, ""); err != nil {
				return err
			}
		}
		for _, sub := range []struct {
			category models.Category
			parent   string
		}{
			{models.Category{Name: "Smartphones", Slug: "smartphones", SortOrder: 1}, "electronics"},
			{models.Category{Name: "Laptops", Slug: "laptops", SortOrder: 2}, "electronics"},
			{models.Category{Name: "Men's Clothing", Slug: "mens-clothing", SortOrder: 1}, "fashion"},
			{models.Category{Name: "Women's Clothing", Slug: "womens-clothing", SortOrder: 2}, "fashion"},
		} {
			if err := seedCategory(sub.category, sub.parent); err != nil {
				return err
			}
		}

		tags := map[string]*models.Tag{}
		for _, t := range []models.Tag{
			{Name: "Hot Deal", Slug: "hot-deal"},
			{Name: "Limited Time", Slug: "limited-time"},
			{Name: "Best Seller", Slug: "best-seller"},
			{Name: "Flash Sale", Slug: "flash-sale"},
		} {
			tag := t
			if err := tx.Where(models.Tag{Slug: tag.Slug}).FirstOrCreate(&tag).Error; err != nil {
				return fmt.Errorf("failed to seed tag %s: %w", tag.Slug, err)
			}
			tags[tag.Slug] = &tag
		}

		for _, sd := range demoDeals() {
			deal := sd.deal
			deal.StoreID = stores[sd.store].ID
			deal.CreatedBy = creatorID
			deal.Currency = models.DefaultCurrency
			deal.Status = models.DealStatusPublished
			deal.DiscountPercent = models.ComputeDiscountPercent(deal.OriginalPrice, deal.DealPrice)

			if err := tx.Omit(clause.Associations).Where(models.Deal{Slug: deal.Slug}).FirstOrCreate(&deal).Error; err != nil {
				return fmt.Errorf("failed to seed deal %s: %w", deal.Slug, err)
			}
			for _, slug := range sd.categories {
				row := models.DealCategory{DealID: deal.ID, CategoryID: categories[slug].ID}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
					return fmt.Errorf("failed to link deal %s to %s: %w", deal.Slug, slug, err)
				}
			}
			for _, slug := range sd.tags {
				row := models.DealTag{DealID: deal.ID, TagID: tags[slug].ID}
				if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
					return fmt.Errorf("failed to tag deal %s with %s: %w", deal.Slug, slug, err)
				}
			}
		}

		for _, p := range []models.Page{
			{Slug: "about-us", Title: "About Us", ContentHTML: "<p>Welcome to Deals247! We are your trusted source for the best deals online.</p>"},
			{Slug: "privacy-policy", Title: "Privacy Policy", ContentHTML: "<p>We only collect what we need to show you deals and count affiliate clicks.</p>"},
			{Slug: "disclaimer", Title: "Disclaimer", ContentHTML: "<p>We may earn a commission when you buy through links on this site.</p>"},
		} {
			page := p
			page.Status = models.PageStatusPublished
			if err := tx.Where(models.Page{Slug: page.Slug}).FirstOrCreate(&page).Error; err != nil {
				return fmt.Errorf("failed to seed page %s: %w", page.Slug, err)
			}
		}

		logger.Info("Demo data seeded",
			zap.Int("stores", len(stores)),
			zap.Int("categories", len(categories)),
			zap.Int("tags", len(tags)),
		)
		return nil
	})
}

func demoDeals() []seedDeal {
	return []seedDeal{
		{
			deal: models.Deal{
				Title:            "iPhone 15 Pro Max - 256GB (Natural Titanium)",
				Slug:             "iphone-15-pro-max-256gb-natural-titanium",
				ShortDescription: "Latest iPhone 15 Pro Max with A17 Pro chip, titanium design, and advanced camera system",
				ProductImageURL:  strPtr("https://images.unsplash.com/photo-1695048133142-1a20484d2569?w=500"),
				AffiliateURL:     "https://amazon.in/iphone-15-pro-max",
				OriginalPrice:    decimal.NewFromInt(159900),
				DealPrice:        decimal.NewFromInt(144990),
				IsFeatured:       true,
			},
			store:      "amazon",
			categories: []string{"smartphones"},
			tags:       []string{"hot-deal"},
		},
		{
			deal: models.Deal{
				Title:            "Samsung Galaxy S24 Ultra 5G - 512GB (Titanium Black)",
				Slug:             "samsung-galaxy-s24-ultra-512gb",
				ShortDescription: "Samsung Galaxy S24 Ultra with AI-powered camera, S Pen, and stunning 6.8\" display",
				ProductImageURL:  strPtr("https://images.unsplash.com/photo-1610945415295-d9bbf067e59c?w=500"),
				AffiliateURL:     "https://flipkart.com/samsung-s24-ultra",
				CouponCode:       strPtr("SAMSUNG500"),
				OriginalPrice:    decimal.NewFromInt(129999),
				DealPrice:        decimal.NewFromInt(119999),
				IsFeatured:       true,
			},
			store:      "flipkart",
			categories: []string{"smartphones"},
			tags:       []string{"hot-deal", "limited-time"},
		},
		{
			deal: models.Deal{
				Title:            "MacBook Air M3 - 13\" (8GB RAM, 256GB SSD)",
				Slug:             "macbook-air-m3-13-inch-256gb",
				ShortDescription: "Ultra-thin MacBook Air powered by M3 chip with exceptional battery life",
				ProductImageURL:  strPtr("https://images.unsplash.com/photo-1517336714731-489689fd1ca8?w=500"),
				AffiliateURL:     "https://amazon.in/macbook-air-m3",
				OriginalPrice:    decimal.NewFromInt(114900),
				DealPrice:        decimal.NewFromInt(104900),
				IsFeatured:       true,
			},
			store:      "amazon",
			categories: []string{"laptops"},
			tags:       []string{"hot-deal"},
		},
		{
			deal: models.Deal{
				Title:            "Men's Cotton Casual Shirt - Blue Checks",
				Slug:             "mens-cotton-casual-shirt-blue-checks",
				ShortDescription: "100% Cotton casual shirt with comfortable fit and stylish blue checks pattern",
				ProductImageURL:  strPtr("https://images.unsplash.com/photo-1602810318383-e386cc2a3ccf?w=500"),
				AffiliateURL:     "https://myntra.com/mens-shirt-blue-checks",
				OriginalPrice:    decimal.NewFromInt(1999),
				DealPrice:        decimal.NewFromInt(799),
			},
			store:      "myntra",
			categories: []string{"mens-clothing"},
			tags:       []string{"hot-deal"},
		},
	}
}
