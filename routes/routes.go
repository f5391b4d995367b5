package routes

import (
	"net/http"
	"time"

	"deals-backend/config"
	"deals-backend/handlers"
	"deals-backend/middleware"
	"deals-backend/services"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRoutes registers every route on r. The returned func releases
// background resources and belongs in the shutdown path.
func SetupRoutes(r *gin.Engine, db *gorm.DB, cfg *config.Config, logger *zap.Logger) func() {
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.LoggingMiddleware(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.ErrorHandler(logger))

	// Initialize handlers
	authHandler := &handlers.AuthHandler{Admins: services.NewAdminService(db, logger)}
	dealHandler := &handlers.DealHandler{Deals: services.NewDealService(db, logger)}
	storeHandler := &handlers.StoreHandler{Stores: services.NewStoreService(db, logger)}
	categoryHandler := &handlers.CategoryHandler{Categories: services.NewCategoryService(db, logger)}
	tagHandler := &handlers.TagHandler{Tags: services.NewTagService(db, logger)}

	loginLimiter := middleware.NewRateLimiter("login", cfg.LoginRateLimit, time.Minute)
	clickLimiter := middleware.NewRateLimiter("click", cfg.ClickRateLimit, time.Minute)

	// Public routes
	api := r.Group("/api")
	{
		api.GET("/health", health)

		api.GET("/deals", dealHandler.GetDeals)
		api.GET("/deals/:idOrSlug", dealHandler.GetDeal)
		api.POST("/deals/:idOrSlug/click", clickLimiter.Middleware(), dealHandler.RecordClick)

		api.GET("/stores", storeHandler.GetStores)
		api.GET("/stores/:slug", storeHandler.GetStore)

		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/:slug", categoryHandler.GetCategory)

		api.GET("/tags", tagHandler.GetTags)
		api.GET("/tags/:slug", tagHandler.GetTag)
	}

	adminAPI := api.Group("/admin")
	adminAPI.POST("/auth/login", loginLimiter.Middleware(), authHandler.Login)

	// Everything below requires a valid token
	authenticated := adminAPI.Group("")
	authenticated.Use(middleware.AuthMiddleware())
	authenticated.GET("/auth/me", authHandler.Me)

	admin := authenticated.Group("")
	admin.Use(middleware.StaffMiddleware())
	{
		admin.GET("/deals", dealHandler.AdminGetDeals)
		admin.POST("/deals", dealHandler.CreateDeal)
		admin.PUT("/deals/:id", dealHandler.UpdateDeal)
		admin.DELETE("/deals/:id", dealHandler.DeleteDeal)

		admin.POST("/stores", storeHandler.CreateStore)
		admin.PUT("/stores/:id", storeHandler.UpdateStore)
		admin.DELETE("/stores/:id", storeHandler.DeleteStore)

		admin.POST("/categories", categoryHandler.CreateCategory)
		admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
		admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

		admin.GET("/tags", tagHandler.GetTags)
		admin.POST("/tags", tagHandler.CreateTag)
		admin.PUT("/tags/:id", tagHandler.UpdateTag)
		admin.DELETE("/tags/:id", tagHandler.DeleteTag)
	}

	// Health check
	r.GET("/health", health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	r.NoRoute(middleware.NotFound)

	return func() {
		loginLimiter.Stop()
		clickLimiter.Stop()
	}
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
