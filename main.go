package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"deals-backend/config"
	"deals-backend/database"
	"deals-backend/logger"
	"deals-backend/models"
	"deals-backend/routes"
	"deals-backend/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func main() {
	// Load environment variables
	if err := config.LoadEnv(); err != nil {
		log.Fatal("Error loading .env file:", err)
	}

	zapLogger, err := logger.New(config.GetEnv("APP_ENV", "development"))
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer zapLogger.Sync()

	// Validate critical environment variables
	if err := config.ValidateEnv(zapLogger); err != nil {
		zapLogger.Fatal("Environment validation failed", zap.Error(err))
	}

	cfg, err := config.Load()
	if err != nil {
		zapLogger.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	// Run migrations
	if err := database.Migrate(db); err != nil {
		zapLogger.Fatal("Failed to run migrations", zap.Error(err))
	}

	adminService := services.NewAdminService(db, zapLogger)
	ctx := context.Background()

	// Create default admin user if not exists
	if err := database.CreateDefaultAdmin(ctx, db, adminService, cfg, zapLogger); err != nil {
		zapLogger.Warn("Could not create default admin", zap.Error(err))
	}

	if cfg.SeedDemoData {
		seedDemoData(db, cfg, zapLogger)
	}

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	origins := cfg.CORSOrigins()
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
		zapLogger.Warn("No CORS origins configured, defaulting to http://localhost:3000")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID"},
		AllowCredentials: true,
	}))

	// Setup routes
	stopRoutes := routes.SetupRoutes(r, db, cfg, zapLogger)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	// Run server in a goroutine
	go func() {
		zapLogger.Info("Server starting", zap.String("port", cfg.Port), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zapLogger.Info("Shutting down server...")

	// Give outstanding requests 30 seconds to complete
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}
	stopRoutes()

	// Close database connection
	sqlDB, err := db.DB()
	if err == nil {
		if err := sqlDB.Close(); err != nil {
			zapLogger.Error("Error closing database connection", zap.Error(err))
		} else {
			zapLogger.Info("Database connection closed")
		}
	}

	zapLogger.Info("Server exited gracefully")
}

// seedDemoData attributes demo deals to the configured default admin.
func seedDemoData(db *gorm.DB, cfg *config.Config, logger *zap.Logger) {
	var admin models.Admin
	if err := db.Where("email = ?", strings.ToLower(strings.TrimSpace(cfg.AdminEmail))).First(&admin).Error; err != nil {
		logger.Warn("Skipping demo data: default admin not found", zap.Error(err))
		return
	}
	if err := database.SeedDemoData(db, admin.ID, logger); err != nil {
		logger.Warn("Could not seed demo data", zap.Error(err))
	}
}
