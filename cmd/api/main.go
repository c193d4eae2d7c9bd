package main

import (
	"log"

	"github.com/fuelsight/fuelsight-api/internal/application/service"
	"github.com/fuelsight/fuelsight-api/internal/config"
	"github.com/fuelsight/fuelsight-api/internal/infrastructure/database"
	"github.com/fuelsight/fuelsight-api/internal/infrastructure/ocr"
	"github.com/fuelsight/fuelsight-api/internal/infrastructure/repository"
	"github.com/fuelsight/fuelsight-api/internal/infrastructure/storage"
	"github.com/fuelsight/fuelsight-api/internal/presentation/http/handler"
	"github.com/fuelsight/fuelsight-api/internal/presentation/http/routes"
	"github.com/fuelsight/fuelsight-api/pkg/email"
	"github.com/fuelsight/fuelsight-api/pkg/utils"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run auto-migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Seed default data
	if err := database.SeedDefaultData(db); err != nil {
		log.Printf("Warning: Failed to seed default data: %v", err)
	}

	// Initialize JWT manager
	jwtManager := utils.NewJWTManager(
		cfg.JWT.Secret,
		cfg.JWT.ExpiryHours,
		cfg.JWT.RefreshExpiryHours,
	)

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	receiptRepo := repository.NewReceiptRepository(db)
	settingsRepo := repository.NewSettingsRepository(db)
	idempotencyRepo := repository.NewIdempotencyRepository(db)
	passwordResetRepo := repository.NewPasswordResetTokenRepository(db)

	// Initialize email service
	emailService := email.NewEmailService(email.EmailConfig{
		SMTPHost:     cfg.Email.SMTPHost,
		SMTPPort:     cfg.Email.SMTPPort,
		SMTPUsername: cfg.Email.SMTPUsername,
		SMTPPassword: cfg.Email.SMTPPassword,
		FromName:     cfg.Email.FromName,
		FromEmail:    cfg.Email.FromEmail,
		FrontendURL:  cfg.App.FrontendURL,
	})

	// Initialize slip image storage
	store, err := storage.NewLocalStore(cfg.Storage.Path, cfg.Storage.UploadMaxSize)
	if err != nil {
		log.Fatalf("Failed to initialize slip storage: %v", err)
	}

	// Initialize the OCR boundary: tesseract is required, the structured
	// Gemini extractor is an optional fallback for degraded prints.
	recognizer := ocr.NewTesseract(cfg.OCR.TesseractBinary, cfg.OCR.Timeout)

	var extractor ocr.SlipExtractor
	if cfg.OCR.GeminiAPIKey != "" {
		gemini, err := ocr.NewGemini(cfg.OCR.GeminiAPIKey, cfg.OCR.GeminiModel)
		if err != nil {
			log.Printf("Warning: Failed to initialize Gemini extractor: %v", err)
		} else {
			extractor = gemini
			defer gemini.Close()
		}
	}

	// Initialize services
	authService := service.NewAuthService(userRepo, roleRepo, passwordResetRepo, jwtManager, emailService)
	receiptService := service.NewReceiptService(receiptRepo, userRepo, settingsRepo, store, recognizer, extractor, emailService)
	dashboardService := service.NewDashboardService(receiptRepo, settingsRepo)
	comparisonService := service.NewComparisonService(receiptRepo)
	settingsService := service.NewSettingsService(settingsRepo)

	// Initialize handlers
	handlers := &routes.Handlers{
		Auth:      handler.NewAuthHandler(authService),
		Receipt:   handler.NewReceiptHandler(receiptService),
		Dashboard: handler.NewDashboardHandler(dashboardService, comparisonService),
		Settings:  handler.NewSettingsHandler(settingsService),
	}

	// Setup routes
	router := routes.Setup(handlers, &routes.Deps{
		JWTManager:      jwtManager,
		Cfg:             cfg,
		IdempotencyRepo: idempotencyRepo,
	})

	port := cfg.App.Port
	if port == "" {
		port = "8080"
	}

	log.Printf("Starting %s server on port %s...", cfg.App.Name, port)
	log.Printf("Environment: %s", cfg.App.Env)

	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
