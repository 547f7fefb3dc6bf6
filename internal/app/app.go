package app

import (
	"fmt"

	"careassoc_backend/database"
	"careassoc_backend/internal/auth"
	"careassoc_backend/internal/config"
	"careassoc_backend/internal/email"
	"careassoc_backend/internal/handlers"
	"careassoc_backend/internal/logger"
	"careassoc_backend/internal/middleware"
	"careassoc_backend/internal/models"
	"careassoc_backend/internal/repositories"
	"careassoc_backend/internal/routes"
	"careassoc_backend/internal/services"
	"careassoc_backend/internal/storage"
	appvalidator "careassoc_backend/internal/validator"

	"github.com/gin-gonic/gin"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run wires the application and starts the HTTP server.
func Run() error {
	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	store, err := storage.NewStorage(storage.Config{
		Type:      cfg.Storage.Type,
		BasePath:  cfg.Storage.BasePath,
		BaseURL:   cfg.Storage.BaseURL,
		Bucket:    cfg.Storage.Bucket,
		Region:    cfg.Storage.Region,
		AccessKey: cfg.Storage.AccessKey,
		SecretKey: cfg.Storage.SecretKey,
		Endpoint:  cfg.Storage.Endpoint,
	})
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}

	var emailProvider email.Provider
	if cfg.Email.SMTPHost != "" {
		emailProvider, err = email.NewSMTPSender(email.Config{
			SMTPHost:  cfg.Email.SMTPHost,
			SMTPPort:  cfg.Email.SMTPPort,
			Username:  cfg.Email.SMTPUsername,
			Password:  cfg.Email.SMTPPassword,
			FromEmail: cfg.Email.FromEmail,
			FromName:  cfg.Email.FromName,
		})
		if err != nil {
			return fmt.Errorf("failed to init email sender: %w", err)
		}
	} else {
		logger.Warn("smtp host not configured, email sending disabled")
	}

	if err := seedFirstAdmin(db, cfg); err != nil {
		logger.Warn("failed to seed first admin", "error", err)
	}

	router := SetupRouter(db, store, emailProvider, cfg.Server.Env)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "addr", addr, "env", cfg.Server.Env)
	return router.Run(addr)
}

// SetupRouter builds the Gin engine with middleware, services and routes.
func SetupRouter(db *gorm.DB, store storage.Storage, emailProvider email.Provider, env string) *gin.Engine {
	if env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	v := appvalidator.New()
	svc := services.NewServiceContainer(store, emailProvider, v)
	h := handlers.NewAppHandlers(svc, store, v)

	router := gin.New()
	router.Use(
		gin.Recovery(),
		middleware.RequestIDMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.CORSMiddleware(),
		middleware.DBMiddleware(db),
	)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(router, h)

	return router
}

// seedFirstAdmin creates the bootstrap admin account when configured and
// absent.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return nil
	}

	userRepo := repositories.NewUserRepository()
	if _, err := userRepo.FindByEmail(db, cfg.FirstAdminEmail); err == nil {
		return nil
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		Role:         models.UserRoleAdmin,
		Status:       models.UserStatusActive,
		IsVerified:   true,
	}
	if err := userRepo.Create(db, admin); err != nil {
		return err
	}

	profileRepo := repositories.NewProfileRepository()
	if err := profileRepo.Upsert(db, &models.Profile{
		UserID:   admin.ID,
		FullName: "Administrator",
		Role:     models.UserRoleAdmin,
	}); err != nil {
		return err
	}

	logger.Info("seeded first admin account", "email", cfg.FirstAdminEmail)
	return nil
}
