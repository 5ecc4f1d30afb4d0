package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"hela9_backend/database"
	"hela9_backend/internal/config"
	"hela9_backend/internal/email"
	"hela9_backend/internal/handlers"
	"hela9_backend/internal/i18n"
	"hela9_backend/internal/logger"
	"hela9_backend/internal/metrics"
	"hela9_backend/internal/middleware"
	"hela9_backend/internal/models"
	"hela9_backend/internal/ratelimit"
	"hela9_backend/internal/routes"
	"hela9_backend/internal/services"
	"hela9_backend/internal/session"
	"hela9_backend/internal/storage"
	"hela9_backend/internal/validator"
	"hela9_backend/ws"
)

const shutdownTimeout = 10 * time.Second

// Overrides подменяют внешние зависимости, по умолчанию строящиеся из конфига.
type Overrides struct {
	Storage storage.Storage
	Mailer  email.Provider
	Limiter *ratelimit.Limiter
	Metrics *metrics.Registry
	Catalog *i18n.Catalog
}

func Run() {
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	logger.Init(cfg.Server.Env, cfg.Server.LogLevel)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg.Database.Driver, cfg.Database.DSN)
	if err != nil {
		logger.Fatal("Failed to connect to GORM", "error", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		logger.Fatal("Failed to get *sql.DB from GORM", "error", err)
	}
	if err = sqlDB.Ping(); err != nil {
		logger.Fatal("Database unavailable", "error", err)
	}
	logger.Info("Database connected")

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(gormDB); err != nil {
			logger.Fatal("Migration failed", "error", err)
		}
	}

	if err := seedFirstAdmin(gormDB, cfg); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ginRouter, err := SetupRouter(ctx, cfg, gormDB, Overrides{})
	if err != nil {
		logger.Fatal("Failed to build router", "error", err)
	}

	srv := &http.Server{
		Addr:              cfg.Address(),
		Handler:           ginRouter,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Server starting", "address", cfg.Address())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server shutdown error", "error", err)
	}
	_ = sqlDB.Close()
}

// SetupRouter собирает все зависимости и возвращает готовый *gin.Engine.
// WebSocket hub живет, пока не отменен ctx.
func SetupRouter(ctx context.Context, cfg *config.Config, gormDB *gorm.DB, o Overrides) (*gin.Engine, error) {
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	store := o.Storage
	if store == nil {
		var err error
		store, err = storage.NewStorage(storage.Config{
			Type:       cfg.Storage.Type,
			BasePath:   cfg.Storage.BasePath,
			BaseURL:    cfg.Storage.BaseURL,
			Bucket:     cfg.Storage.Bucket,
			Region:     cfg.Storage.Region,
			AccessKey:  cfg.Storage.AccessKey,
			SecretKey:  cfg.Storage.SecretKey,
			Endpoint:   cfg.Storage.Endpoint,
			PublicRead: cfg.Storage.PublicRead,
		})
		if err != nil {
			return nil, fmt.Errorf("initialize storage: %w", err)
		}
		logger.Info("Storage initialized", "type", cfg.Storage.Type)
	}

	mailer := o.Mailer
	if mailer == nil {
		var err error
		mailer, err = newMailer(cfg.Email)
		if err != nil {
			return nil, err
		}
	}

	catalog := o.Catalog
	if catalog == nil {
		var err error
		catalog, err = i18n.Load(cfg.I18n.Dir, cfg.I18n.Languages, cfg.I18n.DefaultLanguage)
		if err != nil {
			return nil, fmt.Errorf("load translations: %w", err)
		}
	}

	reg := o.Metrics
	if reg == nil {
		reg = metrics.New()
	}

	limiter := o.Limiter
	if limiter == nil {
		limiter = newLimiter(ctx, cfg)
	}

	hub := ws.NewHub()
	go hub.Run(ctx)

	serviceContainer := services.NewServiceContainer(services.Dependencies{
		Storage:      store,
		Mailer:       mailer,
		AppName:      cfg.Server.AppName,
		Events:       hub,
		Metrics:      reg,
		MaxFileSize:  cfg.Upload.MaxSize,
		ImageQuality: cfg.Upload.ImageQuality,
		AvatarSize:   cfg.Upload.AvatarSize,
	})

	sessions := session.NewManager(cfg.Session)
	baseHandler := handlers.NewBaseHandler(validator.New(), sessions)
	rateLimit := func(scope string) gin.HandlerFunc {
		return middleware.AuthRateLimit(scope, limiter, reg)
	}
	appHandlers := handlers.NewAppHandlers(baseHandler, serviceContainer, catalog, rateLimit)
	wsHandler := ws.NewWebSocketHandler(hub, cfg.CORS.AllowedOrigins)

	ginRouter := initializeGinRouter(cfg, gormDB, sessions, reg)
	routes.RegisterSystemRoutes(ginRouter, gormDB, reg, store)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)

	return ginRouter, nil
}

func newMailer(cfg config.EmailConfig) (email.Provider, error) {
	templates, err := email.NewDefaultTemplateManager(cfg.TemplatesDir)
	if err != nil {
		return nil, fmt.Errorf("load email templates: %w", err)
	}
	if !cfg.Enabled() {
		logger.Warn("SMTP is not configured, emails will only be logged")
		return email.NewLogProvider(templates), nil
	}
	return email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SMTPUser,
		Password:  cfg.SMTPPassword,
		FromEmail: cfg.FromEmail,
		FromName:  cfg.FromName,
	}, templates), nil
}

// newLimiter возвращает nil без Redis: попытки входа тогда не ограничиваются.
func newLimiter(ctx context.Context, cfg *config.Config) *ratelimit.Limiter {
	if cfg.Redis.Addr == "" {
		logger.Warn("Redis is not configured, auth rate limiting disabled")
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		logger.Warn("Redis ping failed, rate limiter will fail open", "error", err)
	}
	window := time.Duration(cfg.RateLimit.WindowSeconds) * time.Second
	return ratelimit.NewLimiter(ratelimit.NewRedisStore(client), int64(cfg.RateLimit.Limit), window)
}

func initializeGinRouter(cfg *config.Config, db *gorm.DB, sessions *session.Manager, reg *metrics.Registry) *gin.Engine {
	router := gin.New()
	router.MaxMultipartMemory = cfg.Upload.MaxSize
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware(reg))
	router.Use(middleware.CORSMiddleware(cfg.CORS.AllowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	router.Use(middleware.SessionMiddleware(sessions))
	return router
}

// seedFirstAdmin создает администратора из конфига, если его еще нет.
func seedFirstAdmin(db *gorm.DB, cfg *config.Config) error {
	adminEmail := strings.ToLower(strings.TrimSpace(cfg.Admin.Email))
	adminPassword := cfg.Admin.Password

	if adminEmail == "" || adminPassword == "" {
		logger.Warn("FIRST_ADMIN_EMAIL or FIRST_ADMIN_PASSWORD is not set. Skipping admin seeding.")
		return nil
	}

	tx := db.Begin()
	if tx.Error != nil {
		return fmt.Errorf("failed to begin transaction: %w", tx.Error)
	}
	defer tx.Rollback()

	var existing models.User
	result := tx.Where("email = ?", adminEmail).First(&existing)
	if result.Error == nil {
		logger.Info("Admin user already exists. Skipping creation.", "email", adminEmail)
		return nil
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to check for admin user: %w", result.Error)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &models.User{
		Name:         "Administrator",
		Email:        adminEmail,
		PasswordHash: string(hashedPassword),
		Role:         models.UserRoleAdmin,
		IsConfirmed:  true,
		Language:     cfg.I18n.DefaultLanguage,
	}
	if err := tx.Create(admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logger.Info("Created first admin user", "email", adminEmail)
	return tx.Commit().Error
}
