package app

import (
	"context"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"propel_backend/internal/config"
	"propel_backend/internal/email"
	"propel_backend/internal/handlers"
	"propel_backend/internal/logger"
	"propel_backend/internal/middleware"
	"propel_backend/internal/models"
	"propel_backend/internal/queue"
	"propel_backend/internal/report"
	"propel_backend/internal/repositories"
	"propel_backend/internal/routes"
	"propel_backend/internal/services"
	"propel_backend/internal/storage"
	"propel_backend/internal/validator"
	"propel_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func Run() {
	config.LoadConfig()
	cfg := config.AppConfig

	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	logger.Info("Connecting to database...")
	// TranslateError превращает ошибки драйвера в gorm.ErrDuplicatedKey и
	// им подобные - репозитории полагаются на это
	gormDB, err := gorm.Open(mysql.Open(cfg.Database.DSN), &gorm.Config{TranslateError: true})
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

	if err := gormDB.AutoMigrate(
		&models.Account{},
		&models.RefreshToken{},
		&models.Property{},
		&models.PropertyDetail{},
		&models.PropertyImage{},
	); err != nil {
		logger.Fatal("Failed to run migrations", "error", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ginRouter := SetupRouter(cfg, gormDB)

	// Фоновые задачи: consumer почтовой очереди и retention sweep
	if cfg.Queue.URL != "" {
		go queue.StartEmailConsumer(ctx, cfg.Queue.URL, buildEmailProvider(cfg))
	}
	retention := workers.NewRetentionWorker(gormDB, repositories.NewPropertyRepository(), cfg)
	retention.Start(ctx)

	address := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: address, Handler: ginRouter}

	go func() {
		logger.Info("Server starting", "address", address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
}

// SetupRouter собирает полностью готовый gin.Engine.
// Вынесен отдельно, чтобы интеграционные тесты поднимали тот же
// стек поверх тестовой БД.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) *gin.Engine {
	storageInstance, err := storage.NewLocalStorage(storage.Config{
		BasePath: cfg.Storage.BasePath,
		BaseURL:  cfg.Storage.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize storage", "error", err)
	}

	serviceContainer := initializeServices(cfg)
	appHandlers := initializeHandlers(cfg, serviceContainer, storageInstance)

	ginRouter := initializeGinRouter(gormDB)
	routes.RegisterRoutes(ginRouter, appHandlers, cfg)

	return ginRouter
}

func initializeServices(cfg *config.Config) *services.ServiceContainer {
	emailProvider := buildEmailProvider(cfg)
	dispatcher := buildDispatcher(cfg, emailProvider)

	accountRepo := repositories.NewAccountRepository()
	tokenRepo := repositories.NewRefreshTokenRepository()
	propertyRepo := repositories.NewPropertyRepository()

	authService := services.NewAuthService(cfg, accountRepo, tokenRepo, dispatcher)
	accountService := services.NewAccountService(accountRepo)
	propertyService := services.NewPropertyService(propertyRepo)
	reportService := services.NewReportService(propertyRepo, accountRepo, report.NewPDFRenderer(), dispatcher)

	return &services.ServiceContainer{
		AuthService:     authService,
		AccountService:  accountService,
		PropertyService: propertyService,
		ReportService:   reportService,
		EmailService:    emailProvider,
	}
}

func initializeHandlers(cfg *config.Config, container *services.ServiceContainer, storageInstance storage.Storage) *handlers.AppHandlers {
	customValidator := validator.New()
	baseHandler := handlers.NewBaseHandler(customValidator)

	return &handlers.AppHandlers{
		AuthHandler:     handlers.NewAuthHandler(baseHandler, cfg, container.AuthService, buildLoginRateLimiter(cfg)),
		AccountHandler:  handlers.NewAccountHandler(baseHandler, cfg, container.AccountService),
		PropertyHandler: handlers.NewPropertyHandler(baseHandler, cfg, container.PropertyService, container.ReportService, storageInstance),
	}
}

func initializeGinRouter(db *gorm.DB) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))
	return router
}

// buildEmailProvider возвращает SMTP-провайдера либо noop, когда
// почта выключена конфигурацией
func buildEmailProvider(cfg *config.Config) email.Provider {
	if !cfg.Email.Enabled {
		logger.Warn("Email sending is disabled, using noop provider")
		return email.NewNoopProvider()
	}

	provider, err := email.NewSMTPProvider(&email.SMTPConfig{
		Host:      cfg.Email.SMTPHost,
		Port:      cfg.Email.SMTPPort,
		Username:  cfg.Email.SMTPUsername,
		Password:  cfg.Email.SMTPPassword,
		FromEmail: cfg.Email.FromEmail,
		FromName:  cfg.Email.FromName,
		BaseURL:   cfg.Server.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize email provider", "error", err)
	}
	return provider
}

// buildDispatcher выбирает канал доставки писем: RabbitMQ при
// настроенном брокере, иначе горутина внутри процесса
func buildDispatcher(cfg *config.Config, provider email.Provider) queue.Dispatcher {
	if cfg.Queue.URL != "" {
		logger.Info("Email dispatch via RabbitMQ", "queue", queue.EmailQueueName)
		return queue.NewAMQPDispatcher(cfg.Queue.URL)
	}
	logger.Info("Email dispatch via in-process goroutines")
	return queue.NewGoroutineDispatcher(provider)
}

// buildLoginRateLimiter поднимает redis-лимитер на /authenticate;
// без настроенного redis вернет nil (лимитер выключен)
func buildLoginRateLimiter(cfg *config.Config) gin.HandlerFunc {
	if cfg.Redis.Addr == "" {
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	return middleware.LoginRateLimiter(
		client,
		cfg.RateLimit.MaxAttempts,
		time.Duration(cfg.RateLimit.WindowSeconds)*time.Second,
	)
}
