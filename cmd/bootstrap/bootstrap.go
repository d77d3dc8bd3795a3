package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"dawrni-api/config"
	deliveryHttp "dawrni-api/internal/delivery/http"
	"dawrni-api/internal/delivery/http/handler"
	"dawrni-api/internal/delivery/http/middleware"
	"dawrni-api/internal/infrastructure/cache"
	"dawrni-api/internal/infrastructure/database"
	"dawrni-api/internal/infrastructure/mail"
	"dawrni-api/internal/infrastructure/storage"
	"dawrni-api/internal/repository"
	"dawrni-api/internal/service"
	"dawrni-api/internal/usecase"
	"dawrni-api/pkg/jwt"
	"dawrni-api/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
	Log         *logrus.Logger
}

// New creates a new App instance with all dependencies initialized
func New(configPath string) (*App, error) {
	app := &App{}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	log := setupLogger(cfg.App.LogLevel)
	app.Log = log
	log.Info("Configuration loaded successfully")

	if err := database.RunMigrations(database.DSN(cfg.DB), cfg.DB.MigrationsPath, log); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	log.Info("Database connected successfully")

	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	log.Info("Redis connected successfully")

	imageStorage, err := storage.NewCloudinaryStorage(cfg.Storage, log)
	if err != nil {
		return nil, fmt.Errorf("failed to init image storage: %w", err)
	}

	app.Server = initializeServer(cfg, log, db, redisClient, imageStorage, mail.NewSMTPMailer(cfg.Mail))

	return app, nil
}

// setupLogger configures the logrus logger
func setupLogger(level string) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

// initializeServer creates and configures the HTTP server
func initializeServer(
	cfg *config.Config,
	log *logrus.Logger,
	db *gorm.DB,
	redisClient *redis.Client,
	imageStorage service.ImageStorage,
	mailer service.Mailer,
) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	companyRepo := repository.NewCompanyRepository()
	photoRepo := repository.NewCompanyPhotoRepository()
	categoryRepo := repository.NewCategoryRepository()
	clientRepo := repository.NewClientRepository()
	favoriteRepo := repository.NewFavoriteRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	auditLogRepo := repository.NewAuditLogRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	verificationService := service.NewVerificationService(log, redisClient, mailer, cfg.Verification.CodeTTL)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, companyRepo, clientRepo, verificationService, auditService, jwtService, redisClient)
	profileUsecase := usecase.NewProfileUsecase(db, log, userRepo, companyRepo, clientRepo)
	companyUsecase := usecase.NewCompanyUsecase(db, log, companyRepo, photoRepo, categoryRepo, clientRepo, favoriteRepo, imageStorage, auditService)
	clientUsecase := usecase.NewClientUsecase(db, log, clientRepo, imageStorage, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, companyRepo, clientRepo, auditService)
	favoriteUsecase := usecase.NewFavoriteUsecase(db, log, favoriteRepo, companyRepo, clientRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator)
	profileHandler := handler.NewProfileHandler(profileUsecase)
	companyHandler := handler.NewCompanyHandler(companyUsecase, customValidator, cfg.App.UploadMaxBytes)
	clientHandler := handler.NewClientHandler(clientUsecase, customValidator, cfg.App.UploadMaxBytes)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	favoriteHandler := handler.NewFavoriteHandler(favoriteUsecase, customValidator)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient)
	corsMiddleware := middleware.NewCORSMiddleware()
	recoverMiddleware := middleware.NewRecoverMiddleware(log)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)
	rateLimitMiddleware := middleware.NewRateLimitMiddleware(cfg.RateLimit)

	router := deliveryHttp.NewRouter(
		authHandler,
		profileHandler,
		companyHandler,
		clientHandler,
		appointmentHandler,
		favoriteHandler,
		authMiddleware,
		corsMiddleware,
		recoverMiddleware,
		loggingMiddleware,
		rateLimitMiddleware,
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			app.Log.Fatalf("Failed to start server: %v", err)
		}
	}()

	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.Server.Shutdown(ctx); err != nil {
		app.Log.Errorf("Server forced to shutdown: %v", err)
	}

	app.Close()

	app.Log.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
