package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"health-connect-api/config"
	deliveryHttp "health-connect-api/internal/delivery/http"
	"health-connect-api/internal/delivery/http/handler"
	"health-connect-api/internal/delivery/http/middleware"
	"health-connect-api/internal/infrastructure/cache"
	"health-connect-api/internal/infrastructure/database"
	"health-connect-api/internal/repository"
	"health-connect-api/internal/service"
	"health-connect-api/internal/usecase"
	"health-connect-api/pkg/validator"

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
}

// New creates a new App instance with all dependencies initialized
func New() (*App, error) {
	app := &App{}

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	app.Config = cfg

	// Setup logger
	SetupLogger(cfg.App.LogLevel)
	logrus.Info("Configuration loaded successfully")

	// Apply migrations before serving when asked to
	if cfg.DB.AutoMigrate {
		if err := database.MigrateUp(cfg.DB); err != nil {
			return nil, err
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.Env)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	logrus.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(context.Background(), cfg.Redis)
	if err != nil {
		app.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	logrus.Info("Redis connected successfully")

	// Initialize all layers
	app.Server = initializeServer(cfg, db, redisClient)

	return app, nil
}

// SetupLogger configures the logrus logger. Unknown levels fall back to info.
func SetupLogger(level string) {
	logrus.SetFormatter(&logrus.JSONFormatter{})
	logrus.SetOutput(os.Stdout)

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	logrus.SetLevel(lvl)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) *http.Server {
	// Initialize validator
	customValidator := validator.NewValidator()

	// Initialize logger
	log := logrus.StandardLogger()

	// Initialize repositories
	transactor := database.NewTransactor(db)
	userRepo := repository.NewUserRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	authTokenRepo := repository.NewAuthTokenRepository()

	// Initialize services
	tokenService := service.NewTokenService(transactor, log, authTokenRepo, redisClient, cfg.Auth.TokenCacheTTL)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(transactor, log, customValidator, userRepo, patientProfileRepo, doctorProfileRepo, tokenService, cfg.Auth.BcryptCost)
	userUsecase := usecase.NewUserUsecase(transactor, log, userRepo)
	patientProfileUsecase := usecase.NewPatientProfileUsecase(transactor, log, customValidator, patientProfileRepo)
	doctorProfileUsecase := usecase.NewDoctorProfileUsecase(transactor, log, customValidator, doctorProfileRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase)
	userHandler := handler.NewUserHandler(userUsecase)
	patientHandler := handler.NewPatientHandler(authUsecase, patientProfileUsecase)
	doctorHandler := handler.NewDoctorHandler(authUsecase, doctorProfileUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(transactor, log, tokenService, userRepo)
	corsMiddleware := middleware.NewCORSMiddleware(cfg.App.CORSOrigins)
	mediaMiddleware := middleware.NewMediaMiddleware(cfg.App.MediaURL)
	loggingMiddleware := middleware.NewLoggingMiddleware(log)

	// Initialize router
	router := deliveryHttp.NewRouter(
		authHandler,
		userHandler,
		patientHandler,
		doctorHandler,
		authMiddleware,
		corsMiddleware,
		mediaMiddleware,
		loggingMiddleware,
	)

	// Create server
	serverAddr := fmt.Sprintf(":%s", cfg.App.Port)
	return &http.Server{
		Addr:              serverAddr,
		Handler:           router.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

// Run starts the HTTP server and handles graceful shutdown
func (app *App) Run() {
	// Start server in goroutine
	go func() {
		logrus.Infof("Server starting on port %s", app.Config.App.Port)
		logrus.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	app.waitForShutdown()
}

// waitForShutdown blocks until an interrupt signal is received
func (app *App) waitForShutdown() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")

	// Create shutdown context with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Shutdown HTTP server gracefully
	if err := app.Server.Shutdown(ctx); err != nil {
		logrus.Errorf("Server forced to shutdown: %v", err)
	}

	// Close connections
	app.Close()

	logrus.Info("Server shutdown complete")
}

// Close closes all connections (database, redis, etc.)
func (app *App) Close() {
	// Close database connection
	if app.DB != nil {
		sqlDB, err := app.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}

	// Close Redis connection
	if app.RedisClient != nil {
		app.RedisClient.Close()
	}
}
