package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"healthcare-portal/config"
	deliveryHttp "healthcare-portal/internal/delivery/http"
	"healthcare-portal/internal/delivery/http/handler"
	"healthcare-portal/internal/delivery/http/middleware"
	"healthcare-portal/internal/infrastructure/cache"
	"healthcare-portal/internal/infrastructure/database"
	"healthcare-portal/internal/repository"
	"healthcare-portal/internal/service"
	"healthcare-portal/internal/usecase"
	"healthcare-portal/pkg/jwt"
	"healthcare-portal/pkg/validator"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

// App holds all dependencies for the application
type App struct {
	Config      *config.Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	Server      *http.Server
}

// NewLogger configures the shared logrus logger from config.
func NewLogger(cfg config.AppConfig) *logrus.Logger {
	log := logrus.StandardLogger()
	log.SetFormatter(&logrus.JSONFormatter{})
	log.SetOutput(os.Stdout)

	level, err := logrus.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warnf("Unknown log level %q, falling back to info", cfg.LogLevel)
		level = logrus.InfoLevel
	}
	log.SetLevel(level)
	return log
}

// New creates a new App instance with all dependencies initialized
func New(cfg *config.Config) (*App, error) {
	app := &App{Config: cfg}
	app.Log = NewLogger(cfg.App)

	if cfg.DB.AutoMigrate {
		if err := Migrate(cfg, app.Log, func(m *database.Migrator) error { return m.Up() }); err != nil {
			return nil, err
		}
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg.DB, cfg.App.IsProduction())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = db
	app.Log.Info("Database connected successfully")

	// Initialize Redis
	redisClient, err := cache.NewRedisClient(cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}
	app.RedisClient = redisClient
	app.Log.Info("Redis connected successfully")

	app.Server = initializeServer(cfg, app.Log, db, redisClient)

	return app, nil
}

// Migrate opens the embedded migrations and runs fn against them.
func Migrate(cfg *config.Config, log *logrus.Logger, fn func(*database.Migrator) error) error {
	migrator, err := database.NewMigrator(cfg.DB, log)
	if err != nil {
		return err
	}
	defer migrator.Close()
	return fn(migrator)
}

// initializeServer creates and configures the HTTP server
func initializeServer(cfg *config.Config, log *logrus.Logger, db *gorm.DB, redisClient *redis.Client) *http.Server {
	jwtService := jwt.NewJWTService(cfg.JWT)
	customValidator := validator.NewValidator()

	// Initialize repositories
	userRepo := repository.NewUserRepository()
	roleRepo := repository.NewRoleRepository()
	doctorProfileRepo := repository.NewDoctorProfileRepository()
	patientProfileRepo := repository.NewPatientProfileRepository()
	doctorScheduleRepo := repository.NewDoctorScheduleRepository()
	appointmentRepo := repository.NewAppointmentRepository()
	providerRepo := repository.NewProviderRepository()
	auditLogRepo := repository.NewAuditLogRepository()
	medicalRecordRepo := repository.NewMedicalRecordRepository()

	// Initialize services
	auditService := service.NewAuditService(log, auditLogRepo)
	slotCalculator := service.NewSlotCalculator(log, doctorProfileRepo, doctorScheduleRepo, appointmentRepo)
	conflictGuard := service.NewConflictGuard(appointmentRepo)
	slotLocker := service.NewSlotLockService(redisClient, log, cfg.Booking.SlotLockTTL)
	notifier := service.NewNotificationService(redisClient, log, cfg.Booking.NotifyChannel)

	// Initialize usecases
	authUsecase := usecase.NewAuthUsecase(db, log, userRepo, roleRepo, doctorProfileRepo, patientProfileRepo, jwtService, redisClient, auditService)
	userUsecase := usecase.NewUserUsecase(db, log, userRepo, redisClient, auditService)
	doctorProfileUsecase := usecase.NewDoctorProfileUsecase(db, log, userRepo, doctorProfileRepo, doctorScheduleRepo, auditService)
	patientProfileUsecase := usecase.NewPatientProfileUsecase(db, log, userRepo, patientProfileRepo, medicalRecordRepo, auditService)
	doctorScheduleUsecase := usecase.NewDoctorScheduleUsecase(db, log, doctorScheduleRepo, doctorProfileRepo, auditService)
	appointmentUsecase := usecase.NewAppointmentUsecase(db, log, appointmentRepo, doctorProfileRepo, providerRepo,
		slotCalculator, conflictGuard, slotLocker, notifier, auditService)
	providerUsecase := usecase.NewProviderUsecase(db, log, providerRepo, auditService)
	auditLogUsecase := usecase.NewAuditLogUsecase(db, log, auditLogRepo)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUsecase, customValidator, jwtService)
	userHandler := handler.NewUserHandler(userUsecase, customValidator)
	doctorHandler := handler.NewDoctorHandler(doctorProfileUsecase, customValidator)
	patientHandler := handler.NewPatientHandler(patientProfileUsecase, customValidator)
	doctorScheduleHandler := handler.NewDoctorScheduleHandler(doctorScheduleUsecase, customValidator)
	appointmentHandler := handler.NewAppointmentHandler(appointmentUsecase, customValidator)
	providerHandler := handler.NewProviderHandler(providerUsecase, customValidator)
	auditLogHandler := handler.NewAuditLogHandler(auditLogUsecase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(jwtService, redisClient, log)
	corsMiddleware := middleware.NewCORSMiddleware()
	loggerMiddleware := middleware.NewLoggerMiddleware(log)
	recoveryMiddleware := middleware.NewRecoveryMiddleware(log)

	healthChecks := map[string]deliveryHttp.HealthCheck{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
		"redis": func(ctx context.Context) error {
			return redisClient.Ping(ctx).Err()
		},
	}

	router := deliveryHttp.NewRouter(
		authHandler, doctorHandler, doctorScheduleHandler, patientHandler,
		appointmentHandler, providerHandler, auditLogHandler, userHandler,
		authMiddleware, corsMiddleware, loggerMiddleware, recoveryMiddleware,
		cfg.App.RequestTimeout, healthChecks,
	)

	return &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.App.Port),
		Handler:           router.Setup(),
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// Run starts the HTTP server and blocks until SIGINT/SIGTERM.
func (app *App) Run() error {
	serverErr := make(chan error, 1)
	go func() {
		app.Log.Infof("Server starting on port %s", app.Config.App.Port)
		app.Log.Infof("Environment: %s", app.Config.App.Env)
		if err := app.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		app.close()
		return fmt.Errorf("server failed: %w", err)
	case <-quit:
	}

	app.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := app.Server.Shutdown(ctx)
	app.close()
	if err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	app.Log.Info("Server exited gracefully")
	return nil
}

func (app *App) close() {
	if sqlDB, err := app.DB.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			app.Log.Warnf("Failed to close database: %+v", err)
		}
	}
	if err := app.RedisClient.Close(); err != nil {
		app.Log.Warnf("Failed to close Redis: %+v", err)
	}
}
