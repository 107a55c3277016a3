package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/supervision/internal/app/controllers"
	appMigrations "github.com/yigit/supervision/internal/app/migrations"
	appRepos "github.com/yigit/supervision/internal/app/repositories"
	appRoutes "github.com/yigit/supervision/internal/app/routes"
	appServices "github.com/yigit/supervision/internal/app/services"
	"github.com/yigit/supervision/internal/config"
	"github.com/yigit/supervision/internal/db"
	appMiddleware "github.com/yigit/supervision/internal/middleware"
	pkgAuth "github.com/yigit/supervision/internal/pkg/auth"
	"github.com/yigit/supervision/internal/pkg/logger"
	"github.com/yigit/supervision/internal/pkg/metrics"
	"github.com/yigit/supervision/internal/seed"
)

// DefaultConfigPath is where the YAML configuration is read from
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	SessionService    *appServices.SessionService
	AssignmentService *appServices.AssignmentService
	ZoneService       *appServices.ZoneService
	WorkloadService   *appServices.WorkloadService
	SupervisorService *appServices.SupervisorService
	VisitService      *appServices.VisitService
	PresenceService   *appServices.PresenceService
	Controllers       appRoutes.Controllers
	AuthMiddleware    *appMiddleware.AuthMiddleware
	Repos             *appRepos.Repositories
	JWTService        *pkgAuth.JWTService
	Logger            zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	logger.Configure(logger.Config{
		Level:   logLevel,
		Pretty:  strings.ToLower(cfg.Logging.Format) == "text",
		Service: "supervision",
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	if overrides := cfg.EnvOverrides(); len(overrides) > 0 {
		lgr.Debug().Strs("variables", overrides).Msg("Configuration overridden from environment")
	}
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection, applies migrations and seeds default data.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	start := time.Now()
	database, err := db.NewPostgresDB(ctx, cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	metrics.ObserveDBPing(time.Since(start))
	dbPool := database.Pool
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	if err := appMigrations.NewMigrator(dbPool).Up(ctx); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	repos := appRepos.NewRepositories(dbPool)
	if err := seed.CreateDefaultData(ctx, seed.StoreFrom(repos), cfg.Seed, lgr); err != nil {
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) *Dependencies {
	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(dbPool)
	r := deps.Repos

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.Auth.Secret,
		TokenTTL:    cfg.TokenTTL(),
		TokenIssuer: cfg.Auth.Issuer,
	})

	deps.SessionService = appServices.NewSessionService(
		r.UserRepository,
		r.AppCredentialRepository,
		r.TokenRepository,
		deps.JWTService,
		logger.Component("session"),
	)
	txManager := appRepos.NewTxManager(dbPool)
	deps.AssignmentService = appServices.NewAssignmentService(
		txManager,
		cfg.Assignment.BatchSize,
		logger.Component("assignment"),
	)
	deps.ZoneService = appServices.NewZoneService(r.ZoneRepository, r.AreaRepository, r.SupervisorRepository)
	deps.WorkloadService = appServices.NewWorkloadService(
		r.SupervisorRepository,
		r.StudentRepository,
		r.InternshipRepository,
		r.SupervisionRepository,
		logger.Component("workload"),
	)
	deps.SupervisorService = appServices.NewSupervisorService(
		txManager,
		r.SupervisorRepository,
		r.UserRepository,
		logger.Component("supervisor"),
	)
	deps.VisitService = appServices.NewVisitService(
		r.SupervisorRepository,
		r.InternshipRepository,
		r.SupervisionRepository,
		logger.Component("visit"),
	)
	deps.PresenceService = appServices.NewPresenceService(
		r.StudentRepository,
		r.InternshipRepository,
		cfg.Presence.MaxMeters,
		logger.Component("presence"),
	)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.SessionService)

	deps.Controllers = appRoutes.Controllers{
		Auth:       appControllers.NewAuthController(deps.SessionService, lgr),
		Zone:       appControllers.NewZoneController(deps.AssignmentService, deps.ZoneService, lgr),
		Supervisor: appControllers.NewSupervisorController(deps.WorkloadService, lgr),
		Profile:    appControllers.NewProfileController(deps.SupervisorService, lgr),
		Visit:      appControllers.NewVisitController(deps.VisitService, deps.SupervisorService, lgr),
		Presence:   appControllers.NewPresenceController(deps.PresenceService, lgr),
	}

	return deps
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, dbPool *pgxpool.Pool, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestID(), appMiddleware.RequestLogger())
	if cfg.Metrics.Enabled {
		router.Use(appMiddleware.Metrics())
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	router.GET("/api/v1/health", healthHandler(dbPool))

	return router
}

// healthHandler reports whether the database answers a ping
func healthHandler(dbPool *pgxpool.Pool) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		start := time.Now()
		if err := dbPool.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "database": err.Error()})
			return
		}
		metrics.ObserveDBPing(time.Since(start))
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
