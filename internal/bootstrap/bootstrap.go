package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/campusauth/internal/app/controllers"
	appMigrations "github.com/yigit/campusauth/internal/app/migrations"
	appRepos "github.com/yigit/campusauth/internal/app/repositories"
	"github.com/yigit/campusauth/internal/app/repositories/cache"
	"github.com/yigit/campusauth/internal/app/repositories/memory"
	appRoutes "github.com/yigit/campusauth/internal/app/routes"
	appServices "github.com/yigit/campusauth/internal/app/services"
	"github.com/yigit/campusauth/internal/config"
	"github.com/yigit/campusauth/internal/db"
	appMiddleware "github.com/yigit/campusauth/internal/middleware"
	pkgAuth "github.com/yigit/campusauth/internal/pkg/auth"
	"github.com/yigit/campusauth/internal/pkg/helpers"
	"github.com/yigit/campusauth/internal/pkg/logger"
	"github.com/yigit/campusauth/internal/pkg/metrics"
	"github.com/yigit/campusauth/internal/seed"
)

// ConfigPathEnv overrides the default config file location
const ConfigPathEnv = "CONFIG_PATH"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Store             appRepos.UserStore
	Services          *appServices.Services
	Metrics           *metrics.Metrics
	Registry          *prometheus.Registry
	AuthController    *appControllers.AuthController
	AccountController *appControllers.AccountController
	Logger            zerolog.Logger

	closers []func()
}

// AddCloser registers functions run by Close
func (d *Dependencies) AddCloser(closers ...func()) {
	d.closers = append(d.closers, closers...)
}

// Close releases the store and cache connections in reverse order
func (d *Dependencies) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		d.closers[i]()
	}
	d.closers = nil
}

// ConfigPath returns the config file location, honouring CONFIG_PATH
func ConfigPath() string {
	if path, ok := os.LookupEnv(ConfigPathEnv); ok && path != "" {
		return path
	}
	return filepath.Join("configs", "config.yaml")
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logCfg := logger.ConfigFrom(cfg.Logging.Level, cfg.Logging.Format)
	logCfg.Service = "campusauth"
	lgr := logger.Configure(logCfg)

	lgr.Info().Str("logLevel", string(logCfg.Level)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupStore opens the configured account store, applies migrations and
// wraps it in the Redis cache when enabled. The returned closers release
// every connection that was opened.
func SetupStore(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (appRepos.UserStore, []func(), error) {
	var (
		store   appRepos.UserStore
		closers []func()
	)

	switch cfg.Database.Driver {
	case config.DriverMemory:
		lgr.Warn().Msg("Using in-memory account store; data is lost on restart")
		store = memory.NewStore()

	case config.DriverPostgres:
		lgr.Info().Msg("Establishing database connection...")
		database, err := db.NewPostgresDB(ctx, cfg, lgr)
		if err != nil {
			lgr.Error().Err(err).Msg("Failed to connect to database")
			return nil, nil, err
		}
		closers = append(closers, database.Close)
		lgr.Info().Msg("Database connection successfully established.")

		if cfg.Database.AutoMigrate {
			migrator, err := appMigrations.NewMigrator(cfg.GetPostgresConnectionString(), lgr)
			if err == nil {
				err = migrator.Up(ctx)
			}
			if err != nil {
				database.Close()
				lgr.Error().Err(err).Msg("Database migration error")
				return nil, nil, fmt.Errorf("database migrations failed: %w", err)
			}
		}
		store = appRepos.NewUserRepository(database.Pool)

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	if cfg.Redis.Enabled {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
		err := client.Ping(pingCtx).Err()
		cancel()
		if err != nil {
			// The cache is optional; lookups go to the store directly.
			lgr.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis unavailable, account cache disabled")
			_ = client.Close()
		} else {
			ttl := helpers.ParseDuration(cfg.Redis.CacheTTL, cache.DefaultTTL)
			store = cache.NewCachedUserStore(store, client, ttl)
			closers = append(closers, func() { _ = client.Close() })
			lgr.Info().Str("addr", cfg.Redis.Addr).Dur("ttl", ttl).Msg("Account cache enabled")
		}
	}

	return store, closers, nil
}

// NewMetricsRegistry returns a registry carrying the runtime collectors
func NewMetricsRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// BuildDependencies initializes services and controllers on top of store.
func BuildDependencies(cfg *config.Config, store appRepos.UserStore, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Store: store, Logger: lgr}

	hasher, err := pkgAuth.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize password hasher: %w", err)
	}

	if cfg.Metrics.Enabled {
		deps.Registry = NewMetricsRegistry()
		deps.Metrics = metrics.New(deps.Registry)
	}

	deps.Services = appServices.NewServices(store, hasher, deps.Metrics, appServices.AuthOptions{
		RequireActive: cfg.Auth.RequireActiveAccount,
	})

	deps.AuthController = appControllers.NewAuthController(deps.Services.Registration, deps.Services.Auth, lgr)
	deps.AccountController = appControllers.NewAccountController(deps.Services.Account, lgr)

	return deps, nil
}

// SeedDefaultAdmin creates the configured administrator if it is missing
func SeedDefaultAdmin(ctx context.Context, cfg *config.Config, deps *Dependencies) error {
	if !cfg.SeedAdminEnabled() {
		return nil
	}
	_, err := seed.EnsureAdmin(ctx, deps.Services.Registration, deps.Store, seed.AdminAccount{
		Name:     cfg.Seed.AdminName,
		Email:    cfg.Seed.AdminEmail,
		Password: cfg.Seed.AdminPassword,
	}, deps.Logger)
	return err
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		deps.Logger.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		deps.Logger.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(appMiddleware.RequestID(), appMiddleware.RequestLogger())
	// Outside Recovery so recovered panics are counted as 500s
	if deps.Metrics != nil {
		router.Use(appMiddleware.Metrics(deps.Metrics))
	}
	router.Use(appMiddleware.Recovery())

	var gatherer prometheus.Gatherer
	if deps.Registry != nil {
		gatherer = deps.Registry
	}
	appRoutes.SetupRouter(router, deps.AuthController, deps.AccountController, gatherer)

	return router
}
