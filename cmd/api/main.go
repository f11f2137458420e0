// @title Smoke-Free Tracker API
// @version 1.0
// @description Quit-smoking progress tracking: quit profile, daily check-ins, derived progress and newsletter signup.
// @BasePath /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"

	_ "github.com/comitanigiacomo/smokefree-tracker/docs"
	"github.com/comitanigiacomo/smokefree-tracker/internal/adapters/cache"
	adapterHTTP "github.com/comitanigiacomo/smokefree-tracker/internal/adapters/handler/http"
	"github.com/comitanigiacomo/smokefree-tracker/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/smokefree-tracker/internal/adapters/kit"
	"github.com/comitanigiacomo/smokefree-tracker/internal/adapters/repository"
	"github.com/comitanigiacomo/smokefree-tracker/internal/config"
	"github.com/comitanigiacomo/smokefree-tracker/internal/core/domain"
	"github.com/comitanigiacomo/smokefree-tracker/internal/core/services"
	"github.com/comitanigiacomo/smokefree-tracker/internal/core/workers"
	"github.com/comitanigiacomo/smokefree-tracker/internal/observability"
	"github.com/comitanigiacomo/smokefree-tracker/internal/platform/logger"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.LogMode, cfg.LogRedact)
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	if err := run(cfg, log); err != nil {
		log.Fatal("server exited", "error", err)
	}
}

type repositories struct {
	users       domain.UserRepository
	profiles    domain.QuitProfileRepository
	checkIns    domain.CheckInRepository
	subscribers domain.SubscriberRepository
}

func run(cfg *config.Config, log *logger.Logger) error {
	startTime := time.Now()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics, err := observability.NewMetrics(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("register metrics: %w", err)
	}

	db, repos, err := openStorage(ctx, cfg, log)
	if err != nil {
		return err
	}
	if db != nil {
		defer db.Close()
	}

	var rdb *redis.Client
	if cfg.RedisEnabled() {
		rdb, err = cache.NewRedisClient(ctx, cache.Options{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Warn("redis unavailable, running without cache and rate limiting", "error", err)
		} else {
			defer rdb.Close()
			repos.checkIns = repository.NewCachedCheckInRepository(repos.checkIns, rdb, log)
			log.Info("redis connected", "host", cfg.Redis.Host)
		}
	}

	var marketing workers.MarketingClient = workers.NoopMarketingClient{Log: log}
	if cfg.KitEnabled() {
		kitClient, err := kit.New(log.With("component", "kit"), kit.Config{
			APIKey:     cfg.Kit.APIKey,
			BaseURL:    cfg.Kit.BaseURL,
			Timeout:    cfg.Kit.Timeout,
			MaxRetries: cfg.Kit.MaxRetries,
		})
		if err != nil {
			return fmt.Errorf("kit client: %w", err)
		}
		marketing = kitClient
	} else {
		log.Info("KIT_API_KEY not set, newsletter sync disabled")
	}

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	syncWorker := workers.NewSubscriptionWorker(marketing, log, metrics, cfg.SubscriptionQueue, 0)
	syncWorker.Start(workerCtx)

	router := buildRouter(wiring{
		cfg:        cfg,
		log:        log,
		db:         db,
		redis:      rdb,
		repos:      repos,
		dispatcher: syncWorker,
		metrics:    metrics,
		gatherer:   prometheus.DefaultGatherer,
		startTime:  startTime,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("smoke-free tracker listening", "port", cfg.Port, "driver", cfg.DB.Driver)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return fmt.Errorf("listen: %w", err)
		}
	case <-ctx.Done():
		log.Info("stop signal received, shutting down")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("forced shutdown: %w", err)
	}

	stopWorker()
	select {
	case <-syncWorker.Done():
	case <-shutdownCtx.Done():
		log.Warn("subscription worker did not stop in time")
	}

	log.Info("server stopped gracefully")
	return nil
}

// openStorage returns a nil db for the in-memory driver.
func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) (*sqlx.DB, repositories, error) {
	if cfg.DB.Driver == config.DriverMemory {
		log.Warn("using in-memory storage, data is lost on restart")
		return nil, repositories{
			users:       repository.NewInMemoryUserRepository(),
			profiles:    repository.NewInMemoryQuitProfileRepository(),
			checkIns:    repository.NewInMemoryCheckInRepository(),
			subscribers: repository.NewInMemorySubscriberRepository(),
		}, nil
	}

	var (
		db  *sqlx.DB
		err error
	)
	switch cfg.DB.Driver {
	case config.DriverSQLite:
		log.Info("opening sqlite database", "path", cfg.DB.Path)
		db, err = repository.OpenSQLite(ctx, cfg.DB.Path)
	default:
		log.Info("connecting to postgres", "driver", cfg.DB.Driver, "host", cfg.DB.Host)
		db, err = repository.Open(ctx, cfg.DB.Driver, cfg.DB.PostgresDSN())
	}
	if err != nil {
		return nil, repositories{}, fmt.Errorf("open database: %w", err)
	}

	if err := repository.EnsureSchema(ctx, db); err != nil {
		_ = db.Close()
		return nil, repositories{}, fmt.Errorf("ensure schema: %w", err)
	}
	log.Info("database ready", "driver", cfg.DB.Driver)

	return db, repositories{
		users:       repository.NewSQLUserRepository(db),
		profiles:    repository.NewSQLQuitProfileRepository(db),
		checkIns:    repository.NewSQLCheckInRepository(db),
		subscribers: repository.NewSQLSubscriberRepository(db),
	}, nil
}

type wiring struct {
	cfg        *config.Config
	log        *logger.Logger
	db         *sqlx.DB
	redis      *redis.Client
	repos      repositories
	dispatcher services.SubscriptionDispatcher
	metrics    *observability.Metrics
	gatherer   prometheus.Gatherer
	startTime  time.Time
}

func buildRouter(w wiring) *gin.Engine {
	cfg, log, repos := w.cfg, w.log, w.repos

	tokens := services.NewTokenService(cfg.Auth.JWTSecret, cfg.Auth.Issuer, cfg.Auth.TokenTTL, repos.users)
	authService := services.NewAuthService(repos.users, tokens)
	profileService := services.NewProfileService(repos.profiles)
	checkInService := services.NewCheckInService(repos.checkIns)
	progressService := services.NewProgressService(repos.profiles, repos.checkIns, cfg.ProgressWindowDays, w.metrics)
	subscriptionService := services.NewSubscriptionService(repos.subscribers, w.dispatcher)

	secureCookies := !cfg.IsDevelopment()

	var resolver middleware.IdentityResolver
	switch cfg.GuestMode {
	case config.GuestModeDemo:
		resolver = middleware.DemoResolver{UserID: services.DemoUserID}
	default:
		resolver = middleware.NewPersistedGuestResolver(authService, secureCookies)
	}
	log.Info("guest identity policy", "mode", cfg.GuestMode)

	return adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		AuthHandler:         adapterHTTP.NewAuthHandler(authService, tokens.TTL(), secureCookies, log),
		ProfileHandler:      adapterHTTP.NewProfileHandler(profileService, log),
		CheckInHandler:      adapterHTTP.NewCheckInHandler(checkInService, log),
		ProgressHandler:     adapterHTTP.NewProgressHandler(progressService, log),
		SubscriptionHandler: adapterHTTP.NewSubscriptionHandler(subscriptionService, authService, log),
		Tokens:              tokens,
		Resolver:            resolver,
		DB:                  w.db,
		Redis:               w.redis,
		Metrics:             w.metrics,
		Gatherer:            w.gatherer,
		Log:                 log,
		AllowedOrigins:      cfg.CORSAllowedOrigins,
		RateLimitPerMinute:  cfg.RateLimitPerMinute,
		RequestLogging:      cfg.IsDevelopment() && cfg.Env != "test",
		StartTime:           w.startTime,
	})
}
