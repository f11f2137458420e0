package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/comitanigiacomo/smokefree-tracker/internal/adapters/handler/http/middleware"
	"github.com/comitanigiacomo/smokefree-tracker/internal/observability"
	"github.com/comitanigiacomo/smokefree-tracker/internal/platform/logger"
)

const healthTimeout = 2 * time.Second

type RouterDependencies struct {
	AuthHandler         *AuthHandler
	ProfileHandler      *ProfileHandler
	CheckInHandler      *CheckInHandler
	ProgressHandler     *ProgressHandler
	SubscriptionHandler *SubscriptionHandler

	Tokens   middleware.TokenValidator
	Resolver middleware.IdentityResolver

	// DB is nil when running on in-memory storage.
	DB    *sqlx.DB
	Redis *redis.Client

	Metrics  *observability.Metrics
	Gatherer prometheus.Gatherer
	Log      *logger.Logger

	AllowedOrigins     []string
	RateLimitPerMinute int
	RequestLogging     bool
	StartTime          time.Time
}

func NewRouter(deps RouterDependencies) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if deps.RequestLogging {
		router.Use(gin.Logger())
	}

	router.Use(cors.New(corsConfig(deps.AllowedOrigins)))

	if deps.Metrics != nil {
		router.Use(middleware.Metrics(deps.Metrics))
	}

	if deps.Redis != nil && deps.RateLimitPerMinute > 0 {
		router.Use(middleware.RateLimiterMiddleware(deps.Redis, deps.RateLimitPerMinute, time.Minute, deps.Log))
	}

	router.GET("/health", healthHandler(deps))

	gatherer := deps.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	router.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	apiV1 := router.Group("/api/v1")
	apiV1.Use(middleware.Authenticate(deps.Tokens))

	deps.AuthHandler.RegisterRoutes(apiV1)
	deps.SubscriptionHandler.RegisterRoutes(apiV1)

	tracked := apiV1.Group("")
	tracked.Use(middleware.ResolveIdentity(deps.Resolver, deps.Log), middleware.RequireIdentity())
	{
		deps.ProfileHandler.RegisterRoutes(tracked)
		deps.CheckInHandler.RegisterRoutes(tracked)
		deps.ProgressHandler.RegisterRoutes(tracked)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"X-RateLimit-Limit", "X-RateLimit-Remaining", "Retry-After"},
		MaxAge:        12 * time.Hour,
	}

	wildcard := len(origins) == 0
	for _, o := range origins {
		if o == "*" {
			wildcard = true
		}
	}
	if wildcard {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cfg
}

func healthHandler(deps RouterDependencies) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), healthTimeout)
		defer cancel()

		dbStatus := "memory"
		if deps.DB != nil {
			dbStatus = "connected"
			if err := deps.DB.PingContext(ctx); err != nil {
				dbStatus = "unreachable"
			}
		}

		redisStatus := "disabled"
		if deps.Redis != nil {
			redisStatus = "connected"
			if err := deps.Redis.Ping(ctx).Err(); err != nil {
				redisStatus = "unreachable"
			}
		}

		status, code := "ok", http.StatusOK
		if dbStatus == "unreachable" {
			status, code = "error", http.StatusServiceUnavailable
		}

		c.JSON(code, gin.H{
			"status":   status,
			"database": dbStatus,
			"redis":    redisStatus,
			"uptime":   time.Since(deps.StartTime).Round(time.Second).String(),
		})
	}
}
