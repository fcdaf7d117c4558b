package http

import (
	"context"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/moneyseed/moneyseed/internal/auth"
	"github.com/moneyseed/moneyseed/internal/cache"
	"github.com/moneyseed/moneyseed/internal/config"
	"github.com/moneyseed/moneyseed/internal/http/handlers"
	"github.com/moneyseed/moneyseed/internal/http/middlewares"
	"github.com/moneyseed/moneyseed/internal/observability"
	"github.com/moneyseed/moneyseed/internal/repo/postgres"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // 1 MiB

func NewRouter(log *slog.Logger, pool *pgxpool.Pool, redisClient *redis.Client, cfg config.Config) *gin.Engine {
	if cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	reg := prometheus.NewRegistry()
	prom := observability.NewProm(reg)

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(cfg.AllowedOrigins))
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))
	r.Use(middlewares.RequireJSON())
	r.Use(prom.GinHandleMiddleware())
	r.Use(otelgin.Middleware("moneyseed-api"))

	// health

	ping := func() error {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
		defer cancel()

		if pool != nil {
			if err := pool.Ping(ctx); err != nil {
				return err
			}
		}

		return cache.Ping(ctx, redisClient)
	}

	h := handlers.NewHealthHandler(ping)
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})))

	// wire up the auth flow

	usersRepo := postgres.NewInstrumentedUsers(postgres.NewUsersRepo(pool), prom)
	userCache := cache.NewUsers(redisClient, time.Minute)
	jwtManager := auth.NewManager(cfg.JWTSecret, cfg.AccessTTL())

	authHandler := handlers.NewAuthHandler(usersRepo, jwtManager)
	authMiddleware := middlewares.NewAuthMiddleware(jwtManager, usersRepo, userCache)

	authGroup := r.Group("/auth")
	authGroup.POST("/register", authHandler.Register)
	authGroup.POST("/login", authHandler.Login)
	authGroup.GET("/me", authMiddleware.RequireAuth(), authHandler.Me)

	return r
}
