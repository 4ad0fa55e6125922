package router

import (
	"context"
	"time"

	"moviesbackend/internal/config"
	"moviesbackend/internal/handler"
	"moviesbackend/internal/middleware"
	"moviesbackend/internal/repository"
	"moviesbackend/internal/service"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
// ctx bounds the rate limiters' background sweeps.
func New(ctx context.Context, cfg *config.Config, db *gorm.DB, rdb *redis.Client) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(ctx, 1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	genreRepo := repository.NewGenreRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(cfg)
	genreSvc := service.NewGenreService(genreRepo, rdb)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	genresH := handler.NewGenresHandler(genreSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(ctx), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Genre catalog reads — no auth required (frontends browse without login)
	r.GET("/v1/genres", genresH.List)
	r.GET("/v1/genres/:id", genresH.GetByID)

	// Genre catalog writes — admin only
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	genres := r.Group("/v1/genres", jwtMW, middleware.RequireRole("admin"))
	{
		genres.POST("", genresH.Create)
		genres.PUT("/:id", genresH.Update)
		genres.DELETE("/:id", genresH.Delete)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
