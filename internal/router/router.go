package router

import (
	"fmt"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/P3chys/scholarshub-api/internal/config"
	"github.com/P3chys/scholarshub-api/internal/handlers"
	"github.com/P3chys/scholarshub-api/internal/logger"
	"github.com/P3chys/scholarshub-api/internal/middleware"
	"github.com/P3chys/scholarshub-api/internal/services"
)

// Dependencies are built by the caller. DB and Redis are nil when the
// in-memory implementations are in use.
type Dependencies struct {
	Accounts   *services.AccountService
	Sessions   *services.SessionService
	Browse     *services.BrowseService
	Resources  *services.ResourceService
	Moderation *services.ModerationService
	Limiter    *middleware.RateLimiter
	DB         *gorm.DB
	Redis      *redis.Client
	Logger     *zap.Logger
}

const (
	authRateLimit  = 10
	authRateWindow = time.Minute
)

// Setup builds the engine. Only proxies listed in cfg.TrustedProxies may set
// the client IP that per-IP rate limits key on.
func Setup(cfg *config.Config, deps Dependencies) (*gin.Engine, error) {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	r := gin.New()
	if err := r.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	r.Use(gin.Recovery(), logger.GinMiddleware(deps.Logger))

	// CORS middleware, skipped when no origin is allowed
	if len(cfg.CORSOrigins) > 0 {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.CORSOrigins,
			AllowMethods:     []string{"GET", "POST", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
			ExposeHeaders:    []string{"Content-Length", "Retry-After", "X-RateLimit-Limit", "X-RateLimit-Remaining"},
			AllowCredentials: true,
		}))
	}

	health := handlers.HealthCheck(deps.DB, deps.Redis)
	r.GET("/health", health)

	// API v1 routes
	api := r.Group("/api/v1")
	{
		api.GET("/health", health)

		// Public routes
		auth := api.Group("/auth")
		{
			throttle := deps.Limiter.RateLimitByIP(authRateLimit, authRateWindow)
			auth.POST("/register", throttle, handlers.Register(deps.Accounts, deps.Sessions))
			auth.POST("/login", throttle, handlers.Login(deps.Sessions))
			auth.POST("/refresh", handlers.Refresh(deps.Sessions))
		}

		catalog := api.Group("/catalog")
		{
			catalog.GET("/departments", handlers.ListDepartments(deps.Browse))
			catalog.GET("/years/:year/semesters", handlers.ListSemestersForYear())
			catalog.GET("/years/:year/departments", handlers.ListDepartmentsForYear(deps.Browse))
			catalog.GET("/years/:year/departments/:dept/subjects", handlers.ListSubjectsForYear(deps.Browse))
			catalog.GET("/departments/:dept/semesters/:sem/subjects", handlers.ListSubjectsForSemester(deps.Browse))
			catalog.GET("/subjects/:id", handlers.GetSubject(deps.Browse))
		}

		// Browsing is public; a valid token lets admins see unpublished resources
		browse := api.Group("")
		browse.Use(middleware.OptionalAuth(deps.Sessions))
		{
			browse.GET("/subjects/:id/resources", handlers.ListSubjectResources(deps.Browse))
			browse.GET("/resources/recent", handlers.ListRecentResources(deps.Browse))
			browse.GET("/resources/:id", handlers.GetResource(deps.Browse))
			browse.POST("/resources/:id/download", handlers.DownloadResource(deps.Browse))
		}

		// Protected routes
		protected := api.Group("")
		protected.Use(middleware.AuthRequired(deps.Sessions))
		{
			protected.GET("/auth/me", handlers.GetCurrentUser(deps.Accounts))
			protected.POST("/auth/logout", handlers.Logout(deps.Sessions))

			protected.POST("/resources",
				deps.Limiter.RateLimitByUser(cfg.UploadRateLimit, cfg.UploadRateWindow),
				handlers.SubmitResource(deps.Resources),
			)
		}

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AuthRequired(deps.Sessions), middleware.AdminRequired())
		{
			admin.GET("/resources/pending", handlers.ListPendingResources(deps.Moderation))
			admin.GET("/resources/history", handlers.ListModerationHistory(deps.Moderation))
			admin.GET("/summary", handlers.GetModerationSummary(deps.Moderation))
			admin.POST("/resources/:id/approve", handlers.ApproveResource(deps.Moderation))
			admin.POST("/resources/:id/reject", handlers.RejectResource(deps.Moderation))
		}
	}

	return r, nil
}
