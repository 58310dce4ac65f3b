package v1

import (
	"net/http"

	"clepsydra-backend/config"
	"clepsydra-backend/internal/delivery/http/middleware"
	"clepsydra-backend/internal/delivery/http/response"
	"clepsydra-backend/internal/domain"
	"clepsydra-backend/internal/usecase"
	"clepsydra-backend/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC   domain.ContactUsecase
	HealthUC    usecase.HealthUsecase
	RateLimiter *middleware.RateLimiter
	Config      *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	r := gin.New()

	origins := append([]string{cfg.FrontendURL}, cfg.CORSOrigins...)

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(middleware.CORSConfig{
		AllowedOrigins: origins,
		AllowLocalhost: !cfg.IsProduction(),
	})) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(cfg.IsProduction()))
	r.Use(middleware.Metrics())
	r.Use(middleware.ErrorHandler())

	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	limit := func(c *gin.Context) { c.Next() }
	if deps.RateLimiter != nil {
		limit = deps.RateLimiter.Middleware()
	}

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		status, healthy := deps.HealthUC.Check(c.Request.Context())
		if !healthy {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	// Public routes
	contact := NewContactHandler(v1, deps.ContactUC, limit)

	// Path used by the existing landing page
	r.POST("/api/contact", limit, contact.SubmitContact)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Admin routes, only when a signing secret is configured
	if cfg.AdminJWTSecret != "" {
		admin := v1.Group("/admin")
		admin.Use(middleware.AdminAuth(cfg.AdminJWTSecret))
		NewAdminContactHandler(admin, deps.ContactUC)
	} else {
		logger.Log.Warn("ADMIN_JWT_SECRET not set - admin submission API disabled")
	}

	return r
}
