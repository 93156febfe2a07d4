package v1

import (
	"net/http"
	"time"

	"portfolio-backend/config"
	"portfolio-backend/internal/delivery/http/middleware"
	"portfolio-backend/internal/delivery/http/response"
	"portfolio-backend/internal/delivery/http/web"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/auth"
	"portfolio-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	ContactUC   domain.ContactUsecase
	PortfolioUC domain.PortfolioUsecase
	HealthUC    usecase.HealthUsecase
	Sessions    *auth.SessionManager
	Config      *config.Config
}

func NewRouter(deps RouterDeps) (*gin.Engine, error) {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		validation.RegisterValidators(v)
	}

	r := gin.New()

	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}
	r.SetHTMLTemplate(tmpl)

	window := time.Duration(deps.Config.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL, deps.Config.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.RequestID())
	r.Use(middleware.SecurityHeadersMiddleware(deps.Config.IsProduction()))
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(deps.Config.RateLimitGlobalThreshold, window)))
	r.Use(middleware.ErrorHandler())

	r.StaticFS("/static", web.Static())

	// Everything below needs to know which page session it serves
	site := r.Group("")
	site.Use(middleware.SessionMiddleware(deps.Sessions, deps.Config.IsProduction()))

	NewPageHandler(site, deps.PortfolioUC, deps.ContactUC)

	v1 := site.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", deps.HealthUC.Check(c.Request.Context()))
	})

	contactLimiter := middleware.RateLimitMiddleware(middleware.ContactRateLimitConfig(deps.Config.RateLimitContactThreshold, window))
	NewContactHandler(v1, deps.ContactUC, contactLimiter)
	NewPortfolioHandler(v1, deps.PortfolioUC)

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r, nil
}

// NewMetricsRouter serves Prometheus metrics on the separate METRICS_ADDR listener
func NewMetricsRouter() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	return r
}
