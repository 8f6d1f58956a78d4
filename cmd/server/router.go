package main

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/AbrarBb/findie/internal/config"
	"github.com/AbrarBb/findie/internal/middleware"
)

func setupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	router := gin.New()

	router.Use(middleware.RequestLogger())
	router.Use(middleware.RecoveryWithLogger())
	if cfg.MetricsEnabled {
		router.Use(middleware.Metrics())
	}

	router.GET("/health", deps.HealthHandler.Health)
	if cfg.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	}

	functions := router.Group("/functions/v1")
	functions.Use(middleware.CORS())
	if deps.Limiter != nil {
		functions.Use(middleware.RateLimit(deps.Limiter))
	}

	routes := map[string]gin.HandlerFunc{
		config.FunctionAutoExpirePosts: deps.ExpiryHandler.ExpirePosts,
		config.FunctionExtractOCRText:  deps.OCRHandler.ExtractText,
		config.FunctionVerifyIdentity:  deps.IdentityHandler.VerifyIdentity,
	}
	for _, fn := range config.AllFunctions {
		if cfg.Enabled(fn) {
			functions.Any("/"+fn, routes[fn])
		}
	}

	return router
}
