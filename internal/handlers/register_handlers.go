package handlers

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/amrmohammed249/daftari/cmd/docs"
	"github.com/amrmohammed249/daftari/internal/core/engine"
	"github.com/amrmohammed249/daftari/internal/core/services"
	"github.com/amrmohammed249/daftari/internal/middleware"
	"github.com/amrmohammed249/daftari/internal/platform/config"
)

// RegisterRoutes sets up all application routes.
func RegisterRoutes(r *gin.Engine, cfg *config.Config, eng *engine.Engine, saver *services.Saver) {
	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, cfg, eng, saver)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// per-resource route registrations.
func setupAPIV1Routes(r *gin.Engine, cfg *config.Config, eng *engine.Engine, saver *services.Saver) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	registerAccountRoutes(v1, eng)
	registerJournalRoutes(v1, eng)
	registerSaleRoutes(v1, eng)
	registerPurchaseRoutes(v1, eng)
	registerTreasuryRoutes(v1, eng)
	registerAdjustmentRoutes(v1, eng)
	registerQuoteRoutes(v1, eng)
	registerItemRoutes(v1, eng)
	registerPartyRoutes(v1, eng)
	registerSystemRoutes(v1, eng, saver)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
