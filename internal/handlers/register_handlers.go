package handlers

import (
	"github.com/Mubina-Mulla/Pigmi/cmd/docs"
	"github.com/Mubina-Mulla/Pigmi/internal/core/services"
	"github.com/Mubina-Mulla/Pigmi/internal/middleware"
	"github.com/Mubina-Mulla/Pigmi/pkg/config"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up all application routes, injecting dependencies from the service container
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	c *services.Container,
) {

	// Add health check route
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})
	r.GET("/", getHome)

	// Register public authentication routes
	registerAuthRoutes(r, cfg, c.Auth)

	// Setup API v1 routes with Auth Middleware, passing service interfaces
	setupAPIV1Routes(r, cfg, c)

	// Swagger routes (typically public or conditionally available)
	setupSwaggerRoutes(r, cfg)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to specific entity route registrations
func setupAPIV1Routes(
	r *gin.Engine,
	cfg *config.Config,
	c *services.Container,
) {
	// Apply AuthMiddleware to the entire v1 group
	v1 := r.Group("/api/v1", middleware.AuthMiddleware(cfg.JWTSecret))

	// Delegate route registration to specific handlers, passing required services
	RegisterCustomerRoutes(v1, c.Customer)
	RegisterAgentRoutes(v1, c.Agent)
	RegisterRouteRoutes(v1, c.Route)
	RegisterRecycleBinRoutes(v1, c.Retention)
	RegisterReportRoutes(v1, c.Report)
	RegisterImportRoutes(v1, c.Import)
	RegisterEventRoutes(v1, c.Broker)
}

// setupSwaggerRoutes configures the swagger documentation routes
func setupSwaggerRoutes(r *gin.Engine, cfg *config.Config) {
	// Swagger setup
	if cfg.IsProduction {
		//no swagger in prod
		return
	}
	docs.SwaggerInfo.BasePath = "/api/v1"
	swagger := r.Group("/swagger")
	swagger.GET("/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
