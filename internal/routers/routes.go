package routers

import (
	"evol-jewels-io/stylist/internal/container"
	"evol-jewels-io/stylist/internal/middleware"
	"evol-jewels-io/stylist/pkg/controllers"

	"github.com/gin-gonic/gin"
)

// InitRoute creates the Gin router for the stylist API.
func InitRoute(sc *container.ServiceContainer) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.CorsMiddleware(sc.Config.CORSOrigins))

	router.GET("/metrics", gin.WrapH(sc.Metrics.Handler()))

	api := router.Group("/api", middleware.StylistRateLimiter(sc.Redis, sc.Config.RateLimitPerSec))
	{
		api.GET("/", controllers.Root)
		api.GET("/ping", controllers.Ping)
		api.GET("/health", controllers.Health)

		api.GET("/products", sc.CatalogController.ListProducts())

		api.POST("/survey", sc.StylistController.SubmitSurvey())
		api.POST("/ai/vibe", sc.StylistController.ClassifyVibe())
		api.GET("/passport/:session_id", sc.StylistController.GetPassport())
	}

	return router
}
