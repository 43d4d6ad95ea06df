package routes

import (
	"github.com/gin-gonic/gin"

	"petstore/internal/adapter/http/handler"
	"petstore/internal/adapter/http/middleware"
	. "petstore/pkg/config"
	"petstore/pkg/middlewares"
	. "petstore/pkg/tracing"
)

type HandlersConfig struct {
	PetHandler    *handler.PetHandler
	HealthHandler *handler.HealthHandler
}

func SetupRouter(handlers HandlersConfig, metrics *AppMetrics, logger *AppLogger) *gin.Engine {
	return SetupRouterWithConfig(handlers, metrics, logger, GetDefaultConfig())
}

func SetupRouterWithConfig(handlers HandlersConfig, metrics *AppMetrics, logger *AppLogger, config *AppConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	middlewares.SetupGinMiddlewareWithConfig(router, "petstore", metrics, logger, config)

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	setupRoutes(router, handlers)

	return router
}

func setupRoutes(router *gin.Engine, handlers HandlersConfig) {
	if handlers.HealthHandler != nil {
		router.GET("/health", handlers.HealthHandler.Health)
	}

	if handlers.PetHandler != nil {
		pets := router.Group("/")
		pets.Use(middleware.CurrentMiddleware())
		{
			pets.GET("/pets", handlers.PetHandler.ListPets)
			pets.POST("/pets", handlers.PetHandler.CreatePet)
			pets.GET("/pets/:id", handlers.PetHandler.GetPet)
			pets.PUT("/pets/:id", handlers.PetHandler.UpdatePet)
			pets.DELETE("/pets/:id", handlers.PetHandler.DeletePet)
			pets.GET("/pets-statistics", handlers.PetHandler.Statistics)
		}
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}

func SetupRouterForTests(handlers HandlersConfig) *gin.Engine {
	if gin.Mode() == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(corsMiddleware())

	setupRoutes(router, handlers)

	return router
}
