package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/screenroom/backend/config"
	"github.com/screenroom/backend/internal/api"
	"github.com/screenroom/backend/internal/middleware"
)

// SetupRouter configures the application routes
func SetupRouter(
	cfg *config.Config,
	authHandler *api.AuthHandler,
	filmHandler *api.FilmHandler,
	feedbackHandler *api.FeedbackHandler,
	uploadHandler *api.UploadHandler,
) *gin.Engine {
	router := gin.Default()

	router.Use(middleware.CORS(cfg.AllowedOrigins))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	apiGroup := router.Group("/api")
	authHandler.RegisterRoutes(apiGroup)
	filmHandler.RegisterRoutes(apiGroup)
	feedbackHandler.RegisterRoutes(apiGroup)
	uploadHandler.RegisterRoutes(apiGroup)

	return router
}
