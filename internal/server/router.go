package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/busshop-tracker/internal/server/handler"
	"github.com/busshop-tracker/internal/server/middleware"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// setupRouter configures API routes and middleware for the application
func setupRouter(
	logger *slog.Logger,
	r *gin.Engine,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	entryHandler *handler.EntryHandler,
	reportHandler *handler.ReportHandler,
) {
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(logger))
	r.Use(middleware.Logger(logger))

	// The shop UI is served from a separate origin
	r.Use(cors.Default())

	api := r.Group("/api")
	{
		api.POST("/login", authHandler.Login)

		// User directory
		users := api.Group("/users")
		{
			users.GET("", userHandler.List)
			users.POST("", userHandler.Create)
			users.POST("/rename", userHandler.Rename)
			users.POST("/reset-pin", userHandler.ResetPIN)
			users.DELETE("", userHandler.Delete)
		}

		// Work orders
		entries := api.Group("/entries")
		{
			entries.GET("", entryHandler.List)
			entries.POST("", entryHandler.Upsert)
			entries.DELETE("/:id", entryHandler.Delete)
		}

		// Reports
		reports := api.Group("/reports")
		{
			reports.GET("/weekly", reportHandler.Weekly)
		}
	}

	// Health check endpoint for monitoring
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "timestamp": time.Now().UTC()})
	})
}
