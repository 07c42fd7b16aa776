package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/drillwise/mwd-backend-go/internal/config"
	"github.com/drillwise/mwd-backend-go/internal/database"
	"github.com/drillwise/mwd-backend-go/internal/handler"
	"github.com/drillwise/mwd-backend-go/internal/middleware"
	"github.com/drillwise/mwd-backend-go/internal/pipeline"
	"github.com/drillwise/mwd-backend-go/internal/repository"
	"github.com/drillwise/mwd-backend-go/internal/service"
)

// SetupRouter wires the repositories, services and handlers and returns
// the configured engine.
func SetupRouter(cfg *config.Config) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger())
	r.Use(middleware.RateLimit(100, time.Minute))

	// CORS
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})

	db := database.GetDB()
	telemetryRepo := repository.NewTelemetryRepository(db)
	profileRepo := repository.NewProfileRepository(db)
	profileService := service.NewProfileService(
		telemetryRepo,
		profileRepo,
		pipeline.New(cfg.FineBinWidthM, cfg.CoarseBinWidthM),
	)
	profileHandler := handler.NewProfileHandler(profileService)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "MWD Profile API is running",
		})
	})

	api := r.Group("/api/v1")
	{
		profiles := api.Group("/profiles")
		{
			profiles.GET("", profileHandler.GetProfile)
			profiles.GET("/cycles", profileHandler.GetCycles)
			profiles.POST("/run", middleware.Auth(cfg.JWTSecret), profileHandler.RunProfile)
		}
	}

	return r
}
