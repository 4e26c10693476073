package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/slide-cms-api/internal/broadcast"
	"github.com/slide-cms-api/internal/challenge"
	"github.com/slide-cms-api/internal/config"
	"github.com/slide-cms-api/internal/importer"
	"github.com/slide-cms-api/internal/service"
	"github.com/slide-cms-api/internal/validation"
)

// NewRouter creates and configures the Gin router
func NewRouter(services *service.Services, broadcaster *broadcast.Broadcaster, cfg *config.Config, log zerolog.Logger) *gin.Engine {
	// Set Gin mode
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()

	// Middleware
	router.Use(recoveryMiddleware(log))
	router.Use(loggingMiddleware(log))
	router.Use(corsMiddleware())

	validate := validation.New()

	// Handlers
	articleHandler := NewArticleHandler(services, validate, log)
	challengeHandler := NewChallengeHandler(services, log)
	mediaHandler := NewMediaHandler(services, validate, log)
	importHandler := NewImportHandler(services, log)
	eventsHandler := NewEventsHandler(broadcaster, cfg, log)

	// Health check
	router.GET("/health", healthCheck)
	router.GET("/metrics", metricsHandler(services, broadcaster))

	// API v1
	v1 := router.Group("/v1")
	{
		v1.GET("/feed", articleHandler.Feed)
		v1.GET("/events", eventsHandler.Stream)
		v1.POST("/reset", articleHandler.Reset)

		articles := v1.Group("/articles")
		{
			articles.GET("", articleHandler.List)
			articles.POST("", articleHandler.Create)
			articles.PUT("/reorder", articleHandler.Reorder)
			articles.GET("/:id", articleHandler.Get)
			articles.PUT("/:id", articleHandler.Update)
			articles.DELETE("/:id", articleHandler.Delete)
			articles.POST("/:id/duplicate", articleHandler.Duplicate)
			articles.POST("/:id/shuffle", articleHandler.Shuffle)
			articles.POST("/:id/publish", articleHandler.SetPublished)
			articles.POST("/:id/favorite", articleHandler.ToggleFavorite)
			articles.POST("/:id/complete", articleHandler.CompleteSlide)
		}

		challenges := v1.Group("/challenges")
		{
			challenges.GET("/:id/stats", challengeHandler.Stats)
			challenges.POST("/:id/complete", challengeHandler.Complete)
		}

		media := v1.Group("/media")
		{
			media.GET("", mediaHandler.List)
			media.POST("", mediaHandler.Create)
			media.DELETE("/:id", mediaHandler.Delete)
			media.GET("/folders", mediaHandler.ListFolders)
			media.POST("/folders", mediaHandler.CreateFolder)
		}

		v1.POST("/import/markdown", importHandler.ImportMarkdown)
	}

	return router
}

// healthCheck returns the health status
func healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
		"service":   "slide-cms-api",
	})
}

// metricsHandler returns basic operational counts
func metricsHandler(services *service.Services, broadcaster *broadcast.Broadcaster) gin.HandlerFunc {
	return func(c *gin.Context) {
		articlesCount, _ := services.Article.Count(c.Request.Context())

		c.JSON(http.StatusOK, gin.H{
			"articles":    articlesCount,
			"subscribers": broadcaster.SubscriberCount(),
			"timestamp":   time.Now().Format(time.RFC3339),
		})
	}
}

// respondError maps service errors to HTTP responses
func respondError(c *gin.Context, log zerolog.Logger, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, challenge.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, service.ErrMediaInUse), errors.Is(err, challenge.ErrInactive):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, challenge.ErrNotAChallenge), errors.Is(err, importer.ErrEmptyDocument):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	default:
		log.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Request failed")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// recoveryMiddleware handles panics
func recoveryMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if err := recover(); err != nil {
				log.Error().Interface("error", err).Msg("Panic recovered")
				c.JSON(http.StatusInternalServerError, gin.H{
					"error": "Internal server error",
				})
				c.Abort()
			}
		}()
		c.Next()
	}
}

// loggingMiddleware logs requests
func loggingMiddleware(log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path

		c.Next()

		duration := time.Since(start)
		statusCode := c.Writer.Status()

		event := log.Info()
		if statusCode >= 400 {
			event = log.Warn()
		}
		if statusCode >= 500 {
			event = log.Error()
		}

		event.
			Str("method", c.Request.Method).
			Str("path", path).
			Int("status", statusCode).
			Dur("duration", duration).
			Str("client_ip", c.ClientIP()).
			Msg("Request completed")
	}
}

// corsMiddleware handles CORS
func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Cache-Control")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
