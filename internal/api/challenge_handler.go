package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/slide-cms-api/internal/service"
)

// ChallengeHandler handles challenge progress endpoints
type ChallengeHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewChallengeHandler creates a new ChallengeHandler
func NewChallengeHandler(services *service.Services, log zerolog.Logger) *ChallengeHandler {
	return &ChallengeHandler{
		services: services,
		log:      log.With().Str("handler", "challenge").Logger(),
	}
}

// Stats handles GET /v1/challenges/:id/stats
func (h *ChallengeHandler) Stats(c *gin.Context) {
	stats, err := h.services.Challenge.Stats(c.Request.Context(), c.Param("id"), time.Now())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Complete handles POST /v1/challenges/:id/complete
func (h *ChallengeHandler) Complete(c *gin.Context) {
	var req struct {
		SubArticleID string `json:"sub_article_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "sub_article_id is required"})
		return
	}

	record, created, err := h.services.Challenge.Complete(c.Request.Context(), c.Param("id"), req.SubArticleID, time.Now())
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, record)
}
