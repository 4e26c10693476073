package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/slide-cms-api/internal/models"
	"github.com/slide-cms-api/internal/service"
	"github.com/slide-cms-api/internal/validation"
)

// ArticleHandler handles article endpoints
type ArticleHandler struct {
	services *service.Services
	validate *validation.Validator
	log      zerolog.Logger
}

// NewArticleHandler creates a new ArticleHandler
func NewArticleHandler(services *service.Services, validate *validation.Validator, log zerolog.Logger) *ArticleHandler {
	return &ArticleHandler{
		services: services,
		validate: validate,
		log:      log.With().Str("handler", "article").Logger(),
	}
}

// Feed handles GET /v1/feed — currently visible rows for the presenter
func (h *ArticleHandler) Feed(c *gin.Context) {
	rows, err := h.services.Article.Feed(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// List handles GET /v1/articles — all rows for the admin panel
func (h *ArticleHandler) List(c *gin.Context) {
	rows, err := h.services.Article.List(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"rows": rows})
}

// Create handles POST /v1/articles
func (h *ArticleHandler) Create(c *gin.Context) {
	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if fieldErrors := h.validate.ValidateArticleInput(&in); fieldErrors != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	article, err := h.services.Article.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// Get handles GET /v1/articles/:id
func (h *ArticleHandler) Get(c *gin.Context) {
	article, err := h.services.Article.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Update handles PUT /v1/articles/:id
func (h *ArticleHandler) Update(c *gin.Context) {
	var in models.ArticleInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if fieldErrors := h.validate.ValidateArticleInput(&in); fieldErrors != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	article, err := h.services.Article.Update(c.Request.Context(), c.Param("id"), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// Delete handles DELETE /v1/articles/:id
func (h *ArticleHandler) Delete(c *gin.Context) {
	if err := h.services.Article.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Duplicate handles POST /v1/articles/:id/duplicate
func (h *ArticleHandler) Duplicate(c *gin.Context) {
	article, err := h.services.Article.Duplicate(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, article)
}

// Reorder handles PUT /v1/articles/reorder
func (h *ArticleHandler) Reorder(c *gin.Context) {
	var req models.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if fieldErrors := h.validate.ValidateReorderRequest(&req); fieldErrors != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	if err := h.services.Article.Reorder(c.Request.Context(), &req); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "reordered"})
}

// Shuffle handles POST /v1/articles/:id/shuffle
func (h *ArticleHandler) Shuffle(c *gin.Context) {
	ids, err := h.services.Article.Shuffle(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ordered_ids": ids})
}

// SetPublished handles POST /v1/articles/:id/publish
func (h *ArticleHandler) SetPublished(c *gin.Context) {
	var req struct {
		Published bool `json:"published"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	article, err := h.services.Article.SetPublished(c.Request.Context(), c.Param("id"), req.Published)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// ToggleFavorite handles POST /v1/articles/:id/favorite
func (h *ArticleHandler) ToggleFavorite(c *gin.Context) {
	article, err := h.services.Article.ToggleFavorite(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, article)
}

// CompleteSlide handles POST /v1/articles/:id/complete
func (h *ArticleHandler) CompleteSlide(c *gin.Context) {
	if err := h.services.Article.CompleteSlide(c.Request.Context(), c.Param("id"), time.Now()); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "completed"})
}

// Reset handles POST /v1/reset — the daily reset sweep entry point
func (h *ArticleHandler) Reset(c *gin.Context) {
	cleared, err := h.services.Article.ResetExpired(c.Request.Context(), time.Now())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cleared": cleared})
}
