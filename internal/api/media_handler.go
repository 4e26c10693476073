package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/slide-cms-api/internal/models"
	"github.com/slide-cms-api/internal/service"
	"github.com/slide-cms-api/internal/validation"
)

// MediaHandler handles media asset endpoints
type MediaHandler struct {
	services *service.Services
	validate *validation.Validator
	log      zerolog.Logger
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(services *service.Services, validate *validation.Validator, log zerolog.Logger) *MediaHandler {
	return &MediaHandler{
		services: services,
		validate: validate,
		log:      log.With().Str("handler", "media").Logger(),
	}
}

// List handles GET /v1/media
func (h *MediaHandler) List(c *gin.Context) {
	var folderID *string
	if v := c.Query("folder_id"); v != "" {
		folderID = &v
	}

	items, err := h.services.Media.List(c.Request.Context(), folderID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"media": items})
}

// Create handles POST /v1/media
func (h *MediaHandler) Create(c *gin.Context) {
	var in models.MediaInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if fieldErrors := h.validate.ValidateMediaInput(&in); fieldErrors != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	media, err := h.services.Media.Create(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, media)
}

// Delete handles DELETE /v1/media/:id. Deleting an asset still referenced
// by an article is refused with a conflict.
func (h *MediaHandler) Delete(c *gin.Context) {
	if err := h.services.Media.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// ListFolders handles GET /v1/media/folders
func (h *MediaHandler) ListFolders(c *gin.Context) {
	folders, err := h.services.Media.ListFolders(c.Request.Context())
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"folders": folders})
}

// CreateFolder handles POST /v1/media/folders
func (h *MediaHandler) CreateFolder(c *gin.Context) {
	var in models.MediaFolderInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if fieldErrors := h.validate.ValidateMediaFolderInput(&in); fieldErrors != nil {
		c.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	folder, err := h.services.Media.CreateFolder(c.Request.Context(), &in)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, folder)
}
