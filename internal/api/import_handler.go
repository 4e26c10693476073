package api

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/slide-cms-api/internal/service"
)

// maxImportSize caps markdown import payloads at 5MB
const maxImportSize = 5 * 1024 * 1024

// ImportHandler handles the markdown project importer endpoint
type ImportHandler struct {
	services *service.Services
	log      zerolog.Logger
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(services *service.Services, log zerolog.Logger) *ImportHandler {
	return &ImportHandler{
		services: services,
		log:      log.With().Str("handler", "import").Logger(),
	}
}

// ImportMarkdown handles POST /v1/import/markdown. The body is either a
// raw markdown document or a multipart upload with a "file" field.
func (h *ImportHandler) ImportMarkdown(c *gin.Context) {
	source, err := h.readSource(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if len(source) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "markdown document is required"})
		return
	}

	row, err := h.services.Import.ImportMarkdown(c.Request.Context(), source)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info().Str("article_id", row.Article.ID).Int("slides", len(row.SubArticles)).Msg("Markdown import completed")
	c.JSON(http.StatusCreated, row)
}

func (h *ImportHandler) readSource(c *gin.Context) ([]byte, error) {
	if file, _, err := c.Request.FormFile("file"); err == nil {
		defer file.Close()
		return io.ReadAll(io.LimitReader(file, maxImportSize))
	}
	return io.ReadAll(io.LimitReader(c.Request.Body, maxImportSize))
}
