package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-coach/internal/extract"
)

// multipartSlack cubre boundaries y cabeceras del formulario.
const multipartSlack = 1 << 10

// PageFetcher obtiene el texto visible de una URL.
type PageFetcher interface {
	Fetch(ctx context.Context, rawURL string) (string, error)
}

// ExtractHandler convierte un archivo subido o una URL en texto plano.
type ExtractHandler struct {
	logger   *zap.Logger
	fetcher  PageFetcher
	maxBytes int64
}

func NewExtractHandler(logger *zap.Logger, fetcher PageFetcher, maxBytes int64) *ExtractHandler {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &ExtractHandler{logger: logger, fetcher: fetcher, maxBytes: maxBytes}
}

// Extract maneja POST /extract: multipart con campo "file", o JSON {"url": ...}.
func (h *ExtractHandler) Extract(c *gin.Context) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		h.fromFile(c)
		return
	}

	var req struct {
		URL string `json:"url" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file or url is required"})
		return
	}
	if h.fetcher == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "url fetching not configured"})
		return
	}
	text, err := h.fetcher.Fetch(c.Request.Context(), req.URL)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrInvalidURL):
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid url"})
		case errors.Is(err, extract.ErrNoText):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			h.logger.Warn("fetch url failed", zap.Error(err))
			c.JSON(http.StatusBadGateway, gin.H{"error": "could not fetch url"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"source": "url", "text": text})
}

func (h *ExtractHandler) fromFile(c *gin.Context) {
	limit := h.maxBytes + multipartSlack
	if c.Request.ContentLength > limit {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
	fh, err := c.FormFile("file")
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}
	if fh.Size > h.maxBytes {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "file too large"})
		return
	}

	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}
	defer f.Close()
	data, err := io.ReadAll(f)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read file"})
		return
	}

	text, err := extract.FromFile(fh.Filename, data)
	if err != nil {
		switch {
		case errors.Is(err, extract.ErrUnsupportedFormat):
			c.JSON(http.StatusUnsupportedMediaType, gin.H{"error": err.Error()})
		case errors.Is(err, extract.ErrNoText), errors.Is(err, extract.ErrBinaryContent):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			h.logger.Warn("extract file failed", zap.String("filename", fh.Filename), zap.Error(err))
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "could not extract text"})
		}
		return
	}
	c.JSON(http.StatusOK, gin.H{"source": "file", "filename": fh.Filename, "text": text})
}
