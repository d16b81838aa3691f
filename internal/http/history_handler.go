package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-coach/internal/domain"
	"career-coach/internal/service"
)

// HistoryHandler guarda y lista análisis del usuario autenticado.
type HistoryHandler struct {
	logger     *zap.Logger
	historySrv *service.HistoryService
}

func NewHistoryHandler(logger *zap.Logger, historySrv *service.HistoryService) *HistoryHandler {
	return &HistoryHandler{logger: logger, historySrv: historySrv}
}

// Save maneja POST /history.
func (h *HistoryHandler) Save(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	var req struct {
		JobDescription string                    `json:"job_description"`
		JobURL         string                    `json:"job_url"`
		Analysis       domain.StructuredAnalysis `json:"analysis"`
		Research       *domain.CompanyIntel      `json:"company_research"`
		CoverLetter    string                    `json:"cover_letter"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	id, err := h.historySrv.Save(c.Request.Context(), claims.UserID, service.SaveHistoryInput{
		JobDescription: req.JobDescription,
		JobURL:         req.JobURL,
		Analysis:       req.Analysis,
		Research:       req.Research,
		CoverLetter:    req.CoverLetter,
	})
	if err != nil {
		if errors.Is(err, service.ErrHistoryInvalidInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("save history failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not save history"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// List maneja GET /history.
func (h *HistoryHandler) List(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	items, err := h.historySrv.List(c.Request.Context(), claims.UserID)
	if err != nil {
		h.logger.Error("list history failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not list history"})
		return
	}
	if items == nil {
		items = []domain.HistorySummary{}
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

// Get maneja GET /history/:id.
func (h *HistoryHandler) Get(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	rec, err := h.historySrv.Load(c.Request.Context(), id, claims.UserID)
	if err != nil {
		if errors.Is(err, service.ErrHistoryNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "history not found"})
			return
		}
		h.logger.Error("load history failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not load history"})
		return
	}
	c.JSON(http.StatusOK, rec)
}
