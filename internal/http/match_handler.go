package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-coach/internal/matcher"
	"career-coach/internal/metrics"
)

// MatchHandler expone el análisis por palabras clave, sin IA.
type MatchHandler struct {
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewMatchHandler(logger *zap.Logger, m *metrics.Metrics) *MatchHandler {
	return &MatchHandler{logger: logger, metrics: m}
}

// Match maneja POST /match.
func (h *MatchHandler) Match(c *gin.Context) {
	var req struct {
		CVText  string `json:"cv_text"`
		JobText string `json:"job_text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	res, err := matcher.Analyze(req.CVText, req.JobText)
	if err != nil {
		if errors.Is(err, matcher.ErrMissingInput) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("keyword analysis failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "analysis failed"})
		return
	}
	h.metrics.IncKeywordAnalyses()
	c.JSON(http.StatusOK, res)
}
