package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-coach/internal/assessment"
	"career-coach/internal/service"
)

// AssessmentHandler expone el cuestionario de rasgos.
type AssessmentHandler struct {
	logger     *zap.Logger
	assessServ *service.AssessmentService
}

func NewAssessmentHandler(logger *zap.Logger, assessServ *service.AssessmentService) *AssessmentHandler {
	return &AssessmentHandler{logger: logger, assessServ: assessServ}
}

// Questions maneja GET /assessment/questions.
func (h *AssessmentHandler) Questions(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"questions": h.assessServ.Questions()})
}

// StartSession maneja POST /assessment/sessions.
func (h *AssessmentHandler) StartSession(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	state, err := h.assessServ.Start(claims.UserID)
	if err != nil {
		h.logger.Error("start assessment failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not start assessment"})
		return
	}
	c.JSON(http.StatusCreated, state)
}

// GetSession maneja GET /assessment/sessions/:id.
func (h *AssessmentHandler) GetSession(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	state, err := h.assessServ.Current(claims.UserID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Answer maneja POST /assessment/sessions/:id/answers.
func (h *AssessmentHandler) Answer(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	var req struct {
		QuestionID int    `json:"question_id" binding:"required"`
		Choice     string `json:"choice" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	state, err := h.assessServ.Answer(claims.UserID, c.Param("id"), req.QuestionID, assessment.ChoiceKey(req.Choice))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, state)
}

// Finalize maneja POST /assessment/sessions/:id/finalize.
func (h *AssessmentHandler) Finalize(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	res, err := h.assessServ.Finalize(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Profile maneja GET /assessment/profile.
func (h *AssessmentHandler) Profile(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	res, err := h.assessServ.Latest(c.Request.Context(), claims.UserID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

func (h *AssessmentHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
	case errors.Is(err, service.ErrSessionForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, service.ErrNoAssessment):
		c.JSON(http.StatusNotFound, gin.H{"error": "no completed assessment"})
	case errors.Is(err, assessment.ErrUnknownQuestion), errors.Is(err, assessment.ErrInvalidChoice):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("assessment request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "assessment failed"})
	}
}
