package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-coach/internal/service"
)

// CoachHandler responde mensajes del chatbot; cada request usa un coach nuevo.
type CoachHandler struct {
	logger   *zap.Logger
	newCoach func() *service.CoachService
}

func NewCoachHandler(logger *zap.Logger, newCoach func() *service.CoachService) *CoachHandler {
	if newCoach == nil {
		newCoach = func() *service.CoachService { return service.NewCoachService(nil, logger) }
	}
	return &CoachHandler{logger: logger, newCoach: newCoach}
}

// Respond maneja POST /coach.
func (h *CoachHandler) Respond(c *gin.Context) {
	var req struct {
		Message            string `json:"message" binding:"required"`
		CommunicationStyle string `json:"communication_style"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "message is required"})
		return
	}
	reply := h.newCoach().Respond(req.Message, req.CommunicationStyle)
	c.JSON(http.StatusOK, reply)
}
