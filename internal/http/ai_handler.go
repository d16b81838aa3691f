package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"career-coach/internal/assessment"
	"career-coach/internal/llm"
	"career-coach/internal/service"
)

// AIHandler expone análisis, investigación y carta generados por el LLM.
// Con ?stream=1 la salida se emite como SSE: eventos "chunk" y un "result" o "error" final.
type AIHandler struct {
	logger      *zap.Logger
	analysisSrv *service.AnalysisService
	assessServ  *service.AssessmentService
}

func NewAIHandler(logger *zap.Logger, analysisSrv *service.AnalysisService, assessServ *service.AssessmentService) *AIHandler {
	return &AIHandler{logger: logger, analysisSrv: analysisSrv, assessServ: assessServ}
}

type cvJobRequest struct {
	CVText         string `json:"cv_text"`
	JobDescription string `json:"job_description"`
}

// Analyze maneja POST /analysis.
func (h *AIHandler) Analyze(c *gin.Context) {
	var req cvJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	ctx := c.Request.Context()
	if wantsStream(c) {
		h.stream(c, func(onChunk service.ChunkFunc) (any, error) {
			return h.analysisSrv.AnalyzeStream(ctx, req.CVText, req.JobDescription, onChunk)
		})
		return
	}
	analysis, err := h.analysisSrv.Analyze(ctx, req.CVText, req.JobDescription)
	if err != nil {
		h.writeError(c, "analysis", err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// Research maneja POST /research.
func (h *AIHandler) Research(c *gin.Context) {
	var req struct {
		CompanyName    string `json:"company_name"`
		JobURL         string `json:"job_url"`
		JobDescription string `json:"job_description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	rc := service.ResearchContext{JobURL: req.JobURL, JobDescription: req.JobDescription}
	ctx := c.Request.Context()
	if wantsStream(c) {
		h.stream(c, func(onChunk service.ChunkFunc) (any, error) {
			return h.analysisSrv.ResearchStream(ctx, req.CompanyName, rc, onChunk)
		})
		return
	}
	intel, err := h.analysisSrv.Research(ctx, req.CompanyName, rc)
	if err != nil {
		h.writeError(c, "research", err)
		return
	}
	c.JSON(http.StatusOK, intel)
}

// CoverLetter maneja POST /cover-letter; usa la última evaluación del usuario si existe.
func (h *AIHandler) CoverLetter(c *gin.Context) {
	claims, ok := requireClaims(c)
	if !ok {
		return
	}
	var req cvJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}
	ctx := c.Request.Context()

	var profile *assessment.Profile
	if h.assessServ != nil {
		profile = h.assessServ.LatestProfile(ctx, claims.UserID)
	}

	if wantsStream(c) {
		h.stream(c, func(onChunk service.ChunkFunc) (any, error) {
			letter, err := h.analysisSrv.DraftCoverLetterStream(ctx, req.CVText, req.JobDescription, profile, onChunk)
			return gin.H{"cover_letter": letter}, err
		})
		return
	}
	letter, err := h.analysisSrv.DraftCoverLetter(ctx, req.CVText, req.JobDescription, profile)
	if err != nil {
		h.writeError(c, "cover letter", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"cover_letter": letter})
}

func wantsStream(c *gin.Context) bool {
	v := c.Query("stream")
	return v == "1" || v == "true"
}

func (h *AIHandler) stream(c *gin.Context, run func(onChunk service.ChunkFunc) (any, error)) {
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("X-Accel-Buffering", "no")

	onChunk := func(chunk string) error {
		if err := c.Request.Context().Err(); err != nil {
			return err
		}
		c.SSEvent("chunk", chunk)
		c.Writer.Flush()
		return nil
	}

	result, err := run(onChunk)
	if err != nil {
		status, msg := aiErrorStatus(err)
		if status >= http.StatusInternalServerError {
			h.logger.Warn("ai stream failed", zap.Error(err))
		}
		c.SSEvent("error", gin.H{"error": msg})
		c.Writer.Flush()
		return
	}
	c.SSEvent("result", result)
	c.Writer.Flush()
}

func (h *AIHandler) writeError(c *gin.Context, op string, err error) {
	status, msg := aiErrorStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("ai request failed", zap.String("operation", op), zap.Error(err))
	}
	c.JSON(status, gin.H{"error": msg})
}

func aiErrorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, service.ErrAIInvalidInput):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, service.ErrAIUnavailable), errors.Is(err, llm.ErrNotConfigured), errors.Is(err, llm.ErrCircuitOpen):
		return http.StatusServiceUnavailable, "ai service unavailable"
	case errors.Is(err, service.ErrAIResponseParse), errors.Is(err, llm.ErrEmptyResponse):
		return http.StatusBadGateway, "ai returned an invalid response"
	default:
		return http.StatusBadGateway, "ai request failed"
	}
}
