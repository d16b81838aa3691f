package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"career-coach/internal/assessment"
	"career-coach/internal/domain"
	"career-coach/internal/llm"
	"career-coach/internal/metrics"
)

var (
	ErrAIInvalidInput  = errors.New("ai: cv and job description are required")
	ErrAIResponseParse = errors.New("ai: response is not valid json")
	ErrAIUnavailable   = errors.New("ai: service not configured")
)

const (
	opAnalyze     = "analyze"
	opResearch    = "research"
	opCoverLetter = "cover_letter"
)

// ChunkFunc recibe cada fragmento de texto a medida que llega del proveedor.
type ChunkFunc func(chunk string) error

// AnalysisService genera análisis de CV, investigación de empresa y cartas con el LLM.
type AnalysisService struct {
	llmClient llm.LLMClient
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewAnalysisService(llmClient llm.LLMClient, m *metrics.Metrics, logger *zap.Logger) *AnalysisService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalysisService{
		llmClient: llmClient,
		metrics:   m,
		logger:    logger,
	}
}

// Analyze evalúa el CV contra la oferta y completa potential_match_score.
func (s *AnalysisService) Analyze(ctx context.Context, cv, job string) (domain.StructuredAnalysis, error) {
	return s.AnalyzeStream(ctx, cv, job, nil)
}

func (s *AnalysisService) AnalyzeStream(ctx context.Context, cv, job string, onChunk ChunkFunc) (domain.StructuredAnalysis, error) {
	cv, job = strings.TrimSpace(cv), strings.TrimSpace(job)
	if cv == "" || job == "" {
		return domain.StructuredAnalysis{}, ErrAIInvalidInput
	}

	raw, err := s.run(ctx, opAnalyze, buildAnalysisPrompt(cv, job), onChunk)
	if err != nil {
		return domain.StructuredAnalysis{}, err
	}

	var analysis domain.StructuredAnalysis
	if err := decodeLLMJSON(raw, &analysis); err != nil {
		s.logger.Warn("analysis response parse failed", zap.Error(err), zap.Int("raw_len", len(raw)))
		return domain.StructuredAnalysis{}, err
	}
	analysis.MatchScore = clampScore(analysis.MatchScore)
	analysis.PotentialMatchScore = PotentialMatchScore(analysis)
	return analysis, nil
}

// Research arma la ficha de la empresa; si no hay nombre se deriva del contexto.
func (s *AnalysisService) Research(ctx context.Context, company string, rc ResearchContext) (domain.CompanyIntel, error) {
	return s.ResearchStream(ctx, company, rc, nil)
}

func (s *AnalysisService) ResearchStream(ctx context.Context, company string, rc ResearchContext, onChunk ChunkFunc) (domain.CompanyIntel, error) {
	company = strings.TrimSpace(company)
	if company == "" {
		company = ExtractCompanyName(rc.JobURL, rc.JobDescription)
	}

	raw, err := s.run(ctx, opResearch, buildResearchPrompt(company, rc), onChunk)
	if err != nil {
		return domain.CompanyIntel{}, err
	}

	var intel domain.CompanyIntel
	if err := decodeLLMJSON(raw, &intel); err != nil {
		s.logger.Warn("research response parse failed", zap.Error(err), zap.String("company", company))
		return domain.CompanyIntel{}, err
	}
	if strings.TrimSpace(intel.CompanyName) == "" {
		intel.CompanyName = company
	}
	return intel, nil
}

// DraftCoverLetter redacta la carta; profile es opcional y condiciona el tono.
func (s *AnalysisService) DraftCoverLetter(ctx context.Context, cv, job string, profile *assessment.Profile) (string, error) {
	return s.DraftCoverLetterStream(ctx, cv, job, profile, nil)
}

func (s *AnalysisService) DraftCoverLetterStream(ctx context.Context, cv, job string, profile *assessment.Profile, onChunk ChunkFunc) (string, error) {
	cv, job = strings.TrimSpace(cv), strings.TrimSpace(job)
	if cv == "" || job == "" {
		return "", ErrAIInvalidInput
	}
	letter, err := s.run(ctx, opCoverLetter, buildCoverLetterPrompt(cv, job, profile), onChunk)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(letter), nil
}

func (s *AnalysisService) run(ctx context.Context, op, prompt string, onChunk ChunkFunc) (string, error) {
	if s.llmClient == nil {
		return "", ErrAIUnavailable
	}
	start := time.Now()
	var (
		raw string
		err error
	)
	if onChunk != nil {
		raw, err = llm.Stream(ctx, s.llmClient, prompt, onChunk)
	} else {
		raw, err = s.llmClient.Generate(ctx, prompt)
	}
	s.metrics.ObserveAI(op, start, err)
	if err != nil {
		s.logger.Warn("llm call failed", zap.String("operation", op), zap.Error(err))
		return "", fmt.Errorf("llm %s: %w", op, err)
	}
	return raw, nil
}

// decodeLLMJSON limpia fences y extrae el primer objeto antes de decodificar.
func decodeLLMJSON(raw string, out any) error {
	cleaned := cleanLLMJSONResponse(raw)
	if obj := firstJSONObject(cleaned); obj != "" {
		cleaned = obj
	}
	if cleaned == "" {
		return ErrAIResponseParse
	}
	if err := json.Unmarshal([]byte(cleaned), out); err != nil {
		return fmt.Errorf("%w: %v", ErrAIResponseParse, err)
	}
	return nil
}

func clampScore(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	}
	return v
}
