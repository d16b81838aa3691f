package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"career-coach/internal/domain"
	"career-coach/internal/metrics"
	"career-coach/internal/repository"
)

var (
	ErrHistoryNotFound     = errors.New("history record not found")
	ErrHistoryInvalidInput = errors.New("job description is required")
)

const maxCoverLetterLength = 10000

type SaveHistoryInput struct {
	JobDescription string
	JobURL         string
	Analysis       domain.StructuredAnalysis
	Research       *domain.CompanyIntel
	CoverLetter    string
}

// HistoryService guarda y recupera análisis por usuario.
type HistoryService struct {
	repo    repository.HistoryRepository
	cache   HistoryCache
	metrics *metrics.Metrics
	logger  *zap.Logger
}

func NewHistoryService(repo repository.HistoryRepository, cache HistoryCache, m *metrics.Metrics, logger *zap.Logger) *HistoryService {
	if cache == nil {
		cache = NewNoopHistoryCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HistoryService{repo: repo, cache: cache, metrics: m, logger: logger}
}

func (s *HistoryService) Save(ctx context.Context, userID string, input SaveHistoryInput) (int64, error) {
	desc := strings.TrimSpace(input.JobDescription)
	if desc == "" {
		return 0, ErrHistoryInvalidInput
	}

	company := ExtractCompanyName(input.JobURL, desc)
	if input.Research != nil && strings.TrimSpace(input.Research.CompanyName) != "" {
		company = strings.TrimSpace(input.Research.CompanyName)
	}

	record := domain.HistoryRecord{
		UserID:         userID,
		JobTitle:       ExtractJobTitle(desc),
		CompanyName:    company,
		JobDescription: desc,
		JobURL:         strings.TrimSpace(input.JobURL),
		MatchScore:     input.Analysis.MatchScore,
		Analysis:       input.Analysis,
		Research:       input.Research,
		CoverLetter:    truncateRunes(input.CoverLetter, maxCoverLetterLength),
		CreatedAt:      time.Now().UTC(),
	}

	id, err := s.repo.Create(ctx, record)
	if err != nil {
		return 0, fmt.Errorf("save history: %w", err)
	}
	s.cache.Invalidate(ctx, userID)
	s.metrics.IncHistorySaved()
	s.logger.Info("history saved", zap.Int64("history_id", id), zap.String("user_id", userID), zap.String("job_title", record.JobTitle))
	return id, nil
}

func (s *HistoryService) List(ctx context.Context, userID string) ([]domain.HistorySummary, error) {
	if items, ok := s.cache.Get(ctx, userID); ok {
		return items, nil
	}
	items, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	s.cache.Set(ctx, userID, items)
	return items, nil
}

func (s *HistoryService) Load(ctx context.Context, id int64, userID string) (domain.HistoryRecord, error) {
	rec, err := s.repo.GetByID(ctx, id, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.HistoryRecord{}, ErrHistoryNotFound
		}
		return domain.HistoryRecord{}, fmt.Errorf("load history %d: %w", id, err)
	}
	return rec, nil
}
