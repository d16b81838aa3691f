package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"career-coach/internal/domain"
)

// HistoryRepository persiste los análisis guardados por cada usuario.
type HistoryRepository interface {
	Create(ctx context.Context, record domain.HistoryRecord) (int64, error)
	ListByUser(ctx context.Context, userID string) ([]domain.HistorySummary, error)
	GetByID(ctx context.Context, id int64, userID string) (domain.HistoryRecord, error)
}

// PgHistoryRepository guarda análisis e investigación como JSONB.
type PgHistoryRepository struct {
	pool DBTX
}

func NewPgHistoryRepository(pool DBTX) *PgHistoryRepository {
	return &PgHistoryRepository{pool: pool}
}

func (r *PgHistoryRepository) Create(ctx context.Context, record domain.HistoryRecord) (int64, error) {
	analysis, err := json.Marshal(record.Analysis)
	if err != nil {
		return 0, fmt.Errorf("marshal analysis: %w", err)
	}
	var research []byte
	if record.Research != nil {
		research, err = json.Marshal(record.Research)
		if err != nil {
			return 0, fmt.Errorf("marshal research: %w", err)
		}
	}

	const query = `
		INSERT INTO career_history
			(user_id, job_title, company_name, job_description, job_url, match_score,
			 analysis_text, company_research, cover_letter, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`
	var id int64
	err = r.pool.QueryRow(ctx, query,
		record.UserID,
		record.JobTitle,
		record.CompanyName,
		record.JobDescription,
		record.JobURL,
		record.MatchScore,
		analysis,
		research,
		record.CoverLetter,
		record.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, mapWriteError(err)
	}
	return id, nil
}

func (r *PgHistoryRepository) ListByUser(ctx context.Context, userID string) ([]domain.HistorySummary, error) {
	const query = `
		SELECT id, job_title, company_name, match_score, created_at
		FROM career_history
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := make([]domain.HistorySummary, 0)
	for rows.Next() {
		var s domain.HistorySummary
		if err := rows.Scan(&s.ID, &s.JobTitle, &s.CompanyName, &s.MatchScore, &s.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}

func (r *PgHistoryRepository) GetByID(ctx context.Context, id int64, userID string) (domain.HistoryRecord, error) {
	const query = `
		SELECT id, user_id, job_title, company_name, job_description, job_url, match_score,
		       analysis_text, company_research, cover_letter, created_at
		FROM career_history
		WHERE id = $1 AND user_id = $2
	`
	var (
		rec      domain.HistoryRecord
		analysis []byte
		research []byte
	)
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&rec.ID,
		&rec.UserID,
		&rec.JobTitle,
		&rec.CompanyName,
		&rec.JobDescription,
		&rec.JobURL,
		&rec.MatchScore,
		&analysis,
		&research,
		&rec.CoverLetter,
		&rec.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.HistoryRecord{}, err
	}
	if err != nil {
		return domain.HistoryRecord{}, err
	}

	if len(analysis) > 0 {
		if err := json.Unmarshal(analysis, &rec.Analysis); err != nil {
			return domain.HistoryRecord{}, fmt.Errorf("decode analysis %d: %w", id, err)
		}
	}
	if len(research) > 0 && string(research) != "null" {
		var intel domain.CompanyIntel
		if err := json.Unmarshal(research, &intel); err != nil {
			return domain.HistoryRecord{}, fmt.Errorf("decode research %d: %w", id, err)
		}
		rec.Research = &intel
	}
	return rec, nil
}
