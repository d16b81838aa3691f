package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"career-coach/internal/domain"
)

// AssessmentRepository guarda los snapshots de evaluaciones finalizadas.
type AssessmentRepository interface {
	Save(ctx context.Context, record domain.AssessmentRecord) error
	LatestByUser(ctx context.Context, userID string) (domain.AssessmentRecord, error)
}

type PgAssessmentRepository struct {
	pool DBTX
}

func NewPgAssessmentRepository(pool DBTX) *PgAssessmentRepository {
	return &PgAssessmentRepository{pool: pool}
}

func (r *PgAssessmentRepository) Save(ctx context.Context, record domain.AssessmentRecord) error {
	const query = `
		INSERT INTO assessment_snapshots (id, user_id, snapshot, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.pool.Exec(ctx, query, record.ID, record.UserID, record.Snapshot, record.CreatedAt)
	return mapWriteError(err)
}

func (r *PgAssessmentRepository) LatestByUser(ctx context.Context, userID string) (domain.AssessmentRecord, error) {
	const query = `
		SELECT id, user_id, snapshot, created_at
		FROM assessment_snapshots
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var rec domain.AssessmentRecord
	err := r.pool.QueryRow(ctx, query, userID).Scan(&rec.ID, &rec.UserID, &rec.Snapshot, &rec.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.AssessmentRecord{}, err
	}
	return rec, err
}
