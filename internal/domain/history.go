package domain

import "time"

// HistoryRecord es un análisis guardado por un usuario.
type HistoryRecord struct {
	ID             int64              `json:"id"`
	UserID         string             `json:"user_id"`
	JobTitle       string             `json:"job_title"`
	CompanyName    string             `json:"company_name"`
	JobDescription string             `json:"job_description"`
	JobURL         string             `json:"job_url,omitempty"`
	MatchScore     float64            `json:"match_score"`
	Analysis       StructuredAnalysis `json:"analysis"`
	Research       *CompanyIntel      `json:"company_research,omitempty"`
	CoverLetter    string             `json:"cover_letter,omitempty"`
	CreatedAt      time.Time          `json:"created_at"`
}

// HistorySummary es la fila resumida que se lista.
type HistorySummary struct {
	ID          int64     `json:"id"`
	JobTitle    string    `json:"job_title"`
	CompanyName string    `json:"company_name"`
	MatchScore  float64   `json:"match_score"`
	CreatedAt   time.Time `json:"created_at"`
}

// AssessmentRecord guarda el snapshot serializado de una evaluación finalizada.
type AssessmentRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Snapshot  []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
