package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"

	"career-coach/internal/domain"
	"career-coach/internal/service"
)

func accessToken(t *testing.T, jwtSvc *service.JWTService, userID string) string {
	t.Helper()
	pair, err := jwtSvc.GeneratePair(domain.User{ID: userID, Username: userID, CreatedAt: time.Now().UTC()})
	if err != nil {
		t.Fatalf("generate pair: %v", err)
	}
	return pair.AccessToken
}

func performAuthRequest(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var payload []byte
	if body != nil {
		payload, _ = json.Marshal(body)
	}
	req := httptest.NewRequest(method, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

type mockAssessmentRepo struct {
	saved []domain.AssessmentRecord
}

func (m *mockAssessmentRepo) Save(_ context.Context, rec domain.AssessmentRecord) error {
	m.saved = append(m.saved, rec)
	return nil
}

func (m *mockAssessmentRepo) LatestByUser(_ context.Context, userID string) (domain.AssessmentRecord, error) {
	for i := len(m.saved) - 1; i >= 0; i-- {
		if m.saved[i].UserID == userID {
			return m.saved[i], nil
		}
	}
	return domain.AssessmentRecord{}, pgx.ErrNoRows
}

type mockHistoryRepo struct {
	nextID  int64
	records []domain.HistoryRecord
}

func (m *mockHistoryRepo) Create(_ context.Context, rec domain.HistoryRecord) (int64, error) {
	m.nextID++
	rec.ID = m.nextID
	m.records = append(m.records, rec)
	return rec.ID, nil
}

func (m *mockHistoryRepo) ListByUser(_ context.Context, userID string) ([]domain.HistorySummary, error) {
	var out []domain.HistorySummary
	for i := len(m.records) - 1; i >= 0; i-- {
		rec := m.records[i]
		if rec.UserID != userID {
			continue
		}
		out = append(out, domain.HistorySummary{
			ID:          rec.ID,
			JobTitle:    rec.JobTitle,
			CompanyName: rec.CompanyName,
			MatchScore:  rec.MatchScore,
			CreatedAt:   rec.CreatedAt,
		})
	}
	return out, nil
}

func (m *mockHistoryRepo) GetByID(_ context.Context, id int64, userID string) (domain.HistoryRecord, error) {
	for _, rec := range m.records {
		if rec.ID == id && rec.UserID == userID {
			return rec, nil
		}
	}
	return domain.HistoryRecord{}, pgx.ErrNoRows
}

func testUser() domain.User {
	return domain.User{ID: "u1", Username: "jane", Name: "Jane Doe", CreatedAt: time.Now().UTC()}
}
