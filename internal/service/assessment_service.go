package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"career-coach/internal/assessment"
	"career-coach/internal/domain"
	"career-coach/internal/metrics"
	"career-coach/internal/repository"
)

var (
	ErrSessionNotFound  = errors.New("assessment session not found")
	ErrNoAssessment     = errors.New("no completed assessment")
	ErrSessionForbidden = errors.New("assessment session belongs to another user")
)

// SessionState describe el progreso de una sesión en curso.
type SessionState struct {
	SessionID string               `json:"session_id"`
	Answered  int                  `json:"answered"`
	Total     int                  `json:"total"`
	Complete  bool                 `json:"complete"`
	Next      *assessment.Question `json:"next_question,omitempty"`
}

// AssessmentResult es el perfil finalizado junto con su lectura.
type AssessmentResult struct {
	ID       string             `json:"id"`
	Profile  assessment.Profile `json:"profile"`
	Insights string             `json:"insights"`
}

const (
	defaultSessionTTL  = 2 * time.Hour
	maxSessionsPerUser = 3
)

type assessmentSession struct {
	userID    string
	engine    *assessment.Engine
	startedAt time.Time
}

// AssessmentService mantiene en memoria un Engine por sesión abierta.
type AssessmentService struct {
	mu       sync.Mutex
	sessions map[string]*assessmentSession
	catalog  []assessment.Question
	repo     repository.AssessmentRepository
	metrics  *metrics.Metrics
	logger   *zap.Logger

	ttl time.Duration
	now func() time.Time
}

func NewAssessmentService(catalog []assessment.Question, repo repository.AssessmentRepository, m *metrics.Metrics, logger *zap.Logger) (*AssessmentService, error) {
	if catalog == nil {
		catalog = assessment.DefaultCatalog()
	}
	if err := assessment.ValidateCatalog(catalog); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentService{
		sessions: make(map[string]*assessmentSession),
		catalog:  catalog,
		repo:     repo,
		metrics:  m,
		logger:   logger,
		ttl:      defaultSessionTTL,
		now:      func() time.Time { return time.Now().UTC() },
	}, nil
}

// Questions devuelve el catálogo completo en orden.
func (s *AssessmentService) Questions() []assessment.Question {
	out := make([]assessment.Question, len(s.catalog))
	copy(out, s.catalog)
	return out
}

func (s *AssessmentService) Start(userID string) (SessionState, error) {
	engine, err := assessment.NewEngine(s.catalog)
	if err != nil {
		return SessionState{}, err
	}
	id := uuid.NewString()

	s.mu.Lock()
	now := s.now()
	s.sweepLocked(now)
	s.capUserLocked(userID)
	s.sessions[id] = &assessmentSession{userID: userID, engine: engine, startedAt: now}
	s.mu.Unlock()

	s.logger.Info("assessment started", zap.String("session_id", id), zap.String("user_id", userID))
	return stateOf(id, engine), nil
}

func (s *AssessmentService) Current(userID, sessionID string) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return SessionState{}, err
	}
	return stateOf(sessionID, sess.engine), nil
}

func (s *AssessmentService) Answer(userID, sessionID string, questionID int, choice assessment.ChoiceKey) (SessionState, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		return SessionState{}, err
	}
	if err := sess.engine.RecordAnswer(questionID, choice); err != nil {
		return SessionState{}, err
	}
	return stateOf(sessionID, sess.engine), nil
}

// Finalize calcula el perfil, persiste el snapshot y cierra la sesión.
// La sesión sale del mapa antes de guardar; si falla la persistencia vuelve para reintentar.
func (s *AssessmentService) Finalize(ctx context.Context, userID, sessionID string) (AssessmentResult, error) {
	s.mu.Lock()
	sess, err := s.lookup(userID, sessionID)
	if err != nil {
		s.mu.Unlock()
		return AssessmentResult{}, err
	}
	delete(s.sessions, sessionID)
	s.mu.Unlock()

	profile := sess.engine.Finalize()
	answered := sess.engine.Answered()
	blob, err := sess.engine.Serialize()
	if err != nil {
		s.restore(sessionID, sess)
		return AssessmentResult{}, fmt.Errorf("serialize assessment: %w", err)
	}

	if s.repo != nil {
		rec := domain.AssessmentRecord{
			ID:        sessionID,
			UserID:    userID,
			Snapshot:  blob,
			CreatedAt: s.now(),
		}
		if err := s.repo.Save(ctx, rec); err != nil {
			s.restore(sessionID, sess)
			return AssessmentResult{}, fmt.Errorf("save assessment: %w", err)
		}
	}

	s.metrics.IncAssessmentsFinalized()
	s.logger.Info("assessment finalized",
		zap.String("session_id", sessionID),
		zap.String("user_id", userID),
		zap.Int("answered", answered),
	)
	return AssessmentResult{ID: sessionID, Profile: profile, Insights: profile.Insights()}, nil
}

func (s *AssessmentService) restore(sessionID string, sess *assessmentSession) {
	s.mu.Lock()
	s.sessions[sessionID] = sess
	s.mu.Unlock()
}

// RunJanitor barre sesiones vencidas cada interval hasta que ctx termine.
func (s *AssessmentService) RunJanitor(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.mu.Lock()
			removed := s.sweepLocked(s.now())
			s.mu.Unlock()
			if removed > 0 {
				s.logger.Info("expired assessment sessions removed", zap.Int("count", removed))
			}
		}
	}
}

// OpenSessions cuenta las sesiones en memoria.
func (s *AssessmentService) OpenSessions() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Latest carga el último snapshot del usuario y recalcula su perfil.
func (s *AssessmentService) Latest(ctx context.Context, userID string) (AssessmentResult, error) {
	if s.repo == nil {
		return AssessmentResult{}, ErrNoAssessment
	}
	rec, err := s.repo.LatestByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return AssessmentResult{}, ErrNoAssessment
		}
		return AssessmentResult{}, fmt.Errorf("load assessment: %w", err)
	}
	engine, err := assessment.Deserialize(s.catalog, rec.Snapshot)
	if err != nil {
		return AssessmentResult{}, err
	}
	profile := engine.Finalize()
	return AssessmentResult{ID: rec.ID, Profile: profile, Insights: profile.Insights()}, nil
}

// LatestProfile es un atajo para condicionar la carta de presentación; nil si no hay evaluación.
func (s *AssessmentService) LatestProfile(ctx context.Context, userID string) *assessment.Profile {
	res, err := s.Latest(ctx, userID)
	if err != nil {
		if !errors.Is(err, ErrNoAssessment) {
			s.logger.Warn("latest assessment lookup failed", zap.Error(err), zap.String("user_id", userID))
		}
		return nil
	}
	return &res.Profile
}

func (s *AssessmentService) expired(sess *assessmentSession, now time.Time) bool {
	return s.ttl > 0 && now.Sub(sess.startedAt) >= s.ttl
}

// sweepLocked requiere s.mu tomado.
func (s *AssessmentService) sweepLocked(now time.Time) int {
	removed := 0
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed
}

// capUserLocked descarta las sesiones más viejas del usuario hasta dejar lugar para una nueva.
func (s *AssessmentService) capUserLocked(userID string) {
	for {
		count := 0
		oldestID := ""
		var oldest time.Time
		for id, sess := range s.sessions {
			if sess.userID != userID {
				continue
			}
			count++
			if oldestID == "" || sess.startedAt.Before(oldest) {
				oldestID, oldest = id, sess.startedAt
			}
		}
		if count < maxSessionsPerUser {
			return
		}
		delete(s.sessions, oldestID)
		s.logger.Info("assessment session evicted", zap.String("session_id", oldestID), zap.String("user_id", userID))
	}
}

// lookup requiere s.mu tomado. Una sesión vencida se borra y cuenta como inexistente.
func (s *AssessmentService) lookup(userID, sessionID string) (*assessmentSession, error) {
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrSessionNotFound
	}
	if s.expired(sess, s.now()) {
		delete(s.sessions, sessionID)
		return nil, ErrSessionNotFound
	}
	if sess.userID != userID {
		return nil, ErrSessionForbidden
	}
	return sess, nil
}

func stateOf(id string, e *assessment.Engine) SessionState {
	st := SessionState{
		SessionID: id,
		Answered:  e.Answered(),
		Total:     e.Total(),
		Complete:  e.Complete(),
	}
	if q, ok := e.NextUnansweredQuestion(); ok {
		st.Next = &q
	}
	return st
}
