package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"

	"leadquiz/internal/cache"
	"leadquiz/internal/delivery"
	"leadquiz/internal/engine"
	"leadquiz/internal/model"
)

var ErrSessionNotFound = errors.New("session not found")

// SessionView is the engine state a client needs to render one step
type SessionView struct {
	SessionID   string                `json:"sessionId"`
	Question    *model.Question       `json:"question"` // nil at the contact-info step
	ContactStep bool                  `json:"contactStep"`
	Answer      *model.Answer         `json:"answer,omitempty"`
	Progress    float64               `json:"progress"`
	CanProceed  bool                  `json:"canProceed"`
	Branch      model.Branch          `json:"branch,omitempty"`
	Submission  model.SubmissionState `json:"submission"`
}

// QuizService hosts quiz sessions: it loads the aggregate from the session
// cache, runs one engine operation, and stores it back. All mutation goes
// through the engine; this layer owns only persistence and delivery.
type QuizService struct {
	engine   *engine.Engine
	sessions cache.SessionCache
	pipeline *delivery.Pipeline
	notifier Notifier
}

// NewQuizService creates a new quiz service
func NewQuizService(eng *engine.Engine, sessions cache.SessionCache, pipeline *delivery.Pipeline) *QuizService {
	return &QuizService{
		engine:   eng,
		sessions: sessions,
		pipeline: pipeline,
	}
}

// SetNotifier sets the notifier for submission events
func (s *QuizService) SetNotifier(n Notifier) {
	s.notifier = n
}

// CreateSession starts an empty session and returns its first view
func (s *QuizService) CreateSession(ctx context.Context) (*SessionView, error) {
	session := model.NewQuizSession(uuid.New().String())
	if err := s.sessions.Set(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to store session: %w", err)
	}
	return s.view(session), nil
}

// GetView returns the current step of an existing session
func (s *QuizService) GetView(ctx context.Context, sessionID string) (*SessionView, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// RecordAnswer validates and stores an answer, then persists the session
func (s *QuizService) RecordAnswer(ctx context.Context, sessionID string, questionID int, answer model.Answer) (*SessionView, error) {
	return s.mutate(ctx, sessionID, func(session *model.QuizSession) error {
		return s.engine.RecordAnswer(session, questionID, answer)
	})
}

// ToggleOption flips a multi-select option
func (s *QuizService) ToggleOption(ctx context.Context, sessionID string, questionID int, option string) (*SessionView, error) {
	return s.mutate(ctx, sessionID, func(session *model.QuizSession) error {
		return s.engine.ToggleOption(session, questionID, option)
	})
}

// Advance moves to the next step; engine.ErrNotIdentified propagates so the
// transport can answer with the identification challenge
func (s *QuizService) Advance(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.mutate(ctx, sessionID, func(session *model.QuizSession) error {
		return s.engine.Advance(ctx, session)
	})
}

// Retreat moves back one step
func (s *QuizService) Retreat(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.mutate(ctx, sessionID, func(session *model.QuizSession) error {
		s.engine.Retreat(session)
		return nil
	})
}

// SetContact stores the contact info collected at the final step
func (s *QuizService) SetContact(ctx context.Context, sessionID string, contact model.ContactInfo) (*SessionView, error) {
	return s.mutate(ctx, sessionID, func(session *model.QuizSession) error {
		s.engine.SetContact(session, contact)
		return nil
	})
}

// Reset returns the session to its empty initial state
func (s *QuizService) Reset(ctx context.Context, sessionID string) (*SessionView, error) {
	return s.mutate(ctx, sessionID, func(session *model.QuizSession) error {
		s.engine.Reset(session)
		return nil
	})
}

// Submit runs the session through the submission pipeline. On delivery
// failure the session transitions to failed but keeps every answer, so the
// respondent can retry without re-entering anything.
func (s *QuizService) Submit(ctx context.Context, sessionID string) (*SessionView, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.engine.Submittable(session); err != nil {
		return nil, err
	}

	session.Submission = model.SubmissionSubmitting
	payload := s.engine.BuildPayload(session, uuid.New().String())

	if s.notifier != nil {
		s.notifier.Notify(EventSubmissionReceived, payload)
	}

	record, deliverErr := s.pipeline.Submit(ctx, payload)
	if record == nil {
		// Journal append failed: durability is gone, surface it
		session.Submission = model.SubmissionFailed
		s.store(ctx, session)
		return nil, deliverErr
	}

	if deliverErr != nil {
		session.Submission = model.SubmissionFailed
		if s.notifier != nil {
			s.notifier.Notify(EventDeliveryFailed, map[string]interface{}{
				"submissionId": payload.SubmissionID,
				"reason":       string(delivery.FailureReasonOf(deliverErr)),
			})
		}
		log.Printf("[Quiz] delivery failed for session %s: %v", sessionID, deliverErr)
	} else {
		session.Submission = model.SubmissionSubmitted
		if s.notifier != nil {
			s.notifier.Notify(EventDeliverySucceeded, map[string]interface{}{
				"submissionId": payload.SubmissionID,
			})
		}
	}

	if err := s.store(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

// mutate loads a session, applies op, and stores it back unless op failed
func (s *QuizService) mutate(ctx context.Context, sessionID string, op func(*model.QuizSession) error) (*SessionView, error) {
	session, err := s.load(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := op(session); err != nil {
		return nil, err
	}
	if err := s.store(ctx, session); err != nil {
		return nil, err
	}
	return s.view(session), nil
}

func (s *QuizService) load(ctx context.Context, sessionID string) (*model.QuizSession, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *QuizService) store(ctx context.Context, session *model.QuizSession) error {
	if err := s.sessions.Set(ctx, session); err != nil {
		return fmt.Errorf("failed to store session: %w", err)
	}
	return nil
}

func (s *QuizService) view(session *model.QuizSession) *SessionView {
	question := s.engine.CurrentQuestion(session)
	v := &SessionView{
		SessionID:   session.ID,
		Question:    question,
		ContactStep: question == nil,
		Progress:    s.engine.Progress(session),
		CanProceed:  s.engine.CanProceed(session),
		Branch:      s.engine.ResolveBranch(session),
		Submission:  session.Submission,
	}
	if question != nil {
		if ans, ok := session.Answers[question.ID]; ok {
			v.Answer = &ans
		}
	}
	return v
}
