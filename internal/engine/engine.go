package engine

import (
	"context"
	"strings"
	"time"

	"leadquiz/internal/catalog"
	"leadquiz/internal/model"
)

// AuthGate answers whether the respondent behind a request is identified.
// It is injected so the gate is mockable and the engine carries no hidden
// coupling to the auth layer.
type AuthGate interface {
	Identified(ctx context.Context) bool
}

// Engine drives a QuizSession through the questionnaire. It holds no session
// state itself; every operation takes the aggregate it mutates, so one engine
// serves any number of independent sessions.
type Engine struct {
	cat  *catalog.Catalog
	gate AuthGate
}

// New creates an engine over a validated catalog with the given auth gate
func New(cat *catalog.Catalog, gate AuthGate) *Engine {
	return &Engine{cat: cat, gate: gate}
}

// ResolveBranch derives the branch from the bootstrap answer. It is computed
// on demand rather than stored, so it can never drift from the answers.
func (e *Engine) ResolveBranch(s *model.QuizSession) model.Branch {
	ans, ok := s.Answers[e.cat.Bootstrap().ID]
	if !ok {
		return model.BranchUnresolved
	}
	return e.cat.BranchFor(ans.Selected)
}

// Questions returns the branch-resolved question sequence for the session
func (e *Engine) Questions(s *model.QuizSession) []model.Question {
	return e.cat.Resolve(e.ResolveBranch(s))
}

// CurrentQuestion returns the question at the cursor, or nil when the session
// has reached the contact-info step
func (e *Engine) CurrentQuestion(s *model.QuizSession) *model.Question {
	qs := e.Questions(s)
	if s.Cursor >= len(qs) {
		return nil
	}
	q := qs[s.Cursor]
	return &q
}

// RecordAnswer validates the value shape against the question kind and stores
// it. Re-answering the bootstrap question to the other branch re-runs the
// resolver and discards answers whose question is no longer applicable, so
// stale cross-branch answers never leak into a submission.
func (e *Engine) RecordAnswer(s *model.QuizSession, questionID int, value model.Answer) error {
	q, ok := e.cat.Get(questionID)
	if !ok {
		return ErrUnknownQuestion
	}
	if err := validateShape(&q, &value); err != nil {
		return err
	}

	s.Answers[questionID] = value
	s.UpdatedAt = time.Now()

	if questionID == e.cat.Bootstrap().ID {
		e.pruneOrphans(s)
	}
	return nil
}

// ToggleOption flips one option in a MULTI_SELECT answer: selecting an
// already-selected option removes it. This is the only mutation path for that
// kind.
func (e *Engine) ToggleOption(s *model.QuizSession, questionID int, option string) error {
	q, ok := e.cat.Get(questionID)
	if !ok {
		return ErrUnknownQuestion
	}
	if q.Kind != model.KindMultiSelect || !q.HasOption(option) {
		return ErrInvalidAnswerShape
	}

	ans := s.Answers[questionID]
	if ans.HasSelection(option) {
		kept := make([]string, 0, len(ans.Selections)-1)
		for _, sel := range ans.Selections {
			if sel != option {
				kept = append(kept, sel)
			}
		}
		ans.Selections = kept
	} else {
		ans.Selections = append(ans.Selections, option)
	}

	s.Answers[questionID] = ans
	s.UpdatedAt = time.Now()
	return nil
}

// Advance moves the cursor forward one step, saturating at the contact-info
// step. It requires a valid answer at the current position and an identified
// respondent; refusal by the gate signals the caller to present the
// identification challenge, it does not mutate the session.
func (e *Engine) Advance(ctx context.Context, s *model.QuizSession) error {
	if !e.CanProceed(s) {
		return ErrNotReady
	}
	if !e.gate.Identified(ctx) {
		return ErrNotIdentified
	}

	if n := len(e.Questions(s)); s.Cursor < n {
		s.Cursor++
		s.UpdatedAt = time.Now()
	}
	return nil
}

// Retreat moves the cursor back one step, saturating at 0. Going back is
// always permitted and never gated.
func (e *Engine) Retreat(s *model.QuizSession) {
	if s.Cursor > 0 {
		s.Cursor--
		s.UpdatedAt = time.Now()
	}
}

// CanProceed reports whether the current step is complete: a valid non-empty
// answer before the contact step, full contact info at it
func (e *Engine) CanProceed(s *model.QuizSession) bool {
	qs := e.Questions(s)
	if s.Cursor >= len(qs) {
		return s.Contact.Complete()
	}

	q := qs[s.Cursor]
	ans, ok := s.Answers[q.ID]
	if !ok || ans.IsEmpty() {
		return false
	}
	return validateShape(&q, &ans) == nil
}

// Progress returns cursor/N in [0, 1] once the branch is resolved, 0 before.
// It is position reached, not questions answered: retreating recedes the bar.
func (e *Engine) Progress(s *model.QuizSession) float64 {
	if e.ResolveBranch(s) == model.BranchUnresolved {
		return 0
	}
	n := len(e.Questions(s))
	if n == 0 {
		return 0
	}
	if s.Cursor >= n {
		return 1
	}
	return float64(s.Cursor) / float64(n)
}

// SetContact records the contact info collected at the final step
func (e *Engine) SetContact(s *model.QuizSession, c model.ContactInfo) {
	s.Contact = c
	s.UpdatedAt = time.Now()
}

// Submittable reports whether the session may enter the submission pipeline:
// at the contact step, contact complete, not already delivered
func (e *Engine) Submittable(s *model.QuizSession) error {
	if s.Submission == model.SubmissionSubmitted {
		return ErrAlreadySubmitted
	}
	if s.Cursor < len(e.Questions(s)) || !s.Contact.Complete() {
		return ErrNotReady
	}
	return nil
}

// BuildPayload flattens the session into the canonical submission payload:
// contact, branch, and (prompt, formatted value) pairs in resolved order
func (e *Engine) BuildPayload(s *model.QuizSession, submissionID string) *model.SubmissionPayload {
	branch := e.ResolveBranch(s)
	qs := e.cat.Resolve(branch)

	entries := make([]model.QA, 0, len(qs))
	for _, q := range qs {
		ans, ok := s.Answers[q.ID]
		if !ok {
			continue
		}
		entries = append(entries, model.QA{
			QuestionID: q.ID,
			Prompt:     q.Prompt,
			Value:      formatValue(&q, &ans),
		})
	}

	return &model.SubmissionPayload{
		SubmissionID: submissionID,
		SessionID:    s.ID,
		Branch:       branch,
		Contact:      s.Contact,
		Entries:      entries,
		SubmittedAt:  time.Now(),
	}
}

// Reset returns the session to its empty initial state, keeping only its ID
func (e *Engine) Reset(s *model.QuizSession) {
	s.Answers = make(map[int]model.Answer)
	s.Cursor = 0
	s.Contact = model.ContactInfo{}
	s.Submission = model.SubmissionNotSubmitted
	s.UpdatedAt = time.Now()
}

// pruneOrphans drops answers whose question is not in the newly resolved
// sequence and pulls the cursor back to the answered prefix. Every position
// behind the cursor must hold a valid answer; without the clamp, switching
// from a longer branch to a shorter one could land the cursor on the contact
// step with the new branch's questions never asked.
func (e *Engine) pruneOrphans(s *model.QuizSession) {
	qs := e.Questions(s)
	keep := make(map[int]bool, len(qs))
	for _, q := range qs {
		keep[q.ID] = true
	}
	for id := range s.Answers {
		if !keep[id] {
			delete(s.Answers, id)
		}
	}

	pos := 0
	for pos < s.Cursor && pos < len(qs) {
		q := qs[pos]
		ans, ok := s.Answers[q.ID]
		if !ok || ans.IsEmpty() || validateShape(&q, &ans) != nil {
			break
		}
		pos++
	}
	s.Cursor = pos
}

func validateShape(q *model.Question, a *model.Answer) error {
	switch q.Kind {
	case model.KindFreeText:
		if a.Selected != "" || len(a.Selections) > 0 {
			return ErrInvalidAnswerShape
		}
	case model.KindSingleSelect, model.KindSingleChoice:
		if a.Text != "" || len(a.Selections) > 0 || a.Selected == "" {
			return ErrInvalidAnswerShape
		}
		if !q.HasOption(a.Selected) {
			return ErrInvalidAnswerShape
		}
	case model.KindMultiSelect:
		if a.Text != "" || a.Selected != "" {
			return ErrInvalidAnswerShape
		}
		seen := make(map[string]bool, len(a.Selections))
		for _, sel := range a.Selections {
			if !q.HasOption(sel) || seen[sel] {
				return ErrInvalidAnswerShape
			}
			seen[sel] = true
		}
	default:
		return ErrInvalidAnswerShape
	}
	return nil
}

func formatValue(q *model.Question, a *model.Answer) string {
	switch q.Kind {
	case model.KindMultiSelect:
		return strings.Join(a.Selections, ", ")
	case model.KindFreeText:
		return a.Text
	default:
		return a.Selected
	}
}
