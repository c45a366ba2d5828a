package model

import "time"

// SubmissionState tracks the delivery lifecycle of a session
type SubmissionState string

const (
	SubmissionNotSubmitted SubmissionState = "not_submitted"
	SubmissionSubmitting   SubmissionState = "submitting"
	SubmissionSubmitted    SubmissionState = "submitted"
	SubmissionFailed       SubmissionState = "failed"
)

// QuizSession is the mutable aggregate driven by the engine. Cursor ranges
// over [0, N] where N is the length of the branch-resolved question sequence;
// cursor == N is the contact-info step. The branch is never stored here, it is
// derived from the bootstrap answer on demand.
type QuizSession struct {
	ID         string          `json:"id"`
	Answers    map[int]Answer  `json:"answers"`
	Cursor     int             `json:"cursor"`
	Contact    ContactInfo     `json:"contact"`
	Submission SubmissionState `json:"submission"`
	CreatedAt  time.Time       `json:"createdAt"`
	UpdatedAt  time.Time       `json:"updatedAt"`
}

// NewQuizSession returns an empty session in its initial state
func NewQuizSession(id string) *QuizSession {
	now := time.Now()
	return &QuizSession{
		ID:         id,
		Answers:    make(map[int]Answer),
		Cursor:     0,
		Submission: SubmissionNotSubmitted,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}
