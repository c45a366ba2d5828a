package engine

import "errors"

var (
	// ErrUnknownQuestion means the question id is not in the catalog
	ErrUnknownQuestion = errors.New("unknown question")

	// ErrInvalidAnswerShape means the value does not match the question kind;
	// the session is left untouched
	ErrInvalidAnswerShape = errors.New("answer shape does not match question kind")

	// ErrNotIdentified means the auth gate refused an advance; the caller
	// should present the identification challenge and retry
	ErrNotIdentified = errors.New("respondent not identified")

	// ErrNotReady means the current step has no valid answer (or incomplete
	// contact info) so the transition is blocked
	ErrNotReady = errors.New("current step is not complete")

	// ErrAlreadySubmitted means the session has already been delivered
	ErrAlreadySubmitted = errors.New("session already submitted")
)
