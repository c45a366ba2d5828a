package catalog

import (
	"errors"
	"fmt"

	"leadquiz/internal/model"
)

var (
	ErrNoQuestions       = errors.New("catalog has no questions")
	ErrNoBootstrap       = errors.New("catalog position 0 must be the bootstrap question (branch BOTH)")
	ErrDuplicateID       = errors.New("duplicate question id")
	ErrMissingOptions    = errors.New("choice question has no options")
	ErrUnexpectedOptions = errors.New("free-text question has options")
)

// Catalog is the static, ordered definition of every question the quiz can
// ask. It is validated once at construction; a malformed catalog is a startup
// failure, never a runtime condition.
type Catalog struct {
	questions []model.Question
	byID      map[int]model.Question
	// branchOptions maps a bootstrap option label to the branch it resolves
	branchOptions map[string]model.Branch
}

// New validates the question list and the bootstrap option mapping.
// The first question must be the single bootstrap question (branch BOTH), and
// every bootstrap option must map to a concrete branch.
func New(questions []model.Question, branchOptions map[string]model.Branch) (*Catalog, error) {
	if len(questions) == 0 {
		return nil, ErrNoQuestions
	}
	if questions[0].Branch != model.BranchBoth {
		return nil, ErrNoBootstrap
	}

	byID := make(map[int]model.Question, len(questions))
	for i, q := range questions {
		if _, ok := byID[q.ID]; ok {
			return nil, fmt.Errorf("%w: %d", ErrDuplicateID, q.ID)
		}
		if q.Kind.NeedsOptions() && len(q.Options) == 0 {
			return nil, fmt.Errorf("%w: question %d", ErrMissingOptions, q.ID)
		}
		if q.Kind == model.KindFreeText && len(q.Options) > 0 {
			return nil, fmt.Errorf("%w: question %d", ErrUnexpectedOptions, q.ID)
		}
		if i > 0 && q.Branch == model.BranchBoth {
			// Only position 0 may carry BOTH; later shared questions would
			// make the bootstrap ambiguous.
			return nil, fmt.Errorf("%w: question %d also has branch BOTH", ErrNoBootstrap, q.ID)
		}
		byID[q.ID] = q
	}

	for _, opt := range questions[0].Options {
		branch, ok := branchOptions[opt]
		if !ok {
			return nil, fmt.Errorf("bootstrap option %q has no branch mapping", opt)
		}
		if branch != model.BranchBuyer && branch != model.BranchSeller {
			return nil, fmt.Errorf("bootstrap option %q maps to invalid branch %q", opt, branch)
		}
	}

	return &Catalog{
		questions:     questions,
		byID:          byID,
		branchOptions: branchOptions,
	}, nil
}

// Bootstrap returns the always-first question whose answer determines the branch
func (c *Catalog) Bootstrap() model.Question {
	return c.questions[0]
}

// Get looks up a question by ID
func (c *Catalog) Get(id int) (model.Question, bool) {
	q, ok := c.byID[id]
	return q, ok
}

// BranchFor maps a bootstrap answer value to its branch; BranchUnresolved for
// anything that is not a known bootstrap option
func (c *Catalog) BranchFor(value string) model.Branch {
	if b, ok := c.branchOptions[value]; ok {
		return b
	}
	return model.BranchUnresolved
}

// Resolve returns the ordered question sequence applicable to a branch.
// Unresolved yields just the bootstrap question; a concrete branch yields
// every question tagged with that branch or BOTH, in catalog order. Pure and
// deterministic: same input, same sequence.
func (c *Catalog) Resolve(branch model.Branch) []model.Question {
	if branch == model.BranchUnresolved {
		return []model.Question{c.questions[0]}
	}

	resolved := make([]model.Question, 0, len(c.questions))
	for _, q := range c.questions {
		if q.Branch == branch || q.Branch == model.BranchBoth {
			resolved = append(resolved, q)
		}
	}
	return resolved
}
