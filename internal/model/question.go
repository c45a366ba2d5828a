package model

// QuestionKind defines the shape of a valid answer
type QuestionKind string

const (
	KindFreeText     QuestionKind = "FREE_TEXT"     // Typed response, placeholder allowed
	KindSingleSelect QuestionKind = "SINGLE_SELECT" // One option from a dropdown
	KindMultiSelect  QuestionKind = "MULTI_SELECT"  // Any number of options, toggled
	KindSingleChoice QuestionKind = "SINGLE_CHOICE" // One option from a button row
)

// Branch is the respondent-selected track through the questionnaire
type Branch string

const (
	BranchUnresolved Branch = ""       // Bootstrap question not answered yet
	BranchBuyer      Branch = "BUYER"  // Looking to buy
	BranchSeller     Branch = "SELLER" // Looking to sell
	BranchBoth       Branch = "BOTH"   // Question applies to both tracks
)

// Question is an immutable catalog entry. Answers are keyed by ID, never by
// position, so reordering the catalog must not renumber questions.
type Question struct {
	ID          int          `json:"id"`
	Prompt      string       `json:"prompt"`
	HelpText    string       `json:"helpText,omitempty"`
	Kind        QuestionKind `json:"kind"`
	Options     []string     `json:"options,omitempty"`     // Required for select/choice kinds
	Placeholder string       `json:"placeholder,omitempty"` // FREE_TEXT only
	Branch      Branch       `json:"branch"`
}

// NeedsOptions reports whether the kind requires a non-empty option list
func (k QuestionKind) NeedsOptions() bool {
	return k == KindSingleSelect || k == KindMultiSelect || k == KindSingleChoice
}

// HasOption reports whether value is one of the question's options
func (q *Question) HasOption(value string) bool {
	for _, opt := range q.Options {
		if opt == value {
			return true
		}
	}
	return false
}
