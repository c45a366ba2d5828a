package catalog

import "leadquiz/internal/model"

// Bootstrap option labels; the branch mapping keys on them
const (
	OptionBuying  = "I'm looking to buy"
	OptionSelling = "I'm looking to sell"
)

// Default returns the production lead-qualification catalog: one bootstrap
// question followed by a buyer track and a seller track.
func Default() *Catalog {
	questions := []model.Question{
		{
			ID:     1,
			Prompt: "What brings you here today?",
			Kind:   model.KindSingleChoice,
			Options: []string{
				OptionBuying,
				OptionSelling,
			},
			Branch: model.BranchBoth,
		},

		// Buyer track
		{
			ID:       10,
			Prompt:   "When are you hoping to buy?",
			Kind:     model.KindSingleChoice,
			Options:  []string{"ASAP", "1-3 months", "3-6 months", "6+ months", "Just browsing"},
			Branch:   model.BranchBuyer,
			HelpText: "A rough timeline helps us prioritize your search.",
		},
		{
			ID:      11,
			Prompt:  "Have you been pre-approved for a mortgage?",
			Kind:    model.KindSingleChoice,
			Options: []string{"Yes", "No", "Paying cash"},
			Branch:  model.BranchBuyer,
		},
		{
			ID:      12,
			Prompt:  "What's your price range?",
			Kind:    model.KindSingleSelect,
			Options: []string{"Under $300k", "$300k-$500k", "$500k-$750k", "$750k-$1M", "Over $1M"},
			Branch:  model.BranchBuyer,
		},
		{
			ID:      13,
			Prompt:  "What types of property are you considering?",
			Kind:    model.KindMultiSelect,
			Options: []string{"Single family", "Condo", "Townhouse", "Multi-family", "Land"},
			Branch:  model.BranchBuyer,
		},
		{
			ID:          14,
			Prompt:      "Anything that's a must-have?",
			Kind:        model.KindFreeText,
			Placeholder: "Garage, big yard, home office...",
			Branch:      model.BranchBuyer,
		},

		// Seller track
		{
			ID:      20,
			Prompt:  "Why are you selling?",
			Kind:    model.KindSingleSelect,
			Options: []string{"Upsizing", "Downsizing", "Relocating", "Investment property", "Other"},
			Branch:  model.BranchSeller,
		},
		{
			ID:      21,
			Prompt:  "When do you need to sell by?",
			Kind:    model.KindSingleChoice,
			Options: []string{"ASAP", "1-3 months", "3-6 months", "No rush"},
			Branch:  model.BranchSeller,
		},
		{
			ID:      22,
			Prompt:  "What type of property is it?",
			Kind:    model.KindSingleChoice,
			Options: []string{"Single family", "Condo", "Townhouse", "Multi-family", "Land"},
			Branch:  model.BranchSeller,
		},
		{
			ID:       23,
			Prompt:   "Which of these apply to the property?",
			Kind:     model.KindMultiSelect,
			Options:  []string{"Recently renovated", "Needs repairs", "Currently rented", "Vacant", "Mortgage paid off"},
			Branch:   model.BranchSeller,
			HelpText: "Select all that apply.",
		},
		{
			ID:          24,
			Prompt:      "What's the property address?",
			Kind:        model.KindFreeText,
			Placeholder: "123 Main St, Springfield",
			Branch:      model.BranchSeller,
		},
	}

	branchOptions := map[string]model.Branch{
		OptionBuying:  model.BranchBuyer,
		OptionSelling: model.BranchSeller,
	}

	cat, err := New(questions, branchOptions)
	if err != nil {
		// The default catalog is compiled in; failing validation is a bug
		panic(err)
	}
	return cat
}
