package model

// Answer holds a respondent's value for one question. Exactly one field group
// is populated, matching the question kind.
type Answer struct {
	Text       string   `json:"text,omitempty"`       // FREE_TEXT
	Selected   string   `json:"selected,omitempty"`   // SINGLE_SELECT / SINGLE_CHOICE
	Selections []string `json:"selections,omitempty"` // MULTI_SELECT, no duplicates
}

// HasSelection reports whether option is already in the MULTI_SELECT set
func (a *Answer) HasSelection(option string) bool {
	for _, s := range a.Selections {
		if s == option {
			return true
		}
	}
	return false
}

// IsEmpty reports whether no value of any shape has been recorded
func (a *Answer) IsEmpty() bool {
	return a.Text == "" && a.Selected == "" && len(a.Selections) == 0
}

// ContactInfo is collected once after the branch questions are exhausted.
// All three fields must be non-empty at submission time.
type ContactInfo struct {
	FullName     string `json:"fullName"`
	EmailAddress string `json:"emailAddress"`
	PhoneNumber  string `json:"phoneNumber"`
}

// Complete reports whether all contact fields are filled in
func (c *ContactInfo) Complete() bool {
	return c.FullName != "" && c.EmailAddress != "" && c.PhoneNumber != ""
}
