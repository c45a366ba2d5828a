package delivery

import (
	"net/url"
	"strconv"
	"time"

	"leadquiz/internal/model"
)

// Flatten encodes a submission payload as url.Values, the query-string form
// of the webhook contract. Every call site goes through this one encoder so
// the sink always sees the same key layout regardless of where the
// submission originated. Answers are keyed by question id ("q.<id>"), not by
// prompt, so a prompt can never collide with a reserved key or with another
// prompt.
func Flatten(p *model.SubmissionPayload) url.Values {
	values := url.Values{}
	values.Set("submissionId", p.SubmissionID)
	values.Set("sessionId", p.SessionID)
	values.Set("branch", string(p.Branch))
	values.Set("name", p.Contact.FullName)
	values.Set("email", p.Contact.EmailAddress)
	values.Set("phone", p.Contact.PhoneNumber)
	values.Set("submittedAt", p.SubmittedAt.UTC().Format(time.RFC3339))

	for _, qa := range p.Entries {
		values.Set("q."+strconv.Itoa(qa.QuestionID), qa.Value)
	}
	return values
}
