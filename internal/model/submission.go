package model

import "time"

// QA is one (prompt, formatted value) pair in a submission payload, in
// resolved catalog order
type QA struct {
	QuestionID int    `json:"questionId" bson:"questionId"`
	Prompt     string `json:"prompt" bson:"prompt"`
	Value      string `json:"value" bson:"value"`
}

// SubmissionPayload is the canonical flattened view of a completed session.
// Every delivery call site builds it through the same encoder, never ad hoc.
type SubmissionPayload struct {
	SubmissionID string      `json:"submissionId" bson:"submissionId"`
	SessionID    string      `json:"sessionId" bson:"sessionId"`
	Branch       Branch      `json:"branch" bson:"branch"`
	Contact      ContactInfo `json:"contact" bson:"contact"`
	Entries      []QA        `json:"entries" bson:"entries"`
	SubmittedAt  time.Time   `json:"submittedAt" bson:"submittedAt"`
}

// SubmissionRecord is an archived submission plus its delivery outcome
type SubmissionRecord struct {
	ID        string            `json:"id" bson:"_id,omitempty"`
	Payload   SubmissionPayload `json:"payload" bson:"payload"`
	Delivered bool              `json:"delivered" bson:"delivered"`
	Error     string            `json:"error,omitempty" bson:"error,omitempty"`
	StoredAt  time.Time         `json:"storedAt" bson:"storedAt"`
}
