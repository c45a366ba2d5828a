package delivery

import (
	"context"
	"errors"
	"log"
	"time"

	"leadquiz/internal/model"
)

// Journal is the durable local log every submission lands in, delivered or
// not (implemented by journal.FileJournal)
type Journal interface {
	Append(record *model.SubmissionRecord) error
}

// Archive stores records for back-office display, best effort only
// (implemented by repository.SubmissionRepo)
type Archive interface {
	Save(ctx context.Context, record *model.SubmissionRecord) error
}

// Sink delivers a payload to the external endpoint
type Sink interface {
	Deliver(ctx context.Context, p *model.SubmissionPayload) error
}

// Pipeline runs a submission through journal, sink and archive. The journal
// append comes first: a lead is never lost even when the sink is permanently
// unreachable, at the cost of possible duplicate delivery when the caller
// retries after a failure (accepted, there is no idempotency key).
type Pipeline struct {
	sink    Sink
	journal Journal
	archive Archive
}

// NewPipeline creates a submission pipeline. archive may be nil.
func NewPipeline(sink Sink, journal Journal, archive Archive) *Pipeline {
	return &Pipeline{sink: sink, journal: journal, archive: archive}
}

// Submit journals the payload, attempts delivery, and archives the outcome.
// The returned error is nil or a *DeliveryError; journal failures are the
// only hard failures because they break the durability guarantee.
func (p *Pipeline) Submit(ctx context.Context, payload *model.SubmissionPayload) (*model.SubmissionRecord, error) {
	record := &model.SubmissionRecord{
		ID:       payload.SubmissionID,
		Payload:  *payload,
		StoredAt: time.Now(),
	}

	if err := p.journal.Append(record); err != nil {
		log.Printf("[Pipeline] ERROR: journal append failed: %v", err)
		return nil, err
	}

	deliverErr := p.sink.Deliver(ctx, payload)
	record.Delivered = deliverErr == nil
	if deliverErr != nil {
		record.Error = deliverErr.Error()
	}

	if p.archive != nil {
		if err := p.archive.Save(ctx, record); err != nil {
			// Display-only store, the journal already has the lead
			log.Printf("[Pipeline] archive save failed: %v", err)
		}
	}

	return record, deliverErr
}

// FailureReasonOf extracts the typed reason from a pipeline error, or empty
// when the error is not a delivery failure
func FailureReasonOf(err error) FailureReason {
	var de *DeliveryError
	if errors.As(err, &de) {
		return de.Reason
	}
	return ""
}
