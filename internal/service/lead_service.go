package service

import (
	"context"
	"log"

	"leadquiz/internal/model"
	"leadquiz/internal/repository"
)

// JournalReader reads back the durable local log for display
type JournalReader interface {
	ReadAll() ([]*model.SubmissionRecord, error)
}

// LeadService serves stored submissions to the back office. The mongo
// archive is preferred; when it is empty or unavailable the journal is the
// source of truth, so nothing the pipeline stored is ever invisible.
type LeadService struct {
	archive repository.SubmissionRepo
	journal JournalReader
}

// NewLeadService creates a new lead service; archive may be nil
func NewLeadService(archive repository.SubmissionRepo, journal JournalReader) *LeadService {
	return &LeadService{archive: archive, journal: journal}
}

// List returns all stored submissions, newest first where the store sorts
func (s *LeadService) List(ctx context.Context) ([]*model.SubmissionRecord, error) {
	if s.archive != nil {
		records, err := s.archive.List(ctx)
		if err == nil && len(records) > 0 {
			return records, nil
		}
		if err != nil {
			log.Printf("[Leads] archive list failed, falling back to journal: %v", err)
		}
	}
	return s.journal.ReadAll()
}
