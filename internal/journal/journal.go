// Package journal is the durable local fallback store for submissions: an
// append-only list of records, one JSON document per line. It guarantees no
// submitted lead is lost even if the delivery sink is permanently unreachable.
// It is deliberately not a database: append and full read are the only
// operations.
package journal

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"leadquiz/internal/model"
)

// FileJournal appends records to a single JSONL file. Appends are additive
// only (O_APPEND, one write per entry), so concurrent appends can interleave
// entries but never corrupt prior ones.
type FileJournal struct {
	path string
	mu   sync.Mutex
}

// NewFileJournal opens (or creates) the journal file at path
func NewFileJournal(path string) (*FileJournal, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	f.Close()
	return &FileJournal{path: path}, nil
}

// Append adds one record to the end of the journal
func (j *FileJournal) Append(record *model.SubmissionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to encode journal entry: %w", err)
	}
	data = append(data, '\n')

	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.OpenFile(j.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to append journal entry: %w", err)
	}
	return nil
}

// ReadAll returns every record in append order. Used only for the
// back-office display; the journal has no query surface.
func (j *FileJournal) ReadAll() ([]*model.SubmissionRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()

	f, err := os.Open(j.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open journal: %w", err)
	}
	defer f.Close()

	var records []*model.SubmissionRecord
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var rec model.SubmissionRecord
		if err := json.Unmarshal(line, &rec); err != nil {
			// A torn trailing line must not hide the intact entries before it
			continue
		}
		records = append(records, &rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read journal: %w", err)
	}
	return records, nil
}
