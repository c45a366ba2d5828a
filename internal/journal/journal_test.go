package journal

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadquiz/internal/model"
)

func testRecord(id string) *model.SubmissionRecord {
	return &model.SubmissionRecord{
		ID: id,
		Payload: model.SubmissionPayload{
			SubmissionID: id,
			SessionID:    "sess-1",
			Branch:       model.BranchSeller,
			Contact:      model.ContactInfo{FullName: "Jo Doe", EmailAddress: "jo@example.com", PhoneNumber: "555-0100"},
			Entries:      []model.QA{{QuestionID: 1, Prompt: "Buying or selling?", Value: "I'm looking to sell"}},
			SubmittedAt:  time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		},
		Delivered: true,
		StoredAt:  time.Date(2026, 3, 1, 12, 0, 1, 0, time.UTC),
	}
}

func TestAppendAndReadAll(t *testing.T) {
	j, err := NewFileJournal(filepath.Join(t.TempDir(), "leads.journal"))
	require.NoError(t, err)

	require.NoError(t, j.Append(testRecord("a")))
	require.NoError(t, j.Append(testRecord("b")))

	records, err := j.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "a", records[0].ID)
	assert.Equal(t, "b", records[1].ID)
	assert.Equal(t, model.BranchSeller, records[0].Payload.Branch)
	assert.True(t, records[0].Delivered)
}

func TestReadAllMissingFile(t *testing.T) {
	j := &FileJournal{path: filepath.Join(t.TempDir(), "never-created.journal")}

	records, err := j.ReadAll()
	require.NoError(t, err)
	assert.Nil(t, records)
}

func TestReadAllSkipsTornTrailingLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "leads.journal")
	j, err := NewFileJournal(path)
	require.NoError(t, err)

	require.NoError(t, j.Append(testRecord("a")))

	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString(`{"id":"torn`)
	require.NoError(t, err)
	require.NoError(t, f.Close())

	records, err := j.ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "a", records[0].ID)
}

func TestConcurrentAppends(t *testing.T) {
	j, err := NewFileJournal(filepath.Join(t.TempDir(), "leads.journal"))
	require.NoError(t, err)

	const n = 20
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, j.Append(testRecord(fmt.Sprintf("rec-%d", i))))
		}()
	}
	wg.Wait()

	records, err := j.ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, n)
}
