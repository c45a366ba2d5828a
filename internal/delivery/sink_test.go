package delivery

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadquiz/internal/model"
)

func testPayload() *model.SubmissionPayload {
	return &model.SubmissionPayload{
		SubmissionID: "sub-1",
		SessionID:    "sess-1",
		Branch:       model.BranchBuyer,
		Contact: model.ContactInfo{
			FullName:     "Jo Doe",
			EmailAddress: "jo@example.com",
			PhoneNumber:  "555-0100",
		},
		Entries: []model.QA{
			{QuestionID: 1, Prompt: "Buying or selling?", Value: "Buy"},
			{QuestionID: 2, Prompt: "Timeline?", Value: "Now"},
		},
		SubmittedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestDeliverQueryTransport(t *testing.T) {
	var gotMethod string
	var gotQuery map[string][]string
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotQuery = r.URL.Query()
		w.WriteHeader(http.StatusOK)
	}))
	defer sink.Close()

	client := NewWebhookClient(sink.URL, TransportQuery, time.Second)
	err := client.Deliver(context.Background(), testPayload())
	require.NoError(t, err)

	assert.Equal(t, http.MethodGet, gotMethod)
	assert.Equal(t, "sub-1", gotQuery["submissionId"][0])
	assert.Equal(t, "BUYER", gotQuery["branch"][0])
	assert.Equal(t, "jo@example.com", gotQuery["email"][0])
	assert.Equal(t, "Buy", gotQuery["q.1"][0])
	assert.Equal(t, "2026-03-01T12:00:00Z", gotQuery["submittedAt"][0])
}

func TestDeliverJSONTransport(t *testing.T) {
	var gotMethod, gotContentType string
	var gotBody []byte
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
	}))
	defer sink.Close()

	client := NewWebhookClient(sink.URL, TransportJSON, time.Second)
	err := client.Deliver(context.Background(), testPayload())
	require.NoError(t, err)

	assert.Equal(t, http.MethodPost, gotMethod)
	assert.Equal(t, "application/json", gotContentType)

	var decoded model.SubmissionPayload
	require.NoError(t, json.Unmarshal(gotBody, &decoded))
	assert.Equal(t, "sub-1", decoded.SubmissionID)
	assert.Equal(t, model.BranchBuyer, decoded.Branch)
	assert.Len(t, decoded.Entries, 2)
}

func TestDeliverServerErrorReason(t *testing.T) {
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer sink.Close()

	client := NewWebhookClient(sink.URL, TransportQuery, time.Second)
	err := client.Deliver(context.Background(), testPayload())
	require.Error(t, err)

	var de *DeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, ReasonServer, de.Reason)
}

func TestDeliverTimeoutReason(t *testing.T) {
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))
	defer sink.Close()

	client := NewWebhookClient(sink.URL, TransportQuery, 20*time.Millisecond)
	err := client.Deliver(context.Background(), testPayload())
	require.Error(t, err)

	var de *DeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, ReasonTimeout, de.Reason)
}

func TestDeliverNetworkReason(t *testing.T) {
	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	sink.Close() // nothing listening anymore

	client := NewWebhookClient(sink.URL, TransportQuery, time.Second)
	err := client.Deliver(context.Background(), testPayload())
	require.Error(t, err)

	var de *DeliveryError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, ReasonNetwork, de.Reason)
}

func TestFlattenKeyLayout(t *testing.T) {
	values := Flatten(testPayload())

	assert.Equal(t, "sub-1", values.Get("submissionId"))
	assert.Equal(t, "sess-1", values.Get("sessionId"))
	assert.Equal(t, "BUYER", values.Get("branch"))
	assert.Equal(t, "Jo Doe", values.Get("name"))
	assert.Equal(t, "jo@example.com", values.Get("email"))
	assert.Equal(t, "555-0100", values.Get("phone"))
	assert.Equal(t, "2026-03-01T12:00:00Z", values.Get("submittedAt"))
	assert.Equal(t, "Buy", values.Get("q.1"))
	assert.Equal(t, "Now", values.Get("q.2"))
}

func TestFlattenPromptCannotShadowReservedKeys(t *testing.T) {
	p := testPayload()
	p.Entries = append(p.Entries,
		model.QA{QuestionID: 9, Prompt: "email", Value: "spoof@example.com"},
		model.QA{QuestionID: 10, Prompt: "Timeline?", Value: "Later"})

	values := Flatten(p)
	assert.Equal(t, "jo@example.com", values.Get("email"), "contact fields keep their keys")
	assert.Equal(t, "spoof@example.com", values.Get("q.9"))
	assert.Equal(t, "Now", values.Get("q.2"), "a duplicate prompt cannot overwrite another answer")
	assert.Equal(t, "Later", values.Get("q.10"))
}
