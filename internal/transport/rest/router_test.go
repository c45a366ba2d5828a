package rest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadquiz/internal/cache"
	"leadquiz/internal/catalog"
	"leadquiz/internal/delivery"
	"leadquiz/internal/engine"
	"leadquiz/internal/journal"
	"leadquiz/internal/model"
	"leadquiz/internal/service"
	"leadquiz/internal/transport/rest/middleware"
	"leadquiz/internal/transport/ws"
)

// newTestServer wires the full HTTP surface over in-process dependencies and
// a stub webhook sink.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	sink := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(sink.Close)

	leadJournal, err := journal.NewFileJournal(filepath.Join(t.TempDir(), "leads.journal"))
	require.NoError(t, err)

	eng := engine.New(catalog.Default(), middleware.ContextGate{})
	client := delivery.NewWebhookClient(sink.URL, delivery.TransportQuery, time.Second)
	pipeline := delivery.NewPipeline(client, leadJournal, nil)

	authSvc := service.NewAuthService()
	quizSvc := service.NewQuizService(eng, cache.NewMemorySessionCache(), pipeline)
	hub := ws.NewHub()
	quizSvc.SetNotifier(hub)

	router := NewRouter(&Container{
		AuthService: authSvc,
		QuizService: quizSvc,
		LeadService: service.NewLeadService(nil, leadJournal),
		WSHub:       hub,
	})

	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv
}

func doJSON(t *testing.T, method, url, token string, body interface{}) (*http.Response, map[string]json.RawMessage) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })

	var fields map[string]json.RawMessage
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&fields))
	return resp, fields
}

func strField(t *testing.T, fields map[string]json.RawMessage, key string) string {
	t.Helper()
	var s string
	require.NoError(t, json.Unmarshal(fields[key], &s))
	return s
}

func TestHealthEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestQuizFlowWithIdentificationChallenge(t *testing.T) {
	srv := newTestServer(t)

	// Start a session
	resp, fields := doJSON(t, http.MethodPost, srv.URL+"/v1/quiz/sessions", "", nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	sessionID := strField(t, fields, "sessionId")
	require.NotEmpty(t, sessionID)

	// Answer the bootstrap question
	resp, _ = doJSON(t, http.MethodPut,
		fmt.Sprintf("%s/v1/quiz/sessions/%s/answers/1", srv.URL, sessionID), "",
		model.Answer{Selected: catalog.OptionBuying})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Advancing anonymously triggers the identification challenge
	resp, fields = doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/v1/quiz/sessions/%s/advance", srv.URL, sessionID), "", nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "identify", strField(t, fields, "challenge"))

	// Identify, then retry the same call with the token
	resp, fields = doJSON(t, http.MethodPost, srv.URL+"/v1/auth/identify", "",
		model.IdentifyRequest{Email: "jo@example.com"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	token := strField(t, fields, "token")
	require.NotEmpty(t, token)

	resp, fields = doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/v1/quiz/sessions/%s/advance", srv.URL, sessionID), token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var progress float64
	require.NoError(t, json.Unmarshal(fields["progress"], &progress))
	assert.Greater(t, progress, 0.0)
}

func TestAnswerValidationErrors(t *testing.T) {
	srv := newTestServer(t)

	_, fields := doJSON(t, http.MethodPost, srv.URL+"/v1/quiz/sessions", "", nil)
	sessionID := strField(t, fields, "sessionId")

	// Unknown question
	resp, _ := doJSON(t, http.MethodPut,
		fmt.Sprintf("%s/v1/quiz/sessions/%s/answers/999", srv.URL, sessionID), "",
		model.Answer{Text: "x"})
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)

	// Option outside the list
	resp, _ = doJSON(t, http.MethodPut,
		fmt.Sprintf("%s/v1/quiz/sessions/%s/answers/1", srv.URL, sessionID), "",
		model.Answer{Selected: "I'm just browsing"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// Submitting an empty session conflicts
	resp, _ = doJSON(t, http.MethodPost,
		fmt.Sprintf("%s/v1/quiz/sessions/%s/submit", srv.URL, sessionID), "", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)
}

func TestUnknownSessionReturnsNotFound(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/quiz/sessions/does-not-exist")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestLeadsRequireAgentToken(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/v1/leads")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	// A self-served respondent token is not an agent token
	identResp, fields := doJSON(t, http.MethodPost, srv.URL+"/v1/auth/identify", "",
		model.IdentifyRequest{Email: "stranger@example.com"})
	require.Equal(t, http.StatusOK, identResp.StatusCode)
	respondentToken := strField(t, fields, "token")

	leadsResp, _ := doJSON(t, http.MethodGet, srv.URL+"/v1/leads", respondentToken, nil)
	assert.Equal(t, http.StatusUnauthorized, leadsResp.StatusCode)

	// Login and retry
	loginResp, fields := doJSON(t, http.MethodPost, srv.URL+"/v1/auth/login", "",
		model.LoginRequest{Username: "agent", Password: "password123"})
	require.Equal(t, http.StatusOK, loginResp.StatusCode)
	token := strField(t, fields, "token")

	resp2, fields := doJSON(t, http.MethodGet, srv.URL+"/v1/leads", token, nil)
	assert.Equal(t, http.StatusOK, resp2.StatusCode)

	var count int
	require.NoError(t, json.Unmarshal(fields["count"], &count))
	assert.Equal(t, 0, count)
}
