package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"leadquiz/internal/engine"
	"leadquiz/internal/model"
	"leadquiz/internal/service"
)

// QuizHandler handles quiz session endpoints
type QuizHandler struct {
	quizSvc *service.QuizService
}

// NewQuizHandler creates a new quiz handler
func NewQuizHandler(quizSvc *service.QuizService) *QuizHandler {
	return &QuizHandler{quizSvc: quizSvc}
}

// Create handles POST /v1/quiz/sessions
func (h *QuizHandler) Create(w http.ResponseWriter, r *http.Request) {
	view, err := h.quizSvc.CreateSession(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, view)
}

// Get handles GET /v1/quiz/sessions/{id}
func (h *QuizHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.quizSvc.GetView(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// RecordAnswer handles PUT /v1/quiz/sessions/{id}/answers/{questionId}
func (h *QuizHandler) RecordAnswer(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.Atoi(mux.Vars(r)["questionId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question id")
		return
	}

	var answer model.Answer
	if err := json.NewDecoder(r.Body).Decode(&answer); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.quizSvc.RecordAnswer(r.Context(), mux.Vars(r)["id"], questionID, answer)
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ToggleRequest is the request body for toggling a multi-select option
type ToggleRequest struct {
	Option string `json:"option"`
}

// ToggleOption handles POST /v1/quiz/sessions/{id}/answers/{questionId}/toggle
func (h *QuizHandler) ToggleOption(w http.ResponseWriter, r *http.Request) {
	questionID, err := strconv.Atoi(mux.Vars(r)["questionId"])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid question id")
		return
	}

	var req ToggleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.quizSvc.ToggleOption(r.Context(), mux.Vars(r)["id"], questionID, req.Option)
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Advance handles POST /v1/quiz/sessions/{id}/advance
func (h *QuizHandler) Advance(w http.ResponseWriter, r *http.Request) {
	view, err := h.quizSvc.Advance(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Retreat handles POST /v1/quiz/sessions/{id}/retreat
func (h *QuizHandler) Retreat(w http.ResponseWriter, r *http.Request) {
	view, err := h.quizSvc.Retreat(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// SetContact handles PUT /v1/quiz/sessions/{id}/contact
func (h *QuizHandler) SetContact(w http.ResponseWriter, r *http.Request) {
	var contact model.ContactInfo
	if err := json.NewDecoder(r.Body).Decode(&contact); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	view, err := h.quizSvc.SetContact(r.Context(), mux.Vars(r)["id"], contact)
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Submit handles POST /v1/quiz/sessions/{id}/submit. A delivery failure is
// not an HTTP error: the view comes back with submission "failed" and every
// answer intact, so the client shows a dismissible notice and may retry.
func (h *QuizHandler) Submit(w http.ResponseWriter, r *http.Request) {
	view, err := h.quizSvc.Submit(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// Reset handles POST /v1/quiz/sessions/{id}/reset
func (h *QuizHandler) Reset(w http.ResponseWriter, r *http.Request) {
	view, err := h.quizSvc.Reset(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeQuizError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// writeQuizError maps engine and service errors onto HTTP statuses
func writeQuizError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, engine.ErrUnknownQuestion):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, engine.ErrNotIdentified):
		// The identification challenge: the client opens the sign-in flow
		// and retries the same call with the respondent token
		writeJSON(w, http.StatusUnauthorized, map[string]string{
			"error":     err.Error(),
			"challenge": "identify",
		})
	case errors.Is(err, engine.ErrInvalidAnswerShape):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, engine.ErrNotReady), errors.Is(err, engine.ErrAlreadySubmitted):
		writeError(w, http.StatusConflict, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
