package handler

import (
	"net/http"

	"leadquiz/internal/service"
)

// LeadHandler handles back-office submission listing
type LeadHandler struct {
	leadSvc *service.LeadService
}

// NewLeadHandler creates a new lead handler
func NewLeadHandler(leadSvc *service.LeadService) *LeadHandler {
	return &LeadHandler{leadSvc: leadSvc}
}

// List handles GET /v1/leads
func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	records, err := h.leadSvc.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"count": len(records),
		"leads": records,
	})
}
