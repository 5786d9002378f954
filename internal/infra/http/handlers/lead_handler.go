package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/directorcrm/instagram-crm/internal/entity"
)

type LeadHandler struct {
	Leads    entity.LeadRepositoryInterface
	Messages entity.MessageRepositoryInterface
}

func NewLeadHandler(leads entity.LeadRepositoryInterface, messages entity.MessageRepositoryInterface) *LeadHandler {
	return &LeadHandler{Leads: leads, Messages: messages}
}

// HandleList (GET /leads?status=) — "all" ou vazio lista tudo.
func (h *LeadHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	if status != "" && status != "all" && !entity.LeadStatus(status).Valid() {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_STATUS", "status desconhecido: "+status)
		return
	}

	leads, err := h.Leads.List(r.Context(), status)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, leads)
}

// HandleGet (GET /leads/{id}) — lead + mensagens em ordem de timestamp.
func (h *LeadHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	lead, err := h.Leads.FindByID(r.Context(), leadID)
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "LEAD_NOT_FOUND", "lead não encontrado")
			return
		}
		writeStorageError(w, err)
		return
	}

	messages, err := h.Messages.ListByLead(r.Context(), leadID)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"lead":     lead,
		"messages": messages,
	})
}

// HandleUpdateStatus (PATCH /leads/{id}) — transição livre dentro do enum.
func (h *LeadHandler) HandleUpdateStatus(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	var input struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	status := entity.LeadStatus(input.Status)
	if !status.Valid() {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_STATUS", "status desconhecido: "+input.Status)
		return
	}

	if err := h.Leads.UpdateStatus(r.Context(), leadID, status); err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "LEAD_NOT_FOUND", "lead não encontrado")
			return
		}
		writeStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": leadID, "status": input.Status})
}

// HandleStatuses (GET /lead-statuses) — enumeração estática para o front.
func (h *LeadHandler) HandleStatuses(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, entity.AllStatuses)
}
