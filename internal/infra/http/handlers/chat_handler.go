package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/directorcrm/instagram-crm/internal/entity"
	"github.com/directorcrm/instagram-crm/internal/infra/http/middleware"
	"github.com/directorcrm/instagram-crm/internal/usecase"
)

type MessageSender interface {
	Execute(ctx context.Context, input usecase.SendMessageInput) (*usecase.SendMessageOutput, error)
}

type HistorySyncer interface {
	Execute(ctx context.Context, leadID, igID string) int
}

type ChatHandler struct {
	Leads    entity.LeadRepositoryInterface
	Messages entity.MessageRepositoryInterface
	Sender   MessageSender
	Syncer   HistorySyncer
}

func NewChatHandler(
	leads entity.LeadRepositoryInterface,
	messages entity.MessageRepositoryInterface,
	sender MessageSender,
	syncer HistorySyncer,
) *ChatHandler {
	return &ChatHandler{Leads: leads, Messages: messages, Sender: sender, Syncer: syncer}
}

// HandleGetChat (GET /chats/{id}?sync=) — mensagens em ordem de timestamp.
// Com sync=true o transcript remoto é reconciliado antes da leitura.
func (h *ChatHandler) HandleGetChat(w http.ResponseWriter, r *http.Request) {
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

	if r.URL.Query().Get("sync") == "true" {
		synced := h.Syncer.Execute(r.Context(), lead.ID, lead.IGID)
		middleware.RecordHistorySynced(synced)
	}

	messages, err := h.Messages.ListByLead(r.Context(), lead.ID)
	if err != nil {
		writeStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// HandleSend (POST /chats/{id}/send) — relay + persistência incondicional.
// Sempre 201 com o registro gravado; o resultado do relay vai junto.
func (h *ChatHandler) HandleSend(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	var input struct {
		Message string `json:"message"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	output, err := h.Sender.Execute(r.Context(), usecase.SendMessageInput{
		LeadID: leadID,
		Text:   input.Message,
	})
	if err != nil {
		if errors.Is(err, entity.ErrLeadNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "LEAD_NOT_FOUND", "lead não encontrado")
			return
		}
		if usecase.IsValidationError(err) {
			writeErrorResponse(w, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		writeStorageError(w, err)
		return
	}

	if output.InstagramSent {
		middleware.RecordRelay("sent")
	} else {
		middleware.RecordRelay("failed")
		middleware.RecordIntegrationError("instagram")
	}

	writeJSON(w, http.StatusCreated, output)
}

// HandleSync (POST /chats/{id}/sync) — reconciliação sob demanda.
func (h *ChatHandler) HandleSync(w http.ResponseWriter, r *http.Request) {
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

	synced := h.Syncer.Execute(r.Context(), lead.ID, lead.IGID)
	middleware.RecordHistorySynced(synced)

	writeJSON(w, http.StatusOK, map[string]int{"syncedCount": synced})
}
