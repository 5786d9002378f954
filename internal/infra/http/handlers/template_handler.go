package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/directorcrm/instagram-crm/internal/entity"
)

type TemplateHandler struct {
	Templates entity.TemplateRepositoryInterface
}

func NewTemplateHandler(templates entity.TemplateRepositoryInterface) *TemplateHandler {
	return &TemplateHandler{Templates: templates}
}

type templateInput struct {
	Name     string `json:"name"`
	Content  string `json:"content"`
	Category string `json:"category"`
}

func (h *TemplateHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	templates, err := h.Templates.List(r.Context())
	if err != nil {
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, templates)
}

func (h *TemplateHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	tpl, err := h.Templates.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrTemplateNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "TEMPLATE_NOT_FOUND", "template não encontrado")
			return
		}
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, tpl)
}

func (h *TemplateHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var input templateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}

	tpl, err := entity.NewMessageTemplate(input.Name, input.Content, input.Category)
	if err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", err.Error())
		return
	}

	if err := h.Templates.Create(r.Context(), tpl); err != nil {
		writeStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, tpl)
}

func (h *TemplateHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	var input templateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeErrorResponse(w, http.StatusBadRequest, "INVALID_JSON", "JSON inválido")
		return
	}
	if input.Name == "" || input.Content == "" {
		writeErrorResponse(w, http.StatusBadRequest, "MISSING_FIELDS", "name and content are required")
		return
	}

	tpl, err := h.Templates.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrTemplateNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "TEMPLATE_NOT_FOUND", "template não encontrado")
			return
		}
		writeStorageError(w, err)
		return
	}

	tpl.Name = input.Name
	tpl.Content = input.Content
	tpl.Category = input.Category

	if err := h.Templates.Update(r.Context(), tpl); err != nil {
		if errors.Is(err, entity.ErrTemplateNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "TEMPLATE_NOT_FOUND", "template não encontrado")
			return
		}
		writeStorageError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tpl)
}

func (h *TemplateHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.Templates.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, entity.ErrTemplateNotFound) {
			writeErrorResponse(w, http.StatusNotFound, "TEMPLATE_NOT_FOUND", "template não encontrado")
			return
		}
		writeStorageError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}
