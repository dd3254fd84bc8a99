package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lfcamargo/crm-leads/internal/entity"
	"github.com/lfcamargo/crm-leads/internal/infra/http/middleware"
	"github.com/lfcamargo/crm-leads/internal/usecase"
)

type ContactHandler struct {
	Service *usecase.ContactService
}

func NewContactHandler(service *usecase.ContactService) *ContactHandler {
	return &ContactHandler{Service: service}
}

func (h *ContactHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/type/{type}", h.ListByType)
	r.Get("/count/{type}", h.CountByType)
	r.Get("/assigned/{userId}", h.ListByAssignedUser)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

func (h *ContactHandler) Create(w http.ResponseWriter, r *http.Request) {
	var input usecase.ContactCreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "INVALID_JSON", Message: "invalid JSON body"})
		return
	}

	contact, err := h.Service.CreateContact(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordContactCreated("direct")
	writeJSON(w, http.StatusCreated, contact)
}

func (h *ContactHandler) Get(w http.ResponseWriter, r *http.Request) {
	contact, err := h.Service.GetContactByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) List(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Service.GetAllContacts(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) ListByType(w http.ResponseWriter, r *http.Request) {
	contactType := entity.ContactType(chi.URLParam(r, "type"))
	if !contactType.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "INVALID_TYPE", Message: "unknown contact type"})
		return
	}

	contacts, err := h.Service.GetContactsByType(r.Context(), contactType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) ListByAssignedUser(w http.ResponseWriter, r *http.Request) {
	contacts, err := h.Service.GetContactsByAssignedUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contacts)
}

func (h *ContactHandler) CountByType(w http.ResponseWriter, r *http.Request) {
	contactType := entity.ContactType(chi.URLParam(r, "type"))
	if !contactType.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "INVALID_TYPE", Message: "unknown contact type"})
		return
	}

	count, err := h.Service.CountContactsByType(r.Context(), contactType)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *ContactHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.ContactUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "INVALID_JSON", Message: "invalid JSON body"})
		return
	}

	contact, err := h.Service.UpdateContact(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, contact)
}

func (h *ContactHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteContact(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
