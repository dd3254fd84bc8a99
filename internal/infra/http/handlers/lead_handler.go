package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/lfcamargo/crm-leads/internal/entity"
	"github.com/lfcamargo/crm-leads/internal/infra/http/middleware"
	"github.com/lfcamargo/crm-leads/internal/usecase"
)

type LeadHandler struct {
	Service     *usecase.LeadService
	rateLimiter *RateLimiter
}

func NewLeadHandler(service *usecase.LeadService) *LeadHandler {
	return &LeadHandler{
		Service:     service,
		rateLimiter: NewRateLimiter(30, time.Minute), // 30 req/min per IP
	}
}

func (h *LeadHandler) Routes(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/duplicates", h.FindDuplicates)
	r.Post("/merge", h.Merge)
	r.Get("/status/{status}", h.ListByStatus)
	r.Get("/count/{status}", h.CountByStatus)
	r.Get("/assigned/{userId}", h.ListByAssignedUser)
	r.Get("/{id}", h.Get)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/qualify", h.Qualify)
	r.Post("/{id}/disqualify", h.Disqualify)
	r.Post("/{id}/contact", h.MarkContacted)
	r.Post("/{id}/convert", h.Convert)
}

func (h *LeadHandler) Create(w http.ResponseWriter, r *http.Request) {
	if !h.rateLimiter.Allow(getClientIP(r)) {
		writeJSON(w, http.StatusTooManyRequests, errorResponse{
			Code:    "RATE_LIMITED",
			Message: "too many requests, please try again later",
		})
		return
	}

	var input usecase.LeadCreateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "INVALID_JSON", Message: "invalid JSON body"})
		return
	}

	lead, err := h.Service.CreateLead(r.Context(), input)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadCreated()
	writeJSON(w, http.StatusCreated, lead)
}

func (h *LeadHandler) Get(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Service.GetLeadByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) List(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Service.GetAllLeads(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) ListByStatus(w http.ResponseWriter, r *http.Request) {
	status := entity.LeadStatus(chi.URLParam(r, "status"))
	if !status.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "INVALID_STATUS", Message: "unknown lead status"})
		return
	}

	leads, err := h.Service.GetLeadsByStatus(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) ListByAssignedUser(w http.ResponseWriter, r *http.Request) {
	leads, err := h.Service.GetLeadsByAssignedUser(r.Context(), chi.URLParam(r, "userId"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) CountByStatus(w http.ResponseWriter, r *http.Request) {
	status := entity.LeadStatus(chi.URLParam(r, "status"))
	if !status.Valid() {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "INVALID_STATUS", Message: "unknown lead status"})
		return
	}

	count, err := h.Service.CountLeadsByStatus(r.Context(), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"count": count})
}

func (h *LeadHandler) Update(w http.ResponseWriter, r *http.Request) {
	var input usecase.LeadUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "INVALID_JSON", Message: "invalid JSON body"})
		return
	}

	lead, err := h.Service.UpdateLead(r.Context(), chi.URLParam(r, "id"), input)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Qualify(w http.ResponseWriter, r *http.Request) {
	score, err := strconv.Atoi(r.URL.Query().Get("score"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "INVALID_SCORE", Message: "score must be an integer"})
		return
	}

	lead, err := h.Service.QualifyLead(r.Context(), chi.URLParam(r, "id"), score)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadTransition("qualified")
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Disqualify(w http.ResponseWriter, r *http.Request) {
	reason := r.URL.Query().Get("reason")
	if reason == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "MISSING_REASON", Message: "reason is required"})
		return
	}

	lead, err := h.Service.DisqualifyLead(r.Context(), chi.URLParam(r, "id"), reason)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadTransition("disqualified")
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) MarkContacted(w http.ResponseWriter, r *http.Request) {
	lead, err := h.Service.MarkLeadAsContacted(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadTransition("contacted")
	writeJSON(w, http.StatusOK, lead)
}

func (h *LeadHandler) Convert(w http.ResponseWriter, r *http.Request) {
	leadID := chi.URLParam(r, "id")

	contactID, err := h.Service.ConvertLeadToContact(r.Context(), leadID)
	if err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadTransition("converted")
	middleware.RecordContactCreated("conversion")
	writeJSON(w, http.StatusOK, usecase.ConvertLeadOutput{LeadID: leadID, ContactID: contactID})
}

func (h *LeadHandler) FindDuplicates(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	if email == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "MISSING_EMAIL", Message: "email is required"})
		return
	}

	leads, err := h.Service.FindDuplicates(r.Context(), email, r.URL.Query().Get("phone"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, leads)
}

func (h *LeadHandler) Merge(w http.ResponseWriter, r *http.Request) {
	keepID := r.URL.Query().Get("keepId")
	deleteID := r.URL.Query().Get("deleteId")
	if keepID == "" || deleteID == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Code: "MISSING_IDS", Message: "keepId and deleteId are required"})
		return
	}

	if err := h.Service.MergeDuplicates(r.Context(), keepID, deleteID); err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordLeadsMerged()
	writeJSON(w, http.StatusOK, map[string]string{"kept": keepID, "deleted": deleteID})
}

func (h *LeadHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteLead(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
