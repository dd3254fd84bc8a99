package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/lfcamargo/crm-leads/internal/entity"
	"github.com/lfcamargo/crm-leads/internal/usecase"
)

// stubLeadRepo is just enough repository to drive the handlers end to end.
type stubLeadRepo struct {
	leads map[string]*entity.Lead
}

func newStubLeadRepo() *stubLeadRepo {
	return &stubLeadRepo{leads: make(map[string]*entity.Lead)}
}

func (r *stubLeadRepo) Save(_ context.Context, lead *entity.Lead) error {
	if lead.Version == 0 {
		for _, existing := range r.leads {
			if existing.Email == lead.Email {
				return entity.ErrEmailAlreadyExists
			}
		}
		lead.Version = 1
		lead.CreatedAt = time.Now()
		lead.UpdatedAt = time.Now()
	} else {
		lead.Version++
	}
	c := *lead
	r.leads[lead.ID] = &c
	return nil
}

func (r *stubLeadRepo) FindByID(_ context.Context, id string) (*entity.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return nil, nil
	}
	c := *lead
	return &c, nil
}

func (r *stubLeadRepo) FindByEmail(_ context.Context, email string) (*entity.Lead, error) {
	for _, lead := range r.leads {
		if lead.Email == email {
			c := *lead
			return &c, nil
		}
	}
	return nil, nil
}

func (r *stubLeadRepo) FindByEmailOrPhone(_ context.Context, email, phone string) ([]*entity.Lead, error) {
	var out []*entity.Lead
	for _, lead := range r.leads {
		if lead.Email == email || (phone != "" && lead.Phone == phone) {
			c := *lead
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *stubLeadRepo) FindByActiveTrue(_ context.Context) ([]*entity.Lead, error) {
	var out []*entity.Lead
	for _, lead := range r.leads {
		if lead.Active {
			c := *lead
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *stubLeadRepo) FindByStatus(_ context.Context, status entity.LeadStatus) ([]*entity.Lead, error) {
	var out []*entity.Lead
	for _, lead := range r.leads {
		if lead.Status == status {
			c := *lead
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *stubLeadRepo) FindByAssignedTo(_ context.Context, userID string) ([]*entity.Lead, error) {
	var out []*entity.Lead
	for _, lead := range r.leads {
		if lead.AssignedTo == userID {
			c := *lead
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *stubLeadRepo) CountByStatus(_ context.Context, status entity.LeadStatus) (int64, error) {
	var count int64
	for _, lead := range r.leads {
		if lead.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *stubLeadRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.leads[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.leads, id)
	return nil
}

type stubContactRepo struct {
	contacts map[string]*entity.Contact
}

func newStubContactRepo() *stubContactRepo {
	return &stubContactRepo{contacts: make(map[string]*entity.Contact)}
}

func (r *stubContactRepo) Save(_ context.Context, contact *entity.Contact) error {
	if contact.Version == 0 {
		contact.Version = 1
		contact.CreatedAt = time.Now()
		contact.UpdatedAt = time.Now()
	} else {
		contact.Version++
	}
	c := *contact
	r.contacts[contact.ID] = &c
	return nil
}

func (r *stubContactRepo) FindByID(_ context.Context, id string) (*entity.Contact, error) {
	contact, ok := r.contacts[id]
	if !ok {
		return nil, nil
	}
	c := *contact
	return &c, nil
}

func (r *stubContactRepo) FindByEmail(_ context.Context, email string) (*entity.Contact, error) {
	for _, contact := range r.contacts {
		if contact.Email == email {
			c := *contact
			return &c, nil
		}
	}
	return nil, nil
}

func (r *stubContactRepo) FindByActiveTrue(_ context.Context) ([]*entity.Contact, error) {
	var out []*entity.Contact
	for _, contact := range r.contacts {
		if contact.Active {
			c := *contact
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *stubContactRepo) FindByType(_ context.Context, contactType entity.ContactType) ([]*entity.Contact, error) {
	var out []*entity.Contact
	for _, contact := range r.contacts {
		if contact.Type == contactType {
			c := *contact
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *stubContactRepo) FindByAssignedTo(_ context.Context, userID string) ([]*entity.Contact, error) {
	return nil, nil
}

func (r *stubContactRepo) CountByType(_ context.Context, contactType entity.ContactType) (int64, error) {
	return int64(len(r.contacts)), nil
}

func (r *stubContactRepo) Delete(_ context.Context, id string) error {
	delete(r.contacts, id)
	return nil
}

type silentNotifier struct{}

func (silentNotifier) SendNotification(context.Context, string, string, usecase.NotificationType) {}
func (silentNotifier) SendAlert(context.Context, string, usecase.AlertPriority)                   {}
func (silentNotifier) NotifyUsers(context.Context, []string, string, usecase.NotificationType)    {}

func newTestRouter() (*chi.Mux, *stubLeadRepo, *stubContactRepo) {
	leadRepo := newStubLeadRepo()
	contactRepo := newStubContactRepo()
	service := usecase.NewLeadService(leadRepo, contactRepo, silentNotifier{})

	r := chi.NewRouter()
	r.Route("/api/leads", NewLeadHandler(service).Routes)
	return r, leadRepo, contactRepo
}

func seedLead(repo *stubLeadRepo, email string) *entity.Lead {
	lead := entity.NewLead("Ana", "Souza", email)
	lead.AssignedTo = "user-1"
	_ = repo.Save(context.Background(), lead)
	return lead
}

func TestCreateLeadEndpoint(t *testing.T) {
	router, _, _ := newTestRouter()

	body, _ := json.Marshal(usecase.LeadCreateInput{
		FirstName:  "Ana",
		LastName:   "Souza",
		Email:      "ana@example.com",
		AssignedTo: "user-1",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)

	var lead entity.Lead
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &lead))
	assert.Equal(t, entity.LeadStatusNew, lead.Status)
	assert.NotEmpty(t, lead.ID)
}

func TestCreateLeadEndpointDuplicateEmailMaps409(t *testing.T) {
	router, leadRepo, _ := newTestRouter()
	seedLead(leadRepo, "ana@example.com")

	body, _ := json.Marshal(usecase.LeadCreateInput{
		FirstName:  "Ana",
		LastName:   "Souza",
		Email:      "ana@example.com",
		AssignedTo: "user-1",
	})

	req := httptest.NewRequest(http.MethodPost, "/api/leads", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusConflict, rec.Code)

	var resp errorResponse
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, usecase.CodeDuplicateEmail, resp.Code)
}

func TestGetLeadEndpointNotFoundMaps404(t *testing.T) {
	router, _, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/leads/missing-id", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestQualifyLeadEndpoint(t *testing.T) {
	router, leadRepo, _ := newTestRouter()
	lead := seedLead(leadRepo, "ana@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/leads/"+lead.ID+"/qualify?score=85", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var out entity.Lead
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, entity.LeadStatusQualified, out.Status)
	assert.Equal(t, 85, out.Score)
}

func TestQualifyLeadEndpointRejectsBadScore(t *testing.T) {
	router, leadRepo, _ := newTestRouter()
	lead := seedLead(leadRepo, "ana@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/leads/"+lead.ID+"/qualify?score=high", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestConvertLeadEndpointNotQualifiedMaps422(t *testing.T) {
	router, leadRepo, contactRepo := newTestRouter()
	lead := seedLead(leadRepo, "ana@example.com")

	req := httptest.NewRequest(http.MethodPost, "/api/leads/"+lead.ID+"/convert", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Empty(t, contactRepo.contacts)
}

func TestConvertLeadEndpoint(t *testing.T) {
	router, leadRepo, contactRepo := newTestRouter()
	lead := seedLead(leadRepo, "ana@example.com")
	lead.Qualify(70)
	_ = leadRepo.Save(context.Background(), lead)

	req := httptest.NewRequest(http.MethodPost, "/api/leads/"+lead.ID+"/convert", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var out usecase.ConvertLeadOutput
	assert.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	assert.Equal(t, lead.ID, out.LeadID)
	assert.NotEmpty(t, out.ContactID)
	assert.Len(t, contactRepo.contacts, 1)
}

func TestMergeEndpointRequiresBothIDs(t *testing.T) {
	router, _, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/leads/merge?keepId=a", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListByStatusEndpointRejectsUnknownStatus(t *testing.T) {
	router, _, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/leads/status/FROZEN", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteLeadEndpointSoftDeletes(t *testing.T) {
	router, leadRepo, _ := newTestRouter()
	lead := seedLead(leadRepo, "ana@example.com")

	req := httptest.NewRequest(http.MethodDelete, "/api/leads/"+lead.ID, nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNoContent, rec.Code)

	stored, _ := leadRepo.FindByID(context.Background(), lead.ID)
	assert.NotNil(t, stored)
	assert.False(t, stored.Active)
}

func TestFindDuplicatesEndpointRequiresEmail(t *testing.T) {
	router, _, _ := newTestRouter()

	req := httptest.NewRequest(http.MethodGet, "/api/leads/duplicates", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
