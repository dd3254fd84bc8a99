package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/lfcamargo/crm-leads/internal/entity"
)

// memLeadRepo is an in-memory stand-in for the Postgres repository with the
// same contract: audit fields on insert, version check on update, hard
// Delete, email uniqueness.
type memLeadRepo struct {
	leads map[string]*entity.Lead

	// saveErrOnUpdate, when set, fails the next update-path Save. Used to
	// exercise rollback and conflict translation.
	saveErrOnUpdate error

	// deleteErr, when set, fails the next Delete. Used to exercise merge
	// rollback.
	deleteErr error
}

func newMemLeadRepo() *memLeadRepo {
	return &memLeadRepo{leads: make(map[string]*entity.Lead)}
}

func (r *memLeadRepo) Save(_ context.Context, lead *entity.Lead) error {
	if lead.Version == 0 {
		for _, existing := range r.leads {
			if existing.Email == lead.Email {
				return entity.ErrEmailAlreadyExists
			}
		}
		lead.Version = 1
		lead.CreatedAt = time.Now()
		lead.UpdatedAt = time.Now()
		r.leads[lead.ID] = cloneLead(lead)
		return nil
	}

	if r.saveErrOnUpdate != nil {
		err := r.saveErrOnUpdate
		r.saveErrOnUpdate = nil
		return err
	}

	stored, ok := r.leads[lead.ID]
	if !ok {
		return entity.ErrNotFound
	}
	if stored.Version != lead.Version {
		return entity.ErrVersionConflict
	}
	lead.Version++
	lead.UpdatedAt = time.Now()
	r.leads[lead.ID] = cloneLead(lead)
	return nil
}

func (r *memLeadRepo) FindByID(_ context.Context, id string) (*entity.Lead, error) {
	lead, ok := r.leads[id]
	if !ok {
		return nil, nil
	}
	return cloneLead(lead), nil
}

func (r *memLeadRepo) FindByEmail(_ context.Context, email string) (*entity.Lead, error) {
	for _, lead := range r.leads {
		if lead.Email == email {
			return cloneLead(lead), nil
		}
	}
	return nil, nil
}

func (r *memLeadRepo) FindByEmailOrPhone(_ context.Context, email, phone string) ([]*entity.Lead, error) {
	var out []*entity.Lead
	for _, lead := range r.leads {
		if lead.Email == email || (phone != "" && lead.Phone == phone) {
			out = append(out, cloneLead(lead))
		}
	}
	return out, nil
}

func (r *memLeadRepo) FindByActiveTrue(_ context.Context) ([]*entity.Lead, error) {
	var out []*entity.Lead
	for _, lead := range r.leads {
		if lead.Active {
			out = append(out, cloneLead(lead))
		}
	}
	return out, nil
}

func (r *memLeadRepo) FindByStatus(_ context.Context, status entity.LeadStatus) ([]*entity.Lead, error) {
	var out []*entity.Lead
	for _, lead := range r.leads {
		if lead.Status == status {
			out = append(out, cloneLead(lead))
		}
	}
	return out, nil
}

func (r *memLeadRepo) FindByAssignedTo(_ context.Context, userID string) ([]*entity.Lead, error) {
	var out []*entity.Lead
	for _, lead := range r.leads {
		if lead.AssignedTo == userID {
			out = append(out, cloneLead(lead))
		}
	}
	return out, nil
}

func (r *memLeadRepo) CountByStatus(_ context.Context, status entity.LeadStatus) (int64, error) {
	var count int64
	for _, lead := range r.leads {
		if lead.Status == status {
			count++
		}
	}
	return count, nil
}

func (r *memLeadRepo) Delete(_ context.Context, id string) error {
	if r.deleteErr != nil {
		err := r.deleteErr
		r.deleteErr = nil
		return err
	}
	if _, ok := r.leads[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.leads, id)
	return nil
}

func cloneLead(lead *entity.Lead) *entity.Lead {
	c := *lead
	if lead.QualifiedDate != nil {
		qd := *lead.QualifiedDate
		c.QualifiedDate = &qd
	}
	if lead.ConvertedDate != nil {
		cd := *lead.ConvertedDate
		c.ConvertedDate = &cd
	}
	return &c
}

type memContactRepo struct {
	contacts map[string]*entity.Contact
}

func newMemContactRepo() *memContactRepo {
	return &memContactRepo{contacts: make(map[string]*entity.Contact)}
}

func (r *memContactRepo) Save(_ context.Context, contact *entity.Contact) error {
	if contact.Version == 0 {
		for _, existing := range r.contacts {
			if existing.Email == contact.Email {
				return entity.ErrEmailAlreadyExists
			}
		}
		contact.Version = 1
		contact.CreatedAt = time.Now()
		contact.UpdatedAt = time.Now()
		c := *contact
		r.contacts[contact.ID] = &c
		return nil
	}

	stored, ok := r.contacts[contact.ID]
	if !ok {
		return entity.ErrNotFound
	}
	if stored.Version != contact.Version {
		return entity.ErrVersionConflict
	}
	contact.Version++
	contact.UpdatedAt = time.Now()
	c := *contact
	r.contacts[contact.ID] = &c
	return nil
}

func (r *memContactRepo) FindByID(_ context.Context, id string) (*entity.Contact, error) {
	contact, ok := r.contacts[id]
	if !ok {
		return nil, nil
	}
	c := *contact
	return &c, nil
}

func (r *memContactRepo) FindByEmail(_ context.Context, email string) (*entity.Contact, error) {
	for _, contact := range r.contacts {
		if contact.Email == email {
			c := *contact
			return &c, nil
		}
	}
	return nil, nil
}

func (r *memContactRepo) FindByActiveTrue(_ context.Context) ([]*entity.Contact, error) {
	var out []*entity.Contact
	for _, contact := range r.contacts {
		if contact.Active {
			c := *contact
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memContactRepo) FindByType(_ context.Context, contactType entity.ContactType) ([]*entity.Contact, error) {
	var out []*entity.Contact
	for _, contact := range r.contacts {
		if contact.Type == contactType {
			c := *contact
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memContactRepo) FindByAssignedTo(_ context.Context, userID string) ([]*entity.Contact, error) {
	var out []*entity.Contact
	for _, contact := range r.contacts {
		if contact.AssignedTo == userID {
			c := *contact
			out = append(out, &c)
		}
	}
	return out, nil
}

func (r *memContactRepo) CountByType(_ context.Context, contactType entity.ContactType) (int64, error) {
	var count int64
	for _, contact := range r.contacts {
		if contact.Type == contactType {
			count++
		}
	}
	return count, nil
}

func (r *memContactRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.contacts[id]; !ok {
		return entity.ErrNotFound
	}
	delete(r.contacts, id)
	return nil
}

// MockNotifier records every notification in testify-mock style.
type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) SendNotification(ctx context.Context, userID, message string, notificationType NotificationType) {
	m.Called(ctx, userID, message, notificationType)
}

func (m *MockNotifier) SendAlert(ctx context.Context, message string, priority AlertPriority) {
	m.Called(ctx, message, priority)
}

func (m *MockNotifier) NotifyUsers(ctx context.Context, userIDs []string, message string, notificationType NotificationType) {
	m.Called(ctx, userIDs, message, notificationType)
}

func newMockNotifier() *MockNotifier {
	n := new(MockNotifier)
	n.On("SendNotification", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	n.On("SendAlert", mock.Anything, mock.Anything, mock.Anything).Return()
	n.On("NotifyUsers", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()
	return n
}
