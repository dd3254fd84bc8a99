package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/lfcamargo/crm-leads/internal/entity"
)

func validContactInput() ContactCreateInput {
	return ContactCreateInput{
		FirstName:  "Bruno",
		LastName:   "Lima",
		Email:      "bruno@example.com",
		Phone:      "+5511666660000",
		Company:    "Initech",
		JobTitle:   "Buyer",
		AssignedTo: "user-2",
		Notes:      "inbound request",
	}
}

func TestCreateContactDefaultsTypeToLead(t *testing.T) {
	ctx := context.Background()
	service := NewContactService(newMemContactRepo())

	contact, err := service.CreateContact(ctx, validContactInput())

	assert.NoError(t, err)
	assert.Equal(t, entity.ContactTypeLead, contact.Type)
	assert.Equal(t, 0.0, contact.LifetimeValue)
	assert.False(t, contact.LastInteractionDate.IsZero())
	assert.True(t, contact.Active)
}

func TestCreateContactKeepsExplicitType(t *testing.T) {
	ctx := context.Background()
	service := NewContactService(newMemContactRepo())

	input := validContactInput()
	input.Type = entity.ContactTypePartner
	contact, err := service.CreateContact(ctx, input)

	assert.NoError(t, err)
	assert.Equal(t, entity.ContactTypePartner, contact.Type)
}

func TestCreateContactDuplicateEmail(t *testing.T) {
	ctx := context.Background()
	repo := newMemContactRepo()
	service := NewContactService(repo)

	_, err := service.CreateContact(ctx, validContactInput())
	assert.NoError(t, err)

	_, err = service.CreateContact(ctx, validContactInput())
	assert.Equal(t, CodeDuplicateEmail, DomainErrorCode(err))
	assert.Len(t, repo.contacts, 1)
}

func TestCreateContactValidation(t *testing.T) {
	ctx := context.Background()
	service := NewContactService(newMemContactRepo())

	input := validContactInput()
	input.AssignedTo = ""
	_, err := service.CreateContact(ctx, input)

	assert.Equal(t, CodeValidation, DomainErrorCode(err))
}

// Contact updates are full overwrites: empty input values replace stored
// ones, unlike the lead's partial update.
func TestUpdateContactOverwritesEverything(t *testing.T) {
	ctx := context.Background()
	service := NewContactService(newMemContactRepo())

	created, _ := service.CreateContact(ctx, validContactInput())

	updated, err := service.UpdateContact(ctx, created.ID, ContactUpdateInput{
		FirstName: "Bruno",
		LastName:  "Lima",
		Type:      entity.ContactTypeCustomer,
		// Phone, Company, JobTitle, Notes intentionally empty.
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.ContactTypeCustomer, updated.Type)
	assert.Empty(t, updated.Phone)
	assert.Empty(t, updated.Company)
	assert.Empty(t, updated.Notes)
	// Email survives: not mutable through update.
	assert.Equal(t, "bruno@example.com", updated.Email)
}

func TestUpdateContactNotFound(t *testing.T) {
	ctx := context.Background()
	service := NewContactService(newMemContactRepo())

	_, err := service.UpdateContact(ctx, "missing", ContactUpdateInput{})
	assert.Equal(t, CodeNotFound, DomainErrorCode(err))
}

func TestDeleteContactIsSoft(t *testing.T) {
	ctx := context.Background()
	repo := newMemContactRepo()
	service := NewContactService(repo)

	created, _ := service.CreateContact(ctx, validContactInput())

	assert.NoError(t, service.DeleteContact(ctx, created.ID))

	contact, _ := repo.FindByID(ctx, created.ID)
	assert.NotNil(t, contact)
	assert.False(t, contact.Active)

	all, _ := service.GetAllContacts(ctx)
	assert.Empty(t, all)
}

func TestContactListAndCountByType(t *testing.T) {
	ctx := context.Background()
	service := NewContactService(newMemContactRepo())

	_, _ = service.CreateContact(ctx, validContactInput())

	partner := validContactInput()
	partner.Email = "partner@example.com"
	partner.Type = entity.ContactTypePartner
	_, _ = service.CreateContact(ctx, partner)

	leads, _ := service.GetContactsByType(ctx, entity.ContactTypeLead)
	partners, _ := service.GetContactsByType(ctx, entity.ContactTypePartner)
	count, _ := service.CountContactsByType(ctx, entity.ContactTypePartner)

	assert.Len(t, leads, 1)
	assert.Len(t, partners, 1)
	assert.Equal(t, int64(1), count)
}

func TestGetContactsByAssignedUser(t *testing.T) {
	ctx := context.Background()
	service := NewContactService(newMemContactRepo())

	_, _ = service.CreateContact(ctx, validContactInput())

	other := validContactInput()
	other.Email = "carol@example.com"
	other.AssignedTo = "user-9"
	_, _ = service.CreateContact(ctx, other)

	contacts, err := service.GetContactsByAssignedUser(ctx, "user-9")
	assert.NoError(t, err)
	assert.Len(t, contacts, 1)
	assert.Equal(t, "carol@example.com", contacts[0].Email)
}
