package entity

import (
	"context"
	"time"
)

type ContactType string

const (
	ContactTypeLead     ContactType = "LEAD"
	ContactTypeCustomer ContactType = "CUSTOMER"
	ContactTypePartner  ContactType = "PARTNER"
	ContactTypeVendor   ContactType = "VENDOR"
)

func (t ContactType) Valid() bool {
	switch t {
	case ContactTypeLead, ContactTypeCustomer, ContactTypePartner, ContactTypeVendor:
		return true
	}
	return false
}

// Entidade: Contact
type Contact struct {
	BaseEntity

	FirstName  string      `json:"first_name"`
	LastName   string      `json:"last_name"`
	Email      string      `json:"email"`
	Phone      string      `json:"phone,omitempty"`
	Company    string      `json:"company,omitempty"`
	JobTitle   string      `json:"job_title,omitempty"`
	Type       ContactType `json:"type"`
	Address    Address     `json:"address"`
	Notes      string      `json:"notes,omitempty"`
	AssignedTo string      `json:"assigned_to"`

	LastInteractionDate time.Time `json:"last_interaction_date"`
	LifetimeValue       float64   `json:"lifetime_value"`
}

// Factory. Type defaults to LEAD when unset; conversion forces CUSTOMER at
// the call site.
func NewContact(firstName, lastName, email string, contactType ContactType) *Contact {
	if contactType == "" {
		contactType = ContactTypeLead
	}
	return &Contact{
		BaseEntity:          NewBaseEntity(),
		FirstName:           firstName,
		LastName:            lastName,
		Email:               email,
		Type:                contactType,
		LastInteractionDate: time.Now(),
		LifetimeValue:       0.0,
	}
}

func (c *Contact) FullName() string {
	return c.FirstName + " " + c.LastName
}

func (c *Contact) UpdateLastInteraction() {
	c.LastInteractionDate = time.Now()
}

type ContactRepositoryInterface interface {
	Save(ctx context.Context, contact *Contact) error
	FindByID(ctx context.Context, id string) (*Contact, error)
	FindByEmail(ctx context.Context, email string) (*Contact, error)
	FindByActiveTrue(ctx context.Context) ([]*Contact, error)
	FindByType(ctx context.Context, contactType ContactType) ([]*Contact, error)
	FindByAssignedTo(ctx context.Context, userID string) ([]*Contact, error)
	CountByType(ctx context.Context, contactType ContactType) (int64, error)
	Delete(ctx context.Context, id string) error
}
