package usecase

import "github.com/lfcamargo/crm-leads/internal/entity"

type LeadCreateInput struct {
	FirstName  string            `json:"first_name"`
	LastName   string            `json:"last_name"`
	Email      string            `json:"email"`
	Phone      string            `json:"phone"`
	Company    string            `json:"company"`
	JobTitle   string            `json:"job_title"`
	Source     entity.LeadSource `json:"source"`
	AssignedTo string            `json:"assigned_to"`
	Notes      string            `json:"notes"`
	Address    entity.Address    `json:"address"`
}

// LeadUpdateInput carries partial updates: nil means "leave unchanged".
// Status, score, source and email are never mutable through this path.
type LeadUpdateInput struct {
	FirstName *string         `json:"first_name"`
	LastName  *string         `json:"last_name"`
	Phone     *string         `json:"phone"`
	Company   *string         `json:"company"`
	JobTitle  *string         `json:"job_title"`
	Notes     *string         `json:"notes"`
	Address   *entity.Address `json:"address"`
}

type ContactCreateInput struct {
	FirstName  string             `json:"first_name"`
	LastName   string             `json:"last_name"`
	Email      string             `json:"email"`
	Phone      string             `json:"phone"`
	Company    string             `json:"company"`
	JobTitle   string             `json:"job_title"`
	Type       entity.ContactType `json:"type"`
	AssignedTo string             `json:"assigned_to"`
	Notes      string             `json:"notes"`
	Address    entity.Address     `json:"address"`
}

// ContactUpdateInput is a full overwrite of the mutable attributes, unlike
// the lead's partial update: every field below replaces the stored value,
// empty or not.
type ContactUpdateInput struct {
	FirstName string             `json:"first_name"`
	LastName  string             `json:"last_name"`
	Phone     string             `json:"phone"`
	Company   string             `json:"company"`
	JobTitle  string             `json:"job_title"`
	Type      entity.ContactType `json:"type"`
	Notes     string             `json:"notes"`
	Address   entity.Address     `json:"address"`
}

type ConvertLeadOutput struct {
	LeadID    string `json:"lead_id"`
	ContactID string `json:"contact_id"`
}
