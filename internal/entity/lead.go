package entity

import (
	"context"
	"fmt"
	"time"
)

type LeadStatus string

const (
	LeadStatusNew         LeadStatus = "NEW"
	LeadStatusContacted   LeadStatus = "CONTACTED"
	LeadStatusQualified   LeadStatus = "QUALIFIED"
	LeadStatusUnqualified LeadStatus = "UNQUALIFIED"
	LeadStatusConverted   LeadStatus = "CONVERTED"
)

func (s LeadStatus) Valid() bool {
	switch s {
	case LeadStatusNew, LeadStatusContacted, LeadStatusQualified,
		LeadStatusUnqualified, LeadStatusConverted:
		return true
	}
	return false
}

type LeadSource string

const (
	LeadSourceWebsite       LeadSource = "WEBSITE"
	LeadSourceReferral      LeadSource = "REFERRAL"
	LeadSourceSocialMedia   LeadSource = "SOCIAL_MEDIA"
	LeadSourceEmailCampaign LeadSource = "EMAIL_CAMPAIGN"
	LeadSourcePhoneCall     LeadSource = "PHONE_CALL"
	LeadSourceTradeShow     LeadSource = "TRADE_SHOW"
	LeadSourcePartner       LeadSource = "PARTNER"
	LeadSourceOther         LeadSource = "OTHER"
)

// Entidade: Lead
type Lead struct {
	BaseEntity

	FirstName  string     `json:"first_name"`
	LastName   string     `json:"last_name"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone,omitempty"`
	Company    string     `json:"company,omitempty"`
	JobTitle   string     `json:"job_title,omitempty"`
	Status     LeadStatus `json:"status"`
	Source     LeadSource `json:"source,omitempty"`
	Score      int        `json:"score"`
	Address    Address    `json:"address"`
	Notes      string     `json:"notes,omitempty"`
	AssignedTo string     `json:"assigned_to"`

	LastContactDate      time.Time  `json:"last_contact_date"`
	QualifiedDate        *time.Time `json:"qualified_date,omitempty"`
	ConvertedDate        *time.Time `json:"converted_date,omitempty"`
	ConvertedToContactID string     `json:"converted_to_contact_id,omitempty"`
}

// Factory
func NewLead(firstName, lastName, email string) *Lead {
	return &Lead{
		BaseEntity:      NewBaseEntity(),
		FirstName:       firstName,
		LastName:        lastName,
		Email:           email,
		Status:          LeadStatusNew,
		Score:           0,
		LastContactDate: time.Now(),
	}
}

func (l *Lead) FullName() string {
	return l.FirstName + " " + l.LastName
}

// Qualify overwrites score and qualified date on every call; requalifying an
// already QUALIFIED or UNQUALIFIED lead is allowed.
func (l *Lead) Qualify(score int) {
	now := time.Now()
	l.Score = score
	l.Status = LeadStatusQualified
	l.QualifiedDate = &now
}

// Disqualify appends to the notes log, it never overwrites prior notes.
func (l *Lead) Disqualify(reason string) {
	l.Status = LeadStatusUnqualified
	line := "Disqualified: " + reason
	if l.Notes != "" {
		l.Notes = l.Notes + "\n" + line
	} else {
		l.Notes = line
	}
}

func (l *Lead) MarkAsContacted() {
	l.Status = LeadStatusContacted
	l.LastContactDate = time.Now()
}

func (l *Lead) ConvertToContact(contactID string) {
	now := time.Now()
	l.Status = LeadStatusConverted
	l.ConvertedDate = &now
	l.ConvertedToContactID = contactID
}

// MergeFrom folds a duplicate into this lead: notes are concatenated under a
// separator naming the merged lead, and the higher score wins. Nothing else
// moves over.
func (l *Lead) MergeFrom(dup *Lead) {
	l.Notes = fmt.Sprintf("%s\n\n--- Merged from lead %s ---\n%s", l.Notes, dup.ID, dup.Notes)
	if dup.Score > l.Score {
		l.Score = dup.Score
	}
}

type LeadRepositoryInterface interface {
	Save(ctx context.Context, lead *Lead) error
	FindByID(ctx context.Context, id string) (*Lead, error)
	FindByEmail(ctx context.Context, email string) (*Lead, error)
	FindByEmailOrPhone(ctx context.Context, email, phone string) ([]*Lead, error)
	FindByActiveTrue(ctx context.Context) ([]*Lead, error)
	FindByStatus(ctx context.Context, status LeadStatus) ([]*Lead, error)
	FindByAssignedTo(ctx context.Context, userID string) ([]*Lead, error)
	CountByStatus(ctx context.Context, status LeadStatus) (int64, error)
	Delete(ctx context.Context, id string) error
}
