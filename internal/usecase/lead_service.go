package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/lfcamargo/crm-leads/internal/entity"
)

// LeadService owns the lead lifecycle: creation, qualification, conversion,
// duplicate resolution and soft deletion.
type LeadService struct {
	LeadRepo    entity.LeadRepositoryInterface
	ContactRepo entity.ContactRepositoryInterface
	Notifier    Notifier
}

func NewLeadService(
	leadRepo entity.LeadRepositoryInterface,
	contactRepo entity.ContactRepositoryInterface,
	notifier Notifier,
) *LeadService {
	return &LeadService{
		LeadRepo:    leadRepo,
		ContactRepo: contactRepo,
		Notifier:    notifier,
	}
}

func (s *LeadService) CreateLead(ctx context.Context, input LeadCreateInput) (*entity.Lead, error) {
	if errs := ValidateLeadCreateInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	// Uniqueness is checked against every lead, soft-deleted ones included.
	existing, err := s.LeadRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewDuplicateEmailError(input.Email)
	}

	lead := entity.NewLead(input.FirstName, input.LastName, input.Email)
	lead.Phone = input.Phone
	lead.Company = input.Company
	lead.JobTitle = input.JobTitle
	lead.Source = input.Source
	lead.AssignedTo = input.AssignedTo
	lead.Notes = input.Notes
	lead.Address = input.Address

	if err := s.LeadRepo.Save(ctx, lead); err != nil {
		return nil, translateSaveError(err, "lead", lead.ID, input.Email)
	}

	s.Notifier.SendNotification(ctx, lead.AssignedTo,
		"New lead assigned: "+lead.FullName(), NotificationInfo)

	log.Printf("lead %s created for %s", lead.ID, lead.Email)
	return lead, nil
}

func (s *LeadService) UpdateLead(ctx context.Context, id string, input LeadUpdateInput) (*entity.Lead, error) {
	lead, err := s.findLeadOrFail(ctx, id)
	if err != nil {
		return nil, err
	}

	if input.FirstName != nil {
		lead.FirstName = *input.FirstName
	}
	if input.LastName != nil {
		lead.LastName = *input.LastName
	}
	if input.Phone != nil {
		lead.Phone = *input.Phone
	}
	if input.Company != nil {
		lead.Company = *input.Company
	}
	if input.JobTitle != nil {
		lead.JobTitle = *input.JobTitle
	}
	if input.Notes != nil {
		lead.Notes = *input.Notes
	}
	if input.Address != nil {
		lead.Address = *input.Address
	}

	if err := s.LeadRepo.Save(ctx, lead); err != nil {
		return nil, translateSaveError(err, "lead", id, lead.Email)
	}
	return lead, nil
}

func (s *LeadService) GetLeadByID(ctx context.Context, id string) (*entity.Lead, error) {
	return s.findLeadOrFail(ctx, id)
}

// GetAllLeads lists active leads only.
func (s *LeadService) GetAllLeads(ctx context.Context) ([]*entity.Lead, error) {
	return s.LeadRepo.FindByActiveTrue(ctx)
}

// GetLeadsByStatus mirrors the store filter exactly: inactive leads are not
// excluded here.
func (s *LeadService) GetLeadsByStatus(ctx context.Context, status entity.LeadStatus) ([]*entity.Lead, error) {
	return s.LeadRepo.FindByStatus(ctx, status)
}

func (s *LeadService) GetLeadsByAssignedUser(ctx context.Context, userID string) ([]*entity.Lead, error) {
	return s.LeadRepo.FindByAssignedTo(ctx, userID)
}

func (s *LeadService) CountLeadsByStatus(ctx context.Context, status entity.LeadStatus) (int64, error) {
	return s.LeadRepo.CountByStatus(ctx, status)
}

// QualifyLead sets the score and moves the lead to QUALIFIED. Allowed from
// any status except CONVERTED; repeated calls just overwrite score and
// qualified date.
func (s *LeadService) QualifyLead(ctx context.Context, id string, score int) (*entity.Lead, error) {
	if errs := ValidateScore(score); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	lead, err := s.findLeadOrFail(ctx, id)
	if err != nil {
		return nil, err
	}

	if lead.Status == entity.LeadStatusConverted {
		return nil, &DomainError{
			Code:    CodeInvalidTransition,
			Message: "a converted lead cannot be requalified",
		}
	}

	lead.Qualify(score)
	if err := s.LeadRepo.Save(ctx, lead); err != nil {
		return nil, translateSaveError(err, "lead", id, lead.Email)
	}

	s.Notifier.SendNotification(ctx, lead.AssignedTo,
		fmt.Sprintf("Lead qualified: %s (Score: %d)", lead.FullName(), score),
		NotificationLeadQualified)

	log.Printf("lead %s qualified with score %d", id, score)
	return lead, nil
}

// DisqualifyLead appends a "Disqualified: {reason}" line to the notes log.
// There is deliberately no status guard: even a converted lead can be
// disqualified, mirroring the behavior this system has always had.
func (s *LeadService) DisqualifyLead(ctx context.Context, id, reason string) (*entity.Lead, error) {
	lead, err := s.findLeadOrFail(ctx, id)
	if err != nil {
		return nil, err
	}

	lead.Disqualify(reason)
	if err := s.LeadRepo.Save(ctx, lead); err != nil {
		return nil, translateSaveError(err, "lead", id, lead.Email)
	}

	log.Printf("lead %s disqualified: %s", id, reason)
	return lead, nil
}

func (s *LeadService) MarkLeadAsContacted(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := s.findLeadOrFail(ctx, id)
	if err != nil {
		return nil, err
	}

	lead.MarkAsContacted()
	if err := s.LeadRepo.Save(ctx, lead); err != nil {
		return nil, translateSaveError(err, "lead", id, lead.Email)
	}

	log.Printf("lead %s marked as contacted", id)
	return lead, nil
}

// ConvertLeadToContact turns a QUALIFIED lead into a CUSTOMER contact. The
// contact insert and the lead update run inside one transaction: if the lead
// update fails, the freshly inserted contact is removed again.
func (s *LeadService) ConvertLeadToContact(ctx context.Context, leadID string) (string, error) {
	lead, err := s.findLeadOrFail(ctx, leadID)
	if err != nil {
		return "", err
	}

	if lead.Status == entity.LeadStatusConverted {
		return "", &DomainError{
			Code:    CodeAlreadyConverted,
			Message: "this lead has already been converted",
		}
	}
	if lead.Status != entity.LeadStatusQualified {
		return "", &DomainError{
			Code:    CodeNotQualified,
			Message: "only qualified leads can be converted",
		}
	}

	contact := entity.NewContact(lead.FirstName, lead.LastName, lead.Email, entity.ContactTypeCustomer)
	contact.Phone = lead.Phone
	contact.Company = lead.Company
	contact.JobTitle = lead.JobTitle
	contact.Address = lead.Address
	contact.AssignedTo = lead.AssignedTo
	contact.Notes = fmt.Sprintf("Converted from lead %s\n%s", leadID, lead.Notes)

	lead.ConvertToContact(contact.ID)

	txn := NewTransaction()
	txn.AddCompensatedOperation("create_contact",
		func(ctx context.Context) error { return s.ContactRepo.Save(ctx, contact) },
		func(ctx context.Context) error { return s.ContactRepo.Delete(ctx, contact.ID) },
	)
	txn.AddOperation("mark_lead_converted",
		func(ctx context.Context) error { return s.LeadRepo.Save(ctx, lead) },
	)

	if err := txn.Execute(ctx); err != nil {
		return "", &TechnicalError{
			Code:    "CONVERSION_FAILED",
			Message: "failed to persist conversion: " + err.Error(),
			Cause:   err,
		}
	}

	s.Notifier.SendNotification(ctx, lead.AssignedTo,
		"Lead converted to contact: "+lead.FullName(), NotificationLeadConverted)

	log.Printf("lead %s converted to contact %s", leadID, contact.ID)
	return contact.ID, nil
}

// FindDuplicates returns leads matching the email or, when given, the phone.
// Pure read.
func (s *LeadService) FindDuplicates(ctx context.Context, email, phone string) ([]*entity.Lead, error) {
	return s.LeadRepo.FindByEmailOrPhone(ctx, email, phone)
}

// MergeDuplicates folds deleteID into keepID and hard-deletes the duplicate.
// Both writes run inside one transaction: if the delete fails, the kept lead
// is restored to its pre-merge state. Destructive and asymmetric once
// committed: there is no undo.
func (s *LeadService) MergeDuplicates(ctx context.Context, keepID, deleteID string) error {
	keepLead, err := s.findLeadOrFail(ctx, keepID)
	if err != nil {
		return err
	}
	deleteLead, err := s.findLeadOrFail(ctx, deleteID)
	if err != nil {
		return err
	}

	snapshot := *keepLead
	keepLead.MergeFrom(deleteLead)

	txn := NewTransaction()
	txn.AddCompensatedOperation("save_kept_lead",
		func(ctx context.Context) error { return s.LeadRepo.Save(ctx, keepLead) },
		func(ctx context.Context) error {
			// The merged save bumped the stored version, so the restore
			// must carry it to pass the version check.
			restored := snapshot
			restored.Version = keepLead.Version
			return s.LeadRepo.Save(ctx, &restored)
		},
	)
	txn.AddOperation("delete_duplicate_lead",
		func(ctx context.Context) error { return s.LeadRepo.Delete(ctx, deleteID) },
	)

	if err := txn.Execute(ctx); err != nil {
		return &TechnicalError{
			Code:    "MERGE_FAILED",
			Message: "failed to merge leads: " + err.Error(),
			Cause:   err,
		}
	}

	log.Printf("leads merged: %s (kept) and %s (deleted)", keepID, deleteID)
	return nil
}

// DeleteLead soft-deletes: the record stays in the store, it only leaves the
// active listings. Never cascades to a linked contact.
func (s *LeadService) DeleteLead(ctx context.Context, id string) error {
	lead, err := s.findLeadOrFail(ctx, id)
	if err != nil {
		return err
	}

	lead.Deactivate()
	if err := s.LeadRepo.Save(ctx, lead); err != nil {
		return translateSaveError(err, "lead", id, lead.Email)
	}

	log.Printf("lead %s deactivated", id)
	return nil
}

func (s *LeadService) findLeadOrFail(ctx context.Context, id string) (*entity.Lead, error) {
	lead, err := s.LeadRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if lead == nil {
		return nil, NewNotFoundError("lead", id)
	}
	return lead, nil
}

// translateSaveError maps repository sentinels onto the domain taxonomy.
// Anything else is a store failure and passes through untouched.
func translateSaveError(err error, resource, id, email string) error {
	switch {
	case errors.Is(err, entity.ErrEmailAlreadyExists):
		return NewDuplicateEmailError(email)
	case errors.Is(err, entity.ErrVersionConflict):
		return &DomainError{
			Code:    CodeConcurrentModification,
			Message: fmt.Sprintf("%s %s was modified concurrently, retry with fresh data", resource, id),
		}
	case errors.Is(err, entity.ErrNotFound):
		return NewNotFoundError(resource, id)
	}
	return err
}
