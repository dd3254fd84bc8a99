package usecase

import (
	"context"
	"log"

	"github.com/lfcamargo/crm-leads/internal/entity"
)

// ContactService is the plain CRUD manager for contacts. Conversion goes
// through LeadService and writes the contact repository directly.
type ContactService struct {
	ContactRepo entity.ContactRepositoryInterface
}

func NewContactService(contactRepo entity.ContactRepositoryInterface) *ContactService {
	return &ContactService{ContactRepo: contactRepo}
}

func (s *ContactService) CreateContact(ctx context.Context, input ContactCreateInput) (*entity.Contact, error) {
	if errs := ValidateContactCreateInput(input); len(errs) > 0 {
		return nil, validationFailed(errs)
	}

	existing, err := s.ContactRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, NewDuplicateEmailError(input.Email)
	}

	contact := entity.NewContact(input.FirstName, input.LastName, input.Email, input.Type)
	contact.Phone = input.Phone
	contact.Company = input.Company
	contact.JobTitle = input.JobTitle
	contact.AssignedTo = input.AssignedTo
	contact.Notes = input.Notes
	contact.Address = input.Address

	if err := s.ContactRepo.Save(ctx, contact); err != nil {
		return nil, translateSaveError(err, "contact", contact.ID, input.Email)
	}

	log.Printf("contact %s created for %s", contact.ID, contact.Email)
	return contact, nil
}

// UpdateContact replaces every mutable attribute from the input, empty values
// included. Email and assignedTo are not touched through this path.
func (s *ContactService) UpdateContact(ctx context.Context, id string, input ContactUpdateInput) (*entity.Contact, error) {
	contact, err := s.findContactOrFail(ctx, id)
	if err != nil {
		return nil, err
	}

	contact.FirstName = input.FirstName
	contact.LastName = input.LastName
	contact.Phone = input.Phone
	contact.Company = input.Company
	contact.JobTitle = input.JobTitle
	contact.Type = input.Type
	contact.Address = input.Address
	contact.Notes = input.Notes

	if err := s.ContactRepo.Save(ctx, contact); err != nil {
		return nil, translateSaveError(err, "contact", id, contact.Email)
	}

	log.Printf("contact %s updated", id)
	return contact, nil
}

func (s *ContactService) GetContactByID(ctx context.Context, id string) (*entity.Contact, error) {
	return s.findContactOrFail(ctx, id)
}

func (s *ContactService) GetAllContacts(ctx context.Context) ([]*entity.Contact, error) {
	return s.ContactRepo.FindByActiveTrue(ctx)
}

func (s *ContactService) GetContactsByType(ctx context.Context, contactType entity.ContactType) ([]*entity.Contact, error) {
	return s.ContactRepo.FindByType(ctx, contactType)
}

func (s *ContactService) GetContactsByAssignedUser(ctx context.Context, userID string) ([]*entity.Contact, error) {
	return s.ContactRepo.FindByAssignedTo(ctx, userID)
}

func (s *ContactService) CountContactsByType(ctx context.Context, contactType entity.ContactType) (int64, error) {
	return s.ContactRepo.CountByType(ctx, contactType)
}

func (s *ContactService) DeleteContact(ctx context.Context, id string) error {
	contact, err := s.findContactOrFail(ctx, id)
	if err != nil {
		return err
	}

	contact.Deactivate()
	if err := s.ContactRepo.Save(ctx, contact); err != nil {
		return translateSaveError(err, "contact", id, contact.Email)
	}

	log.Printf("contact %s deactivated", id)
	return nil
}

func (s *ContactService) findContactOrFail(ctx context.Context, id string) (*entity.Contact, error) {
	contact, err := s.ContactRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if contact == nil {
		return nil, NewNotFoundError("contact", id)
	}
	return contact, nil
}
