package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/lfcamargo/crm-leads/internal/entity"
)

type ContactRepository struct {
	DB *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{DB: db}
}

const contactColumns = `
	id, first_name, last_name, email, phone, company, job_title, type,
	street, city, state, zip_code, country,
	notes, assigned_to, last_interaction_date, lifetime_value,
	active, version, created_at, updated_at
`

func (r *ContactRepository) Save(ctx context.Context, contact *entity.Contact) error {
	if contact.Version == 0 {
		return r.insert(ctx, contact)
	}
	return r.update(ctx, contact)
}

func (r *ContactRepository) insert(ctx context.Context, contact *entity.Contact) error {
	query := `
		INSERT INTO contacts (` + contactColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8,
		        $9, $10, $11, $12, $13,
		        $14, $15, $16, $17, $18, 1, NOW(), NOW())
		RETURNING version, created_at, updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		contact.ID, contact.FirstName, contact.LastName, contact.Email,
		contact.Phone, contact.Company, contact.JobTitle, string(contact.Type),
		contact.Address.Street, contact.Address.City, contact.Address.State,
		contact.Address.ZipCode, contact.Address.Country,
		contact.Notes, contact.AssignedTo, contact.LastInteractionDate,
		contact.LifetimeValue, contact.Active,
	).Scan(&contact.Version, &contact.CreatedAt, &contact.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert contact: %w", err)
	}

	return nil
}

func (r *ContactRepository) update(ctx context.Context, contact *entity.Contact) error {
	query := `
		UPDATE contacts SET
			first_name = $1, last_name = $2, phone = $3, company = $4,
			job_title = $5, type = $6,
			street = $7, city = $8, state = $9, zip_code = $10, country = $11,
			notes = $12, assigned_to = $13, last_interaction_date = $14,
			lifetime_value = $15, active = $16,
			version = version + 1, updated_at = NOW()
		WHERE id = $17 AND version = $18
	`

	res, err := r.DB.ExecContext(ctx, query,
		contact.FirstName, contact.LastName, contact.Phone, contact.Company,
		contact.JobTitle, string(contact.Type),
		contact.Address.Street, contact.Address.City, contact.Address.State,
		contact.Address.ZipCode, contact.Address.Country,
		contact.Notes, contact.AssignedTo, contact.LastInteractionDate,
		contact.LifetimeValue, contact.Active,
		contact.ID, contact.Version,
	)
	if err != nil {
		return fmt.Errorf("update contact: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM contacts WHERE id = $1)`, contact.ID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("update contact: %w", err)
		}
		if !exists {
			return entity.ErrNotFound
		}
		return entity.ErrVersionConflict
	}

	contact.Version++
	return nil
}

func (r *ContactRepository) FindByID(ctx context.Context, id string) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE id = $1`
	return scanContact(r.DB.QueryRowContext(ctx, query, id))
}

func (r *ContactRepository) FindByEmail(ctx context.Context, email string) (*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE email = $1`
	return scanContact(r.DB.QueryRowContext(ctx, query, email))
}

func (r *ContactRepository) FindByActiveTrue(ctx context.Context) ([]*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE active = TRUE`
	return r.queryContacts(ctx, query)
}

func (r *ContactRepository) FindByType(ctx context.Context, contactType entity.ContactType) ([]*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE type = $1`
	return r.queryContacts(ctx, query, string(contactType))
}

func (r *ContactRepository) FindByAssignedTo(ctx context.Context, userID string) ([]*entity.Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE assigned_to = $1`
	return r.queryContacts(ctx, query, userID)
}

func (r *ContactRepository) CountByType(ctx context.Context, contactType entity.ContactType) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM contacts WHERE type = $1`, string(contactType),
	).Scan(&count)
	return count, err
}

func (r *ContactRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM contacts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete contact: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *ContactRepository) queryContacts(ctx context.Context, query string, args ...any) ([]*entity.Contact, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query contacts: %w", err)
	}
	defer rows.Close()

	var contacts []*entity.Contact
	for rows.Next() {
		contact, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, contact)
	}
	return contacts, rows.Err()
}

func scanContact(row rowScanner) (*entity.Contact, error) {
	var contact entity.Contact
	var contactType string

	err := row.Scan(
		&contact.ID, &contact.FirstName, &contact.LastName, &contact.Email,
		&contact.Phone, &contact.Company, &contact.JobTitle, &contactType,
		&contact.Address.Street, &contact.Address.City, &contact.Address.State,
		&contact.Address.ZipCode, &contact.Address.Country,
		&contact.Notes, &contact.AssignedTo, &contact.LastInteractionDate,
		&contact.LifetimeValue,
		&contact.Active, &contact.Version, &contact.CreatedAt, &contact.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan contact: %w", err)
	}

	contact.Type = entity.ContactType(contactType)
	return &contact, nil
}
