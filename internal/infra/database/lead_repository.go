package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/lfcamargo/crm-leads/internal/entity"
)

type LeadRepository struct {
	DB *sql.DB
}

func NewLeadRepository(db *sql.DB) *LeadRepository {
	return &LeadRepository{DB: db}
}

const leadColumns = `
	id, first_name, last_name, email, phone, company, job_title,
	status, source, score,
	street, city, state, zip_code, country,
	notes, assigned_to,
	last_contact_date, qualified_date, converted_date, converted_to_contact_id,
	active, version, created_at, updated_at
`

// Save inserts when the lead has never been persisted (version 0) and
// updates otherwise. Updates carry an optimistic version check: a concurrent
// writer wins and this save fails with ErrVersionConflict.
func (r *LeadRepository) Save(ctx context.Context, lead *entity.Lead) error {
	if lead.Version == 0 {
		return r.insert(ctx, lead)
	}
	return r.update(ctx, lead)
}

func (r *LeadRepository) insert(ctx context.Context, lead *entity.Lead) error {
	query := `
		INSERT INTO leads (` + leadColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		        $11, $12, $13, $14, $15, $16, $17,
		        $18, $19, $20, $21, $22, 1, NOW(), NOW())
		RETURNING version, created_at, updated_at
	`

	err := r.DB.QueryRowContext(ctx, query,
		lead.ID, lead.FirstName, lead.LastName, lead.Email, lead.Phone,
		lead.Company, lead.JobTitle, string(lead.Status), string(lead.Source), lead.Score,
		lead.Address.Street, lead.Address.City, lead.Address.State,
		lead.Address.ZipCode, lead.Address.Country,
		lead.Notes, lead.AssignedTo,
		lead.LastContactDate, lead.QualifiedDate, lead.ConvertedDate,
		nullString(lead.ConvertedToContactID),
		lead.Active,
	).Scan(&lead.Version, &lead.CreatedAt, &lead.UpdatedAt)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return entity.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert lead: %w", err)
	}

	return nil
}

func (r *LeadRepository) update(ctx context.Context, lead *entity.Lead) error {
	query := `
		UPDATE leads SET
			first_name = $1, last_name = $2, phone = $3, company = $4,
			job_title = $5, status = $6, source = $7, score = $8,
			street = $9, city = $10, state = $11, zip_code = $12, country = $13,
			notes = $14, assigned_to = $15,
			last_contact_date = $16, qualified_date = $17, converted_date = $18,
			converted_to_contact_id = $19, active = $20,
			version = version + 1, updated_at = NOW()
		WHERE id = $21 AND version = $22
	`

	res, err := r.DB.ExecContext(ctx, query,
		lead.FirstName, lead.LastName, lead.Phone, lead.Company,
		lead.JobTitle, string(lead.Status), string(lead.Source), lead.Score,
		lead.Address.Street, lead.Address.City, lead.Address.State,
		lead.Address.ZipCode, lead.Address.Country,
		lead.Notes, lead.AssignedTo,
		lead.LastContactDate, lead.QualifiedDate, lead.ConvertedDate,
		nullString(lead.ConvertedToContactID), lead.Active,
		lead.ID, lead.Version,
	)
	if err != nil {
		return fmt.Errorf("update lead: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		// Either the row is gone or someone else bumped the version first.
		var exists bool
		if err := r.DB.QueryRowContext(ctx,
			`SELECT EXISTS(SELECT 1 FROM leads WHERE id = $1)`, lead.ID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("update lead: %w", err)
		}
		if !exists {
			return entity.ErrNotFound
		}
		return entity.ErrVersionConflict
	}

	lead.Version++
	return nil
}

func (r *LeadRepository) FindByID(ctx context.Context, id string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`
	return scanLead(r.DB.QueryRowContext(ctx, query, id))
}

func (r *LeadRepository) FindByEmail(ctx context.Context, email string) (*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE email = $1`
	return scanLead(r.DB.QueryRowContext(ctx, query, email))
}

// FindByEmailOrPhone matches the email or, when given, the phone. An empty
// phone participates in no match.
func (r *LeadRepository) FindByEmailOrPhone(ctx context.Context, email, phone string) ([]*entity.Lead, error) {
	query := `
		SELECT ` + leadColumns + ` FROM leads
		WHERE email = $1 OR ($2 <> '' AND phone = $2)
	`
	return r.queryLeads(ctx, query, email, phone)
}

func (r *LeadRepository) FindByActiveTrue(ctx context.Context) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE active = TRUE`
	return r.queryLeads(ctx, query)
}

func (r *LeadRepository) FindByStatus(ctx context.Context, status entity.LeadStatus) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE status = $1`
	return r.queryLeads(ctx, query, string(status))
}

func (r *LeadRepository) FindByAssignedTo(ctx context.Context, userID string) ([]*entity.Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE assigned_to = $1`
	return r.queryLeads(ctx, query, userID)
}

func (r *LeadRepository) CountByStatus(ctx context.Context, status entity.LeadStatus) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM leads WHERE status = $1`, string(status),
	).Scan(&count)
	return count, err
}

// Delete is a hard delete, used only by duplicate merging.
func (r *LeadRepository) Delete(ctx context.Context, id string) error {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete lead: %w", err)
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

func (r *LeadRepository) queryLeads(ctx context.Context, query string, args ...any) ([]*entity.Lead, error) {
	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query leads: %w", err)
	}
	defer rows.Close()

	var leads []*entity.Lead
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanLead(row rowScanner) (*entity.Lead, error) {
	var lead entity.Lead
	var status, source string
	var qualifiedDate, convertedDate sql.NullTime
	var convertedToContactID sql.NullString

	err := row.Scan(
		&lead.ID, &lead.FirstName, &lead.LastName, &lead.Email, &lead.Phone,
		&lead.Company, &lead.JobTitle, &status, &source, &lead.Score,
		&lead.Address.Street, &lead.Address.City, &lead.Address.State,
		&lead.Address.ZipCode, &lead.Address.Country,
		&lead.Notes, &lead.AssignedTo,
		&lead.LastContactDate, &qualifiedDate, &convertedDate, &convertedToContactID,
		&lead.Active, &lead.Version, &lead.CreatedAt, &lead.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan lead: %w", err)
	}

	lead.Status = entity.LeadStatus(status)
	lead.Source = entity.LeadSource(source)
	if qualifiedDate.Valid {
		lead.QualifiedDate = &qualifiedDate.Time
	}
	if convertedDate.Valid {
		lead.ConvertedDate = &convertedDate.Time
	}
	if convertedToContactID.Valid {
		lead.ConvertedToContactID = convertedToContactID.String
	}

	return &lead, nil
}

func nullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
