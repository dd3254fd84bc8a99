package usecase

import (
	"fmt"
	"net/mail"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateLeadCreateInput(input LeadCreateInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.FirstName) == "" {
		errs = append(errs, ValidationError{"first_name", "is required"})
	}
	if strings.TrimSpace(input.LastName) == "" {
		errs = append(errs, ValidationError{"last_name", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.AssignedTo) == "" {
		errs = append(errs, ValidationError{"assigned_to", "is required"})
	}

	if input.Source != "" && !isKnownSource(string(input.Source)) {
		errs = append(errs, ValidationError{"source", "is not a known lead source"})
	}

	return errs
}

func ValidateContactCreateInput(input ContactCreateInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.FirstName) == "" {
		errs = append(errs, ValidationError{"first_name", "is required"})
	}
	if strings.TrimSpace(input.LastName) == "" {
		errs = append(errs, ValidationError{"last_name", "is required"})
	}

	if strings.TrimSpace(input.Email) == "" {
		errs = append(errs, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	if strings.TrimSpace(input.AssignedTo) == "" {
		errs = append(errs, ValidationError{"assigned_to", "is required"})
	}

	if input.Type != "" && !input.Type.Valid() {
		errs = append(errs, ValidationError{"type", "is not a known contact type"})
	}

	return errs
}

func ValidateScore(score int) []ValidationError {
	if score < 0 || score > 100 {
		return []ValidationError{{"score", "must be between 0 and 100"}}
	}
	return nil
}

func isKnownSource(s string) bool {
	switch s {
	case "WEBSITE", "REFERRAL", "SOCIAL_MEDIA", "EMAIL_CAMPAIGN",
		"PHONE_CALL", "TRADE_SHOW", "PARTNER", "OTHER":
		return true
	}
	return false
}

func validationFailed(errs []ValidationError) *DomainError {
	parts := make([]string, 0, len(errs))
	for _, e := range errs {
		parts = append(parts, e.Field+" ("+e.Message+")")
	}
	return &DomainError{
		Code:    CodeValidation,
		Message: "validation failed: " + strings.Join(parts, ", "),
	}
}
