package employee

import (
	"fmt"
	"regexp"
	"strings"
)

// requiredFields is the reporting order for missing-field errors.
var requiredFields = []string{"name", "email", "phone", "department", "position", "salary"}

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// MissingFieldsError lists required fields absent from a create payload.
type MissingFieldsError struct {
	Fields []string
}

func (e *MissingFieldsError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}

// ValidationError lists per-field messages for malformed values.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Errors, "; ")
}

// ValidateCreate checks a create payload: all six fields must be present and
// non-empty (whitespace-only counts as missing), then email shape and salary
// sign are checked. Missing fields are reported before format errors so the
// client sees one failure class at a time, matching the route contract.
func ValidateCreate(p *CreatePayload) error {
	var missing []string
	for _, f := range requiredFields {
		switch f {
		case "name":
			if strings.TrimSpace(p.Name) == "" {
				missing = append(missing, f)
			}
		case "email":
			if strings.TrimSpace(p.Email) == "" {
				missing = append(missing, f)
			}
		case "phone":
			if strings.TrimSpace(p.Phone) == "" {
				missing = append(missing, f)
			}
		case "department":
			if strings.TrimSpace(p.Department) == "" {
				missing = append(missing, f)
			}
		case "position":
			if strings.TrimSpace(p.Position) == "" {
				missing = append(missing, f)
			}
		case "salary":
			if p.Salary == nil {
				missing = append(missing, f)
			}
		}
	}
	if len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}

	var errs []string
	if !emailRe.MatchString(strings.TrimSpace(p.Email)) {
		errs = append(errs, fmt.Sprintf("email: %q is not a valid email address", strings.TrimSpace(p.Email)))
	}
	if *p.Salary < 0 {
		errs = append(errs, "salary: must not be negative")
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// ValidateUpdate checks a partial payload: fields that are present must be
// non-empty and well-formed; absent fields are skipped.
func ValidateUpdate(p *UpdatePayload) error {
	var errs []string
	check := func(name string, v *string) {
		if v != nil && strings.TrimSpace(*v) == "" {
			errs = append(errs, name+": must not be empty")
		}
	}
	check("name", p.Name)
	check("phone", p.Phone)
	check("department", p.Department)
	check("position", p.Position)
	if p.Email != nil {
		if strings.TrimSpace(*p.Email) == "" {
			errs = append(errs, "email: must not be empty")
		} else if !emailRe.MatchString(strings.TrimSpace(*p.Email)) {
			errs = append(errs, fmt.Sprintf("email: %q is not a valid email address", strings.TrimSpace(*p.Email)))
		}
	}
	if p.Salary != nil && *p.Salary < 0 {
		errs = append(errs, "salary: must not be negative")
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}

// NewRecord builds a record from a validated create payload, trimming text
// fields and lowercasing the email. ID and timestamps are left for the
// repository to assign.
func NewRecord(p *CreatePayload) *Employee {
	return &Employee{
		Name:       strings.TrimSpace(p.Name),
		Email:      NormalizeEmail(p.Email),
		Phone:      strings.TrimSpace(p.Phone),
		Department: strings.TrimSpace(p.Department),
		Position:   strings.TrimSpace(p.Position),
		Salary:     *p.Salary,
	}
}

// NormalizeEmail trims and lowercases an email address.
func NormalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// CheckRecord re-validates stored-record invariants. The repositories call
// this independently of the route-level validator so invalid data cannot be
// persisted even if a caller bypasses ValidateCreate/ValidateUpdate.
func CheckRecord(e *Employee) error {
	var errs []string
	for name, v := range map[string]string{
		"name":       e.Name,
		"email":      e.Email,
		"phone":      e.Phone,
		"department": e.Department,
		"position":   e.Position,
	} {
		if strings.TrimSpace(v) == "" {
			errs = append(errs, name+": must not be empty")
		}
	}
	if e.Salary < 0 {
		errs = append(errs, "salary: must not be negative")
	}
	if len(errs) > 0 {
		return &ValidationError{Errors: errs}
	}
	return nil
}
