// Package validation checks incoming payloads against declarative schemas
// before they reach business logic. Schemas are expressed as validator/v10
// rules on the payload types below; Check reports every violation at once
// (no short-circuit on the first failure) as an ordered list of
// human-readable messages, and never mutates its input.
//
// The same schema serves create and update for an entity: payload fields
// are pointers, so an absent field trips its required rule on both paths,
// while the service layer still receives merge-patch semantics.
package validation

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
)

// phoneRE is the required phone format: NNN-NNN-NNNN.
var phoneRE = regexp.MustCompile(`^\d{3}-\d{3}-\d{4}$`)

// validate is the shared validator instance with custom rules registered.
var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()

	// Report fields by their JSON names, the way clients sent them.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})

	if err := v.RegisterValidation("phone", isPhone); err != nil {
		panic(err)
	}
	return v
}

// isPhone enforces the NNN-NNN-NNNN pattern.
func isPhone(fl validator.FieldLevel) bool {
	return phoneRE.MatchString(fl.Field().String())
}

// BranchPayload is the declarative schema for branch request bodies.
type BranchPayload struct {
	Name    *string `json:"name" validate:"required,min=3,max=50"`
	Address *string `json:"address" validate:"required,min=5"`
	Phone   *string `json:"phone" validate:"required,phone"`
}

// EmployeePayload is the declarative schema for employee request bodies.
type EmployeePayload struct {
	Name       *string `json:"name" validate:"required,min=3,max=50"`
	Position   *string `json:"position" validate:"required,min=2,max=50"`
	Department *string `json:"department" validate:"required,min=2,max=50"`
	Email      *string `json:"email" validate:"required,email"`
	Phone      *string `json:"phone" validate:"required,phone"`
	BranchID   *string `json:"branchId" validate:"required"`
}

// Check validates payload against its schema and returns every violation
// as a human-readable message, in field order. A nil result means valid.
func Check(payload any) []string {
	err := validate.Struct(payload)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		// Non-field error (bad schema usage); surface it as one violation.
		return []string{err.Error()}
	}
	out := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, message(fe))
	}
	return out
}

// message renders one field violation for clients.
func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%q is required", fe.Field())
	case "min":
		return fmt.Sprintf("%q length must be at least %s characters long", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%q length must be less than or equal to %s characters long", fe.Field(), fe.Param())
	case "email":
		return fmt.Sprintf("%q must be a valid email", fe.Field())
	case "phone":
		return fmt.Sprintf("%q must match the pattern NNN-NNN-NNNN", fe.Field())
	default:
		return fmt.Sprintf("%q is invalid", fe.Field())
	}
}
