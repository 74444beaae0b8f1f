// Package repo implements the persistence boundary for domain entities on
// top of the document store. There is exactly one repository per entity
// (BranchRepo, EmployeeRepo); both follow the "thin repository" approach:
// no business logic, only CRUD persistence and field queries.
//
// Error semantics:
//   - A missing document on a key lookup returns ErrNotFound. That is a
//     signal, not a failure; services translate it into a client-facing
//     NOT_FOUND error with an entity-specific message.
//   - Any other store failure is wrapped as a REPOSITORY_ERROR carrying the
//     operation name, entity id, and the HTTP status remapped from the
//     store's portable failure code (see statusForCode).
//
// Identifier lookups always address the store's document key; Where-style
// field queries are reserved for non-key attributes (branchId, department).
package repo

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/kdallas/go-branch-directory/internal/apperr"
	"github.com/kdallas/go-branch-directory/internal/docstore"
)

// Collection names in the backing store.
const (
	branchCollection   = "branches"
	employeeCollection = "employees"
)

// ErrNotFound is returned when a requested document does not exist. It is
// consistently checked by the service layer via errors.Is.
var ErrNotFound = errors.New("document not found")

// statusForCode remaps a portable store failure code to the HTTP status a
// repository error should carry. Unrecognized codes stay 500.
func statusForCode(c docstore.Code) int {
	switch c {
	case docstore.CodeNotFound:
		return http.StatusNotFound
	case docstore.CodeAlreadyExists:
		return http.StatusConflict
	case docstore.CodePermissionDenied:
		return http.StatusForbidden
	case docstore.CodeUnauthenticated:
		return http.StatusUnauthorized
	case docstore.CodeInvalidArgument:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// wrapStoreErr converts a store failure into a repository apperr with the
// remapped status and the original message preserved for diagnosis.
func wrapStoreErr(op string, err error) error {
	status := statusForCode(docstore.CodeOf(err))
	return apperr.Repository(status, fmt.Sprintf("Failed to %s: %v", op, err), err)
}

// isStoreNotFound reports whether err is the store's missing-document code.
func isStoreNotFound(err error) bool {
	return docstore.CodeOf(err) == docstore.CodeNotFound
}

// normalizeTime converts a store timestamp into the common representation
// entities carry across the repository boundary (UTC, pointer form).
func normalizeTime(t time.Time) *time.Time {
	u := t.UTC()
	return &u
}

// docString extracts a string field from raw document data, tolerating
// absent or non-string values.
func docString(data map[string]any, key string) string {
	if v, ok := data[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
