// Package docstore defines the narrow document-store boundary the
// repositories are written against: schemaless JSON documents grouped into
// named collections, addressed by a store-assigned identifier, with
// merge-style updates and equality queries on document fields.
//
// The production deployment targets a managed document database; this
// package deliberately exposes only the operations the repositories need
// (add, get, list, merge, delete, equality query) so the concrete client
// can be swapped without touching the layers above. An embedded SQLite
// implementation is provided in sqlite.go.
//
// Error semantics: every failing operation returns a *Error carrying a
// portable Code. Callers branch on CodeOf(err); the repo layer remaps codes
// to HTTP statuses.
package docstore

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Code classifies store failures in a backend-independent way. The values
// mirror the condition names managed document databases report.
type Code string

const (
	CodeNotFound         Code = "not-found"
	CodeAlreadyExists    Code = "already-exists"
	CodePermissionDenied Code = "permission-denied"
	CodeUnauthenticated  Code = "unauthenticated"
	CodeInvalidArgument  Code = "invalid-argument"
	CodeInternal         Code = "internal"
)

// Error is the failure type returned by all Store operations.
type Error struct {
	// Op names the failing operation, e.g. "add" or "merge".
	Op string
	// Code classifies the failure.
	Code Code
	// Err is the underlying driver error, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("docstore: %s: %s: %v", e.Op, e.Code, e.Err)
	}
	return fmt.Sprintf("docstore: %s: %s", e.Op, e.Code)
}

// Unwrap exposes the driver error for errors.Is/As chains.
func (e *Error) Unwrap() error { return e.Err }

// CodeOf returns the Code carried by err, or CodeInternal when err is not a
// store error.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// Document is a stored JSON document together with its store-managed
// identity and timestamps. UpdatedAt is nil until the document has been
// merged at least once.
type Document struct {
	ID        string
	Data      map[string]any
	CreatedAt time.Time
	UpdatedAt *time.Time
}

// Store is the document-store contract consumed by the repositories.
//
// Implementations must be safe for concurrent use. Every operation either
// completes or returns a *Error; there are no partial writes visible to
// callers.
type Store interface {
	// Add stores data as a new document in collection and returns the
	// store-assigned identifier. The creation timestamp is set by the store.
	Add(ctx context.Context, collection string, data map[string]any) (string, error)

	// Get fetches a document by its identifier. A missing document yields
	// a *Error with CodeNotFound.
	Get(ctx context.Context, collection, id string) (Document, error)

	// List returns every document in collection, in store order.
	List(ctx context.Context, collection string) ([]Document, error)

	// Merge applies a merge-patch to an existing document: fields in data
	// overwrite, all other stored fields are retained. The update timestamp
	// is stamped by the store. Merging a missing document yields CodeNotFound.
	Merge(ctx context.Context, collection, id string, data map[string]any) error

	// Delete removes a document. Deleting an absent document is a no-op,
	// matching managed document-store semantics; existence checks belong to
	// the service layer.
	Delete(ctx context.Context, collection, id string) error

	// Where returns the documents in collection whose field equals value.
	Where(ctx context.Context, collection, field string, value any) ([]Document, error)
}
