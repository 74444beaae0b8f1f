// Package services implements the business rules for branches and
// employees. Each service depends only on its own repository contract
// (declared here, injected at construction) so storage can be substituted
// in tests.
//
// Error policy: already-typed failures (validation, not-found, repository)
// propagate unchanged so their specificity survives to the HTTP boundary;
// only genuinely unexpected failures are wrapped as SERVICE_ERROR with
// operation context.
package services

import (
	"fmt"

	"github.com/kdallas/go-branch-directory/internal/apperr"
)

// wrap passes typed errors through untouched and wraps anything else as a
// service error carrying the operation context.
func wrap(err error, context string) error {
	if _, ok := apperr.From(err); ok {
		return err
	}
	return apperr.Service(fmt.Sprintf("%s: %v", context, err), err)
}
