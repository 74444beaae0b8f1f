// Handler wiring and service contracts.
//
// Handlers are transport-thin: they parse path/body input, run schema
// validation, delegate to application services, and shape the response
// envelope. Business rules never live here.
package handlers

import (
	"context"

	"github.com/kdallas/go-branch-directory/internal/domain"
)

// BranchService defines the branch operations consumed by HTTP handlers.
//
// Implementations must be safe for concurrent use and honor the provided
// context for cancellation.
type BranchService interface {
	// Create validates and stores a new branch.
	Create(ctx context.Context, b domain.Branch) (*domain.Branch, error)
	// List returns all branches.
	List(ctx context.Context) ([]domain.Branch, error)
	// GetByID returns one branch or a NOT_FOUND error.
	GetByID(ctx context.Context, id string) (*domain.Branch, error)
	// Update merge-patches a branch and returns the post-update entity.
	Update(ctx context.Context, id string, patch domain.BranchPatch) (*domain.Branch, error)
	// Delete removes a branch and returns a confirmation message.
	Delete(ctx context.Context, id string) (string, error)
	// EmployeesByBranch returns the employees assigned to a branch.
	EmployeesByBranch(ctx context.Context, branchID string) ([]domain.Employee, error)
}

// EmployeeService defines the employee operations consumed by HTTP handlers.
type EmployeeService interface {
	// Create validates and stores a new employee.
	Create(ctx context.Context, e domain.Employee) (*domain.Employee, error)
	// List returns all employees.
	List(ctx context.Context) ([]domain.Employee, error)
	// GetByID returns one employee or a NOT_FOUND error.
	GetByID(ctx context.Context, id string) (*domain.Employee, error)
	// Update merge-patches an employee and returns the post-update entity.
	Update(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error)
	// Delete removes an employee and returns a confirmation message.
	Delete(ctx context.Context, id string) (string, error)
	// ByDepartment returns the employees in a department.
	ByDepartment(ctx context.Context, department string) ([]domain.Employee, error)
}

// Options carries boundary policy choices that are contracts, not bugs to
// resolve silently.
type Options struct {
	// EmptyListNotFound makes relation queries (employees by branch or by
	// department) answer 404 when the result is empty, instead of 200 with
	// an empty array.
	EmptyListNotFound bool
}

// Handlers groups the HTTP endpoints for branches and employees. It
// depends on abstract service interfaces so transport stays separate from
// business logic.
type Handlers struct {
	branchSvc BranchService
	empSvc    EmployeeService
	opts      Options
}

// New constructs a Handlers instance bound to the given services.
func New(branchSvc BranchService, empSvc EmployeeService, opts Options) *Handlers {
	return &Handlers{branchSvc: branchSvc, empSvc: empSvc, opts: opts}
}

// deref unwraps an optional payload field, defaulting to "".
func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
