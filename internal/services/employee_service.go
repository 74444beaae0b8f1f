// Package services – EmployeeService
//
// This file implements the EmployeeService: employee lifecycle operations
// plus the department relation query. Branch references are carried as
// plain identifiers; the store does not enforce them.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kdallas/go-branch-directory/internal/apperr"
	"github.com/kdallas/go-branch-directory/internal/domain"
	"github.com/kdallas/go-branch-directory/internal/repo"
)

// EmployeeRepo defines the repository contract required by EmployeeService.
type EmployeeRepo interface {
	// Create stores a new employee and returns the assigned identifier.
	Create(ctx context.Context, e domain.Employee) (string, error)

	// Get fetches an employee by identifier, or repo.ErrNotFound if missing.
	Get(ctx context.Context, id string) (*domain.Employee, error)

	// List returns all employees in store order.
	List(ctx context.Context) ([]domain.Employee, error)

	// Update applies a merge-patch to the stored employee.
	Update(ctx context.Context, id string, fields map[string]any) error

	// Delete removes an employee document.
	Delete(ctx context.Context, id string) error

	// FindByField returns the employees whose field equals value.
	FindByField(ctx context.Context, field string, value any) ([]domain.Employee, error)
}

// EmployeeService provides employee-level operations and invariant checks.
type EmployeeService struct {
	// Repo is the employee repository used by this service.
	Repo EmployeeRepo
}

// NewEmployeeService constructs an EmployeeService.
func NewEmployeeService(r EmployeeRepo) *EmployeeService {
	return &EmployeeService{Repo: r}
}

// Create validates required fields and stores a new employee.
func (s *EmployeeService) Create(ctx context.Context, e domain.Employee) (*domain.Employee, error) {
	if e.Name == "" || e.Position == "" || e.Department == "" || e.Email == "" || e.Phone == "" || e.BranchID == "" {
		return nil, apperr.Validation("All fields (name, position, department, email, phone, branchId) are required.")
	}
	id, err := s.Repo.Create(ctx, e)
	if err != nil {
		return nil, wrap(err, "Failed to create employee")
	}
	created := e
	created.ID = id
	return &created, nil
}

// List returns all employees.
func (s *EmployeeService) List(ctx context.Context) ([]domain.Employee, error) {
	out, err := s.Repo.List(ctx)
	if err != nil {
		return nil, wrap(err, "Failed to fetch employees")
	}
	return out, nil
}

// GetByID fetches one employee, raising NOT_FOUND when it does not exist.
func (s *EmployeeService) GetByID(ctx context.Context, id string) (*domain.Employee, error) {
	e, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Employee with ID %q not found.", id))
		}
		return nil, wrap(err, fmt.Sprintf("Failed to fetch employee by ID (%s)", id))
	}
	return e, nil
}

// Update fetches the stored employee, merges the patch locally, persists
// the provided fields, and returns the full post-update entity.
func (s *EmployeeService) Update(ctx context.Context, id string, patch domain.EmployeePatch) (*domain.Employee, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields := patch.Fields(); len(fields) > 0 {
		if err := s.Repo.Update(ctx, id, fields); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, apperr.NotFound(fmt.Sprintf("Employee with ID %q not found.", id))
			}
			return nil, wrap(err, fmt.Sprintf("Failed to update employee (%s)", id))
		}
	}

	merged := *existing
	patch.Apply(&merged)
	return &merged, nil
}

// Delete removes an employee after verifying it exists and returns a
// confirmation message. Deleting the same identifier twice raises
// NOT_FOUND on the second call.
func (s *EmployeeService) Delete(ctx context.Context, id string) (string, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return "", err
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return "", wrap(err, fmt.Sprintf("Failed to delete employee (%s)", id))
	}
	return fmt.Sprintf("Employee with ID %q deleted successfully.", id), nil
}

// ByDepartment returns the employees in a department. An empty slice is a
// valid outcome.
func (s *EmployeeService) ByDepartment(ctx context.Context, department string) ([]domain.Employee, error) {
	out, err := s.Repo.FindByField(ctx, "department", department)
	if err != nil {
		return nil, wrap(err, fmt.Sprintf("Failed to fetch employees for department (%s)", department))
	}
	return out, nil
}
