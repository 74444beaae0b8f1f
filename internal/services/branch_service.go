// Package services – BranchService
//
// This file implements the BranchService, which manages the branch
// lifecycle: creation (with required-field checks ahead of the store),
// retrieval, merge-patch updates that return the full post-update entity,
// deletion with an explicit, configurable cascade over dependent employees,
// and the employees-of-a-branch relation query.
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/kdallas/go-branch-directory/internal/apperr"
	"github.com/kdallas/go-branch-directory/internal/domain"
	"github.com/kdallas/go-branch-directory/internal/repo"
)

// BranchRepo defines the repository contract required by BranchService.
// Implementations are responsible for persistence of branch aggregates and
// the branchId relation query over employees.
type BranchRepo interface {
	// Create stores a new branch and returns the assigned identifier.
	Create(ctx context.Context, b domain.Branch) (string, error)

	// Get fetches a branch by identifier, or repo.ErrNotFound if missing.
	Get(ctx context.Context, id string) (*domain.Branch, error)

	// List returns all branches in store order.
	List(ctx context.Context) ([]domain.Branch, error)

	// Update applies a merge-patch to the stored branch.
	Update(ctx context.Context, id string, fields map[string]any) error

	// Delete removes a branch document.
	Delete(ctx context.Context, id string) error

	// EmployeesByBranch returns the employees referencing a branch.
	EmployeesByBranch(ctx context.Context, branchID string) ([]domain.Employee, error)

	// DeleteEmployeesByBranch removes the employees referencing a branch.
	DeleteEmployeesByBranch(ctx context.Context, branchID string) (int, error)
}

// BranchService provides branch-level operations and invariant checks.
// It is safe for concurrent use; all state lives behind the repository.
type BranchService struct {
	// Repo is the branch repository used by this service.
	Repo BranchRepo

	// CascadeDelete controls whether deleting a branch also removes the
	// employees referencing it. Off by default; referential integrity is
	// otherwise only assumed, never enforced.
	CascadeDelete bool
}

// NewBranchService constructs a BranchService with cascade deletion off.
func NewBranchService(r BranchRepo) *BranchService {
	return &BranchService{Repo: r}
}

// Create validates required fields and stores a new branch. The returned
// entity carries the assigned identifier; timestamps are visible on the
// next fetch.
func (s *BranchService) Create(ctx context.Context, b domain.Branch) (*domain.Branch, error) {
	if b.Name == "" || b.Address == "" || b.Phone == "" {
		return nil, apperr.Validation("All fields (name, address, phone) are required.")
	}
	id, err := s.Repo.Create(ctx, b)
	if err != nil {
		return nil, wrap(err, "Failed to create branch")
	}
	return &domain.Branch{ID: id, Name: b.Name, Address: b.Address, Phone: b.Phone}, nil
}

// List returns all branches.
func (s *BranchService) List(ctx context.Context) ([]domain.Branch, error) {
	out, err := s.Repo.List(ctx)
	if err != nil {
		return nil, wrap(err, "Failed to fetch branches")
	}
	return out, nil
}

// GetByID fetches one branch, raising NOT_FOUND when it does not exist.
func (s *BranchService) GetByID(ctx context.Context, id string) (*domain.Branch, error) {
	b, err := s.Repo.Get(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, apperr.NotFound(fmt.Sprintf("Branch with ID %q not found.", id))
		}
		return nil, wrap(err, fmt.Sprintf("Failed to fetch branch by ID (%s)", id))
	}
	return b, nil
}

// Update fetches the stored branch, merges the patch locally, persists the
// provided fields, and returns the full post-update entity.
func (s *BranchService) Update(ctx context.Context, id string, patch domain.BranchPatch) (*domain.Branch, error) {
	existing, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if fields := patch.Fields(); len(fields) > 0 {
		if err := s.Repo.Update(ctx, id, fields); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return nil, apperr.NotFound(fmt.Sprintf("Branch with ID %q not found.", id))
			}
			return nil, wrap(err, fmt.Sprintf("Failed to update branch (%s)", id))
		}
	}

	merged := *existing
	patch.Apply(&merged)
	return &merged, nil
}

// Delete removes a branch after verifying it exists, cascading over its
// employees when configured, and returns a confirmation message.
func (s *BranchService) Delete(ctx context.Context, id string) (string, error) {
	if _, err := s.GetByID(ctx, id); err != nil {
		return "", err
	}
	if s.CascadeDelete {
		if _, err := s.Repo.DeleteEmployeesByBranch(ctx, id); err != nil {
			return "", wrap(err, fmt.Sprintf("Failed to delete employees of branch (%s)", id))
		}
	}
	if err := s.Repo.Delete(ctx, id); err != nil {
		return "", wrap(err, fmt.Sprintf("Failed to delete branch (%s)", id))
	}
	return fmt.Sprintf("Branch with ID %q deleted successfully.", id), nil
}

// EmployeesByBranch returns the employees assigned to a branch. An empty
// slice is a valid outcome; presentation policy for it belongs to the
// HTTP layer.
func (s *BranchService) EmployeesByBranch(ctx context.Context, branchID string) ([]domain.Employee, error) {
	out, err := s.Repo.EmployeesByBranch(ctx, branchID)
	if err != nil {
		return nil, wrap(err, fmt.Sprintf("Failed to fetch employees for branch (%s)", branchID))
	}
	return out, nil
}
