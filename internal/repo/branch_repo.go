// BranchRepo: persistence boundary for the Branch entity.
package repo

import (
	"context"
	"fmt"

	"github.com/kdallas/go-branch-directory/internal/docstore"
	"github.com/kdallas/go-branch-directory/internal/domain"
)

// BranchRepo translates branch domain operations into document-store calls.
// It also answers the employees-of-a-branch relation query, which filters
// the employees collection on the branchId field.
type BranchRepo struct {
	store docstore.Store
}

// NewBranchRepo constructs a BranchRepo bound to the given store.
func NewBranchRepo(store docstore.Store) *BranchRepo {
	return &BranchRepo{store: store}
}

// Create stores a new branch document and returns the assigned identifier.
// Timestamps are set by the store.
func (r *BranchRepo) Create(ctx context.Context, b domain.Branch) (string, error) {
	id, err := r.store.Add(ctx, branchCollection, map[string]any{
		"name":    b.Name,
		"address": b.Address,
		"phone":   b.Phone,
	})
	if err != nil {
		return "", wrapStoreErr("create branch", err)
	}
	return id, nil
}

// Get fetches a branch by its document key. Missing documents return
// ErrNotFound; any other store failure is wrapped as a repository error.
func (r *BranchRepo) Get(ctx context.Context, id string) (*domain.Branch, error) {
	doc, err := r.store.Get(ctx, branchCollection, id)
	if err != nil {
		if isStoreNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, wrapStoreErr(fmt.Sprintf("get branch %q", id), err)
	}
	b := branchFromDoc(doc)
	return &b, nil
}

// List returns all branches in store order.
func (r *BranchRepo) List(ctx context.Context) ([]domain.Branch, error) {
	docs, err := r.store.List(ctx, branchCollection)
	if err != nil {
		return nil, wrapStoreErr("list branches", err)
	}
	out := make([]domain.Branch, 0, len(docs))
	for _, d := range docs {
		out = append(out, branchFromDoc(d))
	}
	return out, nil
}

// Update applies a merge-patch to a branch: supplied fields overwrite,
// absent fields are retained, and the store stamps the update timestamp.
func (r *BranchRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := r.store.Merge(ctx, branchCollection, id, fields); err != nil {
		if isStoreNotFound(err) {
			return ErrNotFound
		}
		return wrapStoreErr(fmt.Sprintf("update branch %q", id), err)
	}
	return nil
}

// Delete removes a branch document.
func (r *BranchRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, branchCollection, id); err != nil {
		return wrapStoreErr(fmt.Sprintf("delete branch %q", id), err)
	}
	return nil
}

// EmployeesByBranch returns the employees referencing branchID. An empty
// result is valid, not an error.
func (r *BranchRepo) EmployeesByBranch(ctx context.Context, branchID string) ([]domain.Employee, error) {
	docs, err := r.store.Where(ctx, employeeCollection, "branchId", branchID)
	if err != nil {
		return nil, wrapStoreErr(fmt.Sprintf("list employees of branch %q", branchID), err)
	}
	out := make([]domain.Employee, 0, len(docs))
	for _, d := range docs {
		out = append(out, employeeFromDoc(d))
	}
	return out, nil
}

// DeleteEmployeesByBranch removes every employee referencing branchID and
// returns how many were deleted. Used for the optional cascade on branch
// deletion.
func (r *BranchRepo) DeleteEmployeesByBranch(ctx context.Context, branchID string) (int, error) {
	docs, err := r.store.Where(ctx, employeeCollection, "branchId", branchID)
	if err != nil {
		return 0, wrapStoreErr(fmt.Sprintf("list employees of branch %q", branchID), err)
	}
	for _, d := range docs {
		if err := r.store.Delete(ctx, employeeCollection, d.ID); err != nil {
			return 0, wrapStoreErr(fmt.Sprintf("delete employee %q", d.ID), err)
		}
	}
	return len(docs), nil
}

// branchFromDoc normalizes a stored document into the domain entity.
func branchFromDoc(d docstore.Document) domain.Branch {
	return domain.Branch{
		ID:        d.ID,
		Name:      docString(d.Data, "name"),
		Address:   docString(d.Data, "address"),
		Phone:     docString(d.Data, "phone"),
		CreatedAt: normalizeTime(d.CreatedAt),
		UpdatedAt: d.UpdatedAt,
	}
}
