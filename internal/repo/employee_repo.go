// EmployeeRepo: persistence boundary for the Employee entity.
package repo

import (
	"context"
	"fmt"

	"github.com/kdallas/go-branch-directory/internal/docstore"
	"github.com/kdallas/go-branch-directory/internal/domain"
)

// EmployeeRepo translates employee domain operations into document-store
// calls, including equality queries on non-key fields (branchId,
// department) via FindByField.
type EmployeeRepo struct {
	store docstore.Store
}

// NewEmployeeRepo constructs an EmployeeRepo bound to the given store.
func NewEmployeeRepo(store docstore.Store) *EmployeeRepo {
	return &EmployeeRepo{store: store}
}

// Create stores a new employee document and returns the assigned
// identifier. Timestamps are set by the store.
func (r *EmployeeRepo) Create(ctx context.Context, e domain.Employee) (string, error) {
	id, err := r.store.Add(ctx, employeeCollection, map[string]any{
		"name":       e.Name,
		"position":   e.Position,
		"department": e.Department,
		"email":      e.Email,
		"phone":      e.Phone,
		"branchId":   e.BranchID,
	})
	if err != nil {
		return "", wrapStoreErr("create employee", err)
	}
	return id, nil
}

// Get fetches an employee by its document key. Missing documents return
// ErrNotFound.
func (r *EmployeeRepo) Get(ctx context.Context, id string) (*domain.Employee, error) {
	doc, err := r.store.Get(ctx, employeeCollection, id)
	if err != nil {
		if isStoreNotFound(err) {
			return nil, ErrNotFound
		}
		return nil, wrapStoreErr(fmt.Sprintf("get employee %q", id), err)
	}
	e := employeeFromDoc(doc)
	return &e, nil
}

// List returns all employees in store order.
func (r *EmployeeRepo) List(ctx context.Context) ([]domain.Employee, error) {
	docs, err := r.store.List(ctx, employeeCollection)
	if err != nil {
		return nil, wrapStoreErr("list employees", err)
	}
	out := make([]domain.Employee, 0, len(docs))
	for _, d := range docs {
		out = append(out, employeeFromDoc(d))
	}
	return out, nil
}

// Update applies a merge-patch to an employee; the store stamps the update
// timestamp.
func (r *EmployeeRepo) Update(ctx context.Context, id string, fields map[string]any) error {
	if err := r.store.Merge(ctx, employeeCollection, id, fields); err != nil {
		if isStoreNotFound(err) {
			return ErrNotFound
		}
		return wrapStoreErr(fmt.Sprintf("update employee %q", id), err)
	}
	return nil
}

// Delete removes an employee document.
func (r *EmployeeRepo) Delete(ctx context.Context, id string) error {
	if err := r.store.Delete(ctx, employeeCollection, id); err != nil {
		return wrapStoreErr(fmt.Sprintf("delete employee %q", id), err)
	}
	return nil
}

// FindByField returns the employees whose field equals value. Reserved for
// non-key attributes; key lookups go through Get. An empty result is valid.
func (r *EmployeeRepo) FindByField(ctx context.Context, field string, value any) ([]domain.Employee, error) {
	docs, err := r.store.Where(ctx, employeeCollection, field, value)
	if err != nil {
		return nil, wrapStoreErr(fmt.Sprintf("query employees by %s", field), err)
	}
	out := make([]domain.Employee, 0, len(docs))
	for _, d := range docs {
		out = append(out, employeeFromDoc(d))
	}
	return out, nil
}

// employeeFromDoc normalizes a stored document into the domain entity.
func employeeFromDoc(d docstore.Document) domain.Employee {
	return domain.Employee{
		ID:         d.ID,
		Name:       docString(d.Data, "name"),
		Position:   docString(d.Data, "position"),
		Department: docString(d.Data, "department"),
		Email:      docString(d.Data, "email"),
		Phone:      docString(d.Data, "phone"),
		BranchID:   docString(d.Data, "branchId"),
		CreatedAt:  normalizeTime(d.CreatedAt),
		UpdatedAt:  d.UpdatedAt,
	}
}
