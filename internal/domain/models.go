// Package domain defines the entities managed by the directory backend:
// branches and the employees assigned to them. These types cross the
// repository boundary and are serialized directly into API responses.
package domain

import "time"

// Branch represents a physical office location. Branches are created with
// name, address, and phone; the identifier and timestamps are assigned by
// the backing store and are immutable afterwards.
//
// Fields:
//   - ID: store-assigned document identifier.
//   - Name: branch name (3–50 chars).
//   - Address: street address (min 5 chars).
//   - Phone: contact number in NNN-NNN-NNNN form.
//   - CreatedAt / UpdatedAt: stamped by the store; nil until set.
type Branch struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Address   string     `json:"address"`
	Phone     string     `json:"phone"`
	CreatedAt *time.Time `json:"createdAt,omitempty"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// Employee represents a staff member assigned to a branch. The BranchID
// field references a Branch identifier; referential integrity is assumed,
// not enforced by the store.
type Employee struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	Position   string     `json:"position"`
	Department string     `json:"department"`
	Email      string     `json:"email"`
	Phone      string     `json:"phone"`
	BranchID   string     `json:"branchId"`
	CreatedAt  *time.Time `json:"createdAt,omitempty"`
	UpdatedAt  *time.Time `json:"updatedAt,omitempty"`
}

// BranchPatch is a merge-patch payload for Branch updates. Nil fields are
// retained as stored; non-nil fields overwrite.
type BranchPatch struct {
	Name    *string `json:"name"`
	Address *string `json:"address"`
	Phone   *string `json:"phone"`
}

// Fields returns the provided (non-nil) patch fields as a document update.
func (p BranchPatch) Fields() map[string]any {
	out := map[string]any{}
	if p.Name != nil {
		out["name"] = *p.Name
	}
	if p.Address != nil {
		out["address"] = *p.Address
	}
	if p.Phone != nil {
		out["phone"] = *p.Phone
	}
	return out
}

// Apply merges the patch into b, overwriting only the provided fields.
func (p BranchPatch) Apply(b *Branch) {
	if p.Name != nil {
		b.Name = *p.Name
	}
	if p.Address != nil {
		b.Address = *p.Address
	}
	if p.Phone != nil {
		b.Phone = *p.Phone
	}
}

// EmployeePatch is a merge-patch payload for Employee updates.
type EmployeePatch struct {
	Name       *string `json:"name"`
	Position   *string `json:"position"`
	Department *string `json:"department"`
	Email      *string `json:"email"`
	Phone      *string `json:"phone"`
	BranchID   *string `json:"branchId"`
}

// Fields returns the provided (non-nil) patch fields as a document update.
func (p EmployeePatch) Fields() map[string]any {
	out := map[string]any{}
	if p.Name != nil {
		out["name"] = *p.Name
	}
	if p.Position != nil {
		out["position"] = *p.Position
	}
	if p.Department != nil {
		out["department"] = *p.Department
	}
	if p.Email != nil {
		out["email"] = *p.Email
	}
	if p.Phone != nil {
		out["phone"] = *p.Phone
	}
	if p.BranchID != nil {
		out["branchId"] = *p.BranchID
	}
	return out
}

// Apply merges the patch into e, overwriting only the provided fields.
func (p EmployeePatch) Apply(e *Employee) {
	if p.Name != nil {
		e.Name = *p.Name
	}
	if p.Position != nil {
		e.Position = *p.Position
	}
	if p.Department != nil {
		e.Department = *p.Department
	}
	if p.Email != nil {
		e.Email = *p.Email
	}
	if p.Phone != nil {
		e.Phone = *p.Phone
	}
	if p.BranchID != nil {
		e.BranchID = *p.BranchID
	}
}
