package services

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/kdallas/go-branch-directory/internal/apperr"
	"github.com/kdallas/go-branch-directory/internal/domain"
	"github.com/kdallas/go-branch-directory/internal/repo"
)

// stubBranchRepo is an in-memory BranchRepo with per-method overrides for
// failure injection.
type stubBranchRepo struct {
	branches  map[string]domain.Branch
	employees map[string]domain.Employee
	nextID    int

	createErr error
	getErr    error
	listErr   error
	updateErr error
	deleteErr error

	deletedEmployeesOf []string
}

func newStubBranchRepo() *stubBranchRepo {
	return &stubBranchRepo{
		branches:  map[string]domain.Branch{},
		employees: map[string]domain.Employee{},
	}
}

func (s *stubBranchRepo) Create(_ context.Context, b domain.Branch) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	s.nextID++
	id := "b" + string(rune('0'+s.nextID))
	b.ID = id
	s.branches[id] = b
	return id, nil
}

func (s *stubBranchRepo) Get(_ context.Context, id string) (*domain.Branch, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	b, ok := s.branches[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &b, nil
}

func (s *stubBranchRepo) List(_ context.Context) ([]domain.Branch, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]domain.Branch, 0, len(s.branches))
	for _, b := range s.branches {
		out = append(out, b)
	}
	return out, nil
}

func (s *stubBranchRepo) Update(_ context.Context, id string, fields map[string]any) error {
	if s.updateErr != nil {
		return s.updateErr
	}
	b, ok := s.branches[id]
	if !ok {
		return repo.ErrNotFound
	}
	if v, ok := fields["name"]; ok {
		b.Name = v.(string)
	}
	if v, ok := fields["address"]; ok {
		b.Address = v.(string)
	}
	if v, ok := fields["phone"]; ok {
		b.Phone = v.(string)
	}
	s.branches[id] = b
	return nil
}

func (s *stubBranchRepo) Delete(_ context.Context, id string) error {
	if s.deleteErr != nil {
		return s.deleteErr
	}
	delete(s.branches, id)
	return nil
}

func (s *stubBranchRepo) EmployeesByBranch(_ context.Context, branchID string) ([]domain.Employee, error) {
	out := []domain.Employee{}
	for _, e := range s.employees {
		if e.BranchID == branchID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *stubBranchRepo) DeleteEmployeesByBranch(_ context.Context, branchID string) (int, error) {
	s.deletedEmployeesOf = append(s.deletedEmployeesOf, branchID)
	n := 0
	for id, e := range s.employees {
		if e.BranchID == branchID {
			delete(s.employees, id)
			n++
		}
	}
	return n, nil
}

func strPtr(s string) *string { return &s }

func TestBranchService_Create(t *testing.T) {
	svc := NewBranchService(newStubBranchRepo())

	got, err := svc.Create(context.Background(), domain.Branch{
		Name: "Main", Address: "123 Street", Phone: "123-456-7890",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID == "" {
		t.Fatal("expected assigned identifier")
	}
	if got.Name != "Main" || got.Address != "123 Street" || got.Phone != "123-456-7890" {
		t.Fatalf("unexpected entity: %+v", got)
	}
	if got.CreatedAt != nil || got.UpdatedAt != nil {
		t.Fatal("create response should not carry timestamps")
	}
}

func TestBranchService_Create_MissingFields(t *testing.T) {
	r := newStubBranchRepo()
	svc := NewBranchService(r)

	_, err := svc.Create(context.Background(), domain.Branch{Name: "Main"})
	e, ok := apperr.From(err)
	if !ok {
		t.Fatalf("expected typed error, got %v", err)
	}
	if e.Code != apperr.CodeValidation || e.Status != http.StatusBadRequest {
		t.Fatalf("code=%q status=%d, want validation 400", e.Code, e.Status)
	}
	if e.Message != "All fields (name, address, phone) are required." {
		t.Fatalf("message = %q", e.Message)
	}
	if len(r.branches) != 0 {
		t.Fatal("repository must not be reached on invalid input")
	}
}

func TestBranchService_GetByID_NotFound(t *testing.T) {
	svc := NewBranchService(newStubBranchRepo())

	_, err := svc.GetByID(context.Background(), "nope")
	e, ok := apperr.From(err)
	if !ok || e.Code != apperr.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if e.Message != `Branch with ID "nope" not found.` {
		t.Fatalf("message = %q", e.Message)
	}
}

func TestBranchService_Update_MergeNotReplace(t *testing.T) {
	r := newStubBranchRepo()
	svc := NewBranchService(r)
	id, _ := r.Create(context.Background(), domain.Branch{
		Name: "Main", Address: "123 Street", Phone: "123-456-7890",
	})

	got, err := svc.Update(context.Background(), id, domain.BranchPatch{Address: strPtr("9 Oak Ave")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Address != "9 Oak Ave" {
		t.Fatalf("address = %q", got.Address)
	}
	if got.Name != "Main" || got.Phone != "123-456-7890" {
		t.Fatalf("update replaced instead of merged: %+v", got)
	}
	if stored := r.branches[id]; stored.Name != "Main" || stored.Address != "9 Oak Ave" {
		t.Fatalf("stored entity wrong: %+v", stored)
	}
}

func TestBranchService_Update_EmptyPatchSkipsStore(t *testing.T) {
	r := newStubBranchRepo()
	svc := NewBranchService(r)
	id, _ := r.Create(context.Background(), domain.Branch{
		Name: "Main", Address: "123 Street", Phone: "123-456-7890",
	})
	r.updateErr = errors.New("must not be called")

	got, err := svc.Update(context.Background(), id, domain.BranchPatch{})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Name != "Main" {
		t.Fatalf("unexpected entity: %+v", got)
	}
}

func TestBranchService_Update_NotFound(t *testing.T) {
	svc := NewBranchService(newStubBranchRepo())

	_, err := svc.Update(context.Background(), "nope", domain.BranchPatch{Name: strPtr("X")})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestBranchService_Delete(t *testing.T) {
	r := newStubBranchRepo()
	svc := NewBranchService(r)
	id, _ := r.Create(context.Background(), domain.Branch{
		Name: "Main", Address: "123 Street", Phone: "123-456-7890",
	})

	msg, err := svc.Delete(context.Background(), id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	want := `Branch with ID "` + id + `" deleted successfully.`
	if msg != want {
		t.Fatalf("message = %q, want %q", msg, want)
	}
	if len(r.deletedEmployeesOf) != 0 {
		t.Fatal("cascade must be off by default")
	}

	// Second delete of the same identifier is NOT_FOUND.
	if _, err := svc.Delete(context.Background(), id); !apperr.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND on repeat delete, got %v", err)
	}
}

func TestBranchService_Delete_Cascade(t *testing.T) {
	r := newStubBranchRepo()
	id, _ := r.Create(context.Background(), domain.Branch{
		Name: "Main", Address: "123 Street", Phone: "123-456-7890",
	})
	r.employees["e1"] = domain.Employee{ID: "e1", Name: "Alice Johnson", BranchID: id}
	r.employees["e2"] = domain.Employee{ID: "e2", Name: "Bob Smith", BranchID: "other"}

	svc := NewBranchService(r)
	svc.CascadeDelete = true

	if _, err := svc.Delete(context.Background(), id); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if len(r.deletedEmployeesOf) != 1 || r.deletedEmployeesOf[0] != id {
		t.Fatalf("cascade calls = %v", r.deletedEmployeesOf)
	}
	if _, ok := r.employees["e1"]; ok {
		t.Fatal("dependent employee should be gone")
	}
	if _, ok := r.employees["e2"]; !ok {
		t.Fatal("unrelated employee must survive the cascade")
	}
}

func TestBranchService_EmployeesByBranch_EmptyIsValid(t *testing.T) {
	svc := NewBranchService(newStubBranchRepo())

	out, err := svc.EmployeesByBranch(context.Background(), "b1")
	if err != nil {
		t.Fatalf("employees by branch: %v", err)
	}
	if len(out) != 0 {
		t.Fatalf("len = %d, want 0", len(out))
	}
}

func TestBranchService_TypedRepoErrorsPassThrough(t *testing.T) {
	r := newStubBranchRepo()
	r.listErr = apperr.Repository(http.StatusConflict, "Failed to list branches: duplicate", errors.New("duplicate"))
	svc := NewBranchService(r)

	_, err := svc.List(context.Background())
	e, ok := apperr.From(err)
	if !ok {
		t.Fatalf("expected typed error, got %v", err)
	}
	if e.Code != apperr.CodeRepository || e.Status != http.StatusConflict {
		t.Fatalf("code=%q status=%d, want repository 409 preserved", e.Code, e.Status)
	}
}

func TestBranchService_UntypedErrorsBecomeServiceErrors(t *testing.T) {
	r := newStubBranchRepo()
	cause := errors.New("socket closed")
	r.listErr = cause
	svc := NewBranchService(r)

	_, err := svc.List(context.Background())
	e, ok := apperr.From(err)
	if !ok {
		t.Fatalf("expected typed error, got %v", err)
	}
	if e.Code != apperr.CodeService || e.Status != http.StatusInternalServerError {
		t.Fatalf("code=%q status=%d, want service 500", e.Code, e.Status)
	}
	if !strings.Contains(e.Message, "Failed to fetch branches") {
		t.Fatalf("message = %q", e.Message)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause preserved in chain")
	}
}
