package services

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/kdallas/go-branch-directory/internal/apperr"
	"github.com/kdallas/go-branch-directory/internal/domain"
	"github.com/kdallas/go-branch-directory/internal/repo"
)

// stubEmployeeRepo is an in-memory EmployeeRepo with per-method overrides
// for failure injection.
type stubEmployeeRepo struct {
	employees map[string]domain.Employee
	nextID    int

	createErr error
	getErr    error
	findErr   error
}

func newStubEmployeeRepo() *stubEmployeeRepo {
	return &stubEmployeeRepo{employees: map[string]domain.Employee{}}
}

func (s *stubEmployeeRepo) Create(_ context.Context, e domain.Employee) (string, error) {
	if s.createErr != nil {
		return "", s.createErr
	}
	s.nextID++
	id := "e" + string(rune('0'+s.nextID))
	e.ID = id
	s.employees[id] = e
	return id, nil
}

func (s *stubEmployeeRepo) Get(_ context.Context, id string) (*domain.Employee, error) {
	if s.getErr != nil {
		return nil, s.getErr
	}
	e, ok := s.employees[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	return &e, nil
}

func (s *stubEmployeeRepo) List(_ context.Context) ([]domain.Employee, error) {
	out := make([]domain.Employee, 0, len(s.employees))
	for _, e := range s.employees {
		out = append(out, e)
	}
	return out, nil
}

func (s *stubEmployeeRepo) Update(_ context.Context, id string, fields map[string]any) error {
	e, ok := s.employees[id]
	if !ok {
		return repo.ErrNotFound
	}
	set := func(key string, dst *string) {
		if v, ok := fields[key]; ok {
			*dst = v.(string)
		}
	}
	set("name", &e.Name)
	set("position", &e.Position)
	set("department", &e.Department)
	set("email", &e.Email)
	set("phone", &e.Phone)
	set("branchId", &e.BranchID)
	s.employees[id] = e
	return nil
}

func (s *stubEmployeeRepo) Delete(_ context.Context, id string) error {
	delete(s.employees, id)
	return nil
}

func (s *stubEmployeeRepo) FindByField(_ context.Context, field string, value any) ([]domain.Employee, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	out := []domain.Employee{}
	for _, e := range s.employees {
		if field == "department" && e.Department == value {
			out = append(out, e)
		}
	}
	return out, nil
}

func validEmployee() domain.Employee {
	return domain.Employee{
		Name: "Alice Johnson", Position: "Manager", Department: "Sales",
		Email: "alice@example.com", Phone: "123-456-7890", BranchID: "b1",
	}
}

func TestEmployeeService_Create(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo())

	got, err := svc.Create(context.Background(), validEmployee())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID == "" {
		t.Fatal("expected assigned identifier")
	}
	if got.Name != "Alice Johnson" || got.BranchID != "b1" {
		t.Fatalf("unexpected entity: %+v", got)
	}
}

func TestEmployeeService_Create_MissingFields(t *testing.T) {
	r := newStubEmployeeRepo()
	svc := NewEmployeeService(r)

	e := validEmployee()
	e.Email = ""
	_, err := svc.Create(context.Background(), e)

	typed, ok := apperr.From(err)
	if !ok || typed.Code != apperr.CodeValidation {
		t.Fatalf("expected VALIDATION_ERROR, got %v", err)
	}
	if typed.Message != "All fields (name, position, department, email, phone, branchId) are required." {
		t.Fatalf("message = %q", typed.Message)
	}
	if len(r.employees) != 0 {
		t.Fatal("repository must not be reached on invalid input")
	}
}

func TestEmployeeService_GetByID_NotFound(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo())

	_, err := svc.GetByID(context.Background(), "nope")
	typed, ok := apperr.From(err)
	if !ok || typed.Code != apperr.CodeNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
	if typed.Message != `Employee with ID "nope" not found.` {
		t.Fatalf("message = %q", typed.Message)
	}
}

func TestEmployeeService_Update_MergeNotReplace(t *testing.T) {
	r := newStubEmployeeRepo()
	svc := NewEmployeeService(r)
	id, _ := r.Create(context.Background(), validEmployee())

	got, err := svc.Update(context.Background(), id, domain.EmployeePatch{
		Position: strPtr("Director"),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Position != "Director" {
		t.Fatalf("position = %q", got.Position)
	}
	if got.Name != "Alice Johnson" || got.Email != "alice@example.com" || got.BranchID != "b1" {
		t.Fatalf("update replaced instead of merged: %+v", got)
	}
}

func TestEmployeeService_Update_NotFound(t *testing.T) {
	svc := NewEmployeeService(newStubEmployeeRepo())

	_, err := svc.Update(context.Background(), "nope", domain.EmployeePatch{Name: strPtr("X")})
	if !apperr.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestEmployeeService_Delete_TwiceIsNotFound(t *testing.T) {
	r := newStubEmployeeRepo()
	svc := NewEmployeeService(r)
	id, _ := r.Create(context.Background(), validEmployee())

	msg, err := svc.Delete(context.Background(), id)
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	want := `Employee with ID "` + id + `" deleted successfully.`
	if msg != want {
		t.Fatalf("message = %q, want %q", msg, want)
	}

	if _, err := svc.Delete(context.Background(), id); !apperr.IsNotFound(err) {
		t.Fatalf("expected NOT_FOUND on repeat delete, got %v", err)
	}
}

func TestEmployeeService_ByDepartment(t *testing.T) {
	r := newStubEmployeeRepo()
	svc := NewEmployeeService(r)
	ctx := context.Background()

	r.Create(ctx, validEmployee())
	other := validEmployee()
	other.Name = "Bob Smith"
	other.Department = "IT"
	r.Create(ctx, other)

	got, err := svc.ByDepartment(ctx, "Sales")
	if err != nil {
		t.Fatalf("by department: %v", err)
	}
	if len(got) != 1 || got[0].Department != "Sales" {
		t.Fatalf("unexpected result: %+v", got)
	}

	// No matches is a valid, empty outcome at this layer.
	empty, err := svc.ByDepartment(ctx, "Legal")
	if err != nil {
		t.Fatalf("by department: %v", err)
	}
	if len(empty) != 0 {
		t.Fatalf("len = %d, want 0", len(empty))
	}
}

func TestEmployeeService_UntypedErrorsBecomeServiceErrors(t *testing.T) {
	r := newStubEmployeeRepo()
	cause := errors.New("socket closed")
	r.findErr = cause
	svc := NewEmployeeService(r)

	_, err := svc.ByDepartment(context.Background(), "Sales")
	typed, ok := apperr.From(err)
	if !ok {
		t.Fatalf("expected typed error, got %v", err)
	}
	if typed.Code != apperr.CodeService || typed.Status != http.StatusInternalServerError {
		t.Fatalf("code=%q status=%d, want service 500", typed.Code, typed.Status)
	}
	if !errors.Is(err, cause) {
		t.Fatal("expected cause preserved in chain")
	}
}
