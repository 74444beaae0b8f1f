// Employee HTTP handlers.
//
// This file exposes the REST endpoints for employee resources:
//   - POST   /employees
//   - GET    /employees
//   - GET    /employees/{id}
//   - PUT    /employees/{id}
//   - DELETE /employees/{id}
//   - GET    /employees/department/{department}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kdallas/go-branch-directory/internal/apperr"
	"github.com/kdallas/go-branch-directory/internal/domain"
	"github.com/kdallas/go-branch-directory/internal/validation"
)

// CreateEmployee godoc
// @ID          createEmployee
// @Summary     Create a new employee
// @Description Adds a new employee referencing an existing branch.
// @Tags        Employees
// @Accept      json
// @Produce     json
// @Param       body body validation.EmployeePayload true "Employee payload"
// @Success     201 {object} handlers.SuccessResponse
// @Failure     400 {object} handlers.ErrorResponse "Invalid input data"
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /employees [post]
func (h *Handlers) CreateEmployee(c *gin.Context) {
	var req validation.EmployeePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, []string{"request body must be valid JSON"})
		return
	}
	if violations := validation.Check(req); len(violations) > 0 {
		failValidation(c, violations)
		return
	}

	created, err := h.empSvc.Create(c.Request.Context(), domain.Employee{
		Name:       deref(req.Name),
		Position:   deref(req.Position),
		Department: deref(req.Department),
		Email:      deref(req.Email),
		Phone:      deref(req.Phone),
		BranchID:   deref(req.BranchID),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, created, "Employee created")
}

// ListEmployees godoc
// @ID          listEmployees
// @Summary     Retrieve all employees
// @Tags        Employees
// @Produce     json
// @Success     200 {object} handlers.SuccessResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /employees [get]
func (h *Handlers) ListEmployees(c *gin.Context) {
	employees, err := h.empSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, employees, "Employees retrieved")
}

// GetEmployee godoc
// @ID          getEmployee
// @Summary     Retrieve a specific employee
// @Tags        Employees
// @Produce     json
// @Param       id path string true "Employee ID"
// @Success     200 {object} handlers.SuccessResponse
// @Failure     404 {object} handlers.ErrorResponse "Employee not found"
// @Router      /employees/{id} [get]
func (h *Handlers) GetEmployee(c *gin.Context) {
	employee, err := h.empSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, employee, "Employee retrieved")
}

// UpdateEmployee godoc
// @ID          updateEmployee
// @Summary     Update an employee
// @Description Merge-patches an existing employee: provided fields overwrite, absent fields are retained.
// @Tags        Employees
// @Accept      json
// @Produce     json
// @Param       id   path string                        true "Employee ID"
// @Param       body body validation.EmployeePayload true "Employee payload"
// @Success     200 {object} handlers.SuccessResponse
// @Failure     400 {object} handlers.ErrorResponse "Invalid input data"
// @Failure     404 {object} handlers.ErrorResponse "Employee not found"
// @Router      /employees/{id} [put]
func (h *Handlers) UpdateEmployee(c *gin.Context) {
	var req validation.EmployeePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, []string{"request body must be valid JSON"})
		return
	}
	if violations := validation.Check(req); len(violations) > 0 {
		failValidation(c, violations)
		return
	}

	updated, err := h.empSvc.Update(c.Request.Context(), c.Param("id"), domain.EmployeePatch{
		Name:       req.Name,
		Position:   req.Position,
		Department: req.Department,
		Email:      req.Email,
		Phone:      req.Phone,
		BranchID:   req.BranchID,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, updated, "Employee updated")
}

// DeleteEmployee godoc
// @ID          deleteEmployee
// @Summary     Delete an employee
// @Tags        Employees
// @Produce     json
// @Param       id path string true "Employee ID"
// @Success     200 {object} handlers.SuccessResponse
// @Failure     404 {object} handlers.ErrorResponse "Employee not found"
// @Router      /employees/{id} [delete]
func (h *Handlers) DeleteEmployee(c *gin.Context) {
	msg, err := h.empSvc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, nil, msg)
}

// GetEmployeesByDepartment godoc
// @ID          getEmployeesByDepartment
// @Summary     Retrieve employees by department
// @Tags        Employees
// @Produce     json
// @Param       department path string true "Department name"
// @Success     200 {object} handlers.SuccessResponse
// @Failure     404 {object} handlers.ErrorResponse "No employees assigned"
// @Router      /employees/department/{department} [get]
func (h *Handlers) GetEmployeesByDepartment(c *gin.Context) {
	employees, err := h.empSvc.ByDepartment(c.Request.Context(), c.Param("department"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(employees) == 0 && h.opts.EmptyListNotFound {
		respondError(c, apperr.NotFound("No employees found for this department."))
		return
	}
	ok(c, http.StatusOK, employees, "Employees retrieved")
}
