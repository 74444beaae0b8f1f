// Branch HTTP handlers.
//
// This file exposes the REST endpoints for branch resources:
//   - POST   /branches                     (create)
//   - GET    /branches                     (list)
//   - GET    /branches/{id}                (fetch)
//   - PUT    /branches/{id}                (merge-patch update)
//   - DELETE /branches/{id}                (delete)
//   - GET    /branches/{branchId}/employees (relation query)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kdallas/go-branch-directory/internal/apperr"
	"github.com/kdallas/go-branch-directory/internal/domain"
	"github.com/kdallas/go-branch-directory/internal/validation"
)

// CreateBranch godoc
// @ID          createBranch
// @Summary     Create a new branch
// @Description Adds a new branch to the system.
// @Tags        Branches
// @Accept      json
// @Produce     json
// @Param       body body validation.BranchPayload true "Branch payload"
// @Success     201 {object} handlers.SuccessResponse
// @Failure     400 {object} handlers.ErrorResponse "Invalid input data"
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /branches [post]
func (h *Handlers) CreateBranch(c *gin.Context) {
	var req validation.BranchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, []string{"request body must be valid JSON"})
		return
	}
	if violations := validation.Check(req); len(violations) > 0 {
		failValidation(c, violations)
		return
	}

	created, err := h.branchSvc.Create(c.Request.Context(), domain.Branch{
		Name:    deref(req.Name),
		Address: deref(req.Address),
		Phone:   deref(req.Phone),
	})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusCreated, created, "Branch created")
}

// ListBranches godoc
// @ID          listBranches
// @Summary     Retrieve all branches
// @Tags        Branches
// @Produce     json
// @Success     200 {object} handlers.SuccessResponse
// @Failure     500 {object} handlers.ErrorResponse
// @Router      /branches [get]
func (h *Handlers) ListBranches(c *gin.Context) {
	branches, err := h.branchSvc.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, branches, "Branches retrieved")
}

// GetBranch godoc
// @ID          getBranch
// @Summary     Retrieve a specific branch
// @Tags        Branches
// @Produce     json
// @Param       id path string true "Branch ID"
// @Success     200 {object} handlers.SuccessResponse
// @Failure     404 {object} handlers.ErrorResponse "Branch not found"
// @Router      /branches/{id} [get]
func (h *Handlers) GetBranch(c *gin.Context) {
	branch, err := h.branchSvc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, branch, "Branch retrieved")
}

// UpdateBranch godoc
// @ID          updateBranch
// @Summary     Update a branch
// @Description Merge-patches an existing branch: provided fields overwrite, absent fields are retained.
// @Tags        Branches
// @Accept      json
// @Produce     json
// @Param       id   path string                      true "Branch ID"
// @Param       body body validation.BranchPayload true "Branch payload"
// @Success     200 {object} handlers.SuccessResponse
// @Failure     400 {object} handlers.ErrorResponse "Invalid input data"
// @Failure     404 {object} handlers.ErrorResponse "Branch not found"
// @Router      /branches/{id} [put]
func (h *Handlers) UpdateBranch(c *gin.Context) {
	var req validation.BranchPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		failValidation(c, []string{"request body must be valid JSON"})
		return
	}
	if violations := validation.Check(req); len(violations) > 0 {
		failValidation(c, violations)
		return
	}

	updated, err := h.branchSvc.Update(c.Request.Context(), c.Param("id"), domain.BranchPatch{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, updated, "Branch updated")
}

// DeleteBranch godoc
// @ID          deleteBranch
// @Summary     Delete a branch
// @Tags        Branches
// @Produce     json
// @Param       id path string true "Branch ID"
// @Success     200 {object} handlers.SuccessResponse
// @Failure     404 {object} handlers.ErrorResponse "Branch not found"
// @Router      /branches/{id} [delete]
func (h *Handlers) DeleteBranch(c *gin.Context) {
	msg, err := h.branchSvc.Delete(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	ok(c, http.StatusOK, nil, msg)
}

// GetEmployeesByBranch godoc
// @ID          getEmployeesByBranch
// @Summary     Retrieve employees by branch
// @Tags        Branches
// @Produce     json
// @Param       branchId path string true "Branch ID"
// @Success     200 {object} handlers.SuccessResponse
// @Failure     404 {object} handlers.ErrorResponse "No employees assigned"
// @Router      /branches/{branchId}/employees [get]
func (h *Handlers) GetEmployeesByBranch(c *gin.Context) {
	employees, err := h.branchSvc.EmployeesByBranch(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	if len(employees) == 0 && h.opts.EmptyListNotFound {
		respondError(c, apperr.NotFound("No employees found for this branch."))
		return
	}
	ok(c, http.StatusOK, employees, "Employees retrieved")
}
