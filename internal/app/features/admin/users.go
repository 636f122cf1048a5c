// internal/app/features/admin/users.go
package admin

import (
	"context"
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/system/gates"
	"github.com/dalemusser/projecthub/internal/app/system/paging"
	"github.com/dalemusser/projecthub/internal/app/system/render"
	"github.com/dalemusser/projecthub/internal/app/system/timeouts"
	"github.com/dalemusser/projecthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type createUserRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Role       string `json:"role" validate:"required,oneof=student professor admin"`
	Department string `json:"department"`
	StudentID  string `json:"student_id" validate:"required_if=Role student"`
	EmployeeID string `json:"employee_id" validate:"required_if=Role professor"`
}

// ServeUsers lists accounts. The list excludes admin accounts unless
// ?role=admin asks for them explicitly.
// GET /admin/users
func (h *Handler) ServeUsers(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if role := r.URL.Query().Get("role"); role != "" {
		list, err := h.Users.ListByRole(ctx, role)
		if err != nil {
			render.Problem(w, err, h.Log)
			return
		}
		render.JSON(w, http.StatusOK, map[string]any{"users": list})
		return
	}

	pg := paging.Parse(r)
	list, err := h.Users.ListNonAdminPage(ctx, pg.Skip(), pg.Limit())
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}
	total, err := h.Users.CountNonAdmin(ctx)
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}
	render.JSON(w, http.StatusOK, map[string]any{"users": list, "paging": pg.Meta(total)})
}

// HandleCreateUser creates an account with any role, including admin.
// POST /admin/users
func (h *Handler) HandleCreateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := gates.Actor(w, r)
	if !ok {
		return
	}

	var req createUserRequest
	if err := decodePayload(r, &req); err != nil {
		render.Err(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		render.JSON(w, http.StatusUnprocessableEntity, render.ErrorBody{
			Error:  "validation failed",
			Fields: validationFields(err),
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	u, err := h.Users.Create(ctx, models.User{
		Name:       req.Name,
		Email:      req.Email,
		Role:       req.Role,
		Department: req.Department,
		StudentID:  req.StudentID,
		EmployeeID: req.EmployeeID,
	}, req.Password)
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}

	h.AuditLog.UserCreated(r.Context(), r, actor.ID, u.ID, u.Role)
	render.JSON(w, http.StatusCreated, map[string]any{"success": true, "user": u})
}

// HandleDeleteUser hard-deletes an account.
//
// Deleting a student also removes them from every project roster.
// Deleting a professor who still owns projects is rejected with 409.
// DELETE /admin/users/{id}
func (h *Handler) HandleDeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := gates.Actor(w, r)
	if !ok {
		return
	}

	uid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		render.NotFound(w, "user")
		return
	}
	if uid == actor.ID {
		render.Err(w, http.StatusConflict, "cannot delete your own account")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	if err := h.Users.Delete(ctx, uid); err != nil {
		render.Problem(w, err, h.Log)
		return
	}

	h.AuditLog.UserDeleted(r.Context(), r, actor.ID, uid)
	render.JSON(w, http.StatusOK, map[string]any{"success": true})
}
