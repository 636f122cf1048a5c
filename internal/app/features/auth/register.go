// internal/app/features/auth/register.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/store/users"
	"github.com/dalemusser/projecthub/internal/app/system/auth"
	"github.com/dalemusser/projecthub/internal/app/system/render"
	"github.com/dalemusser/projecthub/internal/app/system/timeouts"
	"github.com/dalemusser/projecthub/internal/domain/models"
	"go.uber.org/zap"
)

// registerRequest is the self-registration payload. Admin accounts cannot
// be self-registered; the role is limited to student and professor.
type registerRequest struct {
	Name       string `json:"name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	Role       string `json:"role" validate:"required,oneof=student professor"`
	Department string `json:"department" validate:"required"`
	StudentID  string `json:"student_id" validate:"required_if=Role student"`
	EmployeeID string `json:"employee_id" validate:"required_if=Role professor"`
}

// HandleRegister creates an account and signs the new user in.
// POST /auth/register
func (h *Handler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodePayload(r, &req); err != nil {
		if wantsHTML(r) {
			auth.FlashError(w, r, "Invalid registration data.")
			http.Redirect(w, r, "/auth/register", http.StatusSeeOther)
			return
		}
		render.Err(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if err := h.validate.Struct(req); err != nil {
		if fields := validationFields(err); fields != nil {
			if wantsHTML(r) {
				auth.FlashError(w, r, "Please fill in all required fields.")
				http.Redirect(w, r, "/auth/register", http.StatusSeeOther)
				return
			}
			render.JSON(w, http.StatusUnprocessableEntity, render.ErrorBody{
				Error:  "validation failed",
				Fields: fields,
			})
			return
		}
		render.Err(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
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
		if wantsHTML(r) && errors.Is(err, users.ErrDuplicateEmail) {
			auth.FlashError(w, r, "An account with that email already exists.")
			http.Redirect(w, r, "/auth/register", http.StatusSeeOther)
			return
		}
		render.Problem(w, err, h.Log)
		return
	}

	if err := auth.SignIn(w, r, &auth.SessionUser{
		ID:    u.ID.Hex(),
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}); err != nil {
		h.Log.Error("sign-in after registration failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		render.Err(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.AuditLog.Registered(ctx, r, u.ID, u.Role)

	if wantsHTML(r) {
		auth.FlashSuccess(w, r, "Welcome to ProjectHub!")
		http.Redirect(w, r, dashboardPath(u.Role), http.StatusSeeOther)
		return
	}
	render.JSON(w, http.StatusCreated, map[string]any{
		"success":  true,
		"user":     viewOf(&u),
		"redirect": dashboardPath(u.Role),
	})
}
