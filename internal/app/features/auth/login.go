// internal/app/features/auth/login.go
package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/store/users"
	"github.com/dalemusser/projecthub/internal/app/system/auth"
	"github.com/dalemusser/projecthub/internal/app/system/gates"
	"github.com/dalemusser/projecthub/internal/app/system/render"
	"github.com/dalemusser/projecthub/internal/app/system/timeouts"
	"go.uber.org/zap"
)

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// HandleLogin verifies the credential and establishes a session.
// POST /auth/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodePayload(r, &req); err != nil {
		render.Err(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := h.validate.Struct(req); err != nil {
		if wantsHTML(r) {
			auth.FlashError(w, r, "Please enter your email and password.")
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}
		render.JSON(w, http.StatusUnprocessableEntity, render.ErrorBody{
			Error:  "validation failed",
			Fields: validationFields(err),
		})
		return
	}

	if !h.Limiter.Check(r, req.Email) {
		if wantsHTML(r) {
			auth.FlashError(w, r, "Too many login attempts. Please wait a few minutes and try again.")
			http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
			return
		}
		render.Err(w, http.StatusTooManyRequests, "too many login attempts")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	u, err := h.Users.VerifyCredential(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, users.ErrAuthFailed) {
			h.AuditLog.LoginFailed(ctx, r, req.Email)
			if wantsHTML(r) {
				auth.FlashError(w, r, "Invalid email or password.")
				http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
				return
			}
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
		h.Log.Error("session save failed", zap.Error(err), zap.String("user_id", u.ID.Hex()))
		render.Err(w, http.StatusInternalServerError, "internal error")
		return
	}

	h.Limiter.ResetEmail(u.Email)
	h.AuditLog.LoginSuccess(ctx, r, u.ID, u.Email)

	if wantsHTML(r) {
		http.Redirect(w, r, dashboardPath(u.Role), http.StatusSeeOther)
		return
	}
	render.JSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"user":     viewOf(u),
		"redirect": dashboardPath(u.Role),
	})
}

// ServeLogin exists so unauthenticated redirects have somewhere to land.
// GET /auth/login
func (h *Handler) ServeLogin(w http.ResponseWriter, r *http.Request) {
	if u, ok := auth.CurrentUser(r); ok {
		http.Redirect(w, r, dashboardPath(u.Role), http.StatusSeeOther)
		return
	}
	render.JSON(w, http.StatusOK, map[string]any{
		"login":    "/auth/login",
		"register": "/auth/register",
	})
}

// ServeDashboard redirects a signed-in user to their role's dashboard.
// GET /auth/dashboard
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	res := gates.RequireAuth(w, r)
	if !res.OK {
		return
	}
	http.Redirect(w, r, dashboardPath(res.Role), http.StatusSeeOther)
}
