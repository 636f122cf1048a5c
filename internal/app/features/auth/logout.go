// internal/app/features/auth/logout.go
package auth

import (
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/system/auth"
	"github.com/dalemusser/projecthub/internal/app/system/authz"
	"github.com/dalemusser/projecthub/internal/app/system/render"
	"go.uber.org/zap"
)

// HandleLogout clears the session.
// POST /auth/logout
func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if actor, ok := authz.ActorCtx(r); ok {
		h.AuditLog.Logout(r.Context(), r, actor.ID)
	}

	if err := auth.SignOut(w, r); err != nil {
		h.Log.Warn("sign-out failed", zap.Error(err))
	}

	if wantsHTML(r) {
		http.Redirect(w, r, "/auth/login", http.StatusSeeOther)
		return
	}
	render.JSON(w, http.StatusOK, map[string]any{"success": true})
}
