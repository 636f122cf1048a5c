// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/system/authz"
	"github.com/dalemusser/projecthub/internal/app/system/render"
)

// Handler serves the shared error endpoints that redirect targets land on.
// No DB needed.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Forbidden is the landing page for denied HTML navigations.
// GET /forbidden
func (h *Handler) Forbidden(w http.ResponseWriter, r *http.Request) {
	reason := r.URL.Query().Get("reason")
	if reason == "" {
		reason = authz.ReasonInsufficient
	}
	render.Forbidden(w, reason)
}

// Unauthorized tells the caller a session is required.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	render.Unauthorized(w)
}
