// internal/app/features/projects/leave.go
package projects

import (
	"context"
	"errors"
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/membership"
	projectstore "github.com/dalemusser/projecthub/internal/app/store/projects"
	"github.com/dalemusser/projecthub/internal/app/system/gates"
	"github.com/dalemusser/projecthub/internal/app/system/render"
	"github.com/dalemusser/projecthub/internal/app/system/timeouts"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// leaveResponse is always structured, success or failure, so browser
// clients can show the message without interpreting status codes.
type leaveResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// HandleLeave removes the signed-in student from the project roster.
// POST /projects/{id}/leave
func (h *Handler) HandleLeave(w http.ResponseWriter, r *http.Request) {
	actor, ok := gates.Actor(w, r)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		render.JSON(w, http.StatusNotFound, leaveResponse{Success: false, Message: "Project not found."})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	err = h.Membership.SelfLeave(ctx, r, actor, id)
	switch {
	case err == nil:
		render.JSON(w, http.StatusOK, leaveResponse{Success: true, Message: "You have left the project."})
	case errors.Is(err, projectstore.ErrNotFound):
		render.JSON(w, http.StatusNotFound, leaveResponse{Success: false, Message: "Project not found."})
	default:
		var forbidden *membership.ForbiddenError
		if errors.As(err, &forbidden) {
			render.JSON(w, http.StatusForbidden, leaveResponse{Success: false, Message: "You are not a member of this project."})
			return
		}
		render.Problem(w, err, h.Log)
	}
}
