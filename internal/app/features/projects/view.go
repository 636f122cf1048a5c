// internal/app/features/projects/view.go
package projects

import (
	"context"
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/policy/projectpolicy"
	"github.com/dalemusser/projecthub/internal/app/system/authz"
	"github.com/dalemusser/projecthub/internal/app/system/render"
	"github.com/dalemusser/projecthub/internal/app/system/timeouts"
	"github.com/dalemusser/projecthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// memberView is the hydrated member entry in a project detail response.
type memberView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department,omitempty"`
	StudentID  string `json:"student_id,omitempty"`
}

type projectDetail struct {
	Project *models.Project `json:"project"`
	Members []memberView    `json:"members"`
}

// ServeProject returns one project with its member roster hydrated.
// Any signed-in role may view any project.
// GET /projects/{id}
func (h *Handler) ServeProject(w http.ResponseWriter, r *http.Request) {
	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		render.NotFound(w, "project")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, decision, err := projectpolicy.Check(ctx, h.Projects, r, id, authz.ActionViewProject)
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}
	if !decision.Allowed {
		render.Forbidden(w, decision.Reason)
		return
	}

	members := make([]memberView, 0, len(p.Students))
	for _, sid := range p.Students {
		u, err := h.Users.GetByID(ctx, sid)
		if err != nil {
			// A deleted student still referenced is skipped rather than
			// failing the whole view.
			continue
		}
		members = append(members, memberView{
			ID:         u.ID.Hex(),
			Name:       u.Name,
			Email:      u.Email,
			Department: u.Department,
			StudentID:  u.StudentID,
		})
	}

	render.JSON(w, http.StatusOK, projectDetail{Project: p, Members: members})
}
