// internal/app/features/professor/dashboard.go
package professor

import (
	"context"
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/system/authz"
	"github.com/dalemusser/projecthub/internal/app/system/render"
	"github.com/dalemusser/projecthub/internal/app/system/timeouts"
	"github.com/dalemusser/projecthub/internal/domain/models"
)

type dashboardData struct {
	Name          string           `json:"name"`
	ProjectCount  int              `json:"project_count"`
	ActiveCount   int              `json:"active_count"`
	ArchivedCount int              `json:"archived_count"`
	Projects      []models.Project `json:"projects"`
}

// ServeDashboard summarizes the professor's own projects.
// GET /professor/dashboard
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	_, name, uid, ok := authz.UserCtx(r)
	if !ok {
		render.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	projects, err := h.Projects.ListByProfessor(ctx, uid)
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}

	data := dashboardData{
		Name:         name,
		ProjectCount: len(projects),
		Projects:     projects,
	}
	for _, p := range projects {
		if p.Status == models.ProjectArchived {
			data.ArchivedCount++
		} else {
			data.ActiveCount++
		}
	}

	render.JSON(w, http.StatusOK, data)
}
