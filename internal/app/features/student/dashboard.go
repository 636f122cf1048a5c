// internal/app/features/student/dashboard.go
package student

import (
	"context"
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/system/authz"
	"github.com/dalemusser/projecthub/internal/app/system/paging"
	"github.com/dalemusser/projecthub/internal/app/system/render"
	"github.com/dalemusser/projecthub/internal/app/system/timeouts"
	"github.com/dalemusser/projecthub/internal/domain/models"
)

type dashboardData struct {
	Name            string           `json:"name"`
	MembershipCount int              `json:"membership_count"`
	MyProjects      []models.Project `json:"my_projects"`
	RecentProjects  []models.Project `json:"recent_projects"`
}

// ServeDashboard shows the student's memberships plus recently added
// projects to browse.
// GET /student/dashboard
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	_, name, uid, ok := authz.UserCtx(r)
	if !ok {
		render.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	mine, err := h.Projects.ListByStudent(ctx, uid)
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}
	recent, err := h.Projects.ListRecent(ctx, 10)
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}

	render.JSON(w, http.StatusOK, dashboardData{
		Name:            name,
		MembershipCount: len(mine),
		MyProjects:      mine,
		RecentProjects:  recent,
	})
}

// ServeProjects lists every project for browsing.
// GET /student/projects
func (h *Handler) ServeProjects(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	pg := paging.Parse(r)
	projects, err := h.Projects.ListPage(ctx, pg.Skip(), pg.Limit())
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}
	total, err := h.Projects.CountAll(ctx)
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}
	render.JSON(w, http.StatusOK, map[string]any{"projects": projects, "paging": pg.Meta(total)})
}

// ServeMyProjects lists the projects the student belongs to.
// GET /student/my-projects
func (h *Handler) ServeMyProjects(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
	if !ok {
		render.Unauthorized(w)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	projects, err := h.Projects.ListByStudent(ctx, uid)
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}
	render.JSON(w, http.StatusOK, map[string]any{"projects": projects})
}
