// internal/app/features/admin/dashboard.go
package admin

import (
	"context"
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/store/audit"
	"github.com/dalemusser/projecthub/internal/app/system/render"
	"github.com/dalemusser/projecthub/internal/app/system/timeouts"
	"github.com/dalemusser/projecthub/internal/domain/models"
)

type siteStats struct {
	Students         int64 `json:"students"`
	Professors       int64 `json:"professors"`
	Admins           int64 `json:"admins"`
	Projects         int64 `json:"projects"`
	ActiveProjects   int64 `json:"active_projects"`
	ArchivedProjects int64 `json:"archived_projects"`
}

type dashboardData struct {
	Stats       siteStats     `json:"stats"`
	RecentAudit []audit.Event `json:"recent_audit"`
}

// ServeDashboard returns site-wide counts plus the most recent audit
// events.
// GET /admin/dashboard
func (h *Handler) ServeDashboard(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
	defer cancel()

	var (
		stats siteStats
		err   error
	)
	if stats.Students, err = h.Users.CountByRole(ctx, models.RoleStudent); err != nil {
		render.Problem(w, err, h.Log)
		return
	}
	if stats.Professors, err = h.Users.CountByRole(ctx, models.RoleProfessor); err != nil {
		render.Problem(w, err, h.Log)
		return
	}
	if stats.Admins, err = h.Users.CountByRole(ctx, models.RoleAdmin); err != nil {
		render.Problem(w, err, h.Log)
		return
	}
	if stats.Projects, err = h.Projects.CountAll(ctx); err != nil {
		render.Problem(w, err, h.Log)
		return
	}
	if stats.ActiveProjects, err = h.Projects.CountByStatus(ctx, models.ProjectActive); err != nil {
		render.Problem(w, err, h.Log)
		return
	}
	if stats.ArchivedProjects, err = h.Projects.CountByStatus(ctx, models.ProjectArchived); err != nil {
		render.Problem(w, err, h.Log)
		return
	}

	events, err := h.Audit.ListRecent(ctx, 20)
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}

	render.JSON(w, http.StatusOK, dashboardData{Stats: stats, RecentAudit: events})
}
