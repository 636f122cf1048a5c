// internal/app/features/admin/export.go
package admin

import (
	"context"
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/system/csvutil"
	"github.com/dalemusser/projecthub/internal/app/system/render"
	"github.com/dalemusser/projecthub/internal/app/system/timeouts"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ServeProjectsExport streams every project as CSV.
// GET /admin/projects/export.csv
func (h *Handler) ServeProjectsExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	projects, err := h.Projects.ListAll(ctx)
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}

	names := map[primitive.ObjectID]string{}
	rows := make([]csvutil.ProjectRow, 0, len(projects))
	for _, p := range projects {
		name, seen := names[p.ProfessorID]
		if !seen {
			if owner, err := h.Users.GetByID(ctx, p.ProfessorID); err == nil {
				name = owner.Name
			}
			names[p.ProfessorID] = name
		}
		rows = append(rows, csvutil.ProjectRow{Project: p, ProfessorName: name})
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="projects.csv"`)
	if err := csvutil.WriteProjects(w, rows); err != nil {
		h.Log.Error("project CSV export failed", zap.Error(err))
	}
}

// ServeUsersExport streams every non-admin account as CSV.
// GET /admin/users/export.csv
func (h *Handler) ServeUsersExport(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Long())
	defer cancel()

	list, err := h.Users.ListNonAdmin(ctx)
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="users.csv"`)
	if err := csvutil.WriteUsers(w, list); err != nil {
		h.Log.Error("user CSV export failed", zap.Error(err))
	}
}
