// internal/app/features/admin/projects.go
package admin

import (
	"context"
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/system/gates"
	"github.com/dalemusser/projecthub/internal/app/system/paging"
	"github.com/dalemusser/projecthub/internal/app/system/render"
	"github.com/dalemusser/projecthub/internal/app/system/timeouts"
	"github.com/dalemusser/projecthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type addStudentRequest struct {
	StudentID string `json:"student_id" validate:"required"`
}

type projectRow struct {
	models.Project
	ProfessorName string `json:"professor_name,omitempty"`
}

// ServeProjects lists every project with the owner's name attached.
// GET /admin/projects
func (h *Handler) ServeProjects(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Medium())
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

	names := map[primitive.ObjectID]string{}
	rows := make([]projectRow, 0, len(projects))
	for _, p := range projects {
		name, seen := names[p.ProfessorID]
		if !seen {
			if owner, err := h.Users.GetByID(ctx, p.ProfessorID); err == nil {
				name = owner.Name
			}
			names[p.ProfessorID] = name
		}
		rows = append(rows, projectRow{Project: p, ProfessorName: name})
	}
	render.JSON(w, http.StatusOK, map[string]any{"projects": rows, "paging": pg.Meta(total)})
}

// HandleAddStudent adds a student to any project's roster. Admins are not
// subject to ownership checks.
// POST /admin/projects/{id}/students
func (h *Handler) HandleAddStudent(w http.ResponseWriter, r *http.Request) {
	actor, ok := gates.Actor(w, r)
	if !ok {
		return
	}

	pid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		render.NotFound(w, "project")
		return
	}

	var req addStudentRequest
	if err := decodePayload(r, &req); err != nil {
		render.Err(w, http.StatusBadRequest, "invalid request body")
		return
	}
	sid, err := primitive.ObjectIDFromHex(req.StudentID)
	if err != nil {
		render.JSON(w, http.StatusUnprocessableEntity, render.ErrorBody{
			Error:  "validation failed",
			Fields: []string{"student_id"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	members, err := h.Membership.AddMember(ctx, r, actor, pid, sid)
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}
	render.JSON(w, http.StatusOK, map[string]any{"success": true, "students": hexIDs(members)})
}

// HandleRemoveStudent removes a student from any project's roster.
// DELETE /admin/projects/{id}/students/{studentID}
func (h *Handler) HandleRemoveStudent(w http.ResponseWriter, r *http.Request) {
	actor, ok := gates.Actor(w, r)
	if !ok {
		return
	}

	pid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		render.NotFound(w, "project")
		return
	}
	sid, err := primitive.ObjectIDFromHex(chi.URLParam(r, "studentID"))
	if err != nil {
		render.NotFound(w, "user")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	members, err := h.Membership.RemoveMember(ctx, r, actor, pid, sid)
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}
	render.JSON(w, http.StatusOK, map[string]any{"success": true, "students": hexIDs(members)})
}

func hexIDs(ids []primitive.ObjectID) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.Hex())
	}
	return out
}
