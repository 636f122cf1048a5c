// internal/app/features/professor/students.go
package professor

import (
	"context"
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/system/gates"
	"github.com/dalemusser/projecthub/internal/app/system/render"
	"github.com/dalemusser/projecthub/internal/app/system/timeouts"
	"github.com/dalemusser/projecthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type addStudentRequest struct {
	StudentID string `json:"student_id"`
}

// ServeStudents lists students, optionally excluding the members of a
// project named by ?exclude_project= (for add-student pickers).
// GET /professor/students
func (h *Handler) ServeStudents(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if excl := r.URL.Query().Get("exclude_project"); excl != "" {
		pid, err := primitive.ObjectIDFromHex(excl)
		if err != nil {
			render.NotFound(w, "project")
			return
		}
		p, err := h.Projects.GetByID(ctx, pid)
		if err != nil {
			render.Problem(w, err, h.Log)
			return
		}
		students, err := h.Users.ListStudentsNotIn(ctx, p.Students)
		if err != nil {
			render.Problem(w, err, h.Log)
			return
		}
		render.JSON(w, http.StatusOK, map[string]any{"students": students})
		return
	}

	students, err := h.Users.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}
	render.JSON(w, http.StatusOK, map[string]any{"students": students})
}

// HandleAddStudent adds a student to an owned project's roster.
// POST /professor/projects/{id}/students
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

// HandleRemoveStudent removes a student from an owned project's roster.
// DELETE /professor/projects/{id}/students/{studentID}
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
