// internal/app/features/professor/projects.go
package professor

import (
	"context"
	"net/http"
	"strings"

	projectstore "github.com/dalemusser/projecthub/internal/app/store/projects"
	"github.com/dalemusser/projecthub/internal/app/system/authz"
	"github.com/dalemusser/projecthub/internal/app/system/gates"
	"github.com/dalemusser/projecthub/internal/app/system/htmlsanitize"
	"github.com/dalemusser/projecthub/internal/app/system/normalize"
	"github.com/dalemusser/projecthub/internal/app/system/render"
	"github.com/dalemusser/projecthub/internal/app/system/timeouts"
	"github.com/dalemusser/projecthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// projectPayload is the create/update body. Technologies accepts either a
// JSON array or a comma-separated string from browser forms.
type projectPayload struct {
	Title           string   `json:"title"`
	Description     string   `json:"description"`
	Department      string   `json:"department"`
	Technologies    []string `json:"technologies"`
	TechnologiesCSV string   `json:"technologies_csv"`
	Status          string   `json:"status"`
}

func (p *projectPayload) technologies() []string {
	if p.Technologies != nil {
		cleaned := make([]string, 0, len(p.Technologies))
		for _, t := range p.Technologies {
			if t = strings.TrimSpace(t); t != "" {
				cleaned = append(cleaned, t)
			}
		}
		return cleaned
	}
	return normalize.Technologies(p.TechnologiesCSV)
}

// ServeProjects lists the professor's own projects.
// GET /professor/projects
func (h *Handler) ServeProjects(w http.ResponseWriter, r *http.Request) {
	_, _, uid, ok := authz.UserCtx(r)
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
	render.JSON(w, http.StatusOK, map[string]any{"projects": projects})
}

// HandleCreateProject creates a project owned by the signed-in professor.
// POST /professor/projects
func (h *Handler) HandleCreateProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := gates.Actor(w, r)
	if !ok {
		return
	}
	if d := authz.Decide(actor, authz.ActionCreateProject, nil); !d.Allowed {
		render.Forbidden(w, d.Reason)
		return
	}

	var req projectPayload
	if err := decodePayload(r, &req); err != nil {
		render.Err(w, http.StatusBadRequest, "invalid request body")
		return
	}

	title := htmlsanitize.StripTags(strings.TrimSpace(req.Title))
	if title == "" {
		render.JSON(w, http.StatusUnprocessableEntity, render.ErrorBody{
			Error:  "validation failed",
			Fields: []string{"title"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	p, err := h.Projects.Create(ctx, models.Project{
		Title:        title,
		Description:  htmlsanitize.Description(req.Description),
		Department:   req.Department,
		Technologies: req.technologies(),
		Status:       req.Status,
	}, actor.ID)
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}

	h.AuditLog.ProjectCreated(ctx, r, actor.ID, p.ID)
	render.JSON(w, http.StatusCreated, map[string]any{"project": p})
}

// HandleUpdateProject edits an owned project.
// PUT /professor/projects/{id}
func (h *Handler) HandleUpdateProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := gates.Actor(w, r)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		render.NotFound(w, "project")
		return
	}

	var req projectPayload
	if err := decodePayload(r, &req); err != nil {
		render.Err(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	patch := projectstore.Patch{
		Title:        htmlsanitize.StripTags(req.Title),
		Description:  htmlsanitize.Description(req.Description),
		Department:   req.Department,
		Technologies: req.technologies(),
		Status:       req.Status,
	}
	if err := h.Projects.Update(ctx, id, actor.ID, patch); err != nil {
		render.Problem(w, err, h.Log)
		return
	}

	p, err := h.Projects.GetByID(ctx, id)
	if err != nil {
		render.Problem(w, err, h.Log)
		return
	}

	h.AuditLog.ProjectUpdated(ctx, r, actor.ID, id)
	render.JSON(w, http.StatusOK, map[string]any{"project": p})
}

// HandleDeleteProject deletes an owned project.
// DELETE /professor/projects/{id}
func (h *Handler) HandleDeleteProject(w http.ResponseWriter, r *http.Request) {
	actor, ok := gates.Actor(w, r)
	if !ok {
		return
	}

	id, err := primitive.ObjectIDFromHex(chi.URLParam(r, "id"))
	if err != nil {
		render.NotFound(w, "project")
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), timeouts.Short())
	defer cancel()

	if err := h.Projects.Delete(ctx, id, actor.ID); err != nil {
		render.Problem(w, err, h.Log)
		return
	}

	h.AuditLog.ProjectDeleted(ctx, r, actor.ID, id)
	render.JSON(w, http.StatusOK, map[string]any{"success": true})
}
