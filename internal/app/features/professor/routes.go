// internal/app/features/professor/routes.go
package professor

import (
	"github.com/dalemusser/projecthub/internal/app/system/auth"
	"github.com/dalemusser/projecthub/internal/domain/models"
	"github.com/go-chi/chi/v5"
)

// Routes returns a subrouter for the professor area (mounted under
// /professor). Ownership checks on individual projects happen in the
// store filters and the decision core; admins use the /admin area.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Group(func(pr chi.Router) {
		pr.Use(auth.RequireSignedIn)
		pr.Use(auth.RequireRole(models.RoleProfessor))

		pr.Get("/dashboard", h.ServeDashboard)

		pr.Get("/projects", h.ServeProjects)
		pr.Post("/projects", h.HandleCreateProject)
		pr.Put("/projects/{id}", h.HandleUpdateProject)
		pr.Delete("/projects/{id}", h.HandleDeleteProject)

		pr.Get("/students", h.ServeStudents)
		pr.Post("/projects/{id}/students", h.HandleAddStudent)
		pr.Delete("/projects/{id}/students/{studentID}", h.HandleRemoveStudent)
	})

	return r
}
