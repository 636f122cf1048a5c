// internal/app/features/student/routes.go
package student

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/projecthub/internal/app/system/auth"
	"github.com/dalemusser/projecthub/internal/domain/models"
)

// Routes mounts the student area under /student.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireRole(models.RoleStudent))

	r.Get("/dashboard", h.ServeDashboard)
	r.Get("/projects", h.ServeProjects)
	r.Get("/my-projects", h.ServeMyProjects)
	return r
}
