// internal/app/features/admin/routes.go
package admin

import (
	"github.com/go-chi/chi/v5"

	"github.com/dalemusser/projecthub/internal/app/system/auth"
	"github.com/dalemusser/projecthub/internal/domain/models"
)

// Routes mounts the admin area under /admin.
func Routes(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(auth.RequireSignedIn)
	r.Use(auth.RequireRole(models.RoleAdmin))

	r.Get("/dashboard", h.ServeDashboard)

	r.Get("/users", h.ServeUsers)
	r.Get("/users/export.csv", h.ServeUsersExport)
	r.Post("/users", h.HandleCreateUser)
	r.Delete("/users/{id}", h.HandleDeleteUser)

	r.Get("/projects", h.ServeProjects)
	r.Get("/projects/export.csv", h.ServeProjectsExport)
	r.Post("/projects/{id}/students", h.HandleAddStudent)
	r.Delete("/projects/{id}/students/{studentID}", h.HandleRemoveStudent)

	return r
}
