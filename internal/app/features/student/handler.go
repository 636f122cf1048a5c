// internal/app/features/student/handler.go
package student

import (
	projectstore "github.com/dalemusser/projecthub/internal/app/store/projects"
	"go.uber.org/zap"
)

// Handler serves the student area: the dashboard, the project browse
// list, and the student's own memberships.
type Handler struct {
	Projects *projectstore.Store
	Log      *zap.Logger
}

// NewHandler constructs a student Handler.
func NewHandler(projectStore *projectstore.Store, logger *zap.Logger) *Handler {
	return &Handler{
		Projects: projectStore,
		Log:      logger,
	}
}
