// internal/app/features/projects/handler.go
package projects

import (
	"github.com/dalemusser/projecthub/internal/app/membership"
	projectstore "github.com/dalemusser/projecthub/internal/app/store/projects"
	"github.com/dalemusser/projecthub/internal/app/store/users"
	"go.uber.org/zap"
)

// Handler serves the shared project endpoints available to every signed-in
// role: viewing a project and student self-leave.
type Handler struct {
	Projects   *projectstore.Store
	Users      *users.Store
	Membership *membership.Manager
	Log        *zap.Logger
}

// NewHandler constructs a projects Handler.
func NewHandler(projectStore *projectstore.Store, userStore *users.Store, mgr *membership.Manager, logger *zap.Logger) *Handler {
	return &Handler{
		Projects:   projectStore,
		Users:      userStore,
		Membership: mgr,
		Log:        logger,
	}
}
