// Package projectpolicy evaluates project-level authorization for requests.
//
// Authorization rules:
//   - Admins can view, edit, delete, and manage membership for all projects
//   - Professors can edit, delete, and manage membership only for projects they own
//   - Students can view projects and leave projects they belong to
//   - Any signed-in user can view any project
package projectpolicy

import (
	"context"
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/store/projects"
	"github.com/dalemusser/projecthub/internal/app/system/authz"
	"github.com/dalemusser/projecthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Check fetches the project and evaluates action for the request's user.
//
// Returns:
//   - (project, allow decision, nil) if the user may perform the action
//   - (project, deny decision, nil) if the project exists but the action is denied
//   - (nil, deny, projects.ErrNotFound) if the project does not exist
//   - (nil, deny, err) on database error
func Check(ctx context.Context, store *projects.Store, r *http.Request, projectID primitive.ObjectID, action authz.Action) (*models.Project, authz.Decision, error) {
	actor, ok := authz.ActorCtx(r)
	if !ok {
		return nil, authz.Decision{Allowed: false, Reason: authz.ReasonInsufficient}, nil
	}

	p, err := store.GetByID(ctx, projectID)
	if err != nil {
		return nil, authz.Decision{Allowed: false, Reason: authz.ReasonInsufficient}, err
	}

	return p, authz.Decide(actor, action, p), nil
}

// CanCreate reports whether the request's user may create projects.
func CanCreate(r *http.Request) authz.Decision {
	actor, ok := authz.ActorCtx(r)
	if !ok {
		return authz.Decision{Allowed: false, Reason: authz.ReasonInsufficient}
	}
	return authz.Decide(actor, authz.ActionCreateProject, nil)
}
