// Package authz holds the authorization decision core.
//
// Decide is a pure function over (actor, action, project): it reads nothing
// but its arguments and mutates nothing, so handlers, the policy layer, and
// tests all evaluate the exact same rules deterministically.
package authz

import (
	"github.com/dalemusser/projecthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Action enumerates everything an actor can attempt against the system.
type Action string

const (
	ActionViewProject        Action = "view_project"
	ActionCreateProject      Action = "create_project"
	ActionEditProject        Action = "edit_project"
	ActionDeleteProject      Action = "delete_project"
	ActionManageMembers      Action = "manage_membership"
	ActionSelfLeave          Action = "self_leave"
	ActionManageUsers        Action = "manage_users"
	ActionViewAdminDashboard Action = "view_admin_dashboard"
)

// Actor is the authenticated identity a decision is made for.
type Actor struct {
	ID   primitive.ObjectID
	Role string
}

// Decision is the result of evaluating an action for an actor.
// Reason is set only on denial.
type Decision struct {
	Allowed bool
	Reason  string
}

// Deny reasons, stable strings surfaced to callers.
const (
	ReasonNotOwner     = "not owner"
	ReasonNotMember    = "not a member"
	ReasonInsufficient = "insufficient privilege"
)

func allow() Decision             { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Allowed: false, Reason: reason} }

// Decide evaluates whether actor may perform action on project.
//
// project may be nil for actions that have no target resource
// (create_project, manage_users, view_admin_dashboard). Rules are evaluated
// in precedence order; the first matching rule wins:
//
//  1. Admins may do everything except self_leave (leaving a project is not
//     applicable to admins).
//  2. Any authenticated actor may view a project.
//  3. Only professors may create projects.
//  4. Edit, delete, and membership management require the owning professor.
//  5. self_leave requires a student who is currently a member.
//  6. User management and the admin dashboard are admin-only.
//  7. Everything else is denied.
func Decide(actor Actor, action Action, project *models.Project) Decision {
	// Rule 1: admin short-circuit.
	if actor.Role == models.RoleAdmin {
		if action == ActionSelfLeave {
			return deny(ReasonNotMember)
		}
		return allow()
	}

	switch action {
	case ActionViewProject:
		// Rule 2: any authenticated role.
		return allow()

	case ActionCreateProject:
		// Rule 3.
		if actor.Role == models.RoleProfessor {
			return allow()
		}
		return deny(ReasonInsufficient)

	case ActionEditProject, ActionDeleteProject, ActionManageMembers:
		// Rule 4: owning professor only.
		if actor.Role == models.RoleProfessor && project != nil && actor.ID == project.ProfessorID {
			return allow()
		}
		return deny(ReasonNotOwner)

	case ActionSelfLeave:
		// Rule 5: student who is currently a member. Deliberately not an
		// idempotent no-op: a student who already left is denied here even
		// though the underlying $pull removal would be a harmless no-op.
		if actor.Role == models.RoleStudent && project != nil && project.HasStudent(actor.ID) {
			return allow()
		}
		return deny(ReasonNotMember)

	case ActionManageUsers, ActionViewAdminDashboard:
		// Rule 6: admin-only, already handled by rule 1 for admins.
		return deny(ReasonInsufficient)
	}

	// Rule 7: default deny.
	return deny(ReasonInsufficient)
}
