package authz_test

import (
	"testing"

	"github.com/dalemusser/projecthub/internal/app/system/authz"
	"github.com/dalemusser/projecthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func sampleProject(owner primitive.ObjectID, students ...primitive.ObjectID) *models.Project {
	return &models.Project{
		ID:          primitive.NewObjectID(),
		Title:       "Distributed Systems Lab",
		ProfessorID: owner,
		Students:    students,
	}
}

func TestDecide_AdminShortCircuit(t *testing.T) {
	admin := authz.Actor{ID: primitive.NewObjectID(), Role: models.RoleAdmin}
	owner := primitive.NewObjectID()
	project := sampleProject(owner)

	for _, action := range []authz.Action{
		authz.ActionViewProject,
		authz.ActionCreateProject,
		authz.ActionEditProject,
		authz.ActionDeleteProject,
		authz.ActionManageMembers,
		authz.ActionManageUsers,
		authz.ActionViewAdminDashboard,
	} {
		d := authz.Decide(admin, action, project)
		if !d.Allowed {
			t.Errorf("admin denied %q: %q", action, d.Reason)
		}
	}

	// self_leave is the one action admins do not get.
	d := authz.Decide(admin, authz.ActionSelfLeave, project)
	if d.Allowed {
		t.Error("admin allowed self_leave")
	}
}

func TestDecide_ViewProjectAnyRole(t *testing.T) {
	project := sampleProject(primitive.NewObjectID())

	for _, role := range []string{models.RoleStudent, models.RoleProfessor, models.RoleAdmin} {
		actor := authz.Actor{ID: primitive.NewObjectID(), Role: role}
		if d := authz.Decide(actor, authz.ActionViewProject, project); !d.Allowed {
			t.Errorf("role %q denied view_project: %q", role, d.Reason)
		}
	}
}

func TestDecide_CreateProject(t *testing.T) {
	prof := authz.Actor{ID: primitive.NewObjectID(), Role: models.RoleProfessor}
	if d := authz.Decide(prof, authz.ActionCreateProject, nil); !d.Allowed {
		t.Errorf("professor denied create_project: %q", d.Reason)
	}

	student := authz.Actor{ID: primitive.NewObjectID(), Role: models.RoleStudent}
	if d := authz.Decide(student, authz.ActionCreateProject, nil); d.Allowed {
		t.Error("student allowed create_project")
	}
}

func TestDecide_OwnershipActions(t *testing.T) {
	ownerID := primitive.NewObjectID()
	owner := authz.Actor{ID: ownerID, Role: models.RoleProfessor}
	otherProf := authz.Actor{ID: primitive.NewObjectID(), Role: models.RoleProfessor}
	project := sampleProject(ownerID)

	for _, action := range []authz.Action{
		authz.ActionEditProject,
		authz.ActionDeleteProject,
		authz.ActionManageMembers,
	} {
		if d := authz.Decide(owner, action, project); !d.Allowed {
			t.Errorf("owner denied %q: %q", action, d.Reason)
		}
		d := authz.Decide(otherProf, action, project)
		if d.Allowed {
			t.Errorf("non-owning professor allowed %q", action)
		}
		if d.Reason != authz.ReasonNotOwner {
			t.Errorf("reason for %q: got %q, want %q", action, d.Reason, authz.ReasonNotOwner)
		}
	}
}

func TestDecide_SelfLeave(t *testing.T) {
	studentID := primitive.NewObjectID()
	member := authz.Actor{ID: studentID, Role: models.RoleStudent}
	project := sampleProject(primitive.NewObjectID(), studentID)

	if d := authz.Decide(member, authz.ActionSelfLeave, project); !d.Allowed {
		t.Errorf("member student denied self_leave: %q", d.Reason)
	}

	// Not a member: denied with "not a member", not a silent no-op.
	outsider := authz.Actor{ID: primitive.NewObjectID(), Role: models.RoleStudent}
	d := authz.Decide(outsider, authz.ActionSelfLeave, project)
	if d.Allowed {
		t.Error("non-member student allowed self_leave")
	}
	if d.Reason != authz.ReasonNotMember {
		t.Errorf("reason: got %q, want %q", d.Reason, authz.ReasonNotMember)
	}

	// A student cannot use manage_membership to remove someone else.
	d = authz.Decide(member, authz.ActionManageMembers, project)
	if d.Allowed {
		t.Error("student allowed manage_membership")
	}
}

func TestDecide_AdminOnlyGates(t *testing.T) {
	for _, role := range []string{models.RoleStudent, models.RoleProfessor} {
		actor := authz.Actor{ID: primitive.NewObjectID(), Role: role}
		for _, action := range []authz.Action{authz.ActionManageUsers, authz.ActionViewAdminDashboard} {
			d := authz.Decide(actor, action, nil)
			if d.Allowed {
				t.Errorf("role %q allowed %q", role, action)
			}
			if d.Reason != authz.ReasonInsufficient {
				t.Errorf("reason for %q/%q: got %q", role, action, d.Reason)
			}
		}
	}
}

func TestDecide_UnknownActionDenied(t *testing.T) {
	actor := authz.Actor{ID: primitive.NewObjectID(), Role: models.RoleProfessor}
	d := authz.Decide(actor, authz.Action("reboot_server"), nil)
	if d.Allowed {
		t.Error("unknown action allowed")
	}
}

// Decide is a pure function: identical inputs always yield identical output.
func TestDecide_Deterministic(t *testing.T) {
	ownerID := primitive.NewObjectID()
	studentID := primitive.NewObjectID()
	project := sampleProject(ownerID, studentID)

	actors := []authz.Actor{
		{ID: ownerID, Role: models.RoleProfessor},
		{ID: studentID, Role: models.RoleStudent},
		{ID: primitive.NewObjectID(), Role: models.RoleAdmin},
	}
	actions := []authz.Action{
		authz.ActionViewProject,
		authz.ActionEditProject,
		authz.ActionManageMembers,
		authz.ActionSelfLeave,
	}

	for _, a := range actors {
		for _, act := range actions {
			first := authz.Decide(a, act, project)
			second := authz.Decide(a, act, project)
			if first != second {
				t.Errorf("Decide(%v, %q) not deterministic: %+v vs %+v", a, act, first, second)
			}
		}
	}
}
