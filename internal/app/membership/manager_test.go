package membership_test

import (
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/dalemusser/projecthub/internal/app/membership"
	projectstore "github.com/dalemusser/projecthub/internal/app/store/projects"
	userstore "github.com/dalemusser/projecthub/internal/app/store/users"
	"github.com/dalemusser/projecthub/internal/app/system/authz"
	"github.com/dalemusser/projecthub/internal/domain/models"
	"github.com/dalemusser/projecthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newManager(t *testing.T) (*membership.Manager, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	mgr := membership.New(projectstore.New(db), userstore.New(db), nil, zap.NewNop())
	return mgr, testutil.NewFixtures(t, db)
}

func actorFor(u models.User) authz.Actor {
	return authz.Actor{ID: u.ID, Role: u.Role}
}

func TestAddMember_OwnerAndAdminAllowed(t *testing.T) {
	mgr, fixtures := newManager(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("POST", "/", nil)

	owner := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")
	admin := fixtures.CreateAdmin(ctx, "Root", "root@test.edu")
	s1 := fixtures.CreateStudent(ctx, "Ana Lopez", "ana@test.edu")
	s2 := fixtures.CreateStudent(ctx, "Ben Ortiz", "ben@test.edu")
	p := fixtures.CreateProject(ctx, "Compilers", owner.ID)

	members, err := mgr.AddMember(ctx, req, actorFor(owner), p.ID, s1.ID)
	if err != nil {
		t.Fatalf("owner AddMember: %v", err)
	}
	if len(members) != 1 {
		t.Errorf("roster after owner add: %v", members)
	}

	members, err = mgr.AddMember(ctx, req, actorFor(admin), p.ID, s2.ID)
	if err != nil {
		t.Fatalf("admin AddMember: %v", err)
	}
	if len(members) != 2 {
		t.Errorf("roster after admin add: %v", members)
	}
}

func TestAddMember_NonOwnerForbidden(t *testing.T) {
	mgr, fixtures := newManager(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("POST", "/", nil)

	owner := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")
	rival := fixtures.CreateProfessor(ctx, "Prof Diaz", "diaz@test.edu")
	student := fixtures.CreateStudent(ctx, "Ana Lopez", "ana@test.edu")
	p := fixtures.CreateProject(ctx, "Compilers", owner.ID)

	_, err := mgr.AddMember(ctx, req, actorFor(rival), p.ID, student.ID)
	var ferr *membership.ForbiddenError
	if !errors.As(err, &ferr) {
		t.Fatalf("expected ForbiddenError, got %v", err)
	}
	if ferr.Reason != authz.ReasonNotOwner {
		t.Errorf("reason: got %q, want %q", ferr.Reason, authz.ReasonNotOwner)
	}

	// Students cannot manage membership either.
	if _, err := mgr.AddMember(ctx, req, actorFor(student), p.ID, student.ID); !errors.As(err, &ferr) {
		t.Fatalf("student actor: expected ForbiddenError, got %v", err)
	}
}

func TestAddMember_TargetMustBeStudent(t *testing.T) {
	mgr, fixtures := newManager(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("POST", "/", nil)

	owner := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")
	other := fixtures.CreateProfessor(ctx, "Prof Diaz", "diaz@test.edu")
	p := fixtures.CreateProject(ctx, "Compilers", owner.ID)

	if _, err := mgr.AddMember(ctx, req, actorFor(owner), p.ID, other.ID); !errors.Is(err, membership.ErrNotStudent) {
		t.Fatalf("professor target: expected ErrNotStudent, got %v", err)
	}
	if _, err := mgr.AddMember(ctx, req, actorFor(owner), p.ID, primitive.NewObjectID()); !errors.Is(err, membership.ErrNotStudent) {
		t.Fatalf("missing target: expected ErrNotStudent, got %v", err)
	}
}

func TestAddMember_DuplicateConflicts(t *testing.T) {
	mgr, fixtures := newManager(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("POST", "/", nil)

	owner := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")
	student := fixtures.CreateStudent(ctx, "Ana Lopez", "ana@test.edu")
	p := fixtures.CreateProject(ctx, "Compilers", owner.ID, student.ID)

	if _, err := mgr.AddMember(ctx, req, actorFor(owner), p.ID, student.ID); !errors.Is(err, projectstore.ErrAlreadyMember) {
		t.Fatalf("expected ErrAlreadyMember, got %v", err)
	}
}

func TestRemoveMember_Idempotent(t *testing.T) {
	mgr, fixtures := newManager(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("DELETE", "/", nil)

	owner := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")
	student := fixtures.CreateStudent(ctx, "Ana Lopez", "ana@test.edu")
	p := fixtures.CreateProject(ctx, "Compilers", owner.ID, student.ID)

	members, err := mgr.RemoveMember(ctx, req, actorFor(owner), p.ID, student.ID)
	if err != nil {
		t.Fatalf("RemoveMember: %v", err)
	}
	if len(members) != 0 {
		t.Errorf("roster after remove: %v", members)
	}

	// Repeating the removal succeeds as a no-op.
	if _, err := mgr.RemoveMember(ctx, req, actorFor(owner), p.ID, student.ID); err != nil {
		t.Fatalf("repeat RemoveMember: %v", err)
	}
}

func TestSelfLeave(t *testing.T) {
	mgr, fixtures := newManager(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("POST", "/", nil)

	owner := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")
	member := fixtures.CreateStudent(ctx, "Ana Lopez", "ana@test.edu")
	outsider := fixtures.CreateStudent(ctx, "Ben Ortiz", "ben@test.edu")
	p := fixtures.CreateProject(ctx, "Compilers", owner.ID, member.ID)

	// A non-member is told they are not a member, not silently no-oped.
	err := mgr.SelfLeave(ctx, req, actorFor(outsider), p.ID)
	var ferr *membership.ForbiddenError
	if !errors.As(err, &ferr) || ferr.Reason != authz.ReasonNotMember {
		t.Fatalf("outsider leave: expected not-a-member ForbiddenError, got %v", err)
	}

	if err := mgr.SelfLeave(ctx, req, actorFor(member), p.ID); err != nil {
		t.Fatalf("member leave: %v", err)
	}

	// Leaving twice denies: the membership is already gone.
	if err := mgr.SelfLeave(ctx, req, actorFor(member), p.ID); !errors.As(err, &ferr) || ferr.Reason != authz.ReasonNotMember {
		t.Fatalf("second leave: expected not-a-member ForbiddenError, got %v", err)
	}

	// Admins never self-leave.
	admin := fixtures.CreateAdmin(ctx, "Root", "root@test.edu")
	if err := mgr.SelfLeave(ctx, req, actorFor(admin), p.ID); !errors.As(err, &ferr) || ferr.Reason != authz.ReasonNotMember {
		t.Fatalf("admin leave: expected not-a-member ForbiddenError, got %v", err)
	}
}

func TestSelfLeave_MissingProject(t *testing.T) {
	mgr, fixtures := newManager(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()
	req := httptest.NewRequest("POST", "/", nil)

	student := fixtures.CreateStudent(ctx, "Ana Lopez", "ana@test.edu")

	if err := mgr.SelfLeave(ctx, req, actorFor(student), primitive.NewObjectID()); !errors.Is(err, projectstore.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
