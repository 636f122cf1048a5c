package professor_test

import (
	"encoding/json"
	"net/http"
	"testing"

	professorfeature "github.com/dalemusser/projecthub/internal/app/features/professor"
	"github.com/dalemusser/projecthub/internal/app/membership"
	projectstore "github.com/dalemusser/projecthub/internal/app/store/projects"
	userstore "github.com/dalemusser/projecthub/internal/app/store/users"
	"github.com/dalemusser/projecthub/internal/app/system/auth"
	"github.com/dalemusser/projecthub/internal/domain/models"
	"github.com/dalemusser/projecthub/internal/testutil"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*professorfeature.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	projects := projectstore.New(db)
	users := userstore.New(db)
	mgr := membership.New(projects, users, nil, zap.NewNop())
	h := professorfeature.NewHandler(projects, users, mgr, nil, zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func authed(method, target, body string, u *auth.SessionUser) *http.Request {
	req := testutil.NewJSONRequest(method, target, body)
	return auth.WithTestUser(req, u)
}

func TestHandleCreateProject(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	prof := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")

	body := `{
		"title": "Compilers",
		"description": "A compilers practicum.",
		"department": "CS",
		"technologies": ["Go", "LLVM"]
	}`
	req := authed("POST", "/professor/projects", body, testutil.SessionFor(prof))
	rec := testutil.NewRecorder()
	h.HandleCreateProject(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)

	var resp struct {
		Project models.Project `json:"project"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Project.ProfessorID != prof.ID {
		t.Error("owner not bound to the signed-in professor")
	}
	if resp.Project.Status != models.ProjectActive {
		t.Errorf("status: got %q", resp.Project.Status)
	}
	if len(resp.Project.Students) != 0 {
		t.Errorf("new project roster should be empty, got %v", resp.Project.Students)
	}
}

func TestHandleCreateProject_SanitizesTitle(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	prof := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")

	body := `{"title": "<b>Compilers</b><script>alert(1)</script>"}`
	req := authed("POST", "/professor/projects", body, testutil.SessionFor(prof))
	rec := testutil.NewRecorder()
	h.HandleCreateProject(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusCreated)

	var resp struct {
		Project models.Project `json:"project"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Project.Title != "Compilers" {
		t.Errorf("title not stripped of markup: %q", resp.Project.Title)
	}

	// A title that is nothing but markup is rejected.
	req = authed("POST", "/professor/projects", `{"title": "<script>alert(1)</script>"}`, testutil.SessionFor(prof))
	rec = testutil.NewRecorder()
	h.HandleCreateProject(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
}

func TestHandleUpdateProject_NotOwner(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")
	rival := fixtures.CreateProfessor(ctx, "Prof Diaz", "diaz@test.edu")
	p := fixtures.CreateProject(ctx, "Compilers", owner.ID)

	body := `{"title": "Hijacked"}`
	req := authed("PUT", "/professor/projects/"+p.ID.Hex(), body, testutil.SessionFor(rival))
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleUpdateProject(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusForbidden)
	rec.AssertContains(t, "not owner")
}

func TestHandleDeleteProject(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")
	p := fixtures.CreateProject(ctx, "Compilers", owner.ID)

	req := authed("DELETE", "/professor/projects/"+p.ID.Hex(), "", testutil.SessionFor(owner))
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleDeleteProject(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	// Deleting again reports 404.
	req = authed("DELETE", "/professor/projects/"+p.ID.Hex(), "", testutil.SessionFor(owner))
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleDeleteProject(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleAddStudent(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")
	student := fixtures.CreateStudent(ctx, "Ana Lopez", "ana@test.edu")
	p := fixtures.CreateProject(ctx, "Compilers", owner.ID)

	body := `{"student_id": "` + student.ID.Hex() + `"}`
	req := authed("POST", "/professor/projects/"+p.ID.Hex()+"/students", body, testutil.SessionFor(owner))
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleAddStudent(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, student.ID.Hex())

	// Adding the same student again is a conflict.
	req = authed("POST", "/professor/projects/"+p.ID.Hex()+"/students", body, testutil.SessionFor(owner))
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleAddStudent(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusConflict)
}

func TestHandleAddStudent_BadTarget(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	owner := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")
	other := fixtures.CreateProfessor(ctx, "Prof Diaz", "diaz@test.edu")
	p := fixtures.CreateProject(ctx, "Compilers", owner.ID)

	// A malformed id is a validation problem.
	req := authed("POST", "/professor/projects/"+p.ID.Hex()+"/students", `{"student_id": "garbage"}`, testutil.SessionFor(owner))
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec := testutil.NewRecorder()
	h.HandleAddStudent(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusUnprocessableEntity)

	// A non-student target is rejected.
	req = authed("POST", "/professor/projects/"+p.ID.Hex()+"/students", `{"student_id": "`+other.ID.Hex()+`"}`, testutil.SessionFor(owner))
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec = testutil.NewRecorder()
	h.HandleAddStudent(rec.ResponseRecorder, req)
	rec.AssertStatus(t, http.StatusUnprocessableEntity)
}

func TestServeDashboard(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	prof := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")
	fixtures.CreateProject(ctx, "Compilers", prof.ID)
	fixtures.CreateArchivedProject(ctx, "Old Course", prof.ID)

	req := testutil.NewAuthenticatedRequest("GET", "/professor/dashboard", testutil.SessionFor(prof))
	rec := testutil.NewRecorder()
	h.ServeDashboard(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)
	rec.AssertContains(t, "Compilers")
}
