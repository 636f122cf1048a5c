package projects_test

import (
	"encoding/json"
	"net/http"
	"testing"

	projectsfeature "github.com/dalemusser/projecthub/internal/app/features/projects"
	"github.com/dalemusser/projecthub/internal/app/membership"
	projectstore "github.com/dalemusser/projecthub/internal/app/store/projects"
	userstore "github.com/dalemusser/projecthub/internal/app/store/users"
	"github.com/dalemusser/projecthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

func newTestHandler(t *testing.T) (*projectsfeature.Handler, *testutil.Fixtures) {
	t.Helper()
	db := testutil.SetupTestDB(t)
	projects := projectstore.New(db)
	users := userstore.New(db)
	mgr := membership.New(projects, users, nil, zap.NewNop())
	h := projectsfeature.NewHandler(projects, users, mgr, zap.NewNop())
	return h, testutil.NewFixtures(t, db)
}

func TestServeProject_HydratesRoster(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	prof := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")
	student := fixtures.CreateStudent(ctx, "Ana Lopez", "ana@test.edu")
	// A dangling roster id (deleted account) is skipped, not an error.
	p := fixtures.CreateProject(ctx, "Compilers", prof.ID, student.ID, primitive.NewObjectID())

	req := testutil.NewAuthenticatedRequest("GET", "/projects/"+p.ID.Hex(), testutil.StudentSession())
	req = testutil.WithChiURLParam(req, "id", p.ID.Hex())
	rec := testutil.NewRecorder()
	h.ServeProject(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusOK)

	var resp struct {
		Project struct {
			Title string `json:"title"`
		} `json:"project"`
		Members []struct {
			Name  string `json:"name"`
			Email string `json:"email"`
		} `json:"members"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Project.Title != "Compilers" {
		t.Errorf("title: got %q", resp.Project.Title)
	}
	if len(resp.Members) != 1 {
		t.Fatalf("members: got %d, want 1", len(resp.Members))
	}
	if resp.Members[0].Name != "Ana Lopez" {
		t.Errorf("member name: got %q", resp.Members[0].Name)
	}
}

func TestServeProject_BadID(t *testing.T) {
	h, _ := newTestHandler(t)

	req := testutil.NewAuthenticatedRequest("GET", "/projects/nope", testutil.StudentSession())
	req = testutil.WithChiURLParam(req, "id", "nope")
	rec := testutil.NewRecorder()
	h.ServeProject(rec.ResponseRecorder, req)

	rec.AssertStatus(t, http.StatusNotFound)
}

func TestHandleLeave_ResponseShapes(t *testing.T) {
	h, fixtures := newTestHandler(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	prof := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")
	member := fixtures.CreateStudent(ctx, "Ana Lopez", "ana@test.edu")
	p := fixtures.CreateProject(ctx, "Compilers", prof.ID, member.ID)

	doLeave := func(t *testing.T, sid, pid string, wantStatus int, wantSuccess bool, wantMsg string) {
		t.Helper()
		sess := testutil.SessionFor(member)
		sess.ID = sid
		req := testutil.NewAuthenticatedRequest("POST", "/projects/"+pid+"/leave", sess)
		req = testutil.WithChiURLParam(req, "id", pid)
		rec := testutil.NewRecorder()
		h.HandleLeave(rec.ResponseRecorder, req)

		rec.AssertStatus(t, wantStatus)
		var resp struct {
			Success bool   `json:"success"`
			Message string `json:"message"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		if resp.Success != wantSuccess {
			t.Errorf("success: got %v, want %v", resp.Success, wantSuccess)
		}
		if resp.Message != wantMsg {
			t.Errorf("message: got %q, want %q", resp.Message, wantMsg)
		}
	}

	// Member leaves.
	doLeave(t, member.ID.Hex(), p.ID.Hex(), http.StatusOK, true, "You have left the project.")
	// Leaving again: membership is gone.
	doLeave(t, member.ID.Hex(), p.ID.Hex(), http.StatusForbidden, false, "You are not a member of this project.")
	// Missing project.
	doLeave(t, member.ID.Hex(), primitive.NewObjectID().Hex(), http.StatusNotFound, false, "Project not found.")
}
