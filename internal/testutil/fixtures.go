package testutil

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/dalemusser/projecthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// TestPassword is the plaintext password for every fixture account.
const TestPassword = "test-password-1"

func (f *Fixtures) createUser(ctx context.Context, u models.User) models.User {
	f.t.Helper()

	now := time.Now().UTC()
	u.ID = primitive.NewObjectID()
	u.NameCI = text.Fold(u.Name)
	u.CreatedAt = now
	u.UpdatedAt = now

	hash, err := bcrypt.GenerateFromPassword([]byte(TestPassword), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("hash fixture password: %v", err)
	}
	u.PasswordHash = string(hash)

	if _, err := f.db.Collection("users").InsertOne(ctx, u); err != nil {
		f.t.Fatalf("create test user: %v", err)
	}
	return u
}

// CreateStudent creates a test student account.
func (f *Fixtures) CreateStudent(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.createUser(ctx, models.User{
		Name:       name,
		Email:      email,
		Role:       models.RoleStudent,
		Department: "Computer Science",
		StudentID:  "S" + primitive.NewObjectID().Hex()[:8],
	})
}

// CreateProfessor creates a test professor account.
func (f *Fixtures) CreateProfessor(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.createUser(ctx, models.User{
		Name:       name,
		Email:      email,
		Role:       models.RoleProfessor,
		Department: "Computer Science",
		EmployeeID: "E" + primitive.NewObjectID().Hex()[:8],
	})
}

// CreateAdmin creates a test admin account.
func (f *Fixtures) CreateAdmin(ctx context.Context, name, email string) models.User {
	f.t.Helper()
	return f.createUser(ctx, models.User{
		Name:  name,
		Email: email,
		Role:  models.RoleAdmin,
	})
}

// CreateProject creates a test project owned by ownerID, with the given
// students already on the roster.
func (f *Fixtures) CreateProject(ctx context.Context, title string, ownerID primitive.ObjectID, students ...primitive.ObjectID) models.Project {
	f.t.Helper()

	if students == nil {
		students = []primitive.ObjectID{}
	}
	now := time.Now().UTC()
	p := models.Project{
		ID:           primitive.NewObjectID(),
		Title:        title,
		TitleCI:      text.Fold(title),
		Description:  "Test project description",
		Department:   "Computer Science",
		Technologies: []string{"Go", "MongoDB"},
		Status:       models.ProjectActive,
		ProfessorID:  ownerID,
		Students:     students,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("projects").InsertOne(ctx, p); err != nil {
		f.t.Fatalf("create test project: %v", err)
	}
	return p
}

// CreateArchivedProject creates a test project with archived status.
func (f *Fixtures) CreateArchivedProject(ctx context.Context, title string, ownerID primitive.ObjectID) models.Project {
	f.t.Helper()

	p := f.CreateProject(ctx, title, ownerID)
	if _, err := f.db.Collection("projects").UpdateByID(ctx, p.ID, bson.M{"$set": bson.M{"status": models.ProjectArchived}}); err != nil {
		f.t.Fatalf("archive test project: %v", err)
	}
	p.Status = models.ProjectArchived
	return p
}
