package users_test

import (
	"errors"
	"testing"

	"github.com/dalemusser/projecthub/internal/app/store/users"
	"github.com/dalemusser/projecthub/internal/domain/models"
	"github.com/dalemusser/projecthub/internal/testutil"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func TestCreate_RoleFieldValidation(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := users.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	tests := []struct {
		name       string
		user       models.User
		wantFields bool
	}{
		{
			name: "student requires student_id",
			user: models.User{
				Name:       "Ana Lopez",
				Email:      "ana@test.edu",
				Role:       models.RoleStudent,
				Department: "CS",
			},
			wantFields: true,
		},
		{
			name: "professor requires employee_id",
			user: models.User{
				Name:       "Prof Chen",
				Email:      "chen@test.edu",
				Role:       models.RoleProfessor,
				Department: "CS",
			},
			wantFields: true,
		},
		{
			name: "admin needs no department",
			user: models.User{
				Name:  "Root Admin",
				Email: "root@test.edu",
				Role:  models.RoleAdmin,
			},
		},
		{
			name: "student with id and department is valid",
			user: models.User{
				Name:       "Ben Ortiz",
				Email:      "ben@test.edu",
				Role:       models.RoleStudent,
				Department: "CS",
				StudentID:  "S100",
			},
		},
		{
			name: "unknown role rejected",
			user: models.User{
				Name:  "Weird Role",
				Email: "weird@test.edu",
				Role:  "dean",
			},
			wantFields: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Create(ctx, tc.user, "password1")
			if tc.wantFields {
				var verr *users.ValidationError
				if !errors.As(err, &verr) {
					t.Fatalf("expected *ValidationError, got %v", err)
				}
				if len(verr.Fields) == 0 {
					t.Error("expected violated fields to be listed")
				}
				return
			}
			if err != nil {
				t.Fatalf("Create: %v", err)
			}
		})
	}
}

func TestCreate_DuplicateEmail(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := users.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	ensureEmailIndex(t, db)

	u := models.User{
		Name:       "Ana Lopez",
		Email:      "ana@test.edu",
		Role:       models.RoleStudent,
		Department: "CS",
		StudentID:  "S100",
	}
	if _, err := store.Create(ctx, u, "password1"); err != nil {
		t.Fatalf("first Create: %v", err)
	}

	// Email matching is case-insensitive: the stored email is normalized.
	u.Email = "ANA@test.edu"
	u.StudentID = "S101"
	if _, err := store.Create(ctx, u, "password1"); !errors.Is(err, users.ErrDuplicateEmail) {
		t.Fatalf("expected ErrDuplicateEmail, got %v", err)
	}
}

func TestVerifyCredential(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := users.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, models.User{
		Name:       "Ana Lopez",
		Email:      "ana@test.edu",
		Role:       models.RoleStudent,
		Department: "CS",
		StudentID:  "S100",
	}, "correct-horse")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	got, err := store.VerifyCredential(ctx, "Ana@Test.edu", "correct-horse")
	if err != nil {
		t.Fatalf("VerifyCredential: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("verified wrong user: got %s, want %s", got.ID.Hex(), created.ID.Hex())
	}

	if _, err := store.VerifyCredential(ctx, "ana@test.edu", "wrong-password"); !errors.Is(err, users.ErrAuthFailed) {
		t.Errorf("wrong password: expected ErrAuthFailed, got %v", err)
	}
	// Unknown email yields the same sentinel so callers cannot distinguish.
	if _, err := store.VerifyCredential(ctx, "nobody@test.edu", "correct-horse"); !errors.Is(err, users.ErrAuthFailed) {
		t.Errorf("unknown email: expected ErrAuthFailed, got %v", err)
	}
}

func TestGetStudentByID_RejectsOtherRoles(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := users.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	prof := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")
	student := fixtures.CreateStudent(ctx, "Ana Lopez", "ana@test.edu")

	if _, err := store.GetStudentByID(ctx, student.ID); err != nil {
		t.Fatalf("GetStudentByID(student): %v", err)
	}
	if _, err := store.GetStudentByID(ctx, prof.ID); !errors.Is(err, users.ErrUserNotFound) {
		t.Errorf("GetStudentByID(professor): expected ErrUserNotFound, got %v", err)
	}
}

func TestDelete_StudentCascadesFromRosters(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := users.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	prof := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")
	student := fixtures.CreateStudent(ctx, "Ana Lopez", "ana@test.edu")
	other := fixtures.CreateStudent(ctx, "Ben Ortiz", "ben@test.edu")

	p1 := fixtures.CreateProject(ctx, "Compilers", prof.ID, student.ID, other.ID)
	p2 := fixtures.CreateProject(ctx, "Databases", prof.ID, student.ID)

	if err := store.Delete(ctx, student.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	for _, pid := range []primitive.ObjectID{p1.ID, p2.ID} {
		var p models.Project
		if err := db.Collection("projects").FindOne(ctx, bson.M{"_id": pid}).Decode(&p); err != nil {
			t.Fatalf("load project: %v", err)
		}
		for _, sid := range p.Students {
			if sid == student.ID {
				t.Errorf("project %s still lists deleted student", p.Title)
			}
		}
	}

	// The unrelated member survives.
	var p models.Project
	if err := db.Collection("projects").FindOne(ctx, bson.M{"_id": p1.ID}).Decode(&p); err != nil {
		t.Fatalf("load project: %v", err)
	}
	if !p.HasStudent(other.ID) {
		t.Error("cascade removed an unrelated member")
	}

	if _, err := store.GetByID(ctx, student.ID); !errors.Is(err, users.ErrUserNotFound) {
		t.Errorf("expected deleted user to be gone, got %v", err)
	}
}

func TestDelete_ProfessorWithProjectsRejected(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := users.New(db)
	fixtures := testutil.NewFixtures(t, db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	prof := fixtures.CreateProfessor(ctx, "Prof Chen", "chen@test.edu")
	fixtures.CreateProject(ctx, "Compilers", prof.ID)

	if err := store.Delete(ctx, prof.ID); !errors.Is(err, users.ErrOwnsProjects) {
		t.Fatalf("expected ErrOwnsProjects, got %v", err)
	}
	if _, err := store.GetByID(ctx, prof.ID); err != nil {
		t.Errorf("professor should survive the rejected delete: %v", err)
	}

	// After their projects are gone, deletion goes through.
	if _, err := db.Collection("projects").DeleteMany(ctx, bson.M{"professor_id": prof.ID}); err != nil {
		t.Fatalf("clear projects: %v", err)
	}
	if err := store.Delete(ctx, prof.ID); err != nil {
		t.Fatalf("Delete after clearing projects: %v", err)
	}
}

// ensureEmailIndex creates the unique email index the app normally builds
// at startup, so duplicate detection behaves as in production.
func ensureEmailIndex(t *testing.T, db *mongo.Database) {
	t.Helper()
	ctx, cancel := testutil.TestContext()
	defer cancel()
	_, err := db.Collection("users").Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		t.Fatalf("create email index: %v", err)
	}
}
