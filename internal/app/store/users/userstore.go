package users

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dalemusser/projecthub/internal/app/system/normalize"
	"github.com/dalemusser/projecthub/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

// Store is the identity directory: user records plus credential checks.
// It also holds the projects collection so user deletion can keep the
// membership relation consistent (see Delete).
type Store struct {
	c        *mongo.Collection
	projects *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{
		c:        db.Collection("users"),
		projects: db.Collection("projects"),
	}
}

var (
	// ErrDuplicateEmail is returned when attempting to create a user with an
	// email that already exists (case-insensitive).
	ErrDuplicateEmail = errors.New("a user with this email already exists")

	// ErrAuthFailed is returned for a bad email/password pair. The same
	// error covers unknown email and wrong password so callers cannot
	// distinguish the two.
	ErrAuthFailed = errors.New("invalid email or password")

	// ErrUserNotFound is returned when a user id does not resolve.
	ErrUserNotFound = errors.New("user not found")

	// ErrOwnsProjects is returned when deleting a professor that still owns
	// projects. The caller must delete or reassign the projects first.
	ErrOwnsProjects = errors.New("professor still owns projects")
)

// ValidationError reports every role-conditional field violation found at
// create time, not just the first.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid user: " + strings.Join(e.Fields, ", ")
}

// validateRoleFields checks the role-conditional required fields:
// department for students and professors, student_id for students,
// employee_id for professors. Admins carry none of them.
func validateRoleFields(u models.User) *ValidationError {
	var fields []string

	if u.Name == "" {
		fields = append(fields, "name is required")
	}
	if u.Email == "" {
		fields = append(fields, "email is required")
	}
	if !models.IsValidRole(u.Role) {
		fields = append(fields, "role must be student, professor, or admin")
		if len(fields) > 0 {
			return &ValidationError{Fields: fields}
		}
	}

	switch u.Role {
	case models.RoleStudent:
		if u.Department == "" {
			fields = append(fields, "department is required for students")
		}
		if u.StudentID == "" {
			fields = append(fields, "student_id is required for students")
		}
		if u.EmployeeID != "" {
			fields = append(fields, "employee_id must not be set for students")
		}
	case models.RoleProfessor:
		if u.Department == "" {
			fields = append(fields, "department is required for professors")
		}
		if u.EmployeeID == "" {
			fields = append(fields, "employee_id is required for professors")
		}
		if u.StudentID != "" {
			fields = append(fields, "student_id must not be set for professors")
		}
	case models.RoleAdmin:
		if u.StudentID != "" {
			fields = append(fields, "student_id must not be set for admins")
		}
		if u.EmployeeID != "" {
			fields = append(fields, "employee_id must not be set for admins")
		}
	}

	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Create inserts a new user after normalizing fields, validating the
// role-conditional invariants, and hashing the plaintext password.
// Returns ErrDuplicateEmail on an email collision and *ValidationError
// listing every violated field on invalid input.
func (s *Store) Create(ctx context.Context, u models.User, password string) (models.User, error) {
	u.ID = primitive.NewObjectID()
	u.Name = normalize.Name(u.Name)
	u.NameCI = text.Fold(u.Name)
	u.Email = normalize.Email(u.Email)
	u.Role = normalize.Role(u.Role)
	u.Department = normalize.Department(u.Department)
	u.StudentID = strings.TrimSpace(u.StudentID)
	u.EmployeeID = strings.TrimSpace(u.EmployeeID)

	if verr := validateRoleFields(u); verr != nil {
		return models.User{}, verr
	}
	if len(password) < 6 {
		return models.User{}, &ValidationError{Fields: []string{"password must be at least 6 characters"}}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	u.PasswordHash = string(hash)

	now := time.Now().UTC()
	u.CreatedAt = now
	u.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, u); err != nil {
		if wafflemongo.IsDup(err) {
			return models.User{}, ErrDuplicateEmail
		}
		return models.User{}, err
	}
	return u, nil
}

// GetByID loads a user by ObjectID. Returns ErrUserNotFound if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &u, nil
}

// GetStudentByID loads a user by ObjectID, returning ErrUserNotFound if the
// user does not exist or is not a student.
func (s *Store) GetStudentByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"_id": id, "role": models.RoleStudent}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// GetByEmail looks up a user by case-insensitive email.
// Returns ErrUserNotFound if absent.
func (s *Store) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	err := s.c.FindOne(ctx, bson.M{"email": normalize.Email(email)}).Decode(&u)
	if err == mongo.ErrNoDocuments {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// VerifyCredential checks an email/password pair and returns the matching
// user. Unknown email and wrong password both return ErrAuthFailed.
func (s *Store) VerifyCredential(ctx context.Context, email, password string) (*models.User, error) {
	u, err := s.GetByEmail(ctx, email)
	if err == ErrUserNotFound {
		return nil, ErrAuthFailed
	}
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, ErrAuthFailed
	}
	return u, nil
}

// ListByRole returns all users with the given role, sorted by folded name.
func (s *Store) ListByRole(ctx context.Context, role string) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, bson.M{"role": normalize.Role(role)}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListNonAdmin returns all students and professors, newest first.
// The admin user list view excludes admin accounts.
func (s *Store) ListNonAdmin(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cur, err := s.c.Find(ctx, bson.M{"role": bson.M{"$ne": models.RoleAdmin}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListNonAdminPage returns one offset page of students and professors,
// newest first.
func (s *Store) ListNonAdminPage(ctx context.Context, skip, limit int64) ([]models.User, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{"role": bson.M{"$ne": models.RoleAdmin}}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CountNonAdmin returns the number of student and professor accounts.
func (s *Store) CountNonAdmin(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"role": bson.M{"$ne": models.RoleAdmin}})
}

// ListStudentsNotIn returns students whose ids are not in exclude, sorted by
// folded name. Used to populate "available students" pickers for a project.
func (s *Store) ListStudentsNotIn(ctx context.Context, exclude []primitive.ObjectID) ([]models.User, error) {
	filter := bson.M{"role": models.RoleStudent}
	if len(exclude) > 0 {
		filter["_id"] = bson.M{"$nin": exclude}
	}
	opts := options.Find().SetSort(bson.D{{Key: "name_ci", Value: 1}})
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// CountByRole returns the number of users with the given role. An empty
// role counts every user.
func (s *Store) CountByRole(ctx context.Context, role string) (int64, error) {
	filter := bson.M{}
	if role != "" {
		filter["role"] = normalize.Role(role)
	}
	return s.c.CountDocuments(ctx, filter)
}

// Delete hard-deletes a user and keeps the membership relation consistent:
//
//   - Deleting a student first $pulls their id from every project's member
//     set, so no project retains a dangling member id.
//   - Deleting a professor is rejected with ErrOwnsProjects while they still
//     own projects; their projects must be deleted (or re-owned) first.
//
// Returns ErrUserNotFound if the id does not resolve.
func (s *Store) Delete(ctx context.Context, id primitive.ObjectID) error {
	u, err := s.GetByID(ctx, id)
	if err != nil {
		return err
	}

	switch u.Role {
	case models.RoleProfessor:
		n, err := s.projects.CountDocuments(ctx, bson.M{"professor_id": id})
		if err != nil {
			return err
		}
		if n > 0 {
			return ErrOwnsProjects
		}
	case models.RoleStudent:
		if _, err := s.projects.UpdateMany(ctx,
			bson.M{"students": id},
			bson.M{"$pull": bson.M{"students": id}},
		); err != nil {
			return err
		}
	}

	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrUserNotFound
	}
	return nil
}
