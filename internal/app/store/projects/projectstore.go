package projects

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/dalemusser/projecthub/internal/app/system/normalize"
	"github.com/dalemusser/projecthub/internal/domain/models"
	"github.com/dalemusser/waffle/pantry/text"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("projects")}
}

var (
	// ErrNotFound is returned when a project id does not resolve.
	ErrNotFound = errors.New("project not found")

	// ErrNotOwner is returned when an owner-scoped update or delete matched
	// an existing project but the owner filter excluded it.
	ErrNotOwner = errors.New("project is owned by another professor")

	// ErrAlreadyMember is returned by AddStudent when the student is already
	// in the project's member set. Add is deliberately not idempotent; a
	// retried add must re-read membership first.
	ErrAlreadyMember = errors.New("student is already part of this project")

	errBadStatus = errors.New(`status must be "active" or "archived"`)
)

// Create inserts a new project owned by ownerID. The owner binding is
// immutable after this point; no update path touches professor_id.
func (s *Store) Create(ctx context.Context, p models.Project, ownerID primitive.ObjectID) (models.Project, error) {
	now := time.Now().UTC()
	p.ID = primitive.NewObjectID()
	p.Title = strings.TrimSpace(p.Title)
	p.TitleCI = text.Fold(p.Title)
	p.Department = normalize.Department(p.Department)
	p.ProfessorID = ownerID
	if p.Status == "" {
		p.Status = models.ProjectActive
	}
	if !models.IsValidProjectStatus(p.Status) {
		return models.Project{}, errBadStatus
	}
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
	p.Students = []primitive.ObjectID{}
	p.CreatedAt = now
	p.UpdatedAt = now

	if _, err := s.c.InsertOne(ctx, p); err != nil {
		return models.Project{}, err
	}
	return p, nil
}

// GetByID loads a project. Returns ErrNotFound if absent.
func (s *Store) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	var p models.Project
	if err := s.c.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

// ListByProfessor returns a professor's projects, newest first.
func (s *Store) ListByProfessor(ctx context.Context, professorID primitive.ObjectID) ([]models.Project, error) {
	return s.list(ctx, bson.M{"professor_id": professorID}, 0)
}

// ListByStudent returns projects whose member set contains studentID,
// newest first. Membership is discovered by filtering projects; there is no
// reverse index on the user document.
func (s *Store) ListByStudent(ctx context.Context, studentID primitive.ObjectID) ([]models.Project, error) {
	return s.list(ctx, bson.M{"students": studentID}, 0)
}

// ListAll returns every project, newest first.
func (s *Store) ListAll(ctx context.Context) ([]models.Project, error) {
	return s.list(ctx, bson.M{}, 0)
}

// ListPage returns one offset page of all projects, newest first.
func (s *Store) ListPage(ctx context.Context, skip, limit int64) ([]models.Project, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip).
		SetLimit(limit)
	cur, err := s.c.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// ListRecent returns the n most recently created projects.
func (s *Store) ListRecent(ctx context.Context, n int64) ([]models.Project, error) {
	return s.list(ctx, bson.M{}, n)
}

func (s *Store) list(ctx context.Context, filter bson.M, limit int64) ([]models.Project, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	if limit > 0 {
		opts.SetLimit(limit)
	}
	cur, err := s.c.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var projects []models.Project
	if err := cur.All(ctx, &projects); err != nil {
		return nil, err
	}
	return projects, nil
}

// Patch holds the mutable project fields. ProfessorID and Students are not
// part of a patch: ownership is immutable and membership goes through the
// set primitives below.
type Patch struct {
	Title        string
	Description  string
	Department   string
	Technologies []string
	Status       string
}

// Update applies patch to the project iff it exists and is owned by ownerID.
// The owner check rides in the update filter, so the check and the mutation
// are a single atomic operation; no other reader can observe a mutation
// that bypassed the check. matched=0 is disambiguated into ErrNotFound vs
// ErrNotOwner with a follow-up existence read.
func (s *Store) Update(ctx context.Context, id, ownerID primitive.ObjectID, patch Patch) error {
	set := bson.M{"updated_at": time.Now().UTC()}
	if t := strings.TrimSpace(patch.Title); t != "" {
		set["title"] = t
		set["title_ci"] = text.Fold(t)
	}
	// Description may be cleared.
	set["description"] = patch.Description
	if d := normalize.Department(patch.Department); d != "" {
		set["department"] = d
	}
	if patch.Technologies != nil {
		set["technologies"] = patch.Technologies
	}
	if patch.Status != "" {
		if !models.IsValidProjectStatus(patch.Status) {
			return errBadStatus
		}
		set["status"] = patch.Status
	}

	res, err := s.c.UpdateOne(ctx,
		bson.M{"_id": id, "professor_id": ownerID},
		bson.M{"$set": set},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return s.disambiguate(ctx, id)
	}
	return nil
}

// Delete removes the project iff it exists and is owned by ownerID.
func (s *Store) Delete(ctx context.Context, id, ownerID primitive.ObjectID) error {
	res, err := s.c.DeleteOne(ctx, bson.M{"_id": id, "professor_id": ownerID})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return s.disambiguate(ctx, id)
	}
	return nil
}

// AddStudent atomically adds studentID to the project's member set.
//
// The filter requires the student to be absent ($ne) and the update uses
// $addToSet, so two concurrent adds for different students both land (no
// lost update on the shared array) and two concurrent adds of the same
// student resolve to exactly one success and one ErrAlreadyMember.
// Returns the updated member set.
func (s *Store) AddStudent(ctx context.Context, projectID, studentID primitive.ObjectID) ([]primitive.ObjectID, error) {
	after := options.After
	var p models.Project
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": projectID, "students": bson.M{"$ne": studentID}},
		bson.M{
			"$addToSet": bson.M{"students": studentID},
			"$set":      bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		// Either the project does not exist, or the $ne guard failed
		// because the student is already a member.
		if derr := s.disambiguateMember(ctx, projectID); derr != nil {
			return nil, derr
		}
		return nil, ErrAlreadyMember
	}
	if err != nil {
		return nil, err
	}
	return p.Students, nil
}

// RemoveStudent atomically removes studentID from the project's member set.
// Removal is idempotent: pulling an absent member succeeds as a no-op.
// Returns the updated member set, or ErrNotFound if the project is absent.
func (s *Store) RemoveStudent(ctx context.Context, projectID, studentID primitive.ObjectID) ([]primitive.ObjectID, error) {
	after := options.After
	var p models.Project
	err := s.c.FindOneAndUpdate(ctx,
		bson.M{"_id": projectID},
		bson.M{
			"$pull": bson.M{"students": studentID},
			"$set":  bson.M{"updated_at": time.Now().UTC()},
		},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&p)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p.Students, nil
}

// CountAll returns the total number of projects.
func (s *Store) CountAll(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}

// CountByStatus returns the number of projects with the given status.
func (s *Store) CountByStatus(ctx context.Context, status string) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{"status": status})
}

// disambiguate turns a matched=0 owner-scoped write into ErrNotFound or
// ErrNotOwner.
func (s *Store) disambiguate(ctx context.Context, id primitive.ObjectID) error {
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	return ErrNotOwner
}

// disambiguateMember returns ErrNotFound when the project is absent and nil
// when it exists (meaning the $ne membership guard was what failed).
func (s *Store) disambiguateMember(ctx context.Context, id primitive.ObjectID) error {
	err := s.c.FindOne(ctx, bson.M{"_id": id}).Err()
	if err == mongo.ErrNoDocuments {
		return ErrNotFound
	}
	return err
}
