// internal/domain/models/project.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Project statuses.
const (
	ProjectActive   = "active"
	ProjectArchived = "archived"
)

// IsValidProjectStatus reports whether status is a known project status.
func IsValidProjectStatus(status string) bool {
	return status == ProjectActive || status == ProjectArchived
}

// Project is a professor-owned project with an enrolled-student member set.
//
// NOTE:
//   - ProfessorID is bound at creation and never changes.
//   - Students is a set: the store only mutates it with $addToSet/$pull
//     style conditional updates, never a whole-document rewrite, so
//     concurrent membership changes on the same project cannot lose an
//     update and duplicates cannot appear.
type Project struct {
	ID           primitive.ObjectID   `bson:"_id" json:"id"`
	Title        string               `bson:"title" json:"title"`
	TitleCI      string               `bson:"title_ci" json:"-"`
	Description  string               `bson:"description" json:"description"`
	Department   string               `bson:"department" json:"department"`
	Technologies []string             `bson:"technologies" json:"technologies"`
	Status       string               `bson:"status" json:"status"`
	ProfessorID  primitive.ObjectID   `bson:"professor_id" json:"professor_id"`
	Students     []primitive.ObjectID `bson:"students" json:"students"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}

// HasStudent reports whether id is in the project's member set.
func (p *Project) HasStudent(id primitive.ObjectID) bool {
	for _, s := range p.Students {
		if s == id {
			return true
		}
	}
	return false
}
