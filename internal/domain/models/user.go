// internal/domain/models/user.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Roles a user can hold. A user has exactly one role, fixed at creation.
const (
	RoleStudent   = "student"
	RoleProfessor = "professor"
	RoleAdmin     = "admin"
)

// IsValidRole reports whether role is one of the three known roles.
func IsValidRole(role string) bool {
	switch role {
	case RoleStudent, RoleProfessor, RoleAdmin:
		return true
	}
	return false
}

// User represents students, professors, and admins.
//
// NOTE:
//   - Department is required for students and professors, never for admins.
//   - StudentID is set only when Role == "student"; EmployeeID only when
//     Role == "professor". Create-time validation in the user store keeps
//     these aligned with the role.
//   - Project membership is not mirrored on User. Use the projects
//     collection ("students" array) to discover a student's projects.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	NameCI       string             `bson:"name_ci" json:"-"` // lowercase, diacritics-stripped
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         string             `bson:"role" json:"role"` // student | professor | admin
	Department   string             `bson:"department,omitempty" json:"department,omitempty"`
	StudentID    string             `bson:"student_id,omitempty" json:"student_id,omitempty"`
	EmployeeID   string             `bson:"employee_id,omitempty" json:"employee_id,omitempty"`

	CreatedAt time.Time `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time `bson:"updated_at" json:"updated_at"`
}
