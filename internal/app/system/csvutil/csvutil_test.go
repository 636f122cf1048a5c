package csvutil

import (
	"strings"
	"testing"
	"time"

	"github.com/dalemusser/projecthub/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWriteProjects(t *testing.T) {
	p := models.Project{
		ID:           primitive.NewObjectID(),
		Title:        "Compilers",
		Department:   "CS",
		Status:       models.ProjectActive,
		Technologies: []string{"Go", "LLVM"},
		Students:     []primitive.ObjectID{primitive.NewObjectID(), primitive.NewObjectID()},
		CreatedAt:    time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
	}

	var b strings.Builder
	if err := WriteProjects(&b, []ProjectRow{{Project: p, ProfessorName: "Prof Chen"}}); err != nil {
		t.Fatalf("WriteProjects: %v", err)
	}

	out := b.String()
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,title,department") {
		t.Errorf("header: %q", lines[0])
	}
	for _, want := range []string{"Compilers", "Prof Chen", "Go;LLVM", ",2,", "2026-01-15T09:00:00Z"} {
		if !strings.Contains(lines[1], want) {
			t.Errorf("row %q missing %q", lines[1], want)
		}
	}
}

func TestWriteUsers_NoSecrets(t *testing.T) {
	u := models.User{
		ID:           primitive.NewObjectID(),
		Name:         "Ana Lopez",
		Email:        "ana@test.edu",
		PasswordHash: "$2a$10$secret",
		Role:         models.RoleStudent,
		Department:   "CS",
		StudentID:    "S100",
		CreatedAt:    time.Date(2026, 1, 15, 9, 0, 0, 0, time.UTC),
	}

	var b strings.Builder
	if err := WriteUsers(&b, []models.User{u}); err != nil {
		t.Fatalf("WriteUsers: %v", err)
	}
	if strings.Contains(b.String(), "secret") {
		t.Error("export leaked the password hash")
	}
	if !strings.Contains(b.String(), "ana@test.edu") {
		t.Error("export missing the email column")
	}
}
