// internal/app/system/csvutil/csvutil.go
package csvutil

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/dalemusser/projecthub/internal/domain/models"
)

// ProjectRow pairs a project with its owner's display name for export.
type ProjectRow struct {
	Project       models.Project
	ProfessorName string
}

// WriteProjects streams projects as CSV with a header row. Timestamps are
// RFC 3339 in UTC.
func WriteProjects(w io.Writer, rows []ProjectRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "title", "department", "status", "professor", "technologies", "students", "created_at",
	}); err != nil {
		return err
	}
	for _, row := range rows {
		p := row.Project
		rec := []string{
			p.ID.Hex(),
			p.Title,
			p.Department,
			p.Status,
			row.ProfessorName,
			strings.Join(p.Technologies, ";"),
			strconv.Itoa(len(p.Students)),
			p.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteUsers streams accounts as CSV with a header row. Password hashes are
// never exported.
func WriteUsers(w io.Writer, users []models.User) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{
		"id", "name", "email", "role", "department", "student_id", "employee_id", "created_at",
	}); err != nil {
		return err
	}
	for _, u := range users {
		rec := []string{
			u.ID.Hex(),
			u.Name,
			u.Email,
			u.Role,
			u.Department,
			u.StudentID,
			u.EmployeeID,
			u.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
