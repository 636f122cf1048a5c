// Package membership coordinates project roster changes.
//
// All roster writes go through the Manager so that the authorization check,
// the student-role check, and the audit trail are applied uniformly. The
// underlying writes are single conditional updates on the project document,
// so two concurrent mutations can never clobber each other's members.
package membership

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/store/projects"
	"github.com/dalemusser/projecthub/internal/app/store/users"
	"github.com/dalemusser/projecthub/internal/app/system/auditlog"
	"github.com/dalemusser/projecthub/internal/app/system/authz"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
)

// ErrNotStudent is returned when the target user does not exist or does not
// hold the student role. Only students can be project members.
var ErrNotStudent = errors.New("target user is not a student")

// ForbiddenError carries the deny reason from an authorization decision.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("forbidden: %s", e.Reason)
}

// Manager performs authorized roster mutations on projects.
type Manager struct {
	projects *projects.Store
	users    *users.Store
	audit    *auditlog.Logger
	logger   *zap.Logger
}

// New creates a membership Manager. audit may be nil in tests.
func New(projectStore *projects.Store, userStore *users.Store, audit *auditlog.Logger, logger *zap.Logger) *Manager {
	return &Manager{
		projects: projectStore,
		users:    userStore,
		audit:    audit,
		logger:   logger,
	}
}

// AddMember adds studentID to the project's roster on behalf of actor.
//
// The actor must be the owning professor or an admin. The target must hold
// the student role. Adding is not idempotent: if the student is already on
// the roster the call fails with projects.ErrAlreadyMember rather than
// silently succeeding, so the caller can surface the conflict.
//
// Returns the roster as it stands after the add.
func (m *Manager) AddMember(ctx context.Context, r *http.Request, actor authz.Actor, projectID, studentID primitive.ObjectID) ([]primitive.ObjectID, error) {
	p, err := m.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if d := authz.Decide(actor, authz.ActionManageMembers, p); !d.Allowed {
		return nil, &ForbiddenError{Reason: d.Reason}
	}

	if _, err := m.users.GetStudentByID(ctx, studentID); err != nil {
		if errors.Is(err, users.ErrUserNotFound) {
			return nil, ErrNotStudent
		}
		return nil, err
	}

	members, err := m.projects.AddStudent(ctx, projectID, studentID)
	if err != nil {
		return nil, err
	}

	m.audit.StudentAdded(ctx, r, actor.ID, studentID, projectID)
	m.logger.Info("student added to project",
		zap.String("project_id", projectID.Hex()),
		zap.String("student_id", studentID.Hex()),
		zap.String("actor_id", actor.ID.Hex()))
	return members, nil
}

// RemoveMember removes studentID from the project's roster on behalf of actor.
//
// The actor must be the owning professor or an admin. Removal is idempotent:
// removing a student who is not on the roster succeeds and leaves the roster
// unchanged.
//
// Returns the roster as it stands after the remove.
func (m *Manager) RemoveMember(ctx context.Context, r *http.Request, actor authz.Actor, projectID, studentID primitive.ObjectID) ([]primitive.ObjectID, error) {
	p, err := m.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	if d := authz.Decide(actor, authz.ActionManageMembers, p); !d.Allowed {
		return nil, &ForbiddenError{Reason: d.Reason}
	}

	members, err := m.projects.RemoveStudent(ctx, projectID, studentID)
	if err != nil {
		return nil, err
	}

	m.audit.StudentRemoved(ctx, r, actor.ID, studentID, projectID)
	m.logger.Info("student removed from project",
		zap.String("project_id", projectID.Hex()),
		zap.String("student_id", studentID.Hex()),
		zap.String("actor_id", actor.ID.Hex()))
	return members, nil
}

// SelfLeave removes the acting student from the project's roster.
//
// Unlike RemoveMember, a student who is not currently on the roster is
// denied with "not a member" instead of succeeding as a no-op, so the
// response tells the student their membership was already gone.
func (m *Manager) SelfLeave(ctx context.Context, r *http.Request, actor authz.Actor, projectID primitive.ObjectID) error {
	p, err := m.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}

	if d := authz.Decide(actor, authz.ActionSelfLeave, p); !d.Allowed {
		return &ForbiddenError{Reason: d.Reason}
	}

	if _, err := m.projects.RemoveStudent(ctx, projectID, actor.ID); err != nil {
		return err
	}

	m.audit.StudentLeft(ctx, r, actor.ID, projectID)
	m.logger.Info("student left project",
		zap.String("project_id", projectID.Hex()),
		zap.String("student_id", actor.ID.Hex()))
	return nil
}
