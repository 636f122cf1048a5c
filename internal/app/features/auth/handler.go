// internal/app/features/auth/handler.go
package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/dalemusser/projecthub/internal/app/store/users"
	"github.com/dalemusser/projecthub/internal/app/system/auditlog"
	"github.com/dalemusser/projecthub/internal/app/system/ratelimit"
	"github.com/dalemusser/projecthub/internal/domain/models"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler serves registration, login, logout, and the role-based
// dashboard redirect.
type Handler struct {
	Users    *users.Store
	AuditLog *auditlog.Logger
	Limiter  *ratelimit.LoginLimiter
	Log      *zap.Logger

	validate *validator.Validate
}

// NewHandler constructs an auth Handler with login throttling enabled.
func NewHandler(userStore *users.Store, audit *auditlog.Logger, logger *zap.Logger) *Handler {
	return &Handler{
		Users:    userStore,
		AuditLog: audit,
		Limiter:  ratelimit.NewLoginLimiter(),
		Log:      logger,
		validate: newValidator(),
	}
}

// newValidator builds a validator that reports json field names, so 422
// responses name the fields the client actually sent.
func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// userView is the JSON shape for a user in auth responses.
type userView struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Role       string `json:"role"`
	Department string `json:"department,omitempty"`
	StudentID  string `json:"student_id,omitempty"`
	EmployeeID string `json:"employee_id,omitempty"`
}

func viewOf(u *models.User) userView {
	return userView{
		ID:         u.ID.Hex(),
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Department: u.Department,
		StudentID:  u.StudentID,
		EmployeeID: u.EmployeeID,
	}
}

// dashboardPath maps a role to its dashboard route.
func dashboardPath(role string) string {
	switch role {
	case models.RoleProfessor:
		return "/professor/dashboard"
	case models.RoleAdmin:
		return "/admin/dashboard"
	default:
		return "/student/dashboard"
	}
}

// decodePayload fills v from a JSON body or, for browser forms, from
// form-encoded fields named by the json tags.
func decodePayload(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		dec := json.NewDecoder(r.Body)
		return dec.Decode(v)
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
	// Re-encode the form into JSON keyed by field name; payload structs keep
	// their json tags aligned with the original form field names.
	m := map[string]string{}
	for k := range r.PostForm {
		m[k] = strings.TrimSpace(r.PostForm.Get(k))
	}
	b, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, v)
}

// wantsHTML reports whether the client is a browser form post that expects
// a redirect rather than a JSON body.
func wantsHTML(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "text/html")
}

// validationFields flattens validator.ValidationErrors into the json field
// names the client sent.
func validationFields(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	fields := make([]string, 0, len(verrs))
	for _, e := range verrs {
		fields = append(fields, e.Field())
	}
	return fields
}
