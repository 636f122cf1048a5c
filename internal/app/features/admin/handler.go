// internal/app/features/admin/handler.go
package admin

import (
	"encoding/json"
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/dalemusser/projecthub/internal/app/membership"
	"github.com/dalemusser/projecthub/internal/app/store/audit"
	projectstore "github.com/dalemusser/projecthub/internal/app/store/projects"
	"github.com/dalemusser/projecthub/internal/app/store/users"
	"github.com/dalemusser/projecthub/internal/app/system/auditlog"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler serves the admin area: site stats, user administration, and
// roster management across every project.
type Handler struct {
	Projects   *projectstore.Store
	Users      *users.Store
	Audit      *audit.Store
	Membership *membership.Manager
	AuditLog   *auditlog.Logger
	Log        *zap.Logger

	validate *validator.Validate
}

// NewHandler constructs an admin Handler.
func NewHandler(
	projectStore *projectstore.Store,
	userStore *users.Store,
	auditStore *audit.Store,
	mgr *membership.Manager,
	auditLog *auditlog.Logger,
	logger *zap.Logger,
) *Handler {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{
		Projects:   projectStore,
		Users:      userStore,
		Audit:      auditStore,
		Membership: mgr,
		AuditLog:   auditLog,
		Log:        logger,
		validate:   v,
	}
}

// decodePayload fills v from a JSON body or form-encoded fields.
func decodePayload(r *http.Request, v any) error {
	ct := r.Header.Get("Content-Type")
	if strings.HasPrefix(ct, "application/json") {
		return json.NewDecoder(r.Body).Decode(v)
	}
	if err := r.ParseForm(); err != nil {
		return err
	}
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
