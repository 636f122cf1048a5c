// internal/app/features/professor/handler.go
package professor

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dalemusser/projecthub/internal/app/membership"
	projectstore "github.com/dalemusser/projecthub/internal/app/store/projects"
	"github.com/dalemusser/projecthub/internal/app/store/users"
	"github.com/dalemusser/projecthub/internal/app/system/auditlog"
	"go.uber.org/zap"
)

// Handler serves the professor area: the dashboard, project CRUD, and
// roster management for owned projects.
type Handler struct {
	Projects   *projectstore.Store
	Users      *users.Store
	Membership *membership.Manager
	AuditLog   *auditlog.Logger
	Log        *zap.Logger
}

// NewHandler constructs a professor Handler.
func NewHandler(
	projectStore *projectstore.Store,
	userStore *users.Store,
	mgr *membership.Manager,
	audit *auditlog.Logger,
	logger *zap.Logger,
) *Handler {
	return &Handler{
		Projects:   projectStore,
		Users:      userStore,
		Membership: mgr,
		AuditLog:   audit,
		Log:        logger,
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
