// internal/app/bootstrap/routes.go
package bootstrap

import (
	"context"
	"encoding/base64"
	"net/http"

	adminfeature "github.com/dalemusser/projecthub/internal/app/features/admin"
	authfeature "github.com/dalemusser/projecthub/internal/app/features/auth"
	authgooglefeature "github.com/dalemusser/projecthub/internal/app/features/authgoogle"
	errorsfeature "github.com/dalemusser/projecthub/internal/app/features/errors"
	healthfeature "github.com/dalemusser/projecthub/internal/app/features/health"
	professorfeature "github.com/dalemusser/projecthub/internal/app/features/professor"
	projectsfeature "github.com/dalemusser/projecthub/internal/app/features/projects"
	studentfeature "github.com/dalemusser/projecthub/internal/app/features/student"
	"github.com/dalemusser/projecthub/internal/app/membership"
	"github.com/dalemusser/projecthub/internal/app/store/audit"
	"github.com/dalemusser/projecthub/internal/app/store/oauthstate"
	projectstore "github.com/dalemusser/projecthub/internal/app/store/projects"
	userstore "github.com/dalemusser/projecthub/internal/app/store/users"
	"github.com/dalemusser/projecthub/internal/app/system/auditlog"
	"github.com/dalemusser/projecthub/internal/app/system/auth"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/gorilla/securecookie"
	"go.uber.org/zap"
)

type ctxKey string

const requestIDKey ctxKey = "request_id"

// RequestIDFromContext returns the request id set by the request-ID
// middleware, or "" when none is present.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

// requestID tags every request with a UUID, honoring an inbound
// X-Request-ID from a trusted proxy.
func requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		ctx := context.WithValue(r.Context(), requestIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// the Startup hook have completed. It wires the stores, the membership
// manager, and the audit logger, then mounts a feature router per area:
// auth, professor, student, admin, shared project views, and health.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	// Secure cookies are enabled in production mode.
	secure := coreCfg.Env == "prod"

	sessionKey := appCfg.SessionKey
	if sessionKey == "" {
		// Dev-only fallback: a random per-process key so local runs work
		// without config. Sessions do not survive a restart. ValidateConfig
		// rejects an empty key in production.
		sessionKey = base64.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32))
		logger.Warn("session_key not set; using a random per-process key (sessions reset on restart)")
	}
	if err := auth.InitSessionStore(sessionKey, appCfg.SessionDomain, secure, logger); err != nil {
		logger.Error("session store init failed", zap.Error(err))
		return nil, err
	}

	db := deps.MongoDatabase

	// Stores
	users := userstore.New(db)
	projects := projectstore.New(db)
	auditStore := audit.New(db)
	stateStore := oauthstate.New(db)

	// Audit logger: MongoDB trail plus zap mirror, per category config.
	auditLog := auditlog.New(auditStore, logger, auditlog.Config{
		Auth:  appCfg.AuditLogAuth,
		Admin: appCfg.AuditLogAdmin,
	})

	// Membership manager: the one path for every roster mutation.
	mgr := membership.New(projects, users, auditLog, logger)

	r := chi.NewRouter()
	r.Use(requestID)

	// Global auth middleware: loads SessionUser into context if logged in.
	// This makes the current user available to all handlers via auth.CurrentUser(r).
	r.Use(auth.LoadSessionUser)

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	// Authentication: register, login, logout, dashboard redirect.
	authHandler := authfeature.NewHandler(users, auditLog, logger)
	r.Mount("/auth", authfeature.Routes(authHandler))

	// Google sign-in for existing accounts. Mounted unconditionally; the
	// handler turns visitors away with a friendly error when unconfigured.
	googleHandler := authgooglefeature.NewHandler(
		users, auditLog, stateStore,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.BaseURL,
		logger,
	)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// Role areas
	professorHandler := professorfeature.NewHandler(projects, users, mgr, auditLog, logger)
	r.Mount("/professor", professorfeature.Routes(professorHandler))

	studentHandler := studentfeature.NewHandler(projects, logger)
	r.Mount("/student", studentfeature.Routes(studentHandler))

	adminHandler := adminfeature.NewHandler(projects, users, auditStore, mgr, auditLog, logger)
	r.Mount("/admin", adminfeature.Routes(adminHandler))

	// Shared project views: detail page and self-leave, any signed-in role.
	projectsHandler := projectsfeature.NewHandler(projects, users, mgr, logger)
	r.Mount("/projects", projectsfeature.Routes(projectsHandler))

	// Error pages
	errorsHandler := errorsfeature.NewHandler()
	r.Mount("/", errorsfeature.Routes(errorsHandler))

	return r, nil
}
