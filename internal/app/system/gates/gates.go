// Package gates provides authorization gate functions for HTTP handlers.
//
// # Three-Tier Authorization Pattern
//
//  1. Route-Level Middleware (auth.RequireSignedIn, auth.RequireRole)
//     Applied in routes.go files for coarse-grained access control.
//     When middleware handles role checking, handlers don't need gates.
//
//  2. Handler-Level Gates (this package)
//     Used in handlers that need the signed-in user's identity on top of
//     route-level middleware. Gates write the JSON error response and
//     return user context.
//
//  3. Decision Core (internal/app/system/authz) and policy layer
//     Used for resource-specific authorization: ownership and membership
//     checks against a loaded project document.
package gates

import (
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/system/authz"
	"github.com/dalemusser/projecthub/internal/app/system/render"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Actor returns the decision-core actor for the signed-in user.
// When there is no session user it writes a 401 and returns ok=false.
func Actor(w http.ResponseWriter, r *http.Request) (authz.Actor, bool) {
	actor, ok := authz.ActorCtx(r)
	if !ok {
		render.Unauthorized(w)
	}
	return actor, ok
}

// Result contains the result of an authorization gate check.
type Result struct {
	Role   string
	Name   string
	UserID primitive.ObjectID
	OK     bool
}

// RequireAuth ensures a user is authenticated.
// If not authenticated, it writes a 401 and returns OK=false.
func RequireAuth(w http.ResponseWriter, r *http.Request) Result {
	role, name, uid, ok := authz.UserCtx(r)
	if !ok {
		render.Unauthorized(w)
		return Result{OK: false}
	}
	return Result{Role: role, Name: name, UserID: uid, OK: true}
}
