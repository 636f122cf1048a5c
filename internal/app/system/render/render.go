// Package render writes JSON responses and maps domain errors to HTTP status
// codes in one place, so every handler reports the same shape for the same
// failure.
package render

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dalemusser/projecthub/internal/app/membership"
	"github.com/dalemusser/projecthub/internal/app/store/projects"
	"github.com/dalemusser/projecthub/internal/app/store/users"
	"go.uber.org/zap"
)

// ErrorBody is the JSON shape for every error response.
type ErrorBody struct {
	Error  string   `json:"error"`
	Reason string   `json:"reason,omitempty"`
	Fields []string `json:"fields,omitempty"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		// Headers are already out; nothing useful to send the client.
		return
	}
}

// Err writes an error body with the given status and message.
func Err(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, ErrorBody{Error: msg})
}

// NotFound writes a 404 error body.
func NotFound(w http.ResponseWriter, what string) {
	Err(w, http.StatusNotFound, what+" not found")
}

// Forbidden writes a 403 error body carrying the deny reason.
func Forbidden(w http.ResponseWriter, reason string) {
	JSON(w, http.StatusForbidden, ErrorBody{Error: "forbidden", Reason: reason})
}

// Unauthorized writes a 401 error body.
func Unauthorized(w http.ResponseWriter) {
	Err(w, http.StatusUnauthorized, "authentication required")
}

// Problem maps a domain error to its HTTP status and writes the response.
//
// Status mapping:
//
//	not found (project, user)   404
//	authorization denial        403 with the deny reason
//	duplicate email, already a
//	member, owns projects       409
//	validation failure, target
//	not a student               422 (validation lists the offending fields)
//	bad credential              401
//	anything else               500 (logged; detail stays out of the body)
func Problem(w http.ResponseWriter, err error, logger *zap.Logger) {
	var forbidden *membership.ForbiddenError
	var validation *users.ValidationError

	switch {
	case errors.Is(err, projects.ErrNotFound):
		NotFound(w, "project")
	case errors.Is(err, users.ErrUserNotFound):
		NotFound(w, "user")
	case errors.As(err, &forbidden):
		Forbidden(w, forbidden.Reason)
	case errors.Is(err, projects.ErrNotOwner):
		Forbidden(w, "not owner")
	case errors.Is(err, projects.ErrAlreadyMember):
		Err(w, http.StatusConflict, "student is already a member of this project")
	case errors.Is(err, users.ErrDuplicateEmail):
		Err(w, http.StatusConflict, "a user with that email already exists")
	case errors.Is(err, users.ErrOwnsProjects):
		Err(w, http.StatusConflict, "professor still owns projects")
	case errors.As(err, &validation):
		JSON(w, http.StatusUnprocessableEntity, ErrorBody{
			Error:  "validation failed",
			Fields: validation.Fields,
		})
	case errors.Is(err, membership.ErrNotStudent):
		Err(w, http.StatusUnprocessableEntity, "target user is not a student")
	case errors.Is(err, users.ErrAuthFailed):
		Err(w, http.StatusUnauthorized, "invalid email or password")
	default:
		logger.Error("request failed", zap.Error(err))
		Err(w, http.StatusInternalServerError, "internal error")
	}
}
