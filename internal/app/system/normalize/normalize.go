// Package normalize centralizes the small string normalizations applied to
// user-supplied identity fields before they touch the database. Keeping
// them in one place means the stores, handlers, and tests all agree on
// what "the same email" means.
package normalize

import "strings"

// Email lowercases and trims an email address. Email uniqueness in the
// users collection is case-insensitive; every read and write goes through
// this function so the unique index on the lowercased value is sufficient.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Name trims surrounding whitespace but preserves case.
func Name(s string) string {
	return strings.TrimSpace(s)
}

// Role lowercases and trims a role string.
func Role(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Department trims a department name, preserving case.
func Department(s string) string {
	return strings.TrimSpace(s)
}

// Technologies splits a comma-separated technology list into trimmed,
// non-empty tags. Order is preserved; the field is tag-like and order is
// not significant to callers.
func Technologies(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
