// Package htmlsanitize cleans user-supplied text before it is stored.
//
// Titles, names, and other single-line fields are stripped to plain text.
// Project descriptions may keep basic formatting markup.
package htmlsanitize

import "github.com/microcosm-cc/bluemonday"

var (
	strict = bluemonday.StrictPolicy()
	ugc    = bluemonday.UGCPolicy()
)

// StripTags removes all HTML from s, leaving plain text.
func StripTags(s string) string {
	return strict.Sanitize(s)
}

// Description sanitizes rich description text, keeping formatting markup
// that is safe for user-generated content (paragraphs, emphasis, lists,
// links) and dropping scripts, event handlers, and embedded frames.
func Description(s string) string {
	return ugc.Sanitize(s)
}
