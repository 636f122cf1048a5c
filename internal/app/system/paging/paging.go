// internal/app/system/paging/paging.go
package paging

import (
	"net/http"
	"strconv"

	"github.com/dalemusser/waffle/pantry/query"
)

// DefaultPerPage is the page size used when the request does not ask
// for one.
const DefaultPerPage = 25

// MaxPerPage caps the page size a client can request.
const MaxPerPage = 100

// Params is a parsed, clamped page request.
type Params struct {
	Page    int // 1-based
	PerPage int
}

// Parse reads the "page" and "per_page" query parameters and clamps
// them to sane values. Invalid or missing values fall back to page 1
// and DefaultPerPage.
func Parse(r *http.Request) Params {
	p := Params{Page: 1, PerPage: DefaultPerPage}

	if s := query.Get(r, "page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.Page = n
		}
	}
	if s := query.Get(r, "per_page"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n >= 1 {
			p.PerPage = n
			if p.PerPage > MaxPerPage {
				p.PerPage = MaxPerPage
			}
		}
	}
	return p
}

// Skip returns the document offset for Mongo Find().SetSkip().
func (p Params) Skip() int64 {
	return int64(p.Page-1) * int64(p.PerPage)
}

// Limit returns the page size for Mongo Find().SetLimit().
func (p Params) Limit() int64 {
	return int64(p.PerPage)
}

// Meta describes a page of a larger result set for JSON responses.
type Meta struct {
	Page       int   `json:"page"`
	PerPage    int   `json:"per_page"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
}

// Meta builds the response metadata for a total row count.
func (p Params) Meta(total int64) Meta {
	pages := int(total) / p.PerPage
	if int(total)%p.PerPage != 0 {
		pages++
	}
	if pages < 1 {
		pages = 1
	}
	return Meta{Page: p.Page, PerPage: p.PerPage, Total: total, TotalPages: pages}
}
