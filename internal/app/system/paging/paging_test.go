package paging

import (
	"net/http/httptest"
	"testing"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name   string
		target string
		want   Params
	}{
		{"defaults", "/admin/users", Params{Page: 1, PerPage: DefaultPerPage}},
		{"explicit", "/admin/users?page=3&per_page=10", Params{Page: 3, PerPage: 10}},
		{"clamped per_page", "/admin/users?per_page=5000", Params{Page: 1, PerPage: MaxPerPage}},
		{"zero page falls back", "/admin/users?page=0", Params{Page: 1, PerPage: DefaultPerPage}},
		{"garbage ignored", "/admin/users?page=abc&per_page=-2", Params{Page: 1, PerPage: DefaultPerPage}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", tc.target, nil)
			got := Parse(r)
			if got != tc.want {
				t.Errorf("Parse() = %+v, want %+v", got, tc.want)
			}
		})
	}
}

func TestSkipLimit(t *testing.T) {
	p := Params{Page: 3, PerPage: 10}
	if p.Skip() != 20 {
		t.Errorf("Skip() = %d, want 20", p.Skip())
	}
	if p.Limit() != 10 {
		t.Errorf("Limit() = %d, want 10", p.Limit())
	}
}

func TestMeta(t *testing.T) {
	p := Params{Page: 2, PerPage: 10}

	m := p.Meta(25)
	if m.TotalPages != 3 || m.Total != 25 {
		t.Errorf("Meta(25) = %+v, want 3 pages of 25", m)
	}

	m = p.Meta(0)
	if m.TotalPages != 1 {
		t.Errorf("Meta(0).TotalPages = %d, want 1", m.TotalPages)
	}
}
