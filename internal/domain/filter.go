package domain

import (
	"net/url"
	"strings"
)

// CategoryAll is the filter value that disables category filtering.
const CategoryAll = "all"

type LotFilter struct {
	Search   string
	Category string
}

// Query encodes the filter as lot list query parameters. Empty values and
// the CategoryAll sentinel are left out.
func (f LotFilter) Query() url.Values {
	params := url.Values{}
	if search := strings.TrimSpace(f.Search); search != "" {
		params.Set("q", search)
	}
	if f.Category != "" && f.Category != CategoryAll {
		params.Set("category", f.Category)
	}
	return params
}

// SelectedCategory is the value the category filter select should show.
func (f LotFilter) SelectedCategory() string {
	if f.Category == "" {
		return CategoryAll
	}
	return f.Category
}
