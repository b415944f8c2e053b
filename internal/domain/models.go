package domain

import "encoding/json"

type Lot struct {
	Slug             string   `json:"slug"`
	Name             string   `json:"name"`
	CategoryCode     string   `json:"category_code"`
	CategoryLabel    string   `json:"category_label"` // filled in by the API from the category
	Price            float64  `json:"price"`
	Description      string   `json:"description"`
	Specs            []string `json:"specs"`
	Images           []string `json:"images"`
	Featured         bool     `json:"featured"`
	Sold             bool     `json:"sold"`
	GlitchBackground string   `json:"glitch_background"`
	SortOrder        int      `json:"sort_order"`
}

// LotPayload is the body of lot create and update calls.
type LotPayload struct {
	Slug             string   `json:"slug"`
	Name             string   `json:"name"`
	CategoryCode     string   `json:"category_code"`
	Price            float64  `json:"price"`
	Description      string   `json:"description"`
	Specs            []string `json:"specs"`
	Images           []string `json:"images"`
	Featured         bool     `json:"featured"`
	Sold             bool     `json:"sold"`
	GlitchBackground string   `json:"glitch_background"`
	SortOrder        float64  `json:"sort_order"`
}

type Category struct {
	Code      string `json:"code"`
	Label     string `json:"label"`
	SortOrder int    `json:"sort_order"`
}

type CategoryCreate struct {
	Code      string  `json:"code"`
	Label     string  `json:"label"`
	SortOrder float64 `json:"sort_order"`
}

// CategoryUpdate omits the code: category codes never change after creation.
type CategoryUpdate struct {
	Label     string  `json:"label"`
	SortOrder float64 `json:"sort_order"`
}

type Contact struct {
	Code            string `json:"code"`
	Label           string `json:"label"`
	Hint            string `json:"hint"`
	URLTemplate     string `json:"url_template"`
	SubjectTemplate string `json:"subject_template"`
	BodyTemplate    string `json:"body_template"`
	IsExternal      bool   `json:"is_external"`
	IconSVG         string `json:"icon_svg"`
	SortOrder       int    `json:"sort_order"`
}

type ContactPayload struct {
	Code            string  `json:"code"`
	Label           string  `json:"label"`
	Hint            string  `json:"hint"`
	URLTemplate     string  `json:"url_template"`
	SubjectTemplate string  `json:"subject_template"`
	BodyTemplate    string  `json:"body_template"`
	IsExternal      bool    `json:"is_external"`
	IconSVG         string  `json:"icon_svg"`
	SortOrder       float64 `json:"sort_order"`
}

type Dashboard struct {
	LotsTotal       int `json:"lots_total"`
	LotsAvailable   int `json:"lots_available"`
	LotsSold        int `json:"lots_sold"`
	CategoriesTotal int `json:"categories_total"`
	ContactsTotal   int `json:"contacts_total"`
}

type DuplicateRequest struct {
	NewSlug string `json:"new_slug"`
}

type BulkRequest struct {
	Items []any `json:"items"`
}

// BulkResult keeps both lists raw: only their lengths are reported.
type BulkResult struct {
	Created json.RawMessage `json:"created"`
	Errors  json.RawMessage `json:"errors"`
}

func (r *BulkResult) CreatedCount() int {
	if r == nil {
		return 0
	}
	return rawListLen(r.Created)
}

func (r *BulkResult) ErrorCount() int {
	if r == nil {
		return 0
	}
	return rawListLen(r.Errors)
}

// rawListLen returns the length of a JSON array, or 0 for anything else.
func rawListLen(raw json.RawMessage) int {
	if len(raw) == 0 {
		return 0
	}
	var list []json.RawMessage
	if err := json.Unmarshal(raw, &list); err != nil {
		return 0
	}
	return len(list)
}
