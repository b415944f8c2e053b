// Package forms turns submitted console forms into API payloads and back.
package forms

import (
	"math"
	"strconv"
	"strings"

	"github.com/AbdulKus/jshop-admin/internal/domain"
)

const checkboxOn = "on"

// ParseLines splits a textarea into trimmed, non-empty lines.
func ParseLines(raw string) []string {
	lines := []string{}
	for _, line := range strings.Split(raw, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

// Number parses a numeric field. Empty, unparseable and non-finite input
// (NaN, Inf) yield 0.
func Number(raw string) float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

func Checkbox(raw string) bool {
	return raw == checkboxOn
}

func checkbox(v bool) string {
	if v {
		return checkboxOn
	}
	return ""
}

type LotForm struct {
	Slug             string `form:"slug"`
	Name             string `form:"name"`
	CategoryCode     string `form:"category_code"`
	Price            string `form:"price"`
	Description      string `form:"description"`
	Specs            string `form:"specs"`
	Images           string `form:"images"`
	Featured         string `form:"featured"`
	Sold             string `form:"sold"`
	GlitchBackground string `form:"glitch_background"`
	SortOrder        string `form:"sort_order"`
}

func NewLotForm() LotForm {
	return LotForm{SortOrder: "0"}
}

func LotFormFrom(lot domain.Lot) LotForm {
	return LotForm{
		Slug:             lot.Slug,
		Name:             lot.Name,
		CategoryCode:     lot.CategoryCode,
		Price:            strconv.FormatFloat(lot.Price, 'f', -1, 64),
		Description:      lot.Description,
		Specs:            strings.Join(lot.Specs, "\n"),
		Images:           strings.Join(lot.Images, "\n"),
		Featured:         checkbox(lot.Featured),
		Sold:             checkbox(lot.Sold),
		GlitchBackground: lot.GlitchBackground,
		SortOrder:        strconv.Itoa(lot.SortOrder),
	}
}

func (f LotForm) Payload() domain.LotPayload {
	return domain.LotPayload{
		Slug:             strings.TrimSpace(f.Slug),
		Name:             strings.TrimSpace(f.Name),
		CategoryCode:     strings.TrimSpace(f.CategoryCode),
		Price:            Number(f.Price),
		Description:      f.Description,
		Specs:            ParseLines(f.Specs),
		Images:           ParseLines(f.Images),
		Featured:         Checkbox(f.Featured),
		Sold:             Checkbox(f.Sold),
		GlitchBackground: strings.TrimSpace(f.GlitchBackground),
		SortOrder:        Number(f.SortOrder),
	}
}

type CategoryForm struct {
	Code      string `form:"code"`
	Label     string `form:"label"`
	SortOrder string `form:"sort_order"`
}

func NewCategoryForm() CategoryForm {
	return CategoryForm{SortOrder: "0"}
}

func CategoryFormFrom(category domain.Category) CategoryForm {
	return CategoryForm{
		Code:      category.Code,
		Label:     category.Label,
		SortOrder: strconv.Itoa(category.SortOrder),
	}
}

func (f CategoryForm) CreatePayload() domain.CategoryCreate {
	return domain.CategoryCreate{
		Code:      strings.TrimSpace(f.Code),
		Label:     strings.TrimSpace(f.Label),
		SortOrder: Number(f.SortOrder),
	}
}

func (f CategoryForm) UpdatePayload() domain.CategoryUpdate {
	return domain.CategoryUpdate{
		Label:     strings.TrimSpace(f.Label),
		SortOrder: Number(f.SortOrder),
	}
}

type ContactForm struct {
	Code            string `form:"code"`
	Label           string `form:"label"`
	Hint            string `form:"hint"`
	URLTemplate     string `form:"url_template"`
	SubjectTemplate string `form:"subject_template"`
	BodyTemplate    string `form:"body_template"`
	IsExternal      string `form:"is_external"`
	IconSVG         string `form:"icon_svg"`
	SortOrder       string `form:"sort_order"`
}

// NewContactForm starts with the external flag set.
func NewContactForm() ContactForm {
	return ContactForm{SortOrder: "0", IsExternal: checkboxOn}
}

func ContactFormFrom(contact domain.Contact) ContactForm {
	return ContactForm{
		Code:            contact.Code,
		Label:           contact.Label,
		Hint:            contact.Hint,
		URLTemplate:     contact.URLTemplate,
		SubjectTemplate: contact.SubjectTemplate,
		BodyTemplate:    contact.BodyTemplate,
		IsExternal:      checkbox(contact.IsExternal),
		IconSVG:         contact.IconSVG,
		SortOrder:       strconv.Itoa(contact.SortOrder),
	}
}

func (f ContactForm) Payload() domain.ContactPayload {
	return domain.ContactPayload{
		Code:            strings.TrimSpace(f.Code),
		Label:           strings.TrimSpace(f.Label),
		Hint:            strings.TrimSpace(f.Hint),
		URLTemplate:     strings.TrimSpace(f.URLTemplate),
		SubjectTemplate: f.SubjectTemplate,
		BodyTemplate:    f.BodyTemplate,
		IsExternal:      Checkbox(f.IsExternal),
		IconSVG:         f.IconSVG,
		SortOrder:       Number(f.SortOrder),
	}
}

// BulkForm carries the raw JSON of a bulk lot upload.
type BulkForm struct {
	JSON string `form:"bulk_json"`
}

// DuplicateForm is the answer to the "new slug" prompt.
type DuplicateForm struct {
	NewSlug string `form:"new_slug"`
}

// ConfirmForm must carry confirm=yes for a deletion to go through.
type ConfirmForm struct {
	Confirm string `form:"confirm" binding:"required,eq=yes"`
}

type ConnectForm struct {
	APIBase string `form:"api_base"`
}

type LotFilterForm struct {
	Search   string `form:"q"`
	Category string `form:"category"`
	Action   string `form:"action"`
}
