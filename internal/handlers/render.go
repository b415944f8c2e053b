package handlers

import (
	"embed"
	"fmt"
	"html/template"
	"math"
	"net/url"
	"strings"

	"github.com/AbdulKus/jshop-admin/internal/console"
	"github.com/AbdulKus/jshop-admin/internal/domain"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var ruPrinter = message.NewPrinter(language.Russian)

// LoadTemplates parses the embedded console pages for gin's HTML renderer.
func LoadTemplates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(template.FuncMap{
		"price":      formatPrice,
		"pathEscape": url.PathEscape,
	}).ParseFS(templateFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse console templates: %w", err)
	}
	return tmpl, nil
}

// formatPrice renders a price the way the shop shows it: ru-RU digit
// grouping, at most three fraction digits without trailing zeros, rouble sign.
func formatPrice(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return ruPrinter.Sprintf("%d", int64(v)) + " ₽"
	}
	s := ruPrinter.Sprintf("%.3f", v)
	if strings.Contains(s, ",") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ",")
	}
	return s + " ₽"
}

type dashboardCard struct {
	Label string
	Value int
}

type pageView struct {
	console.State

	Cards             []dashboardCard
	LotFormTitle      string
	CategoryFormTitle string
	ContactFormTitle  string
	SelectedCategory  string
	AllCategories     string
}

func newPageView(state console.State) pageView {
	view := pageView{
		State:             state,
		LotFormTitle:      "Новый лот",
		CategoryFormTitle: "Новая категория",
		ContactFormTitle:  "Новый контакт",
		SelectedCategory:  state.Filter.SelectedCategory(),
		AllCategories:     domain.CategoryAll,
	}
	if d := state.Dashboard; d != nil {
		view.Cards = []dashboardCard{
			{Label: "Лоты всего", Value: d.LotsTotal},
			{Label: "Доступно", Value: d.LotsAvailable},
			{Label: "Продано", Value: d.LotsSold},
			{Label: "Категории", Value: d.CategoriesTotal},
			{Label: "Контакты", Value: d.ContactsTotal},
		}
	}
	if state.EditingLotSlug != "" {
		view.LotFormTitle = "Редактирование: " + state.EditingLotSlug
	}
	if state.EditingCategoryCode != "" {
		view.CategoryFormTitle = "Редактирование: " + state.EditingCategoryCode
	}
	if state.EditingContactCode != "" {
		view.ContactFormTitle = "Редактирование: " + state.EditingContactCode
	}
	return view
}

type confirmView struct {
	Title   string
	Message string
	Action  string
}

type duplicateView struct {
	Slug    string
	NewSlug string
	Action  string
}
