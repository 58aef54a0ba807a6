package web

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

//go:embed templates/*.gohtml
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// StaticHandler serves the embedded stylesheet and scripts under /static/.
func StaticHandler() http.Handler {
	return http.FileServer(http.FS(staticFS))
}

// nbsp separates thousands in displayed prices.
const nbsp = " "

// parseTemplates loads the full template set with the display helpers.
func parseTemplates() (*template.Template, error) {
	tmpl := template.New("").Funcs(template.FuncMap{
		"priceFormat": priceFormat,
		"addedLabel":  addedLabel,
	})
	tmpl, err := tmpl.ParseFS(templateFS, "templates/*.gohtml")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

// priceFormat renders the integer part of a price with non-breaking spaces
// between thousands groups, e.g. 1234567.80 -> "1 234 567".
func priceFormat(price decimal.Decimal) string {
	digits := price.IntPart()
	s := fmt.Sprintf("%d", digits)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var groups []string
	for len(s) > 3 {
		groups = append([]string{s[len(s)-3:]}, groups...)
		s = s[:len(s)-3]
	}
	groups = append([]string{s}, groups...)

	formatted := strings.Join(groups, nbsp)
	if negative {
		formatted = "-" + formatted
	}
	return formatted
}

// addedLabel renders a creation timestamp as "Bugun" (today), "Kecha"
// (yesterday) or a dd.mm.YYYY date.
func addedLabel(createdAt time.Time) string {
	if createdAt.IsZero() {
		return ""
	}

	now := time.Now()
	created := createdAt.Local()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	day := time.Date(created.Year(), created.Month(), created.Day(), 0, 0, 0, 0, now.Location())

	switch {
	case day.Equal(today):
		return "Bugun"
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Kecha"
	default:
		return created.Format("02.01.2006")
	}
}
