package site

import (
	"html"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/heartmarshall/animals-site/internal/domain"
)

// labels maps every displayed snake_case key to its capitalized label.
// Built once: a cases.Caser must not be shared between goroutines.
var labels = buildLabels(append(append([]string{}, domain.TaxonomyKeys...), domain.CharacteristicKeys...))

func buildLabels(keys []string) map[string]string {
	caser := cases.Title(language.English)
	out := make(map[string]string, len(keys))
	for _, k := range keys {
		out[k] = caser.String(strings.ReplaceAll(k, "_", " "))
	}
	return out
}

// Label returns the display label for a snake_case key, e.g. "Scientific Name".
func Label(key string) string {
	if l, ok := labels[key]; ok {
		return l
	}
	return buildLabels([]string{key})[key]
}

// RenderCards renders one card per animal, in input order.
// An empty slice renders a single "doesn't exist" card for query.
// Every dynamic value is HTML-escaped.
func RenderCards(animals []domain.Animal, query string) string {
	if len(animals) == 0 {
		return renderNotFound(query)
	}

	var b strings.Builder
	for _, a := range animals {
		writeCard(&b, a)
	}
	return b.String()
}

// RenderError renders a single error card for a failed lookup of query.
func RenderError(message, query string) string {
	var b strings.Builder
	b.WriteString(`<li class="cards__item cards__item--error">` + "\n")
	b.WriteString(`<h2 class="card__title">Could not load "` + html.EscapeString(query) + `"</h2>` + "\n")
	b.WriteString(`<p class="card__text">` + html.EscapeString(message) + `</p>` + "\n")
	b.WriteString("</li>\n")
	return b.String()
}

func renderNotFound(query string) string {
	return `<li class="cards__item"><h2 class="card__title">The animal "` +
		html.EscapeString(query) +
		`" doesn't exist.</h2></li>` + "\n"
}

func writeCard(b *strings.Builder, a domain.Animal) {
	b.WriteString(`<li class="cards__item">` + "\n")
	b.WriteString(`<h2 class="card__title">` + html.EscapeString(a.DisplayName()) + "</h2>\n")
	b.WriteString(`<div class="card__text">` + "\n")

	b.WriteString(`<p class="card__section"><strong>Taxonomy</strong></p>` + "\n")
	b.WriteString(`<ul class="card__list card__list--taxonomy">` + "\n")
	for _, key := range domain.TaxonomyKeys {
		writeLine(b, Label(key), a.TaxonomyValue(key))
	}
	b.WriteString("</ul>\n")

	b.WriteString(`<p class="card__locations"><strong>Locations:</strong> ` + locations(a) + "</p>\n")

	b.WriteString(`<p class="card__section"><strong>Characteristics</strong></p>` + "\n")
	b.WriteString(`<ul class="card__list card__list--characteristics">` + "\n")
	written := 0
	for _, key := range domain.CharacteristicKeys {
		v, ok := a.Characteristic(key)
		if !ok {
			continue
		}
		if v == "" {
			v = domain.FallbackValue
		}
		writeLine(b, Label(key), v)
		written++
	}
	if written == 0 {
		b.WriteString("<li>" + domain.FallbackValue + "</li>\n")
	}
	b.WriteString("</ul>\n")

	b.WriteString("</div>\n")
	b.WriteString("</li>\n")
}

func writeLine(b *strings.Builder, label, value string) {
	b.WriteString("<li><strong>" + html.EscapeString(label) + ":</strong> " + html.EscapeString(value) + "</li>\n")
}

// locations escapes each location and joins them; "n/a" when there are none.
func locations(a domain.Animal) string {
	if !a.HasLocations() {
		return domain.FallbackValue
	}
	escaped := make([]string, len(a.Locations))
	for i, l := range a.Locations {
		escaped[i] = html.EscapeString(l)
	}
	return strings.Join(escaped, ", ")
}
