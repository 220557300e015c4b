package casing

import (
	"strings"
	"unicode"

	"github.com/arthur-debert/liscaf/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CaseStyle names a naming convention
type CaseStyle string

const (
	Kebab       CaseStyle = "kebab"        // acme-app
	Snake       CaseStyle = "snake"        // acme_app
	Constant    CaseStyle = "constant"     // ACME_APP
	Pascal      CaseStyle = "pascal"       // AcmeApp
	Camel       CaseStyle = "camel"        // acmeApp
	Title       CaseStyle = "title"        // Acme App
	Spaced      CaseStyle = "spaced"       // acme app
	PascalSnake CaseStyle = "pascal_snake" // Acme_App
	Flat        CaseStyle = "flat"         // acmeapp
	UpperFlat   CaseStyle = "upper_flat"   // ACMEAPP
	Raw         CaseStyle = "raw"          // the name exactly as supplied
)

type joiner func(words []string) string

type styleDef struct {
	style CaseStyle
	join  joiner
}

// Table holds the recognized styles in priority order. The zero value has
// no styles; use DefaultTable.
type Table struct {
	defs []styleDef
}

// DefaultTable returns the standard style table. Raw is always last so the
// literal name never masks a more specific form.
func DefaultTable() Table {
	return Table{defs: []styleDef{
		{Kebab, func(w []string) string { return strings.Join(w, "-") }},
		{Snake, func(w []string) string { return strings.Join(w, "_") }},
		{Constant, func(w []string) string { return strings.Join(upperAll(w), "_") }},
		{Pascal, func(w []string) string { return strings.Join(capitalizeAll(w), "") }},
		{Camel, camel},
		{Title, func(w []string) string { return strings.Join(capitalizeAll(w), " ") }},
		{Spaced, func(w []string) string { return strings.Join(w, " ") }},
		{PascalSnake, func(w []string) string { return strings.Join(capitalizeAll(w), "_") }},
		{Flat, func(w []string) string { return strings.Join(w, "") }},
		{UpperFlat, func(w []string) string { return strings.Join(upperAll(w), "") }},
		{Raw, nil},
	}}
}

// Styles returns the styles in priority order
func (t Table) Styles() []CaseStyle {
	out := make([]CaseStyle, len(t.defs))
	for i, d := range t.defs {
		out[i] = d.style
	}
	return out
}

// Priority returns the position of a style in the table, lower wins.
// Unknown styles sort after every known one.
func (t Table) Priority(s CaseStyle) int {
	for i, d := range t.defs {
		if d.style == s {
			return i
		}
	}
	return len(t.defs)
}

// Variants is the result of deriving every style from one name
type Variants struct {
	Name  string
	Words []string
	forms map[CaseStyle]string
}

// Form returns the literal form for a style
func (v Variants) Form(s CaseStyle) string {
	return v.forms[s]
}

// Degenerate reports whether the name produced no words, in which case
// only the Raw form is meaningful.
func (v Variants) Degenerate() bool {
	return len(v.Words) == 0
}

// Derive decomposes name into words and renders every style of the table.
// An empty name is a configuration error.
func (t Table) Derive(name string) (Variants, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Variants{}, errors.New(errors.ErrConfiguration, "name must not be empty")
	}

	words := Tokenize(trimmed)
	v := Variants{
		Name:  trimmed,
		Words: words,
		forms: make(map[CaseStyle]string, len(t.defs)),
	}
	for _, d := range t.defs {
		switch {
		case d.join == nil:
			v.forms[d.style] = trimmed
		case len(words) == 0:
			v.forms[d.style] = ""
		default:
			v.forms[d.style] = d.join(words)
		}
	}
	return v, nil
}

// Tokenize splits a name into lowercase words. Any rune that is neither a
// letter nor a digit separates words, and so do case boundaries: a lower
// case letter or digit followed by an upper case one, and the last capital
// of an acronym run followed by a lower case letter ("HTTPServer").
func Tokenize(name string) []string {
	var words []string
	var current []rune

	flush := func() {
		if len(current) > 0 {
			words = append(words, strings.ToLower(string(current)))
			current = current[:0]
		}
	}

	runes := []rune(name)
	for i, r := range runes {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			flush()
			continue
		}
		if unicode.IsUpper(r) && len(current) > 0 {
			prev := current[len(current)-1]
			nextLower := i+1 < len(runes) && unicode.IsLower(runes[i+1])
			if unicode.IsLower(prev) || unicode.IsDigit(prev) || (unicode.IsUpper(prev) && nextLower) {
				flush()
			}
		}
		current = append(current, r)
	}
	flush()

	return words
}

func camel(words []string) string {
	if len(words) == 0 {
		return ""
	}
	return words[0] + strings.Join(capitalizeAll(words[1:]), "")
}

func upperAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = strings.ToUpper(w)
	}
	return out
}

func capitalizeAll(words []string) []string {
	// A Caser keeps state between calls, so each derivation gets its own.
	caser := cases.Title(language.Und)
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = caser.String(w)
	}
	return out
}
