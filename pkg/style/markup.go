package style

import (
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Markup renders [tag]text[/tag] spans with the style registered for the
// tag. Unknown tags and openings without a matching close are copied as
// they are. Spans may nest.
type Markup struct {
	styles map[string]lipgloss.Style
}

// NewMarkup returns a renderer knowing the outcome tags and a few text
// styles used in reports
func NewMarkup() *Markup {
	return &Markup{
		styles: map[string]lipgloss.Style{
			"bold":     lipgloss.NewStyle().Bold(true),
			"muted":    MutedStyle,
			"path":     PathStyle,
			"success":  SuccessStyle,
			"warning":  WarningStyle,
			"error":    ErrorStyle,
			"written":  WrittenStyle,
			"skipped":  SkippedStyle,
			"conflict": ConflictStyle,
			"aside":    AsideStyle,
		},
	}
}

// Render replaces every known span with its styled text
func (m *Markup) Render(text string) string {
	var b strings.Builder
	for {
		start, tag := m.nextOpening(text)
		if start < 0 {
			b.WriteString(text)
			return b.String()
		}

		open := "[" + tag + "]"
		body := start + len(open)
		end := strings.Index(text[body:], "[/"+tag+"]")
		if end < 0 {
			b.WriteString(text[:body])
			text = text[body:]
			continue
		}

		b.WriteString(text[:start])
		b.WriteString(m.styles[tag].Render(m.Render(text[body : body+end])))
		text = text[body+end+len(tag)+3:]
	}
}

// RenderTemplate renders the markup of template, then fills {{key}}
// placeholders. Values are inserted after rendering so tag-like text in a
// value (a file name, say) is never interpreted.
func (m *Markup) RenderTemplate(template string, vars map[string]string) string {
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	pairs := make([]string, 0, 2*len(keys))
	for _, key := range keys {
		pairs = append(pairs, "{{"+key+"}}", vars[key])
	}
	return strings.NewReplacer(pairs...).Replace(m.Render(template))
}

func (m *Markup) nextOpening(text string) (int, string) {
	for i := 0; i < len(text); i++ {
		if text[i] != '[' {
			continue
		}
		end := strings.IndexByte(text[i+1:], ']')
		if end < 0 {
			return -1, ""
		}
		tag := text[i+1 : i+1+end]
		if _, ok := m.styles[tag]; ok {
			return i, tag
		}
	}
	return -1, ""
}

var defaultMarkup = NewMarkup()

// Render renders markup with the default tags
func Render(text string) string {
	return defaultMarkup.Render(text)
}

// RenderTemplate renders a template with the default tags
func RenderTemplate(template string, vars map[string]string) string {
	return defaultMarkup.RenderTemplate(template, vars)
}
