package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/arthur-debert/liscaf/pkg/errors"
	"github.com/arthur-debert/liscaf/pkg/merge"
	"github.com/arthur-debert/liscaf/pkg/style"
	"github.com/arthur-debert/liscaf/pkg/types"
)

// Renderer writes reports in one format
type Renderer struct {
	output io.Writer
	format Format
}

// NewRenderer creates a renderer. FormatAuto is resolved against output
// when it is a terminal file, and falls back to plain text otherwise.
func NewRenderer(output io.Writer, format Format) *Renderer {
	if format == FormatAuto {
		format = FormatText
		if f, ok := output.(*os.File); ok {
			format = DetectFormat(f)
		}
	}
	return &Renderer{output: output, format: format}
}

// Format returns the resolved output format
func (r *Renderer) Format() Format {
	return r.format
}

// Render writes the full report
func (r *Renderer) Render(rep *Report) error {
	if r.format == FormatJSON {
		return r.encode(jsonReport{Report: rep, Summary: rep.Summary()})
	}
	style.SetColorEnabled(r.format == FormatTerminal)
	_, err := io.WriteString(r.output, Text(rep))
	return err
}

// RenderError writes the error that ended a command. Fatal errors were
// raised before anything was written.
func (r *Renderer) RenderError(err error) error {
	if r.format == FormatJSON {
		out := map[string]interface{}{
			"error": err.Error(),
			"code":  errors.GetErrorCode(err),
			"fatal": errors.IsFatal(err),
		}
		if details := errors.GetErrorDetails(err); len(details) > 0 {
			out["details"] = details
		}
		return r.encode(out)
	}
	style.SetColorEnabled(r.format == FormatTerminal)
	_, werr := fmt.Fprintln(r.output, style.Render("[error]Error:[/error] ")+err.Error())
	return werr
}

func (r *Renderer) encode(v interface{}) error {
	encoder := json.NewEncoder(r.output)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

type jsonReport struct {
	*Report
	Summary Summary `json:"summary"`
}

// Text renders the report as (possibly styled) text
func Text(rep *Report) string {
	var b strings.Builder

	writePlan(&b, rep)
	writeActions(&b, rep.Actions)
	if len(rep.Resolutions) > 0 {
		writeResolutions(&b, rep.Resolutions)
	}
	writeWarnings(&b, rep)
	if rep.Commit != nil && len(rep.Commit.Failures) > 0 {
		b.WriteString(style.SubtitleStyle.Render("Failures") + "\n")
		for _, f := range rep.Commit.Failures {
			b.WriteString(style.RenderTemplate("  [error]x[/error] {{failure}}\n", map[string]string{"failure": f.Error()}))
		}
		b.WriteString("\n")
	}
	writeSummary(&b, rep.Summary())

	return b.String()
}

func writePlan(b *strings.Builder, rep *Report) {
	plan := rep.Plan
	if plan == nil {
		return
	}

	header := fmt.Sprintf("Substitutions %s -> %s", plan.OldName, plan.NewName)
	b.WriteString(style.SubtitleStyle.Render(header) + "\n")
	if plan.Degraded {
		b.WriteString(style.Render("  [warning]degraded: only the literal name is replaced[/warning]\n"))
	}
	if plan.Empty() {
		b.WriteString(style.Render("  [muted]nothing to replace[/muted]\n"))
	}

	width := 0
	for _, rule := range plan.Rules {
		if len(rule.Style) > width {
			width = len(rule.Style)
		}
	}
	for _, rule := range plan.Rules {
		fmt.Fprintf(b, "  %-*s  %s -> %s\n",
			width, rule.Style,
			style.PatternStyle.Render(rule.Pattern),
			style.ReplacementStyle.Render(rule.Replacement))
	}
	b.WriteString("\n")
}

func writeActions(b *strings.Builder, actions []types.FileAction) {
	b.WriteString(style.SubtitleStyle.Render(fmt.Sprintf("Actions (%d)", len(actions))) + "\n")
	for _, a := range actions {
		b.WriteString("  " + a.Description() + "\n")
	}
	b.WriteString("\n")
}

func writeResolutions(b *strings.Builder, resolutions []merge.Resolution) {
	b.WriteString(style.SubtitleStyle.Render("Merge") + "\n")
	for _, res := range resolutions {
		fmt.Fprintf(b, "  %s %-15s %s\n",
			style.Indicator(res.Outcome),
			style.OutcomeStyle(res.Outcome).Render(string(res.Outcome)),
			res.Action.Path)
	}
	b.WriteString("\n")

	conflicts := merge.Conflicts(resolutions)
	if len(conflicts) == 0 {
		return
	}
	b.WriteString(style.SubtitleStyle.Render("Conflicts") + "\n")
	for _, c := range conflicts {
		vars := map[string]string{
			"path":    c.Path,
			"class":   string(c.Class),
			"reason":  c.Reason,
			"sidecar": c.SidecarPath,
			"note":    c.NotePath,
		}
		b.WriteString(style.RenderTemplate("  [path]{{path}}[/path] ({{class}}): {{reason}}\n", vars))
		if c.SidecarPath != "" {
			b.WriteString(style.RenderTemplate("    incoming: [path]{{sidecar}}[/path]\n", vars))
		}
		if c.NotePath != "" {
			b.WriteString(style.RenderTemplate("    note:     [path]{{note}}[/path]\n", vars))
		}
	}
	b.WriteString("\n")
}

func writeWarnings(b *strings.Builder, rep *Report) {
	warnings := rep.Warnings
	if rep.Commit != nil {
		warnings = append(append([]types.Warning(nil), warnings...), rep.Commit.Warnings...)
	}
	if len(warnings) == 0 {
		return
	}
	b.WriteString(style.SubtitleStyle.Render("Warnings") + "\n")
	for _, w := range warnings {
		b.WriteString(style.RenderTemplate("  [warning]![/warning] {{path}} [{{code}}] {{message}}\n", map[string]string{
			"path":    w.Path,
			"code":    string(w.Code),
			"message": w.Message,
		}))
	}
	b.WriteString("\n")
}

func writeSummary(b *strings.Builder, s Summary) {
	parts := []string{
		fmt.Sprintf("%d actions", s.Actions),
		fmt.Sprintf("%d written", s.Written),
		fmt.Sprintf("%d skipped", s.Skipped),
		fmt.Sprintf("%d conflicts", s.Conflicts()),
		fmt.Sprintf("%d warnings", s.Warnings),
		fmt.Sprintf("%d failures", s.Failures),
	}
	line := "Summary: " + strings.Join(parts, ", ")
	if s.DryRun {
		line += " (dry run, nothing written)"
	}

	lineStyle := style.SuccessStyle
	switch {
	case s.Failures > 0:
		lineStyle = style.ErrorStyle
	case s.Conflicts() > 0 || s.Warnings > 0:
		lineStyle = style.WarningStyle
	}
	b.WriteString(lineStyle.Render(line) + "\n")
}
