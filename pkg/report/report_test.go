package report

import (
	"bytes"
	"encoding/json"
	stderrors "errors"
	"testing"

	"github.com/arthur-debert/liscaf/pkg/casing"
	"github.com/arthur-debert/liscaf/pkg/errors"
	"github.com/arthur-debert/liscaf/pkg/executor"
	"github.com/arthur-debert/liscaf/pkg/merge"
	"github.com/arthur-debert/liscaf/pkg/substitution"
	"github.com/arthur-debert/liscaf/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(t *testing.T) *Report {
	t.Helper()
	plan, err := substitution.BuildPlan(casing.DefaultTable(), "acme-app", "my-cool-app")
	require.NoError(t, err)

	text := types.FileAction{Kind: types.ActionWriteFile, Path: "README.md", Source: "README.md", Class: types.ClassText, Substitutions: 2}
	bin := types.FileAction{Kind: types.ActionRenameOnly, Path: "my-cool-app.png", Source: "acme-app.png", Class: types.ClassBinary}
	dir := types.FileAction{Kind: types.ActionCreateDir, Path: "src", Source: "src"}

	return &Report{
		Template:    "/templates/acme-app",
		Destination: "/work/my-cool-app",
		DryRun:      true,
		Plan:        plan,
		Actions:     []types.FileAction{text, bin, dir},
		Resolutions: []merge.Resolution{
			{Action: text, Outcome: types.OutcomeConflictText, Conflict: &types.ConflictRecord{Path: "README.md", Class: types.ClassText, Reason: "destination and incoming text differ"}},
			{Action: bin, Outcome: types.OutcomeConflictBinary, Conflict: &types.ConflictRecord{
				Path: "my-cool-app.png", Class: types.ClassBinary,
				SidecarPath: "my-cool-app.png" + merge.SidecarSuffix,
				NotePath:    "my-cool-app.png" + merge.NoteSuffix,
				Reason:      "binary",
			}},
			{Action: dir, Outcome: types.OutcomeSkipped},
		},
		Warnings: []types.Warning{{Path: "link", Code: errors.ErrSymlinkSkipped, Message: "symbolic links are not copied"}},
	}
}

func TestSummary(t *testing.T) {
	rep := sampleReport(t)
	s := rep.Summary()
	assert.Equal(t, 3, s.Actions)
	assert.Equal(t, 1, s.ConflictText)
	assert.Equal(t, 1, s.ConflictBinary)
	assert.Equal(t, 1, s.Skipped)
	assert.Equal(t, 2, s.Conflicts())
	assert.Equal(t, 1, s.Warnings)
	assert.True(t, s.DryRun)
	assert.False(t, rep.Failed())

	rep.Commit = &executor.Report{Failures: []types.Failure{{Path: "a", Err: stderrors.New("disk full")}}}
	assert.Equal(t, 1, rep.Summary().Failures)
	assert.True(t, rep.Failed())
}

func TestTextRendering(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatText).Render(sampleReport(t)))
	out := buf.String()

	assert.Contains(t, out, "Substitutions acme-app -> my-cool-app")
	assert.Contains(t, out, "AcmeApp -> MyCoolApp")
	assert.Contains(t, out, "Actions (3)")
	assert.Contains(t, out, "rename acme-app.png -> my-cool-app.png")
	assert.Contains(t, out, "conflict-text")
	assert.Contains(t, out, "incoming: my-cool-app.png.liscaf-incoming")
	assert.Contains(t, out, "[SYMLINK_SKIPPED]")
	assert.Contains(t, out, "Summary: 3 actions, 0 written, 1 skipped, 2 conflicts, 1 warnings, 0 failures (dry run, nothing written)")
	assert.NotContains(t, out, "\x1b[")
}

func TestRenderingIsDeterministic(t *testing.T) {
	for _, format := range []Format{FormatText, FormatJSON} {
		t.Run(format.String(), func(t *testing.T) {
			var first, second bytes.Buffer
			require.NoError(t, NewRenderer(&first, format).Render(sampleReport(t)))
			require.NoError(t, NewRenderer(&second, format).Render(sampleReport(t)))
			assert.Equal(t, first.Bytes(), second.Bytes())
		})
	}
}

func TestJSONRendering(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatJSON).Render(sampleReport(t)))

	var decoded struct {
		Template string `json:"template"`
		DryRun   bool   `json:"dry_run"`
		Plan     struct {
			OldName string `json:"old_name"`
			Rules   []struct {
				Style   string `json:"style"`
				Pattern string `json:"pattern"`
			} `json:"rules"`
		} `json:"plan"`
		Actions     []map[string]interface{} `json:"actions"`
		Resolutions []struct {
			Outcome string `json:"outcome"`
		} `json:"resolutions"`
		Summary Summary `json:"summary"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))

	assert.Equal(t, "/templates/acme-app", decoded.Template)
	assert.True(t, decoded.DryRun)
	assert.Equal(t, "acme-app", decoded.Plan.OldName)
	assert.NotEmpty(t, decoded.Plan.Rules)
	assert.Len(t, decoded.Actions, 3)
	assert.Equal(t, "conflict-text", decoded.Resolutions[0].Outcome)
	assert.Equal(t, 2, decoded.Summary.Conflicts())
	assert.NotContains(t, buf.String(), "Content")
}

func TestRenderError(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, NewRenderer(&buf, FormatJSON).RenderError(stderrors.New("boom")))
	assert.JSONEq(t, `{"error":"boom","code":"UNKNOWN","fatal":true}`, buf.String())

	buf.Reset()
	writeErr := errors.New(errors.ErrWrite, "2 writes failed").WithDetail("failures", 2)
	require.NoError(t, NewRenderer(&buf, FormatJSON).RenderError(writeErr))
	assert.JSONEq(t, `{"error":"[WRITE] 2 writes failed","code":"WRITE","fatal":false,"details":{"failures":2}}`, buf.String())

	buf.Reset()
	require.NoError(t, NewRenderer(&buf, FormatText).RenderError(stderrors.New("boom")))
	assert.Equal(t, "Error: boom\n", buf.String())
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		input   string
		want    Format
		wantErr bool
	}{
		{"", FormatAuto, false},
		{"auto", FormatAuto, false},
		{"terminal", FormatTerminal, false},
		{"TEXT", FormatText, false},
		{"plain", FormatText, false},
		{"json", FormatJSON, false},
		{"xml", FormatAuto, true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFormat(tt.input)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAutoFormatOnBufferIsText(t *testing.T) {
	assert.Equal(t, FormatText, NewRenderer(&bytes.Buffer{}, FormatAuto).Format())
}
