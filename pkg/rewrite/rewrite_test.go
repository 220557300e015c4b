package rewrite

import (
	"bytes"
	"testing"

	"github.com/arthur-debert/liscaf/pkg/casing"
	"github.com/arthur-debert/liscaf/pkg/substitution"
	"github.com/arthur-debert/liscaf/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPlan(t *testing.T) *substitution.Plan {
	t.Helper()
	plan, err := substitution.BuildPlan(casing.DefaultTable(), "acme-app", "my-cool-app")
	require.NoError(t, err)
	return plan
}

func TestClassify(t *testing.T) {
	euro := []byte("€") // 3 bytes

	tests := []struct {
		name    string
		content []byte
		window  int
		want    types.ContentClass
	}{
		{"empty", nil, 0, types.ClassText},
		{"ascii", []byte("hello acme-app\n"), 0, types.ClassText},
		{"utf8", []byte("héllo wörld €"), 0, types.ClassText},
		{"nul byte", []byte("abc\x00def"), 0, types.ClassBinary},
		{"invalid utf8", []byte{0xff, 0xfe, 'a'}, 0, types.ClassBinary},
		{"png header", []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR"), 0, types.ClassBinary},
		{"nul past window", append(bytes.Repeat([]byte("a"), 10), 0), 5, types.ClassText},
		{"rune cut by window", append([]byte("abcd"), euro...), 5, types.ClassText},
		{"rune cut after two bytes", append([]byte("abc"), euro...), 5, types.ClassText},
		{"invalid before window edge", append([]byte{'a', 0xff}, euro...), 4, types.ClassBinary},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.content, tt.window))
		})
	}
}

func TestTextSkipsBinary(t *testing.T) {
	plan := testPlan(t)
	content := []byte("acme-app\x00AcmeApp")

	out, n := Text(content, types.ClassBinary, plan)
	assert.Equal(t, content, out)
	assert.Equal(t, 0, n)

	out, n = Text([]byte("AcmeApp"), types.ClassText, plan)
	assert.Equal(t, "MyCoolApp", string(out))
	assert.Equal(t, 1, n)
}

func TestSegment(t *testing.T) {
	plan := testPlan(t)

	tests := []struct {
		in    string
		want  string
		count int
	}{
		{"acme-app", "my-cool-app", 1},
		{"acme_app.go", "my_cool_app.go", 1},
		{"AcmeApp.swift", "MyCoolApp.swift", 1},
		{"README.md", "README.md", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, n := Segment(tt.in, plan)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.count, n)
		})
	}
}

func TestSegmentNeverSplits(t *testing.T) {
	plan := substitution.NewPlan([]substitution.Rule{
		{Style: casing.Raw, Pattern: "acme", Replacement: "org/acme"},
	})

	got, n := Segment("acme.txt", plan)
	assert.Equal(t, "org-acme.txt", got)
	assert.Equal(t, 1, n)

	plan = substitution.NewPlan([]substitution.Rule{
		{Style: casing.Raw, Pattern: "acme", Replacement: ".."},
	})
	got, n = Segment("acme", plan)
	assert.Equal(t, "acme", got)
	assert.Equal(t, 0, n)
}

func TestPath(t *testing.T) {
	plan := testPlan(t)

	tests := []struct {
		in    string
		want  string
		count int
	}{
		{".", ".", 0},
		{"src/acme_app/main.go", "src/my_cool_app/main.go", 1},
		{"acme-app/acme_app/AcmeApp.go", "my-cool-app/my_cool_app/MyCoolApp.go", 3},
		{"docs/readme.md", "docs/readme.md", 0},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, n := Path(tt.in, plan)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.count, n)
		})
	}
}

func TestPathSegmentsAreIndependent(t *testing.T) {
	// "acme/app" must not be matched across the separator as "acme app".
	plan := substitution.NewPlan([]substitution.Rule{
		{Style: casing.Raw, Pattern: "acme/app", Replacement: "x"},
	})
	got, n := Path("acme/app/file", plan)
	assert.Equal(t, "acme/app/file", got)
	assert.Equal(t, 0, n)
}
