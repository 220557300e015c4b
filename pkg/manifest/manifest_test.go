package manifest

import (
	"strings"
	"testing"
	"time"

	"github.com/arthur-debert/liscaf/pkg/errors"
	"github.com/arthur-debert/liscaf/pkg/filesystem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewNormalizesTimestamp(t *testing.T) {
	zone := time.FixedZone("CEST", 2*60*60)
	now := time.Date(2026, 10, 19, 14, 30, 15, 999, zone)

	meta := New("my-cool-app", "https://example.com/acme-app.git", "acme-app", now)
	assert.Equal(t, Generator, meta.Generator)
	assert.Equal(t, time.UTC, meta.GeneratedAt.Location())
	assert.Equal(t, time.Date(2026, 10, 19, 12, 30, 15, 0, time.UTC), meta.GeneratedAt)
}

func TestEncodeIsUTC(t *testing.T) {
	meta := New("my-cool-app", "./templates/acme", "acme-app", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC))

	data, err := Encode(meta)
	require.NoError(t, err)

	text := string(data)
	assert.Contains(t, text, "project_name = ")
	assert.Contains(t, text, "my-cool-app")
	assert.Contains(t, text, "generator = ")
	assert.Contains(t, text, "generated_at = 2026-01-02T03:04:05Z")
	assert.False(t, strings.Contains(text, "+00:00"))
}

func TestWriteAndRead(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/dest", 0755))

	meta := New("my-cool-app", "https://example.com/acme-app.git", "acme-app", time.Now())
	require.NoError(t, Write(fsys, "/dest", meta))

	got, err := Read(fsys, "/dest")
	require.NoError(t, err)
	assert.Equal(t, meta, got)

	// A second write replaces the file
	meta.ProjectName = "other"
	require.NoError(t, Write(fsys, "/dest", meta))
	got, err = Read(fsys, "/dest")
	require.NoError(t, err)
	assert.Equal(t, "other", got.ProjectName)
}

func TestReadMissing(t *testing.T) {
	_, err := Read(filesystem.NewMemory(), "/nowhere")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNotFound))
}

func TestReadInvalid(t *testing.T) {
	fsys := filesystem.NewMemory()
	require.NoError(t, fsys.MkdirAll("/dest", 0755))
	require.NoError(t, fsys.WriteFile("/dest/"+FileName, []byte("not = [valid"), 0644))

	_, err := Read(fsys, "/dest")
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}
