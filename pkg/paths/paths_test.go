package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithOverrides(t *testing.T) {
	tmp := t.TempDir()
	t.Setenv(EnvConfigDir, filepath.Join(tmp, "config"))
	t.Setenv(EnvStateDir, filepath.Join(tmp, "state"))
	t.Setenv(EnvCacheDir, filepath.Join(tmp, "cache"))

	p, err := New()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(tmp, "config"), p.ConfigDir())
	assert.Equal(t, filepath.Join(tmp, "state"), p.StateDir())
	assert.Equal(t, filepath.Join(tmp, "cache"), p.CacheDir())
	assert.Equal(t, filepath.Join(tmp, "config", ConfigFileName), p.ConfigFile())
	assert.Equal(t, filepath.Join(tmp, "config", CatalogFileName), p.CatalogFile())
	assert.Equal(t, filepath.Join(tmp, "state", LogFileName), p.LogFilePath())
}

func TestNewDefaultsEndInAppDir(t *testing.T) {
	t.Setenv(EnvConfigDir, "")
	t.Setenv(EnvStateDir, "")
	t.Setenv(EnvCacheDir, "")

	p, err := New()
	require.NoError(t, err)
	assert.Equal(t, AppDirName, filepath.Base(p.ConfigDir()))
	assert.Equal(t, AppDirName, filepath.Base(p.StateDir()))
	assert.True(t, filepath.IsAbs(p.ConfigDir()))
}

func TestExpandHome(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"~", home},
		{"~/templates", filepath.Join(home, "templates")},
		{"~other/x", "~other/x"},
		{"/abs/path", "/abs/path"},
		{"relative", "relative"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandHome(tt.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	got, err := Normalize("some/dir")
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(got))
	assert.Equal(t, "dir", filepath.Base(got))
}
