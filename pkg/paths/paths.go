package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/liscaf/pkg/errors"
)

// Environment variable names
const (
	// EnvConfigDir overrides the XDG config directory for liscaf
	EnvConfigDir = "LISCAF_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for liscaf
	EnvStateDir = "LISCAF_STATE_DIR"

	// EnvCacheDir overrides the XDG cache directory for liscaf
	EnvCacheDir = "LISCAF_CACHE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names inside the liscaf directories
const (
	// AppDirName is the directory name for liscaf-specific files
	AppDirName = "liscaf"

	// ConfigFileName is the user configuration file
	ConfigFileName = "config.toml"

	// CatalogFileName is the template catalog
	CatalogFileName = "templates.yaml"

	// LogFileName is the name of the log file
	LogFileName = "liscaf.log"
)

// Paths provides the locations liscaf uses outside of a project
type Paths interface {
	ConfigDir() string
	StateDir() string
	CacheDir() string
	ConfigFile() string
	CatalogFile() string
	LogFilePath() string
}

type paths struct {
	xdgConfig string
	xdgState  string
	xdgCache  string
}

// New resolves the liscaf directories, respecting environment overrides
func New() (Paths, error) {
	p := &paths{}

	if dir := os.Getenv(EnvConfigDir); dir != "" {
		p.xdgConfig = ExpandHome(dir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if dir := os.Getenv(EnvStateDir); dir != "" {
		p.xdgState = ExpandHome(dir)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}

	if dir := os.Getenv(EnvCacheDir); dir != "" {
		p.xdgCache = ExpandHome(dir)
	} else {
		p.xdgCache = filepath.Join(xdg.CacheHome, AppDirName)
	}

	for _, dir := range []*string{&p.xdgConfig, &p.xdgState, &p.xdgCache} {
		abs, err := filepath.Abs(*dir)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrConfiguration, "failed to get absolute path for %s", *dir)
		}
		*dir = abs
	}

	return p, nil
}

// ConfigDir returns the XDG config directory for liscaf
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// StateDir returns the XDG state directory for liscaf
func (p *paths) StateDir() string {
	return p.xdgState
}

// CacheDir returns the XDG cache directory for liscaf
func (p *paths) CacheDir() string {
	return p.xdgCache
}

// ConfigFile returns the user configuration file path
func (p *paths) ConfigFile() string {
	return filepath.Join(p.xdgConfig, ConfigFileName)
}

// CatalogFile returns the default template catalog path
func (p *paths) CatalogFile() string {
	return filepath.Join(p.xdgConfig, CatalogFileName)
}

// LogFilePath returns the path to the log file
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// ExpandHome expands a leading ~ to the home directory
func ExpandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		// Fallback to HOME env var
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}

	// Handle both ~/ and ~
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~something (not the user's home)
	return path
}

// Normalize expands ~ and makes path absolute
func Normalize(path string) (string, error) {
	abs, err := filepath.Abs(ExpandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrInvalidInput, "failed to normalize path %s", path)
	}
	return abs, nil
}
