package config

import (
	"github.com/arthur-debert/liscaf/pkg/errors"
)

// Config is the complete liscaf configuration
type Config struct {
	Template Template `koanf:"template"`
	Walk     Walk     `koanf:"walk"`
	Git      Git      `koanf:"git"`
	Output   Output   `koanf:"output"`
}

// Template holds template defaults
type Template struct {
	BaseName string `koanf:"base_name"`
	Catalog  string `koanf:"catalog"`
}

// Walk tunes the template walk
type Walk struct {
	Ignore       []string `koanf:"ignore"`
	BinaryWindow int      `koanf:"binary_window"`
}

// Git configures the version control steps
type Git struct {
	CloneDepth    int    `koanf:"clone_depth"`
	Init          bool   `koanf:"init"`
	CommitMessage string `koanf:"commit_message"`
}

// Output configures terminal output
type Output struct {
	Color bool `koanf:"color"`
}

// Validate checks values that would otherwise fail late in a run
func (c *Config) Validate() error {
	switch {
	case c.Template.BaseName == "":
		return errors.New(errors.ErrConfiguration, "template.base_name must not be empty")
	case c.Walk.BinaryWindow <= 0:
		return errors.Newf(errors.ErrConfiguration, "walk.binary_window must be positive, got %d", c.Walk.BinaryWindow)
	case c.Git.CloneDepth < 0:
		return errors.Newf(errors.ErrConfiguration, "git.clone_depth must not be negative, got %d", c.Git.CloneDepth)
	}
	return nil
}
