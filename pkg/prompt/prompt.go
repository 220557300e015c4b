// Package prompt asks the user for the values a run needs when they were
// not given on the command line.
//
// Prompts are drawn with pterm. When prompting is disabled (--yes, or
// stdin is not a terminal) every question resolves to its default, and a
// question without a usable default is an error.
package prompt

import (
	"os"
	"strings"

	"github.com/arthur-debert/liscaf/pkg/errors"
	"github.com/mattn/go-isatty"
	"github.com/pterm/pterm"
)

// Prompter asks questions
type Prompter interface {
	Confirm(message string, def bool) (bool, error)
	Text(message, def string, required bool) (string, error)
	Select(message string, options []string, def string) (string, error)
}

// Config configures a Terminal prompter
type Config struct {
	DisableColor bool
	// DisableInteractive answers every prompt with its default
	DisableInteractive bool
}

// Terminal prompts on the controlling terminal with pterm
type Terminal struct {
	disableInteractive bool
}

// New creates a terminal prompter
func New(cfg Config) *Terminal {
	if cfg.DisableColor {
		pterm.DisableColor()
	}
	return &Terminal{disableInteractive: cfg.DisableInteractive}
}

// Interactive reports whether the prompter will actually ask
func (t *Terminal) Interactive() bool {
	return !t.disableInteractive
}

// IsTerminal reports whether f is attached to a terminal
func IsTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Confirm asks a yes/no question
func (t *Terminal) Confirm(message string, def bool) (bool, error) {
	if t.disableInteractive {
		return def, nil
	}

	result, err := pterm.DefaultInteractiveConfirm.
		WithDefaultValue(def).
		Show(message)
	if err != nil {
		return false, errors.Wrap(err, errors.ErrInvalidInput, "failed to read confirmation")
	}
	return result, nil
}

// Text asks for a line of text. An empty answer selects def; a required
// question is asked again until it gets a non-empty answer.
func (t *Terminal) Text(message, def string, required bool) (string, error) {
	if t.disableInteractive {
		if def == "" && required {
			return "", errors.Newf(errors.ErrConfiguration, "%s: no value given and prompts are disabled", message)
		}
		return def, nil
	}

	for {
		label := message
		if def != "" {
			label = message + " (default: " + def + ")"
		}

		result, err := pterm.DefaultInteractiveTextInput.
			WithMultiLine(false).
			Show(label)
		if err != nil {
			return "", errors.Wrap(err, errors.ErrInvalidInput, "failed to read input")
		}

		result = strings.TrimSpace(result)
		if result == "" {
			result = def
		}
		if result == "" && required {
			pterm.Error.Println("This field is required")
			continue
		}
		return result, nil
	}
}

// Select asks to pick one of options
func (t *Terminal) Select(message string, options []string, def string) (string, error) {
	if len(options) == 0 {
		return "", errors.New(errors.ErrInvalidInput, "options list cannot be empty")
	}
	if t.disableInteractive {
		if def != "" {
			return def, nil
		}
		return options[0], nil
	}

	selector := pterm.DefaultInteractiveSelect.WithOptions(options)
	if def != "" {
		selector = selector.WithDefaultOption(def)
	}
	result, err := selector.Show(message)
	if err != nil {
		return "", errors.Wrap(err, errors.ErrInvalidInput, "failed to read selection")
	}
	return result, nil
}
