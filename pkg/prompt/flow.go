package prompt

import (
	"fmt"

	"github.com/arthur-debert/liscaf/pkg/errors"
)

// Answers are the values a new project needs
type Answers struct {
	Name     string
	Source   string
	BaseName string
}

// Gather fills in missing answers, confirming the ones already known. The
// catalog names, when there are any, are offered as template choices.
func Gather(p Prompter, in Answers, catalog []string) (Answers, error) {
	out := in

	if out.Name == "" {
		name, err := p.Text("New project name", "", true)
		if err != nil {
			return Answers{}, err
		}
		out.Name = name
	} else {
		ok, err := p.Confirm(fmt.Sprintf("Create project %q?", out.Name), true)
		if err != nil {
			return Answers{}, err
		}
		if !ok {
			name, err := p.Text("New project name", out.Name, true)
			if err != nil {
				return Answers{}, err
			}
			out.Name = name
		}
	}

	if out.Source == "" {
		var err error
		if len(catalog) > 0 {
			out.Source, err = p.Select("Template", catalog, "")
		} else {
			out.Source, err = p.Text("Template repository (https URL or local directory)", "", true)
		}
		if err != nil {
			return Answers{}, err
		}
	}

	base, err := p.Text("Template base name", out.BaseName, true)
	if err != nil {
		return Answers{}, err
	}
	out.BaseName = base

	if out.Name == "" || out.Source == "" || out.BaseName == "" {
		return Answers{}, errors.New(errors.ErrConfiguration, "project name, template and base name are required")
	}
	return out, nil
}

// Proceed asks for the final go-ahead
func Proceed(p Prompter, summary string) (bool, error) {
	return p.Confirm(summary+"\nProceed?", true)
}
