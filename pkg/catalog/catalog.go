// Package catalog maps short template names to their sources.
//
// The catalog is a YAML file:
//
//	templates:
//	  - name: go-cli
//	    source: https://github.com/acme/go-cli-template.git
//	    base_name: acme-app
//	    description: Cobra CLI with zerolog
//
// A reference that is not a catalog name is used as a literal source.
package catalog

import (
	stderrors "errors"
	"io/fs"
	"sort"

	"github.com/arthur-debert/liscaf/pkg/errors"
	"github.com/arthur-debert/liscaf/pkg/logging"
	"github.com/arthur-debert/liscaf/pkg/types"
	"gopkg.in/yaml.v3"
)

// Entry is one catalog template
type Entry struct {
	Name        string `yaml:"name" json:"name"`
	Source      string `yaml:"source" json:"source"`
	BaseName    string `yaml:"base_name,omitempty" json:"base_name,omitempty"`
	Description string `yaml:"description,omitempty" json:"description,omitempty"`
}

// Catalog is the set of known templates
type Catalog struct {
	Templates []Entry `yaml:"templates"`
}

// Resolved is a template reference turned into something fetchable
type Resolved struct {
	Source string
	// BaseName is empty when the catalog does not set one
	BaseName string
	// Entry is set when ref was a catalog name
	Entry *Entry
}

// Parse decodes and validates catalog data
func Parse(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, errors.ErrCatalogLoad, "failed to parse catalog")
	}

	seen := make(map[string]bool)
	for i, e := range c.Templates {
		if e.Name == "" || e.Source == "" {
			return nil, errors.Newf(errors.ErrCatalogEntry, "catalog entry %d needs both name and source", i+1)
		}
		if seen[e.Name] {
			return nil, errors.Newf(errors.ErrCatalogEntry, "duplicate catalog entry %q", e.Name)
		}
		seen[e.Name] = true
	}

	sort.SliceStable(c.Templates, func(i, j int) bool { return c.Templates[i].Name < c.Templates[j].Name })
	return &c, nil
}

// Load reads the catalog at path. A missing file is an empty catalog.
func Load(fsys types.FS, path string) (*Catalog, error) {
	logger := logging.GetLogger("catalog")

	data, err := fsys.ReadFile(path)
	if err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			logger.Debug().Str("path", path).Msg("No catalog file")
			return &Catalog{}, nil
		}
		return nil, errors.Wrapf(err, errors.ErrCatalogLoad, "failed to read catalog %s", path).
			WithDetail("path", path)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("path", path).Int("templates", len(c.Templates)).Msg("Catalog loaded")
	return c, nil
}

// Lookup returns the entry named name
func (c *Catalog) Lookup(name string) (*Entry, bool) {
	for i := range c.Templates {
		if c.Templates[i].Name == name {
			return &c.Templates[i], true
		}
	}
	return nil, false
}

// Names returns the sorted template names
func (c *Catalog) Names() []string {
	names := make([]string, len(c.Templates))
	for i, e := range c.Templates {
		names[i] = e.Name
	}
	return names
}

// Resolve maps a reference to a source. Unknown references pass through
// unchanged.
func (c *Catalog) Resolve(ref string) Resolved {
	if c != nil {
		if e, ok := c.Lookup(ref); ok {
			return Resolved{Source: e.Source, BaseName: e.BaseName, Entry: e}
		}
	}
	return Resolved{Source: ref}
}
