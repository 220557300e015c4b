// Package manifest reads and writes the metadata file recorded at the root
// of every generated project.
package manifest

import (
	"path/filepath"
	"time"

	"github.com/arthur-debert/liscaf/pkg/errors"
	"github.com/arthur-debert/liscaf/pkg/logging"
	"github.com/arthur-debert/liscaf/pkg/types"
	toml "github.com/pelletier/go-toml/v2"
)

const (
	// FileName is the manifest written at the destination root
	FileName = ".liscaf.toml"

	// Generator identifies the tool in every manifest
	Generator = "liscaf"
)

var log = logging.GetLogger("manifest")

// ScaffoldMetadata records where a project came from
type ScaffoldMetadata struct {
	ProjectName      string    `toml:"project_name" json:"project_name"`
	TemplateSource   string    `toml:"template_source" json:"template_source"`
	TemplateBaseName string    `toml:"template_base_name" json:"template_base_name"`
	Generator        string    `toml:"generator" json:"generator"`
	GeneratedAt      time.Time `toml:"generated_at" json:"generated_at"`
}

// New builds the metadata for a run finished at now. The timestamp is
// stored in UTC with second precision.
func New(projectName, templateSource, templateBaseName string, now time.Time) ScaffoldMetadata {
	return ScaffoldMetadata{
		ProjectName:      projectName,
		TemplateSource:   templateSource,
		TemplateBaseName: templateBaseName,
		Generator:        Generator,
		GeneratedAt:      now.UTC().Truncate(time.Second),
	}
}

// Encode renders metadata as TOML
func Encode(meta ScaffoldMetadata) ([]byte, error) {
	data, err := toml.Marshal(meta)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrInternal, "cannot encode manifest")
	}
	return data, nil
}

// Write creates the manifest at root, replacing any previous one. It is
// never merged with an existing file.
func Write(fsys types.FS, root string, meta ScaffoldMetadata) error {
	data, err := Encode(meta)
	if err != nil {
		return err
	}

	target := filepath.Join(root, FileName)
	if err := fsys.WriteFile(target, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrWrite, "cannot write manifest %s", target).
			WithDetail("path", FileName)
	}

	log.Debug().
		Str("path", target).
		Str("project", meta.ProjectName).
		Str("source", meta.TemplateSource).
		Msg("Manifest written")
	return nil
}

// Read loads the manifest at root
func Read(fsys types.FS, root string) (ScaffoldMetadata, error) {
	target := filepath.Join(root, FileName)
	data, err := fsys.ReadFile(target)
	if err != nil {
		return ScaffoldMetadata{}, errors.Wrapf(err, errors.ErrNotFound, "cannot read manifest %s", target)
	}

	var meta ScaffoldMetadata
	if err := toml.Unmarshal(data, &meta); err != nil {
		return ScaffoldMetadata{}, errors.Wrapf(err, errors.ErrConfigParse, "invalid manifest %s", target)
	}
	return meta, nil
}
