package types

import (
	"fmt"
	"io/fs"
)

// ActionKind defines the kind of planned filesystem action
type ActionKind string

const (
	// ActionCreateDir creates a directory
	ActionCreateDir ActionKind = "create_dir"

	// ActionWriteFile writes (possibly rewritten) content to a file
	ActionWriteFile ActionKind = "write_file"

	// ActionRenameOnly moves a file whose content is untouched to a new path
	ActionRenameOnly ActionKind = "rename_only"
)

// ContentClass is the text/binary classification of a file. It is decided
// once per file and carried on the action so that every later stage agrees.
type ContentClass string

const (
	ClassText   ContentClass = "text"
	ClassBinary ContentClass = "binary"
)

// FileAction is one planned action produced by the walker. Paths are
// relative and slash separated: Path is the destination path after
// rewriting, Source is the path in the template tree.
type FileAction struct {
	Kind ActionKind `json:"kind"`

	Path   string `json:"path"`
	Source string `json:"source"`

	// Content is the bytes to place at Path. It is set for both WriteFile
	// and RenameOnly so the merge engine can compare against a destination.
	Content []byte       `json:"-"`
	Class   ContentClass `json:"class,omitempty"`
	Mode    fs.FileMode  `json:"mode"`

	// Substitutions is the number of rule matches applied to the content
	Substitutions int `json:"substitutions"`
}

// IsDir reports whether the action creates a directory
func (a FileAction) IsDir() bool {
	return a.Kind == ActionCreateDir
}

// Renamed reports whether the destination path differs from the source path
func (a FileAction) Renamed() bool {
	return a.Kind != ActionCreateDir && a.Source != "" && a.Source != a.Path
}

// Description returns a one-line human readable description
func (a FileAction) Description() string {
	switch a.Kind {
	case ActionCreateDir:
		if a.Source != "" && a.Source != a.Path {
			return fmt.Sprintf("create directory %s (from %s)", a.Path, a.Source)
		}
		return fmt.Sprintf("create directory %s", a.Path)
	case ActionRenameOnly:
		return fmt.Sprintf("rename %s -> %s", a.Source, a.Path)
	default:
		if a.Renamed() {
			return fmt.Sprintf("write %s (from %s, %d substitutions)", a.Path, a.Source, a.Substitutions)
		}
		return fmt.Sprintf("write %s (%d substitutions)", a.Path, a.Substitutions)
	}
}
