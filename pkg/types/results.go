package types

import (
	"encoding/json"

	"github.com/arthur-debert/liscaf/pkg/errors"
)

// Outcome is the terminal state of one action after merge resolution
type Outcome string

const (
	// OutcomeWritten means nothing existed at the destination
	OutcomeWritten Outcome = "written"
	// OutcomeSkipped means the destination already holds identical content
	// (or the directory already exists)
	OutcomeSkipped Outcome = "skipped"
	// OutcomeConflictText means both versions were combined with inline markers
	OutcomeConflictText Outcome = "conflict-text"
	// OutcomeConflictBinary means the incoming bytes went to a sidecar file
	OutcomeConflictBinary Outcome = "conflict-binary"
	// OutcomeWrittenAside means the destination could not be read and the
	// incoming bytes were written under the sidecar name instead
	OutcomeWrittenAside Outcome = "written-aside"
)

// IsConflict reports whether the outcome left both versions for the user
func (o Outcome) IsConflict() bool {
	return o == OutcomeConflictText || o == OutcomeConflictBinary || o == OutcomeWrittenAside
}

// ConflictRecord describes a conflict left in the destination tree
type ConflictRecord struct {
	Path        string       `json:"path"`
	Class       ContentClass `json:"class"`
	SidecarPath string       `json:"sidecar,omitempty"`
	NotePath    string       `json:"note,omitempty"`
	Reason      string       `json:"reason"`
}

// Warning is a non-fatal, per-file problem surfaced in the final report
type Warning struct {
	Path    string           `json:"path"`
	Code    errors.ErrorCode `json:"code"`
	Message string           `json:"message"`
}

// NewWarning builds a warning from an error, keeping its code when it has one
func NewWarning(path string, err error) Warning {
	code := errors.GetErrorCode(err)
	return Warning{Path: path, Code: code, Message: err.Error()}
}

// Failure is a planned write that could not be committed
type Failure struct {
	Path string `json:"path"`
	Err  error  `json:"-"`
}

// Error implements the error interface so failures can be reported directly
func (f Failure) Error() string {
	if f.Err == nil {
		return f.Path
	}
	return f.Path + ": " + f.Err.Error()
}

// MarshalJSON keeps the error message, which is not itself serializable
func (f Failure) MarshalJSON() ([]byte, error) {
	msg := ""
	if f.Err != nil {
		msg = f.Err.Error()
	}
	return json.Marshal(struct {
		Path  string           `json:"path"`
		Code  errors.ErrorCode `json:"code"`
		Error string           `json:"error"`
	}{f.Path, errors.GetErrorCode(f.Err), msg})
}
