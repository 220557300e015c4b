package merge

import (
	"bytes"
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/liscaf/pkg/errors"
	"github.com/arthur-debert/liscaf/pkg/logging"
	"github.com/arthur-debert/liscaf/pkg/rewrite"
	"github.com/arthur-debert/liscaf/pkg/types"
	"github.com/rs/zerolog"
)

const (
	// SidecarSuffix is appended to a path to hold the incoming version of
	// a binary conflict
	SidecarSuffix = ".liscaf-incoming"

	// NoteSuffix is appended to a path to hold the explanation of a binary
	// conflict
	NoteSuffix = ".liscaf-conflict.txt"

	MarkerDestination = "<<<<<<< destination"
	MarkerSeparator   = "======="
	MarkerIncoming    = ">>>>>>> incoming"
)

// WriteOp is a primitive the executor knows how to perform
type WriteOp string

const (
	OpMkdir WriteOp = "mkdir"
	OpWrite WriteOp = "write"
)

// Write is one concrete filesystem change, relative to the destination root
type Write struct {
	Op      WriteOp     `json:"op"`
	Path    string      `json:"path"`
	Content []byte      `json:"-"`
	Mode    fs.FileMode `json:"mode"`
}

// Resolution is the merge decision for one action
type Resolution struct {
	Action   types.FileAction      `json:"action"`
	Outcome  types.Outcome         `json:"outcome"`
	Conflict *types.ConflictRecord `json:"conflict,omitempty"`
	Writes   []Write               `json:"writes"`
}

// Options tune the engine
type Options struct {
	// BinaryWindow is used to classify destination contents. Zero selects
	// rewrite.DefaultWindow.
	BinaryWindow int
}

// Engine resolves actions against a destination
type Engine struct {
	fs     types.FS
	opts   Options
	logger zerolog.Logger
}

// New creates a merge engine reading the destination through fsys
func New(fsys types.FS, opts Options) *Engine {
	return &Engine{
		fs:     fsys,
		opts:   opts,
		logger: logging.GetLogger("merge"),
	}
}

// Resolve decides the outcome of every action against destRoot, keeping
// the action order. Unreadable destination files produce warnings and
// never abort; only a cancelled context does.
func (e *Engine) Resolve(ctx context.Context, destRoot string, actions []types.FileAction) ([]Resolution, []types.Warning, error) {
	done := logging.LogOperationStart(e.logger, "merge")
	defer done()

	exists := true
	if _, err := e.fs.Stat(destRoot); err != nil {
		exists = false
		e.logger.Debug().Str("dest", destRoot).Msg("Destination does not exist, every action is written")
	}

	resolutions := make([]Resolution, 0, len(actions))
	var warnings []types.Warning
	for _, action := range actions {
		if err := ctx.Err(); err != nil {
			return nil, nil, errors.Wrap(err, errors.ErrCancelled, "merge cancelled")
		}

		if !exists {
			resolutions = append(resolutions, written(action))
			continue
		}

		res, warning := e.resolveOne(destRoot, action)
		if warning != nil {
			warnings = append(warnings, *warning)
		}
		resolutions = append(resolutions, res)

		e.logger.Trace().
			Str("path", action.Path).
			Str("outcome", string(res.Outcome)).
			Msg("Resolved")
	}

	e.logger.Info().
		Str("dest", destRoot).
		Int("actions", len(actions)).
		Int("conflicts", len(Conflicts(resolutions))).
		Int("warnings", len(warnings)).
		Msg("Merge resolved")

	return resolutions, warnings, nil
}

func (e *Engine) resolveOne(destRoot string, action types.FileAction) (Resolution, *types.Warning) {
	target := filepath.Join(destRoot, filepath.FromSlash(action.Path))

	if action.IsDir() {
		info, err := e.fs.Stat(target)
		if err == nil && info.IsDir() {
			return Resolution{Action: action, Outcome: types.OutcomeSkipped}, nil
		}
		return written(action), nil
	}

	if _, err := e.fs.Lstat(target); err != nil {
		if stderrors.Is(err, fs.ErrNotExist) {
			return written(action), nil
		}
		return e.writtenAside(action, err)
	}

	current, err := e.fs.ReadFile(target)
	if err != nil {
		return e.writtenAside(action, err)
	}

	if bytes.Equal(current, action.Content) {
		return Resolution{Action: action, Outcome: types.OutcomeSkipped}, nil
	}

	destClass := rewrite.Classify(current, e.opts.BinaryWindow)
	if action.Class == types.ClassText && destClass == types.ClassText && Unresolved(current) {
		return e.stillConflicted(action, current), nil
	}
	if action.Class == types.ClassText && destClass == types.ClassText {
		return Resolution{
			Action:  action,
			Outcome: types.OutcomeConflictText,
			Conflict: &types.ConflictRecord{
				Path:   action.Path,
				Class:  types.ClassText,
				Reason: "destination and incoming text differ",
			},
			Writes: []Write{{
				Op:      OpWrite,
				Path:    action.Path,
				Content: Markers(current, action.Content),
				Mode:    action.Mode,
			}},
		}, nil
	}

	sidecar := action.Path + SidecarSuffix
	note := action.Path + NoteSuffix
	return Resolution{
		Action:  action,
		Outcome: types.OutcomeConflictBinary,
		Conflict: &types.ConflictRecord{
			Path:        action.Path,
			Class:       types.ClassBinary,
			SidecarPath: sidecar,
			NotePath:    note,
			Reason:      "destination and incoming differ and one of them is binary",
		},
		Writes: []Write{
			{Op: OpWrite, Path: sidecar, Content: action.Content, Mode: action.Mode},
			{Op: OpWrite, Path: note, Content: Note(action.Path, sidecar), Mode: 0644},
		},
	}, nil
}

// stillConflicted handles a destination holding the markers of an earlier
// run. The file is never wrapped again: when the incoming side is the one
// already recorded nothing is written, otherwise the new incoming version
// goes to the sidecar name.
func (e *Engine) stillConflicted(action types.FileAction, current []byte) Resolution {
	res := Resolution{
		Action:  action,
		Outcome: types.OutcomeConflictText,
		Conflict: &types.ConflictRecord{
			Path:   action.Path,
			Class:  types.ClassText,
			Reason: "destination has an unresolved conflict from an earlier run",
		},
	}

	recorded := bytes.HasPrefix(current, []byte(MarkerDestination+"\n")) &&
		bytes.HasSuffix(current, incomingSide(action.Content))
	if recorded {
		e.logger.Debug().Str("path", action.Path).Msg("Conflict already recorded, leaving destination alone")
		return res
	}

	sidecar := action.Path + SidecarSuffix
	res.Conflict.SidecarPath = sidecar
	res.Conflict.Reason = "destination has an unresolved conflict and the incoming file changed"
	res.Writes = []Write{{Op: OpWrite, Path: sidecar, Content: action.Content, Mode: action.Mode}}
	return res
}

// writtenAside handles a destination that exists but cannot be read. The
// destination is left alone and the incoming bytes take the sidecar name.
func (e *Engine) writtenAside(action types.FileAction, cause error) (Resolution, *types.Warning) {
	err := errors.Wrapf(cause, errors.ErrDestinationRead, "cannot read destination %s", action.Path).
		WithDetail("path", action.Path)
	e.logger.Warn().Err(cause).Str("path", action.Path).Msg("Destination unreadable, writing incoming file aside")

	sidecar := action.Path + SidecarSuffix
	warning := types.NewWarning(action.Path, err)
	return Resolution{
		Action:  action,
		Outcome: types.OutcomeWrittenAside,
		Conflict: &types.ConflictRecord{
			Path:        action.Path,
			Class:       action.Class,
			SidecarPath: sidecar,
			Reason:      "destination could not be read",
		},
		Writes: []Write{{Op: OpWrite, Path: sidecar, Content: action.Content, Mode: action.Mode}},
	}, &warning
}

func written(action types.FileAction) Resolution {
	w := Write{Op: OpWrite, Path: action.Path, Content: action.Content, Mode: action.Mode}
	if action.IsDir() {
		w = Write{Op: OpMkdir, Path: action.Path, Mode: action.Mode}
	}
	return Resolution{Action: action, Outcome: types.OutcomeWritten, Writes: []Write{w}}
}

// Markers combines both versions into one conflict file. Both sides are
// kept byte for byte; a newline is only added where a side does not end
// with one, so each marker starts its own line.
func Markers(destination, incoming []byte) []byte {
	var b bytes.Buffer
	b.Grow(len(destination) + len(incoming) + 64)

	b.WriteString(MarkerDestination + "\n")
	b.Write(destination)
	if len(destination) > 0 && destination[len(destination)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.Write(incomingSide(incoming))
	return b.Bytes()
}

// incomingSide is the tail of a conflict file, from the separator on
func incomingSide(incoming []byte) []byte {
	var b bytes.Buffer
	b.WriteString(MarkerSeparator + "\n")
	b.Write(incoming)
	if len(incoming) > 0 && incoming[len(incoming)-1] != '\n' {
		b.WriteByte('\n')
	}
	b.WriteString(MarkerIncoming + "\n")
	return b.Bytes()
}

// Unresolved reports whether content still holds a conflict block, that is
// both the opening and the closing marker on lines of their own
func Unresolved(content []byte) bool {
	var opening, closing bool
	for _, line := range bytes.Split(content, []byte("\n")) {
		switch string(line) {
		case MarkerDestination:
			opening = true
		case MarkerIncoming:
			closing = opening
		}
	}
	return opening && closing
}

// Note is the explanation written next to a binary conflict
func Note(path, sidecar string) []byte {
	return []byte(fmt.Sprintf(`liscaf could not merge %s automatically.

The destination file was left untouched.
The incoming version from the template was written to %s.

Compare both versions, keep the one you want, then delete %s
and this note.
`, path, sidecar, sidecar))
}

// Conflicts returns the conflict records of resolutions, in order
func Conflicts(resolutions []Resolution) []types.ConflictRecord {
	var out []types.ConflictRecord
	for _, r := range resolutions {
		if r.Conflict != nil {
			out = append(out, *r.Conflict)
		}
	}
	return out
}

// Count tallies resolutions by outcome
func Count(resolutions []Resolution) map[types.Outcome]int {
	counts := make(map[types.Outcome]int)
	for _, r := range resolutions {
		counts[r.Outcome]++
	}
	return counts
}
