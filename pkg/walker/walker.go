package walker

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"strings"

	"github.com/arthur-debert/liscaf/pkg/errors"
	"github.com/arthur-debert/liscaf/pkg/logging"
	"github.com/arthur-debert/liscaf/pkg/manifest"
	"github.com/arthur-debert/liscaf/pkg/rewrite"
	"github.com/arthur-debert/liscaf/pkg/substitution"
	"github.com/arthur-debert/liscaf/pkg/types"
	"github.com/arthur-debert/liscaf/pkg/vcs"
	"github.com/rs/zerolog"
)

// Options tune a walk
type Options struct {
	// Ignore holds glob patterns matched against both the entry name and
	// its slash separated path relative to the root.
	Ignore []string

	// BinaryWindow is how many leading bytes are inspected to classify a
	// file. Zero selects rewrite.DefaultWindow.
	BinaryWindow int

	// InPlace marks a walk whose destination is the source tree itself.
	// Renamed targets that collide with any existing entry are then
	// suffixed so that no original is overwritten before it is moved.
	InPlace bool
}

// Walker builds the action plan for one tree
type Walker struct {
	fs     types.FS
	plan   *substitution.Plan
	opts   Options
	logger zerolog.Logger
}

// New creates a walker reading through fsys and rewriting with plan
func New(fsys types.FS, plan *substitution.Plan, opts Options) *Walker {
	return &Walker{
		fs:     fsys,
		plan:   plan,
		opts:   opts,
		logger: logging.GetLogger("walker"),
	}
}

// walk holds the state of one Build call
type walk struct {
	root     string
	actions  []types.FileAction
	warnings []types.Warning
	claimed  map[string]string
}

// Build walks root and returns the sorted actions along with any
// warnings. A source read failure or a cancelled context aborts the walk
// and returns an error; no partial plan is returned in that case.
func (w *Walker) Build(ctx context.Context, root string) ([]types.FileAction, []types.Warning, error) {
	done := logging.LogOperationStart(w.logger, "walk")
	defer done()

	info, err := w.fs.Stat(root)
	if err != nil {
		return nil, nil, errors.Wrapf(err, errors.ErrSourceRead, "cannot read template root %s", root).
			WithDetail("path", root)
	}
	if !info.IsDir() {
		return nil, nil, errors.Newf(errors.ErrSourceRead, "template root %s is not a directory", root).
			WithDetail("path", root)
	}

	st := &walk{root: root, claimed: make(map[string]string)}
	if err := w.walkDir(ctx, st, "", ""); err != nil {
		return nil, nil, err
	}

	SortActions(st.actions)

	w.logger.Info().
		Str("root", root).
		Int("actions", len(st.actions)).
		Int("warnings", len(st.warnings)).
		Msg("Template tree walked")

	return st.actions, st.warnings, nil
}

// walkDir visits one directory. srcRel is the directory path in the
// template, dstRel the already rewritten path it maps to.
func (w *Walker) walkDir(ctx context.Context, st *walk, srcRel, dstRel string) error {
	dirPath := st.abs(srcRel)
	entries, err := w.fs.ReadDir(dirPath)
	if err != nil {
		return errors.Wrapf(err, errors.ErrSourceRead, "cannot list %s", dirPath).
			WithDetail("path", srcRel)
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return errors.Wrap(err, errors.ErrCancelled, "walk cancelled")
		}

		name := entry.Name()
		rel := join(srcRel, name)
		if w.excluded(srcRel, name, rel) {
			w.logger.Trace().Str("path", rel).Msg("Excluded")
			continue
		}

		info, err := w.fs.Lstat(st.abs(rel))
		if err != nil {
			return errors.Wrapf(err, errors.ErrSourceRead, "cannot stat %s", rel).
				WithDetail("path", rel)
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			w.logger.Warn().Str("path", rel).Msg("Skipping symbolic link")
			st.warnings = append(st.warnings, types.Warning{
				Path:    rel,
				Code:    errors.ErrSymlinkSkipped,
				Message: "symbolic links are not copied",
			})
			continue
		}

		segment, _ := rewrite.Segment(name, w.plan)
		target := w.resolve(st, rel, join(dstRel, segment))

		if info.IsDir() {
			st.actions = append(st.actions, types.FileAction{
				Kind:   types.ActionCreateDir,
				Path:   target,
				Source: rel,
				Mode:   info.Mode().Perm(),
			})
			if err := w.walkDir(ctx, st, rel, target); err != nil {
				return err
			}
			continue
		}

		action, err := w.fileAction(st, rel, target, info.Mode().Perm())
		if err != nil {
			return err
		}
		st.actions = append(st.actions, action)
	}
	return nil
}

func (w *Walker) fileAction(st *walk, rel, target string, mode fs.FileMode) (types.FileAction, error) {
	content, err := w.fs.ReadFile(st.abs(rel))
	if err != nil {
		return types.FileAction{}, errors.Wrapf(err, errors.ErrSourceRead, "cannot read %s", rel).
			WithDetail("path", rel)
	}

	class := rewrite.Classify(content, w.opts.BinaryWindow)
	rewritten, n := rewrite.Text(content, class, w.plan)

	kind := types.ActionWriteFile
	if n == 0 && target != rel {
		kind = types.ActionRenameOnly
	}

	w.logger.Trace().
		Str("source", rel).
		Str("path", target).
		Str("class", string(class)).
		Int("substitutions", n).
		Msg("Planned file")

	return types.FileAction{
		Kind:          kind,
		Path:          target,
		Source:        rel,
		Content:       rewritten,
		Class:         class,
		Mode:          mode,
		Substitutions: n,
	}, nil
}

// resolve returns a unique destination for source. Two sources mapping to
// the same path, or in place a renamed path that already exists, get a
// numeric suffix and a warning.
func (w *Walker) resolve(st *walk, source, target string) string {
	final := target
	for i := 1; w.taken(st, source, final); i++ {
		final = fmt.Sprintf("%s_%d", target, i)
	}
	st.claimed[final] = source

	if final != target {
		w.logger.Warn().
			Str("source", source).
			Str("wanted", target).
			Str("path", final).
			Msg("Destination collision, using a suffixed name")
		st.warnings = append(st.warnings, types.Warning{
			Path:    source,
			Code:    errors.ErrPathCollision,
			Message: fmt.Sprintf("%s already taken, written as %s", target, final),
		})
	}
	return final
}

func (w *Walker) taken(st *walk, source, candidate string) bool {
	if _, ok := st.claimed[candidate]; ok {
		return true
	}
	if w.opts.InPlace && candidate != source {
		if _, err := w.fs.Lstat(st.abs(candidate)); err == nil {
			return true
		}
	}
	return false
}

// excluded reports whether an entry is left out of the plan
func (w *Walker) excluded(parent, name, rel string) bool {
	if name == vcs.MetadataDir {
		return true
	}
	if parent == "" && name == manifest.FileName {
		return true
	}
	for _, pattern := range w.opts.Ignore {
		if ok, _ := path.Match(pattern, name); ok {
			return true
		}
		if strings.Contains(pattern, "/") {
			if ok, _ := path.Match(pattern, rel); ok {
				return true
			}
		}
	}
	return false
}

func (st *walk) abs(rel string) string {
	if rel == "" {
		return st.root
	}
	return filepath.Join(st.root, filepath.FromSlash(rel))
}

func join(dir, name string) string {
	if dir == "" {
		return name
	}
	return dir + "/" + name
}
