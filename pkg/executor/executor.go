package executor

import (
	"context"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/arthur-debert/liscaf/pkg/errors"
	"github.com/arthur-debert/liscaf/pkg/filesystem"
	"github.com/arthur-debert/liscaf/pkg/logging"
	"github.com/arthur-debert/liscaf/pkg/merge"
	"github.com/arthur-debert/liscaf/pkg/types"
	"github.com/rs/zerolog"
)

const (
	defaultDirMode  fs.FileMode = 0755
	defaultFileMode fs.FileMode = 0644
)

// Options contains configuration for the executor
type Options struct {
	DryRun bool
	// Logger overrides the component logger when set
	Logger *zerolog.Logger
	// Filesystem operations interface for testing
	FS types.FS
}

// Executor applies writes to a destination root
type Executor struct {
	dryRun bool
	logger zerolog.Logger
	fs     types.FS
}

// Report is the outcome of a commit
type Report struct {
	DryRun    bool            `json:"dry_run"`
	Applied   int             `json:"applied"`
	Removed   int             `json:"removed,omitempty"`
	Failures  []types.Failure `json:"failures,omitempty"`
	Warnings  []types.Warning `json:"warnings,omitempty"`
	Cancelled bool            `json:"cancelled,omitempty"`
}

// Failed reports whether any write failed or the commit was interrupted
func (r Report) Failed() bool {
	return len(r.Failures) > 0 || r.Cancelled
}

// New creates a new executor instance
func New(opts Options) *Executor {
	logger := logging.GetLogger("executor")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	fsys := opts.FS
	if fsys == nil {
		fsys = filesystem.NewOS()
	}

	return &Executor{
		dryRun: opts.DryRun,
		logger: logger,
		fs:     fsys,
	}
}

// Apply performs the writes of every resolution under root, in order. A
// failed write is recorded and the remaining writes are still attempted.
// In dry-run mode nothing is touched.
func (e *Executor) Apply(ctx context.Context, root string, resolutions []merge.Resolution) Report {
	report := Report{DryRun: e.dryRun}
	if e.dryRun {
		e.logger.Info().Str("root", root).Int("resolutions", len(resolutions)).Msg("Dry run - no changes made")
		return report
	}

	done := logging.LogOperationStart(e.logger, "apply")
	defer done()

	if err := e.fs.MkdirAll(root, defaultDirMode); err != nil {
		report.fail(".", errors.Wrapf(err, errors.ErrWrite, "cannot create destination %s", root))
	}

	for _, res := range resolutions {
		for _, w := range res.Writes {
			if err := ctx.Err(); err != nil {
				e.logger.Warn().Msg("Commit cancelled")
				report.Cancelled = true
				return report
			}

			if err := e.write(root, w); err != nil {
				e.logger.Error().Err(err).Str("path", w.Path).Msg("Write failed")
				report.fail(w.Path, err)
				continue
			}
			report.Applied++
		}
	}

	e.logger.Info().
		Str("root", root).
		Int("applied", report.Applied).
		Int("failures", len(report.Failures)).
		Msg("Writes applied")

	return report
}

func (e *Executor) write(root string, w merge.Write) error {
	target := join(root, w.Path)
	switch w.Op {
	case merge.OpMkdir:
		if err := e.fs.MkdirAll(target, modeOr(w.Mode, defaultDirMode)); err != nil {
			return errors.Wrapf(err, errors.ErrWrite, "cannot create directory %s", w.Path).WithDetail("path", w.Path)
		}
	case merge.OpWrite:
		if err := e.fs.MkdirAll(filepath.Dir(target), defaultDirMode); err != nil {
			return errors.Wrapf(err, errors.ErrWrite, "cannot create parent of %s", w.Path).WithDetail("path", w.Path)
		}
		if err := e.fs.WriteFile(target, w.Content, modeOr(w.Mode, defaultFileMode)); err != nil {
			return errors.Wrapf(err, errors.ErrWrite, "cannot write %s", w.Path).WithDetail("path", w.Path)
		}
	default:
		return errors.Newf(errors.ErrInternal, "unknown write op %q", w.Op).WithDetail("path", w.Path)
	}

	e.logger.Trace().Str("op", string(w.Op)).Str("path", w.Path).Msg("Applied")
	return nil
}

// ApplyInPlace rewrites the tree at root onto itself. The order keeps a
// crash from losing data: new directories are created first, then every
// new or renamed file is written, and only then are the originals of
// successfully written files removed, followed by the emptied original
// directories, deepest first.
func (e *Executor) ApplyInPlace(ctx context.Context, root string, actions []types.FileAction) Report {
	report := Report{DryRun: e.dryRun}
	if e.dryRun {
		e.logger.Info().Str("root", root).Int("actions", len(actions)).Msg("Dry run - no changes made")
		return report
	}

	done := logging.LogOperationStart(e.logger, "apply-in-place")
	defer done()

	var movedDirs []string
	for _, a := range actions {
		if !a.IsDir() || a.Path == a.Source {
			continue
		}
		if err := e.fs.MkdirAll(join(root, a.Path), modeOr(a.Mode, defaultDirMode)); err != nil {
			report.fail(a.Path, errors.Wrapf(err, errors.ErrWrite, "cannot create directory %s", a.Path))
			continue
		}
		report.Applied++
		movedDirs = append(movedDirs, a.Source)
	}

	var obsolete []string
	for _, a := range actions {
		if a.IsDir() {
			continue
		}
		if err := ctx.Err(); err != nil {
			e.logger.Warn().Msg("In-place rewrite cancelled before removing originals")
			report.Cancelled = true
			return report
		}
		if a.Path == a.Source && a.Substitutions == 0 {
			continue
		}

		w := merge.Write{Op: merge.OpWrite, Path: a.Path, Content: a.Content, Mode: a.Mode}
		if err := e.write(root, w); err != nil {
			e.logger.Error().Err(err).Str("path", a.Path).Msg("Write failed, keeping original")
			report.fail(a.Path, err)
			continue
		}
		report.Applied++
		if a.Path != a.Source {
			obsolete = append(obsolete, a.Source)
		}
	}

	for _, src := range obsolete {
		if err := e.fs.Remove(join(root, src)); err != nil {
			report.fail(src, errors.Wrapf(err, errors.ErrWrite, "cannot remove original %s", src))
			continue
		}
		report.Removed++
	}

	// Deepest first so a parent is only checked once its children are gone
	sort.SliceStable(movedDirs, func(i, j int) bool {
		return strings.Count(movedDirs[i], "/") > strings.Count(movedDirs[j], "/")
	})
	for _, dir := range movedDirs {
		target := join(root, dir)
		entries, err := e.fs.ReadDir(target)
		if err != nil {
			continue
		}
		if len(entries) > 0 {
			e.logger.Warn().Str("path", dir).Int("entries", len(entries)).Msg("Original directory not empty, leaving it")
			report.Warnings = append(report.Warnings, types.Warning{
				Path:    dir,
				Code:    errors.ErrWrite,
				Message: "original directory still holds files that were not part of the rewrite",
			})
			continue
		}
		if err := e.fs.Remove(target); err != nil {
			report.fail(dir, errors.Wrapf(err, errors.ErrWrite, "cannot remove directory %s", dir))
			continue
		}
		report.Removed++
	}

	e.logger.Info().
		Str("root", root).
		Int("applied", report.Applied).
		Int("removed", report.Removed).
		Int("failures", len(report.Failures)).
		Msg("In-place rewrite applied")

	return report
}

func (r *Report) fail(p string, err error) {
	r.Failures = append(r.Failures, types.Failure{Path: p, Err: err})
}

func join(root, rel string) string {
	return filepath.Join(root, filepath.FromSlash(path.Clean(rel)))
}

func modeOr(mode, fallback fs.FileMode) fs.FileMode {
	if mode.Perm() == 0 {
		return fallback
	}
	return mode.Perm()
}
