package scaffold

import (
	"context"
	stderrors "errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/arthur-debert/liscaf/pkg/casing"
	"github.com/arthur-debert/liscaf/pkg/config"
	"github.com/arthur-debert/liscaf/pkg/errors"
	"github.com/arthur-debert/liscaf/pkg/executor"
	"github.com/arthur-debert/liscaf/pkg/filesystem"
	"github.com/arthur-debert/liscaf/pkg/logging"
	"github.com/arthur-debert/liscaf/pkg/manifest"
	"github.com/arthur-debert/liscaf/pkg/merge"
	"github.com/arthur-debert/liscaf/pkg/report"
	"github.com/arthur-debert/liscaf/pkg/substitution"
	"github.com/arthur-debert/liscaf/pkg/types"
	"github.com/arthur-debert/liscaf/pkg/vcs"
	"github.com/arthur-debert/liscaf/pkg/walker"
	"github.com/rs/zerolog"
)

// FallbackSuffix is appended to the project directory when NoMerge is set
// and the default destination already exists
const FallbackSuffix = "_from_template"

// Deps are the collaborators of a Scaffolder. Zero values select the real
// implementations.
type Deps struct {
	FS     types.FS
	Git    *vcs.Git
	Config *config.Config
	Table  *casing.Table

	// WorkDir is where new projects are created by default
	WorkDir string
	// TempDir holds template clones while a run lasts
	TempDir string

	Now func() time.Time
}

// Options describe one new project
type Options struct {
	Name     string
	Source   string
	BaseName string

	// Dest overrides the default destination WorkDir/Name
	Dest string

	DryRun bool
	// NoMerge writes to Name_from_template instead of merging into an
	// existing destination
	NoMerge bool
	NoGit   bool
}

// RenameOptions describe an in-place rename of a local tree
type RenameOptions struct {
	Root    string
	OldName string
	NewName string
	DryRun  bool
}

// Scaffolder wires the engines together
type Scaffolder struct {
	fs      types.FS
	git     *vcs.Git
	cfg     *config.Config
	table   casing.Table
	workDir string
	tempDir string
	now     func() time.Time
	logger  zerolog.Logger
}

// New creates a scaffolder
func New(deps Deps) *Scaffolder {
	s := &Scaffolder{
		fs:      deps.FS,
		git:     deps.Git,
		cfg:     deps.Config,
		workDir: deps.WorkDir,
		tempDir: deps.TempDir,
		now:     deps.Now,
		logger:  logging.GetLogger("scaffold"),
	}
	if s.fs == nil {
		s.fs = filesystem.NewOS()
	}
	if s.git == nil {
		s.git = vcs.New(nil)
	}
	if s.cfg == nil {
		s.cfg = config.Default()
	}
	if deps.Table != nil {
		s.table = *deps.Table
	} else {
		s.table = casing.DefaultTable()
	}
	if s.workDir == "" {
		s.workDir = "."
	}
	if s.now == nil {
		s.now = time.Now
	}
	return s
}

// Run creates or updates a project from a template. The returned report
// is complete even when writes failed; check Report.Failed. An error is
// only returned for fatal problems, and then nothing has been written.
func (s *Scaffolder) Run(ctx context.Context, opts Options) (*report.Report, error) {
	done := logging.LogOperationStart(s.logger, "scaffold")
	defer done()

	if err := validate(opts); err != nil {
		return nil, err
	}

	plan, err := substitution.BuildPlan(s.table, opts.BaseName, opts.Name)
	if err != nil {
		return nil, err
	}

	dest, fresh, err := s.destination(opts)
	if err != nil {
		return nil, err
	}

	srcRoot, fetchWarnings, cleanup, err := s.fetch(ctx, opts.Source)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	actions, warnings, err := s.walker(plan, false).Build(ctx, srcRoot)
	if err != nil {
		return nil, err
	}
	if len(fetchWarnings) > 0 {
		warnings = append(fetchWarnings, warnings...)
	}

	resolutions, mergeWarnings, err := merge.New(s.fs, merge.Options{BinaryWindow: s.cfg.Walk.BinaryWindow}).
		Resolve(ctx, dest, actions)
	if err != nil {
		return nil, err
	}

	rep := &report.Report{
		Template:    opts.Source,
		Destination: dest,
		DryRun:      opts.DryRun,
		Plan:        plan,
		Actions:     actions,
		Resolutions: resolutions,
		Warnings:    append(warnings, mergeWarnings...),
	}

	if opts.DryRun {
		s.logger.Info().Str("dest", dest).Int("actions", len(actions)).Msg("Dry run complete")
		return rep, nil
	}

	commit := executor.New(executor.Options{FS: s.fs}).Apply(ctx, dest, resolutions)
	rep.Commit = &commit
	if commit.Failed() {
		s.logger.Error().Int("failures", len(commit.Failures)).Msg("Some writes failed, manifest not written")
		return rep, nil
	}

	meta := manifest.New(plan.NewName, opts.Source, plan.OldName, s.now())
	if err := manifest.Write(s.fs, dest, meta); err != nil {
		rep.Commit.Failures = append(rep.Commit.Failures, types.Failure{Path: manifest.FileName, Err: err})
		return rep, nil
	}

	if fresh && !opts.NoGit && s.cfg.Git.Init {
		s.initRepository(ctx, dest, rep)
	}

	s.logger.Info().
		Str("dest", dest).
		Int("applied", commit.Applied).
		Int("conflicts", len(merge.Conflicts(resolutions))).
		Msg("Project generated")

	return rep, nil
}

// Rename rewrites a local tree onto itself
func (s *Scaffolder) Rename(ctx context.Context, opts RenameOptions) (*report.Report, error) {
	done := logging.LogOperationStart(s.logger, "rename")
	defer done()

	if opts.Root == "" {
		return nil, errors.New(errors.ErrConfiguration, "a directory to rename is required")
	}
	plan, err := substitution.BuildPlan(s.table, opts.OldName, opts.NewName)
	if err != nil {
		return nil, err
	}

	info, err := s.fs.Stat(opts.Root)
	if err != nil || !info.IsDir() {
		return nil, errors.Newf(errors.ErrSourceRead, "%s is not a directory", opts.Root).WithDetail("path", opts.Root)
	}

	actions, warnings, err := s.walker(plan, true).Build(ctx, opts.Root)
	if err != nil {
		return nil, err
	}

	rep := &report.Report{
		Template:    opts.Root,
		Destination: opts.Root,
		DryRun:      opts.DryRun,
		InPlace:     true,
		Plan:        plan,
		Actions:     actions,
		Warnings:    warnings,
	}
	if opts.DryRun {
		return rep, nil
	}

	commit := executor.New(executor.Options{FS: s.fs}).ApplyInPlace(ctx, opts.Root, actions)
	rep.Commit = &commit

	if !commit.Failed() {
		s.updateManifest(opts.Root, plan.NewName, rep)
	}
	return rep, nil
}

func (s *Scaffolder) walker(plan *substitution.Plan, inPlace bool) *walker.Walker {
	return walker.New(s.fs, plan, walker.Options{
		Ignore:       s.cfg.Walk.Ignore,
		BinaryWindow: s.cfg.Walk.BinaryWindow,
		InPlace:      inPlace,
	})
}

// destination picks the output directory and reports whether it has to
// be created
func (s *Scaffolder) destination(opts Options) (string, bool, error) {
	dest := opts.Dest
	if dest == "" {
		dest = filepath.Join(s.workDir, opts.Name)
		if opts.NoMerge && s.exists(dest) {
			alt := filepath.Join(s.workDir, opts.Name+FallbackSuffix)
			s.logger.Warn().Str("dest", dest).Str("alt", alt).Msg("Destination exists, using fallback directory")
			dest = alt
		}
	}

	if info, err := s.fs.Stat(dest); err == nil && !info.IsDir() {
		return "", false, errors.Newf(errors.ErrConfiguration, "destination %s exists and is not a directory", dest)
	}
	return dest, !s.exists(dest), nil
}

// fetch returns the root of the template tree, warnings about the fetch
// and a cleanup function
func (s *Scaffolder) fetch(ctx context.Context, source string) (string, []types.Warning, func(), error) {
	noop := func() {}

	if !vcs.IsRemote(source) {
		info, err := s.fs.Stat(source)
		if err != nil {
			return "", nil, noop, errors.Wrapf(err, errors.ErrSourceRead, "template %s not found", source).
				WithDetail("path", source)
		}
		if !info.IsDir() {
			return "", nil, noop, errors.Newf(errors.ErrSourceRead, "template %s is not a directory", source).
				WithDetail("path", source)
		}
		return source, nil, noop, nil
	}

	base := s.tempDir
	if base == "" {
		base = filepath.Join(s.workDir, ".liscaf-tmp")
	}
	dir := filepath.Join(base, fmt.Sprintf("liscaf-clone-%d", s.now().UnixNano()))
	if err := s.fs.MkdirAll(base, 0755); err != nil {
		return "", nil, noop, errors.Wrapf(err, errors.ErrSourceFetch, "cannot create temporary directory %s", base)
	}
	cleanup := func() {
		if err := s.fs.RemoveAll(dir); err != nil {
			s.logger.Warn().Err(err).Str("dir", dir).Msg("Failed to remove temporary clone")
		}
	}

	if err := s.git.Clone(ctx, source, dir, s.cfg.Git.CloneDepth); err != nil {
		cleanup()
		return "", nil, noop, err
	}

	// The walk skips the metadata directory either way
	var warnings []types.Warning
	if err := s.git.RemoveMetadata(s.fs, dir); err != nil {
		s.logger.Warn().Err(err).Msg("Could not remove template repository metadata")
		warnings = append(warnings, types.NewWarning(vcs.MetadataDir, err))
	}
	return dir, warnings, cleanup, nil
}

func (s *Scaffolder) initRepository(ctx context.Context, dest string, rep *report.Report) {
	if err := s.git.Init(ctx, dest); err != nil {
		s.logger.Warn().Err(err).Msg("git init failed")
		rep.Warnings = append(rep.Warnings, types.NewWarning(".", err))
		return
	}
	if err := s.git.CommitAll(ctx, dest, s.cfg.Git.CommitMessage); err != nil {
		s.logger.Warn().Err(err).Msg("Initial commit failed")
		rep.Warnings = append(rep.Warnings, types.NewWarning(".", err))
	}
}

// updateManifest records the new name in an existing manifest. A tree
// without a manifest is left as it is.
func (s *Scaffolder) updateManifest(root, newName string, rep *report.Report) {
	meta, err := manifest.Read(s.fs, root)
	if stderrors.Is(err, fs.ErrNotExist) {
		return
	}
	if err != nil {
		s.logger.Warn().Err(err).Msg("Manifest unreadable, project name not updated")
		rep.Warnings = append(rep.Warnings, types.NewWarning(manifest.FileName, err))
		return
	}
	meta.ProjectName = newName
	if err := manifest.Write(s.fs, root, meta); err != nil {
		rep.Commit.Failures = append(rep.Commit.Failures, types.Failure{Path: manifest.FileName, Err: err})
	}
}

func (s *Scaffolder) exists(path string) bool {
	_, err := s.fs.Stat(path)
	return err == nil
}

func validate(opts Options) error {
	switch {
	case opts.Name == "":
		return errors.New(errors.ErrConfiguration, "a project name is required")
	case opts.BaseName == "":
		return errors.New(errors.ErrConfiguration, "a template base name is required")
	case opts.Source == "":
		return errors.New(errors.ErrConfiguration, "a template source is required")
	case vcs.LooksLikeURL(opts.Source) && !vcs.IsRemote(opts.Source):
		return errors.Newf(errors.ErrConfiguration, "unsupported template URL %s, only https:// is accepted", opts.Source).
			WithDetail("source", opts.Source)
	}
	return nil
}
