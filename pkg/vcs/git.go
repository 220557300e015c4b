// Package vcs wraps the git command line client for fetching templates and
// initializing generated projects.
package vcs

import (
	"bytes"
	"context"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/arthur-debert/liscaf/pkg/errors"
	"github.com/arthur-debert/liscaf/pkg/logging"
	"github.com/arthur-debert/liscaf/pkg/types"
	"github.com/rs/zerolog"
)

// MetadataDir is the repository metadata directory of a working tree
const MetadataDir = ".git"

// DefaultCommitMessage is used for the first commit of a generated project
const DefaultCommitMessage = "Initial commit from template (liscaf)"

// Runner executes a command in dir and returns its combined output
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec
type ExecRunner struct{}

// Run implements Runner
func (ExecRunner) Run(ctx context.Context, dir, name string, args ...string) ([]byte, error) {
	logging.LogCommand(name, args)
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	err := cmd.Run()
	return out.Bytes(), err
}

// Git drives the git binary
type Git struct {
	bin    string
	runner Runner
	logger zerolog.Logger
}

// New returns a Git client using runner. A nil runner runs the real
// binary.
func New(runner Runner) *Git {
	if runner == nil {
		runner = ExecRunner{}
	}
	return &Git{
		bin:    "git",
		runner: runner,
		logger: logging.GetLogger("vcs"),
	}
}

// Clone makes a shallow clone of url into dir. A depth of zero clones the
// full history.
func (g *Git) Clone(ctx context.Context, url, dir string, depth int) error {
	args := []string{"clone", "--quiet"}
	if depth > 0 {
		args = append(args, "--depth", strconv.Itoa(depth))
	}
	args = append(args, url, dir)

	g.logger.Info().Str("url", url).Str("dir", dir).Int("depth", depth).Msg("Cloning template")
	if out, err := g.runner.Run(ctx, "", g.bin, args...); err != nil {
		return errors.Wrapf(err, errors.ErrSourceFetch, "git clone %s failed", url).
			WithDetail("url", url).
			WithDetail("output", strings.TrimSpace(string(out)))
	}
	return nil
}

// RemoveMetadata deletes the repository metadata of a working tree
func (g *Git) RemoveMetadata(fsys types.FS, dir string) error {
	target := filepath.Join(dir, MetadataDir)
	if err := fsys.RemoveAll(target); err != nil {
		return errors.Wrapf(err, errors.ErrVCS, "cannot remove %s", target)
	}
	g.logger.Debug().Str("dir", dir).Msg("Repository metadata removed")
	return nil
}

// Init creates an empty repository in dir
func (g *Git) Init(ctx context.Context, dir string) error {
	if out, err := g.runner.Run(ctx, dir, g.bin, "init", "--quiet"); err != nil {
		return errors.Wrapf(err, errors.ErrVCS, "git init in %s failed", dir).
			WithDetail("output", strings.TrimSpace(string(out)))
	}
	return nil
}

// CommitAll stages everything in dir and commits it
func (g *Git) CommitAll(ctx context.Context, dir, message string) error {
	if message == "" {
		message = DefaultCommitMessage
	}
	if out, err := g.runner.Run(ctx, dir, g.bin, "add", "--all"); err != nil {
		return errors.Wrapf(err, errors.ErrVCS, "git add in %s failed", dir).
			WithDetail("output", strings.TrimSpace(string(out)))
	}
	if out, err := g.runner.Run(ctx, dir, g.bin, "commit", "--quiet", "-m", message); err != nil {
		return errors.Wrapf(err, errors.ErrVCS, "git commit in %s failed", dir).
			WithDetail("output", strings.TrimSpace(string(out)))
	}
	g.logger.Info().Str("dir", dir).Msg("Initial commit created")
	return nil
}

// IsRemote reports whether source is a URL git has to fetch. Only https
// remotes are accepted; anything else is treated as a local path.
func IsRemote(source string) bool {
	return strings.HasPrefix(source, "https://")
}

// LooksLikeURL reports whether source uses a URL scheme or scp-like
// remote syntax, whether or not it is supported.
func LooksLikeURL(source string) bool {
	if strings.Contains(source, "://") {
		return true
	}
	// git@host:owner/repo
	at, colon := strings.Index(source, "@"), strings.Index(source, ":")
	return at > 0 && colon > at && !strings.Contains(source[:at], "/")
}
