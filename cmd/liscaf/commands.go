package liscaf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/arthur-debert/liscaf/internal/version"
	"github.com/arthur-debert/liscaf/pkg/catalog"
	"github.com/arthur-debert/liscaf/pkg/config"
	"github.com/arthur-debert/liscaf/pkg/errors"
	"github.com/arthur-debert/liscaf/pkg/filesystem"
	"github.com/arthur-debert/liscaf/pkg/logging"
	"github.com/arthur-debert/liscaf/pkg/merge"
	"github.com/arthur-debert/liscaf/pkg/paths"
	"github.com/arthur-debert/liscaf/pkg/prompt"
	"github.com/arthur-debert/liscaf/pkg/report"
	"github.com/arthur-debert/liscaf/pkg/scaffold"
	"github.com/arthur-debert/liscaf/pkg/style"
	"github.com/arthur-debert/liscaf/pkg/vcs"
	"github.com/pterm/pterm"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags are the persistent flags shared by every command
type globalFlags struct {
	verbosity int
	dryRun    bool
	noColor   bool
	format    string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	// Initialize custom template formatting functions
	initTemplateFormatting()

	g := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "liscaf",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(g.verbosity)
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return fmt.Errorf("no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	rootCmd.PersistentFlags().CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	rootCmd.PersistentFlags().BoolVar(&g.dryRun, "dry-run", false, MsgFlagDryRun)
	rootCmd.PersistentFlags().BoolVar(&g.noColor, "no-color", false, MsgFlagNoColor)
	rootCmd.PersistentFlags().StringVar(&g.format, "format", "auto", MsgFlagFormat)

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newNewCmd(g))
	rootCmd.AddCommand(newRenameCmd(g))
	rootCmd.AddCommand(newTemplatesCmd(g))
	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	return rootCmd
}

// environment is what every run needs from outside the project
type environment struct {
	paths paths.Paths
	cfg   *config.Config
}

func loadEnvironment(g *globalFlags) (*environment, error) {
	p, err := paths.New()
	if err != nil {
		return nil, fmt.Errorf(MsgErrInitPaths, err)
	}

	opts := config.LoadOptions{UserFile: p.ConfigFile()}
	if g.noColor {
		opts.Overrides = map[string]interface{}{"output.color": false}
	}
	cfg, err := config.Load(opts)
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return &environment{paths: p, cfg: cfg}, nil
}

func (e *environment) catalogPath() string {
	if e.cfg.Template.Catalog != "" {
		return paths.ExpandHome(e.cfg.Template.Catalog)
	}
	return e.paths.CatalogFile()
}

func (e *environment) catalog() (*catalog.Catalog, error) {
	cat, err := catalog.Load(filesystem.NewOS(), e.catalogPath())
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadCatalog, err)
	}
	return cat, nil
}

// renderer resolves the output format, falling back to plain text when
// color is off
func (e *environment) renderer(cmd *cobra.Command, g *globalFlags) (*report.Renderer, error) {
	format, err := report.ParseFormat(g.format)
	if err != nil {
		return nil, err
	}
	r := report.NewRenderer(cmd.OutOrStdout(), format)
	if r.Format() == report.FormatTerminal && !e.cfg.Output.Color {
		r = report.NewRenderer(cmd.OutOrStdout(), report.FormatText)
	}
	return r, nil
}

func newNewCmd(g *globalFlags) *cobra.Command {
	var (
		yes     bool
		base    string
		dest    string
		noGit   bool
		noMerge bool
	)

	cmd := &cobra.Command{
		Use:     "new [name] [template]",
		Short:   MsgNewShort,
		Long:    MsgNewLong,
		Example: MsgNewExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(g)
			if err != nil {
				return err
			}
			cat, err := env.catalog()
			if err != nil {
				return err
			}
			renderer, err := env.renderer(cmd, g)
			if err != nil {
				return err
			}

			in := prompt.Answers{BaseName: base}
			if len(args) > 0 {
				in.Name = args[0]
			}
			if len(args) > 1 {
				in.Source = args[1]
			}
			if in.BaseName == "" {
				in.BaseName = cat.Resolve(in.Source).BaseName
			}
			if in.BaseName == "" {
				in.BaseName = env.cfg.Template.BaseName
			}

			p := prompt.New(prompt.Config{
				DisableColor:       !env.cfg.Output.Color,
				DisableInteractive: yes || !prompt.IsTerminal(os.Stdin),
			})
			answers, err := prompt.Gather(p, in, cat.Names())
			if err != nil {
				return err
			}

			resolved := cat.Resolve(answers.Source)
			if resolved.Entry != nil && base == "" && in.Source == "" && resolved.BaseName != "" {
				// Template picked interactively from the catalog
				answers.BaseName = resolved.BaseName
			}
			source, err := normalizeSource(resolved.Source)
			if err != nil {
				return err
			}

			if p.Interactive() && !g.dryRun {
				ok, err := prompt.Proceed(p, fmt.Sprintf(MsgProceedSummary,
					answers.Name, answers.Source, answers.BaseName, answers.Name))
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(cmd.ErrOrStderr(), MsgCancelledByUser)
					return nil
				}
			}

			opts := scaffold.Options{
				Name:     answers.Name,
				Source:   source,
				BaseName: answers.BaseName,
				DryRun:   g.dryRun,
				NoMerge:  noMerge,
				NoGit:    noGit,
			}
			if dest != "" {
				if opts.Dest, err = paths.Normalize(dest); err != nil {
					return err
				}
			}

			workDir, err := os.Getwd()
			if err != nil {
				return errors.Wrap(err, errors.ErrConfiguration, "cannot determine working directory")
			}

			s := scaffold.New(scaffold.Deps{Config: env.cfg, WorkDir: workDir, TempDir: env.paths.CacheDir()})

			spinner := startSpinner(renderer, fmt.Sprintf(MsgSpinnerGenerate, answers.Name))
			rep, err := s.Run(cmd.Context(), opts)
			stopSpinner(spinner)
			if err != nil {
				return err
			}
			return finish(cmd, renderer, rep)
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, MsgFlagYes)
	cmd.Flags().StringVarP(&base, "base", "b", "", MsgFlagBase)
	cmd.Flags().StringVarP(&dest, "dest", "d", "", MsgFlagDest)
	cmd.Flags().BoolVar(&noGit, "no-git", false, MsgFlagNoGit)
	cmd.Flags().BoolVar(&noMerge, "no-merge", false, MsgFlagNoMerge)

	return cmd
}

func newRenameCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "rename <old-name> <new-name> [dir]",
		Short:   MsgRenameShort,
		Long:    MsgRenameLong,
		Example: MsgRenameExample,
		GroupID: "core",
		Args:    cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(g)
			if err != nil {
				return err
			}
			renderer, err := env.renderer(cmd, g)
			if err != nil {
				return err
			}

			dir := "."
			if len(args) > 2 {
				dir = args[2]
			}
			root, err := paths.Normalize(dir)
			if err != nil {
				return err
			}

			s := scaffold.New(scaffold.Deps{Config: env.cfg, WorkDir: root})

			spinner := startSpinner(renderer, fmt.Sprintf(MsgSpinnerRename, args[0], args[1]))
			rep, err := s.Rename(cmd.Context(), scaffold.RenameOptions{
				Root:    root,
				OldName: args[0],
				NewName: args[1],
				DryRun:  g.dryRun,
			})
			stopSpinner(spinner)
			if err != nil {
				return err
			}
			return finish(cmd, renderer, rep)
		},
	}
}

func newTemplatesCmd(g *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "templates",
		Short:   MsgTemplatesShort,
		Long:    MsgTemplatesLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnvironment(g)
			if err != nil {
				return err
			}
			cat, err := env.catalog()
			if err != nil {
				return err
			}
			renderer, err := env.renderer(cmd, g)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if renderer.Format() == report.FormatJSON {
				encoder := json.NewEncoder(out)
				encoder.SetIndent("", "  ")
				entries := cat.Templates
				if entries == nil {
					entries = []catalog.Entry{}
				}
				return encoder.Encode(entries)
			}

			if len(cat.Templates) == 0 {
				fmt.Fprintf(out, MsgNoTemplates, env.catalogPath())
				return nil
			}

			if renderer.Format() != report.FormatTerminal {
				pterm.DisableColor()
			}
			data := [][]string{{"NAME", "SOURCE", "BASE NAME", "DESCRIPTION"}}
			for _, e := range cat.Templates {
				data = append(data, []string{e.Name, e.Source, e.BaseName, e.Description})
			}
			table, err := pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
			if err != nil {
				return err
			}
			fmt.Fprintln(out, table)
			return nil
		},
	}
}

func newConfigCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:     "config",
		Short:   MsgConfigShort,
		Long:    MsgConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()
			if !write {
				fmt.Fprint(cmd.OutOrStdout(), content)
				return nil
			}

			p, err := paths.New()
			if err != nil {
				return fmt.Errorf(MsgErrInitPaths, err)
			}
			target := p.ConfigFile()
			if _, err := os.Stat(target); err == nil {
				return errors.Newf(errors.ErrInvalidInput, MsgErrConfigExists, target)
			}
			if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
				return errors.Wrapf(err, errors.ErrWrite, "cannot create %s", filepath.Dir(target))
			}
			if err := os.WriteFile(target, []byte(content), 0644); err != nil {
				return errors.Wrapf(err, errors.ErrWrite, "cannot write %s", target)
			}
			fmt.Fprintf(cmd.OutOrStdout(), MsgConfigWritten, target)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			case "powershell":
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
			return nil
		},
	}
}

// ReportError prints the error that ended the command in the output
// format chosen on the command line
func ReportError(cmd *cobra.Command, err error) {
	name, _ := cmd.PersistentFlags().GetString("format")
	format, perr := report.ParseFormat(name)
	if perr != nil {
		format = report.FormatText
	}
	r := report.NewRenderer(cmd.ErrOrStderr(), format)
	if noColor, _ := cmd.PersistentFlags().GetBool("no-color"); noColor && r.Format() == report.FormatTerminal {
		r = report.NewRenderer(cmd.ErrOrStderr(), report.FormatText)
	}
	if rerr := r.RenderError(err); rerr != nil {
		log.Error().Err(rerr).Msg("Failed to render error")
	}
}

// finish renders the report and turns write failures into an error so the
// process exits non-zero
func finish(cmd *cobra.Command, renderer *report.Renderer, rep *report.Report) error {
	if err := renderer.Render(rep); err != nil {
		return err
	}

	if renderer.Format() != report.FormatJSON {
		if n := rep.Summary().Conflicts(); n > 0 && !rep.DryRun {
			fmt.Fprint(cmd.ErrOrStderr(), style.RenderTemplate(MsgConflictsFollowUp, map[string]string{
				"count":   strconv.Itoa(n),
				"marker":  merge.MarkerDestination,
				"sidecar": merge.SidecarSuffix,
			}))
		}
	}

	if rep.Failed() {
		return errors.Newf(errors.ErrWrite, MsgErrWritesFailed, len(rep.Commit.Failures))
	}
	return nil
}

// normalizeSource makes local template paths absolute
func normalizeSource(source string) (string, error) {
	if source == "" || vcs.LooksLikeURL(source) {
		return source, nil
	}
	return paths.Normalize(source)
}

func startSpinner(renderer *report.Renderer, message string) *pterm.SpinnerPrinter {
	if renderer.Format() != report.FormatTerminal {
		return nil
	}
	spinner, err := pterm.DefaultSpinner.WithRemoveWhenDone(true).Start(message)
	if err != nil {
		log.Debug().Err(err).Msg("Spinner unavailable")
		return nil
	}
	return spinner
}

func stopSpinner(spinner *pterm.SpinnerPrinter) {
	if spinner != nil {
		_ = spinner.Stop()
	}
}
