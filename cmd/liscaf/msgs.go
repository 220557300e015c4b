package liscaf

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Create projects from template repositories"
	MsgNewShort        = "Generate a new project from a template"
	MsgRenameShort     = "Rename a project in place"
	MsgTemplatesShort  = "List the templates of the catalog"
	MsgConfigShort     = "Show or write the default configuration"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgDryRunNotice      = "DRY RUN - nothing was written"
	MsgNoTemplates       = "No templates in %s\n"
	MsgSpinnerGenerate   = "Generating %s"
	MsgSpinnerRename     = "Renaming %s to %s"
	MsgProceedSummary    = "Create %s from %s, replacing %q with %q?"
	MsgCancelledByUser   = "Cancelled."
	MsgConfigWritten     = "Configuration written to %s\n"
	MsgVersionFormat     = "liscaf version %s\n  commit: %s\n  built:  %s\n"
	MsgConflictsFollowUp = "[conflict]{{count}} conflict(s) left to resolve[/conflict], search for [path]{{marker}}[/path] and [path]*{{sidecar}}[/path]\n"

	// Error messages
	MsgErrInitPaths    = "failed to initialize paths: %w"
	MsgErrLoadConfig   = "failed to load configuration: %w"
	MsgErrLoadCatalog  = "failed to load template catalog: %w"
	MsgErrWritesFailed = "%d write(s) failed"
	MsgErrConfigExists = "%s already exists"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without writing anything"
	MsgFlagNoColor = "Disable colored output"
	MsgFlagFormat  = "Output format (auto, term, text, json)"
	MsgFlagYes     = "Do not prompt, accept defaults"
	MsgFlagBase    = "Base name used by the template"
	MsgFlagDest    = "Destination directory (default ./NAME)"
	MsgFlagNoGit   = "Do not initialize a git repository"
	MsgFlagNoMerge = "Write to NAME_from_template instead of merging into an existing destination"
	MsgFlagWrite   = "Write the configuration file instead of printing it"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/new-long.txt
	msgNewLongRaw string
	MsgNewLong    = strings.TrimSpace(msgNewLongRaw)

	//go:embed msgs/new-example.txt
	msgNewExampleRaw string
	MsgNewExample    = strings.TrimRight(msgNewExampleRaw, "\n")

	//go:embed msgs/rename-long.txt
	msgRenameLongRaw string
	MsgRenameLong    = strings.TrimSpace(msgRenameLongRaw)

	//go:embed msgs/rename-example.txt
	msgRenameExampleRaw string
	MsgRenameExample    = strings.TrimRight(msgRenameExampleRaw, "\n")

	//go:embed msgs/templates-long.txt
	msgTemplatesLongRaw string
	MsgTemplatesLong    = strings.TrimSpace(msgTemplatesLongRaw)

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
