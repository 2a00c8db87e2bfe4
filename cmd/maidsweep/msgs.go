package maidsweep

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Tag files by pattern and sweep them into place"
	MsgListShort       = "List saved records"
	MsgGenConfigShort  = "Generate a settings file or pattern document"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"

	// Status messages
	MsgRunDone       = "Swept %d %s with %s"
	MsgRunNoAction   = "Nothing to do: pass --save, --cp, --mv, --exec or --rm"
	MsgExecNoArgs    = "--exec needs a command template after --, e.g. maidsweep -x -- echo {}"
	MsgSweepDone     = "Swept %d saved %s with %s"
	MsgFileWritten   = "Wrote %s\n"
	MsgFileExists    = "%s already exists, leaving it alone\n"
	MsgVersionFormat = "maidsweep version %s\n  commit: %s\n  built:  %s\n"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDebug    = "Trace tags, paths and rendered commands (same as -vv)"
	MsgFlagConfig   = "Pattern document (default ~/.maidsweep.yaml)"
	MsgFlagSettings = "Settings file (default $XDG_CONFIG_HOME/maidsweep/config.toml)"
	MsgFlagDB       = "Metadata store URI: sqlite://PATH, a bare path, or postgres://..."
	MsgFlagTag      = "Only act on entries tagged TAG (repeatable, synonyms expand)"
	MsgFlagSave     = "Save tagged paths to the metadata store"
	MsgFlagCopy     = "Copy entries into DIR/<first tag>/"
	MsgFlagMove     = "Move entries into DIR/<first tag>/"
	MsgFlagExec     = "Run the command template given after -- for each entry"
	MsgFlagDelete   = "Delete entries"
	MsgFlagHidden   = "Include hidden entries"
	MsgFlagUseDB    = "Act on saved records matching --tag instead of scanning"
	MsgFlagFormat   = "Output format: auto, term, text or json"
	MsgFlagWrite    = "Write to the default location instead of stdout"
	MsgFlagPatterns = "Generate the pattern document instead of settings"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/root-example.txt
	msgRootExampleRaw string
	MsgRootExample    = strings.TrimRight(msgRootExampleRaw, "\n")

	//go:embed msgs/list-long.txt
	msgListLongRaw string
	MsgListLong    = strings.TrimSpace(msgListLongRaw)

	//go:embed msgs/genconfig-long.txt
	msgGenConfigLongRaw string
	MsgGenConfigLong    = strings.TrimSpace(msgGenConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
