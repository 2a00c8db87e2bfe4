package maidsweep

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/maidsweep/internal/version"
	"github.com/arthur-debert/maidsweep/pkg/cobrax/topics"
	"github.com/arthur-debert/maidsweep/pkg/config"
	"github.com/arthur-debert/maidsweep/pkg/core"
	"github.com/arthur-debert/maidsweep/pkg/errors"
	"github.com/arthur-debert/maidsweep/pkg/logging"
	"github.com/arthur-debert/maidsweep/pkg/paths"
	"github.com/arthur-debert/maidsweep/pkg/patterns"
	"github.com/arthur-debert/maidsweep/pkg/types"
	"github.com/arthur-debert/maidsweep/pkg/ui"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags are shared by the root command and its subcommands
type globalFlags struct {
	verbosity    int
	debug        bool
	patternsPath string
	settingsPath string
	storeURI     string
	tags         []string

	settings *config.Settings
}

// overrides turns the flags the user actually set into settings keys
func (g *globalFlags) overrides(cmd *cobra.Command) map[string]interface{} {
	out := map[string]interface{}{}
	flags := cmd.Flags()
	if flags.Changed("config") {
		out["patterns.path"] = g.patternsPath
	}
	if flags.Changed("db") {
		out["store.uri"] = g.storeURI
	}
	if flags.Changed("verbose") {
		out["log.verbosity"] = g.verbosity
	}
	return out
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	g := &globalFlags{}
	var run types.RunConfig
	var useDB bool

	rootCmd := &cobra.Command{
		Use:     "maidsweep [PATH...] [flags] [-x -- ARGS...]",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Example: MsgRootExample,
		Version: version.Version,
		Args:    cobra.ArbitraryArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			settings, err := config.Load(config.Options{
				File:      g.settingsPath,
				Overrides: g.overrides(cmd),
			})
			if err != nil {
				// log what we can before bailing out
				logging.SetupLogger(logging.EffectiveVerbosity(g.verbosity, g.debug))
				return err
			}
			g.settings = settings

			logging.SetupLogger(logging.EffectiveVerbosity(settings.Log.Verbosity, g.debug))
			log.Debug().
				Str("command", cmd.Name()).
				Str("settings", settings.Source).
				Str("patterns", settings.Patterns.Path).
				Msg("Command started")
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			roots, execArgs := splitArgs(cmd, args)
			if run.Exec && len(execArgs) == 0 {
				return errors.New(errors.ErrInvalidInput, MsgExecNoArgs)
			}

			cfg := run
			cfg.ExecArgs = execArgs
			cfg.FilterTags = g.tags
			cfg.Debug = g.debug

			result, err := core.Run(cmd.Context(), core.RunOptions{
				Roots:        roots,
				Config:       cfg,
				PatternsPath: g.settings.Patterns.Path,
				StoreURI:     g.settings.Store.URI,
				UseStore:     useDB,
			})
			if err != nil {
				return err
			}

			switch {
			case result.Action == "":
				printNotice(cmd, MsgRunNoAction)
			case result.UseStore:
				printSummary(cmd, fmt.Sprintf(MsgSweepDone, result.Swept, plural(result.Swept, "record", "records"), result.Action))
			default:
				printSummary(cmd, fmt.Sprintf(MsgRunDone, result.Roots, plural(result.Roots, "path", "paths"), result.Action))
			}
			return nil
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	pflags := rootCmd.PersistentFlags()
	pflags.CountVarP(&g.verbosity, "verbose", "v", MsgFlagVerbose)
	pflags.BoolVar(&g.debug, "debug", false, MsgFlagDebug)
	pflags.StringVarP(&g.patternsPath, "config", "c", "", MsgFlagConfig)
	pflags.StringVar(&g.settingsPath, "settings", "", MsgFlagSettings)
	pflags.StringVar(&g.storeURI, "db", "", MsgFlagDB)
	pflags.StringArrayVarP(&g.tags, "tag", "t", nil, MsgFlagTag)

	flags := rootCmd.Flags()
	flags.BoolVar(&run.Save, "save", false, MsgFlagSave)
	flags.StringVar(&run.CopyTo, "cp", "", MsgFlagCopy)
	flags.StringVar(&run.MoveTo, "mv", "", MsgFlagMove)
	flags.BoolVarP(&run.Exec, "exec", "x", false, MsgFlagExec)
	flags.BoolVar(&run.Delete, "rm", false, MsgFlagDelete)
	flags.BoolVarP(&run.Hidden, "hidden", "H", false, MsgFlagHidden)
	flags.BoolVar(&useDB, "use-db", false, MsgFlagUseDB)

	_ = rootCmd.MarkFlagDirname("cp")
	_ = rootCmd.MarkFlagDirname("mv")
	_ = rootCmd.MarkPersistentFlagFilename("config", "yaml", "yml", "toml")
	_ = rootCmd.MarkPersistentFlagFilename("settings", "toml")

	rootCmd.AddGroup(&cobra.Group{ID: "core", Title: "COMMANDS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})
	rootCmd.SetUsageTemplate(MsgUsageTemplate)

	rootCmd.AddCommand(newListCmd(g))
	rootCmd.AddCommand(newGenConfigCmd())
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())

	topicsFS, err := fs.Sub(embeddedTopics, "topics")
	if err == nil {
		err = topics.InitializeWithOptions(rootCmd, topicsFS, topics.Options{
			Extensions: []string{".txt", ".md"},
			Renderer:   topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		log.Warn().Err(err).Msg("Help topics unavailable")
	}

	return rootCmd
}

// splitArgs separates scan paths from the exec template after "--"
func splitArgs(cmd *cobra.Command, args []string) ([]string, []string) {
	dash := cmd.ArgsLenAtDash()
	if dash < 0 {
		return args, nil
	}
	return args[:dash], args[dash:]
}

func newListCmd(g *globalFlags) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:     "list",
		Short:   MsgListShort,
		Long:    MsgListLong,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := ui.ParseFormat(format)
			if err != nil {
				return err
			}
			renderer, err := ui.NewRenderer(f, cmd.OutOrStdout())
			if err != nil {
				return err
			}

			records, err := core.ListRecords(cmd.Context(), core.ListOptions{
				PatternsPath: g.settings.Patterns.Path,
				StoreURI:     g.settings.Store.URI,
				Tags:         g.tags,
			})
			if err != nil {
				return err
			}
			return renderer.RenderRecords(records)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "auto", MsgFlagFormat)
	_ = cmd.RegisterFlagCompletionFunc("format", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return []string{"auto", "term", "text", "json"}, cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newGenConfigCmd() *cobra.Command {
	var write, pattern bool

	cmd := &cobra.Command{
		Use:     "genconfig",
		Short:   MsgGenConfigShort,
		Long:    MsgGenConfigLong,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p := paths.New()

			content, target := config.GenerateConfigContent(), p.SettingsFile()
			if pattern {
				content, target = patterns.DefaultDocument(), p.PatternsFile()
			}

			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}
			return writeNew(cmd, target, content)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&pattern, "patterns", false, MsgFlagPatterns)
	return cmd
}

// writeNew creates path with content unless it already exists
func writeNew(cmd *cobra.Command, path, content string) error {
	if _, err := os.Stat(path); err == nil {
		cmd.PrintErrf(MsgFileExists, path)
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "Failed to create directory: %s", filepath.Dir(path))
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return errors.Wrapf(err, errors.ErrInternal, "failed to write %s", path)
	}

	_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgFileWritten, path)
	return err
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), MsgVersionFormat, version.Version, version.Commit, version.Date)
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		GroupID:               "misc",
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
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
