package core

import (
	"context"
	"sync"

	"github.com/arthur-debert/maidsweep/pkg/actions"
	"github.com/arthur-debert/maidsweep/pkg/dispatcher"
	"github.com/arthur-debert/maidsweep/pkg/filesystem"
	"github.com/arthur-debert/maidsweep/pkg/logging"
	"github.com/arthur-debert/maidsweep/pkg/patterns"
	"github.com/arthur-debert/maidsweep/pkg/shell"
	"github.com/arthur-debert/maidsweep/pkg/store"
	"github.com/arthur-debert/maidsweep/pkg/sweep"
	"github.com/arthur-debert/maidsweep/pkg/types"
	"github.com/arthur-debert/maidsweep/pkg/walker"
)

// RunOptions contains everything a run needs
type RunOptions struct {
	// Roots are the paths to scan; "." when empty
	Roots []string

	// Config selects the action. FilterTags are expanded through the
	// pattern synonyms before use.
	Config types.RunConfig

	PatternsPath string
	StoreURI     string

	// UseStore sweeps persisted records instead of scanning Roots
	UseStore bool

	// Store replaces the store opened from StoreURI. It is not closed.
	Store types.RecordStore

	// FileSystem defaults to the OS filesystem
	FileSystem types.FS

	// Runner and FindShell replace subprocess handling, mostly for tests
	Runner    actions.CommandRunner
	FindShell func() (shell.Shell, error)
}

// RunResult summarizes what a run did
type RunResult struct {
	Action   string
	Roots    int
	Swept    int
	UseStore bool
}

// Run executes a complete run
func Run(ctx context.Context, opts RunOptions) (*RunResult, error) {
	logger := logging.GetLogger("core.run")
	done := logging.LogOperationStart(logger, "run")
	defer done()

	table, err := patterns.Load(opts.PatternsPath)
	if err != nil {
		return nil, err
	}

	cfg := opts.Config
	cfg.FilterTags = table.ExpandTags(cfg.FilterTags)

	fs := opts.FileSystem
	if fs == nil {
		fs = filesystem.NewOS()
	}

	run := &types.RunContext{
		Config:   &cfg,
		Patterns: table,
		FS:       fs,
	}

	if opts.Store != nil {
		run.Store = opts.Store
	} else if cfg.Save || opts.UseStore {
		s, err := store.Open(ctx, opts.StoreURI)
		if err != nil {
			return nil, err
		}
		defer func() {
			if err := s.Close(); err != nil {
				logger.Warn().Err(err).Msg("Failed to close store")
			}
		}()
		run.Store = s
	}

	d := dispatcher.New(dispatcher.Options{
		Config: &cfg,
		Executor: actions.New(actions.Options{
			Run:       run,
			Runner:    opts.Runner,
			FindShell: opts.FindShell,
		}),
	})

	result := &RunResult{UseStore: opts.UseStore}
	if a, ok := d.Action(); ok {
		result.Action = a.String()
	}

	logger.Info().
		Str("action", result.Action).
		Strs("tags", cfg.FilterTags).
		Bool("hidden", cfg.Hidden).
		Bool("useStore", opts.UseStore).
		Msg("Starting run")

	if opts.UseStore {
		stats, err := sweep.Run(ctx, run, d)
		result.Swept = stats.Matched
		if err != nil {
			return result, err
		}
		return result, nil
	}

	roots := opts.Roots
	if len(roots) == 0 {
		roots = []string{"."}
	}
	result.Roots = len(roots)
	scan(ctx, run, d, roots)

	return result, nil
}

// scan walks every root concurrently and waits for all of them. A root
// that is not a directory is classified on its own.
func scan(ctx context.Context, run *types.RunContext, d types.Dispatcher, roots []string) {
	logger := logging.GetLogger("core.scan")
	w := walker.New(run, d)

	var wg sync.WaitGroup
	for _, root := range roots {
		wg.Add(1)
		go func() {
			defer wg.Done()

			info, err := run.FS.Stat(root)
			if err != nil {
				logger.Error().Err(err).Str("root", root).Msg("Cannot scan path")
				return
			}

			if !info.IsDir() {
				if _, err := w.Classifier().Classify(ctx, root); err != nil {
					logger.Error().Err(err).Str("root", root).Msg("Classification failed")
				}
				return
			}

			if err := w.Walk(ctx, root); err != nil {
				logger.Error().Err(err).Str("root", root).Msg("Walk failed")
			}
		}()
	}
	wg.Wait()
}
