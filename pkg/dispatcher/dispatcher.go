// Package dispatcher routes classified paths to the single configured
// action. It is the only place that decides whether an entry is acted on:
// hidden entries are skipped unless requested, and when no action is
// configured nothing runs.
package dispatcher

import (
	"context"

	"github.com/arthur-debert/maidsweep/pkg/actions"
	"github.com/arthur-debert/maidsweep/pkg/logging"
	"github.com/arthur-debert/maidsweep/pkg/types"
	"github.com/rs/zerolog"
)

// ActionExecutor performs a selected action
type ActionExecutor interface {
	Execute(ctx context.Context, a actions.Action, path string, tags types.TagSet) error
}

// Options contains configuration for the dispatcher
type Options struct {
	Config   *types.RunConfig
	Executor ActionExecutor
	Logger   *zerolog.Logger
}

// Dispatcher implements types.Dispatcher
type Dispatcher struct {
	cfg      *types.RunConfig
	action   actions.Action
	selected bool
	executor ActionExecutor
	logger   zerolog.Logger
}

// New creates a dispatcher. The action is selected once, up front, since
// the run configuration never changes during a run.
func New(opts Options) *Dispatcher {
	logger := logging.GetLogger("dispatcher")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	cfg := opts.Config
	if cfg == nil {
		cfg = &types.RunConfig{}
	}

	action, ok := actions.Select(cfg)

	return &Dispatcher{
		cfg:      cfg,
		action:   action,
		selected: ok,
		executor: opts.Executor,
		logger:   logger,
	}
}

// Action returns the selected action, if any
func (d *Dispatcher) Action() (actions.Action, bool) {
	return d.action, d.selected
}

// Dispatch runs the configured action on path. Entries are dispatched
// concurrently by the walker; action failures are logged here and never
// returned.
func (d *Dispatcher) Dispatch(ctx context.Context, path string, tags types.TagSet) error {
	if !d.cfg.Hidden && types.IsHidden(path) {
		d.logger.Trace().Str("path", path).Msg("Skipping hidden entry")
		return nil
	}

	if !d.selected {
		d.logger.Info().Str("path", path).Msg("No tasks specified")
		return nil
	}

	if d.cfg.Debug {
		d.logger.Debug().
			Str("path", path).
			Strs("tags", tags).
			Str("action", d.action.String()).
			Msg("Dispatching")
	}

	if err := d.executor.Execute(ctx, d.action, path, tags); err != nil {
		d.logger.Error().
			Err(err).
			Str("path", path).
			Strs("tags", tags).
			Str("action", string(d.action.Kind)).
			Msg("Action failed")
	}
	return nil
}
