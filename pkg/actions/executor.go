package actions

import (
	"context"
	"path/filepath"
	"runtime"

	"github.com/arthur-debert/maidsweep/pkg/errors"
	"github.com/arthur-debert/maidsweep/pkg/executor"
	"github.com/arthur-debert/maidsweep/pkg/filesystem"
	"github.com/arthur-debert/maidsweep/pkg/logging"
	"github.com/arthur-debert/maidsweep/pkg/shell"
	"github.com/arthur-debert/maidsweep/pkg/template"
	"github.com/arthur-debert/maidsweep/pkg/types"
	"github.com/rs/zerolog"
)

// CommandRunner starts a program and waits for it to exit
type CommandRunner interface {
	Run(ctx context.Context, name string, args ...string) error
}

// Options contains configuration for the action executor
type Options struct {
	// Run is the shared run context. Its Store is used by the tag action.
	Run *types.RunContext
	// Runner defaults to an executor writing to the process streams
	Runner CommandRunner
	// FindShell defaults to shell.Find
	FindShell func() (shell.Shell, error)
	// GOOS selects the platform utilities; defaults to runtime.GOOS
	GOOS   string
	Logger *zerolog.Logger
}

// Executor performs actions
type Executor struct {
	run       *types.RunContext
	fs        types.FS
	runner    CommandRunner
	findShell func() (shell.Shell, error)
	goos      string
	logger    zerolog.Logger
}

// New creates a new action executor
func New(opts Options) *Executor {
	logger := logging.GetLogger("actions")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	run := opts.Run
	if run == nil {
		run = &types.RunContext{Config: &types.RunConfig{}}
	}

	fs := run.FS
	if fs == nil {
		fs = filesystem.NewOS()
	}

	runner := opts.Runner
	if runner == nil {
		runner = executor.New(executor.Options{Logger: opts.Logger})
	}

	findShell := opts.FindShell
	if findShell == nil {
		findShell = shell.Find
	}

	goos := opts.GOOS
	if goos == "" {
		goos = runtime.GOOS
	}

	return &Executor{
		run:       run,
		fs:        fs,
		runner:    runner,
		findShell: findShell,
		goos:      goos,
		logger:    logger,
	}
}

// Execute performs a on path. It blocks until any subprocess exits.
func (e *Executor) Execute(ctx context.Context, a Action, path string, tags types.TagSet) error {
	e.logger.Debug().
		Str("action", string(a.Kind)).
		Str("path", path).
		Strs("tags", tags).
		Msg("Executing action")

	switch a.Kind {
	case KindTag:
		return e.tag(ctx, path, tags)
	case KindExec:
		return e.exec(ctx, a.Args, path, tags)
	case KindCopy, KindMove:
		return e.transfer(ctx, a, path, tags)
	case KindDelete:
		return e.remove(ctx, path)
	}

	return errors.Newf(errors.ErrUnknownAction, "unknown action %q", a.Kind)
}

func (e *Executor) tag(ctx context.Context, path string, tags types.TagSet) error {
	if len(tags) == 0 {
		return errors.New(errors.ErrMissingTags, "No tags available").WithDetail("path", path)
	}
	if e.run.Store == nil {
		return errors.New(errors.ErrNoStore, "no metadata store configured").WithDetail("path", path)
	}

	rec := types.Record{
		Path: path,
		Tags: append([]string(nil), tags...),
	}
	if info, err := e.fs.Lstat(path); err == nil {
		rec.LastModified = info.ModTime().Unix()
	}

	saved, err := e.run.Store.Insert(ctx, rec)
	if err != nil {
		return err
	}

	e.logger.Info().
		Str("id", saved.ID).
		Str("path", path).
		Strs("tags", saved.Tags).
		Msg("Tagged")
	return nil
}

func (e *Executor) exec(ctx context.Context, args []string, path string, tags types.TagSet) error {
	if len(args) == 0 {
		return errors.New(errors.ErrMissingTemplate, "No exec arguments provided")
	}

	sh, err := e.findShell()
	if err != nil {
		return err
	}

	command := template.Render(args, path, tags)

	e.logger.Debug().
		Strs("tags", tags).
		Str("path", path).
		Strs("template", args).
		Str("shell", sh.Path).
		Str("command", command).
		Msg("Rendered exec template")

	return e.runner.Run(ctx, sh.Path, sh.Args(command)...)
}

func (e *Executor) transfer(ctx context.Context, a Action, path string, tags types.TagSet) error {
	first := tags.First()
	if first == "" {
		return errors.Newf(errors.ErrMissingTags, "No tags available to %s %s", a.Kind, path).
			WithDetail("path", path)
	}

	destDir := filepath.Join(a.Dest, first)
	if err := e.fs.MkdirAll(destDir, 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "Failed to create directory: %s", destDir).
			WithDetail("path", destDir)
	}

	name, args := e.transferCommand(a.Kind, path, destDir)
	return e.runner.Run(ctx, name, args...)
}

func (e *Executor) remove(ctx context.Context, path string) error {
	name, args := e.deleteCommand(path)
	return e.runner.Run(ctx, name, args...)
}
