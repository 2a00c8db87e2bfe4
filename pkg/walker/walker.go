// Package walker traverses directory trees and feeds every entry to the
// classifier, descending into directories the classifier cannot tag.
//
// Each directory is handled in two passes. The first pass is sequential
// over the listing: a name matching a typical-file rule dispatches the
// whole directory with that rule's tag and ends the directory; a name
// matching a filename rule is dispatched on its own goroutine. Every other
// entry is left for the second pass, which classifies each one on its own
// goroutine and recurses into indeterminate directories. A directory's
// Walk does not return until every goroutine it started has finished.
package walker

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/arthur-debert/maidsweep/pkg/classifier"
	"github.com/arthur-debert/maidsweep/pkg/errors"
	"github.com/arthur-debert/maidsweep/pkg/logging"
	"github.com/arthur-debert/maidsweep/pkg/types"
	"github.com/rs/zerolog"
)

// Walker walks directory trees for one run
type Walker struct {
	run        *types.RunContext
	classifier *classifier.Classifier
	dispatcher types.Dispatcher
	logger     zerolog.Logger
}

// New creates a walker that dispatches through d
func New(run *types.RunContext, d types.Dispatcher) *Walker {
	return &Walker{
		run:        run,
		classifier: classifier.New(run, d),
		dispatcher: d,
		logger:     logging.GetLogger("walker"),
	}
}

// Walk processes dir and everything below it. Failures below dir are
// logged and do not stop the walk; the returned error only reports that
// dir itself could not be listed or that ctx was cancelled.
func (w *Walker) Walk(ctx context.Context, dir string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	entries, err := w.run.FS.ReadDir(dir)
	if err != nil {
		dirErr := errors.Wrapf(err, errors.ErrDirRead, "cannot read directory %s", dir).
			WithDetail("path", dir).
			WithDetail("entries", len(entries))
		if len(entries) == 0 {
			return dirErr
		}
		w.logger.Error().Err(dirErr).Str("path", dir).Msg("Directory listing aborted")
	}

	var wg sync.WaitGroup
	deferred := make([]string, 0, len(entries))

	for _, entry := range entries {
		name := entry.Name()
		path := filepath.Join(dir, name)

		if tag, ok := w.run.Patterns.MatchTypical(name); ok {
			w.logger.Debug().
				Str("path", dir).
				Str("file", name).
				Str("tag", tag).
				Msg("Typical file found, tagging directory")
			w.dispatch(ctx, dir, types.TagSet{tag})
			wg.Wait()
			return nil
		}

		if tags, ok := w.run.Patterns.MatchSpecial(name); ok {
			wg.Add(1)
			go func() {
				defer wg.Done()
				w.dispatch(ctx, path, tags)
			}()
			continue
		}

		deferred = append(deferred, path)
	}

	for _, path := range deferred {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.visit(ctx, path)
		}()
	}

	wg.Wait()
	return nil
}

// visit classifies one entry and descends when it is an untagged directory
func (w *Walker) visit(ctx context.Context, path string) {
	if ctx.Err() != nil {
		return
	}

	res, err := w.classifier.Classify(ctx, path)
	if err != nil {
		w.logger.Error().Err(err).Str("path", path).Msg("Classification failed")
		return
	}

	if res.Kind == classifier.IndeterminateDirectory {
		if err := w.Walk(ctx, path); err != nil {
			w.logger.Error().Err(err).Str("path", path).Msg("Walk failed")
		}
	}
}

func (w *Walker) dispatch(ctx context.Context, path string, tags types.TagSet) {
	if err := w.dispatcher.Dispatch(ctx, path, tags); err != nil {
		w.logger.Error().Err(err).Str("path", path).Msg("Dispatch failed")
	}
}

// Classifier returns the classifier used for entries
func (w *Walker) Classifier() *classifier.Classifier {
	return w.classifier
}
