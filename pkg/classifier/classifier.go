// Package classifier assigns tags to a single path from its extension and
// forwards classified paths to the dispatcher.
package classifier

import (
	"context"

	"github.com/arthur-debert/maidsweep/pkg/errors"
	"github.com/arthur-debert/maidsweep/pkg/logging"
	"github.com/arthur-debert/maidsweep/pkg/types"
	"github.com/rs/zerolog"
)

// MiscTag is assigned to files no extension rule matches
const MiscTag = "misc"

// Kind is the outcome of a classification
type Kind int

const (
	// Classified means tags were computed for the path
	Classified Kind = iota
	// IndeterminateDirectory means the path is a directory no rule tags;
	// the walker descends into it instead
	IndeterminateDirectory
)

func (k Kind) String() string {
	if k == IndeterminateDirectory {
		return "indeterminate-directory"
	}
	return "classified"
}

// Result of classifying one path
type Result struct {
	Kind Kind
	Tags types.TagSet
	// Dispatched is false when the tag filter excluded the path
	Dispatched bool
}

// Classifier tags paths against the run's pattern table
type Classifier struct {
	run        *types.RunContext
	dispatcher types.Dispatcher
	logger     zerolog.Logger
}

// New creates a classifier dispatching through d
func New(run *types.RunContext, d types.Dispatcher) *Classifier {
	return &Classifier{
		run:        run,
		dispatcher: d,
		logger:     logging.GetLogger("classifier"),
	}
}

// Classify computes the tags of path. Every tag whose extension set
// contains the path's extension is included, in tag name order. Files
// without a match get MiscTag; directories without a match are reported as
// IndeterminateDirectory and nothing is dispatched.
//
// With a filter in effect only paths whose first tag is in the filter are
// dispatched. Classify waits for the dispatch to complete.
func (c *Classifier) Classify(ctx context.Context, path string) (Result, error) {
	tags := types.TagSet(c.run.Patterns.ExtensionTags(types.Ext(path)))

	if len(tags) == 0 {
		info, err := c.run.FS.Lstat(path)
		if err != nil {
			return Result{}, errors.Wrapf(err, errors.ErrStat, "cannot stat %s", path).
				WithDetail("path", path)
		}
		if info.IsDir() {
			return Result{Kind: IndeterminateDirectory}, nil
		}
		tags = types.TagSet{MiscTag}
	}

	result := Result{Kind: Classified, Tags: tags}

	if cfg := c.run.Config; cfg.HasFilter() && !types.TagSet(cfg.FilterTags).Contains(tags.First()) {
		c.logger.Trace().
			Str("path", path).
			Strs("tags", tags).
			Msg("Filtered out")
		return result, nil
	}

	result.Dispatched = true
	return result, c.dispatcher.Dispatch(ctx, path, tags)
}
