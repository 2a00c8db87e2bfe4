// Package sweep acts on previously persisted records instead of walking
// the filesystem: it queries the store for the run's tag filter and
// dispatches every matching record's path with its stored tags.
package sweep

import (
	"context"

	"github.com/arthur-debert/maidsweep/pkg/errors"
	"github.com/arthur-debert/maidsweep/pkg/logging"
	"github.com/arthur-debert/maidsweep/pkg/types"
)

// Stats summarizes a sweep
type Stats struct {
	Matched int
}

// Run dispatches every record carrying one of the run's filter tags. The
// filter is expected to be synonym-expanded already. Dispatch failures are
// logged and do not stop the sweep; a failing query does.
func Run(ctx context.Context, run *types.RunContext, d types.Dispatcher) (Stats, error) {
	logger := logging.GetLogger("sweep")
	var stats Stats

	if run.Store == nil {
		return stats, errors.New(errors.ErrNoStore, "sweeping needs a metadata store")
	}

	tags := run.Config.FilterTags
	logger.Debug().Strs("tags", tags).Msg("Sweeping stored records")

	if len(tags) == 0 {
		logger.Warn().Msg("No tags given, nothing to sweep")
		return stats, nil
	}

	err := run.Store.Find(ctx, tags, func(rec types.Record) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		stats.Matched++
		if err := d.Dispatch(ctx, rec.Path, types.TagSet(rec.Tags)); err != nil {
			logger.Error().Err(err).Str("path", rec.Path).Msg("Dispatch failed")
		}
		return nil
	})
	if err != nil {
		if errors.GetErrorCode(err) == errors.ErrUnknown {
			err = errors.Wrap(err, errors.ErrStoreQuery, "sweep query failed")
		}
		return stats, err
	}

	logger.Info().Int("matched", stats.Matched).Msg("Sweep finished")
	return stats, nil
}
