package core

import (
	"context"

	"github.com/arthur-debert/maidsweep/pkg/logging"
	"github.com/arthur-debert/maidsweep/pkg/patterns"
	"github.com/arthur-debert/maidsweep/pkg/store"
	"github.com/arthur-debert/maidsweep/pkg/types"
)

// ListOptions selects the records to list
type ListOptions struct {
	PatternsPath string
	StoreURI     string
	// Tags are expanded through synonyms; empty lists every record
	Tags []string
}

// ListRecords returns stored records, oldest first
func ListRecords(ctx context.Context, opts ListOptions) ([]types.Record, error) {
	logger := logging.GetLogger("core.list")

	table, err := patterns.Load(opts.PatternsPath)
	if err != nil {
		return nil, err
	}
	tags := table.ExpandTags(opts.Tags)

	s, err := store.Open(ctx, opts.StoreURI)
	if err != nil {
		return nil, err
	}
	defer func() { _ = s.Close() }()

	records := []types.Record{}
	collect := func(rec types.Record) error {
		records = append(records, rec)
		return nil
	}

	if len(tags) == 0 {
		err = s.Each(ctx, collect)
	} else {
		err = s.Find(ctx, tags, collect)
	}
	if err != nil {
		return nil, err
	}

	logger.Debug().Strs("tags", tags).Int("count", len(records)).Msg("Records listed")
	return records, nil
}
