//go:generate mockgen -destination=./mock/mock_source.go -package=mock github.com/brimdata/colmat/source RowBatchSource

// Package source defines the contract between the materializer and the
// driver that delivers query results in row batches.
package source

import (
	"context"

	"github.com/brimdata/colmat"
	"github.com/brimdata/colmat/buffer"
)

// RowBatchSource delivers a result set in batches whose size the source
// chooses.  Schema is stable for the life of the result set.  FetchNextBatch
// returns the number of rows now available and returns 0 exactly once, when
// the result set is exhausted.  Buffers returns one column buffer per schema
// column holding the rows of the most recent fetch; the next call to
// FetchNextBatch may overwrite them, so callers must copy what they need
// before fetching again.
type RowBatchSource interface {
	Schema() colmat.Schema
	FetchNextBatch(context.Context) (int, error)
	Buffers() []*buffer.Column
}
