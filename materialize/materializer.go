// Package materialize drives a source.RowBatchSource to exhaustion and
// accumulates its batches into one typed, nullable array per column.
package materialize

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/brimdata/colmat"
	"github.com/brimdata/colmat/array"
	"github.com/brimdata/colmat/colerr"
	"github.com/brimdata/colmat/source"
	"github.com/segmentio/ksuid"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
	"golang.org/x/sync/errgroup"
)

type Option func(*Materializer)

// WithInitialCapacity sets the number of rows each column reserves
// before the first batch arrives.
func WithInitialCapacity(n int) Option {
	return func(m *Materializer) {
		m.capacity = n
	}
}

// WithParallelism sets how many columns of a batch are appended
// concurrently.  Batches are always processed one at a time.
func WithParallelism(n int) Option {
	return func(m *Materializer) {
		m.parallelism = n
	}
}

// WithPartial makes Run return the rows of every fully appended batch,
// marked Partial, along with the error that ended the run.
func WithPartial() Option {
	return func(m *Materializer) {
		m.partial = true
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(m *Materializer) {
		m.logger = logger
	}
}

func WithMetrics(metrics *Metrics) Option {
	return func(m *Materializer) {
		m.metrics = metrics
	}
}

// WithProgress registers fn to be called after each batch is appended.
// It runs on the goroutine that called Run, between fetches.
func WithProgress(fn func(Progress)) Option {
	return func(m *Materializer) {
		m.progress = fn
	}
}

type Progress struct {
	Rows    int
	Batches int
	// BatchRows is the size of the latest batch.
	BatchRows int
}

// Result is the materialized result set.  Columns are in schema order and
// all have length Rows.
type Result struct {
	Schema  colmat.Schema
	Columns []array.Array
	Rows    int
	Batches int
	// Partial is set when the run failed and the caller asked for
	// the rows materialized before the failure.
	Partial bool
}

// Column returns the column named name.
func (r *Result) Column(name string) (array.Array, bool) {
	i := slices.IndexFunc(r.Schema, func(c colmat.Column) bool { return c.Name == name })
	if i < 0 {
		return nil, false
	}
	return r.Columns[i], true
}

// Materializer is single use: Run may be called once.
type Materializer struct {
	src         source.RowBatchSource
	capacity    int
	parallelism int
	partial     bool
	logger      *zap.Logger
	metrics     *Metrics
	progress    func(Progress)

	state    State
	ran      bool
	schema   colmat.Schema
	builders []array.Builder
	rows     int
	batches  int
}

func New(src source.RowBatchSource, opts ...Option) *Materializer {
	m := &Materializer{
		src:         src,
		capacity:    array.DefaultCapacity,
		parallelism: 1,
		logger:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.metrics == nil {
		m.metrics = NewMetrics(nil)
	}
	m.logger = m.logger.Named("materialize")
	return m
}

func (m *Materializer) State() State {
	return m.state
}

// Run fetches every batch from the source and returns the finished
// columns.  On error no result is returned unless WithPartial was given.
// Errors carry a colerr.Kind: UnsupportedType is reported before the
// first fetch, errors from the source are SourceUnavailable unless the
// source assigned a kind, and a done context yields Canceled.
func (m *Materializer) Run(ctx context.Context) (*Result, error) {
	if m.ran {
		return nil, colerr.E(colerr.Consumed, "materializer already run")
	}
	m.ran = true
	logger := m.logger.With(zap.Stringer("run", ksuid.New()))
	start := time.Now()
	if err := m.init(); err != nil {
		return m.fail(logger, err)
	}
	logger.Debug("schema", zap.Stringer("schema", m.schema))
	for {
		m.state = Fetching
		if err := ctx.Err(); err != nil {
			return m.fail(logger, colerr.E(colerr.Canceled, err))
		}
		n, err := m.src.FetchNextBatch(ctx)
		if err != nil {
			return m.fail(logger, sourceError(err))
		}
		if n == 0 {
			break
		}
		if n < 0 {
			return m.fail(logger, colerr.E(colerr.TruncatedBatch, "source reported %d rows", n))
		}
		m.state = Appending
		if err := m.append(n); err != nil {
			return m.fail(logger, err)
		}
		m.rows += n
		m.batches++
		m.metrics.batch(n)
		if m.progress != nil {
			m.progress(Progress{Rows: m.rows, Batches: m.batches, BatchRows: n})
		}
		logger.Debug("batch appended", zap.Int("batch", m.batches), zap.Int("rows", n), zap.Int("total", m.rows))
	}
	m.state = Finalizing
	res, err := m.finish()
	if err != nil {
		return m.fail(logger, err)
	}
	m.state = Done
	logger.Info("result materialized",
		zap.Int("columns", len(m.schema)),
		zap.Int("rows", m.rows),
		zap.Int("batches", m.batches),
		zap.Duration("elapsed", time.Since(start)),
	)
	return res, nil
}

func (m *Materializer) init() error {
	m.state = Initializing
	m.schema = m.src.Schema()
	for i, c := range m.schema {
		b, err := array.NewBuilder(c.Type, m.capacity)
		if err != nil {
			m.release()
			return fmt.Errorf("column %d (%s): %w", i, c.Name, err)
		}
		m.builders = append(m.builders, b)
	}
	return nil
}

// append copies the batch of n rows out of the source's buffers.  It
// returns only after every column is done so the next fetch cannot
// overwrite buffers still being read.
func (m *Materializer) append(n int) error {
	bufs := m.src.Buffers()
	if len(bufs) != len(m.builders) {
		return colerr.E(colerr.TruncatedBatch, "source returned %d buffers for %d columns", len(bufs), len(m.builders))
	}
	if m.parallelism <= 1 || len(m.builders) < 2 {
		for i, b := range m.builders {
			if err := b.AppendBatch(bufs[i], n); err != nil {
				return m.columnError(i, err)
			}
		}
		return nil
	}
	var group errgroup.Group
	group.SetLimit(m.parallelism)
	for i, b := range m.builders {
		i, b := i, b
		group.Go(func() error {
			if err := b.AppendBatch(bufs[i], n); err != nil {
				return m.columnError(i, err)
			}
			return nil
		})
	}
	return group.Wait()
}

func (m *Materializer) columnError(i int, err error) error {
	return fmt.Errorf("column %d (%s): batch %d: %w", i, m.schema[i].Name, m.batches+1, err)
}

func (m *Materializer) finish() (*Result, error) {
	res := &Result{
		Schema:  m.schema,
		Columns: make([]array.Array, 0, len(m.builders)),
		Rows:    m.rows,
		Batches: m.batches,
	}
	for i, b := range m.builders {
		a, err := b.Finish()
		if err != nil {
			m.release()
			return nil, m.columnError(i, err)
		}
		// A failed parallel append may have left some columns one
		// batch ahead of the others.
		if a.Len() > m.rows {
			a = a.Head(m.rows)
		}
		res.Columns = append(res.Columns, a)
	}
	m.builders = nil
	return res, nil
}

func (m *Materializer) release() {
	for _, b := range m.builders {
		b.Release()
	}
	m.builders = nil
}

func (m *Materializer) fail(logger *zap.Logger, err error) (*Result, error) {
	at := m.state
	m.state = Failed
	m.metrics.failure(err)
	logger.Error("materialization failed",
		zap.Stringer("state", at),
		zap.Int("rows", m.rows),
		zap.Int("batches", m.batches),
		zap.Error(err),
	)
	if m.partial && m.builders != nil {
		res, ferr := m.finish()
		if ferr == nil {
			res.Partial = true
			return res, err
		}
	}
	m.release()
	return nil, err
}

// sourceError classifies an error returned by FetchNextBatch while keeping
// it in the chain for errors.Is and errors.As.
func sourceError(err error) error {
	if colerr.KindOf(err) != colerr.Other {
		return err
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return colerr.E(colerr.Canceled, err)
	}
	return colerr.E(colerr.SourceUnavailable, err)
}
