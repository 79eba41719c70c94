package combat

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"
)

// Store persists batches of hit records.
type Store interface {
	InsertHits(ctx context.Context, hits []HitRecord) error
}

// JournalOptions tune buffering of the hit journal.
type JournalOptions struct {
	BufferSize    int
	FlushInterval time.Duration
	BatchSize     int
}

// DefaultJournalOptions returns buffering defaults.
func DefaultJournalOptions() JournalOptions {
	return JournalOptions{
		BufferSize:    1024,
		FlushInterval: 2 * time.Second,
		BatchSize:     128,
	}
}

// flushTimeout bounds the final flush after shutdown.
const flushTimeout = 5 * time.Second

// Journal buffers hits from AI ticks and writes them to a Store in batches.
// RecordHit never blocks: when the buffer is full the record is dropped.
//
// A nil Store turns the journal into a counter (database disabled).
type Journal struct {
	store Store
	opts  JournalOptions
	hits  chan HitRecord

	recorded atomic.Int64
	dropped  atomic.Int64
	written  atomic.Int64
}

// NewJournal creates a journal. Zero option fields fall back to defaults.
func NewJournal(store Store, opts JournalOptions) *Journal {
	def := DefaultJournalOptions()
	if opts.BufferSize <= 0 {
		opts.BufferSize = def.BufferSize
	}
	if opts.FlushInterval <= 0 {
		opts.FlushInterval = def.FlushInterval
	}
	if opts.BatchSize <= 0 {
		opts.BatchSize = def.BatchSize
	}
	return &Journal{
		store: store,
		opts:  opts,
		hits:  make(chan HitRecord, opts.BufferSize),
	}
}

// RecordHit enqueues a hit.
func (j *Journal) RecordHit(rec HitRecord) {
	select {
	case j.hits <- rec:
		j.recorded.Add(1)
	default:
		n := j.dropped.Add(1)
		slog.Warn("hit journal buffer full, record dropped",
			"attacker", rec.AttackerID,
			"target", rec.TargetID,
			"dropped", n)
	}
}

// Run flushes buffered hits until ctx is canceled, then drains the buffer
// with a final flush.
func (j *Journal) Run(ctx context.Context) error {
	ticker := time.NewTicker(j.opts.FlushInterval)
	defer ticker.Stop()

	slog.Info("hit journal started",
		"buffer", j.opts.BufferSize,
		"batch", j.opts.BatchSize,
		"interval", j.opts.FlushInterval,
		"persistent", j.store != nil)

	batch := make([]HitRecord, 0, j.opts.BatchSize)
	for {
		select {
		case <-ctx.Done():
			batch = j.drain(batch)
			flushCtx, cancel := context.WithTimeout(context.Background(), flushTimeout)
			j.flush(flushCtx, batch)
			cancel()
			slog.Info("hit journal stopped", "written", j.written.Load(), "dropped", j.dropped.Load())
			return nil

		case rec := <-j.hits:
			batch = append(batch, rec)
			if len(batch) >= j.opts.BatchSize {
				j.flush(ctx, batch)
				batch = batch[:0]
			}

		case <-ticker.C:
			if len(batch) > 0 {
				j.flush(ctx, batch)
				batch = batch[:0]
			}
		}
	}
}

func (j *Journal) drain(batch []HitRecord) []HitRecord {
	for {
		select {
		case rec := <-j.hits:
			batch = append(batch, rec)
		default:
			return batch
		}
	}
}

// flush writes a batch. Store failures are logged and the batch is discarded.
func (j *Journal) flush(ctx context.Context, batch []HitRecord) {
	if len(batch) == 0 {
		return
	}
	if j.store == nil {
		j.written.Add(int64(len(batch)))
		return
	}
	if err := j.store.InsertHits(ctx, batch); err != nil {
		slog.Error("failed to write hit journal batch", "size", len(batch), "err", err)
		return
	}
	j.written.Add(int64(len(batch)))
}

// Recorded returns the number of accepted records.
func (j *Journal) Recorded() int64 { return j.recorded.Load() }

// Dropped returns the number of records dropped on a full buffer.
func (j *Journal) Dropped() int64 { return j.dropped.Load() }

// Written returns the number of records flushed to the store.
func (j *Journal) Written() int64 { return j.written.Load() }
