// Package chunkflow runs report formatting over datasets too large to hold
// in memory. A caller-supplied paged fetcher is wrapped into a lazy, finite,
// non-restartable sequence of batches; the streaming adapters feed those
// batches through the same formatting rules as the in-memory renderers.
package chunkflow

import (
	"context"
	"iter"
	"time"
)

// Fetcher retrieves one page of rows starting at offset. Returning an empty
// or short page signals the last page. Errors propagate to the consumer
// unchanged; the processor never retries.
type Fetcher func(ctx context.Context, offset, limit int) ([]interface{}, error)

// Processor wraps a Fetcher into batch sequences. It holds no state across
// calls: every Batches invocation starts a fresh sequence from offset 0.
type Processor struct {
	fetch Fetcher
	cfg   *config
}

// New builds a Processor around fetch.
func New(fetch Fetcher, opts ...Option) *Processor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return &Processor{fetch: fetch, cfg: cfg}
}

// BatchSize reports the configured page size.
func (p *Processor) BatchSize() int { return p.cfg.batchSize }

// Batches returns the lazy batch sequence. Fetches are strictly sequential
// and offset-ordered: each must complete, and any configured delay elapse,
// before the next begins. There is no parallel prefetch. Cancellation is
// cooperative; stop pulling and nothing more is fetched.
func (p *Processor) Batches(ctx context.Context) iter.Seq2[[]interface{}, error] {
	return func(yield func([]interface{}, error) bool) {
		offset := 0
		processed := 0
		for {
			if err := ctx.Err(); err != nil {
				yield(nil, err)
				return
			}

			batch, err := p.fetch(ctx, offset, p.cfg.batchSize)
			if err != nil {
				yield(nil, err)
				return
			}
			if len(batch) == 0 {
				p.reportProgress(processed, processed)
				return
			}

			processed += len(batch)
			last := len(batch) < p.cfg.batchSize
			if last {
				p.reportProgress(processed, processed)
			} else {
				p.reportProgress(processed, -1)
			}

			if !yield(batch, nil) {
				return
			}
			if last {
				return
			}

			offset += len(batch)
			if p.cfg.delay > 0 {
				select {
				case <-time.After(p.cfg.delay):
				case <-ctx.Done():
					yield(nil, ctx.Err())
					return
				}
			}
		}
	}
}

func (p *Processor) reportProgress(processed, total int) {
	if p.cfg.progress != nil {
		p.cfg.progress(processed, total)
	}
}

// CollectAll drains the whole sequence into memory. An explicit escape
// hatch, not the default path.
func (p *Processor) CollectAll(ctx context.Context) ([]interface{}, error) {
	var all []interface{}
	for batch, err := range p.Batches(ctx) {
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
	}
	return all, nil
}

// TransformChunks applies fn to each batch, one batch in flight at a time,
// and yields the transformed batches lazily.
func (p *Processor) TransformChunks(ctx context.Context, fn func(ctx context.Context, batch []interface{}) ([]interface{}, error)) iter.Seq2[[]interface{}, error] {
	return func(yield func([]interface{}, error) bool) {
		for batch, err := range p.Batches(ctx) {
			if err != nil {
				yield(nil, err)
				return
			}
			out, err := fn(ctx, batch)
			if !yield(out, err) || err != nil {
				return
			}
		}
	}
}

// CountTotal is best effort: it returns a definite count only when the very
// first page is already shorter than the batch size. It never scans the full
// source just to count.
func (p *Processor) CountTotal(ctx context.Context) (int, bool, error) {
	batch, err := p.fetch(ctx, 0, p.cfg.batchSize)
	if err != nil {
		return 0, false, err
	}
	if len(batch) < p.cfg.batchSize {
		return len(batch), true, nil
	}
	return 0, false, nil
}
