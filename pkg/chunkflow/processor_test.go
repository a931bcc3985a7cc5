package chunkflow

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intItems(n int) []interface{} {
	items := make([]interface{}, n)
	for i := range items {
		items[i] = i
	}
	return items
}

func TestBatches(t *testing.T) {
	ctx := context.Background()

	t.Run("UnevenLastBatch", func(t *testing.T) {
		p := New(SliceFetcher(intItems(10)), WithBatchSize(3))

		var sizes []int
		for batch, err := range p.Batches(ctx) {
			require.NoError(t, err)
			sizes = append(sizes, len(batch))
		}
		assert.Equal(t, []int{3, 3, 3, 1}, sizes)
	})

	t.Run("ExactMultiple", func(t *testing.T) {
		p := New(SliceFetcher(intItems(6)), WithBatchSize(3))

		var sizes []int
		for batch, err := range p.Batches(ctx) {
			require.NoError(t, err)
			sizes = append(sizes, len(batch))
		}
		// the final empty fetch terminates the sequence
		assert.Equal(t, []int{3, 3}, sizes)
	})

	t.Run("EmptySource", func(t *testing.T) {
		p := New(SliceFetcher(nil), WithBatchSize(3))
		count := 0
		for range p.Batches(ctx) {
			count++
		}
		assert.Equal(t, 0, count)
	})

	t.Run("FetcherError", func(t *testing.T) {
		boom := errors.New("backend down")
		calls := 0
		fetch := func(ctx context.Context, offset, limit int) ([]interface{}, error) {
			calls++
			if offset >= 3 {
				return nil, boom
			}
			return intItems(3), nil
		}

		p := New(fetch, WithBatchSize(3))
		var got error
		batches := 0
		for batch, err := range p.Batches(ctx) {
			if err != nil {
				got = err
				break
			}
			batches++
			_ = batch
		}
		assert.Equal(t, 1, batches)
		assert.ErrorIs(t, got, boom)
		assert.Equal(t, 2, calls)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		cctx, cancel := context.WithCancel(context.Background())
		cancel()

		p := New(SliceFetcher(intItems(10)), WithBatchSize(3))
		var got error
		for _, err := range p.Batches(cctx) {
			got = err
		}
		assert.ErrorIs(t, got, context.Canceled)
	})

	t.Run("EarlyStopFetchesNothingMore", func(t *testing.T) {
		calls := 0
		fetch := func(ctx context.Context, offset, limit int) ([]interface{}, error) {
			calls++
			return intItems(limit), nil
		}

		p := New(fetch, WithBatchSize(5))
		for range p.Batches(ctx) {
			break
		}
		assert.Equal(t, 1, calls)
	})
}

func TestProgressReporting(t *testing.T) {
	type report struct{ processed, total int }
	var reports []report

	p := New(SliceFetcher(intItems(10)),
		WithBatchSize(3),
		WithProgress(func(processed, total int) {
			reports = append(reports, report{processed, total})
		}),
	)

	_, err := p.CollectAll(context.Background())
	require.NoError(t, err)

	// total is unknown (-1) until the short final batch pins it
	assert.Equal(t, []report{
		{3, -1},
		{6, -1},
		{9, -1},
		{10, 10},
	}, reports)
}

func TestCollectAll(t *testing.T) {
	p := New(SliceFetcher(intItems(10)), WithBatchSize(4))
	all, err := p.CollectAll(context.Background())
	require.NoError(t, err)
	require.Len(t, all, 10)
	for i, v := range all {
		assert.Equal(t, i, v)
	}
}

func TestTransformChunks(t *testing.T) {
	p := New(SliceFetcher(intItems(5)), WithBatchSize(2))

	double := func(ctx context.Context, batch []interface{}) ([]interface{}, error) {
		out := make([]interface{}, len(batch))
		for i, v := range batch {
			out[i] = v.(int) * 2
		}
		return out, nil
	}

	var all []interface{}
	for batch, err := range p.TransformChunks(context.Background(), double) {
		require.NoError(t, err)
		all = append(all, batch...)
	}
	assert.Equal(t, []interface{}{0, 2, 4, 6, 8}, all)
}

func TestCountTotal(t *testing.T) {
	ctx := context.Background()

	t.Run("DefiniteOnShortFirstPage", func(t *testing.T) {
		p := New(SliceFetcher(intItems(4)), WithBatchSize(10))
		n, exact, err := p.CountTotal(ctx)
		require.NoError(t, err)
		assert.True(t, exact)
		assert.Equal(t, 4, n)
	})

	t.Run("IndefiniteOnFullFirstPage", func(t *testing.T) {
		p := New(SliceFetcher(intItems(20)), WithBatchSize(10))
		_, exact, err := p.CountTotal(ctx)
		require.NoError(t, err)
		assert.False(t, exact)
	})
}

func TestChunk(t *testing.T) {
	var sizes []int
	for part := range Chunk(intItems(10), 4) {
		sizes = append(sizes, len(part))
	}
	assert.Equal(t, []int{4, 4, 2}, sizes)

	count := 0
	for range Chunk(intItems(10), 0) {
		count++
	}
	assert.Equal(t, 0, count)
}

func TestDefaultBatchSize(t *testing.T) {
	p := New(SliceFetcher(nil))
	assert.Equal(t, 500, p.BatchSize())
	p = New(SliceFetcher(nil), WithBatchSize(-1))
	assert.Equal(t, 500, p.BatchSize())
}
