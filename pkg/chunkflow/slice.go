package chunkflow

import (
	"context"
	"iter"
)

// Chunk splits an in-memory slice into a lazy sequence of fixed-size
// sub-slices. The sub-slices alias the input; no copying happens.
func Chunk[T any](items []T, size int) iter.Seq[[]T] {
	return func(yield func([]T) bool) {
		if size <= 0 {
			return
		}
		for start := 0; start < len(items); start += size {
			end := start + size
			if end > len(items) {
				end = len(items)
			}
			if !yield(items[start:end]) {
				return
			}
		}
	}
}

// SliceFetcher adapts an in-memory slice into a Fetcher, mostly for tests
// and small data sets.
func SliceFetcher(items []interface{}) Fetcher {
	return func(_ context.Context, offset, limit int) ([]interface{}, error) {
		if offset >= len(items) {
			return nil, nil
		}
		end := offset + limit
		if end > len(items) {
			end = len(items)
		}
		return items[offset:end], nil
	}
}
