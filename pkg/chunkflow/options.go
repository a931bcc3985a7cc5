package chunkflow

import (
	"time"
)

// ProgressFunc is called after each batch with the number of rows processed
// so far and the total when known. Until the final batch the total is
// unknown and reported as -1; on the final batch it equals processed.
type ProgressFunc func(processed, total int)

// Option configures a Processor.
type Option func(*config)

type config struct {
	batchSize int
	progress  ProgressFunc
	delay     time.Duration
}

const defaultBatchSize = 500

func defaultConfig() *config {
	return &config{
		batchSize: defaultBatchSize,
	}
}

// WithBatchSize sets the page size requested from the fetcher.
func WithBatchSize(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(c *config) {
		c.progress = fn
	}
}

// WithDelay inserts a fixed pause between fetches. Simple rate limiting,
// nothing adaptive.
func WithDelay(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.delay = d
		}
	}
}
