package reportgen

import "errors"

// Sentinel errors for programmatic error handling.
var (
	// ErrUnsupportedFormat is returned by the registry for unknown format
	// keys. Fatal and immediate, never retried.
	ErrUnsupportedFormat = errors.New("unsupported format")

	// ErrDocumentGeneration wraps a failure of the underlying layout or
	// writer primitive. No partial buffer accompanies it.
	ErrDocumentGeneration = errors.New("document generation failed")
)
