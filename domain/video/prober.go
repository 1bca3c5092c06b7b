package video

import (
	"context"
	"fmt"
)

// Prober defines the interface for extracting physical properties from a
// local video file. This is a port that can be implemented by different
// infrastructure adapters. Implementations must not perform network I/O;
// probing happens before an upload makes its first server call.
type Prober interface {
	// Probe inspects the file at path and returns its metadata.
	// ContentType is left empty; resolving it is the caller's concern.
	Probe(ctx context.Context, path string) (Metadata, error)
}

// FileChecker defines the interface for local file checks
// This is a port that can be implemented by different infrastructure adapters
type FileChecker interface {
	// Exists returns true if the file exists
	Exists(path string) bool

	// Size returns the file size in bytes
	Size(path string) (int64, error)
}

// ProbeError indicates that a local file could not be read or decoded
// as a video container
type ProbeError struct {
	Path string
	Err  error
}

func (e *ProbeError) Error() string {
	return fmt.Sprintf("cannot probe %s: %v", e.Path, e.Err)
}

func (e *ProbeError) Unwrap() error {
	return e.Err
}
