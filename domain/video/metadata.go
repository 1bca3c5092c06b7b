package video

import "fmt"

// Limits enforced by the Mosaic platform for uploaded videos.
// The upfront flow checks them at negotiation time before any bytes move;
// the legacy flow relies on the server re-checking at finalize time.
const (
	MaxDurationMS int64 = 90 * 60 * 1000
	MaxSizeBytes  int64 = 5 * 1024 * 1024 * 1024
)

// Metadata holds the physical properties of a local video file
type Metadata struct {
	Width       int64  // Frame width in pixels
	Height      int64  // Frame height in pixels
	DurationMS  int64  // Duration in milliseconds
	SizeBytes   int64  // File size in bytes
	ContentType string // MIME type of the container
}

// Validate checks that all physical fields are non-negative
func (m Metadata) Validate() error {
	if m.Width < 0 || m.Height < 0 {
		return fmt.Errorf("invalid dimensions %dx%d: must be non-negative", m.Width, m.Height)
	}
	if m.DurationMS < 0 {
		return fmt.Errorf("invalid duration %dms: must be non-negative", m.DurationMS)
	}
	if m.SizeBytes < 0 {
		return fmt.Errorf("invalid size %d bytes: must be non-negative", m.SizeBytes)
	}
	return nil
}

// ExceedsDuration returns true if the video is longer than the platform allows
func (m Metadata) ExceedsDuration() bool {
	return m.DurationMS > MaxDurationMS
}

// ExceedsSize returns true if the file is larger than the platform allows
func (m Metadata) ExceedsSize() bool {
	return m.SizeBytes > MaxSizeBytes
}
