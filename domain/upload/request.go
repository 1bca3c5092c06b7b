package upload

import "mosaic-media/domain/video"

// Request describes one local file to upload. ContentType and Metadata are
// optional overrides; when unset they are derived by the metadata probe.
// The file must exist and be readable before any network call is made.
type Request struct {
	LocalPath   string          // Full path to the local video file
	ContentType string          // Explicit MIME type (optional)
	Metadata    *video.Metadata // Explicit metadata override (optional)
}
