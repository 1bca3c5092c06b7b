package upload

import (
	"context"

	"mosaic-media/domain/video"
)

// Intent carries the upload-intent data a Negotiator sends to the control
// plane. Metadata is always populated by the orchestrator; the legacy
// strategy simply does not transmit it.
type Intent struct {
	Filename    string
	ContentType string
	Metadata    video.Metadata
}

// Negotiator asks the control plane for a storage target.
// This is a port with two concrete strategies: the legacy flow (post-hoc
// validation, always a signed-form target) and the upfront flow
// (pre-validation against the full metadata, method chosen by the server).
type Negotiator interface {
	Negotiate(ctx context.Context, intent Intent) (*Target, error)
}

// Transferrer moves the file bytes to the storage endpoint named by the
// target. Implementations select their mechanism from the target's method
// tag alone and treat response bodies strictly as transport outcomes.
type Transferrer interface {
	Transfer(ctx context.Context, target *Target, localPath string) error
}

// Finalizer commits an uploaded object as a usable video asset. The server
// re-validates size and duration here; this is the only enforcement point
// in the legacy flow and a double-check in the upfront flow.
type Finalizer interface {
	Finalize(ctx context.Context, videoID string) error
}
