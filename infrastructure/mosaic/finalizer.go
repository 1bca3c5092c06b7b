package mosaic

import (
	"context"
	"net/http"

	"mosaic-media/domain/upload"
)

const finalizePath = "/videos/finalize_upload"

type finalizePayload struct {
	VideoID string `json:"video_id"`
}

// Finalizer commits an uploaded object via POST /videos/finalize_upload.
// It keeps no local state, so calling it again for an already-finalized
// video is safe; the exact replay behavior is the server's to define.
type Finalizer struct {
	client *Client
}

// NewFinalizer creates a finalizer on the given control-plane client
func NewFinalizer(c *Client) *Finalizer {
	return &Finalizer{client: c}
}

// Finalize implements upload.Finalizer. A 413 means the server re-checked
// the uploaded bytes against the size and duration limits and refused the
// asset; the rejection detail decides which limit was hit.
func (f *Finalizer) Finalize(ctx context.Context, videoID string) error {
	status, body, err := f.client.do(ctx, http.MethodPost, finalizePath, finalizePayload{VideoID: videoID})
	if err != nil {
		return &upload.TransportError{Stage: upload.StageFinalize, Err: err}
	}

	switch status {
	case http.StatusOK:
		return nil
	case http.StatusRequestEntityTooLarge:
		detail := detailFrom(body)
		return &upload.LimitError{Kind: upload.ClassifyLimit(detail), Detail: detail}
	default:
		return &upload.TransportError{Stage: upload.StageFinalize, StatusCode: status, Body: string(body)}
	}
}

// Ensure Finalizer implements upload.Finalizer
var _ upload.Finalizer = (*Finalizer)(nil)
