package upload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"mosaic-media/domain/upload"
	"mosaic-media/domain/video"
)

// Orchestrator drives one upload attempt through its four stages: probe
// the local file, negotiate a storage target, transfer the bytes, and
// finalize. Stages run strictly in sequence, each failure ends the attempt,
// and nothing is retried internally; whether a retry of the whole pipeline
// is worthwhile is the caller's decision, informed by the outcome's status.
type Orchestrator struct {
	checker     video.FileChecker
	prober      video.Prober
	negotiator  upload.Negotiator
	transferrer upload.Transferrer
	finalizer   upload.Finalizer
	output      io.Writer
}

// NewOrchestrator creates an upload orchestrator
func NewOrchestrator(
	checker video.FileChecker,
	prober video.Prober,
	negotiator upload.Negotiator,
	transferrer upload.Transferrer,
	finalizer upload.Finalizer,
	output io.Writer,
) *Orchestrator {
	if output == nil {
		output = io.Discard
	}
	return &Orchestrator{
		checker:     checker,
		prober:      prober,
		negotiator:  negotiator,
		transferrer: transferrer,
		finalizer:   finalizer,
		output:      output,
	}
}

// Upload runs the full pipeline for one local file and returns its
// terminal outcome. The file is verified locally before the first network
// call; an upload never opens a server transaction for a file that does
// not exist or cannot be decoded.
func (o *Orchestrator) Upload(ctx context.Context, req upload.Request) upload.Outcome {
	if !o.checker.Exists(req.LocalPath) {
		err := &video.ProbeError{Path: req.LocalPath, Err: errors.New("file does not exist")}
		return upload.Failed(upload.StageProbe, "", err)
	}

	meta, err := o.resolveMetadata(ctx, req)
	if err != nil {
		return upload.Failed(upload.StageProbe, "", err)
	}
	fmt.Fprintf(o.output, "Probed %s: %dx%d, %.1f min, %.2f MB (%s)\n",
		filepath.Base(req.LocalPath),
		meta.Width, meta.Height,
		float64(meta.DurationMS)/60000,
		float64(meta.SizeBytes)/1024/1024,
		meta.ContentType,
	)

	intent := upload.Intent{
		Filename:    filepath.Base(req.LocalPath),
		ContentType: meta.ContentType,
		Metadata:    meta,
	}
	target, err := o.negotiator.Negotiate(ctx, intent)
	if err != nil {
		return upload.Failed(upload.StageNegotiate, "", err)
	}
	fmt.Fprintf(o.output, "Negotiated upload %s (%s)\n", target.VideoID, target.Method)

	if err := o.transferrer.Transfer(ctx, target, req.LocalPath); err != nil {
		return upload.Failed(upload.StageTransfer, target.VideoID, err)
	}
	fmt.Fprintf(o.output, "Transferred %s\n", filepath.Base(req.LocalPath))

	if err := o.finalizer.Finalize(ctx, target.VideoID); err != nil {
		return upload.Failed(upload.StageFinalize, target.VideoID, err)
	}
	fmt.Fprintf(o.output, "Finalized %s\n", target.VideoID)

	return upload.Succeeded(target.VideoID)
}

// resolveMetadata applies the request's overrides over the probed values.
// An explicit metadata override skips the container probe entirely; the
// content type is still resolved from the override or the file extension.
func (o *Orchestrator) resolveMetadata(ctx context.Context, req upload.Request) (video.Metadata, error) {
	if req.Metadata != nil {
		meta := *req.Metadata
		if meta.ContentType == "" {
			meta.ContentType = video.ResolveContentType(req.LocalPath, req.ContentType)
		}
		if err := meta.Validate(); err != nil {
			return video.Metadata{}, &video.ProbeError{Path: req.LocalPath, Err: err}
		}
		return meta, nil
	}

	meta, err := o.prober.Probe(ctx, req.LocalPath)
	if err != nil {
		return video.Metadata{}, err
	}
	meta.ContentType = video.ResolveContentType(req.LocalPath, req.ContentType)
	return meta, nil
}
