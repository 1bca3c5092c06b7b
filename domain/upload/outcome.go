package upload

import (
	"errors"

	"mosaic-media/domain/video"
)

// Status classifies the terminal result of an upload attempt
type Status string

const (
	// StatusSucceeded means the asset was transferred and finalized.
	StatusSucceeded Status = "succeeded"

	// StatusRejected means the asset itself was refused: unreadable file,
	// invalid metadata, or a size/duration/policy violation. Retrying with
	// the same file will fail again.
	StatusRejected Status = "rejected"

	// StatusTransportFailed means the service or network misbehaved.
	// The asset may be fine; retrying the whole pipeline is the caller's
	// decision.
	StatusTransportFailed Status = "transport-failed"
)

// Outcome is the single terminal result of one upload attempt. The
// orchestrator produces exactly one per call and never retries internally.
type Outcome struct {
	Status  Status
	VideoID string // Set on success, and on failures past negotiation
	Stage   Stage  // Stage that ended the attempt (empty on success)
	Err     error  // Original error detail (nil on success)
}

// Succeeded builds the outcome for a finalized upload
func Succeeded(videoID string) Outcome {
	return Outcome{Status: StatusSucceeded, VideoID: videoID}
}

// Failed builds the outcome for a failed stage, classifying the error as a
// rejection of the asset or a transport failure
func Failed(stage Stage, videoID string, err error) Outcome {
	return Outcome{
		Status:  classify(err),
		VideoID: videoID,
		Stage:   stage,
		Err:     err,
	}
}

func classify(err error) Status {
	var (
		probeErr *video.ProbeError
		metaErr  *MetadataError
		limitErr *LimitError
		polErr   *PolicyError
	)
	if errors.As(err, &probeErr) || errors.As(err, &metaErr) ||
		errors.As(err, &limitErr) || errors.As(err, &polErr) {
		return StatusRejected
	}
	return StatusTransportFailed
}
