package upload

import (
	"fmt"
	"strings"
)

// Stage identifies the pipeline stage where an upload attempt ended
type Stage string

const (
	StageProbe     Stage = "probe"
	StageNegotiate Stage = "negotiate"
	StageTransfer  Stage = "transfer"
	StageFinalize  Stage = "finalize"
)

// LimitKind distinguishes which platform limit a video exceeded
type LimitKind string

const (
	LimitDuration LimitKind = "duration"
	LimitSize     LimitKind = "size"
)

// LimitError is a validation rejection: the video exceeds a platform limit.
// The upfront flow raises it at negotiation; both flows can raise it at
// finalize, where the server re-checks the bytes it actually received.
type LimitError struct {
	Kind   LimitKind
	Detail string
}

func (e *LimitError) Error() string {
	if e.Kind == LimitDuration {
		return fmt.Sprintf("video exceeds the 90-minute duration limit: %s", e.Detail)
	}
	return fmt.Sprintf("video exceeds the 5 GiB size limit: %s", e.Detail)
}

// ClassifyLimit maps a server rejection detail to a LimitKind. The control
// plane does not tag the violated limit explicitly: a detail mentioning
// duration means the 90-minute check failed, anything else the size check.
func ClassifyLimit(detail string) LimitKind {
	if strings.Contains(strings.ToLower(detail), "duration") {
		return LimitDuration
	}
	return LimitSize
}

// MetadataError is a negotiation rejection for malformed video metadata
// (upfront flow only)
type MetadataError struct {
	Detail string
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("upload metadata rejected: %s", e.Detail)
}

// PolicyError is a storage-side rejection of a signed-form upload whose
// bytes violate the signing policy, such as an object over 5 GiB
type PolicyError struct {
	Body string
}

func (e *PolicyError) Error() string {
	return fmt.Sprintf("storage rejected upload by policy: %s", e.Body)
}

// TransportError is any non-validation failure talking to the control plane
// or the storage endpoint: connection errors, unexpected status codes, and
// 2xx responses that violate the protocol contract. Unlike the validation
// rejections above it points at the service, not the asset, so a retry of
// the whole pipeline may succeed.
type TransportError struct {
	Stage      Stage
	StatusCode int    // 0 when the request never produced a response
	Body       string // Raw response body, kept verbatim for diagnostics
	Err        error
}

func (e *TransportError) Error() string {
	if e.StatusCode == 0 {
		if e.Err != nil {
			return fmt.Sprintf("%s failed: %v", e.Stage, e.Err)
		}
		return fmt.Sprintf("%s failed: %s", e.Stage, e.Body)
	}
	return fmt.Sprintf("%s failed: HTTP %d: %s", e.Stage, e.StatusCode, e.Body)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
