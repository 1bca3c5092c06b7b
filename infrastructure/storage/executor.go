package storage

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"mosaic-media/domain/upload"
)

// defaultTimeout bounds one bulk transfer. Transfer time scales with file
// size, so this is far longer than a control-plane call's deadline.
const defaultTimeout = 30 * time.Minute

// Executor implements upload.Transferrer against a server-issued storage
// target. The mechanism is selected from the target's method tag alone;
// the URL shape is never inspected.
type Executor struct {
	httpClient *http.Client
}

// ExecutorOption is a functional option for configuring Executor
type ExecutorOption func(*Executor)

// WithHTTPClient sets a custom HTTP client (for testing)
func WithHTTPClient(hc *http.Client) ExecutorOption {
	return func(e *Executor) {
		e.httpClient = hc
	}
}

// WithTimeout overrides the transfer timeout
func WithTimeout(d time.Duration) ExecutorOption {
	return func(e *Executor) {
		e.httpClient.Timeout = d
	}
}

// NewExecutor creates a transfer executor
func NewExecutor(opts ...ExecutorOption) *Executor {
	e := &Executor{
		httpClient: &http.Client{Timeout: defaultTimeout},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Transfer implements upload.Transferrer
func (e *Executor) Transfer(ctx context.Context, target *upload.Target, localPath string) error {
	switch target.Method {
	case upload.MethodSignedForm:
		return e.signedFormUpload(ctx, target, localPath)
	case upload.MethodResumablePost:
		return e.resumableUpload(ctx, target, localPath, http.MethodPost)
	case upload.MethodResumablePut:
		return e.resumableUpload(ctx, target, localPath, http.MethodPut)
	default:
		return &upload.TransportError{
			Stage: upload.StageTransfer,
			Body:  fmt.Sprintf("unknown transfer method %q", target.Method),
		}
	}
}

// Ensure Executor implements upload.Transferrer
var _ upload.Transferrer = (*Executor)(nil)
