package storage

import (
	"context"
	"io"
	"net/http"
	"os"

	"mosaic-media/domain/upload"
)

// resumableSessionHeader marks the first request of a resumable session
// so the storage backend can accept a continuable transmission
const resumableSessionHeader = "x-goog-resumable"

// resumableUpload streams the file as a plain request body, not multipart.
// Content-Length declares the full byte size up front; storage backends
// differ on the success status they return, so 200, 201 and 204 all count.
func (e *Executor) resumableUpload(ctx context.Context, target *upload.Target, localPath string, verb string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return &upload.TransportError{Stage: upload.StageTransfer, Err: err}
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return &upload.TransportError{Stage: upload.StageTransfer, Err: err}
	}

	req, err := http.NewRequestWithContext(ctx, verb, target.URL, f)
	if err != nil {
		return &upload.TransportError{Stage: upload.StageTransfer, Err: err}
	}
	req.ContentLength = info.Size()
	req.Header.Set(resumableSessionHeader, "start")
	if target.ContentType != "" {
		req.Header.Set("Content-Type", target.ContentType)
	}

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return &upload.TransportError{Stage: upload.StageTransfer, Err: err}
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusNoContent:
		return nil
	default:
		body, _ := io.ReadAll(resp.Body)
		return &upload.TransportError{
			Stage:      upload.StageTransfer,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
}
