package storage

import (
	"context"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"mosaic-media/domain/upload"
)

// fileFieldName is the form field the storage backend expects the bytes in
const fileFieldName = "file"

// signedFormUpload submits the file as a multipart form POST. The signing
// scheme requires every policy field to precede the file part, so the
// fields are written first and the file part last. The body is streamed
// through a pipe; a multi-gigabyte upload never lives in memory.
func (e *Executor) signedFormUpload(ctx context.Context, target *upload.Target, localPath string) error {
	f, err := os.Open(localPath)
	if err != nil {
		return &upload.TransportError{Stage: upload.StageTransfer, Err: err}
	}
	defer f.Close()

	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		for _, key := range sortedKeys(target.Fields) {
			if err := mw.WriteField(key, target.Fields[key]); err != nil {
				pw.CloseWithError(err)
				return
			}
		}

		part, err := mw.CreateFormFile(fileFieldName, filepath.Base(localPath))
		if err != nil {
			pw.CloseWithError(err)
			return
		}
		if _, err := io.Copy(part, f); err != nil {
			pw.CloseWithError(err)
			return
		}

		pw.CloseWithError(mw.Close())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target.URL, pr)
	if err != nil {
		return &upload.TransportError{Stage: upload.StageTransfer, Err: err}
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := e.httpClient.Do(req)
	if err != nil {
		return &upload.TransportError{Stage: upload.StageTransfer, Err: err}
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	switch resp.StatusCode {
	case http.StatusNoContent:
		// Storage accepted the object
		return nil
	case http.StatusBadRequest:
		// The signed policy refused the object itself, e.g. over 5 GiB
		return &upload.PolicyError{Body: string(body)}
	default:
		return &upload.TransportError{
			Stage:      upload.StageTransfer,
			StatusCode: resp.StatusCode,
			Body:       string(body),
		}
	}
}

// sortedKeys returns the field names in a stable order. The protocol only
// requires fields before the file; sorting keeps request bodies
// deterministic.
func sortedKeys(fields map[string]string) []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
