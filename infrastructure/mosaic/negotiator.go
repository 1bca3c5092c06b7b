package mosaic

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"mosaic-media/domain/upload"
)

const negotiatePath = "/videos/get_upload_url"

// intentPayload is the wire request for POST /videos/get_upload_url.
// The metadata fields are pointers so the legacy flow omits them entirely
// instead of sending zeros.
type intentPayload struct {
	Filename    string `json:"filename"`
	ContentType string `json:"content_type"`
	FileSize    *int64 `json:"file_size,omitempty"`
	Width       *int64 `json:"width,omitempty"`
	Height      *int64 `json:"height,omitempty"`
	DurationMS  *int64 `json:"duration_ms,omitempty"`
}

// targetPayload is the wire response for POST /videos/get_upload_url
type targetPayload struct {
	VideoID   string            `json:"video_id"`
	UploadURL string            `json:"upload_url"`
	Fields    map[string]string `json:"fields"`
	Method    string            `json:"method"`
}

// LegacyNegotiator requests an upload target without transmitting the
// probed metadata. The server issues a signed-form target unconditionally;
// size and duration are only checked server-side at finalize time.
type LegacyNegotiator struct {
	client *Client
}

// NewLegacyNegotiator creates a negotiator for the legacy flow
func NewLegacyNegotiator(c *Client) *LegacyNegotiator {
	return &LegacyNegotiator{client: c}
}

// Negotiate implements upload.Negotiator
func (n *LegacyNegotiator) Negotiate(ctx context.Context, intent upload.Intent) (*upload.Target, error) {
	payload := intentPayload{
		Filename:    intent.Filename,
		ContentType: intent.ContentType,
	}

	status, body, err := n.client.do(ctx, http.MethodPost, negotiatePath, payload)
	if err != nil {
		return nil, &upload.TransportError{Stage: upload.StageNegotiate, Err: err}
	}
	if status < 200 || status > 299 {
		return nil, &upload.TransportError{Stage: upload.StageNegotiate, StatusCode: status, Body: string(body)}
	}

	var tp targetPayload
	if err := json.Unmarshal(body, &tp); err != nil {
		return nil, &upload.TransportError{Stage: upload.StageNegotiate, StatusCode: status, Body: string(body), Err: err}
	}
	if tp.VideoID == "" || tp.UploadURL == "" || len(tp.Fields) == 0 {
		return nil, &upload.TransportError{
			Stage:      upload.StageNegotiate,
			StatusCode: status,
			Body:       "response missing video_id, upload_url or fields",
		}
	}

	return &upload.Target{
		VideoID:     tp.VideoID,
		URL:         tp.UploadURL,
		Method:      upload.MethodSignedForm,
		ContentType: intent.ContentType,
		Fields:      tp.Fields,
	}, nil
}

// UpfrontNegotiator transmits the full probed metadata so the server can
// validate size and duration before any bytes move. On acceptance the
// server tells the client which transfer mechanism to use.
type UpfrontNegotiator struct {
	client *Client
}

// NewUpfrontNegotiator creates a negotiator for the upfront flow
func NewUpfrontNegotiator(c *Client) *UpfrontNegotiator {
	return &UpfrontNegotiator{client: c}
}

// Negotiate implements upload.Negotiator
func (n *UpfrontNegotiator) Negotiate(ctx context.Context, intent upload.Intent) (*upload.Target, error) {
	meta := intent.Metadata
	payload := intentPayload{
		Filename:    intent.Filename,
		ContentType: intent.ContentType,
		FileSize:    &meta.SizeBytes,
		Width:       &meta.Width,
		Height:      &meta.Height,
		DurationMS:  &meta.DurationMS,
	}

	status, body, err := n.client.do(ctx, http.MethodPost, negotiatePath, payload)
	if err != nil {
		return nil, &upload.TransportError{Stage: upload.StageNegotiate, Err: err}
	}

	switch {
	case status == http.StatusBadRequest:
		return nil, &upload.MetadataError{Detail: detailFrom(body)}
	case status == http.StatusRequestEntityTooLarge:
		detail := detailFrom(body)
		return nil, &upload.LimitError{Kind: upload.ClassifyLimit(detail), Detail: detail}
	case status < 200 || status > 299:
		return nil, &upload.TransportError{Stage: upload.StageNegotiate, StatusCode: status, Body: string(body)}
	}

	var tp targetPayload
	if err := json.Unmarshal(body, &tp); err != nil {
		return nil, &upload.TransportError{Stage: upload.StageNegotiate, StatusCode: status, Body: string(body), Err: err}
	}
	if tp.VideoID == "" || tp.UploadURL == "" {
		return nil, &upload.TransportError{
			Stage:      upload.StageNegotiate,
			StatusCode: status,
			Body:       "response missing video_id or upload_url",
		}
	}

	method, err := resolveMethod(tp)
	if err != nil {
		return nil, &upload.TransportError{Stage: upload.StageNegotiate, StatusCode: status, Body: err.Error()}
	}

	return &upload.Target{
		VideoID:     tp.VideoID,
		URL:         tp.UploadURL,
		Method:      method,
		ContentType: intent.ContentType,
		Fields:      tp.Fields,
	}, nil
}

// resolveMethod maps the server's method tag to a transfer mechanism.
// The server may still choose the signed-form flow by returning fields
// instead of a method.
func resolveMethod(tp targetPayload) (upload.Method, error) {
	switch tp.Method {
	case http.MethodPost:
		return upload.MethodResumablePost, nil
	case http.MethodPut:
		return upload.MethodResumablePut, nil
	case "":
		if len(tp.Fields) > 0 {
			return upload.MethodSignedForm, nil
		}
		return "", errors.New("response carries neither a transfer method nor signed form fields")
	default:
		return "", fmt.Errorf("unsupported transfer method %q", tp.Method)
	}
}

// Ensure both strategies implement upload.Negotiator
var (
	_ upload.Negotiator = (*LegacyNegotiator)(nil)
	_ upload.Negotiator = (*UpfrontNegotiator)(nil)
)
