package upload

import (
	"strings"
	"testing"
)

func TestClassifyLimit(t *testing.T) {
	tests := []struct {
		name   string
		detail string
		want   LimitKind
	}{
		{
			name:   "duration mentioned",
			detail: "duration exceeds maximum",
			want:   LimitDuration,
		},
		{
			name:   "duration mentioned in mixed case",
			detail: "Video Duration over limit",
			want:   LimitDuration,
		},
		{
			name:   "size mentioned",
			detail: "file size exceeds maximum",
			want:   LimitSize,
		},
		{
			name:   "anything else defaults to size",
			detail: "limit exceeded",
			want:   LimitSize,
		},
		{
			name:   "empty detail defaults to size",
			detail: "",
			want:   LimitSize,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ClassifyLimit(tt.detail); got != tt.want {
				t.Errorf("ClassifyLimit(%q) = %q, want %q", tt.detail, got, tt.want)
			}
		})
	}
}

func TestLimitError_Error(t *testing.T) {
	durErr := &LimitError{Kind: LimitDuration, Detail: "duration exceeds maximum"}
	if !strings.Contains(durErr.Error(), "90-minute") {
		t.Errorf("duration error should name the 90-minute limit, got %q", durErr.Error())
	}

	sizeErr := &LimitError{Kind: LimitSize, Detail: "too big"}
	if !strings.Contains(sizeErr.Error(), "5 GiB") {
		t.Errorf("size error should name the 5 GiB limit, got %q", sizeErr.Error())
	}
}

func TestTransportError_Error(t *testing.T) {
	withStatus := &TransportError{Stage: StageNegotiate, StatusCode: 503, Body: "unavailable"}
	if !strings.Contains(withStatus.Error(), "HTTP 503") {
		t.Errorf("expected status in message, got %q", withStatus.Error())
	}
	if !strings.Contains(withStatus.Error(), "negotiate") {
		t.Errorf("expected stage in message, got %q", withStatus.Error())
	}

	noResponse := &TransportError{Stage: StageTransfer, Body: "connection reset"}
	if strings.Contains(noResponse.Error(), "HTTP") {
		t.Errorf("no-response error should not fabricate a status, got %q", noResponse.Error())
	}
}
