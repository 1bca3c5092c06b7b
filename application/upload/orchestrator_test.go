package upload

import (
	"context"
	"errors"
	"testing"

	"mosaic-media/domain/upload"
	"mosaic-media/domain/video"
)

// fakeChecker reports a fixed existence answer
type fakeChecker struct {
	exists bool
}

func (c *fakeChecker) Exists(path string) bool { return c.exists }

func (c *fakeChecker) Size(path string) (int64, error) { return 0, nil }

// fakeProber returns scripted metadata
type fakeProber struct {
	meta  video.Metadata
	err   error
	calls int
}

func (p *fakeProber) Probe(ctx context.Context, path string) (video.Metadata, error) {
	p.calls++
	if p.err != nil {
		return video.Metadata{}, p.err
	}
	return p.meta, nil
}

// fakeNegotiator returns a scripted target or error
type fakeNegotiator struct {
	target *upload.Target
	err    error
	calls  int
	intent upload.Intent
}

func (n *fakeNegotiator) Negotiate(ctx context.Context, intent upload.Intent) (*upload.Target, error) {
	n.calls++
	n.intent = intent
	if n.err != nil {
		return nil, n.err
	}
	return n.target, nil
}

// fakeTransferrer records invocations
type fakeTransferrer struct {
	err    error
	calls  int
	target *upload.Target
}

func (t *fakeTransferrer) Transfer(ctx context.Context, target *upload.Target, localPath string) error {
	t.calls++
	t.target = target
	return t.err
}

// fakeFinalizer records invocations
type fakeFinalizer struct {
	err   error
	calls int
}

func (f *fakeFinalizer) Finalize(ctx context.Context, videoID string) error {
	f.calls++
	return f.err
}

func validMeta() video.Metadata {
	return video.Metadata{Width: 1920, Height: 1080, DurationMS: 12 * 60 * 1000, SizeBytes: 50 * 1024 * 1024}
}

func resumableTarget(id string) *upload.Target {
	return &upload.Target{VideoID: id, URL: "https://store/x", Method: upload.MethodResumablePost}
}

func TestOrchestrator_Success(t *testing.T) {
	neg := &fakeNegotiator{target: resumableTarget("v1")}
	tr := &fakeTransferrer{}
	fin := &fakeFinalizer{}
	o := NewOrchestrator(&fakeChecker{exists: true}, &fakeProber{meta: validMeta()}, neg, tr, fin, nil)

	outcome := o.Upload(context.Background(), upload.Request{LocalPath: "/tmp/clip.mp4"})

	if outcome.Status != upload.StatusSucceeded {
		t.Fatalf("Status = %q, want succeeded (err: %v)", outcome.Status, outcome.Err)
	}
	if outcome.VideoID != "v1" {
		t.Errorf("VideoID = %q, want v1", outcome.VideoID)
	}
	if neg.calls != 1 || tr.calls != 1 || fin.calls != 1 {
		t.Errorf("calls = %d/%d/%d, want 1/1/1", neg.calls, tr.calls, fin.calls)
	}
	if neg.intent.ContentType != "video/mp4" {
		t.Errorf("intent content type = %q, want video/mp4 from extension", neg.intent.ContentType)
	}
}

func TestOrchestrator_MissingFileSkipsNetwork(t *testing.T) {
	prober := &fakeProber{meta: validMeta()}
	neg := &fakeNegotiator{target: resumableTarget("v1")}
	tr := &fakeTransferrer{}
	fin := &fakeFinalizer{}
	o := NewOrchestrator(&fakeChecker{exists: false}, prober, neg, tr, fin, nil)

	outcome := o.Upload(context.Background(), upload.Request{LocalPath: "/tmp/missing.mp4"})

	if outcome.Status != upload.StatusRejected {
		t.Errorf("Status = %q, want rejected", outcome.Status)
	}
	if outcome.Stage != upload.StageProbe {
		t.Errorf("Stage = %q, want probe", outcome.Stage)
	}
	var probeErr *video.ProbeError
	if !errors.As(outcome.Err, &probeErr) {
		t.Errorf("Err = %v, want *video.ProbeError", outcome.Err)
	}
	if prober.calls != 0 || neg.calls != 0 || tr.calls != 0 || fin.calls != 0 {
		t.Errorf("no stage should run for a missing file, got %d/%d/%d/%d probes/negotiations/transfers/finalizes",
			prober.calls, neg.calls, tr.calls, fin.calls)
	}
}

func TestOrchestrator_ProbeFailureSkipsNetwork(t *testing.T) {
	prober := &fakeProber{err: &video.ProbeError{Path: "/tmp/junk.mp4", Err: errors.New("not a container")}}
	neg := &fakeNegotiator{target: resumableTarget("v1")}
	tr := &fakeTransferrer{}
	o := NewOrchestrator(&fakeChecker{exists: true}, prober, neg, tr, &fakeFinalizer{}, nil)

	outcome := o.Upload(context.Background(), upload.Request{LocalPath: "/tmp/junk.mp4"})

	if outcome.Status != upload.StatusRejected || outcome.Stage != upload.StageProbe {
		t.Errorf("outcome = %q at %q, want rejected at probe", outcome.Status, outcome.Stage)
	}
	if neg.calls != 0 || tr.calls != 0 {
		t.Error("negotiation and transfer must not run after a probe failure")
	}
}

func TestOrchestrator_NegotiationRejectionNeverReachesTransfer(t *testing.T) {
	neg := &fakeNegotiator{err: &upload.LimitError{Kind: upload.LimitDuration, Detail: "duration exceeds maximum"}}
	tr := &fakeTransferrer{}
	fin := &fakeFinalizer{}
	o := NewOrchestrator(&fakeChecker{exists: true}, &fakeProber{meta: validMeta()}, neg, tr, fin, nil)

	outcome := o.Upload(context.Background(), upload.Request{LocalPath: "/tmp/long.mp4"})

	if outcome.Status != upload.StatusRejected || outcome.Stage != upload.StageNegotiate {
		t.Errorf("outcome = %q at %q, want rejected at negotiate", outcome.Status, outcome.Stage)
	}
	var limitErr *upload.LimitError
	if !errors.As(outcome.Err, &limitErr) || limitErr.Kind != upload.LimitDuration {
		t.Errorf("Err = %v, want duration limit error", outcome.Err)
	}
	if tr.calls != 0 {
		t.Errorf("transferrer invoked %d times, want 0", tr.calls)
	}
	if fin.calls != 0 {
		t.Errorf("finalizer invoked %d times, want 0", fin.calls)
	}
}

func TestOrchestrator_TransferFailureSkipsFinalize(t *testing.T) {
	neg := &fakeNegotiator{target: &upload.Target{
		VideoID: "v2",
		URL:     "https://store/y",
		Method:  upload.MethodSignedForm,
		Fields:  map[string]string{"policy": "abc"},
	}}
	tr := &fakeTransferrer{err: &upload.PolicyError{Body: "EntityTooLarge"}}
	fin := &fakeFinalizer{}
	o := NewOrchestrator(&fakeChecker{exists: true}, &fakeProber{meta: validMeta()}, neg, tr, fin, nil)

	outcome := o.Upload(context.Background(), upload.Request{LocalPath: "/tmp/big.mp4"})

	if outcome.Status != upload.StatusRejected || outcome.Stage != upload.StageTransfer {
		t.Errorf("outcome = %q at %q, want rejected at transfer", outcome.Status, outcome.Stage)
	}
	if outcome.VideoID != "v2" {
		t.Errorf("VideoID = %q, want v2 carried from negotiation", outcome.VideoID)
	}
	if fin.calls != 0 {
		t.Errorf("finalizer invoked %d times, want 0", fin.calls)
	}
}

func TestOrchestrator_FinalizeRejection(t *testing.T) {
	neg := &fakeNegotiator{target: resumableTarget("v3")}
	fin := &fakeFinalizer{err: &upload.LimitError{Kind: upload.LimitSize, Detail: "file too large"}}
	o := NewOrchestrator(&fakeChecker{exists: true}, &fakeProber{meta: validMeta()}, neg, &fakeTransferrer{}, fin, nil)

	outcome := o.Upload(context.Background(), upload.Request{LocalPath: "/tmp/clip.mp4"})

	if outcome.Status != upload.StatusRejected || outcome.Stage != upload.StageFinalize {
		t.Errorf("outcome = %q at %q, want rejected at finalize", outcome.Status, outcome.Stage)
	}
	if outcome.VideoID != "v3" {
		t.Errorf("VideoID = %q, want v3", outcome.VideoID)
	}
}

func TestOrchestrator_TransportFailureDistinguished(t *testing.T) {
	neg := &fakeNegotiator{err: &upload.TransportError{Stage: upload.StageNegotiate, StatusCode: 503, Body: "unavailable"}}
	o := NewOrchestrator(&fakeChecker{exists: true}, &fakeProber{meta: validMeta()}, neg, &fakeTransferrer{}, &fakeFinalizer{}, nil)

	outcome := o.Upload(context.Background(), upload.Request{LocalPath: "/tmp/clip.mp4"})

	if outcome.Status != upload.StatusTransportFailed {
		t.Errorf("Status = %q, want transport-failed", outcome.Status)
	}
}

func TestOrchestrator_MetadataOverrideSkipsProbe(t *testing.T) {
	prober := &fakeProber{meta: validMeta()}
	neg := &fakeNegotiator{target: resumableTarget("v4")}
	meta := validMeta()
	o := NewOrchestrator(&fakeChecker{exists: true}, prober, neg, &fakeTransferrer{}, &fakeFinalizer{}, nil)

	outcome := o.Upload(context.Background(), upload.Request{LocalPath: "/tmp/clip.mp4", Metadata: &meta})

	if outcome.Status != upload.StatusSucceeded {
		t.Fatalf("Status = %q, want succeeded (err: %v)", outcome.Status, outcome.Err)
	}
	if prober.calls != 0 {
		t.Errorf("prober invoked %d times, want 0 with explicit metadata", prober.calls)
	}
	if neg.intent.Metadata.Width != meta.Width {
		t.Errorf("intent carried width %d, want override %d", neg.intent.Metadata.Width, meta.Width)
	}
}

func TestOrchestrator_ExplicitContentTypeWins(t *testing.T) {
	neg := &fakeNegotiator{target: resumableTarget("v5")}
	o := NewOrchestrator(&fakeChecker{exists: true}, &fakeProber{meta: validMeta()}, neg, &fakeTransferrer{}, &fakeFinalizer{}, nil)

	o.Upload(context.Background(), upload.Request{LocalPath: "/tmp/clip.mp4", ContentType: "video/custom"})

	if neg.intent.ContentType != "video/custom" {
		t.Errorf("intent content type = %q, want explicit override", neg.intent.ContentType)
	}
}
