//go:build integration

package steps

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"

	appupload "mosaic-media/application/upload"
	"mosaic-media/domain/upload"
	"mosaic-media/domain/video"
	"mosaic-media/infrastructure/mosaic"
	"mosaic-media/infrastructure/storage"

	"github.com/cucumber/godog"
)

// scenarioProber returns scripted metadata instead of decoding a real file
type scenarioProber struct {
	meta video.Metadata
}

func (p *scenarioProber) Probe(ctx context.Context, path string) (video.Metadata, error) {
	return p.meta, nil
}

// scenarioChecker treats every path as an existing file of the scripted size
type scenarioChecker struct {
	size int64
}

func (c *scenarioChecker) Exists(path string) bool { return true }

func (c *scenarioChecker) Size(path string) (int64, error) { return c.size, nil }

type uploadScenario struct {
	controlPlane *httptest.Server
	storageSrv   *httptest.Server

	meta video.Metadata

	storageStatus   int
	storageHits     atomic.Int64
	finalizeStatus  int
	finalizeDetail  string
	finalizeHits    atomic.Int64
	negotiateFail   bool
	negotiateMethod string

	localPath string
	outcome   upload.Outcome
}

func newUploadScenario() *uploadScenario {
	s := &uploadScenario{
		storageStatus:  http.StatusNoContent,
		finalizeStatus: http.StatusOK,
	}

	s.storageSrv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.storageHits.Add(1)
		io.Copy(io.Discard, r.Body)
		w.WriteHeader(s.storageStatus)
	}))

	s.controlPlane = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/videos/get_upload_url":
			if s.negotiateFail {
				w.WriteHeader(http.StatusRequestEntityTooLarge)
				json.NewEncoder(w).Encode(map[string]string{"detail": "video duration exceeds the maximum"})
				return
			}
			target := map[string]any{
				"video_id":   "vid-bdd",
				"upload_url": s.storageSrv.URL,
			}
			if s.negotiateMethod != "" {
				target["method"] = s.negotiateMethod
			} else {
				target["fields"] = map[string]string{"key": "videos/vid-bdd", "policy": "p"}
			}
			json.NewEncoder(w).Encode(target)
		case "/videos/finalize_upload":
			s.finalizeHits.Add(1)
			if s.finalizeStatus != http.StatusOK {
				w.WriteHeader(s.finalizeStatus)
				json.NewEncoder(w).Encode(map[string]string{"detail": s.finalizeDetail})
				return
			}
			w.WriteHeader(http.StatusOK)
		default:
			http.NotFound(w, r)
		}
	}))

	return s
}

func (s *uploadScenario) close() {
	s.controlPlane.Close()
	s.storageSrv.Close()
}

func (s *uploadScenario) aVideoExceedingTheSizeLimit() error {
	s.meta = video.Metadata{Width: 1920, Height: 1080, DurationMS: 600000, SizeBytes: video.MaxSizeBytes + 1}
	return s.writeLocalFile()
}

func (s *uploadScenario) aVideoExceedingTheDurationLimit() error {
	s.meta = video.Metadata{Width: 1920, Height: 1080, DurationMS: video.MaxDurationMS + 1, SizeBytes: 1024}
	return s.writeLocalFile()
}

func (s *uploadScenario) aVideoWithinTheLimits() error {
	s.meta = video.Metadata{Width: 1280, Height: 720, DurationMS: 60000, SizeBytes: 1024}
	return s.writeLocalFile()
}

// writeLocalFile creates a small real file for the transfer stage to
// stream; the scripted prober supplies the interesting metadata
func (s *uploadScenario) writeLocalFile() error {
	dir, err := os.MkdirTemp("", "mosaic-bdd")
	if err != nil {
		return err
	}
	s.localPath = filepath.Join(dir, "clip.mp4")
	return os.WriteFile(s.localPath, []byte("bdd video bytes"), 0o644)
}

func (s *uploadScenario) platformIssuesSignedFormTargets() error {
	s.negotiateFail = false
	s.negotiateMethod = ""
	return nil
}

func (s *uploadScenario) platformIssuesResumableTargets(method string) error {
	s.negotiateFail = false
	s.negotiateMethod = method
	return nil
}

func (s *uploadScenario) platformRejectsNegotiationOverDuration() error {
	s.negotiateFail = true
	return nil
}

func (s *uploadScenario) storageAcceptsTransfers() error {
	s.storageStatus = http.StatusNoContent
	return nil
}

func (s *uploadScenario) storageIsUnavailable() error {
	s.storageStatus = http.StatusServiceUnavailable
	return nil
}

func (s *uploadScenario) storageRejectsUnderPolicy() error {
	s.storageStatus = http.StatusBadRequest
	return nil
}

func (s *uploadScenario) finalizeRejectsOverSize() error {
	s.finalizeStatus = http.StatusRequestEntityTooLarge
	s.finalizeDetail = "uploaded asset exceeds the size limit"
	return nil
}

func (s *uploadScenario) finalizeAccepts() error {
	s.finalizeStatus = http.StatusOK
	return nil
}

func (s *uploadScenario) iUploadThroughFlow(flow string) error {
	client := mosaic.NewClient(s.controlPlane.URL, "mk_bddtestkey123")

	var negotiator upload.Negotiator
	switch flow {
	case "legacy":
		negotiator = mosaic.NewLegacyNegotiator(client)
	case "upfront":
		negotiator = mosaic.NewUpfrontNegotiator(client)
	default:
		return fmt.Errorf("unknown flow %q", flow)
	}

	orchestrator := appupload.NewOrchestrator(
		&scenarioChecker{size: s.meta.SizeBytes},
		&scenarioProber{meta: s.meta},
		negotiator,
		storage.NewExecutor(),
		mosaic.NewFinalizer(client),
		io.Discard,
	)

	s.outcome = orchestrator.Upload(context.Background(), upload.Request{LocalPath: s.localPath})
	return nil
}

func (s *uploadScenario) outcomeIsRejectionAtStage(stage string) error {
	if s.outcome.Status != upload.StatusRejected {
		return fmt.Errorf("status = %q, want rejected (err: %v)", s.outcome.Status, s.outcome.Err)
	}
	if string(s.outcome.Stage) != stage {
		return fmt.Errorf("stage = %q, want %q", s.outcome.Stage, stage)
	}
	return nil
}

func (s *uploadScenario) outcomeIsTransportFailureAtStage(stage string) error {
	if s.outcome.Status != upload.StatusTransportFailed {
		return fmt.Errorf("status = %q, want transport-failed (err: %v)", s.outcome.Status, s.outcome.Err)
	}
	if string(s.outcome.Stage) != stage {
		return fmt.Errorf("stage = %q, want %q", s.outcome.Stage, stage)
	}
	return nil
}

func (s *uploadScenario) outcomeIsSuccess() error {
	if s.outcome.Status != upload.StatusSucceeded {
		return fmt.Errorf("status = %q, want succeeded (err: %v)", s.outcome.Status, s.outcome.Err)
	}
	if s.outcome.VideoID == "" {
		return fmt.Errorf("success outcome missing video id")
	}
	return nil
}

func (s *uploadScenario) rejectionNamesLimit(kind string) error {
	var le *upload.LimitError
	if !errors.As(s.outcome.Err, &le) {
		return fmt.Errorf("error = %v, want a limit rejection", s.outcome.Err)
	}
	if string(le.Kind) != kind {
		return fmt.Errorf("limit kind = %q, want %q", le.Kind, kind)
	}
	return nil
}

func (s *uploadScenario) storageEndpointWasHit(n int) error {
	if got := int(s.storageHits.Load()); got != n {
		return fmt.Errorf("storage hits = %d, want %d", got, n)
	}
	return nil
}

func (s *uploadScenario) finalizeWasNeverCalled() error {
	if got := s.finalizeHits.Load(); got != 0 {
		return fmt.Errorf("finalize hits = %d, want 0", got)
	}
	return nil
}

// InitializeUploadScenario registers the upload pipeline steps
func InitializeUploadScenario(ctx *godog.ScenarioContext) {
	var s *uploadScenario

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		s = newUploadScenario()
		return c, nil
	})
	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		s.close()
		return c, nil
	})

	ctx.Step(`^a local video that exceeds the size limit$`, func() error { return s.aVideoExceedingTheSizeLimit() })
	ctx.Step(`^a local video that exceeds the duration limit$`, func() error { return s.aVideoExceedingTheDurationLimit() })
	ctx.Step(`^a local video within the platform limits$`, func() error { return s.aVideoWithinTheLimits() })
	ctx.Step(`^the platform issues signed-form upload targets$`, func() error { return s.platformIssuesSignedFormTargets() })
	ctx.Step(`^the platform issues resumable "([^"]*)" upload targets$`, func(m string) error { return s.platformIssuesResumableTargets(m) })
	ctx.Step(`^the platform rejects negotiation over the duration limit$`, func() error { return s.platformRejectsNegotiationOverDuration() })
	ctx.Step(`^storage accepts transfers$`, func() error { return s.storageAcceptsTransfers() })
	ctx.Step(`^storage is unavailable$`, func() error { return s.storageIsUnavailable() })
	ctx.Step(`^storage rejects the object under its signed policy$`, func() error { return s.storageRejectsUnderPolicy() })
	ctx.Step(`^finalize rejects the upload over the size limit$`, func() error { return s.finalizeRejectsOverSize() })
	ctx.Step(`^finalize accepts the upload$`, func() error { return s.finalizeAccepts() })
	ctx.Step(`^I upload the file through the "([^"]*)" flow$`, func(flow string) error { return s.iUploadThroughFlow(flow) })
	ctx.Step(`^the outcome is a rejection at the "([^"]*)" stage$`, func(stage string) error { return s.outcomeIsRejectionAtStage(stage) })
	ctx.Step(`^the outcome is a transport failure at the "([^"]*)" stage$`, func(stage string) error { return s.outcomeIsTransportFailureAtStage(stage) })
	ctx.Step(`^the outcome is a success$`, func() error { return s.outcomeIsSuccess() })
	ctx.Step(`^the rejection names the "([^"]*)" limit$`, func(kind string) error { return s.rejectionNamesLimit(kind) })
	ctx.Step(`^the storage endpoint was hit (\d+) times?$`, func(n int) error { return s.storageEndpointWasHit(n) })
	ctx.Step(`^the finalize endpoint was never called$`, func() error { return s.finalizeWasNeverCalled() })
}
