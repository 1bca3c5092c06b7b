//go:build gocv

package probe

import (
	"context"
	"errors"
	"fmt"
	"os"

	"mosaic-media/domain/video"

	"gocv.io/x/gocv"
)

// GoCVProber implements video.Prober using OpenCV capture properties.
// It needs no external ffprobe binary but requires OpenCV at build time.
type GoCVProber struct{}

// NewGoCVProber creates a new OpenCV-backed metadata prober
func NewGoCVProber() *GoCVProber {
	return &GoCVProber{}
}

// Probe implements video.Prober
func (p *GoCVProber) Probe(ctx context.Context, path string) (video.Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return video.Metadata{}, &video.ProbeError{Path: path, Err: err}
	}

	capture, err := gocv.VideoCaptureFile(path)
	if err != nil {
		return video.Metadata{}, &video.ProbeError{Path: path, Err: fmt.Errorf("cannot open container: %w", err)}
	}
	defer capture.Close()

	if !capture.IsOpened() {
		return video.Metadata{}, &video.ProbeError{Path: path, Err: errors.New("cannot decode as a video container")}
	}

	meta := video.Metadata{
		Width:     int64(capture.Get(gocv.VideoCaptureFrameWidth)),
		Height:    int64(capture.Get(gocv.VideoCaptureFrameHeight)),
		SizeBytes: info.Size(),
	}

	fps := capture.Get(gocv.VideoCaptureFPS)
	frames := capture.Get(gocv.VideoCaptureFrameCount)
	if fps > 0 {
		meta.DurationMS = int64(frames / fps * 1000)
	}

	if err := meta.Validate(); err != nil {
		return video.Metadata{}, &video.ProbeError{Path: path, Err: err}
	}

	return meta, nil
}

// Ensure GoCVProber implements video.Prober
var _ video.Prober = (*GoCVProber)(nil)
