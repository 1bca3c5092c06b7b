//go:build !gocv

package probe

import (
	"context"
	"fmt"

	"mosaic-media/domain/video"
)

// GoCVProber is a stub when GoCV/OpenCV is not available
type GoCVProber struct{}

// NewGoCVProber creates a stub prober (requires building with -tags=gocv)
func NewGoCVProber() *GoCVProber {
	return &GoCVProber{}
}

// Probe returns an error indicating the OpenCV prober is not available
func (p *GoCVProber) Probe(ctx context.Context, path string) (video.Metadata, error) {
	return video.Metadata{}, &video.ProbeError{
		Path: path,
		Err:  fmt.Errorf("gocv prober not available: build with '-tags=gocv' and install OpenCV/GoCV, or use the ffprobe prober"),
	}
}

// Ensure GoCVProber implements video.Prober
var _ video.Prober = (*GoCVProber)(nil)
