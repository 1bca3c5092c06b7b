package probe

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"mosaic-media/domain/video"
)

// FFProbe implements video.Prober by shelling out to ffprobe
type FFProbe struct {
	ffprobePath string
	runner      CommandRunner
}

// FFProbeOption is a functional option for configuring FFProbe
type FFProbeOption func(*FFProbe)

// WithFFProbePath sets a custom ffprobe executable path
func WithFFProbePath(path string) FFProbeOption {
	return func(p *FFProbe) {
		p.ffprobePath = path
	}
}

// WithCommandRunner sets a custom command runner (for testing)
func WithCommandRunner(runner CommandRunner) FFProbeOption {
	return func(p *FFProbe) {
		p.runner = runner
	}
}

// NewFFProbe creates a new ffprobe-based metadata prober
func NewFFProbe(opts ...FFProbeOption) *FFProbe {
	p := &FFProbe{
		ffprobePath: "ffprobe",
		runner:      &ExecCommandRunner{},
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// ffprobeOutput mirrors the JSON emitted by -show_format -show_streams
type ffprobeOutput struct {
	Streams []struct {
		CodecType string `json:"codec_type"`
		Width     int64  `json:"width"`
		Height    int64  `json:"height"`
	} `json:"streams"`
	Format struct {
		Duration string `json:"duration"`
	} `json:"format"`
}

// Probe implements video.Prober. Byte size comes from the filesystem,
// dimensions and duration from the first video stream ffprobe reports.
func (p *FFProbe) Probe(ctx context.Context, path string) (video.Metadata, error) {
	info, err := os.Stat(path)
	if err != nil {
		return video.Metadata{}, &video.ProbeError{Path: path, Err: err}
	}

	out, err := p.runner.Output(ctx, p.ffprobePath,
		"-v", "error",
		"-print_format", "json",
		"-show_format",
		"-show_streams",
		path,
	)
	if err != nil {
		return video.Metadata{}, &video.ProbeError{Path: path, Err: fmt.Errorf("ffprobe failed: %w", err)}
	}

	var parsed ffprobeOutput
	if err := json.Unmarshal(out, &parsed); err != nil {
		return video.Metadata{}, &video.ProbeError{Path: path, Err: fmt.Errorf("unexpected ffprobe output: %w", err)}
	}

	meta := video.Metadata{SizeBytes: info.Size()}

	found := false
	for _, s := range parsed.Streams {
		if s.CodecType == "video" {
			meta.Width = s.Width
			meta.Height = s.Height
			found = true
			break
		}
	}
	if !found {
		return video.Metadata{}, &video.ProbeError{Path: path, Err: errors.New("no video stream found")}
	}

	if parsed.Format.Duration != "" {
		secs, err := strconv.ParseFloat(parsed.Format.Duration, 64)
		if err != nil {
			return video.Metadata{}, &video.ProbeError{Path: path, Err: fmt.Errorf("invalid container duration %q", parsed.Format.Duration)}
		}
		meta.DurationMS = int64(secs * 1000)
	}

	if err := meta.Validate(); err != nil {
		return video.Metadata{}, &video.ProbeError{Path: path, Err: err}
	}

	return meta, nil
}

// VerifyInstalled checks that ffprobe is available
func (p *FFProbe) VerifyInstalled(ctx context.Context) error {
	if _, err := p.runner.Output(ctx, p.ffprobePath, "-version"); err != nil {
		return fmt.Errorf("ffprobe not found or not executable: %w", err)
	}
	return nil
}

// Ensure FFProbe implements video.Prober
var _ video.Prober = (*FFProbe)(nil)
