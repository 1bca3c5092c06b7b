package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	appupload "mosaic-media/application/upload"
	"mosaic-media/domain/upload"
	"mosaic-media/domain/video"
	"mosaic-media/infrastructure/config"
	"mosaic-media/infrastructure/filesystem"
	"mosaic-media/infrastructure/mosaic"
	"mosaic-media/infrastructure/probe"
	"mosaic-media/infrastructure/storage"

	"github.com/spf13/cobra"
)

var (
	uploadFilePath    string
	uploadContentType string
	uploadFlow        string
	uploadProber      string
	uploadAPIKey      string
	uploadBaseURL     string
)

var uploadCmd = &cobra.Command{
	Use:   "upload",
	Short: "Upload a video file to Mosaic",
	Long: `Probe a local video file and upload it to Mosaic.

The upfront flow (the default) transmits the probed metadata before any
bytes move, so an oversized or overlong video is rejected without wasting
a transfer. The legacy flow uploads first and relies on the server's
finalize-time checks.

Example:
  mosaic-media upload --file recording.mp4
  mosaic-media upload --file recording.mov --flow legacy
  mosaic-media upload --file clip.bin --content-type video/mp4`,
	RunE: runUploadCmd,
}

func init() {
	rootCmd.AddCommand(uploadCmd)
	uploadCmd.Flags().StringVar(&uploadFilePath, "file", "", "Path to the video file (required)")
	uploadCmd.Flags().StringVar(&uploadContentType, "content-type", "", "MIME type override (defaults to the file extension)")
	uploadCmd.Flags().StringVar(&uploadFlow, "flow", "", "Upload flow: legacy or upfront (defaults to the configured flow)")
	uploadCmd.Flags().StringVar(&uploadProber, "prober", "ffprobe", "Metadata prober: ffprobe or gocv (gocv needs a -tags=gocv build)")
	uploadCmd.Flags().StringVar(&uploadAPIKey, "api-key", "", "Mosaic API key (defaults to config or MOSAIC_API_KEY)")
	uploadCmd.Flags().StringVar(&uploadBaseURL, "base-url", "", "Mosaic API base URL (defaults to config or MOSAIC_BASE_URL)")
	uploadCmd.MarkFlagRequired("file")
}

func runUploadCmd(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	apiKey := uploadAPIKey
	if apiKey == "" {
		apiKey = cfg.API.Key
	}
	if err := config.ValidateAPIKey(apiKey); err != nil {
		return err
	}

	baseURL := uploadBaseURL
	if baseURL == "" {
		baseURL = cfg.API.BaseURL
	}

	flow := uploadFlow
	if flow == "" {
		flow = cfg.Upload.Flow
	}
	if err := config.ValidateFlow(flow); err != nil {
		return err
	}

	var prober video.Prober
	switch uploadProber {
	case "ffprobe":
		prober = probe.NewFFProbe()
	case "gocv":
		prober = probe.NewGoCVProber()
	default:
		return fmt.Errorf("unknown prober %q: must be %q or %q", uploadProber, "ffprobe", "gocv")
	}

	client := mosaic.NewClient(baseURL, apiKey)

	var negotiator upload.Negotiator
	if flow == config.FlowLegacy {
		negotiator = mosaic.NewLegacyNegotiator(client)
	} else {
		negotiator = mosaic.NewUpfrontNegotiator(client)
	}

	return RunUploadWithDependencies(
		cmd.Context(),
		filesystem.NewChecker(),
		prober,
		negotiator,
		storage.NewExecutor(),
		mosaic.NewFinalizer(client),
		uploadFilePath,
		uploadContentType,
		os.Stdout,
	)
}

// RunUploadWithDependencies runs the upload command with injected dependencies (for testing)
func RunUploadWithDependencies(
	ctx context.Context,
	checker video.FileChecker,
	prober video.Prober,
	negotiator upload.Negotiator,
	transferrer upload.Transferrer,
	finalizer upload.Finalizer,
	filePath string,
	contentType string,
	output io.Writer,
) error {
	orchestrator := appupload.NewOrchestrator(checker, prober, negotiator, transferrer, finalizer, output)

	outcome := orchestrator.Upload(ctx, upload.Request{
		LocalPath:   filePath,
		ContentType: contentType,
	})

	return renderOutcome(output, outcome)
}

// renderOutcome turns the terminal outcome into user-facing text. Each
// failure class gets a distinct, actionable message: a rejection tells the
// user what about the file to fix, a transport failure tells them the
// attempt itself may be worth repeating.
func renderOutcome(output io.Writer, outcome upload.Outcome) error {
	switch outcome.Status {
	case upload.StatusSucceeded:
		fmt.Fprintf(output, "Upload complete! Video ID: %s\n", outcome.VideoID)
		return nil
	case upload.StatusRejected:
		return fmt.Errorf("upload rejected at %s: %s", outcome.Stage, rejectionDetail(outcome.Err))
	default:
		if outcome.VideoID != "" {
			return fmt.Errorf("upload failed at %s (video %s): %v", outcome.Stage, outcome.VideoID, outcome.Err)
		}
		return fmt.Errorf("upload failed at %s: %v", outcome.Stage, outcome.Err)
	}
}

func rejectionDetail(err error) string {
	var (
		probeErr *video.ProbeError
		metaErr  *upload.MetadataError
		limitErr *upload.LimitError
		polErr   *upload.PolicyError
	)
	switch {
	case errors.As(err, &limitErr):
		if limitErr.Kind == upload.LimitDuration {
			return "video exceeds the 90-minute limit; trim it and retry"
		}
		return "video exceeds the 5 GiB limit; re-encode or split it and retry"
	case errors.As(err, &polErr):
		return "storage refused the object under its signed policy; the file likely exceeds the 5 GiB limit"
	case errors.As(err, &metaErr):
		return fmt.Sprintf("the server rejected the video metadata: %s", metaErr.Detail)
	case errors.As(err, &probeErr):
		return fmt.Sprintf("the file could not be read as a video: %v", probeErr.Err)
	default:
		return err.Error()
	}
}
