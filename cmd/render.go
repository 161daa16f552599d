package cmd

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/soocke/lipstick-ar-go/domain/capture"
	"github.com/soocke/lipstick-ar-go/domain/landmark"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Apply the overlay to an image sequence using recorded landmarks",
	Long: `Render reads the frames of a directory in name order, pairs frame i with
record i of a JSON-lines landmark file, draws the lipstick overlay and writes
each result as PNG into the output directory.`,
	RunE: runRender,
}

func init() {
	renderCmd.Flags().String("frames", "", "Directory of input frames (png, jpeg, webp, bmp)")
	renderCmd.Flags().String("landmarks", "", "JSON-lines landmark file, one record per frame")
	renderCmd.Flags().String("out", "", "Output directory for rendered PNG frames")
	renderCmd.Flags().Bool("quiet", false, "Hide the progress bar")
	_ = renderCmd.MarkFlagRequired("frames")
	_ = renderCmd.MarkFlagRequired("landmarks")
	_ = renderCmd.MarkFlagRequired("out")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	frames, err := capture.NewDirGrabber(mustGetString(cmd, "frames"))
	if err != nil {
		return err
	}
	if frames.Len() == 0 {
		return fmt.Errorf("no frames found in %s", mustGetString(cmd, "frames"))
	}
	detector, err := landmark.OpenReplay(mustGetString(cmd, "landmarks"))
	if err != nil {
		return fmt.Errorf("open landmarks: %w", err)
	}
	if detector.Len() < frames.Len() && logger != nil {
		logger.Warn("fewer landmark records than frames; trailing frames render without overlay",
			"frames", frames.Len(), "records", detector.Len())
	}
	outDir := mustGetString(cmd, "out")
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	session := capture.NewSession(cfg, frames, detector, logger)
	bar := progressbar.NewOptions(frames.Len(),
		progressbar.OptionSetDescription("Rendering frames"),
		progressbar.OptionSetWriter(cmd.ErrOrStderr()),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("frames"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetVisibility(!mustGetBool(cmd, "quiet")),
	)

	for {
		snap, err := session.Step(ctx)
		if errors.Is(err, capture.ErrNoFrames) {
			break
		}
		if snap.Image == nil {
			return err
		}
		if err != nil && logger != nil {
			logger.Warn("frame rendered without overlay", "frame", filepath.Base(frames.Current()), "error", err)
		}
		name := strings.TrimSuffix(filepath.Base(frames.Current()), filepath.Ext(frames.Current())) + ".png"
		if err := imaging.Save(snap.Image, filepath.Join(outDir, name)); err != nil {
			return fmt.Errorf("write %s: %w", name, err)
		}
		capture.RecycleFrame(snap.Image)
		_ = bar.Add(1)
	}
	_ = bar.Finish()

	st := session.Stats()
	fmt.Fprintf(cmd.OutOrStdout(), "\nRendered %d frames to %s (updated %d, held %d, avg %s/frame)\n",
		st.Frames, outDir, st.Accepted, st.Held, st.AvgProcess)
	return nil
}
