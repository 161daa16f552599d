package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/soocke/lipstick-ar-go/app"
	"github.com/soocke/lipstick-ar-go/domain/capture"
	"github.com/soocke/lipstick-ar-go/domain/landmark"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Open a live preview window with the overlay applied",
	RunE:  runPreview,
}

func init() {
	previewCmd.Flags().Bool("screen", false, "Capture frames from the screen")
	previewCmd.Flags().String("frames", "", "Directory of input frames (ignored with --screen)")
	previewCmd.Flags().String("landmarks", "", "JSON-lines landmark file driving the overlay")
	previewCmd.Flags().Bool("loop", true, "Restart frames and landmarks when exhausted")
	previewCmd.Flags().String("record", "", "Also write the landmark stream seen by the session to this file")
	_ = previewCmd.MarkFlagRequired("landmarks")
	rootCmd.AddCommand(previewCmd)
}

func runPreview(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	loop := mustGetBool(cmd, "loop")

	var grabber capture.Grabber
	switch dir := mustGetString(cmd, "frames"); {
	case mustGetBool(cmd, "screen"):
		grabber = capture.NewScreenGrabber()
	case dir != "":
		g, err := capture.NewDirGrabber(dir)
		if err != nil {
			return err
		}
		g.Loop = loop
		grabber = g
	default:
		return errors.New("either --screen or --frames is required")
	}

	replay, err := landmark.OpenReplay(mustGetString(cmd, "landmarks"))
	if err != nil {
		return fmt.Errorf("open landmarks: %w", err)
	}
	replay.Loop = loop
	var detector landmark.Detector = replay

	if path := mustGetString(cmd, "record"); path != "" {
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create recording: %w", err)
		}
		defer f.Close()
		rec := landmark.NewRecorder(f)
		defer func() {
			if err := rec.Flush(); err != nil && logger != nil {
				logger.Error("flush recording", "error", err)
			}
		}()
		detector = landmark.Recording(detector, rec)
	}

	session := capture.NewSession(cfg, grabber, detector, logger)
	c := app.BuildContainer(cfg, configPath, session, logger)
	app.NewApp("Lipstick AR", 900, 860, c).Run()
	session.Stop()
	return nil
}
