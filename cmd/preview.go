package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-vault/internal/config"
	"github.com/kozaktomas/face-vault/internal/device"
	"github.com/kozaktomas/face-vault/internal/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Capture preview frames from the sensor camera",
	Long: `Capture a number of preview frames from the sensor camera and save
them as PNG files. Frames larger than the configured maximum edge are
scaled down.

Example:
  face-vault preview --frames 10 --out ./frames`,
	Args: cobra.NoArgs,
	RunE: runPreview,
}

func init() {
	rootCmd.AddCommand(previewCmd)

	previewCmd.Flags().Int("frames", 10, "Number of frames to capture")
	previewCmd.Flags().String("out", ".", "Directory to save frames to")
}

// previewSaver saves each frame as it arrives.
type previewSaver struct {
	dir     string
	maxEdge int
	saved   int
	err     error
}

func (p *previewSaver) OnPreviewFrame(frame device.PreviewFrame) {
	if p.err != nil {
		return
	}
	img := preview.ResizeToFit(frame.Image, p.maxEdge)
	path, err := preview.SaveFrame(p.dir, frame.Number, img)
	if err != nil {
		p.err = err
		return
	}
	p.saved++
	fmt.Printf("Saved %s\n", path)
}

func runPreview(cmd *cobra.Command, args []string) error {
	frames := mustGetInt(cmd, "frames")
	outDir := mustGetString(cmd, "out")
	cfg := config.Load()

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	dev, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer dev.Close()

	saver := &previewSaver{dir: outDir, maxEdge: cfg.Preview.MaxEdge}
	if err := dev.CapturePreview(cmd.Context(), frames, saver); err != nil {
		return fmt.Errorf("preview capture failed: %w", err)
	}
	if saver.err != nil {
		return saver.err
	}

	fmt.Printf("Captured %d frame(s) to %s\n", saver.saved, outDir)
	return nil
}
