package cmd

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-vault/internal/config"
	"github.com/kozaktomas/face-vault/internal/faceauth"
)

var usersImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import templates from a snapshot file",
	Long: `Load templates from a snapshot file created by 'users export'.
Templates for ids that already exist are replaced.

Example:
  face-vault users import templates.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runUsersImport,
}

func init() {
	usersCmd.AddCommand(usersImportCmd)
}

func runUsersImport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	service, cleanup, err := openService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open snapshot file: %w", err)
	}
	defer f.Close()

	// Peek the header for the entry count so the bar has a total.
	total, err := faceauth.ReadSnapshotHeader(f)
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	if _, err := f.Seek(0, 0); err != nil {
		return fmt.Errorf("failed to rewind snapshot file: %w", err)
	}

	bar := progressbar.NewOptions(total,
		progressbar.OptionSetDescription("Importing templates"),
		progressbar.OptionShowCount(),
		progressbar.OptionShowIts(),
		progressbar.OptionSetItsString("templates"),
		progressbar.OptionShowElapsedTimeOnFinish(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionFullWidth(),
	)

	count, err := service.ImportSnapshot(cmd.Context(), f, func(userID string) {
		_ = bar.Add(1)
	})
	fmt.Println()
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Printf("Imported %d template(s) from %s\n", count, args[0])
	return nil
}
