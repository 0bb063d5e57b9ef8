package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-vault/internal/config"
	"github.com/kozaktomas/face-vault/internal/faceauth"
)

var enrollCmd = &cobra.Command{
	Use:   "enroll <user-id>",
	Short: "Enroll a new user's faceprint template",
	Long: `Run one extraction session on the sensor and store the captured
faceprint template under the given user id. Re-enrolling an existing
user replaces their template.

Example:
  face-vault enroll alice`,
	Args: cobra.ExactArgs(1),
	RunE: runEnroll,
}

func init() {
	rootCmd.AddCommand(enrollCmd)
}

func runEnroll(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	service, cleanup, err := openService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Println("Look at the camera and follow the pose instructions...")
	result, err := service.Enroll(cmd.Context(), args[0], &consoleEnrollObserver{hints: &cfg.Hints})
	if errors.Is(err, faceauth.ErrExtractionFailed) {
		fmt.Printf("Enrollment failed: %s\n", result.Status)
		if text := cfg.Hints.EnrollHint(result.Status.String()); text != "" {
			fmt.Printf("  %s\n", text)
		}
		return err
	}
	if err != nil {
		return fmt.Errorf("enrollment failed: %w", err)
	}

	fmt.Printf("Enrolled user '%s' (session %s)\n", result.UserID, result.SessionID)
	return nil
}
