package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-vault/internal/config"
	"github.com/kozaktomas/face-vault/internal/faceauth"
)

var authenticateCmd = &cobra.Command{
	Use:     "authenticate",
	Aliases: []string{"auth"},
	Short:   "Authenticate against the stored templates",
	Long: `Run one extraction session on the sensor and scan the stored
templates for a match. A successful match may also refresh the stored
template with an adapted version.`,
	Args: cobra.NoArgs,
	RunE: runAuthenticate,
}

func init() {
	rootCmd.AddCommand(authenticateCmd)
}

func runAuthenticate(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	service, cleanup, err := openService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	fmt.Println("Look at the camera...")
	outcome, err := service.Authenticate(cmd.Context(), &consoleAuthObserver{hints: &cfg.Hints})
	if errors.Is(err, faceauth.ErrExtractionFailed) {
		fmt.Printf("Authentication failed: %s\n", outcome.Status)
		if text := cfg.Hints.AuthenticateHint(outcome.Status.String()); text != "" {
			fmt.Printf("  %s\n", text)
		}
		return err
	}
	if err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	if !outcome.Matched {
		fmt.Println("No match found.")
		return nil
	}
	fmt.Printf("Authenticated as '%s' (session %s)\n", outcome.UserID, outcome.SessionID)
	if outcome.Updated {
		fmt.Println("Stored template refreshed.")
	}
	return nil
}
