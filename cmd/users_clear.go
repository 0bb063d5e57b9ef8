package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-vault/internal/config"
)

var usersClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all enrolled templates",
	Args:  cobra.NoArgs,
	RunE:  runUsersClear,
}

func init() {
	usersCmd.AddCommand(usersClearCmd)

	usersClearCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
}

func runUsersClear(cmd *cobra.Command, args []string) error {
	skipConfirm := mustGetBool(cmd, "yes")
	cfg := config.Load()

	service, cleanup, err := openService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	count, err := service.Count(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count == 0 {
		fmt.Println("No users enrolled.")
		return nil
	}

	if !skipConfirm && !confirmAction(fmt.Sprintf("Remove all %d enrolled user(s)? [y/N]: ", count)) {
		fmt.Println("Cancelled.")
		return nil
	}

	if err := service.ClearUsers(cmd.Context()); err != nil {
		return fmt.Errorf("failed to clear users: %w", err)
	}

	fmt.Printf("Done! Removed %d user(s)\n", count)
	return nil
}
