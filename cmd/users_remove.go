package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-vault/internal/config"
	"github.com/kozaktomas/face-vault/internal/store"
)

var usersRemoveCmd = &cobra.Command{
	Use:   "remove <user-id>",
	Short: "Remove one user's template",
	Args:  cobra.ExactArgs(1),
	RunE:  runUsersRemove,
}

func init() {
	usersCmd.AddCommand(usersRemoveCmd)
}

func runUsersRemove(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	service, cleanup, err := openService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := service.RemoveUser(cmd.Context(), args[0]); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return fmt.Errorf("user '%s' is not enrolled", args[0])
		}
		return fmt.Errorf("failed to remove user: %w", err)
	}

	fmt.Printf("Removed user '%s'\n", args[0])
	return nil
}
