package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-vault/internal/config"
)

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage enrolled users",
}

var usersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List enrolled user ids",
	Args:  cobra.NoArgs,
	RunE:  runUsersList,
}

func init() {
	rootCmd.AddCommand(usersCmd)
	usersCmd.AddCommand(usersListCmd)
}

func runUsersList(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	service, cleanup, err := openService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	users, err := service.ListUsers(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to list users: %w", err)
	}

	if len(users) == 0 {
		fmt.Println("No users enrolled.")
		return nil
	}
	for _, id := range users {
		fmt.Println(id)
	}
	fmt.Printf("\nTotal: %d user(s)\n", len(users))
	return nil
}
