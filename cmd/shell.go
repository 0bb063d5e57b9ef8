package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-vault/internal/config"
	"github.com/kozaktomas/face-vault/internal/faceauth"
)

var shellCmd = &cobra.Command{
	Use:   "shell",
	Short: "Run an interactive session against one store",
	Long: `Open the device and the store once and run operations interactively.
With the in-memory store this keeps enrolled templates alive between
operations, so an enroll can be followed by an authenticate.`,
	Args: cobra.NoArgs,
	RunE: runShell,
}

func init() {
	rootCmd.AddCommand(shellCmd)
}

func printShellMenu() {
	fmt.Println("Please select an option:")
	fmt.Println()
	fmt.Println("  'e' to enroll.")
	fmt.Println("  'a' to authenticate.")
	fmt.Println("  'u' to list enrolled users.")
	fmt.Println("  'n' to print the number of users.")
	fmt.Println("  'r' to remove one user.")
	fmt.Println("  'd' to delete all users.")
	fmt.Println("  'v' to view device information.")
	fmt.Println("  'x' to ping the device.")
	fmt.Println("  'q' to quit.")
	fmt.Println()
	fmt.Print("> ")
}

func runShell(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	dev, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer dev.Close()

	st, closeStore, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	service := faceauth.NewService(dev, st)
	scanner := bufio.NewScanner(os.Stdin)
	ctx := cmd.Context()

	for {
		printShellMenu()
		if !scanner.Scan() {
			return scanner.Err()
		}
		input := scanner.Text()
		if len(input) != 1 {
			continue
		}

		switch input[0] {
		case 'e':
			fmt.Print("User id for enrollment: ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			result, err := service.Enroll(ctx, scanner.Text(), &consoleEnrollObserver{hints: &cfg.Hints})
			switch {
			case errors.Is(err, faceauth.ErrExtractionFailed):
				fmt.Printf("Enrollment failed: %s\n", result.Status)
			case err != nil:
				fmt.Printf("Enrollment failed: %v\n", err)
			default:
				fmt.Printf("Enrolled user '%s'\n", result.UserID)
			}
		case 'a':
			outcome, err := service.Authenticate(ctx, &consoleAuthObserver{hints: &cfg.Hints})
			switch {
			case errors.Is(err, faceauth.ErrExtractionFailed):
				fmt.Printf("Authentication failed: %s\n", outcome.Status)
			case err != nil:
				fmt.Printf("Authentication failed: %v\n", err)
			case !outcome.Matched:
				fmt.Println("No match found.")
			default:
				fmt.Printf("Authenticated as '%s'\n", outcome.UserID)
				if outcome.Updated {
					fmt.Println("Stored template refreshed.")
				}
			}
		case 'u':
			users, err := service.ListUsers(ctx)
			if err != nil {
				fmt.Printf("Failed to list users: %v\n", err)
				continue
			}
			for _, id := range users {
				fmt.Println(id)
			}
		case 'n':
			count, err := service.Count(ctx)
			if err != nil {
				fmt.Printf("Failed to count users: %v\n", err)
				continue
			}
			fmt.Printf("%d user(s) enrolled\n", count)
		case 'r':
			fmt.Print("User id to remove: ")
			if !scanner.Scan() {
				return scanner.Err()
			}
			if err := service.RemoveUser(ctx, scanner.Text()); err != nil {
				fmt.Printf("Failed to remove user: %v\n", err)
				continue
			}
			fmt.Println("Removed.")
		case 'd':
			if !confirmAction("Delete all users? [y/N]: ") {
				fmt.Println("Cancelled.")
				continue
			}
			if err := service.ClearUsers(ctx); err != nil {
				fmt.Printf("Failed to clear users: %v\n", err)
				continue
			}
			fmt.Println("All users deleted.")
		case 'v':
			info, err := dev.QueryDeviceInfo(ctx)
			if err != nil {
				fmt.Printf("Failed to query device info: %v\n", err)
				continue
			}
			fmt.Printf("Firmware: %s\nSerial:   %s\n", info.FirmwareVersion, info.SerialNumber)
		case 'x':
			if err := dev.Ping(ctx); err != nil {
				fmt.Printf("Ping failed: %v\n", err)
				continue
			}
			fmt.Println("Pong.")
		case 'q':
			return nil
		}
	}
}
