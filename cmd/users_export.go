package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-vault/internal/config"
)

var usersExportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export all templates to a snapshot file",
	Long: `Write every enrolled template to a snapshot file. The snapshot can
be loaded back with 'users import', which makes the in-memory store
usable across runs.

Example:
  face-vault users export templates.bin`,
	Args: cobra.ExactArgs(1),
	RunE: runUsersExport,
}

func init() {
	usersCmd.AddCommand(usersExportCmd)
}

func runUsersExport(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	service, cleanup, err := openService(cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	f, err := os.Create(args[0])
	if err != nil {
		return fmt.Errorf("failed to create snapshot file: %w", err)
	}
	defer f.Close()

	count, err := service.ExportSnapshot(cmd.Context(), f)
	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to write snapshot file: %w", err)
	}

	fmt.Printf("Exported %d template(s) to %s\n", count, args[0])
	return nil
}
