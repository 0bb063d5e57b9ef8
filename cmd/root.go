package cmd

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "face-vault",
	Short: "A CLI tool for face authentication against a template store",
	Long: `Face Vault is a CLI application that drives a face authentication
sensor (or its built-in simulator), stores enrolled faceprint templates
in memory or PostgreSQL, and authenticates users against them.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
}

func initConfig() {
	// .env file is optional, don't fail if not found
	_ = godotenv.Load()
}
