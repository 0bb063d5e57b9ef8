package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kozaktomas/face-vault/internal/config"
)

var deviceCmd = &cobra.Command{
	Use:   "device",
	Short: "Query and test the sensor",
}

var deviceInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Print firmware version and serial number",
	Args:  cobra.NoArgs,
	RunE:  runDeviceInfo,
}

var devicePingCmd = &cobra.Command{
	Use:   "ping",
	Short: "Check that the sensor responds",
	Args:  cobra.NoArgs,
	RunE:  runDevicePing,
}

func init() {
	rootCmd.AddCommand(deviceCmd)
	deviceCmd.AddCommand(deviceInfoCmd)
	deviceCmd.AddCommand(devicePingCmd)

	devicePingCmd.Flags().Int("count", 3, "Number of pings to send")
}

func runDeviceInfo(cmd *cobra.Command, args []string) error {
	cfg := config.Load()

	dev, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer dev.Close()

	info, err := dev.QueryDeviceInfo(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to query device info: %w", err)
	}

	fmt.Printf("Firmware: %s\n", info.FirmwareVersion)
	fmt.Printf("Serial:   %s\n", info.SerialNumber)
	return nil
}

func runDevicePing(cmd *cobra.Command, args []string) error {
	count := mustGetInt(cmd, "count")
	cfg := config.Load()

	dev, err := openDevice(cfg)
	if err != nil {
		return err
	}
	defer dev.Close()

	for i := 0; i < count; i++ {
		start := time.Now()
		if err := dev.Ping(cmd.Context()); err != nil {
			return fmt.Errorf("ping %d/%d failed: %w", i+1, count, err)
		}
		fmt.Printf("Ping %d/%d ok (%s)\n", i+1, count, time.Since(start).Round(time.Microsecond))
	}
	return nil
}
