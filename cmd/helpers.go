package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/kozaktomas/face-vault/internal/config"
	"github.com/kozaktomas/face-vault/internal/device"
	"github.com/kozaktomas/face-vault/internal/faceauth"
	"github.com/kozaktomas/face-vault/internal/faceprint"
	"github.com/kozaktomas/face-vault/internal/store"
	"github.com/kozaktomas/face-vault/internal/store/postgres"
)

// openDevice opens the sensor session named by the config. The "sim" port
// selects the built-in simulator.
func openDevice(cfg *config.Config) (device.Session, error) {
	switch cfg.Device.Port {
	case "", "sim":
		return device.NewSimulator(cfg.Device.Seed), nil
	default:
		return nil, fmt.Errorf("unsupported device port %q (only the built-in simulator is available)", cfg.Device.Port)
	}
}

// openStore selects the template store backend: PostgreSQL when DATABASE_URL
// is set, the in-memory store otherwise. The returned cleanup closes the
// connection pool and is safe to call for the in-memory store too.
func openStore(cfg *config.Config) (store.TemplateStore, func(), error) {
	if cfg.Database.URL == "" {
		return store.NewMemoryStore(), func() {}, nil
	}
	pool, err := postgres.Connect(&cfg.Database)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	cleanup := func() {
		if err := pool.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: closing database pool: %v\n", err)
		}
	}
	return postgres.NewTemplateRepository(pool), cleanup, nil
}

// openService wires a device session and a store into the application
// service. The cleanup closes both.
func openService(cfg *config.Config) (*faceauth.Service, func(), error) {
	dev, err := openDevice(cfg)
	if err != nil {
		return nil, nil, err
	}
	st, closeStore, err := openStore(cfg)
	if err != nil {
		_ = dev.Close()
		return nil, nil, err
	}
	cleanup := func() {
		closeStore()
		if err := dev.Close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: closing device: %v\n", err)
		}
	}
	return faceauth.NewService(dev, st), cleanup, nil
}

func confirmAction(prompt string) bool {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	response, _ := reader.ReadString('\n')
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// consoleEnrollObserver prints pose guidance and hints during enrollment.
type consoleEnrollObserver struct {
	hints *config.HintsConfig
}

func (o *consoleEnrollObserver) PoseObserved(pose, next faceprint.Pose, done bool) {
	if done {
		fmt.Printf("Pose %s captured. All poses captured.\n", pose)
		return
	}
	fmt.Printf("Pose %s captured. Please turn to %s.\n", pose, next)
}

func (o *consoleEnrollObserver) Hint(hint device.EnrollStatus) {
	if text := o.hints.EnrollHint(hint.String()); text != "" {
		fmt.Printf("  %s\n", text)
	}
}

// consoleAuthObserver prints hints during authentication.
type consoleAuthObserver struct {
	hints *config.HintsConfig
}

func (o *consoleAuthObserver) Hint(hint device.AuthenticateStatus) {
	if text := o.hints.AuthenticateHint(hint.String()); text != "" {
		fmt.Printf("  %s\n", text)
	}
}
