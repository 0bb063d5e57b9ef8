package config

import (
	_ "embed"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

//go:embed hints.yaml
var hintsYAML []byte

type Config struct {
	Device   DeviceConfig
	Database DatabaseConfig
	Preview  PreviewConfig
	Hints    HintsConfig
}

type DeviceConfig struct {
	Port string // serial port of the sensor; "sim" selects the built-in simulator
	Seed int64  // subject seed for the simulator
}

type DatabaseConfig struct {
	URL          string // PostgreSQL connection URL; empty selects the in-memory store
	MaxOpenConns int    // Maximum open connections (default 25)
	MaxIdleConns int    // Maximum idle connections (default 5)
}

type PreviewConfig struct {
	MaxEdge int // longest edge of saved preview frames in pixels (default 1080)
}

// HintsConfig maps sensor status code names to operator-facing guidance text.
type HintsConfig struct {
	Enroll       map[string]string `yaml:"enroll"`
	Authenticate map[string]string `yaml:"authenticate"`
}

// EnrollHint returns display text for an enroll status name, or empty when
// the code has no guidance.
func (h *HintsConfig) EnrollHint(name string) string {
	return h.Enroll[name]
}

// AuthenticateHint returns display text for an authenticate status name.
func (h *HintsConfig) AuthenticateHint(name string) string {
	return h.Authenticate[name]
}

// envInt reads an environment variable and parses it as a positive integer.
// Returns the default value if the env var is unset, empty, or invalid.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.Atoi(s); err == nil && n > 0 {
		return n
	}
	return defaultVal
}

// envInt64 is envInt for 64-bit values, zero allowed.
func envInt64(key string, defaultVal int64) int64 {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n
	}
	return defaultVal
}

func Load() *Config {
	var hints HintsConfig
	if err := yaml.Unmarshal(hintsYAML, &hints); err != nil {
		// This is an embedded file so this error should never happen in practice
		panic("failed to unmarshal embedded hints.yaml: " + err.Error())
	}

	port := os.Getenv("DEVICE_PORT")
	if port == "" {
		port = "sim"
	}

	return &Config{
		Device: DeviceConfig{
			Port: port,
			Seed: envInt64("DEVICE_SIM_SEED", 1),
		},
		Database: DatabaseConfig{
			URL:          os.Getenv("DATABASE_URL"),
			MaxOpenConns: envInt("DATABASE_MAX_OPEN_CONNS", 25),
			MaxIdleConns: envInt("DATABASE_MAX_IDLE_CONNS", 5),
		},
		Preview: PreviewConfig{
			MaxEdge: envInt("PREVIEW_MAX_EDGE", 1080),
		},
		Hints: hints,
	}
}
