/*
Package configs loads and parses the application's configuration.

All settings come from environment variables (optionally seeded from a .env
file). Object-store credentials are mandatory: the process refuses to start
without them rather than failing later on the first store call.
*/
package configs

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Key suffix modes controlling how upload keys are made unique.
// See AppConfig.KeySuffixMode.
const (
	// KeySuffixNone synthesizes keys as "{epochMillis}-{name}", matching the
	// shared namespace convention of every upload path.
	KeySuffixNone = "none"

	// KeySuffixRandom additionally inserts a random fragment so that two
	// uploads of the same name within one millisecond cannot collide.
	KeySuffixRandom = "random"
)

// AppConfig contains all configuration parameters for the gateway and relay.
type AppConfig struct {
	// General server settings.
	Environment string
	Port        int

	// Object store settings.
	S3BucketName      string
	S3Endpoint        string
	S3AccessKeyID     string
	S3SecretAccessKey string

	// AuthSecretKey is the shared secret required by the direct-upload relay.
	// When empty, the relay rejects every write (fail closed).
	AuthSecretKey string

	// KeySuffixMode selects the upload key uniqueness scheme
	// (KeySuffixNone or KeySuffixRandom).
	KeySuffixMode string
}

// LoadConfig reads the application configuration from the environment.
// A .env file in the working directory is loaded first when present.
// Missing object-store settings are a fatal configuration error.
func LoadConfig() (*AppConfig, error) {
	// Absence of a .env file is the normal case in deployed environments.
	_ = godotenv.Load()

	cfg := &AppConfig{}

	cfg.Environment = os.Getenv("ENVIRONMENT")
	if cfg.Environment == "" {
		cfg.Environment = "development"
	}

	portStr := os.Getenv("PORT")
	if portStr == "" {
		portStr = "8080"
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PORT environment variable: %w", err)
	}
	if port < 1024 || port > 65535 {
		return nil, fmt.Errorf("port number %d is outside the allowed range (1024-65535)", port)
	}
	cfg.Port = port

	cfg.S3BucketName = os.Getenv("S3_BUCKET_NAME")
	if cfg.S3BucketName == "" {
		return nil, fmt.Errorf("S3_BUCKET_NAME environment variable is required for object store access")
	}

	cfg.S3Endpoint = os.Getenv("S3_ENDPOINT")
	if cfg.S3Endpoint == "" {
		return nil, fmt.Errorf("S3_ENDPOINT environment variable is required for object store access")
	}

	cfg.S3AccessKeyID = os.Getenv("S3_ACCESS_KEY_ID")
	if cfg.S3AccessKeyID == "" {
		return nil, fmt.Errorf("S3_ACCESS_KEY_ID environment variable is required for object store authentication")
	}

	cfg.S3SecretAccessKey = os.Getenv("S3_SECRET_ACCESS_KEY")
	if cfg.S3SecretAccessKey == "" {
		return nil, fmt.Errorf("S3_SECRET_ACCESS_KEY environment variable is required for object store authentication")
	}

	// Intentionally optional: the relay treats an unset secret as
	// "no policy configured" and denies all writes.
	cfg.AuthSecretKey = os.Getenv("AUTH_SECRET_KEY")

	cfg.KeySuffixMode = os.Getenv("KEY_SUFFIX_MODE")
	switch cfg.KeySuffixMode {
	case "":
		cfg.KeySuffixMode = KeySuffixNone
	case KeySuffixNone, KeySuffixRandom:
	default:
		return nil, fmt.Errorf("invalid KEY_SUFFIX_MODE %q: must be %q or %q",
			cfg.KeySuffixMode, KeySuffixNone, KeySuffixRandom)
	}

	return cfg, nil
}
