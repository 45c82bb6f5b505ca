package config

import (
	"fmt"
	"strings"
)

// ValidationError represents a configuration validation error
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateConfig checks that required configuration is present for the
// current environment. Secrets are only enforced in production so local
// development and tests can run with defaults.
func ValidateConfig(cfg *Config) error {
	var errors []string

	if cfg.JWTSecret == "" {
		if IsProduction() {
			errors = append(errors, "JWT_SECRET is required")
		}
	}

	if IsProduction() {
		if cfg.DBPassword == "" {
			errors = append(errors, "DB_PASSWORD is required in production")
		}
		if cfg.S3Bucket == "" {
			errors = append(errors, "S3_BUCKET_NAME is required in production")
		}
		if cfg.S3AccessKey == "" || cfg.S3SecretKey == "" {
			errors = append(errors, "S3_ACCESS_KEY_ID and S3_SECRET_ACCESS_KEY are required in production")
		}
	}

	if cfg.ServerPort == "" {
		errors = append(errors, "SERVER_PORT must not be empty")
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed:\n%s", strings.Join(errors, "\n"))
	}

	return nil
}
