package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

// DefaultEnvFile is loaded when no --env flag is given and the file exists.
const DefaultEnvFile = ".env"

// EnvFileVar names an environment variable that overrides --env.
const EnvFileVar = "EASYNMT_ENV_FILE"

// LoadEnv loads environment variables from a .env file and returns the path
// it used. An explicitly requested file (flag or EASYNMT_ENV_FILE) overrides
// variables already set and must exist. The default .env never overrides the
// real environment and may be missing.
func LoadEnv(requested string) (string, error) {
	if custom := strings.TrimSpace(os.Getenv(EnvFileVar)); custom != "" {
		requested = custom
	}

	requested = strings.TrimSpace(requested)
	if requested != "" {
		if err := godotenv.Overload(requested); err != nil {
			return "", fmt.Errorf("failed to load env file %s: %w", requested, err)
		}
		return requested, nil
	}

	if err := godotenv.Load(DefaultEnvFile); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to load env file %s: %w", DefaultEnvFile, err)
	}
	return DefaultEnvFile, nil
}
