package utils

import (
	"os"

	"github.com/arthur-debert/maidsweep/pkg/errors"
)

// GetHomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
func GetHomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	homeDir = os.Getenv("HOME")
	if homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrNotFound, "unable to determine home directory: neither os.UserHomeDir() nor HOME environment variable are available")
}
