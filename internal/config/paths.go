package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	// DefaultDirName defines the folder under the user's home directory.
	DefaultDirName = ".gymattend"
	// LogFileName is the diagnostic log written inside the data directory.
	LogFileName = "gymattend.log"
)

// ResolveHome determines where gymattend keeps its diagnostic log, defaulting
// to ~/.gymattend. A non-empty override (GYMATTEND_HOME) wins and may start with ~.
func ResolveHome(override string) (string, error) {
	override = strings.TrimSpace(override)
	if override != "" {
		return expandHome(override)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, DefaultDirName), nil
}

func expandHome(input string) (string, error) {
	if strings.HasPrefix(input, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		input = filepath.Join(home, strings.TrimPrefix(input, "~"))
	}
	return input, nil
}
