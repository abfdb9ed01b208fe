package common

import (
	"fmt"
	"os/user"
	"path/filepath"
	"strings"
)

// ToAbsolutePath expands a leading '~' to the current user's home
// directory and returns the absolute form of `path`
func ToAbsolutePath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		usr, err := user.Current()
		if err != nil {
			return "", fmt.Errorf("failed to get current user: %w", err)
		}
		if path == "~" {
			path = usr.HomeDir
		} else if strings.HasPrefix(path, "~/") {
			path = filepath.Join(usr.HomeDir, path[2:])
		}
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to convert path to absolute: %w", err)
	}
	return absPath, nil
}
