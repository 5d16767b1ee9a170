package cmd

import (
	"fmt"
	"os"
	"path/filepath"
)

// resolveProjectPath validates the optional PROJECT_PATH argument,
// defaulting to the current directory
func resolveProjectPath(args []string) (string, error) {
	projectPath := "."
	if len(args) > 0 {
		projectPath = args[0]
	}
	projectPath = filepath.Clean(projectPath)

	info, err := os.Stat(projectPath)
	if err != nil {
		return "", fmt.Errorf("cannot access path '%s': %w", projectPath, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("path '%s' is not a directory", projectPath)
	}
	return projectPath, nil
}
