package config

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	dirPerm = 0o755
)

func dataDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve user home dir: %w", err)
	}

	dir := filepath.Join(home, ".local", "share", "notefied")
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return "", fmt.Errorf("create data dir %q: %w", dir, err)
	}
	return dir, nil
}

func defaultLogFile() (string, error) {
	dir, err := dataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "notefied.log"), nil
}
