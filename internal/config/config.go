package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const configPerm = 0o644

const defaultServerURL = "http://localhost:3000"

// Config holds user-configurable settings persisted to disk. Token is the
// opaque bearer token from the last successful login; it stays valid across
// restarts until the user logs out or the server rejects it.
type Config struct {
	ServerURL string `json:"server_url"`
	Token     string `json:"token,omitempty"`
	LogFile   string `json:"log_file,omitempty"`
}

func configFilePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home dir: %w", err)
	}
	return filepath.Join(home, ".config", "notefied", "config.json"), nil
}

// Load reads the config file; returns defaults if the file does not exist.
func Load() (Config, error) {
	path, err := configFilePath()
	if err != nil {
		return Config{}, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return defaultConfig()
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if cfg.ServerURL == "" {
		cfg.ServerURL = defaultServerURL
	}
	if cfg.LogFile == "" {
		cfg.LogFile, err = defaultLogFile()
		if err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}

// Save writes the config to disk, creating the config directory if needed.
func Save(cfg Config) error {
	path, err := configFilePath()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), dirPerm); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, configPerm); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func defaultConfig() (Config, error) {
	logFile, err := defaultLogFile()
	if err != nil {
		return Config{}, err
	}
	return Config{
		ServerURL: defaultServerURL,
		LogFile:   logFile,
	}, nil
}
