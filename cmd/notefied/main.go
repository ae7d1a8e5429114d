package main

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/thealienated1/Notefied/internal/api"
	"github.com/thealienated1/Notefied/internal/config"
	"github.com/thealienated1/Notefied/internal/logging"
	"github.com/thealienated1/Notefied/internal/ui"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, logFile, err := logging.Open(cfg.LogFile)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer logFile.Close()

	if v := os.Getenv("NOTEFIED_SERVER"); v != "" {
		cfg.ServerURL = v
	}

	client := api.New(cfg.ServerURL)
	m := ui.NewModel(cfg, client, log)

	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run app: %w", err)
	}

	return nil
}
