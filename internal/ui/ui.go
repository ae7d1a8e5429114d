// Package ui hosts the top-level model that hands control between the
// login screen and the notes screen.
package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"

	"github.com/thealienated1/Notefied/internal/api"
	"github.com/thealienated1/Notefied/internal/config"
	"github.com/thealienated1/Notefied/internal/ui/app"
	"github.com/thealienated1/Notefied/internal/ui/login"
)

type screen int

const (
	screenLogin screen = iota
	screenNotes
)

// Model switches between the login and notes screens.
type Model struct {
	cfg    config.Config
	client *api.Client
	log    zerolog.Logger

	screen screen
	width  int
	height int

	login login.Model
	notes app.Model
}

// NewModel picks the starting screen: a persisted token skips straight
// to the notes view, and a later rejection falls back to login.
func NewModel(cfg config.Config, client *api.Client, log zerolog.Logger) Model {
	m := Model{
		cfg:    cfg,
		client: client,
		log:    log,
		login:  login.New(client),
	}

	if cfg.Token != "" {
		client.SetToken(cfg.Token)
		m.notes = app.NewModel(client, log)
		m.screen = screenNotes
	}
	return m
}

func (m Model) Init() tea.Cmd {
	if m.screen == screenNotes {
		return m.notes.Init()
	}
	return m.login.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		// Both screens track the size so switching needs no relayout.
		var cmds []tea.Cmd
		m.login, _ = m.login.Update(msg)
		if nm, cmd := m.notes.Update(msg); true {
			m.notes = nm.(app.Model)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case login.SignedInMsg:
		m.cfg.Token = msg.Token
		if err := config.Save(m.cfg); err != nil {
			m.log.Warn().Err(err).Msg("persist token failed")
		}
		m.client.SetToken(msg.Token)
		m.log.Info().Msg("signed in")

		m.notes = app.NewModel(m.client, m.log)
		m.screen = screenNotes

		cmds := []tea.Cmd{m.notes.Init()}
		if m.width > 0 {
			nm, cmd := m.notes.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
			m.notes = nm.(app.Model)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)

	case app.SignedOutMsg:
		m.cfg.Token = ""
		if err := config.Save(m.cfg); err != nil {
			m.log.Warn().Err(err).Msg("clear token failed")
		}
		m.client.SetToken("")
		m.log.Info().Msg("signed out")

		m.login.Reset()
		m.screen = screenLogin
		return m, m.login.Init()
	}

	if m.screen == screenNotes {
		nm, cmd := m.notes.Update(msg)
		m.notes = nm.(app.Model)
		return m, cmd
	}

	var cmd tea.Cmd
	m.login, cmd = m.login.Update(msg)
	return m, cmd
}

func (m Model) View() string {
	if m.screen == screenNotes {
		return m.notes.View()
	}
	return m.login.View()
}
