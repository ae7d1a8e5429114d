// Package login is the sign-in and registration screen shown before the
// notes view. It validates credentials locally before any network call
// and emits SignedInMsg once the server hands back a token.
package login

import (
	"context"
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/thealienated1/Notefied/internal/api"
)

// SignedInMsg is sent to the parent model after a successful login.
type SignedInMsg struct {
	Token string
}

type mode int

const (
	modeSignIn mode = iota
	modeRegister
)

type loginResultMsg struct {
	token string
	err   error
}

type registerResultMsg struct {
	err error
}

const (
	fieldUsername = iota
	fieldPassword
	fieldConfirm
)

var (
	wordmarkStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	subtleStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	errStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	okStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("114"))
	boxStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("240")).Padding(1, 3)
)

// Model is the login screen tea.Model.
type Model struct {
	client *api.Client

	width, height int

	mode   mode
	focus  int
	inputs [3]textinput.Model

	busy    bool
	errText string
	okText  string
}

// New returns a login model bound to the given API client.
func New(client *api.Client) Model {
	username := textinput.New()
	username.Placeholder = "username"
	username.Prompt = "User: "
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.Prompt = "Pass: "
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	confirm := textinput.New()
	confirm.Placeholder = "repeat password"
	confirm.Prompt = "Again: "
	confirm.CharLimit = 128
	confirm.EchoMode = textinput.EchoPassword
	confirm.EchoCharacter = '•'

	return Model{
		client: client,
		inputs: [3]textinput.Model{username, password, confirm},
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Reset clears the form, e.g. after logout.
func (m *Model) Reset() {
	for i := range m.inputs {
		m.inputs[i].SetValue("")
		m.inputs[i].Blur()
	}
	m.inputs[fieldUsername].Focus()
	m.focus = fieldUsername
	m.mode = modeSignIn
	m.busy = false
	m.errText = ""
	m.okText = ""
}

func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case loginResultMsg:
		m.busy = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrUnauthenticated) {
				m.errText = "Invalid username or password"
			} else {
				m.errText = "Login failed: " + msg.err.Error()
			}
			return m, nil
		}
		return m, func() tea.Msg { return SignedInMsg{Token: msg.token} }

	case registerResultMsg:
		m.busy = false
		if msg.err != nil {
			if errors.Is(msg.err, api.ErrValidation) {
				m.errText = "Registration rejected: " + msg.err.Error()
			} else {
				m.errText = "Registration failed: " + msg.err.Error()
			}
			return m, nil
		}
		// Account created; sign in with the same credentials.
		m.mode = modeSignIn
		m.okText = "Account created, sign in to continue"
		m.errText = ""
		m.focusField(fieldPassword)
		return m, nil

	case tea.KeyMsg:
		if m.busy {
			return m, nil
		}

		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit

		case "ctrl+r":
			if m.mode == modeSignIn {
				m.mode = modeRegister
			} else {
				m.mode = modeSignIn
			}
			m.errText = ""
			m.okText = ""
			m.focusField(fieldUsername)
			return m, nil

		case "tab", "down":
			m.focusField(m.nextField(1))
			return m, nil

		case "shift+tab", "up":
			m.focusField(m.nextField(-1))
			return m, nil

		case "enter":
			if m.focus < m.lastField() {
				m.focusField(m.focus + 1)
				return m, nil
			}
			return m.submit()
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

func (m Model) submit() (Model, tea.Cmd) {
	username := strings.TrimSpace(m.inputs[fieldUsername].Value())
	password := m.inputs[fieldPassword].Value()

	// Validation failures never issue a network call.
	if username == "" || password == "" {
		m.errText = "Username and password are required"
		return m, nil
	}
	if m.mode == modeRegister && password != m.inputs[fieldConfirm].Value() {
		m.errText = "Passwords do not match"
		return m, nil
	}

	m.busy = true
	m.errText = ""
	m.okText = ""
	client := m.client

	if m.mode == modeRegister {
		return m, func() tea.Msg {
			_, err := client.Register(context.Background(), username, password)
			return registerResultMsg{err: err}
		}
	}
	return m, func() tea.Msg {
		token, err := client.Login(context.Background(), username, password)
		return loginResultMsg{token: token, err: err}
	}
}

func (m Model) View() string {
	lines := []string{
		wordmarkStyle.Render("Notefied"),
		subtleStyle.Render("notes that save themselves"),
		"",
		m.inputs[fieldUsername].View(),
		m.inputs[fieldPassword].View(),
	}
	if m.mode == modeRegister {
		lines = append(lines, m.inputs[fieldConfirm].View())
	}

	switch {
	case m.busy:
		lines = append(lines, "", subtleStyle.Render("Talking to server..."))
	case m.errText != "":
		lines = append(lines, "", errStyle.Render(m.errText))
	case m.okText != "":
		lines = append(lines, "", okStyle.Render(m.okText))
	}

	action := "enter: sign in"
	toggle := "ctrl+r: create account"
	if m.mode == modeRegister {
		action = "enter: register"
		toggle = "ctrl+r: back to sign in"
	}
	lines = append(lines, "", subtleStyle.Render(action+"  •  "+toggle+"  •  ctrl+c: quit"))

	box := boxStyle.Render(strings.Join(lines, "\n"))
	if m.width == 0 || m.height == 0 {
		return box
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// ---------- helpers ----------

func (m *Model) lastField() int {
	if m.mode == modeRegister {
		return fieldConfirm
	}
	return fieldPassword
}

func (m *Model) nextField(dir int) int {
	n := m.lastField() + 1
	return ((m.focus+dir)%n + n) % n
}

func (m *Model) focusField(idx int) {
	for i := range m.inputs {
		m.inputs[i].Blur()
	}
	m.focus = idx
	m.inputs[idx].Focus()
}
