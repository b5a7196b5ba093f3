// Package loginform is the interactive farmOS login prompt.
package loginform

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"fieldkit/cli/internal/auth"
)

// ErrCancelled is returned by Run when the user leaves the form.
var ErrCancelled = errors.New("login cancelled")

var (
	accent       = lipgloss.Color("#4CAF50")
	focusedStyle = lipgloss.NewStyle().Foreground(accent)
	labelStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFFFFF")).Bold(true)
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
	hintStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#828282"))
	titleStyle   = lipgloss.NewStyle().Foreground(accent).Bold(true).Padding(1, 0)
)

const (
	fieldServer = iota
	fieldUsername
	fieldPassword
	fieldCount
)

var labels = [fieldCount]string{"farmOS server:", "Username:", "Password:"}

// Model is the login form view.
type Model struct {
	inputs     [fieldCount]textinput.Model
	focusIndex int
	err        string
	submitted  bool
	cancelled  bool
}

// New creates a form prefilled with initial. Focus starts on the first
// empty field.
func New(initial auth.Credentials) Model {
	var m Model
	values := [fieldCount]string{initial.ServerURL, initial.Username, initial.Password}
	placeholders := [fieldCount]string{"farm.example.com", "username", "password"}
	for i := range m.inputs {
		in := textinput.New()
		in.Placeholder = placeholders[i]
		in.Width = 40
		in.SetValue(values[i])
		m.inputs[i] = in
	}
	m.inputs[fieldPassword].EchoMode = textinput.EchoPassword
	m.inputs[fieldPassword].EchoCharacter = '•'

	m.focusIndex = fieldPassword
	for i, v := range values {
		if v == "" {
			m.focusIndex = i
			break
		}
	}
	m.inputs[m.focusIndex].Focus()
	return m
}

// Credentials returns the values typed so far.
func (m Model) Credentials() auth.Credentials {
	return auth.Credentials{
		ServerURL: strings.TrimSpace(m.inputs[fieldServer].Value()),
		Username:  strings.TrimSpace(m.inputs[fieldUsername].Value()),
		Password:  m.inputs[fieldPassword].Value(),
	}
}

// Submitted reports whether the user confirmed the form.
func (m Model) Submitted() bool { return m.submitted }

// Cancelled reports whether the user left the form.
func (m Model) Cancelled() bool { return m.cancelled }

func (m Model) Init() tea.Cmd { return textinput.Blink }

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "tab", "down":
			return m.focus((m.focusIndex + 1) % fieldCount), nil
		case "shift+tab", "up":
			return m.focus((m.focusIndex + fieldCount - 1) % fieldCount), nil
		case "enter":
			if m.focusIndex < fieldPassword {
				return m.focus(m.focusIndex + 1), nil
			}
			if missing := m.missing(); missing >= 0 {
				m.err = strings.TrimSuffix(labels[missing], ":") + " is required"
				return m.focus(missing), nil
			}
			m.err = ""
			m.submitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

func (m Model) focus(i int) Model {
	m.inputs[m.focusIndex].Blur()
	m.focusIndex = i
	m.inputs[i].Focus()
	return m
}

// missing returns the first empty field, or -1.
func (m Model) missing() int {
	c := m.Credentials()
	for i, v := range []string{c.ServerURL, c.Username, c.Password} {
		if v == "" {
			return i
		}
	}
	return -1
}

// View renders the login form.
func (m Model) View() string {
	if m.submitted || m.cancelled {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(titleStyle.Render("Log in to farmOS"))
	sb.WriteString("\n")
	for i := range m.inputs {
		label := labelStyle.Render(labels[i])
		if i == m.focusIndex {
			label = focusedStyle.Render(labels[i])
		}
		sb.WriteString(label)
		sb.WriteString("\n")
		sb.WriteString(m.inputs[i].View())
		sb.WriteString("\n\n")
	}
	if m.err != "" {
		sb.WriteString(errorStyle.Render(m.err))
		sb.WriteString("\n\n")
	}
	sb.WriteString(hintStyle.Render("tab to move, ") + focusedStyle.Render("enter") + hintStyle.Render(" to submit, ") + focusedStyle.Render("esc") + hintStyle.Render(" to cancel"))
	sb.WriteString("\n")
	return sb.String()
}

// Run shows the form and returns the confirmed credentials.
func Run(initial auth.Credentials) (auth.Credentials, error) {
	final, err := tea.NewProgram(New(initial)).Run()
	if err != nil {
		return auth.Credentials{}, err
	}
	m := final.(Model)
	if !m.Submitted() {
		return auth.Credentials{}, ErrCancelled
	}
	return m.Credentials(), nil
}
