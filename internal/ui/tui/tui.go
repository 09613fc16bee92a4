// Package tui is the interactive chat REPL. Each submitted prompt runs one
// completion through the injected SendFunc; the conversation history is
// kept here and handed back on every call.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pelagic-ai/coracle/internal/completion"
)

// SendFunc issues one completion and returns the assistant's reply text.
type SendFunc func(ctx context.Context, prompt string, history []completion.Message) (string, error)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#2F6F62")).
			Padding(0, 1)

	userStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#04B575"))

	botStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#5F87FF"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000"))
)

type replyMsg struct {
	text string
	err  error
}

// Model is the bubbletea model for the chat session.
type Model struct {
	Title    string
	send     SendFunc
	history  []completion.Message
	lines    []string
	viewport viewport.Model
	input    textinput.Model
	spinner  spinner.Model
	waiting  bool
	ready    bool
	quitting bool
	width    int
	height   int
}

// NewModel builds a chat model around send.
func NewModel(title string, send SendFunc) Model {
	ti := textinput.New()
	ti.Placeholder = "Say something..."
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return Model{
		Title:   title,
		send:    send,
		input:   ti,
		spinner: sp,
	}
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			return m, tea.Quit
		case tea.KeyEnter:
			prompt := strings.TrimSpace(m.input.Value())
			if prompt == "" || m.waiting {
				break
			}
			m.input.Reset()
			m.waiting = true
			m.appendLine(userStyle.Render("you: ") + prompt)

			prior := m.history
			m.history = append(m.history, completion.Message{Role: "user", Content: prompt})

			send := m.send
			cmds = append(cmds,
				m.spinner.Tick,
				func() tea.Msg {
					text, err := send(context.Background(), prompt, prior)
					return replyMsg{text: text, err: err}
				},
			)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(msg.Width, msg.Height-5)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = msg.Height - 5
		}
		m.viewport.SetContent(strings.Join(m.lines, "\n"))

	case replyMsg:
		m.waiting = false
		if msg.err != nil {
			m.appendLine(errorStyle.Render("error: " + msg.err.Error()))
			break
		}
		m.history = append(m.history, completion.Message{Role: "assistant", Content: msg.text})
		m.appendLine(botStyle.Render("cohere: ") + msg.text)

	case spinner.TickMsg:
		if m.waiting {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// appendLine adds a rendered line and scrolls the viewport to it.
func (m *Model) appendLine(line string) {
	m.lines = append(m.lines, line)
	if m.ready {
		m.viewport.SetContent(strings.Join(m.lines, "\n"))
		m.viewport.GotoBottom()
	}
}

func (m Model) View() string {
	if !m.ready {
		return "\n  Initializing..."
	}

	header := titleStyle.Render(fmt.Sprintf(" %s ", m.Title))

	status := m.input.View()
	if m.waiting {
		status = m.spinner.View() + " thinking..."
	}

	view := fmt.Sprintf("%s\n\n%s\n\n%s", header, m.viewport.View(), status)
	if m.quitting {
		return view + "\n  Bye.\n"
	}
	return view
}

// History returns the conversation so far, oldest first.
func (m Model) History() []completion.Message {
	return m.history
}
