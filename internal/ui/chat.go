package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/klemjul/menta/internal/chat"
	"github.com/klemjul/menta/internal/format"
)

type ChatTUIModel struct {
	textInput textinput.Model
	viewport  viewport.Model
	session   *chat.Session
	title     string

	respond func(req chat.Request) tea.Cmd
}

const (
	CHAT_TITLE             = "Menta - Mental Health Assistant"
	CHAT_INPUT_PLACEHOLDER = "Type your message..."
	CHAT_WAITING_RESPONSE  = "> ⏳ Thinking..."
)

var (
	userStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	botStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true)
	inputStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderTop(true)
)

type InitialModelOptions struct {
	Title   string
	Session *chat.Session
	// Respond runs the completion for an accepted submission. The returned
	// command must produce a chat.Turn.
	Respond func(req chat.Request) tea.Cmd
}

func InitialModel(opts InitialModelOptions) ChatTUIModel {
	ti := textinput.New()
	ti.Placeholder = CHAT_INPUT_PLACEHOLDER
	ti.Focus()

	title := opts.Title
	if title == "" {
		title = CHAT_TITLE
	}

	m := ChatTUIModel{
		textInput: ti,
		viewport:  viewport.New(0, 0),
		session:   opts.Session,
		title:     title,
		respond:   opts.Respond,
	}
	m.updateViewport()
	return m
}

func (m ChatTUIModel) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.EnableMouseCellMotion,
	)
}

func (m ChatTUIModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			titleLines := (len(m.title) / msg.Width) + 1
			m.viewport = viewport.New(msg.Width, msg.Height-(3+titleLines))
			m.updateViewport()
		}

	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress {
			switch msg.Button {
			case tea.MouseButtonWheelUp:
				m.viewport.ScrollUp(1)
			case tea.MouseButtonWheelDown:
				m.viewport.ScrollDown(1)
			}
		}

	case chat.Turn:
		m.session.Resolve(msg)
		m.updateViewport()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			cmd = tea.Quit
		case tea.KeyEnter:
			if req, ok := m.session.Submit(m.textInput.Value()); ok {
				m.textInput.SetValue("")
				m.updateViewport()

				cmd = m.respond(req)
			}
		}
	}

	m.textInput, _ = m.textInput.Update(msg)

	if m.session.Pending() {
		m.textInput.Blur()
	} else {
		m.textInput.Focus()
	}

	return m, cmd
}

func (m *ChatTUIModel) updateViewport() {
	turns := m.session.Turns()
	displayedTurns := make([]string, len(turns))
	for i, turn := range turns {
		switch turn.Role {
		case chat.RoleAssistant:
			out, err := format.FormatMarkdownWidth(turn.Text, m.viewport.Width)
			if err != nil {
				out = turn.Text
			}
			displayedTurns[i] = botStyle.Render(strings.TrimSpace(out))
		case chat.RoleUser:
			displayedTurns[i] = userStyle.Render(fmt.Sprintf("> %s", turn.Text))
		}
	}

	content := strings.Join(displayedTurns, "\n\n")
	m.viewport.SetContent(content)
	m.viewport.GotoBottom()
}

func (m ChatTUIModel) View() string {
	input := m.textInput.View()

	if m.session.Pending() {
		input = CHAT_WAITING_RESPONSE
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		titleStyle.Width(m.viewport.Width).Render(m.title),
		m.viewport.View(),
		inputStyle.Width(m.viewport.Width).Render(input),
	)
}
