// Package chatview is the interactive chat companion session.
package chatview

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"anchor/internal/chat"
	"anchor/internal/logger"
	"anchor/internal/models"
	"anchor/internal/storage"
	"anchor/internal/utils"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	userStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	botStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	dimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

type replyMsg string

// tickMsg drives the once-a-minute day-rollover check that refreshes the
// dated header after local midnight.
type tickMsg time.Time

type Model struct {
	store     storage.Provider
	responder *chat.Responder
	input     textinput.Model
	messages  []models.ChatMessage
	today     string
	waiting   bool
	width     int
	quitting  bool
}

func New(store storage.Provider, responder *chat.Responder, history []models.ChatMessage) Model {
	input := textinput.New()
	input.Placeholder = "Say what's on your mind..."
	input.Focus()
	input.CharLimit = 500

	return Model{
		store:     store,
		responder: responder,
		input:     input,
		messages:  history,
		today:     utils.Today(),
		width:     80,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tick())
}

func tick() tea.Cmd {
	return tea.Tick(time.Minute, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			if m.waiting {
				return m, nil
			}
			text := strings.TrimSpace(m.input.Value())
			if text == "" {
				return m, nil
			}
			m.input.Reset()
			m.messages = append(m.messages, models.ChatMessage{
				ID:        uuid.New().String(),
				Text:      text,
				Sender:    models.SenderUser,
				Timestamp: time.Now(),
			})
			m.persist()
			m.waiting = true
			return m, m.requestReply(text)
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tickMsg:
		m.today = utils.Today()
		return m, tick()

	case replyMsg:
		m.messages = append(m.messages, models.ChatMessage{
			ID:        uuid.New().String(),
			Text:      string(msg),
			Sender:    models.SenderBot,
			Timestamp: time.Now(),
		})
		m.persist()
		m.waiting = false
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// requestReply captures the history before the command runs so the remote
// call sees a stable snapshot.
func (m Model) requestReply(userText string) tea.Cmd {
	history := make([]models.ChatMessage, len(m.messages)-1)
	copy(history, m.messages[:len(m.messages)-1])
	responder := m.responder

	return func() tea.Msg {
		return replyMsg(responder.Reply(context.Background(), history, userText))
	}
}

func (m *Model) persist() {
	if err := m.store.SaveChatHistory(m.messages); err != nil {
		logger.Warn("Failed to persist chat history", "error", err)
	}
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	day, err := utils.ParseDayKey(m.today)
	header := m.today
	if err == nil {
		header = day.Format("Monday, January 2")
	}
	b.WriteString(headerStyle.Render("Companion - "+header) + "\n\n")

	for _, msg := range m.messages {
		switch msg.Sender {
		case models.SenderUser:
			b.WriteString(userStyle.Render("you: ") + msg.Text + "\n")
		default:
			b.WriteString(botStyle.Render("companion: ") + msg.Text + "\n")
		}
	}

	if m.waiting {
		b.WriteString(dimStyle.Render("companion is typing...") + "\n")
	}

	fmt.Fprintf(&b, "\n%s\n%s", m.input.View(), dimStyle.Render("enter to send, esc to leave"))
	return b.String()
}
