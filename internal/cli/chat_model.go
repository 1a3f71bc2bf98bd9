package cli

import (
	"context"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ohshaan/Leave-botanv/internal/cli/formatter"
	"github.com/ohshaan/Leave-botanv/internal/intelligence"
	"github.com/ohshaan/Leave-botanv/internal/repository"
	"github.com/ohshaan/Leave-botanv/internal/session"
)

// replyMsg carries one resolved turn back into the update loop.
type replyMsg struct {
	result *intelligence.Result
}

// chatModel is the interactive conversation loop: echo the utterance, spin
// while the cascade (or the LLM) resolves it, render the reply as markdown.
type chatModel struct {
	app   *App
	state *session.State

	input    textinput.Model
	spin     spinner.Model
	markdown *formatter.Markdown

	messages  []string
	resolving bool
}

func newChatModel(app *App, st *session.State) *chatModel {
	ti := textinput.New()
	ti.Focus()
	ti.Prompt = ""
	ti.CharLimit = 500

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = formatter.StylePurple

	m := &chatModel{
		app:      app,
		state:    st,
		input:    ti,
		spin:     sp,
		markdown: formatter.NewMarkdown(0),
	}
	m.messages = append(m.messages, formatter.Greeting(st.Profile.DisplayName()))
	return m
}

func (m *chatModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *chatModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEnter:
			if m.resolving {
				return m, nil
			}
			utterance := strings.TrimSpace(m.input.Value())
			m.input.Reset()
			if utterance == "" {
				return m, nil
			}
			return m.startTurn(utterance)
		}

	case tea.WindowSizeMsg:
		m.markdown = formatter.NewMarkdown(msg.Width - 4)
		return m, nil

	case spinner.TickMsg:
		if m.resolving {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case replyMsg:
		m.resolving = false
		m.messages = append(m.messages, m.markdown.Render(msg.result.Text))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *chatModel) View() string {
	var b strings.Builder
	for _, msg := range m.messages {
		b.WriteString(msg)
		b.WriteString("\n")
	}

	if m.resolving {
		b.WriteString(m.spin.View())
		b.WriteString(formatter.Dim("thinking..."))
		b.WriteString("\n")
	}

	prompt := formatter.StylePurple.Render("leave") + formatter.Dim("> ")
	b.WriteString(prompt)
	b.WriteString(m.input.View())
	return b.String()
}

// startTurn echoes the utterance and resolves it off the update loop.
func (m *chatModel) startTurn(utterance string) (tea.Model, tea.Cmd) {
	m.messages = append(m.messages, formatter.UserPrefix()+utterance)
	m.resolving = true

	resolveCmd := func() tea.Msg {
		res := m.app.Engine.Resolve(context.Background(), m.state, utterance)
		m.persistTurn(utterance, res.Text)
		return replyMsg{result: res}
	}
	return m, tea.Batch(m.spin.Tick, resolveCmd)
}

// persistTurn appends the user and assistant rows to the transcript log.
// Persistence failures never interrupt the conversation.
func (m *chatModel) persistTurn(utterance, reply string) {
	if m.app.Transcripts == nil {
		return
	}
	ctx := context.Background()
	_ = m.app.Transcripts.AppendMessage(ctx, &repository.TranscriptMessage{
		SessionID: m.state.ID,
		Role:      "user",
		Content:   utterance,
	})
	_ = m.app.Transcripts.AppendMessage(ctx, &repository.TranscriptMessage{
		SessionID: m.state.ID,
		Role:      "assistant",
		Content:   reply,
	})
}
