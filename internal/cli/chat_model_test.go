package cli

import (
	"context"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ohshaan/Leave-botanv/internal/intelligence"
	"github.com/ohshaan/Leave-botanv/internal/repository"
	"github.com/ohshaan/Leave-botanv/internal/testutil"
)

func newTestApp(t *testing.T, transcripts repository.TranscriptRepo) *App {
	t.Helper()
	engine := intelligence.NewEngine(nil, &testutil.FakeGateway{}, nil).
		WithClock(func() time.Time { return time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC) })
	return &App{Engine: engine, Transcripts: transcripts}
}

// sendTurn types an utterance, presses enter and pumps the resulting
// command until the reply lands in the model.
func sendTurn(t *testing.T, m *chatModel, utterance string) *chatModel {
	t.Helper()
	m.input.SetValue(utterance)
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	cm := model.(*chatModel)
	require.NotNil(t, cmd)

	// Resolve runs inside the batch; pump messages until the reply shows.
	deliver(t, cm, cmd)
	require.False(t, cm.resolving, "turn should complete synchronously with a nil LLM client")
	return cm
}

func deliver(t *testing.T, m *chatModel, cmd tea.Cmd) {
	t.Helper()
	switch msg := cmd().(type) {
	case tea.BatchMsg:
		for _, c := range msg {
			if c != nil {
				deliver(t, m, c)
			}
		}
	case replyMsg:
		m.Update(msg)
	}
}

func TestChatModelGreetsOnStart(t *testing.T) {
	m := newChatModel(newTestApp(t, nil), testutil.NewState())

	assert.Contains(t, m.View(), "Hello, Jordan Blake! How can I assist you today?")
}

func TestChatModelResolvesTurn(t *testing.T) {
	m := newChatModel(newTestApp(t, nil), testutil.NewState())

	m = sendTurn(t, m, "who approves my leaves")

	view := m.View()
	assert.Contains(t, view, "who approves my leaves")
	assert.Contains(t, view, "Sam Carter")
}

func TestChatModelIgnoresEmptyInput(t *testing.T) {
	m := newChatModel(newTestApp(t, nil), testutil.NewState())
	before := len(m.messages)

	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = model.(*chatModel)

	assert.Nil(t, cmd)
	assert.Len(t, m.messages, before)
}

func TestChatModelQuitKeys(t *testing.T) {
	for _, key := range []tea.KeyType{tea.KeyEsc, tea.KeyCtrlC} {
		m := newChatModel(newTestApp(t, nil), testutil.NewState())
		_, cmd := m.Update(tea.KeyMsg{Type: key})
		require.NotNil(t, cmd, "key %v", key)
		assert.Equal(t, tea.Quit(), cmd(), "key %v", key)
	}
}

func TestChatModelPersistsTurns(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := repository.NewSQLiteTranscriptRepo(db)
	ctx := context.Background()

	st := testutil.NewState()
	require.NoError(t, repo.StartSession(ctx, st.ID, st.EmpID))

	m := newChatModel(newTestApp(t, repo), st)
	sendTurn(t, m, "who approves my leaves")

	rows, err := repo.ListMessages(ctx, st.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "user", rows[0].Role)
	assert.Equal(t, "who approves my leaves", rows[0].Content)
	assert.Equal(t, "assistant", rows[1].Role)
	assert.Contains(t, rows[1].Content, "Sam Carter")
}
