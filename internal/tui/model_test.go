package tui

import (
	"context"
	"errors"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/sisy/internal/agent"
	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/service"
	"github.com/julianstephens/sisy/internal/storage"
)

type stubAgent struct {
	resp agent.Response
	err  error
}

func (a stubAgent) Send(context.Context, agent.Request) (agent.Response, error) {
	return a.resp, a.err
}

func newTestModel(t *testing.T, chatter service.Chatter) Model {
	t.Helper()
	now := time.Date(2025, 5, 6, 8, 30, 0, 0, time.Local)
	svc, err := service.New(service.Options{
		Store: storage.NewMemoryStore(),
		Agent: chatter,
		Now:   func() time.Time { return now },
	})
	require.NoError(t, err)
	_, err = svc.AddRoutineItem(models.RoutinePatch{Title: models.Some("Run"), Time: models.Some("07:00")})
	require.NoError(t, err)
	_, err = svc.AddRoutineItem(models.RoutinePatch{Title: models.Some("Read"), Time: models.Some("21:00")})
	require.NoError(t, err)
	return NewModel(svc, Options{TickInterval: time.Minute})
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	model, ok := next.(Model)
	require.True(t, ok)
	return model, cmd
}

func TestTickGeneratesAndSchedulesNext(t *testing.T) {
	m := newTestModel(t, nil)
	assert.Nil(t, m.timeline.Now)

	m, cmd := update(t, m, tickMsg(time.Now()))
	require.NotNil(t, cmd)
	require.NotNil(t, m.timeline.Now)
	assert.Equal(t, "Run", m.timeline.Now.Title)
	require.NotNil(t, m.timeline.Next)
	assert.Equal(t, "Read", m.timeline.Next.Title)
	assert.Contains(t, m.View(), "Run")
}

func TestCompleteSelectedTask(t *testing.T) {
	m := newTestModel(t, nil)
	m, _ = update(t, m, tickMsg(time.Now()))
	m.cursor = m.nowIndex()

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	assert.Equal(t, "Completed: Run", m.status)
	require.NotNil(t, m.timeline.Now)
	assert.Equal(t, "Read", m.timeline.Now.Title)
}

func TestChatRoundTrip(t *testing.T) {
	m := newTestModel(t, stubAgent{resp: agent.Response{AssistantText: "Noted."}})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	require.Equal(t, StateChat, m.state)

	m.input.SetValue("hello")
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	assert.True(t, m.sending)
	assert.Contains(t, m.View(), "typing")

	m, _ = update(t, m, cmd())
	assert.False(t, m.sending)
	assert.NoError(t, m.err)
	assert.Len(t, m.svc.Snapshot().Chat, 2)
	assert.Contains(t, m.View(), "Noted.")
}

func TestChatFailureShowsError(t *testing.T) {
	m := newTestModel(t, stubAgent{err: errors.New("connection refused")})
	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyTab})
	m.input.SetValue("hello")

	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	m, _ = update(t, m, cmd())
	require.Error(t, m.err)
	assert.Empty(t, m.svc.Snapshot().Chat)
	assert.Contains(t, m.View(), "connection refused")
}
