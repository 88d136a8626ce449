package tui

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	"github.com/julianstephens/sisy/internal/constants"
	"github.com/julianstephens/sisy/internal/service"
	"github.com/julianstephens/sisy/internal/timeline"
)

type SessionState int

const (
	StateNow SessionState = iota
	StateChat
	StateRoutine
	StateAddRoutine
)

// tabCount is the number of tabbed states; form states follow them.
const tabCount = 3

type Options struct {
	Tab          string
	TickInterval time.Duration
}

type Model struct {
	svc      *service.Service
	tab      string
	interval time.Duration

	state       SessionState
	keys        KeyMap
	help        help.Model
	input       textinput.Model
	form        *huh.Form
	routineForm *RoutineFormModel

	timeline timeline.Timeline
	cursor   int
	sending  bool
	status   string
	err      error

	width    int
	height   int
	quitting bool
}

type tickMsg time.Time

// chatDoneMsg carries the outcome of an asynchronous chat round-trip.
type chatDoneMsg struct {
	result service.ChatResult
	err    error
}

func NewModel(svc *service.Service, opts Options) Model {
	if opts.Tab == "" {
		opts.Tab = constants.DefaultChatTab
	}
	if opts.TickInterval <= 0 {
		opts.TickInterval = constants.DefaultTickInterval
	}

	input := textinput.New()
	input.Placeholder = "Tell sisy about your day..."
	input.CharLimit = 2000
	input.Prompt = "> "

	m := Model{
		svc:      svc,
		tab:      opts.Tab,
		interval: opts.TickInterval,
		state:    StateNow,
		keys:     DefaultKeyMap(),
		help:     help.New(),
		input:    input,
		timeline: svc.Timeline(),
	}
	m.cursor = m.nowIndex()
	return m
}

func (m Model) ShortHelp() []key.Binding {
	keys := []key.Binding{m.keys.Tab, m.keys.Quit, m.keys.Help}
	switch m.state {
	case StateNow:
		keys = append(keys, m.keys.Complete, m.keys.Skip)
	case StateChat:
		keys = append(keys, m.keys.Enter)
	case StateRoutine:
		keys = append(keys, m.keys.Add, m.keys.Delete, m.keys.Clear)
	}
	return keys
}

func (m Model) FullHelp() [][]key.Binding {
	global := []key.Binding{m.keys.Tab, m.keys.ShiftTab, m.keys.Quit, m.keys.Help}
	navigation := []key.Binding{m.keys.Up, m.keys.Down, m.keys.Enter, m.keys.Esc}

	var actions []key.Binding
	switch m.state {
	case StateNow:
		actions = []key.Binding{m.keys.Complete, m.keys.Skip}
	case StateRoutine:
		actions = []key.Binding{m.keys.Add, m.keys.Delete, m.keys.Clear}
	}
	return [][]key.Binding{global, navigation, actions}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(tickNow(), textinput.Blink)
}

func tickNow() tea.Cmd {
	return func() tea.Msg { return tickMsg(time.Now()) }
}

func tickAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// sendChat runs the round-trip off the update loop.
func (m Model) sendChat(text string) tea.Cmd {
	svc, tab := m.svc, m.tab
	return func() tea.Msg {
		result, err := svc.SendChat(context.Background(), text, tab, nil)
		return chatDoneMsg{result: result, err: err}
	}
}
