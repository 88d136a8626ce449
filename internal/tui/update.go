package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"

	apperrors "github.com/julianstephens/sisy/internal/errors"
	"github.com/julianstephens/sisy/internal/logger"
	"github.com/julianstephens/sisy/internal/models"
)

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.input.Width = max(msg.Width-6, 10)
		return m, nil

	case tickMsg:
		if _, err := m.svc.Tick(); err != nil {
			m.setErr(err)
		}
		m.refresh()
		return m, tickAfter(m.interval)

	case chatDoneMsg:
		m.sending = false
		if msg.err != nil {
			m.setErr(msg.err)
			return m, nil
		}
		m.err = nil
		m.status = ""
		if n := msg.result.Actions.Applied; n > 0 {
			m.status = fmt.Sprintf("Applied %d update(s)", n)
		}
		m.refresh()
		return m, nil
	}

	if m.state == StateAddRoutine {
		return m.updateForm(msg)
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.state == StateChat {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Tab):
		return m.switchTab((m.state + 1) % tabCount), nil
	case key.Matches(keyMsg, m.keys.ShiftTab):
		return m.switchTab((m.state - 1 + tabCount) % tabCount), nil
	}

	switch m.state {
	case StateChat:
		return m.updateChat(keyMsg)
	case StateRoutine:
		return m.updateRoutine(keyMsg)
	default:
		return m.updateNow(keyMsg)
	}
}

func (m Model) switchTab(state SessionState) Model {
	m.state = state
	m.cursor = 0
	if state == StateNow {
		m.cursor = m.nowIndex()
	}
	if state == StateChat {
		m.input.Focus()
	} else {
		m.input.Blur()
	}
	return m
}

func (m Model) updateNow(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	tasks := m.timeline.Tasks
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(tasks)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Complete):
		if task, ok := m.selectedTask(); ok {
			if _, err := m.svc.CompleteTask(task.ID, nil); err != nil {
				m.setErr(err)
			} else {
				m.status = "Completed: " + task.Title
			}
			m.refresh()
		}
	case key.Matches(msg, m.keys.Skip):
		if task, ok := m.selectedTask(); ok {
			changed, err := m.svc.SkipTask(task.ID, nil)
			switch {
			case err != nil:
				m.setErr(err)
			case !changed:
				m.status = "Anytime tasks cannot be skipped"
			default:
				m.status = "Skipped: " + task.Title
			}
			m.refresh()
		}
	}
	return m, nil
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Esc):
		return m.switchTab(StateNow), nil
	case key.Matches(msg, m.keys.Enter):
		text := strings.TrimSpace(m.input.Value())
		if text == "" || m.sending {
			return m, nil
		}
		m.sending = true
		m.err = nil
		m.input.Reset()
		return m, m.sendChat(text)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) updateRoutine(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	routine := m.svc.Snapshot().Routine
	switch {
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(routine)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Add):
		m.routineForm = &RoutineFormModel{Interval: "1"}
		m.form = NewRoutineForm(m.routineForm)
		m.state = StateAddRoutine
		return m, m.form.Init()
	case key.Matches(msg, m.keys.Delete):
		if m.cursor < len(routine) {
			item := routine[m.cursor]
			if err := m.svc.DeleteRoutineItem(item.ID); err != nil {
				m.setErr(err)
			} else {
				m.status = "Deleted: " + item.Title
				m.cursor = max(m.cursor-1, 0)
			}
		}
	case key.Matches(msg, m.keys.Clear):
		if _, err := m.svc.ClearHighlights(); err != nil {
			m.setErr(err)
		}
	}
	return m, nil
}

func (m Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok && key.Matches(keyMsg, m.keys.Quit) {
		m.quitting = true
		return m, tea.Quit
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	switch m.form.State {
	case huh.StateCompleted:
		if item, err := m.svc.AddRoutineItem(m.routineForm.Patch()); err != nil {
			m.setErr(err)
		} else {
			m.status = "Added: " + item.Title
		}
		m.form, m.routineForm = nil, nil
		m.state = StateRoutine
		if _, err := m.svc.Tick(); err != nil {
			m.setErr(err)
		}
		m.refresh()
		return m, nil
	case huh.StateAborted:
		m.form, m.routineForm = nil, nil
		m.state = StateRoutine
		return m, nil
	}
	return m, cmd
}

func (m *Model) refresh() {
	m.timeline = m.svc.Timeline()
	if m.cursor >= len(m.timeline.Tasks) && m.state == StateNow {
		m.cursor = max(len(m.timeline.Tasks)-1, 0)
	}
}

func (m *Model) setErr(err error) {
	m.err = err
	m.status = ""
	if !errors.Is(err, apperrors.ErrValidation) {
		logger.Warn("TUI action failed", "error", err)
	}
}

// nowIndex is the position of the now task in the timeline sequence.
func (m Model) nowIndex() int {
	if m.timeline.Now == nil {
		return 0
	}
	for i, task := range m.timeline.Tasks {
		if task.ID == m.timeline.Now.ID {
			return i
		}
	}
	return 0
}

func (m Model) selectedTask() (models.Task, bool) {
	if m.cursor < 0 || m.cursor >= len(m.timeline.Tasks) {
		return models.Task{}, false
	}
	return m.timeline.Tasks[m.cursor], true
}
