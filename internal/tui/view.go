package tui

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/julianstephens/sisy/internal/constants"
	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/utils"
)

// chatHistory is how many recent messages the chat tab shows.
const chatHistory = 12

func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var content string
	switch m.state {
	case StateNow:
		content = m.viewNow()
	case StateChat:
		content = m.viewChat()
	case StateRoutine:
		content = m.viewRoutine()
	case StateAddRoutine:
		content = docStyle.Render(m.form.View())
	}

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.viewTabs(),
		content,
		m.viewStatus(),
		m.help.View(m),
	)
}

func (m Model) viewTabs() string {
	var tabs []string
	for i, title := range []string{"Now", "Chat", "Routine"} {
		active := m.state == SessionState(i) || (m.state == StateAddRoutine && i == int(StateRoutine))
		if active {
			tabs = append(tabs, activeTabStyle.Render(title))
		} else {
			tabs = append(tabs, inactiveTabStyle.Render(title))
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
}

func (m Model) viewNow() string {
	tl := m.timeline
	now := utils.Now()

	var card string
	if tl.Now == nil {
		card = nowCardStyle.Render("Nothing left for today")
	} else {
		card = lipgloss.JoinVertical(lipgloss.Center,
			mutedStyle.Render(clockLabel(*tl.Now)),
			nowCardStyle.Render(tl.Now.Title),
		)
	}

	lines := []string{
		titleStyle.Render(fmt.Sprintf("Now: %s", utils.FormatClock(now))),
		card,
	}
	if tl.Next != nil {
		lines = append(lines, mutedStyle.Render(fmt.Sprintf("Next: %s  %s", clockLabel(*tl.Next), tl.Next.Title)))
	}
	if tl.Past != nil {
		lines = append(lines, warningStyle.Render(fmt.Sprintf("Missed: %s  %s", clockLabel(*tl.Past), tl.Past.Title)))
	}
	lines = append(lines, "")

	for i, task := range tl.Tasks {
		line := fmt.Sprintf("%-7s %s", clockLabel(task), task.Title)
		switch {
		case i == m.cursor:
			line = selectedStyle.Render("» " + line)
		case task.IsDone():
			line = "  " + doneStyle.Render(line)
		default:
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewChat() string {
	chat := m.svc.Snapshot().Chat
	if len(chat) > chatHistory {
		chat = chat[len(chat)-chatHistory:]
	}

	var lines []string
	if len(chat) == 0 {
		lines = append(lines, mutedStyle.Render("No messages yet. Ask sisy to plan a routine."))
	}
	for _, msg := range chat {
		lines = append(lines, formatMessage(msg))
	}
	if m.sending || m.svc.IsTyping() {
		lines = append(lines, mutedStyle.Render("sisy is typing..."))
	}
	lines = append(lines, "", m.input.View())
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewRoutine() string {
	st := m.svc.Snapshot()
	if len(st.Routine) == 0 {
		return docStyle.Render(mutedStyle.Render("No routine items. Press 'a' to add one."))
	}

	var lines []string
	for i, item := range st.Routine {
		when := "anytime"
		if item.Time != nil {
			when = *item.Time
		}
		line := fmt.Sprintf("%-7s %s", when, item.Title)
		if item.Interval() > 1 {
			line += mutedStyle.Render(fmt.Sprintf(" (every %d days)", item.Interval()))
		}
		if slices.Contains(st.HighlightedIDs, item.ID) {
			line = highlightStyle.Render("● ") + line
		} else {
			line = "  " + line
		}
		if i == m.cursor {
			line = selectedStyle.Render("» ") + line
		} else {
			line = "  " + line
		}
		lines = append(lines, line)
	}
	return docStyle.Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}

func (m Model) viewStatus() string {
	switch {
	case m.err != nil:
		return docStyle.Render(dangerStyle.Render("Error: " + m.err.Error()))
	case m.status != "":
		return docStyle.Render(mutedStyle.Render(m.status))
	}
	return ""
}

func formatMessage(msg models.ChatMessage) string {
	who := userStyle.Render("you")
	if msg.Role == constants.ChatRoleAssistant {
		who = assistantStyle.Render("sisy")
	}
	return fmt.Sprintf("%s: %s", who, strings.TrimSpace(msg.Text))
}

func clockLabel(task models.Task) string {
	if task.ScheduledTime == nil {
		return "anytime"
	}
	return utils.FormatClock(task.ScheduledTime.Local())
}
