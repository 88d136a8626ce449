package notifier

import (
	"fmt"

	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/timeline"
	"github.com/julianstephens/sisy/internal/utils"
)

// Tracker remembers the last announced now-task so a notification fires only when
// the focus moves to a different task.
type Tracker struct {
	lastID string
}

// Observe returns the message to announce for tl, or false when focus is unchanged
// or there is nothing to do.
func (t *Tracker) Observe(tl timeline.Timeline) (string, bool) {
	if tl.Now == nil {
		t.lastID = ""
		return "", false
	}
	if tl.Now.ID == t.lastID {
		return "", false
	}
	t.lastID = tl.Now.ID
	return Message(*tl.Now), true
}

// Message formats a now-task announcement.
func Message(task models.Task) string {
	if task.ScheduledTime == nil {
		return fmt.Sprintf("Now: %s", task.Title)
	}
	return fmt.Sprintf("Now: %s (%s)", task.Title, utils.FormatClock(task.ScheduledTime.Local()))
}
