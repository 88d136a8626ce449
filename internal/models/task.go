package models

import (
	"time"

	"github.com/julianstephens/sisy/internal/constants"
)

// Task is a single dated instance of work.
type Task struct {
	ID             string               `json:"id"`
	Title          string               `json:"title"`
	ScheduledTime  *time.Time           `json:"scheduled_time"` // nil means anytime today
	Status         constants.TaskStatus `json:"status"`
	Source         constants.TaskSource `json:"source"`
	AutoComplete   bool                 `json:"auto_complete"`
	RepeatInterval int                  `json:"repeat_interval,omitempty"`
	RoutineItemID  *string              `json:"routine_item_id"` // non-owning back-reference
	Description    *string              `json:"description"`
	CreatedAt      *time.Time           `json:"created_at,omitempty"`
}

// Interval returns the repeat interval, falling back to the default for unset values.
func (t Task) Interval() int {
	if t.RepeatInterval < 1 {
		return constants.DefaultRepeatInterval
	}
	return t.RepeatInterval
}

// IsDone reports whether the task has been completed.
func (t Task) IsDone() bool {
	return t.Status == constants.TaskStatusDone
}

// IsTodo reports whether the task is still open.
func (t Task) IsTodo() bool {
	return t.Status == constants.TaskStatusTodo
}

// EffectiveTime is the instant used to date the task: its scheduled time,
// else its creation time. The second return is false when neither is known.
func (t Task) EffectiveTime() (time.Time, bool) {
	if t.ScheduledTime != nil {
		return *t.ScheduledTime, true
	}
	if t.CreatedAt != nil {
		return *t.CreatedAt, true
	}
	return time.Time{}, false
}

// LinkedTo reports whether the task was generated from the given routine item.
func (t Task) LinkedTo(routineItemID string) bool {
	return t.RoutineItemID != nil && *t.RoutineItemID == routineItemID
}
