package service

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/julianstephens/sisy/internal/constants"
	apperrors "github.com/julianstephens/sisy/internal/errors"
	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/utils"
)

// CompleteTask marks a task done and logs it. Completing a done task is a no-op.
func (s *Service) CompleteTask(id string, comment *string) (bool, error) {
	return s.mutate(func(st *models.State) (bool, error) {
		i, ok := st.FindTask(id)
		if !ok {
			return false, apperrors.NotFound("task", id)
		}
		task := st.Tasks[i]
		if task.IsDone() {
			return false, nil
		}
		task.Status = constants.TaskStatusDone
		st.Tasks[i] = task

		prependLog(st, s.taskLog(*st, task, constants.LogTaskComplete, comment, "Completed"))
		return true, nil
	})
}

// SkipTask moves a task forward by its repeat interval in days, reusing the same
// instance. An untimed task is left unchanged.
func (s *Service) SkipTask(id string, comment *string) (bool, error) {
	return s.mutate(func(st *models.State) (bool, error) {
		i, ok := st.FindTask(id)
		if !ok {
			return false, apperrors.NotFound("task", id)
		}
		task := st.Tasks[i]
		if task.ScheduledTime == nil {
			return false, nil
		}
		next := task.ScheduledTime.AddDate(0, 0, task.Interval())
		task.ScheduledTime = &next
		st.Tasks[i] = task

		prependLog(st, s.taskLog(*st, task, constants.LogTaskSkip, comment, "Skipped"))
		return true, nil
	})
}

// RescheduleTask overwrites a task's scheduled time. A nil at makes it untimed.
func (s *Service) RescheduleTask(id string, at *time.Time, comment *string) (bool, error) {
	return s.mutate(func(st *models.State) (bool, error) {
		i, ok := st.FindTask(id)
		if !ok {
			return false, apperrors.NotFound("task", id)
		}
		task := st.Tasks[i]
		if sameInstant(task.ScheduledTime, at) {
			return false, nil
		}
		if at != nil {
			t := *at
			task.ScheduledTime = &t
		} else {
			task.ScheduledTime = nil
		}
		st.Tasks[i] = task

		prependLog(st, s.taskLog(*st, task, constants.LogTaskReschedule, comment, "Rescheduled"))
		return true, nil
	})
}

// AddTask creates an ad hoc task. source must be chat or system.
func (s *Service) AddTask(title string, at *time.Time, source constants.TaskSource) (models.Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return models.Task{}, apperrors.Validation("task title must not be empty")
	}
	switch source {
	case constants.TaskSourceChat, constants.TaskSourceSystem:
	case "":
		source = constants.TaskSourceSystem
	default:
		return models.Task{}, apperrors.Validation("ad hoc tasks cannot have source %q", source)
	}

	now := s.now()
	task := models.Task{
		ID:             s.newID(),
		Title:          title,
		Status:         constants.TaskStatusTodo,
		Source:         source,
		RepeatInterval: constants.DefaultRepeatInterval,
		CreatedAt:      &now,
	}
	if at != nil {
		t := *at
		task.ScheduledTime = &t
	}

	_, err := s.mutate(func(st *models.State) (bool, error) {
		st.Tasks = append(st.Tasks, task)
		return true, nil
	})
	if err != nil {
		return models.Task{}, err
	}
	return task, nil
}

// DeleteTask removes a task. For routine tasks the next tick regenerates today's
// instance when the item is still due.
func (s *Service) DeleteTask(id string) error {
	_, err := s.mutate(func(st *models.State) (bool, error) {
		i, ok := st.FindTask(id)
		if !ok {
			return false, apperrors.NotFound("task", id)
		}
		st.Tasks = slices.Delete(st.Tasks, i, i+1)
		return true, nil
	})
	return err
}

// taskLog builds a user log for a task action. Without a comment the content names
// the action and the linked routine item's title, falling back to the task title.
func (s *Service) taskLog(st models.State, task models.Task, action constants.LogAction, comment *string, verb string) models.LogEntry {
	content := ""
	if comment != nil {
		content = strings.TrimSpace(*comment)
	}
	if content == "" {
		label := task.Title
		if task.RoutineItemID != nil {
			if j, ok := st.FindRoutineItem(*task.RoutineItemID); ok {
				label = st.Routine[j].Title
			}
		}
		content = fmt.Sprintf("%s: %s", verb, label)
		if action != constants.LogTaskComplete {
			content += " (" + describeTime(task.ScheduledTime) + ")"
		}
	}

	entry := models.LogEntry{
		RelatedAction: action,
		Content:       content,
		Author:        constants.AuthorUser,
	}
	if task.RoutineItemID != nil {
		entry.RoutineItemID = utils.Ptr(*task.RoutineItemID)
	}
	return s.logEntry(entry)
}

func describeTime(t *time.Time) string {
	if t == nil {
		return "anytime"
	}
	local := t.Local()
	return utils.FormatDate(local) + " " + utils.FormatClock(local)
}

func sameInstant(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
