package scheduler

import (
	"sort"
	"time"

	"github.com/julianstephens/sisy/internal/constants"
	"github.com/julianstephens/sisy/internal/logger"
	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/utils"
)

type Scheduler struct {
	newID func() string
}

func New() *Scheduler {
	return &Scheduler{newID: utils.NewID}
}

// NewWithIDs creates a Scheduler drawing task ids from newID.
func NewWithIDs(newID func() string) *Scheduler {
	return &Scheduler{newID: newID}
}

// GenerateTasks returns the task instances that must be added so every routine item
// has a covering task for now's calendar day, subject to its repeat interval.
// Existing tasks are never modified or removed.
func (s *Scheduler) GenerateTasks(tasks []models.Task, routine []models.RoutineItem, now time.Time) []models.Task {
	covered := coveredToday(tasks, now)

	var generated []models.Task
	for _, item := range routine {
		if covered[item.ID] {
			continue
		}
		if !s.isDue(item, tasks, now) {
			continue
		}
		generated = append(generated, s.newTask(item, now))
	}

	if len(generated) > 0 {
		logger.Debug("Generated routine tasks", "count", len(generated), "day", utils.FormatDate(now))
	}
	return generated
}

// coveredToday marks every routine item that already has a task dated today,
// regardless of that task's status.
func coveredToday(tasks []models.Task, now time.Time) map[string]bool {
	covered := make(map[string]bool)
	for _, task := range tasks {
		if task.RoutineItemID == nil {
			continue
		}
		at, ok := task.EffectiveTime()
		if !ok {
			continue
		}
		if utils.SameDay(at, now) {
			covered[*task.RoutineItemID] = true
		}
	}
	return covered
}

// isDue compares the most recent occurrence of item against today.
// An item that has never produced a task is always due.
func (s *Scheduler) isDue(item models.RoutineItem, tasks []models.Task, now time.Time) bool {
	var history []models.Task
	for _, task := range tasks {
		if task.LinkedTo(item.ID) {
			history = append(history, task)
		}
	}
	if len(history) == 0 {
		return true
	}

	sort.SliceStable(history, func(i, j int) bool {
		return occurrence(history[i]).After(occurrence(history[j]))
	})

	return utils.IsDue(occurrence(history[0]), now, item.Interval())
}

// occurrence dates a task for recurrence purposes; undated tasks sort as the epoch.
func occurrence(task models.Task) time.Time {
	if at, ok := task.EffectiveTime(); ok {
		return at
	}
	return time.Unix(0, 0)
}

func (s *Scheduler) newTask(item models.RoutineItem, now time.Time) models.Task {
	created := now
	return models.Task{
		ID:             s.newID(),
		Title:          item.Title,
		ScheduledTime:  utils.ComposeOnDate(item.Time, now),
		Status:         constants.TaskStatusTodo,
		Source:         constants.TaskSourceRoutine,
		AutoComplete:   item.AutoComplete,
		RepeatInterval: item.Interval(),
		RoutineItemID:  utils.Ptr(item.ID),
		Description:    item.Description,
		CreatedAt:      &created,
	}
}
