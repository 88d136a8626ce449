// Package timeline derives the "now" read-model from the task list.
//
// Derive is a pure function of its inputs and is recomputed on every tick and
// every task mutation; it holds no state between calls.
package timeline

import (
	"sort"
	"time"

	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/utils"
)

// Timeline is the derived view of today's tasks.
type Timeline struct {
	Now  *models.Task
	Next *models.Task
	Past *models.Task
	// Tasks is the full scrollable sequence: done, then overdue oldest first, then upcoming.
	Tasks []models.Task
	// Overdue is ordered most recent miss first.
	Overdue  []models.Task
	Upcoming []models.Task
}

// Derive computes the now/next/past pointers and the full timeline for now.
func Derive(tasks []models.Task, now time.Time) Timeline {
	start := utils.StartOfDay(now)
	end := utils.EndOfDay(now)

	var overdue, upcoming, done []models.Task
	for _, task := range tasks {
		if !scheduledToday(task, start, end) {
			continue
		}
		if task.IsDone() {
			done = append(done, task)
			continue
		}
		if !task.IsTodo() || hiddenAutoComplete(task, now) {
			continue
		}
		if task.ScheduledTime != nil && task.ScheduledTime.Before(now) {
			overdue = append(overdue, task)
		} else {
			upcoming = append(upcoming, task)
		}
	}

	sort.SliceStable(overdue, func(i, j int) bool {
		return overdue[i].ScheduledTime.After(*overdue[j].ScheduledTime)
	})
	sort.SliceStable(upcoming, func(i, j int) bool {
		return timedBefore(upcoming[i], upcoming[j])
	})

	tl := Timeline{Overdue: overdue, Upcoming: upcoming}
	tl.selectPointers()
	tl.Tasks = buildSequence(done, overdue, upcoming)
	return tl
}

func (tl *Timeline) selectPointers() {
	if len(tl.Overdue) > 0 {
		tl.Now = &tl.Overdue[0]
		for i := 1; i < len(tl.Overdue); i++ {
			if !tl.Overdue[i].AutoComplete {
				tl.Past = &tl.Overdue[i]
				break
			}
		}
		if len(tl.Upcoming) > 0 {
			tl.Next = &tl.Upcoming[0]
		}
		return
	}

	if len(tl.Upcoming) > 0 {
		tl.Now = &tl.Upcoming[0]
	}
	if len(tl.Upcoming) > 1 {
		tl.Next = &tl.Upcoming[1]
	}
}

// scheduledToday keeps tasks whose effective time falls within [start, end].
// Untimed tasks are dated by creation; an untimed task with no creation time is kept.
func scheduledToday(task models.Task, start, end time.Time) bool {
	at, ok := task.EffectiveTime()
	if !ok {
		return true
	}
	return !at.Before(start) && !at.After(end)
}

// hiddenAutoComplete reports whether an auto-complete task has passed its time.
// Such tasks stay todo in storage and are only dropped from the view.
func hiddenAutoComplete(task models.Task, now time.Time) bool {
	return task.AutoComplete && task.ScheduledTime != nil && task.ScheduledTime.Before(now)
}

// timedBefore orders by scheduled time ascending with untimed tasks last.
func timedBefore(a, b models.Task) bool {
	switch {
	case a.ScheduledTime == nil:
		return false
	case b.ScheduledTime == nil:
		return true
	default:
		return a.ScheduledTime.Before(*b.ScheduledTime)
	}
}

func buildSequence(done, overdue, upcoming []models.Task) []models.Task {
	done = append([]models.Task(nil), done...)
	sort.SliceStable(done, func(i, j int) bool {
		return timedBefore(done[i], done[j])
	})

	chronological := append([]models.Task(nil), overdue...)
	sort.SliceStable(chronological, func(i, j int) bool {
		return chronological[i].ScheduledTime.Before(*chronological[j].ScheduledTime)
	})

	seen := make(map[string]bool, len(done)+len(overdue)+len(upcoming))
	out := make([]models.Task, 0, len(done)+len(overdue)+len(upcoming))
	for _, group := range [][]models.Task{done, chronological, upcoming} {
		for _, task := range group {
			if seen[task.ID] {
				continue
			}
			seen[task.ID] = true
			out = append(out, task)
		}
	}
	return out
}

// Contains reports whether the full timeline includes the task id.
func (tl Timeline) Contains(id string) bool {
	for _, task := range tl.Tasks {
		if task.ID == id {
			return true
		}
	}
	return false
}
