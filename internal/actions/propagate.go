package actions

import (
	"time"

	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/utils"
)

// Propagate copies the fields set in patch from item onto item's todo tasks whose
// effective date is today. A time change is recomposed onto each task's own day.
func Propagate(st *models.State, item models.RoutineItem, patch models.RoutinePatch, now time.Time) {
	for i, task := range st.Tasks {
		if !task.LinkedTo(item.ID) || !task.IsTodo() {
			continue
		}
		at, ok := task.EffectiveTime()
		if !ok || !utils.SameDay(at, now) {
			continue
		}

		if patch.Title.Set {
			task.Title = item.Title
		}
		if patch.Time.Set {
			task.ScheduledTime = utils.ComposeOnDate(item.Time, at.In(now.Location()))
		}
		if patch.AutoComplete.Set {
			task.AutoComplete = item.AutoComplete
		}
		if patch.Description.Set {
			task.Description = item.Description
		}
		st.Tasks[i] = task
	}
}
