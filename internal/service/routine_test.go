package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/sisy/internal/constants"
	apperrors "github.com/julianstephens/sisy/internal/errors"
	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/utils"
)

func TestAddRoutineItem(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.AddRoutineItem(models.RoutinePatch{Time: models.Some("07:00")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	_, err = f.svc.AddRoutineItem(models.RoutinePatch{Title: models.Some("Run"), Time: models.Some("7am")})
	assert.ErrorIs(t, err, apperrors.ErrValidation)

	f.addRoutine(t, "Evening walk", "19:00", 1)
	f.addRoutine(t, "Journal", "", 1)
	f.addRoutine(t, "Run", "07:00", 1)

	var titles []string
	for _, item := range f.svc.Snapshot().Routine {
		titles = append(titles, item.Title)
	}
	assert.Equal(t, []string{"Run", "Evening walk", "Journal"}, titles)
}

func TestUpdateRoutineItem_PropagatesToTodayOpenTasks(t *testing.T) {
	f := newFixture(t)
	item := f.addRoutine(t, "Run", "07:00", 1)

	// Yesterday's open task and today's done task must stay as they are.
	yesterday := f.clock.t.AddDate(0, 0, -1)
	stale, err := f.svc.AddTask("Run", utils.ComposeOnDate(utils.Ptr("07:00"), yesterday), constants.TaskSourceSystem)
	require.NoError(t, err)
	_, err = f.svc.mutate(func(st *models.State) (bool, error) {
		i, _ := st.FindTask(stale.ID)
		st.Tasks[i].RoutineItemID = utils.Ptr(item.ID)
		st.Tasks[i].Source = constants.TaskSourceRoutine
		return true, nil
	})
	require.NoError(t, err)

	_, err = f.svc.Tick()
	require.NoError(t, err)
	var today models.Task
	for _, task := range f.tasksFor(item.ID) {
		if task.ID != stale.ID {
			today = task
		}
	}
	require.NotEmpty(t, today.ID)

	changed, err := f.svc.UpdateRoutineItem(item.ID, models.RoutinePatch{
		Title: models.Some("Morning run"),
		Time:  models.Some("07:30"),
	})
	require.NoError(t, err)
	assert.True(t, changed)

	st := f.svc.Snapshot()
	i, _ := st.FindTask(today.ID)
	assert.Equal(t, "Morning run", st.Tasks[i].Title)
	assert.Equal(t, "07:30", utils.FormatClock(*st.Tasks[i].ScheduledTime))
	assert.True(t, utils.SameDay(*st.Tasks[i].ScheduledTime, f.clock.t))

	j, _ := st.FindTask(stale.ID)
	assert.Equal(t, "Run", st.Tasks[j].Title, "other days are untouched")

	_, err = f.svc.CompleteTask(today.ID, nil)
	require.NoError(t, err)
	_, err = f.svc.UpdateRoutineItem(item.ID, models.RoutinePatch{Title: models.Some("Long run")})
	require.NoError(t, err)

	st = f.svc.Snapshot()
	i, _ = st.FindTask(today.ID)
	assert.Equal(t, "Morning run", st.Tasks[i].Title, "done tasks are untouched")
	k, _ := st.FindRoutineItem(item.ID)
	assert.Equal(t, "Long run", st.Routine[k].Title)
}

func TestUpdateRoutineItem_NoChange(t *testing.T) {
	f := newFixture(t)
	item := f.addRoutine(t, "Run", "07:00", 1)

	changed, err := f.svc.UpdateRoutineItem(item.ID, models.RoutinePatch{Title: models.Some("Run")})
	require.NoError(t, err)
	assert.False(t, changed)

	_, err = f.svc.UpdateRoutineItem("missing", models.RoutinePatch{Title: models.Some("x")})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestRevertRoutineDescription(t *testing.T) {
	f := newFixture(t)
	item, err := f.svc.AddRoutineItem(models.RoutinePatch{
		Title:       models.Some("Stretch"),
		Description: models.Some("ten minutes"),
	})
	require.NoError(t, err)

	changed, err := f.svc.RevertRoutineDescription(item.ID)
	require.NoError(t, err)
	assert.False(t, changed, "no shadow yet")

	_, err = f.svc.UpdateRoutineItem(item.ID, models.RoutinePatch{Description: models.Some("twenty minutes")})
	require.NoError(t, err)
	_, err = f.svc.Tick()
	require.NoError(t, err)

	changed, err = f.svc.RevertRoutineDescription(item.ID)
	require.NoError(t, err)
	assert.True(t, changed)

	st := f.svc.Snapshot()
	i, _ := st.FindRoutineItem(item.ID)
	assert.Equal(t, "ten minutes", *st.Routine[i].Description)
	assert.Equal(t, "twenty minutes", *st.Routine[i].PreviousDescription)

	tasks := f.tasksFor(item.ID)
	require.Len(t, tasks, 1)
	assert.Equal(t, "ten minutes", *tasks[0].Description)
}

func TestDeleteRoutineItem_KeepsTasks(t *testing.T) {
	f := newFixture(t)
	item := f.addRoutine(t, "Run", "07:00", 1)
	_, err := f.svc.Tick()
	require.NoError(t, err)

	require.NoError(t, f.svc.DeleteRoutineItem(item.ID))
	assert.Empty(t, f.svc.Snapshot().Routine)
	assert.Len(t, f.tasksFor(item.ID), 1)

	assert.ErrorIs(t, f.svc.DeleteRoutineItem(item.ID), apperrors.ErrNotFound)
}

func TestImportRoutine(t *testing.T) {
	f := newFixture(t)
	f.addRoutine(t, "Old", "06:00", 1)

	n, err := f.svc.ImportRoutine([]byte(`[{"title":"Read","time":"21:00"},{"id":"r-1","title":"Run","time":"07:00","repeat_interval":2}]`))
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	st := f.svc.Snapshot()
	require.Len(t, st.Routine, 2)
	assert.Equal(t, "r-1", st.Routine[0].ID)
	assert.Equal(t, 2, st.Routine[0].RepeatInterval)
	assert.Equal(t, "Read", st.Routine[1].Title)
}

func TestImportRoutine_InvalidLeavesStateUnchanged(t *testing.T) {
	f := newFixture(t)
	f.addRoutine(t, "Run", "07:00", 1)
	before := f.svc.Snapshot()

	cases := []string{
		`{"title":"not an array"}`,
		`[{"time":"07:00"}]`,
		`[{"title":"Run","time":"25:00"}]`,
		`[{"title":"Run","repeat_interval":0}]`,
		`[{"id":"a","title":"x"},{"id":"a","title":"y"}]`,
	}
	for _, data := range cases {
		_, err := f.svc.ImportRoutine([]byte(data))
		assert.ErrorIs(t, err, apperrors.ErrValidation, data)
	}
	assert.Equal(t, before, f.svc.Snapshot())
}

func TestUpdateRoutineItem_HiddenAutoCompleteStillReceivesEdits(t *testing.T) {
	f := newFixture(t)
	f.clock.t = time.Date(2025, 5, 6, 12, 0, 0, 0, time.Local)
	item, err := f.svc.AddRoutineItem(models.RoutinePatch{
		Title:        models.Some("Vitamins"),
		Time:         models.Some("08:00"),
		AutoComplete: models.Some(true),
	})
	require.NoError(t, err)
	_, err = f.svc.Tick()
	require.NoError(t, err)

	_, err = f.svc.UpdateRoutineItem(item.ID, models.RoutinePatch{Title: models.Some("Vitamin D")})
	require.NoError(t, err)
	tasks := f.tasksFor(item.ID)
	require.Len(t, tasks, 1)
	assert.Equal(t, "Vitamin D", tasks[0].Title)
	assert.True(t, tasks[0].IsTodo())
}
