package actions

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/sisy/internal/constants"
	"github.com/julianstephens/sisy/internal/models"
)

var applyNow = time.Date(2025, 2, 3, 9, 0, 0, 0, time.Local)

func newTestApplier() *Applier {
	n := 0
	return &Applier{NewID: func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}}
}

func str(s string) *string { return &s }

func baseState() models.State {
	st := models.State{
		Routine: []models.RoutineItem{
			{ID: "r-run", Title: "Run", Time: str("07:00"), RepeatInterval: 1},
			{ID: "r-read", Title: "Read", Time: str("21:00"), RepeatInterval: 1},
		},
		Profile: []models.ProfileField{
			{Key: "name", Value: "", Group: constants.SeedProfileGroup, Source: constants.ProfileSourceUser},
		},
		Logs:           []models.LogEntry{{ID: "old-log", Content: "existing"}},
		HighlightedIDs: []string{"r-read"},
	}
	st.Normalize()
	return st
}

func TestApply_EmptyAndIgnoredBatches(t *testing.T) {
	batches := map[string][]Action{
		"empty":      nil,
		"legacy":     {Legacy{Type: KindCreateTask}, Legacy{Type: KindAddLog}},
		"unknown":    {Unknown{Type: "teleport"}},
		"invalid":    {Invalid{Type: KindUpsertProfileField, Reason: "missing key"}},
		"all ignore": {Legacy{Type: KindSuggestReschedule}, Unknown{Type: "x"}, Invalid{Type: KindUpsertRoutineItem}},
	}

	for name, batch := range batches {
		t.Run(name, func(t *testing.T) {
			st := baseState()
			got, res := newTestApplier().Apply(st, batch, applyNow)

			assert.Equal(t, st.Logs, got.Logs)
			assert.Equal(t, st.HighlightedIDs, got.HighlightedIDs)
			assert.Equal(t, st, got)
			assert.Zero(t, res.Applied)
			assert.Equal(t, len(batch), res.Ignored)
			assert.Empty(t, res.Logs)
		})
	}
}

func TestApply_UpsertProfileField(t *testing.T) {
	st := baseState()
	a := newTestApplier()

	t.Run("new field is prepended with defaults", func(t *testing.T) {
		got, res := a.Apply(st, []Action{UpsertProfileField{Key: "mood", Value: "calm"}}, applyNow)

		require.Equal(t, 1, res.Applied)
		require.Len(t, got.Profile, 2)
		field := got.Profile[0]
		assert.Equal(t, "mood", field.Key)
		assert.Equal(t, constants.DefaultProfileGroup, field.Group)
		assert.Equal(t, constants.ProfileSourceLearned, field.Source)
		assert.Nil(t, field.PreviousValue)
		assert.Equal(t, applyNow, field.UpdatedAt)

		require.Len(t, got.Logs, 2)
		assert.Equal(t, constants.LogStateUpdate, got.Logs[0].RelatedAction)
		assert.Equal(t, constants.AuthorAssistant, got.Logs[0].Author)
		assert.Equal(t, "old-log", got.Logs[1].ID, "logs are newest first")
		assert.Equal(t, []string{"r-read", "mood"}, got.HighlightedIDs)

		assert.Len(t, st.Profile, 1, "input state must not be mutated")
	})

	t.Run("existing field keeps previous value", func(t *testing.T) {
		group := "Basics"
		got, _ := a.Apply(st, []Action{
			UpsertProfileField{Key: "name", Value: "Ada", Group: &group},
			UpsertProfileField{Key: "name", Value: "Grace"},
		}, applyNow)

		require.Len(t, got.Profile, 1)
		field := got.Profile[0]
		assert.Equal(t, "Grace", field.Value)
		require.NotNil(t, field.PreviousValue)
		assert.Equal(t, "Ada", *field.PreviousValue)
		assert.Equal(t, "Basics", field.Group)
		assert.Len(t, got.Logs, 3)
		assert.Equal(t, []string{"r-read", "name"}, got.HighlightedIDs, "highlights are not duplicated")
	})
}

func TestApply_UpsertRoutineItem_Patch(t *testing.T) {
	st := baseState()
	got, res := newTestApplier().Apply(st, []Action{
		UpsertRoutineItem{ID: str("r-read"), Patch: models.RoutinePatch{Time: models.Some("06:00")}},
	}, applyNow)

	require.Equal(t, 1, res.Applied)
	require.Len(t, got.Routine, 2)
	assert.Equal(t, "r-read", got.Routine[0].ID, "routine is re-sorted by time")
	assert.Equal(t, "Read", got.Routine[0].Title, "unset fields are retained")
	assert.Equal(t, "06:00", *got.Routine[0].Time)
	require.NotNil(t, got.Logs[0].RoutineItemID)
	assert.Equal(t, "r-read", *got.Logs[0].RoutineItemID)
	assert.Equal(t, []string{"r-read"}, got.HighlightedIDs)
}

func TestApply_UpsertRoutineItem_Create(t *testing.T) {
	st := baseState()

	tests := []struct {
		name string
		id   *string
	}{
		{name: "absent id", id: nil},
		{name: "unmatched id", id: str("ghost")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, res := newTestApplier().Apply(st, []Action{
				UpsertRoutineItem{ID: tt.id, Patch: models.RoutinePatch{Title: models.Some("Meditate"), Time: models.Some("12:00")}},
			}, applyNow)

			require.Equal(t, 1, res.Applied)
			require.Len(t, got.Routine, 3)
			item := got.Routine[1]
			assert.Equal(t, "id-1", item.ID)
			assert.Equal(t, "Meditate", item.Title)
			assert.False(t, item.AutoComplete)
			assert.Equal(t, 1, item.Interval())
			assert.Nil(t, item.PreviousDescription)
			assert.Contains(t, got.HighlightedIDs, "id-1")
		})
	}
}

func TestApply_MixedBatch(t *testing.T) {
	st := baseState()
	got, res := newTestApplier().Apply(st, []Action{
		Legacy{Type: KindCreateTask},
		UpsertProfileField{Key: "mood", Value: "focused"},
		Unknown{Type: "teleport"},
		UpsertRoutineItem{Patch: models.RoutinePatch{Title: models.Some("Stretch")}},
	}, applyNow)

	assert.Equal(t, 2, res.Applied)
	assert.Equal(t, 2, res.Ignored)
	assert.Len(t, got.Logs, 3)
	assert.Len(t, res.Logs, 2)
	assert.Equal(t, "Stretch", got.Routine[len(got.Routine)-1].Title, "untimed items sort last")
}

func TestApply_UpsertProfileField_RepeatKeepsShadow(t *testing.T) {
	got, res := newTestApplier().Apply(baseState(), []Action{
		UpsertProfileField{Key: "name", Value: "V1"},
		UpsertProfileField{Key: "name", Value: "V2"},
		UpsertProfileField{Key: "name", Value: "V2"},
	}, applyNow)

	assert.Equal(t, 3, res.Applied, "repeats are still logged and highlighted")
	field := got.Profile[0]
	assert.Equal(t, "V2", field.Value)
	require.NotNil(t, field.PreviousValue)
	assert.Equal(t, "V1", *field.PreviousValue)

	reverted, ok := field.Reverted(applyNow)
	require.True(t, ok)
	assert.Equal(t, "V1", reverted.Value)
}

func TestApply_UpsertRoutineItem_PropagatesToToday(t *testing.T) {
	st := baseState()
	today := time.Date(2025, 2, 3, 7, 0, 0, 0, time.Local)
	yesterday := today.AddDate(0, 0, -1)
	linked := func(id string, status constants.TaskStatus, at time.Time) models.Task {
		return models.Task{
			ID: id, Title: "Run", ScheduledTime: &at, RoutineItemID: str("r-run"),
			Status: status, Source: constants.TaskSourceRoutine,
		}
	}
	st.Tasks = []models.Task{
		linked("open", constants.TaskStatusTodo, today),
		linked("finished", constants.TaskStatusDone, today),
		linked("old", constants.TaskStatusTodo, yesterday),
	}

	got, _ := newTestApplier().Apply(st, []Action{
		UpsertRoutineItem{ID: str("r-run"), Patch: models.RoutinePatch{Title: models.Some("Jog"), Time: models.Some("10:15")}},
	}, applyNow)

	assert.Equal(t, "Jog", got.Tasks[0].Title)
	assert.Equal(t, time.Date(2025, 2, 3, 10, 15, 0, 0, time.Local), *got.Tasks[0].ScheduledTime)
	assert.Equal(t, "Run", got.Tasks[1].Title, "done tasks are never edited")
	assert.Equal(t, "Run", got.Tasks[2].Title, "other days are never edited")
	assert.Equal(t, "Run", st.Tasks[0].Title, "input state must not be mutated")
}
