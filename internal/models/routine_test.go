package models

import (
	"testing"
	"time"
)

func strPtr(s string) *string { return &s }

func TestRoutineItemPatched(t *testing.T) {
	base := RoutineItem{ID: "r1", Title: "Run", Time: strPtr("07:00"), Description: strPtr("5k"), RepeatInterval: 1}

	t.Run("only set fields change", func(t *testing.T) {
		got, changed := base.Patched(RoutinePatch{Title: Some("Long run")})
		if !changed {
			t.Fatal("Patched() changed = false, want true")
		}
		if got.Title != "Long run" {
			t.Errorf("Title = %q, want %q", got.Title, "Long run")
		}
		if *got.Time != "07:00" || *got.Description != "5k" {
			t.Errorf("unset fields were modified: %+v", got)
		}
	})

	t.Run("description change keeps shadow", func(t *testing.T) {
		got, _ := base.Patched(RoutinePatch{Description: Some("10k")})
		if got.PreviousDescription == nil || *got.PreviousDescription != "5k" {
			t.Errorf("PreviousDescription = %v, want 5k", got.PreviousDescription)
		}
		reverted, ok := got.DescriptionReverted()
		if !ok || *reverted.Description != "5k" || *reverted.PreviousDescription != "10k" {
			t.Errorf("DescriptionReverted() = %+v, %v", reverted, ok)
		}
	})

	t.Run("explicit null clears time", func(t *testing.T) {
		got, changed := base.Patched(RoutinePatch{Time: Null[string]()})
		if !changed || got.Time != nil {
			t.Errorf("Patched(null time) = %v, changed %v", got.Time, changed)
		}
	})

	t.Run("repeat interval clamped", func(t *testing.T) {
		got, _ := base.Patched(RoutinePatch{RepeatInterval: Some(0)})
		if got.Interval() != 1 {
			t.Errorf("Interval() = %d, want 1", got.Interval())
		}
	})

	t.Run("identical values are not a change", func(t *testing.T) {
		if _, changed := base.Patched(RoutinePatch{Title: Some("Run"), Time: Some("07:00")}); changed {
			t.Error("Patched() with identical values reported a change")
		}
	})

	t.Run("no shadow means no revert", func(t *testing.T) {
		if _, ok := base.DescriptionReverted(); ok {
			t.Error("DescriptionReverted() succeeded without a shadow value")
		}
	})
}

func TestSortRoutine(t *testing.T) {
	items := []RoutineItem{
		{ID: "untimed"},
		{ID: "evening", Time: strPtr("19:00")},
		{ID: "early", Time: strPtr("6:30")},
		{ID: "bad", Time: strPtr("later")},
		{ID: "noon", Time: strPtr("12:00")},
	}

	SortRoutine(items)

	want := []string{"early", "noon", "evening", "untimed", "bad"}
	for i, id := range want {
		if items[i].ID != id {
			t.Errorf("items[%d] = %s, want %s", i, items[i].ID, id)
		}
	}
}

func TestProfileFieldReverted(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	field := ProfileField{Key: "mood", Value: "calm", PreviousValue: strPtr("tired")}

	got, ok := field.Reverted(now)
	if !ok {
		t.Fatal("Reverted() ok = false, want true")
	}
	if got.Value != "tired" || *got.PreviousValue != "calm" {
		t.Errorf("Reverted() = %q/%q, want tired/calm", got.Value, *got.PreviousValue)
	}
	if !got.UpdatedAt.Equal(now) {
		t.Errorf("UpdatedAt = %v, want %v", got.UpdatedAt, now)
	}

	if _, ok := (ProfileField{Key: "name"}).Reverted(now); ok {
		t.Error("Reverted() without shadow should be a no-op")
	}
}
