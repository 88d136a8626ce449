package models

import (
	"sort"
	"time"

	"github.com/julianstephens/sisy/internal/constants"
)

// RoutineItem is a recurring template from which daily tasks are generated.
type RoutineItem struct {
	ID                  string  `json:"id"`
	Title               string  `json:"title"`
	Time                *string `json:"time"` // HH:MM local wall-clock, nil means anytime
	AutoComplete        bool    `json:"auto_complete"`
	Description         *string `json:"description"`
	PreviousDescription *string `json:"previous_description"`
	RepeatInterval      int     `json:"repeat_interval,omitempty"` // due every N days
}

// Interval returns the repeat interval, falling back to the default for unset values.
func (r RoutineItem) Interval() int {
	if r.RepeatInterval < 1 {
		return constants.DefaultRepeatInterval
	}
	return r.RepeatInterval
}

// RoutinePatch describes a partial update of a routine item. Only set fields are applied.
type RoutinePatch struct {
	Title          Nullable[string]
	Time           Nullable[string]
	AutoComplete   Nullable[bool]
	Description    Nullable[string]
	RepeatInterval Nullable[int]
}

// IsEmpty reports whether the patch carries no changes.
func (p RoutinePatch) IsEmpty() bool {
	return !p.Title.Set && !p.Time.Set && !p.AutoComplete.Set && !p.Description.Set && !p.RepeatInterval.Set
}

// Patched returns a copy of r with the set fields of p applied and reports whether
// anything changed. A description change keeps the old value as the one-level shadow.
func (r RoutineItem) Patched(p RoutinePatch) (RoutineItem, bool) {
	out := r
	changed := false

	if p.Title.Set {
		title := p.Title.Or("")
		if title != out.Title {
			out.Title = title
			changed = true
		}
	}
	if p.Time.Set && !equalPtr(out.Time, p.Time.Value) {
		out.Time = clonePtr(p.Time.Value)
		changed = true
	}
	if p.AutoComplete.Set {
		auto := p.AutoComplete.Or(false)
		if auto != out.AutoComplete {
			out.AutoComplete = auto
			changed = true
		}
	}
	if p.Description.Set && !equalPtr(out.Description, p.Description.Value) {
		out.PreviousDescription = out.Description
		out.Description = clonePtr(p.Description.Value)
		changed = true
	}
	if p.RepeatInterval.Set {
		interval := max(p.RepeatInterval.Or(constants.DefaultRepeatInterval), 1)
		if interval != out.Interval() {
			out.RepeatInterval = interval
			changed = true
		}
	}
	return out, changed
}

// SortRoutine orders routine items by time of day, untimed items last.
// Items with equal or unparseable times keep their relative order.
func SortRoutine(items []RoutineItem) {
	sort.SliceStable(items, func(i, j int) bool {
		a, aok := clockMinutes(items[i].Time)
		b, bok := clockMinutes(items[j].Time)
		switch {
		case !aok:
			return false
		case !bok:
			return true
		default:
			return a < b
		}
	})
}

func clockMinutes(clock *string) (int, bool) {
	if clock == nil {
		return 0, false
	}
	t, err := time.Parse(constants.TimeFormat, *clock)
	if err != nil {
		return 0, false
	}
	return t.Hour()*60 + t.Minute(), true
}

func equalPtr[T comparable](a, b *T) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

// DescriptionReverted swaps description and its shadow. It reports false when there is no shadow.
func (r RoutineItem) DescriptionReverted() (RoutineItem, bool) {
	if r.PreviousDescription == nil {
		return r, false
	}
	out := r
	out.Description, out.PreviousDescription = r.PreviousDescription, r.Description
	return out, true
}
