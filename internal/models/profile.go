package models

import (
	"time"

	"github.com/julianstephens/sisy/internal/constants"
)

// ProfileField is a single user profile entry, unique by key.
type ProfileField struct {
	Key           string                  `json:"key"`
	Value         string                  `json:"value"`
	PreviousValue *string                 `json:"previous_value"`
	Group         string                  `json:"group"`
	Source        constants.ProfileSource `json:"source"`
	UpdatedAt     time.Time               `json:"updated_at"`
}

// Reverted swaps value and previous value. It reports false when there is no shadow.
func (f ProfileField) Reverted(now time.Time) (ProfileField, bool) {
	if f.PreviousValue == nil {
		return f, false
	}
	out := f
	current := f.Value
	out.Value = *f.PreviousValue
	out.PreviousValue = &current
	out.UpdatedAt = now
	return out, true
}
