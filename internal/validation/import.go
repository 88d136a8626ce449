package validation

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/julianstephens/sisy/internal/constants"
	apperrors "github.com/julianstephens/sisy/internal/errors"
	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/utils"
)

type routineImport struct {
	ID                  *string `json:"id"`
	Title               *string `json:"title"`
	Time                *string `json:"time"`
	AutoComplete        *bool   `json:"auto_complete"`
	Description         *string `json:"description"`
	PreviousDescription *string `json:"previous_description"`
	RepeatInterval      *int    `json:"repeat_interval"`
}

type profileImport struct {
	Key           *string                  `json:"key"`
	Value         *string                  `json:"value"`
	PreviousValue *string                  `json:"previous_value"`
	Group         *string                  `json:"group"`
	Source        *constants.ProfileSource `json:"source"`
}

// ParseRoutineImport validates a JSON array of routine items. Every element needs a
// string title; missing ids are generated with newID. Any bad element fails the
// whole import.
func ParseRoutineImport(data []byte, newID func() string) ([]models.RoutineItem, error) {
	var raw []routineImport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.Validation("routine import must be a JSON array of objects: %v", err)
	}

	items := make([]models.RoutineItem, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, r := range raw {
		if r.Title == nil || strings.TrimSpace(*r.Title) == "" {
			return nil, apperrors.Validation("routine item %d: title is required", i)
		}
		if r.Time != nil && !utils.ValidateTimeFormat(*r.Time) {
			return nil, apperrors.Validation("routine item %d (%s): time %q is not HH:MM", i, *r.Title, *r.Time)
		}
		if r.RepeatInterval != nil && *r.RepeatInterval < 1 {
			return nil, apperrors.Validation("routine item %d (%s): repeat_interval must be at least 1", i, *r.Title)
		}

		item := models.RoutineItem{
			Title:               *r.Title,
			Time:                r.Time,
			Description:         r.Description,
			PreviousDescription: r.PreviousDescription,
			RepeatInterval:      constants.DefaultRepeatInterval,
		}
		if r.ID != nil && *r.ID != "" {
			item.ID = *r.ID
		} else {
			item.ID = newID()
		}
		if seen[item.ID] {
			return nil, apperrors.Validation("routine item %d: duplicate id %s", i, item.ID)
		}
		seen[item.ID] = true
		if r.AutoComplete != nil {
			item.AutoComplete = *r.AutoComplete
		}
		if r.RepeatInterval != nil {
			item.RepeatInterval = *r.RepeatInterval
		}
		items = append(items, item)
	}

	models.SortRoutine(items)
	return items, nil
}

// ParseProfileImport validates a JSON array of profile fields. Every element needs
// string key and value; keys must be unique.
func ParseProfileImport(data []byte, now time.Time) ([]models.ProfileField, error) {
	var raw []profileImport
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, apperrors.Validation("profile import must be a JSON array of objects: %v", err)
	}

	fields := make([]models.ProfileField, 0, len(raw))
	seen := make(map[string]bool, len(raw))
	for i, r := range raw {
		if r.Key == nil || *r.Key == "" {
			return nil, apperrors.Validation("profile field %d: key is required", i)
		}
		if r.Value == nil {
			return nil, apperrors.Validation("profile field %d (%s): value is required", i, *r.Key)
		}
		if seen[*r.Key] {
			return nil, apperrors.Validation("profile field %d: duplicate key %q", i, *r.Key)
		}
		seen[*r.Key] = true

		field := models.ProfileField{
			Key:           *r.Key,
			Value:         *r.Value,
			PreviousValue: r.PreviousValue,
			Group:         constants.DefaultProfileGroup,
			Source:        constants.ProfileSourceUser,
			UpdatedAt:     now,
		}
		if r.Group != nil && *r.Group != "" {
			field.Group = *r.Group
		}
		if r.Source != nil {
			switch *r.Source {
			case constants.ProfileSourceUser, constants.ProfileSourceLearned:
				field.Source = *r.Source
			default:
				return nil, apperrors.Validation("profile field %d (%s): unknown source %q", i, *r.Key, *r.Source)
			}
		}
		fields = append(fields, field)
	}
	return fields, nil
}

// RoutinePatch checks the set fields of a user-supplied routine patch.
func RoutinePatch(p models.RoutinePatch) error {
	if p.Title.Set && strings.TrimSpace(p.Title.Or("")) == "" {
		return apperrors.Validation("title must not be empty")
	}
	if p.Time.Value != nil && !utils.ValidateTimeFormat(*p.Time.Value) {
		return apperrors.Validation("time %q is not HH:MM", *p.Time.Value)
	}
	if p.RepeatInterval.Set && p.RepeatInterval.Or(0) < 1 {
		return apperrors.Validation("repeat_interval must be at least 1")
	}
	return nil
}
