package actions

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/julianstephens/sisy/internal/constants"
	"github.com/julianstephens/sisy/internal/logger"
	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/utils"
)

// Decode parses the agent's JSON action array. A payload that is not an array of
// objects is an error; individual actions that cannot be used decode to Invalid
// and unrecognized kinds decode to Unknown.
func Decode(data []byte) ([]Action, error) {
	var raw []map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse actions: %w", err)
	}
	return DecodeRaw(raw), nil
}

// DecodeRaw converts already-split action objects.
func DecodeRaw(raw []map[string]json.RawMessage) []Action {
	out := make([]Action, 0, len(raw))
	for _, obj := range raw {
		out = append(out, decodeOne(obj))
	}
	return out
}

func decodeOne(obj map[string]json.RawMessage) Action {
	var kind Kind
	if err := json.Unmarshal(obj["type"], &kind); err != nil {
		return Unknown{}
	}

	switch {
	case kind == KindUpsertProfileField:
		return decodeProfile(obj)
	case kind == KindUpsertRoutineItem:
		return decodeRoutine(obj)
	case legacyKinds[kind]:
		return Legacy{Type: kind}
	default:
		return Unknown{Type: kind}
	}
}

func decodeProfile(obj map[string]json.RawMessage) Action {
	var a UpsertProfileField
	if err := requiredString(obj, "key", &a.Key); err != nil {
		return Invalid{Type: KindUpsertProfileField, Reason: err.Error()}
	}
	if a.Key == "" {
		return Invalid{Type: KindUpsertProfileField, Reason: "key is empty"}
	}
	if err := requiredString(obj, "value", &a.Value); err != nil {
		return Invalid{Type: KindUpsertProfileField, Reason: err.Error()}
	}

	group, err := field[string](obj, "group")
	if err != nil {
		return Invalid{Type: KindUpsertProfileField, Reason: err.Error()}
	}
	a.Group = group.Value

	source, err := field[string](obj, "source")
	if err != nil {
		return Invalid{Type: KindUpsertProfileField, Reason: err.Error()}
	}
	if source.Value != nil {
		s := constants.ProfileSource(*source.Value)
		if s != constants.ProfileSourceUser && s != constants.ProfileSourceLearned {
			return Invalid{Type: KindUpsertProfileField, Reason: fmt.Sprintf("unknown source %q", s)}
		}
		a.Source = &s
	}
	return a
}

func decodeRoutine(obj map[string]json.RawMessage) Action {
	var a UpsertRoutineItem

	id, err := field[string](obj, "id")
	if err != nil {
		return Invalid{Type: KindUpsertRoutineItem, Reason: err.Error()}
	}
	if id.Value != nil && *id.Value != "" {
		a.ID = id.Value
	}

	if a.Patch.Title, err = field[string](obj, "title"); err != nil {
		return Invalid{Type: KindUpsertRoutineItem, Reason: err.Error()}
	}
	// Titles are not nullable; a null title is treated as absent.
	if a.Patch.Title.Value == nil {
		a.Patch.Title = models.Nullable[string]{}
	}
	if a.Patch.Time, err = field[string](obj, "time"); err != nil {
		return Invalid{Type: KindUpsertRoutineItem, Reason: err.Error()}
	}
	if !a.Patch.Time.Set {
		a.Patch.Time = clockFromInstant(obj)
	}
	if a.Patch.Time.Value != nil && !utils.ValidateTimeFormat(*a.Patch.Time.Value) {
		logger.Warn("Dropping malformed routine time", "time", *a.Patch.Time.Value)
		a.Patch.Time = models.Nullable[string]{}
	}
	if a.Patch.Description, err = field[string](obj, "description"); err != nil {
		return Invalid{Type: KindUpsertRoutineItem, Reason: err.Error()}
	}
	if a.Patch.RepeatInterval, err = field[int](obj, "repeat_interval"); err != nil {
		return Invalid{Type: KindUpsertRoutineItem, Reason: err.Error()}
	}
	if a.Patch.AutoComplete, err = field[bool](obj, "auto_complete"); err != nil {
		return Invalid{Type: KindUpsertRoutineItem, Reason: err.Error()}
	}
	return a
}

// clockFromInstant derives an HH:MM time from the backend's scheduled_time field,
// which some agent responses send instead of time.
func clockFromInstant(obj map[string]json.RawMessage) models.Nullable[string] {
	scheduled, err := field[string](obj, "scheduled_time")
	if err != nil || scheduled.Value == nil {
		return models.Nullable[string]{}
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04:05", "2006-01-02T15:04"} {
		if t, err := time.ParseInLocation(layout, *scheduled.Value, time.Local); err == nil {
			return models.Some(utils.FormatClock(t.In(time.Local)))
		}
	}
	return models.Nullable[string]{}
}

// field decodes an optional key, distinguishing absent from null.
func field[T any](obj map[string]json.RawMessage, key string) (models.Nullable[T], error) {
	raw, ok := obj[key]
	if !ok {
		return models.Nullable[T]{}, nil
	}
	if string(raw) == "null" {
		return models.Null[T](), nil
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return models.Nullable[T]{}, fmt.Errorf("invalid %s: %w", key, err)
	}
	return models.Some(v), nil
}

func requiredString(obj map[string]json.RawMessage, key string, dst *string) error {
	v, err := field[string](obj, key)
	if err != nil {
		return err
	}
	if v.Value == nil {
		return fmt.Errorf("missing %s", key)
	}
	*dst = *v.Value
	return nil
}
