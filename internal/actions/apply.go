package actions

import (
	"fmt"
	"slices"
	"time"

	"github.com/julianstephens/sisy/internal/constants"
	"github.com/julianstephens/sisy/internal/logger"
	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/utils"
)

// Result describes what a batch did.
type Result struct {
	Applied     int
	Ignored     int
	Logs        []models.LogEntry
	Highlighted []string
}

// Applier folds action batches into state. NewID is replaceable for tests.
type Applier struct {
	NewID func() string
}

func NewApplier() *Applier {
	return &Applier{NewID: utils.NewID}
}

// Apply folds batch into a copy of st. Every applied action prepends a state_update
// log and highlights the id or key it touched; ignored actions leave no trace, so a
// batch with no mutations returns st unchanged.
func (a *Applier) Apply(st models.State, batch []Action, now time.Time) (models.State, Result) {
	var res Result
	next := st.Clone()

	for _, action := range batch {
		var entry models.LogEntry
		var target string

		switch act := action.(type) {
		case UpsertProfileField:
			entry, target = a.upsertProfile(&next, act, now)
		case UpsertRoutineItem:
			entry, target = a.upsertRoutine(&next, act, now)
		case Legacy:
			logger.Debug("Ignoring legacy agent action", "type", act.Type)
			res.Ignored++
			continue
		case Invalid:
			logger.Warn("Ignoring malformed agent action", "type", act.Type, "reason", act.Reason)
			res.Ignored++
			continue
		case Unknown:
			logger.Debug("Ignoring unknown agent action", "type", act.Type)
			res.Ignored++
			continue
		default:
			logger.Warn("Ignoring unsupported action variant", "type", fmt.Sprintf("%T", action))
			res.Ignored++
			continue
		}

		next.Logs = append([]models.LogEntry{entry}, next.Logs...)
		res.Logs = append(res.Logs, entry)
		if !slices.Contains(next.HighlightedIDs, target) {
			next.HighlightedIDs = append(next.HighlightedIDs, target)
		}
		res.Highlighted = append(res.Highlighted, target)
		res.Applied++
	}

	if res.Applied == 0 {
		return st, res
	}
	return next, res
}

func (a *Applier) upsertProfile(st *models.State, act UpsertProfileField, now time.Time) (models.LogEntry, string) {
	source := constants.ProfileSourceLearned
	if act.Source != nil {
		source = *act.Source
	}

	if i, ok := st.FindProfileField(act.Key); ok {
		field := st.Profile[i]
		if field.Value != act.Value {
			previous := field.Value
			field.PreviousValue = &previous
			field.Value = act.Value
		}
		if act.Group != nil {
			field.Group = *act.Group
		}
		field.Source = source
		field.UpdatedAt = now
		st.Profile[i] = field
	} else {
		group := constants.DefaultProfileGroup
		if act.Group != nil && *act.Group != "" {
			group = *act.Group
		}
		field := models.ProfileField{
			Key:       act.Key,
			Value:     act.Value,
			Group:     group,
			Source:    source,
			UpdatedAt: now,
		}
		st.Profile = append([]models.ProfileField{field}, st.Profile...)
	}

	return a.stateLog(now, fmt.Sprintf("Updated profile %q to %q", act.Key, act.Value), nil), act.Key
}

func (a *Applier) upsertRoutine(st *models.State, act UpsertRoutineItem, now time.Time) (models.LogEntry, string) {
	if act.ID != nil {
		if i, ok := st.FindRoutineItem(*act.ID); ok {
			item, changed := st.Routine[i].Patched(act.Patch)
			st.Routine[i] = item
			models.SortRoutine(st.Routine)
			if changed {
				Propagate(st, item, act.Patch, now)
			}
			return a.stateLog(now, fmt.Sprintf("Updated routine item %q", item.Title), &item.ID), item.ID
		}
	}

	item := NewRoutineItem(a.NewID(), act.Patch)
	st.Routine = append(st.Routine, item)
	models.SortRoutine(st.Routine)
	return a.stateLog(now, fmt.Sprintf("Added routine item %q", item.Title), &item.ID), item.ID
}

// NewRoutineItem builds a routine item from a patch, applying defaults for unset fields.
func NewRoutineItem(id string, patch models.RoutinePatch) models.RoutineItem {
	item := models.RoutineItem{
		ID:             id,
		Title:          patch.Title.Or(constants.DefaultRoutineTitle),
		RepeatInterval: constants.DefaultRepeatInterval,
	}
	patch.Title = models.Nullable[string]{}
	item, _ = item.Patched(patch)
	// A new item has no prior description to revert to.
	item.PreviousDescription = nil
	return item
}

func (a *Applier) stateLog(now time.Time, content string, routineItemID *string) models.LogEntry {
	entry := models.LogEntry{
		ID:            a.NewID(),
		Timestamp:     now,
		RelatedAction: constants.LogStateUpdate,
		Content:       content,
		Author:        constants.AuthorAssistant,
	}
	if routineItemID != nil {
		entry.RoutineItemID = utils.Ptr(*routineItemID)
	}
	return entry
}
