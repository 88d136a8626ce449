package service

import (
	"slices"

	"github.com/julianstephens/sisy/internal/actions"
	apperrors "github.com/julianstephens/sisy/internal/errors"
	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/validation"
)

// AddRoutineItem creates a routine item from patch. A title is required.
func (s *Service) AddRoutineItem(patch models.RoutinePatch) (models.RoutineItem, error) {
	if !patch.Title.Set {
		return models.RoutineItem{}, apperrors.Validation("routine item title is required")
	}
	if err := validation.RoutinePatch(patch); err != nil {
		return models.RoutineItem{}, err
	}

	item := actions.NewRoutineItem(s.newID(), patch)
	_, err := s.mutate(func(st *models.State) (bool, error) {
		st.Routine = append(st.Routine, item)
		models.SortRoutine(st.Routine)
		return true, nil
	})
	if err != nil {
		return models.RoutineItem{}, err
	}
	return item, nil
}

// UpdateRoutineItem patches a routine template and carries title, time,
// auto-complete and description changes onto its open tasks for today. Done tasks
// and tasks from other days are never touched. Hidden auto-complete tasks are
// still open, so they receive the edit too.
func (s *Service) UpdateRoutineItem(id string, patch models.RoutinePatch) (bool, error) {
	if err := validation.RoutinePatch(patch); err != nil {
		return false, err
	}

	return s.mutate(func(st *models.State) (bool, error) {
		i, ok := st.FindRoutineItem(id)
		if !ok {
			return false, apperrors.NotFound("routine item", id)
		}
		item, changed := st.Routine[i].Patched(patch)
		if !changed {
			return false, nil
		}
		st.Routine[i] = item
		models.SortRoutine(st.Routine)
		actions.Propagate(st, item, patch, s.now())
		return true, nil
	})
}

// RevertRoutineDescription swaps an item's description with its shadow copy and
// updates today's open tasks. Without a shadow it is a no-op.
func (s *Service) RevertRoutineDescription(id string) (bool, error) {
	return s.mutate(func(st *models.State) (bool, error) {
		i, ok := st.FindRoutineItem(id)
		if !ok {
			return false, apperrors.NotFound("routine item", id)
		}
		item, ok := st.Routine[i].DescriptionReverted()
		if !ok {
			return false, nil
		}
		st.Routine[i] = item
		actions.Propagate(st, item, models.RoutinePatch{Description: models.Nullable[string]{Set: true, Value: item.Description}}, s.now())
		return true, nil
	})
}

// DeleteRoutineItem removes a template. Its tasks stay, keeping a dangling back-reference.
func (s *Service) DeleteRoutineItem(id string) error {
	_, err := s.mutate(func(st *models.State) (bool, error) {
		i, ok := st.FindRoutineItem(id)
		if !ok {
			return false, apperrors.NotFound("routine item", id)
		}
		st.Routine = slices.Delete(st.Routine, i, i+1)
		st.HighlightedIDs = slices.DeleteFunc(st.HighlightedIDs, func(h string) bool { return h == id })
		return true, nil
	})
	return err
}

// ImportRoutine replaces the routine list with a validated JSON array and returns
// the number of items imported. Invalid input leaves state untouched.
func (s *Service) ImportRoutine(data []byte) (int, error) {
	items, err := validation.ParseRoutineImport(data, s.newID)
	if err != nil {
		return 0, err
	}
	_, err = s.mutate(func(st *models.State) (bool, error) {
		st.Routine = items
		return true, nil
	})
	if err != nil {
		return 0, err
	}
	return len(items), nil
}
