package service

import (
	"slices"
	"strings"

	"github.com/julianstephens/sisy/internal/constants"
	apperrors "github.com/julianstephens/sisy/internal/errors"
	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/validation"
)

// UpsertProfileField sets a field as the user. The old value becomes the shadow;
// group is kept when nil and defaults to "Other" for new fields.
func (s *Service) UpsertProfileField(key, value string, group *string) (bool, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return false, apperrors.Validation("profile key must not be empty")
	}

	return s.mutate(func(st *models.State) (bool, error) {
		now := s.now()
		if i, ok := st.FindProfileField(key); ok {
			field := st.Profile[i]
			if field.Value == value && (group == nil || *group == field.Group) {
				return false, nil
			}
			previous := field.Value
			field.PreviousValue = &previous
			field.Value = value
			if group != nil && *group != "" {
				field.Group = *group
			}
			field.Source = constants.ProfileSourceUser
			field.UpdatedAt = now
			st.Profile[i] = field
			return true, nil
		}

		field := models.ProfileField{
			Key:       key,
			Value:     value,
			Group:     constants.DefaultProfileGroup,
			Source:    constants.ProfileSourceUser,
			UpdatedAt: now,
		}
		if group != nil && *group != "" {
			field.Group = *group
		}
		st.Profile = append([]models.ProfileField{field}, st.Profile...)
		return true, nil
	})
}

// RevertProfileField swaps a field's value with its shadow. Reverting twice
// restores the original. Without a shadow it is a no-op.
func (s *Service) RevertProfileField(key string) (bool, error) {
	return s.mutate(func(st *models.State) (bool, error) {
		i, ok := st.FindProfileField(key)
		if !ok {
			return false, apperrors.NotFound("profile field", key)
		}
		field, ok := st.Profile[i].Reverted(s.now())
		if !ok {
			return false, nil
		}
		st.Profile[i] = field
		return true, nil
	})
}

func (s *Service) DeleteProfileField(key string) error {
	_, err := s.mutate(func(st *models.State) (bool, error) {
		i, ok := st.FindProfileField(key)
		if !ok {
			return false, apperrors.NotFound("profile field", key)
		}
		st.Profile = slices.Delete(st.Profile, i, i+1)
		st.HighlightedIDs = slices.DeleteFunc(st.HighlightedIDs, func(h string) bool { return h == key })
		return true, nil
	})
	return err
}

// ImportProfile replaces the profile with a validated JSON array.
func (s *Service) ImportProfile(data []byte) (int, error) {
	fields, err := validation.ParseProfileImport(data, s.now())
	if err != nil {
		return 0, err
	}
	_, err = s.mutate(func(st *models.State) (bool, error) {
		st.Profile = fields
		return true, nil
	})
	if err != nil {
		return 0, err
	}
	return len(fields), nil
}

// ClearHighlight acknowledges one highlight marker.
func (s *Service) ClearHighlight(id string) (bool, error) {
	return s.mutate(func(st *models.State) (bool, error) {
		before := len(st.HighlightedIDs)
		st.HighlightedIDs = slices.DeleteFunc(st.HighlightedIDs, func(h string) bool { return h == id })
		return len(st.HighlightedIDs) != before, nil
	})
}

// ClearHighlights acknowledges every highlight marker.
func (s *Service) ClearHighlights() (bool, error) {
	return s.mutate(func(st *models.State) (bool, error) {
		if len(st.HighlightedIDs) == 0 {
			return false, nil
		}
		st.HighlightedIDs = []string{}
		return true, nil
	})
}
