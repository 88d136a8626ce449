package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/sisy/internal/constants"
	"github.com/julianstephens/sisy/internal/models"
)

// SeedState is the state of a first run: empty stores plus the seeded profile fields.
func SeedState(now time.Time) models.State {
	st := models.State{}
	for _, key := range constants.SeedProfileKeys {
		st.Profile = append(st.Profile, models.ProfileField{
			Key:       key,
			Group:     constants.SeedProfileGroup,
			Source:    constants.ProfileSourceUser,
			UpdatedAt: now,
		})
	}
	st.Normalize()
	return st
}

// LoadState reads the state blob. A missing blob yields SeedState and reports fresh=true.
func LoadState(p Provider, now time.Time) (st models.State, fresh bool, err error) {
	data, err := p.Get(constants.StateKey)
	if errors.Is(err, ErrNotFound) {
		return SeedState(now), true, nil
	}
	if err != nil {
		return models.State{}, false, fmt.Errorf("failed to read state: %w", err)
	}

	if err := json.Unmarshal(data, &st); err != nil {
		return models.State{}, false, fmt.Errorf("failed to parse state: %w", err)
	}
	st.Normalize()
	return st, false, nil
}

// SaveState writes the whole state blob.
func SaveState(p Provider, st models.State) error {
	st.Normalize()
	data, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	if err := p.Put(constants.StateKey, data); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
