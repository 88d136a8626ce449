// Package identity manages the opaque per-install identifier sent with agent requests.
package identity

import (
	"errors"
	"fmt"
	"strings"

	"github.com/julianstephens/sisy/internal/constants"
	"github.com/julianstephens/sisy/internal/logger"
	"github.com/julianstephens/sisy/internal/storage"
	"github.com/julianstephens/sisy/internal/utils"
)

// Ensure returns the stored install id, generating and persisting one on first use.
func Ensure(p storage.Provider) (string, error) {
	data, err := p.Get(constants.InstallIDKey)
	if err == nil {
		if id := strings.TrimSpace(string(data)); id != "" {
			return id, nil
		}
	} else if !errors.Is(err, storage.ErrNotFound) {
		return "", fmt.Errorf("failed to read install id: %w", err)
	}

	id := utils.NewID()
	if err := p.Put(constants.InstallIDKey, []byte(id)); err != nil {
		return "", fmt.Errorf("failed to persist install id: %w", err)
	}
	logger.Info("Generated install id", "id", id)
	return id, nil
}
