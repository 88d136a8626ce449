package models

import (
	"time"

	"github.com/julianstephens/sisy/internal/constants"
)

// LogEntry is an immutable audit record.
type LogEntry struct {
	ID            string              `json:"id"`
	Timestamp     time.Time           `json:"timestamp"`
	RelatedAction constants.LogAction `json:"related_action"`
	Content       string              `json:"content"`
	Author        constants.Author    `json:"author"`
	RoutineItemID *string             `json:"routine_item_id,omitempty"`
}
