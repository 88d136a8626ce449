package models

import (
	"time"

	"github.com/julianstephens/sisy/internal/constants"
)

type ChatMessage struct {
	ID        string             `json:"id"`
	Role      constants.ChatRole `json:"role"`
	Text      string             `json:"text"`
	Tab       string             `json:"tab,omitempty"`
	Timestamp time.Time          `json:"timestamp"`
}
