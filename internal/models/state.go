package models

import "slices"

// State is the full persisted client state, stored as a single blob.
type State struct {
	ConversationID *string        `json:"conversation_id"`
	Chat           []ChatMessage  `json:"chat"`
	Tasks          []Task         `json:"tasks"`
	Routine        []RoutineItem  `json:"routine"`
	Profile        []ProfileField `json:"profile"`
	Logs           []LogEntry     `json:"logs"` // newest first
	HighlightedIDs []string       `json:"highlightedIds"`
}

// Clone returns a copy whose slices can be mutated without touching s.
// Pointer fields inside elements are shared; mutators replace them rather than write through.
func (s State) Clone() State {
	c := s
	c.Chat = slices.Clone(s.Chat)
	c.Tasks = slices.Clone(s.Tasks)
	c.Routine = slices.Clone(s.Routine)
	c.Profile = slices.Clone(s.Profile)
	c.Logs = slices.Clone(s.Logs)
	c.HighlightedIDs = slices.Clone(s.HighlightedIDs)
	return c
}

// Normalize replaces nil slices with empty ones so the blob always serializes arrays.
func (s *State) Normalize() {
	if s.Chat == nil {
		s.Chat = []ChatMessage{}
	}
	if s.Tasks == nil {
		s.Tasks = []Task{}
	}
	if s.Routine == nil {
		s.Routine = []RoutineItem{}
	}
	if s.Profile == nil {
		s.Profile = []ProfileField{}
	}
	if s.Logs == nil {
		s.Logs = []LogEntry{}
	}
	if s.HighlightedIDs == nil {
		s.HighlightedIDs = []string{}
	}
}

func (s State) FindTask(id string) (int, bool) {
	for i, t := range s.Tasks {
		if t.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s State) FindRoutineItem(id string) (int, bool) {
	for i, r := range s.Routine {
		if r.ID == id {
			return i, true
		}
	}
	return -1, false
}

func (s State) FindProfileField(key string) (int, bool) {
	for i, f := range s.Profile {
		if f.Key == key {
			return i, true
		}
	}
	return -1, false
}
