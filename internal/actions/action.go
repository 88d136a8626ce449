// Package actions models the structured actions issued by the chat agent and
// folds them into client state.
package actions

import (
	"github.com/julianstephens/sisy/internal/constants"
	"github.com/julianstephens/sisy/internal/models"
)

// Kind is the wire discriminator of an action.
type Kind string

const (
	KindUpsertProfileField Kind = "upsert_profile_field"
	KindUpsertRoutineItem  Kind = "upsert_routine_item"

	// Legacy kinds are accepted on the wire and ignored.
	KindCreateTask        Kind = "create_task"
	KindSuggestReschedule Kind = "suggest_reschedule"
	KindCreateRoutineItem Kind = "create_routine_item"
	KindUpdateRoutineItem Kind = "update_routine_item"
	KindAddLog            Kind = "add_log"
)

var legacyKinds = map[Kind]bool{
	KindCreateTask:        true,
	KindSuggestReschedule: true,
	KindCreateRoutineItem: true,
	KindUpdateRoutineItem: true,
	KindAddLog:            true,
}

// Action is one of UpsertProfileField, UpsertRoutineItem, Legacy, Invalid or Unknown.
type Action interface {
	Kind() Kind
	isAction()
}

// UpsertProfileField creates or replaces a profile field by key.
type UpsertProfileField struct {
	Key    string
	Value  string
	Group  *string
	Source *constants.ProfileSource
}

// UpsertRoutineItem patches the routine item with ID, or creates one when ID is
// absent or unmatched.
type UpsertRoutineItem struct {
	ID    *string
	Patch models.RoutinePatch
}

// Legacy is a deprecated kind kept in the vocabulary for compatibility. It never mutates state.
type Legacy struct {
	Type Kind
}

// Invalid is a recognized kind whose payload could not be used.
type Invalid struct {
	Type   Kind
	Reason string
}

// Unknown is a kind outside the vocabulary.
type Unknown struct {
	Type Kind
}

func (UpsertProfileField) Kind() Kind { return KindUpsertProfileField }
func (UpsertRoutineItem) Kind() Kind  { return KindUpsertRoutineItem }
func (a Legacy) Kind() Kind           { return a.Type }
func (a Invalid) Kind() Kind          { return a.Type }
func (a Unknown) Kind() Kind          { return a.Type }

func (UpsertProfileField) isAction() {}
func (UpsertRoutineItem) isAction()  {}
func (Legacy) isAction()             {}
func (Invalid) isAction()            {}
func (Unknown) isAction()            {}
