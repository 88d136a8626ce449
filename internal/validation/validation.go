package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictDuplicateRoutineTitle ConflictType = "duplicate_routine_title"
	ConflictDuplicateID           ConflictType = "duplicate_id"
	ConflictInvalidTime           ConflictType = "invalid_time"
	ConflictInvalidInterval       ConflictType = "invalid_repeat_interval"
	ConflictOrphanTask            ConflictType = "orphan_task"
	ConflictDuplicateProfileKey   ConflictType = "duplicate_profile_key"
)

// Conflict represents a detected inconsistency in the stored state
type Conflict struct {
	Type        ConflictType
	Description string
	Items       []string // titles or keys involved
	IDs         []string
	// Informational conflicts describe accepted states rather than corruption.
	Informational bool
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// HasErrors reports whether any conflict is more than informational.
func (vr *ValidationResult) HasErrors() bool {
	for _, c := range vr.Conflicts {
		if !c.Informational {
			return true
		}
	}
	return false
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, c := range vr.Conflicts {
		marker := "-"
		if c.Informational {
			marker = "i"
		}
		fmt.Fprintf(&b, "%s %s\n", marker, c.Description)
	}
	return b.String()
}

// Validator checks routine, task and profile stores for inconsistencies
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// ValidateState runs every check. Conflicts are ordered by check, then by first
// appearance in the store.
func (v *Validator) ValidateState(st models.State) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	result.Conflicts = append(result.Conflicts, v.checkRoutine(st.Routine)...)
	result.Conflicts = append(result.Conflicts, v.checkTasks(st.Tasks, st.Routine)...)
	result.Conflicts = append(result.Conflicts, v.checkProfile(st.Profile)...)
	return result
}

func (v *Validator) checkRoutine(routine []models.RoutineItem) []Conflict {
	var conflicts []Conflict

	titles := make(map[string][]string)
	var order []string
	ids := make(map[string]int)
	for _, item := range routine {
		norm := strings.ToLower(strings.TrimSpace(item.Title))
		if norm != "" {
			if _, seen := titles[norm]; !seen {
				order = append(order, norm)
			}
			titles[norm] = append(titles[norm], item.ID)
		}
		ids[item.ID]++

		if item.Time != nil && !utils.ValidateTimeFormat(*item.Time) {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidTime,
				Description: fmt.Sprintf("Routine item %q has invalid time: %s", item.Title, *item.Time),
				Items:       []string{item.Title},
				IDs:         []string{item.ID},
			})
		}
		if item.RepeatInterval < 0 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictInvalidInterval,
				Description: fmt.Sprintf("Routine item %q has invalid repeat interval: %d", item.Title, item.RepeatInterval),
				Items:       []string{item.Title},
				IDs:         []string{item.ID},
			})
		}
	}

	for _, norm := range order {
		if matched := titles[norm]; len(matched) > 1 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictDuplicateRoutineTitle,
				Description: fmt.Sprintf("Duplicate routine title: %q (IDs: %v)", norm, matched),
				Items:       []string{norm},
				IDs:         matched,
			})
		}
	}
	conflicts = append(conflicts, duplicateIDs("routine item", ids)...)
	return conflicts
}

func (v *Validator) checkTasks(tasks []models.Task, routine []models.RoutineItem) []Conflict {
	var conflicts []Conflict

	known := make(map[string]bool, len(routine))
	for _, item := range routine {
		known[item.ID] = true
	}

	ids := make(map[string]int)
	orphans := make(map[string][]string)
	var orphanOrder []string
	for _, task := range tasks {
		ids[task.ID]++
		if task.RoutineItemID == nil || known[*task.RoutineItemID] {
			continue
		}
		ref := *task.RoutineItemID
		if _, seen := orphans[ref]; !seen {
			orphanOrder = append(orphanOrder, ref)
		}
		orphans[ref] = append(orphans[ref], task.ID)
	}

	for _, ref := range orphanOrder {
		conflicts = append(conflicts, Conflict{
			Type:          ConflictOrphanTask,
			Description:   fmt.Sprintf("%d task(s) reference deleted routine item %s", len(orphans[ref]), ref),
			IDs:           orphans[ref],
			Informational: true,
		})
	}
	conflicts = append(conflicts, duplicateIDs("task", ids)...)
	return conflicts
}

func (v *Validator) checkProfile(profile []models.ProfileField) []Conflict {
	var conflicts []Conflict
	count := make(map[string]int)
	for _, f := range profile {
		count[f.Key]++
		if count[f.Key] == 2 {
			conflicts = append(conflicts, Conflict{
				Type:        ConflictDuplicateProfileKey,
				Description: fmt.Sprintf("Duplicate profile key: %q", f.Key),
				Items:       []string{f.Key},
			})
		}
	}
	return conflicts
}

func duplicateIDs(kind string, counts map[string]int) []Conflict {
	var dups []string
	for id, n := range counts {
		if n > 1 {
			dups = append(dups, id)
		}
	}
	sort.Strings(dups)

	conflicts := make([]Conflict, 0, len(dups))
	for _, id := range dups {
		conflicts = append(conflicts, Conflict{
			Type:        ConflictDuplicateID,
			Description: fmt.Sprintf("Duplicate %s id: %s (%d occurrences)", kind, id, counts[id]),
			IDs:         []string{id},
		})
	}
	return conflicts
}
