package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/sisy/internal/models"
	"github.com/julianstephens/sisy/internal/utils"
)

type RoutineFormModel struct {
	Title        string
	Time         string
	Interval     string
	AutoComplete bool
	Description  string
}

func NewRoutineForm(fm *RoutineFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Title").
				Value(&fm.Title).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("title is required")
					}
					return nil
				}),
			huh.NewInput().
				Title("Time (HH:MM)").
				Description("Leave empty for anytime").
				Value(&fm.Time).
				Validate(func(s string) error {
					if s = strings.TrimSpace(s); s != "" && !utils.ValidateTimeFormat(s) {
						return fmt.Errorf("use HH:MM")
					}
					return nil
				}),
			huh.NewInput().
				Title("Repeat every N days").
				Value(&fm.Interval).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return nil
					}
					i, err := strconv.Atoi(s)
					if err != nil {
						return err
					}
					if i <= 0 {
						return fmt.Errorf("interval must be a positive number of days")
					}
					return nil
				}),
			huh.NewConfirm().
				Title("Auto-complete?").
				Description("Hidden once its time passes").
				Value(&fm.AutoComplete),
			huh.NewText().
				Title("Description").
				Value(&fm.Description),
		),
	)
}

// Patch converts the form into a routine patch.
func (fm *RoutineFormModel) Patch() models.RoutinePatch {
	patch := models.RoutinePatch{
		Title:        models.Some(strings.TrimSpace(fm.Title)),
		AutoComplete: models.Some(fm.AutoComplete),
	}
	if t := strings.TrimSpace(fm.Time); t != "" {
		patch.Time = models.Some(t)
	}
	if n, err := strconv.Atoi(strings.TrimSpace(fm.Interval)); err == nil {
		patch.RepeatInterval = models.Some(n)
	}
	if d := strings.TrimSpace(fm.Description); d != "" {
		patch.Description = models.Some(d)
	}
	return patch
}
