package routine

import (
	"fmt"
	"strings"

	"github.com/julianstephens/sisy/internal/cli"
	"github.com/julianstephens/sisy/internal/models"
)

type RoutineListCmd struct{}

func (c *RoutineListCmd) Run(ctx *cli.Context) error {
	st := ctx.Service.Snapshot()
	if len(st.Routine) == 0 {
		fmt.Println("No routine items")
		return nil
	}
	fmt.Println("Routine:")
	for _, item := range st.Routine {
		fmt.Printf("  %s\n", cli.FormatRoutineItem(item))
		if item.Description != nil && *item.Description != "" {
			fmt.Printf("      %s\n", *item.Description)
		}
	}
	return nil
}

// Fields are the routine flags shared by add and edit. Pointers distinguish
// "not given" from a zero value.
type Fields struct {
	Title        *string `help:"Title."`
	Time         *string `short:"t" help:"Time of day (HH:MM); empty for anytime."`
	Every        *int    `short:"e" help:"Repeat every N days."`
	AutoComplete *bool   `help:"Hide the task once its time passes." negatable:""`
	Description  *string `short:"d" help:"Description; empty to clear."`
}

func (f Fields) patch() models.RoutinePatch {
	var p models.RoutinePatch
	if f.Title != nil {
		p.Title = models.Some(*f.Title)
	}
	if f.Time != nil {
		if t := strings.TrimSpace(*f.Time); t == "" {
			p.Time = models.Null[string]()
		} else {
			p.Time = models.Some(t)
		}
	}
	if f.Every != nil {
		p.RepeatInterval = models.Some(*f.Every)
	}
	if f.AutoComplete != nil {
		p.AutoComplete = models.Some(*f.AutoComplete)
	}
	if f.Description != nil {
		if *f.Description == "" {
			p.Description = models.Null[string]()
		} else {
			p.Description = models.Some(*f.Description)
		}
	}
	return p
}

type RoutineAddCmd struct {
	Name string `arg:"" help:"Title of the routine item."`
	Fields `embed:""`
}

func (c *RoutineAddCmd) Run(ctx *cli.Context) error {
	c.Fields.Title = &c.Name
	item, err := ctx.Service.AddRoutineItem(c.Fields.patch())
	if err != nil {
		return err
	}
	fmt.Printf("Added routine item: %s (ID: %s)\n", item.Title, item.ID)
	return nil
}

type RoutineEditCmd struct {
	ID string `arg:"" help:"Routine item ID."`
	Fields `embed:""`
}

func (c *RoutineEditCmd) Run(ctx *cli.Context) error {
	patch := c.Fields.patch()
	if patch.IsEmpty() {
		return fmt.Errorf("no changes specified")
	}
	changed, err := ctx.Service.UpdateRoutineItem(c.ID, patch)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Println("No changes")
		return nil
	}
	fmt.Println("Routine item updated; today's open tasks were updated too")
	return nil
}

type RoutineRevertCmd struct {
	ID string `arg:"" help:"Routine item ID."`
}

func (c *RoutineRevertCmd) Run(ctx *cli.Context) error {
	changed, err := ctx.Service.RevertRoutineDescription(c.ID)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Println("No previous description to restore")
		return nil
	}
	fmt.Println("Description reverted")
	return nil
}

type RoutineDeleteCmd struct {
	ID string `arg:"" help:"Routine item ID."`
}

func (c *RoutineDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Service.DeleteRoutineItem(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted routine item %s\n", c.ID)
	return nil
}

type RoutineImportCmd struct {
	File string `arg:"" help:"JSON array of routine items, or - for stdin."`
}

func (c *RoutineImportCmd) Run(ctx *cli.Context) error {
	data, err := cli.ReadInput(c.File)
	if err != nil {
		return err
	}
	n, err := ctx.Service.ImportRoutine(data)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d routine item(s)\n", n)
	return nil
}
