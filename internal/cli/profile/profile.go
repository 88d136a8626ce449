package profile

import (
	"fmt"
	"slices"

	"github.com/julianstephens/sisy/internal/cli"
	"github.com/julianstephens/sisy/internal/models"
)

type ProfileListCmd struct{}

func (c *ProfileListCmd) Run(ctx *cli.Context) error {
	st := ctx.Service.Snapshot()
	if len(st.Profile) == 0 {
		fmt.Println("Profile is empty")
		return nil
	}

	groups := make(map[string][]models.ProfileField)
	var order []string
	for _, field := range st.Profile {
		if _, ok := groups[field.Group]; !ok {
			order = append(order, field.Group)
		}
		groups[field.Group] = append(groups[field.Group], field)
	}

	for _, group := range order {
		fmt.Printf("%s:\n", group)
		for _, field := range groups[group] {
			mark := " "
			if slices.Contains(st.HighlightedIDs, field.Key) {
				mark = "*"
			}
			value := field.Value
			if value == "" {
				value = "(empty)"
			}
			fmt.Printf(" %s %-16s %s  [%s]\n", mark, field.Key, value, field.Source)
		}
	}
	return nil
}

type ProfileSetCmd struct {
	Key   string `arg:"" help:"Field key."`
	Value string `arg:"" help:"Field value."`
	Group string `short:"g" help:"Group the field belongs to."`
}

func (c *ProfileSetCmd) Run(ctx *cli.Context) error {
	changed, err := ctx.Service.UpsertProfileField(c.Key, c.Value, cli.Optional(c.Group))
	if err != nil {
		return err
	}
	if !changed {
		fmt.Println("No changes")
		return nil
	}
	fmt.Printf("Set %s\n", c.Key)
	return nil
}

type ProfileRevertCmd struct {
	Key string `arg:"" help:"Field key."`
}

func (c *ProfileRevertCmd) Run(ctx *cli.Context) error {
	changed, err := ctx.Service.RevertProfileField(c.Key)
	if err != nil {
		return err
	}
	if !changed {
		fmt.Println("No previous value to restore")
		return nil
	}
	fmt.Printf("Reverted %s\n", c.Key)
	return nil
}

type ProfileDeleteCmd struct {
	Key string `arg:"" help:"Field key."`
}

func (c *ProfileDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Service.DeleteProfileField(c.Key); err != nil {
		return err
	}
	fmt.Printf("Deleted %s\n", c.Key)
	return nil
}

type ProfileImportCmd struct {
	File string `arg:"" help:"JSON array of profile fields, or - for stdin."`
}

func (c *ProfileImportCmd) Run(ctx *cli.Context) error {
	data, err := cli.ReadInput(c.File)
	if err != nil {
		return err
	}
	n, err := ctx.Service.ImportProfile(data)
	if err != nil {
		return err
	}
	fmt.Printf("Imported %d profile field(s)\n", n)
	return nil
}
