package system

import (
	"fmt"

	"github.com/julianstephens/sisy/internal/cli"
	"github.com/julianstephens/sisy/internal/validation"
)

type ValidateCmd struct {
	Strict bool `help:"Fail on informational conflicts too."`
}

func (cmd *ValidateCmd) Run(ctx *cli.Context) error {
	fmt.Println("Validating routine, tasks and profile...")
	result := validation.New().ValidateState(ctx.Service.Snapshot())

	fmt.Println()
	fmt.Println(result.FormatReport())

	if result.HasErrors() || (cmd.Strict && result.HasConflicts()) {
		return fmt.Errorf("validation found %d conflict(s)", len(result.Conflicts))
	}
	return nil
}
