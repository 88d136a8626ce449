package cli

import (
	"fmt"

	"github.com/julianstephens/sisy/internal/utils"
)

type NowCmd struct{}

func (c *NowCmd) Run(ctx *Context) error {
	if _, err := ctx.Service.Tick(); err != nil {
		return err
	}
	tl := ctx.Service.Timeline()
	now := utils.Now()

	if tl.Now == nil {
		fmt.Printf("Now (%s): Nothing left for today\n", utils.FormatClock(now))
		return nil
	}
	fmt.Printf("Now (%s): %s\n", utils.FormatClock(now), FormatTask(*tl.Now))
	if tl.Next != nil {
		fmt.Printf("Next:       %s\n", FormatTask(*tl.Next))
	}
	if tl.Past != nil {
		fmt.Printf("Missed:     %s\n", FormatTask(*tl.Past))
	}
	return nil
}

type TimelineCmd struct{}

func (c *TimelineCmd) Run(ctx *Context) error {
	if _, err := ctx.Service.Tick(); err != nil {
		return err
	}
	tl := ctx.Service.Timeline()
	if len(tl.Tasks) == 0 {
		fmt.Println("No tasks for today")
		return nil
	}

	fmt.Printf("Today (%s):\n", utils.FormatDate(utils.Now()))
	for _, task := range tl.Tasks {
		marker := "  "
		if tl.Now != nil && task.ID == tl.Now.ID {
			marker = "> "
		}
		fmt.Printf("%s%s\n", marker, FormatTask(task))
	}
	return nil
}
