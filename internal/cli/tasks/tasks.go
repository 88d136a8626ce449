package tasks

import (
	"fmt"

	"github.com/julianstephens/sisy/internal/cli"
	"github.com/julianstephens/sisy/internal/constants"
	"github.com/julianstephens/sisy/internal/utils"
)

type TaskListCmd struct {
	All  bool `help:"Include tasks from other days."`
	Todo bool `help:"Show only open tasks."`
}

func (c *TaskListCmd) Run(ctx *cli.Context) error {
	now := utils.Now()
	var shown int
	for _, task := range ctx.Service.Snapshot().Tasks {
		if c.Todo && task.IsDone() {
			continue
		}
		if !c.All {
			at, ok := task.EffectiveTime()
			if !ok || !utils.SameDay(at, now) {
				continue
			}
		}
		if shown == 0 {
			fmt.Println("Tasks:")
		}
		fmt.Printf("  %s\n", cli.FormatTask(task))
		shown++
	}
	if shown == 0 {
		fmt.Println("No tasks found")
	}
	return nil
}

type TaskAddCmd struct {
	Title string `arg:"" help:"Task title."`
	At    string `short:"t" help:"Scheduled time (HH:MM today or YYYY-MM-DD HH:MM). Omit for anytime."`
}

func (c *TaskAddCmd) Run(ctx *cli.Context) error {
	at, err := cli.ParseWhen(c.At, utils.Now())
	if err != nil {
		return err
	}
	task, err := ctx.Service.AddTask(c.Title, at, constants.TaskSourceSystem)
	if err != nil {
		return err
	}
	fmt.Printf("Added task: %s (ID: %s)\n", task.Title, task.ID)
	return nil
}

type TaskCompleteCmd struct {
	ID      string `arg:"" help:"Task ID."`
	Comment string `short:"m" help:"Log comment."`
}

func (c *TaskCompleteCmd) Run(ctx *cli.Context) error {
	changed, err := ctx.Service.CompleteTask(c.ID, cli.Optional(c.Comment))
	if err != nil {
		return err
	}
	if !changed {
		fmt.Println("Task is already done")
		return nil
	}
	fmt.Println("Task completed")
	return nil
}

type TaskSkipCmd struct {
	ID      string `arg:"" help:"Task ID."`
	Comment string `short:"m" help:"Log comment."`
}

func (c *TaskSkipCmd) Run(ctx *cli.Context) error {
	changed, err := ctx.Service.SkipTask(c.ID, cli.Optional(c.Comment))
	if err != nil {
		return err
	}
	if !changed {
		fmt.Println("Task has no scheduled time; nothing to skip")
		return nil
	}
	fmt.Println("Task skipped to its next occurrence")
	return nil
}

type TaskRescheduleCmd struct {
	ID      string `arg:"" help:"Task ID."`
	At      string `arg:"" help:"New time (HH:MM today, YYYY-MM-DD HH:MM, or 'anytime')."`
	Comment string `short:"m" help:"Log comment."`
}

func (c *TaskRescheduleCmd) Run(ctx *cli.Context) error {
	at, err := cli.ParseWhen(c.At, utils.Now())
	if err != nil {
		return err
	}
	changed, err := ctx.Service.RescheduleTask(c.ID, at, cli.Optional(c.Comment))
	if err != nil {
		return err
	}
	if !changed {
		fmt.Println("Task already scheduled at that time")
		return nil
	}
	fmt.Println("Task rescheduled")
	return nil
}

type TaskDeleteCmd struct {
	ID string `arg:"" help:"Task ID."`
}

func (c *TaskDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.Service.DeleteTask(c.ID); err != nil {
		return err
	}
	fmt.Printf("Deleted task %s\n", c.ID)
	return nil
}
