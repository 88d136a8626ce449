package chat

import (
	"context"
	"fmt"
	"strings"

	"github.com/julianstephens/sisy/internal/cli"
	"github.com/julianstephens/sisy/internal/utils"
)

type ChatCmd struct {
	Message []string `arg:"" help:"Message to send."`
	Tab     string   `help:"Chat tab (defaults to tab from config)."`
	Image   string   `help:"Image URI to attach."`
}

func (c *ChatCmd) Run(ctx *cli.Context) error {
	tab := c.Tab
	if tab == "" {
		tab = ctx.Config.Tab
	}
	result, err := ctx.Service.SendChat(context.Background(), strings.Join(c.Message, " "), tab, cli.Optional(c.Image))
	if err != nil {
		return err
	}

	fmt.Println(result.AssistantText)
	if len(result.Actions.Logs) > 0 {
		fmt.Println()
		for _, entry := range result.Actions.Logs {
			fmt.Printf("  • %s\n", entry.Content)
		}
	}
	return nil
}

type HistoryCmd struct {
	Limit int `short:"n" help:"Number of messages to show." default:"20"`
}

func (c *HistoryCmd) Run(ctx *cli.Context) error {
	messages := ctx.Service.Snapshot().Chat
	if len(messages) == 0 {
		fmt.Println("No messages")
		return nil
	}
	if c.Limit > 0 && len(messages) > c.Limit {
		messages = messages[len(messages)-c.Limit:]
	}
	for _, msg := range messages {
		fmt.Printf("[%s] %s: %s\n", utils.FormatClock(msg.Timestamp.Local()), msg.Role, msg.Text)
	}
	return nil
}

type LogListCmd struct {
	Limit int `short:"n" help:"Number of entries to show." default:"20"`
}

func (c *LogListCmd) Run(ctx *cli.Context) error {
	logs := ctx.Service.Snapshot().Logs
	if len(logs) == 0 {
		fmt.Println("No log entries")
		return nil
	}
	if c.Limit > 0 && len(logs) > c.Limit {
		logs = logs[:c.Limit]
	}
	for _, entry := range logs {
		at := entry.Timestamp.Local()
		fmt.Printf("%s %s  %-15s %-9s %s\n", utils.FormatDate(at), utils.FormatClock(at), entry.RelatedAction, entry.Author, entry.Content)
	}
	return nil
}

type HighlightsListCmd struct{}

func (c *HighlightsListCmd) Run(ctx *cli.Context) error {
	st := ctx.Service.Snapshot()
	if len(st.HighlightedIDs) == 0 {
		fmt.Println("Nothing new")
		return nil
	}
	for _, id := range st.HighlightedIDs {
		label := id
		if i, ok := st.FindRoutineItem(id); ok {
			label = "routine: " + st.Routine[i].Title
		} else if i, ok := st.FindProfileField(id); ok {
			label = fmt.Sprintf("profile: %s = %s", st.Profile[i].Key, st.Profile[i].Value)
		}
		fmt.Printf("  %s  (ID: %s)\n", label, id)
	}
	return nil
}

type HighlightsClearCmd struct {
	ID string `arg:"" optional:"" help:"Highlight to clear; all when omitted."`
}

func (c *HighlightsClearCmd) Run(ctx *cli.Context) error {
	var err error
	if c.ID != "" {
		_, err = ctx.Service.ClearHighlight(c.ID)
	} else {
		_, err = ctx.Service.ClearHighlights()
	}
	if err != nil {
		return err
	}
	fmt.Println("Highlights cleared")
	return nil
}
