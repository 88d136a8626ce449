package system

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/julianstephens/sisy/internal/cli"
	"github.com/julianstephens/sisy/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	p := tea.NewProgram(tui.NewModel(ctx.Service, tui.Options{
		Tab:          ctx.Config.Tab,
		TickInterval: ctx.Config.TickInterval,
	}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
