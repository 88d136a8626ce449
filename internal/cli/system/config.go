package system

import (
	"fmt"

	"github.com/julianstephens/sisy/internal/cli"
	"github.com/julianstephens/sisy/internal/config"
)

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *cli.Context) error {
	cfg := ctx.Config
	logLevel := cfg.LogLevel
	if logLevel == "" {
		logLevel = "(default)"
	}
	fmt.Printf("Config file: %s\n", cfg.Path)
	fmt.Printf("  %-14s %s\n", config.KeyAgentURL, cfg.AgentURL)
	fmt.Printf("  %-14s %s\n", config.KeyAgentTimeout, cfg.AgentTimeout)
	fmt.Printf("  %-14s %s\n", config.KeyTickInterval, cfg.TickInterval)
	fmt.Printf("  %-14s %v\n", config.KeyNotifications, cfg.Notifications)
	fmt.Printf("  %-14s %s\n", config.KeyTab, cfg.Tab)
	fmt.Printf("  %-14s %s\n", config.KeyLogLevel, logLevel)
	return nil
}

type ConfigSetCmd struct {
	Key   string `arg:"" help:"Configuration key." enum:"agent_url,agent_timeout,tick_interval,notifications,tab,log_level"`
	Value string `arg:"" help:"New value."`
}

func (c *ConfigSetCmd) Run(ctx *cli.Context) error {
	if err := config.Set(ctx.ConfigDir, c.Key, c.Value); err != nil {
		return err
	}
	cfg, err := config.Load(ctx.ConfigDir)
	if err != nil {
		return err
	}
	ctx.Config = cfg
	fmt.Printf("Set %s = %s\n", c.Key, c.Value)
	return nil
}
