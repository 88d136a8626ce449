package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/sisy/internal/cli"
	"github.com/julianstephens/sisy/internal/storage/postgres"
)

type InitCmd struct {
	Force bool `help:"Delete the existing local store before initializing."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if _, remote := ctx.Store.(*postgres.Store); remote {
			return fmt.Errorf("--force is only supported for local stores")
		}
		path := ctx.Store.GetConfigPath()
		if _, err := os.Stat(path); err == nil {
			if mgr, err := backupManager(ctx.Store); err == nil {
				if saved, err := mgr.Create(); err != nil {
					fmt.Fprintf(os.Stderr, "Warning: could not back up existing store: %v\n", err)
				} else {
					fmt.Printf("Backed up existing store to: %s\n", saved)
				}
			}
			if err := ctx.Store.Close(); err != nil {
				return fmt.Errorf("failed to close existing store: %w", err)
			}
			if err := os.Remove(path); err != nil {
				return fmt.Errorf("failed to delete existing store: %w", err)
			}
			fmt.Printf("Deleted existing store at: %s\n", path)
		} else if !os.IsNotExist(err) {
			return fmt.Errorf("failed to access existing store: %w", err)
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	if err := ctx.Open(); err != nil {
		return err
	}
	fmt.Printf("Initialized sisy storage at: %s\n", ctx.Store.GetConfigPath())
	return nil
}
