package system

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/sisy/internal/cli"
	"github.com/julianstephens/sisy/internal/keyring"
	"github.com/julianstephens/sisy/internal/storage"
	"github.com/julianstephens/sisy/internal/validation"
)

// schemaReporter is implemented by the SQL-backed stores.
type schemaReporter interface {
	SchemaStatus() (current, latest int, err error)
}

type DoctorCmd struct {
	Offline bool `help:"Skip the agent health check."`
}

type doctorRun struct {
	hasError bool
}

func (r *doctorRun) check(name string, err error) bool {
	if err != nil {
		fmt.Printf("❌ %s: FAIL\n", name)
		fmt.Printf("   Error: %v\n", err)
		r.hasError = true
		return false
	}
	fmt.Printf("✓ %s: OK\n", name)
	return true
}

func (r *doctorRun) warn(name string, err error) {
	if err != nil {
		fmt.Printf("⚠ %s: WARNING\n", name)
		fmt.Printf("   %v\n", err)
		return
	}
	fmt.Printf("✓ %s: OK\n", name)
}

func (r *doctorRun) skip(name, reason string) {
	fmt.Printf("⊘ %s: SKIPPED (%s)\n", name, reason)
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	r := &doctorRun{}

	reachable := r.check("Store reachable", ctx.Store.Load())
	if reachable {
		r.check("Schema version", checkSchema(ctx.Store))
		r.check("Data validation", checkState(ctx.Store))
	} else {
		r.skip("Schema version", "store not reachable")
		r.skip("Data validation", "store not reachable")
	}

	r.warn("OS keyring", checkKeyring())
	r.check("Configuration", checkConfig(ctx))

	switch {
	case cmd.Offline:
		r.skip("Agent health", "offline")
	case !reachable:
		r.skip("Agent health", "store not reachable")
	default:
		r.warn("Agent health", checkAgent(ctx))
	}

	r.check("Clock/timezone", checkClockTimezone())

	fmt.Println()
	if r.hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}
	fmt.Println("All diagnostics passed!")
	return nil
}

func checkSchema(store storage.Provider) error {
	reporter, ok := store.(schemaReporter)
	if !ok {
		// File stores carry no schema.
		return nil
	}
	current, latest, err := reporter.SchemaStatus()
	if err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	if current > latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", current, latest)
	}
	if current < latest {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d", current, latest)
	}
	return nil
}

func checkState(store storage.Provider) error {
	st, _, err := storage.LoadState(store, time.Now())
	if err != nil {
		return err
	}
	result := validation.New().ValidateState(st)
	if result.HasErrors() {
		return errors.New(result.FormatReport())
	}
	return nil
}

func checkKeyring() error {
	if !keyring.IsAvailable() {
		return keyring.ErrKeyringUnavailable
	}
	if _, err := keyring.GetAgentToken(); errors.Is(err, keyring.ErrNotFound) {
		return errors.New("no agent token stored; use 'sisy keyring set-token' if the agent requires one")
	}
	return nil
}

func checkConfig(ctx *cli.Context) error {
	if ctx.Config.AgentURL == "" {
		return errors.New("agent_url is empty")
	}
	if ctx.Config.TickInterval < time.Second {
		return fmt.Errorf("tick_interval %s is too short", ctx.Config.TickInterval)
	}
	return nil
}

func checkAgent(ctx *cli.Context) error {
	if err := ctx.Open(); err != nil {
		return err
	}
	reqCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	health, err := ctx.Agent.Health(reqCtx)
	if err != nil {
		return err
	}
	if !health.AgentReady {
		return fmt.Errorf("agent at %s reports status %q but is not ready", ctx.Config.AgentURL, health.Status)
	}
	return nil
}

func checkClockTimezone() error {
	now := time.Now()
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	if _, offset := now.Zone(); offset == 0 && now.Location() == time.UTC {
		fmt.Printf("   Note: timezone is UTC\n")
	}
	return nil
}
