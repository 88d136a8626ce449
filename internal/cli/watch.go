package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/sisy/internal/logger"
	"github.com/julianstephens/sisy/internal/notifier"
	"github.com/julianstephens/sisy/internal/timeline"
)

// TickCmd runs one generation pass.
type TickCmd struct{}

func (c *TickCmd) Run(ctx *Context) error {
	generated, err := ctx.Service.Tick()
	if err != nil {
		return err
	}
	fmt.Printf("Generated %d task(s)\n", len(generated))
	for _, task := range generated {
		fmt.Printf("  %s\n", FormatTask(task))
	}
	return nil
}

type WatchCmd struct {
	Interval time.Duration `help:"Tick interval (defaults to tick_interval from config)."`
	For      time.Duration `help:"Stop after this long; 0 runs until interrupted."`
	Quiet    bool          `help:"Do not print now-task changes."`
}

func (c *WatchCmd) Run(ctx *Context) error {
	interval := c.Interval
	if interval <= 0 {
		interval = ctx.Config.TickInterval
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if c.For > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(runCtx, c.For)
		defer cancel()
	}

	var sender notifier.Sender
	if ctx.Config.Notifications {
		sender = ctx.Notifier
	}
	return c.watch(runCtx, ctx, interval, sender)
}

func (c *WatchCmd) watch(runCtx context.Context, ctx *Context, interval time.Duration, sender notifier.Sender) error {
	g, gctx := errgroup.WithContext(runCtx)
	timelines := make(chan timeline.Timeline)

	g.Go(func() error {
		defer close(timelines)
		return ctx.Service.Run(gctx, interval, func(tl timeline.Timeline) {
			select {
			case timelines <- tl:
			case <-gctx.Done():
			}
		})
	})

	g.Go(func() error {
		var tracker notifier.Tracker
		for tl := range timelines {
			msg, ok := tracker.Observe(tl)
			if !ok {
				continue
			}
			if !c.Quiet {
				fmt.Println(msg)
			}
			if sender == nil {
				continue
			}
			if err := sender.Notify(gctx, msg); err != nil {
				// Notifications are best effort.
				logger.Warn("Failed to send notification", "error", err)
			}
		}
		return nil
	})

	return g.Wait()
}
