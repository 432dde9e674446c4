package schedule

import (
	"fmt"
	"time"

	"github.com/reeltok/reeltok/internal/cli"
	"github.com/reeltok/reeltok/internal/logger"
	"github.com/reeltok/reeltok/internal/utils"
)

type ClockCmd struct {
	Show  ClockShowCmd  `cmd:"" help:"Show the effective time and any override." default:"1"`
	Set   ClockSetCmd   `cmd:"" help:"Pin the clock to an instant for testing."`
	Clear ClockClearCmd `cmd:"" help:"Remove the clock override."`
}

type ClockShowCmd struct{}

func (cmd *ClockShowCmd) Run(ctx *cli.Context) error {
	wall := ctx.Clock.Base().Now()
	fmt.Printf("Wall clock: %s (%s)\n", wall.Format(time.RFC3339), ctx.Location)

	at, ok := ctx.Clock.Override()
	if !ok {
		fmt.Println("Override:   none")
		return nil
	}
	fmt.Printf("Override:   %s\n", at.Format(time.RFC3339))
	fmt.Printf("Resolves:   %s\n", describe(ctx, at))
	return nil
}

type ClockSetCmd struct {
	At string `arg:"" help:"HH:MM today or an RFC3339 instant."`
}

func (cmd *ClockSetCmd) Run(ctx *cli.Context) error {
	at, err := utils.ParseInstant(cmd.At, ctx.Clock.Base().Now())
	if err != nil {
		return err
	}
	if err := ctx.Store.SetClockOverride(at); err != nil {
		return fmt.Errorf("failed to save clock override: %w", err)
	}
	ctx.Clock.Set(at)
	logger.Info("Clock override set", "at", at)

	fmt.Printf("Clock override set to %s\n", at.Format(time.RFC3339))
	fmt.Printf("Resolves:   %s\n", describe(ctx, at))
	return nil
}

type ClockClearCmd struct{}

func (cmd *ClockClearCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.ClearClockOverride(); err != nil {
		return fmt.Errorf("failed to clear clock override: %w", err)
	}
	ctx.Clock.Clear()
	logger.Info("Clock override cleared")
	fmt.Println("Clock override cleared. Using the wall clock.")
	return nil
}

func describe(ctx *cli.Context, at time.Time) string {
	res := ctx.Resolver.Resolve(at)
	if res.Slot == nil {
		return fmt.Sprintf("%s (before the first slot)", res.Category)
	}
	return fmt.Sprintf("%s (%s)", res.Slot.Label, res.Category)
}
