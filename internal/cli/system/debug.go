package system

import (
	"fmt"
	"time"

	"github.com/reeltok/reeltok/internal/cli"
	"github.com/reeltok/reeltok/internal/models"
)

type DebugCmd struct {
	DBPath        *DebugDBPathCmd        `cmd:"" help:"Show database path."`
	DumpTimetable *DebugDumpTimetableCmd `cmd:"" help:"Dump timetable data as JSON."`
	DumpSettings  *DebugDumpSettingsCmd  `cmd:"" help:"Dump settings data as JSON."`
	DumpMedia     *DebugDumpMediaCmd     `cmd:"" help:"Dump a media asset as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return cli.PrintJSON(map[string]string{
		"path": ctx.Store.GetConfigPath(),
	})
}

type DebugDumpTimetableCmd struct{}

func (cmd *DebugDumpTimetableCmd) Run(ctx *cli.Context) error {
	slots, err := ctx.Store.GetTimetable()
	if err != nil {
		return fmt.Errorf("failed to get timetable: %w", err)
	}
	return cli.PrintJSON(slots)
}

type DebugDumpSettingsCmd struct{}

func (cmd *DebugDumpSettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Store.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}
	override, err := ctx.Store.GetClockOverride()
	if err != nil {
		return fmt.Errorf("failed to get clock override: %w", err)
	}

	return cli.PrintJSON(struct {
		Settings      models.Settings `json:"settings"`
		ClockOverride *time.Time      `json:"clock_override"`
	}{settings, override})
}

type DebugDumpMediaCmd struct {
	ID string `arg:"" help:"ID of the media asset to dump."`
}

func (cmd *DebugDumpMediaCmd) Run(ctx *cli.Context) error {
	asset, err := ctx.Store.GetMediaAsset(cmd.ID)
	if err != nil {
		return fmt.Errorf("failed to get media asset: %w", err)
	}
	return cli.PrintJSON(asset)
}
