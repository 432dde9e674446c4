package schedule

import (
	"fmt"
	"os"

	"github.com/reeltok/reeltok/internal/cli"
	apperrors "github.com/reeltok/reeltok/internal/errors"
	"github.com/reeltok/reeltok/internal/logger"
	"github.com/reeltok/reeltok/internal/models"
	"github.com/reeltok/reeltok/internal/scheduler"
	"github.com/reeltok/reeltok/internal/validation"
)

type TimetableCmd struct {
	List     TimetableListCmd     `cmd:"" help:"List timetable slots." default:"1"`
	Validate TimetableValidateCmd `cmd:"" help:"Validate the stored timetable or a timetable file."`
	Import   TimetableImportCmd   `cmd:"" help:"Replace the timetable with one read from a YAML or JSON file."`
	Export   TimetableExportCmd   `cmd:"" help:"Write the timetable as YAML or JSON."`
	Reset    TimetableResetCmd    `cmd:"" help:"Restore the built-in timetable."`
}

type TimetableListCmd struct{}

func (cmd *TimetableListCmd) Run(ctx *cli.Context) error {
	slots := ctx.Resolver.Slots()
	current := ctx.Resolver.Resolve(ctx.Clock.Now())

	fmt.Printf("  %-6s %-11s %-11s %s\n", "START", "TYPE", "CATEGORY", "LABEL")
	for _, slot := range slots {
		marker := " "
		if current.Slot != nil && current.Slot.Start == slot.Start {
			marker = ">"
		}
		fmt.Printf("%s %-6s %-11s %-11s %s\n", marker, slot.Start, slot.Type, slot.Category(), slot.Label)
	}
	if current.Fallback {
		fmt.Printf("\nBefore the first slot: playing %s.\n", current.Category)
	}
	return nil
}

type TimetableValidateCmd struct {
	File string `arg:"" optional:"" help:"Timetable file to validate instead of the stored one." type:"existingfile"`
}

func (cmd *TimetableValidateCmd) Run(ctx *cli.Context) error {
	var slots []models.ActivitySlot
	if cmd.File != "" {
		loaded, err := readTimetableFile(cmd.File)
		if err != nil {
			return err
		}
		slots = loaded
	} else {
		stored, err := ctx.Store.GetTimetable()
		if err != nil {
			return fmt.Errorf("failed to get timetable: %w", err)
		}
		slots = stored
	}

	result := validation.ValidateTimetable(slots)
	fmt.Print(result.FormatReport())
	if result.HasErrors() {
		return apperrors.WithExitCode(fmt.Errorf("timetable has %d error(s)", len(result.Errors())), 2)
	}
	return nil
}

type TimetableImportCmd struct {
	File   string `arg:"" help:"YAML or JSON timetable file." type:"existingfile"`
	DryRun bool   `help:"Validate the file without saving it."`
}

func (cmd *TimetableImportCmd) Run(ctx *cli.Context) error {
	slots, err := readTimetableFile(cmd.File)
	if err != nil {
		return err
	}

	result := validation.ValidateTimetable(slots)
	if result.HasConflicts() {
		fmt.Print(result.FormatReport())
	}
	if result.HasErrors() {
		return fmt.Errorf("refusing to import invalid timetable from %s", cmd.File)
	}

	if cmd.DryRun {
		fmt.Printf("%s is valid (%d slots). Nothing saved.\n", cmd.File, len(slots))
		return nil
	}

	ctx.PerformAutomaticBackup("timetable-import")
	if err := ctx.Store.ReplaceTimetable(slots); err != nil {
		return fmt.Errorf("failed to save timetable: %w", err)
	}
	logger.Info("Timetable imported", "file", cmd.File, "slots", len(slots))
	fmt.Printf("Imported %d slots from %s\n", len(slots), cmd.File)
	return nil
}

type TimetableExportCmd struct {
	Format string `help:"Output format." enum:"yaml,json" default:"yaml"`
	Output string `short:"o" help:"Write to this file instead of stdout." type:"path"`
}

func (cmd *TimetableExportCmd) Run(ctx *cli.Context) error {
	slots, err := ctx.Store.GetTimetable()
	if err != nil {
		return fmt.Errorf("failed to get timetable: %w", err)
	}

	data, err := EncodeTimetable(slots, cmd.Format)
	if err != nil {
		return err
	}

	if cmd.Output == "" {
		fmt.Print(string(data))
		return nil
	}
	if err := os.WriteFile(cmd.Output, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", cmd.Output, err)
	}
	fmt.Printf("Exported %d slots to %s\n", len(slots), cmd.Output)
	return nil
}

type TimetableResetCmd struct{}

func (cmd *TimetableResetCmd) Run(ctx *cli.Context) error {
	slots := scheduler.DefaultTimetable()
	ctx.PerformAutomaticBackup("timetable-reset")
	if err := ctx.Store.ReplaceTimetable(slots); err != nil {
		return fmt.Errorf("failed to reset timetable: %w", err)
	}
	logger.Info("Timetable reset to built-in default")
	fmt.Printf("Timetable reset to the built-in %d-slot day.\n", len(slots))
	return nil
}

func readTimetableFile(path string) ([]models.ActivitySlot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return DecodeTimetable(data, FormatForPath(path))
}
