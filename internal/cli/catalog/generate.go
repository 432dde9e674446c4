package catalog

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"

	"github.com/reeltok/reeltok/internal/cli"
	"github.com/reeltok/reeltok/internal/generation"
	"github.com/reeltok/reeltok/internal/models"
)

type GenerateCmd struct {
	Vibe      string  `help:"Mood of the clip, for example 'calm forest'." required:""`
	HeartRate int     `help:"Current heart rate in bpm." required:""`
	Intensity float64 `help:"Activity intensity between 0 and 1." default:"0.3"`
	Save      bool    `help:"Register the generated video as a media asset."`
	Category  string  `help:"Category for the saved asset. Defaults to the current activity's category."`
	Title     string  `help:"Title for the saved asset. Defaults to the vibe."`
	Check     bool    `help:"Only check that the generation service is reachable."`
}

func (cmd *GenerateCmd) Run(ctx *cli.Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	client := ctx.GenerationClient()

	if cmd.Check {
		if err := client.Health(runCtx); err != nil {
			return err
		}
		fmt.Printf("✓ Generation service at %s is reachable\n", ctx.Settings.GenerationURL)
		return nil
	}

	var category models.Category
	if cmd.Save {
		c, err := cmd.saveCategory(ctx)
		if err != nil {
			return err
		}
		category = c
	}

	fmt.Printf("Generating %q clip (this can take a few minutes)...\n", cmd.Vibe)
	resp, err := client.Generate(runCtx, models.GenerationRequest{
		Vibe:      cmd.Vibe,
		HeartRate: cmd.HeartRate,
		Intensity: cmd.Intensity,
	})
	if err != nil {
		if errors.Is(err, generation.ErrGenerationFailed) {
			return fmt.Errorf("%w (status %s)", err, resp.Status)
		}
		return err
	}

	fmt.Printf("✓ Generated in %.1fs\n", resp.ExecutionTimeSeconds)
	if resp.MuxPlaybackID != nil {
		fmt.Printf("  Playback ID:  %s\n", *resp.MuxPlaybackID)
	}
	if resp.MuxPlaybackURL != nil {
		fmt.Printf("  Playback URL: %s\n", *resp.MuxPlaybackURL)
	}

	if !cmd.Save {
		return nil
	}

	title := cmd.Title
	if title == "" {
		title = cmd.Vibe
	}
	asset, err := generation.ToMediaAsset(resp, category, title)
	if err != nil {
		return fmt.Errorf("cannot save generated clip: %w", err)
	}
	asset.ID = uuid.New().String()
	if err := ctx.Store.AddMediaAsset(asset); err != nil {
		return fmt.Errorf("failed to save media asset: %w", err)
	}
	fmt.Printf("✓ Saved as %s asset %s\n", asset.Category, asset.ID)
	return nil
}

func (cmd *GenerateCmd) saveCategory(ctx *cli.Context) (models.Category, error) {
	if cmd.Category != "" {
		return models.ParseCategory(cmd.Category)
	}
	return ctx.Resolver.Category(ctx.Clock.Now()), nil
}
