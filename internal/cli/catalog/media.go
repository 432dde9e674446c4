package catalog

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/reeltok/reeltok/internal/cli"
	"github.com/reeltok/reeltok/internal/models"
	"github.com/reeltok/reeltok/internal/storage"
)

type MediaCmd struct {
	Add    MediaAddCmd    `cmd:"" help:"Register a video or audio asset."`
	List   MediaListCmd   `cmd:"" help:"List media assets." default:"1"`
	Delete MediaDeleteCmd `cmd:"" help:"Delete a media asset."`
}

type MediaAddCmd struct {
	Category   string `arg:"" help:"Media category (meditation, walking, meal)."`
	Title      string `arg:"" help:"Display title."`
	PlaybackID string `help:"Mux playback ID of the video."`
	VideoURL   string `help:"Direct video URL."`
	AudioURL   string `help:"Background audio URL."`
	Inactive   bool   `help:"Store the asset without making it selectable."`
}

func (cmd *MediaAddCmd) Run(ctx *cli.Context) error {
	category, err := models.ParseCategory(cmd.Category)
	if err != nil {
		return err
	}

	asset := models.MediaAsset{
		ID:              uuid.New().String(),
		Category:        category,
		Title:           cmd.Title,
		VideoPlaybackID: cmd.PlaybackID,
		VideoURL:        cmd.VideoURL,
		AudioURL:        cmd.AudioURL,
		Active:          !cmd.Inactive,
	}
	if err := asset.Validate(); err != nil {
		return err
	}

	if err := ctx.Store.AddMediaAsset(asset); err != nil {
		return fmt.Errorf("failed to add media asset: %w", err)
	}
	fmt.Printf("Added %s asset %q (%s)\n", asset.Category, asset.Title, asset.ID)
	return nil
}

type MediaListCmd struct {
	Category string `help:"Only list this category."`
	JSON     bool   `help:"Print assets as JSON." name:"json"`
}

func (cmd *MediaListCmd) Run(ctx *cli.Context) error {
	var filter *models.Category
	if cmd.Category != "" {
		category, err := models.ParseCategory(cmd.Category)
		if err != nil {
			return err
		}
		filter = &category
	}

	assets, err := ctx.Store.ListMediaAssets(filter)
	if err != nil {
		return fmt.Errorf("failed to list media assets: %w", err)
	}

	if cmd.JSON {
		return cli.PrintJSON(assets)
	}

	if len(assets) == 0 {
		fmt.Println("No media assets. Add one with 'reeltok media add' or 'reeltok generate --save'.")
		return nil
	}

	for _, a := range assets {
		status := "active"
		if !a.Active {
			status = "inactive"
		}
		fmt.Printf("%s  %-10s %-8s %s\n", a.ID, a.Category, status, a.Title)
		if a.HasVideo() {
			fmt.Printf("    video: %s\n", a.StreamURL())
		}
		if a.HasAudio() {
			fmt.Printf("    audio: %s\n", a.AudioURL)
		}
	}
	return nil
}

type MediaDeleteCmd struct {
	ID string `arg:"" help:"ID of the asset to delete."`
}

func (cmd *MediaDeleteCmd) Run(ctx *cli.Context) error {
	ctx.PerformAutomaticBackup("media-delete")
	if err := ctx.Store.DeleteMediaAsset(cmd.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return fmt.Errorf("media asset not found: %s", cmd.ID)
		}
		return fmt.Errorf("failed to delete media asset: %w", err)
	}
	fmt.Printf("Deleted media asset %s\n", cmd.ID)
	return nil
}
