package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/reeltok/reeltok/internal/cli"
	"github.com/reeltok/reeltok/internal/metrics"
	"github.com/reeltok/reeltok/internal/models"
	"github.com/reeltok/reeltok/internal/utils"
)

type NowCmd struct {
	At   string `help:"Resolve at HH:MM today or an RFC3339 instant instead of the current time."`
	JSON bool   `help:"Print the resolution as JSON." name:"json"`
}

// NowOutput is the machine-readable form of 'reeltok now'.
type NowOutput struct {
	models.Resolution
	Next       *models.ActivitySlot   `json:"next,omitempty"`
	Media      *models.MediaSelection `json:"media,omitempty"`
	MediaError string                 `json:"media_error,omitempty"`
	Override   bool                   `json:"override"`
}

func (cmd *NowCmd) Run(ctx *cli.Context) error {
	at := ctx.Clock.Now()
	if cmd.At != "" {
		parsed, err := utils.ParseInstant(cmd.At, at)
		if err != nil {
			return err
		}
		at = parsed
	}

	out := resolve(ctx, at)
	out.Override = cmd.At == "" && ctx.Clock.Active()

	if cmd.JSON {
		return cli.PrintJSON(out)
	}
	printNow(out)
	return nil
}

func resolve(ctx *cli.Context, at time.Time) NowOutput {
	res := ctx.Resolver.Resolve(at)
	metrics.RecordResolution(res)

	out := NowOutput{Resolution: res}
	if next, ok := ctx.Resolver.Next(at); ok {
		out.Next = &next
	}
	selection, err := ctx.Selector().Select(context.Background(), res.Category)
	if err != nil {
		out.MediaError = err.Error()
	} else {
		out.Media = &selection
	}
	return out
}

func printNow(out NowOutput) {
	fmt.Printf("Time:     %s", utils.FormatClock(out.At))
	if out.Override {
		fmt.Print(" (clock override)")
	}
	fmt.Println()

	if out.Slot != nil {
		fmt.Printf("Activity: %s (%s) since %s\n", out.Slot.Label, out.Slot.Type, out.Slot.Start)
	} else {
		fmt.Println("Activity: none yet, before the first slot of the day")
	}
	fmt.Printf("Category: %s\n", out.Category)

	if out.Media != nil {
		fmt.Printf("Video:    %s <%s>\n", out.Media.Video.Title, out.Media.Video.StreamURL())
		if out.Media.Audio != nil {
			fmt.Printf("Audio:    %s <%s>\n", out.Media.Audio.Title, out.Media.Audio.AudioURL)
		}
	} else if out.MediaError != "" {
		fmt.Printf("Media:    unavailable (%s)\n", out.MediaError)
	}

	if out.Next != nil {
		fmt.Printf("Up next:  %s\n", cli.FormatSlot(*out.Next))
	}
}
