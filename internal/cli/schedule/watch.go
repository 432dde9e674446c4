package schedule

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reeltok/reeltok/internal/cli"
	"github.com/reeltok/reeltok/internal/notifier"
	"github.com/reeltok/reeltok/internal/playback"
	"github.com/reeltok/reeltok/internal/utils"
)

type WatchCmd struct {
	Once     bool          `help:"Resolve once, print the result and exit."`
	Interval time.Duration `help:"Refresh interval. Defaults to the refresh_interval_sec setting."`
	Notify   *bool         `help:"Send tray notifications on changes. Defaults to the notifications_enabled setting." negatable:""`
}

func (cmd *WatchCmd) Run(ctx *cli.Context) error {
	interval := cmd.Interval
	if interval <= 0 {
		interval = time.Duration(ctx.Settings.RefreshIntervalSec) * time.Second
	}

	cfg := playback.Config{
		Resolver: ctx.Resolver,
		Clock:    ctx.Clock,
		Selector: ctx.Selector(),
		Interval: interval,
		OnChange: printEvent,
	}

	notify := ctx.Settings.NotificationsEnabled
	if cmd.Notify != nil {
		notify = *cmd.Notify
	}
	if notify {
		if err := notifier.TrayStatus(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: notifications enabled but %v\n", err)
		}
		cfg.Notifier = notifier.New()
	}

	watcher := playback.NewWatcher(cfg)

	if cmd.Once {
		watcher.Check(context.Background())
		return nil
	}

	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Printf("Watching schedule every %s. Press Ctrl+C to stop.\n", interval)
	if err := watcher.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func printEvent(e playback.Event) {
	fmt.Printf("[%s] %s\n", utils.FormatClock(e.Current.At), e.Title())
	if e.Media != nil {
		fmt.Printf("        video: %s <%s>\n", e.Media.Video.Title, e.Media.Video.StreamURL())
		if e.Media.Audio != nil {
			fmt.Printf("        audio: %s <%s>\n", e.Media.Audio.Title, e.Media.Audio.AudioURL)
		}
	} else if e.MediaErr != nil {
		fmt.Printf("        media unavailable: %v\n", e.MediaErr)
	}
	if e.Next != nil {
		fmt.Printf("        up next: %s\n", cli.FormatSlot(*e.Next))
	}
}
