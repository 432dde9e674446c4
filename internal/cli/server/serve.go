package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/reeltok/reeltok/internal/api"
	"github.com/reeltok/reeltok/internal/cli"
	"github.com/reeltok/reeltok/internal/constants"
	"github.com/reeltok/reeltok/internal/logger"
	"github.com/reeltok/reeltok/internal/playback"
	httptransport "github.com/reeltok/reeltok/internal/transport/http"
)

type ServeCmd struct {
	Addr  string `help:"Listen address." default:"${serve_addr}" env:"REELTOK_ADDR"`
	Watch bool   `help:"Also run the playback watcher so transitions are logged and counted." negatable:"" default:"true"`
}

// NewMux wires the JSON API onto a fresh mux.
func NewMux(ctx *cli.Context) http.Handler {
	mux := http.NewServeMux()
	api.NewHandler(ctx.Resolver, ctx.Clock, ctx.Selector(), ctx.Store).RegisterRoutes(mux)
	return httptransport.LogRequests(mux)
}

func (cmd *ServeCmd) Run(ctx *cli.Context) error {
	runCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cmd.Watch {
		watcher := playback.NewWatcher(playback.Config{
			Resolver: ctx.Resolver,
			Clock:    ctx.Clock,
			Selector: ctx.Selector(),
			Interval: time.Duration(ctx.Settings.RefreshIntervalSec) * time.Second,
		})
		go func() {
			if err := watcher.Run(runCtx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("Playback watcher stopped", "error", err)
			}
		}()
	}

	srv := httptransport.NewServer(httptransport.DefaultServerConfig(cmd.Addr), NewMux(ctx))
	fmt.Printf("Serving reeltok API on http://%s (Ctrl+C to stop)\n", srv.Addr)
	if err := httptransport.ListenAndServe(runCtx, srv, constants.ServerShutdownGrace); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
