package system

import (
	"github.com/reeltok/reeltok/internal/cli"
	"github.com/reeltok/reeltok/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	return tui.Run(ctx.Store, ctx.Resolver, ctx.Clock, ctx.Selector())
}
