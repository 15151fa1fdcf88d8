package offline

import (
	"context"
	"github.com/shimmeringbee/logwrap"
	"github.com/switchyard/controller/command"
	"github.com/switchyard/controller/gateway"
	"github.com/switchyard/controller/model"
	"github.com/switchyard/controller/state"
)

var _ gateway.Gateway = (*Gateway)(nil)

// Gateway serves a fixed model with no device attached, so actions can be configured
// ahead of time. Commands are logged and dropped.
type Gateway struct {
	spec   model.Spec
	store  *state.Store
	logger logwrap.Logger
}

func New(spec model.Spec, store *state.Store, l logwrap.Logger) *Gateway {
	return &Gateway{spec: spec, store: store, logger: l}
}

func (g *Gateway) Model() model.Spec {
	return g.spec
}

func (g *Gateway) Snapshot() state.Snapshot {
	return g.store
}

func (g *Gateway) Issue(ctx context.Context, c command.Command) error {
	g.logger.LogInfo(ctx, "Offline, command not sent.", logwrap.Datum("command", string(c.Name)), logwrap.Datum("target", c.Target), logwrap.Datum("params", c.Params))
	return nil
}

func (g *Gateway) Start(ctx context.Context) error {
	g.logger.LogInfo(ctx, "Offline gateway started.", logwrap.Datum("model", g.spec.Label))
	return nil
}

func (g *Gateway) Stop(context.Context) error {
	return nil
}
