package main

import (
	"context"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/nest"
	"github.com/switchyard/controller/config"
	"github.com/switchyard/controller/gateway"
	gwmqtt "github.com/switchyard/controller/gateway/mqtt"
	"github.com/switchyard/controller/gateway/offline"
	"github.com/switchyard/controller/model"
	"github.com/switchyard/controller/picker"
	"github.com/switchyard/controller/session"
	"github.com/switchyard/controller/state"
)

type StartedGateway struct {
	Name    string
	Gateway gateway.Gateway
	Session *session.Session
}

func loadGatewayConfigurations(dir string) ([]config.GatewayConfig, error) {
	return loadConfigurations(dir, "gateway", func(name string) *config.GatewayConfig {
		return &config.GatewayConfig{Name: name}
	})
}

// startGateways starts a gateway per configuration, each with its own store and session.
// Sessions announce catalog changes on catalogBus.
func startGateways(ctx context.Context, cfgs []config.GatewayConfig, sessions *session.Mux, catalogBus state.EventPublisher, l logwrap.Logger) ([]StartedGateway, error) {
	var started []StartedGateway

	for _, cfg := range cfgs {
		sg, err := startGateway(ctx, cfg, catalogBus, l)
		if err != nil {
			return started, fmt.Errorf("failed to start gateway '%s': %w", cfg.Name, err)
		}

		sessions.Add(sg.Session)
		started = append(started, sg)
	}

	return started, nil
}

func startGateway(ctx context.Context, cfg config.GatewayConfig, catalogBus state.EventPublisher, l logwrap.Logger) (StartedGateway, error) {
	wl := logwrap.New(nest.Wrap(l))
	wl.AddOptionsToLogger(logwrap.Datum("gateway", cfg.Name))

	bus := state.NewEventBus()
	store := state.NewStore(bus)

	var gw gateway.Gateway
	var selection config.DeviceSelection

	switch gwCfg := cfg.Config.(type) {
	case *config.MQTTGatewayConfig:
		spec, err := model.Select(gwCfg.ModelID)
		if err != nil {
			return StartedGateway{}, err
		}

		wl.AddOptionsToLogger(logwrap.Source("mqtt"))
		gw = gwmqtt.New(gwCfg.MQTTConnection, spec, store, bus, wl)
		selection = gwCfg.DeviceSelection
	case *config.OfflineGatewayConfig:
		spec, err := model.Lookup(gwCfg.ModelID)
		if err != nil {
			return StartedGateway{}, fmt.Errorf("offline gateways need a fixed model: %w", err)
		}

		wl.AddOptionsToLogger(logwrap.Source("offline"))
		gw = offline.New(spec, store, wl)
		selection = gwCfg.DeviceSelection
	default:
		return StartedGateway{}, fmt.Errorf("unknown gateway type loaded: %s", cfg.Type)
	}

	style, err := labelStyle(selection.LabelStyle)
	if err != nil {
		return StartedGateway{}, err
	}

	sl := logwrap.New(nest.Wrap(l))
	sl.AddOptionsToLogger(logwrap.Source("session"))
	sl.AddOptionsToLogger(logwrap.Datum("session", cfg.Name))

	sess := session.New(cfg.Name, gw, style, bus, catalogBus, sl)
	sess.Start()

	if err := gw.Start(ctx); err != nil {
		sess.Stop()
		return StartedGateway{}, fmt.Errorf("failed to start gateway: %w", err)
	}

	return StartedGateway{Name: cfg.Name, Gateway: gw, Session: sess}, nil
}

func labelStyle(s string) (picker.LabelStyle, error) {
	switch picker.LabelStyle(s) {
	case "", picker.ShortLabels:
		return picker.ShortLabels, nil
	case picker.LongLabels:
		return picker.LongLabels, nil
	default:
		return "", fmt.Errorf("unknown label style: %s", s)
	}
}
