package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/switchyard/controller/command"
	"github.com/switchyard/controller/config"
	"github.com/switchyard/controller/gateway"
	"github.com/switchyard/controller/model"
	"github.com/switchyard/controller/mqttclient"
	"github.com/switchyard/controller/state"
	"sync"
)

type Publisher func(ctx context.Context, topic string, payload []byte) error

type mqttError string

func (m mqttError) Error() string {
	return string(m)
}

const (
	ErrNotConnected = mqttError("not connected to device control client")
	ErrUnknownTopic = mqttError("unknown topic")
	ErrBadReport    = mqttError("malformed state report")
)

const commandTopic = "command"

var _ gateway.Gateway = (*Gateway)(nil)

// Gateway bridges a session to a device control client over MQTT. The client publishes
// state reports which are written into the store; commands are published back to it.
type Gateway struct {
	lock      sync.RWMutex
	spec      model.Spec
	publisher Publisher

	autoDetect bool

	store  *state.Store
	events state.EventPublisher
	logger logwrap.Logger

	cfg  config.MQTTConnection
	stop func()
}

func New(cfg config.MQTTConnection, spec model.Spec, store *state.Store, events state.EventPublisher, l logwrap.Logger) *Gateway {
	if events == nil {
		events = state.NullEventPublisher
	}

	return &Gateway{
		spec:       spec,
		autoDetect: spec.ID == model.AutoDetect,
		store:      store,
		events:     events,
		logger:     l,
		cfg:        cfg,
	}
}

func (g *Gateway) Model() model.Spec {
	g.lock.RLock()
	defer g.lock.RUnlock()

	return g.spec
}

func (g *Gateway) Snapshot() state.Snapshot {
	return g.store
}

type commandPayload struct {
	Target command.Target `json:"target,omitempty"`
	Params any            `json:"params,omitempty"`
}

// Issue publishes a command to command/<name>.
func (g *Gateway) Issue(ctx context.Context, c command.Command) error {
	g.lock.RLock()
	publisher := g.publisher
	g.lock.RUnlock()

	if publisher == nil {
		return ErrNotConnected
	}

	payload, err := json.Marshal(commandPayload{Target: c.Target, Params: c.Params})
	if err != nil {
		return fmt.Errorf("failed to marshal command: %w", err)
	}

	if err := publisher(ctx, fmt.Sprintf("%s/%s", commandTopic, c.Name), payload); err != nil {
		return fmt.Errorf("failed to publish command to mqtt: %w", err)
	}

	return nil
}

// Connected is called once subscriptions are in place. Reports from the previous
// connection are discarded; the device control client republishes its state.
func (g *Gateway) Connected(ctx context.Context, publisher Publisher) {
	g.logger.LogInfo(ctx, "Connected to device control client, awaiting state reports.")
	g.store.Reset()

	g.lock.Lock()
	g.publisher = publisher
	g.lock.Unlock()
}

func (g *Gateway) Disconnected() {
	g.lock.Lock()
	g.publisher = nil
	g.lock.Unlock()
}

func (g *Gateway) setModel(spec model.Spec) {
	g.lock.Lock()
	changed := g.spec != spec
	g.spec = spec
	g.lock.Unlock()

	if changed {
		g.events.Publish(gateway.ModelChanged{Model: spec})
	}
}

// Start connects to the broker and subscribes to the state reports under the gateway's
// topic prefix.
func (g *Gateway) Start(ctx context.Context) error {
	client := &mqttclient.Client{
		Connection:   g.cfg,
		Subscription: stateTopic + "/#",
		Logger:       g.logger,
		OnConnect: func(ctx context.Context, publish func(context.Context, string, []byte) error) {
			g.Connected(ctx, publish)
		},
		OnMessage:    g.IncomingMessage,
		OnDisconnect: g.Disconnected,
	}

	if err := client.Start(ctx); err != nil {
		return err
	}

	g.stop = client.Stop
	return nil
}

func (g *Gateway) Stop(context.Context) error {
	if g.stop != nil {
		g.stop()
	}

	g.Disconnected()
	return nil
}
