package v1

import (
	"context"
	"encoding/json"
	"github.com/gorilla/websocket"
	"github.com/shimmeringbee/logwrap"
	"github.com/switchyard/controller/state"
	"net/http"
	"time"
)

var wsUpgrader = websocket.Upgrader{}

const (
	WebsocketConnectionEventBufferSize = 16
	WebsocketPingInterval              = 30 * time.Second
	WebsocketPongWait                  = 10 * time.Second
	WebsocketWriteWait                 = 5 * time.Second
)

type eventMapper interface {
	MapEvent(ctx context.Context, e any) ([]any, error)
	InitialEvents(ctx context.Context) ([]any, error)
}

// websocketController streams catalog changes to operator consoles. Each connection first
// receives the catalog of every session, then one message per rebuild.
type websocketController struct {
	eventbus    state.EventSubscriber
	eventMapper eventMapper
	logger      logwrap.Logger
}

func (z *websocketController) serveWebsocket(w http.ResponseWriter, r *http.Request) {
	c, err := wsUpgrader.Upgrade(w, r, nil)
	if err != nil {
		z.logger.LogWarn(r.Context(), "Failed to upgrade websocket connection.", logwrap.Err(err))
		return
	}
	defer c.Close()

	if err := z.handleConnection(r.Context(), c); err != nil {
		z.logger.LogError(r.Context(), "Websocket connection failed.", logwrap.Err(err))
	}
}

func (z *websocketController) handleConnection(ctx context.Context, c *websocket.Conn) error {
	eventsCh := make(chan any, WebsocketConnectionEventBufferSize)
	z.eventbus.Subscribe(eventsCh)
	defer z.eventbus.Unsubscribe(eventsCh)

	initCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	initialEvents, err := z.eventMapper.InitialEvents(initCtx)
	cancel()
	if err != nil {
		return err
	}

	done := make(chan struct{})
	defer close(done)

	go z.serviceOutgoing(ctx, c, initialEvents, eventsCh, done)
	return z.serviceIncoming(ctx, c)
}

func (z *websocketController) send(ctx context.Context, c *websocket.Conn, messages []any) bool {
	for _, m := range messages {
		data, err := json.Marshal(m)
		if err != nil {
			z.logger.LogError(ctx, "Failed to marshal message to websocket.", logwrap.Err(err))
			continue
		}

		c.SetWriteDeadline(time.Now().Add(WebsocketWriteWait))
		if err := c.WriteMessage(websocket.TextMessage, data); err != nil {
			z.logger.LogWarn(ctx, "Failed to send message to websocket.", logwrap.Err(err))
			return false
		}
	}

	return true
}

func (z *websocketController) serviceOutgoing(ctx context.Context, c *websocket.Conn, initial []any, ch chan any, done chan struct{}) {
	if !z.send(ctx, c, initial) {
		return
	}

	ping := time.NewTicker(WebsocketPingInterval)
	defer ping.Stop()

	for {
		select {
		case event := <-ch:
			mapCtx, cancel := context.WithTimeout(ctx, 100*time.Millisecond)
			messages, err := z.eventMapper.MapEvent(mapCtx, event)
			cancel()

			if err != nil {
				z.logger.LogDebug(ctx, "Event not sent to websocket.", logwrap.Err(err))
				continue
			}

			if !z.send(ctx, c, messages) {
				return
			}
		case <-ping.C:
			if err := c.WriteControl(websocket.PingMessage, nil, time.Now().Add(WebsocketWriteWait)); err != nil {
				z.logger.LogDebug(ctx, "Failed to ping websocket.", logwrap.Err(err))
				return
			}
		case <-done:
			return
		}
	}
}

// serviceIncoming discards client messages, returning when the connection closes or a pong
// is overdue.
func (z *websocketController) serviceIncoming(ctx context.Context, c *websocket.Conn) error {
	c.SetReadDeadline(time.Now().Add(WebsocketPingInterval + WebsocketPongWait))
	c.SetPongHandler(func(string) error {
		return c.SetReadDeadline(time.Now().Add(WebsocketPingInterval + WebsocketPongWait))
	})

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway, websocket.CloseNoStatusReceived) {
				z.logger.LogDebug(ctx, "Websocket closed.", logwrap.Err(err))
				return nil
			}

			return err
		}
	}
}
