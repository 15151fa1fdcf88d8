package v1

import (
	"context"
	"errors"
	"github.com/gorilla/websocket"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/discard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/switchyard/controller/state"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func dialWebsocket(t *testing.T, f http.HandlerFunc) *websocket.Conn {
	t.Helper()

	server := httptest.NewServer(f)
	t.Cleanup(server.Close)

	ws, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(server.URL, "http")+"/", nil)
	require.NoError(t, err)
	t.Cleanup(func() { ws.Close() })

	return ws
}

func readText(t *testing.T, c *websocket.Conn) string {
	t.Helper()

	c.SetReadDeadline(time.Now().Add(250 * time.Millisecond))
	mt, data, err := c.ReadMessage()
	require.NoError(t, err)
	assert.Equal(t, websocket.TextMessage, mt)

	return string(data)
}

func Test_websocketController(t *testing.T) {
	t.Run("sends initial events before streamed ones", func(t *testing.T) {
		eb := state.NewEventBus()

		mem := &mockEventMapper{}
		defer mem.AssertExpectations(t)

		mem.On("InitialEvents", mock.Anything).Return([]any{"catalog"}, nil)
		mem.On("MapEvent", mock.Anything, "rebuilt").Return([]any{"update"}, nil)

		wc := websocketController{eventbus: eb, eventMapper: mem, logger: logwrap.New(discard.Discard())}
		c := dialWebsocket(t, wc.serveWebsocket)

		assert.Equal(t, `"catalog"`, readText(t, c))

		eb.Publish("rebuilt")
		assert.Equal(t, `"update"`, readText(t, c))
	})

	t.Run("skips events the mapper does not handle", func(t *testing.T) {
		eb := state.NewEventBus()

		mem := &mockEventMapper{}
		defer mem.AssertExpectations(t)

		mem.On("InitialEvents", mock.Anything).Return([]any{}, nil)
		mem.On("MapEvent", mock.Anything, "store changed").Return([]any(nil), errors.New("unimplemented map event"))
		mem.On("MapEvent", mock.Anything, "rebuilt").Return([]any{"update"}, nil)

		wc := websocketController{eventbus: eb, eventMapper: mem, logger: logwrap.New(discard.Discard())}
		c := dialWebsocket(t, wc.serveWebsocket)

		require.Eventually(t, func() bool {
			return eb.Subscribers() == 1
		}, time.Second, 10*time.Millisecond)

		eb.Publish("store changed")
		time.Sleep(20 * time.Millisecond)
		eb.Publish("rebuilt")

		assert.Equal(t, `"update"`, readText(t, c))
	})

	t.Run("unsubscribes when the client goes away", func(t *testing.T) {
		eb := state.NewEventBus()

		mem := &mockEventMapper{}
		mem.On("InitialEvents", mock.Anything).Return([]any{}, nil)

		wc := websocketController{eventbus: eb, eventMapper: mem, logger: logwrap.New(discard.Discard())}
		c := dialWebsocket(t, wc.serveWebsocket)

		require.NoError(t, c.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "")))

		assert.Eventually(t, func() bool {
			return eb.Subscribers() == 0
		}, time.Second, 10*time.Millisecond)
	})
}

type mockEventMapper struct {
	mock.Mock
}

func (m *mockEventMapper) MapEvent(ctx context.Context, e any) ([]any, error) {
	args := m.Called(ctx, e)
	return args.Get(0).([]any), args.Error(1)
}

func (m *mockEventMapper) InitialEvents(ctx context.Context) ([]any, error) {
	args := m.Called(ctx)
	return args.Get(0).([]any), args.Error(1)
}
