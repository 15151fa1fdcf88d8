package v1

import (
	"context"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/discard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/switchyard/controller/action"
	"github.com/switchyard/controller/gateway"
	"github.com/switchyard/controller/picker"
	"github.com/switchyard/controller/session"
	"github.com/switchyard/controller/state"
	"testing"
)

func Test_catalogEventMapper(t *testing.T) {
	t.Run("sends the catalog of every session initially", func(t *testing.T) {
		gw := &gateway.MockGateway{}
		gw.On("Model").Return(testSpec())
		gw.On("Snapshot").Return(state.Snapshot(nil))

		sessions := session.NewMux()
		sessions.Add(session.New("studio", gw, picker.ShortLabels, nil, nil, logwrap.New(discard.Discard())))

		events, err := catalogEventMapper{sessions: sessions}.InitialEvents(context.Background())
		require.NoError(t, err)
		require.Len(t, events, 1)

		msg := events[0].(CatalogUpdateMessage)
		assert.Equal(t, CatalogUpdateMessageName, msg.Type)
		assert.Equal(t, "studio", msg.Session)
		assert.Equal(t, testSpec(), msg.Model)
		assert.NotEmpty(t, msg.Actions)
	})

	t.Run("maps catalog updates to a message", func(t *testing.T) {
		catalog := action.BuildCatalog(testSpec(), nil, picker.ShortLabels)

		events, err := catalogEventMapper{sessions: session.NewMux()}.MapEvent(context.Background(), session.CatalogUpdated{Session: "studio", Catalog: catalog})
		require.NoError(t, err)

		assert.Equal(t, []any{CatalogUpdateMessage{
			Message: Message{Type: CatalogUpdateMessageName},
			Session: "studio",
			Model:   testSpec(),
			Actions: catalog.Descriptors(),
		}}, events)
	})

	t.Run("errors on other events", func(t *testing.T) {
		_, err := catalogEventMapper{sessions: session.NewMux()}.MapEvent(context.Background(), "event")
		assert.Error(t, err)
	})
}
