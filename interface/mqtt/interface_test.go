package mqtt

import (
	"context"
	"errors"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/shimmeringbee/logwrap/impl/discard"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/switchyard/controller/action"
	"github.com/switchyard/controller/command"
	"github.com/switchyard/controller/gateway"
	"github.com/switchyard/controller/model"
	"github.com/switchyard/controller/picker"
	"github.com/switchyard/controller/session"
	"github.com/switchyard/controller/state"
	"github.com/tidwall/gjson"
	"testing"
	"time"
)

func testSpec() model.Spec {
	return model.Spec{ID: 99, Label: "Test", Inputs: 4, MixEffects: 1, Macros: 2}
}

func testInterface(t *testing.T) (*Interface, *gateway.MockGateway) {
	t.Helper()

	gw := &gateway.MockGateway{}
	gw.On("Model").Return(testSpec()).Maybe()
	gw.On("Snapshot").Return(state.Snapshot(state.NewStore(nil))).Maybe()

	l := logwrap.New(discard.Discard())

	sessions := session.NewMux()
	sessions.Add(session.New("studio", gw, picker.ShortLabels, nil, nil, l))

	return &Interface{Sessions: sessions, Logger: l, EventSubscriber: state.NewEventBus()}, gw
}

func TestInterface_IncomingMessage(t *testing.T) {
	t.Run("invokes the action with the payload options and publishes the result", func(t *testing.T) {
		i, gw := testInterface(t)
		defer gw.AssertExpectations(t)

		m := &MockPublisher{}
		defer m.AssertExpectations(t)
		require.NoError(t, i.Connected(context.Background(), m.Publish))

		gw.On("Issue", mock.Anything, command.Command{
			Name:   command.SetPreviewSource,
			Target: command.Target{command.MixEffect: 0},
			Params: command.Source{Source: 2},
		}).Return(nil).Once()

		m.On("Publish", mock.Anything, "sessions/studio/actions/preview/result", []byte(`{"success":true}`)).Return(nil).Once()

		err := i.IncomingMessage(context.Background(), "sessions/studio/actions/preview/invoke", []byte(`{"mixeffect":0,"input":2}`))
		assert.NoError(t, err)
	})

	t.Run("treats an empty payload as no options", func(t *testing.T) {
		i, gw := testInterface(t)
		defer gw.AssertExpectations(t)

		gw.On("Issue", mock.Anything, mock.MatchedBy(func(c command.Command) bool { return c.Name == command.StopMacro })).Return(nil).Once()

		err := i.IncomingMessage(context.Background(), "sessions/studio/actions/macrostop/invoke", nil)
		assert.NoError(t, err)
	})

	t.Run("rejects payloads that are not JSON objects", func(t *testing.T) {
		i, gw := testInterface(t)

		m := &MockPublisher{}
		defer m.AssertExpectations(t)
		require.NoError(t, i.Connected(context.Background(), m.Publish))

		m.On("Publish", mock.Anything, "sessions/studio/actions/cut/result", mock.Anything).Return(nil).Twice()

		for _, payload := range []string{`[1,2]`, `{"mixeffect":`} {
			err := i.IncomingMessage(context.Background(), "sessions/studio/actions/cut/invoke", []byte(payload))
			assert.ErrorIs(t, err, InvalidPayload, payload)
		}

		gw.AssertNotCalled(t, "Issue", mock.Anything, mock.Anything)
	})

	t.Run("publishes failures of known actions", func(t *testing.T) {
		i, gw := testInterface(t)
		defer gw.AssertExpectations(t)

		m := &MockPublisher{}
		defer m.AssertExpectations(t)
		require.NoError(t, i.Connected(context.Background(), m.Publish))

		gw.On("Issue", mock.Anything, mock.Anything).Return(errors.New("not connected")).Once()
		m.On("Publish", mock.Anything, "sessions/studio/actions/cut/result", mock.MatchedBy(func(p []byte) bool {
			return !gjson.GetBytes(p, "success").Bool() && gjson.GetBytes(p, "reason").String() == ReasonIssue
		})).Return(nil).Once()

		err := i.IncomingMessage(context.Background(), "sessions/studio/actions/cut/invoke", []byte(`{"mixeffect":0}`))
		assert.Error(t, err)
	})

	t.Run("does not publish results for unknown actions", func(t *testing.T) {
		i, _ := testInterface(t)

		m := &MockPublisher{}
		defer m.AssertExpectations(t)
		require.NoError(t, i.Connected(context.Background(), m.Publish))

		err := i.IncomingMessage(context.Background(), "sessions/studio/actions/fadeToBlack/invoke", nil)
		assert.ErrorIs(t, err, action.ErrInternalConsistency)
	})

	t.Run("errors for unknown sessions and topics", func(t *testing.T) {
		i, _ := testInterface(t)

		assert.ErrorIs(t, i.IncomingMessage(context.Background(), "sessions/gallery/actions/cut/invoke", nil), UnknownSession)
		assert.ErrorIs(t, i.IncomingMessage(context.Background(), "sessions/studio/actions", nil), UnknownTopic)
		assert.ErrorIs(t, i.IncomingMessage(context.Background(), "devices/one", nil), UnknownTopic)
	})
}

func TestInterface_Connected(t *testing.T) {
	t.Run("publisher is set correctly", func(t *testing.T) {
		i, _ := testInterface(t)

		m := &MockPublisher{}
		defer m.AssertExpectations(t)

		err := i.Connected(context.Background(), m.Publish)
		assert.NoError(t, err)

		assert.NotNil(t, i.currentPublisher())
	})

	t.Run("publishes catalogs if set to publish on connect", func(t *testing.T) {
		i, _ := testInterface(t)
		i.PublishCatalogOnConnect = true
		i.PublishIndividualActions = true

		m := &MockPublisher{}
		defer m.AssertExpectations(t)

		m.On("Publish", mock.Anything, "sessions/studio/model", mock.Anything).Return(nil).Once()
		m.On("Publish", mock.Anything, "sessions/studio/actions", mock.Anything).Return(nil).Once()
		m.On("Publish", mock.Anything, "sessions/studio/actions/macrostop", []byte(`{"id":"macrostop","label":"Stop MACROS","options":[]}`)).Return(nil).Once()
		m.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(nil)

		err := i.Connected(context.Background(), m.Publish)
		assert.NoError(t, err)

		time.Sleep(50 * time.Millisecond)
	})
}

func TestInterface_Disconnected(t *testing.T) {
	t.Run("discards publishes after disconnection", func(t *testing.T) {
		i, _ := testInterface(t)

		m := &MockPublisher{}
		defer m.AssertExpectations(t)
		require.NoError(t, i.Connected(context.Background(), m.Publish))

		i.Disconnected()

		assert.NoError(t, i.publishJSON(context.Background(), "sessions/studio/model", testSpec()))
	})
}

func TestInterface_Start(t *testing.T) {
	t.Run("publishes updated catalogs", func(t *testing.T) {
		i, _ := testInterface(t)

		bus := state.NewEventBus()
		i.EventSubscriber = bus

		m := &MockPublisher{}
		defer m.AssertExpectations(t)
		require.NoError(t, i.Connected(context.Background(), m.Publish))

		m.On("Publish", mock.Anything, "sessions/gallery/model", mock.Anything).Return(nil).Once()
		m.On("Publish", mock.Anything, "sessions/gallery/actions", mock.Anything).Return(nil).Once()

		i.Start()
		defer i.Stop()

		bus.Publish(session.CatalogUpdated{Session: "gallery", Catalog: action.BuildCatalog(testSpec(), nil, picker.ShortLabels)})

		time.Sleep(50 * time.Millisecond)
	})
}

type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, prefix string, payload []byte) error {
	args := m.Called(ctx, prefix, payload)
	return args.Error(0)
}

func Test_resultPayload(t *testing.T) {
	t.Run("reports success alone", func(t *testing.T) {
		payload, err := resultPayload(nil)
		require.NoError(t, err)

		assert.JSONEq(t, `{"success":true}`, string(payload))
	})

	t.Run("classifies failures", func(t *testing.T) {
		expected := map[error]string{
			fmt.Errorf("%w: rate", action.ErrOptionParse): ReasonOption,
			InvalidPayload:                                 ReasonOption,
			session.ErrActionNotAvailable:                  ReasonUnavailable,
			errors.New("broker went away"):                 ReasonIssue,
		}

		for cause, reason := range expected {
			payload, err := resultPayload(cause)
			require.NoError(t, err)

			assert.False(t, gjson.GetBytes(payload, "success").Bool())
			assert.Equal(t, cause.Error(), gjson.GetBytes(payload, "error").String())
			assert.Equal(t, reason, gjson.GetBytes(payload, "reason").String(), cause.Error())
		}
	})
}
