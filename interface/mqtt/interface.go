package mqtt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/switchyard/controller/action"
	"github.com/switchyard/controller/session"
	"github.com/switchyard/controller/state"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"strings"
	"sync"
	"time"
)

type Publisher func(ctx context.Context, topic string, payload []byte) error

type mqttError string

func (m mqttError) Error() string {
	return string(m)
}

const UnknownTopic = mqttError("unknown topic")
const UnknownSession = mqttError("unknown session")
const InvalidPayload = mqttError("payload is not a JSON object")

// Interface lets MQTT clients discover the actions of each session and invoke them.
//
// Catalogs are published to sessions/<name>/actions, and the model to sessions/<name>/model.
// Publishing a JSON object of options to sessions/<name>/actions/<action>/invoke runs the
// action; the outcome is published to sessions/<name>/actions/<action>/result.
type Interface struct {
	publisherLock sync.RWMutex
	publisher     Publisher
	stop          chan bool

	Sessions        session.Mapper
	EventSubscriber state.EventSubscriber
	Logger          logwrap.Logger

	PublishCatalogOnConnect  bool
	PublishIndividualActions bool
}

// Result reasons distinguish failures a console can correct from those it cannot.
const (
	ReasonOption      = "option"
	ReasonUnavailable = "unavailable"
	ReasonIssue       = "issue"
)

// resultPayload builds {"success":bool} with "error" and "reason" added on failure.
func resultPayload(err error) ([]byte, error) {
	payload, serr := sjson.SetBytes([]byte(`{}`), "success", err == nil)
	if serr != nil || err == nil {
		return payload, serr
	}

	reason := ReasonIssue
	switch {
	case errors.Is(err, action.ErrOptionParse), errors.Is(err, InvalidPayload):
		reason = ReasonOption
	case errors.Is(err, session.ErrActionNotAvailable):
		reason = ReasonUnavailable
	}

	if payload, serr = sjson.SetBytes(payload, "error", err.Error()); serr != nil {
		return nil, serr
	}

	return sjson.SetBytes(payload, "reason", reason)
}

func (i *Interface) IncomingMessage(ctx context.Context, topic string, payload []byte) error {
	topicParts := strings.Split(topic, "/")

	if len(topicParts) > 0 {
		switch topicParts[0] {
		case "sessions":
			return i.incomingMessageSessions(ctx, topicParts[1:], payload)
		}
	}

	return fmt.Errorf("%w: %s", UnknownTopic, topic)
}

func (i *Interface) incomingMessageSessions(ctx context.Context, topic []string, payload []byte) error {
	if len(topic) == 4 && topic[1] == "actions" && topic[3] == "invoke" {
		sess, found := i.Sessions.Session(topic[0])
		if !found {
			return fmt.Errorf("%w: %s", UnknownSession, topic[0])
		}

		return i.invoke(ctx, sess, topic[2], payload)
	}

	return fmt.Errorf("%w: %s", UnknownTopic, strings.Join(topic, "/"))
}

func (i *Interface) invoke(ctx context.Context, sess *session.Session, name string, payload []byte) error {
	opts, err := parseOptions(payload)
	if err != nil {
		i.publishResult(ctx, sess.Name(), name, err)
		return err
	}

	err = sess.Invoke(ctx, name, opts)
	i.publishResult(ctx, sess.Name(), name, err)

	if err != nil {
		return fmt.Errorf("unable to invoke action on session: %w", err)
	}

	return nil
}

// parseOptions accepts an empty payload as no options.
func parseOptions(payload []byte) (action.Options, error) {
	opts := action.Options{}

	if len(bytes.TrimSpace(payload)) == 0 {
		return opts, nil
	}

	if !gjson.ValidBytes(payload) || !gjson.ParseBytes(payload).IsObject() {
		return nil, InvalidPayload
	}

	decoder := json.NewDecoder(bytes.NewReader(payload))
	decoder.UseNumber()

	if err := decoder.Decode(&opts); err != nil {
		return nil, fmt.Errorf("%w: %v", InvalidPayload, err)
	}

	return opts, nil
}

// publishResult reports the outcome of an invocation, except for action names that do not
// exist, which would otherwise create topics for arbitrary names.
func (i *Interface) publishResult(ctx context.Context, sessionName string, name string, err error) {
	if errors.Is(err, action.ErrInternalConsistency) {
		return
	}

	payload, serr := resultPayload(err)
	if serr != nil {
		i.Logger.LogError(ctx, "Failed to build invocation result.", logwrap.Err(serr))
		return
	}

	topic := fmt.Sprintf("sessions/%s/actions/%s/result", sessionName, name)

	if perr := i.currentPublisher()(ctx, topic, payload); perr != nil {
		i.Logger.LogError(ctx, "Failed to publish invocation result.", logwrap.Datum("topic", topic), logwrap.Err(perr))
	}
}

func EmptyPublisher(ctx context.Context, topic string, payload []byte) error {
	return nil
}

func (i *Interface) currentPublisher() Publisher {
	i.publisherLock.RLock()
	defer i.publisherLock.RUnlock()

	if i.publisher == nil {
		return EmptyPublisher
	}

	return i.publisher
}

func (i *Interface) publishJSON(ctx context.Context, topic string, v any) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}

	if err = i.currentPublisher()(ctx, topic, payload); err != nil {
		return fmt.Errorf("failed to publish data to mqtt: %w", err)
	}

	return nil
}

func (i *Interface) Connected(ctx context.Context, publisher Publisher) error {
	i.publisherLock.Lock()
	i.publisher = publisher
	i.publisherLock.Unlock()

	if i.PublishCatalogOnConnect {
		i.Logger.LogInfo(ctx, "MQTT connected, publishing action catalogs of all sessions.")
		go i.publishAll()
	}

	return nil
}

func (i *Interface) Disconnected() {
	i.publisherLock.Lock()
	defer i.publisherLock.Unlock()

	i.publisher = EmptyPublisher
}

func (i *Interface) publishAll() {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	for _, name := range i.Sessions.Names() {
		if sess, found := i.Sessions.Session(name); found {
			i.publishCatalog(ctx, name, sess.Catalog())
		}
	}
}

func (i *Interface) publishCatalog(ctx context.Context, name string, catalog *action.Catalog) {
	sessionCtx := i.Logger.AddOptionsToContext(ctx, logwrap.Datum("session", name))

	if err := i.publishJSON(sessionCtx, fmt.Sprintf("sessions/%s/model", name), catalog.Model()); err != nil {
		i.Logger.LogError(sessionCtx, "Failed to publish session model.", logwrap.Err(err))
	}

	descriptors := catalog.Descriptors()

	if err := i.publishJSON(sessionCtx, fmt.Sprintf("sessions/%s/actions", name), descriptors); err != nil {
		i.Logger.LogError(sessionCtx, "Failed to publish action catalog.", logwrap.Err(err))
	}

	if !i.PublishIndividualActions {
		return
	}

	for _, d := range descriptors {
		if err := i.publishJSON(sessionCtx, fmt.Sprintf("sessions/%s/actions/%s", name, d.ID), d); err != nil {
			i.Logger.LogError(sessionCtx, "Failed to publish action.", logwrap.Datum("action", d.ID.String()), logwrap.Err(err))
		}
	}
}

func (i *Interface) Start() {
	i.stop = make(chan bool, 1)

	ch := make(chan any, 100)
	i.EventSubscriber.Subscribe(ch)

	go i.handleEvents(ch)
}

func (i *Interface) Stop() {
	if i.stop != nil {
		i.stop <- true
	}
}

func (i *Interface) handleEvents(ch chan any) {
	defer i.EventSubscriber.Unsubscribe(ch)

	for {
		select {
		case event := <-ch:
			i.serviceUpdateOnEvent(event)
		case <-i.stop:
			return
		}
	}
}

const MaximumServiceUpdateTime = 1 * time.Second

func (i *Interface) serviceUpdateOnEvent(e any) {
	ctx, cancel := context.WithTimeout(context.Background(), MaximumServiceUpdateTime)
	defer cancel()

	switch event := e.(type) {
	case session.CatalogUpdated:
		i.publishCatalog(ctx, event.Session, event.Catalog)
	}
}
