package session

import (
	"context"
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/shimmeringbee/logwrap"
	"github.com/switchyard/controller/action"
	"github.com/switchyard/controller/gateway"
	"github.com/switchyard/controller/picker"
	"github.com/switchyard/controller/state"
	"sync"
	"sync/atomic"
)

// CatalogUpdated is published whenever a session replaces its action catalog.
type CatalogUpdated struct {
	Session string
	Catalog *action.Catalog
}

// Session binds a device gateway to the action catalog built for it. The catalog is
// rebuilt wholesale whenever the model changes or the device reports new names.
type Session struct {
	name    string
	gateway gateway.Gateway
	style   picker.LabelStyle
	logger  logwrap.Logger

	subscriber state.EventSubscriber
	publisher  state.EventPublisher

	catalog atomic.Pointer[action.Catalog]

	events   chan any
	shutdown chan struct{}
	stopOnce sync.Once
}

// New constructs a session. Gateway events are read from subscriber, catalog updates are
// announced on publisher.
func New(name string, gw gateway.Gateway, style picker.LabelStyle, subscriber state.EventSubscriber, publisher state.EventPublisher, l logwrap.Logger) *Session {
	if publisher == nil {
		publisher = state.NullEventPublisher
	}

	s := &Session{
		name:       name,
		gateway:    gw,
		style:      style,
		logger:     l,
		subscriber: subscriber,
		publisher:  publisher,
		events:     make(chan any, 100),
		shutdown:   make(chan struct{}),
	}

	s.catalog.Store(action.BuildCatalog(gw.Model(), gw.Snapshot(), style))

	return s
}

func (s *Session) Name() string {
	return s.name
}

func (s *Session) Catalog() *action.Catalog {
	return s.catalog.Load()
}

func (s *Session) Start() {
	if s.subscriber != nil {
		s.subscriber.Subscribe(s.events)
	}

	go s.run()
}

func (s *Session) Stop() {
	s.stopOnce.Do(func() {
		if s.subscriber != nil {
			s.subscriber.Unsubscribe(s.events)
		}

		close(s.shutdown)
	})
}

func (s *Session) run() {
	for {
		select {
		case e := <-s.events:
			s.handle(e)
		case <-s.shutdown:
			return
		}
	}
}

func (s *Session) handle(e any) {
	switch ev := e.(type) {
	case gateway.ModelChanged:
		s.logger.LogInfo(context.Background(), "Device model changed, rebuilding action catalog.", logwrap.Datum("model", ev.Model.Label))
		s.Rebuild()
	default:
		// A dropped ModelChanged is caught up on by the next event of any kind.
		if state.AffectsNaming(e) || s.gateway.Model() != s.Catalog().Model() {
			s.Rebuild()
		}
	}
}

// Rebuild replaces the catalog with one built from the gateway's current model and
// snapshot.
func (s *Session) Rebuild() {
	catalog := action.BuildCatalog(s.gateway.Model(), s.gateway.Snapshot(), s.style)
	s.catalog.Store(catalog)

	s.publisher.Publish(CatalogUpdated{Session: s.name, Catalog: catalog})
}

// Invoke resolves the named action against the current catalog and snapshot, then issues
// the resulting commands in order. A failure to issue one command does not prevent the
// remaining commands being attempted, nor undo those already issued.
func (s *Session) Invoke(ctx context.Context, name string, opts action.Options) error {
	ctx = s.logger.AddOptionsToContext(ctx, logwrap.Datum("action", name), logwrap.Datum("invocation", uuid.New().String()))

	id, err := action.ParseID(name)
	if err != nil {
		s.logger.LogError(ctx, "Requested action is not known to the dispatcher.", logwrap.Err(err))
		return err
	}

	catalog := s.Catalog()
	if !catalog.Has(id) {
		s.logger.LogWarn(ctx, "Requested action is not available on this model.", logwrap.Datum("model", catalog.Model().Label))
		return fmt.Errorf("%w: %s", ErrActionNotAvailable, name)
	}

	cmds, err := action.Dispatch(id, opts, catalog.Model(), s.gateway.Snapshot())
	if err != nil {
		if errors.Is(err, action.ErrOptionParse) {
			s.logger.LogWarn(ctx, "Failed to parse action options.", logwrap.Err(err))
		} else {
			s.logger.LogError(ctx, "Failed to resolve action.", logwrap.Err(err))
		}
		return err
	}

	s.logger.LogDebug(ctx, "Action resolved.", logwrap.Datum("commandCount", len(cmds)))

	var issueErr error

	for _, c := range cmds {
		if err := s.gateway.Issue(ctx, c); err != nil {
			s.logger.LogError(ctx, "Failed to issue command.", logwrap.Datum("command", string(c.Name)), logwrap.Err(err))

			if issueErr == nil {
				issueErr = fmt.Errorf("failed to issue command %s: %w", c.Name, err)
			}
		}
	}

	return issueErr
}
