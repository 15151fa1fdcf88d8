package v1

import (
	"context"
	"fmt"
	"github.com/switchyard/controller/action"
	"github.com/switchyard/controller/model"
	"github.com/switchyard/controller/session"
)

var _ eventMapper = (*catalogEventMapper)(nil)

type catalogEventMapper struct {
	sessions session.Mapper
}

const CatalogUpdateMessageName = "CatalogUpdate"

type Message struct {
	Type string
}

type CatalogUpdateMessage struct {
	Message
	Session string
	Model   model.Spec
	Actions []action.Descriptor
}

func (c catalogEventMapper) MapEvent(_ context.Context, v any) ([]any, error) {
	switch e := v.(type) {
	case session.CatalogUpdated:
		return []any{catalogUpdateMessage(e.Session, e.Catalog)}, nil
	}

	return nil, fmt.Errorf("unimplemented map event")
}

func (c catalogEventMapper) InitialEvents(_ context.Context) ([]any, error) {
	var events []any

	for _, name := range c.sessions.Names() {
		if sess, found := c.sessions.Session(name); found {
			events = append(events, catalogUpdateMessage(name, sess.Catalog()))
		}
	}

	return events, nil
}

func catalogUpdateMessage(name string, catalog *action.Catalog) CatalogUpdateMessage {
	return CatalogUpdateMessage{
		Message: Message{Type: CatalogUpdateMessageName},
		Session: name,
		Model:   catalog.Model(),
		Actions: catalog.Descriptors(),
	}
}
