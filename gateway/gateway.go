package gateway

import (
	"context"
	"github.com/switchyard/controller/command"
	"github.com/switchyard/controller/model"
	"github.com/switchyard/controller/state"
)

// Gateway is the device side of a session. It owns the connection to the device control
// client, keeps the state store up to date and carries commands to the device.
type Gateway interface {
	command.Issuer

	Model() model.Spec
	Snapshot() state.Snapshot

	Start(context.Context) error
	Stop(context.Context) error
}

// ModelChanged is published by a gateway when the device identifies as a different model,
// or first identifies after an automatic model selection.
type ModelChanged struct {
	Model model.Spec
}
