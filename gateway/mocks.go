package gateway

import (
	"context"
	"github.com/stretchr/testify/mock"
	"github.com/switchyard/controller/command"
	"github.com/switchyard/controller/model"
	"github.com/switchyard/controller/state"
)

var _ Gateway = (*MockGateway)(nil)

type MockGateway struct {
	mock.Mock
}

func (m *MockGateway) Issue(ctx context.Context, c command.Command) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockGateway) Model() model.Spec {
	args := m.Called()
	return args.Get(0).(model.Spec)
}

func (m *MockGateway) Snapshot() state.Snapshot {
	args := m.Called()
	return args.Get(0).(state.Snapshot)
}

func (m *MockGateway) Start(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockGateway) Stop(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
