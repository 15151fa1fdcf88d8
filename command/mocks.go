package command

import (
	"context"
	"github.com/stretchr/testify/mock"
	"sync"
)

var _ Issuer = (*MockIssuer)(nil)

type MockIssuer struct {
	mock.Mock
}

func (m *MockIssuer) Issue(ctx context.Context, c Command) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

var _ Issuer = (*Recorder)(nil)

// Recorder is an Issuer that keeps every command it is handed.
type Recorder struct {
	lock     sync.Mutex
	commands []Command
}

func (r *Recorder) Issue(_ context.Context, c Command) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.commands = append(r.commands, c)
	return nil
}

func (r *Recorder) Commands() []Command {
	r.lock.Lock()
	defer r.lock.Unlock()

	out := make([]Command, len(r.commands))
	copy(out, r.commands)
	return out
}
