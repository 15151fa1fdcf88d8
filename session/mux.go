package session

import (
	"slices"
	"sync"
)

type Mapper interface {
	Names() []string
	Session(string) (*Session, bool)
}

var _ Mapper = (*Mux)(nil)

// Mux holds the running sessions keyed by the name of the gateway they were created for.
type Mux struct {
	lock sync.RWMutex

	sessionByName map[string]*Session
}

func NewMux() *Mux {
	return &Mux{sessionByName: map[string]*Session{}}
}

func (m *Mux) Add(s *Session) {
	m.lock.Lock()
	defer m.lock.Unlock()

	m.sessionByName[s.Name()] = s
}

func (m *Mux) Session(name string) (*Session, bool) {
	m.lock.RLock()
	defer m.lock.RUnlock()

	s, found := m.sessionByName[name]
	return s, found
}

// Names returns the session names in lexical order.
func (m *Mux) Names() []string {
	m.lock.RLock()
	defer m.lock.RUnlock()

	names := make([]string, 0, len(m.sessionByName))
	for name := range m.sessionByName {
		names = append(names, name)
	}

	slices.Sort(names)
	return names
}

func (m *Mux) Stop() {
	m.lock.RLock()
	defer m.lock.RUnlock()

	for _, s := range m.sessionByName {
		s.Stop()
	}
}
