package state

import (
	"sort"
	"sync"
)

var _ Snapshot = (*Store)(nil)

type keyerKey struct {
	mixEffect int
	keyer     int
}

type boxKey struct {
	bank int
	box  int
}

// Store holds the last reported state of a device. It is written by the gateway that
// owns the device connection and read by everything else through Snapshot.
type Store struct {
	lock sync.RWMutex

	inputs           map[int]InputProperties
	upstreamKeyers   map[keyerKey]UpstreamKeyer
	downstreamKeyers map[int]DownstreamKeyer
	superSourceBoxes map[boxKey]SuperSourceBox
	macro            MacroStatus
	macroProperties  map[int]MacroProperties
	mediaStills      map[int]MediaItem
	mediaClips       map[int]MediaItem

	publisher EventPublisher
}

func NewStore(publisher EventPublisher) *Store {
	if publisher == nil {
		publisher = NullEventPublisher
	}

	s := &Store{publisher: publisher}
	s.clear()

	return s
}

func (s *Store) clear() {
	s.inputs = map[int]InputProperties{}
	s.upstreamKeyers = map[keyerKey]UpstreamKeyer{}
	s.downstreamKeyers = map[int]DownstreamKeyer{}
	s.superSourceBoxes = map[boxKey]SuperSourceBox{}
	s.macro = MacroStatus{}
	s.macroProperties = map[int]MacroProperties{}
	s.mediaStills = map[int]MediaItem{}
	s.mediaClips = map[int]MediaItem{}
}

func (s *Store) Reset() {
	s.lock.Lock()
	s.clear()
	s.lock.Unlock()

	s.publisher.Publish(Reset{})
}

func (s *Store) Input(id int) (InputProperties, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	i, found := s.inputs[id]
	return i, found
}

// Inputs returns all reported inputs ordered by id.
func (s *Store) Inputs() []InputProperties {
	s.lock.RLock()
	defer s.lock.RUnlock()

	out := make([]InputProperties, 0, len(s.inputs))
	for _, i := range s.inputs {
		out = append(out, i)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out
}

func (s *Store) UpstreamKeyer(mixEffect int, keyer int) (UpstreamKeyer, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	k, found := s.upstreamKeyers[keyerKey{mixEffect: mixEffect, keyer: keyer}]
	return k, found
}

func (s *Store) DownstreamKeyer(keyer int) (DownstreamKeyer, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	k, found := s.downstreamKeyers[keyer]
	return k, found
}

func (s *Store) SuperSourceBox(bank int, box int) (SuperSourceBox, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	b, found := s.superSourceBoxes[boxKey{bank: bank, box: box}]
	return b, found
}

// Macro returns the player and recorder status from the same instant.
func (s *Store) Macro() MacroStatus {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.macro
}

func (s *Store) MacroProperties(index int) (MacroProperties, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	p, found := s.macroProperties[index]
	return p, found
}

func (s *Store) MediaStill(index int) (MediaItem, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	m, found := s.mediaStills[index]
	return m, found
}

func (s *Store) MediaClip(index int) (MediaItem, bool) {
	s.lock.RLock()
	defer s.lock.RUnlock()

	m, found := s.mediaClips[index]
	return m, found
}

func (s *Store) SetInput(i InputProperties) {
	s.lock.Lock()
	s.inputs[i.ID] = i
	s.lock.Unlock()

	s.publisher.Publish(InputUpdate{Input: i})
}

func (s *Store) SetUpstreamKeyer(mixEffect int, keyer int, k UpstreamKeyer) {
	s.lock.Lock()
	s.upstreamKeyers[keyerKey{mixEffect: mixEffect, keyer: keyer}] = k
	s.lock.Unlock()

	s.publisher.Publish(UpstreamKeyerUpdate{MixEffect: mixEffect, Keyer: keyer, State: k})
}

func (s *Store) SetDownstreamKeyer(keyer int, k DownstreamKeyer) {
	s.lock.Lock()
	s.downstreamKeyers[keyer] = k
	s.lock.Unlock()

	s.publisher.Publish(DownstreamKeyerUpdate{Keyer: keyer, State: k})
}

func (s *Store) SetSuperSourceBox(bank int, box int, b SuperSourceBox) {
	s.lock.Lock()
	s.superSourceBoxes[boxKey{bank: bank, box: box}] = b
	s.lock.Unlock()

	s.publisher.Publish(SuperSourceBoxUpdate{Bank: bank, Box: box, State: b})
}

func (s *Store) SetMacroPlayer(p MacroPlayer) {
	s.lock.Lock()
	s.macro.Player = p
	status := s.macro
	s.lock.Unlock()

	s.publisher.Publish(MacroStatusUpdate{Status: status})
}

func (s *Store) SetMacroRecorder(r MacroRecorder) {
	s.lock.Lock()
	s.macro.Recorder = r
	status := s.macro
	s.lock.Unlock()

	s.publisher.Publish(MacroStatusUpdate{Status: status})
}

func (s *Store) SetMacroProperties(index int, p MacroProperties) {
	s.lock.Lock()
	s.macroProperties[index] = p
	s.lock.Unlock()

	s.publisher.Publish(MacroPropertiesUpdate{Index: index, Properties: p})
}

func (s *Store) SetMedia(kind MediaKind, index int, m MediaItem) {
	s.lock.Lock()
	switch kind {
	case MediaClip:
		s.mediaClips[index] = m
	default:
		kind = MediaStill
		s.mediaStills[index] = m
	}
	s.lock.Unlock()

	s.publisher.Publish(MediaUpdate{Kind: kind, Index: index, Item: m})
}
