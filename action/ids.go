package action

import (
	"fmt"
)

// ID enumerates every action the controller knows about, whether or not the connected
// model supports it.
type ID int

const (
	Program ID = iota
	Preview
	Cut
	Auto
	Aux
	UpstreamKeyerSource
	UpstreamKeyerOnAir
	DownstreamKeyerSource
	DownstreamKeyerOnAir
	DownstreamKeyerAuto
	MacroRun
	MacroContinue
	MacroStop
	MultiviewerWindowSource
	SuperSourceBoxSource
	SuperSourceBoxOnAir
	SuperSourceBoxProperties
	TransitionStyle
	TransitionSelection
	TransitionRate
	MediaPlayerSource

	idCount
)

var idNames = [...]string{
	Program:                  "program",
	Preview:                  "preview",
	Cut:                      "cut",
	Auto:                     "auto",
	Aux:                      "aux",
	UpstreamKeyerSource:      "uskSource",
	UpstreamKeyerOnAir:       "usk",
	DownstreamKeyerSource:    "dskSource",
	DownstreamKeyerOnAir:     "dsk",
	DownstreamKeyerAuto:      "dskAuto",
	MacroRun:                 "macrorun",
	MacroContinue:            "macrocontinue",
	MacroStop:                "macrostop",
	MultiviewerWindowSource:  "setMvSource",
	SuperSourceBoxSource:     "setSsrcBoxSource",
	SuperSourceBoxOnAir:      "setSsrcBoxEnable",
	SuperSourceBoxProperties: "setSsrcBoxProperties",
	TransitionStyle:          "transitionStyle",
	TransitionSelection:      "transitionSelection",
	TransitionRate:           "transitionRate",
	MediaPlayerSource:        "mediaPlayerSource",
}

var _ = [1]struct{}{}[len(idNames)-int(idCount)]

func (id ID) Valid() bool {
	return id >= 0 && id < idCount
}

func (id ID) String() string {
	if !id.Valid() {
		return fmt.Sprintf("ID(%d)", int(id))
	}

	return idNames[id]
}

func (id ID) MarshalText() ([]byte, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: action %d", ErrInternalConsistency, int(id))
	}

	return []byte(idNames[id]), nil
}

// ParseID maps a host supplied action identifier onto an ID.
func ParseID(name string) (ID, error) {
	for id, n := range idNames {
		if n == name {
			return ID(id), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown action %q", ErrInternalConsistency, name)
}

// IDs returns every known action identifier in enumeration order.
func IDs() []ID {
	ids := make([]ID, 0, idCount)
	for id := ID(0); id < idCount; id++ {
		ids = append(ids, id)
	}
	return ids
}
