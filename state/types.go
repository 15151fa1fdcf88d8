package state

// Snapshot is the read side of the device state. Every lookup is a single consistent
// read; callers may rely on the values returned not changing underneath them.
type Snapshot interface {
	Input(id int) (InputProperties, bool)
	Inputs() []InputProperties

	UpstreamKeyer(mixEffect int, keyer int) (UpstreamKeyer, bool)
	DownstreamKeyer(keyer int) (DownstreamKeyer, bool)
	SuperSourceBox(bank int, box int) (SuperSourceBox, bool)

	Macro() MacroStatus
	MacroProperties(index int) (MacroProperties, bool)

	MediaStill(index int) (MediaItem, bool)
	MediaClip(index int) (MediaItem, bool)
}

type InputProperties struct {
	ID        int    `json:"id"`
	ShortName string `json:"shortName"`
	LongName  string `json:"longName"`
}

type UpstreamKeyer struct {
	OnAir      bool `json:"onAir"`
	FillSource int  `json:"fillSource"`
	CutSource  int  `json:"cutSource"`
}

type DownstreamKeyer struct {
	OnAir        bool `json:"onAir"`
	InTransition bool `json:"inTransition"`
	FillSource   int  `json:"fillSource"`
	CutSource    int  `json:"cutSource"`
}

type SuperSourceBox struct {
	Enabled    bool `json:"enabled"`
	Source     int  `json:"source"`
	Size       int  `json:"size"`
	X          int  `json:"x"`
	Y          int  `json:"y"`
	Cropped    bool `json:"cropped"`
	CropTop    int  `json:"cropTop"`
	CropBottom int  `json:"cropBottom"`
	CropLeft   int  `json:"cropLeft"`
	CropRight  int  `json:"cropRight"`
}

type MacroPlayer struct {
	Index     int  `json:"macroIndex"`
	IsRunning bool `json:"isRunning"`
	IsWaiting bool `json:"isWaiting"`
	Loop      bool `json:"loop"`
}

type MacroRecorder struct {
	Index       int  `json:"macroIndex"`
	IsRecording bool `json:"isRecording"`
}

type MacroStatus struct {
	Player   MacroPlayer
	Recorder MacroRecorder
}

type MacroProperties struct {
	Name   string `json:"name"`
	IsUsed bool   `json:"isUsed"`
}

type MediaItem struct {
	Name   string `json:"name"`
	IsUsed bool   `json:"isUsed"`
}

// Events published by the Store when the device reports a change.

type InputUpdate struct {
	Input InputProperties
}

type UpstreamKeyerUpdate struct {
	MixEffect int
	Keyer     int
	State     UpstreamKeyer
}

type DownstreamKeyerUpdate struct {
	Keyer int
	State DownstreamKeyer
}

type SuperSourceBoxUpdate struct {
	Bank  int
	Box   int
	State SuperSourceBox
}

type MacroStatusUpdate struct {
	Status MacroStatus
}

type MacroPropertiesUpdate struct {
	Index      int
	Properties MacroProperties
}

type MediaKind string

const (
	MediaStill MediaKind = "still"
	MediaClip  MediaKind = "clip"
)

type MediaUpdate struct {
	Kind  MediaKind
	Index int
	Item  MediaItem
}

// Reset is published when the store is cleared, typically on device reconnection.
type Reset struct{}

// AffectsNaming reports whether an event changes labels used when building option
// choices, as opposed to live state only consulted at dispatch time.
func AffectsNaming(e any) bool {
	switch e.(type) {
	case InputUpdate, MacroPropertiesUpdate, MediaUpdate, Reset:
		return true
	}

	return false
}
