package picker

type Kind string

const (
	Dropdown Kind = "dropdown"
	Number   Kind = "number"
	Checkbox Kind = "checkbox"
)

type Choice struct {
	ID    any    `json:"id"`
	Label string `json:"label"`
}

// Option describes a single action option and the values it may take.
type Option struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Kind    Kind     `json:"type"`
	Default any      `json:"default"`
	Choices []Choice `json:"choices,omitempty"`

	Min  int `json:"min,omitempty"`
	Max  int `json:"max,omitempty"`
	Step int `json:"step,omitempty"`
}

// Option identifiers, shared with the dispatcher.
const (
	OptMixEffect         = "mixeffect"
	OptInput             = "input"
	OptAux               = "aux"
	OptKey               = "key"
	OptFill              = "fill"
	OptCut               = "cut"
	OptOnAir             = "onair"
	OptDownstreamKeyerID = "downstreamKeyerId"
	OptMacro             = "macro"
	OptMacroAction       = "action"
	OptMultiviewer       = "multiViewerId"
	OptWindow            = "windowIndex"
	OptSource            = "source"
	OptSuperSource       = "ssrcId"
	OptBox               = "boxIndex"
	OptSize              = "size"
	OptX                 = "x"
	OptY                 = "y"
	OptCropEnable        = "cropEnable"
	OptCropTop           = "cropTop"
	OptCropBottom        = "cropBottom"
	OptCropLeft          = "cropLeft"
	OptCropRight         = "cropRight"
	OptStyle             = "style"
	OptRate              = "rate"
	OptBackground        = "background"
	OptMediaPlayer       = "mediaplayer"
)

// KeyOption returns the identifier of the transition selection checkbox for an upstream
// keyer.
func KeyOption(keyer int) string {
	return "key" + itoa(keyer)
}

func dropdown(id string, label string, def any, choices []Choice) Option {
	return Option{ID: id, Label: label, Kind: Dropdown, Default: def, Choices: choices}
}

func number(id string, label string, min int, max int, def int) Option {
	return Option{ID: id, Label: label, Kind: Number, Default: def, Min: min, Max: max, Step: 1}
}

func checkbox(id string, label string, def bool) Option {
	return Option{ID: id, Label: label, Kind: Checkbox, Default: def}
}

// indexed produces choices 0..count-1 labelled with the 1-based number.
func indexed(count int, format func(n int) string) []Choice {
	choices := make([]Choice, 0, count)

	for i := 0; i < count; i++ {
		choices = append(choices, Choice{ID: i, Label: format(i + 1)})
	}

	return choices
}
