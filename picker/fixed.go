package picker

import (
	"fmt"
	"github.com/switchyard/controller/model"
)

const (
	OnAirTrue   = "true"
	OnAirFalse  = "false"
	OnAirToggle = "toggle"
)

func OnAir() Option {
	return dropdown(OptOnAir, "On Air", OnAirTrue, []Choice{
		{ID: OnAirTrue, Label: "On Air"},
		{ID: OnAirFalse, Label: "Off"},
		{ID: OnAirToggle, Label: "Toggle"},
	})
}

const (
	MacroRun         = "run"
	MacroRunContinue = "runContinue"
)

func MacroRunMode() Option {
	return dropdown(OptMacroAction, "Action", MacroRun, []Choice{
		{ID: MacroRun, Label: "Run"},
		{ID: MacroRunContinue, Label: "Run/Continue"},
	})
}

type TransitionStyle int

const (
	StyleMix TransitionStyle = iota
	StyleDip
	StyleWipe
	StyleDVE
	StyleStinger
)

var transitionStyleLabels = []string{
	StyleMix:     "Mix",
	StyleDip:     "Dip",
	StyleWipe:    "Wipe",
	StyleDVE:     "DVE",
	StyleStinger: "Stinger",
}

func (s TransitionStyle) String() string {
	if s >= 0 && int(s) < len(transitionStyleLabels) {
		return transitionStyleLabels[s]
	}

	return fmt.Sprintf("TransitionStyle(%d)", int(s))
}

// TransitionStyles returns the style selector. Stinger transitions have no rate, so the
// rate action asks for the selector without it.
func TransitionStyles(includeStinger bool) Option {
	var choices []Choice

	for s := StyleMix; s <= StyleStinger; s++ {
		if s == StyleStinger && !includeStinger {
			continue
		}

		choices = append(choices, Choice{ID: int(s), Label: s.String()})
	}

	return dropdown(OptStyle, "Transition Style", int(StyleMix), choices)
}

const (
	MinimumTransitionRate = 1
	MaximumTransitionRate = 250
	DefaultTransitionRate = 25
)

func TransitionRate() Option {
	return number(OptRate, "Transition Rate", MinimumTransitionRate, MaximumTransitionRate, DefaultTransitionRate)
}

// TransitionSelection expands into a background checkbox and one checkbox per upstream
// keyer of the model.
func TransitionSelection(spec model.Spec) []Option {
	options := []Option{checkbox(OptBackground, "Background", true)}

	for i := 0; i < spec.UpstreamKeyers; i++ {
		options = append(options, checkbox(KeyOption(i), fmt.Sprintf("Key %d", i+1), false))
	}

	return options
}

// SuperSourceProperties returns the box geometry options, in the device's integer units.
func SuperSourceProperties() []Option {
	return []Option{
		number(OptSize, "Size", 70, 1000, 500),
		number(OptX, "X", -4800, 4800, 0),
		number(OptY, "Y", -2700, 2700, 0),
		checkbox(OptCropEnable, "Crop Enable", false),
		number(OptCropTop, "Crop Top", 0, 18000, 0),
		number(OptCropBottom, "Crop Bottom", 0, 18000, 0),
		number(OptCropLeft, "Crop Left", 0, 32000, 0),
		number(OptCropRight, "Crop Right", 0, 32000, 0),
	}
}
