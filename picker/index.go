package picker

import (
	"fmt"
	"github.com/switchyard/controller/model"
	"strconv"
)

func itoa(i int) string {
	return strconv.Itoa(i)
}

func MixEffect(spec model.Spec) Option {
	return dropdown(OptMixEffect, "M/E", 0, indexed(spec.MixEffects, func(n int) string {
		return fmt.Sprintf("M/E %d", n)
	}))
}

func Aux(spec model.Spec) Option {
	return dropdown(OptAux, "AUX", 0, indexed(spec.Auxes, itoa))
}

func UpstreamKeyer(spec model.Spec) Option {
	return dropdown(OptKey, "Key", 0, indexed(spec.UpstreamKeyers, itoa))
}

func DownstreamKeyer(spec model.Spec) Option {
	return dropdown(OptKey, "DSK", 0, indexed(spec.DownstreamKeyers, itoa))
}

// DownstreamKeyerID is the downstream keyer selector used by the auto transition action.
func DownstreamKeyerID(spec model.Spec) Option {
	return dropdown(OptDownstreamKeyerID, "DSK", 0, indexed(spec.DownstreamKeyers, func(n int) string {
		return fmt.Sprintf("DSK %d", n)
	}))
}

func Multiviewer(spec model.Spec) Option {
	return dropdown(OptMultiviewer, "MV", 0, indexed(spec.Multiviewers, func(n int) string {
		return fmt.Sprintf("MV %d", n)
	}))
}

// Windows 1 and 2 of a multiviewer are fixed to preview and program.
const (
	FirstRoutableWindow = 2
	MultiviewerWindows  = 10
)

func MultiviewerWindow(model.Spec) Option {
	var choices []Choice

	for i := FirstRoutableWindow; i < MultiviewerWindows; i++ {
		choices = append(choices, Choice{ID: i, Label: fmt.Sprintf("Window %d", i+1)})
	}

	return dropdown(OptWindow, "Window #", FirstRoutableWindow, choices)
}

// SuperSourceBank returns the bank selector, which only exists when the model has more
// than one super source bank.
func SuperSourceBank(spec model.Spec) (Option, bool) {
	if spec.SuperSources <= 1 {
		return Option{}, false
	}

	return dropdown(OptSuperSource, "Super Source", 0, indexed(spec.SuperSources, itoa)), true
}

func SuperSourceBox(spec model.Spec) Option {
	return dropdown(OptBox, "Box #", 0, indexed(spec.SuperSourceBoxes, itoa))
}

func MediaPlayer(spec model.Spec) Option {
	return dropdown(OptMediaPlayer, "Media Player", 0, indexed(spec.Media.Players, func(n int) string {
		return fmt.Sprintf("Media Player %d", n)
	}))
}
