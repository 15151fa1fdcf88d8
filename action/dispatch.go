package action

import (
	"fmt"
	"github.com/switchyard/controller/command"
	"github.com/switchyard/controller/model"
	"github.com/switchyard/controller/picker"
	"github.com/switchyard/controller/state"
)

type resolver func(Options, model.Spec, state.Snapshot) ([]command.Command, error)

var resolvers = [...]resolver{
	Program:                  resolveProgram,
	Preview:                  resolvePreview,
	Cut:                      resolveCut,
	Auto:                     resolveAuto,
	Aux:                      resolveAux,
	UpstreamKeyerSource:      resolveUpstreamKeyerSource,
	UpstreamKeyerOnAir:       resolveUpstreamKeyerOnAir,
	DownstreamKeyerSource:    resolveDownstreamKeyerSource,
	DownstreamKeyerOnAir:     resolveDownstreamKeyerOnAir,
	DownstreamKeyerAuto:      resolveDownstreamKeyerAuto,
	MacroRun:                 resolveMacroRun,
	MacroContinue:            resolveMacroContinue,
	MacroStop:                resolveMacroStop,
	MultiviewerWindowSource:  resolveMultiviewerWindowSource,
	SuperSourceBoxSource:     resolveSuperSourceBoxSource,
	SuperSourceBoxOnAir:      resolveSuperSourceBoxOnAir,
	SuperSourceBoxProperties: resolveSuperSourceBoxProperties,
	TransitionStyle:          resolveTransitionStyle,
	TransitionSelection:      resolveTransitionSelection,
	TransitionRate:           resolveTransitionRate,
	MediaPlayerSource:        resolveMediaPlayerSource,
}

var _ = [1]struct{}{}[len(resolvers)-int(idCount)]

// Dispatch resolves an action and its options into the commands that carry it out. Every
// option is parsed before any command is produced, so a parse failure yields no commands.
// Toggles read the snapshot once at the time of the call.
func Dispatch(id ID, opts Options, spec model.Spec, snapshot state.Snapshot) ([]command.Command, error) {
	if !id.Valid() {
		return nil, fmt.Errorf("%w: no resolver for action %d", ErrInternalConsistency, int(id))
	}

	return resolvers[id](opts, spec, snapshot)
}

func ints(opts Options, keys ...string) ([]int, error) {
	out := make([]int, len(keys))

	for i, key := range keys {
		v, err := opts.Int(key)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}

	return out, nil
}

func single(name command.Name, target command.Target, params any) []command.Command {
	return []command.Command{{Name: name, Target: target, Params: params}}
}

func mixEffectTarget(me int) command.Target {
	return command.Target{command.MixEffect: me}
}

func resolveMixEffectSource(name command.Name, opts Options) ([]command.Command, error) {
	v, err := ints(opts, picker.OptMixEffect, picker.OptInput)
	if err != nil {
		return nil, err
	}

	return single(name, mixEffectTarget(v[0]), command.Source{Source: v[1]}), nil
}

func resolveProgram(opts Options, _ model.Spec, _ state.Snapshot) ([]command.Command, error) {
	return resolveMixEffectSource(command.SetProgramSource, opts)
}

func resolvePreview(opts Options, _ model.Spec, _ state.Snapshot) ([]command.Command, error) {
	return resolveMixEffectSource(command.SetPreviewSource, opts)
}

func resolveMixEffectOperation(name command.Name, opts Options) ([]command.Command, error) {
	me, err := opts.Int(picker.OptMixEffect)
	if err != nil {
		return nil, err
	}

	return single(name, mixEffectTarget(me), nil), nil
}

func resolveCut(opts Options, _ model.Spec, _ state.Snapshot) ([]command.Command, error) {
	return resolveMixEffectOperation(command.Cut, opts)
}

func resolveAuto(opts Options, _ model.Spec, _ state.Snapshot) ([]command.Command, error) {
	return resolveMixEffectOperation(command.AutoTransition, opts)
}

func resolveAux(opts Options, _ model.Spec, _ state.Snapshot) ([]command.Command, error) {
	v, err := ints(opts, picker.OptAux, picker.OptInput)
	if err != nil {
		return nil, err
	}

	return single(command.SetAuxSource, command.Target{command.Aux: v[0]}, command.Source{Source: v[1]}), nil
}

// fillAndCut produces the fill command followed by the cut command. The pair is not
// atomic; the device may briefly run with the new fill and the old cut.
func fillAndCut(fill command.Name, cut command.Name, target command.Target, opts Options) ([]command.Command, error) {
	v, err := ints(opts, picker.OptFill, picker.OptCut)
	if err != nil {
		return nil, err
	}

	return []command.Command{
		{Name: fill, Target: target, Params: command.Source{Source: v[0]}},
		{Name: cut, Target: target, Params: command.Source{Source: v[1]}},
	}, nil
}

func resolveUpstreamKeyerSource(opts Options, _ model.Spec, _ state.Snapshot) ([]command.Command, error) {
	v, err := ints(opts, picker.OptMixEffect, picker.OptKey)
	if err != nil {
		return nil, err
	}

	target := command.Target{command.MixEffect: v[0], command.Keyer: v[1]}
	return fillAndCut(command.SetKeyerFillSource, command.SetKeyerCutSource, target, opts)
}

func resolveUpstreamKeyerOnAir(opts Options, _ model.Spec, snapshot state.Snapshot) ([]command.Command, error) {
	mode, err := opts.onAir()
	if err != nil {
		return nil, err
	}

	v, err := ints(opts, picker.OptMixEffect, picker.OptKey)
	if err != nil {
		return nil, err
	}

	var current bool
	if mode == onAirToggle && snapshot != nil {
		keyer, _ := snapshot.UpstreamKeyer(v[0], v[1])
		current = keyer.OnAir
	}

	target := command.Target{command.MixEffect: v[0], command.Keyer: v[1]}
	return single(command.SetKeyerOnAir, target, command.OnAir{OnAir: mode.resolve(current)}), nil
}

func resolveDownstreamKeyerSource(opts Options, _ model.Spec, _ state.Snapshot) ([]command.Command, error) {
	key, err := opts.Int(picker.OptKey)
	if err != nil {
		return nil, err
	}

	target := command.Target{command.DownstreamKeyer: key}
	return fillAndCut(command.SetDownstreamKeyerFillSource, command.SetDownstreamKeyerCutSource, target, opts)
}

func resolveDownstreamKeyerOnAir(opts Options, _ model.Spec, snapshot state.Snapshot) ([]command.Command, error) {
	mode, err := opts.onAir()
	if err != nil {
		return nil, err
	}

	key, err := opts.Int(picker.OptKey)
	if err != nil {
		return nil, err
	}

	var current bool
	if mode == onAirToggle && snapshot != nil {
		keyer, _ := snapshot.DownstreamKeyer(key)
		current = keyer.OnAir
	}

	target := command.Target{command.DownstreamKeyer: key}
	return single(command.SetDownstreamKeyerOnAir, target, command.OnAir{OnAir: mode.resolve(current)}), nil
}

func resolveDownstreamKeyerAuto(opts Options, _ model.Spec, _ state.Snapshot) ([]command.Command, error) {
	key, err := opts.Int(picker.OptDownstreamKeyerID)
	if err != nil {
		return nil, err
	}

	return single(command.AutoDownstreamTransition, command.Target{command.DownstreamKeyer: key}, nil), nil
}

// resolveMacroRun picks between continuing, stopping a recording and running. The macro
// option is 1-based.
func resolveMacroRun(opts Options, _ model.Spec, snapshot state.Snapshot) ([]command.Command, error) {
	macro, err := opts.Int(picker.OptMacro)
	if err != nil {
		return nil, err
	}

	if macro < 1 {
		return nil, fmt.Errorf("%w: %s: macro %d is out of range", ErrOptionParse, picker.OptMacro, macro)
	}

	runContinue := false
	if opts.has(picker.OptMacroAction) {
		mode, err := opts.String(picker.OptMacroAction)
		if err != nil {
			return nil, err
		}

		switch mode {
		case picker.MacroRun:
		case picker.MacroRunContinue:
			runContinue = true
		default:
			return nil, fmt.Errorf("%w: %s: unknown run mode %q", ErrOptionParse, picker.OptMacroAction, mode)
		}
	}

	index := macro - 1

	var status state.MacroStatus
	if snapshot != nil {
		status = snapshot.Macro()
	}

	switch {
	case runContinue && status.Player.IsWaiting && status.Player.Index == index:
		return single(command.ContinueMacro, nil, nil), nil
	case status.Recorder.IsRecording && status.Recorder.Index == index:
		return single(command.StopMacroRecording, nil, nil), nil
	default:
		return single(command.RunMacro, nil, command.Macro{Index: index}), nil
	}
}

func resolveMacroContinue(Options, model.Spec, state.Snapshot) ([]command.Command, error) {
	return single(command.ContinueMacro, nil, nil), nil
}

func resolveMacroStop(Options, model.Spec, state.Snapshot) ([]command.Command, error) {
	return single(command.StopMacro, nil, nil), nil
}

func resolveMultiviewerWindowSource(opts Options, _ model.Spec, _ state.Snapshot) ([]command.Command, error) {
	v, err := ints(opts, picker.OptMultiviewer, picker.OptWindow, picker.OptSource)
	if err != nil {
		return nil, err
	}

	target := command.Target{command.Multiviewer: v[0]}
	return single(command.SetMultiviewerWindowSource, target, command.MultiviewerWindow{Window: v[1], Source: v[2]}), nil
}

// superSourceBank returns the bank addressed by an action. The bank option is only
// honoured on models with more than one bank; everything else addresses bank 0.
func superSourceBank(opts Options, spec model.Spec) (int, error) {
	if spec.SuperSources <= 1 || !opts.has(picker.OptSuperSource) {
		return 0, nil
	}

	return opts.Int(picker.OptSuperSource)
}

func superSourceTarget(opts Options, spec model.Spec) (command.Target, error) {
	bank, err := superSourceBank(opts, spec)
	if err != nil {
		return nil, err
	}

	box, err := opts.Int(picker.OptBox)
	if err != nil {
		return nil, err
	}

	return command.Target{command.Bank: bank, command.Box: box}, nil
}

func resolveSuperSourceBoxSource(opts Options, spec model.Spec, _ state.Snapshot) ([]command.Command, error) {
	target, err := superSourceTarget(opts, spec)
	if err != nil {
		return nil, err
	}

	source, err := opts.Int(picker.OptSource)
	if err != nil {
		return nil, err
	}

	return single(command.SetSuperSourceBoxSettings, target, command.SuperSourceBoxSettings{Source: command.Int(source)}), nil
}

func resolveSuperSourceBoxOnAir(opts Options, spec model.Spec, snapshot state.Snapshot) ([]command.Command, error) {
	mode, err := opts.onAir()
	if err != nil {
		return nil, err
	}

	target, err := superSourceTarget(opts, spec)
	if err != nil {
		return nil, err
	}

	var current bool
	if mode == onAirToggle && snapshot != nil {
		box, _ := snapshot.SuperSourceBox(target[command.Bank], target[command.Box])
		current = box.Enabled
	}

	enabled := mode.resolve(current)
	return single(command.SetSuperSourceBoxSettings, target, command.SuperSourceBoxSettings{Enabled: &enabled}), nil
}

func resolveSuperSourceBoxProperties(opts Options, spec model.Spec, _ state.Snapshot) ([]command.Command, error) {
	target, err := superSourceTarget(opts, spec)
	if err != nil {
		return nil, err
	}

	v, err := ints(opts, picker.OptSize, picker.OptX, picker.OptY, picker.OptCropTop, picker.OptCropBottom, picker.OptCropLeft, picker.OptCropRight)
	if err != nil {
		return nil, err
	}

	cropped, err := opts.Bool(picker.OptCropEnable)
	if err != nil {
		return nil, err
	}

	return single(command.SetSuperSourceBoxSettings, target, command.SuperSourceBoxSettings{
		Size:       command.Int(v[0]),
		X:          command.Int(v[1]),
		Y:          command.Int(v[2]),
		Cropped:    command.Bool(cropped),
		CropTop:    command.Int(v[3]),
		CropBottom: command.Int(v[4]),
		CropLeft:   command.Int(v[5]),
		CropRight:  command.Int(v[6]),
	}), nil
}

func resolveTransitionStyle(opts Options, _ model.Spec, _ state.Snapshot) ([]command.Command, error) {
	v, err := ints(opts, picker.OptMixEffect, picker.OptStyle)
	if err != nil {
		return nil, err
	}

	return single(command.SetTransitionStyle, mixEffectTarget(v[0]), command.TransitionStyle{Style: command.Int(v[1])}), nil
}

var rateCommands = map[picker.TransitionStyle]command.Name{
	picker.StyleMix:  command.SetMixTransitionRate,
	picker.StyleDip:  command.SetDipTransitionRate,
	picker.StyleWipe: command.SetWipeTransitionRate,
	picker.StyleDVE:  command.SetDVETransitionRate,
}

// resolveTransitionRate routes the rate to the command of the chosen style. Stinger
// transitions have no rate and resolve to nothing.
func resolveTransitionRate(opts Options, _ model.Spec, _ state.Snapshot) ([]command.Command, error) {
	v, err := ints(opts, picker.OptMixEffect, picker.OptStyle)
	if err != nil {
		return nil, err
	}

	style := picker.TransitionStyle(v[1])
	if style == picker.StyleStinger {
		return nil, nil
	}

	name, found := rateCommands[style]
	if !found {
		return nil, fmt.Errorf("%w: transition style %d has no rate", ErrInternalConsistency, v[1])
	}

	rate, err := opts.Int(picker.OptRate)
	if err != nil {
		return nil, err
	}

	return single(name, mixEffectTarget(v[0]), command.TransitionRate{Rate: rate}), nil
}

// resolveTransitionSelection builds the next transition bitmask: bit 0 is the background,
// bit n+1 is upstream keyer n.
func resolveTransitionSelection(opts Options, spec model.Spec, _ state.Snapshot) ([]command.Command, error) {
	me, err := opts.Int(picker.OptMixEffect)
	if err != nil {
		return nil, err
	}

	selection := 0

	background, err := opts.Bool(picker.OptBackground)
	if err != nil {
		return nil, err
	}

	if background {
		selection |= 1
	}

	for i := 0; i < spec.UpstreamKeyers; i++ {
		key, err := opts.Bool(picker.KeyOption(i))
		if err != nil {
			return nil, err
		}

		if key {
			selection |= 1 << (i + 1)
		}
	}

	return single(command.SetTransitionStyle, mixEffectTarget(me), command.TransitionStyle{Selection: command.Int(selection)}), nil
}

func resolveMediaPlayerSource(opts Options, _ model.Spec, _ state.Snapshot) ([]command.Command, error) {
	v, err := ints(opts, picker.OptMediaPlayer, picker.OptSource)
	if err != nil {
		return nil, err
	}

	return single(command.SetMediaPlayerSource, command.Target{command.MediaPlayer: v[0]}, command.DecodeMediaSource(v[1])), nil
}
