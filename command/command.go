package command

import (
	"context"
)

type Name string

const (
	SetProgramSource             Name = "set-program-source"
	SetPreviewSource             Name = "set-preview-source"
	Cut                          Name = "cut"
	AutoTransition               Name = "auto-transition"
	SetAuxSource                 Name = "set-aux-source"
	SetKeyerFillSource           Name = "set-keyer-fill-source"
	SetKeyerCutSource            Name = "set-keyer-cut-source"
	SetKeyerOnAir                Name = "set-keyer-on-air"
	SetDownstreamKeyerFillSource Name = "set-downstream-keyer-fill-source"
	SetDownstreamKeyerCutSource  Name = "set-downstream-keyer-cut-source"
	SetDownstreamKeyerOnAir      Name = "set-downstream-keyer-on-air"
	AutoDownstreamTransition     Name = "auto-downstream-transition"
	RunMacro                     Name = "run-macro"
	ContinueMacro                Name = "continue-macro"
	StopMacro                    Name = "stop-macro"
	StopMacroRecording           Name = "stop-macro-recording"
	SetMultiviewerWindowSource   Name = "set-multiviewer-window-source"
	SetSuperSourceBoxSettings    Name = "set-super-source-box-settings"
	SetTransitionStyle           Name = "set-transition-style"
	SetMixTransitionRate         Name = "set-mix-transition-rate"
	SetDipTransitionRate         Name = "set-dip-transition-rate"
	SetWipeTransitionRate        Name = "set-wipe-transition-rate"
	SetDVETransitionRate         Name = "set-dve-transition-rate"
	SetMediaPlayerSource         Name = "set-media-player-source"
)

// Address keys used in a Target.
const (
	MixEffect       = "mixEffect"
	Keyer           = "keyer"
	DownstreamKeyer = "downstreamKeyer"
	Aux             = "aux"
	Multiviewer     = "multiviewer"
	Bank            = "bank"
	Box             = "box"
	MediaPlayer     = "mediaPlayer"
)

// Target names the sub-system instance a command applies to, e.g. {"mixEffect": 0, "keyer": 1}.
type Target map[string]int

// Command is a single resolved device operation, ready to be handed to the device
// control client.
type Command struct {
	Name   Name   `json:"name"`
	Target Target `json:"target,omitempty"`
	Params any    `json:"params,omitempty"`
}

// Issuer delivers commands to the device control client.
type Issuer interface {
	Issue(context.Context, Command) error
}

type IssuerFunc func(context.Context, Command) error

func (f IssuerFunc) Issue(ctx context.Context, c Command) error {
	return f(ctx, c)
}
