package action

import (
	"github.com/switchyard/controller/model"
	"github.com/switchyard/controller/picker"
	"github.com/switchyard/controller/state"
)

// Descriptor is an entry in the action catalog, describing an action and the options the
// host must supply to invoke it.
type Descriptor struct {
	ID      ID              `json:"id"`
	Label   string          `json:"label"`
	Options []picker.Option `json:"options"`
}

// Catalog is the set of actions available for one model and snapshot. It is built
// wholesale and never modified afterwards.
type Catalog struct {
	model       model.Spec
	descriptors map[ID]Descriptor
}

func (c *Catalog) Model() model.Spec {
	return c.model
}

func (c *Catalog) Has(id ID) bool {
	_, found := c.descriptors[id]
	return found
}

func (c *Catalog) Lookup(id ID) (Descriptor, bool) {
	d, found := c.descriptors[id]
	return d, found
}

// Descriptors returns the catalog in identifier order.
func (c *Catalog) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(c.descriptors))

	for _, id := range IDs() {
		if d, found := c.descriptors[id]; found {
			out = append(out, d)
		}
	}

	return out
}

func (c *Catalog) add(id ID, label string, options ...picker.Option) {
	if options == nil {
		options = []picker.Option{}
	}

	c.descriptors[id] = Descriptor{ID: id, Label: label, Options: options}
}

// BuildCatalog constructs the actions the model supports, with option choices named from
// the snapshot.
func BuildCatalog(spec model.Spec, snapshot state.Snapshot, style picker.LabelStyle) *Catalog {
	c := &Catalog{model: spec, descriptors: map[ID]Descriptor{}}

	c.add(Program, "Set input on Program", picker.MixEffect(spec), picker.MixEffectSource(spec, snapshot, style))
	c.add(Preview, "Set input on Preview", picker.MixEffect(spec), picker.MixEffectSource(spec, snapshot, style))
	c.add(Cut, "CUT operation", picker.MixEffect(spec))
	c.add(Auto, "AUTO transition operation", picker.MixEffect(spec))

	if spec.Auxes > 0 {
		c.add(Aux, "Set AUX bus", picker.Aux(spec), picker.AuxSource(spec, snapshot, style))
	}

	if spec.UpstreamKeyers > 0 {
		c.add(UpstreamKeyerSource, "Set inputs on Upstream KEY",
			picker.MixEffect(spec),
			picker.UpstreamKeyer(spec),
			picker.KeyFillSource(spec, snapshot, style),
			picker.KeyCutSource(spec, snapshot, style))
		c.add(UpstreamKeyerOnAir, "Set Upstream KEY OnAir", picker.OnAir(), picker.MixEffect(spec), picker.UpstreamKeyer(spec))
	}

	if spec.DownstreamKeyers > 0 {
		c.add(DownstreamKeyerSource, "Set inputs on Downstream KEY",
			picker.DownstreamKeyer(spec),
			picker.KeyFillSource(spec, snapshot, style),
			picker.KeyCutSource(spec, snapshot, style))
		c.add(DownstreamKeyerAuto, "AUTO DSK Transition", picker.DownstreamKeyerID(spec))
		c.add(DownstreamKeyerOnAir, "Set Downstream KEY OnAir", picker.OnAir(), picker.DownstreamKeyer(spec))
	}

	if spec.Macros > 0 {
		c.add(MacroRun, "Run MACRO", picker.Macro(spec, snapshot), picker.MacroRunMode())
		c.add(MacroContinue, "Continue MACRO")
		c.add(MacroStop, "Stop MACROS")
	}

	if spec.Multiviewers > 0 {
		c.add(MultiviewerWindowSource, "Change MV window source",
			picker.Multiviewer(spec),
			picker.MultiviewerWindow(spec),
			picker.MultiviewerSource(spec, snapshot, style))
	}

	if spec.SuperSources > 0 {
		c.add(SuperSourceBoxSource, "Change SuperSource box source",
			superSourceOptions(spec, picker.SuperSourceBoxSource(spec, snapshot, style))...)
		c.add(SuperSourceBoxOnAir, "Change SuperSource box enabled",
			superSourceOptions(spec, picker.OnAir())...)
		c.add(SuperSourceBoxProperties, "Change SuperSource box properties",
			superSourceOptions(spec, picker.SuperSourceProperties()...)...)
	}

	c.add(TransitionStyle, "Change transition style", picker.MixEffect(spec), picker.TransitionStyles(true))
	c.add(TransitionRate, "Change transition rate", picker.MixEffect(spec), picker.TransitionStyles(false), picker.TransitionRate())
	c.add(TransitionSelection, "Change transition selection", append([]picker.Option{picker.MixEffect(spec)}, picker.TransitionSelection(spec)...)...)

	if spec.Media.Players > 0 && spec.Media.Stills+spec.Media.Clips > 0 {
		c.add(MediaPlayerSource, "Change media player source", picker.MediaPlayer(spec), picker.MediaPlayerSource(spec, snapshot))
	}

	return c
}

// superSourceOptions prefixes the bank selector, when the model has one, and the box
// selector.
func superSourceOptions(spec model.Spec, rest ...picker.Option) []picker.Option {
	var options []picker.Option

	if bank, found := picker.SuperSourceBank(spec); found {
		options = append(options, bank)
	}

	options = append(options, picker.SuperSourceBox(spec))
	return append(options, rest...)
}
