package picker

import (
	"fmt"
	"github.com/switchyard/controller/model"
	"github.com/switchyard/controller/state"
)

type LabelStyle string

const (
	ShortLabels LabelStyle = "short"
	LongLabels  LabelStyle = "long"
)

type SourceKind int

const (
	SourceBlack SourceKind = iota
	SourceInput
	SourceColorBars
	SourceColor
	SourceMediaPlayer
	SourceMediaPlayerKey
	SourceSuperSource
	SourceCleanFeed
	SourceAux
	SourceProgram
	SourcePreview
)

const (
	blackID            = 0
	colorBarsID        = 1000
	colorBaseID        = 2000
	mediaPlayerBaseID  = 3000
	superSourceBaseID  = 6000
	cleanFeedBaseID    = 7000
	auxBaseID          = 8000
	mixEffectBaseID    = 10000
	maximumInputID     = colorBarsID - 1
	mediaPlayerStride  = 10
	mixEffectStride    = 10
	maximumCleanFeeds  = 2
	superSourceMaximum = cleanFeedBaseID - superSourceBaseID
)

type Source struct {
	ID        int
	Kind      SourceKind
	ShortName string
	LongName  string
}

// ClassifySource maps a device source id onto its kind.
func ClassifySource(id int) SourceKind {
	switch {
	case id == blackID:
		return SourceBlack
	case id <= maximumInputID:
		return SourceInput
	case id == colorBarsID:
		return SourceColorBars
	case id > colorBaseID && id < mediaPlayerBaseID:
		return SourceColor
	case id >= mediaPlayerBaseID && id < superSourceBaseID:
		if id%mediaPlayerStride == 1 {
			return SourceMediaPlayerKey
		}
		return SourceMediaPlayer
	case id >= superSourceBaseID && id < cleanFeedBaseID:
		return SourceSuperSource
	case id > cleanFeedBaseID && id < auxBaseID:
		return SourceCleanFeed
	case id > auxBaseID && id < mixEffectBaseID:
		return SourceAux
	case id >= mixEffectBaseID && id%mixEffectStride == 1:
		return SourcePreview
	default:
		return SourceProgram
	}
}

// ModelSources synthesizes the source list of a model for use before the device has
// reported its inputs.
func ModelSources(spec model.Spec) []Source {
	sources := []Source{{ID: blackID, Kind: SourceBlack, ShortName: "BLK", LongName: "Black"}}

	for i := 1; i <= spec.Inputs; i++ {
		sources = append(sources, Source{ID: i, Kind: SourceInput, ShortName: fmt.Sprintf("IN%d", i), LongName: fmt.Sprintf("Input %d", i)})
	}

	sources = append(sources, Source{ID: colorBarsID, Kind: SourceColorBars, ShortName: "BARS", LongName: "Color Bars"})

	for i := 1; i <= spec.ColorGenerators; i++ {
		sources = append(sources, Source{ID: colorBaseID + i, Kind: SourceColor, ShortName: fmt.Sprintf("COL%d", i), LongName: fmt.Sprintf("Color %d", i)})
	}

	for i := 1; i <= spec.Media.Players; i++ {
		id := mediaPlayerBaseID + i*mediaPlayerStride
		sources = append(sources,
			Source{ID: id, Kind: SourceMediaPlayer, ShortName: fmt.Sprintf("MP%d", i), LongName: fmt.Sprintf("Media Player %d", i)},
			Source{ID: id + 1, Kind: SourceMediaPlayerKey, ShortName: fmt.Sprintf("MP%dK", i), LongName: fmt.Sprintf("Media Player %d Key", i)})
	}

	for i := 0; i < spec.SuperSources && i < superSourceMaximum; i++ {
		sources = append(sources, Source{ID: superSourceBaseID + i, Kind: SourceSuperSource, ShortName: fmt.Sprintf("SSC%d", i+1), LongName: fmt.Sprintf("Super Source %d", i+1)})
	}

	for i := 1; i <= maximumCleanFeeds; i++ {
		sources = append(sources, Source{ID: cleanFeedBaseID + i, Kind: SourceCleanFeed, ShortName: fmt.Sprintf("CFD%d", i), LongName: fmt.Sprintf("Clean Feed %d", i)})
	}

	for i := 1; i <= spec.Auxes; i++ {
		sources = append(sources, Source{ID: auxBaseID + i, Kind: SourceAux, ShortName: fmt.Sprintf("AUX%d", i), LongName: fmt.Sprintf("Auxiliary %d", i)})
	}

	for i := 1; i <= spec.MixEffects; i++ {
		id := mixEffectBaseID + i*mixEffectStride
		sources = append(sources,
			Source{ID: id, Kind: SourceProgram, ShortName: fmt.Sprintf("M%dPG", i), LongName: fmt.Sprintf("M/E %d Program", i)},
			Source{ID: id + 1, Kind: SourcePreview, ShortName: fmt.Sprintf("M%dPV", i), LongName: fmt.Sprintf("M/E %d Preview", i)})
	}

	return sources
}

// Sources returns the device's reported sources, falling back to those synthesized from
// the model when nothing has been reported yet.
func Sources(spec model.Spec, snapshot state.Snapshot) []Source {
	var reported []state.InputProperties
	if snapshot != nil {
		reported = snapshot.Inputs()
	}

	if len(reported) == 0 {
		return ModelSources(spec)
	}

	synthesized := map[int]Source{}
	for _, s := range ModelSources(spec) {
		synthesized[s.ID] = s
	}

	sources := make([]Source, 0, len(reported))

	for _, input := range reported {
		src := Source{ID: input.ID, Kind: ClassifySource(input.ID), ShortName: input.ShortName, LongName: input.LongName}

		if fallback, found := synthesized[input.ID]; found {
			if src.ShortName == "" {
				src.ShortName = fallback.ShortName
			}
			if src.LongName == "" {
				src.LongName = fallback.LongName
			}
		}

		sources = append(sources, src)
	}

	return sources
}

func (s Source) Label(style LabelStyle) string {
	primary, secondary := s.ShortName, s.LongName
	if style == LongLabels {
		primary, secondary = s.LongName, s.ShortName
	}

	switch {
	case primary != "":
		return primary
	case secondary != "":
		return secondary
	default:
		return fmt.Sprintf("Source %d", s.ID)
	}
}

type exclusions map[SourceKind]bool

// Each source context carries its own exclusion list.
var (
	mixEffectExclusions   = exclusions{SourceCleanFeed: true, SourceAux: true, SourceProgram: true, SourcePreview: true}
	auxExclusions         = exclusions{SourceAux: true}
	keyFillExclusions     = exclusions{SourceCleanFeed: true, SourceAux: true, SourceProgram: true, SourcePreview: true}
	keyCutExclusions      = exclusions{SourceBlack: true, SourceColorBars: true, SourceColor: true, SourceCleanFeed: true, SourceAux: true, SourceProgram: true, SourcePreview: true}
	multiviewerExclusions = exclusions{}
	superSourceExclusions = exclusions{SourceSuperSource: true, SourceCleanFeed: true, SourceAux: true, SourceProgram: true, SourcePreview: true}
)

func sourceChoices(spec model.Spec, snapshot state.Snapshot, style LabelStyle, excluded exclusions) []Choice {
	var choices []Choice

	for _, s := range Sources(spec, snapshot) {
		if excluded[s.Kind] {
			continue
		}

		choices = append(choices, Choice{ID: s.ID, Label: s.Label(style)})
	}

	return choices
}

func sourcePicker(id string, label string, choices []Choice) Option {
	var def any = blackID
	if len(choices) > 0 {
		def = choices[0].ID
	}

	return dropdown(id, label, def, choices)
}

func MixEffectSource(spec model.Spec, snapshot state.Snapshot, style LabelStyle) Option {
	return sourcePicker(OptInput, "Input", sourceChoices(spec, snapshot, style, mixEffectExclusions))
}

func AuxSource(spec model.Spec, snapshot state.Snapshot, style LabelStyle) Option {
	return sourcePicker(OptInput, "Input", sourceChoices(spec, snapshot, style, auxExclusions))
}

func KeyFillSource(spec model.Spec, snapshot state.Snapshot, style LabelStyle) Option {
	return sourcePicker(OptFill, "Fill Source", sourceChoices(spec, snapshot, style, keyFillExclusions))
}

func KeyCutSource(spec model.Spec, snapshot state.Snapshot, style LabelStyle) Option {
	return sourcePicker(OptCut, "Key Source", sourceChoices(spec, snapshot, style, keyCutExclusions))
}

func MultiviewerSource(spec model.Spec, snapshot state.Snapshot, style LabelStyle) Option {
	return sourcePicker(OptSource, "Source", sourceChoices(spec, snapshot, style, multiviewerExclusions))
}

func SuperSourceBoxSource(spec model.Spec, snapshot state.Snapshot, style LabelStyle) Option {
	return sourcePicker(OptSource, "Source", sourceChoices(spec, snapshot, style, superSourceExclusions))
}
