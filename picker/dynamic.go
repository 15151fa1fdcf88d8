package picker

import (
	"fmt"
	"github.com/switchyard/controller/command"
	"github.com/switchyard/controller/model"
	"github.com/switchyard/controller/state"
)

// Macro lists every macro slot of the model. Ids are 1-based; the label is the name the
// device reported for a used slot, otherwise "Macro N".
func Macro(spec model.Spec, snapshot state.Snapshot) Option {
	choices := make([]Choice, 0, spec.Macros)

	for i := 0; i < spec.Macros; i++ {
		label := fmt.Sprintf("Macro %d", i+1)

		if snapshot != nil {
			if props, found := snapshot.MacroProperties(i); found && props.IsUsed && props.Name != "" {
				label = fmt.Sprintf("%d: %s", i+1, props.Name)
			}
		}

		choices = append(choices, Choice{ID: i + 1, Label: label})
	}

	return dropdown(OptMacro, "Macro", 1, choices)
}

// MediaPlayerSource lists stills followed by clips as a single range of values, clips
// being offset by command.MediaPlayerClipOffset.
func MediaPlayerSource(spec model.Spec, snapshot state.Snapshot) Option {
	var choices []Choice

	for i := 0; i < spec.Media.Stills; i++ {
		label := fmt.Sprintf("Still %d", i+1)

		if snapshot != nil {
			if item, found := snapshot.MediaStill(i); found && item.Name != "" {
				label = fmt.Sprintf("Still %d: %s", i+1, item.Name)
			}
		}

		id := command.EncodeMediaSource(command.MediaPlayerSource{SourceType: command.MediaSourceStill, Index: i})
		choices = append(choices, Choice{ID: id, Label: label})
	}

	for i := 0; i < spec.Media.Clips; i++ {
		label := fmt.Sprintf("Clip %d", i+1)

		if snapshot != nil {
			if item, found := snapshot.MediaClip(i); found && item.Name != "" {
				label = fmt.Sprintf("Clip %d: %s", i+1, item.Name)
			}
		}

		id := command.EncodeMediaSource(command.MediaPlayerSource{SourceType: command.MediaSourceClip, Index: i})
		choices = append(choices, Choice{ID: id, Label: label})
	}

	var def any = 0
	if len(choices) > 0 {
		def = choices[0].ID
	}

	return dropdown(OptSource, "Source", def, choices)
}
