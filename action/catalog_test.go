package action

import (
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/switchyard/controller/model"
	"github.com/switchyard/controller/picker"
	"github.com/switchyard/controller/state"
	"testing"
)

func optionIDs(d Descriptor) []string {
	var ids []string
	for _, o := range d.Options {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestBuildCatalog(t *testing.T) {
	t.Run("a fully featured model exposes every action", func(t *testing.T) {
		c := BuildCatalog(testSpec(), state.NewStore(nil), picker.ShortLabels)

		for _, id := range IDs() {
			assert.True(t, c.Has(id), id.String())
		}
	})

	t.Run("sub-systems with a count of zero remove their actions", func(t *testing.T) {
		gated := map[ID]func(*model.Spec){
			Aux:                      func(s *model.Spec) { s.Auxes = 0 },
			UpstreamKeyerSource:      func(s *model.Spec) { s.UpstreamKeyers = 0 },
			UpstreamKeyerOnAir:       func(s *model.Spec) { s.UpstreamKeyers = 0 },
			DownstreamKeyerSource:    func(s *model.Spec) { s.DownstreamKeyers = 0 },
			DownstreamKeyerOnAir:     func(s *model.Spec) { s.DownstreamKeyers = 0 },
			DownstreamKeyerAuto:      func(s *model.Spec) { s.DownstreamKeyers = 0 },
			MacroRun:                 func(s *model.Spec) { s.Macros = 0 },
			MacroContinue:            func(s *model.Spec) { s.Macros = 0 },
			MacroStop:                func(s *model.Spec) { s.Macros = 0 },
			MultiviewerWindowSource:  func(s *model.Spec) { s.Multiviewers = 0 },
			SuperSourceBoxSource:     func(s *model.Spec) { s.SuperSources = 0 },
			SuperSourceBoxOnAir:      func(s *model.Spec) { s.SuperSources = 0 },
			SuperSourceBoxProperties: func(s *model.Spec) { s.SuperSources = 0 },
			MediaPlayerSource:        func(s *model.Spec) { s.Media.Players = 0 },
		}

		for id, remove := range gated {
			spec := testSpec()
			remove(&spec)

			assert.False(t, BuildCatalog(spec, nil, picker.ShortLabels).Has(id), id.String())
		}
	})

	t.Run("media players without stills or clips have no source action", func(t *testing.T) {
		spec, err := model.FromIdentification([]byte(`{"id":99,"label":"Players only","mixEffects":1,"media":{"players":2}}`))
		require.NoError(t, err)

		assert.False(t, BuildCatalog(spec, nil, picker.ShortLabels).Has(MediaPlayerSource))
	})

	t.Run("every option of every action has a choice", func(t *testing.T) {
		for _, spec := range append(model.All(), testSpec(), model.Spec{MixEffects: 1, Media: model.Media{Players: 1, Clips: 1}}) {
			for _, d := range BuildCatalog(spec, nil, picker.ShortLabels).Descriptors() {
				for _, o := range d.Options {
					if o.Kind == picker.Dropdown {
						assert.NotEmpty(t, o.Choices, "%s: %s: %s", spec.Label, d.ID, o.ID)
					}
				}
			}
		}
	})

	t.Run("ungated actions survive a minimal model", func(t *testing.T) {
		c := BuildCatalog(model.Spec{MixEffects: 1}, nil, picker.ShortLabels)

		var ids []ID
		for _, d := range c.Descriptors() {
			ids = append(ids, d.ID)
		}

		assert.Equal(t, []ID{Program, Preview, Cut, Auto, TransitionStyle, TransitionSelection, TransitionRate}, ids)
	})

	t.Run("single bank models never offer a bank selector", func(t *testing.T) {
		spec := testSpec()
		spec.SuperSources = 1

		c := BuildCatalog(spec, nil, picker.ShortLabels)

		for _, id := range []ID{SuperSourceBoxSource, SuperSourceBoxOnAir, SuperSourceBoxProperties} {
			d, found := c.Lookup(id)
			require.True(t, found)
			assert.NotContains(t, optionIDs(d), picker.OptSuperSource)
			assert.Equal(t, picker.OptBox, d.Options[0].ID)
		}
	})

	t.Run("multiple bank models lead with the bank selector", func(t *testing.T) {
		d, _ := BuildCatalog(testSpec(), nil, picker.ShortLabels).Lookup(SuperSourceBoxOnAir)

		assert.Equal(t, []string{picker.OptSuperSource, picker.OptBox, picker.OptOnAir}, optionIDs(d))
	})

	t.Run("transition rate omits stinger while transition style offers it", func(t *testing.T) {
		c := BuildCatalog(testSpec(), nil, picker.ShortLabels)

		rate, _ := c.Lookup(TransitionRate)
		style, _ := c.Lookup(TransitionStyle)

		assert.Len(t, rate.Options[1].Choices, 4)
		assert.Len(t, style.Options[1].Choices, 5)
	})

	t.Run("is deterministic for the same inputs", func(t *testing.T) {
		store := state.NewStore(nil)
		store.SetMacroProperties(0, state.MacroProperties{Name: "Open", IsUsed: true})

		assert.Equal(t, BuildCatalog(testSpec(), store, picker.LongLabels), BuildCatalog(testSpec(), store, picker.LongLabels))
	})

	t.Run("names choices from the snapshot", func(t *testing.T) {
		store := state.NewStore(nil)
		store.SetMacroProperties(0, state.MacroProperties{Name: "Open", IsUsed: true})

		d, _ := BuildCatalog(testSpec(), store, picker.ShortLabels).Lookup(MacroRun)

		assert.Equal(t, "1: Open", d.Options[0].Choices[0].Label)
	})

	t.Run("option-less actions serialise an empty option list", func(t *testing.T) {
		d, _ := BuildCatalog(testSpec(), nil, picker.ShortLabels).Lookup(MacroStop)

		data, err := json.Marshal(d)
		require.NoError(t, err)

		assert.JSONEq(t, `{"id":"macrostop","label":"Stop MACROS","options":[]}`, string(data))
	})
}
