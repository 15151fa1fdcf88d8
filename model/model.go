package model

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"github.com/tidwall/gjson"
	"gopkg.in/yaml.v3"
)

type modelError string

func (e modelError) Error() string {
	return string(e)
}

const ErrUnknownModel = modelError("unknown model")
const ErrInvalidSpec = modelError("invalid model specification")

// AutoDetect is the model id used when the capabilities are taken from the device's own
// identification rather than from the table of known models.
const AutoDetect = 0

const DefaultSuperSourceBoxes = 4

type Media struct {
	Players int `yaml:"players" json:"players"`
	Stills  int `yaml:"stills" json:"stills"`
	Clips   int `yaml:"clips" json:"clips"`
}

// Spec describes which sub-systems a mixer variant has and how many of each. A Spec is
// fixed for the lifetime of a device connection.
type Spec struct {
	ID    int    `yaml:"id" json:"id"`
	Label string `yaml:"label" json:"label"`

	Inputs           int `yaml:"inputs" json:"inputs"`
	MixEffects       int `yaml:"mixEffects" json:"mixEffects"`
	UpstreamKeyers   int `yaml:"upstreamKeyers" json:"upstreamKeyers"`
	DownstreamKeyers int `yaml:"downstreamKeyers" json:"downstreamKeyers"`
	Auxes            int `yaml:"auxes" json:"auxes"`
	Multiviewers     int `yaml:"multiviewers" json:"multiviewers"`
	SuperSources     int `yaml:"superSources" json:"superSources"`
	SuperSourceBoxes int `yaml:"superSourceBoxes" json:"superSourceBoxes"`
	Macros           int `yaml:"macros" json:"macros"`
	ColorGenerators  int `yaml:"colorGenerators" json:"colorGenerators"`

	Media Media `yaml:"media" json:"media"`
}

func (s Spec) Validate() error {
	counts := map[string]int{
		"inputs":           s.Inputs,
		"mixEffects":       s.MixEffects,
		"upstreamKeyers":   s.UpstreamKeyers,
		"downstreamKeyers": s.DownstreamKeyers,
		"auxes":            s.Auxes,
		"multiviewers":     s.Multiviewers,
		"superSources":     s.SuperSources,
		"superSourceBoxes": s.SuperSourceBoxes,
		"macros":           s.Macros,
		"colorGenerators":  s.ColorGenerators,
		"media.players":    s.Media.Players,
		"media.stills":     s.Media.Stills,
		"media.clips":      s.Media.Clips,
	}

	for name, count := range counts {
		if count < 0 {
			return fmt.Errorf("%w: %s is negative (%d)", ErrInvalidSpec, name, count)
		}
	}

	if s.MixEffects == 0 {
		return fmt.Errorf("%w: a mixer must have at least one mix effect bus", ErrInvalidSpec)
	}

	return nil
}

func (s Spec) normalise() Spec {
	if s.SuperSources > 0 && s.SuperSourceBoxes == 0 {
		s.SuperSourceBoxes = DefaultSuperSourceBoxes
	}

	return s
}

//go:embed models.yaml
var modelsYAML []byte

var known = mustLoad(modelsYAML)

func mustLoad(data []byte) []Spec {
	specs, err := load(data)
	if err != nil {
		panic(err)
	}

	return specs
}

func load(data []byte) ([]Spec, error) {
	var specs []Spec

	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("failed to decode model table: %w", err)
	}

	seen := map[int]bool{}

	for i, s := range specs {
		if s.ID == AutoDetect {
			return nil, fmt.Errorf("%w: model '%s' uses the reserved auto detect id", ErrInvalidSpec, s.Label)
		}

		if seen[s.ID] {
			return nil, fmt.Errorf("%w: duplicate model id %d", ErrInvalidSpec, s.ID)
		}
		seen[s.ID] = true

		if err := s.Validate(); err != nil {
			return nil, fmt.Errorf("model '%s': %w", s.Label, err)
		}

		specs[i] = s.normalise()
	}

	return specs, nil
}

// All returns every known model in table order.
func All() []Spec {
	out := make([]Spec, len(known))
	copy(out, known)
	return out
}

// Undetected stands in for an automatically detected model until the device has
// identified itself.
var Undetected = Spec{ID: AutoDetect, Label: "Auto Detect", MixEffects: 1}

// Select returns the configured model, or Undetected when the model is to be detected.
func Select(id int) (Spec, error) {
	if id == AutoDetect {
		return Undetected, nil
	}

	return Lookup(id)
}

func Lookup(id int) (Spec, error) {
	for _, s := range known {
		if s.ID == id {
			return s, nil
		}
	}

	return Spec{}, fmt.Errorf("%w: %d", ErrUnknownModel, id)
}

// FromIdentification builds a Spec from a device identification report. A report that
// names a known model id without carrying counts resolves to the table entry.
func FromIdentification(data []byte) (Spec, error) {
	if !gjson.ValidBytes(data) {
		return Spec{}, fmt.Errorf("%w: identification is not valid json", ErrInvalidSpec)
	}

	id := gjson.GetBytes(data, "id")

	if id.Exists() && !gjson.GetBytes(data, "mixEffects").Exists() {
		return Lookup(int(id.Int()))
	}

	var s Spec
	if err := json.Unmarshal(data, &s); err != nil {
		return Spec{}, fmt.Errorf("%w: %s", ErrInvalidSpec, err.Error())
	}

	if err := s.Validate(); err != nil {
		return Spec{}, err
	}

	return s.normalise(), nil
}
