package mqtt

import (
	"context"
	"encoding/json"
	"fmt"
	"github.com/shimmeringbee/logwrap"
	"github.com/switchyard/controller/model"
	"github.com/switchyard/controller/state"
	"github.com/tidwall/gjson"
	"strings"
)

const stateTopic = "state"

// IncomingMessage handles a state report published by the device control client. The
// topic has had the gateway prefix removed.
func (g *Gateway) IncomingMessage(ctx context.Context, topic string, payload []byte) error {
	topicParts := strings.Split(topic, "/")

	if len(topicParts) < 2 || topicParts[0] != stateTopic {
		return fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
	}

	if topicParts[1] != "reset" && !gjson.ValidBytes(payload) {
		return fmt.Errorf("%w: %s: invalid json", ErrBadReport, topic)
	}

	switch strings.Join(topicParts[1:], "/") {
	case "identification":
		return g.identification(ctx, payload)
	case "reset":
		g.store.Reset()
		return nil
	case "input":
		return g.input(payload)
	case "upstreamKeyer":
		return g.upstreamKeyer(payload)
	case "downstreamKeyer":
		return g.downstreamKeyer(payload)
	case "superSourceBox":
		return g.superSourceBox(payload)
	case "macro/player":
		return g.macroPlayer(payload)
	case "macro/recorder":
		return g.macroRecorder(payload)
	case "macro/properties":
		return g.macroProperties(payload)
	case "media/still":
		return g.media(state.MediaStill, payload)
	case "media/clip":
		return g.media(state.MediaClip, payload)
	}

	return fmt.Errorf("%w: %s", ErrUnknownTopic, topic)
}

// indices reads the addressing fields of a report, all of which must be present.
func indices(payload []byte, fields ...string) ([]int, error) {
	results := gjson.GetManyBytes(payload, fields...)
	out := make([]int, len(fields))

	for i, r := range results {
		if r.Type != gjson.Number {
			return nil, fmt.Errorf("%w: %s is missing or not a number", ErrBadReport, fields[i])
		}
		out[i] = int(r.Int())
	}

	return out, nil
}

func decode(payload []byte, v any) error {
	if err := json.Unmarshal(payload, v); err != nil {
		return fmt.Errorf("%w: %v", ErrBadReport, err)
	}

	return nil
}

func (g *Gateway) identification(ctx context.Context, payload []byte) error {
	spec, err := model.FromIdentification(payload)
	if err != nil {
		return err
	}

	if !g.autoDetect {
		if configured := g.Model(); configured.ID != spec.ID {
			g.logger.LogWarn(ctx, "Device identified as a different model to the one configured.", logwrap.Datum("configured", configured.Label), logwrap.Datum("identified", spec.Label))
		}
		return nil
	}

	g.logger.LogInfo(ctx, "Device identified.", logwrap.Datum("model", spec.Label))
	g.setModel(spec)

	return nil
}

func (g *Gateway) input(payload []byte) error {
	var i state.InputProperties

	if _, err := indices(payload, "id"); err != nil {
		return err
	}

	if err := decode(payload, &i); err != nil {
		return err
	}

	g.store.SetInput(i)
	return nil
}

func (g *Gateway) upstreamKeyer(payload []byte) error {
	idx, err := indices(payload, "mixEffect", "keyer")
	if err != nil {
		return err
	}

	var k state.UpstreamKeyer
	if err := decode(payload, &k); err != nil {
		return err
	}

	g.store.SetUpstreamKeyer(idx[0], idx[1], k)
	return nil
}

func (g *Gateway) downstreamKeyer(payload []byte) error {
	idx, err := indices(payload, "keyer")
	if err != nil {
		return err
	}

	var k state.DownstreamKeyer
	if err := decode(payload, &k); err != nil {
		return err
	}

	g.store.SetDownstreamKeyer(idx[0], k)
	return nil
}

func (g *Gateway) superSourceBox(payload []byte) error {
	idx, err := indices(payload, "bank", "box")
	if err != nil {
		return err
	}

	var b state.SuperSourceBox
	if err := decode(payload, &b); err != nil {
		return err
	}

	g.store.SetSuperSourceBox(idx[0], idx[1], b)
	return nil
}

func (g *Gateway) macroPlayer(payload []byte) error {
	var p state.MacroPlayer
	if err := decode(payload, &p); err != nil {
		return err
	}

	g.store.SetMacroPlayer(p)
	return nil
}

func (g *Gateway) macroRecorder(payload []byte) error {
	var r state.MacroRecorder
	if err := decode(payload, &r); err != nil {
		return err
	}

	g.store.SetMacroRecorder(r)
	return nil
}

func (g *Gateway) macroProperties(payload []byte) error {
	idx, err := indices(payload, "index")
	if err != nil {
		return err
	}

	var p state.MacroProperties
	if err := decode(payload, &p); err != nil {
		return err
	}

	g.store.SetMacroProperties(idx[0], p)
	return nil
}

func (g *Gateway) media(kind state.MediaKind, payload []byte) error {
	idx, err := indices(payload, "index")
	if err != nil {
		return err
	}

	var m state.MediaItem
	if err := decode(payload, &m); err != nil {
		return err
	}

	g.store.SetMedia(kind, idx[0], m)
	return nil
}
