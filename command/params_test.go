package command

import (
	"context"
	"encoding/json"
	"github.com/stretchr/testify/assert"
	"testing"
)

func TestDecodeMediaSource(t *testing.T) {
	t.Run("values at or above the offset address clips", func(t *testing.T) {
		assert.Equal(t, MediaPlayerSource{SourceType: MediaSourceClip, Index: 5}, DecodeMediaSource(MediaPlayerClipOffset+5))
		assert.Equal(t, MediaPlayerSource{SourceType: MediaSourceClip, Index: 0}, DecodeMediaSource(MediaPlayerClipOffset))
	})

	t.Run("values below the offset address stills", func(t *testing.T) {
		assert.Equal(t, MediaPlayerSource{SourceType: MediaSourceStill, Index: MediaPlayerClipOffset - 1}, DecodeMediaSource(MediaPlayerClipOffset-1))
		assert.Equal(t, MediaPlayerSource{SourceType: MediaSourceStill, Index: 0}, DecodeMediaSource(0))
	})

	t.Run("decoding then encoding returns the original value", func(t *testing.T) {
		for v := 0; v < 3*MediaPlayerClipOffset; v++ {
			assert.Equal(t, v, EncodeMediaSource(DecodeMediaSource(v)))
		}
	})
}

func TestCommand_JSON(t *testing.T) {
	t.Run("partial super source settings only carry the fields set", func(t *testing.T) {
		c := Command{
			Name:   SetSuperSourceBoxSettings,
			Target: Target{Bank: 0, Box: 2},
			Params: SuperSourceBoxSettings{Enabled: Bool(false)},
		}

		data, err := json.Marshal(c)
		assert.NoError(t, err)
		assert.JSONEq(t, `{"name":"set-super-source-box-settings","target":{"bank":0,"box":2},"params":{"enabled":false}}`, string(data))
	})
}

func TestRecorder(t *testing.T) {
	t.Run("records commands in issue order", func(t *testing.T) {
		r := &Recorder{}

		_ = r.Issue(context.Background(), Command{Name: Cut})
		_ = r.Issue(context.Background(), Command{Name: AutoTransition})

		assert.Equal(t, []Command{{Name: Cut}, {Name: AutoTransition}}, r.Commands())
	})
}
