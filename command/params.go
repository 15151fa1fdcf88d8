package command

type Source struct {
	Source int `json:"source"`
}

type OnAir struct {
	OnAir bool `json:"onAir"`
}

type Macro struct {
	Index int `json:"index"`
}

type MultiviewerWindow struct {
	Window int `json:"windowIndex"`
	Source int `json:"source"`
}

// SuperSourceBoxSettings is a partial update: only non-nil fields are changed on the
// device.
type SuperSourceBoxSettings struct {
	Enabled    *bool `json:"enabled,omitempty"`
	Source     *int  `json:"source,omitempty"`
	Size       *int  `json:"size,omitempty"`
	X          *int  `json:"x,omitempty"`
	Y          *int  `json:"y,omitempty"`
	Cropped    *bool `json:"cropped,omitempty"`
	CropTop    *int  `json:"cropTop,omitempty"`
	CropBottom *int  `json:"cropBottom,omitempty"`
	CropLeft   *int  `json:"cropLeft,omitempty"`
	CropRight  *int  `json:"cropRight,omitempty"`
}

type TransitionStyle struct {
	Style     *int `json:"style,omitempty"`
	Selection *int `json:"selection,omitempty"`
}

type TransitionRate struct {
	Rate int `json:"rate"`
}

type MediaSourceType string

const (
	MediaSourceStill MediaSourceType = "still"
	MediaSourceClip  MediaSourceType = "clip"
)

type MediaPlayerSource struct {
	SourceType MediaSourceType `json:"sourceType"`
	Index      int             `json:"index"`
}

// MediaPlayerClipOffset splits the single media player source option into two ranges:
// values below it address stills, values from it upwards address clip value-offset.
const MediaPlayerClipOffset = 1000

func DecodeMediaSource(value int) MediaPlayerSource {
	if value >= MediaPlayerClipOffset {
		return MediaPlayerSource{SourceType: MediaSourceClip, Index: value - MediaPlayerClipOffset}
	}

	return MediaPlayerSource{SourceType: MediaSourceStill, Index: value}
}

func EncodeMediaSource(s MediaPlayerSource) int {
	if s.SourceType == MediaSourceClip {
		return s.Index + MediaPlayerClipOffset
	}

	return s.Index
}

func Int(v int) *int {
	return &v
}

func Bool(v bool) *bool {
	return &v
}
