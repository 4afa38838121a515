package mock

import (
	"fmt"
	"strconv"

	"github.com/go-audio/audio"

	"pipelined.dev/tutorial/media"
)

type kind int

const (
	kindBin kind = iota
	kindSource
	kindFilter
	kindSink
	kindDecodeBin
)

// anyMedia template accepts any media type.
const anyMedia = "ANY"

type padTemplate struct {
	name      string
	direction direction
	media     string
}

type property struct {
	value string
	parse func(string) error
}

type factory struct {
	name      string
	kind      kind
	templates []padTemplate
	props     map[string]property
	// caps of source pads, defined for sources only.
	caps func(e *Element) media.Caps
}

var (
	videoFormat = map[string]interface{}{
		"format":    "I420",
		"width":     320,
		"height":    240,
		"framerate": "30/1",
	}
	testAudioFormat = &audio.Format{
		NumChannels: 1,
		SampleRate:  44100,
	}

	bin = &factory{name: "pipeline", kind: kindBin}

	factories = map[string]*factory{
		"videotestsrc": {
			kind:      kindSource,
			templates: []padTemplate{{"src", srcDirection, "video/x-raw"}},
			props: map[string]property{
				"pattern": enum("smpte", "smpte", "snow", "black", "white", "red", "green", "blue",
					"checkers-1", "checkers-2", "checkers-4", "checkers-8", "circular", "blink",
					"smpte75", "zone-plate", "gamut", "chroma-zone-plate", "solid-color", "ball",
					"smpte100", "bar", "pinwheel", "spokes", "gradient", "colors"),
				"num-buffers": integer(-1),
				"is-live":     boolean(false),
			},
			caps: func(*Element) media.Caps {
				return media.NewCaps("video/x-raw", videoFormat)
			},
		},
		"audiotestsrc": {
			kind:      kindSource,
			templates: []padTemplate{{"src", srcDirection, "audio/x-raw"}},
			props: map[string]property{
				"wave":        enum("sine", "sine", "square", "saw", "triangle", "silence"),
				"freq":        float(440),
				"num-buffers": integer(-1),
				"is-live":     boolean(false),
			},
			caps: func(*Element) media.Caps {
				return audioCaps(testAudioFormat)
			},
		},
		"vertigotv": {
			kind:      kindFilter,
			templates: filterTemplates("video/x-raw"),
			props: map[string]property{
				"speed":      float(0.02),
				"zoom-speed": float(1.01),
			},
		},
		"videoconvert": {
			kind:      kindFilter,
			templates: filterTemplates("video/x-raw"),
			props:     map[string]property{},
		},
		"audioconvert": {
			kind:      kindFilter,
			templates: filterTemplates("audio/x-raw"),
			props:     map[string]property{},
		},
		"autovideosink": {
			kind:      kindSink,
			templates: []padTemplate{{"sink", sinkDirection, "video/x-raw"}},
			props:     map[string]property{"sync": boolean(true)},
		},
		"autoaudiosink": {
			kind:      kindSink,
			templates: []padTemplate{{"sink", sinkDirection, "audio/x-raw"}},
			props:     map[string]property{"sync": boolean(true)},
		},
		"fakesink": {
			kind:      kindSink,
			templates: []padTemplate{{"sink", sinkDirection, anyMedia}},
			props:     map[string]property{"sync": boolean(false)},
		},
		// wavsink encodes raw audio into a wav file at location.
		"wavsink": {
			kind:      kindSink,
			templates: []padTemplate{{"sink", sinkDirection, "audio/x-raw"}},
			props:     map[string]property{"location": text("")},
		},
		"uridecodebin": {
			kind:  kindDecodeBin,
			props: map[string]property{"uri": text("")},
		},
	}
)

func init() {
	for name, f := range factories {
		f.name = name
	}
}

func filterTemplates(media string) []padTemplate {
	return []padTemplate{
		{"sink", sinkDirection, media},
		{"src", srcDirection, media},
	}
}

func enum(value string, values ...string) property {
	return property{
		value: value,
		parse: func(s string) error {
			for _, v := range values {
				if v == s {
					return nil
				}
			}
			return fmt.Errorf("unknown value %q", s)
		},
	}
}

func integer(value int) property {
	return property{
		value: strconv.Itoa(value),
		parse: func(s string) error {
			_, err := strconv.Atoi(s)
			return err
		},
	}
}

func float(value float64) property {
	return property{
		value: strconv.FormatFloat(value, 'f', -1, 64),
		parse: func(s string) error {
			_, err := strconv.ParseFloat(s, 64)
			return err
		},
	}
}

func boolean(value bool) property {
	return property{
		value: strconv.FormatBool(value),
		parse: func(s string) error {
			_, err := strconv.ParseBool(s)
			return err
		},
	}
}

func text(value string) property {
	return property{
		value: value,
		parse: func(string) error { return nil },
	}
}

// audioCaps describes raw interleaved 16 bit audio of provided format.
func audioCaps(f *audio.Format) media.Caps {
	return media.NewCaps("audio/x-raw", map[string]interface{}{
		"format":   "S16LE",
		"layout":   "interleaved",
		"rate":     f.SampleRate,
		"channels": f.NumChannels,
	})
}

// audioFormat extracts audio format from raw audio caps.
func audioFormat(c media.Caps) (*audio.Format, bool) {
	s, ok := c.Structure(0)
	if !ok || s.Name != "audio/x-raw" {
		return nil, false
	}
	rate, ok := s.Fields["rate"].(int)
	if !ok {
		return nil, false
	}
	channels, ok := s.Fields["channels"].(int)
	if !ok {
		return nil, false
	}
	return &audio.Format{SampleRate: rate, NumChannels: channels}, true
}
