package tutorial

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	// PipelineName is the name of tutorial pipelines.
	PipelineName = "test-pipeline"
	// DefaultURI is played by the dynamic pipeline by default.
	DefaultURI = "https://www.freedesktop.org/software/gstreamer-sdk/data/media/sintel_trailer-480p.webm"
	// DefaultPattern is the test pattern of the static pipeline.
	DefaultPattern = "smpte"
)

// Element names of the dynamic pipeline.
const (
	SourceName       = "source"
	AudioConvertName = "audio convert"
	VideoConvertName = "video convert"
	AudioSinkName    = "audio sink"
	VideoSinkName    = "video sink"
)

// ErrInvalidLayout is returned when layout can't be built.
var ErrInvalidLayout = errors.New("invalid layout")

// ElementSpec describes a single element.
type ElementSpec struct {
	Factory    string            `yaml:"factory"`
	Name       string            `yaml:"name"`
	Properties map[string]string `yaml:"properties,omitempty"`
}

// Layout describes a pipeline. Every entry of Links is a chain of element
// names linked in sequence.
type Layout struct {
	Name     string        `yaml:"name"`
	Elements []ElementSpec `yaml:"elements"`
	Links    [][]string    `yaml:"links,omitempty"`
}

// LoadLayout decodes yaml layout and validates it. Unknown fields are
// rejected.
func LoadLayout(r io.Reader) (Layout, error) {
	var l Layout
	d := yaml.NewDecoder(r)
	d.KnownFields(true)
	if err := d.Decode(&l); err != nil {
		return Layout{}, fmt.Errorf("%w: %v", ErrInvalidLayout, err)
	}
	if l.Name == "" {
		l.Name = PipelineName
	}
	if err := l.Validate(); err != nil {
		return Layout{}, err
	}
	return l, nil
}

// Validate checks that element names are unique and links refer to
// existing elements.
func (l Layout) Validate() error {
	if len(l.Elements) == 0 {
		return fmt.Errorf("%w: no elements", ErrInvalidLayout)
	}
	names := make(map[string]struct{}, len(l.Elements))
	for i, e := range l.Elements {
		if e.Factory == "" {
			return fmt.Errorf("%w: element %d has no factory", ErrInvalidLayout, i)
		}
		if e.Name == "" {
			return fmt.Errorf("%w: element %d has no name", ErrInvalidLayout, i)
		}
		if _, ok := names[e.Name]; ok || e.Name == l.Name {
			return fmt.Errorf("%w: duplicate name %q", ErrInvalidLayout, e.Name)
		}
		names[e.Name] = struct{}{}
	}
	for _, chain := range l.Links {
		if len(chain) < 2 {
			return fmt.Errorf("%w: link %v needs at least two elements", ErrInvalidLayout, chain)
		}
		for _, name := range chain {
			if _, ok := names[name]; !ok {
				return fmt.Errorf("%w: link refers to unknown element %q", ErrInvalidLayout, name)
			}
		}
	}
	return nil
}

// TestPatternLayout returns the static pipeline: test video source, vertigo
// filter, converter and video sink linked in sequence. If numBuffers is
// negative, the source never ends.
func TestPatternLayout(pattern string, numBuffers int) Layout {
	source := ElementSpec{
		Factory:    "videotestsrc",
		Name:       "source",
		Properties: map[string]string{"pattern": pattern},
	}
	if numBuffers >= 0 {
		source.Properties["num-buffers"] = strconv.Itoa(numBuffers)
	}
	return Layout{
		Name: PipelineName,
		Elements: []ElementSpec{
			source,
			{Factory: "vertigotv", Name: "filter"},
			{Factory: "videoconvert", Name: "element"},
			{Factory: "autovideosink", Name: "sink"},
		},
		Links: [][]string{{"source", "filter", "element", "sink"}},
	}
}

// DynamicLayout returns the pipeline which decodes uri. Source is not
// linked, its pads are linked to converters at runtime. If audioOut is
// not empty, audio is written into wav file instead of audio device.
func DynamicLayout(uri, audioOut string) Layout {
	audioSink := ElementSpec{Factory: "autoaudiosink", Name: AudioSinkName}
	if audioOut != "" {
		audioSink = ElementSpec{
			Factory:    "wavsink",
			Name:       AudioSinkName,
			Properties: map[string]string{"location": audioOut},
		}
	}
	return Layout{
		Name: PipelineName,
		Elements: []ElementSpec{
			{Factory: "uridecodebin", Name: SourceName, Properties: map[string]string{"uri": uri}},
			{Factory: "audioconvert", Name: AudioConvertName},
			audioSink,
			{Factory: "videoconvert", Name: VideoConvertName},
			{Factory: "autovideosink", Name: VideoSinkName},
		},
		Links: [][]string{
			{AudioConvertName, AudioSinkName},
			{VideoConvertName, VideoSinkName},
		},
	}
}
