package tutorial_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipelined.dev/tutorial"
)

func TestLoadLayout(t *testing.T) {
	l, err := tutorial.LoadLayout(strings.NewReader(`
elements:
  - factory: audiotestsrc
    name: source
    properties:
      wave: square
      num-buffers: "10"
  - factory: audioconvert
    name: convert
  - factory: autoaudiosink
    name: sink
links:
  - [source, convert, sink]
`))
	require.NoError(t, err)
	assert.Equal(t, tutorial.Layout{
		Name: tutorial.PipelineName,
		Elements: []tutorial.ElementSpec{
			{
				Factory:    "audiotestsrc",
				Name:       "source",
				Properties: map[string]string{"wave": "square", "num-buffers": "10"},
			},
			{Factory: "audioconvert", Name: "convert"},
			{Factory: "autoaudiosink", Name: "sink"},
		},
		Links: [][]string{{"source", "convert", "sink"}},
	}, l)

	_, err = tutorial.LoadLayout(strings.NewReader(`
elements:
  - factory: fakesink
    name: sink
    caps: audio/x-raw
`))
	assert.ErrorIs(t, err, tutorial.ErrInvalidLayout)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		layout tutorial.Layout
		valid  bool
	}{
		{
			name:   "test pattern",
			layout: tutorial.TestPatternLayout("smpte", -1),
			valid:  true,
		},
		{
			name:   "dynamic",
			layout: tutorial.DynamicLayout(tutorial.DefaultURI, ""),
			valid:  true,
		},
		{
			name:   "empty",
			layout: tutorial.Layout{Name: "empty"},
		},
		{
			name: "no factory",
			layout: tutorial.Layout{
				Elements: []tutorial.ElementSpec{{Name: "sink"}},
			},
		},
		{
			name: "no name",
			layout: tutorial.Layout{
				Elements: []tutorial.ElementSpec{{Factory: "fakesink"}},
			},
		},
		{
			name: "duplicate name",
			layout: tutorial.Layout{
				Elements: []tutorial.ElementSpec{
					{Factory: "fakesink", Name: "sink"},
					{Factory: "fakesink", Name: "sink"},
				},
			},
		},
		{
			name: "pipeline name",
			layout: tutorial.Layout{
				Name:     "sink",
				Elements: []tutorial.ElementSpec{{Factory: "fakesink", Name: "sink"}},
			},
		},
		{
			name: "unknown link",
			layout: tutorial.Layout{
				Elements: []tutorial.ElementSpec{{Factory: "fakesink", Name: "sink"}},
				Links:    [][]string{{"source", "sink"}},
			},
		},
		{
			name: "short link",
			layout: tutorial.Layout{
				Elements: []tutorial.ElementSpec{{Factory: "fakesink", Name: "sink"}},
				Links:    [][]string{{"sink"}},
			},
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.layout.Validate()
			if test.valid {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tutorial.ErrInvalidLayout)
		})
	}
}

func TestLayouts(t *testing.T) {
	l := tutorial.TestPatternLayout("smpte", -1)
	assert.Equal(t, map[string]string{"pattern": "smpte"}, l.Elements[0].Properties)
	l = tutorial.TestPatternLayout("ball", 10)
	assert.Equal(t, map[string]string{"pattern": "ball", "num-buffers": "10"}, l.Elements[0].Properties)

	l = tutorial.DynamicLayout("file:///tmp/sintel.webm", "")
	assert.Equal(t, "autoaudiosink", l.Elements[2].Factory)
	l = tutorial.DynamicLayout("file:///tmp/sintel.webm", "/tmp/out.wav")
	assert.Equal(t, tutorial.ElementSpec{
		Factory:    "wavsink",
		Name:       tutorial.AudioSinkName,
		Properties: map[string]string{"location": "/tmp/out.wav"},
	}, l.Elements[2])
}
