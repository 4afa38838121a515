//go:build gst

package gstreamer_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pipelined.dev/tutorial/gstreamer"
	"pipelined.dev/tutorial/media"
)

func TestStaticPadIdentity(t *testing.T) {
	require.NoError(t, media.Init(gstreamer.New()))
	defer media.Deinit()

	e, err := media.MakeElement("audioconvert", "audio convert")
	require.NoError(t, err)
	first, err := e.StaticPad("sink")
	require.NoError(t, err)
	second, err := e.StaticPad("sink")
	require.NoError(t, err)
	assert.Same(t, first, second)
	assert.Same(t, first.Backend(), second.Backend())
}
