package mock_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-audio/wav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"pipelined.dev/tutorial/media"
	"pipelined.dev/tutorial/mock"
)

// webm is the shortest header detected as webm container.
var webm = []byte("\x1a\x45\xdf\xa3\x9f\x42\x86\x81\x01\x42\xf7\x81\x01\x42\xf2\x81\x04\x42\xf3\x81\x08\x42\x82\x84webm\x42\x87\x81\x02\x42\x85\x81\x02")

const timeout = 5 * time.Second

func setup(t *testing.T, options ...mock.Option) {
	t.Helper()
	require.NoError(t, media.Init(mock.New(options...)))
	t.Cleanup(media.Deinit)
}

func newPipeline(t *testing.T, elements ...[2]string) (*media.Pipeline, map[string]*media.Element) {
	t.Helper()
	p, err := media.NewPipeline("test-pipeline")
	require.NoError(t, err)
	m := make(map[string]*media.Element)
	for _, e := range elements {
		el, err := media.MakeElement(e[0], e[1])
		require.NoError(t, err)
		require.NoError(t, p.Add(el))
		m[e[1]] = el
	}
	t.Cleanup(p.Dispose)
	return p, m
}

// waitFor pops messages until one of provided type is received.
func waitFor(t *testing.T, bus *media.Bus, mt media.MessageType) media.Message {
	t.Helper()
	for {
		m, ok := bus.TimedPop(timeout)
		require.True(t, ok, "timeout waiting for %v", mt)
		if m.Type() == mt {
			return m
		}
		if e, ok := m.(*media.ErrorMessage); ok {
			t.Fatalf("unexpected error: %v %s", e.Err, e.Debug)
		}
	}
}

func sink(e *media.Element) *mock.Element {
	return e.Backend().(*mock.Element)
}

func TestTestSource(t *testing.T) {
	defer goleak.VerifyNone(t)
	setup(t)
	p, el := newPipeline(t,
		[2]string{"videotestsrc", "source"},
		[2]string{"vertigotv", "filter"},
		[2]string{"videoconvert", "convert"},
		[2]string{"autovideosink", "sink"},
	)
	require.NoError(t, el["source"].SetProperty("num-buffers", "5"))
	require.NoError(t, el["source"].SetProperty("pattern", "ball"))
	require.NoError(t, media.LinkMany(el["source"], el["filter"], el["convert"], el["sink"]))

	require.NoError(t, p.SetState(media.StatePlaying))
	eos := waitFor(t, p.Bus(), media.MessageEOS)
	assert.True(t, p.IsSourceOf(eos))
	require.NoError(t, p.SetState(media.StateNull))

	assert.Equal(t, int64(5), sink(el["sink"]).Rendered())
	assert.Equal(t, "ball", sink(el["source"]).Property("pattern"))
	pad, err := el["sink"].StaticPad("sink")
	require.NoError(t, err)
	caps, ok := pad.CurrentCaps()
	require.True(t, ok)
	s, _ := caps.Structure(0)
	assert.Equal(t, "video/x-raw", s.Name)
}

func TestStateChanges(t *testing.T) {
	defer goleak.VerifyNone(t)
	setup(t)
	p, el := newPipeline(t,
		[2]string{"videotestsrc", "source"},
		[2]string{"fakesink", "sink"},
	)
	require.NoError(t, el["source"].Link(el["sink"]))
	require.NoError(t, p.SetState(media.StatePlaying))
	require.NoError(t, p.SetState(media.StateNull))
	assert.Equal(t, media.StateNull, p.State())

	var changes []media.State
	for p.Bus().Len() > 0 {
		m, ok := p.Bus().TimedPop(0)
		require.True(t, ok)
		if sc, ok := m.(*media.StateChanged); ok && p.IsSourceOf(sc) {
			assert.Equal(t, sc.Old.Next(sc.New), sc.New)
			changes = append(changes, sc.New)
		}
	}
	assert.Equal(t, []media.State{
		media.StateReady,
		media.StatePaused,
		media.StatePlaying,
		media.StatePaused,
		media.StateReady,
		media.StateNull,
	}, changes)
	assert.Equal(t, []media.State{media.StatePlaying, media.StateNull}, p.Backend().(*mock.Pipeline).Requested())
}

func TestNotLinked(t *testing.T) {
	defer goleak.VerifyNone(t)
	setup(t)
	p, _ := newPipeline(t,
		[2]string{"videotestsrc", "source"},
	)
	require.NoError(t, p.SetState(media.StatePlaying))
	m := waitFor(t, p.Bus(), media.MessageError)
	require.NoError(t, p.SetState(media.StateNull))

	e := m.(*media.ErrorMessage)
	assert.Equal(t, "source", e.Source().Name())
	assert.Equal(t, "Internal data stream error.", e.Err.Error())
	assert.Contains(t, e.Debug, "/pipeline:test-pipeline/videotestsrc:source")
	assert.Contains(t, e.Debug, "not-linked")
}

func TestLink(t *testing.T) {
	setup(t)
	_, el := newPipeline(t,
		[2]string{"videotestsrc", "video"},
		[2]string{"audiotestsrc", "audio"},
		[2]string{"autoaudiosink", "sink"},
		[2]string{"uridecodebin", "decode"},
	)
	assert.ErrorIs(t, el["video"].Link(el["sink"]), media.ErrNoFormat)
	assert.ErrorIs(t, el["decode"].Link(el["sink"]), media.ErrNoSuchPad)
	assert.NoError(t, el["audio"].Link(el["sink"]))
	assert.ErrorIs(t, el["audio"].Link(el["sink"]), media.ErrWasLinked)

	src, err := el["video"].StaticPad("src")
	require.NoError(t, err)
	dst, err := el["sink"].StaticPad("sink")
	require.NoError(t, err)
	assert.ErrorIs(t, src.Link(dst), media.ErrWasLinked)
	assert.ErrorIs(t, dst.Link(src), media.ErrWrongDirection)
	assert.Equal(t, int64(3), dst.Backend().(*mock.Pad).LinkAttempts())

	_, err = el["sink"].StaticPad("src")
	assert.ErrorIs(t, err, media.ErrNoSuchPad)

	orphan, err := media.MakeElement("fakesink", "")
	require.NoError(t, err)
	assert.ErrorIs(t, el["audio"].Link(orphan), media.ErrWrongHierarchy)
}

func TestProperties(t *testing.T) {
	setup(t)
	e, err := media.MakeElement("videotestsrc", "source")
	require.NoError(t, err)
	assert.Equal(t, "smpte", sink(e).Property("pattern"))
	assert.NoError(t, e.SetProperty("pattern", "snow"))
	assert.ErrorIs(t, e.SetProperty("pattern", "stripes"), media.ErrInvalidProperty)
	assert.ErrorIs(t, e.SetProperty("num-buffers", "many"), media.ErrInvalidProperty)
	assert.ErrorIs(t, e.SetProperty("uri", "file:///dev/null"), media.ErrNoSuchProperty)
	assert.Equal(t, "snow", sink(e).Property("pattern"))

	_, err = media.MakeElement("vp9dec", "")
	assert.ErrorIs(t, err, media.ErrNoSuchFactory)
	assert.Contains(t, mock.Factories(), "uridecodebin")
}

func TestFailingState(t *testing.T) {
	setup(t, mock.WithFailingState(media.StatePlaying))
	p, _ := newPipeline(t)
	assert.ErrorIs(t, p.SetState(media.StatePlaying), media.ErrStateChange)
	assert.Equal(t, media.StateNull, p.State())
	assert.NoError(t, p.SetState(media.StatePaused))
	assert.NoError(t, p.SetState(media.StateNull))
}

func TestDecodeBin(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/sintel.webm" {
			http.NotFound(w, r)
			return
		}
		w.Write(webm)
	}))
	defer server.Close()

	t.Run("webm", func(t *testing.T) {
		setup(t, mock.WithStreamBuffers(3))
		p, el := newPipeline(t,
			[2]string{"uridecodebin", "source"},
			[2]string{"audioconvert", "audio convert"},
			[2]string{"autoaudiosink", "audio sink"},
			[2]string{"videoconvert", "video convert"},
			[2]string{"autovideosink", "video sink"},
		)
		require.NoError(t, el["audio convert"].Link(el["audio sink"]))
		require.NoError(t, el["video convert"].Link(el["video sink"]))
		require.NoError(t, el["source"].SetProperty("uri", server.URL+"/sintel.webm"))

		added := make(chan string, 2)
		el["source"].ConnectPadAdded(func(src *media.Element, pad *media.Pad) {
			caps, _ := pad.CurrentCaps()
			s, _ := caps.Structure(0)
			convert := el["video convert"]
			if s.Name == "audio/x-raw" {
				convert = el["audio convert"]
			}
			sinkPad, err := convert.StaticPad("sink")
			if assert.NoError(t, err) {
				assert.NoError(t, pad.Link(sinkPad))
			}
			added <- s.Name
		})

		require.NoError(t, p.SetState(media.StatePlaying))
		waitFor(t, p.Bus(), media.MessageEOS)
		require.NoError(t, p.SetState(media.StateNull))
		close(added)

		var types []string
		for s := range added {
			types = append(types, s)
		}
		assert.ElementsMatch(t, []string{"audio/x-raw", "video/x-raw"}, types)
		assert.Equal(t, int64(3), sink(el["audio sink"]).Rendered())
		assert.Equal(t, int64(3), sink(el["video sink"]).Rendered())
	})
	t.Run("not found", func(t *testing.T) {
		setup(t)
		p, el := newPipeline(t, [2]string{"uridecodebin", "source"})
		require.NoError(t, el["source"].SetProperty("uri", server.URL+"/missing.webm"))
		require.NoError(t, p.SetState(media.StatePlaying))
		m := waitFor(t, p.Bus(), media.MessageError)
		require.NoError(t, p.SetState(media.StateNull))

		e := m.(*media.ErrorMessage)
		assert.Equal(t, el["source"], e.Source())
		assert.Equal(t, "Could not open resource for reading.", e.Err.Error())
		assert.Contains(t, e.Debug, "404")
	})
	t.Run("no uri", func(t *testing.T) {
		setup(t)
		p, _ := newPipeline(t, [2]string{"uridecodebin", "source"})
		require.NoError(t, p.SetState(media.StatePaused))
		m := waitFor(t, p.Bus(), media.MessageError)
		require.NoError(t, p.SetState(media.StateNull))
		assert.Equal(t, "No URI specified to play from.", m.(*media.ErrorMessage).Err.Error())
	})
}

func TestWavSink(t *testing.T) {
	defer goleak.VerifyNone(t)
	setup(t)
	location := filepath.Join(t.TempDir(), "out.wav")
	p, el := newPipeline(t,
		[2]string{"audiotestsrc", "source"},
		[2]string{"audioconvert", "convert"},
		[2]string{"wavsink", "sink"},
	)
	require.NoError(t, el["source"].SetProperty("num-buffers", "3"))
	require.NoError(t, el["source"].SetProperty("wave", "square"))
	require.NoError(t, el["sink"].SetProperty("location", location))
	require.NoError(t, media.LinkMany(el["source"], el["convert"], el["sink"]))

	require.NoError(t, p.SetState(media.StatePlaying))
	waitFor(t, p.Bus(), media.MessageEOS)
	require.NoError(t, p.SetState(media.StateNull))

	f, err := os.Open(location)
	require.NoError(t, err)
	defer f.Close()
	d := wav.NewDecoder(f)
	require.True(t, d.IsValidFile())
	buf, err := d.FullPCMBuffer()
	require.NoError(t, err)
	assert.Equal(t, 1, buf.Format.NumChannels)
	assert.Equal(t, 44100, buf.Format.SampleRate)
	assert.Equal(t, 3*1024, buf.NumFrames())
}

func TestWavSinkNoLocation(t *testing.T) {
	setup(t)
	p, _ := newPipeline(t, [2]string{"wavsink", "sink"})
	assert.ErrorIs(t, p.SetState(media.StatePlaying), media.ErrStateChange)
	m := waitFor(t, p.Bus(), media.MessageError)
	assert.Equal(t, "No file name specified for writing.", m.(*media.ErrorMessage).Err.Error())
}
