package tutorial

import (
	"errors"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/sirupsen/logrus"

	"pipelined.dev/tutorial/media"
	"pipelined.dev/tutorial/metric"
)

const (
	audioType = "audio/x-raw"
	videoType = "video/x-raw"
)

// Linker links pads added at runtime to the audio or video converter. It
// holds weak handles only.
type Linker struct {
	pipeline media.Weak[media.Pipeline]
	audio    media.Weak[media.Element]
	video    media.Weak[media.Element]
	options
}

// NewLinker returns a linker for converters of the pipeline.
func NewLinker(p *media.Pipeline, audio, video *media.Element, opts ...Option) *Linker {
	return &Linker{
		pipeline: p.Downgrade(),
		audio:    audio.Downgrade(),
		video:    video.Downgrade(),
		options:  newOptions(opts),
	}
}

// Attach makes linker handle new pads of the source.
func (l *Linker) Attach(source *media.Element) {
	source.ConnectPadAdded(l.PadAdded)
}

// PadAdded links the new pad to the converter which accepts its media
// type. It does nothing if pipeline or converters are gone. Both
// converters already linked means the pad is ignored.
func (l *Linker) PadAdded(_ *media.Element, pad *media.Pad) {
	pipeline, ok := l.pipeline.Upgrade()
	if !ok {
		return
	}
	audio, ok := l.audio.Upgrade()
	if !ok {
		return
	}
	video, ok := l.video.Upgrade()
	if !ok {
		return
	}
	l.metric.PadAdded()
	l.log.Infof("Received new pad %s from %s", pad.Name(), pipeline.Name())

	audioPad, ok := l.sinkPad(audio, "audio convert")
	if !ok {
		return
	}
	videoPad, ok := l.sinkPad(video, "video convert")
	if !ok {
		return
	}

	if audioPad.IsLinked() && videoPad.IsLinked() {
		l.log.Info("We are already linked. Ignoring.")
		l.metric.Link(mediaTypeOf(pad), metric.LinkSkipped)
		return
	}

	caps, ok := pad.CurrentCaps()
	if !ok {
		l.log.Fatalf("Failed to get caps from new pad %s.", pad.Name())
		return
	}
	structure, ok := caps.Structure(0)
	if !ok {
		l.log.Fatalf("Failed to get first structure of caps %v.", caps)
		return
	}
	mediaType := structure.Name
	if l.enabled(logrus.DebugLevel) {
		l.log.Debugf("new pad caps: %s", spew.Sdump(structure))
	}

	var sink *media.Pad
	switch {
	case strings.HasPrefix(mediaType, audioType):
		sink = audioPad
	case strings.HasPrefix(mediaType, videoType):
		sink = videoPad
	default:
		l.metric.Link(mediaType, metric.LinkUnsupported)
		if l.unsupported == Ignore {
			l.log.Warnf("New pad type %s is not video or audio. Ignoring.", mediaType)
			return
		}
		l.log.Fatalf("New pad type %s is not video or audio.", mediaType)
		return
	}

	if err := pad.Link(sink); err != nil {
		l.metric.Link(mediaType, metric.LinkFailed)
		l.log.Infof("Type is %s but link failed: %v", mediaType, err)
		return
	}
	l.metric.Link(mediaType, metric.LinkSucceeded)
	l.log.Infof("Link succeeded (type %s).", mediaType)
}

// sinkPad returns the sink pad of converter. Missing pad is fatal unless
// the converter was disposed meanwhile.
func (l *Linker) sinkPad(convert *media.Element, name string) (*media.Pad, bool) {
	pad, err := convert.StaticPad("sink")
	if err != nil {
		if !errors.Is(err, media.ErrDisposed) {
			l.log.Fatalf("Failed to get static sink pad from %s: %v", name, err)
		}
		return nil, false
	}
	return pad, true
}

// mediaTypeOf returns the media type of pad or "unknown" if caps are not
// negotiated.
func mediaTypeOf(pad *media.Pad) string {
	if caps, ok := pad.CurrentCaps(); ok {
		if s, ok := caps.Structure(0); ok {
			return s.Name
		}
	}
	return "unknown"
}
