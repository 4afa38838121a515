package mock

import (
	"math"

	"github.com/go-audio/audio"

	"pipelined.dev/tutorial/internal/pool"
	"pipelined.dev/tutorial/media"
)

// samplesPerBuffer is the number of audio frames in every raw audio buffer.
const samplesPerBuffer = 1024

// Buffer is a unit of data flowing between pads. Only raw audio buffers
// carry samples, video frames are never rendered.
type Buffer struct {
	Caps   media.Caps
	Offset int
	Audio  *audio.IntBuffer
}

// item is either a buffer or the end of stream event.
type item struct {
	buf *Buffer
	eos bool
}

// wave generates samples of 16 bit audio.
type wave struct {
	shape string
	freq  float64
}

func newBuffer(c media.Caps, offset int, w wave) *Buffer {
	b := &Buffer{Caps: c, Offset: offset}
	if f, ok := audioFormat(c); ok {
		b.Audio = w.generate(f, offset)
	}
	return b
}

// release returns samples to the pool. Buffer must not be used after.
func (b *Buffer) release() {
	if b.Audio == nil {
		return
	}
	pool.Get(samplesPerBuffer, b.Audio.Format.NumChannels).Free(b.Audio.Data)
	b.Audio = nil
}

func (w wave) generate(f *audio.Format, offset int) *audio.IntBuffer {
	const amplitude = math.MaxInt16 / 2
	data := pool.Get(samplesPerBuffer, f.NumChannels).Alloc()
	for i := 0; i < samplesPerBuffer; i++ {
		t := float64(offset*samplesPerBuffer+i) / float64(f.SampleRate)
		phase := math.Mod(t*w.freq, 1)
		var v float64
		switch w.shape {
		case "silence":
		case "square":
			v = 1
			if phase >= 0.5 {
				v = -1
			}
		case "saw":
			v = 2*phase - 1
		case "triangle":
			v = 1 - 4*math.Abs(phase-0.5)
		default:
			v = math.Sin(2 * math.Pi * phase)
		}
		for c := 0; c < f.NumChannels; c++ {
			data[i*f.NumChannels+c] = int(v * amplitude)
		}
	}
	return &audio.IntBuffer{
		Format:         f,
		Data:           data,
		SourceBitDepth: 16,
	}
}
