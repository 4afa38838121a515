package mock

import (
	"errors"
	"os"
	"sync"

	"github.com/go-audio/wav"

	"pipelined.dev/tutorial/internal/runtime"
)

// wavAudioFormat is PCM.
const wavAudioFormat = 1

// wavWriter encodes raw audio buffers into a file.
type wavWriter struct {
	mu      sync.Mutex
	file    *os.File
	encoder *wav.Encoder
}

func (w *wavWriter) open(location string) error {
	if location == "" {
		return &elementError{err: errors.New("No file name specified for writing.")}
	}
	f, err := os.Create(location)
	if err != nil {
		return &elementError{err: errors.New("Could not open file for writing."), debug: err.Error()}
	}
	w.mu.Lock()
	w.file = f
	w.mu.Unlock()
	return nil
}

// write lazily creates encoder, because format is known with the first
// buffer only.
func (w *wavWriter) write(b *Buffer) error {
	if b.Audio == nil {
		return errors.New("wav sink got buffer without samples")
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return errors.New("wav sink is not started")
	}
	if w.encoder == nil {
		f := b.Audio.Format
		w.encoder = wav.NewEncoder(w.file, f.SampleRate, b.Audio.SourceBitDepth, f.NumChannels, wavAudioFormat)
	}
	return w.encoder.Write(b.Audio)
}

func (w *wavWriter) close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	var errs runtime.Errors
	if w.encoder != nil {
		if err := w.encoder.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if err := w.file.Close(); err != nil {
		errs = append(errs, err)
	}
	w.file, w.encoder = nil, nil
	return errs.Ret()
}
