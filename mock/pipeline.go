package mock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"pipelined.dev/tutorial/internal/runtime"
	"pipelined.dev/tutorial/media"
)

// Pipeline implements media.PipelineBackend. State changes are done one
// step at a time and every step is posted on the bus for each child and
// for the pipeline itself.
type Pipeline struct {
	Element
	post func(media.Message)

	// serializes state changes.
	stateMu sync.Mutex
	current atomic.Int64

	childMu  sync.Mutex
	children []*Element

	reqMu     sync.Mutex
	requested []media.State

	// streaming is active between paused and ready.
	cancel context.CancelFunc
	done   chan struct{}

	// playing is closed while pipeline is in playing state.
	gateMu  sync.Mutex
	playing chan struct{}

	disposed atomic.Bool
}

// source is a started streaming executor.
type source struct {
	el   *Element
	errc <-chan error
}

// Add implements media.PipelineBackend.
func (p *Pipeline) Add(eb media.ElementBackend) error {
	e, ok := eb.(*Element)
	if !ok {
		return media.ErrWrongHierarchy
	}
	e.mu.Lock()
	if e.pipeline != nil {
		e.mu.Unlock()
		return media.ErrOwned
	}
	e.pipeline = p
	e.mu.Unlock()

	p.childMu.Lock()
	defer p.childMu.Unlock()
	p.children = append(p.children, e)
	return nil
}

// elements returns a snapshot of children.
func (p *Pipeline) elements() []*Element {
	p.childMu.Lock()
	defer p.childMu.Unlock()
	return append([]*Element(nil), p.children...)
}

// State implements media.PipelineBackend.
func (p *Pipeline) State() media.State {
	return media.State(p.current.Load())
}

// Requested returns every state passed to SetState in order.
func (p *Pipeline) Requested() []media.State {
	p.reqMu.Lock()
	defer p.reqMu.Unlock()
	return append([]media.State(nil), p.requested...)
}

// Disposed reports if the pipeline was disposed.
func (p *Pipeline) Disposed() bool {
	return p.disposed.Load()
}

// Dispose implements media.PipelineBackend.
func (p *Pipeline) Dispose() {
	p.disposed.Store(true)
}

// SetState implements media.PipelineBackend.
func (p *Pipeline) SetState(target media.State) error {
	p.reqMu.Lock()
	p.requested = append(p.requested, target)
	p.reqMu.Unlock()

	p.stateMu.Lock()
	defer p.stateMu.Unlock()
	if err, ok := p.backend.failing[target]; ok {
		return err
	}
	for s := p.State(); s != target; s = p.State() {
		next := s.Next(target)
		if err := p.change(s, next); err != nil {
			return err
		}
		p.current.Store(int64(next))
		pending := target
		if next == target {
			pending = media.StateVoidPending
		}
		p.postStateChanged(s, next, pending)
		if next == media.StatePlaying {
			// streaming starts once playing is announced.
			p.gateMu.Lock()
			close(p.playing)
			p.gateMu.Unlock()
		}
	}
	return nil
}

func (p *Pipeline) change(from, to media.State) error {
	p.log.Debugf("state change %v to %v", from, to)
	switch {
	case from == media.StateNull && to == media.StateReady:
		for _, e := range p.elements() {
			if err := e.start(); err != nil {
				p.postError(e, err)
				return fmt.Errorf("%s: %w", e.name, err)
			}
		}
	case from == media.StateReady && to == media.StatePaused:
		p.startStreaming()
	case from == media.StatePlaying && to == media.StatePaused:
		p.gateMu.Lock()
		p.playing = make(chan struct{})
		p.gateMu.Unlock()
	case from == media.StatePaused && to == media.StateReady:
		p.cancel()
		<-p.done
	case from == media.StateReady && to == media.StateNull:
		var errs runtime.Errors
		for _, e := range p.elements() {
			if err := e.stop(); err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", e.name, err))
			}
		}
		return errs.Ret()
	}
	return nil
}

// startStreaming starts an executor for every source.
func (p *Pipeline) startStreaming() {
	ctx, cancel := context.WithCancel(context.Background())
	p.cancel = cancel
	p.done = make(chan struct{})
	p.gateMu.Lock()
	p.playing = make(chan struct{})
	p.gateMu.Unlock()

	var sources []source
	for _, e := range p.elements() {
		var ex runtime.Executor
		switch e.factory.kind {
		case kindSource:
			ex = newTestSource(p, e)
		case kindDecodeBin:
			ex = newDecodeBin(p, e)
		default:
			continue
		}
		sources = append(sources, source{el: e, errc: runtime.Start(ctx, ex)})
	}
	go p.watch(ctx, sources)
}

// watch posts streaming errors and EOS once all sources are done.
func (p *Pipeline) watch(ctx context.Context, sources []source) {
	defer close(p.done)
	var (
		wg     sync.WaitGroup
		failed atomic.Bool
	)
	wg.Add(len(sources))
	for _, s := range sources {
		go func(s source) {
			defer wg.Done()
			for err := range s.errc {
				if errors.Is(err, runtime.ErrContextDone) {
					continue
				}
				failed.Store(true)
				p.postError(s.el, err)
			}
		}(s)
	}
	wg.Wait()
	if len(sources) > 0 && !failed.Load() && ctx.Err() == nil {
		p.log.Debug("all sources are done")
		p.postFrom(&p.Element, &media.EOS{})
	}
}

// waitPlaying blocks until pipeline is playing.
func (p *Pipeline) waitPlaying(ctx context.Context) error {
	p.gateMu.Lock()
	playing := p.playing
	p.gateMu.Unlock()
	select {
	case <-playing:
		return nil
	case <-ctx.Done():
		return runtime.ErrContextDone
	}
}

func (p *Pipeline) postStateChanged(old, current, pending media.State) {
	children := p.elements()
	for i := len(children) - 1; i >= 0; i-- {
		p.postFrom(children[i], &media.StateChanged{Old: old, New: current, Pending: pending})
	}
	p.postFrom(&p.Element, &media.StateChanged{Old: old, New: current, Pending: pending})
}

func (p *Pipeline) postError(e *Element, err error) {
	m := &media.ErrorMessage{Err: errDataFlow}
	var ee *elementError
	if errors.As(err, &ee) {
		m.Err = ee.err
		m.Debug = fmt.Sprintf("%s:\n%s", e.path(), ee.debug)
	} else {
		m.Debug = fmt.Sprintf("%s:\nstreaming stopped, reason %v", e.path(), err)
	}
	p.postFrom(e, m)
}

// postFrom sets message source and posts it.
func (p *Pipeline) postFrom(e *Element, m media.Message) {
	setSource(m, e.name)
	p.post(m)
}

func setSource(m media.Message, name string) {
	switch v := m.(type) {
	case *media.EOS:
		v.SrcName = name
	case *media.ErrorMessage:
		v.SrcName = name
	case *media.Warning:
		v.SrcName = name
	case *media.StateChanged:
		v.SrcName = name
	case *media.StreamStart:
		v.SrcName = name
	case *media.AsyncDone:
		v.SrcName = name
	}
}
