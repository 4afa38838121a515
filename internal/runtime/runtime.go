// Package runtime runs streaming executors in their own goroutines.
package runtime

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ErrContextDone is returned by executors when the context is done.
var ErrContextDone = errors.New("context is done")

type (
	// Executor executes a single streaming iteration. Execute returns
	// io.EOF when the executor is done.
	Executor interface {
		Execute(context.Context) error
		Start(context.Context) error
		Flush(context.Context) error
	}

	// FlushFunc is a closure that triggers executor flush hook.
	FlushFunc func(ctx context.Context) error
)

// Flush calls the flush hook.
func (fn FlushFunc) Flush(ctx context.Context) error {
	if fn == nil {
		return nil
	}
	return fn(ctx)
}

// Start runs the executor in a new goroutine. Returned channel is closed
// when executor is done.
func Start(ctx context.Context, e Executor) <-chan error {
	// start, run and flush can fail at most twice together.
	errc := make(chan error, 2)
	go run(ctx, e, errc)
	return errc
}

func run(ctx context.Context, e Executor, errc chan<- error) {
	defer close(errc)
	if err := e.Start(ctx); err != nil {
		errc <- fmt.Errorf("error starting component: %w", err)
		return
	}
	defer func() {
		if err := e.Flush(ctx); err != nil {
			errc <- fmt.Errorf("error flushing component: %w", err)
		}
	}()

	var err error
	for err == nil {
		err = e.Execute(ctx)
	}
	if err != io.EOF && !errors.Is(err, ErrContextDone) {
		errc <- err
	}
}

// Errors wraps errors that might occur when multiple executors
// are failing.
type Errors []error

func (e Errors) Error() string {
	s := []string{}
	for _, se := range e {
		s = append(s, se.Error())
	}
	return strings.Join(s, ",")
}

// Is checks if any of errors match provided sentinel error.
func (e Errors) Is(err error) bool {
	for _, se := range e {
		if errors.Is(se, err) {
			return true
		}
	}
	return false
}

// Ret returns untyped nil if error is list is empty.
func (e Errors) Ret() error {
	if len(e) > 0 {
		return e
	}
	return nil
}
