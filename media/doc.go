/*
Package media is a thin, backend agnostic facade over a multimedia
framework with GStreamer-like element, pad and bus abstractions.

Concept

The framework is consumed through four primitives:

    create an element from a named factory;
    add elements to a pipeline;
    link an output pad to an input pad;
    pop the next message from the pipeline bus.

Everything else (negotiation, buffering, rendering, threading) happens
inside a Backend. Package mock provides an in-process backend, package
gstreamer wraps the real framework.

Lifecycle

The framework is process-wide. It must be initialized once with Init
before any element is created and released with Deinit:

    if err := media.Init(mock.New()); err != nil {
        return err
    }
    defer media.Deinit()

Ownership

A Pipeline owns every Element added to it. Callbacks that fire on
backend goroutines should not keep owning pointers; they hold Weak
handles instead and Upgrade them on every invocation:

    pw := pipeline.Downgrade()
    source.ConnectPadAdded(func(src *media.Element, pad *media.Pad) {
        p, ok := pw.Upgrade()
        if !ok {
            return
        }
        ...
    })
*/
package media
