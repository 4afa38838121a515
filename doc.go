/*
Package tutorial builds and drives small media pipelines on top of the
media framework.

Concept

A tutorial pipeline is described by a layout: the list of elements, each
created by a named factory, and the chains of elements linked in sequence.

    layout := tutorial.TestPatternLayout("smpte", -1)
    built, err := tutorial.Build(layout)

Build creates every element, adds them to a single pipeline and links
them. Elements which expose their outputs only at runtime are left
unlinked.

Dynamic linking

Decoders like uridecodebin add pads once they discover the streams of the
media. Linker reacts to such pads and links them to the audio or video
converter depending on the pad's media type:

    linker := tutorial.NewLinker(built.Pipeline, audioConvert, videoConvert)
    linker.Attach(source)

Linker only holds weak handles, so it never keeps the pipeline alive and
does nothing once the pipeline is disposed. It's invoked on framework
goroutines, possibly concurrently.

Lifecycle

Driver sets the pipeline to the playing state and consumes bus messages
until end of stream or error:

    d := tutorial.NewDriver(built.Pipeline, tutorial.WithStateChanges())
    termination, err := d.Run(context.Background())

The pipeline is always set to the null state before Run returns.
*/
package tutorial
