package main

import (
	"context"
	"flag"
	"fmt"

	"pipelined.dev/tutorial"
	"pipelined.dev/tutorial/config"
)

// dynamicCommand plays uri linking decoded streams at runtime.
type dynamicCommand struct {
	cfg *config.Config
}

func (cmd *dynamicCommand) Name() string {
	return "basic-tutorial-3"
}

func (cmd *dynamicCommand) Help() string {
	return "Play uri linking decoded audio and video streams dynamically"
}

func (cmd *dynamicCommand) Register(cfg *config.Config, fs *flag.FlagSet) {
	cmd.cfg = cfg
	cfg.RegisterDynamic(fs)
}

func (cmd *dynamicCommand) Run(s *session) error {
	built, err := tutorial.Build(tutorial.DynamicLayout(cmd.cfg.URI, cmd.cfg.AudioOut))
	if err != nil {
		return fmt.Errorf("could not build the pipeline: %w", err)
	}
	defer built.Pipeline.Dispose()

	options := []tutorial.Option{
		tutorial.WithLogger(s.log),
		tutorial.WithMetric(s.metric),
	}
	if cmd.cfg.IgnoreUnknown {
		options = append(options, tutorial.WithUnsupported(tutorial.Ignore))
	}
	linker := tutorial.NewLinker(
		built.Pipeline,
		built.Element(tutorial.AudioConvertName),
		built.Element(tutorial.VideoConvertName),
		options...,
	)
	linker.Attach(built.Element(tutorial.SourceName))

	d := tutorial.NewDriver(built.Pipeline, append(options, tutorial.WithStateChanges())...)
	termination, err := d.Run(context.Background())
	if err != nil {
		return err
	}
	s.log.Debugf("pipeline terminated with %v", termination)
	return nil
}
