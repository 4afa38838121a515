package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"pipelined.dev/tutorial"
	"pipelined.dev/tutorial/config"
)

// staticCommand plays the test pattern through the vertigo filter.
type staticCommand struct {
	cfg *config.Config
}

func (cmd *staticCommand) Name() string {
	return "basic-tutorial-2"
}

func (cmd *staticCommand) Help() string {
	return "Play the test video pattern through a fixed pipeline"
}

func (cmd *staticCommand) Register(cfg *config.Config, fs *flag.FlagSet) {
	cmd.cfg = cfg
	cfg.RegisterTestPattern(fs)
}

func (cmd *staticCommand) layout() (tutorial.Layout, error) {
	if cmd.cfg.Layout == "" {
		return tutorial.TestPatternLayout(cmd.cfg.Pattern, cmd.cfg.NumBuffers), nil
	}
	f, err := os.Open(cmd.cfg.Layout)
	if err != nil {
		return tutorial.Layout{}, err
	}
	defer f.Close()
	return tutorial.LoadLayout(f)
}

func (cmd *staticCommand) Run(s *session) error {
	layout, err := cmd.layout()
	if err != nil {
		return err
	}
	built, err := tutorial.Build(layout)
	if err != nil {
		return fmt.Errorf("could not build the pipeline: %w", err)
	}
	defer built.Pipeline.Dispose()

	d := tutorial.NewDriver(built.Pipeline,
		tutorial.WithLogger(s.log),
		tutorial.WithMetric(s.metric),
	)
	termination, err := d.Run(context.Background())
	if err != nil {
		return err
	}
	s.log.Debugf("pipeline terminated with %v", termination)
	return nil
}
