package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"

	"pipelined.dev/tutorial/config"
	"pipelined.dev/tutorial/log"
)

type program struct {
	args []string
	log  *logrus.Logger
}

type command interface {
	Name() string
	Help() string
	Run(*session) error
	Register(*config.Config, *flag.FlagSet)
}

func (p *program) run() int {
	cmdName, args := parseArgs(p.args)
	if cmdName == "" {
		printUsage()
		return errorExitCode
	}

	for _, cmd := range commands {
		if cmd.Name() != cmdName {
			continue
		}
		cfg, err := config.Load()
		if err != nil {
			p.log.Errorf("Invalid configuration: %v", err)
			return errorExitCode
		}
		flags := flag.NewFlagSet(cmdName, flag.ContinueOnError)
		cmd.Register(cfg, flags)
		if err := flags.Parse(args); err != nil {
			return errorExitCode
		}
		s, err := newSession(cfg, cfg.Logger(p.log))
		if err != nil {
			p.log.Errorf("Could not initialize: %v", err)
			return errorExitCode
		}
		defer s.close()
		if err := cmd.Run(s); err != nil {
			p.log.Errorf("Command failed: %v", err)
			return errorExitCode
		}
		return successExitCode
	}

	printUsage()
	return errorExitCode
}

var (
	successExitCode = 0
	errorExitCode   = 1
	commands        = []command{&staticCommand{}, &dynamicCommand{}}
)

func main() {
	p := program{
		args: os.Args,
		log:  log.GetLogger(),
	}
	os.Exit(p.run())
}

func parseArgs(args []string) (string, []string) {
	if len(args) < 2 {
		return "", nil
	}
	return args[1], args[2:]
}

func printUsage() {
	fmt.Println("Tutorial plays basic media pipelines")
	fmt.Println()
	fmt.Println("Usage: tutorial <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	for _, cmd := range commands {
		fmt.Printf("\t%s\t%s\n", cmd.Name(), cmd.Help())
	}
}
