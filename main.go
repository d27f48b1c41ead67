// Package main implements an SDL host for the CHIP-8 virtual machine.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/massung/chip-8/chip8"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/cli"
	"github.com/retroenv/retrogolib/log"
)

type params struct {
	ROM string `arg:"positional" usage:"CHIP-8 program to run" required:"true"`
}

type options struct {
	Profile string `flag:"c,config" usage:"quirk profile file"`
	Speed   int    `flag:"ipf" usage:"instructions per 60 Hz tick, overrides the profile"`
	Scale   int    `flag:"s,scale" usage:"window pixels per CHIP-8 pixel" default:"10"`
	Paused  bool   `flag:"p,paused" usage:"start with emulation paused"`
	Debug   bool   `flag:"debug" usage:"enable debug logging and instruction history"`
	Quiet   bool   `flag:"q" usage:"only log errors"`
}

func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var p params
	var opts options

	flags := cli.NewFlagSet("chip8")
	flags.AddSection("Options", &opts)
	flags.AddPositional(&p)

	rest, err := flags.Parse(args)
	switch {
	case errors.Is(err, cli.ErrHelpRequested):
		return 0
	case err != nil:
		fmt.Fprintln(os.Stderr, err)
		flags.ShowUsage()
		return 1
	case len(rest) > 0:
		fmt.Fprintf(os.Stderr, "unexpected arguments after the rom: %v\n", rest)
		flags.ShowUsage()
		return 1
	}

	logger := createLogger(opts.Debug, opts.Quiet)

	vmOpts, err := vmOptions(opts, logger)
	if err != nil {
		logger.Error("Invalid configuration", log.Err(err))
		return 1
	}

	var history *History
	if opts.Debug {
		history = NewHistory(historySize)
		vmOpts = append(vmOpts, chip8.WithTrace(history.Record))
	}

	vm, err := chip8.LoadFile(p.ROM, vmOpts...)
	if err != nil {
		logger.Error("Loading rom failed", log.String("file", p.ROM), log.Err(err))
		flags.ShowUsage()
		return 1
	}

	emu := &Emulator{
		VM:      vm,
		Paused:  opts.Paused,
		File:    p.ROM,
		logger:  logger,
		history: history,
		vmOpts:  vmOpts,
	}

	if err := emu.Open(filepath.Base(p.ROM), opts.Scale); err != nil {
		logger.Error("Initializing SDL failed", log.Err(err))
		return 1
	}
	defer emu.Close()

	logger.Info("Running",
		log.String("rom", p.ROM),
		log.Int("instructions_per_tick", vm.InstructionsPerTick()),
		log.Stringer("shift", vm.Quirks().Shift),
		log.Stringer("jump", vm.Quirks().Jump),
	)

	emu.Run(app.Context())
	return 0
}

// createLogger creates a logger with appropriate settings.
func createLogger(debug, quiet bool) *log.Logger {
	cfg := log.DefaultConfig()
	if debug {
		cfg.Level = log.DebugLevel
	} else if quiet {
		cfg.Level = log.ErrorLevel
	}
	return log.NewWithConfig(cfg)
}

// vmOptions collects the VM options from the profile and flags.
func vmOptions(opts options, logger *log.Logger) ([]chip8.Option, error) {
	var vmOpts []chip8.Option

	if opts.Profile != "" {
		profile, err := chip8.LoadProfileFile(opts.Profile)
		if err != nil {
			return nil, err
		}
		vmOpts = append(vmOpts, profile...)
	}

	if opts.Speed > 0 {
		vmOpts = append(vmOpts, chip8.WithInstructionsPerTick(opts.Speed))
	}

	return append(vmOpts, chip8.WithLogger(logger)), nil
}
