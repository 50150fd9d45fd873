// Package main implements a CHIP-8 emulator
package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/adrichey/chip8/config"
	"github.com/adrichey/chip8/emulator"
	"github.com/adrichey/chip8/platform"
	"github.com/adrichey/chip8/platform/ebitenwindow"
	"github.com/adrichey/chip8/platform/sdlwindow"
	"github.com/retroenv/retrogolib/log"
)

func main() {
	opts, err := config.ParseFlags(os.Args[1:])
	if err != nil {
		var usageErr *config.UsageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(os.Stderr, "%s\n\n", usageErr.Error())
			usageErr.ShowUsage(os.Stderr)
		} else {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	if err := run(opts, logger); err != nil {
		logger.Error("Emulation failed", log.Err(err))
		os.Exit(1)
	}
}

func run(opts config.Options, logger *log.Logger) error {
	data, err := os.ReadFile(opts.ROM)
	if err != nil {
		return fmt.Errorf("reading rom file '%s': %w", opts.ROM, err)
	}

	c8 := emulator.New(
		emulator.WithQuirks(opts.Quirks()),
		emulator.WithLogger(logger),
		emulator.WithTrace(opts.Trace),
	)
	if err := c8.LoadROM(data); err != nil {
		return err
	}

	frontend, err := newFrontend(opts.Frontend, opts.Platform(), logger)
	if err != nil {
		return err
	}
	defer func() {
		_ = frontend.Close()
	}()

	logger.Info("Starting emulation",
		log.String("rom", opts.ROM),
		log.String("frontend", opts.Frontend),
		log.Int("cycles_per_frame", opts.CyclesPerFrame))

	runner := emulator.NewRunner(c8, opts.CyclesPerFrame, opts.HaltOnLoop)
	if err := frontend.Run(runner); err != nil {
		var opErr *emulator.OpcodeError
		if errors.As(err, &opErr) {
			logger.Error("Machine state", log.String("registers", c8.String()))
		}
		return err
	}
	return nil
}

// newFrontend creates the frontend with the given name: sdl, ebiten or term.
func newFrontend(name string, cfg platform.Config, logger *log.Logger) (platform.Frontend, error) {
	switch name {
	case "sdl":
		s, err := sdlwindow.NewSDL(cfg, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	case "ebiten":
		return ebitenwindow.NewEbiten(cfg, logger), nil
	case "term":
		return platform.NewTerminal(cfg, logger), nil
	default:
		return nil, fmt.Errorf("unsupported frontend '%s'", name)
	}
}
