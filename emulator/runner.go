package emulator

import (
	"fmt"

	"github.com/retroenv/retrogolib/log"
)

// Presenter shows a frame. sound is true while the sound timer is running.
type Presenter interface {
	Present(fb *Framebuffer, sound bool) error
}

/*
Runner drives a machine for a host that works in frames. The host owns the pacing: it calls Frame once per
host frame with the current key state and Present whenever it wants to show the result. Nothing in here sleeps.
*/
type Runner struct {
	machine        *Chip8
	cyclesPerFrame int
	haltOnLoop     bool

	// sound state at the last Present
	sound bool
}

// NewRunner returns a runner executing cyclesPerFrame instructions per frame, at least one.
// With haltOnLoop a jump to its own address stops the program with ErrHalted.
func NewRunner(machine *Chip8, cyclesPerFrame int, haltOnLoop bool) *Runner {
	if cyclesPerFrame < 1 {
		cyclesPerFrame = 1
	}
	return &Runner{
		machine:        machine,
		cyclesPerFrame: cyclesPerFrame,
		haltOnLoop:     haltOnLoop,
	}
}

func (r *Runner) Machine() *Chip8 {
	return r.machine
}

// Frame runs one frame worth of cycles, stopping at the first error.
func (r *Runner) Frame(in Input) error {
	for i := 0; i < r.cyclesPerFrame; i++ {
		pc := r.machine.programCounter
		if err := r.machine.Cycle(in); err != nil {
			return err
		}

		if r.haltOnLoop && r.machine.opcode&0xF000 == 0x1000 && r.machine.programCounter == pc {
			if r.machine.logger != nil {
				r.machine.logger.Info("Program halted", log.String("pc", fmt.Sprintf("0x%03X", pc)))
			}
			return ErrHalted
		}
	}
	return nil
}

// NeedsPresent reports whether the screen or the sound state changed since the last Present.
func (r *Runner) NeedsPresent() bool {
	return r.machine.screen.Dirty() || r.machine.SoundActive() != r.sound
}

// Present hands the framebuffer to p if it changed and marks it clean.
func (r *Runner) Present(p Presenter) error {
	if !r.NeedsPresent() {
		return nil
	}
	sound := r.machine.SoundActive()
	if err := p.Present(&r.machine.screen, sound); err != nil {
		return fmt.Errorf("presenting frame: %w", err)
	}
	r.machine.screen.MarkClean()
	r.sound = sound
	return nil
}

// Reset resets the machine, see Chip8.Reset.
func (r *Runner) Reset() {
	r.machine.Reset()
}
