package platform

import (
	"errors"

	"github.com/adrichey/chip8/emulator"
)

/*
Loop is the per frame logic shared by the frontends. A frontend reads its input, then calls Step once per host
frame. After the program halted the last frame stays on screen until the reset key restarts the machine.
*/
type Loop struct {
	runner *emulator.Runner
	keypad *emulator.Keypad
	halted bool
}

func NewLoop(r *emulator.Runner, keypad *emulator.Keypad) *Loop {
	return &Loop{
		runner: r,
		keypad: keypad,
	}
}

// Step resets the machine if asked to, runs one frame unless the program halted and presents the result.
func (l *Loop) Step(p emulator.Presenter, reset bool) error {
	if reset {
		l.keypad.Reset()
		l.runner.Reset()
		l.halted = false
	}

	if !l.halted {
		if err := l.runner.Frame(l.keypad); err != nil {
			if !errors.Is(err, emulator.ErrHalted) {
				return err
			}
			l.halted = true
		}
	}
	return l.runner.Present(p)
}

// Halted reports whether the program stopped itself with a jump to its own address.
func (l *Loop) Halted() bool {
	return l.halted
}
