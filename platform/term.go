package platform

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/adrichey/chip8/emulator"
	"github.com/retroenv/retrogolib/log"
	"golang.org/x/term"
)

const (
	keyCtrlC     = 0x03
	keyBackspace = 0x08
	keyEscape    = 0x1B
	keyDelete    = 0x7F
)

// A terminal only reports key presses, so a key counts as held for this many frames after each press.
const termHoldFrames = 8

/*
Terminal draws the machine with text in a terminal put into raw mode. Every pixel is two characters wide
so the screen keeps its aspect ratio. The border turns into '#' while the sound timer runs.
*/
type Terminal struct {
	cfg    Config
	logger *log.Logger

	in  *os.File
	out io.Writer

	keypad emulator.Keypad
	holds  [16]int

	frame strings.Builder
}

func NewTerminal(cfg Config, logger *log.Logger) *Terminal {
	return &Terminal{
		cfg:    cfg.Defaults(),
		logger: logger,
		in:     os.Stdin,
		out:    os.Stdout,
	}
}

func (t *Terminal) Close() error {
	return nil
}

func (t *Terminal) Run(r *emulator.Runner) error {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("standard input is not a terminal")
	}

	width, height, err := term.GetSize(fd)
	if err == nil && (width < 2*emulator.VIDEO_WIDTH+2 || height < emulator.VIDEO_HEIGHT+2) && t.logger != nil {
		t.logger.Warn("Terminal is smaller than the screen",
			log.Int("width", width), log.Int("height", height))
	}

	state, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("switching terminal to raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, state)
	}()

	// clear the screen and hide the cursor
	fmt.Fprint(t.out, "\033[2J\033[?25l")
	defer fmt.Fprint(t.out, "\033[?25h\r\n")

	input := make(chan byte, 64)
	go t.readInput(input)

	ticker := time.NewTicker(time.Second / time.Duration(t.cfg.FPS))
	defer ticker.Stop()

	loop := NewLoop(r, &t.keypad)
	for range ticker.C {
		quit, reset := t.processInput(input)
		if quit {
			return nil
		}
		if err := loop.Step(t, reset); err != nil {
			return err
		}
	}
	return nil
}

// readInput forwards raw bytes from the terminal until reading fails.
func (t *Terminal) readInput(input chan<- byte) {
	defer close(input)

	buf := make([]byte, 1)
	for {
		n, err := t.in.Read(buf)
		if err != nil {
			return
		}
		if n == 1 {
			input <- buf[0]
		}
	}
}

/*
processInput takes all bytes read since the last frame and updates the keypad.
A lone escape or Ctrl-C quit, backspace resets the machine. Escape sequences sent by arrow
and function keys are skipped.
*/
func (t *Terminal) processInput(input <-chan byte) (quit, reset bool) {
	for code := range t.holds {
		if t.holds[code] > 0 {
			t.holds[code]--
		}
	}

	var pending []byte
drain:
	for {
		select {
		case b, ok := <-input:
			if !ok {
				quit = true
				break drain
			}
			pending = append(pending, b)
		default:
			break drain
		}
	}

	for i := 0; i < len(pending); i++ {
		switch b := pending[i]; b {
		case keyEscape:
			if i == len(pending)-1 {
				quit = true
			} else {
				i = escapeSequenceEnd(pending, i)
			}
		case keyCtrlC:
			quit = true
		case keyBackspace, keyDelete:
			reset = true
		default:
			if key, ok := t.cfg.Layout.Key(rune(b)); ok {
				t.holds[key] = termHoldFrames
			}
		}
	}

	for code, frames := range t.holds {
		t.keypad.Set(byte(code), frames > 0)
	}
	return quit, reset
}

// escapeSequenceEnd returns the index of the last byte of the escape sequence starting at buf[start].
// buf must hold at least one byte after the escape.
func escapeSequenceEnd(buf []byte, start int) int {
	i := start + 1
	switch buf[i] {
	case '[':
		// parameters up to a final byte in 0x40-0x7E
		for i++; i < len(buf); i++ {
			if buf[i] >= 0x40 && buf[i] <= 0x7E {
				return i
			}
		}
		return len(buf) - 1
	case 'O':
		if i+1 < len(buf) {
			return i + 1
		}
	}
	return i
}

// Present redraws the whole screen from the top left corner.
func (t *Terminal) Present(fb *emulator.Framebuffer, sound bool) error {
	border := "+"
	if sound {
		border = "#"
	}

	t.frame.Reset()
	t.frame.WriteString("\033[H")
	t.frame.WriteString(border + strings.Repeat("──", emulator.VIDEO_WIDTH) + border + "\r\n")
	for y := 0; y < emulator.VIDEO_HEIGHT; y++ {
		t.frame.WriteString("|")
		for x := 0; x < emulator.VIDEO_WIDTH; x++ {
			lit, err := fb.Pixel(x, y)
			if err != nil {
				return err
			}
			if lit {
				t.frame.WriteString("▓▓")
			} else {
				t.frame.WriteString("  ")
			}
		}
		t.frame.WriteString("|\r\n")
	}
	t.frame.WriteString(border + strings.Repeat("──", emulator.VIDEO_WIDTH) + border + "\r\n")

	_, err := io.WriteString(t.out, t.frame.String())
	return err
}
