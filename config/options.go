package config

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/adrichey/chip8/emulator"
	"github.com/adrichey/chip8/platform"
)

// Options holds everything that can be set from the command line.
type Options struct {
	ROM string

	Frontend string
	Layout   string
	Scale    int
	FPS      int

	// number of instructions executed per frame, this also sets the timer rate
	CyclesPerFrame int

	ShiftUsesVY bool
	WrapSprites bool
	HaltOnLoop  bool

	Debug bool
	Trace bool
	Quiet bool
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

// ShowUsage prints the usage line and all flags to w.
func (e *UsageError) ShowUsage(w io.Writer) {
	fmt.Fprintf(w, "usage: chip8 [options] <rom file>\n\n")
	e.flags.SetOutput(w)
	e.flags.PrintDefaults()
	fmt.Fprintln(w)
}

// ParseFlags parses the command line arguments, without the program name.
func ParseFlags(args []string) (Options, error) {
	flags := flag.NewFlagSet("chip8", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	var opts Options
	readOptionFlags(flags, &opts)

	if err := flags.Parse(args); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}

	rest := flags.Args()
	switch {
	case len(rest) == 0:
		return opts, &UsageError{flags: flags, msg: "no rom file given"}
	case len(rest) > 1:
		return opts, &UsageError{flags: flags, msg: fmt.Sprintf("unexpected argument %s after rom file, options have to be passed before it", rest[1])}
	}
	opts.ROM = rest[0]

	if err := normalizeOptions(&opts); err != nil {
		return opts, &UsageError{flags: flags, msg: err.Error()}
	}
	return opts, nil
}

func readOptionFlags(flags *flag.FlagSet, opts *Options) {
	flags.StringVar(&opts.Frontend, "frontend", "sdl", "frontend to use (sdl/ebiten/term)")
	flags.StringVar(&opts.Layout, "layout", "qwerty", "keyboard layout (qwerty/azerty)")
	flags.IntVar(&opts.Scale, "scale", 10, "window scale factor")
	flags.IntVar(&opts.FPS, "fps", 60, "frames per second")
	flags.IntVar(&opts.CyclesPerFrame, "cpf", 10, "instructions executed per frame")
	flags.BoolVar(&opts.ShiftUsesVY, "shift-vy", false, "8xy6 and 8xyE shift Vy into Vx instead of shifting Vx in place")
	flags.BoolVar(&opts.WrapSprites, "wrap", false, "wrap sprites at the bottom of the screen instead of clipping them")
	flags.BoolVar(&opts.HaltOnLoop, "halt-on-loop", false, "stop the program when it jumps to its own address")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Trace, "trace", false, "log every executed instruction, needs -debug")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *Options) error {
	opts.Frontend = strings.ToLower(opts.Frontend)
	switch opts.Frontend {
	case "sdl", "ebiten", "term":
	default:
		return fmt.Errorf("unsupported frontend: %s. Valid options: sdl, ebiten, term", opts.Frontend)
	}

	if _, err := platform.ParseLayout(opts.Layout); err != nil {
		return err
	}

	if opts.Scale < 1 {
		return fmt.Errorf("invalid scale %d", opts.Scale)
	}
	if opts.FPS < 1 {
		return fmt.Errorf("invalid frame rate %d", opts.FPS)
	}
	if opts.CyclesPerFrame < 1 {
		return fmt.Errorf("invalid number of cycles per frame %d", opts.CyclesPerFrame)
	}
	return nil
}

// Quirks returns the interpreter quirks selected on the command line.
func (o Options) Quirks() emulator.Quirks {
	return emulator.Quirks{
		ShiftUsesVY: o.ShiftUsesVY,
		WrapSprites: o.WrapSprites,
	}
}

// Platform returns the frontend configuration. The layout was validated by ParseFlags.
func (o Options) Platform() platform.Config {
	layout, _ := platform.ParseLayout(o.Layout)
	return platform.Config{
		Title:  platform.WINDOW_TITLE,
		Scale:  o.Scale,
		FPS:    o.FPS,
		Layout: layout,
	}
}
