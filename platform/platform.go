// Package platform holds what all frontends share and the terminal frontend, which needs no cgo.
// The window frontends live in the sdlwindow and ebitenwindow packages.
// Each frontend owns its main loop and paces the emulation, the emulator itself never sleeps.
package platform

import (
	"image/color"

	"github.com/adrichey/chip8/emulator"
)

const WINDOW_TITLE = "Chip8 Emulator"

// Frontend runs the machine until the user quits or the program fails.
type Frontend interface {
	Run(r *emulator.Runner) error
	Close() error
}

// Config is shared by all frontends.
type Config struct {
	Title  string
	Scale  int
	FPS    int
	Layout Layout
}

var (
	ColorOn    = color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	ColorSound = color.RGBA{R: 0xFF, G: 0xB0, B: 0x00, A: 0xFF}
	ColorOff   = color.RGBA{A: 0xFF}
)

// PixelColor returns the colour of lit pixels, tinted while the sound timer runs.
func PixelColor(sound bool) color.RGBA {
	if sound {
		return ColorSound
	}
	return ColorOn
}

// Defaults fills in the zero values of cfg.
func (cfg Config) Defaults() Config {
	if cfg.Title == "" {
		cfg.Title = WINDOW_TITLE
	}
	if cfg.Scale < 1 {
		cfg.Scale = 1
	}
	if cfg.FPS < 1 {
		cfg.FPS = 60
	}
	return cfg
}
