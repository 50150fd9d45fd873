// Package ebitenwindow presents a CHIP-8 machine through ebiten.
package ebitenwindow

import (
	"errors"

	"github.com/adrichey/chip8/emulator"
	"github.com/adrichey/chip8/platform"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/retroenv/retrogolib/log"
)

// ebitenKeys holds every character used by the supported layouts.
var ebitenKeys = map[rune]ebiten.Key{
	'1': ebiten.KeyDigit1, '2': ebiten.KeyDigit2, '3': ebiten.KeyDigit3, '4': ebiten.KeyDigit4,
	'q': ebiten.KeyQ, 'w': ebiten.KeyW, 'e': ebiten.KeyE, 'r': ebiten.KeyR,
	'a': ebiten.KeyA, 's': ebiten.KeyS, 'd': ebiten.KeyD, 'f': ebiten.KeyF,
	'z': ebiten.KeyZ, 'x': ebiten.KeyX, 'c': ebiten.KeyC, 'v': ebiten.KeyV,
}

/*
Ebiten presents the machine through ebiten. Ebiten owns the main loop and calls Update at the configured
tick rate, every tick runs one frame of the machine.
*/
type Ebiten struct {
	cfg    platform.Config
	logger *log.Logger

	loop   *platform.Loop
	keypad emulator.Keypad
	keys   [16]ebiten.Key

	pixels []byte
}

func NewEbiten(cfg platform.Config, logger *log.Logger) *Ebiten {
	cfg = cfg.Defaults()
	e := &Ebiten{
		cfg:    cfg,
		logger: logger,
		pixels: make([]byte, emulator.VIDEO_WIDTH*emulator.VIDEO_HEIGHT*4),
	}
	for code, r := range cfg.Layout {
		e.keys[code] = ebitenKeys[r]
	}
	return e
}

func (e *Ebiten) Run(r *emulator.Runner) error {
	e.loop = platform.NewLoop(r, &e.keypad)

	ebiten.SetWindowSize(emulator.VIDEO_WIDTH*e.cfg.Scale, emulator.VIDEO_HEIGHT*e.cfg.Scale)
	ebiten.SetWindowTitle(e.cfg.Title)
	ebiten.SetTPS(e.cfg.FPS)

	if e.logger != nil {
		e.logger.Debug("Starting ebiten game loop", log.Int("tps", e.cfg.FPS))
	}

	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (e *Ebiten) Close() error {
	return nil
}

// Update is called by ebiten once per tick.
func (e *Ebiten) Update() error {
	if ebiten.IsKeyPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}

	for code, key := range e.keys {
		e.keypad.Set(byte(code), ebiten.IsKeyPressed(key))
	}
	return e.loop.Step(e, inpututil.IsKeyJustPressed(ebiten.KeyBackspace))
}

// Present converts the framebuffer, it is drawn on the next Draw call.
func (e *Ebiten) Present(fb *emulator.Framebuffer, sound bool) error {
	fb.WriteRGBA(e.pixels, platform.PixelColor(sound), platform.ColorOff)
	return nil
}

func (e *Ebiten) Draw(screen *ebiten.Image) {
	screen.WritePixels(e.pixels)
}

// Layout keeps the logical screen at CHIP-8 resolution, ebiten scales it to the window.
func (e *Ebiten) Layout(_, _ int) (int, int) {
	return emulator.VIDEO_WIDTH, emulator.VIDEO_HEIGHT
}
