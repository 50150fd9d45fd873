// Package sdlwindow presents a CHIP-8 machine in an SDL2 window.
package sdlwindow

import (
	"fmt"
	"runtime"
	"time"
	"unsafe"

	"github.com/adrichey/chip8/emulator"
	"github.com/adrichey/chip8/platform"
	"github.com/retroenv/retrogolib/log"
	"github.com/veandco/go-sdl2/sdl"
)

func init() {
	// SDL expects all calls from the main thread
	runtime.LockOSThread()
}

// SDL presents the machine in an SDL2 window and reads the keyboard through SDL events.
type SDL struct {
	cfg    platform.Config
	logger *log.Logger

	keypad emulator.Keypad

	// Holds our screen pixels, 4 bytes per pixel
	pixels []byte

	// SDL2 specific properties
	window   *sdl.Window
	renderer *sdl.Renderer
	texture  *sdl.Texture
}

// NewSDL initialises SDL and opens the window.
func NewSDL(cfg platform.Config, logger *log.Logger) (*SDL, error) {
	cfg = cfg.Defaults()
	s := &SDL{
		cfg:    cfg,
		logger: logger,
		pixels: make([]byte, emulator.VIDEO_WIDTH*emulator.VIDEO_HEIGHT*4),
	}

	if err := sdl.Init(sdl.INIT_VIDEO); err != nil {
		return nil, fmt.Errorf("initialising sdl: %w", err)
	}

	winWidth := int32(emulator.VIDEO_WIDTH * cfg.Scale)
	winHeight := int32(emulator.VIDEO_HEIGHT * cfg.Scale)

	window, err := sdl.CreateWindow(cfg.Title, sdl.WINDOWPOS_UNDEFINED, sdl.WINDOWPOS_UNDEFINED, winWidth, winHeight, sdl.WINDOW_SHOWN)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("creating window: %w", err)
	}
	s.window = window

	renderer, err := sdl.CreateRenderer(window, -1, sdl.RENDERER_ACCELERATED)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("creating renderer: %w", err)
	}
	s.renderer = renderer

	// Little endian ABGR8888 is laid out in memory as R, G, B, A
	texture, err := renderer.CreateTexture(sdl.PIXELFORMAT_ABGR8888, sdl.TEXTUREACCESS_STREAMING, emulator.VIDEO_WIDTH, emulator.VIDEO_HEIGHT)
	if err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("creating texture: %w", err)
	}
	s.texture = texture

	if logger != nil {
		logger.Debug("SDL window created", log.Int("width", int(winWidth)), log.Int("height", int(winHeight)))
	}
	return s, nil
}

func (s *SDL) Close() error {
	if s.texture != nil {
		_ = s.texture.Destroy()
		s.texture = nil
	}
	if s.renderer != nil {
		_ = s.renderer.Destroy()
		s.renderer = nil
	}
	if s.window != nil {
		_ = s.window.Destroy()
		s.window = nil
	}
	sdl.Quit()
	return nil
}

/*
processInput drains the SDL event queue and updates the keypad.
Escape or closing the window quits, backspace resets the machine.
*/
func (s *SDL) processInput() (quit, reset bool) {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch t := event.(type) {
		case *sdl.QuitEvent:
			quit = true
		case *sdl.KeyboardEvent:
			down := t.Type == sdl.KEYDOWN

			switch t.Keysym.Sym {
			case sdl.K_ESCAPE:
				if down {
					quit = true
				}
			case sdl.K_BACKSPACE:
				if down {
					reset = true
				}
			default:
				if key, ok := s.cfg.Layout.Key(rune(t.Keysym.Sym)); ok {
					s.keypad.Set(key, down)
				}
			}
		}
	}
	return quit, reset
}

// Present uploads the framebuffer into the streaming texture and shows it.
func (s *SDL) Present(fb *emulator.Framebuffer, sound bool) error {
	fb.WriteRGBA(s.pixels, platform.PixelColor(sound), platform.ColorOff)

	// SDL scales the 64x32 texture up to the window size for us
	if err := s.texture.Update(nil, unsafe.Pointer(&s.pixels[0]), emulator.VIDEO_WIDTH*4); err != nil {
		return fmt.Errorf("updating texture: %w", err)
	}
	if err := s.renderer.Clear(); err != nil {
		return fmt.Errorf("clearing renderer: %w", err)
	}
	if err := s.renderer.Copy(s.texture, nil, nil); err != nil {
		return fmt.Errorf("copying texture: %w", err)
	}
	s.renderer.Present()
	return nil
}

/*
Run is our main loop. With each iteration input from the keyboard is parsed, a frame of cycles is run once
enough time has passed since the last one, and the screen is updated if the machine drew anything.
*/
func (s *SDL) Run(r *emulator.Runner) error {
	loop := platform.NewLoop(r, &s.keypad)
	frameDelay := time.Second / time.Duration(s.cfg.FPS)
	lastFrameTime := time.Now()
	reset := false

	for {
		quit, pressed := s.processInput()
		if quit {
			return nil
		}
		reset = reset || pressed

		if time.Since(lastFrameTime) < frameDelay {
			sdl.Delay(1)
			continue
		}
		lastFrameTime = time.Now()

		if err := loop.Step(s, reset); err != nil {
			return err
		}
		reset = false
	}
}
