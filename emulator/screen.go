package emulator

import (
	"fmt"
	"image/color"
)

const VIDEO_HEIGHT = 32
const VIDEO_WIDTH = 64

// Framebuffer holds the 64x32 monochrome display. A cell is true when the pixel is lit.
//
// The framebuffer is only ever changed by a sprite blit or a full clear. Drawing marks
// it dirty, the host decides when to present it and then marks it clean again.
type Framebuffer struct {
	pixels [VIDEO_HEIGHT][VIDEO_WIDTH]bool

	// wrap sprites vertically instead of clipping rows below the bottom edge
	wrap bool

	dirty bool
}

// Clear turns off every pixel.
func (s *Framebuffer) Clear() {
	for k := range s.pixels {
		for i := range s.pixels[k] {
			s.pixels[k][i] = false
		}
	}
	s.dirty = true
}

/*
Blit XORs the 8 bits of row onto the screen, most-significant bit first, starting at column x of line y.

Horizontal coordinates always wrap around the screen. Vertically the line is either wrapped as well or, when
wrapping is disabled, a line at or below the bottom edge is rejected with ErrOutOfBounds and nothing is drawn.

The returned collision is true if any lit pixel was turned off.
*/
func (s *Framebuffer) Blit(x, y int, row byte) (bool, error) {
	if s.wrap {
		y = wrapCoord(y, VIDEO_HEIGHT)
	} else if y < 0 || y >= VIDEO_HEIGHT {
		return false, fmt.Errorf("%w: line %d", ErrOutOfBounds, y)
	}

	collision := false
	for col := 0; col < 8; col++ {
		if row&(0x80>>col) == 0 {
			continue
		}

		px := wrapCoord(x+col, VIDEO_WIDTH)
		if s.pixels[y][px] {
			collision = true
		}
		s.pixels[y][px] = !s.pixels[y][px]
	}
	return collision, nil
}

// Pixel reports whether the pixel at (x, y) is lit.
func (s *Framebuffer) Pixel(x, y int) (bool, error) {
	if x < 0 || x >= VIDEO_WIDTH || y < 0 || y >= VIDEO_HEIGHT {
		return false, fmt.Errorf("%w: pixel %d,%d", ErrOutOfBounds, x, y)
	}
	return s.pixels[y][x], nil
}

// Dirty is true when the framebuffer changed since it was last marked clean.
func (s *Framebuffer) Dirty() bool {
	return s.dirty
}

func (s *Framebuffer) MarkClean() {
	s.dirty = false
}

func (s *Framebuffer) markDirty() {
	s.dirty = true
}

// WriteRGBA converts the framebuffer into 4 bytes per pixel, row by row, in dst.
// dst must hold at least VIDEO_WIDTH*VIDEO_HEIGHT*4 bytes.
func (s *Framebuffer) WriteRGBA(dst []byte, on, off color.RGBA) {
	i := 0
	for y := range s.pixels {
		for x := range s.pixels[y] {
			c := off
			if s.pixels[y][x] {
				c = on
			}
			dst[i] = c.R
			dst[i+1] = c.G
			dst[i+2] = c.B
			dst[i+3] = c.A
			i += 4
		}
	}
}

func wrapCoord(v, size int) int {
	v %= size
	if v < 0 {
		v += size
	}
	return v
}
