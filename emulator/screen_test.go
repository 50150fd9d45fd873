package emulator

import (
	"errors"
	"image/color"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/retrogolib/assert"
)

func TestBlitSelfInverse(t *testing.T) {
	positions := [][2]int{{0, 0}, {30, 12}, {60, 31}, {63, 0}}

	for _, pos := range positions {
		for b := 0; b < 256; b++ {
			var s Framebuffer
			// some background so collisions against existing pixels are exercised
			_, err := s.Blit(pos[0]+2, pos[1], 0xA5)
			assert.NoError(t, err)
			before := s.pixels

			_, err = s.Blit(pos[0], pos[1], byte(b))
			assert.NoError(t, err)
			collision, err := s.Blit(pos[0], pos[1], byte(b))
			assert.NoError(t, err)

			if diff := cmp.Diff(before, s.pixels); diff != "" {
				t.Fatalf("blit %02X twice at %v: (-want, +got)\n%s", b, pos, diff)
			}

			// the second blit collides wherever the first one lit a pixel
			want := false
			for col := 0; col < 8; col++ {
				if b&(0x80>>col) != 0 && !before[pos[1]][(pos[0]+col)%VIDEO_WIDTH] {
					want = true
				}
			}
			assert.Equal(t, want, collision)
		}
	}
}

func TestBlitCollision(t *testing.T) {
	var s Framebuffer

	collision, err := s.Blit(0, 0, 0xF0)
	assert.NoError(t, err)
	assert.False(t, collision)

	// overlaps only in unlit pixels of the first row
	collision, err = s.Blit(0, 0, 0x0F)
	assert.NoError(t, err)
	assert.False(t, collision)

	collision, err = s.Blit(0, 0, 0x80)
	assert.NoError(t, err)
	assert.True(t, collision)

	lit, err := s.Pixel(0, 0)
	assert.NoError(t, err)
	assert.False(t, lit)
}

func TestBlitWrapsHorizontally(t *testing.T) {
	var s Framebuffer
	_, err := s.Blit(62, 3, 0xF0)
	assert.NoError(t, err)

	for _, x := range []int{62, 63, 0, 1} {
		lit, err := s.Pixel(x, 3)
		assert.NoError(t, err)
		assert.True(t, lit)
	}
	lit, err := s.Pixel(2, 3)
	assert.NoError(t, err)
	assert.False(t, lit)
}

func TestBlitVertical(t *testing.T) {
	t.Run("clip", func(t *testing.T) {
		var s Framebuffer
		_, err := s.Blit(0, VIDEO_HEIGHT, 0xFF)
		assert.True(t, errors.Is(err, ErrOutOfBounds))
		assert.Equal(t, [VIDEO_HEIGHT][VIDEO_WIDTH]bool{}, s.pixels)
	})

	t.Run("wrap", func(t *testing.T) {
		s := Framebuffer{wrap: true}
		_, err := s.Blit(0, VIDEO_HEIGHT+1, 0x80)
		assert.NoError(t, err)
		lit, err := s.Pixel(0, 1)
		assert.NoError(t, err)
		assert.True(t, lit)
	})
}

func TestClear(t *testing.T) {
	var s Framebuffer
	for y := 0; y < VIDEO_HEIGHT; y += 3 {
		_, err := s.Blit(y, y, 0xFF)
		assert.NoError(t, err)
	}

	s.Clear()

	for y := 0; y < VIDEO_HEIGHT; y++ {
		for x := 0; x < VIDEO_WIDTH; x++ {
			lit, err := s.Pixel(x, y)
			assert.NoError(t, err)
			assert.False(t, lit)
		}
	}
}

func TestPixelOutOfBounds(t *testing.T) {
	var s Framebuffer
	for _, pos := range [][2]int{{-1, 0}, {VIDEO_WIDTH, 0}, {0, -1}, {0, VIDEO_HEIGHT}} {
		_, err := s.Pixel(pos[0], pos[1])
		assert.True(t, errors.Is(err, ErrOutOfBounds))
	}
}

func TestWriteRGBA(t *testing.T) {
	var s Framebuffer
	_, err := s.Blit(1, 0, 0x80)
	assert.NoError(t, err)

	on := color.RGBA{R: 0xFF, G: 0xFF, B: 0xFF, A: 0xFF}
	off := color.RGBA{A: 0xFF}
	dst := make([]byte, VIDEO_WIDTH*VIDEO_HEIGHT*4)
	s.WriteRGBA(dst, on, off)

	assert.Equal(t, []byte{0, 0, 0, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0, 0, 0, 0xFF}, dst[:12])
}

func TestDrawSprite(t *testing.T) {
	c8 := newTestMachine(t, []uint16{
		0x6103, // LD V1, $03
		0x6204, // LD V2, $04
		0xF029, // LD F, V0
		0xD125, // DRW V1, V2, 5
		0xD125, // DRW V1, V2, 5
	})

	run(t, c8, nil, 4)
	assert.Equal(t, byte(0), c8.V(0xF))
	assert.True(t, c8.Screen().Dirty())

	// glyph "0" is 0xF0, 0x90, 0x90, 0x90, 0xF0
	for row, want := range []byte{0xF0, 0x90, 0x90, 0x90, 0xF0} {
		for col := 0; col < 8; col++ {
			lit, err := c8.Screen().Pixel(3+col, 4+row)
			assert.NoError(t, err)
			assert.Equal(t, want&(0x80>>col) != 0, lit)
		}
	}

	run(t, c8, nil, 1)
	assert.Equal(t, byte(1), c8.V(0xF))
	assert.Equal(t, [VIDEO_HEIGHT][VIDEO_WIDTH]bool{}, c8.screen.pixels)
}

func TestDrawClipsAtBottom(t *testing.T) {
	program := []uint16{
		0x6000, // LD V0, $00
		0x611E, // LD V1, $1E
		0xF029, // LD F, V0
		0xD015, // DRW V0, V1, 5
	}

	t.Run("clip", func(t *testing.T) {
		c8 := newTestMachine(t, program)
		run(t, c8, nil, 4)

		lit, err := c8.Screen().Pixel(0, VIDEO_HEIGHT-1)
		assert.NoError(t, err)
		assert.True(t, lit)
		lit, err = c8.Screen().Pixel(0, 0)
		assert.NoError(t, err)
		assert.False(t, lit)
	})

	t.Run("wrap", func(t *testing.T) {
		c8 := newTestMachine(t, program, WithQuirks(Quirks{WrapSprites: true}))
		run(t, c8, nil, 4)

		// rows 2 to 4 of the glyph land on lines 0 to 2
		lit, err := c8.Screen().Pixel(0, 0)
		assert.NoError(t, err)
		assert.True(t, lit)
	})
}
