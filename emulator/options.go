package emulator

import (
	"math/rand/v2"

	"github.com/retroenv/retrogolib/log"
)

/*
Quirks select between behaviours where historical CHIP-8 interpreters disagree.
Real programs rely on either variant, so neither is treated as the correct one.
*/
type Quirks struct {
	// 8xy6 and 8xyE shift Vy into Vx. Otherwise Vx is shifted in place and y is ignored.
	ShiftUsesVY bool

	// Sprites wrap to the top of the screen. Otherwise rows below the bottom edge are clipped.
	WrapSprites bool
}

// Option configures a machine created by New.
type Option func(c8 *Chip8)

func WithQuirks(q Quirks) Option {
	return func(c8 *Chip8) {
		c8.quirks = q
	}
}

// WithLogger sets the logger used for lifecycle messages and, if enabled, instruction traces.
func WithLogger(logger *log.Logger) Option {
	return func(c8 *Chip8) {
		c8.logger = logger
	}
}

// WithTrace logs every executed instruction at debug level. It needs a logger.
func WithTrace(trace bool) Option {
	return func(c8 *Chip8) {
		c8.trace = trace
	}
}

// WithRandom replaces the source of the Cxkk random byte.
func WithRandom(random func() byte) Option {
	return func(c8 *Chip8) {
		c8.random = random
	}
}

func randomByte() byte {
	return byte(rand.IntN(256))
}
