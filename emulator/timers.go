package emulator

// Both timers saturate at zero.
func (c8 *Chip8) tickTimers() {
	if c8.delayTimer > 0 {
		c8.delayTimer -= 1
	}

	if c8.soundTimer > 0 {
		c8.soundTimer -= 1
	}
}

func (c8 *Chip8) DelayTimer() byte {
	return c8.delayTimer
}

func (c8 *Chip8) SoundTimer() byte {
	return c8.soundTimer
}

// SoundActive is the only signal given to an audio or visual beeper.
func (c8 *Chip8) SoundActive() bool {
	return c8.soundTimer > 0
}
