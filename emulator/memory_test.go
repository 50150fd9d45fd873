package emulator

import (
	"errors"
	"testing"

	"github.com/retroenv/retrogolib/assert"
)

func TestMemoryBounds(t *testing.T) {
	var m Memory

	assert.NoError(t, m.Write(0xFFF, 0x12))
	v, err := m.Read(0xFFF)
	assert.NoError(t, err)
	assert.Equal(t, byte(0x12), v)

	_, err = m.Read(MEMORY_SIZE)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.True(t, errors.Is(m.Write(0xFFFF, 1), ErrOutOfBounds))

	_, err = m.ReadWord(0xFFF)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}

func TestMemoryReadWord(t *testing.T) {
	var m Memory
	assert.NoError(t, m.WriteBlock(0x300, []byte{0xD1, 0x25}))

	w, err := m.ReadWord(0x300)
	assert.NoError(t, err)
	assert.Equal(t, uint16(0xD125), w)
}

func TestMemoryBlocks(t *testing.T) {
	var m Memory

	err := m.WriteBlock(0xFFE, []byte{1, 2, 3})
	assert.True(t, errors.Is(err, ErrOutOfBounds))
	assert.Equal(t, Memory{}, m)

	assert.NoError(t, m.WriteBlock(0xFFD, []byte{1, 2, 3}))
	block, err := m.ReadBlock(0xFFD, 3)
	assert.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, block)

	// the returned block is a copy
	block[0] = 9
	assert.Equal(t, byte(1), m[0xFFD])

	_, err = m.ReadBlock(0xFFD, 4)
	assert.True(t, errors.Is(err, ErrOutOfBounds))
}
