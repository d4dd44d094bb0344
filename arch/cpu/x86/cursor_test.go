package x86

import (
	"testing"

	"github.com/retroenv/sim8086/assert"
)

func TestCursor_ReadU8(t *testing.T) {
	cur := NewCursor([]uint8{0x12, 0x34}, 0)
	assert.Equal(t, uint8(0x12), cur.ReadU8())
	assert.Equal(t, uint8(0x34), cur.ReadU8())
	assert.NoError(t, cur.Err())
}

func TestCursor_ReadI8(t *testing.T) {
	cur := NewCursor([]uint8{0xFF, 0x7F}, 0)
	assert.Equal(t, int8(-1), cur.ReadI8())
	assert.Equal(t, int8(127), cur.ReadI8())
}

func TestCursor_ReadU16LittleEndian(t *testing.T) {
	cur := NewCursor([]uint8{0x34, 0x12}, 0)
	assert.Equal(t, uint16(0x1234), cur.ReadU16())
}

func TestCursor_ReadI16LittleEndian(t *testing.T) {
	cur := NewCursor([]uint8{0xFE, 0xFF}, 0)
	assert.Equal(t, int16(-2), cur.ReadI16())
}

func TestCursor_ShortReadIsSticky(t *testing.T) {
	cur := NewCursor([]uint8{0x01}, 0)
	assert.Equal(t, uint16(0), cur.ReadU16())
	assert.ErrorIs(t, cur.Err(), ErrShortRead)

	// Further reads stay at zero and don't advance or re-fail differently.
	assert.Equal(t, uint8(0), cur.ReadU8())
	assert.ErrorIs(t, cur.Err(), ErrShortRead)
}

func TestCursor_HasBytes(t *testing.T) {
	cur := NewCursor([]uint8{0x01, 0x02}, 0)
	assert.True(t, cur.HasBytes(2))
	assert.False(t, cur.HasBytes(3))

	cur.ReadU8()
	assert.True(t, cur.HasBytes(1))
	assert.False(t, cur.HasBytes(2))
}

func TestCursor_PeekDoesNotConsume(t *testing.T) {
	cur := NewCursor([]uint8{0xAB}, 0)
	b, ok := cur.PeekU8()
	assert.True(t, ok)
	assert.Equal(t, uint8(0xAB), b)
	assert.Equal(t, 0, cur.Pos())

	_, ok = NewCursor(nil, 0).PeekU8()
	assert.False(t, ok)
}

func TestCursor_Idempotence(t *testing.T) {
	// Decoding from the same position twice yields the same result, since
	// Decode is a pure function of the slice and starting position.
	data := []uint8{0xB8, 0x01, 0x00}
	d := NewDecoder()

	c1 := NewCursor(data, 0)
	ins1, err1 := d.Decode(c1)
	assert.NoError(t, err1)

	c2 := NewCursor(data, 0)
	ins2, err2 := d.Decode(c2)
	assert.NoError(t, err2)

	assert.Equal(t, ins1.Mnemonic, ins2.Mnemonic)
	assert.Equal(t, ins1.Length, ins2.Length)
	assert.Equal(t, c1.Pos(), c2.Pos())
}
