package x86

import (
	"fmt"

	"github.com/retroenv/sim8086/log"
)

// Memory sizing for the 8086/8088's 20-bit address space.
const (
	MaxMemorySize = 1024 * 1024 // the full 1 MiB the address pins reach
	MinMemorySize = 64 * 1024   // one segment, the smallest useful machine
	AddressMask   = 0x000FFFFF  // wraps addresses past the 20th bit
)

// MemoryStore is the simulator's flat byte-addressable store. Segment:offset
// arithmetic happens in the CPU (CalculateAddress, memoryAddress); MemoryStore
// itself deals only in linear addresses, already folded to 20 bits.
//
// Accesses outside the allocated size do not fault the simulation:
// reads yield 0xFF like floating bus lines, writes are dropped. Both are
// logged at debug level when a logger is attached.
type MemoryStore struct {
	data   []uint8
	size   uint32
	logger *log.Logger
}

// NewMemory allocates a memory of the given size in bytes. logger may be
// nil.
func NewMemory(size uint32, logger *log.Logger) (*MemoryStore, error) {
	if size < MinMemorySize {
		return nil, fmt.Errorf("memory size %d is below minimum %d", size, MinMemorySize)
	}
	if size > MaxMemorySize {
		return nil, fmt.Errorf("memory size %d exceeds maximum %d", size, MaxMemorySize)
	}

	return &MemoryStore{
		data:   make([]uint8, size),
		size:   size,
		logger: logger,
	}, nil
}

// Size returns the allocated size in bytes.
func (m *MemoryStore) Size() uint32 {
	return m.size
}

// Data returns a copy of the full memory content, used for the -dump
// output file.
func (m *MemoryStore) Data() []uint8 {
	data := make([]uint8, len(m.data))
	copy(data, m.data)
	return data
}

// bytesFrom returns the backing slice starting at addr, the engine's
// instruction-fetch window. A fetch near the end of memory yields a short
// slice, which the decoder then reports as a short read.
func (m *MemoryStore) bytesFrom(addr uint32) []uint8 {
	if addr >= m.size {
		return nil
	}
	return m.data[addr:]
}

// Read8 reads the byte at addr.
func (m *MemoryStore) Read8(addr uint32) uint8 {
	addr &= AddressMask
	if addr >= m.size {
		if m.logger != nil {
			m.logger.Debug("memory read beyond bounds",
				log.Uint32("address", addr), log.Uint32("size", m.size))
		}
		return 0xFF
	}
	return m.data[addr]
}

// Read16 reads the little-endian word at addr.
func (m *MemoryStore) Read16(addr uint32) uint16 {
	low := uint16(m.Read8(addr))
	high := uint16(m.Read8(addr + 1))
	return high<<8 | low
}

// Write8 stores value at addr.
func (m *MemoryStore) Write8(addr uint32, value uint8) {
	addr &= AddressMask
	if addr >= m.size {
		if m.logger != nil {
			m.logger.Debug("memory write beyond bounds",
				log.Uint32("address", addr), log.Int("value", int(value)))
		}
		return
	}
	m.data[addr] = value
}

// Write16 stores value at addr in little-endian order.
func (m *MemoryStore) Write16(addr uint32, value uint16) {
	m.Write8(addr, uint8(value))
	m.Write8(addr+1, uint8(value>>8))
}

// LoadData copies a program image into memory at addr. Unlike the single
// byte accessors it refuses out-of-bounds placement, since a truncated
// program would just decode garbage later.
func (m *MemoryStore) LoadData(addr uint32, data []uint8) error {
	if addr >= m.size || addr+uint32(len(data)) > m.size {
		return fmt.Errorf("program of %d bytes does not fit at 0x%05X in a %d byte memory",
			len(data), addr, m.size)
	}

	copy(m.data[addr:], data)

	if m.logger != nil {
		m.logger.Debug("loaded program",
			log.Uint32("address", addr), log.Int("size", len(data)))
	}
	return nil
}
