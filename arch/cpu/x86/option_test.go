package x86

import (
	"testing"

	"github.com/retroenv/sim8086/assert"
	"github.com/retroenv/sim8086/log"
)

func TestNewOptions_Defaults(t *testing.T) {
	opts := NewOptions()
	assert.Equal(t, "", opts.systemType)
	assert.Equal(t, uint16(0xF000), opts.initialCS)
	assert.Equal(t, uint16(0xFFFE), opts.initialSP)
}

func TestOptions_Overrides(t *testing.T) {
	opts := NewOptions(
		WithSystemType("generic"),
		WithInitialIP(0x1234),
		WithInitialSP(0x8000),
		WithInitialCS(0x0001),
		WithInitialDS(0x0002),
		WithInitialES(0x0003),
		WithInitialSS(0x0004),
	)

	assert.Equal(t, "generic", opts.systemType)
	assert.Equal(t, uint16(0x1234), opts.initialIP)
	assert.Equal(t, uint16(0x8000), opts.initialSP)
	assert.Equal(t, uint16(0x0001), opts.initialCS)
	assert.Equal(t, uint16(0x0002), opts.initialDS)
	assert.Equal(t, uint16(0x0003), opts.initialES)
	assert.Equal(t, uint16(0x0004), opts.initialSS)
}

func TestCPU_SystemType(t *testing.T) {
	logger := log.NewTestLogger(t)
	mem, err := NewMemory(MaxMemorySize, logger)
	assert.NoError(t, err)

	cpu, err := New(mem)
	assert.NoError(t, err)
	assert.Equal(t, "", cpu.SystemType())

	dosCPU, err := New(mem, WithDOSDefaults())
	assert.NoError(t, err)
	assert.Equal(t, "dos", dosCPU.SystemType())

	biosCPU, err := New(mem, WithBIOSDefaults())
	assert.NoError(t, err)
	assert.Equal(t, "bios", biosCPU.SystemType())
}
