package x86

import (
	"testing"

	"github.com/retroenv/sim8086/assert"
)

func TestDecodeRegister(t *testing.T) {
	tests := []struct {
		name    string
		index   uint8
		wide    bool
		segment bool
		want    Register
	}{
		{"byte low", 0, false, false, Register{Size: 1, Index: 0}},
		{"byte high", 4, false, false, Register{Size: 1, Index: 4}},
		{"word", 0, true, false, Register{Size: 2, Index: 0}},
		{"segment", 2, false, true, Register{Size: 2, Index: 2, Segment: true}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeRegister(tt.index, tt.wide, tt.segment))
		})
	}
}

func TestRegister_Slot(t *testing.T) {
	tests := []struct {
		name string
		reg  Register
		want RegSlot
	}{
		{"al maps to ax slot", Register{Size: 1, Index: 0}, SlotAX},
		{"ah maps to ax slot", Register{Size: 1, Index: 4}, SlotAX},
		{"bh maps to bx slot", Register{Size: 1, Index: 7}, SlotBX},
		{"sp is wide-only index", Register{Size: 2, Index: 4}, SlotSP},
		{"ds segment", Register{Size: 2, Index: 3, Segment: true}, SlotDS},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.reg.Slot())
		})
	}
}

func TestRegSlot_String(t *testing.T) {
	assert.Equal(t, "ax", SlotAX.String())
	assert.Equal(t, "flags", SlotFLAGS.String())
	assert.Equal(t, "???", RegSlot(255).String())
}
