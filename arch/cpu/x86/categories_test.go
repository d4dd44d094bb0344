package x86

import (
	"testing"

	"github.com/retroenv/sim8086/assert"
)

func TestMnemonic_IsFlagModifying(t *testing.T) {
	for _, m := range []Mnemonic{CLC, STC, CMC, CLD, STD, CLI, STI} {
		assert.True(t, m.IsFlagModifying())
	}
	assert.False(t, ADD.IsFlagModifying())
}

func TestMnemonic_IsUnconditionalTransfer(t *testing.T) {
	for _, m := range []Mnemonic{CALL, JMP, RET, RETF, IRET} {
		assert.True(t, m.IsUnconditionalTransfer())
	}
	assert.False(t, JE.IsUnconditionalTransfer())
	assert.False(t, LOOP.IsUnconditionalTransfer())
}
