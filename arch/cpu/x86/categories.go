package x86

import "github.com/retroenv/sim8086/set"

// flagModifyingMnemonics are the instructions whose sole effect is to set
// or clear a single FLAGS bit directly, rather than as a side effect of an
// arithmetic or logical result.
var flagModifyingMnemonics = set.NewFromSlice([]Mnemonic{
	CLC, STC, CMC, CLD, STD, CLI, STI,
})

// IsFlagModifying reports whether m directly sets or clears a flag bit.
func (m Mnemonic) IsFlagModifying() bool {
	return flagModifyingMnemonics.Contains(m)
}

// unconditionalTransferMnemonics are the instructions that always redirect
// control flow, as opposed to conditional jumps and loops that may fall
// through.
var unconditionalTransferMnemonics = set.NewFromSlice([]Mnemonic{
	CALL, JMP, RET, RETF, IRET,
})

// IsUnconditionalTransfer reports whether m always redirects control flow.
func (m Mnemonic) IsUnconditionalTransfer() bool {
	return unconditionalTransferMnemonics.Contains(m)
}
