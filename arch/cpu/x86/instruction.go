package x86

// RepKind distinguishes which REP-family prefix byte preceded a string
// instruction, since CMPS/SCAS give 0xF2/0xF3 distinct meanings (REPNE vs
// REPE) that plain REP does not carry.
type RepKind uint8

// REP-family prefix kinds.
const (
	RepNone RepKind = iota
	Rep             // 0xF2 or 0xF3 ahead of MOVS/LODS/STOS
	RepE            // 0xF3 ahead of CMPS/SCAS
	RepNE           // 0xF2 ahead of CMPS/SCAS
)

// Instruction is a fully decoded 8086 instruction: its source address,
// mnemonic, up to two operands, and the prefix flags that applied to it.
type Instruction struct {
	Address uint32
	Mnemonic
	Dest, Source Operand
	Lock         bool
	Rep          RepKind
	// Size carries the explicit b/w suffix for string instructions, whose
	// operands are implicit (SI/DI) and therefore carry no sized operand
	// of their own.
	Size OperandSize
	// Length is the number of bytes this instruction occupies in the
	// source stream, used by the engine to advance IP.
	Length int
}
