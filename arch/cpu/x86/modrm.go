package x86

// ModRM is the second byte of most 8086 instructions: mod(2)|reg(3)|rm(3).
type ModRM struct {
	Mod uint8
	Reg uint8
	RM  uint8
}

// decodeModRM splits a raw ModR/M byte into its three fields.
func decodeModRM(b uint8) ModRM {
	return ModRM{
		Mod: (b >> 6) & 0x03,
		Reg: (b >> 3) & 0x07,
		RM:  b & 0x07,
	}
}

// RegField returns the reg(3) field decoded as a register operand. Group
// opcodes, which use the field as a sub-operation selector, read Reg
// directly instead.
func (m ModRM) RegField(wide bool) Register {
	return DecodeRegister(m.Reg, wide, false)
}

// readRM decodes the r/m(3) field of a ModR/M byte into an operand: a
// Register when Mod==3, otherwise a Memory operand with its displacement
// read from the cursor. size is the operand size to stamp on a resulting
// Memory operand (the decoder overrides ExplicitSize based on whether a
// sized register operand is also present).
func readRM(cur *Cursor, m ModRM, wide bool, seg SegmentOverride, size OperandSize) Operand {
	if m.Mod == 3 {
		return DecodeRegister(m.RM, wide, false)
	}

	mem := Memory{Size: size, Formula: m.RM, Segment: seg}

	switch m.Mod {
	case 0:
		if m.RM == 6 {
			mem.Direct = true
			mem.Disp = cur.ReadI16()
		}
	case 1:
		mem.Disp = int16(cur.ReadI8())
	case 2:
		mem.Disp = cur.ReadI16()
	}

	return mem
}

// defaultSegment returns the segment register a memory operand resolves
// against absent an override prefix: SS when the r/m formula's base is BP
// (formulas 2, 3 and 6: bp+si, bp+di, bp), DS otherwise. A direct address
// always defaults to DS.
func (m Memory) defaultSegment() RegSlot {
	if !m.Direct {
		switch m.Formula {
		case 2, 3, 6:
			return SlotSS
		}
	}
	return SlotDS
}
