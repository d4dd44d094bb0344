package x86

import "fmt"

// Decoder turns a byte stream into Instruction values. It carries no state
// of its own; a zero value decodes correctly.
type Decoder struct{}

// NewDecoder creates a Decoder.
func NewDecoder() Decoder {
	return Decoder{}
}

// aluMnemonics maps the 3-bit ALU operation field shared by the 0x00-0x3D
// block and the 0x80-0x83 group-1 immediate block to its mnemonic.
var aluMnemonics = [8]Mnemonic{ADD, OR, ADC, SBB, AND, SUB, XOR, CMP}

// condMnemonics maps a 4-bit condition code (the low nibble of 0x70-0x7F)
// to its short conditional jump mnemonic. The order matches the Mnemonic
// enum's JO..JG block exactly, since both follow Intel's condition-code
// numbering.
var condMnemonics = [16]Mnemonic{
	JO, JNO, JB, JNB, JE, JNE, JBE, JA,
	JS, JNS, JP, JNP, JL, JGE, JLE, JG,
}

// group2Mnemonics maps a shift/rotate group's ModR/M.reg field to its
// mnemonic. Index 6 is reserved by the ISA.
var group2Mnemonics = [8]Mnemonic{ROL, ROR, RCL, RCR, SHL, SHR, mnemonicCount, SAR}

// group3Mnemonics maps a unary-group (0xF6/0xF7) ModR/M.reg field to its
// mnemonic. Index 1 is reserved by the ISA; index 0 additionally reads an
// immediate operand.
var group3Mnemonics = [8]Mnemonic{TEST, mnemonicCount, NOT, NEG, MUL, IMUL, DIV, IDIV}

func al() Register { return Register{Size: 1, Index: 0} }
func ax() Register { return Register{Size: 2, Index: 0} }
func cl() Register { return Register{Size: 1, Index: 1} }
func dx() Register { return Register{Size: 2, Index: 2} }
func segReg(index uint8) Register {
	return Register{Size: 2, Index: index & 3, Segment: true}
}

// Decode reads one instruction starting at cur's current position. On a
// truncated stream or an illegal encoding it returns a wrapped sentinel
// error from errors.go and the cursor's position reflects however much of
// the instruction was consumed.
func (d Decoder) Decode(cur *Cursor) (Instruction, error) {
	start := cur.Pos()

	var lock bool
	var seg SegmentOverride
	var rep RepKind

prefixes:
	for {
		b, ok := cur.PeekU8()
		if !ok {
			return Instruction{}, fmt.Errorf("at 0x%x: %w", cur.Pos(), ErrShortRead)
		}
		switch b {
		case 0xF0:
			cur.ReadU8()
			lock = true
		case 0x26:
			cur.ReadU8()
			seg = SegES
		case 0x2E:
			cur.ReadU8()
			seg = SegCS
		case 0x36:
			cur.ReadU8()
			seg = SegSS
		case 0x3E:
			cur.ReadU8()
			seg = SegDS
		case 0xF2:
			cur.ReadU8()
			rep = RepNE
		case 0xF3:
			cur.ReadU8()
			rep = RepE
		default:
			break prefixes
		}
	}

	op := cur.ReadU8()
	if cur.Err() != nil {
		return Instruction{}, fmt.Errorf("at 0x%x: %w", start, cur.Err())
	}

	ins, err := d.decodeOpcode(cur, op, seg)
	if err != nil {
		return Instruction{}, fmt.Errorf("at 0x%x: %w", start, err)
	}
	if cur.Err() != nil {
		return Instruction{}, fmt.Errorf("at 0x%x: %w", start, cur.Err())
	}

	ins.Address = uint32(start)
	ins.Length = cur.Pos() - start
	ins.Lock = lock

	if ins.Mnemonic.IsString() {
		switch {
		case rep == RepNone:
			ins.Rep = RepNone
		case ins.Mnemonic == CMPS || ins.Mnemonic == SCAS:
			ins.Rep = rep
		default:
			ins.Rep = Rep
		}
	}

	if lbl, ok := ins.Dest.(Label); ok {
		ins.Dest = Label{Disp: lbl.Disp + int16(ins.Length)}
	}

	return ins, nil
}

// decodeOpcode classifies the first non-prefix byte and builds the
// instruction's mnemonic and operands. The caller stamps Address, Length,
// Lock and Rep afterward, once the full encoding (and its length) is known.
func (d Decoder) decodeOpcode(cur *Cursor, op uint8, seg SegmentOverride) (Instruction, error) {
	switch {
	case op <= 0x3F:
		return d.decodeALUBlock(cur, op, seg)
	case op >= 0x40 && op <= 0x47:
		return Instruction{Mnemonic: INC, Dest: DecodeRegister(op&7, true, false)}, nil
	case op >= 0x48 && op <= 0x4F:
		return Instruction{Mnemonic: DEC, Dest: DecodeRegister(op&7, true, false)}, nil
	case op >= 0x50 && op <= 0x57:
		return Instruction{Mnemonic: PUSH, Dest: DecodeRegister(op&7, true, false)}, nil
	case op >= 0x58 && op <= 0x5F:
		return Instruction{Mnemonic: POP, Dest: DecodeRegister(op&7, true, false)}, nil
	case op >= 0x70 && op <= 0x7F:
		disp := int16(cur.ReadI8())
		return Instruction{Mnemonic: condMnemonics[op&0x0F], Dest: Label{Disp: disp}}, nil
	case op >= 0x80 && op <= 0x83:
		return d.decodeGroup1(cur, op, seg)
	case op == 0x84 || op == 0x85:
		return d.decodeRegMemPair(cur, TEST, op&1 != 0, false, seg, false)
	case op == 0x86 || op == 0x87:
		return d.decodeRegMemPair(cur, XCHG, op&1 != 0, false, seg, false)
	case op >= 0x88 && op <= 0x8B:
		return d.decodeRegMemPair(cur, MOV, op&1 != 0, op&2 != 0, seg, false)
	case op == 0x8C:
		return d.decodeSegRegMem(cur, false, seg)
	case op == 0x8D:
		return d.decodeRegMemPair2(cur, LEA, true, seg)
	case op == 0x8E:
		return d.decodeSegRegMem(cur, true, seg)
	case op == 0x8F:
		return d.decodeGroup1A(cur, seg)
	case op >= 0x90 && op <= 0x97:
		return Instruction{Mnemonic: XCHG, Dest: ax(), Source: DecodeRegister(op&7, true, false)}, nil
	case op == 0x98:
		return Instruction{Mnemonic: CBW}, nil
	case op == 0x99:
		return Instruction{Mnemonic: CWD}, nil
	case op == 0x9A:
		ip := cur.ReadU16()
		cs := cur.ReadU16()
		return Instruction{Mnemonic: CALL, Dest: FarPointer{CS: cs, IP: ip}}, nil
	case op == 0x9B:
		return Instruction{Mnemonic: WAIT}, nil
	case op == 0x9C:
		return Instruction{Mnemonic: PUSHF}, nil
	case op == 0x9D:
		return Instruction{Mnemonic: POPF}, nil
	case op == 0x9E:
		return Instruction{Mnemonic: SAHF}, nil
	case op == 0x9F:
		return Instruction{Mnemonic: LAHF}, nil
	case op == 0xA0:
		return Instruction{Mnemonic: MOV, Dest: al(), Source: directMem(cur, SizeByte, seg)}, nil
	case op == 0xA1:
		return Instruction{Mnemonic: MOV, Dest: ax(), Source: directMem(cur, SizeWord, seg)}, nil
	case op == 0xA2:
		return Instruction{Mnemonic: MOV, Dest: directMem(cur, SizeByte, seg), Source: al()}, nil
	case op == 0xA3:
		return Instruction{Mnemonic: MOV, Dest: directMem(cur, SizeWord, seg), Source: ax()}, nil
	case op == 0xA4:
		return Instruction{Mnemonic: MOVS, Size: SizeByte}, nil
	case op == 0xA5:
		return Instruction{Mnemonic: MOVS, Size: SizeWord}, nil
	case op == 0xA6:
		return Instruction{Mnemonic: CMPS, Size: SizeByte}, nil
	case op == 0xA7:
		return Instruction{Mnemonic: CMPS, Size: SizeWord}, nil
	case op == 0xA8:
		return Instruction{Mnemonic: TEST, Dest: al(), Source: signedImm8(cur)}, nil
	case op == 0xA9:
		return Instruction{Mnemonic: TEST, Dest: ax(), Source: wordImm(cur)}, nil
	case op == 0xAA:
		return Instruction{Mnemonic: STOS, Size: SizeByte}, nil
	case op == 0xAB:
		return Instruction{Mnemonic: STOS, Size: SizeWord}, nil
	case op == 0xAC:
		return Instruction{Mnemonic: LODS, Size: SizeByte}, nil
	case op == 0xAD:
		return Instruction{Mnemonic: LODS, Size: SizeWord}, nil
	case op == 0xAE:
		return Instruction{Mnemonic: SCAS, Size: SizeByte}, nil
	case op == 0xAF:
		return Instruction{Mnemonic: SCAS, Size: SizeWord}, nil
	case op >= 0xB0 && op <= 0xB7:
		return Instruction{Mnemonic: MOV, Dest: DecodeRegister(op&7, false, false), Source: signedImm8(cur)}, nil
	case op >= 0xB8 && op <= 0xBF:
		return Instruction{Mnemonic: MOV, Dest: DecodeRegister(op&7, true, false), Source: wordImm(cur)}, nil
	case op == 0xC2:
		return Instruction{Mnemonic: RET, Dest: wordImm(cur)}, nil
	case op == 0xC3:
		return Instruction{Mnemonic: RET}, nil
	case op == 0xC4:
		return d.decodeRegMemPair2(cur, LES, true, seg)
	case op == 0xC5:
		return d.decodeRegMemPair2(cur, LDS, true, seg)
	case op == 0xC6:
		return d.decodeGroup11(cur, false, seg)
	case op == 0xC7:
		return d.decodeGroup11(cur, true, seg)
	case op == 0xCA:
		return Instruction{Mnemonic: RETF, Dest: wordImm(cur)}, nil
	case op == 0xCB:
		return Instruction{Mnemonic: RETF}, nil
	case op == 0xCC:
		return Instruction{Mnemonic: INT, Dest: Immediate{Size: 1, Value: 3}}, nil
	case op == 0xCD:
		return Instruction{Mnemonic: INT, Dest: unsignedImm8(cur)}, nil
	case op == 0xCE:
		return Instruction{Mnemonic: INTO}, nil
	case op == 0xCF:
		return Instruction{Mnemonic: IRET}, nil
	case op >= 0xD0 && op <= 0xD3:
		return d.decodeGroup2(cur, op, seg)
	case op == 0xD4:
		return d.decodeAAMAAD(cur, AAM)
	case op == 0xD5:
		return d.decodeAAMAAD(cur, AAD)
	case op == 0xD7:
		return Instruction{Mnemonic: XLAT}, nil
	case op >= 0xD8 && op <= 0xDF:
		return d.decodeESC(cur, op, seg)
	case op == 0xE0:
		return Instruction{Mnemonic: LOOPNZ, Dest: Label{Disp: int16(cur.ReadI8())}}, nil
	case op == 0xE1:
		return Instruction{Mnemonic: LOOPZ, Dest: Label{Disp: int16(cur.ReadI8())}}, nil
	case op == 0xE2:
		return Instruction{Mnemonic: LOOP, Dest: Label{Disp: int16(cur.ReadI8())}}, nil
	case op == 0xE3:
		return Instruction{Mnemonic: JCXZ, Dest: Label{Disp: int16(cur.ReadI8())}}, nil
	case op == 0xE4:
		return Instruction{Mnemonic: IN, Dest: al(), Source: unsignedImm8(cur)}, nil
	case op == 0xE5:
		return Instruction{Mnemonic: IN, Dest: ax(), Source: unsignedImm8(cur)}, nil
	case op == 0xE6:
		return Instruction{Mnemonic: OUT, Dest: unsignedImm8(cur), Source: al()}, nil
	case op == 0xE7:
		return Instruction{Mnemonic: OUT, Dest: unsignedImm8(cur), Source: ax()}, nil
	case op == 0xE8:
		return Instruction{Mnemonic: CALL, Dest: Label{Disp: cur.ReadI16()}}, nil
	case op == 0xE9:
		return Instruction{Mnemonic: JMP, Dest: Label{Disp: cur.ReadI16()}}, nil
	case op == 0xEA:
		ip := cur.ReadU16()
		cs := cur.ReadU16()
		return Instruction{Mnemonic: JMP, Dest: FarPointer{CS: cs, IP: ip}}, nil
	case op == 0xEB:
		return Instruction{Mnemonic: JMP, Dest: Label{Disp: int16(cur.ReadI8())}}, nil
	case op == 0xEC:
		return Instruction{Mnemonic: IN, Dest: al(), Source: dx()}, nil
	case op == 0xED:
		return Instruction{Mnemonic: IN, Dest: ax(), Source: dx()}, nil
	case op == 0xEE:
		return Instruction{Mnemonic: OUT, Dest: dx(), Source: al()}, nil
	case op == 0xEF:
		return Instruction{Mnemonic: OUT, Dest: dx(), Source: ax()}, nil
	case op == 0xF4:
		return Instruction{Mnemonic: HLT}, nil
	case op == 0xF5:
		return Instruction{Mnemonic: CMC}, nil
	case op == 0xF6:
		return d.decodeGroup3(cur, false, seg)
	case op == 0xF7:
		return d.decodeGroup3(cur, true, seg)
	case op == 0xF8:
		return Instruction{Mnemonic: CLC}, nil
	case op == 0xF9:
		return Instruction{Mnemonic: STC}, nil
	case op == 0xFA:
		return Instruction{Mnemonic: CLI}, nil
	case op == 0xFB:
		return Instruction{Mnemonic: STI}, nil
	case op == 0xFC:
		return Instruction{Mnemonic: CLD}, nil
	case op == 0xFD:
		return Instruction{Mnemonic: STD}, nil
	case op == 0xFE:
		return d.decodeGroup4(cur, seg)
	case op == 0xFF:
		return d.decodeGroup5(cur, seg)
	default:
		return Instruction{}, fmt.Errorf("0x%x: %w", op, ErrUnknownOpcode)
	}
}

// decodeALUBlock handles the 0x00-0x3F range: eight ALU operations, each
// with a r/m<->reg sub-block (sub-op 0-3), an acc<-imm sub-block (sub-op
// 4-5), and either a segment PUSH/POP or a DAA-family instruction at
// sub-op 6-7 depending on which of the eight operations it is.
func (d Decoder) decodeALUBlock(cur *Cursor, op uint8, seg SegmentOverride) (Instruction, error) {
	opIndex := (op >> 3) & 0x07
	subOp := op & 0x07

	if subOp <= 5 {
		mnemonic := aluMnemonics[opIndex]
		if subOp <= 3 {
			return d.decodeRegMemPair(cur, mnemonic, subOp&1 != 0, subOp&2 != 0, seg, false)
		}
		wide := subOp == 5
		if wide {
			return Instruction{Mnemonic: mnemonic, Dest: ax(), Source: wordImm(cur)}, nil
		}
		return Instruction{Mnemonic: mnemonic, Dest: al(), Source: signedImm8(cur)}, nil
	}

	if opIndex <= 3 {
		reg := segReg(opIndex)
		if subOp == 6 {
			return Instruction{Mnemonic: PUSH, Dest: reg}, nil
		}
		return Instruction{Mnemonic: POP, Dest: reg}, nil
	}

	switch opIndex {
	case 4:
		return Instruction{Mnemonic: DAA}, nil
	case 5:
		return Instruction{Mnemonic: DAS}, nil
	case 6:
		return Instruction{Mnemonic: AAA}, nil
	default:
		return Instruction{Mnemonic: AAS}, nil
	}
}

// decodeRegMemPair decodes a ModR/M byte whose reg field is a genuine
// register operand paired with an r/m operand, honoring the direction bit.
func (d Decoder) decodeRegMemPair(cur *Cursor, mnemonic Mnemonic, wide, dBit bool, seg SegmentOverride, explicitSize bool) (Instruction, error) {
	b := cur.ReadU8()
	m := decodeModRM(b)
	reg := m.RegField(wide)
	size := sizeFromWide(wide)
	rm := readRM(cur, m, wide, seg, size)
	if mem, ok := rm.(Memory); ok {
		mem.ExplicitSize = explicitSize
		rm = mem
	}

	if dBit {
		return Instruction{Mnemonic: mnemonic, Dest: reg, Source: rm}, nil
	}
	return Instruction{Mnemonic: mnemonic, Dest: rm, Source: reg}, nil
}

// decodeRegMemPair2 decodes LEA/LES/LDS: a wide destination register and a
// memory source, never carrying an explicit size keyword.
func (d Decoder) decodeRegMemPair2(cur *Cursor, mnemonic Mnemonic, wide bool, seg SegmentOverride) (Instruction, error) {
	b := cur.ReadU8()
	m := decodeModRM(b)
	reg := m.RegField(wide)
	rm := readRM(cur, m, wide, seg, SizeWord)
	return Instruction{Mnemonic: mnemonic, Dest: reg, Source: rm}, nil
}

// decodeSegRegMem decodes MOV r/m16<->sreg (0x8C/0x8E). toSeg selects
// direction: false means the segment register is the source (0x8C), true
// means it is the destination (0x8E).
func (d Decoder) decodeSegRegMem(cur *Cursor, toSeg bool, seg SegmentOverride) (Instruction, error) {
	b := cur.ReadU8()
	m := decodeModRM(b)
	if m.Reg > 3 {
		return Instruction{}, ErrIllegalSegmentSelector
	}
	sreg := segReg(m.Reg)
	rm := readRM(cur, m, true, seg, SizeWord)

	if toSeg {
		return Instruction{Mnemonic: MOV, Dest: sreg, Source: rm}, nil
	}
	return Instruction{Mnemonic: MOV, Dest: rm, Source: sreg}, nil
}

// decodeGroup1 decodes 0x80-0x83: ALU r/m,imm with the ModR/M.reg field
// selecting the operation and the S/W bits controlling immediate width
// and sign extension (S=1 reads a signed byte extended to 16 bits).
func (d Decoder) decodeGroup1(cur *Cursor, op uint8, seg SegmentOverride) (Instruction, error) {
	s := op&0x02 != 0
	wide := op&0x01 != 0

	b := cur.ReadU8()
	m := decodeModRM(b)
	mnemonic := aluMnemonics[m.Reg]
	size := sizeFromWide(wide)
	rm := readRM(cur, m, wide, seg, size)
	if mem, ok := rm.(Memory); ok {
		mem.ExplicitSize = true
		rm = mem
	}

	var imm Immediate
	switch {
	case !s && wide:
		imm = wordImm(cur)
	case s:
		imm = signedImm8(cur)
	default:
		imm = unsignedImm8(cur)
	}

	return Instruction{Mnemonic: mnemonic, Dest: rm, Source: imm}, nil
}

// decodeGroup1A decodes 0x8F: POP r/m16. Only reg=0 is legal.
func (d Decoder) decodeGroup1A(cur *Cursor, seg SegmentOverride) (Instruction, error) {
	b := cur.ReadU8()
	m := decodeModRM(b)
	if m.Reg != 0 {
		return Instruction{}, ErrIllegalSubOp
	}
	rm := readRM(cur, m, true, seg, SizeWord)
	if mem, ok := rm.(Memory); ok {
		mem.ExplicitSize = true
		rm = mem
	}
	return Instruction{Mnemonic: POP, Dest: rm}, nil
}

// decodeGroup11 decodes 0xC6/0xC7: MOV r/m,imm. Only reg=0 is legal.
func (d Decoder) decodeGroup11(cur *Cursor, wide bool, seg SegmentOverride) (Instruction, error) {
	b := cur.ReadU8()
	m := decodeModRM(b)
	if m.Reg != 0 {
		return Instruction{}, ErrIllegalSubOp
	}
	size := sizeFromWide(wide)
	rm := readRM(cur, m, wide, seg, size)
	if mem, ok := rm.(Memory); ok {
		mem.ExplicitSize = true
		rm = mem
	}

	var imm Immediate
	if wide {
		imm = wordImm(cur)
	} else {
		imm = signedImm8(cur)
	}
	return Instruction{Mnemonic: MOV, Dest: rm, Source: imm}, nil
}

// decodeGroup2 decodes 0xD0-0xD3: shift/rotate by 1 or by CL. Reg=6 is
// reserved by the ISA.
func (d Decoder) decodeGroup2(cur *Cursor, op uint8, seg SegmentOverride) (Instruction, error) {
	byCL := op&0x02 != 0
	wide := op&0x01 != 0

	b := cur.ReadU8()
	m := decodeModRM(b)
	mnemonic := group2Mnemonics[m.Reg]
	if mnemonic == mnemonicCount {
		return Instruction{}, ErrIllegalSubOp
	}

	size := sizeFromWide(wide)
	rm := readRM(cur, m, wide, seg, size)
	if mem, ok := rm.(Memory); ok {
		mem.ExplicitSize = true
		rm = mem
	}

	var source Operand
	if byCL {
		source = cl()
	} else {
		source = Immediate{Size: 1, Value: 1}
	}
	return Instruction{Mnemonic: mnemonic, Dest: rm, Source: source}, nil
}

// decodeGroup3 decodes 0xF6/0xF7: TEST/NOT/NEG/MUL/IMUL/DIV/IDIV. Reg=1 is
// reserved; reg=0 additionally reads an immediate.
func (d Decoder) decodeGroup3(cur *Cursor, wide bool, seg SegmentOverride) (Instruction, error) {
	b := cur.ReadU8()
	m := decodeModRM(b)
	mnemonic := group3Mnemonics[m.Reg]
	if mnemonic == mnemonicCount {
		return Instruction{}, ErrIllegalSubOp
	}

	size := sizeFromWide(wide)
	rm := readRM(cur, m, wide, seg, size)
	if mem, ok := rm.(Memory); ok {
		mem.ExplicitSize = true
		rm = mem
	}

	if mnemonic != TEST {
		return Instruction{Mnemonic: mnemonic, Dest: rm}, nil
	}

	var imm Immediate
	if wide {
		imm = wordImm(cur)
	} else {
		imm = signedImm8(cur)
	}
	return Instruction{Mnemonic: TEST, Dest: rm, Source: imm}, nil
}

// decodeGroup4 decodes 0xFE: INC/DEC r/m8. Only reg 0/1 are legal.
func (d Decoder) decodeGroup4(cur *Cursor, seg SegmentOverride) (Instruction, error) {
	b := cur.ReadU8()
	m := decodeModRM(b)
	if m.Reg > 1 {
		return Instruction{}, ErrIllegalSubOp
	}
	rm := readRM(cur, m, false, seg, SizeByte)
	if mem, ok := rm.(Memory); ok {
		mem.ExplicitSize = true
		rm = mem
	}
	mnemonic := INC
	if m.Reg == 1 {
		mnemonic = DEC
	}
	return Instruction{Mnemonic: mnemonic, Dest: rm}, nil
}

// decodeGroup5 decodes 0xFF: INC/DEC/CALL/JMP/PUSH against a wide r/m
// operand. Reg=7 is reserved.
func (d Decoder) decodeGroup5(cur *Cursor, seg SegmentOverride) (Instruction, error) {
	b := cur.ReadU8()
	m := decodeModRM(b)
	if m.Reg == 7 {
		return Instruction{}, ErrIllegalSubOp
	}
	rm := readRM(cur, m, true, seg, SizeWord)

	switch m.Reg {
	case 0:
		setExplicit(&rm)
		return Instruction{Mnemonic: INC, Dest: rm}, nil
	case 1:
		setExplicit(&rm)
		return Instruction{Mnemonic: DEC, Dest: rm}, nil
	case 2:
		setExplicit(&rm)
		return Instruction{Mnemonic: CALL, Dest: rm}, nil
	case 3:
		setFar(&rm)
		return Instruction{Mnemonic: CALL, Dest: rm}, nil
	case 4:
		setExplicit(&rm)
		return Instruction{Mnemonic: JMP, Dest: rm}, nil
	case 5:
		setFar(&rm)
		return Instruction{Mnemonic: JMP, Dest: rm}, nil
	default:
		setExplicit(&rm)
		return Instruction{Mnemonic: PUSH, Dest: rm}, nil
	}
}

// setExplicit marks a Memory operand as carrying an explicit size keyword;
// a no-op for Register operands.
func setExplicit(op *Operand) {
	if mem, ok := (*op).(Memory); ok {
		mem.ExplicitSize = true
		*op = mem
	}
}

// setFar marks a Memory operand as an indirect far CALL/JMP target; a
// no-op for Register operands, which the ISA does not permit here.
func setFar(op *Operand) {
	if mem, ok := (*op).(Memory); ok {
		mem.Far = true
		*op = mem
	}
}

// decodeAAMAAD decodes 0xD4/0xD5, whose mandatory second byte must be 0x0A.
func (d Decoder) decodeAAMAAD(cur *Cursor, mnemonic Mnemonic) (Instruction, error) {
	second := cur.ReadU8()
	if second != 0x0A {
		return Instruction{}, fmt.Errorf("0x%x: %w", second, ErrIllegalSecondByte)
	}
	return Instruction{Mnemonic: mnemonic}, nil
}

// decodeESC decodes the 0xD8-0xDF escape block: a 6-bit escape code formed
// from the opcode's low 3 bits and ModR/M.reg, plus an r/m source.
func (d Decoder) decodeESC(cur *Cursor, op uint8, seg SegmentOverride) (Instruction, error) {
	b := cur.ReadU8()
	m := decodeModRM(b)
	code := (op&0x07)<<3 | m.Reg
	rm := readRM(cur, m, true, seg, SizeWord)
	return Instruction{Mnemonic: ESC, Dest: Immediate{Size: 1, Value: int16(code)}, Source: rm}, nil
}

func sizeFromWide(wide bool) OperandSize {
	if wide {
		return SizeWord
	}
	return SizeByte
}

func directMem(cur *Cursor, size OperandSize, seg SegmentOverride) Memory {
	return Memory{Size: size, Direct: true, Disp: cur.ReadI16(), Segment: seg}
}

// signedImm8 reads one byte and sign-extends it, the default rule for
// 8-bit immediates.
func signedImm8(cur *Cursor) Immediate {
	return Immediate{Size: 1, Value: int16(cur.ReadI8())}
}

// unsignedImm8 reads one byte without extension, used for port numbers and
// interrupt vectors, which are conventionally unsigned.
func unsignedImm8(cur *Cursor) Immediate {
	return Immediate{Size: 1, Value: int16(cur.ReadU8())}
}

func wordImm(cur *Cursor) Immediate {
	return Immediate{Size: 2, Value: cur.ReadI16()}
}
