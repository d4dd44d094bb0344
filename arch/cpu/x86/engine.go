package x86

import (
	"context"
	"fmt"
	"io"

	"github.com/retroenv/sim8086/log"
)

// arithmeticFlagMask covers the six flag bits that arithmetic/logic
// instructions recompute: CF, PF, AF, ZF, SF, OF.
const arithmeticFlagMask = Flags(MaskCarry | MaskParity | MaskAuxCarry | MaskZero | MaskSign | MaskOverflow)

// sahfFlagMask covers the five flag bits SAHF loads from AH: SF, ZF, AF,
// PF, CF.
const sahfFlagMask = Flags(MaskSign | MaskZero | MaskAuxCarry | MaskParity | MaskCarry)

// DefaultMaxSteps bounds the fetch-decode-execute loop against a program
// that never leaves its own bounds, such as the self-loop `jmp $+0`.
const DefaultMaxSteps = 1_000_000

// Engine drives the fetch-decode-execute loop: fetch at CS:IP, decode one
// instruction, advance IP, dispatch by mnemonic, emit a trace line.
type Engine struct {
	cpu      *CPU
	decoder  Decoder
	printer  Printer
	logger   *log.Logger
	halted   bool
	MaxSteps int
}

// NewEngine creates an Engine bound to cpu. logger may be nil.
func NewEngine(cpu *CPU, logger *log.Logger) *Engine {
	return &Engine{
		cpu:      cpu,
		decoder:  NewDecoder(),
		printer:  NewPrinter(),
		logger:   logger,
		MaxSteps: DefaultMaxSteps,
	}
}

// Run executes instructions until IP leaves the program bounds, the step
// cap is reached, ctx is cancelled, or a decode/execution error occurs.
// Each executed instruction's trace line is written to w. Cancellation is
// observed between instructions, never mid-instruction.
func (e *Engine) Run(ctx context.Context, w io.Writer) error {
	e.halted = false
	for steps := 0; steps < e.MaxSteps; steps++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		start, end := e.cpu.ProgramBounds()
		addr := e.cpu.CalculateAddress(e.cpu.Slot(SlotCS), e.cpu.Slot(SlotIP))
		if addr < start || addr >= end {
			return nil
		}

		cur := NewCursor(e.cpu.memory.bytesFrom(addr), 0)
		ins, err := e.decoder.Decode(cur)
		if err != nil {
			if e.logger != nil {
				e.logger.Debug("decode failed during execution", log.Err(err))
			}
			return err
		}

		oldIP := e.cpu.Slot(SlotIP)
		oldFlags := e.cpu.Flags()
		e.cpu.SetSlot(SlotIP, oldIP+uint16(ins.Length))

		if err := e.execute(ins, oldIP); err != nil {
			if e.logger != nil {
				e.logger.Debug("unimplemented instruction",
					log.String("mnemonic", ins.Mnemonic.String()))
			}
			return err
		}

		newIP := e.cpu.Slot(SlotIP)
		newFlags := e.cpu.Flags()

		line := e.printer.String(ins) + " ;"
		for _, t := range e.cpu.DrainTrace() {
			line += t
		}
		line += fmt.Sprintf(" ip:0x%x->0x%x", oldIP, newIP)
		if newFlags != oldFlags {
			line += fmt.Sprintf(" flags:%s->%s", oldFlags.Letters(), newFlags.Letters())
		}
		fmt.Fprintln(w, line)

		if e.halted {
			return nil
		}
	}
	return nil
}

// execute dispatches ins by mnemonic, mutating CPU state. oldIP is the
// address of ins itself, used by relative branches whose Label already
// encodes the branch's own instruction length.
func (e *Engine) execute(ins Instruction, oldIP uint16) error {
	c := e.cpu

	switch {
	case ins.Mnemonic == MOV:
		c.WriteOperandValue(ins.Dest, c.ReadOperandValue(ins.Source))
		return nil

	case ins.Mnemonic == XCHG:
		a := c.ReadOperandValue(ins.Dest)
		b := c.ReadOperandValue(ins.Source)
		c.WriteOperandValue(ins.Dest, b)
		c.WriteOperandValue(ins.Source, a)
		return nil

	case ins.Mnemonic == LEA:
		if mem, ok := ins.Source.(Memory); ok {
			c.WriteOperandValue(ins.Dest, c.effectiveOffset(mem))
		}
		return nil

	case ins.Mnemonic == XLAT:
		// AL <- [DS:BX+AL], the fixed table-lookup form.
		table := Memory{Size: SizeByte, Formula: 7, Disp: int16(c.ReadRegister(al()))}
		c.WriteRegister(al(), c.ReadMemoryOperand(table))
		return nil

	case ins.Mnemonic == CBW:
		c.WriteRegister(ax(), uint16(int16(int8(uint8(c.ReadRegister(al()))))))
		return nil

	case ins.Mnemonic == CWD:
		if c.Slot(SlotAX)&0x8000 != 0 {
			c.WriteRegister(dx(), 0xFFFF)
		} else {
			c.WriteRegister(dx(), 0)
		}
		return nil

	case ins.Mnemonic == LAHF:
		// Bit 1 of FLAGS always reads as set.
		c.WriteRegister(Register{Size: 1, Index: 4}, (c.Slot(SlotFLAGS)&0xFF)|0x02)
		return nil

	case ins.Mnemonic == SAHF:
		ah := c.ReadRegister(Register{Size: 1, Index: 4})
		c.SetFlags((c.Flags() &^ sahfFlagMask) | (Flags(ah) & sahfFlagMask))
		return nil

	case ins.Mnemonic == PUSHF:
		e.push(c.Slot(SlotFLAGS))
		return nil

	case ins.Mnemonic == POPF:
		c.SetFlags(Flags(e.pop()) & (arithmeticFlagMask | MaskTrap | MaskInterrupt | MaskDirection))
		return nil

	case ins.Mnemonic == HLT:
		e.halted = true
		return nil

	case ins.Mnemonic == ADD || ins.Mnemonic == ADC || ins.Mnemonic == SUB ||
		ins.Mnemonic == SBB || ins.Mnemonic == CMP:
		return e.execArith(ins)

	case ins.Mnemonic == AND || ins.Mnemonic == OR || ins.Mnemonic == XOR || ins.Mnemonic == TEST:
		return e.execLogic(ins)

	case ins.Mnemonic == INC || ins.Mnemonic == DEC:
		return e.execIncDec(ins)

	case ins.Mnemonic == NEG:
		wide := opWide(ins.Dest)
		a := c.ReadOperandValue(ins.Dest)
		result, flags := subFlags(0, a, wide)
		c.WriteOperandValue(ins.Dest, result)
		c.SetFlags((c.Flags() &^ arithmeticFlagMask) | flags)
		return nil

	case ins.Mnemonic == NOT:
		wide := opWide(ins.Dest)
		a := c.ReadOperandValue(ins.Dest)
		c.WriteOperandValue(ins.Dest, ^a&sizeMask(wide))
		return nil

	case ins.Mnemonic == MUL || ins.Mnemonic == IMUL:
		e.execMul(ins, ins.Mnemonic == IMUL)
		return nil

	case ins.Mnemonic == DIV || ins.Mnemonic == IDIV:
		return e.execDiv(ins, ins.Mnemonic == IDIV)

	case ins.Mnemonic == SHL || ins.Mnemonic == SHR || ins.Mnemonic == SAR ||
		ins.Mnemonic == ROL || ins.Mnemonic == ROR || ins.Mnemonic == RCL || ins.Mnemonic == RCR:
		e.execShift(ins)
		return nil

	case ins.Mnemonic == PUSH:
		e.push(c.ReadOperandValue(ins.Dest))
		return nil

	case ins.Mnemonic == POP:
		c.WriteOperandValue(ins.Dest, e.pop())
		return nil

	case ins.Mnemonic.IsConditionalJump():
		if conditionTrue(ins.Mnemonic, c.Flags()) {
			e.branch(ins, oldIP)
		}
		return nil

	case ins.Mnemonic == JCXZ:
		if c.ReadRegister(DecodeRegister(1, true, false)) == 0 {
			e.branch(ins, oldIP)
		}
		return nil

	case ins.Mnemonic == LOOP || ins.Mnemonic == LOOPZ || ins.Mnemonic == LOOPNZ:
		return e.execLoop(ins, oldIP)

	case ins.Mnemonic == JMP:
		e.jumpTarget(ins, oldIP)
		return nil

	case ins.Mnemonic == CALL:
		e.execCall(ins, oldIP)
		return nil

	case ins.Mnemonic == RET:
		if imm, ok := ins.Dest.(Immediate); ok {
			c.SetSlot(SlotIP, e.pop())
			c.SetSlot(SlotSP, c.Slot(SlotSP)+uint16(imm.Value))
			return nil
		}
		c.SetSlot(SlotIP, e.pop())
		return nil

	case ins.Mnemonic.IsString():
		return e.execString(ins)

	case ins.Mnemonic == CLC:
		c.SetFlags(c.Flags() &^ Flags(MaskCarry))
		return nil
	case ins.Mnemonic == STC:
		c.SetFlags(c.Flags() | Flags(MaskCarry))
		return nil
	case ins.Mnemonic == CMC:
		c.SetFlags(c.Flags() ^ Flags(MaskCarry))
		return nil
	case ins.Mnemonic == CLD:
		c.SetFlags(c.Flags() &^ Flags(MaskDirection))
		return nil
	case ins.Mnemonic == STD:
		c.SetFlags(c.Flags() | Flags(MaskDirection))
		return nil
	case ins.Mnemonic == CLI:
		c.SetFlags(c.Flags() &^ Flags(MaskInterrupt))
		return nil
	case ins.Mnemonic == STI:
		c.SetFlags(c.Flags() | Flags(MaskInterrupt))
		return nil

	default:
		return fmt.Errorf("%s: %w", ins.Mnemonic, ErrUnimplementedExecution)
	}
}

// branch overwrites IP with the branch target: the address of the branch
// instruction itself plus its Label displacement (which already folds in
// the instruction's own length).
func (e *Engine) branch(ins Instruction, oldIP uint16) {
	e.jumpTarget(ins, oldIP)
}

func (e *Engine) jumpTarget(ins Instruction, oldIP uint16) {
	switch dest := ins.Dest.(type) {
	case Label:
		e.cpu.SetSlot(SlotIP, oldIP+uint16(dest.Disp))
	case FarPointer:
		e.cpu.SetSlot(SlotCS, dest.CS)
		e.cpu.SetSlot(SlotIP, dest.IP)
	case Register, Memory:
		e.cpu.SetSlot(SlotIP, e.cpu.ReadOperandValue(dest))
	}
}

func (e *Engine) execCall(ins Instruction, oldIP uint16) {
	returnIP := e.cpu.Slot(SlotIP)
	if _, far := ins.Dest.(FarPointer); far {
		e.push(e.cpu.Slot(SlotCS))
	}
	e.push(returnIP)
	e.jumpTarget(ins, oldIP)
}

func (e *Engine) execLoop(ins Instruction, oldIP uint16) error {
	cx := DecodeRegister(1, true, false)
	next := e.cpu.ReadRegister(cx) - 1
	e.cpu.WriteRegister(cx, next)

	taken := next != 0
	if ins.Mnemonic == LOOPZ {
		taken = taken && e.cpu.Flags().GetZero()
	} else if ins.Mnemonic == LOOPNZ {
		taken = taken && !e.cpu.Flags().GetZero()
	}
	if taken {
		e.branch(ins, oldIP)
	}
	return nil
}

func (e *Engine) push(value uint16) {
	sp := e.cpu.Slot(SlotSP) - 2
	e.cpu.SetSlot(SlotSP, sp)
	e.cpu.memory.Write16(e.cpu.CalculateAddress(e.cpu.Slot(SlotSS), sp), value)
}

func (e *Engine) pop() uint16 {
	sp := e.cpu.Slot(SlotSP)
	value := e.cpu.memory.Read16(e.cpu.CalculateAddress(e.cpu.Slot(SlotSS), sp))
	e.cpu.SetSlot(SlotSP, sp+2)
	return value
}

func (e *Engine) execArith(ins Instruction) error {
	c := e.cpu
	wide := opWide(ins.Dest)
	a := c.ReadOperandValue(ins.Dest)
	b := c.ReadOperandValue(ins.Source)

	carry := uint16(0)
	if c.Flags().GetCarry() {
		carry = 1
	}

	var result uint16
	var flags Flags
	switch ins.Mnemonic {
	case ADD:
		result, flags = addFlags(a, b, wide)
	case ADC:
		result, flags = addCarryFlags(a, b, carry, wide)
	case SUB, CMP:
		result, flags = subFlags(a, b, wide)
	case SBB:
		result, flags = subBorrowFlags(a, b, carry, wide)
	}

	c.SetFlags((c.Flags() &^ arithmeticFlagMask) | flags)
	if ins.Mnemonic != CMP {
		c.WriteOperandValue(ins.Dest, result)
	}
	return nil
}

func (e *Engine) execLogic(ins Instruction) error {
	c := e.cpu
	wide := opWide(ins.Dest)
	a := c.ReadOperandValue(ins.Dest)
	b := c.ReadOperandValue(ins.Source)

	var result uint16
	switch ins.Mnemonic {
	case AND, TEST:
		result = a & b
	case OR:
		result = a | b
	default:
		result = a ^ b
	}
	result &= sizeMask(wide)

	flags := logicFlags(result, wide)
	c.SetFlags((c.Flags() &^ arithmeticFlagMask) | flags)
	if ins.Mnemonic != TEST {
		c.WriteOperandValue(ins.Dest, result)
	}
	return nil
}

func (e *Engine) execIncDec(ins Instruction) error {
	c := e.cpu
	wide := opWide(ins.Dest)
	a := c.ReadOperandValue(ins.Dest)

	var result uint16
	var flags Flags
	if ins.Mnemonic == INC {
		result, flags = addFlags(a, 1, wide)
	} else {
		result, flags = subFlags(a, 1, wide)
	}

	// INC/DEC leave CF untouched.
	keep := c.Flags() & Flags(MaskCarry)
	c.SetFlags((c.Flags() &^ arithmeticFlagMask) | (flags &^ Flags(MaskCarry)) | keep)
	c.WriteOperandValue(ins.Dest, result)
	return nil
}

func (e *Engine) execMul(ins Instruction, signed bool) {
	c := e.cpu
	wide := opWide(ins.Dest)
	rm := c.ReadOperandValue(ins.Dest)

	var overflow bool
	if wide {
		axv := c.Slot(SlotAX)
		if signed {
			product := int32(int16(axv)) * int32(int16(rm))
			c.SetSlot(SlotAX, uint16(product))
			c.SetSlot(SlotDX, uint16(uint32(product)>>16))
			overflow = product != int32(int16(uint16(product)))
		} else {
			product := uint32(axv) * uint32(rm)
			c.SetSlot(SlotAX, uint16(product))
			c.SetSlot(SlotDX, uint16(product>>16))
			overflow = uint16(product>>16) != 0
		}
	} else {
		alv := c.ReadRegister(al())
		if signed {
			product := int16(int8(uint8(alv))) * int16(int8(uint8(rm)))
			c.WriteRegister(ax(), uint16(product))
			overflow = product != int16(int8(uint8(product)))
		} else {
			product := (alv & 0xFF) * (rm & 0xFF)
			c.WriteRegister(ax(), product)
			overflow = product>>8 != 0
		}
	}

	flags := c.Flags() &^ Flags(MaskCarry|MaskOverflow)
	if overflow {
		flags |= Flags(MaskCarry | MaskOverflow)
	}
	c.SetFlags(flags)
}

func (e *Engine) execDiv(ins Instruction, signed bool) error {
	c := e.cpu
	wide := opWide(ins.Dest)
	divisor := c.ReadOperandValue(ins.Dest)

	if divisor == 0 {
		return fmt.Errorf("%s: division by zero: %w", ins.Mnemonic, ErrUnimplementedExecution)
	}

	if wide {
		dividend := uint32(c.Slot(SlotDX))<<16 | uint32(c.Slot(SlotAX))
		if signed {
			sdividend := int64(int32(dividend))
			sdivisor := int64(int16(divisor))
			c.SetSlot(SlotAX, uint16(sdividend/sdivisor))
			c.SetSlot(SlotDX, uint16(sdividend%sdivisor))
		} else {
			c.SetSlot(SlotAX, uint16(dividend/uint32(divisor)))
			c.SetSlot(SlotDX, uint16(dividend%uint32(divisor)))
		}
		return nil
	}

	dividend := c.Slot(SlotAX)
	if signed {
		sdividend := int32(int16(dividend))
		sdivisor := int32(int8(uint8(divisor)))
		q := sdividend / sdivisor
		r := sdividend % sdivisor
		c.WriteRegister(al(), uint16(uint8(q)))
		c.WriteRegister(Register{Size: 1, Index: 4}, uint16(uint8(r)))
	} else {
		q := dividend / (divisor & 0xFF)
		r := dividend % (divisor & 0xFF)
		c.WriteRegister(al(), q)
		c.WriteRegister(Register{Size: 1, Index: 4}, r)
	}
	return nil
}

// execShift implements SHL/SHR/SAR/ROL/ROR/RCL/RCR. CF always reflects the
// last bit shifted or rotated out; OF is meaningful only for a count of 1
// (the 8086 reference leaves it undefined otherwise, so a multi-bit shift
// leaves OF clear). SHL/SHR/SAR also set ZF, SF and PF from the result;
// rotates leave them unchanged.
func (e *Engine) execShift(ins Instruction) {
	c := e.cpu
	wide := opWide(ins.Dest)
	count := uint8(c.ReadOperandValue(ins.Source))
	if count == 0 {
		return
	}

	bits := uint8(8)
	if wide {
		bits = 16
	}
	signBit := uint16(1) << (bits - 1)
	mask := sizeMask(wide)

	val := c.ReadOperandValue(ins.Dest)
	cf := c.Flags().GetCarry()
	var of bool

	for i := uint8(0); i < count; i++ {
		before := val
		switch ins.Mnemonic {
		case SHL:
			cf = before&signBit != 0
			val = (before << 1) & mask
			of = cf != (val&signBit != 0)
		case SHR:
			cf = before&1 != 0
			val = before >> 1
			of = before&signBit != 0
		case SAR:
			cf = before&1 != 0
			val = (before >> 1) | (before & signBit)
			of = false
		case ROL:
			cf = before&signBit != 0
			val = ((before << 1) | b2u16(cf)) & mask
			of = cf != (val&signBit != 0)
		case ROR:
			cf = before&1 != 0
			val = (before >> 1) | (b2u16(cf) << (bits - 1))
			of = (val&signBit != 0) != (val&(signBit>>1) != 0)
		case RCL:
			oldCF := b2u16(cf)
			cf = before&signBit != 0
			val = ((before << 1) | oldCF) & mask
			of = cf != (val&signBit != 0)
		case RCR:
			oldCF := cf
			cf = before&1 != 0
			val = (before >> 1) | (b2u16(oldCF) << (bits - 1))
			of = (val&signBit != 0) != (before&signBit != 0)
		}
	}

	c.WriteOperandValue(ins.Dest, val)
	flags := c.Flags() &^ Flags(MaskCarry|MaskOverflow)
	if cf {
		flags |= Flags(MaskCarry)
	}
	if count == 1 && of {
		flags |= Flags(MaskOverflow)
	}
	if ins.Mnemonic == SHL || ins.Mnemonic == SHR || ins.Mnemonic == SAR {
		flags = (flags &^ Flags(MaskZero|MaskSign|MaskParity))
		if val == 0 {
			flags |= Flags(MaskZero)
		}
		if val&signBit != 0 {
			flags |= Flags(MaskSign)
		}
		if evenParity(uint8(val)) {
			flags |= Flags(MaskParity)
		}
	}
	c.SetFlags(flags)
}

func b2u16(b bool) uint16 {
	if b {
		return 1
	}
	return 0
}

// execString implements MOVS/CMPS/SCAS/LODS/STOS, honoring REP-family
// repetition and the direction flag's control over SI/DI stepping.
func (e *Engine) execString(ins Instruction) error {
	c := e.cpu
	step := int16(1)
	if ins.Size == SizeByte {
		step = 1
	} else {
		step = 2
	}
	if c.Flags().GetDirection() {
		step = -step
	}

	si := DecodeRegister(6, true, false)
	di := DecodeRegister(7, true, false)

	iterate := func() bool {
		switch ins.Mnemonic {
		case MOVS:
			srcMem := Memory{Size: ins.Size, Formula: 4} // si
			dstMem := Memory{Size: ins.Size, Formula: 5} // di, always ES-relative per 8086 convention
			v := c.ReadMemoryOperand(srcMem)
			c.writeES(dstMem, v)
			c.WriteRegister(si, c.ReadRegister(si)+uint16(step))
			c.WriteRegister(di, c.ReadRegister(di)+uint16(step))
			return true
		case LODS:
			srcMem := Memory{Size: ins.Size, Formula: 4}
			v := c.ReadMemoryOperand(srcMem)
			if ins.Size == SizeByte {
				c.WriteRegister(al(), v)
			} else {
				c.WriteRegister(ax(), v)
			}
			c.WriteRegister(si, c.ReadRegister(si)+uint16(step))
			return true
		case STOS:
			dstMem := Memory{Size: ins.Size, Formula: 5}
			var v uint16
			if ins.Size == SizeByte {
				v = c.ReadRegister(al())
			} else {
				v = c.ReadRegister(ax())
			}
			c.writeES(dstMem, v)
			c.WriteRegister(di, c.ReadRegister(di)+uint16(step))
			return true
		case CMPS:
			srcMem := Memory{Size: ins.Size, Formula: 4}
			dstMem := Memory{Size: ins.Size, Formula: 5}
			a := c.ReadMemoryOperand(srcMem)
			b := c.readES(dstMem)
			_, flags := subFlags(a, b, ins.Size == SizeWord)
			c.SetFlags((c.Flags() &^ arithmeticFlagMask) | flags)
			c.WriteRegister(si, c.ReadRegister(si)+uint16(step))
			c.WriteRegister(di, c.ReadRegister(di)+uint16(step))
			return true
		case SCAS:
			dstMem := Memory{Size: ins.Size, Formula: 5}
			a := c.ReadRegister(registerForSize(ins.Size))
			b := c.readES(dstMem)
			_, flags := subFlags(a, b, ins.Size == SizeWord)
			c.SetFlags((c.Flags() &^ arithmeticFlagMask) | flags)
			c.WriteRegister(di, c.ReadRegister(di)+uint16(step))
			return true
		}
		return false
	}

	if ins.Rep == RepNone {
		iterate()
		return nil
	}

	for c.ReadRegister(DecodeRegister(1, true, false)) != 0 {
		cx := DecodeRegister(1, true, false)
		c.WriteRegister(cx, c.ReadRegister(cx)-1)
		iterate()

		if ins.Mnemonic == CMPS || ins.Mnemonic == SCAS {
			zf := c.Flags().GetZero()
			if ins.Rep == RepE && !zf {
				break
			}
			if ins.Rep == RepNE && zf {
				break
			}
		}
	}
	return nil
}

func registerForSize(size OperandSize) Register {
	if size == SizeByte {
		return al()
	}
	return ax()
}

// writeES stores a value through m resolved against ES rather than the
// formula's usual default segment, the fixed rule for STOS/MOVS's
// destination operand.
func (c *CPU) writeES(m Memory, value uint16) {
	offset := c.effectiveOffset(m)
	addr := c.CalculateAddress(c.Slot(SlotES), offset)
	if m.Size == SizeByte {
		c.memory.Write8(addr, uint8(value))
		return
	}
	c.memory.Write16(addr, value)
}

// readES loads a value through m resolved against ES, the fixed rule for
// CMPS/SCAS's second operand.
func (c *CPU) readES(m Memory) uint16 {
	offset := c.effectiveOffset(m)
	addr := c.CalculateAddress(c.Slot(SlotES), offset)
	if m.Size == SizeByte {
		return uint16(c.memory.Read8(addr))
	}
	return c.memory.Read16(addr)
}

// conditionTrue evaluates a conditional jump mnemonic's branch condition
// against the current flags.
func conditionTrue(m Mnemonic, f Flags) bool {
	switch m {
	case JE:
		return f.GetZero()
	case JNE:
		return !f.GetZero()
	case JB:
		return f.GetCarry()
	case JNB:
		return !f.GetCarry()
	case JBE:
		return f.GetCarry() || f.GetZero()
	case JA:
		return !f.GetCarry() && !f.GetZero()
	case JL:
		return f.GetSign() != f.GetOverflow()
	case JGE:
		return f.GetSign() == f.GetOverflow()
	case JLE:
		return (f.GetSign() != f.GetOverflow()) || f.GetZero()
	case JG:
		return (f.GetSign() == f.GetOverflow()) && !f.GetZero()
	case JP:
		return f.GetParity()
	case JNP:
		return !f.GetParity()
	case JO:
		return f.GetOverflow()
	case JNO:
		return !f.GetOverflow()
	case JS:
		return f.GetSign()
	case JNS:
		return !f.GetSign()
	default:
		return false
	}
}

func opWide(op Operand) bool {
	switch v := op.(type) {
	case Register:
		return v.Size == 2
	case Memory:
		return v.Size == SizeWord
	case Immediate:
		return v.Size == 2
	default:
		return true
	}
}

func sizeMask(wide bool) uint16 {
	if wide {
		return 0xFFFF
	}
	return 0xFF
}

func evenParity(b uint8) bool {
	n := 0
	for i := 0; i < 8; i++ {
		if b&(1<<i) != 0 {
			n++
		}
	}
	return n%2 == 0
}

// addFlags computes a+b at the given width and the six arithmetic flag
// bits the hardware derives from the sum.
func addFlags(a, b uint16, wide bool) (uint16, Flags) {
	return addCarryFlags(a, b, 0, wide)
}

// addCarryFlags computes a+b+carry, keeping the carry-in separate from
// the addend so a carry out of an all-ones b is not lost to 16-bit
// wraparound before the width mask is applied.
func addCarryFlags(a, b, carry uint16, wide bool) (uint16, Flags) {
	mask := uint32(sizeMask(wide))
	signBit := uint32(sizeMask(wide)>>1 + 1)

	av := uint32(a) & mask
	bv := uint32(b) & mask
	sum := av + bv + uint32(carry)
	result := uint16(sum & mask)

	var flags Flags
	if sum&(mask+1) != 0 {
		flags |= Flags(MaskCarry)
	}
	if (av^bv)&signBit == 0 && (av^uint32(result))&signBit != 0 {
		flags |= Flags(MaskOverflow)
	}
	if result == 0 {
		flags |= Flags(MaskZero)
	}
	if uint32(result)&signBit != 0 {
		flags |= Flags(MaskSign)
	}
	if (av^bv^uint32(result))&0x10 != 0 {
		flags |= Flags(MaskAuxCarry)
	}
	if evenParity(uint8(result)) {
		flags |= Flags(MaskParity)
	}
	return result, flags
}

// subFlags computes a-b at the given width and the six arithmetic flag
// bits the hardware derives from the difference.
func subFlags(a, b uint16, wide bool) (uint16, Flags) {
	return subBorrowFlags(a, b, 0, wide)
}

// subBorrowFlags computes a-b-borrow, keeping the borrow-in separate from
// the subtrahend so an all-ones b plus a borrow is not folded to zero by
// 16-bit wraparound before the width mask is applied.
func subBorrowFlags(a, b, borrow uint16, wide bool) (uint16, Flags) {
	mask := uint32(sizeMask(wide))
	signBit := uint32(sizeMask(wide)>>1 + 1)

	av := uint32(a) & mask
	bv := uint32(b) & mask
	diff := uint32(int64(av)-int64(bv)-int64(borrow)) & mask
	result := uint16(diff)

	var flags Flags
	if bv+uint32(borrow) > av {
		flags |= Flags(MaskCarry)
	}
	if (bv&0xF)+uint32(borrow) > (av & 0xF) {
		flags |= Flags(MaskAuxCarry)
	}
	if (av^bv)&signBit != 0 && (av^uint32(result))&signBit != 0 {
		flags |= Flags(MaskOverflow)
	}
	if result == 0 {
		flags |= Flags(MaskZero)
	}
	if uint32(result)&signBit != 0 {
		flags |= Flags(MaskSign)
	}
	if evenParity(uint8(result)) {
		flags |= Flags(MaskParity)
	}
	return result, flags
}

// logicFlags computes the flags AND/OR/XOR/TEST set: CF and OF cleared,
// AF undefined (left clear), ZF/SF/PF from the result.
func logicFlags(result uint16, wide bool) Flags {
	var flags Flags
	if result == 0 {
		flags |= Flags(MaskZero)
	}
	signBit := uint16(sizeMask(wide)>>1 + 1)
	if result&signBit != 0 {
		flags |= Flags(MaskSign)
	}
	if evenParity(uint8(result)) {
		flags |= Flags(MaskParity)
	}
	return flags
}
