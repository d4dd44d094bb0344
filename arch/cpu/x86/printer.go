package x86

import "strings"

// Printer renders decoded Instruction values as assembler text.
type Printer struct{}

// NewPrinter creates a Printer. It carries no state; a zero value works.
func NewPrinter() Printer {
	return Printer{}
}

// repKeyword returns the printed prefix word for a REP-family prefix on
// the given mnemonic. CMPS/SCAS honor the Z/NZ distinction; the others
// always print plain "rep".
func repKeyword(m Mnemonic, rep RepKind) string {
	if rep == RepNone {
		return ""
	}
	if (m == CMPS || m == SCAS) && rep == RepNE {
		return "repne "
	}
	if (m == CMPS || m == SCAS) && rep == RepE {
		return "repe "
	}
	return "rep "
}

// String renders ins as a single NASM-compatible line: optional "lock ",
// optional rep keyword, mnemonic, optional b/w size suffix, operands
// separated by ", ".
func (Printer) String(ins Instruction) string {
	var b strings.Builder

	if ins.Lock {
		b.WriteString("lock ")
	}
	b.WriteString(repKeyword(ins.Mnemonic, ins.Rep))
	b.WriteString(ins.Mnemonic.String())

	if ins.Size != SizeNone {
		if ins.Size == SizeByte {
			b.WriteString("b")
		} else {
			b.WriteString("w")
		}
	}

	if ins.Dest != nil {
		b.WriteString(" ")
		b.WriteString(ins.Dest.String())
		if ins.Source != nil {
			b.WriteString(", ")
			b.WriteString(ins.Source.String())
		}
	}

	return b.String()
}
