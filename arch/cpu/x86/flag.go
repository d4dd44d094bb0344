package x86

// Flags is the 16-bit FLAGS register. Only the nine bits the 8086
// defines are modelled; the remaining bits are reserved and stay zero in
// this simulator.
type Flags uint16

// FLAGS bit positions.
const (
	FlagCarry     = 0  // CF
	FlagParity    = 2  // PF
	FlagAuxCarry  = 4  // AF
	FlagZero      = 6  // ZF
	FlagSign      = 7  // SF
	FlagTrap      = 8  // TF
	FlagInterrupt = 9  // IF
	FlagDirection = 10 // DF
	FlagOverflow  = 11 // OF
)

// Single-bit masks for the defined flags.
const (
	MaskCarry     = 1 << FlagCarry
	MaskParity    = 1 << FlagParity
	MaskAuxCarry  = 1 << FlagAuxCarry
	MaskZero      = 1 << FlagZero
	MaskSign      = 1 << FlagSign
	MaskTrap      = 1 << FlagTrap
	MaskInterrupt = 1 << FlagInterrupt
	MaskDirection = 1 << FlagDirection
	MaskOverflow  = 1 << FlagOverflow
)

// GetCarry returns CF.
func (f Flags) GetCarry() bool { return f&MaskCarry != 0 }

// GetParity returns PF.
func (f Flags) GetParity() bool { return f&MaskParity != 0 }

// GetAuxCarry returns AF.
func (f Flags) GetAuxCarry() bool { return f&MaskAuxCarry != 0 }

// GetZero returns ZF.
func (f Flags) GetZero() bool { return f&MaskZero != 0 }

// GetSign returns SF.
func (f Flags) GetSign() bool { return f&MaskSign != 0 }

// GetTrap returns TF.
func (f Flags) GetTrap() bool { return f&MaskTrap != 0 }

// GetInterrupt returns IF.
func (f Flags) GetInterrupt() bool { return f&MaskInterrupt != 0 }

// GetDirection returns DF.
func (f Flags) GetDirection() bool { return f&MaskDirection != 0 }

// GetOverflow returns OF.
func (f Flags) GetOverflow() bool { return f&MaskOverflow != 0 }

// Letters renders the trace notation used by the execution engine: the
// ordered subset of "CPAZSO" for whichever of CF, PF, AF, ZF, SF, OF are
// currently set.
func (f Flags) Letters() string {
	var b [6]byte
	n := 0
	if f.GetCarry() {
		b[n] = 'C'
		n++
	}
	if f.GetParity() {
		b[n] = 'P'
		n++
	}
	if f.GetAuxCarry() {
		b[n] = 'A'
		n++
	}
	if f.GetZero() {
		b[n] = 'Z'
		n++
	}
	if f.GetSign() {
		b[n] = 'S'
		n++
	}
	if f.GetOverflow() {
		b[n] = 'O'
		n++
	}
	return string(b[:n])
}
