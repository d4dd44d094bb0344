package x86

import "errors"

// Decode error kinds. Each is fatal to the current decode/run: there is
// no recovery. Decode errors are wrapped with the offset of the failing
// instruction and, for an unknown opcode or a bad AAM/AAD second byte,
// the offending byte in hex; the form being decoded is not named.
var (
	// ErrShortRead is returned when the byte stream ends mid-instruction.
	ErrShortRead = errors.New("short read: instruction truncated at end of stream")

	// ErrUnknownOpcode is returned when no classification matches the
	// first byte of an instruction.
	ErrUnknownOpcode = errors.New("unknown opcode")

	// ErrIllegalSubOp is returned when a ModR/M reg sub-field selects a
	// combination the ISA reserves (e.g. unary group reg=001).
	ErrIllegalSubOp = errors.New("illegal sub-operation field")

	// ErrIllegalSegmentSelector is returned when a segment register field
	// selects an index greater than 3.
	ErrIllegalSegmentSelector = errors.New("illegal segment register selector")

	// ErrIllegalSecondByte is returned when AAM/AAD's mandatory second
	// byte is not 0x0A.
	ErrIllegalSecondByte = errors.New("illegal second byte")

	// ErrUnimplementedExecution is returned by the execution engine when
	// it reaches a decoded instruction with no execution semantics. It
	// also wraps a DIV/IDIV by zero, which the engine does not model as
	// an interrupt.
	ErrUnimplementedExecution = errors.New("unimplemented instruction execution")

	// ErrNilMemory is returned by New given nil memory.
	ErrNilMemory = errors.New("memory is nil")
)
