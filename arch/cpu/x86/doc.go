// Package x86 decodes and executes Intel 8086/8088 machine code.
//
// A Decoder turns a byte stream into a sequence of Instruction values; a
// Printer renders an Instruction back into assembler text; an Engine
// fetches, decodes and executes instructions against a simulated CPU and
// a flat 1 MiB Memory.
//
// Example usage:
//
//	mem, err := x86.NewMemory(x86.MaxMemorySize, nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	cpu, err := x86.New(mem, x86.WithDOSDefaults())
//	if err != nil {
//	    log.Fatal(err)
//	}
//	eng := x86.NewEngine(cpu, nil)
//	if err := eng.Run(context.Background(), io.Discard); err != nil {
//	    log.Fatal(err)
//	}
package x86
