// Package driver implements the disassemble and execute entry points used
// by cmd/sim8086, kept separate from main so they can be exercised by tests
// without going through cobra.
package driver

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/retroenv/sim8086/arch"
	"github.com/retroenv/sim8086/arch/cpu/x86"
	"github.com/retroenv/sim8086/log"
)

// LoadOffset is the default address a program is placed at within memory
// when the caller does not choose one.
const LoadOffset = 0

// Options configures an Execute run beyond its fixed inputs. The zero
// value runs as a generic system loading at LoadOffset, keeps the
// engine's default step cap, writes no memory dump, and logs nowhere.
type Options struct {
	// DumpPath, when non-empty, receives the full memory image after the
	// run completes.
	DumpPath string

	// Logger may be nil.
	Logger *log.Logger

	// MaxSteps overrides the engine's default self-loop step cap when
	// positive.
	MaxSteps int

	// System selects the target environment the program is loaded for:
	// segment register presets and the load address derived from them.
	// Empty means arch.Generic.
	System arch.System

	// LoadOffset is the memory address a generic-system program is
	// placed at; DOS and BIOS loads derive their address from the
	// system's segment presets instead.
	LoadOffset uint16
}

// cpuOptions maps the target system to the CPU's initial register state.
func cpuOptions(opts Options) []x86.Option {
	switch opts.System {
	case arch.DOS:
		return []x86.Option{x86.WithDOSDefaults()}
	case arch.BIOS:
		// A raw image goes at the start of the ROM segment rather than
		// at the 16-byte reset vector, which could not hold it.
		return []x86.Option{x86.WithBIOSDefaults(), x86.WithInitialIP(0)}
	default:
		return []x86.Option{
			x86.WithSystemType(arch.Generic.String()),
			x86.WithInitialCS(0), x86.WithInitialDS(0), x86.WithInitialES(0), x86.WithInitialSS(0),
			x86.WithInitialSP(0xFFFE), x86.WithInitialIP(opts.LoadOffset),
		}
	}
}

// Disassemble reads the raw instruction bytes at path and writes their
// textual disassembly to w: a path header, "bits 16", one rendered
// instruction per line, and a trailing "; Failed beyond this point" line
// if decoding aborts before the stream is exhausted.
func Disassemble(w io.Writer, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading program: %w", err)
	}

	fmt.Fprintf(w, "; %s\n", path)
	fmt.Fprintln(w, "bits 16")

	decoder := x86.NewDecoder()
	printer := x86.NewPrinter()
	cur := x86.NewCursor(data, 0)

	for cur.Pos() < len(data) {
		ins, err := decoder.Decode(cur)
		if err != nil {
			fmt.Fprintln(w, "; Failed beyond this point")
			return nil
		}
		fmt.Fprintln(w, printer.String(ins))
	}
	return nil
}

// Execute loads the raw instruction bytes at path into a fresh 1 MiB
// simulator memory at the address opts.System implies, runs the
// fetch-decode-execute loop to completion, and writes the
// per-instruction trace and final register dump to w. Cancelling ctx
// stops the run between instructions; the final register dump is still
// written.
func Execute(ctx context.Context, w io.Writer, path string, opts Options) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading program: %w", err)
	}

	memory, err := x86.NewMemory(x86.MaxMemorySize, opts.Logger)
	if err != nil {
		return fmt.Errorf("creating memory: %w", err)
	}

	cpu, err := x86.New(memory, cpuOptions(opts)...)
	if err != nil {
		return fmt.Errorf("creating cpu: %w", err)
	}

	loadAddr := cpu.CalculateAddress(cpu.Slot(x86.SlotCS), cpu.Slot(x86.SlotIP))
	if err := memory.LoadData(loadAddr, data); err != nil {
		return fmt.Errorf("loading program: %w", err)
	}
	cpu.SetProgramBounds(loadAddr, loadAddr+uint32(len(data)))

	fmt.Fprintf(w, "--- %s execution ---\n", path)

	engine := x86.NewEngine(cpu, opts.Logger)
	if opts.MaxSteps > 0 {
		engine.MaxSteps = opts.MaxSteps
	}
	runErr := engine.Run(ctx, w)

	writeFinalRegisters(w, cpu)

	if opts.DumpPath != "" {
		if err := DumpFlatImage(opts.DumpPath, memory.Data()); err != nil {
			return err
		}
	}

	return runErr
}

// DumpFlatImage writes data to path as a flat 1,048,576-byte memory image,
// zero-padded or truncated to that exact length; the persisted dump is
// always the full simulator address space.
func DumpFlatImage(path string, data []uint8) error {
	image := make([]uint8, x86.MaxMemorySize)
	copy(image, data)
	if err := os.WriteFile(path, image, 0o644); err != nil {
		return fmt.Errorf("writing memory dump: %w", err)
	}
	return nil
}

// finalRegisterOrder is the order the final dump prints nonzero general/
// segment registers in, excluding IP and FLAGS which print
// unconditionally/conditionally after this list.
var finalRegisterOrder = []x86.RegSlot{
	x86.SlotAX, x86.SlotBX, x86.SlotCX, x86.SlotDX,
	x86.SlotSP, x86.SlotBP, x86.SlotSI, x86.SlotDI,
	x86.SlotES, x86.SlotCS, x86.SlotSS, x86.SlotDS,
}

func writeFinalRegisters(w io.Writer, cpu *x86.CPU) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Final registers:")
	for _, slot := range finalRegisterOrder {
		v := cpu.Slot(slot)
		if v != 0 {
			fmt.Fprintf(w, "      %s: 0x%04x (%d)\n", slot, v, v)
		}
	}
	fmt.Fprintf(w, "      ip: 0x%04x (%d)\n", cpu.Slot(x86.SlotIP), cpu.Slot(x86.SlotIP))
	if cpu.Flags() != 0 {
		fmt.Fprintf(w, "   flags: %s\n", cpu.Flags().Letters())
	}
}
