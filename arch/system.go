// Package arch names the target environments a loaded program can be
// executed under. The system choice decides where the driver places the
// program in memory and which initial segment registers the CPU gets.
package arch

import (
	"strings"

	"github.com/retroenv/sim8086/set"
)

// System identifies a target environment.
type System string

// Supported systems.
const (
	// BIOS is a bare ROM environment: the image is placed at the start
	// of the F000 code segment and execution begins at its first byte.
	BIOS System = "bios"

	// DOS mimics a .COM program load: CS, DS and ES share one segment
	// and execution begins at the conventional 0x100 origin.
	DOS System = "dos"

	// Generic places the raw bytes at a caller-chosen offset in low
	// memory with all segment registers zero, the default for decoding
	// exercises.
	Generic System = "generic"
)

var supportedSystems = []System{BIOS, DOS, Generic}

var supportedSystemsSet = set.NewFromSlice(supportedSystems)

// String returns the system's lowercase name.
func (s System) String() string {
	return string(s)
}

// IsValid reports whether s names a supported system.
func (s System) IsValid() bool {
	return supportedSystemsSet.Contains(s)
}

// SystemFromString parses a system name case-insensitively, reporting
// whether it is supported.
func SystemFromString(s string) (System, bool) {
	sys := System(strings.ToLower(s))
	if sys.IsValid() {
		return sys, true
	}
	return "", false
}

// SupportedSystems returns the supported systems in a fresh slice.
func SupportedSystems() []System {
	result := make([]System, len(supportedSystems))
	copy(result, supportedSystems)
	return result
}
