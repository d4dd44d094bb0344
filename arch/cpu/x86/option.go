package x86

// Options holds the CPU's initial register state. Memory is sized and
// allocated separately via NewMemory before a CPU is constructed, and
// hardware interrupts are not modelled, so neither a memory-size nor an
// interrupt-enable knob belongs here.
type Options struct {
	systemType string

	initialIP uint16
	initialSP uint16
	initialCS uint16
	initialDS uint16
	initialES uint16
	initialSS uint16
}

// Option mutates Options during New.
type Option func(*Options)

// NewOptions applies options over the package defaults: CS at the reset
// segment, SP just under the top of its segment, everything else zero.
func NewOptions(options ...Option) Options {
	opts := Options{
		initialCS: 0xF000,
		initialSP: 0xFFFE,
	}
	for _, option := range options {
		option(&opts)
	}
	return opts
}

// WithSystemType records which target environment the register state was
// chosen for; readable later via CPU.SystemType.
func WithSystemType(systemType string) Option {
	return func(opts *Options) { opts.systemType = systemType }
}

// WithInitialIP overrides the starting instruction pointer.
func WithInitialIP(ip uint16) Option {
	return func(opts *Options) { opts.initialIP = ip }
}

// WithInitialSP overrides the starting stack pointer.
func WithInitialSP(sp uint16) Option {
	return func(opts *Options) { opts.initialSP = sp }
}

// WithInitialCS overrides the starting code segment.
func WithInitialCS(cs uint16) Option {
	return func(opts *Options) { opts.initialCS = cs }
}

// WithInitialDS overrides the starting data segment.
func WithInitialDS(ds uint16) Option {
	return func(opts *Options) { opts.initialDS = ds }
}

// WithInitialES overrides the starting extra segment.
func WithInitialES(es uint16) Option {
	return func(opts *Options) { opts.initialES = es }
}

// WithInitialSS overrides the starting stack segment.
func WithInitialSS(ss uint16) Option {
	return func(opts *Options) { opts.initialSS = ss }
}

// WithDOSDefaults arranges the register state a .COM-style program
// expects: CS, DS and ES sharing one segment, a separate stack segment,
// and entry at the conventional 0x100 origin.
func WithDOSDefaults() Option {
	return func(opts *Options) {
		opts.systemType = "dos"
		opts.initialCS = 0x1000
		opts.initialDS = 0x1000
		opts.initialES = 0x1000
		opts.initialSS = 0x2000
		opts.initialSP = 0xFFFE
		opts.initialIP = 0x0100
	}
}

// WithBIOSDefaults arranges the register state a ROM reset expects: CS
// at the top of the address space, data and stack segments in low
// memory, and IP at the 0xFFF0 reset vector.
func WithBIOSDefaults() Option {
	return func(opts *Options) {
		opts.systemType = "bios"
		opts.initialCS = 0xF000
		opts.initialDS = 0x0000
		opts.initialES = 0x0000
		opts.initialSS = 0x0000
		opts.initialSP = 0x0400
		opts.initialIP = 0xFFF0
	}
}
