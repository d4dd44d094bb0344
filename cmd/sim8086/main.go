// Command sim8086 disassembles and simulates raw 8086/8088 instruction
// streams.
package main

import (
	"fmt"
	"os"

	"github.com/retroenv/sim8086/app"
	"github.com/retroenv/sim8086/arch"
	"github.com/retroenv/sim8086/buildinfo"
	"github.com/retroenv/sim8086/cli"
	"github.com/retroenv/sim8086/config"
	"github.com/retroenv/sim8086/internal/driver"
	"github.com/retroenv/sim8086/log"
	"github.com/spf13/cobra"
)

// version is set via -ldflags at release build time.
var version = "dev"

// settings is the subset of engine defaults sim8086.ini may override.
type settings struct {
	MaxSteps   int    `config:"engine.max_steps,default=1000000"`
	System     string `config:"engine.system,default=generic"`
	LoadOffset int    `config:"memory.load_offset,default=0"`
}

// flagSchema documents the persistent flags shared by disasm/exec; it is
// rendered by the sim8086 flags subcommand through cli.FlagSet, the same
// struct-tag-driven usage generator the rest of this module's ambient
// stack uses. The cobra flags it describes are defined separately in
// run with their own usage text and defaults.
type flagSchema struct {
	Dump   bool   `flag:"dump" usage:"in exec mode, write the final 1 MiB memory image to dump_<program>.data"`
	Config string `flag:"config" usage:"INI file overriding engine defaults (see settings)" default:"sim8086.ini"`
	System string `flag:"system" usage:"target environment a program is loaded for: generic, dos or bios" default:"generic"`
}

func main() {
	os.Exit(run())
}

func run() int {
	var dump bool
	var cfgPath string
	var system string

	root := &cobra.Command{
		Use:     "sim8086",
		Short:   "8086/8088 disassembler and functional simulator",
		Version: buildinfo.Version(version, "", ""),
	}
	root.PersistentFlags().BoolVar(&dump, "dump", false,
		"in exec mode, write the final 1 MiB memory image to dump_<program>.data")
	root.PersistentFlags().StringVar(&cfgPath, "config", "sim8086.ini",
		"INI file overriding engine defaults")
	root.PersistentFlags().StringVar(&system, "system", "",
		"target environment a program is loaded for: generic, dos or bios")

	root.AddCommand(
		disasmCommand(),
		execCommand(&dump, &cfgPath, &system),
		flagsCommand(),
	)

	if err := root.ExecuteContext(app.Context()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// disasmCommand disassembles only; the dump flag is accepted but has an
// effect solely in exec mode, where a memory image exists to persist.
func disasmCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "disasm <file>",
		Short: "Disassemble a raw 8086 instruction stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			return driver.Disassemble(os.Stdout, args[0])
		},
	}
}

func execCommand(dump *bool, cfgPath, system *string) *cobra.Command {
	return &cobra.Command{
		Use:   "exec <file>",
		Short: "Execute a raw 8086 instruction stream and print the trace",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			s := loadSettings(*cfgPath)
			logger := log.New()

			// The flag wins over the settings file when both are given.
			name := s.System
			if *system != "" {
				name = *system
			}
			sys, ok := arch.SystemFromString(name)
			if !ok {
				return fmt.Errorf("unknown system %q (supported: %v)", name, arch.SupportedSystems())
			}

			opts := driver.Options{
				Logger:     logger,
				MaxSteps:   s.MaxSteps,
				System:     sys,
				LoadOffset: uint16(s.LoadOffset),
			}
			if *dump {
				opts.DumpPath = "dump_" + path + ".data"
			}
			return driver.Execute(cmd.Context(), os.Stdout, path, opts)
		},
	}
}

// flagsCommand prints the cli.FlagSet-rendered long-form flag reference
// described by flagSchema.
func flagsCommand() *cobra.Command {
	return &cobra.Command{
		Use:    "flags",
		Short:  "Show a detailed reference for the persistent flags",
		Hidden: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			fs := cli.NewFlagSet("sim8086")
			fs.AddSection("persistent flags", &flagSchema{})
			fs.ShowUsage()
			return nil
		},
	}
}

// loadSettings applies sim8086.ini over the package defaults when present;
// a missing or unreadable file silently keeps the defaults, since the file
// is an optional override, not a required input.
func loadSettings(path string) settings {
	s := settings{
		MaxSteps:   1_000_000,
		System:     arch.Generic.String(),
		LoadOffset: driver.LoadOffset,
	}
	_ = config.Load(path, &s)
	return s
}
