// Package cli renders and parses flag schemas declared as struct tags.
// The sim8086 command defines its cobra flags programmatically; this
// package renders a long-form reference for those flags from a tagged
// struct that is declared separately from the cobra definitions.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"
	"reflect"
	"strconv"
	"strings"
)

// Struct tags read by AddSection.
const (
	tagFlag     = "flag"
	tagUsage    = "usage"
	tagDefault  = "default"
	tagRequired = "required"
)

// flagInfo describes one declared flag for usage rendering and required
// validation.
type flagInfo struct {
	name     string
	short    string
	usage    string
	def      string
	required bool
	ptr      any
}

// section groups flags under a heading in the usage output.
type section struct {
	name  string
	flags []*flagInfo
}

// FlagSet is a named collection of flags built from tagged structs.
type FlagSet struct {
	name     string
	flags    *flag.FlagSet
	sections []section
	out      io.Writer
}

// NewFlagSet creates an empty FlagSet for the named command.
func NewFlagSet(name string) *FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return &FlagSet{
		name:  name,
		flags: fs,
		out:   os.Stdout,
	}
}

// SetOutput redirects usage rendering, used by tests.
func (f *FlagSet) SetOutput(w io.Writer) {
	f.out = w
}

// AddSection registers every tagged field of opts, which must be a
// pointer to a struct, under the given usage heading. A field opts in
// with a `flag:"name"` or `flag:"s,name"` tag; `usage`, `default` and
// `required:"true"` tags refine it. Supported field types are bool,
// string and int.
func (f *FlagSet) AddSection(name string, opts any) {
	rv := reflect.ValueOf(opts).Elem()
	rt := rv.Type()

	sec := section{name: name}
	for i := 0; i < rt.NumField(); i++ {
		field := rt.Field(i)
		tag := field.Tag.Get(tagFlag)
		if tag == "" {
			continue
		}

		info := &flagInfo{
			usage:    field.Tag.Get(tagUsage),
			def:      field.Tag.Get(tagDefault),
			required: field.Tag.Get(tagRequired) == "true",
		}
		if short, long, ok := strings.Cut(tag, ","); ok {
			info.short = short
			info.name = long
		} else {
			info.name = tag
		}

		if !f.register(info, rv.Field(i).Addr().Interface()) {
			continue
		}
		sec.flags = append(sec.flags, info)
	}

	f.sections = append(f.sections, sec)
}

func (f *FlagSet) register(info *flagInfo, ptr any) bool {
	names := []string{info.name}
	if info.short != "" {
		names = append(names, info.short)
	}

	switch p := ptr.(type) {
	case *bool:
		def, _ := strconv.ParseBool(info.def)
		for _, n := range names {
			f.flags.BoolVar(p, n, def, info.usage)
		}
	case *string:
		for _, n := range names {
			f.flags.StringVar(p, n, info.def, info.usage)
		}
	case *int:
		def, _ := strconv.Atoi(info.def)
		for _, n := range names {
			f.flags.IntVar(p, n, def, info.usage)
		}
	default:
		return false
	}

	info.ptr = ptr
	return true
}

// Parse parses args against the registered flags and validates required
// ones, returning the remaining positional arguments.
func (f *FlagSet) Parse(args []string) ([]string, error) {
	if err := f.flags.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	var missing []string
	for _, sec := range f.sections {
		for _, info := range sec.flags {
			if info.required && isZero(info.ptr) {
				missing = append(missing, info.name)
			}
		}
	}
	if len(missing) > 0 {
		return nil, &MissingFlagsError{Flags: missing}
	}

	return f.flags.Args(), nil
}

func isZero(ptr any) bool {
	return reflect.ValueOf(ptr).Elem().IsZero()
}

// ShowUsage writes the sectioned flag reference.
func (f *FlagSet) ShowUsage() {
	fmt.Fprintf(f.out, "usage: %s [options]\n\n", f.name)

	for _, sec := range f.sections {
		fmt.Fprintf(f.out, "%s:\n", sec.name)
		for _, info := range sec.flags {
			fmt.Fprintf(f.out, "  %s\n", flagLine(info))
			fmt.Fprintf(f.out, "        %s%s\n", info.usage, defaultSuffix(info))
		}
		fmt.Fprintln(f.out)
	}
}

func flagLine(info *flagInfo) string {
	if info.short != "" {
		return fmt.Sprintf("-%s, -%s", info.short, info.name)
	}
	return "-" + info.name
}

func defaultSuffix(info *flagInfo) string {
	if info.def == "" {
		return ""
	}
	return fmt.Sprintf(" (default %s)", info.def)
}
