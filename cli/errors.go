package cli

import "strings"

// MissingFlagsError reports which required flags were absent from the
// parsed arguments.
type MissingFlagsError struct {
	Flags []string
}

func (e *MissingFlagsError) Error() string {
	return "missing required flag(s): " + strings.Join(e.Flags, ", ")
}
