// Package buildinfo formats the version string shown by sim8086's
// --version flag from the values linked in at release time.
package buildinfo

import (
	"fmt"
	"runtime"
	"strings"
)

// Version assembles a one-line version description. version is always
// included; commit and date are appended only when the build linked them
// in, so a plain `go build` prints just "dev" plus the Go version.
func Version(version, commit, date string) string {
	parts := []string{version}
	if commit != "" {
		parts = append(parts, fmt.Sprintf("(commit %s)", commit))
	}
	if date != "" {
		parts = append(parts, fmt.Sprintf("built %s", date))
	}
	parts = append(parts, runtime.Version())
	return strings.Join(parts, " ")
}
