// internal/cli/cli.go
package cli

import (
	"flag"
	"fmt"

	"methdiff/internal/version"
)

// NewFlagSet returns a FlagSet with ContinueOnError and a usage banner.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: differential methylation analysis for two-color arrays

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}
