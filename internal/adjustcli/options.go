// internal/adjustcli/options.go
package adjustcli

import (
	"errors"
	"flag"
	"fmt"

	"methdiff/internal/version"
)

// Options holds the flags of the standalone p-value adjuster.
type Options struct {
	Input   string // TSV with probe and p columns, "-" for stdin
	Header  bool   // true unless --no-header
	Version bool
}

// NewFlagSet returns a FlagSet with ContinueOnError and a usage banner.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: multiple-testing correction for a p-value table

Reads a two-column TSV (probe, p; "NA" for undefined) and writes the same
table with Benjamini-Hochberg and Bonferroni columns appended.

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returning an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	fs.StringVar(&opt.Input, "input", "-", `p-value TSV, "-" for stdin [-]`)
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "input has no header line; suppress output header [false]")
	fs.BoolVar(&opt.Version, "v", false, "print version and exit (shorthand) [false]")
	fs.BoolVar(&opt.Version, "version", false, "print version and exit [false]")
	fs.BoolVar(&help, "h", false, "show this help message (shorthand) [false]")

	if err := fs.Parse(argv); err != nil {
		return opt, err
	}
	if help {
		fs.Usage()
		return opt, flag.ErrHelp
	}
	opt.Header = !noHeader
	if opt.Version {
		return opt, nil
	}
	if len(fs.Args()) > 0 {
		return opt, fmt.Errorf("unexpected positional arguments: %v", fs.Args())
	}
	if opt.Input == "" {
		return opt, errors.New("--input must not be empty")
	}
	return opt, nil
}
