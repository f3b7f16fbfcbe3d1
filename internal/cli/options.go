// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"methdiff/internal/output"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Inputs
	SampleSheet string
	Annotation  string
	Red         string
	Grn         string
	ConfigFile  string

	// Analysis parameters
	DetectionThreshold float64 // probes over this on any sample are excluded
	BackgroundFraction float64
	CaseGroup          string
	ControlGroup       string

	// Performance
	Threads   int
	BatchSize int

	// Output
	Output    string
	Sort      bool
	Header    bool // true unless --no-header
	JoinedOut string

	// Misc
	Progress           bool
	Quiet              bool
	NoSurvivorExitCode int
	Version            bool

	// Set records which flags were given explicitly, so config-file values
	// never override the command line.
	Set map[string]bool
}

// ParseArgs registers and parses all flags, returning an Options struct.
// Validation that may depend on config-file values lives in Validate, which
// callers run after merging the config.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Inputs
	fs.StringVar(&opt.SampleSheet, "samplesheet", "", "sample sheet CSV (Sample_ID,Group,Slide,Array_Row,Array_Col) [*]")
	fs.StringVar(&opt.Annotation, "annotation", "", "probe annotation TSV [*]")
	fs.StringVar(&opt.Red, "red", "", "red channel intensity matrix (.tsv, .tsv.gz or .npy) [*]")
	fs.StringVar(&opt.Grn, "green", "", "green channel intensity matrix (.tsv, .tsv.gz or .npy) [*]")
	fs.StringVar(&opt.ConfigFile, "config", "", "YAML run configuration (flags win on conflict)")

	// Analysis parameters
	fs.Float64Var(&opt.DetectionThreshold, "detection-threshold", 0.01, "exclude probes whose detection p exceeds this on any sample [0.01]")
	fs.Float64Var(&opt.BackgroundFraction, "background-fraction", 0.05, "dimmest fraction of probes used as detection background [0.05]")
	fs.StringVar(&opt.CaseGroup, "case", "DS", "group label of the case samples [DS]")
	fs.StringVar(&opt.ControlGroup, "control", "WT", "group label of the control samples [WT]")

	// Performance
	fs.IntVar(&opt.Threads, "threads", 0, "number of worker threads (0 = all CPUs) [0]")
	fs.IntVar(&opt.BatchSize, "batch-size", 0, "probes per worker job (0 = auto) [0]")

	// Output
	fs.StringVar(&opt.Output, "output", output.FormatText, "output format: text | json | jsonl [text]")
	fs.BoolVar(&opt.Sort, "sort", false, "sort results by raw p-value (undefined last) [false]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress header line in text/TSV [false]")
	fs.StringVar(&opt.JoinedOut, "joined-out", "", "also write the post-QC long-format table to this TSV file")

	// Misc
	fs.BoolVar(&opt.Progress, "progress", false, "show a progress bar on stderr during testing [false]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "log warnings and errors only [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
	fs.IntVar(&opt.NoSurvivorExitCode, "no-survivor-exit-code", 1, "exit code when no probe survives QC [1]")
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
	opt.Set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opt.Set[f.Name] = true })
	if opt.Version {
		return opt, nil
	}
	if len(fs.Args()) > 0 {
		return opt, fmt.Errorf("unexpected positional arguments: %v", fs.Args())
	}
	return opt, nil
}

// Validate applies the CLI invariants. Run after config-file merging.
func Validate(opt *Options) error {
	switch {
	case opt.SampleSheet == "":
		return errors.New("--samplesheet is required")
	case opt.Annotation == "":
		return errors.New("--annotation is required")
	case opt.Red == "":
		return errors.New("--red is required")
	case opt.Grn == "":
		return errors.New("--green is required")
	}
	if opt.DetectionThreshold <= 0 || opt.DetectionThreshold >= 1 {
		return errors.New("--detection-threshold must be in (0,1)")
	}
	if opt.BackgroundFraction <= 0 || opt.BackgroundFraction > 1 {
		return errors.New("--background-fraction must be in (0,1]")
	}
	if opt.CaseGroup == opt.ControlGroup {
		return errors.New("--case and --control must name different groups")
	}
	if opt.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if opt.BatchSize < 0 {
		return errors.New("--batch-size must be ≥ 0")
	}
	switch opt.Output {
	case output.FormatText, output.FormatJSON, output.FormatJSONL:
	default:
		return fmt.Errorf("invalid --output %q", opt.Output)
	}
	if opt.NoSurvivorExitCode < 0 || opt.NoSurvivorExitCode > 255 {
		return errors.New("--no-survivor-exit-code must be between 0 and 255")
	}
	return nil
}
