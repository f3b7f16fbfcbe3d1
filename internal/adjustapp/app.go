// internal/adjustapp/app.go
// Package adjustapp implements methdiff-adjust, a small filter that applies
// Benjamini-Hochberg and Bonferroni corrections to an existing p-value
// table without re-running the analysis.
package adjustapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"methdiff-core/padjust"
	"methdiff/internal/adjustcli"
	"methdiff/internal/output"
	"methdiff/internal/version"
	"methdiff/internal/writers"
)

const header = "probe\tp\tp_bh\tp_bonferroni"

func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := adjustcli.NewFlagSet("methdiff-adjust")
	fs.SetOutput(stderr)
	opt, err := adjustcli.ParseArgs(fs, argv)
	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if opt.Version {
		fmt.Fprintln(stdout, version.Version)
		return 0
	}

	in := os.Stdin
	if opt.Input != "-" {
		fh, err := os.Open(opt.Input)
		if err != nil {
			fmt.Fprintln(stderr, err)
			return 2
		}
		defer fh.Close()
		in = fh
	}

	probes, pvals, err := readTable(in, opt.Header)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 2
	}
	if err := ctx.Err(); err != nil {
		return 130
	}

	bh := padjust.BenjaminiHochberg(pvals)
	bonf := padjust.Bonferroni(pvals)

	bw := bufio.NewWriter(stdout)
	if opt.Header {
		fmt.Fprintln(bw, header)
	}
	for i, probe := range probes {
		_, err := fmt.Fprintf(bw, "%s\t%s\t%s\t%s\n",
			probe, output.Float(pvals[i]), output.Float(bh[i]), output.Float(bonf[i]))
		if err != nil {
			if writers.IsBrokenPipe(err) {
				return 0
			}
			fmt.Fprintln(stderr, err)
			return 3
		}
	}
	if err := bw.Flush(); err != nil {
		if writers.IsBrokenPipe(err) {
			return 0
		}
		fmt.Fprintln(stderr, err)
		return 3
	}
	return 0
}

// readTable parses the two-column input. "NA", "nan" and empty p fields
// stay undefined and are excluded from the correction denominator.
func readTable(r io.Reader, header bool) (probes []string, pvals []float64, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), 16<<20)
	line := 0
	for sc.Scan() {
		line++
		txt := strings.TrimRight(sc.Text(), "\r")
		if txt == "" {
			continue
		}
		if line == 1 && header {
			continue
		}
		fields := strings.Split(txt, "\t")
		if len(fields) < 2 {
			return nil, nil, fmt.Errorf("line %d: want probe<TAB>p, got %q", line, txt)
		}
		p := math.NaN()
		switch v := strings.TrimSpace(fields[1]); strings.ToLower(v) {
		case "", "na", "nan":
		default:
			p, err = strconv.ParseFloat(v, 64)
			if err != nil {
				return nil, nil, fmt.Errorf("line %d: bad p-value %q", line, v)
			}
			if p < 0 || p > 1 {
				return nil, nil, fmt.Errorf("line %d: p-value %v outside [0,1]", line, p)
			}
		}
		probes = append(probes, fields[0])
		pvals = append(pvals, p)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, err
	}
	return probes, pvals, nil
}
