// internal/app/app.go
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"github.com/apex/log"
	logcli "github.com/apex/log/handlers/cli"
	"github.com/schollz/progressbar/v3"

	"methdiff-core/array"
	"methdiff-core/detect"
	"methdiff-core/join"
	"methdiff-core/methyl"
	"methdiff-core/normalize"
	"methdiff-core/padjust"
	"methdiff-core/qc"
	"methdiff/internal/cli"
	"methdiff/internal/config"
	"methdiff/internal/matrixio"
	"methdiff/internal/pipeline"
	"methdiff/internal/runutil"
	"methdiff/internal/version"
	"methdiff/internal/writers"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitRuntime = 1 // processing failed after inputs loaded
	ExitUsage   = 2 // bad flags, config, or input files
	ExitFlush   = 3 // results computed but not fully written
	ExitCancel  = 130
)

// RunContext is the whole methdiff run: parse, load, QC, normalize, join,
// test, adjust, write. It never calls os.Exit; the shell maps the returned
// code.
func RunContext(ctx context.Context, argv []string, stdout, stderr io.Writer) int {
	fs := cli.NewFlagSet("methdiff")
	fs.SetOutput(stderr)
	opt, err := cli.ParseArgs(fs, argv)
	if errors.Is(err, flag.ErrHelp) {
		return ExitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	if opt.Version {
		fmt.Fprintln(stdout, version.Version)
		return ExitOK
	}

	logger := &log.Logger{Handler: logcli.New(stderr), Level: log.InfoLevel}
	if opt.Quiet {
		logger.Level = log.WarnLevel
	}

	if opt.ConfigFile != "" {
		cf, err := config.Load(opt.ConfigFile)
		if err != nil {
			logger.WithError(err).Error("loading config")
			return ExitUsage
		}
		cf.Apply(&opt)
	}
	if err := cli.Validate(&opt); err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}

	rows, code := analyze(ctx, logger, &opt)
	if code != ExitOK {
		return code
	}
	return report(ctx, logger, &opt, rows, stdout, stderr)
}

// analyze runs every stage up to and including the joined long-format table.
func analyze(ctx context.Context, logger *log.Logger, opt *cli.Options) ([]join.Row, int) {
	samples, err := array.LoadSampleSheet(opt.SampleSheet)
	if err != nil {
		logger.WithError(err).Error("loading sample sheet")
		return nil, ExitUsage
	}
	sizes := array.GroupSizes(samples)
	// Group labels are user-supplied, so they get a prefix that cannot
	// collide with the fixed field names.
	logger.WithFields(log.Fields{
		"samples":               len(samples),
		"n_" + opt.CaseGroup:    sizes[opt.CaseGroup],
		"n_" + opt.ControlGroup: sizes[opt.ControlGroup],
	}).Info("sample sheet loaded")

	probes, err := array.LoadAnnotation(opt.Annotation)
	if err != nil {
		logger.WithError(err).Error("loading annotation")
		return nil, ExitUsage
	}
	logger.WithField("probes", len(probes)).Info("annotation loaded")

	red, err := matrixio.Load(opt.Red, samples)
	if err != nil {
		logger.WithError(err).Error("loading red matrix")
		return nil, ExitUsage
	}
	grn, err := matrixio.Load(opt.Grn, samples)
	if err != nil {
		logger.WithError(err).Error("loading green matrix")
		return nil, ExitUsage
	}
	logger.WithFields(log.Fields{
		"addresses": red.NRows(),
		"samples":   red.NCols(),
	}).Info("intensity matrices loaded")

	sig, err := methyl.Extract(probes, red, grn)
	if err != nil {
		logger.WithError(err).Error("resolving bead addresses")
		return nil, ExitRuntime
	}
	if n := len(sig.Skipped); n > 0 {
		logger.WithField("probes", n).Warn("annotated probes missing from the intensity matrices")
	}

	detp, err := detect.PValues(sig.Meth, sig.Unmeth, opt.BackgroundFraction)
	if err != nil {
		logger.WithError(err).Error("computing detection p-values")
		return nil, ExitRuntime
	}
	for _, s := range qc.Summarize(detp, sig.Meth, sig.Unmeth, opt.DetectionThreshold) {
		logger.WithFields(log.Fields{
			"sample":   s.Sample,
			"failed":   s.NFailed,
			"missing":  s.NMissing,
			"median_p": s.MedianP,
		}).Info("detection summary")
	}

	failed := qc.FailedProbes(detp, opt.DetectionThreshold)
	survivors := len(sig.Probes) - len(failed)
	logger.WithFields(log.Fields{
		"failed":    len(failed),
		"survivors": survivors,
		"threshold": opt.DetectionThreshold,
	}).Info("detection filter applied")
	if survivors == 0 {
		logger.Error("no probe passed the detection filter on every sample")
		return nil, opt.NoSurvivorExitCode
	}

	beta := methyl.Beta(sig)
	mval := methyl.MValue(sig)

	typeOf := make(map[string]string, len(sig.Probes))
	for _, p := range sig.Probes {
		typeOf[p.ID] = string(p.Type)
	}
	norm := normalize.Quantile(beta, func(rowID string) string { return typeOf[rowID] })
	logger.Info("stratified quantile normalization done")

	rows, err := join.Build(sig.Probes, samples, beta, mval, norm, detp, failed)
	if err != nil {
		logger.WithError(err).Error("joining per-probe tables")
		return nil, ExitRuntime
	}
	logger.WithFields(log.Fields{
		"rows":   len(rows),
		"probes": len(join.Probes(rows)),
	}).Info("long-format table built")

	if opt.JoinedOut != "" {
		if err := writers.WriteJoinedTSV(opt.JoinedOut, rows); err != nil {
			logger.WithError(err).Error("writing joined table")
			return nil, ExitRuntime
		}
		logger.WithField("path", opt.JoinedOut).Info("joined table written")
	}
	if err := ctx.Err(); err != nil {
		return nil, ExitCancel
	}
	return rows, ExitOK
}

// report runs the per-probe tests, multiple-testing corrections, and the
// output writer.
func report(ctx context.Context, logger *log.Logger, opt *cli.Options, rows []join.Row, stdout, stderr io.Writer) int {
	in, err := pipeline.BuildInput(rows, opt.CaseGroup, opt.ControlGroup)
	if err != nil {
		logger.WithError(err).Error("partitioning groups")
		return ExitUsage
	}

	workers := runutil.Threads(opt.Threads)
	cfg := pipeline.Config{
		Workers:   workers,
		BatchSize: runutil.BatchSize(opt.BatchSize, in.NProbes(), workers),
	}
	var bar *progressbar.ProgressBar
	if opt.Progress {
		bar = progressbar.NewOptions(in.NProbes(),
			progressbar.OptionSetWriter(stderr),
			progressbar.OptionSetDescription("testing probes"),
			progressbar.OptionShowCount(),
			progressbar.OptionClearOnFinish(),
		)
		cfg.OnProgress = func(n int) { _ = bar.Add(n) }
	}
	logger.WithFields(log.Fields{
		"probes":  in.NProbes(),
		"workers": cfg.Workers,
		"batch":   cfg.BatchSize,
	}).Info("testing")

	results, err := pipeline.Run(ctx, cfg, in)
	if bar != nil {
		_ = bar.Finish()
	}
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return ExitCancel
		}
		logger.WithError(err).Error("testing probes")
		return ExitRuntime
	}

	pvals := make([]float64, len(results))
	for i, r := range results {
		pvals[i] = r.Test.P
	}
	bh := padjust.BenjaminiHochberg(pvals)
	bonf := padjust.Bonferroni(pvals)
	if len(bh) != len(results) || len(bonf) != len(results) {
		logger.Error("correction and testing stages disagree on probe count")
		return ExitRuntime
	}
	nSig := 0
	for i := range results {
		results[i].PBH = bh[i]
		results[i].PBonf = bonf[i]
		if bh[i] < 0.05 {
			nSig++
		}
	}
	logger.WithFields(log.Fields{
		"tested":      padjust.N(pvals),
		"undefined":   len(pvals) - padjust.N(pvals),
		"bh_below_5%": nSig,
	}).Info("corrections applied")

	out, errCh := writers.StartResultWriter(stdout, opt.Output, opt.Sort, opt.Header, 256)
	for _, r := range results {
		out <- r
	}
	close(out)
	if err := <-errCh; err != nil {
		logger.WithError(err).Error("writing results")
		return ExitFlush
	}
	return ExitOK
}
