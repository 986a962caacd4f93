// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"

	"promex-core/blast"
	"promex-core/synonym"
	"promex/internal/cli"
	"promex/internal/lists"
	"promex/internal/pipeline"
	"promex/internal/version"
	"promex/internal/writers"
)

// RunContext drives a full extraction run. Exit codes: 0 success, 2 usage
// or input-contract violation, 3 I/O failure, 130 canceled; an empty result
// exits with the configured no-match code (default 1).
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("promex")
	fs.SetOutput(io.Discard)

	usage := func() int {
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	if len(argv) == 0 {
		return usage()
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return usage()
		}
		_, _ = fmt.Fprintln(stderr, err)
		if code := usage(); code != 0 {
			return code
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "promex version %s\n", version.Version)
		if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	log := newLogger(stderr, opts)

	// Optional synonym table.
	var syn *synonym.Table
	if opts.SynonymFile != "" {
		if syn, err = synonym.Load(opts.SynonymFile); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 2
		}
		log.Debug().Int("entries", syn.Len()).Msg("synonym table loaded")
	}

	// List files; both must name the same taxa.
	annList, err := lists.Load(opts.GFFList)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	seqList, err := lists.Load(opts.SeqList)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	if err := lists.CheckSameTaxa(annList, seqList); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	seqByTaxon := lists.ByTaxon(seqList)

	// Phase 1: filter alignment hits.
	filter := blast.NewFilter(blast.Config{
		MinQueryCov:   opts.MinCoverage,
		MinSubjectCov: opts.MinCoverage,
		MinIdentity:   opts.MinIdentity,
		UsePrefix:     opts.UsePrefix,
	}, syn)
	if err := pipeline.SelectHits(opts.BlastFile, filter); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	stats := filter.Stats()
	log.Info().
		Int("rows", stats.Rows).
		Int("unique_subjects", stats.UniqueSubjects).
		Int("passed", stats.Passed).
		Float64("mean_query_cov", stats.MeanQueryCov).
		Float64("mean_subject_cov", stats.MeanSubjectCov).
		Float64("mean_identity", stats.MeanIdentity).
		Msg("alignment filtering complete")

	// Output sink: a file named from the basename, or stdout with "-".
	sink := outw
	var outFile *os.File
	if opts.OutBase != "-" {
		path := writers.OutputPath(opts.OutBase)
		if outFile, err = os.Create(path); err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		sink = bufio.NewWriter(outFile)
		log.Debug().Str("path", path).Msg("writing promoters")
	}
	closeOut := func() error {
		if outFile != nil {
			return outFile.Close()
		}
		return nil
	}

	pw := writers.NewPromoterWriter(sink)
	cfg := pipeline.ExtractConfig{Mode: opts.Mode, Length: opts.Length}

	// Phases 2+3, one taxon at a time in annotation-list order.
	for _, ann := range annList {
		tf, err := pipeline.ScanAnnotations(ann.Path, ann.Taxon, filter.Selected(), opts.UsePrefix, opts.AltSuffix, log)
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			_ = closeOut()
			return 2
		}
		err = pipeline.ExtractTaxon(parent, tf, seqByTaxon[ann.Taxon], cfg, log, pw.Write)
		if writers.IsBrokenPipe(err) {
			_ = closeOut()
			return 0
		}
		if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			_ = closeOut()
			if errors.Is(err, context.Canceled) {
				return 130
			}
			return 3
		}
	}

	if err := sink.Flush(); err != nil {
		_ = closeOut()
		if writers.IsBrokenPipe(err) {
			return 0
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}
	if err := closeOut(); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 3
	}

	log.Info().Int("promoters", pw.Count()).Msg("run complete")
	if pw.Count() == 0 {
		return opts.NoMatchExitCode
	}
	return 0
}

// Run is RunContext with a background context.
func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}

func newLogger(stderr io.Writer, opts cli.Options) zerolog.Logger {
	lvl := zerolog.InfoLevel
	switch opts.LogLevel {
	case "debug":
		lvl = zerolog.DebugLevel
	case "warn":
		lvl = zerolog.WarnLevel
	case "error":
		lvl = zerolog.ErrorLevel
	}
	if opts.Quiet {
		lvl = zerolog.ErrorLevel
	}
	w := zerolog.ConsoleWriter{Out: stderr, NoColor: true}
	return zerolog.New(w).Level(lvl).With().Timestamp().Logger()
}
