// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"

	"promex-core/region"
	"promex/internal/version"
)

// Options holds all CLI flags and arguments.
type Options struct {
	// Inputs
	BlastFile   string
	GFFList     string
	SeqList     string
	SynonymFile string

	// Selection
	MinCoverage float64 // applied to both query and subject coverage
	MinIdentity float64
	UsePrefix   bool
	AltSuffix   bool

	// Region projection
	ModeLetter string
	Mode       region.Mode
	Length     int

	// Output
	OutBase         string
	NoMatchExitCode int

	// Misc
	LogLevel string
	Quiet    bool
	Version  bool
}

// NewFlagSet returns a configured FlagSet with custom usage/help.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(),
			`%s: promoter-sequence extraction from BLAST hits, GFF annotations and FASTA assemblies

Version: %s

Usage of %s:
`, name, version.Version, name)
		fs.PrintDefaults()
	}
	return fs
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var opt Options
	var help bool

	// Inputs
	fs.StringVar(&opt.BlastFile, "blast", "", "BLAST tabular file (14 columns: outfmt 6 + qlen slen) [*]")
	fs.StringVar(&opt.GFFList, "gff-list", "", "2-column TSV: taxon id, annotation file path [*]")
	fs.StringVar(&opt.SeqList, "seq-list", "", "2-column TSV: taxon id, assembly FASTA path [*]")
	fs.StringVar(&opt.SynonymFile, "synonyms", "", "optional synonym TSV: external id, feature id[, prefix id]")
	fs.StringVar(&opt.BlastFile, "b", "", "alias of --blast")
	fs.StringVar(&opt.GFFList, "g", "", "alias of --gff-list")
	fs.StringVar(&opt.SeqList, "s", "", "alias of --seq-list")

	// Selection
	fs.Float64Var(&opt.MinCoverage, "min-coverage", 10, "minimum query and subject coverage percent (inclusive) [10]")
	fs.Float64Var(&opt.MinIdentity, "min-identity", 10, "minimum percent identity (inclusive) [10]")
	fs.BoolVar(&opt.UsePrefix, "prefix", false, "join synonym prefix id and prefix annotation candidates with taxon id [false]")
	fs.BoolVar(&opt.AltSuffix, "alt-suffix", false, "also match annotation Name with a trailing '.p' [false]")

	// Region projection
	fs.StringVar(&opt.ModeLetter, "mode", "D", "region mode: D (downstream) | U (upstream) | B (both) [D]")
	fs.StringVar(&opt.ModeLetter, "m", "D", "alias of --mode")
	fs.IntVar(&opt.Length, "length", 2000, "flanking window length in bp [2000]")
	fs.IntVar(&opt.Length, "l", 2000, "alias of --length")

	// Output
	fs.StringVar(&opt.OutBase, "out", "promoter_seqs", "output basename ('-' writes FASTA to stdout) [promoter_seqs]")
	fs.StringVar(&opt.OutBase, "o", "promoter_seqs", "alias of --out")
	fs.IntVar(&opt.NoMatchExitCode, "no-match-exit-code", 1, "exit code when no promoter is extracted [1]")

	// Misc
	fs.StringVar(&opt.LogLevel, "log-level", "info", "log level: debug | info | warn | error [info]")
	fs.BoolVar(&opt.Quiet, "quiet", false, "log errors only [false]")
	fs.BoolVar(&opt.Quiet, "q", false, "alias of --quiet")
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
	if opt.Version {
		return opt, nil
	}

	// Validation
	if opt.BlastFile == "" {
		return opt, errors.New("--blast is required")
	}
	if opt.GFFList == "" {
		return opt, errors.New("--gff-list is required")
	}
	if opt.SeqList == "" {
		return opt, errors.New("--seq-list is required")
	}
	mode, err := region.ParseMode(opt.ModeLetter)
	if err != nil {
		return opt, err
	}
	opt.Mode = mode
	if opt.Length <= 0 {
		return opt, errors.New("--length must be > 0")
	}
	if opt.MinCoverage < 0 || opt.MinCoverage > 100 {
		return opt, errors.New("--min-coverage must be between 0 and 100")
	}
	if opt.MinIdentity < 0 || opt.MinIdentity > 100 {
		return opt, errors.New("--min-identity must be between 0 and 100")
	}
	if opt.NoMatchExitCode < 0 || opt.NoMatchExitCode > 255 {
		return opt, errors.New("--no-match-exit-code must be between 0 and 255")
	}
	switch opt.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return opt, fmt.Errorf("invalid --log-level %q", opt.LogLevel)
	}
	return opt, nil
}
