package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/lbarbosa/codonstat/internal/gencode"
	"github.com/lbarbosa/codonstat/internal/motif"
	"github.com/lbarbosa/codonstat/internal/output"
	"github.com/lbarbosa/codonstat/internal/score"
	"github.com/lbarbosa/codonstat/internal/seqio"
	"github.com/lbarbosa/codonstat/internal/store"
	"github.com/lbarbosa/codonstat/internal/usage"
)

func runScore(args []string) int {
	fs := flag.NewFlagSet("score", flag.ExitOnError)

	var (
		tablePath   string
		icuPath     string
		ccPath      string
		excludePath string
		repeatsPath string
		outputFile  string
		dbPath      string
		runLabel    string
		workers     int
		verbose     bool
	)

	fs.StringVar(&tablePath, "table", "", "Translation table file (default: standard genetic code)")
	fs.StringVar(&icuPath, "icu", "", "Reference ICU frequency table (required)")
	fs.StringVar(&ccPath, "cc", "", "Reference CC frequency table (required)")
	fs.StringVar(&excludePath, "exclude", "", "Exclusion motif file (optional)")
	fs.StringVar(&repeatsPath, "repeats", "", "Repeat specification file (optional)")
	fs.StringVar(&outputFile, "o", "", "Output file (default: stdout)")
	fs.StringVar(&outputFile, "output", "", "Output file (default: stdout)")
	fs.StringVar(&dbPath, "db", "", "DuckDB file to persist score rows (optional)")
	fs.StringVar(&runLabel, "run", "", "Run label for persisted rows (default: input name + timestamp)")
	fs.IntVar(&workers, "workers", 0, "Scoring workers (default: one per CPU)")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Score coding sequences against reference codon-usage tables.

Usage:
  codonstat score [options] <input.fasta>

Arguments:
  <input.fasta>  FASTA input, '-' for stdin, '.gz' for gzip

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  codonstat score --icu host.icu.tsv --cc host.cc.tsv genes.fasta
  codonstat score --icu host.icu.tsv --cc host.cc.tsv --exclude sites.txt -o scores.tsv genes.fasta
  cat genes.fasta | codonstat score --icu host.icu.tsv --cc host.cc.tsv -
`)
	}

	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}

	if fs.NArg() < 1 {
		fmt.Fprintf(os.Stderr, "Error: input file argument required\n\n")
		fs.Usage()
		return ExitUsage
	}
	inputPath := fs.Arg(0)

	// Config file supplies defaults; flags win.
	applyDefault(&tablePath, "tables.translation")
	applyDefault(&icuPath, "tables.icu")
	applyDefault(&ccPath, "tables.cc")
	applyDefault(&excludePath, "tables.exclusion")
	applyDefault(&repeatsPath, "tables.repeats")
	if workers == 0 {
		workers = viper.GetInt("workers")
	}

	if icuPath == "" || ccPath == "" {
		fmt.Fprintf(os.Stderr, "Error: --icu and --cc reference tables are required\n")
		fmt.Fprintf(os.Stderr, "Hint: Build them from a host corpus with: codonstat freq -o host host_cds.fasta\n")
		return ExitUsage
	}

	logger, err := newLogger(verbose)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	defer logger.Sync()

	table, err := loadTable(tablePath, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	model, err := usage.LoadModel(icuPath, ccPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	exclusions, err := motif.LoadExclusions(excludePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	repeats, err := motif.LoadRepeatSpec(repeatsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}
	logger.Info("motif tables loaded",
		zap.Int("exclusion_motifs", len(exclusions)),
		zap.Int("repeat_rules", len(repeats)))

	reader, err := seqio.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Hint: Check that the file path is correct\n")
		}
		return ExitError
	}
	defer reader.Close()

	var out *os.File
	if outputFile == "" {
		out = os.Stdout
	} else {
		out, err = os.Create(outputFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
			return ExitError
		}
		defer out.Close()
	}

	fin := seqio.NewFinalizer(table)
	fin.SetLogger(logger)

	scorer := score.NewScorer(table, model, exclusions, repeats)
	scorer.SetLogger(logger)

	var writer score.ResultWriter = output.NewTabWriter(out)

	// When persisting, tee rows into a batch for one appender write.
	var tee *teeWriter
	if dbPath != "" {
		tee = &teeWriter{inner: writer}
		writer = tee
	}

	if err := writer.WriteHeader(); err != nil {
		fmt.Fprintf(os.Stderr, "Error writing header: %v\n", err)
		return ExitError
	}

	if err := scorer.ScoreAll(reader, fin, writer, workers); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	if tee != nil {
		if runLabel == "" {
			runLabel = fmt.Sprintf("%s@%s", filepath.Base(inputPath), time.Now().Format(time.RFC3339))
		}
		db, err := store.Open(dbPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening score database: %v\n", err)
			return ExitError
		}
		defer db.Close()

		if err := db.WriteResults(runLabel, tee.batch); err != nil {
			fmt.Fprintf(os.Stderr, "Error persisting score rows: %v\n", err)
			return ExitError
		}
		logger.Info("score rows persisted",
			zap.String("db", dbPath),
			zap.String("run", runLabel),
			zap.Int("rows", len(tee.batch)))
	}

	return ExitSuccess
}

// teeWriter forwards rows to the inner writer while keeping them for batch
// persistence.
type teeWriter struct {
	inner score.ResultWriter
	batch []*score.Result
}

func (t *teeWriter) WriteHeader() error { return t.inner.WriteHeader() }

func (t *teeWriter) Write(res *score.Result) error {
	t.batch = append(t.batch, res)
	return t.inner.Write(res)
}

func (t *teeWriter) Flush() error { return t.inner.Flush() }

// applyDefault fills an unset flag value from the config file.
func applyDefault(val *string, key string) {
	if *val == "" {
		*val = viper.GetString(key)
	}
}

// loadTable loads the translation table, falling back to the built-in
// standard genetic code when no file is configured.
func loadTable(path string, logger *zap.Logger) (*gencode.Table, error) {
	if path == "" {
		logger.Info("using standard genetic code")
		return gencode.Standard(), nil
	}
	table, err := gencode.LoadTable(path)
	if err != nil {
		return nil, err
	}
	logger.Info("translation table loaded",
		zap.String("path", path),
		zap.Int("codons", table.Len()))
	return table, nil
}
