package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/lbarbosa/codonstat/internal/output"
	"github.com/lbarbosa/codonstat/internal/seqio"
	"github.com/lbarbosa/codonstat/internal/usage"
)

func runFreq(args []string) int {
	fs := flag.NewFlagSet("freq", flag.ExitOnError)

	var (
		tablePath string
		outPrefix string
		verbose   bool
	)

	fs.StringVar(&tablePath, "table", "", "Translation table file (default: standard genetic code)")
	fs.StringVar(&outPrefix, "o", "-", "Output table prefix; '-' writes all tables to stdout")
	fs.StringVar(&outPrefix, "output", "-", "Output table prefix; '-' writes all tables to stdout")
	fs.BoolVar(&verbose, "v", false, "Verbose logging")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Compute codon-usage count and frequency tables from a FASTA corpus.

Emits codon, codon-pair, amino-acid and amino-acid-pair counts plus the
derived ICU and CC frequency tables, each sorted by key.

Usage:
  codonstat freq [options] <input.fasta>

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  codonstat freq -o host host_cds.fasta    # writes host.codon.tsv, host.icu.tsv, ...
  codonstat freq host_cds.fasta            # all tables to stdout
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

	applyDefault(&tablePath, "tables.translation")

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

	reader, err := seqio.Open(inputPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		if errors.Is(err, os.ErrNotExist) {
			fmt.Fprintf(os.Stderr, "Hint: Check that the file path is correct\n")
		}
		return ExitError
	}
	defer reader.Close()

	fin := seqio.NewFinalizer(table)
	fin.SetLogger(logger)

	acc := usage.NewAccumulator(table)
	acc.SetLogger(logger)

	records := 0
	for {
		rec, err := reader.Next()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return ExitError
		}
		if rec == nil {
			break
		}
		f := fin.Finalize(rec)
		if f.Skip {
			continue
		}
		acc.Observe(f)
		// Stops truncated from a terminal run still count toward the
		// reference tables.
		acc.ObserveSurplusStops(f)
		records++
	}
	logger.Info("corpus accumulated", zap.Int("records", records))

	model := usage.FromCounts(acc)

	if err := output.WriteFrequencyTables(os.Stdout, outPrefix, acc, model); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return ExitError
	}

	return ExitSuccess
}
