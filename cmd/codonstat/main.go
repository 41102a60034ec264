// Package main provides the codonstat command-line tool.
package main

import (
	"flag"
	"fmt"
	"os"
)

// Exit codes
const (
	ExitSuccess = 0
	ExitError   = 1
	ExitUsage   = 2
)

// Version information (set at build time)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	os.Exit(run())
}

func run() int {
	// Global flags
	var showVersion bool
	flag.BoolVar(&showVersion, "version", false, "Show version information")

	flag.Parse()

	if showVersion {
		fmt.Printf("codonstat version %s (%s) built %s\n", version, commit, date)
		return ExitSuccess
	}

	if err := initConfig(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not read config: %v\n", err)
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return ExitUsage
	}

	switch args[0] {
	case "score":
		return runScore(args[1:])
	case "freq":
		return runFreq(args[1:])
	case "config":
		return runConfigCmd(args[1:])
	case "help":
		printUsage()
		return ExitSuccess
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown command %q\n\n", args[0])
		printUsage()
		return ExitUsage
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, `codonstat - codon-usage statistics over coding sequences

Usage:
  codonstat [options] <command> [arguments]

Commands:
  score       Score FASTA sequences against reference ICU/CC tables
  freq        Compute codon-usage count and frequency tables from FASTA
  config      Manage codonstat configuration
  help        Show this help message

Global Options:
  --version   Show version information

Examples:
  # Build reference tables from a host genome's coding sequences
  codonstat freq -o host host_cds.fasta

  # Score candidate genes against the host tables
  codonstat score --icu host.icu.tsv --cc host.cc.tsv genes.fasta

  # Score with exclusion motifs and repeat limits, keeping rows in DuckDB
  codonstat score --icu host.icu.tsv --cc host.cc.tsv \
      --exclude sites.txt --repeats repeats.txt --db scores.duckdb genes.fasta

For more information on a command, use:
  codonstat <command> --help
`)
}
