package seqio

import (
	"strings"

	"go.uber.org/zap"

	"github.com/lbarbosa/codonstat/internal/gencode"
)

// MinNucleotides is the shortest sequence that still yields statistics:
// two codons.
const MinNucleotides = 6

// Finalized is a record prepared for counting or scoring.
type Finalized struct {
	Name        string
	Codons      []string
	Nucleotides string // codons joined back, after all truncation

	// SurplusStops holds stop codons truncated from a terminal run of two
	// or more. The frequency pipeline counts them; the scoring pipeline
	// discards them.
	SurplusStops []string

	// Skip marks a record too short to process.
	Skip bool
}

// Finalizer turns raw records into codon sequences, applying the length and
// terminal-stop policies.
type Finalizer struct {
	table  *gencode.Table
	logger *zap.Logger
}

// NewFinalizer creates a Finalizer for the given translation table.
func NewFinalizer(table *gencode.Table) *Finalizer {
	return &Finalizer{table: table, logger: zap.NewNop()}
}

// SetLogger sets the logger for per-record warnings.
func (f *Finalizer) SetLogger(l *zap.Logger) {
	f.logger = l
}

// Finalize prepares one record:
//  1. truncate a trailing partial codon (length not a multiple of 3),
//  2. skip records shorter than two codons,
//  3. truncate a terminal run of two or more stop codons down to one,
//  4. tokenize into non-overlapping codons, left to right.
//
// All issues are non-fatal and logged once per record.
func (f *Finalizer) Finalize(rec *Record) Finalized {
	seq := rec.Seq

	if rem := len(seq) % 3; rem != 0 {
		f.logger.Warn("sequence length is not a multiple of 3, truncating",
			zap.String("record", rec.Name),
			zap.Int("length", len(seq)),
			zap.Int("dropped", rem))
		seq = seq[:len(seq)-rem]
	}

	if len(seq) < MinNucleotides {
		f.logger.Warn("sequence shorter than two codons, skipping record",
			zap.String("record", rec.Name),
			zap.Int("length", len(seq)))
		return Finalized{Name: rec.Name, Skip: true}
	}

	codons := tokenize(seq)

	// Terminal run of stop codons: keep exactly one.
	run := 0
	for i := len(codons) - 1; i >= 0 && f.table.IsStop(codons[i]); i-- {
		run++
	}
	var surplus []string
	if run >= 2 {
		f.logger.Warn("multiple stop codons at sequence end, truncating",
			zap.String("record", rec.Name),
			zap.Int("stops", run))
		cut := len(codons) - run + 1
		surplus = codons[cut:]
		codons = codons[:cut]
		seq = strings.Join(codons, "")
	}

	return Finalized{
		Name:         rec.Name,
		Codons:       codons,
		Nucleotides:  seq,
		SurplusStops: surplus,
	}
}

// tokenize splits a nucleotide string whose length is a multiple of 3 into
// codons.
func tokenize(seq string) []string {
	codons := make([]string, 0, len(seq)/3)
	for i := 0; i+3 <= len(seq); i += 3 {
		codons = append(codons, seq[i:i+3])
	}
	return codons
}
