// Package usage accumulates codon-usage counts and derives frequency models
// from them.
package usage

import (
	"go.uber.org/zap"

	"github.com/lbarbosa/codonstat/internal/gencode"
	"github.com/lbarbosa/codonstat/internal/seqio"
)

// Accumulator holds codon, amino-acid and adjacent-pair counts over one or
// more sequences. Codon pairs are keyed by the 6-character concatenation of
// the two codons, amino-acid pairs by the 2-character concatenation.
//
// An Accumulator is an explicit value rather than shared package state so
// that independent workers can fill private accumulators and Merge them
// deterministically afterwards.
type Accumulator struct {
	Codons         map[string]int
	AminoAcids     map[byte]int
	CodonPairs     map[string]int
	AminoAcidPairs map[string]int

	table  *gencode.Table
	logger *zap.Logger
}

// NewAccumulator creates an accumulator with zero counts for every codon and
// amino acid in the table.
func NewAccumulator(table *gencode.Table) *Accumulator {
	a := &Accumulator{
		Codons:         make(map[string]int, table.Len()),
		AminoAcids:     make(map[byte]int),
		CodonPairs:     make(map[string]int),
		AminoAcidPairs: make(map[string]int),
		table:          table,
		logger:         zap.NewNop(),
	}
	for _, c := range table.Codons() {
		a.Codons[c] = 0
	}
	for _, aa := range table.AminoAcids() {
		a.AminoAcids[aa] = 0
	}
	return a
}

// SetLogger sets the logger for per-record warnings.
func (a *Accumulator) SetLogger(l *zap.Logger) {
	a.logger = l
}

// Table returns the translation table the accumulator counts against.
func (a *Accumulator) Table() *gencode.Table {
	return a.table
}

// Observe accumulates one finalized sequence.
//
// The first codon is single-counted only when it is a start codon; a start
// codon additionally forms a pair with the second codon. Later codons are
// counted through their adjacent pair, which suppresses internal stops and
// unrecognized codons without double-counting anything. A single trailing
// stop is counted as the final codon of the sequence.
func (a *Accumulator) Observe(f seqio.Finalized) {
	codons := f.Codons
	if len(codons) < 2 {
		return
	}

	var unknown, internalStop, noStart bool

	first, ok := a.table.AminoAcidOf(codons[0])
	switch {
	case !ok:
		unknown = true
	case first == gencode.Stop:
		internalStop = true
	case first == gencode.Start:
		a.addCodon(codons[0], first)
	default:
		noStart = true
	}

	for i := 0; i+1 < len(codons); i++ {
		isLast := i+2 == len(codons)

		next, ok := a.table.AminoAcidOf(codons[i+1])
		if !ok {
			unknown = true
			continue
		}
		if next == gencode.Stop && !isLast {
			internalStop = true
			continue
		}

		a.addCodon(codons[i+1], next)

		prev, ok := a.table.AminoAcidOf(codons[i])
		if ok && prev != gencode.Stop && (i > 0 || prev == gencode.Start) {
			a.CodonPairs[codons[i]+codons[i+1]]++
			a.AminoAcidPairs[string([]byte{prev, next})]++
		}
	}

	// One warning per record per condition, not per codon.
	if unknown {
		a.logger.Warn("unrecognized codon in sequence, excluded from counts",
			zap.String("record", f.Name))
	}
	if internalStop {
		a.logger.Warn("internal stop codon in sequence, excluded from counts",
			zap.String("record", f.Name))
	}
	if noStart {
		a.logger.Warn("sequence does not start with methionine",
			zap.String("record", f.Name))
	}
}

// ObserveSurplusStops counts the stop codons truncated from a terminal run.
// Only the frequency-computation pipeline calls this; the scoring pipeline
// discards surplus stops uncounted.
func (a *Accumulator) ObserveSurplusStops(f seqio.Finalized) {
	for _, c := range f.SurplusStops {
		if aa, ok := a.table.AminoAcidOf(c); ok {
			a.addCodon(c, aa)
		}
	}
}

// Merge adds another accumulator's counts into this one. Merging per-worker
// accumulators in a fixed order is equivalent to sequential accumulation.
func (a *Accumulator) Merge(other *Accumulator) {
	for c, n := range other.Codons {
		a.Codons[c] += n
	}
	for aa, n := range other.AminoAcids {
		a.AminoAcids[aa] += n
	}
	for p, n := range other.CodonPairs {
		a.CodonPairs[p] += n
	}
	for p, n := range other.AminoAcidPairs {
		a.AminoAcidPairs[p] += n
	}
}

func (a *Accumulator) addCodon(codon string, aa byte) {
	a.Codons[codon]++
	a.AminoAcids[aa]++
}
