// Package score computes per-sequence codon-usage scores against a
// reference frequency model.
package score

import (
	"math"
	"sort"

	"go.uber.org/zap"

	"github.com/lbarbosa/codonstat/internal/gencode"
	"github.com/lbarbosa/codonstat/internal/motif"
	"github.com/lbarbosa/codonstat/internal/seqio"
	"github.com/lbarbosa/codonstat/internal/usage"
)

// Result is the score tuple for one sequence.
type Result struct {
	Name        string
	ICU         float64
	CC          float64
	CAI         float64
	HiddenStops int
	GC          float64 // percent
	GC3         float64 // percent
	Exclusion   int
	Repeats     int
}

// Scorer scores finalized sequences against a reference model. It is
// read-only after construction and safe for concurrent use, except for
// SetLogger which must be called before scoring starts.
type Scorer struct {
	table      *gencode.Table
	model      *usage.Model
	best       map[byte]string
	exclusions motif.ExclusionSet
	repeats    motif.RepeatSpec
	logger     *zap.Logger
}

// NewScorer creates a scorer. The per-amino-acid most-frequent-synonym
// table is derived from the model once, up front.
func NewScorer(table *gencode.Table, model *usage.Model, exclusions motif.ExclusionSet, repeats motif.RepeatSpec) *Scorer {
	return &Scorer{
		table:      table,
		model:      model,
		best:       model.MostFrequent(table),
		exclusions: exclusions,
		repeats:    repeats,
		logger:     zap.NewNop(),
	}
}

// SetLogger sets the logger for per-record warnings.
func (s *Scorer) SetLogger(l *zap.Logger) {
	s.logger = l
}

// Score computes the full score tuple for one finalized sequence. Sequence
// issues (unknown codons, internal stops, a non-finite CAI) are logged and
// never fatal.
func (s *Scorer) Score(f seqio.Finalized) *Result {
	acc := usage.NewAccumulator(s.table)
	acc.SetLogger(s.logger)
	acc.Observe(f)

	res := &Result{
		Name:        f.Name,
		ICU:         s.icuScore(acc),
		CC:          s.ccScore(acc),
		CAI:         s.caiScore(f),
		HiddenStops: s.hiddenStops(f.Nucleotides),
		Exclusion:   s.exclusions.CountAll(f.Nucleotides),
		Repeats:     s.repeats.CountAll(f.Nucleotides),
	}
	res.GC, res.GC3 = gcContent(f.Nucleotides)

	if math.IsNaN(res.CAI) || math.IsInf(res.CAI, 0) {
		s.logger.Warn("CAI undefined: sequence uses codons absent from the reference model",
			zap.String("record", f.Name))
	}

	return res
}

// icuScore is the negated mean absolute deviation between the sequence's
// within-synonym codon frequencies and the reference frequencies, averaged
// over every codon entry of the reference model. When the sequence never
// uses an amino acid, the deviation for its codons defaults to the
// reference frequency itself.
func (s *Scorer) icuScore(acc *usage.Accumulator) float64 {
	if len(s.model.ICU) == 0 {
		return 0
	}

	// Sorted iteration keeps the floating-point summation order, and with
	// it the exact result, reproducible across runs.
	var sum float64
	for _, codon := range sortedKeys(s.model.ICU) {
		ref := s.model.ICU[codon]
		aa, ok := s.table.AminoAcidOf(codon)
		if !ok || acc.AminoAcids[aa] == 0 {
			sum += ref
			continue
		}
		var obs float64
		if n := acc.Codons[codon]; n != 0 {
			obs = float64(n) / float64(acc.AminoAcids[aa])
		}
		sum += math.Abs(obs - ref)
	}
	if sum == 0 {
		return 0
	}
	return -sum / float64(len(s.model.ICU))
}

// ccScore applies the icuScore formula to codon pairs against amino-acid
// pair counts.
func (s *Scorer) ccScore(acc *usage.Accumulator) float64 {
	if len(s.model.CC) == 0 {
		return 0
	}

	var sum float64
	for _, pair := range sortedKeys(s.model.CC) {
		ref := s.model.CC[pair]
		aaPair, ok := s.aminoAcidPair(pair)
		if !ok || acc.AminoAcidPairs[aaPair] == 0 {
			sum += ref
			continue
		}
		var obs float64
		if n := acc.CodonPairs[pair]; n != 0 {
			obs = float64(n) / float64(acc.AminoAcidPairs[aaPair])
		}
		sum += math.Abs(obs - ref)
	}
	if sum == 0 {
		return 0
	}
	return -sum / float64(len(s.model.CC))
}

func (s *Scorer) aminoAcidPair(pair string) (string, bool) {
	first, ok := s.table.AminoAcidOf(pair[:3])
	if !ok {
		return "", false
	}
	second, ok := s.table.AminoAcidOf(pair[3:])
	if !ok {
		return "", false
	}
	return string([]byte{first, second}), true
}

// caiScore is the negated geometric mean, over every codon of the sequence,
// of the codon's reference frequency relative to its most frequent synonym,
// computed as exp(mean(log ratio)). A sequence built purely from
// most-frequent synonyms scores exactly -1. The result is NaN when any
// codon lacks a positive reference frequency.
func (s *Scorer) caiScore(f seqio.Finalized) float64 {
	if len(f.Codons) == 0 {
		return math.NaN()
	}

	var logSum float64
	for _, codon := range f.Codons {
		ref := s.model.ICU[codon]
		aa, ok := s.table.AminoAcidOf(codon)
		if !ok {
			return math.NaN()
		}
		bestRef := s.model.ICU[s.best[aa]]
		if ref <= 0 || bestRef <= 0 {
			return math.NaN()
		}
		logSum += math.Log(ref / bestRef)
	}
	return -math.Exp(logSum / float64(len(f.Codons)))
}

// hiddenStops counts stop codons in the shifted reading frames: occurrences
// of any stop codon at nucleotide offsets not divisible by 3, overlapping
// matches included.
func (s *Scorer) hiddenStops(seq string) int {
	stops := s.table.StopCodons()
	n := 0
	for off := 1; off+3 <= len(seq); off++ {
		if off%3 == 0 {
			continue
		}
		for _, sc := range stops {
			if seq[off:off+3] == sc {
				n++
			}
		}
	}
	return n
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// gcContent returns the G/C percentage over the whole sequence and over the
// third position of every codon.
func gcContent(seq string) (gc, gc3 float64) {
	if len(seq) == 0 {
		return 0, 0
	}

	total, third := 0, 0
	for i := 0; i < len(seq); i++ {
		if seq[i] == 'G' || seq[i] == 'C' {
			total++
			if i%3 == 2 {
				third++
			}
		}
	}

	gc = 100 * float64(total) / float64(len(seq))
	if codons := len(seq) / 3; codons > 0 {
		gc3 = 100 * float64(third) / float64(codons)
	}
	return gc, gc3
}
