package usage

import (
	"github.com/lbarbosa/codonstat/internal/gencode"
)

// Model holds reference codon-usage frequencies.
//
// ICU maps each codon to its frequency within its synonym group (occurrences
// of the codon over occurrences of its amino acid). CC maps each ordered
// codon pair, keyed as the 6-character concatenation, to its frequency
// within the matching ordered amino-acid pair group. Values are in [0,1],
// or exactly 0 when the denominator was 0. A model is built or loaded once
// and read-only afterwards.
type Model struct {
	ICU map[string]float64
	CC  map[string]float64
}

// FromCounts derives a frequency model from accumulated counts.
//
// A codon observed zero times gets frequency 0 even when its amino acid was
// observed through a different synonym; this mirrors the division-by-zero
// guard of the historical tables this model interoperates with.
func FromCounts(acc *Accumulator) *Model {
	table := acc.Table()
	m := &Model{
		ICU: make(map[string]float64, table.Len()),
		CC:  make(map[string]float64, len(acc.CodonPairs)),
	}

	for _, codon := range table.Codons() {
		n := acc.Codons[codon]
		if n == 0 {
			m.ICU[codon] = 0
			continue
		}
		aa, _ := table.AminoAcidOf(codon)
		m.ICU[codon] = float64(n) / float64(acc.AminoAcids[aa])
	}

	for pair, n := range acc.CodonPairs {
		first, ok := table.AminoAcidOf(pair[:3])
		if !ok || first == gencode.Stop {
			continue
		}
		second, ok := table.AminoAcidOf(pair[3:])
		if !ok {
			continue
		}
		if n == 0 {
			m.CC[pair] = 0
			continue
		}
		aaPair := string([]byte{first, second})
		m.CC[pair] = float64(n) / float64(acc.AminoAcidPairs[aaPair])
	}

	return m
}

// MostFrequent returns, for each amino acid, the codon with the highest ICU
// frequency among its synonyms. Codons are scanned in lexicographic order
// and a strictly higher frequency is required to displace the current best,
// so exact ties resolve to the lexicographically smallest codon.
func (m *Model) MostFrequent(table *gencode.Table) map[byte]string {
	best := make(map[byte]string)
	for _, aa := range table.AminoAcids() {
		var bestCodon string
		bestFreq := -1.0
		for _, codon := range table.CodonsOf(aa) {
			if f := m.ICU[codon]; f > bestFreq {
				bestFreq = f
				bestCodon = codon
			}
		}
		if bestCodon != "" {
			best[aa] = bestCodon
		}
	}
	return best
}
