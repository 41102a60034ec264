package usage

import (
	"testing"

	"github.com/lbarbosa/codonstat/internal/gencode"
	"github.com/lbarbosa/codonstat/internal/seqio"
)

func finalize(t *testing.T, seq string) seqio.Finalized {
	t.Helper()
	f := seqio.NewFinalizer(gencode.Standard())
	fin := f.Finalize(&seqio.Record{Name: "test", Seq: seq})
	if fin.Skip {
		t.Fatalf("sequence %q unexpectedly skipped", seq)
	}
	return fin
}

func TestObserveStartInternalStop(t *testing.T) {
	acc := NewAccumulator(gencode.Standard())
	acc.Observe(finalize(t, "ATGAAATAA"))

	// ATG AAA TAA: start, one middle codon, one trailing stop.
	wantCodons := map[string]int{"ATG": 1, "AAA": 1, "TAA": 1}
	for c, want := range wantCodons {
		if got := acc.Codons[c]; got != want {
			t.Errorf("Codons[%s] = %d, want %d", c, got, want)
		}
	}
	wantAAs := map[byte]int{'M': 1, 'K': 1, '*': 1}
	for aa, want := range wantAAs {
		if got := acc.AminoAcids[aa]; got != want {
			t.Errorf("AminoAcids[%c] = %d, want %d", aa, got, want)
		}
	}

	// Both adjacent pairs form: the start codon pairs with its successor,
	// and the trailing stop pairs with its predecessor.
	if got := acc.CodonPairs["ATGAAA"]; got != 1 {
		t.Errorf("CodonPairs[ATGAAA] = %d, want 1", got)
	}
	if got := acc.CodonPairs["AAATAA"]; got != 1 {
		t.Errorf("CodonPairs[AAATAA] = %d, want 1", got)
	}
	if got := acc.AminoAcidPairs["MK"]; got != 1 {
		t.Errorf("AminoAcidPairs[MK] = %d, want 1", got)
	}
	if got := acc.AminoAcidPairs["K*"]; got != 1 {
		t.Errorf("AminoAcidPairs[K*] = %d, want 1", got)
	}
}

func TestObserveNonStartFirstCodon(t *testing.T) {
	acc := NewAccumulator(gencode.Standard())
	// AAA CCC GGG: no start codon.
	acc.Observe(finalize(t, "AAACCCGGG"))

	// The first codon is not single-counted and forms no pair with the
	// second codon.
	if got := acc.Codons["AAA"]; got != 0 {
		t.Errorf("Codons[AAA] = %d, want 0", got)
	}
	if got := acc.CodonPairs["AAACCC"]; got != 0 {
		t.Errorf("CodonPairs[AAACCC] = %d, want 0", got)
	}

	// Later codons are still processed.
	if got := acc.Codons["CCC"]; got != 1 {
		t.Errorf("Codons[CCC] = %d, want 1", got)
	}
	if got := acc.Codons["GGG"]; got != 1 {
		t.Errorf("Codons[GGG] = %d, want 1", got)
	}
	if got := acc.CodonPairs["CCCGGG"]; got != 1 {
		t.Errorf("CodonPairs[CCCGGG] = %d, want 1", got)
	}
}

func TestObserveInternalStop(t *testing.T) {
	acc := NewAccumulator(gencode.Standard())
	// ATG TAA AAA TAA: internal stop at position 2.
	acc.Observe(finalize(t, "ATGTAAAAATAA"))

	// The internal stop is not counted and forms no pair; only the trailing
	// stop counts.
	if got := acc.Codons["TAA"]; got != 1 {
		t.Errorf("Codons[TAA] = %d, want 1", got)
	}
	if got := acc.CodonPairs["ATGTAA"]; got != 0 {
		t.Errorf("CodonPairs[ATGTAA] = %d, want 0", got)
	}
	// AAA follows the internal stop: counted singly, but its pair with the
	// preceding stop codon is suppressed.
	if got := acc.Codons["AAA"]; got != 1 {
		t.Errorf("Codons[AAA] = %d, want 1", got)
	}
	if got := acc.CodonPairs["TAAAAA"]; got != 0 {
		t.Errorf("CodonPairs[TAAAAA] = %d, want 0", got)
	}
}

func TestObserveUnknownCodon(t *testing.T) {
	tab, err := gencode.New([]gencode.Row{
		{Codon: "ATG", AminoAcid: 'M'},
		{Codon: "AAA", AminoAcid: 'K'},
		{Codon: "TAA", AminoAcid: '*'},
	})
	if err != nil {
		t.Fatal(err)
	}
	fin := seqio.NewFinalizer(tab).Finalize(&seqio.Record{Name: "r", Seq: "ATGCCCAAATAA"})

	acc := NewAccumulator(tab)
	acc.Observe(fin)

	// CCC is not in the table: excluded from counts, no pairs either side.
	if got := acc.Codons["ATG"]; got != 1 {
		t.Errorf("Codons[ATG] = %d, want 1", got)
	}
	if got := acc.Codons["AAA"]; got != 1 {
		t.Errorf("Codons[AAA] = %d, want 1", got)
	}
	if got := acc.CodonPairs["ATGCCC"]; got != 0 {
		t.Errorf("CodonPairs[ATGCCC] = %d, want 0", got)
	}
	if got := acc.CodonPairs["CCCAAA"]; got != 0 {
		t.Errorf("CodonPairs[CCCAAA] = %d, want 0", got)
	}
	if got := acc.CodonPairs["AAATAA"]; got != 1 {
		t.Errorf("CodonPairs[AAATAA] = %d, want 1", got)
	}
}

func TestObserveSurplusStops(t *testing.T) {
	tab := gencode.Standard()
	fin := seqio.NewFinalizer(tab).Finalize(&seqio.Record{Name: "r", Seq: "ATGAAATAATGA"})
	if len(fin.SurplusStops) != 1 {
		t.Fatalf("SurplusStops = %v, want 1 codon", fin.SurplusStops)
	}

	freq := NewAccumulator(tab)
	freq.Observe(fin)
	freq.ObserveSurplusStops(fin)
	if got := freq.Codons["TGA"]; got != 1 {
		t.Errorf("frequency path: Codons[TGA] = %d, want 1", got)
	}
	if got := freq.AminoAcids['*']; got != 2 {
		t.Errorf("frequency path: AminoAcids[*] = %d, want 2", got)
	}

	score := NewAccumulator(tab)
	score.Observe(fin)
	if got := score.Codons["TGA"]; got != 0 {
		t.Errorf("scoring path: Codons[TGA] = %d, want 0", got)
	}
}

func TestMergeEqualsSequentialAccumulation(t *testing.T) {
	tab := gencode.Standard()
	seqs := []string{"ATGAAATAA", "ATGCCCGGGTAA", "AAACCCGGG"}

	sequential := NewAccumulator(tab)
	for _, s := range seqs {
		sequential.Observe(finalize(t, s))
	}

	merged := NewAccumulator(tab)
	for _, s := range seqs {
		part := NewAccumulator(tab)
		part.Observe(finalize(t, s))
		merged.Merge(part)
	}

	for c, want := range sequential.Codons {
		if got := merged.Codons[c]; got != want {
			t.Errorf("Codons[%s] = %d, want %d", c, got, want)
		}
	}
	for p, want := range sequential.CodonPairs {
		if got := merged.CodonPairs[p]; got != want {
			t.Errorf("CodonPairs[%s] = %d, want %d", p, got, want)
		}
	}
	for p, want := range sequential.AminoAcidPairs {
		if got := merged.AminoAcidPairs[p]; got != want {
			t.Errorf("AminoAcidPairs[%s] = %d, want %d", p, got, want)
		}
	}
}
