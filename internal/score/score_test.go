package score

import (
	"math"
	"testing"

	"github.com/lbarbosa/codonstat/internal/gencode"
	"github.com/lbarbosa/codonstat/internal/motif"
	"github.com/lbarbosa/codonstat/internal/seqio"
	"github.com/lbarbosa/codonstat/internal/usage"
)

func finalize(t *testing.T, seq string) seqio.Finalized {
	t.Helper()
	fin := seqio.NewFinalizer(gencode.Standard()).Finalize(&seqio.Record{Name: "test", Seq: seq})
	if fin.Skip {
		t.Fatalf("sequence %q unexpectedly skipped", seq)
	}
	return fin
}

// modelFrom builds a reference model from the given sequences.
func modelFrom(t *testing.T, seqs ...string) *usage.Model {
	t.Helper()
	acc := usage.NewAccumulator(gencode.Standard())
	for _, s := range seqs {
		acc.Observe(finalize(t, s))
	}
	return usage.FromCounts(acc)
}

func TestScoreSelfReferenceIsZero(t *testing.T) {
	// Scoring a sequence against a model built from its own counts gives
	// zero deviation for both ICU and CC.
	const seq = "ATGAAAAAGAAATAA"
	m := modelFrom(t, seq)
	s := NewScorer(gencode.Standard(), m, nil, nil)

	res := s.Score(finalize(t, seq))
	if res.ICU != 0 {
		t.Errorf("ICU = %v, want 0", res.ICU)
	}
	if res.CC != 0 {
		t.Errorf("CC = %v, want 0", res.CC)
	}
}

func TestICUDeviationDefaultsToReference(t *testing.T) {
	// Reference uses lysine; the scored sequence does not. Every lysine
	// codon contributes its full reference frequency as deviation.
	m := modelFrom(t, "ATGAAAAAGAAATAA")
	s := NewScorer(gencode.Standard(), m, nil, nil)

	res := s.Score(finalize(t, "ATGCCCTAA"))

	// Deviations: AAA 2/3 and AAG 1/3 (K absent, default to reference),
	// ATG |1-1|=0, TAA |1-1|=0, CCC observed but reference 0 gives |1-0|=1.
	// All other reference entries are 0. Mean over 64 entries, negated.
	want := -(2.0/3.0 + 1.0/3.0 + 1.0) / 64.0
	if math.Abs(res.ICU-want) > 1e-12 {
		t.Errorf("ICU = %v, want %v", res.ICU, want)
	}
}

func TestCAIMostFrequentSynonymsScoresMinusOne(t *testing.T) {
	// Model in which ATG, AAA and TAA are each the most frequent synonym
	// of their amino acid.
	m := modelFrom(t, "ATGAAAAAATAA")
	s := NewScorer(gencode.Standard(), m, nil, nil)

	res := s.Score(finalize(t, "ATGAAAAAATAA"))
	// Every ratio is 1, so the geometric mean is exp(0) = 1 and the signed
	// score is -1.
	if res.CAI != -1 {
		t.Errorf("CAI = %v, want -1", res.CAI)
	}
}

func TestCAILessFrequentSynonym(t *testing.T) {
	m := modelFrom(t, "ATGAAAAAGAAATAA")
	s := NewScorer(gencode.Standard(), m, nil, nil)

	// AAG has reference 1/3 against best synonym AAA at 2/3.
	res := s.Score(finalize(t, "ATGAAGTAA"))
	want := -math.Exp(math.Log(0.5) / 3.0)
	if math.Abs(res.CAI-want) > 1e-12 {
		t.Errorf("CAI = %v, want %v", res.CAI, want)
	}
}

func TestCAIUndefinedForUnmodeledCodon(t *testing.T) {
	m := modelFrom(t, "ATGAAATAA")
	s := NewScorer(gencode.Standard(), m, nil, nil)

	// GGG has reference frequency 0.
	res := s.Score(finalize(t, "ATGGGGTAA"))
	if !math.IsNaN(res.CAI) {
		t.Errorf("CAI = %v, want NaN", res.CAI)
	}
}

func TestHiddenStops(t *testing.T) {
	s := NewScorer(gencode.Standard(), &usage.Model{}, nil, nil)

	tests := []struct {
		name string
		seq  string
		want int
	}{
		// TGA hides at offset 1; the in-frame TAA at offset 6 is not hidden.
		{"shifted TGA only", "ATGAAATAA", 1},
		{"no stops anywhere", "ATGCCCCCC", 0},
		// TAATAA: TAA at offsets 0 and 3 are in frame; ATA at 1, ATA at 2... no shifted stop.
		{"in-frame stops not counted", "TAATAA", 0},
		// CTA ACT TAA: TAA hides at offset 1 (and sits in frame at 6).
		{"late shifted stop", "CTAACTTAA", 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.hiddenStops(tt.seq); got != tt.want {
				t.Errorf("hiddenStops(%q) = %d, want %d", tt.seq, got, tt.want)
			}
		})
	}
}

func TestGCContent(t *testing.T) {
	tests := []struct {
		name    string
		seq     string
		wantGC  float64
		wantGC3 float64
	}{
		{"all GC", "GGGCCC", 100, 100},
		{"all AT", "ATTTAA", 0, 0},
		{"third positions only", "AAGAAC", 100.0 / 3.0, 100},
		{"half and half", "GCATAT", 100.0 / 3.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gc, gc3 := gcContent(tt.seq)
			if math.Abs(gc-tt.wantGC) > 1e-12 {
				t.Errorf("gc = %v, want %v", gc, tt.wantGC)
			}
			if math.Abs(gc3-tt.wantGC3) > 1e-12 {
				t.Errorf("gc3 = %v, want %v", gc3, tt.wantGC3)
			}
		})
	}
}

func TestScoreExclusionAndRepeats(t *testing.T) {
	m := modelFrom(t, "ATGAAATAA")
	s := NewScorer(gencode.Standard(), m,
		motif.ExclusionSet{"AA"},
		motif.RepeatSpec{1: 3})

	// ATGAAATAA: AA occurs at offsets 3, 4 and 7.
	res := s.Score(finalize(t, "ATGAAATAA"))
	if res.Exclusion != 3 {
		t.Errorf("Exclusion = %d, want 3", res.Exclusion)
	}
	// Single-base triple runs: AAA at offset 3 only.
	if res.Repeats != 1 {
		t.Errorf("Repeats = %d, want 1", res.Repeats)
	}
}
