// Package gencode models the genetic code: the mapping between codons and
// amino acids used by the counting and scoring engines.
package gencode

import (
	"fmt"
	"sort"
	"strings"
)

// Reserved single-letter codes.
const (
	Stop  byte = '*' // translation stop signal
	Start byte = 'M' // methionine, the expected first amino acid
)

// Row is one (codon, amino acid) entry of a translation table source.
type Row struct {
	Codon     string
	AminoAcid byte
}

// DuplicateCodonError reports a codon that appears twice in a table source
// with conflicting amino-acid mappings. Repeating an identical mapping is
// accepted; only conflicts are rejected.
type DuplicateCodonError struct {
	Codon    string
	Existing byte
	New      byte
}

func (e *DuplicateCodonError) Error() string {
	return fmt.Sprintf("duplicate codon %s: mapped to both %c and %c",
		e.Codon, e.Existing, e.New)
}

// Table is a bidirectional codon/amino-acid mapping. It is built once and
// read-only afterwards, safe for concurrent use.
type Table struct {
	forward map[string]byte
	reverse map[byte][]string
	stops   []string
}

// NormalizeCodon canonicalizes a codon: uppercase, RNA U rewritten to T.
func NormalizeCodon(codon string) string {
	return strings.ReplaceAll(strings.ToUpper(codon), "U", "T")
}

// New builds a table from table-source rows. Codons are canonicalized with
// NormalizeCodon and the stop marker '.' is canonicalized to '*'.
func New(rows []Row) (*Table, error) {
	t := &Table{
		forward: make(map[string]byte, len(rows)),
		reverse: make(map[byte][]string),
	}

	for _, row := range rows {
		codon := NormalizeCodon(row.Codon)
		if len(codon) != 3 {
			return nil, fmt.Errorf("codon %q: want 3 nucleotides, got %d", row.Codon, len(codon))
		}
		aa := row.AminoAcid
		if aa == '.' {
			aa = Stop
		}
		if existing, ok := t.forward[codon]; ok {
			if existing != aa {
				return nil, &DuplicateCodonError{Codon: codon, Existing: existing, New: aa}
			}
			continue
		}
		t.forward[codon] = aa
		t.reverse[aa] = append(t.reverse[aa], codon)
	}

	for aa := range t.reverse {
		sort.Strings(t.reverse[aa])
	}
	t.stops = t.reverse[Stop]

	return t, nil
}

// AminoAcidOf returns the amino acid a codon maps to. The second return is
// false for unrecognized codons; callers treat those as non-fatal.
func (t *Table) AminoAcidOf(codon string) (byte, bool) {
	aa, ok := t.forward[codon]
	return aa, ok
}

// IsStop reports whether a codon maps to the stop signal.
func (t *Table) IsStop(codon string) bool {
	return t.forward[codon] == Stop
}

// CodonsOf returns the synonymous codons of an amino acid in lexicographic
// order. The stop set is returned for '*'.
func (t *Table) CodonsOf(aa byte) []string {
	return t.reverse[aa]
}

// StopCodons returns all codons mapping to the stop signal, sorted.
func (t *Table) StopCodons() []string {
	return t.stops
}

// Codons returns every codon in the table in lexicographic order.
func (t *Table) Codons() []string {
	codons := make([]string, 0, len(t.forward))
	for c := range t.forward {
		codons = append(codons, c)
	}
	sort.Strings(codons)
	return codons
}

// AminoAcids returns every amino acid in the table in ascending byte order.
func (t *Table) AminoAcids() []byte {
	aas := make([]byte, 0, len(t.reverse))
	for aa := range t.reverse {
		aas = append(aas, aa)
	}
	sort.Slice(aas, func(i, j int) bool { return aas[i] < aas[j] })
	return aas
}

// Len returns the number of codons in the table.
func (t *Table) Len() int {
	return len(t.forward)
}
