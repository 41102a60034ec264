package output

import (
	"fmt"
	"io"
	"os"

	"github.com/lbarbosa/codonstat/internal/usage"
)

// freqTable pairs a table name with its write function.
type freqTable struct {
	name  string
	write func(io.Writer) error
}

func freqTables(acc *usage.Accumulator, m *usage.Model) []freqTable {
	return []freqTable{
		{"codon", func(w io.Writer) error { return usage.WriteCountTable(w, acc.Codons) }},
		{"codonpair", func(w io.Writer) error { return usage.WriteCountTable(w, acc.CodonPairs) }},
		{"aa", func(w io.Writer) error {
			return usage.WriteCountTable(w, usage.AminoAcidCounts(acc.AminoAcids))
		}},
		{"aapair", func(w io.Writer) error { return usage.WriteCountTable(w, acc.AminoAcidPairs) }},
		{"icu", func(w io.Writer) error { return usage.WriteFrequencyTable(w, m.ICU) }},
		{"cc", func(w io.Writer) error { return usage.WriteFrequencyTable(w, m.CC) }},
	}
}

// WriteFrequencyTables emits the four count tables and the two derived
// frequency tables. With prefix "-" all six are written to w, each preceded
// by a "# <name>" header; otherwise each goes to "<prefix>.<name>.tsv".
func WriteFrequencyTables(w io.Writer, prefix string, acc *usage.Accumulator, m *usage.Model) error {
	for _, tbl := range freqTables(acc, m) {
		if prefix == "-" {
			if _, err := fmt.Fprintf(w, "# %s\n", tbl.name); err != nil {
				return err
			}
			if err := tbl.write(w); err != nil {
				return fmt.Errorf("write %s table: %w", tbl.name, err)
			}
			continue
		}

		path := fmt.Sprintf("%s.%s.tsv", prefix, tbl.name)
		f, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("create %s: %w", path, err)
		}
		if err := tbl.write(f); err != nil {
			f.Close()
			return fmt.Errorf("write %s: %w", path, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", path, err)
		}
	}
	return nil
}
