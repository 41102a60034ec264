package usage

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/lbarbosa/codonstat/internal/gencode"
)

// parseFrequencyTable reads tab-separated (key, frequency) rows. keyLen is
// the expected key length after canonicalization: 3 for ICU tables, 6 for
// CC tables.
func parseFrequencyTable(r io.Reader, keyLen int) (map[string]float64, error) {
	freqs := make(map[string]float64)

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: want key<TAB>frequency, got %q", lineNo, line)
		}
		key := gencode.NormalizeCodon(strings.TrimSpace(fields[0]))
		if len(key) != keyLen {
			return nil, fmt.Errorf("line %d: key %q: want length %d", lineNo, fields[0], keyLen)
		}
		f, err := strconv.ParseFloat(strings.TrimSpace(fields[1]), 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: frequency %q: %w", lineNo, fields[1], err)
		}
		freqs[key] = f
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan frequency table: %w", err)
	}

	if len(freqs) == 0 {
		return nil, fmt.Errorf("frequency table source is empty")
	}
	return freqs, nil
}

// ParseICU reads an ICU frequency table: (codon, frequency) rows.
func ParseICU(r io.Reader) (map[string]float64, error) {
	return parseFrequencyTable(r, 3)
}

// ParseCC reads a CC frequency table: (codon pair, frequency) rows with the
// pair written as a 6-character concatenation.
func ParseCC(r io.Reader) (map[string]float64, error) {
	return parseFrequencyTable(r, 6)
}

// LoadModel loads a reference model from ICU and CC table files.
func LoadModel(icuPath, ccPath string) (*Model, error) {
	icu, err := loadFrequencyFile(icuPath, 3)
	if err != nil {
		return nil, fmt.Errorf("ICU table %s: %w", icuPath, err)
	}
	cc, err := loadFrequencyFile(ccPath, 6)
	if err != nil {
		return nil, fmt.Errorf("CC table %s: %w", ccPath, err)
	}
	return &Model{ICU: icu, CC: cc}, nil
}

func loadFrequencyFile(path string, keyLen int) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return parseFrequencyTable(f, keyLen)
}

// WriteFrequencyTable writes (key, frequency) rows sorted lexicographically
// by key. Frequencies are written with full precision so a written table
// loads back bit-identical.
func WriteFrequencyTable(w io.Writer, freqs map[string]float64) error {
	keys := make([]string, 0, len(freqs))
	for k := range freqs {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bw := bufio.NewWriter(w)
	for _, k := range keys {
		if _, err := fmt.Fprintf(bw, "%s\t%s\n", k, strconv.FormatFloat(freqs[k], 'g', -1, 64)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteCountTable writes (key, count) rows sorted lexicographically by key.
func WriteCountTable(w io.Writer, counts map[string]int) error {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	bw := bufio.NewWriter(w)
	for _, k := range keys {
		if _, err := fmt.Fprintf(bw, "%s\t%d\n", k, counts[k]); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// AminoAcidCounts converts a per-amino-acid count map to string keys for
// table writing.
func AminoAcidCounts(counts map[byte]int) map[string]int {
	out := make(map[string]int, len(counts))
	for aa, n := range counts {
		out[string(aa)] = n
	}
	return out
}
