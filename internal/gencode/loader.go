package gencode

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// ParseTable reads a translation table source: one tab-separated
// (codon, amino acid) row per line. Blank lines and '#' comment lines are
// skipped. The stop marker may arrive as '.' and is canonicalized to '*'.
func ParseTable(r io.Reader) (*Table, error) {
	var rows []Row

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
			return nil, fmt.Errorf("line %d: want codon<TAB>amino acid, got %q", lineNo, line)
		}
		aa := strings.TrimSpace(fields[1])
		if len(aa) != 1 {
			return nil, fmt.Errorf("line %d: amino acid %q is not a single character", lineNo, aa)
		}
		rows = append(rows, Row{Codon: strings.TrimSpace(fields[0]), AminoAcid: aa[0]})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan translation table: %w", err)
	}

	if len(rows) == 0 {
		return nil, fmt.Errorf("translation table source is empty")
	}

	return New(rows)
}

// LoadTable parses a translation table from a file.
func LoadTable(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open translation table: %w", err)
	}
	defer f.Close()

	t, err := ParseTable(f)
	if err != nil {
		return nil, fmt.Errorf("parse translation table %s: %w", path, err)
	}
	return t, nil
}
