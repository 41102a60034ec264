package motif

import (
	"bufio"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/lbarbosa/codonstat/internal/seqio"
)

// ExclusionSet holds motifs that must not appear in scored sequences.
type ExclusionSet []string

// CountAll sums overlapping occurrences of every motif in the sequence.
func (e ExclusionSet) CountAll(seq string) int {
	total := 0
	for _, m := range e {
		total += CountOverlapping(seq, m)
	}
	return total
}

// LoadExclusions reads an exclusion-sequence file: semicolon-separated
// motifs per line, '#' comment lines and blank lines ignored. A missing
// file is not an error and yields an empty set.
func LoadExclusions(path string) (ExclusionSet, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open exclusion file: %w", err)
	}
	defer f.Close()

	seen := make(map[string]bool)
	var set ExclusionSet

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, entry := range strings.Split(line, ";") {
			m := seqio.Normalize(entry)
			if m == "" || seen[m] {
				continue
			}
			seen[m] = true
			set = append(set, m)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan exclusion file: %w", err)
	}

	sort.Strings(set)
	return set, nil
}
