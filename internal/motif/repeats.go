package motif

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// RepeatSpec maps a repeat-unit length to the required repeat multiplicity.
type RepeatSpec map[int]int

// CountAll sums repeat windows over every (unit length, multiplicity) entry.
func (r RepeatSpec) CountAll(seq string) int {
	total := 0
	for unitLen, mult := range r {
		total += CountRepeatWindows(seq, unitLen, mult)
	}
	return total
}

// LoadRepeatSpec reads a repeat specification file: semicolon-separated
// "unitLength:multiplicity" entries per line, '#' comment lines and blank
// lines ignored. A missing file is not an error and yields an empty spec.
func LoadRepeatSpec(path string) (RepeatSpec, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open repeat spec file: %w", err)
	}
	defer f.Close()

	spec := make(RepeatSpec)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, entry := range strings.Split(line, ";") {
			entry = strings.TrimSpace(entry)
			if entry == "" {
				continue
			}
			parts := strings.SplitN(entry, ":", 2)
			if len(parts) != 2 {
				return nil, fmt.Errorf("line %d: want unitLength:multiplicity, got %q", lineNo, entry)
			}
			unitLen, err := strconv.Atoi(strings.TrimSpace(parts[0]))
			if err != nil || unitLen < 1 {
				return nil, fmt.Errorf("line %d: unit length %q must be a positive integer", lineNo, parts[0])
			}
			mult, err := strconv.Atoi(strings.TrimSpace(parts[1]))
			if err != nil || mult < 1 {
				return nil, fmt.Errorf("line %d: multiplicity %q must be a positive integer", lineNo, parts[1])
			}
			spec[unitLen] = mult
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan repeat spec file: %w", err)
	}

	return spec, nil
}
