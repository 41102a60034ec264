// Package motif provides substring and repeat-window scans over nucleotide
// sequences.
package motif

// CountOverlapping counts occurrences of needle in haystack, advancing one
// position after each match so overlapping occurrences all count.
func CountOverlapping(haystack, needle string) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return 0
	}
	n := 0
	for i := 0; i+len(needle) <= len(haystack); i++ {
		if haystack[i:i+len(needle)] == needle {
			n++
		}
	}
	return n
}

// CountRepeatWindows counts the starting offsets at which the next
// unitLen*multiplicity nucleotides are multiplicity back-to-back copies of
// the unitLen-nucleotide unit at that offset. Overlapping windows count
// independently.
func CountRepeatWindows(haystack string, unitLen, multiplicity int) int {
	if unitLen < 1 || multiplicity < 1 {
		return 0
	}
	window := unitLen * multiplicity
	n := 0
	for i := 0; i+window <= len(haystack); i++ {
		if isRepeatAt(haystack, i, unitLen, multiplicity) {
			n++
		}
	}
	return n
}

func isRepeatAt(s string, offset, unitLen, multiplicity int) bool {
	unit := s[offset : offset+unitLen]
	for k := 1; k < multiplicity; k++ {
		start := offset + k*unitLen
		if s[start:start+unitLen] != unit {
			return false
		}
	}
	return true
}
