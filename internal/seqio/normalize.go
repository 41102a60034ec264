// Package seqio reads FASTA records and prepares raw nucleotide strings for
// the counting and scoring engines.
package seqio

import "strings"

// Normalize canonicalizes one raw sequence line: uppercase, RNA U rewritten
// to T, all whitespace stripped. Pure and idempotent; applied to every
// non-header line before concatenation into the record buffer.
func Normalize(line string) string {
	var b strings.Builder
	b.Grow(len(line))
	for i := 0; i < len(line); i++ {
		c := line[i]
		switch {
		case c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\v' || c == '\f':
			continue
		case c >= 'a' && c <= 'z':
			c -= 'a' - 'A'
		}
		if c == 'U' {
			c = 'T'
		}
		b.WriteByte(c)
	}
	return b.String()
}
