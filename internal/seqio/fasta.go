package seqio

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"strings"
)

// Record is one FASTA record: the header name and the concatenation of its
// normalized sequence lines.
type Record struct {
	Name string
	Seq  string
}

// Reader streams FASTA records one at a time.
type Reader struct {
	scanner *bufio.Scanner
	closers []io.Closer

	nextName string
	started  bool
	done     bool
}

// NewReader creates a Reader over an io.Reader.
func NewReader(r io.Reader) *Reader {
	scanner := bufio.NewScanner(r)
	// Increase buffer size for long sequence lines.
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 10*1024*1024)
	return &Reader{scanner: scanner}
}

// Open creates a Reader over a FASTA file. "-" reads from stdin; a ".gz"
// suffix selects transparent gzip decompression.
func Open(path string) (*Reader, error) {
	if path == "-" {
		return NewReader(os.Stdin), nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open FASTA file: %w", err)
	}

	var src io.Reader = f
	closers := []io.Closer{f}

	if strings.HasSuffix(path, ".gz") {
		gz, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("open gzip reader: %w", err)
		}
		src = gz
		closers = append([]io.Closer{gz}, closers...)
	}

	r := NewReader(src)
	r.closers = closers
	return r, nil
}

// Next returns the next record, or (nil, nil) when the input is exhausted.
// Sequence lines are normalized before concatenation.
func (r *Reader) Next() (*Record, error) {
	if r.done {
		return nil, nil
	}

	var name string
	var seq strings.Builder

	if r.started {
		name = r.nextName
	}

	for r.scanner.Scan() {
		line := r.scanner.Text()

		if strings.HasPrefix(line, ">") {
			header := parseHeader(line)
			if !r.started {
				// First header of the stream.
				r.started = true
				name = header
				continue
			}
			// Header of the following record: emit the current one.
			r.nextName = header
			return &Record{Name: name, Seq: seq.String()}, nil
		}

		if !r.started {
			// Sequence data before any header is malformed FASTA.
			if strings.TrimSpace(line) == "" {
				continue
			}
			return nil, fmt.Errorf("sequence data before FASTA header: %q", line)
		}
		seq.WriteString(Normalize(line))
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan FASTA: %w", err)
	}

	r.done = true
	if !r.started {
		return nil, nil
	}
	return &Record{Name: name, Seq: seq.String()}, nil
}

// Close closes the underlying file and gzip readers, if any.
func (r *Reader) Close() error {
	var firstErr error
	for _, c := range r.closers {
		if err := c.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// parseHeader extracts the record name from a FASTA header line: the first
// whitespace- or pipe-delimited token after '>'.
func parseHeader(header string) string {
	header = strings.TrimSpace(strings.TrimPrefix(header, ">"))
	if idx := strings.IndexAny(header, " |\t"); idx != -1 {
		return header[:idx]
	}
	return header
}
