package score

import (
	"fmt"
	"runtime"
	"sync"

	"github.com/lbarbosa/codonstat/internal/seqio"
)

// WorkItem holds a finalized sequence ready for scoring.
type WorkItem struct {
	Seq int
	Rec seqio.Finalized
}

// WorkResult holds the score tuple for a single sequence.
type WorkResult struct {
	Seq int
	Res *Result
}

// ResultWriter defines the interface for writing score rows.
type ResultWriter interface {
	WriteHeader() error
	Write(res *Result) error
	Flush() error
}

// ParallelScore scores work items using a pool of workers. Results are sent
// to the returned channel in arrival order (not sequence order). Use
// OrderedCollect to consume results in sequence-number order. If workers is
// 0, runtime.NumCPU() is used.
func (s *Scorer) ParallelScore(items <-chan WorkItem, workers int) <-chan WorkResult {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make(chan WorkResult, 2*workers)

	var wg sync.WaitGroup
	wg.Add(workers)

	for range workers {
		go func() {
			defer wg.Done()
			for item := range items {
				results <- WorkResult{Seq: item.Seq, Res: s.Score(item.Rec)}
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	return results
}

// OrderedCollect calls fn for each result in sequence-number order. It
// buffers out-of-order results in a pending map and emits them as soon as
// the next expected sequence number is available. Blocks until the results
// channel is closed.
func OrderedCollect(results <-chan WorkResult, fn func(WorkResult) error) error {
	pending := make(map[int]WorkResult)
	nextSeq := 0

	for r := range results {
		pending[r.Seq] = r

		for {
			rr, ok := pending[nextSeq]
			if !ok {
				break
			}
			delete(pending, nextSeq)
			nextSeq++
			if err := fn(rr); err != nil {
				// Drain remaining results to unblock workers.
				for range results {
				}
				return err
			}
		}
	}

	return nil
}

// ScoreAll reads, finalizes and scores every record from the reader,
// writing one row per scored record in input order. Skipped records produce
// no row. workers 0 means one worker per CPU.
func (s *Scorer) ScoreAll(reader *seqio.Reader, fin *seqio.Finalizer, writer ResultWriter, workers int) error {
	items := make(chan WorkItem, 2*runtime.NumCPU())
	var readErr error

	go func() {
		defer close(items)
		seq := 0
		for {
			rec, err := reader.Next()
			if err != nil {
				readErr = fmt.Errorf("read record: %w", err)
				return
			}
			if rec == nil {
				return
			}
			f := fin.Finalize(rec)
			if f.Skip {
				continue
			}
			items <- WorkItem{Seq: seq, Rec: f}
			seq++
		}
	}()

	results := s.ParallelScore(items, workers)

	if err := OrderedCollect(results, func(r WorkResult) error {
		if err := writer.Write(r.Res); err != nil {
			return fmt.Errorf("write score row: %w", err)
		}
		return nil
	}); err != nil {
		return err
	}

	if readErr != nil {
		return readErr
	}

	return writer.Flush()
}
