// Package indexing builds the derived search attributes of record
// collections. Index building is a pure batch operation: collections are
// re-indexed wholesale whenever the backing records change, never updated
// incrementally.
package indexing

import (
	"fmt"
	"strings"
	"sync"

	"github.com/panjf2000/ants/v2"

	"github.com/sumry-app/SUMRY-sub001/internal/tokenizer"
	"github.com/sumry-app/SUMRY-sub001/model"
)

// BuildIndex derives an IndexedRecord for each record: the values of fields
// are lowercased and tokenized into a word-token set (with stored prefixes),
// and joined into a single lowercase text string. Records with no usable
// field values still produce an index with empty tokens and text, never nil.
// Unsupported field types are stringified. There are no error conditions.
func BuildIndex(records []model.Record, fields []string) []model.IndexedRecord {
	indexed := make([]model.IndexedRecord, len(records))
	for i, rec := range records {
		indexed[i] = IndexRecord(rec, fields)
	}
	return indexed
}

// IndexRecord derives the search attributes of a single record.
func IndexRecord(rec model.Record, fields []string) model.IndexedRecord {
	parts := make([]string, 0, len(fields))
	for _, field := range fields {
		if val, ok := rec.Get(field); ok {
			if text := val.Text(); text != "" {
				parts = append(parts, text)
			}
		}
	}

	text := strings.ToLower(strings.Join(parts, " "))
	return model.IndexedRecord{
		Record: rec,
		Tokens: tokenizer.TokenSet(text),
		Text:   text,
	}
}

// minParallelBatch is the collection size below which the pooled builder
// indexes sequentially; the pool overhead is not worth it for small inputs.
const minParallelBatch = 256

// Service builds indexes on a shared worker pool, for the
// tens-of-thousands-of-records collections the engine is sized for.
type Service struct {
	pool *ants.Pool
}

// NewService creates an indexing Service with the given worker count.
func NewService(workers int) (*Service, error) {
	if workers < 1 {
		workers = 1
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("creating index worker pool: %w", err)
	}
	return &Service{pool: pool}, nil
}

// Close releases the worker pool.
func (s *Service) Close() {
	s.pool.Release()
}

// BuildIndex is the pooled equivalent of the package-level BuildIndex.
// Each worker writes only its own output slot, so the result order always
// matches the input order and the build stays deterministic.
func (s *Service) BuildIndex(records []model.Record, fields []string) []model.IndexedRecord {
	if len(records) < minParallelBatch {
		return BuildIndex(records, fields)
	}

	indexed := make([]model.IndexedRecord, len(records))
	var wg sync.WaitGroup

	for i := range records {
		i := i
		wg.Add(1)
		err := s.pool.Submit(func() {
			defer wg.Done()
			indexed[i] = IndexRecord(records[i], fields)
		})
		if err != nil {
			// Pool rejected the task (released or overloaded): fall back to
			// indexing this record inline.
			indexed[i] = IndexRecord(records[i], fields)
			wg.Done()
		}
	}

	wg.Wait()
	return indexed
}
