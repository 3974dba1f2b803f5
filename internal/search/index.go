package search

import (
	"sync"

	"github.com/blevesearch/bleve"

	"github.com/gibbsgresge/CrisisEventSite/models"
)

// Hit is one search result over persisted summaries.
type Hit struct {
	ID       string  `json:"id"`
	Title    string  `json:"title"`
	Category string  `json:"category"`
	Score    float64 `json:"score"`
}

// Index is an in-memory BM25 index over summaries, fed as the pipeline
// persists them. It is a convenience view, not the source of truth: it is
// rebuilt empty on restart and lookups go back to the store.
type Index struct {
	idx  bleve.Index
	mu   sync.RWMutex
	meta map[string]models.Summary
}

type indexedSummary struct {
	Title    string `json:"title"`
	Category string `json:"category"`
	Body     string `json:"body"`
}

// NewIndex creates an empty in-memory index.
func NewIndex() (*Index, error) {
	idx, err := bleve.NewMemOnly(bleve.NewIndexMapping())
	if err != nil {
		return nil, err
	}
	return &Index{idx: idx, meta: map[string]models.Summary{}}, nil
}

// IndexSummary adds one persisted summary.
func (x *Index) IndexSummary(summary models.Summary) error {
	x.mu.Lock()
	defer x.mu.Unlock()
	if err := x.idx.Index(summary.ID, indexedSummary{
		Title:    summary.Title,
		Category: summary.Category,
		Body:     summary.Body,
	}); err != nil {
		return err
	}
	x.meta[summary.ID] = summary
	return nil
}

// Search runs a query-string search and returns up to k hits.
func (x *Index) Search(query string, k int) ([]Hit, error) {
	if k <= 0 {
		k = 10
	}
	x.mu.RLock()
	defer x.mu.RUnlock()

	req := bleve.NewSearchRequestOptions(bleve.NewQueryStringQuery(query), k, 0, false)
	res, err := x.idx.Search(req)
	if err != nil {
		return nil, err
	}
	var out []Hit
	for _, hit := range res.Hits {
		sm := x.meta[hit.ID]
		out = append(out, Hit{ID: hit.ID, Title: sm.Title, Category: sm.Category, Score: hit.Score})
	}
	return out, nil
}

// Close releases the index.
func (x *Index) Close() error {
	return x.idx.Close()
}
