package fetch

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var sourcesFetched = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "crisis_sources_fetched_total",
	Help: "Source fetch attempts by outcome.",
}, []string{"result"})

// Fetcher fans out extraction over a list of URLs and fans the results back
// in, preserving input order. A failed URL yields an empty string at its
// original index; failure never aborts the batch and nothing is retried.
type Fetcher struct {
	extractor Extractor
	cache     *Cache
	timeout   time.Duration
	logger    *log.Logger
}

// NewFetcher wires an extractor with the per-URL timeout and an optional
// source cache. cache may be nil.
func NewFetcher(extractor Extractor, cache *Cache, timeout time.Duration, logger *log.Logger) *Fetcher {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if logger == nil {
		logger = log.New(log.Writer(), "[FETCH] ", log.LstdFlags)
	}
	return &Fetcher{extractor: extractor, cache: cache, timeout: timeout, logger: logger}
}

// FetchAll extracts every URL concurrently. The returned slice always has
// the same length and order as urls.
func (f *Fetcher) FetchAll(ctx context.Context, urls []string) []string {
	texts := make([]string, len(urls))
	if len(urls) == 0 {
		return texts
	}

	var wg sync.WaitGroup
	for i, url := range urls {
		wg.Add(1)
		go func(slot int, url string) {
			defer wg.Done()
			texts[slot] = f.fetchOne(ctx, url)
		}(i, url)
	}
	wg.Wait()
	return texts
}

func (f *Fetcher) fetchOne(ctx context.Context, url string) string {
	if text := f.cache.Get(ctx, url); text != "" {
		sourcesFetched.WithLabelValues("cached").Inc()
		return text
	}

	callCtx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	text, err := f.extractor.Extract(callCtx, url)
	if err != nil {
		f.logger.Printf("fetching %s: %v", url, err)
		sourcesFetched.WithLabelValues("failed").Inc()
		return ""
	}
	sourcesFetched.WithLabelValues("ok").Inc()
	f.cache.Put(ctx, url, text)
	return text
}
