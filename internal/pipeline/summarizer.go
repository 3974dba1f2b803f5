package pipeline

import (
	"context"
	"log"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/gibbsgresge/CrisisEventSite/models"
	"github.com/gibbsgresge/CrisisEventSite/provider"
)

// MinSourceChars is the trimmed length below which a source is treated as
// noise and skipped rather than summarized.
const MinSourceChars = 100

// Summarizer reduces one source text into a short, information-dense
// synopsis with a single generator call. Per-source failure is isolated:
// it yields an empty summary, never an error for the batch.
type Summarizer struct {
	llm    provider.Provider
	logger *log.Logger
}

func NewSummarizer(llm provider.Provider, logger *log.Logger) *Summarizer {
	if logger == nil {
		logger = log.New(log.Writer(), "[SUMM] ", log.LstdFlags)
	}
	return &Summarizer{llm: llm, logger: logger}
}

// Summarize returns the synopsis of one source, or "" when the source is
// too short or the generator fails.
func (s *Summarizer) Summarize(ctx context.Context, src models.SourceText, category string) string {
	body := strings.TrimSpace(src.Body)
	if utf8.RuneCountInString(body) < MinSourceChars {
		return ""
	}
	out, err := s.llm.Generate(ctx, summarizePrompt(category, body), provider.Params{})
	if err != nil {
		s.logger.Printf("summarizing %s: %v", src.Origin, err)
		return ""
	}
	return strings.TrimSpace(out)
}

// SummarizeAll summarizes every source concurrently. The returned slice
// has one entry per source in the same order as sources, regardless of
// which generator call completes first; excluded sources carry an empty
// body. The provider's concurrency cap bounds the fan-out.
func (s *Summarizer) SummarizeAll(ctx context.Context, sources []models.SourceText, category string) []models.ArticleSummary {
	summaries := make([]models.ArticleSummary, len(sources))
	var wg sync.WaitGroup
	for i, src := range sources {
		summaries[i] = models.ArticleSummary{Index: i}
		wg.Add(1)
		go func(slot int, src models.SourceText) {
			defer wg.Done()
			summaries[slot].Body = s.Summarize(ctx, src, category)
		}(i, src)
	}
	wg.Wait()
	return summaries
}
