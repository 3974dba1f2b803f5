package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gibbsgresge/CrisisEventSite/models"
	"github.com/gibbsgresge/CrisisEventSite/provider"
)

// DefaultTitle is used when title generation fails.
const DefaultTitle = "Untitled"

// Aggregator reduces per-source summaries plus a template into one filled
// artifact and a short title, with two sequential generator calls.
type Aggregator struct {
	llm    provider.Provider
	logger *log.Logger
}

func NewAggregator(llm provider.Provider, logger *log.Logger) *Aggregator {
	if logger == nil {
		logger = log.New(log.Writer(), "[AGGR] ", log.LstdFlags)
	}
	return &Aggregator{llm: llm, logger: logger}
}

// CombineSummaries newline-joins the non-empty summaries in their original
// order. Pure; the joined text is what the fill prompt sees.
func CombineSummaries(summaries []models.ArticleSummary) string {
	var parts []string
	for _, s := range summaries {
		if s.Body != "" {
			parts = append(parts, s.Body)
		}
	}
	return strings.Join(parts, "\n")
}

// Aggregate fills the template from the combined summaries and derives a
// title. A fill failure fails the job (there is nothing to persist); a
// title failure degrades to DefaultTitle.
func (a *Aggregator) Aggregate(ctx context.Context, summaries []models.ArticleSummary, tpl models.Template, category string) (string, string, error) {
	combined := CombineSummaries(summaries)

	filled, err := a.llm.Generate(ctx, fillPrompt(category, combined, tpl.Body), provider.Params{})
	if err != nil {
		return "", "", fmt.Errorf("filling template %s: %w", tpl.ID, err)
	}
	filled = strings.TrimSpace(filled)

	// The model is trusted to replace every placeholder; leftovers are
	// logged but do not fail the job.
	if leftover := ParseAttributes(filled); len(leftover) > 0 {
		a.logger.Printf("filled artifact still contains %d placeholder tag(s): %v", len(leftover), leftover)
	}

	title, err := a.llm.Generate(ctx, titlePrompt(category, filled), provider.Params{})
	if err != nil {
		a.logger.Printf("generating title: %v", err)
		title = DefaultTitle
	}
	title = strings.TrimSpace(title)
	if title == "" {
		title = DefaultTitle
	}

	return filled, title, nil
}
