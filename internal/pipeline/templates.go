package pipeline

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/gibbsgresge/CrisisEventSite/provider"
)

// TemplateBuilder produces a brand-new generalized template for a disaster
// category from example source text, with one few-shot generator call.
// The prompt requires <attribute-name> tags, no event-specific facts, and
// a terminal <unique-extra-info> tag; those are prompt-level contracts.
// The only mechanical postcondition is attribute extraction.
type TemplateBuilder struct {
	llm    provider.Provider
	logger *log.Logger
}

func NewTemplateBuilder(llm provider.Provider, logger *log.Logger) *TemplateBuilder {
	if logger == nil {
		logger = log.New(log.Writer(), "[TMPL] ", log.LstdFlags)
	}
	return &TemplateBuilder{llm: llm, logger: logger}
}

// Build generates the template body and its ordered attribute list. A
// generator failure fails the job: without a body there is nothing to
// persist.
func (b *TemplateBuilder) Build(ctx context.Context, category, sourceText string) (string, []string, error) {
	body, err := b.llm.Generate(ctx, templatePrompt(category, sourceText), provider.Params{})
	if err != nil {
		return "", nil, fmt.Errorf("generating template for %q: %w", category, err)
	}
	body = strings.TrimSpace(body)
	return body, ParseAttributes(body), nil
}
