package pipeline

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/gibbsgresge/CrisisEventSite/internal/notify"
	"github.com/gibbsgresge/CrisisEventSite/models"
)

// Store is the persistence boundary the pipeline writes to. Documents are
// inserted, never updated in place.
type Store interface {
	InsertTemplate(ctx context.Context, tpl models.Template) (string, error)
	InsertSummary(ctx context.Context, summary models.Summary) (string, error)
	GetTemplateByID(ctx context.Context, id string) (models.Template, error)
}

// URLFetcher fans source extraction out over a URL list, one slot per URL.
type URLFetcher interface {
	FetchAll(ctx context.Context, urls []string) []string
}

// Indexer receives persisted summaries for search. Optional.
type Indexer interface {
	IndexSummary(summary models.Summary) error
}

// Dummy artifacts substituted for the whole generative pipeline when test
// mode is on.
const (
	testModeTemplateBody = "<dummy-tag> Template for %s generated from test input."
	testModeSummaryBody  = "Summary for %s generated from test input."
	testModeSummaryTitle = "Test Summary"
)

// Runner executes one job end to end: fetch, per-source reduction,
// aggregation (or template building), then persist and notify. Each job
// owns its data exclusively; a Runner is shared read-only across jobs.
type Runner struct {
	Fetcher    URLFetcher
	Summarizer *Summarizer
	Aggregator *Aggregator
	Templates  *TemplateBuilder
	Store      Store
	Notifier   notify.Notifier
	Index      Indexer
	TestMode   bool
	Logger     *log.Logger
}

func (r *Runner) logf(format string, args ...interface{}) {
	if r.Logger != nil {
		r.Logger.Printf(format, args...)
	}
}

// Run consumes one job. The returned error means the job failed terminally
// (nothing was produced to persist); partial failures inside the pipeline
// degrade and are logged instead.
func (r *Runner) Run(ctx context.Context, job models.Job) error {
	switch job.Kind {
	case models.JobKindBuildTemplate:
		return r.runTemplate(ctx, job)
	case models.JobKindBuildSummary:
		return r.runSummary(ctx, job)
	default:
		return fmt.Errorf("unknown job kind: %s", job.Kind)
	}
}

func (r *Runner) runTemplate(ctx context.Context, job models.Job) error {
	start := time.Now()

	var (
		body       string
		attributes []string
	)
	if r.TestMode {
		r.logf("running in TEST MODE")
		body = fmt.Sprintf(testModeTemplateBody, job.Category)
		attributes = []string{"dummy-tag"}
	} else {
		var err error
		body, attributes, err = r.Templates.Build(ctx, job.Category, job.SourceText)
		if err != nil {
			r.logf("template job for %s failed: %v", job.User.Email, err)
			return err
		}
	}
	took := time.Since(start)

	tpl := models.Template{
		Recipient:  job.User.Email,
		Category:   job.Category,
		Body:       body,
		Attributes: attributes,
	}
	if id, err := r.Store.InsertTemplate(ctx, tpl); err != nil {
		r.logf("failed to insert template for %s: %v", job.User.Email, err)
	} else {
		tpl.ID = id
		r.logf("inserted template %s for %s", id, job.User.Email)
	}

	r.notifyUser(job.User,
		notify.TemplateReadySubject(job.Category),
		notify.TemplateReadyBody(job.User, tpl, took))
	return nil
}

func (r *Runner) runSummary(ctx context.Context, job models.Job) error {
	start := time.Now()

	if r.TestMode {
		r.logf("running in TEST MODE")
		summary := models.Summary{
			Recipient: job.User.Email,
			Category:  job.Category,
			Body:      fmt.Sprintf(testModeSummaryBody, job.Category),
			Title:     testModeSummaryTitle,
		}
		r.finishSummary(ctx, job, summary, 0, time.Since(start))
		return nil
	}

	sources := r.gatherSources(ctx, job)

	summaries := r.Summarizer.SummarizeAll(ctx, sources, job.Category)
	used := 0
	for _, s := range summaries {
		if s.Body != "" {
			used++
		}
	}
	r.logf("summarized %d/%d sources for %s", used, len(sources), job.User.Email)

	tpl, err := r.Store.GetTemplateByID(ctx, job.TemplateID)
	if err != nil {
		r.logf("summary job for %s failed: template %s: %v", job.User.Email, job.TemplateID, err)
		return fmt.Errorf("template %s: %w", job.TemplateID, err)
	}

	body, title, err := r.Aggregator.Aggregate(ctx, summaries, tpl, job.Category)
	if err != nil {
		r.logf("summary job for %s failed: %v", job.User.Email, err)
		return err
	}

	summary := models.Summary{
		Recipient: job.User.Email,
		Category:  job.Category,
		Body:      body,
		Title:     title,
	}
	r.finishSummary(ctx, job, summary, used, time.Since(start))
	return nil
}

// gatherSources resolves the job payload into source texts: fetched URL
// bodies slot for slot, or the single inline text.
func (r *Runner) gatherSources(ctx context.Context, job models.Job) []models.SourceText {
	if len(job.URLs) > 0 {
		r.logf("starting fetch of %d URLs for %s", len(job.URLs), job.User.Email)
		texts := r.Fetcher.FetchAll(ctx, job.URLs)
		sources := make([]models.SourceText, len(job.URLs))
		for i, url := range job.URLs {
			sources[i] = models.SourceText{Origin: url, Body: texts[i]}
		}
		return sources
	}
	return []models.SourceText{{Origin: "inline", Body: job.SourceText}}
}

// finishSummary persists, indexes and notifies. The three steps are
// independent: any failure is logged and the others still run.
func (r *Runner) finishSummary(ctx context.Context, job models.Job, summary models.Summary, articles int, took time.Duration) {
	if id, err := r.Store.InsertSummary(ctx, summary); err != nil {
		r.logf("failed to insert summary for %s: %v", job.User.Email, err)
	} else {
		summary.ID = id
		r.logf("inserted summary %s for %s", id, job.User.Email)
	}

	if r.Index != nil && summary.ID != "" {
		if err := r.Index.IndexSummary(summary); err != nil {
			r.logf("indexing summary %s: %v", summary.ID, err)
		}
	}

	r.notifyUser(job.User,
		notify.SummaryReadySubject(job.Category),
		notify.SummaryReadyBody(job.User, summary, articles, took))
}

// notifyUser delivers the completion email unless the user opted out.
// Delivery failure is terminal: logged, never retried, never escalated.
func (r *Runner) notifyUser(user models.User, subject, body string) {
	if !user.EmailNotifications || r.Notifier == nil {
		return
	}
	if err := r.Notifier.Send(user.Email, subject, body); err != nil {
		r.logf("failed to send email to %s: %v", user.Email, err)
	}
}
