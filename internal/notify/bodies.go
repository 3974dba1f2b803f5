package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/gibbsgresge/CrisisEventSite/models"
)

// TemplateReadySubject is the subject line for a finished template job.
func TemplateReadySubject(category string) string {
	return fmt.Sprintf("Your %s Template is Ready!", category)
}

// SummaryReadySubject is the subject line for a finished summary job.
func SummaryReadySubject(category string) string {
	return fmt.Sprintf("Your %s Summary is Ready!", category)
}

// TemplateReadyBody renders the notification for a generated template,
// including the template text and its attribute list.
func TemplateReadyBody(user models.User, tpl models.Template, took time.Duration) string {
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your Template for '%s' has been generated.\n\n"+
			"Template:\n%s\n\n"+
			"Attributes: %s\n\n"+
			"Template generation took %.2f seconds\n\n"+
			"You can now return to the site to view the summary.",
		user.Name, tpl.Category, tpl.Body, strings.Join(tpl.Attributes, ", "), took.Seconds())
}

// SummaryReadyBody renders the notification for a generated summary,
// including how many articles contributed to it.
func SummaryReadyBody(user models.User, summary models.Summary, articles int, took time.Duration) string {
	return fmt.Sprintf(
		"Hi %s,\n\n"+
			"Your summary for '%s' has been generated from %d articles.\n\n"+
			"Summary:\n%s\n\n"+
			"Summary generation took %.2f seconds\n\n"+
			"You can now return to the site to view the summary.",
		user.Name, summary.Category, articles, summary.Body, took.Seconds())
}
