package models

import (
	"errors"
	"time"
)

// ErrTemplateNotFound is returned when a template is not found
var ErrTemplateNotFound = errors.New("template not found")

// JobKind selects which pipeline a job runs through.
type JobKind string

const (
	JobKindBuildTemplate JobKind = "build_template"
	JobKindBuildSummary  JobKind = "build_summary"
)

// User is the validated requester attached to a job. It is built once at
// intake and passed through the pipeline unchanged.
type User struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Email              string `json:"email"`
	Role               string `json:"role"`
	EmailNotifications bool   `json:"email_notifications"`
}

// Job is one accepted unit of work. It is immutable, consumed exactly once
// by a background worker and never persisted.
type Job struct {
	Kind     JobKind `json:"kind"`
	Category string  `json:"category"`
	User     User    `json:"user"`

	// BuildTemplate payload, also accepted for inline BuildSummary jobs.
	SourceText string `json:"source_text,omitempty"`

	// BuildSummary payload.
	URLs       []string `json:"urls,omitempty"`
	TemplateID string   `json:"template_id,omitempty"`
}

// SourceText is one fetched (or inline) document contributing to a job.
type SourceText struct {
	Origin string `json:"origin"`
	Body   string `json:"body"`
}

// ArticleSummary is the per-source reduction produced by the summarizer.
// An empty body means the source was excluded from aggregation.
type ArticleSummary struct {
	Index int    `json:"index"`
	Body  string `json:"body"`
}

// Template is a reusable skeleton for a disaster category. Attributes are
// the placeholder tags of Body in first-appearance order, duplicates kept.
type Template struct {
	ID         string    `json:"id"`
	Recipient  string    `json:"recipient"`
	Category   string    `json:"category"`
	Body       string    `json:"template"`
	Attributes []string  `json:"attributes"`
	CreatedAt  time.Time `json:"created_at"`
}

// Summary is the terminal filled artifact delivered to the user.
type Summary struct {
	ID        string    `json:"id"`
	Recipient string    `json:"recipient"`
	Category  string    `json:"category"`
	Body      string    `json:"summary"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"created_at"`
}
