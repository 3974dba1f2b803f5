package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/gibbsgresge/CrisisEventSite/models"
)

// Store persists generated artifacts in Postgres. All writes are inserts;
// nothing is updated in place.
type Store struct {
	DB *sql.DB
}

// NewWithDSN opens and pings a Postgres connection.
func NewWithDSN(ctx context.Context, dsn string) (*Store, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}
	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("postgres ping: %w", err)
	}
	return &Store{DB: db}, nil
}

// InsertTemplate stores a generated template and returns its id.
func (s *Store) InsertTemplate(ctx context.Context, tpl models.Template) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO generated_templates (id, recipient, category, template, attributes, created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		id, tpl.Recipient, tpl.Category, tpl.Body, pq.Array(tpl.Attributes), time.Now().UTC())
	if err != nil {
		return "", err
	}
	return id, nil
}

// InsertSummary stores a generated summary and returns its id.
func (s *Store) InsertSummary(ctx context.Context, summary models.Summary) (string, error) {
	id := uuid.NewString()
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO generated_summaries (id, recipient, category, summary, title, created_at) VALUES ($1,$2,$3,$4,$5,$6)`,
		id, summary.Recipient, summary.Category, summary.Body, summary.Title, time.Now().UTC())
	if err != nil {
		return "", err
	}
	return id, nil
}

// GetTemplateByID fetches one template. Returns models.ErrTemplateNotFound
// when no row matches.
func (s *Store) GetTemplateByID(ctx context.Context, id string) (models.Template, error) {
	var tpl models.Template
	var attrs pq.StringArray
	err := s.DB.QueryRowContext(ctx,
		`SELECT id, recipient, category, template, attributes, created_at FROM generated_templates WHERE id=$1`,
		id).Scan(&tpl.ID, &tpl.Recipient, &tpl.Category, &tpl.Body, &attrs, &tpl.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Template{}, models.ErrTemplateNotFound
	}
	if err != nil {
		return models.Template{}, err
	}
	tpl.Attributes = attrs
	return tpl, nil
}

// ListSummariesByRecipient returns the recipient's summaries, newest first.
func (s *Store) ListSummariesByRecipient(ctx context.Context, recipient string, limit int) ([]models.Summary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.DB.QueryContext(ctx,
		`SELECT id, recipient, category, summary, title, created_at FROM generated_summaries WHERE recipient=$1 ORDER BY created_at DESC LIMIT $2`,
		recipient, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []models.Summary
	for rows.Next() {
		var sm models.Summary
		if err := rows.Scan(&sm.ID, &sm.Recipient, &sm.Category, &sm.Body, &sm.Title, &sm.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, sm)
	}
	return out, rows.Err()
}
