package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/gibbsgresge/CrisisEventSite/internal/search"
	"github.com/gibbsgresge/CrisisEventSite/models"
)

type fakeLister struct {
	items        []models.Summary
	err          error
	gotRecipient string
	gotLimit     int
}

func (l *fakeLister) ListSummariesByRecipient(_ context.Context, recipient string, limit int) ([]models.Summary, error) {
	l.gotRecipient = recipient
	l.gotLimit = limit
	return l.items, l.err
}

func newSummariesServer(t *testing.T, lister SummaryLister) (*echo.Echo, *search.Index) {
	t.Helper()
	idx, err := search.NewIndex()
	if err != nil {
		t.Fatalf("index: %v", err)
	}
	t.Cleanup(func() { _ = idx.Close() })
	e := echo.New()
	h := &SummariesHandler{Store: lister, Index: idx}
	h.Register(e.Group("/api/summaries"))
	return e, idx
}

func get(e *echo.Echo, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestListSummaries_RequiresRecipient(t *testing.T) {
	e, _ := newSummariesServer(t, &fakeLister{})
	if rec := get(e, "/api/summaries"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestListSummaries_ReturnsRows(t *testing.T) {
	lister := &fakeLister{items: []models.Summary{
		{ID: "s1", Recipient: "ada@example.com", Category: "Flood", Title: "River Floods"},
	}}
	e, _ := newSummariesServer(t, lister)

	rec := get(e, "/api/summaries?recipient=ada@example.com&limit=5")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if lister.gotRecipient != "ada@example.com" || lister.gotLimit != 5 {
		t.Fatalf("query not forwarded: %q %d", lister.gotRecipient, lister.gotLimit)
	}
	var items []models.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(items) != 1 || items[0].Title != "River Floods" {
		t.Fatalf("unexpected items: %+v", items)
	}
}

func TestListSummaries_EmptyIsJSONArray(t *testing.T) {
	e, _ := newSummariesServer(t, &fakeLister{})
	rec := get(e, "/api/summaries?recipient=nobody@example.com")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var items []models.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &items); err != nil {
		t.Fatalf("expected a JSON array, got %q", rec.Body.String())
	}
	if items == nil || len(items) != 0 {
		t.Fatalf("expected empty array, got %+v", items)
	}
}

func TestListSummaries_StoreError(t *testing.T) {
	e, _ := newSummariesServer(t, &fakeLister{err: errors.New("db down")})
	if rec := get(e, "/api/summaries?recipient=x@example.com"); rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestSearchSummaries(t *testing.T) {
	e, idx := newSummariesServer(t, &fakeLister{})
	if err := idx.IndexSummary(models.Summary{
		ID:       "s1",
		Category: "Wildfire",
		Title:    "Canyon Fire Contained",
		Body:     "Crews contained the canyon wildfire after burning 12000 acres.",
	}); err != nil {
		t.Fatalf("index: %v", err)
	}

	rec := get(e, "/api/summaries/search?q=wildfire")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var hits []search.Hit
	if err := json.Unmarshal(rec.Body.Bytes(), &hits); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(hits) != 1 || hits[0].ID != "s1" || hits[0].Title != "Canyon Fire Contained" {
		t.Fatalf("unexpected hits: %+v", hits)
	}
}

func TestSearchSummaries_RequiresQuery(t *testing.T) {
	e, _ := newSummariesServer(t, &fakeLister{})
	if rec := get(e, "/api/summaries/search"); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
