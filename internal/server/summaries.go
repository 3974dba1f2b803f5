package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gibbsgresge/CrisisEventSite/internal/search"
	"github.com/gibbsgresge/CrisisEventSite/models"
)

// SummaryLister reads persisted summaries back for the UI.
type SummaryLister interface {
	ListSummariesByRecipient(ctx context.Context, recipient string, limit int) ([]models.Summary, error)
}

// SummariesHandler serves read access to finished summaries: a per-user
// listing from the store and full-text search over the in-memory index.
type SummariesHandler struct {
	Store SummaryLister
	Index *search.Index
}

func (h *SummariesHandler) Register(g *echo.Group) {
	g.GET("", h.list)
	g.GET("/search", h.search)
}

func (h *SummariesHandler) list(c echo.Context) error {
	recipient := strings.TrimSpace(c.QueryParam("recipient"))
	if recipient == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "recipient required")
	}
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	items, err := h.Store.ListSummariesByRecipient(c.Request().Context(), recipient, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if items == nil {
		items = []models.Summary{}
	}
	return c.JSON(http.StatusOK, items)
}

func (h *SummariesHandler) search(c echo.Context) error {
	q := strings.TrimSpace(c.QueryParam("q"))
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q required")
	}
	k, _ := strconv.Atoi(c.QueryParam("k"))
	hits, err := h.Index.Search(q, k)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if hits == nil {
		hits = []search.Hit{}
	}
	return c.JSON(http.StatusOK, hits)
}
