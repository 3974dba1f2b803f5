package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/gibbsgresge/CrisisEventSite/internal/worker"
	"github.com/gibbsgresge/CrisisEventSite/models"
)

// Dispatcher schedules an accepted job for background execution.
type Dispatcher interface {
	Dispatch(job models.Job) error
}

// JobsHandler is the intake surface: it validates job descriptions,
// acknowledges with 202 and never waits on the pipeline.
type JobsHandler struct {
	Dispatch Dispatcher
}

func (h *JobsHandler) Register(g *echo.Group) {
	g.POST("/templates", h.createTemplate)
	g.POST("/summaries", h.createSummary)
}

func (h *JobsHandler) createTemplate(c echo.Context) error {
	var req templateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Text) == "" || strings.TrimSpace(req.Category) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "request JSON must contain 'text', 'category', and 'user' object")
	}
	user, missing := req.User.validate()
	if missing != "" {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("user object must contain '%s'", missing))
	}

	job := models.Job{
		Kind:       models.JobKindBuildTemplate,
		Category:   req.Category,
		User:       user,
		SourceText: req.Text,
	}
	return h.accept(c, job, "Your Template is being generated. You will receive an email when it's ready.")
}

func (h *JobsHandler) createSummary(c echo.Context) error {
	var req summaryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Category) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "request JSON must contain 'category'")
	}
	if len(req.URLs) == 0 && strings.TrimSpace(req.Text) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "request JSON must contain 'urls' or 'text'")
	}
	if strings.TrimSpace(req.TemplateID) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "request JSON must contain 'template_id'")
	}
	user, missing := req.User.validate()
	if missing != "" {
		return echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("user object must contain '%s'", missing))
	}

	job := models.Job{
		Kind:       models.JobKindBuildSummary,
		Category:   req.Category,
		User:       user,
		URLs:       req.URLs,
		TemplateID: req.TemplateID,
		SourceText: req.Text,
	}
	return h.accept(c, job, "Your Summary is being generated. You will receive an email when it's ready.")
}

func (h *JobsHandler) accept(c echo.Context, job models.Job, message string) error {
	if err := h.Dispatch.Dispatch(job); err != nil {
		if errors.Is(err, worker.ErrQueueFull) || errors.Is(err, worker.ErrStopped) {
			return echo.NewHTTPError(http.StatusServiceUnavailable, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusAccepted, acceptedResponse{Message: message})
}
