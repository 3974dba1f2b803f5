package server

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	appconfig "github.com/gibbsgresge/CrisisEventSite/config"
	"github.com/gibbsgresge/CrisisEventSite/internal/fetch"
	"github.com/gibbsgresge/CrisisEventSite/internal/notify"
	"github.com/gibbsgresge/CrisisEventSite/internal/pipeline"
	"github.com/gibbsgresge/CrisisEventSite/internal/search"
	"github.com/gibbsgresge/CrisisEventSite/internal/store"
	"github.com/gibbsgresge/CrisisEventSite/internal/worker"
	"github.com/gibbsgresge/CrisisEventSite/provider"
)

// Run assembles the service and blocks serving HTTP.
func Run(cfg *appconfig.Config) error {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Recover())

	// Unified HTTP error handler with structured JSON and logging
	baseLogger := log.New(log.Writer(), "[HTTP] ", log.LstdFlags)
	e.HTTPErrorHandler = func(err error, c echo.Context) {
		code := http.StatusInternalServerError
		msg := err.Error()
		if he, ok := err.(*echo.HTTPError); ok {
			code = he.Code
			if he.Message != nil {
				msg = fmt.Sprint(he.Message)
			}
		}
		req := c.Request()
		baseLogger.Printf("%d %s %s from %s: %v", code, req.Method, req.URL.Path, c.RealIP(), err)
		if !c.Response().Committed {
			_ = c.JSON(code, map[string]interface{}{"error": msg})
		}
	}
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{"GET", "POST", "OPTIONS"},
		AllowHeaders: []string{"Content-Type"},
	}))

	e.GET("/healthz", func(c echo.Context) error { return c.String(200, "ok") })
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	ctx := context.Background()

	dsn, err := cfg.Storage.Postgres.DSN()
	if err != nil {
		return err
	}
	if err := Migrate("file://migrations", dsn, "up", 0); err != nil {
		baseLogger.Printf("migrations: %v", err)
	}
	st, err := store.NewWithDSN(ctx, dsn)
	if err != nil {
		return err
	}

	// Generator capability: constructed once, shared read-only across jobs.
	// Test mode runs the dispatch/persist/notify path without a model.
	var llm provider.Provider
	if !cfg.General.TestMode {
		llm, err = provider.NewProvider(cfg.LLM)
		if err != nil {
			return err
		}
	}

	cache, err := fetch.NewCache(ctx, cfg.Fetch.Cache)
	if err != nil {
		return err
	}
	extractor, err := fetch.NewExtractor(fetch.EngineType(cfg.Fetch.Engine), cfg.Fetch.Timeout, cfg.Fetch.MaxChars)
	if err != nil {
		return err
	}
	fetcher := fetch.NewFetcher(extractor, cache, cfg.Fetch.Timeout, nil)

	var notifier notify.Notifier
	if cfg.SMTP.Host != "" {
		mailer, err := notify.NewMailer(cfg.SMTP, nil)
		if err != nil {
			return err
		}
		notifier = mailer
	} else {
		baseLogger.Printf("smtp not configured, email notifications disabled")
	}

	index, err := search.NewIndex()
	if err != nil {
		return err
	}

	runner := &pipeline.Runner{
		Fetcher:    fetcher,
		Summarizer: pipeline.NewSummarizer(llm, nil),
		Aggregator: pipeline.NewAggregator(llm, nil),
		Templates:  pipeline.NewTemplateBuilder(llm, nil),
		Store:      st,
		Notifier:   notifier,
		Index:      index,
		TestMode:   cfg.General.TestMode,
		Logger:     log.New(log.Writer(), "[JOB] ", log.LstdFlags),
	}

	pool := worker.NewPool(cfg.Worker.Workers, cfg.Worker.QueueSize, nil)
	defer pool.Stop()
	dispatcher := worker.NewDispatcher(pool, runner)

	api := e.Group("/api")
	jh := &JobsHandler{Dispatch: dispatcher}
	jh.Register(api)
	sh := &SummariesHandler{Store: st, Index: index}
	sh.Register(api.Group("/summaries"))

	addr := cfg.Server.Address
	if addr == "" {
		addr = ":8080"
	}
	baseLogger.Printf("listening on %s", addr)
	return e.Start(addr)
}
