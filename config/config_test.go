package config

import (
	"testing"
	"time"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig("")

	if cfg.Server.Address != ":8080" {
		t.Fatalf("unexpected server address %q", cfg.Server.Address)
	}
	if cfg.Fetch.Timeout != 10*time.Second {
		t.Fatalf("unexpected fetch timeout %v", cfg.Fetch.Timeout)
	}
	if cfg.Fetch.Engine != "http" {
		t.Fatalf("unexpected fetch engine %q", cfg.Fetch.Engine)
	}
	if cfg.LLM.MaxConcurrent != 2 {
		t.Fatalf("unexpected llm.max_concurrent %d", cfg.LLM.MaxConcurrent)
	}
	if cfg.Worker.Workers != 4 || cfg.Worker.QueueSize != 64 {
		t.Fatalf("unexpected worker sizing %+v", cfg.Worker)
	}
	if cfg.General.TestMode {
		t.Fatal("test mode must default off")
	}
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("CRISIS_GENERAL_TEST_MODE", "true")
	t.Setenv("CRISIS_WORKER_WORKERS", "9")

	cfg := LoadConfig("")
	if !cfg.General.TestMode {
		t.Fatal("env override for test mode ignored")
	}
	if cfg.Worker.Workers != 9 {
		t.Fatalf("env override for workers ignored, got %d", cfg.Worker.Workers)
	}
}

func TestPostgresDSN(t *testing.T) {
	p := PostgresConfig{Host: "db", User: "u", Password: "p", DBName: "crisis"}
	dsn, err := p.DSN()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "postgres://u:p@db:5432/crisis?sslmode=disable"
	if dsn != want {
		t.Fatalf("expected %q, got %q", want, dsn)
	}
}

func TestPostgresDSN_URLWins(t *testing.T) {
	p := PostgresConfig{URL: "postgres://x", Host: "ignored"}
	dsn, err := p.DSN()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dsn != "postgres://x" {
		t.Fatalf("unexpected dsn %q", dsn)
	}
}

func TestPostgresDSN_Unconfigured(t *testing.T) {
	if _, err := (PostgresConfig{}).DSN(); err == nil {
		t.Fatal("expected error for unconfigured postgres")
	}
}

func TestWorkerValidate(t *testing.T) {
	if err := (WorkerConfig{Workers: 0, QueueSize: 1}).Validate(); err == nil {
		t.Fatal("expected error for zero workers")
	}
	if err := (WorkerConfig{Workers: 1, QueueSize: -1}).Validate(); err == nil {
		t.Fatal("expected error for negative queue size")
	}
	if err := (WorkerConfig{Workers: 1, QueueSize: 0}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
