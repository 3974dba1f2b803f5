package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service.
type Config struct {
	General GeneralConfig `mapstructure:"general"`
	Server  ServerConfig  `mapstructure:"server"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Fetch   FetchConfig   `mapstructure:"fetch"`
	Worker  WorkerConfig  `mapstructure:"worker"`
	Storage StorageConfig `mapstructure:"storage"`
	SMTP    SMTPConfig    `mapstructure:"smtp"`
}

// GeneralConfig contains general application settings.
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
	// TestMode substitutes a fixed dummy artifact for the whole generative
	// pipeline so the dispatch/persist/notify path can be exercised without
	// a model behind it.
	TestMode bool `mapstructure:"test_mode"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// LLMConfig configures the generative-text provider.
type LLMConfig struct {
	Provider        string        `mapstructure:"provider"` // openai
	APIKey          string        `mapstructure:"api_key"`
	BaseURL         string        `mapstructure:"base_url"`
	CompletionModel string        `mapstructure:"completion_model"`
	Temperature     float64       `mapstructure:"temperature"`
	TopP            float64       `mapstructure:"top_p"`
	MaxTokens       int           `mapstructure:"max_tokens"`
	Timeout         time.Duration `mapstructure:"timeout"`
	// MaxConcurrent caps simultaneous generator calls across all jobs.
	MaxConcurrent int `mapstructure:"max_concurrent"`
}

// FetchConfig configures source fetching and extraction.
type FetchConfig struct {
	Engine   string        `mapstructure:"engine"` // http or chromedp
	Timeout  time.Duration `mapstructure:"timeout"`
	MaxChars int           `mapstructure:"max_chars"`
	Cache    CacheConfig   `mapstructure:"cache"`
}

// CacheConfig configures the optional Redis source-text cache.
type CacheConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	TTL      time.Duration `mapstructure:"ttl"`
}

// WorkerConfig sizes the background job pool.
type WorkerConfig struct {
	Workers   int `mapstructure:"workers"`
	QueueSize int `mapstructure:"queue_size"`
}

// StorageConfig contains persistence settings.
type StorageConfig struct {
	Postgres PostgresConfig `mapstructure:"postgres"`
}

// PostgresConfig contains Postgres connection settings.
type PostgresConfig struct {
	URL      string `mapstructure:"url"`
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DBName   string `mapstructure:"dbname"`
	SSLMode  string `mapstructure:"sslmode"`
}

// DSN builds a postgres URL from the configured fields. URL wins when set.
func (p PostgresConfig) DSN() (string, error) {
	if p.URL != "" {
		return p.URL, nil
	}
	if p.Host == "" || p.DBName == "" {
		return "", fmt.Errorf("postgres not configured (storage.postgres.host/dbname or url)")
	}
	port := p.Port
	if port == "" {
		port = "5432"
	}
	ssl := p.SSLMode
	if ssl == "" {
		ssl = "disable"
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s", p.User, p.Password, p.Host, port, p.DBName, ssl), nil
}

// SMTPConfig contains mail delivery settings.
type SMTPConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
}

func (w WorkerConfig) Validate() error {
	if w.Workers <= 0 {
		return fmt.Errorf("worker.workers must be > 0")
	}
	if w.QueueSize < 0 {
		return fmt.Errorf("worker.queue_size must be >= 0")
	}
	return nil
}

func (l LLMConfig) Validate() error {
	if l.MaxConcurrent <= 0 {
		return fmt.Errorf("llm.max_concurrent must be > 0")
	}
	return nil
}

// LoadConfig reads configuration from the given file (or config.yaml on the
// search path) with CRISIS_* environment overrides.
func LoadConfig(path string) *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetDefault("general.debug", false)
	viper.SetDefault("general.log_level", "info")
	viper.SetDefault("general.test_mode", false)
	viper.SetDefault("server.address", ":8080")
	viper.SetDefault("llm.provider", "openai")
	viper.SetDefault("llm.completion_model", "gpt-4o-mini")
	viper.SetDefault("llm.temperature", 0.2)
	viper.SetDefault("llm.top_p", 0.8)
	viper.SetDefault("llm.max_tokens", 4000)
	viper.SetDefault("llm.timeout", 120*time.Second)
	viper.SetDefault("llm.max_concurrent", 2)
	viper.SetDefault("fetch.engine", "http")
	viper.SetDefault("fetch.timeout", 10*time.Second)
	viper.SetDefault("fetch.max_chars", 20000)
	viper.SetDefault("fetch.cache.enabled", false)
	viper.SetDefault("fetch.cache.ttl", 48*time.Hour)
	viper.SetDefault("worker.workers", 4)
	viper.SetDefault("worker.queue_size", 64)
	viper.SetDefault("storage.postgres.sslmode", "disable")
	viper.SetDefault("smtp.port", 587)

	if path == "" {
		viper.AddConfigPath("./config")
		viper.AddConfigPath(".")
	} else {
		viper.SetConfigFile(path)
	}

	viper.SetEnvPrefix("CRISIS")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// config file is optional; env and defaults are enough to run
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			panic(fmt.Errorf("fatal error config file: %w", err))
		}
	}

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		panic(fmt.Errorf("fatal error config file: %w", err))
	}

	if err := config.Worker.Validate(); err != nil {
		panic(err)
	}
	if err := config.LLM.Validate(); err != nil {
		panic(err)
	}

	return &config
}
