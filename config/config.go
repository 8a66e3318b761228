package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrNoAPIKey indicates no API credential was found in any source.
var ErrNoAPIKey = errors.New("OPENAI_API_KEY is required")

// Defaults. Model and tuning values follow the assistant's published
// defaults; FallbackModel is the cheaper tier used when the primary is
// unavailable.
const (
	DefaultModel         = "gpt-4o"
	FallbackModel        = "gpt-3.5-turbo"
	DefaultTemperature   = 0.1
	DefaultMaxTokens     = 2000
	DefaultMaxRetries    = 3
	DefaultMaxConcurrent = 4
	DefaultTimeout       = 30 * time.Second

	// DefaultApprovalTimeout bounds the interactive approval gate;
	// expiry resolves to rejected.
	DefaultApprovalTimeout = 120 * time.Second
)

// Config holds all reviewflow settings.
type Config struct {
	// APIKey authenticates against the generation service.
	APIKey string `yaml:"-"`

	// BaseURL overrides the generation service endpoint (for proxies
	// and test servers).
	BaseURL string `yaml:"base_url"`

	// Model is the generation model for all workflow steps.
	Model string `yaml:"model"`

	// Temperature is the sampling temperature.
	Temperature float64 `yaml:"temperature"`

	// MaxTokens caps each completion response.
	MaxTokens int `yaml:"max_tokens"`

	// MaxRetries bounds the review -> generation feedback cycle.
	MaxRetries int `yaml:"max_retries"`

	// Interactive enables the human approval gate.
	Interactive bool `yaml:"interactive"`

	// ApprovalTimeout bounds how long an interactive run waits for the
	// approval decision before resolving to rejected.
	ApprovalTimeout time.Duration `yaml:"approval_timeout"`

	// MaxConcurrent caps in-flight generation calls per process.
	MaxConcurrent int `yaml:"max_concurrent"`

	// Timeout is the per-run deadline. Zero means no deadline.
	Timeout time.Duration `yaml:"timeout"`

	// CheckpointPath is the SQLite checkpoint database. Empty selects
	// the default under the user config directory.
	CheckpointPath string `yaml:"checkpoint_path"`

	// WebhookURL, when set, receives run completion notifications.
	WebhookURL string `yaml:"webhook_url"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Model:           DefaultModel,
		Temperature:     DefaultTemperature,
		MaxTokens:       DefaultMaxTokens,
		MaxRetries:      DefaultMaxRetries,
		ApprovalTimeout: DefaultApprovalTimeout,
		MaxConcurrent:   DefaultMaxConcurrent,
		Timeout:         DefaultTimeout,
	}
}

// Load resolves configuration from defaults, the user config file, and
// the environment. A missing config file is not an error.
func Load() (Config, error) {
	cfg := Default()

	if path := configFilePath(); path != "" {
		if err := loadFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)

	if cfg.CheckpointPath == "" {
		cfg.CheckpointPath = defaultCheckpointPath()
	}
	return cfg, nil
}

// Validate checks that the config can drive a run.
func (c Config) Validate() error {
	if c.APIKey == "" {
		return ErrNoAPIKey
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max_retries must be >= 0, got %d", c.MaxRetries)
	}
	return nil
}

func configFilePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "reviewflow", "config.yaml")
}

func defaultCheckpointPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "reviewflow.db"
	}
	return filepath.Join(home, ".config", "reviewflow", "runs.db")
}

// loadFile merges a YAML config file into cfg. Missing files are skipped.
func loadFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}
	return nil
}

// applyEnv overlays environment variables onto cfg.
func applyEnv(cfg *Config) {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	// REVIEWFLOW_MODEL wins over the legacy OPENAI_MODEL.
	if v := os.Getenv("OPENAI_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("REVIEWFLOW_MODEL"); v != "" {
		cfg.Model = v
	}
	if os.Getenv("ALLOW_HUMAN_INPUT") == "1" {
		cfg.Interactive = true
	}
	if v := os.Getenv("REVIEWFLOW_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxRetries = n
		}
	}
	if v := os.Getenv("REVIEWFLOW_MAX_CONCURRENT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.MaxConcurrent = n
		}
	}
	if v := os.Getenv("REVIEWFLOW_CHECKPOINT_PATH"); v != "" {
		cfg.CheckpointPath = v
	}
	if v := os.Getenv("REVIEWFLOW_WEBHOOK_URL"); v != "" {
		cfg.WebhookURL = v
	}
	if v := os.Getenv("REVIEWFLOW_TIMEOUT_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Timeout = time.Duration(n) * time.Second
		}
	}
}
