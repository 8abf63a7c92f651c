package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	// Naver Open API credentials
	NaverClientID     string
	NaverClientSecret string

	// HTTP server settings
	ListenAddr     string
	AllowedOrigins []string

	// Search defaults and caps
	MaxResultsCap  int // upper bound on max_results per request
	DefaultResults int
	DefaultDays    int
	DefaultSort    string // "date" or "sim"

	// Crawling settings
	RequestTimeout time.Duration
	RequestDelay   time.Duration // pause between Naver API / page fetches
	MinArticleLen  int           // minimum extracted article body length

	// Summarizer / sentiment settings
	DefaultModelMode string // "openai" | "kosum-v1-fast" | "kosum-v1-tuned"
	OpenAIAPIKey     string // server-side fallback key (per-request key wins)
	GeminiAPIKey     string
	MaxAIRequests    int // daily budget per AI service (0 = unlimited)

	// Session settings
	SessionTTL time.Duration

	// App settings
	Debug bool
}

// fileConfig mirrors the optional configs/app.yaml overrides.
type fileConfig struct {
	ListenAddr     string   `yaml:"listen_addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	MaxResultsCap  int      `yaml:"max_results_cap"`
	DefaultResults int      `yaml:"default_results"`
	DefaultDays    int      `yaml:"default_days"`
	DefaultSort    string   `yaml:"default_sort"`
	RequestDelayMS int      `yaml:"request_delay_ms"`
	MinArticleLen  int      `yaml:"min_article_len"`
	DefaultMode    string   `yaml:"default_model_mode"`
	SessionTTLHrs  int      `yaml:"session_ttl_hours"`
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		ListenAddr:       ":8000",
		AllowedOrigins:   []string{"http://localhost:3000", "http://localhost:8000"},
		MaxResultsCap:    5,
		DefaultResults:   10,
		DefaultDays:      1,
		DefaultSort:      "date",
		RequestTimeout:   30 * time.Second,
		RequestDelay:     200 * time.Millisecond,
		MinArticleLen:    50,
		DefaultModelMode: "openai",
		MaxAIRequests:    0,
		SessionTTL:       24 * time.Hour,
	}

	if path := getEnvOrDefault("APP_CONFIG_PATH", "configs/app.yaml"); path != "" {
		if err := cfg.applyFile(path); err != nil {
			return nil, err
		}
	}

	// Environment wins over file values
	cfg.NaverClientID = os.Getenv("NAVER_CLIENT_ID")
	cfg.NaverClientSecret = os.Getenv("NAVER_CLIENT_SECRET")
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")

	if addr := os.Getenv("LISTEN_ADDR"); addr != "" {
		cfg.ListenAddr = addr
	}
	if origins := os.Getenv("ALLOWED_ORIGINS"); origins != "" {
		parts := strings.Split(origins, ",")
		cfg.AllowedOrigins = cfg.AllowedOrigins[:0]
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				cfg.AllowedOrigins = append(cfg.AllowedOrigins, p)
			}
		}
	}
	if v := os.Getenv("MAX_RESULTS_CAP"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxResultsCap = val
		}
	}
	if v := os.Getenv("DEFAULT_DAYS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.DefaultDays = val
		}
	}
	if v := os.Getenv("REQUEST_DELAY_MS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.RequestDelay = time.Duration(val) * time.Millisecond
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT_SEC"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RequestTimeout = time.Duration(val) * time.Second
		}
	}
	if mode := os.Getenv("DEFAULT_MODEL_MODE"); mode != "" {
		cfg.DefaultModelMode = mode
	}
	if v := os.Getenv("MAX_AI_REQUESTS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.MaxAIRequests = val
		}
	}
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.SessionTTL = time.Duration(val) * time.Hour
		}
	}
	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

// applyFile merges configs/app.yaml on top of defaults. A missing file is not an error.
func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("read config file %s: %w", path, err)
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}

	if fc.ListenAddr != "" {
		c.ListenAddr = fc.ListenAddr
	}
	if len(fc.AllowedOrigins) > 0 {
		c.AllowedOrigins = fc.AllowedOrigins
	}
	if fc.MaxResultsCap > 0 {
		c.MaxResultsCap = fc.MaxResultsCap
	}
	if fc.DefaultResults > 0 {
		c.DefaultResults = fc.DefaultResults
	}
	if fc.DefaultDays > 0 {
		c.DefaultDays = fc.DefaultDays
	}
	if fc.DefaultSort != "" {
		c.DefaultSort = fc.DefaultSort
	}
	if fc.RequestDelayMS > 0 {
		c.RequestDelay = time.Duration(fc.RequestDelayMS) * time.Millisecond
	}
	if fc.MinArticleLen > 0 {
		c.MinArticleLen = fc.MinArticleLen
	}
	if fc.DefaultMode != "" {
		c.DefaultModelMode = fc.DefaultMode
	}
	if fc.SessionTTLHrs > 0 {
		c.SessionTTL = time.Duration(fc.SessionTTLHrs) * time.Hour
	}
	return nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.DefaultSort != "date" && c.DefaultSort != "sim" {
		return fmt.Errorf("DEFAULT_SORT must be 'date' or 'sim'")
	}
	switch c.DefaultModelMode {
	case "openai", "kosum-v1-fast", "kosum-v1-tuned":
	default:
		return fmt.Errorf("DEFAULT_MODEL_MODE must be 'openai', 'kosum-v1-fast' or 'kosum-v1-tuned'")
	}
	if c.MaxResultsCap <= 0 {
		return fmt.Errorf("MAX_RESULTS_CAP must be positive")
	}
	return nil
}
