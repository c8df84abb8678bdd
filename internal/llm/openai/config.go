package openai

import (
	"log/slog"
	"net/http"
	"time"
)

// Config for the OpenAI-compatible extraction client. Values arrive from the
// application config; nothing here reads the environment.
type Config struct {
	APIKey      string
	BaseURL     string        // e.g. https://api.groq.com/openai/v1
	Model       string        // e.g. "llama3-8b-8192"
	Temperature float32       // 0 for deterministic extraction
	Timeout     time.Duration // http client timeout; bounds a hung remote call
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *slog.Logger
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.groq.com/openai/v1"
	}
	if cfg.Model == "" {
		cfg.Model = "llama3-8b-8192"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		log:  logger,
	}
}
