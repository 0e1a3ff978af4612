package main

import (
	"time"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/konigunited/restdelbot/internal/ratelimiter"
)

type config struct {
	addr        string
	env         string
	apiURL      string
	rateLimiter ratelimiter.Config
	mongo       mongoConfig
	rabbitMQ    rabbitMQConfig
	redis       redisConfig
	catalog     catalogConfig
	googleCreds string
	llm         llmConfig
	outputDir   string
}

type mongoConfig struct {
	URI      string
	Database string
	Timeout  time.Duration
}

// rabbitMQConfig with an empty URL selects the in-process broker.
type rabbitMQConfig struct {
	URL           string
	MaxRetries    int
	RetryDelay    time.Duration
	PrefetchCount int
}

// redisConfig with an empty Addr keeps sessions in memory.
type redisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

type catalogConfig struct {
	dir           string
	spreadsheetID string
	readRange     string
}

type llmConfig struct {
	enabled   bool
	apiKey    string
	model     string
	baseURL   string
	maxTokens int
	timeout   time.Duration
}

// validate reports the first required secret that is missing.
func (c config) validate() error {
	if c.llm.enabled && c.llm.apiKey == "" {
		return &domain.ConfigurationError{Key: "LLM_API_KEY", Reason: "required when LLM_ENABLED is true"}
	}
	if c.catalog.spreadsheetID != "" && c.googleCreds == "" {
		return &domain.ConfigurationError{Key: "GOOGLE_CREDENTIALS_PATH", Reason: "required when CATALOG_SPREADSHEET_ID is set"}
	}
	if c.mongo.URI == "" {
		return &domain.ConfigurationError{Key: "MONGO_URI", Reason: "required"}
	}
	return nil
}
