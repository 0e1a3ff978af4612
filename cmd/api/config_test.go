package main

import (
	"testing"

	"github.com/konigunited/restdelbot/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigValidate(t *testing.T) {
	base := config{mongo: mongoConfig{URI: "mongodb://localhost:27017"}}

	tests := []struct {
		name    string
		mutate  func(c *config)
		wantKey string
	}{
		{"defaults", func(*config) {}, ""},
		{"llm without key", func(c *config) { c.llm.enabled = true }, "LLM_API_KEY"},
		{"llm with key", func(c *config) { c.llm.enabled = true; c.llm.apiKey = "k" }, ""},
		{"sheet without credentials", func(c *config) { c.catalog.spreadsheetID = "sheet" }, "GOOGLE_CREDENTIALS_PATH"},
		{"sheet with credentials", func(c *config) { c.catalog.spreadsheetID = "sheet"; c.googleCreds = "/creds.json" }, ""},
		{"no mongo", func(c *config) { c.mongo.URI = "" }, "MONGO_URI"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := base
			tt.mutate(&cfg)

			err := cfg.validate()
			if tt.wantKey == "" {
				assert.NoError(t, err)
				return
			}

			var cfgErr *domain.ConfigurationError
			require.ErrorAs(t, err, &cfgErr)
			assert.Equal(t, tt.wantKey, cfgErr.Key)
		})
	}
}
