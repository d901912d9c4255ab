package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"netki/pkg/netki"
)

func envFrom(values map[string]string) func(string) string {
	return func(key string) string { return values[key] }
}

func TestFromLookup(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		cfg := fromLookup(envFrom(nil))

		assert.Equal(t, netki.DefaultAPIURL, cfg.APIURL)
		assert.Empty(t, cfg.APIKey)
		assert.Empty(t, cfg.PartnerID)
		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, 1, cfg.DomainConcurrency)
		assert.Equal(t, "info", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
	})

	t.Run("explicit values", func(t *testing.T) {
		cfg := fromLookup(envFrom(map[string]string{
			"NETKI_API_URL":            "http://localhost:5000/",
			"NETKI_API_KEY":            "key",
			"NETKI_PARTNER_ID":         "partner",
			"NETKI_TIMEOUT":            "5s",
			"NETKI_DOMAIN_CONCURRENCY": "4",
			"NETKI_LOG_LEVEL":          "debug",
			"NETKI_LOG_FORMAT":         "json",
		}))

		assert.Equal(t, "http://localhost:5000", cfg.APIURL)
		assert.Equal(t, "key", cfg.APIKey)
		assert.Equal(t, "partner", cfg.PartnerID)
		assert.Equal(t, 5*time.Second, cfg.Timeout)
		assert.Equal(t, 4, cfg.DomainConcurrency)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})

	t.Run("invalid numbers fall back", func(t *testing.T) {
		cfg := fromLookup(envFrom(map[string]string{
			"NETKI_TIMEOUT":            "soon",
			"NETKI_DOMAIN_CONCURRENCY": "-2",
		}))

		assert.Equal(t, 30*time.Second, cfg.Timeout)
		assert.Equal(t, 1, cfg.DomainConcurrency)
	})
}

func TestFromEnv(t *testing.T) {
	t.Setenv("NETKI_API_KEY", "from-env")
	cfg := FromEnv()
	assert.Equal(t, "from-env", cfg.APIKey)
}
