package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"netki/pkg/netki"
)

// Client captures everything needed to talk to the partner API.
type Client struct {
	APIURL    string
	APIKey    string
	PartnerID string
	Timeout   time.Duration
	// DomainConcurrency bounds the per-domain enrichment fan-out of
	// GetDomains. 1 keeps it sequential.
	DomainConcurrency int
	LogLevel          string
	LogFormat         string
}

// FromEnv builds a Client config from environment variables so main stays lean.
// Invalid numeric or duration values fall back to their defaults.
func FromEnv() Client {
	return fromLookup(os.Getenv)
}

func fromLookup(getenv func(string) string) Client {
	apiURL := strings.TrimRight(getenv("NETKI_API_URL"), "/")
	if apiURL == "" {
		apiURL = netki.DefaultAPIURL
	}

	timeout := 30 * time.Second
	if v := getenv("NETKI_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			timeout = d
		}
	}

	concurrency := 1
	if v := getenv("NETKI_DOMAIN_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			concurrency = n
		}
	}

	logLevel := getenv("NETKI_LOG_LEVEL")
	if logLevel == "" {
		logLevel = "info"
	}

	logFormat := getenv("NETKI_LOG_FORMAT")
	if logFormat == "" {
		logFormat = "text"
	}

	return Client{
		APIURL:            apiURL,
		APIKey:            getenv("NETKI_API_KEY"),
		PartnerID:         getenv("NETKI_PARTNER_ID"),
		Timeout:           timeout,
		DomainConcurrency: concurrency,
		LogLevel:          logLevel,
		LogFormat:         logFormat,
	}
}
