// internal/tools/web-search/config.go
package websearch

import "time"

const (
	defaultMaxResults = 5
	maxResultsCap     = 10
	defaultRegion     = "us-en"
)

type Config struct {
	BaseURL       string
	APIKey        string
	EngineID      string
	Timeout       time.Duration
	DefaultRegion string
	MaxResults    int
}

func (c *Config) normalized() *Config {
	out := *c
	if out.DefaultRegion == "" {
		out.DefaultRegion = defaultRegion
	}
	if out.MaxResults <= 0 {
		out.MaxResults = defaultMaxResults
	}
	if out.MaxResults > maxResultsCap {
		out.MaxResults = maxResultsCap
	}
	if out.Timeout <= 0 {
		out.Timeout = 10 * time.Second
	}
	return &out
}
