// internal/tools/web-search/handler.go
package websearch

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"

	"github.com/ajithmanmu/customer-retention-agent/internal/common/errors"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/httpclient"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/logger"
	"github.com/ajithmanmu/customer-retention-agent/internal/models"
)

const ToolName = "web-search"

var whitespacePattern = regexp.MustCompile(`\s+`)

type Handler struct {
	config *Config
	client *httpclient.Client
	logger logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	cfg := config.normalized()
	return &Handler{
		config: cfg,
		client: httpclient.NewClient(cfg.Timeout),
		logger: log.WithFields(map[string]interface{}{"tool": ToolName}),
	}
}

// Execute runs one search against the upstream provider and normalizes the
// hits. The adapter never retries; the caller decides what a failed search
// is worth.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || strings.TrimSpace(input.Query) == "" {
		return nil, errors.NewInvalidArgumentError("query", "search query is required")
	}

	query := whitespacePattern.ReplaceAllString(strings.TrimSpace(input.Query), " ")

	region := input.Region
	if region == "" {
		region = h.config.DefaultRegion
	}

	limit := input.MaxResults
	if limit <= 0 {
		limit = h.config.MaxResults
	}
	if limit > maxResultsCap {
		limit = maxResultsCap
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.buildSearchURL(query, region, limit), nil)
	if err != nil {
		return nil, errors.NewUpstreamUnavailableError(ToolName, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		h.logger.WithError(err).Error("search request failed", map[string]interface{}{
			"query": query,
		})
		return nil, errors.NewUpstreamUnavailableError(ToolName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		h.logger.Error("search provider returned non-200", map[string]interface{}{
			"query":  query,
			"status": resp.StatusCode,
		})
		return nil, errors.NewUpstreamUnavailableError(ToolName, fmt.Errorf("search API returned %d", resp.StatusCode))
	}

	var apiResponse struct {
		Items []struct {
			Link    string `json:"link"`
			Title   string `json:"title"`
			Snippet string `json:"snippet"`
			Mime    string `json:"mime"`
		} `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&apiResponse); err != nil {
		return nil, errors.NewUpstreamUnavailableError(ToolName, fmt.Errorf("decode search response: %w", err))
	}

	results := make([]models.SearchResult, 0, len(apiResponse.Items))
	seen := make(map[string]bool)
	for _, item := range apiResponse.Items {
		// Skip non-HTML
		if item.Mime != "" && !strings.Contains(item.Mime, "html") {
			continue
		}
		// Dedupe by URL
		if item.Link == "" || seen[item.Link] {
			continue
		}
		seen[item.Link] = true

		results = append(results, models.SearchResult{
			Title:   item.Title,
			URL:     item.Link,
			Snippet: item.Snippet,
			Source:  ToolName,
		})
		if len(results) >= limit {
			break
		}
	}

	h.logger.Info("web search completed", map[string]interface{}{
		"query":       query,
		"region":      region,
		"resultCount": len(results),
	})

	return &Output{
		Query:        query,
		Region:       region,
		Results:      results,
		TotalResults: len(results),
		Source:       ToolName,
	}, nil
}

func (h *Handler) buildSearchURL(query, region string, limit int) string {
	baseURL, _ := url.Parse(h.config.BaseURL)
	params := url.Values{}
	params.Add("key", h.config.APIKey)
	params.Add("cx", h.config.EngineID)
	params.Add("q", query)
	params.Add("gl", region)
	params.Add("num", fmt.Sprintf("%d", limit))
	baseURL.RawQuery = params.Encode()
	return baseURL.String()
}
