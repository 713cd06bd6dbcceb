// internal/tools/web-search/models.go
package websearch

import "github.com/ajithmanmu/customer-retention-agent/internal/models"

type Input struct {
	Query      string `json:"query"`
	Region     string `json:"region,omitempty"`
	MaxResults int    `json:"max_results,omitempty"`
}

type Output struct {
	Query        string                `json:"query"`
	Region       string                `json:"region"`
	Results      []models.SearchResult `json:"results"`
	TotalResults int                   `json:"total_results"`
	Source       string                `json:"source"`
}
