// internal/tools/retention-offer/models.go
package retentionoffer

import "github.com/ajithmanmu/customer-retention-agent/internal/models"

type Input struct {
	CustomerID string            `json:"customer_id"`
	ChurnData  *models.ChurnData `json:"churn_data"`
}

type Output struct {
	CustomerID      string          `json:"customer_id"`
	RetentionOffers RetentionOffers `json:"retention_offers"`
}

type RetentionOffers struct {
	RiskLevel         models.RiskLevel `json:"risk_level,omitempty"`
	Offers            []models.Offer   `json:"offers"`
	TotalOffers       int              `json:"total_offers"`
	RecommendedAction string           `json:"recommended_action"`
}
