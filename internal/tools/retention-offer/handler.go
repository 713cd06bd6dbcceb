// internal/tools/retention-offer/handler.go
package retentionoffer

import (
	"context"
	"sort"
	"strings"

	"github.com/ajithmanmu/customer-retention-agent/internal/catalog"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/errors"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/logger"
	"github.com/ajithmanmu/customer-retention-agent/internal/models"
)

const (
	ToolName = "retention-offer"

	actionInsufficientData = "insufficient data"
	actionHighRisk         = "present discount offers immediately"
	actionMediumRisk       = "present mixed offers - customer shows moderate churn risk"
	actionLowRisk          = "present service upgrades - customer is stable but could benefit from additional services"
)

type Handler struct {
	config  *Config
	catalog *catalog.Catalog
	logger  logger.Logger
}

func NewHandler(config *Config, cat *catalog.Catalog, log logger.Logger) *Handler {
	return &Handler{
		config:  config,
		catalog: cat,
		logger:  log.WithFields(map[string]interface{}{"tool": ToolName}),
	}
}

// Execute selects and ranks retention offers for one customer. Selection is a
// pure function of (risk_level, cancel_intent); the same input always yields
// the same offers in the same order.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || strings.TrimSpace(input.CustomerID) == "" {
		return nil, errors.NewInvalidArgumentError("customer_id", "customer ID is required")
	}
	if input.ChurnData == nil {
		return nil, errors.NewInvalidArgumentError("churn_data", "churn data is required")
	}

	customerID := strings.TrimSpace(input.CustomerID)

	assessment, err := assessmentFromWire(customerID, input.ChurnData)
	if err != nil {
		return nil, err
	}

	bundle, err := h.selectOffers(assessment)
	if err != nil {
		return nil, err
	}

	h.logger.Info("retention offers selected", map[string]interface{}{
		"customerId": customerID,
		"riskLevel":  string(bundle.RiskLevel),
		"offerCount": len(bundle.Offers),
	})

	return &Output{
		CustomerID: customerID,
		RetentionOffers: RetentionOffers{
			RiskLevel:         bundle.RiskLevel,
			Offers:            bundle.Offers,
			TotalOffers:       len(bundle.Offers),
			RecommendedAction: bundle.RecommendedAction,
		},
	}, nil
}

// assessmentFromWire validates the loosely-typed churn_data block into a
// ChurnAssessment. An unrecognized risk level on a found record is an
// upstream contract violation and fails the request.
func assessmentFromWire(customerID string, data *models.ChurnData) (*models.ChurnAssessment, error) {
	assessment := &models.ChurnAssessment{
		CustomerID: customerID,
		Found:      data.Found && data.ChurnAnalysis != nil,
	}
	if !assessment.Found {
		return assessment, nil
	}

	level, err := models.ParseRiskLevel(data.ChurnAnalysis.RiskLevel)
	if err != nil {
		return nil, err
	}

	assessment.RiskLevel = level
	assessment.RiskScore = data.ChurnAnalysis.ChurnRiskScore
	assessment.CancelIntent = data.ChurnAnalysis.CancelIntent

	if profile := data.CustomerProfile; profile != nil {
		assessment.TenureMonths = profile.TenureMonths
		assessment.ContractType = profile.ContractType
		assessment.MonthlyCharges = profile.MonthlyCharges
	}

	return assessment, nil
}

func (h *Handler) selectOffers(assessment *models.ChurnAssessment) (*models.OfferBundle, error) {
	// Never guess a tier for an unknown customer.
	if !assessment.Found {
		return &models.OfferBundle{
			CustomerID:        assessment.CustomerID,
			Offers:            []models.Offer{},
			RecommendedAction: actionInsufficientData,
		}, nil
	}

	offers := h.catalog.OffersFor(assessment.RiskLevel)
	if offers == nil {
		return nil, errors.NewConfigurationError("no offer set for risk_level " + string(assessment.RiskLevel))
	}

	// Cancel intent upgrades urgency at any tier.
	if assessment.CancelIntent {
		for i := range offers {
			offers[i].Urgency = models.UrgencyImmediate
		}
	}

	rankOffers(offers, assessment.CancelIntent)

	// Stable customers get at most two soft offers; at-risk tiers may carry
	// a third.
	limit := h.config.MaxOffers
	if assessment.RiskLevel == models.RiskLevelLow {
		limit = h.config.MaxLowOffers
	}
	if len(offers) > limit {
		offers = offers[:limit]
	}

	action, err := recommendedAction(assessment.RiskLevel)
	if err != nil {
		return nil, err
	}

	return &models.OfferBundle{
		CustomerID:        assessment.CustomerID,
		RiskLevel:         assessment.RiskLevel,
		Offers:            offers,
		RecommendedAction: action,
	}, nil
}

// rankOffers orders by descending discount percentage with no-discount offers
// last. Cancel intent additionally pins discount coupons ahead of everything
// else. The sort is stable, so equal offers keep catalog definition order.
func rankOffers(offers []models.Offer, cancelIntent bool) {
	sort.SliceStable(offers, func(i, j int) bool {
		if cancelIntent {
			iCoupon := offers[i].OfferType == models.OfferTypeDiscountCoupon
			jCoupon := offers[j].OfferType == models.OfferTypeDiscountCoupon
			if iCoupon != jCoupon {
				return iCoupon
			}
		}
		return offers[i].DiscountPercentage > offers[j].DiscountPercentage
	})
}

// recommendedAction never defaults a tier; anything unrecognized here slipped
// past validation and fails the request.
func recommendedAction(level models.RiskLevel) (string, error) {
	switch level {
	case models.RiskLevelHigh:
		return actionHighRisk, nil
	case models.RiskLevelMedium:
		return actionMediumRisk, nil
	case models.RiskLevelLow:
		return actionLowRisk, nil
	default:
		return "", errors.NewConfigurationError("no recommended action for risk_level " + string(level))
	}
}
