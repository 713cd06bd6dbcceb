// internal/tools/churn-lookup/handler.go
package churnlookup

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/ajithmanmu/customer-retention-agent/internal/common/errors"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/logger"
	"github.com/ajithmanmu/customer-retention-agent/internal/models"
)

const ToolName = "churn-data-query"

// customerIDPattern also guards the Athena engine, which inlines the ID into
// its query text.
var customerIDPattern = regexp.MustCompile(`^[A-Za-z0-9-]{1,64}$`)

type Handler struct {
	config *Config
	engine QueryEngine
	logger logger.Logger
}

func NewHandler(config *Config, engine QueryEngine, log logger.Logger) *Handler {
	return &Handler{
		config: config,
		engine: engine,
		logger: log.WithFields(map[string]interface{}{"tool": ToolName}),
	}
}

// Execute looks up one customer in the churn analytic view and derives the
// risk assessment. A missing customer is a valid empty result, not an error.
func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	if input == nil || strings.TrimSpace(input.CustomerID) == "" {
		return nil, errors.NewInvalidArgumentError("customer_id", "customer ID is required")
	}

	customerID := strings.TrimSpace(input.CustomerID)
	if !customerIDPattern.MatchString(customerID) {
		return nil, errors.NewInvalidArgumentError("customer_id", "customer ID may only contain letters, digits and hyphens (max 64)")
	}

	record, err := h.engine.LookupCustomer(ctx, customerID)
	if err != nil {
		h.logger.WithError(err).Error("churn lookup engine failed", map[string]interface{}{
			"customerId": customerID,
		})
		return nil, errors.NewUpstreamUnavailableError("churn-engine", err)
	}

	if record == nil {
		h.logger.Info("customer not found", map[string]interface{}{
			"customerId": customerID,
		})
		return &Output{
			CustomerID: customerID,
			ChurnData: models.ChurnData{
				Found:   false,
				Message: fmt.Sprintf("No data found for customer ID: %s", customerID),
			},
			Source: ToolName,
		}, nil
	}

	churnData := buildChurnData(record)

	h.logger.Info("churn data resolved", map[string]interface{}{
		"customerId": customerID,
		"riskLevel":  churnData.ChurnAnalysis.RiskLevel,
		"riskScore":  churnData.ChurnAnalysis.ChurnRiskScore,
	})

	return &Output{
		CustomerID: customerID,
		ChurnData:  churnData,
		Source:     ToolName,
	}, nil
}

// buildChurnData assembles the response envelope from a view row: tier the
// risk score, flag the known churn drivers, and attach follow-up actions.
func buildChurnData(rec *CustomerRecord) models.ChurnData {
	riskFactors := keyRiskFactors(rec)

	return models.ChurnData{
		Found: true,
		ChurnAnalysis: &models.ChurnAnalysis{
			ChurnStatus:    rec.Churn,
			ChurnRiskScore: rec.ChurnRiskScore,
			RiskLevel:      string(models.RiskLevelFromScore(rec.ChurnRiskScore)),
			CancelIntent:   rec.CancelIntent,
		},
		CustomerProfile: &models.CustomerProfile{
			TenureMonths:     rec.Tenure,
			ContractType:     rec.Contract,
			MonthlyCharges:   rec.MonthlyCharges,
			TotalCharges:     rec.TotalCharges,
			PaymentMethod:    rec.PaymentMethod,
			PaperlessBilling: rec.PaperlessBilling,
			Services: models.ServiceFlags{
				PhoneService:    rec.PhoneService,
				InternetService: rec.InternetService,
				OnlineSecurity:  rec.OnlineSecurity,
				TechSupport:     rec.TechSupport,
				StreamingTV:     rec.StreamingTV,
				StreamingMovies: rec.StreamingMovies,
			},
		},
		RetentionInsights: &models.RetentionInsights{
			KeyRiskFactors:  riskFactors,
			Recommendations: recommendations(riskFactors),
		},
	}
}

const (
	factorMonthToMonth   = "Month-to-month contract"
	factorLowTenure      = "Low tenure (≤3 months)"
	factorNoSecurity     = "No online security"
	factorNoTechSupport  = "No tech support"
	factorHighMonthlyFee = "High monthly charges"
)

func keyRiskFactors(rec *CustomerRecord) []string {
	factors := []string{}
	if rec.Contract == "Month-to-month" {
		factors = append(factors, factorMonthToMonth)
	}
	if rec.Tenure <= 3 {
		factors = append(factors, factorLowTenure)
	}
	if rec.OnlineSecurity == "No" {
		factors = append(factors, factorNoSecurity)
	}
	if rec.TechSupport == "No" {
		factors = append(factors, factorNoTechSupport)
	}
	if rec.MonthlyCharges > 80 {
		factors = append(factors, factorHighMonthlyFee)
	}
	return factors
}

func recommendations(factors []string) []string {
	recs := []string{}
	for _, f := range factors {
		switch f {
		case factorMonthToMonth:
			recs = append(recs, "Offer annual contract discount")
		case factorLowTenure:
			recs = append(recs, "Provide onboarding support and welcome offers")
		case factorNoSecurity:
			recs = append(recs, "Promote online security add-on")
		case factorHighMonthlyFee:
			recs = append(recs, "Review service bundle and offer discounts")
		}
	}
	return recs
}
