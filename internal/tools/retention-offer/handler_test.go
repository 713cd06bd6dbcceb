// internal/tools/retention-offer/handler_test.go
package retentionoffer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajithmanmu/customer-retention-agent/internal/catalog"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/errors"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/logger"
	"github.com/ajithmanmu/customer-retention-agent/internal/models"
)

// ==========================
// Test Helpers
// ==========================

func newTestHandler(t *testing.T) *Handler {
	t.Helper()
	cat, err := catalog.Default()
	require.NoError(t, err)
	return NewHandler(LoadConfig(), cat, logger.NewTestLogger(t))
}

func churnData(level string, cancelIntent bool) *models.ChurnData {
	return &models.ChurnData{
		Found: true,
		ChurnAnalysis: &models.ChurnAnalysis{
			ChurnStatus:    "Yes",
			ChurnRiskScore: 0.75,
			RiskLevel:      level,
			CancelIntent:   cancelIntent,
		},
	}
}

// ==========================
// Validation
// ==========================

func TestExecute_MissingCustomerID(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{CustomerID: "  ", ChurnData: churnData("HIGH", false)})

	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestExecute_MissingChurnData(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{CustomerID: "7590-VHVEG"})

	require.Error(t, err)
	assert.True(t, errors.IsInvalidArgument(err))
}

func TestExecute_UnknownRiskLevel(t *testing.T) {
	h := newTestHandler(t)

	_, err := h.Execute(context.Background(), &Input{
		CustomerID: "7590-VHVEG",
		ChurnData:  churnData("CRITICAL", false),
	})

	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}

// ==========================
// Selection
// ==========================

func TestExecute_CustomerNotFound(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		CustomerID: "0000-NOONE",
		ChurnData:  &models.ChurnData{Found: false, Message: "No data found for customer ID: 0000-NOONE"},
	})

	require.NoError(t, err)
	assert.Empty(t, out.RetentionOffers.Offers)
	assert.Zero(t, out.RetentionOffers.TotalOffers)
	assert.Equal(t, "insufficient data", out.RetentionOffers.RecommendedAction)
	assert.Empty(t, out.RetentionOffers.RiskLevel)
}

func TestExecute_HighRisk(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		CustomerID: "7590-VHVEG",
		ChurnData:  churnData("HIGH", false),
	})

	require.NoError(t, err)
	assert.Equal(t, models.RiskLevelHigh, out.RetentionOffers.RiskLevel)
	require.NotEmpty(t, out.RetentionOffers.Offers)
	for _, o := range out.RetentionOffers.Offers {
		assert.Equal(t, models.OfferTypeDiscountCoupon, o.OfferType)
		assert.Equal(t, models.UrgencyImmediate, o.Urgency)
	}
	assert.Equal(t, "present discount offers immediately", out.RetentionOffers.RecommendedAction)
}

func TestExecute_MediumRisk(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		CustomerID: "3916-NRPAP",
		ChurnData:  churnData("MEDIUM", false),
	})

	require.NoError(t, err)
	assert.Equal(t, models.RiskLevelMedium, out.RetentionOffers.RiskLevel)

	coupons := 0
	upgrades := 0
	for _, o := range out.RetentionOffers.Offers {
		assert.Equal(t, models.UrgencyStandard, o.Urgency)
		switch o.OfferType {
		case models.OfferTypeDiscountCoupon:
			coupons++
			assert.GreaterOrEqual(t, o.DiscountPercentage, 10)
			assert.LessOrEqual(t, o.DiscountPercentage, 15)
		case models.OfferTypeServiceUpgrade:
			upgrades++
		}
	}
	assert.Equal(t, 1, coupons)
	assert.Equal(t, 1, upgrades)
}

func TestExecute_LowRisk(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		CustomerID: "9305-CDSKC",
		ChurnData:  churnData("LOW", false),
	})

	require.NoError(t, err)
	assert.Equal(t, models.RiskLevelLow, out.RetentionOffers.RiskLevel)

	// Stable customers get one or two soft offers, never a third.
	require.NotEmpty(t, out.RetentionOffers.Offers)
	assert.LessOrEqual(t, len(out.RetentionOffers.Offers), 2)

	for _, o := range out.RetentionOffers.Offers {
		assert.NotEqual(t, models.OfferTypeDiscountCoupon, o.OfferType)
		assert.Zero(t, o.DiscountPercentage)
		assert.Equal(t, models.UrgencyLow, o.Urgency)
	}
	assert.Equal(t,
		"present service upgrades - customer is stable but could benefit from additional services",
		out.RetentionOffers.RecommendedAction)
}

func TestRecommendedAction_CoversEveryTier(t *testing.T) {
	for _, level := range []models.RiskLevel{models.RiskLevelLow, models.RiskLevelMedium, models.RiskLevelHigh} {
		action, err := recommendedAction(level)
		require.NoError(t, err, "tier %s", level)
		assert.NotEmpty(t, action, "tier %s", level)
	}

	_, err := recommendedAction(models.RiskLevel("CRITICAL"))
	require.Error(t, err)
	assert.True(t, errors.IsConfiguration(err))
}

// ==========================
// Ordering and Limits
// ==========================

func TestExecute_OrderedByDiscountDescending(t *testing.T) {
	h := newTestHandler(t)

	for _, level := range []string{"HIGH", "MEDIUM"} {
		out, err := h.Execute(context.Background(), &Input{
			CustomerID: "7590-VHVEG",
			ChurnData:  churnData(level, false),
		})
		require.NoError(t, err)

		offers := out.RetentionOffers.Offers
		for i := 1; i < len(offers); i++ {
			assert.GreaterOrEqual(t, offers[i-1].DiscountPercentage, offers[i].DiscountPercentage,
				"tier %s position %d", level, i)
		}
	}
}

func TestExecute_TruncatesToMaxOffers(t *testing.T) {
	cat, err := catalog.Default()
	require.NoError(t, err)
	h := NewHandler(&Config{MaxOffers: 1}, cat, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{
		CustomerID: "7590-VHVEG",
		ChurnData:  churnData("HIGH", false),
	})

	require.NoError(t, err)
	require.Len(t, out.RetentionOffers.Offers, 1)
	// The highest discount survives truncation.
	assert.Equal(t, 30, out.RetentionOffers.Offers[0].DiscountPercentage)
	assert.Equal(t, 1, out.RetentionOffers.TotalOffers)
}

func TestExecute_Deterministic(t *testing.T) {
	h := newTestHandler(t)
	input := &Input{CustomerID: "7590-VHVEG", ChurnData: churnData("MEDIUM", true)}

	first, err := h.Execute(context.Background(), input)
	require.NoError(t, err)

	for i := 0; i < 5; i++ {
		next, err := h.Execute(context.Background(), input)
		require.NoError(t, err)
		assert.Equal(t, first.RetentionOffers, next.RetentionOffers, "run %d", i)
	}
}

// ==========================
// Cancel Intent
// ==========================

func TestExecute_CancelIntentEscalatesUrgency(t *testing.T) {
	h := newTestHandler(t)

	for _, level := range []string{"LOW", "MEDIUM", "HIGH"} {
		out, err := h.Execute(context.Background(), &Input{
			CustomerID: "7590-VHVEG",
			ChurnData:  churnData(level, true),
		})
		require.NoError(t, err)
		for _, o := range out.RetentionOffers.Offers {
			assert.Equal(t, models.UrgencyImmediate, o.Urgency, "tier %s offer %s", level, o.Code)
		}
	}
}

func TestExecute_CancelIntentCouponsFirst(t *testing.T) {
	h := newTestHandler(t)

	out, err := h.Execute(context.Background(), &Input{
		CustomerID: "3916-NRPAP",
		ChurnData:  churnData("MEDIUM", true),
	})

	require.NoError(t, err)
	offers := out.RetentionOffers.Offers
	require.NotEmpty(t, offers)
	assert.Equal(t, models.OfferTypeDiscountCoupon, offers[0].OfferType)

	seenNonCoupon := false
	for _, o := range offers {
		if o.OfferType != models.OfferTypeDiscountCoupon {
			seenNonCoupon = true
		} else {
			assert.False(t, seenNonCoupon, "coupon %s listed after a non-coupon offer", o.Code)
		}
	}
}
