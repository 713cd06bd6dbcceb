// internal/catalog/catalog_test.go
package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajithmanmu/customer-retention-agent/internal/models"
)

func TestDefault_TierInvariants(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	for _, level := range []models.RiskLevel{models.RiskLevelLow, models.RiskLevelMedium, models.RiskLevelHigh} {
		offers := c.OffersFor(level)
		assert.NotEmpty(t, offers, "tier %s", level)
		for _, o := range offers {
			assert.GreaterOrEqual(t, o.ValidityDays, 30, "offer %s", o.Code)
			assert.LessOrEqual(t, o.ValidityDays, 90, "offer %s", o.Code)
		}
	}

	// LOW never carries a discount coupon.
	for _, o := range c.OffersFor(models.RiskLevelLow) {
		assert.NotEqual(t, models.OfferTypeDiscountCoupon, o.OfferType)
	}
	assert.Zero(t, c.MaxDiscount(models.RiskLevelLow))
}

func TestDefault_DiscountMonotonicity(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	high := c.MaxDiscount(models.RiskLevelHigh)
	medium := c.MaxDiscount(models.RiskLevelMedium)
	low := c.MaxDiscount(models.RiskLevelLow)

	assert.GreaterOrEqual(t, high, medium)
	assert.GreaterOrEqual(t, medium, low)

	// Inferred business bounds: HIGH coupons in [20,30], MEDIUM in [10,15].
	for _, o := range c.OffersFor(models.RiskLevelHigh) {
		if o.OfferType == models.OfferTypeDiscountCoupon {
			assert.GreaterOrEqual(t, o.DiscountPercentage, 20)
			assert.LessOrEqual(t, o.DiscountPercentage, 30)
		}
	}
	for _, o := range c.OffersFor(models.RiskLevelMedium) {
		if o.OfferType == models.OfferTypeDiscountCoupon {
			assert.GreaterOrEqual(t, o.DiscountPercentage, 10)
			assert.LessOrEqual(t, o.DiscountPercentage, 15)
		}
	}
}

func TestCheck_RejectsLowTierDiscount(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	c.offers[models.RiskLevelLow] = append(c.offers[models.RiskLevelLow], models.Offer{
		OfferType:          models.OfferTypeDiscountCoupon,
		Code:               "BADLOW10",
		DiscountPercentage: 10,
		ValidityDays:       30,
	})

	assert.Error(t, c.check())
}

func TestOffersFor_ReturnsCopy(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	offers := c.OffersFor(models.RiskLevelHigh)
	offers[0].Code = "MUTATED"

	fresh := c.OffersFor(models.RiskLevelHigh)
	assert.NotEqual(t, "MUTATED", fresh[0].Code)
}

func TestOffersFor_UnknownTier(t *testing.T) {
	c, err := Default()
	require.NoError(t, err)

	assert.Nil(t, c.OffersFor(models.RiskLevel("CRITICAL")))
}
