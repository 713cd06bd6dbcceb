// internal/catalog/catalog.go

// Package catalog holds the static mapping from risk tier to pre-approved
// retention offers. Definitions are fixed at construction and read-only at
// request time.
package catalog

import (
	"fmt"

	"github.com/ajithmanmu/customer-retention-agent/internal/models"
)

// Catalog maps each risk tier to its eligible offer definitions.
type Catalog struct {
	offers map[models.RiskLevel][]models.Offer
}

// Default returns the pre-approved offer catalog. Construction fails if the
// definitions break the tier invariants, so a bad edit is caught at startup
// rather than at selection time.
func Default() (*Catalog, error) {
	c := &Catalog{
		offers: map[models.RiskLevel][]models.Offer{
			models.RiskLevelHigh: {
				{
					OfferType:          models.OfferTypeDiscountCoupon,
					Code:               "SAVE30",
					Title:              "30% Off Next 3 Months",
					Description:        "Save 30% on your monthly bill for the next 3 months",
					DiscountPercentage: 30,
					ValidityDays:       90,
					Urgency:            models.UrgencyImmediate,
				},
				{
					OfferType:          models.OfferTypeDiscountCoupon,
					Code:               "SAVE20",
					Title:              "20% Off Next 2 Months",
					Description:        "Save 20% on your monthly bill for the next 2 months",
					DiscountPercentage: 20,
					ValidityDays:       60,
					Urgency:            models.UrgencyImmediate,
				},
			},
			models.RiskLevelMedium: {
				{
					OfferType:          models.OfferTypeDiscountCoupon,
					Code:               "SAVE15",
					Title:              "15% Off Next 2 Months",
					Description:        "Save 15% on your monthly bill for the next 2 months",
					DiscountPercentage: 15,
					ValidityDays:       60,
					Urgency:            models.UrgencyStandard,
				},
				{
					OfferType:    models.OfferTypeServiceUpgrade,
					Code:         "FREESECURITY",
					Title:        "Free Online Security",
					Description:  "3 months free online security add-on",
					ValidityDays: 90,
					Urgency:      models.UrgencyStandard,
				},
			},
			models.RiskLevelLow: {
				{
					OfferType:    models.OfferTypeServiceUpgrade,
					Code:         "FREETECHSUP",
					Title:        "Free Premium Tech Support",
					Description:  "3 months free premium tech support",
					ValidityDays: 90,
					Urgency:      models.UrgencyLow,
				},
				{
					OfferType:    models.OfferTypeLoyaltyReward,
					Code:         "LOYALTY10",
					Title:        "Loyalty Reward Credit",
					Description:  "One-time $10 loyalty credit on your next bill",
					ValidityDays: 60,
					Urgency:      models.UrgencyLow,
				},
				{
					OfferType:    models.OfferTypeSupportCredit,
					Code:         "SUPPORT5",
					Title:        "Service Credit",
					Description:  "One-time $5 service credit on your next bill",
					ValidityDays: 30,
					Urgency:      models.UrgencyLow,
				},
			},
		},
	}

	if err := c.check(); err != nil {
		return nil, err
	}
	return c, nil
}

// OffersFor returns a copy of the tier's offer definitions so callers can
// reorder and annotate without touching the catalog.
func (c *Catalog) OffersFor(level models.RiskLevel) []models.Offer {
	defs, ok := c.offers[level]
	if !ok {
		return nil
	}
	out := make([]models.Offer, len(defs))
	copy(out, defs)
	return out
}

// MaxDiscount returns the largest discount percentage defined for a tier,
// zero when the tier carries no discount coupons.
func (c *Catalog) MaxDiscount(level models.RiskLevel) int {
	max := 0
	for _, o := range c.offers[level] {
		if o.OfferType == models.OfferTypeDiscountCoupon && o.DiscountPercentage > max {
			max = o.DiscountPercentage
		}
	}
	return max
}

// check enforces the tier invariants: LOW carries no discount coupons, every
// tier has at least one offer, validity stays within the approved window, and
// a higher tier's best discount is never beaten by a lower tier's.
func (c *Catalog) check() error {
	for _, level := range []models.RiskLevel{models.RiskLevelLow, models.RiskLevelMedium, models.RiskLevelHigh} {
		defs := c.offers[level]
		if len(defs) == 0 {
			return fmt.Errorf("catalog: tier %s has no offers", level)
		}
		for _, o := range defs {
			if o.ValidityDays < 30 || o.ValidityDays > 90 {
				return fmt.Errorf("catalog: offer %s validity_days %d outside approved 30-90 window", o.Code, o.ValidityDays)
			}
			if level == models.RiskLevelLow && o.OfferType == models.OfferTypeDiscountCoupon {
				return fmt.Errorf("catalog: tier LOW must not carry discount coupon %s", o.Code)
			}
		}
	}

	if c.MaxDiscount(models.RiskLevelHigh) < c.MaxDiscount(models.RiskLevelMedium) {
		return fmt.Errorf("catalog: HIGH tier max discount below MEDIUM tier")
	}
	if c.MaxDiscount(models.RiskLevelMedium) < c.MaxDiscount(models.RiskLevelLow) {
		return fmt.Errorf("catalog: MEDIUM tier max discount below LOW tier")
	}

	return nil
}
