// internal/models/offer.go
package models

// OfferType classifies a retention offer.
type OfferType string

const (
	OfferTypeDiscountCoupon OfferType = "discount_coupon"
	OfferTypeServiceUpgrade OfferType = "service_upgrade"
	OfferTypeSupportCredit  OfferType = "support_credit"
	OfferTypeLoyaltyReward  OfferType = "loyalty_reward"
)

// Urgency signals how quickly an offer should be presented.
type Urgency string

const (
	UrgencyImmediate Urgency = "immediate"
	UrgencyStandard  Urgency = "standard"
	UrgencyLow       Urgency = "low"
)

// Offer is a single pre-approved retention offer. Definitions live in the
// static catalog and are read-only at request time; ValidityDays is a static
// property of the definition, not computed per request.
type Offer struct {
	OfferType          OfferType `json:"offer_type"`
	Code               string    `json:"code"`
	Title              string    `json:"title"`
	Description        string    `json:"description"`
	DiscountPercentage int       `json:"discount_percentage,omitempty"`
	ValidityDays       int       `json:"validity_days"`
	Urgency            Urgency   `json:"urgency"`
}

// OfferBundle is the set of offers returned for one customer in one request.
type OfferBundle struct {
	CustomerID        string    `json:"customer_id"`
	RiskLevel         RiskLevel `json:"risk_level,omitempty"`
	Offers            []Offer   `json:"offers"`
	RecommendedAction string    `json:"recommended_action"`
}
