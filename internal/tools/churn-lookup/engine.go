// internal/tools/churn-lookup/engine.go
package churnlookup

import "context"

// QueryEngine fetches a single customer row from the churn analytic view.
// Implementations return (nil, nil) when the customer does not exist; an
// error means the engine itself could not be reached or the query failed.
type QueryEngine interface {
	LookupCustomer(ctx context.Context, customerID string) (*CustomerRecord, error)
}

const viewColumns = `customerid,
	tenure,
	contract,
	monthlycharges,
	totalcharges,
	paymentmethod,
	paperlessbilling,
	phoneservice,
	internetservice,
	onlinesecurity,
	techsupport,
	streamingtv,
	streamingmovies,
	churn,
	churn_risk_score,
	cancel_intent`
