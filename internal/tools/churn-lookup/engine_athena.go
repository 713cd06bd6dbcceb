// internal/tools/churn-lookup/engine_athena.go
package churnlookup

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/ajithmanmu/customer-retention-agent/internal/common/aws"
)

// AthenaEngine resolves customer rows through the managed analytic query
// service. Athena returns every column as a string, so values are parsed
// here before the record leaves the engine.
type AthenaEngine struct {
	client *aws.AthenaClient
	view   string
}

func NewAthenaEngine(client *aws.AthenaClient, view string) *AthenaEngine {
	return &AthenaEngine{
		client: client,
		view:   view,
	}
}

func (e *AthenaEngine) LookupCustomer(ctx context.Context, customerID string) (*CustomerRecord, error) {
	// customerID is validated upstream against [A-Za-z0-9-]; Athena's API has
	// no bind parameters for interactive queries so the literal is inlined.
	query := fmt.Sprintf("SELECT %s FROM %s WHERE customerid = '%s'", viewColumns, e.view, customerID)

	rows, err := e.client.RunQuery(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}

	return recordFromStrings(rows[0]), nil
}

func recordFromStrings(row map[string]string) *CustomerRecord {
	return &CustomerRecord{
		CustomerID:       row["customerid"],
		Tenure:           parseInt(row["tenure"]),
		Contract:         row["contract"],
		MonthlyCharges:   parseFloat(row["monthlycharges"]),
		TotalCharges:     parseFloat(row["totalcharges"]),
		PaymentMethod:    row["paymentmethod"],
		PaperlessBilling: row["paperlessbilling"],
		PhoneService:     row["phoneservice"],
		InternetService:  row["internetservice"],
		OnlineSecurity:   row["onlinesecurity"],
		TechSupport:      row["techsupport"],
		StreamingTV:      row["streamingtv"],
		StreamingMovies:  row["streamingmovies"],
		Churn:            row["churn"],
		ChurnRiskScore:   parseFloat(row["churn_risk_score"]),
		CancelIntent:     strings.EqualFold(row["cancel_intent"], "true"),
	}
}

func parseInt(s string) int {
	v, _ := strconv.Atoi(strings.TrimSpace(s))
	return v
}

func parseFloat(s string) float64 {
	v, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return v
}
