// internal/tools/churn-lookup/models.go
package churnlookup

import "github.com/ajithmanmu/customer-retention-agent/internal/models"

type Input struct {
	CustomerID string `json:"customer_id"`
}

type Output struct {
	CustomerID string           `json:"customer_id"`
	ChurnData  models.ChurnData `json:"churn_data"`
	Source     string           `json:"source"`
}

// CustomerRecord is one row of the churn analytic view with columns already
// parsed into their natural types. Engines own the string-to-type conversion
// so the handler only ever sees typed data.
type CustomerRecord struct {
	CustomerID       string
	Tenure           int
	Contract         string
	MonthlyCharges   float64
	TotalCharges     float64
	PaymentMethod    string
	PaperlessBilling string
	PhoneService     string
	InternetService  string
	OnlineSecurity   string
	TechSupport      string
	StreamingTV      string
	StreamingMovies  string
	Churn            string
	ChurnRiskScore   float64
	CancelIntent     bool
}
