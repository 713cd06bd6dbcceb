// internal/models/customer.go
package models

// ChurnAssessment is the per-request result of the churn signal lookup. It is
// produced fresh each time and never persisted.
type ChurnAssessment struct {
	CustomerID     string    `json:"customer_id"`
	Found          bool      `json:"found"`
	RiskScore      float64   `json:"risk_score,omitempty"`
	RiskLevel      RiskLevel `json:"risk_level,omitempty"`
	CancelIntent   bool      `json:"cancel_intent,omitempty"`
	TenureMonths   int       `json:"tenure_months,omitempty"`
	ContractType   string    `json:"contract_type,omitempty"`
	MonthlyCharges float64   `json:"monthly_charges,omitempty"`
	KeyRiskFactors []string  `json:"key_risk_factors,omitempty"`
}

// ChurnAnalysis is the wire block inside churn_data.
type ChurnAnalysis struct {
	ChurnStatus    string  `json:"churn_status,omitempty"`
	ChurnRiskScore float64 `json:"churn_risk_score"`
	RiskLevel      string  `json:"risk_level"`
	CancelIntent   bool    `json:"cancel_intent"`
}

// ServiceFlags lists the per-service subscription indicators from the
// analytic view.
type ServiceFlags struct {
	PhoneService    string `json:"phone_service,omitempty"`
	InternetService string `json:"internet_service,omitempty"`
	OnlineSecurity  string `json:"online_security,omitempty"`
	TechSupport     string `json:"tech_support,omitempty"`
	StreamingTV     string `json:"streaming_tv,omitempty"`
	StreamingMovies string `json:"streaming_movies,omitempty"`
}

// CustomerProfile is the wire block inside churn_data.
type CustomerProfile struct {
	TenureMonths     int          `json:"tenure_months"`
	ContractType     string       `json:"contract_type"`
	MonthlyCharges   float64      `json:"monthly_charges"`
	TotalCharges     float64      `json:"total_charges,omitempty"`
	PaymentMethod    string       `json:"payment_method,omitempty"`
	PaperlessBilling string       `json:"paperless_billing,omitempty"`
	Services         ServiceFlags `json:"services"`
}

// RetentionInsights carries the risk factors and follow-up recommendations
// derived from the profile.
type RetentionInsights struct {
	KeyRiskFactors  []string `json:"key_risk_factors"`
	Recommendations []string `json:"recommendations"`
}

// ChurnData is the churn lookup response envelope per the external interface.
// ChurnAnalysis, CustomerProfile and RetentionInsights are absent when the
// customer was not found.
type ChurnData struct {
	Found             bool               `json:"found"`
	Message           string             `json:"message,omitempty"`
	ChurnAnalysis     *ChurnAnalysis     `json:"churn_analysis,omitempty"`
	CustomerProfile   *CustomerProfile   `json:"customer_profile,omitempty"`
	RetentionInsights *RetentionInsights `json:"retention_insights,omitempty"`
}
