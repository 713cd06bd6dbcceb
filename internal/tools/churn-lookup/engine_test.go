// internal/tools/churn-lookup/engine_test.go
package churnlookup

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var recordColumns = []string{
	"customerid", "tenure", "contract", "monthlycharges", "totalcharges",
	"paymentmethod", "paperlessbilling", "phoneservice", "internetservice",
	"onlinesecurity", "techsupport", "streamingtv", "streamingmovies",
	"churn", "churn_risk_score", "cancel_intent",
}

func TestPostgresEngine_LookupCustomer(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM telco_augmented_vw WHERE customerid = \\$1").
		WithArgs("7590-VHVEG").
		WillReturnRows(sqlmock.NewRows(recordColumns).AddRow(
			"7590-VHVEG", 2, "Month-to-month", 95.50, 191.00,
			"Electronic check", "Yes", "Yes", "Fiber optic",
			"No", "No", "No", "No",
			"Yes", 0.85, true,
		))

	engine := NewPostgresEngine(db, "telco_augmented_vw")
	rec, err := engine.LookupCustomer(context.Background(), "7590-VHVEG")

	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, "7590-VHVEG", rec.CustomerID)
	assert.Equal(t, 2, rec.Tenure)
	assert.Equal(t, "Month-to-month", rec.Contract)
	assert.InDelta(t, 0.85, rec.ChurnRiskScore, 1e-9)
	assert.True(t, rec.CancelIntent)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresEngine_LookupCustomer_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT .+ FROM telco_augmented_vw WHERE customerid = \\$1").
		WithArgs("0000-NOONE").
		WillReturnRows(sqlmock.NewRows(recordColumns))

	engine := NewPostgresEngine(db, "telco_augmented_vw")
	rec, err := engine.LookupCustomer(context.Background(), "0000-NOONE")

	require.NoError(t, err)
	assert.Nil(t, rec)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRecordFromStrings(t *testing.T) {
	rec := recordFromStrings(map[string]string{
		"customerid":       "3916-NRPAP",
		"tenure":           "14",
		"contract":         "One year",
		"monthlycharges":   "64.20",
		"totalcharges":     "898.80",
		"onlinesecurity":   "Yes",
		"techsupport":      "No",
		"churn":            "No",
		"churn_risk_score": "0.52",
		"cancel_intent":    "FALSE",
	})

	assert.Equal(t, "3916-NRPAP", rec.CustomerID)
	assert.Equal(t, 14, rec.Tenure)
	assert.Equal(t, "One year", rec.Contract)
	assert.InDelta(t, 64.20, rec.MonthlyCharges, 1e-9)
	assert.InDelta(t, 0.52, rec.ChurnRiskScore, 1e-9)
	assert.False(t, rec.CancelIntent)
}

func TestRecordFromStrings_EmptyValues(t *testing.T) {
	rec := recordFromStrings(map[string]string{
		"customerid":       "1234-ABCDE",
		"tenure":           "",
		"churn_risk_score": "",
		"cancel_intent":    "",
	})

	assert.Zero(t, rec.Tenure)
	assert.Zero(t, rec.ChurnRiskScore)
	assert.False(t, rec.CancelIntent)
}
