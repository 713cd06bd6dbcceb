// internal/tools/churn-lookup/engine_postgres.go
package churnlookup

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// PostgresEngine resolves customer rows from a local copy of the analytic
// view. Used for development and for deployments that keep churn data in
// Postgres instead of the managed engine.
type PostgresEngine struct {
	db   *sql.DB
	view string
}

func NewPostgresEngine(db *sql.DB, view string) *PostgresEngine {
	return &PostgresEngine{
		db:   db,
		view: view,
	}
}

func (e *PostgresEngine) LookupCustomer(ctx context.Context, customerID string) (*CustomerRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM %s WHERE customerid = $1", viewColumns, e.view)

	var rec CustomerRecord
	err := e.db.QueryRowContext(ctx, query, customerID).Scan(
		&rec.CustomerID,
		&rec.Tenure,
		&rec.Contract,
		&rec.MonthlyCharges,
		&rec.TotalCharges,
		&rec.PaymentMethod,
		&rec.PaperlessBilling,
		&rec.PhoneService,
		&rec.InternetService,
		&rec.OnlineSecurity,
		&rec.TechSupport,
		&rec.StreamingTV,
		&rec.StreamingMovies,
		&rec.Churn,
		&rec.ChurnRiskScore,
		&rec.CancelIntent,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query customer row: %w", err)
	}

	return &rec, nil
}
