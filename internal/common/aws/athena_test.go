// internal/common/aws/athena_test.go
package aws

import (
	"context"
	"errors"
	"testing"
	"time"

	awssdk "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==========================
// Fake Athena API
// ==========================

type fakeAthenaAPI struct {
	states    []types.QueryExecutionState
	stateIdx  int
	failStart bool
	reason    string
	rows      [][]string
}

func (f *fakeAthenaAPI) StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error) {
	if f.failStart {
		return nil, errors.New("access denied")
	}
	return &athena.StartQueryExecutionOutput{
		QueryExecutionId: awssdk.String("exec-1"),
	}, nil
}

func (f *fakeAthenaAPI) GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error) {
	state := f.states[f.stateIdx]
	if f.stateIdx < len(f.states)-1 {
		f.stateIdx++
	}
	status := &types.QueryExecutionStatus{State: state}
	if f.reason != "" {
		status.StateChangeReason = awssdk.String(f.reason)
	}
	return &athena.GetQueryExecutionOutput{
		QueryExecution: &types.QueryExecution{Status: status},
	}, nil
}

func (f *fakeAthenaAPI) GetQueryResults(ctx context.Context, params *athena.GetQueryResultsInput, optFns ...func(*athena.Options)) (*athena.GetQueryResultsOutput, error) {
	rows := make([]types.Row, 0, len(f.rows))
	for _, r := range f.rows {
		data := make([]types.Datum, 0, len(r))
		for _, v := range r {
			data = append(data, types.Datum{VarCharValue: awssdk.String(v)})
		}
		rows = append(rows, types.Row{Data: data})
	}
	return &athena.GetQueryResultsOutput{
		ResultSet: &types.ResultSet{Rows: rows},
	}, nil
}

func newFakeClient(api *fakeAthenaAPI) *AthenaClient {
	return NewAthenaClientWithAPI(api, "telco_processed_db", "s3://results/", time.Millisecond)
}

// ==========================
// RunQuery
// ==========================

func TestRunQuery_Succeeds(t *testing.T) {
	client := newFakeClient(&fakeAthenaAPI{
		states: []types.QueryExecutionState{
			types.QueryExecutionStateRunning,
			types.QueryExecutionStateSucceeded,
		},
		rows: [][]string{
			{"customerid", "churn_risk_score"},
			{"7590-VHVEG", "0.85"},
		},
	})

	rows, err := client.RunQuery(context.Background(), "SELECT 1")

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "7590-VHVEG", rows[0]["customerid"])
	assert.Equal(t, "0.85", rows[0]["churn_risk_score"])
}

func TestRunQuery_EmptyResult(t *testing.T) {
	client := newFakeClient(&fakeAthenaAPI{
		states: []types.QueryExecutionState{types.QueryExecutionStateSucceeded},
		rows:   [][]string{{"customerid"}},
	})

	rows, err := client.RunQuery(context.Background(), "SELECT 1")

	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestRunQuery_FailedExecution(t *testing.T) {
	client := newFakeClient(&fakeAthenaAPI{
		states: []types.QueryExecutionState{types.QueryExecutionStateFailed},
		reason: "SYNTAX_ERROR: line 1",
	})

	_, err := client.RunQuery(context.Background(), "SELECT bogus")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "SYNTAX_ERROR")
}

func TestRunQuery_StartFailure(t *testing.T) {
	client := newFakeClient(&fakeAthenaAPI{failStart: true})

	_, err := client.RunQuery(context.Background(), "SELECT 1")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "start query execution")
}

func TestRunQuery_ContextCancelledWhilePolling(t *testing.T) {
	client := NewAthenaClientWithAPI(&fakeAthenaAPI{
		states: []types.QueryExecutionState{types.QueryExecutionStateRunning},
	}, "telco_processed_db", "s3://results/", 50*time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := client.RunQuery(ctx, "SELECT 1")

	require.Error(t, err)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}
