// internal/common/aws/athena.go
package aws

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/athena"
	"github.com/aws/aws-sdk-go-v2/service/athena/types"
)

// athenaAPI is the subset of the Athena client used by the executor,
// extracted so tests can substitute a fake.
type athenaAPI interface {
	StartQueryExecution(ctx context.Context, params *athena.StartQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.StartQueryExecutionOutput, error)
	GetQueryExecution(ctx context.Context, params *athena.GetQueryExecutionInput, optFns ...func(*athena.Options)) (*athena.GetQueryExecutionOutput, error)
	GetQueryResults(ctx context.Context, params *athena.GetQueryResultsInput, optFns ...func(*athena.Options)) (*athena.GetQueryResultsOutput, error)
}

// AthenaClient runs analytic queries against a managed query engine and
// returns rows as column-name keyed string maps, the shape the engine itself
// reports (every Athena value arrives as a varchar).
type AthenaClient struct {
	client         athenaAPI
	database       string
	workgroup      string
	outputLocation string
	pollInterval   time.Duration
}

func NewAthenaClient(ctx context.Context, region, database, workgroup, outputLocation string, pollInterval time.Duration) (*AthenaClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &AthenaClient{
		client:         athena.NewFromConfig(cfg),
		database:       database,
		workgroup:      workgroup,
		outputLocation: outputLocation,
		pollInterval:   pollInterval,
	}, nil
}

// NewAthenaClientWithAPI wires a pre-built API implementation (tests).
func NewAthenaClientWithAPI(api athenaAPI, database, outputLocation string, pollInterval time.Duration) *AthenaClient {
	return &AthenaClient{
		client:         api,
		database:       database,
		outputLocation: outputLocation,
		pollInterval:   pollInterval,
	}
}

// RunQuery starts a query execution, polls until it reaches a terminal state,
// and returns the data rows. The first result row is the header and is
// consumed to key the remaining rows.
func (c *AthenaClient) RunQuery(ctx context.Context, query string) ([]map[string]string, error) {
	input := &athena.StartQueryExecutionInput{
		QueryString: aws.String(query),
		QueryExecutionContext: &types.QueryExecutionContext{
			Database: aws.String(c.database),
		},
		ResultConfiguration: &types.ResultConfiguration{
			OutputLocation: aws.String(c.outputLocation),
		},
	}
	if c.workgroup != "" {
		input.WorkGroup = aws.String(c.workgroup)
	}

	started, err := c.client.StartQueryExecution(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("start query execution: %w", err)
	}

	executionID := started.QueryExecutionId

	for {
		status, err := c.client.GetQueryExecution(ctx, &athena.GetQueryExecutionInput{
			QueryExecutionId: executionID,
		})
		if err != nil {
			return nil, fmt.Errorf("get query execution: %w", err)
		}

		state := status.QueryExecution.Status.State
		if state == types.QueryExecutionStateSucceeded {
			break
		}
		if state == types.QueryExecutionStateFailed || state == types.QueryExecutionStateCancelled {
			reason := "unknown error"
			if status.QueryExecution.Status.StateChangeReason != nil {
				reason = *status.QueryExecution.Status.StateChangeReason
			}
			return nil, fmt.Errorf("query %s: %s", state, reason)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}
	}

	results, err := c.client.GetQueryResults(ctx, &athena.GetQueryResultsInput{
		QueryExecutionId: executionID,
	})
	if err != nil {
		return nil, fmt.Errorf("get query results: %w", err)
	}

	rows := results.ResultSet.Rows
	if len(rows) < 2 {
		return nil, nil
	}

	header := rows[0].Data
	columns := make([]string, len(header))
	for i, col := range header {
		if col.VarCharValue != nil {
			columns[i] = *col.VarCharValue
		}
	}

	out := make([]map[string]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		record := make(map[string]string, len(columns))
		for i, datum := range row.Data {
			if i >= len(columns) {
				break
			}
			value := ""
			if datum.VarCharValue != nil {
				value = *datum.VarCharValue
			}
			record[columns[i]] = value
		}
		out = append(out, record)
	}

	return out, nil
}
