// internal/common/aws/ssm.go
package aws

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/ssm/types"
)

// SSMClient reads and writes the shared agent parameters (gateway URL,
// knowledge base id, memory id) kept in the central parameter store.
type SSMClient struct {
	client *ssm.Client
}

func NewSSMClient(ctx context.Context, region string) (*SSMClient, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, err
	}
	return &SSMClient{client: ssm.NewFromConfig(cfg)}, nil
}

// GetParametersByPrefix returns all parameters under prefix, keyed by the
// trailing path segment.
func (s *SSMClient) GetParametersByPrefix(ctx context.Context, prefix string) (map[string]string, error) {
	params := make(map[string]string)

	var nextToken *string
	for {
		out, err := s.client.GetParametersByPath(ctx, &ssm.GetParametersByPathInput{
			Path:           aws.String(prefix),
			Recursive:      aws.Bool(true),
			WithDecryption: aws.Bool(true),
			NextToken:      nextToken,
		})
		if err != nil {
			return nil, err
		}

		for _, p := range out.Parameters {
			if p.Name == nil || p.Value == nil {
				continue
			}
			name := *p.Name
			if idx := strings.LastIndex(name, "/"); idx >= 0 {
				name = name[idx+1:]
			}
			params[name] = *p.Value
		}

		if out.NextToken == nil {
			break
		}
		nextToken = out.NextToken
	}

	return params, nil
}

// PutParameter upserts a single string parameter.
func (s *SSMClient) PutParameter(ctx context.Context, name, value string) error {
	_, err := s.client.PutParameter(ctx, &ssm.PutParameterInput{
		Name:      aws.String(name),
		Value:     aws.String(value),
		Type:      types.ParameterTypeString,
		Overwrite: aws.Bool(true),
	})
	return err
}
