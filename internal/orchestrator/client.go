// internal/orchestrator/client.go

// Package orchestrator calls the managed agent runtime that plans tool use
// and produces the conversational answer. This service only relays prompts
// and session identity; reasoning happens upstream.
package orchestrator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/ajithmanmu/customer-retention-agent/internal/common/errors"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/httpclient"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/logger"
)

const serviceName = "agent-runtime"

// InvokeRequest is one conversational turn sent to the agent runtime.
type InvokeRequest struct {
	Prompt     string `json:"prompt"`
	CustomerID string `json:"customerId,omitempty"`
	SessionID  string `json:"runtimeSessionId"`
	ActorID    string `json:"actorId"`

	// BearerToken is forwarded on the Authorization header, never in the body.
	BearerToken string `json:"-"`
}

// InvokeResponse is the runtime's answer for one turn.
type InvokeResponse struct {
	Message   string `json:"message"`
	SessionID string `json:"runtimeSessionId,omitempty"`
}

type Client struct {
	gatewayURL string
	client     *httpclient.Client
	logger     logger.Logger
}

func NewClient(gatewayURL string, timeout time.Duration, log logger.Logger) *Client {
	return &Client{
		gatewayURL: gatewayURL,
		client:     httpclient.NewClient(timeout),
		logger:     log.WithFields(map[string]interface{}{"service": serviceName}),
	}
}

// Invoke relays one turn to the runtime. Any transport or upstream failure
// surfaces as UPSTREAM_UNAVAILABLE; the chat boundary owns user-facing
// wording.
func (c *Client) Invoke(ctx context.Context, req *InvokeRequest) (*InvokeResponse, error) {
	if req == nil || req.Prompt == "" {
		return nil, errors.NewInvalidArgumentError("prompt", "prompt is required")
	}
	if req.SessionID == "" {
		return nil, errors.NewInvalidArgumentError("session_id", "session ID is required")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return nil, errors.NewUpstreamUnavailableError(serviceName, err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.gatewayURL, bytes.NewReader(body))
	if err != nil {
		return nil, errors.NewUpstreamUnavailableError(serviceName, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if req.BearerToken != "" {
		httpReq.Header.Set("Authorization", "Bearer "+req.BearerToken)
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.WithError(err).Error("agent runtime request failed", map[string]interface{}{
			"sessionId": req.SessionID,
		})
		return nil, errors.NewUpstreamUnavailableError(serviceName, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		c.logger.Error("agent runtime returned non-2xx", map[string]interface{}{
			"sessionId": req.SessionID,
			"status":    resp.StatusCode,
		})
		return nil, errors.NewUpstreamUnavailableError(serviceName, fmt.Errorf("agent runtime returned %d", resp.StatusCode))
	}

	var out InvokeResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, errors.NewUpstreamUnavailableError(serviceName, fmt.Errorf("decode runtime response: %w", err))
	}

	return &out, nil
}
