// internal/gateway/chat_test.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ajithmanmu/customer-retention-agent/internal/common/auth"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/errors"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/logger"
	"github.com/ajithmanmu/customer-retention-agent/internal/models"
	"github.com/ajithmanmu/customer-retention-agent/internal/orchestrator"
)

// ==========================
// Test Doubles
// ==========================

type stubVerifier struct {
	claims *auth.Claims
	err    error
}

func (s *stubVerifier) Verify(ctx context.Context, rawToken string) (*auth.Claims, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.claims, nil
}

type stubInvoker struct {
	lastReq *orchestrator.InvokeRequest
	resp    *orchestrator.InvokeResponse
	err     error
}

func (s *stubInvoker) Invoke(ctx context.Context, req *orchestrator.InvokeRequest) (*orchestrator.InvokeResponse, error) {
	s.lastReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.resp, nil
}

func newChatTest(t *testing.T, verifier tokenVerifier, invoker agentInvoker) *ChatHandler {
	t.Helper()
	store, _ := newTestSessionStore(t)
	return NewChatHandler(verifier, store, invoker, logger.NewTestLogger(t))
}

func postChat(t *testing.T, h *ChatHandler, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/chat", bytes.NewReader(raw))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.HandleChat(rec, req)
	return rec
}

// ==========================
// Chat Boundary
// ==========================

func TestHandleChat_RelaysPromptAndIdentity(t *testing.T) {
	invoker := &stubInvoker{resp: &orchestrator.InvokeResponse{Message: "Here is a 20% offer."}}
	h := newChatTest(t, &stubVerifier{claims: &auth.Claims{Subject: "user-1"}}, invoker)

	rec := postChat(t, h, models.ChatRequest{Prompt: "I want to cancel", CustomerID: "7590-VHVEG"}, "token-abc")

	require.Equal(t, http.StatusOK, rec.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Here is a 20% offer.", resp.Message)
	assert.Equal(t, "7590-VHVEG", resp.CustomerID)
	assert.GreaterOrEqual(t, len(resp.SessionID), 33)

	require.NotNil(t, invoker.lastReq)
	assert.Equal(t, "I want to cancel", invoker.lastReq.Prompt)
	assert.Equal(t, "user-1", invoker.lastReq.ActorID)
	assert.Equal(t, "token-abc", invoker.lastReq.BearerToken)
	assert.Equal(t, resp.SessionID, invoker.lastReq.SessionID)
}

func TestHandleChat_ReusesSessionAcrossTurns(t *testing.T) {
	invoker := &stubInvoker{resp: &orchestrator.InvokeResponse{Message: "ok"}}
	h := newChatTest(t, &stubVerifier{claims: &auth.Claims{Subject: "user-1"}}, invoker)

	rec1 := postChat(t, h, models.ChatRequest{Prompt: "hello"}, "token")
	rec2 := postChat(t, h, models.ChatRequest{Prompt: "again"}, "token")

	var resp1, resp2 models.ChatResponse
	require.NoError(t, json.Unmarshal(rec1.Body.Bytes(), &resp1))
	require.NoError(t, json.Unmarshal(rec2.Body.Bytes(), &resp2))
	assert.Equal(t, resp1.SessionID, resp2.SessionID)
}

func TestHandleChat_RejectsMissingPrompt(t *testing.T) {
	h := newChatTest(t, &stubVerifier{claims: &auth.Claims{Subject: "user-1"}}, &stubInvoker{})

	rec := postChat(t, h, models.ChatRequest{Prompt: "  "}, "token")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleChat_RejectsUnverifiedToken(t *testing.T) {
	h := newChatTest(t, &stubVerifier{err: errors.NewAuthenticationError("bad signature")}, &stubInvoker{})

	rec := postChat(t, h, models.ChatRequest{Prompt: "hello"}, "bad-token")

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "AUTHENTICATION_ERROR", body["code"])
}

func TestHandleChat_BodyTokenFallback(t *testing.T) {
	invoker := &stubInvoker{resp: &orchestrator.InvokeResponse{Message: "ok"}}
	h := newChatTest(t, &stubVerifier{claims: &auth.Claims{Subject: "user-1"}}, invoker)

	rec := postChat(t, h, models.ChatRequest{Prompt: "hello", AuthToken: "body-token"}, "")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "body-token", invoker.lastReq.BearerToken)
}

func TestHandleChat_RuntimeFailureReturnsApology(t *testing.T) {
	invoker := &stubInvoker{err: stderrors.New("connection reset")}
	h := newChatTest(t, &stubVerifier{claims: &auth.Claims{Subject: "user-1"}}, invoker)

	rec := postChat(t, h, models.ChatRequest{Prompt: "hello"}, "token")

	// Runtime failures surface an error status with a generic message, never
	// a raw error to the customer.
	require.Equal(t, http.StatusBadGateway, rec.Code)

	var resp models.ChatResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, apologyMessage, resp.Message)
	assert.NotContains(t, resp.Message, "connection reset")
}
