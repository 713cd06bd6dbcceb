// internal/gateway/chat.go
package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/ajithmanmu/customer-retention-agent/internal/common/auth"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/errors"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/logger"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/metrics"
	"github.com/ajithmanmu/customer-retention-agent/internal/models"
	"github.com/ajithmanmu/customer-retention-agent/internal/orchestrator"
)

// apologyMessage is the only failure wording the end user ever sees from a
// chat turn. The underlying cause goes to the log, not the customer.
const apologyMessage = "I'm sorry, I ran into a problem handling that. Please try again in a moment."

type tokenVerifier interface {
	Verify(ctx context.Context, rawToken string) (*auth.Claims, error)
}

type agentInvoker interface {
	Invoke(ctx context.Context, req *orchestrator.InvokeRequest) (*orchestrator.InvokeResponse, error)
}

// ChatHandler is the authenticated conversational boundary. It verifies the
// caller, pins the turn to a session, and relays the prompt to the agent
// runtime.
type ChatHandler struct {
	verifier tokenVerifier
	sessions *SessionStore
	agent    agentInvoker
	logger   logger.Logger
}

func NewChatHandler(verifier tokenVerifier, sessions *SessionStore, agent agentInvoker, log logger.Logger) *ChatHandler {
	return &ChatHandler{
		verifier: verifier,
		sessions: sessions,
		agent:    agent,
		logger:   log,
	}
}

func (h *ChatHandler) HandleChat(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ChatRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxToolBodyBytes))
	if err != nil || json.Unmarshal(body, &req) != nil {
		metrics.ChatTurns.WithLabelValues("invalid").Inc()
		writeError(w, errors.NewInvalidArgumentError("body", "request body must be valid JSON"))
		return
	}

	if strings.TrimSpace(req.Prompt) == "" {
		metrics.ChatTurns.WithLabelValues("invalid").Inc()
		writeError(w, errors.NewInvalidArgumentError("prompt", "prompt is required"))
		return
	}

	token := bearerToken(r, &req)
	claims, err := h.verifier.Verify(r.Context(), token)
	if err != nil {
		metrics.ChatTurns.WithLabelValues("unauthenticated").Inc()
		h.logger.WithError(err).Warn("chat authentication failed", nil)
		writeError(w, err)
		return
	}

	sessionID, err := h.sessions.Resume(r.Context(), claims.Subject)
	if err != nil {
		// A session store outage degrades to a one-off conversation rather
		// than blocking the turn.
		h.logger.WithError(err).Warn("session store unavailable, starting one-off session", map[string]interface{}{
			"actorId": claims.Subject,
		})
		sessionID = NewSessionID()
	}

	resp, err := h.agent.Invoke(r.Context(), &orchestrator.InvokeRequest{
		Prompt:      req.Prompt,
		CustomerID:  req.CustomerID,
		SessionID:   sessionID,
		ActorID:     claims.Subject,
		BearerToken: token,
	})

	status := "ok"
	httpStatus := http.StatusOK
	message := apologyMessage
	if err != nil {
		status = "failed"
		httpStatus = errors.HTTPStatus(errors.CodeOf(err))
		h.logger.WithError(err).Error("chat turn failed", map[string]interface{}{
			"actorId":   claims.Subject,
			"sessionId": sessionID,
			"errorCode": string(errors.CodeOf(err)),
		})
	} else {
		message = resp.Message
	}

	metrics.ChatTurns.WithLabelValues(status).Inc()
	metrics.ChatTurnDuration.Observe(time.Since(start).Seconds())

	writeJSON(w, httpStatus, models.ChatResponse{
		Message:    message,
		CustomerID: req.CustomerID,
		SessionID:  sessionID,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	})
}

// bearerToken prefers the Authorization header and falls back to the body
// field used by clients that cannot set headers.
func bearerToken(r *http.Request, req *models.ChatRequest) string {
	header := r.Header.Get("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	}
	return req.AuthToken
}
