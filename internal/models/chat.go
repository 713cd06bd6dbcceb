// internal/models/chat.go
package models

// ChatRequest is the inbound chat boundary payload.
type ChatRequest struct {
	Prompt     string `json:"prompt"`
	CustomerID string `json:"customerId"`
	AuthToken  string `json:"authToken,omitempty"`
}

// ChatResponse is the chat boundary reply.
type ChatResponse struct {
	Message    string `json:"message"`
	CustomerID string `json:"customerId"`
	SessionID  string `json:"sessionId"`
	Timestamp  string `json:"timestamp"`
}
