// internal/gateway/tools.go
package gateway

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/xeipuuv/gojsonschema"

	"github.com/ajithmanmu/customer-retention-agent/internal/common/errors"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/logger"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/metrics"
	churnlookup "github.com/ajithmanmu/customer-retention-agent/internal/tools/churn-lookup"
	retentionoffer "github.com/ajithmanmu/customer-retention-agent/internal/tools/retention-offer"
	websearch "github.com/ajithmanmu/customer-retention-agent/internal/tools/web-search"
	"github.com/ajithmanmu/customer-retention-agent/pkg/registry"
)

const maxToolBodyBytes = 1 << 20

type churnExecutor interface {
	Execute(ctx context.Context, input *churnlookup.Input) (*churnlookup.Output, error)
}

type offerExecutor interface {
	Execute(ctx context.Context, input *retentionoffer.Input) (*retentionoffer.Output, error)
}

type searchExecutor interface {
	Execute(ctx context.Context, input *websearch.Input) (*websearch.Output, error)
}

// ToolsHandler exposes the tool handlers over HTTP for the agent runtime.
// Requests are validated against the registry's input schemas before any
// handler runs.
type ToolsHandler struct {
	churn   churnExecutor
	offers  offerExecutor
	search  searchExecutor
	schemas map[string]*gojsonschema.Schema
	auditor *Auditor
	logger  logger.Logger
}

func NewToolsHandler(
	churn churnExecutor,
	offers offerExecutor,
	search searchExecutor,
	reg *registry.ToolRegistry,
	auditor *Auditor,
	log logger.Logger,
) (*ToolsHandler, error) {
	schemas, err := reg.CompileSchemas()
	if err != nil {
		return nil, err
	}
	return &ToolsHandler{
		churn:   churn,
		offers:  offers,
		search:  search,
		schemas: schemas,
		auditor: auditor,
		logger:  log,
	}, nil
}

func (h *ToolsHandler) HandleChurnDataQuery(w http.ResponseWriter, r *http.Request) {
	h.handleTool(w, r, churnlookup.ToolName, func(ctx context.Context, body []byte) (interface{}, error) {
		var input churnlookup.Input
		if err := json.Unmarshal(body, &input); err != nil {
			return nil, errors.NewInvalidArgumentError("body", err.Error())
		}
		return h.churn.Execute(ctx, &input)
	})
}

func (h *ToolsHandler) HandleRetentionOffer(w http.ResponseWriter, r *http.Request) {
	h.handleTool(w, r, retentionoffer.ToolName, func(ctx context.Context, body []byte) (interface{}, error) {
		var input retentionoffer.Input
		if err := json.Unmarshal(body, &input); err != nil {
			return nil, errors.NewInvalidArgumentError("body", err.Error())
		}
		return h.offers.Execute(ctx, &input)
	})
}

func (h *ToolsHandler) HandleWebSearch(w http.ResponseWriter, r *http.Request) {
	h.handleTool(w, r, websearch.ToolName, func(ctx context.Context, body []byte) (interface{}, error) {
		var input websearch.Input
		if err := json.Unmarshal(body, &input); err != nil {
			return nil, errors.NewInvalidArgumentError("body", err.Error())
		}
		return h.search.Execute(ctx, &input)
	})
}

func (h *ToolsHandler) handleTool(
	w http.ResponseWriter,
	r *http.Request,
	tool string,
	dispatch func(ctx context.Context, body []byte) (interface{}, error),
) {
	start := time.Now()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxToolBodyBytes))
	if err != nil {
		h.finishTool(w, r, tool, start, nil, errors.NewInvalidArgumentError("body", "unreadable request body"))
		return
	}

	if err := h.validate(tool, body); err != nil {
		h.finishTool(w, r, tool, start, nil, err)
		return
	}

	out, err := dispatch(r.Context(), body)
	h.finishTool(w, r, tool, start, out, err)
}

// validate checks the raw body against the tool's registered input schema.
// Tools without a registered schema only get the handler's own validation.
func (h *ToolsHandler) validate(tool string, body []byte) error {
	schema, ok := h.schemas[tool]
	if !ok {
		return nil
	}

	result, err := schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return errors.NewInvalidArgumentError("body", "request body must be a JSON object")
	}
	if !result.Valid() {
		details := make([]string, 0, len(result.Errors()))
		for _, desc := range result.Errors() {
			details = append(details, desc.String())
		}
		return errors.NewInvalidArgumentError("body", strings.Join(details, "; "))
	}
	return nil
}

func (h *ToolsHandler) finishTool(w http.ResponseWriter, r *http.Request, tool string, start time.Time, out interface{}, err error) {
	duration := time.Since(start)
	metrics.ToolInvocationDuration.WithLabelValues(tool).Observe(duration.Seconds())

	if err != nil {
		code := errors.CodeOf(err)
		metrics.ToolInvocationsFailed.WithLabelValues(tool, string(code)).Inc()
		h.auditor.Record(r.Context(), ToolInvocationAudit{
			Tool:       tool,
			Status:     "failed",
			ErrorCode:  string(code),
			DurationMS: duration.Milliseconds(),
		})
		h.logger.WithError(err).Warn("tool invocation failed", map[string]interface{}{
			"tool":      tool,
			"errorCode": string(code),
		})
		writeError(w, err)
		return
	}

	metrics.ToolInvocationsCompleted.WithLabelValues(tool).Inc()
	h.auditor.Record(r.Context(), ToolInvocationAudit{
		Tool:       tool,
		Status:     "completed",
		DurationMS: duration.Milliseconds(),
	})
	writeJSON(w, http.StatusOK, out)
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, err error) {
	code := errors.CodeOf(err)
	writeJSON(w, errors.HTTPStatus(code), map[string]string{
		"error": err.Error(),
		"code":  string(code),
	})
}
