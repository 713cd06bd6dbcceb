// internal/gateway/audit.go
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"time"

	"github.com/ajithmanmu/customer-retention-agent/internal/common/database"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/logger"
)

// ToolInvocationAudit is the document indexed per tool call. Inputs are not
// recorded; only the outcome and timing.
type ToolInvocationAudit struct {
	Tool       string `json:"tool"`
	Status     string `json:"status"`
	ErrorCode  string `json:"error_code,omitempty"`
	DurationMS int64  `json:"duration_ms"`
	Timestamp  string `json:"timestamp"`
}

// Auditor writes tool invocation records to the audit index. It is best
// effort: indexing failures are logged and never affect the response. A nil
// Auditor is valid and records nothing.
type Auditor struct {
	es     *database.ElasticsearchClient
	index  string
	logger logger.Logger
}

func NewAuditor(es *database.ElasticsearchClient, index string, log logger.Logger) *Auditor {
	if es == nil {
		return nil
	}
	return &Auditor{
		es:     es,
		index:  index,
		logger: log,
	}
}

func (a *Auditor) Record(ctx context.Context, doc ToolInvocationAudit) {
	if a == nil {
		return
	}

	doc.Timestamp = time.Now().UTC().Format(time.RFC3339)

	body, err := json.Marshal(doc)
	if err != nil {
		a.logger.WithError(err).Warn("audit document marshal failed", map[string]interface{}{
			"tool": doc.Tool,
		})
		return
	}

	res, err := a.es.Client.Index(a.index, bytes.NewReader(body),
		a.es.Client.Index.WithContext(ctx))
	if err != nil {
		a.logger.WithError(err).Warn("audit index failed", map[string]interface{}{
			"tool": doc.Tool,
		})
		return
	}
	defer res.Body.Close()

	if res.IsError() {
		a.logger.Warn("audit index rejected", map[string]interface{}{
			"tool":   doc.Tool,
			"status": res.Status(),
		})
	}
}
