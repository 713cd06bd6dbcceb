// internal/gateway/server.go

// Package gateway is the HTTP surface of the retention agent service: the
// authenticated chat boundary, the tool endpoints called by the agent
// runtime, and the operational endpoints.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ajithmanmu/customer-retention-agent/internal/common/config"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/logger"
)

type Server struct {
	httpServer *http.Server
	logger     logger.Logger
}

func NewServer(cfg config.ServerConfig, chat *ChatHandler, tools *ToolsHandler, log logger.Logger) *Server {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /chat", chat.HandleChat)
	mux.HandleFunc("POST /tools/churn-data-query", tools.HandleChurnDataQuery)
	mux.HandleFunc("POST /tools/retention-offer", tools.HandleRetentionOffer)
	mux.HandleFunc("POST /tools/web-search", tools.HandleWebSearch)

	mux.Handle("GET /metrics", promhttp.Handler())
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         fmt.Sprintf(":%d", cfg.Port),
			Handler:      mux,
			ReadTimeout:  time.Duration(cfg.ReadTimeout) * time.Millisecond,
			WriteTimeout: time.Duration(cfg.WriteTimeout) * time.Millisecond,
		},
		logger: log,
	}
}

// Handler exposes the routed mux for in-process tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

func (s *Server) Start() error {
	s.logger.Info("http server starting", map[string]interface{}{
		"addr": s.httpServer.Addr,
	})
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(shutdownCtx)
}
