// cmd/retention-gateway/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/ajithmanmu/customer-retention-agent/internal/catalog"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/auth"
	commonaws "github.com/ajithmanmu/customer-retention-agent/internal/common/aws"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/config"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/database"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/logger"
	"github.com/ajithmanmu/customer-retention-agent/internal/common/observability"
	"github.com/ajithmanmu/customer-retention-agent/internal/gateway"
	"github.com/ajithmanmu/customer-retention-agent/internal/orchestrator"
	churnlookup "github.com/ajithmanmu/customer-retention-agent/internal/tools/churn-lookup"
	retentionoffer "github.com/ajithmanmu/customer-retention-agent/internal/tools/retention-offer"
	websearch "github.com/ajithmanmu/customer-retention-agent/internal/tools/web-search"
	"github.com/ajithmanmu/customer-retention-agent/pkg/registry"
)

const registryPath = "configs/tool-registry.json"

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer func() { _ = zapLog.Sync() }()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting retention gateway...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	// Rebuild the logger with the configured level and format now that the
	// config is available.
	zapLog = logger.New(cfg.Logging.Level, cfg.Logging.Format)
	log = logger.NewZapAdapter(zapLog)

	ctx := context.Background()

	// --- Overlay shared agent parameters from the central store ---
	if cfg.Agent.ParameterPrefix != "" {
		ssmClient, err := commonaws.NewSSMClient(ctx, cfg.AWS.Region)
		if err != nil {
			zapLog.Fatal("ssm client failed", zap.Error(err))
		}
		params, err := ssmClient.GetParametersByPrefix(ctx, cfg.Agent.ParameterPrefix)
		if err != nil {
			zapLog.Fatal("parameter store read failed", zap.Error(err))
		}
		if cfg.Agent.GatewayURL == "" {
			cfg.Agent.GatewayURL = params["gateway_url"]
		}
		if cfg.Agent.KnowledgeBaseID == "" {
			cfg.Agent.KnowledgeBaseID = params["knowledge_base_id"]
		}
		if cfg.Agent.MemoryID == "" {
			cfg.Agent.MemoryID = params["memory_id"]
		}
		zapLog.Info("agent parameters loaded from parameter store",
			zap.String("prefix", cfg.Agent.ParameterPrefix))
	}

	if cfg.Agent.GatewayURL == "" {
		zapLog.Fatal("agent gateway URL is not configured")
	}

	jaegerEndpoint := ""
	if cfg.Observability.TracingEnabled {
		jaegerEndpoint = cfg.Observability.JaegerEndpoint
	}
	obs := observability.New("retention-gateway", jaegerEndpoint)
	defer obs.Shutdown()

	// --- Init churn query engine ---
	var engine churnlookup.QueryEngine
	switch cfg.ChurnData.Engine {
	case "athena":
		athenaClient, err := commonaws.NewAthenaClient(ctx,
			cfg.AWS.Region,
			cfg.ChurnData.Athena.Database,
			cfg.ChurnData.Athena.Workgroup,
			cfg.ChurnData.Athena.OutputLocation,
			time.Duration(cfg.ChurnData.Athena.PollInterval)*time.Millisecond,
		)
		if err != nil {
			zapLog.Fatal("athena client failed", zap.Error(err))
		}
		engine = churnlookup.NewAthenaEngine(athenaClient, cfg.ChurnData.View)
		zapLog.Info("churn engine initialized", zap.String("engine", "athena"))

	case "postgres":
		var pg *database.PostgresClient
		err = retryWithBackoff(func() error {
			var err error
			pg, err = database.NewPostgres(cfg.Database.Postgres)
			if err != nil {
				return err
			}
			return pg.Ping(ctx)
		}, 15, 2*time.Second, zapLog, "PostgreSQL connection")
		if err != nil {
			zapLog.Fatal("postgres failed after retries", zap.Error(err))
		}
		defer pg.Close()
		engine = churnlookup.NewPostgresEngine(pg.DB, cfg.ChurnData.View)
		zapLog.Info("churn engine initialized", zap.String("engine", "postgres"))

	default:
		zapLog.Fatal("unknown churn engine", zap.String("engine", cfg.ChurnData.Engine))
	}

	// --- Init Redis session store with retry ---
	var redisClient *database.RedisClient
	err = retryWithBackoff(func() error {
		var err error
		redisClient, err = database.NewRedis(cfg.Database.Redis)
		if err != nil {
			return err
		}
		return redisClient.Ping(ctx)
	}, 10, 2*time.Second, zapLog, "Redis connection")
	if err != nil {
		zapLog.Fatal("redis failed after retries", zap.Error(err))
	}
	defer redisClient.Close()
	zapLog.Info("Redis connected successfully")

	// --- Init optional audit sink ---
	var auditor *gateway.Auditor
	if cfg.Database.Elasticsearch.Enabled() {
		esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
		if err != nil {
			zapLog.Fatal("elasticsearch client failed", zap.Error(err))
		}
		if err := esClient.Ping(); err != nil {
			zapLog.Warn("elasticsearch unreachable, auditing degraded", zap.Error(err))
		}
		auditor = gateway.NewAuditor(esClient, cfg.Database.Elasticsearch.AuditIndex, log)
		zapLog.Info("invocation audit sink enabled",
			zap.String("index", cfg.Database.Elasticsearch.AuditIndex))
	}

	// --- Build tool handlers ---
	offerCatalog, err := catalog.Default()
	if err != nil {
		zapLog.Fatal("offer catalog invalid", zap.Error(err))
	}

	churnHandler := churnlookup.NewHandler(churnlookup.LoadConfig(cfg.ChurnData.View), engine, log)
	offerHandler := retentionoffer.NewHandler(retentionoffer.LoadConfig(), offerCatalog, log)
	searchHandler := websearch.NewHandler(&websearch.Config{
		BaseURL:       cfg.WebSearch.BaseURL,
		APIKey:        cfg.WebSearch.APIKey,
		EngineID:      cfg.WebSearch.EngineID,
		Timeout:       time.Duration(cfg.WebSearch.Timeout) * time.Millisecond,
		DefaultRegion: cfg.WebSearch.DefaultRegion,
		MaxResults:    cfg.WebSearch.MaxResults,
	}, log)

	reg, err := registry.LoadRegistry(registryPath)
	if err != nil {
		zapLog.Fatal("tool registry load failed", zap.Error(err))
	}

	toolsHandler, err := gateway.NewToolsHandler(churnHandler, offerHandler, searchHandler, reg, auditor, log)
	if err != nil {
		zapLog.Fatal("tools handler failed", zap.Error(err))
	}

	// --- Build chat boundary ---
	verifier := auth.NewVerifier(cfg.Auth.Issuer, cfg.Auth.Audience, cfg.Auth.JWKSURL)
	sessions := gateway.NewSessionStore(redisClient.Client)
	agentClient := orchestrator.NewClient(
		cfg.Agent.GatewayURL,
		time.Duration(cfg.Agent.Timeout)*time.Millisecond,
		log,
	)
	chatHandler := gateway.NewChatHandler(verifier, sessions, agentClient, log)

	server := gateway.NewServer(cfg.Server, chatHandler, toolsHandler, log)

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-stop:
		zapLog.Info("shutdown signal received", zap.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			zapLog.Fatal("http server failed", zap.Error(err))
		}
	}

	if err := server.Shutdown(context.Background()); err != nil {
		zapLog.Error("graceful shutdown failed", zap.Error(err))
	}
	zapLog.Info("retention gateway stopped")
}
