// internal/common/config/config.go
package config

import "fmt"

// Config is the main application configuration struct. It is constructed once
// at startup and passed into each component; nothing reads ambient process
// state after Load returns.
type Config struct {
	App           AppConfig           `mapstructure:"app"`
	Server        ServerConfig        `mapstructure:"server"`
	Agent         AgentConfig         `mapstructure:"agent"`
	Auth          AuthConfig          `mapstructure:"auth"`
	ChurnData     ChurnDataConfig     `mapstructure:"churn_data"`
	WebSearch     WebSearchConfig     `mapstructure:"web_search"`
	Database      DatabaseConfig      `mapstructure:"database"`
	AWS           AWSConfig           `mapstructure:"aws"`
	Logging       LoggingConfig       `mapstructure:"logging"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port           int `mapstructure:"port"`
	ReadTimeout    int `mapstructure:"read_timeout"`    // milliseconds
	WriteTimeout   int `mapstructure:"write_timeout"`   // milliseconds
	RequestTimeout int `mapstructure:"request_timeout"` // milliseconds
}

// AgentConfig holds the recognized parameters of the hosted agent runtime.
// When ParameterPrefix is set, empty fields are overlaid from the central
// parameter store at process start.
type AgentConfig struct {
	GatewayURL      string `mapstructure:"gateway_url"`
	KnowledgeBaseID string `mapstructure:"knowledge_base_id"`
	MemoryID        string `mapstructure:"memory_id"`
	ParameterPrefix string `mapstructure:"parameter_prefix"`
	Timeout         int    `mapstructure:"timeout"` // milliseconds
}

// AuthConfig holds identity-provider settings for bearer verification.
type AuthConfig struct {
	Issuer   string `mapstructure:"issuer"`
	Audience string `mapstructure:"audience"`
	JWKSURL  string `mapstructure:"jwks_url"` // defaults to {issuer}/.well-known/jwks.json
}

// ChurnDataConfig selects and configures the analytic query engine behind the
// churn signal lookup.
type ChurnDataConfig struct {
	Engine string       `mapstructure:"engine"` // "athena" or "postgres"
	View   string       `mapstructure:"view"`
	Athena AthenaConfig `mapstructure:"athena"`
}

type AthenaConfig struct {
	Database       string `mapstructure:"database"`
	Workgroup      string `mapstructure:"workgroup"`
	OutputLocation string `mapstructure:"output_location"`
	PollInterval   int    `mapstructure:"poll_interval"` // milliseconds
	Timeout        int    `mapstructure:"timeout"`       // milliseconds
}

// WebSearchConfig holds settings for the third-party search API.
type WebSearchConfig struct {
	BaseURL       string `mapstructure:"base_url"`
	APIKey        string `mapstructure:"api_key"`
	EngineID      string `mapstructure:"engine_id"`
	Timeout       int    `mapstructure:"timeout"` // milliseconds
	DefaultRegion string `mapstructure:"default_region"`
	MaxResults    int    `mapstructure:"max_results"`
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Redis         RedisConfig         `mapstructure:"redis"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
}

type PostgresConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type ElasticsearchConfig struct {
	Addresses  []string `mapstructure:"addresses"`
	Username   string   `mapstructure:"username"`
	Password   string   `mapstructure:"password"`
	AuditIndex string   `mapstructure:"audit_index"`
}

// Enabled reports whether the invocation audit sink is configured.
func (e ElasticsearchConfig) Enabled() bool {
	return len(e.Addresses) > 0
}

type AWSConfig struct {
	Region string `mapstructure:"region"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ObservabilityConfig struct {
	TracingEnabled bool   `mapstructure:"tracing_enabled"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint"`
}
