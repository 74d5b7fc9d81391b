package config

import (
	"flag"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	pkgRetry "github.com/edgerag/rag-gateway/internal/pkg/retry"
	"github.com/joho/godotenv"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR,notEmpty"`

	// External service configurations
	EmbeddingConnectorCfg   EmbeddingConnectorConfig   `envPrefix:"EMBEDDING_"`
	VectorStoreConnectorCfg VectorStoreConnectorConfig `envPrefix:"VECTOR_STORE_"`
	ChatConnectorCfg        ChatConnectorConfig        `envPrefix:"CHAT_"`

	// Retrieval configuration
	RetrievalCfg RetrievalConfig `envPrefix:"RETRIEVAL_"`

	// Uploaded document storage configuration
	FileStoreCfg FileStoreConfig `envPrefix:"FILE_STORE_"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL,notEmpty"`

	// Mock configuration
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Environment (set from flag, not from env var)
	Environment string
}

// EmbeddingConnectorConfig configures the embedding service client.
type EmbeddingConnectorConfig struct {
	HTTPClientConfig
	EmbeddingsEndpoint string               `env:"EMBEDDINGS_ENDPOINT" envDefault:"/v1/embeddings"`
	CacheTTL           time.Duration        `env:"CACHE_TTL" envDefault:"10m"`
	Retry              pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// VectorStoreConnectorConfig configures the vector store client. The store
// URL and collection come from each request; only client behavior lives here.
type VectorStoreConnectorConfig struct {
	HTTPClientConfig
	APIKey string               `env:"API_KEY"`
	Retry  pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// ChatConnectorConfig configures the downstream chat-completion engine
// client.
type ChatConnectorConfig struct {
	HTTPClientConfig
	ChatEndpoint string               `env:"CHAT_ENDPOINT" envDefault:"/v1/chat/completions"`
	Retry        pkgRetry.RetryConfig `envPrefix:"RETRY_"`
}

// RetrievalConfig holds the retrieval step defaults.
type RetrievalConfig struct {
	// Minimum similarity score a point must reach to be kept.
	ScoreThreshold float32 `env:"SCORE_THRESHOLD" envDefault:"0.5"`

	// Number of trailing user messages used to build the retrieval query
	// when the request does not set context_window.
	DefaultContextWindow uint64 `env:"DEFAULT_CONTEXT_WINDOW" envDefault:"1"`
}

// FileStoreConfig holds upload storage limits and location.
type FileStoreConfig struct {
	Dir           string `env:"DIR" envDefault:"archives"`
	MaxFileSize   int64  `env:"MAX_FILE_SIZE" envDefault:"5242880"`    // 5 MiB
	MaxUploadSize int64  `env:"MAX_UPLOAD_SIZE" envDefault:"33554432"` // 32 MiB
}

type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"30s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"10s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"10s"`
	Token                 string        `env:"TOKEN"`
	Url                   string        `env:"SERVICE_URL"`
}

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.Environment = *envFlag

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	if cfg.RetrievalCfg.ScoreThreshold < 0 || cfg.RetrievalCfg.ScoreThreshold > 1 {
		return fmt.Errorf("RETRIEVAL_SCORE_THRESHOLD must be between 0.0 and 1.0, got %f", cfg.RetrievalCfg.ScoreThreshold)
	}

	if cfg.RetrievalCfg.DefaultContextWindow < 1 {
		return fmt.Errorf("RETRIEVAL_DEFAULT_CONTEXT_WINDOW must be at least 1, got %d", cfg.RetrievalCfg.DefaultContextWindow)
	}

	if cfg.FileStoreCfg.MaxFileSize < 1 {
		return fmt.Errorf("FILE_STORE_MAX_FILE_SIZE must be positive, got %d", cfg.FileStoreCfg.MaxFileSize)
	}

	if cfg.FileStoreCfg.MaxUploadSize < cfg.FileStoreCfg.MaxFileSize {
		return fmt.Errorf("FILE_STORE_MAX_UPLOAD_SIZE must be at least FILE_STORE_MAX_FILE_SIZE(%d), got %d",
			cfg.FileStoreCfg.MaxFileSize, cfg.FileStoreCfg.MaxUploadSize)
	}

	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
