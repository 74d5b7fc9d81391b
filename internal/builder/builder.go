package builder

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/edgerag/rag-gateway/internal/api"
	documentsapi "github.com/edgerag/rag-gateway/internal/api/documents"
	ragapi "github.com/edgerag/rag-gateway/internal/api/rag"
	"github.com/edgerag/rag-gateway/internal/config"
	"github.com/edgerag/rag-gateway/internal/integration/chat"
	"github.com/edgerag/rag-gateway/internal/integration/embedding"
	"github.com/edgerag/rag-gateway/internal/integration/vectorstore"
	"github.com/edgerag/rag-gateway/internal/pkg/logger"
	"github.com/edgerag/rag-gateway/internal/pkg/validator"
	"github.com/edgerag/rag-gateway/internal/usecase/documents"
	"github.com/edgerag/rag-gateway/internal/usecase/rag"
	"go.uber.org/zap"
)

func Build() (*App, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	log, err := logger.Setup(cfg.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("setup logger: %w", err)
	}

	log.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	// Upload storage directory must exist before the first request
	if err := os.MkdirAll(cfg.FileStoreCfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("create file store directory: %w", err)
	}

	// Initialize external service connectors (with mock support)
	var embeddingConnector rag.EmbeddingConnector
	var vectorStoreConnector rag.VectorStoreConnector
	var chatConnector rag.ChatConnector

	if cfg.EnableMocks {
		log.Info("Using mock connectors for external services")
		embeddingConnector = embedding.NewMockConnector(log)
		vectorStoreConnector = vectorstore.NewMockConnector(log)
		chatConnector = chat.NewMockConnector(log)
	} else {
		log.Info("Using real connectors for external services")
		embeddingConnector = embedding.NewConnector(cfg.EmbeddingConnectorCfg, log)
		vectorStoreConnector = vectorstore.NewConnector(cfg.VectorStoreConnectorCfg, log)
		chatConnector = chat.NewConnector(cfg.ChatConnectorCfg, log)
	}

	// Initialize validators
	requestValidator := validator.NewValidator(cfg.FileStoreCfg)
	log.Info("Validators initialized")

	// Initialize use cases
	ragUC := rag.NewUsecase(
		embeddingConnector,
		vectorStoreConnector,
		chatConnector,
		requestValidator,
		cfg.RetrievalCfg,
		log,
	)

	documentsUC := documents.NewUsecase(requestValidator, cfg.FileStoreCfg, log)
	log.Info("Use cases initialized")

	// Setup API handlers
	ragHandler := ragapi.NewHandler(ragUC)
	documentsHandler := documentsapi.NewHandler(documentsUC, cfg.FileStoreCfg)
	log.Info("API handlers initialized")

	// Setup router
	router := api.SetupRouter(ragHandler, documentsHandler, log)
	log.Info("HTTP router configured")

	// Create HTTP server. Write timeout stays generous because chat
	// completions can stream for a while.
	server := &http.Server{
		Addr:        cfg.ServerAddr,
		Handler:     router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	log.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: log,
	}, nil
}
