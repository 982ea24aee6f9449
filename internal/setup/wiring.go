package setup

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/genieai/rag-eval-agent/internal/config"
	"github.com/genieai/rag-eval-agent/internal/executor"
	"github.com/genieai/rag-eval-agent/internal/judge"
	"github.com/genieai/rag-eval-agent/internal/langfuse"
	"github.com/genieai/rag-eval-agent/internal/llm"
	"github.com/genieai/rag-eval-agent/internal/llm/bedrock"
	"github.com/genieai/rag-eval-agent/internal/llm/gpt"
	"github.com/genieai/rag-eval-agent/internal/runner"
	"github.com/genieai/rag-eval-agent/internal/sink"
	"github.com/genieai/rag-eval-agent/internal/store"
)

type Dependencies struct {
	Controller *runner.Controller
	Selector   *store.TurnSelector
	Logger     *zerolog.Logger

	disconnect func(context.Context) error
}

// Close releases the MongoDB connection.
func (d *Dependencies) Close(ctx context.Context) error {
	if d.disconnect == nil {
		return nil
	}
	return d.disconnect(ctx)
}

func Wire(ctx context.Context, cfg *Config, logger *zerolog.Logger) (*Dependencies, error) {
	mongoClient, err := store.Connect(ctx, cfg.MongoURI, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}
	db := mongoClient.Database(cfg.MongoDBName)

	llmClient, err := createLLMClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}

	// Load the dimension catalog from YAML
	catalog, err := config.LoadCatalog()
	if err != nil {
		return nil, fmt.Errorf("failed to load dimension catalog: %w", err)
	}

	// Build one scorer per enabled dimension
	pool := judge.NewPool(llmClient, logger)
	scorers, err := pool.BuildFromCatalog(catalog)
	if err != nil {
		return nil, fmt.Errorf("failed to build judges from catalog: %w", err)
	}

	orchestrator := executor.NewOrchestrator(scorers, logger)

	selector := store.NewTurnSelector(db, logger)
	repository := store.NewEvaluationRepository(db, logger)

	var traces sink.TraceEmitter
	if cfg.TracingEnabled() {
		lf, err := langfuse.NewClient(cfg.LangfuseHost, cfg.LangfusePublicKey, cfg.LangfuseSecretKey, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create langfuse client: %w", err)
		}
		traces = lf
	} else {
		logger.Warn().Msg("langfuse credentials not set, tracing disabled")
	}

	recordSink := sink.NewSink(repository, traces, logger)
	gate := runner.Gate{ScheduleDay: cfg.ScheduleDay}

	controller := runner.NewController(selector, orchestrator, recordSink, gate, cfg.Workers, logger)

	return &Dependencies{
		Controller: controller,
		Selector:   selector,
		Logger:     logger,
		disconnect: mongoClient.Disconnect,
	}, nil
}

func createLLMClient(ctx context.Context, cfg *Config) (llm.Client, error) {
	switch cfg.DefaultProvider {
	case "bedrock":
		return bedrock.NewClient(ctx, cfg.AWSRegion, cfg.ClaudeModelID, cfg.LLMTimeout)
	case "openai":
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID, cfg.LLMTimeout)
	default:
		return gpt.NewClient(cfg.OpenAIKey, cfg.OpenAIModelID, cfg.LLMTimeout)
	}
}
