package setup

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/finassist/policy-agent/internal/bedrock"
	"github.com/finassist/policy-agent/internal/coordinator"
	"github.com/finassist/policy-agent/internal/database"
	"github.com/finassist/policy-agent/internal/embedding"
	"github.com/finassist/policy-agent/internal/evidence"
	"github.com/finassist/policy-agent/internal/guardrail"
	llmbedrock "github.com/finassist/policy-agent/internal/llm/bedrock"
	"github.com/finassist/policy-agent/internal/router"
	"github.com/finassist/policy-agent/internal/session"
	"github.com/finassist/policy-agent/internal/specialist"
)

const (
	CorpusPolicy = "policy"
	CorpusFAQ    = "faq"
)

// App holds the wired service graph. Close releases whatever external
// connections were actually opened.
type App struct {
	Config      Config
	Registry    *guardrail.Registry
	Coordinator *coordinator.Coordinator
	DB          *database.DB
}

func (a *App) Close() {
	if a.DB != nil {
		a.DB.Close()
	}
}

// Wire builds the full pipeline from configuration. Optional backends
// degrade instead of failing startup: no corpus database falls back to the
// built-in seed snippets, no Redis falls back to in-process history, and no
// remote moderation falls back to the local topic matcher.
func Wire(ctx context.Context, cfg Config, logger zerolog.Logger) (*App, error) {
	registry, err := loadRegistry(cfg)
	if err != nil {
		return nil, err
	}

	clients, err := bedrock.LoadClients(ctx, cfg.AWSRegion)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS clients: %w", err)
	}

	llmClient := llmbedrock.NewClientFromRuntime(clients.Runtime, cfg.ClaudeModelID)
	embedder := embedding.NewTitanEmbedder(clients.Runtime, cfg.EmbedModelID, cfg.EmbedDim)

	enforcer, err := buildEnforcer(cfg, registry, clients, logger)
	if err != nil {
		return nil, err
	}

	app := &App{
		Config:   cfg,
		Registry: registry,
	}

	policyStore := evidence.NewStore(CorpusPolicy, embedder, logger)
	faqStore := evidence.NewStore(CorpusFAQ, embedder, logger)

	if cfg.DBHost != "" {
		db, err := database.NewWithBackoff(ctx, database.Config{
			Host:     cfg.DBHost,
			Port:     cfg.DBPort,
			User:     cfg.DBUser,
			Password: cfg.DBPassword,
			Database: cfg.DBName,
			SSLMode:  cfg.DBSSLMode,
		}, 3)
		if err != nil {
			logger.Warn().Err(err).Msg("Corpus database unavailable, using seed snippets")
		} else {
			app.DB = db
			loadCorpus(ctx, db, policyStore, CorpusPolicy, logger)
			loadCorpus(ctx, db, faqStore, CorpusFAQ, logger)
		}
	}
	if policyStore.Len() == 0 {
		evidence.SeedStore(ctx, policyStore, evidence.SeedPolicyDocuments(), logger)
	}
	if faqStore.Len() == 0 {
		evidence.SeedStore(ctx, faqStore, evidence.SeedFAQDocuments(), logger)
	}

	var sessions session.Store
	if cfg.RedisAddr != "" {
		redisClient, err := session.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword, 5, logger)
		if err != nil {
			logger.Warn().Err(err).Msg("Redis unavailable, using in-process session history")
			sessions = session.NewMemoryStore()
		} else {
			sessions = session.NewRedisStore(redisClient, cfg.RedisTTL, logger)
		}
	} else {
		sessions = session.NewMemoryStore()
	}

	policySpecialist := specialist.NewPolicySpecialist(policyStore, faqStore, llmClient, logger)

	app.Coordinator = coordinator.New(
		enforcer,
		router.NewClassifier(),
		policySpecialist,
		policySpecialist,
		specialist.NewRecommendationSpecialist(),
		coordinator.NewSynthesizer(llmClient, logger),
		sessions,
		logger,
	)

	return app, nil
}

func loadRegistry(cfg Config) (*guardrail.Registry, error) {
	if cfg.ProfilesPath == "" {
		return guardrail.DefaultRegistry(), nil
	}
	registry, err := guardrail.LoadRegistry(cfg.ProfilesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load profiles from %s: %w", cfg.ProfilesPath, err)
	}
	return registry, nil
}

func buildEnforcer(cfg Config, registry *guardrail.Registry, clients *bedrock.Clients, logger zerolog.Logger) (guardrail.Enforcer, error) {
	if !cfg.RemoteModeration {
		logger.Info().Msg("Remote moderation disabled, using local topic matcher")
		return guardrail.NewLocalEnforcer(registry, logger), nil
	}

	identities, err := guardrail.NewFileIdentityStore(cfg.IdentityDir)
	if err != nil {
		return nil, fmt.Errorf("failed to open identity store: %w", err)
	}

	var opts []guardrail.RemoteEnforcerOption
	if cfg.ModerationFailMode == "closed" {
		opts = append(opts, guardrail.WithFailClosed())
	}

	return guardrail.NewRemoteEnforcer(registry, bedrock.NewModeration(clients), identities, logger, opts...), nil
}

func loadCorpus(ctx context.Context, db *database.DB, store *evidence.Store, corpus string, logger zerolog.Logger) {
	chunks, err := db.LoadCorpus(ctx, corpus)
	if err != nil {
		logger.Warn().Err(err).Str("corpus", corpus).Msg("Failed to load corpus")
		return
	}

	for _, chunk := range chunks {
		store.Add(evidence.Document{
			ID:      chunk.Id,
			Content: chunk.Content,
			Source:  chunk.Source,
		}, chunk.Embedding)
	}

	logger.Info().Str("corpus", corpus).Int("chunks", len(chunks)).Msg("Corpus loaded")
}
