package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MikeSquared-Agency/muse/internal/api"
	"github.com/MikeSquared-Agency/muse/internal/bus"
	"github.com/MikeSquared-Agency/muse/internal/campaign"
	"github.com/MikeSquared-Agency/muse/internal/config"
	"github.com/MikeSquared-Agency/muse/internal/corpus"
	"github.com/MikeSquared-Agency/muse/internal/enrich"
	"github.com/MikeSquared-Agency/muse/internal/generator"
	"github.com/MikeSquared-Agency/muse/internal/insight"
	"github.com/MikeSquared-Agency/muse/internal/llm"
	"github.com/MikeSquared-Agency/muse/internal/matcher"
	"github.com/MikeSquared-Agency/muse/internal/pipeline"
	"github.com/MikeSquared-Agency/muse/internal/store"
	"github.com/MikeSquared-Agency/muse/internal/trends"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("muse starting", "port", cfg.Port)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// LLM client — required for generation, checked lazily so the service
	// can still boot and report status without a key.
	if cfg.LLMAPIKey == "" {
		slog.Warn("LLM_API_KEY not set — generation requests will fail")
	}
	client := llm.NewClient(cfg.LLMAPIKey, cfg.Model, cfg.Temperature)
	slog.Info("llm client ready", "model", cfg.Model)

	// Reference corpus — Postgres when configured, embedded seed otherwise.
	var db *store.Store
	var refs []campaign.Reference
	if cfg.DatabaseURL != "" {
		var err error
		db, err = store.New(ctx, cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		refs, err = db.LoadReferences(ctx)
		if err != nil {
			slog.Error("failed to load reference corpus", "error", err)
			os.Exit(1)
		}
		slog.Info("reference corpus loaded from database", "count", len(refs))
	} else {
		refs = corpus.Seed()
		slog.Warn("DATABASE_URL not set — running on the embedded seed corpus", "count", len(refs))
	}
	corp := corpus.New(refs, slog.Default())

	// Matcher — embedding path when a key is present, keyword fallback
	// always available.
	var embeddingMatcher *matcher.EmbeddingMatcher
	if cfg.LLMAPIKey != "" {
		var err error
		embeddingMatcher, err = matcher.NewEmbeddingMatcher(client, cfg.EmbeddingModel, slog.Default())
		if err != nil {
			slog.Error("failed to create embedding matcher", "error", err)
			os.Exit(1)
		}
	}
	selector := matcher.NewSelector(embeddingMatcher, slog.Default())

	// Trends cache, primed once at startup, kept fresh over the bus.
	trendCache := trends.NewCache(slog.Default())
	if cfg.TrendsURL != "" {
		if err := trendCache.LoadFromURL(ctx, cfg.TrendsURL); err != nil {
			slog.Warn("initial trend load failed — continuing without trends", "error", err)
		}
	}

	// Optional external collaborators, invoked in this order.
	var ports []enrich.Port
	if cfg.CreativeDirectorURL != "" {
		ports = append(ports, enrich.NewRefiner("creative_director", cfg.CreativeDirectorURL, slog.Default()))
		slog.Info("creative director collaborator ready")
	}
	if cfg.DisruptiveURL != "" {
		ports = append(ports, enrich.NewRefiner("disruptive", cfg.DisruptiveURL, slog.Default()))
		slog.Info("disruptive collaborator ready")
	}

	buildGenerator := func(c *llm.Client) *generator.Generator {
		pipe := pipeline.New(c, ports, slog.Default())
		insights := insight.New(c, slog.Default())
		return generator.New(c, insights, selector, trendCache, pipe, corp, slog.Default())
	}
	defaultGen := buildGenerator(client)

	// Per-request apiKey/model overrides rebuild the run around a copied
	// client; everything else (corpus, trends, matcher) is shared.
	generators := func(apiKey, model string) api.Generator {
		if apiKey == "" && model == "" {
			return defaultGen
		}
		return buildGenerator(client.WithOverrides(apiKey, model))
	}

	// NATS — optional; without it there are no run events and no live
	// trend updates.
	var busClient *bus.Client
	if cfg.NatsURL != "" {
		var err error
		busClient, err = bus.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Warn("failed to connect to NATS — continuing without bus", "error", err)
		} else {
			defer busClient.Close()
			slog.Info("NATS connected", "url", cfg.NatsURL)

			if err := busClient.Subscribe(bus.SubjectTrendsUpdated, trendCache.HandleUpdate); err != nil {
				slog.Warn("failed to subscribe to trend updates", "error", err)
			}
		}
	}

	// Embeddings rebuild, exposed through the API.
	var rebuild api.RebuildFunc
	if cfg.LLMAPIKey != "" {
		var persister corpus.Persister
		if db != nil {
			persister = db
		}
		rebuild = func(ctx context.Context) (int, error) {
			return corp.Rebuild(ctx, client, cfg.EmbeddingModel, persister)
		}
	}

	var publisher api.Publisher
	if busClient != nil {
		publisher = busClient
	}
	srv := api.NewServer(cfg.Port, generators, corp, trendCache, rebuild, publisher, slog.Default())
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	if busClient != nil {
		if err := busClient.Publish("swarm.agent.muse.registered", map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"port":      cfg.Port,
		}); err != nil {
			slog.Warn("failed to publish registration", "error", err)
		}
	}

	slog.Info("muse ready", "port", cfg.Port, "corpus", corp.Size())

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh
	slog.Info("shutting down")
	cancel()
	slog.Info("muse stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
