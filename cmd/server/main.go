package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/BerylCAtieno/scheme-recommender/internal/api"
	"github.com/BerylCAtieno/scheme-recommender/internal/config"
	"github.com/BerylCAtieno/scheme-recommender/internal/form"
	"github.com/BerylCAtieno/scheme-recommender/internal/logger"
	"github.com/BerylCAtieno/scheme-recommender/internal/recommender"
	"github.com/BerylCAtieno/scheme-recommender/internal/render"
	"github.com/BerylCAtieno/scheme-recommender/internal/retrieval"
	"github.com/BerylCAtieno/scheme-recommender/internal/session"
	"github.com/BerylCAtieno/scheme-recommender/internal/web"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.NewStructured("error", "console").Error("failed to load config", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := newStore(ctx, cfg)
	if err != nil {
		log.WithError(err).Error("failed to open session store", nil)
		os.Exit(1)
	}
	defer closeStore()

	client := form.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, log)
	submitter := form.NewSubmitter(client, store, log)
	formHandler := web.NewHandler(store, submitter, render.NewRenderer(), web.Options{
		CookieName: cfg.Session.CookieName,
		CookieTTL:  cfg.Session.TTL,
	}, log)

	var extra []web.Registrar
	if cfg.Recommender.Enabled {
		opts := recommender.Options{
			Model:       cfg.Recommender.Model,
			Temperature: cfg.Recommender.Temperature,
			TopP:        cfg.Recommender.TopP,
			MaxTokens:   cfg.Recommender.MaxTokens,
		}
		if cfg.Retrieval.Enabled {
			retriever, closeRetriever, err := newRetriever(ctx, cfg, log)
			if err != nil {
				log.WithError(err).Error("failed to open scheme index", nil)
				os.Exit(1)
			}
			defer closeRetriever()
			opts.Retriever = retriever
		}

		gemini, err := recommender.NewGeminiClient(ctx, cfg.Recommender.APIKey, opts)
		if err != nil {
			log.WithError(err).Error("failed to create Gemini client", nil)
			os.Exit(1)
		}
		defer gemini.Close()
		extra = append(extra, api.NewHandler(gemini, log))
	}

	router, err := web.NewRouter(formHandler, log, extra...)
	if err != nil {
		log.WithError(err).Error("failed to build router", nil)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	log.Info("scheme recommender starting", map[string]interface{}{
		"port":        cfg.Server.Port,
		"upstream":    cfg.Upstream.BaseURL,
		"sessions":    cfg.Session.Backend,
		"recommender": cfg.Recommender.Enabled,
		"retrieval":   cfg.Retrieval.Enabled,
	})

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.WithError(err).Error("server failed", nil)
		os.Exit(1)
	}
	log.Info("server stopped", nil)
}

func newStore(ctx context.Context, cfg *config.Config) (session.Store, func(), error) {
	if cfg.Session.Backend != config.SessionBackendRedis {
		return session.NewMemory(cfg.Session.TTL), func() {}, nil
	}

	store := session.NewRedis(
		session.NewRedisClient(cfg.Redis.Address, cfg.Redis.Password, cfg.Redis.DB),
		cfg.Session.TTL,
	)
	if err := store.Ping(ctx); err != nil {
		_ = store.Close()
		return nil, nil, err
	}
	return store, func() { _ = store.Close() }, nil
}

func newRetriever(ctx context.Context, cfg *config.Config, log logger.Logger) (*retrieval.Retriever, func(), error) {
	embedder, err := retrieval.NewGeminiEmbedder(ctx, cfg.Recommender.APIKey, cfg.Retrieval.EmbeddingModel)
	if err != nil {
		return nil, nil, err
	}

	ix, err := retrieval.Open(ctx, retrieval.Options{
		CorpusDir: cfg.Retrieval.CorpusDir,
		IndexPath: cfg.Retrieval.IndexPath,
		Chunking: retrieval.ChunkOptions{
			Size:    cfg.Retrieval.ChunkSize,
			Overlap: cfg.Retrieval.ChunkOverlap,
		},
	}, embedder, log)
	if err != nil {
		_ = embedder.Close()
		return nil, nil, err
	}
	return retrieval.NewRetriever(ix, embedder, cfg.Retrieval.TopK), func() { _ = embedder.Close() }, nil
}
