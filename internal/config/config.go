package config

import (
	"fmt"
	"strings"
	"time"
)

// Config is the application configuration.
type Config struct {
	Server      ServerConfig      `mapstructure:"server"`
	Upstream    UpstreamConfig    `mapstructure:"upstream"`
	Session     SessionConfig     `mapstructure:"session"`
	Redis       RedisConfig       `mapstructure:"redis"`
	Recommender RecommenderConfig `mapstructure:"recommender"`
	Retrieval   RetrievalConfig   `mapstructure:"retrieval"`
	Logging     LoggingConfig     `mapstructure:"logging"`
}

type ServerConfig struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"` // gin mode: debug, release, test
}

// UpstreamConfig points the form at the service implementing /get_schemes.
type UpstreamConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"` // 0 waits indefinitely
}

type SessionConfig struct {
	Backend    string        `mapstructure:"backend"` // memory or redis
	TTL        time.Duration `mapstructure:"ttl"`
	CookieName string        `mapstructure:"cookie_name"`
}

type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type RecommenderConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Temperature float32 `mapstructure:"temperature"`
	TopP        float32 `mapstructure:"top_p"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
}

// RetrievalConfig grounds the recommender in a local scheme corpus: one
// folder per state of .txt/.md files, embedded into a JSON index.
type RetrievalConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	CorpusDir      string `mapstructure:"corpus_dir"`
	IndexPath      string `mapstructure:"index_path"`
	EmbeddingModel string `mapstructure:"embedding_model"`
	TopK           int    `mapstructure:"top_k"`
	ChunkSize      int    `mapstructure:"chunk_size"`
	ChunkOverlap   int    `mapstructure:"chunk_overlap"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
	}
	if cfg.Server.Mode == "" {
		cfg.Server.Mode = "release"
	}
	if cfg.Upstream.BaseURL == "" {
		cfg.Upstream.BaseURL = "http://localhost:" + cfg.Server.Port
	}
	cfg.Upstream.BaseURL = strings.TrimRight(cfg.Upstream.BaseURL, "/")
	if cfg.Session.Backend == "" {
		cfg.Session.Backend = SessionBackendMemory
	}
	if cfg.Session.TTL == 0 {
		cfg.Session.TTL = 30 * time.Minute
	}
	if cfg.Session.CookieName == "" {
		cfg.Session.CookieName = "scheme_session"
	}
	if cfg.Redis.Address == "" {
		cfg.Redis.Address = "localhost:6379"
	}
	if cfg.Recommender.Model == "" {
		cfg.Recommender.Model = "gemini-2.5-flash-lite"
	}
	if cfg.Recommender.Temperature == 0 {
		cfg.Recommender.Temperature = 0.3
	}
	if cfg.Recommender.TopP == 0 {
		cfg.Recommender.TopP = 0.85
	}
	if cfg.Recommender.MaxTokens == 0 {
		cfg.Recommender.MaxTokens = 4096
	}
	if cfg.Retrieval.EmbeddingModel == "" {
		cfg.Retrieval.EmbeddingModel = "text-embedding-004"
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 4
	}
	if cfg.Retrieval.ChunkSize == 0 {
		cfg.Retrieval.ChunkSize = 500
	}
	if cfg.Retrieval.ChunkOverlap == 0 {
		cfg.Retrieval.ChunkOverlap = 50
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "console"
	}
}

func validateConfig(cfg *Config) error {
	switch cfg.Session.Backend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("session.backend must be %q or %q, got %q",
			SessionBackendMemory, SessionBackendRedis, cfg.Session.Backend)
	}
	if cfg.Upstream.Timeout < 0 {
		return fmt.Errorf("upstream.timeout must not be negative")
	}
	if cfg.Recommender.Enabled && cfg.Recommender.APIKey == "" {
		return fmt.Errorf("recommender.enabled requires GEMINI_API_KEY")
	}
	if cfg.Retrieval.Enabled {
		if !cfg.Recommender.Enabled {
			return fmt.Errorf("retrieval.enabled requires recommender.enabled")
		}
		if cfg.Retrieval.CorpusDir == "" && cfg.Retrieval.IndexPath == "" {
			return fmt.Errorf("retrieval.enabled requires retrieval.corpus_dir or retrieval.index_path")
		}
		if cfg.Retrieval.TopK < 0 {
			return fmt.Errorf("retrieval.top_k must not be negative")
		}
		if cfg.Retrieval.ChunkOverlap < 0 || cfg.Retrieval.ChunkOverlap >= cfg.Retrieval.ChunkSize {
			return fmt.Errorf("retrieval.chunk_overlap must be between 0 and chunk_size")
		}
	}
	return nil
}
