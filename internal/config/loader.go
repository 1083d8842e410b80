package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Load reads .env, then configs/config.yaml, then the environment, in
// increasing order of precedence.
func Load() (*Config, error) {
	loadEnvFile(".env", "../.env", "../../.env")
	return LoadFrom(viper.New(), "./configs", ".")
}

// LoadFrom loads configuration into v searching the given directories for
// config.yaml. A missing file is not an error.
func LoadFrom(v *viper.Viper, paths ...string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// bindEnv registers keys that must resolve from the environment even when
// no config file mentions them, plus the conventional names PORT and
// GEMINI_API_KEY.
func bindEnv(v *viper.Viper) {
	keys := []string{
		"server.mode",
		"upstream.base_url", "upstream.timeout",
		"session.backend", "session.ttl", "session.cookie_name",
		"redis.address", "redis.password", "redis.db",
		"recommender.enabled", "recommender.model",
		"retrieval.enabled", "retrieval.corpus_dir", "retrieval.index_path",
		"retrieval.embedding_model", "retrieval.top_k",
		"logging.level", "logging.format",
	}
	for _, k := range keys {
		_ = v.BindEnv(k)
	}
	_ = v.BindEnv("server.port", "SERVER_PORT", "PORT")
	_ = v.BindEnv("recommender.api_key", "RECOMMENDER_API_KEY", "GEMINI_API_KEY")
}

func loadEnvFile(paths ...string) {
	for _, path := range paths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}
