// Package config loads gamerec settings from a YAML file, a .env file and
// the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/poiesic/gamerec/ai"
	"gopkg.in/yaml.v3"
)

// Environment variables read by ApplyEnv.
const (
	EnvGoogleAPIKey   = "GOOGLE_API_KEY"
	EnvOpenAIAPIKey   = "OPENAI_API_KEY"
	EnvCatalog        = "GAMEREC_CATALOG"
	EnvIndex          = "GAMEREC_INDEX"
	EnvAddr           = "GAMEREC_ADDR"
	EnvProvider       = "GAMEREC_PROVIDER"
	EnvEmbeddingModel = "GAMEREC_EMBEDDING_MODEL"
	EnvEmbeddingHost  = "GAMEREC_EMBEDDING_HOST"
	EnvPickerModel    = "GAMEREC_PICKER_MODEL"
)

// ErrInvalidConfig indicates a setting is out of range.
var ErrInvalidConfig = errors.New("invalid configuration")

// CatalogConfig locates the catalog and controls chunking.
type CatalogConfig struct {
	Path         string `yaml:"path"`
	ChunkSize    int    `yaml:"chunk_size"`
	ChunkOverlap int    `yaml:"chunk_overlap"`
}

// IndexConfig controls where the index lives and how it is built.
type IndexConfig struct {
	Path              string        `yaml:"path"`
	BatchSize         int           `yaml:"batch_size"`
	Workers           int           `yaml:"workers"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	MaxRetries        int           `yaml:"max_retries"`
	RetryDelay        time.Duration `yaml:"retry_delay"`
}

// AIConfig selects the embedding and picking models.
type AIConfig struct {
	Provider       string `yaml:"provider"`
	EmbeddingModel string `yaml:"embedding_model"`
	EmbeddingHost  string `yaml:"embedding_host"`
	PickerModel    string `yaml:"picker_model"`
	// APIKey only comes from the environment.
	APIKey string `yaml:"-"`
}

// RetrievalConfig bounds result sizes.
type RetrievalConfig struct {
	InitialTopK int `yaml:"initial_top_k"`
	FinalTopK   int `yaml:"final_top_k"`
}

// ServerConfig configures the HTTP boundary.
type ServerConfig struct {
	Addr            string        `yaml:"addr"`
	CacheSize       int           `yaml:"cache_size"`
	CacheTTL        time.Duration `yaml:"cache_ttl"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
}

// Config is the root application configuration.
type Config struct {
	Catalog   CatalogConfig   `yaml:"catalog"`
	Index     IndexConfig     `yaml:"index"`
	AI        AIConfig        `yaml:"ai"`
	Retrieval RetrievalConfig `yaml:"retrieval"`
	Server    ServerConfig    `yaml:"server"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Catalog: CatalogConfig{
			Path:         "datasets/final_game.csv",
			ChunkSize:    500,
			ChunkOverlap: 50,
		},
		Index: IndexConfig{
			Path:              "./index_db",
			BatchSize:         100,
			RequestsPerSecond: 10,
			MaxRetries:        3,
			RetryDelay:        time.Second,
		},
		AI: AIConfig{
			Provider:       ai.ProviderGoogleAI,
			EmbeddingModel: "embedding-001",
		},
		Retrieval: RetrievalConfig{
			InitialTopK: 50,
			FinalTopK:   12,
		},
		Server: ServerConfig{
			Addr:            ":5000",
			CacheSize:       256,
			CacheTTL:        10 * time.Minute,
			ShutdownTimeout: 5 * time.Second,
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    60 * time.Second,
		},
	}
}

// Load reads path over the defaults. An empty path or a missing file yields
// the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDotEnv loads variables from .env files into the process environment.
// Variables already set win. Missing files are ignored.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("loading %s: %w", path, err)
		}
	}
	return nil
}

// ApplyEnv overrides settings from the environment via lookup, which is
// normally os.LookupEnv. Empty values are ignored.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	get := func(key string) (string, bool) {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		return v, ok && v != ""
	}

	if v, ok := get(EnvCatalog); ok {
		c.Catalog.Path = v
	}
	if v, ok := get(EnvIndex); ok {
		c.Index.Path = v
	}
	if v, ok := get(EnvAddr); ok {
		c.Server.Addr = v
	}
	if v, ok := get(EnvProvider); ok {
		c.AI.Provider = strings.ToLower(v)
	}
	if v, ok := get(EnvEmbeddingModel); ok {
		c.AI.EmbeddingModel = v
	}
	if v, ok := get(EnvEmbeddingHost); ok {
		c.AI.EmbeddingHost = v
	}
	if v, ok := get(EnvPickerModel); ok {
		c.AI.PickerModel = v
	}

	keyVar := EnvGoogleAPIKey
	if c.AI.Provider == ai.ProviderOpenAI {
		keyVar = EnvOpenAIAPIKey
	}
	if v, ok := get(keyVar); ok {
		c.AI.APIKey = v
	}
}

// Validate checks ranges that would otherwise fail deep inside a component.
func (c *Config) Validate() error {
	switch {
	case c.Catalog.Path == "":
		return fmt.Errorf("%w: catalog path is empty", ErrInvalidConfig)
	case c.Index.Path == "":
		return fmt.Errorf("%w: index path is empty", ErrInvalidConfig)
	case c.Catalog.ChunkSize < 1:
		return fmt.Errorf("%w: chunk_size must be positive", ErrInvalidConfig)
	case c.Catalog.ChunkOverlap < 0 || c.Catalog.ChunkOverlap >= c.Catalog.ChunkSize:
		return fmt.Errorf("%w: chunk_overlap must be in [0, chunk_size)", ErrInvalidConfig)
	case c.Index.BatchSize < 1:
		return fmt.Errorf("%w: batch_size must be positive", ErrInvalidConfig)
	case c.Index.RequestsPerSecond <= 0:
		return fmt.Errorf("%w: requests_per_second must be positive", ErrInvalidConfig)
	case c.Index.MaxRetries < 1:
		return fmt.Errorf("%w: max_retries must be positive", ErrInvalidConfig)
	case c.Retrieval.InitialTopK < 1 || c.Retrieval.FinalTopK < 1:
		return fmt.Errorf("%w: top k values must be positive", ErrInvalidConfig)
	case c.Server.CacheSize < 0:
		return fmt.Errorf("%w: cache_size must not be negative", ErrInvalidConfig)
	}
	return nil
}

// AIOptions converts the AI section into provider options.
func (c *Config) AIOptions() []ai.ConfigOption {
	opts := []ai.ConfigOption{
		ai.WithProvider(c.AI.Provider),
		ai.WithAPIKey(c.AI.APIKey),
		ai.WithPickerModel(c.AI.PickerModel),
	}
	if c.AI.EmbeddingModel != "" {
		opts = append(opts, ai.WithEmbeddingModel(c.AI.EmbeddingModel))
	}
	if c.AI.EmbeddingHost != "" {
		opts = append(opts, ai.WithEmbeddingHost(c.AI.EmbeddingHost))
	}
	return opts
}
