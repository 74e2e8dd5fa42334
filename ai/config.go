// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package ai

import (
	"errors"
	"fmt"
	"strings"
)

// Supported provider names.
const (
	ProviderGoogleAI = "googleai"
	ProviderOpenAI   = "openai"
)

var (
	// ErrMissingAPIKey is returned when a provider that requires credentials has none.
	ErrMissingAPIKey = errors.New("ai config: APIKey is required")

	// ErrUnknownProvider is returned for a provider name this package cannot build.
	ErrUnknownProvider = errors.New("ai config: unknown provider")
)

// Config holds configuration for AI service providers.
type Config struct {
	// Provider selects the backend: "googleai" or "openai".
	Provider string

	// EmbeddingHost is the base URL for OpenAI-compatible embedding APIs.
	// Ignored by the googleai provider.
	// Example: "http://localhost:11434/v1" for a local server
	EmbeddingHost string

	// EmbeddingModel is the model identifier to use for text embeddings.
	// Example: "embedding-001", "text-embedding-3-small"
	EmbeddingModel string

	// APIKey authenticates against the provider.
	// Required for googleai. Local OpenAI-compatible servers accept any value.
	APIKey string

	// PickerModel is the chat model used to narrow retrieval candidates.
	// Empty disables candidate picking.
	PickerModel string
}

// ConfigOption is a functional option for configuring a Config.
type ConfigOption func(*Config)

// WithProvider sets the provider name.
func WithProvider(provider string) ConfigOption {
	return func(c *Config) {
		c.Provider = provider
	}
}

// WithEmbeddingHost sets the embedding service host URL.
func WithEmbeddingHost(host string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingHost = host
	}
}

// WithEmbeddingModel sets the embedding model identifier.
func WithEmbeddingModel(model string) ConfigOption {
	return func(c *Config) {
		c.EmbeddingModel = model
	}
}

// WithAPIKey sets the provider credential.
func WithAPIKey(key string) ConfigOption {
	return func(c *Config) {
		c.APIKey = key
	}
}

// WithPickerModel enables candidate picking with the given chat model.
func WithPickerModel(model string) ConfigOption {
	return func(c *Config) {
		c.PickerModel = model
	}
}

// DefaultConfig returns a Config for Google's hosted embedding model.
// The API key still has to be supplied.
func DefaultConfig() *Config {
	return &Config{
		Provider:       ProviderGoogleAI,
		EmbeddingHost:  "http://localhost:11434/v1",
		EmbeddingModel: "embedding-001",
	}
}

// NewConfig creates a Config with the default values and applies the provided options.
//
// Example:
//
//	cfg := NewConfig(
//	    WithAPIKey(os.Getenv("GOOGLE_API_KEY")),
//	)
//
// Example with a local OpenAI-compatible server:
//
//	cfg := NewConfig(
//	    WithProvider(ProviderOpenAI),
//	    WithEmbeddingHost("http://localhost:11434"),
//	    WithEmbeddingModel("embeddinggemma"),
//	)
func NewConfig(opts ...ConfigOption) *Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}
	return cfg
}

// Normalize ensures the configuration is in a canonical form.
// Provider names are lower-cased and OpenAI hosts gain the /v1 suffix
// expected by OpenAI-compatible servers.
func (c *Config) Normalize() {
	c.Provider = strings.ToLower(strings.TrimSpace(c.Provider))
	if c.Provider == ProviderOpenAI && c.EmbeddingHost != "" && !strings.HasSuffix(c.EmbeddingHost, "/v1") {
		c.EmbeddingHost = strings.TrimSuffix(c.EmbeddingHost, "/")
		c.EmbeddingHost = c.EmbeddingHost + "/v1"
	}
}

// Validate checks that the configuration is valid and complete.
// It automatically normalizes the configuration before validation.
func (c *Config) Validate() error {
	c.Normalize()

	switch c.Provider {
	case ProviderGoogleAI:
		if c.APIKey == "" {
			return ErrMissingAPIKey
		}
	case ProviderOpenAI:
		if c.EmbeddingHost == "" {
			return errors.New("ai config: EmbeddingHost is required")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownProvider, c.Provider)
	}
	if c.EmbeddingModel == "" {
		return errors.New("ai config: EmbeddingModel is required")
	}
	return nil
}
