package embedder

import (
	"fmt"
	"os"
	"strings"
)

// Config holds embedder configuration
type Config struct {
	Provider  string
	APIKey    string
	CacheSize int
}

// NewFromEnv creates an embedder based on environment variables
// Priority:
// 1. CODESCOPE_EMBEDDING_PROVIDER (openai, jina, local)
// 2. Check for API keys: OPENAI_API_KEY, JINA_API_KEY
// 3. Default to local if no API keys found
func NewFromEnv() (Embedder, error) {
	provider := os.Getenv(EnvProvider)
	openaiKey := os.Getenv(EnvOpenAIAPIKey)
	jinaKey := os.Getenv(EnvJinaAPIKey)

	cache := NewCache(DefaultCacheSize)

	// Explicit provider selection
	if provider != "" {
		provider = strings.ToLower(provider)
		switch provider {
		case ProviderOpenAI:
			return NewOpenAIProvider(openaiKey, cache)
		case ProviderJina:
			return NewJinaProvider(jinaKey, cache)
		case ProviderLocal:
			return NewLocalProvider(cache)
		default:
			return nil, fmt.Errorf("%w: unknown provider %s", ErrUnsupportedModel, provider)
		}
	}

	// Auto-detect based on available API keys
	if openaiKey != "" {
		return NewOpenAIProvider(openaiKey, cache)
	}
	if jinaKey != "" {
		return NewJinaProvider(jinaKey, cache)
	}

	// Fallback to local provider
	return NewLocalProvider(cache)
}

// New creates an embedder with explicit configuration
func New(cfg Config) (Embedder, error) {
	var cache *Cache
	if cfg.CacheSize > 0 {
		cache = NewCache(cfg.CacheSize)
	}

	provider := strings.ToLower(cfg.Provider)
	switch provider {
	case ProviderOpenAI:
		return NewOpenAIProvider(cfg.APIKey, cache)
	case ProviderJina:
		return NewJinaProvider(cfg.APIKey, cache)
	case ProviderLocal:
		return NewLocalProvider(cache)
	default:
		return nil, fmt.Errorf("%w: unknown provider %s", ErrUnsupportedModel, cfg.Provider)
	}
}

// DetectProvider returns the provider that would be used based on current environment
func DetectProvider() string {
	provider := os.Getenv(EnvProvider)
	if provider != "" {
		return strings.ToLower(provider)
	}

	if os.Getenv(EnvOpenAIAPIKey) != "" {
		return ProviderOpenAI
	}
	if os.Getenv(EnvJinaAPIKey) != "" {
		return ProviderJina
	}

	return ProviderLocal
}
