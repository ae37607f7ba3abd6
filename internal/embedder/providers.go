package embedder

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"os"
	"time"
)

// Provider configuration
const (
	ProviderJina   = "jina"
	ProviderOpenAI = "openai"
	ProviderLocal  = "local"

	// Default models
	DefaultJinaModel   = "jina-embeddings-v3"
	DefaultOpenAIModel = "text-embedding-3-small"

	// Dimensions
	JinaDimension   = 1024
	OpenAIDimension = 1536
	LocalDimension  = 384

	// Batch limits
	DefaultBatchSize = 50
	MaxBatchSize     = 100

	// Cache
	DefaultCacheSize = 10000
)

// Environment variables consulted by the factory and providers
const (
	EnvProvider     = "CODESCOPE_EMBEDDING_PROVIDER"
	EnvJinaAPIKey   = "JINA_API_KEY"
	EnvOpenAIAPIKey = "OPENAI_API_KEY"
)

const jinaAPIURL = "https://api.jina.ai/v1/embeddings"

// JinaProvider implements Embedder using the Jina AI HTTP API
type JinaProvider struct {
	apiKey     string
	model      string
	httpClient *http.Client
	cache      *Cache
}

// NewJinaProvider creates a new Jina AI embedder
func NewJinaProvider(apiKey string, cache *Cache) (*JinaProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvJinaAPIKey)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s not set", ErrNoProviderEnabled, EnvJinaAPIKey)
	}

	return &JinaProvider{
		apiKey: apiKey,
		model:  DefaultJinaModel,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		cache: cache,
	}, nil
}

func (j *JinaProvider) GenerateEmbedding(ctx context.Context, req EmbeddingRequest) (*Embedding, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	hash := ComputeHash(req.Text)
	if j.cache != nil {
		if emb, ok := j.cache.Get(hash); ok {
			return emb, nil
		}
	}

	resp, err := j.GenerateBatch(ctx, BatchEmbeddingRequest{
		Texts: []string{req.Text},
		Model: req.Model,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Embeddings) == 0 {
		return nil, fmt.Errorf("%w: no embeddings returned", ErrProviderFailed)
	}

	return resp.Embeddings[0], nil
}

func (j *JinaProvider) GenerateBatch(ctx context.Context, req BatchEmbeddingRequest) (*BatchEmbeddingResponse, error) {
	if err := ValidateBatchRequest(req); err != nil {
		return nil, err
	}
	if len(req.Texts) > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d texts exceeds limit of %d", ErrInvalidInput, len(req.Texts), MaxBatchSize)
	}

	model := req.Model
	if model == "" {
		model = j.model
	}

	embeddings, err := withRetries(ctx, defaultBackoff(), func() ([]*Embedding, error) {
		return j.callAPI(ctx, req.Texts, model)
	})
	if err != nil {
		return nil, err
	}

	// Fill hashes and populate the cache
	for i, emb := range embeddings {
		emb.Hash = ComputeHash(req.Texts[i])
		if j.cache != nil {
			j.cache.Set(emb.Hash, emb)
		}
	}

	return &BatchEmbeddingResponse{
		Embeddings: embeddings,
		Provider:   ProviderJina,
		Model:      model,
	}, nil
}

func (j *JinaProvider) callAPI(ctx context.Context, texts []string, model string) ([]*Embedding, error) {
	payload := map[string]interface{}{
		"model": model,
		"input": texts,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, jinaAPIURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+j.apiKey)

	resp, err := j.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("api call: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: status %d", ErrRateLimited, resp.StatusCode)
	}
	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("api error %d: %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp struct {
		Data []struct {
			Embedding []float32 `json:"embedding"`
			Index     int       `json:"index"`
		} `json:"data"`
		Model string `json:"model"`
	}

	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}

	embeddings := make([]*Embedding, len(apiResp.Data))
	for i, data := range apiResp.Data {
		embeddings[i] = &Embedding{
			Vector:    data.Embedding,
			Dimension: len(data.Embedding),
			Provider:  ProviderJina,
			Model:     apiResp.Model,
		}
	}

	return embeddings, nil
}

func (j *JinaProvider) Dimension() int {
	return JinaDimension
}

func (j *JinaProvider) Provider() string {
	return ProviderJina
}

func (j *JinaProvider) Model() string {
	return j.model
}

func (j *JinaProvider) Close() error {
	j.httpClient.CloseIdleConnections()
	return nil
}

// LocalProvider is a deterministic fallback used when no API key is
// configured. Vectors are derived from the text's content hash, which keeps
// the rest of the pipeline exercisable offline.
type LocalProvider struct {
	model string
	cache *Cache
}

// NewLocalProvider creates a new local embedder
func NewLocalProvider(cache *Cache) (*LocalProvider, error) {
	return &LocalProvider{
		model: "local-embeddings",
		cache: cache,
	}, nil
}

func (l *LocalProvider) GenerateEmbedding(ctx context.Context, req EmbeddingRequest) (*Embedding, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	hash := ComputeHash(req.Text)
	if l.cache != nil {
		if emb, ok := l.cache.Get(hash); ok {
			return emb, nil
		}
	}

	vector := make([]float32, LocalDimension)
	textHash := sha256.Sum256([]byte(req.Text))
	for i := 0; i < LocalDimension && i < len(textHash); i++ {
		vector[i] = float32(textHash[i]) / 255.0
	}

	emb := &Embedding{
		Vector:    NormalizeVector(vector),
		Dimension: LocalDimension,
		Provider:  ProviderLocal,
		Model:     l.model,
		Hash:      hash,
	}

	if l.cache != nil {
		l.cache.Set(hash, emb)
	}

	return emb, nil
}

func (l *LocalProvider) GenerateBatch(ctx context.Context, req BatchEmbeddingRequest) (*BatchEmbeddingResponse, error) {
	if err := ValidateBatchRequest(req); err != nil {
		return nil, err
	}

	embeddings := make([]*Embedding, len(req.Texts))
	for i, text := range req.Texts {
		emb, err := l.GenerateEmbedding(ctx, EmbeddingRequest{Text: text, Model: req.Model})
		if err != nil {
			return nil, fmt.Errorf("embedding text %d: %w", i, err)
		}
		embeddings[i] = emb
	}

	return &BatchEmbeddingResponse{
		Embeddings: embeddings,
		Provider:   ProviderLocal,
		Model:      l.model,
	}, nil
}

func (l *LocalProvider) Dimension() int {
	return LocalDimension
}

func (l *LocalProvider) Provider() string {
	return ProviderLocal
}

func (l *LocalProvider) Model() string {
	return l.model
}

func (l *LocalProvider) Close() error {
	return nil
}

// NormalizeVector normalizes a vector to unit length (for cosine similarity)
func NormalizeVector(v []float32) []float32 {
	var sum float64
	for _, val := range v {
		sum += float64(val * val)
	}

	if sum == 0 {
		return v
	}

	norm := float32(math.Sqrt(sum))
	result := make([]float32, len(v))
	for i, val := range v {
		result[i] = val / norm
	}

	return result
}
