package embedder

import (
	"context"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"
)

// OpenAIProvider implements Embedder using the OpenAI embeddings API
type OpenAIProvider struct {
	client *openai.Client
	model  string
	dim    int
	cache  *Cache
}

// NewOpenAIProvider creates a new OpenAI embedder
func NewOpenAIProvider(apiKey string, cache *Cache) (*OpenAIProvider, error) {
	if apiKey == "" {
		apiKey = os.Getenv(EnvOpenAIAPIKey)
	}
	if apiKey == "" {
		return nil, fmt.Errorf("%w: %s not set", ErrNoProviderEnabled, EnvOpenAIAPIKey)
	}

	return &OpenAIProvider{
		client: openai.NewClient(apiKey),
		model:  DefaultOpenAIModel,
		dim:    OpenAIDimension,
		cache:  cache,
	}, nil
}

func (o *OpenAIProvider) GenerateEmbedding(ctx context.Context, req EmbeddingRequest) (*Embedding, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	hash := ComputeHash(req.Text)
	if o.cache != nil {
		if emb, ok := o.cache.Get(hash); ok {
			return emb, nil
		}
	}

	resp, err := o.GenerateBatch(ctx, BatchEmbeddingRequest{
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

func (o *OpenAIProvider) GenerateBatch(ctx context.Context, req BatchEmbeddingRequest) (*BatchEmbeddingResponse, error) {
	if err := ValidateBatchRequest(req); err != nil {
		return nil, err
	}
	if len(req.Texts) > MaxBatchSize {
		return nil, fmt.Errorf("%w: %d texts exceeds limit of %d", ErrInvalidInput, len(req.Texts), MaxBatchSize)
	}

	model := req.Model
	if model == "" {
		model = o.model
	}

	embeddings, err := withRetries(ctx, defaultBackoff(), func() ([]*Embedding, error) {
		return o.callAPI(ctx, req.Texts, model)
	})
	if err != nil {
		return nil, err
	}

	for i, emb := range embeddings {
		emb.Hash = ComputeHash(req.Texts[i])
		if o.cache != nil {
			o.cache.Set(emb.Hash, emb)
		}
	}

	return &BatchEmbeddingResponse{
		Embeddings: embeddings,
		Provider:   ProviderOpenAI,
		Model:      model,
	}, nil
}

func (o *OpenAIProvider) callAPI(ctx context.Context, texts []string, model string) ([]*Embedding, error) {
	resp, err := o.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Model: openai.EmbeddingModel(model),
		Input: texts,
	})
	if err != nil {
		if isRateLimitErr(err) {
			return nil, fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrProviderFailed, err)
	}

	if len(resp.Data) != len(texts) {
		return nil, fmt.Errorf("%w: got %d embeddings for %d texts", ErrProviderFailed, len(resp.Data), len(texts))
	}

	embeddings := make([]*Embedding, len(resp.Data))
	for i, data := range resp.Data {
		embeddings[i] = &Embedding{
			Vector:    data.Embedding,
			Dimension: len(data.Embedding),
			Provider:  ProviderOpenAI,
			Model:     string(resp.Model),
		}
	}

	return embeddings, nil
}

// isRateLimitErr detects 429 responses from the OpenAI client
func isRateLimitErr(err error) bool {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode == 429
	}
	return false
}

func (o *OpenAIProvider) Dimension() int {
	return o.dim
}

func (o *OpenAIProvider) Provider() string {
	return ProviderOpenAI
}

func (o *OpenAIProvider) Model() string {
	return o.model
}

func (o *OpenAIProvider) Close() error {
	return nil
}
