package embedder

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_GetSet(t *testing.T) {
	cache := NewCache(10)

	emb := &Embedding{
		Vector:    []float32{0.1, 0.2, 0.3},
		Dimension: 3,
		Provider:  ProviderLocal,
		Model:     "test",
		Hash:      "abc",
	}

	cache.Set("abc", emb)
	got, ok := cache.Get("abc")
	require.True(t, ok)
	assert.Equal(t, emb.Vector, got.Vector)

	// Returned value is a deep copy
	got.Vector[0] = 99
	again, ok := cache.Get("abc")
	require.True(t, ok)
	assert.Equal(t, float32(0.1), again.Vector[0])
}

func TestCache_Miss(t *testing.T) {
	cache := NewCache(10)
	_, ok := cache.Get("missing")
	assert.False(t, ok)
}

func TestCache_Eviction(t *testing.T) {
	cache := NewCache(2)

	cache.Set("a", &Embedding{Hash: "a"})
	cache.Set("b", &Embedding{Hash: "b"})
	cache.Set("c", &Embedding{Hash: "c"})

	assert.Equal(t, 2, cache.Size())
	_, ok := cache.Get("a")
	assert.False(t, ok, "oldest entry should be evicted")
}

func TestComputeHash(t *testing.T) {
	h1 := ComputeHash("text one")
	h2 := ComputeHash("text two")
	assert.NotEqual(t, h1, h2)
	assert.Equal(t, h1, ComputeHash("text one"))
	assert.Len(t, h1, 64) // hex-encoded SHA-256
}

func TestValidateRequest(t *testing.T) {
	assert.ErrorIs(t, ValidateRequest(EmbeddingRequest{}), ErrEmptyText)
	assert.NoError(t, ValidateRequest(EmbeddingRequest{Text: "ok"}))
}

func TestValidateBatchRequest(t *testing.T) {
	assert.ErrorIs(t, ValidateBatchRequest(BatchEmbeddingRequest{}), ErrInvalidInput)
	assert.ErrorIs(t, ValidateBatchRequest(BatchEmbeddingRequest{Texts: []string{"ok", ""}}), ErrInvalidInput)
	assert.NoError(t, ValidateBatchRequest(BatchEmbeddingRequest{Texts: []string{"a", "b"}}))
}

func TestLocalProvider_Deterministic(t *testing.T) {
	p, err := NewLocalProvider(nil)
	require.NoError(t, err)

	ctx := context.Background()
	first, err := p.GenerateEmbedding(ctx, EmbeddingRequest{Text: "hello"})
	require.NoError(t, err)
	second, err := p.GenerateEmbedding(ctx, EmbeddingRequest{Text: "hello"})
	require.NoError(t, err)

	assert.Equal(t, first.Vector, second.Vector)
	assert.Equal(t, LocalDimension, first.Dimension)
	assert.Len(t, first.Vector, LocalDimension)

	other, err := p.GenerateEmbedding(ctx, EmbeddingRequest{Text: "goodbye"})
	require.NoError(t, err)
	assert.NotEqual(t, first.Vector, other.Vector)
}

func TestLocalProvider_UnitLength(t *testing.T) {
	p, err := NewLocalProvider(nil)
	require.NoError(t, err)

	emb, err := p.GenerateEmbedding(context.Background(), EmbeddingRequest{Text: "normalize me"})
	require.NoError(t, err)

	var sum float64
	for _, v := range emb.Vector {
		sum += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, sum, 1e-5)
}

func TestLocalProvider_Batch(t *testing.T) {
	p, err := NewLocalProvider(NewCache(10))
	require.NoError(t, err)

	resp, err := p.GenerateBatch(context.Background(), BatchEmbeddingRequest{
		Texts: []string{"one", "two", "three"},
	})
	require.NoError(t, err)
	require.Len(t, resp.Embeddings, 3)
	assert.Equal(t, ProviderLocal, resp.Provider)

	for _, emb := range resp.Embeddings {
		assert.Equal(t, LocalDimension, emb.Dimension)
		assert.NotEmpty(t, emb.Hash)
	}
}

func TestNew_ProviderSelection(t *testing.T) {
	emb, err := New(Config{Provider: ProviderLocal, CacheSize: 100})
	require.NoError(t, err)
	assert.Equal(t, ProviderLocal, emb.Provider())

	_, err = New(Config{Provider: "nonsense"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnsupportedModel)
}

func TestNewFromEnv_Local(t *testing.T) {
	t.Setenv(EnvProvider, ProviderLocal)

	emb, err := NewFromEnv()
	require.NoError(t, err)
	assert.Equal(t, ProviderLocal, emb.Provider())
	assert.Equal(t, ProviderLocal, DetectProvider())
}

func TestNormalizeVector(t *testing.T) {
	v := NormalizeVector([]float32{3, 4})
	assert.InDelta(t, 0.6, v[0], 1e-6)
	assert.InDelta(t, 0.8, v[1], 1e-6)

	zero := NormalizeVector([]float32{0, 0})
	assert.Equal(t, []float32{0, 0}, zero)
}
