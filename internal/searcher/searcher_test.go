package searcher

import (
	"context"
	"crypto/sha256"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codescope/codescope/internal/embedder"
	"github.com/codescope/codescope/internal/storage"
	"github.com/codescope/codescope/pkg/types"
)

// chunkFixture seeds one document chunk and its embedding
type chunkFixture struct {
	path     string
	language string
	kind     string
	offset   int
	content  string
}

func setupSearcher(t *testing.T, fixtures []chunkFixture) (*Searcher, int64) {
	t.Helper()
	ctx := context.Background()

	store, err := storage.NewSQLiteStorage(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	emb, err := embedder.New(embedder.Config{Provider: embedder.ProviderLocal, CacheSize: 100})
	require.NoError(t, err)

	project := &storage.Project{
		RootPath:     "/test/project",
		Name:         "project",
		IndexVersion: storage.CurrentSchemaVersion,
	}
	require.NoError(t, store.CreateProject(ctx, project))

	docs := map[string]*storage.Document{}
	for _, f := range fixtures {
		doc, ok := docs[f.path]
		if !ok {
			doc = &storage.Document{
				ProjectID:   project.ID,
				Path:        f.path,
				Language:    f.language,
				ContentHash: sha256.Sum256([]byte(f.path)),
			}
			require.NoError(t, store.UpsertDocument(ctx, doc))
			docs[f.path] = doc
		}

		chunk := &storage.Chunk{
			DocumentID:  doc.ID,
			Content:     f.content,
			ContentHash: sha256.Sum256([]byte(f.content)),
			StartOffset: f.offset,
			EndOffset:   f.offset + len([]rune(f.content)),
			StartLine:   1,
			EndLine:     1,
			Kind:        f.kind,
		}
		require.NoError(t, store.InsertChunk(ctx, chunk))

		vec, err := emb.GenerateEmbedding(ctx, embedder.EmbeddingRequest{Text: f.content})
		require.NoError(t, err)
		require.NoError(t, store.UpsertEmbedding(ctx, &storage.Embedding{
			ChunkID:   chunk.ID,
			Vector:    storage.SerializeVector(vec.Vector),
			Dimension: vec.Dimension,
			Provider:  vec.Provider,
			Model:     vec.Model,
		}))
	}

	return NewSearcher(store, emb), project.ID
}

func defaultFixtures() []chunkFixture {
	return []chunkFixture{
		{"auth/login.go", "go", "function", 0, "func Login(user, pass string) error { return verify(user, pass) }"},
		{"auth/token.go", "go", "function", 0, "func RefreshToken(t Token) (Token, error) { return t.renew() }"},
		{"docs/guide.md", "markdown", "section", 0, "# Deployment\n\nShip the binary behind a reverse proxy."},
	}
}

func TestSearch_ExactContentTopRanked(t *testing.T) {
	s, projectID := setupSearcher(t, defaultFixtures())

	// The local provider is deterministic, so identical text embeds to an
	// identical vector and ranks first with similarity 1
	resp, err := s.Search(context.Background(), SearchRequest{
		Query:     "func Login(user, pass string) error { return verify(user, pass) }",
		ProjectID: projectID,
		Limit:     10,
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Results)

	top := resp.Results[0]
	assert.Equal(t, 1, top.Rank)
	assert.Equal(t, "auth/login.go", top.SourceID)
	assert.Equal(t, "go", top.Language)
	assert.Equal(t, types.ChunkFunction, top.Kind)
	assert.InDelta(t, 1.0, top.RelevanceScore, 1e-6)
	assert.False(t, resp.CacheHit)
}

func TestSearch_RanksAreSequential(t *testing.T) {
	s, projectID := setupSearcher(t, defaultFixtures())

	resp, err := s.Search(context.Background(), SearchRequest{
		Query:     "token refresh",
		ProjectID: projectID,
		Limit:     10,
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 3)

	for i, r := range resp.Results {
		assert.Equal(t, i+1, r.Rank)
	}
	for i := 1; i < len(resp.Results); i++ {
		assert.GreaterOrEqual(t, resp.Results[i-1].RelevanceScore, resp.Results[i].RelevanceScore)
	}
}

func TestSearch_EmptyQuery(t *testing.T) {
	s, projectID := setupSearcher(t, defaultFixtures())

	_, err := s.Search(context.Background(), SearchRequest{
		Query:     "",
		ProjectID: projectID,
	})
	assert.Error(t, err)
}

func TestSearch_LimitApplied(t *testing.T) {
	s, projectID := setupSearcher(t, defaultFixtures())

	resp, err := s.Search(context.Background(), SearchRequest{
		Query:     "anything",
		ProjectID: projectID,
		Limit:     1,
	})
	require.NoError(t, err)
	assert.Len(t, resp.Results, 1)
}

func TestSearch_LanguageFilter(t *testing.T) {
	s, projectID := setupSearcher(t, defaultFixtures())

	resp, err := s.Search(context.Background(), SearchRequest{
		Query:     "deployment guide",
		ProjectID: projectID,
		Filters:   &storage.SearchFilters{Languages: []string{"markdown"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, "docs/guide.md", resp.Results[0].SourceID)
}

func TestSearch_KindFilter(t *testing.T) {
	s, projectID := setupSearcher(t, defaultFixtures())

	resp, err := s.Search(context.Background(), SearchRequest{
		Query:     "anything",
		ProjectID: projectID,
		Filters:   &storage.SearchFilters{Kinds: []string{"section"}},
	})
	require.NoError(t, err)
	require.Len(t, resp.Results, 1)
	assert.Equal(t, types.ChunkSection, resp.Results[0].Kind)
}

func TestSearch_EmptyIndex(t *testing.T) {
	s, projectID := setupSearcher(t, nil)

	resp, err := s.Search(context.Background(), SearchRequest{
		Query:     "anything",
		ProjectID: projectID,
	})
	require.NoError(t, err)
	assert.Empty(t, resp.Results)
	assert.Equal(t, 0, resp.TotalResults)
}

func TestSearch_CacheHit(t *testing.T) {
	s, projectID := setupSearcher(t, defaultFixtures())

	req := SearchRequest{
		Query:     "token refresh",
		ProjectID: projectID,
		UseCache:  true,
	}

	first, err := s.Search(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.CacheHit)

	second, err := s.Search(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.CacheHit)
	assert.Equal(t, first.TotalResults, second.TotalResults)
	assert.Equal(t, first.Results, second.Results)
}

func TestSearch_CacheKeyedByLimit(t *testing.T) {
	s, projectID := setupSearcher(t, defaultFixtures())

	narrow, err := s.Search(context.Background(), SearchRequest{
		Query:     "token refresh",
		ProjectID: projectID,
		Limit:     1,
		UseCache:  true,
	})
	require.NoError(t, err)
	assert.False(t, narrow.CacheHit)
	assert.Equal(t, 1, narrow.TotalResults)

	// A wider limit must not be served the cached narrow response
	wide, err := s.Search(context.Background(), SearchRequest{
		Query:     "token refresh",
		ProjectID: projectID,
		Limit:     10,
		UseCache:  true,
	})
	require.NoError(t, err)
	assert.False(t, wide.CacheHit)
	assert.Greater(t, wide.TotalResults, narrow.TotalResults)
}

func TestSearch_CacheExpiry(t *testing.T) {
	s, projectID := setupSearcher(t, defaultFixtures())

	req := SearchRequest{
		Query:     "token refresh",
		ProjectID: projectID,
		UseCache:  true,
		CacheTTL:  -1 * time.Second, // Already expired when stored
	}

	_, err := s.Search(context.Background(), req)
	require.NoError(t, err)

	second, err := s.Search(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, second.CacheHit)
}

func TestSearch_InvalidateCache(t *testing.T) {
	s, projectID := setupSearcher(t, defaultFixtures())

	req := SearchRequest{
		Query:     "token refresh",
		ProjectID: projectID,
		UseCache:  true,
	}

	_, err := s.Search(context.Background(), req)
	require.NoError(t, err)

	s.InvalidateCache()

	resp, err := s.Search(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.CacheHit)
}

func TestComputeQueryHash_FiltersChangeKey(t *testing.T) {
	base := SearchRequest{Query: "q", ProjectID: 1}
	filtered := SearchRequest{
		Query:     "q",
		ProjectID: 1,
		Filters:   &storage.SearchFilters{Languages: []string{"go"}},
	}

	assert.NotEqual(t, computeQueryHash(base), computeQueryHash(filtered))
	assert.Equal(t, computeQueryHash(base), computeQueryHash(SearchRequest{Query: "q", ProjectID: 1}))
}

func TestComputeQueryHash_LimitChangesKey(t *testing.T) {
	base := SearchRequest{Query: "q", ProjectID: 1, Limit: 10}
	wider := SearchRequest{Query: "q", ProjectID: 1, Limit: 50}

	assert.NotEqual(t, computeQueryHash(base), computeQueryHash(wider))
}
