package searcher

import (
	"context"
	"crypto/sha256"
	"fmt"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/codescope/codescope/internal/embedder"
	"github.com/codescope/codescope/internal/storage"
	"github.com/codescope/codescope/pkg/types"
)

const (
	// DefaultLimit is the result count used when the request doesn't set one
	DefaultLimit = 10
	// MaxLimit caps the result count per request
	MaxLimit = 100
	// DefaultCacheTTL is how long cached responses stay fresh
	DefaultCacheTTL = 1 * time.Hour
	// queryCacheSize is the LRU capacity for cached responses
	queryCacheSize = 1000
)

// SearchRequest contains parameters for a search operation
type SearchRequest struct {
	Query     string
	Limit     int
	Filters   *storage.SearchFilters
	ProjectID int64
	UseCache  bool // Whether to use the query cache
	CacheTTL  time.Duration
}

// SearchResponse contains search results and metadata
type SearchResponse struct {
	Results      []types.SearchResult
	TotalResults int
	Duration     time.Duration
	CacheHit     bool
}

// cacheEntry represents a cached search response with expiration time
type cacheEntry struct {
	response  *SearchResponse
	expiresAt time.Time
}

// Searcher answers semantic queries by embedding the query text and
// ranking stored chunks by cosine similarity
type Searcher struct {
	storage  storage.Storage
	embedder embedder.Embedder
	cache    *lru.Cache[[32]byte, *cacheEntry]
	cacheMu  sync.RWMutex
}

// NewSearcher creates a new Searcher instance
func NewSearcher(store storage.Storage, emb embedder.Embedder) *Searcher {
	cache, err := lru.New[[32]byte, *cacheEntry](queryCacheSize)
	if err != nil {
		// This should never happen with valid size parameter
		panic(fmt.Sprintf("failed to create LRU cache: %v", err))
	}

	return &Searcher{
		storage:  store,
		embedder: emb,
		cache:    cache,
	}
}

// Search embeds the query and returns the most similar chunks
func (s *Searcher) Search(ctx context.Context, req SearchRequest) (*SearchResponse, error) {
	startTime := time.Now()

	if s.embedder == nil {
		return nil, fmt.Errorf("embedder not initialized")
	}

	if err := s.validateRequest(&req); err != nil {
		return nil, fmt.Errorf("invalid search request: %w", err)
	}

	if req.UseCache {
		cached, err := s.checkCache(req)
		if err == nil && cached != nil {
			cached.CacheHit = true
			cached.Duration = time.Since(startTime)
			return cached, nil
		}
	}

	embedding, err := s.embedder.GenerateEmbedding(ctx, embedder.EmbeddingRequest{Text: req.Query})
	if err != nil {
		return nil, fmt.Errorf("failed to generate query embedding: %w", err)
	}

	vectorResults, err := s.storage.SearchVector(ctx, req.ProjectID, embedding.Vector, req.Limit, req.Filters)
	if err != nil {
		return nil, err
	}

	results, err := s.fetchResults(ctx, vectorResults, req.Limit)
	if err != nil {
		return nil, err
	}

	response := &SearchResponse{
		Results:      results,
		TotalResults: len(results),
		Duration:     time.Since(startTime),
	}

	if req.UseCache && len(response.Results) > 0 {
		s.storeInCache(req, response)
	}

	return response, nil
}

// fetchResults retrieves full chunk data and provenance for ranked results
func (s *Searcher) fetchResults(ctx context.Context, ranked []storage.VectorResult, limit int) ([]types.SearchResult, error) {
	if limit > len(ranked) {
		limit = len(ranked)
	}

	results := make([]types.SearchResult, 0, limit)

	for i := 0; i < limit; i++ {
		vr := ranked[i]

		chunk, err := s.storage.GetChunk(ctx, vr.ChunkID)
		if err != nil {
			continue // Skip chunks that can't be loaded
		}

		doc, err := s.storage.GetDocumentByID(ctx, chunk.DocumentID)
		if err != nil {
			continue
		}

		results = append(results, types.SearchResult{
			ChunkID:        vr.ChunkID,
			Rank:           len(results) + 1,
			RelevanceScore: vr.SimilarityScore,
			SourceID:       doc.Path,
			Language:       doc.Language,
			StartOffset:    chunk.StartOffset,
			EndOffset:      chunk.EndOffset,
			StartLine:      chunk.StartLine,
			EndLine:        chunk.EndLine,
			Kind:           types.ChunkKind(chunk.Kind),
			Content:        chunk.Content,
		})
	}

	return results, nil
}

// validateRequest ensures search request is valid
func (s *Searcher) validateRequest(req *SearchRequest) error {
	if req.Query == "" {
		return fmt.Errorf("query cannot be empty")
	}

	if req.Limit <= 0 {
		req.Limit = DefaultLimit
	}

	if req.Limit > MaxLimit {
		req.Limit = MaxLimit
	}

	if req.CacheTTL == 0 {
		req.CacheTTL = DefaultCacheTTL
	}

	return nil
}

// checkCache looks up cached search results
func (s *Searcher) checkCache(req SearchRequest) (*SearchResponse, error) {
	hash := computeQueryHash(req)
	now := time.Now()

	s.cacheMu.RLock()
	entry, found := s.cache.Get(hash)

	if !found {
		s.cacheMu.RUnlock()
		return nil, fmt.Errorf("cache miss")
	}

	if now.After(entry.expiresAt) {
		s.cacheMu.RUnlock()

		// Remove expired entry - need write lock
		s.cacheMu.Lock()
		s.cache.Remove(hash)
		s.cacheMu.Unlock()
		return nil, fmt.Errorf("cache expired")
	}

	// Return a deep copy while still holding the read lock so the entry
	// isn't modified during the copy
	response := copySearchResponse(entry.response)
	s.cacheMu.RUnlock()

	return response, nil
}

// storeInCache saves search results to cache
func (s *Searcher) storeInCache(req SearchRequest, response *SearchResponse) {
	hash := computeQueryHash(req)

	entry := &cacheEntry{
		response:  copySearchResponse(response),
		expiresAt: time.Now().Add(req.CacheTTL),
	}

	s.cacheMu.Lock()
	s.cache.Add(hash, entry)
	s.cacheMu.Unlock()
}

// copySearchResponse creates a deep copy of a SearchResponse
func copySearchResponse(src *SearchResponse) *SearchResponse {
	if src == nil {
		return nil
	}

	dst := &SearchResponse{
		TotalResults: src.TotalResults,
		Duration:     src.Duration,
		CacheHit:     src.CacheHit,
		Results:      make([]types.SearchResult, len(src.Results)),
	}
	copy(dst.Results, src.Results)

	return dst
}

// computeQueryHash computes a unique hash for a search request
func computeQueryHash(req SearchRequest) [32]byte {
	// Build deterministic string representation
	var data strings.Builder
	data.WriteString(req.Query)
	data.WriteString("|")
	data.WriteString(fmt.Sprintf("%d", req.ProjectID))
	data.WriteString("|")
	data.WriteString(fmt.Sprintf("%d", req.Limit))

	if req.Filters != nil {
		data.WriteString("|filters:")
		data.WriteString(strings.Join(req.Filters.Languages, ","))
		data.WriteString("|")
		data.WriteString(strings.Join(req.Filters.Kinds, ","))
		data.WriteString("|")
		data.WriteString(req.Filters.PathPattern)
		data.WriteString("|")
		data.WriteString(fmt.Sprintf("%.2f", req.Filters.MinRelevance))
	}

	return sha256.Sum256([]byte(data.String()))
}

// InvalidateCache drops all cached queries. Called after re-indexing,
// since any cached response may now reference stale chunks.
func (s *Searcher) InvalidateCache() {
	s.cacheMu.Lock()
	s.cache.Purge()
	s.cacheMu.Unlock()
}
