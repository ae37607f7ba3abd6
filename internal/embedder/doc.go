// Package embedder generates vector embeddings for chunk text.
//
// The Embedder interface abstracts over providers; the factory picks one
// from the environment:
//
//	emb, err := embedder.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer emb.Close()
//
//	result, err := emb.GenerateEmbedding(ctx, embedder.EmbeddingRequest{
//	    Text: chunk.Content,
//	})
//
// Providers:
//   - openai: OpenAI embeddings API via the go-openai client
//   - jina: Jina AI embeddings HTTP API
//   - local: deterministic hash-derived vectors, used when no API key is
//     configured; keeps the pipeline working offline
//
// Selection order: CODESCOPE_EMBEDDING_PROVIDER, then whichever of
// OPENAI_API_KEY / JINA_API_KEY is set, then local.
//
// # Caching and Retry
//
// Embeddings are cached in an LRU keyed by SHA-256 content hash. The cache
// is an explicit object wired in by the factory, so callers that need
// isolation can construct providers with a nil cache. API calls retry with
// exponential backoff; rate-limit responses surface as ErrRateLimited after
// retries are exhausted.
package embedder
