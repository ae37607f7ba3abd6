// Package searcher answers semantic queries against the chunk index.
//
// A query is embedded with the same provider used at index time, then
// ranked against stored chunk embeddings by cosine similarity. Results
// carry full provenance: source path, rune offsets, line range and kind.
//
// # Basic Usage
//
//	s := searcher.NewSearcher(store, emb)
//
//	resp, err := s.Search(ctx, searcher.SearchRequest{
//	    Query:     "how are retries scheduled",
//	    ProjectID: project.ID,
//	    Limit:     10,
//	})
//
//	for _, r := range resp.Results {
//	    fmt.Printf("%d. %s:%d-%d (%.3f)\n", r.Rank, r.SourceID, r.StartLine, r.EndLine, r.RelevanceScore)
//	}
//
// # Filters
//
// Results can be narrowed by document language, chunk kind, a path glob,
// and a minimum relevance score:
//
//	resp, err := s.Search(ctx, searcher.SearchRequest{
//	    Query:     "config parsing",
//	    ProjectID: project.ID,
//	    Filters: &storage.SearchFilters{
//	        Languages:   []string{"go"},
//	        Kinds:       []string{"function", "method"},
//	        PathPattern: "internal/*",
//	    },
//	})
//
// # Caching
//
// With UseCache set, responses are cached in an LRU keyed by a hash of the
// query, project and filters, with a per-request TTL. InvalidateCache drops
// the cache after re-indexing.
package searcher
