// Package chunker turns source documents into ordered, offset-tracked chunk
// sequences for embedding and search.
//
// Two modes cooperate:
//
//   - Structural: when a parser is registered for the document's language,
//     chunk boundaries come from top-level declaration boundaries. A node
//     that fits the size budget becomes one chunk; an oversized node is
//     re-split by the hierarchical algorithm over its own span; the gaps
//     between nodes become filler chunks.
//
//   - Hierarchical: everything else goes through the recursive separator
//     splitter with the language's separator profile.
//
// Parser failures fall back to hierarchical splitting (logged, not
// propagated) unless DisableFallback is set.
//
// # Basic Usage
//
//	c, err := chunker.New(chunker.DefaultOptions(), nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	chunks, err := c.ChunkDocument(chunker.Document{
//	    Text:     source,
//	    SourceID: "internal/server/server.go",
//	    Language: "go",
//	})
//
// Every chunk carries rune offsets into the document, derived line numbers,
// a SHA-256 content hash for deduplication, and an estimated token count.
package chunker
