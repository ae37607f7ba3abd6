// Package indexer coordinates the end-to-end indexing pipeline.
//
// The indexer walks a directory tree, chunks each supported document,
// generates vector embeddings, and persists everything to storage.
//
// # Basic Usage
//
//	idx := indexer.New(store, emb, chk)
//
//	stats, err := idx.IndexPath(ctx, "/path/to/project", &indexer.Config{
//	    Workers:      8,
//	    IncludeTests: true,
//	})
//
//	fmt.Printf("Indexed %d documents in %v\n", stats.DocumentsIndexed, stats.Duration)
//
// # Pipeline
//
//  1. Discovery: walk the root, keep files with supported extensions
//  2. Chunk: split each document into bounded, offset-tracked chunks
//  3. Embed: generate vector embeddings in batches
//  4. Store: persist documents, chunks and embeddings in transactions
//
// Each run rebuilds a document's chunks from scratch: old chunk rows are
// deleted before the new ones are inserted, inside the same transaction.
//
// # Concurrency
//
// Documents are processed by a worker pool bounded by Config.Workers and
// committed in transaction batches of Config.BatchSize. Only one index run
// may be active per Indexer; concurrent calls return ErrIndexInProgress.
package indexer
