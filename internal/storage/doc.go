// Package storage provides SQLite-based persistence for indexed documents,
// chunks and vector embeddings.
//
// Tables:
//   - projects: indexed roots and their counters
//   - documents: document paths, languages and SHA-256 content hashes
//   - chunks: document slices with rune offsets and line ranges
//   - embeddings: vector embeddings for chunks
//
// Chunks are unique per (document_id, start_offset, end_offset), so
// re-indexing a document replaces its chunk rows in place.
//
// # Transactions
//
// Use transactions for atomic re-index operations:
//
//	tx, err := db.BeginTx(ctx)
//	if err != nil {
//	    return err
//	}
//	defer tx.Rollback()
//
//	_ = tx.UpsertDocument(ctx, doc)
//	_ = tx.DeleteChunksByDocument(ctx, doc.ID)
//	for i := range chunks {
//	    _ = tx.InsertChunk(ctx, chunks[i])
//	}
//
//	if err := tx.Commit(); err != nil {
//	    return err
//	}
//
// # Vector search
//
// SearchVector uses cosine similarity via the sqlite-vec extension when
// built with the sqlite_vec tag (github.com/mattn/go-sqlite3), and falls
// back to a pure Go scan with modernc.org/sqlite otherwise. Both paths
// serialize vectors as little-endian float32 blobs.
package storage
