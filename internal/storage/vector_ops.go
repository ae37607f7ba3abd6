package storage

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
)

// searchVector performs vector similarity search using cosine similarity
func searchVector(ctx context.Context, db *sql.DB, projectID int64, queryVector []float32, limit int, filters *SearchFilters) ([]VectorResult, error) {
	// Use optimized SQL-based search when sqlite-vec is available
	if VectorExtensionAvailable {
		return searchVectorOptimized(ctx, db, projectID, queryVector, limit, filters)
	}
	// Fall back to Go-based computation for purego builds
	return searchVectorFallback(ctx, db, projectID, queryVector, limit, filters)
}

// searchVectorOptimized uses sqlite-vec extension for SQL-based vector similarity search
func searchVectorOptimized(ctx context.Context, db *sql.DB, projectID int64, queryVector []float32, limit int, filters *SearchFilters) ([]VectorResult, error) {
	queryVectorBlob := serializeVector(queryVector)

	// sqlite-vec's vec_distance_cosine returns distance (lower is better),
	// converted to similarity (1 - distance) to match the fallback path
	query := `
		SELECT
			c.id as chunk_id,
			1.0 - vec_distance_cosine(e.vector, ?) as similarity
		FROM chunks c
		INNER JOIN embeddings e ON c.id = e.chunk_id
		INNER JOIN documents d ON c.document_id = d.id
		WHERE d.project_id = ?
	`
	args := []interface{}{queryVectorBlob, projectID}

	query, args = applyVectorFilters(query, args, filters)

	if filters != nil && filters.MinRelevance > 0 {
		query += " AND (1.0 - vec_distance_cosine(e.vector, ?)) >= ?"
		args = append(args, queryVectorBlob, filters.MinRelevance)
	}

	query += " ORDER BY similarity DESC LIMIT ?"
	args = append(args, limit)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to execute vector search: %w", err)
	}
	defer func() { _ = rows.Close() }()

	if limit <= 0 {
		return []VectorResult{}, nil
	}
	results := make([]VectorResult, 0, limit)
	for rows.Next() {
		var result VectorResult
		if err := rows.Scan(&result.ChunkID, &result.SimilarityScore); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, result)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return results, nil
}

// searchVectorFallback performs vector search using Go-based cosine similarity computation
// This is used when sqlite-vec extension is not available (purego builds)
func searchVectorFallback(ctx context.Context, db *sql.DB, projectID int64, queryVector []float32, limit int, filters *SearchFilters) ([]VectorResult, error) {
	query := `
		SELECT
			c.id as chunk_id,
			e.vector
		FROM chunks c
		INNER JOIN embeddings e ON c.id = e.chunk_id
		INNER JOIN documents d ON c.document_id = d.id
		WHERE d.project_id = ?
	`
	args := []interface{}{projectID}

	query, args = applyVectorFilters(query, args, filters)

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query embeddings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	// Compute similarity scores and rank in Go
	candidates, err := computeSimilarityScores(rows, queryVector, filters)
	if err != nil {
		return nil, err
	}

	sortCandidates(candidates)

	return buildVectorResults(candidates, limit), nil
}

// applyVectorFilters adds WHERE clause filters for vector search
func applyVectorFilters(query string, args []interface{}, filters *SearchFilters) (string, []interface{}) {
	if filters == nil {
		return query, args
	}

	if len(filters.Languages) > 0 {
		query += " AND d.language IN ("
		for i, lang := range filters.Languages {
			if i > 0 {
				query += ","
			}
			query += "?"
			args = append(args, lang)
		}
		query += ")"
	}

	if len(filters.Kinds) > 0 && filters.Kinds[0] != "" {
		query += " AND c.kind IN ("
		for i, kind := range filters.Kinds {
			if i > 0 {
				query += ","
			}
			query += "?"
			args = append(args, kind)
		}
		query += ")"
	}

	if filters.PathPattern != "" {
		query += " AND d.path GLOB ?"
		args = append(args, filters.PathPattern)
	}

	return query, args
}

// computeSimilarityScores processes rows and computes cosine similarity
func computeSimilarityScores(rows *sql.Rows, queryVector []float32, filters *SearchFilters) ([]candidate, error) {
	candidates := make([]candidate, 0, 1000)

	for rows.Next() {
		var chunkID int64
		var vectorBlob []byte
		if err := rows.Scan(&chunkID, &vectorBlob); err != nil {
			return nil, err
		}

		vector := deserializeVector(vectorBlob)
		if len(vector) != len(queryVector) {
			continue // Dimension mismatch, skip
		}

		similarity := cosineSimilarity(queryVector, vector)

		if filters != nil && filters.MinRelevance > 0 && similarity < filters.MinRelevance {
			continue
		}

		candidates = append(candidates, candidate{chunkID: chunkID, score: similarity})
	}

	return candidates, rows.Err()
}

// buildVectorResults creates VectorResult slice from candidates
func buildVectorResults(candidates []candidate, limit int) []VectorResult {
	// Handle negative or zero limit - return all candidates
	if limit <= 0 {
		limit = len(candidates)
	}
	if limit > len(candidates) {
		limit = len(candidates)
	}

	results := make([]VectorResult, limit)
	for i := 0; i < limit; i++ {
		results[i] = VectorResult{
			ChunkID:         candidates[i].chunkID,
			SimilarityScore: candidates[i].score,
		}
	}
	return results
}

// serializeVector converts a float32 slice to a byte blob (little-endian)
func serializeVector(vector []float32) []byte {
	blob := make([]byte, len(vector)*4)
	for i, v := range vector {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(v))
	}
	return blob
}

// deserializeVector converts a byte blob back to a float32 slice
func deserializeVector(blob []byte) []float32 {
	vector := make([]float32, len(blob)/4)
	for i := range vector {
		bits := binary.LittleEndian.Uint32(blob[i*4:])
		vector[i] = math.Float32frombits(bits)
	}
	return vector
}

// cosineSimilarity computes the cosine similarity between two vectors
func cosineSimilarity(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += float64(a[i] * b[i])
		normA += float64(a[i] * a[i])
		normB += float64(b[i] * b[i])
	}

	if normA == 0 || normB == 0 {
		return 0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

// candidate represents a chunk with its similarity score
type candidate struct {
	chunkID int64
	score   float64
}

// sortCandidates sorts candidates by score in descending order
func sortCandidates(candidates []candidate) {
	sort.Slice(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
}

// SerializeVector encodes an embedding vector into the blob format stored
// in the embeddings table. Callers writing Embedding rows use this.
func SerializeVector(vector []float32) []byte {
	return serializeVector(vector)
}

// DeserializeVector decodes a stored embedding blob back into a vector.
func DeserializeVector(blob []byte) []float32 {
	return deserializeVector(blob)
}

// CosineSimilarity is an exported helper for testing
func CosineSimilarity(a, b []float32) float64 {
	return cosineSimilarity(a, b)
}
