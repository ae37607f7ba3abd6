package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrAlreadyExists is returned when trying to create a duplicate entity
	ErrAlreadyExists = errors.New("already exists")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// Set connection pool settings
	db.SetMaxOpenConns(1) // SQLite benefits from single writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	// Enable foreign keys
	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Apply migrations
	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// BeginTx starts a new transaction
func (s *SQLiteStorage) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return &sqliteTx{tx: tx, storage: s}, nil
}

// querier is an interface that both *sql.DB and *sql.Tx implement
type querier interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// sqliteTx wraps a SQL transaction
type sqliteTx struct {
	tx      *sql.Tx
	storage *SQLiteStorage
}

func (t *sqliteTx) Commit() error {
	return t.tx.Commit()
}

func (t *sqliteTx) Rollback() error {
	return t.tx.Rollback()
}

// querier returns the transaction querier
func (t *sqliteTx) querier() querier {
	return t.tx
}

// querier returns the DB querier
func (s *SQLiteStorage) querier() querier {
	return s.db
}

// Project operations

// createProjectWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) createProjectWithQuerier(ctx context.Context, q querier, project *Project) error {
	query := `
		INSERT INTO projects (root_path, name, index_version, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?)
	`
	now := time.Now()
	result, err := q.ExecContext(ctx, query,
		project.RootPath, project.Name, project.IndexVersion, now, now)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	project.ID = id
	project.CreatedAt = now
	project.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) CreateProject(ctx context.Context, project *Project) error {
	return s.createProjectWithQuerier(ctx, s.querier(), project)
}

// getProjectWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getProjectWithQuerier(ctx context.Context, q querier, rootPath string) (*Project, error) {
	query := `
		SELECT id, root_path, name, index_version, total_documents, total_chunks,
		       last_indexed_at, created_at, updated_at
		FROM projects
		WHERE root_path = ?
	`
	return scanProject(q.QueryRowContext(ctx, query, rootPath))
}

func (s *SQLiteStorage) GetProject(ctx context.Context, rootPath string) (*Project, error) {
	return s.getProjectWithQuerier(ctx, s.querier(), rootPath)
}

// getProjectByIDWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getProjectByIDWithQuerier(ctx context.Context, q querier, projectID int64) (*Project, error) {
	query := `
		SELECT id, root_path, name, index_version, total_documents, total_chunks,
		       last_indexed_at, created_at, updated_at
		FROM projects
		WHERE id = ?
	`
	return scanProject(q.QueryRowContext(ctx, query, projectID))
}

func (s *SQLiteStorage) GetProjectByID(ctx context.Context, projectID int64) (*Project, error) {
	return s.getProjectByIDWithQuerier(ctx, s.querier(), projectID)
}

func scanProject(row *sql.Row) (*Project, error) {
	var project Project
	var lastIndexedAt sql.NullTime
	err := row.Scan(
		&project.ID, &project.RootPath, &project.Name, &project.IndexVersion,
		&project.TotalDocuments, &project.TotalChunks,
		&lastIndexedAt, &project.CreatedAt, &project.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if lastIndexedAt.Valid {
		project.LastIndexedAt = lastIndexedAt.Time
	}
	return &project, nil
}

// updateProjectWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) updateProjectWithQuerier(ctx context.Context, q querier, project *Project) error {
	query := `
		UPDATE projects
		SET name = ?, index_version = ?, total_documents = ?, total_chunks = ?,
		    last_indexed_at = ?, updated_at = ?
		WHERE id = ?
	`
	now := time.Now()
	_, err := q.ExecContext(ctx, query,
		project.Name, project.IndexVersion, project.TotalDocuments, project.TotalChunks,
		project.LastIndexedAt, now, project.ID)
	if err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	project.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpdateProject(ctx context.Context, project *Project) error {
	return s.updateProjectWithQuerier(ctx, s.querier(), project)
}

// Document operations

// upsertDocumentWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) upsertDocumentWithQuerier(ctx context.Context, q querier, doc *Document) error {
	query := `
		INSERT INTO documents (project_id, path, language, content_hash, size_bytes, rune_count, last_indexed_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project_id, path) DO UPDATE SET
			language = excluded.language,
			content_hash = excluded.content_hash,
			size_bytes = excluded.size_bytes,
			rune_count = excluded.rune_count,
			last_indexed_at = excluded.last_indexed_at,
			updated_at = excluded.updated_at
		RETURNING id
	`
	now := time.Now()
	err := q.QueryRowContext(ctx, query,
		doc.ProjectID, doc.Path, doc.Language, doc.ContentHash[:],
		doc.SizeBytes, doc.RuneCount, now, now, now).Scan(&doc.ID)
	if err != nil {
		return fmt.Errorf("failed to upsert document: %w", err)
	}

	doc.LastIndexedAt = now
	doc.UpdatedAt = now
	return nil
}

func (s *SQLiteStorage) UpsertDocument(ctx context.Context, doc *Document) error {
	return s.upsertDocumentWithQuerier(ctx, s.querier(), doc)
}

// getDocumentWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getDocumentWithQuerier(ctx context.Context, q querier, projectID int64, path string) (*Document, error) {
	query := `
		SELECT id, project_id, path, language, content_hash, size_bytes, rune_count,
		       last_indexed_at, created_at, updated_at
		FROM documents
		WHERE project_id = ? AND path = ?
	`
	return scanDocument(q.QueryRowContext(ctx, query, projectID, path))
}

func (s *SQLiteStorage) GetDocument(ctx context.Context, projectID int64, path string) (*Document, error) {
	return s.getDocumentWithQuerier(ctx, s.querier(), projectID, path)
}

// getDocumentByIDWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getDocumentByIDWithQuerier(ctx context.Context, q querier, docID int64) (*Document, error) {
	query := `
		SELECT id, project_id, path, language, content_hash, size_bytes, rune_count,
		       last_indexed_at, created_at, updated_at
		FROM documents
		WHERE id = ?
	`
	return scanDocument(q.QueryRowContext(ctx, query, docID))
}

func (s *SQLiteStorage) GetDocumentByID(ctx context.Context, docID int64) (*Document, error) {
	return s.getDocumentByIDWithQuerier(ctx, s.querier(), docID)
}

func scanDocument(row *sql.Row) (*Document, error) {
	var doc Document
	var hash []byte
	err := row.Scan(
		&doc.ID, &doc.ProjectID, &doc.Path, &doc.Language,
		&hash, &doc.SizeBytes, &doc.RuneCount,
		&doc.LastIndexedAt, &doc.CreatedAt, &doc.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	copy(doc.ContentHash[:], hash)
	return &doc, nil
}

// deleteDocumentWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) deleteDocumentWithQuerier(ctx context.Context, q querier, docID int64) error {
	query := `DELETE FROM documents WHERE id = ?`
	_, err := q.ExecContext(ctx, query, docID)
	return err
}

func (s *SQLiteStorage) DeleteDocument(ctx context.Context, docID int64) error {
	return s.deleteDocumentWithQuerier(ctx, s.querier(), docID)
}

// listDocumentsWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) listDocumentsWithQuerier(ctx context.Context, q querier, projectID int64) ([]*Document, error) {
	query := `
		SELECT id, project_id, path, language, content_hash, size_bytes, rune_count,
		       last_indexed_at, created_at, updated_at
		FROM documents
		WHERE project_id = ?
		ORDER BY path
	`
	rows, err := q.QueryContext(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	docs := make([]*Document, 0)
	for rows.Next() {
		var doc Document
		var hash []byte

		err := rows.Scan(
			&doc.ID, &doc.ProjectID, &doc.Path, &doc.Language,
			&hash, &doc.SizeBytes, &doc.RuneCount,
			&doc.LastIndexedAt, &doc.CreatedAt, &doc.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		copy(doc.ContentHash[:], hash)
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}

func (s *SQLiteStorage) ListDocuments(ctx context.Context, projectID int64) ([]*Document, error) {
	return s.listDocumentsWithQuerier(ctx, s.querier(), projectID)
}

// Chunk operations

// insertChunkWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) insertChunkWithQuerier(ctx context.Context, q querier, chunk *Chunk) error {
	// Use atomic INSERT ... ON CONFLICT to avoid race conditions
	query := `
		INSERT INTO chunks (
			document_id, content, content_hash, token_count,
			start_offset, end_offset, start_line, end_line, kind, depth,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(document_id, start_offset, end_offset)
		DO UPDATE SET
			content = excluded.content,
			content_hash = excluded.content_hash,
			token_count = excluded.token_count,
			start_line = excluded.start_line,
			end_line = excluded.end_line,
			kind = excluded.kind,
			depth = excluded.depth,
			updated_at = excluded.updated_at
		RETURNING id, created_at, updated_at
	`
	now := time.Now()
	err := q.QueryRowContext(ctx, query,
		chunk.DocumentID, chunk.Content, chunk.ContentHash[:], chunk.TokenCount,
		chunk.StartOffset, chunk.EndOffset, chunk.StartLine, chunk.EndLine,
		chunk.Kind, chunk.Depth,
		now, now,
	).Scan(&chunk.ID, &chunk.CreatedAt, &chunk.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to insert chunk: %w", err)
	}

	return nil
}

func (s *SQLiteStorage) InsertChunk(ctx context.Context, chunk *Chunk) error {
	return s.insertChunkWithQuerier(ctx, s.querier(), chunk)
}

func (s *SQLiteStorage) GetChunk(ctx context.Context, chunkID int64) (*Chunk, error) {
	return s.getChunkWithQuerier(ctx, s.querier(), chunkID)
}

// getChunkWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) getChunkWithQuerier(ctx context.Context, q querier, chunkID int64) (*Chunk, error) {
	query := `
		SELECT id, document_id, content, content_hash, token_count,
		       start_offset, end_offset, start_line, end_line, kind, depth,
		       created_at, updated_at
		FROM chunks
		WHERE id = ?
	`
	var chunk Chunk
	var hash []byte

	err := q.QueryRowContext(ctx, query, chunkID).Scan(
		&chunk.ID, &chunk.DocumentID, &chunk.Content, &hash, &chunk.TokenCount,
		&chunk.StartOffset, &chunk.EndOffset, &chunk.StartLine, &chunk.EndLine,
		&chunk.Kind, &chunk.Depth, &chunk.CreatedAt, &chunk.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	copy(chunk.ContentHash[:], hash)
	return &chunk, nil
}

func (s *SQLiteStorage) ListChunksByDocument(ctx context.Context, docID int64) ([]*Chunk, error) {
	return s.listChunksByDocumentWithQuerier(ctx, s.querier(), docID)
}

// listChunksByDocumentWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) listChunksByDocumentWithQuerier(ctx context.Context, q querier, docID int64) ([]*Chunk, error) {
	query := `
		SELECT id, document_id, content, content_hash, token_count,
		       start_offset, end_offset, start_line, end_line, kind, depth,
		       created_at, updated_at
		FROM chunks
		WHERE document_id = ?
		ORDER BY start_offset
	`
	rows, err := q.QueryContext(ctx, query, docID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	chunks := make([]*Chunk, 0)
	for rows.Next() {
		var chunk Chunk
		var hash []byte

		err := rows.Scan(
			&chunk.ID, &chunk.DocumentID, &chunk.Content, &hash, &chunk.TokenCount,
			&chunk.StartOffset, &chunk.EndOffset, &chunk.StartLine, &chunk.EndLine,
			&chunk.Kind, &chunk.Depth, &chunk.CreatedAt, &chunk.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}

		copy(chunk.ContentHash[:], hash)
		chunks = append(chunks, &chunk)
	}
	return chunks, rows.Err()
}

// deleteChunksByDocumentWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) deleteChunksByDocumentWithQuerier(ctx context.Context, q querier, docID int64) error {
	query := `DELETE FROM chunks WHERE document_id = ?`
	_, err := q.ExecContext(ctx, query, docID)
	return err
}

func (s *SQLiteStorage) DeleteChunksByDocument(ctx context.Context, docID int64) error {
	return s.deleteChunksByDocumentWithQuerier(ctx, s.querier(), docID)
}

// Embedding operations

// upsertEmbeddingWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) upsertEmbeddingWithQuerier(ctx context.Context, q querier, embedding *Embedding) error {
	query := `
		INSERT INTO embeddings (chunk_id, vector, dimension, provider, model, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(chunk_id) DO UPDATE SET
			vector = excluded.vector,
			dimension = excluded.dimension,
			provider = excluded.provider,
			model = excluded.model
	`
	now := time.Now()
	result, err := q.ExecContext(ctx, query,
		embedding.ChunkID, embedding.Vector, embedding.Dimension,
		embedding.Provider, embedding.Model, now)
	if err != nil {
		return fmt.Errorf("failed to upsert embedding: %w", err)
	}

	if embedding.ID == 0 {
		id, err := result.LastInsertId()
		if err == nil {
			embedding.ID = id
		}
	}

	embedding.CreatedAt = now
	return nil
}

func (s *SQLiteStorage) UpsertEmbedding(ctx context.Context, embedding *Embedding) error {
	return s.upsertEmbeddingWithQuerier(ctx, s.querier(), embedding)
}

func (s *SQLiteStorage) GetEmbedding(ctx context.Context, chunkID int64) (*Embedding, error) {
	query := `
		SELECT id, chunk_id, vector, dimension, provider, model, created_at
		FROM embeddings
		WHERE chunk_id = ?
	`
	var embedding Embedding
	err := s.db.QueryRowContext(ctx, query, chunkID).Scan(
		&embedding.ID, &embedding.ChunkID, &embedding.Vector,
		&embedding.Dimension, &embedding.Provider, &embedding.Model,
		&embedding.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &embedding, nil
}

// deleteEmbeddingWithQuerier is the internal implementation that uses a querier
func (s *SQLiteStorage) deleteEmbeddingWithQuerier(ctx context.Context, q querier, chunkID int64) error {
	query := `DELETE FROM embeddings WHERE chunk_id = ?`
	_, err := q.ExecContext(ctx, query, chunkID)
	return err
}

func (s *SQLiteStorage) DeleteEmbedding(ctx context.Context, chunkID int64) error {
	return s.deleteEmbeddingWithQuerier(ctx, s.querier(), chunkID)
}

// Search operations

func (s *SQLiteStorage) SearchVector(ctx context.Context, projectID int64, queryVector []float32, limit int, filters *SearchFilters) ([]VectorResult, error) {
	return searchVector(ctx, s.db, projectID, queryVector, limit, filters)
}

// Status operations

func (s *SQLiteStorage) GetStatus(ctx context.Context, projectID int64) (*ProjectStatus, error) {
	project, err := s.GetProjectByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	status := &ProjectStatus{
		Project:       project,
		LastIndexedAt: project.LastIndexedAt,
	}

	// Count documents
	var docCount int
	err = s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM documents WHERE project_id = ?", projectID).Scan(&docCount)
	if err != nil {
		return nil, err
	}
	status.DocumentsCount = docCount

	// Count chunks
	var chunkCount int
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM chunks c
		JOIN documents d ON c.document_id = d.id
		WHERE d.project_id = ?
	`, projectID).Scan(&chunkCount)
	if err != nil {
		return nil, err
	}
	status.ChunksCount = chunkCount

	// Count embeddings
	var embeddingCount int
	err = s.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM embeddings e
		JOIN chunks c ON e.chunk_id = c.id
		JOIN documents d ON c.document_id = d.id
		WHERE d.project_id = ?
	`, projectID).Scan(&embeddingCount)
	if err != nil {
		return nil, err
	}
	status.EmbeddingsCount = embeddingCount

	// Calculate database size
	var pageCount, pageSize int
	err = s.db.QueryRowContext(ctx, "PRAGMA page_count").Scan(&pageCount)
	if err == nil {
		_ = s.db.QueryRowContext(ctx, "PRAGMA page_size").Scan(&pageSize)
		status.IndexSizeMB = float64(pageCount*pageSize) / (1024 * 1024)
	}

	status.Health = HealthStatus{
		DatabaseAccessible:    true,
		EmbeddingsAvailable:   embeddingCount > 0,
		VectorSearchOptimized: VectorExtensionAvailable,
	}

	return status, nil
}

// Transaction implementations

// Write operations use the internal helper that takes a querier, read-only
// operations that never run inside a write path delegate to the main storage.

func (t *sqliteTx) CreateProject(ctx context.Context, project *Project) error {
	return t.storage.createProjectWithQuerier(ctx, t.querier(), project)
}

func (t *sqliteTx) GetProject(ctx context.Context, rootPath string) (*Project, error) {
	return t.storage.getProjectWithQuerier(ctx, t.querier(), rootPath)
}

func (t *sqliteTx) GetProjectByID(ctx context.Context, projectID int64) (*Project, error) {
	return t.storage.getProjectByIDWithQuerier(ctx, t.querier(), projectID)
}

func (t *sqliteTx) UpdateProject(ctx context.Context, project *Project) error {
	return t.storage.updateProjectWithQuerier(ctx, t.querier(), project)
}

func (t *sqliteTx) UpsertDocument(ctx context.Context, doc *Document) error {
	return t.storage.upsertDocumentWithQuerier(ctx, t.querier(), doc)
}

func (t *sqliteTx) GetDocument(ctx context.Context, projectID int64, path string) (*Document, error) {
	return t.storage.getDocumentWithQuerier(ctx, t.querier(), projectID, path)
}

func (t *sqliteTx) GetDocumentByID(ctx context.Context, docID int64) (*Document, error) {
	return t.storage.getDocumentByIDWithQuerier(ctx, t.querier(), docID)
}

func (t *sqliteTx) DeleteDocument(ctx context.Context, docID int64) error {
	return t.storage.deleteDocumentWithQuerier(ctx, t.querier(), docID)
}

func (t *sqliteTx) ListDocuments(ctx context.Context, projectID int64) ([]*Document, error) {
	return t.storage.listDocumentsWithQuerier(ctx, t.querier(), projectID)
}

func (t *sqliteTx) InsertChunk(ctx context.Context, chunk *Chunk) error {
	return t.storage.insertChunkWithQuerier(ctx, t.querier(), chunk)
}

func (t *sqliteTx) GetChunk(ctx context.Context, chunkID int64) (*Chunk, error) {
	return t.storage.getChunkWithQuerier(ctx, t.querier(), chunkID)
}

func (t *sqliteTx) ListChunksByDocument(ctx context.Context, docID int64) ([]*Chunk, error) {
	return t.storage.listChunksByDocumentWithQuerier(ctx, t.querier(), docID)
}

func (t *sqliteTx) DeleteChunksByDocument(ctx context.Context, docID int64) error {
	return t.storage.deleteChunksByDocumentWithQuerier(ctx, t.querier(), docID)
}

func (t *sqliteTx) UpsertEmbedding(ctx context.Context, embedding *Embedding) error {
	return t.storage.upsertEmbeddingWithQuerier(ctx, t.querier(), embedding)
}

func (t *sqliteTx) GetEmbedding(ctx context.Context, chunkID int64) (*Embedding, error) {
	return t.storage.GetEmbedding(ctx, chunkID)
}

func (t *sqliteTx) DeleteEmbedding(ctx context.Context, chunkID int64) error {
	return t.storage.deleteEmbeddingWithQuerier(ctx, t.querier(), chunkID)
}

func (t *sqliteTx) SearchVector(ctx context.Context, projectID int64, vector []float32, limit int, filters *SearchFilters) ([]VectorResult, error) {
	return t.storage.SearchVector(ctx, projectID, vector, limit, filters)
}

func (t *sqliteTx) GetStatus(ctx context.Context, projectID int64) (*ProjectStatus, error) {
	return t.storage.GetStatus(ctx, projectID)
}

func (t *sqliteTx) Close() error {
	return t.storage.Close()
}

func (t *sqliteTx) BeginTx(ctx context.Context) (Tx, error) {
	return t, nil
}
