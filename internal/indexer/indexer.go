package indexer

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/codescope/codescope/internal/chunker"
	"github.com/codescope/codescope/internal/embedder"
	"github.com/codescope/codescope/internal/storage"
	"github.com/codescope/codescope/internal/structural"
)

// ErrIndexInProgress is returned when an index run is already active
var ErrIndexInProgress = errors.New("index already in progress")

// embedBatchSize is the number of chunk texts sent to the embedder per call
const embedBatchSize = 64

// languageForExt maps file extensions to language tags
var languageForExt = map[string]string{
	".go":       "go",
	".md":       "markdown",
	".markdown": "markdown",
	".py":       "python",
	".txt":      "text",
}

// Indexer coordinates the indexing pipeline: chunk -> embed -> store
type Indexer struct {
	chunker  *chunker.Chunker
	embedder embedder.Embedder
	storage  storage.Storage

	// Worker pool configuration
	workers int

	lock IndexLock
}

// Config contains configuration for the indexer
type Config struct {
	Workers      int  // Number of concurrent workers (default: runtime.NumCPU())
	BatchSize    int  // Number of documents to commit per transaction (default: 20)
	IncludeTests bool // Whether to index _test.go files (default: true)

	// ChunkOptions overrides the indexer's default chunker for this run
	ChunkOptions *chunker.Options
}

// Statistics contains statistics about an indexing run
type Statistics struct {
	RunID             string
	DocumentsIndexed  int
	DocumentsFailed   int
	ChunksCreated     int
	EmbeddingsCreated int
	Duration          time.Duration
	ErrorMessages     []string
}

// New creates a new Indexer instance
func New(store storage.Storage, emb embedder.Embedder, chk *chunker.Chunker) *Indexer {
	return &Indexer{
		chunker:  chk,
		embedder: emb,
		storage:  store,
		workers:  runtime.NumCPU(),
	}
}

// IndexPath indexes every supported document under rootPath
func (idx *Indexer) IndexPath(ctx context.Context, rootPath string, config *Config) (*Statistics, error) {
	if !idx.lock.TryAcquire() {
		return nil, ErrIndexInProgress
	}
	defer idx.lock.Release()

	if config == nil {
		config = &Config{
			Workers:      runtime.NumCPU(),
			BatchSize:    20,
			IncludeTests: true,
		}
	}

	if config.Workers <= 0 {
		config.Workers = runtime.NumCPU()
	}
	idx.workers = config.Workers

	// The lock guarantees a single active run, so swapping the chunker
	// for this run is safe
	if config.ChunkOptions != nil {
		chk, err := chunker.New(*config.ChunkOptions, structural.NewRegistry())
		if err != nil {
			return nil, fmt.Errorf("invalid chunk options: %w", err)
		}
		defaultChunker := idx.chunker
		idx.chunker = chk
		defer func() { idx.chunker = defaultChunker }()
	}

	startTime := time.Now()
	stats := &Statistics{
		RunID:         uuid.NewString(),
		ErrorMessages: make([]string, 0),
	}

	absRoot, err := filepath.Abs(rootPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve root path: %w", err)
	}

	project, err := idx.getOrCreateProject(ctx, absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to get or create project: %w", err)
	}

	paths, err := idx.discoverDocuments(absRoot, config)
	if err != nil {
		return nil, fmt.Errorf("failed to discover documents: %w", err)
	}

	if err := idx.indexDocuments(ctx, project, paths, config, stats); err != nil {
		return nil, fmt.Errorf("failed to index documents: %w", err)
	}

	if err := idx.updateProjectStats(ctx, project); err != nil {
		return nil, fmt.Errorf("failed to update project stats: %w", err)
	}

	stats.Duration = time.Since(startTime)
	return stats, nil
}

// getOrCreateProject retrieves an existing project or creates a new one
func (idx *Indexer) getOrCreateProject(ctx context.Context, rootPath string) (*storage.Project, error) {
	project, err := idx.storage.GetProject(ctx, rootPath)
	if err == nil {
		return project, nil
	}

	if err != storage.ErrNotFound {
		return nil, err
	}

	project = &storage.Project{
		RootPath:     rootPath,
		Name:         filepath.Base(rootPath),
		IndexVersion: storage.CurrentSchemaVersion,
	}

	if err := idx.storage.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// discoverDocuments finds all supported documents under the root
func (idx *Indexer) discoverDocuments(rootPath string, config *Config) ([]string, error) {
	var paths []string

	err := filepath.Walk(rootPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			if info.Name() == "vendor" || info.Name() == "node_modules" {
				return filepath.SkipDir
			}
			// Skip hidden directories
			if strings.HasPrefix(info.Name(), ".") && path != rootPath {
				return filepath.SkipDir
			}
			return nil
		}

		if _, ok := languageForExt[filepath.Ext(path)]; !ok {
			return nil
		}

		if !config.IncludeTests && strings.HasSuffix(path, "_test.go") {
			return nil
		}

		paths = append(paths, path)
		return nil
	})

	return paths, err
}

// indexDocuments indexes documents concurrently in transaction batches
func (idx *Indexer) indexDocuments(ctx context.Context, project *storage.Project, paths []string, config *Config, stats *Statistics) error {
	semaphore := make(chan struct{}, idx.workers)

	// Track progress with atomic counters
	var (
		indexed    int32
		failed     int32
		chunks     int32
		embeddings int32
	)

	batchSize := config.BatchSize
	if batchSize <= 0 {
		batchSize = 20
	}

	g, gctx := errgroup.WithContext(ctx)
	var mu sync.Mutex // Protect stats.ErrorMessages

	for i := 0; i < len(paths); i += batchSize {
		end := i + batchSize
		if end > len(paths) {
			end = len(paths)
		}
		batch := paths[i:end]

		g.Go(func() error {
			return idx.indexBatch(gctx, project, batch, semaphore, &indexed, &failed, &chunks, &embeddings, &mu, stats)
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	stats.DocumentsIndexed = int(indexed)
	stats.DocumentsFailed = int(failed)
	stats.ChunksCreated = int(chunks)
	stats.EmbeddingsCreated = int(embeddings)

	return nil
}

// indexBatch indexes a batch of documents within a transaction
func (idx *Indexer) indexBatch(ctx context.Context, project *storage.Project, paths []string,
	semaphore chan struct{}, indexed, failed, chunks, embeddings *int32,
	mu *sync.Mutex, stats *Statistics) error {

	tx, err := idx.storage.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case semaphore <- struct{}{}:
			// Acquire semaphore
		}

		err := idx.indexDocument(ctx, tx, project, path, indexed, chunks, embeddings)
		<-semaphore // Release semaphore

		if err != nil {
			atomic.AddInt32(failed, 1)
			mu.Lock()
			stats.ErrorMessages = append(stats.ErrorMessages, fmt.Sprintf("%s: %v", path, err))
			mu.Unlock()
			// Continue with other documents
			continue
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// indexDocument chunks, embeds and stores a single document
func (idx *Indexer) indexDocument(ctx context.Context, store storage.Storage, project *storage.Project,
	path string, indexed, chunks, embeddings *int32) error {

	relPath, err := filepath.Rel(project.RootPath, path)
	if err != nil {
		return err
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	text := string(content)
	language := languageForExt[filepath.Ext(path)]

	doc := &storage.Document{
		ProjectID:   project.ID,
		Path:        relPath,
		Language:    language,
		ContentHash: sha256.Sum256(content),
		SizeBytes:   int64(len(content)),
		RuneCount:   utf8.RuneCountInString(text),
	}
	if err := store.UpsertDocument(ctx, doc); err != nil {
		return err
	}

	// Every run rebuilds the document's chunks from scratch
	if err := store.DeleteChunksByDocument(ctx, doc.ID); err != nil {
		return fmt.Errorf("failed to delete old chunks: %w", err)
	}

	docChunks, err := idx.chunker.ChunkDocument(chunker.Document{
		Text:     text,
		SourceID: relPath,
		Language: language,
	})
	if err != nil {
		return fmt.Errorf("failed to chunk document: %w", err)
	}

	stored := make([]*storage.Chunk, 0, len(docChunks))
	for i := range docChunks {
		chunk := storage.FromTypesChunk(docChunks[i], doc.ID)
		if err := store.InsertChunk(ctx, chunk); err != nil {
			return fmt.Errorf("failed to store chunk: %w", err)
		}
		stored = append(stored, chunk)
	}
	atomic.AddInt32(chunks, int32(len(stored)))

	embedded, err := idx.embedChunks(ctx, store, stored)
	if err != nil {
		return err
	}
	atomic.AddInt32(embeddings, int32(embedded))

	atomic.AddInt32(indexed, 1)
	return nil
}

// embedChunks generates and stores embeddings for the given chunks
func (idx *Indexer) embedChunks(ctx context.Context, store storage.Storage, chunks []*storage.Chunk) (int, error) {
	if idx.embedder == nil {
		return 0, nil
	}

	count := 0
	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}
		batch := chunks[start:end]

		texts := make([]string, len(batch))
		for i, chunk := range batch {
			texts[i] = chunk.Content
		}

		resp, err := idx.embedder.GenerateBatch(ctx, embedder.BatchEmbeddingRequest{Texts: texts})
		if err != nil {
			return count, fmt.Errorf("failed to generate embeddings: %w", err)
		}
		if len(resp.Embeddings) != len(batch) {
			return count, fmt.Errorf("embedding count mismatch: got %d, want %d", len(resp.Embeddings), len(batch))
		}

		for i, emb := range resp.Embeddings {
			record := &storage.Embedding{
				ChunkID:   batch[i].ID,
				Vector:    storage.SerializeVector(emb.Vector),
				Dimension: emb.Dimension,
				Provider:  emb.Provider,
				Model:     emb.Model,
			}
			if err := store.UpsertEmbedding(ctx, record); err != nil {
				return count, fmt.Errorf("failed to store embedding: %w", err)
			}
			count++
		}
	}

	return count, nil
}

// updateProjectStats updates the project's document and chunk counts
func (idx *Indexer) updateProjectStats(ctx context.Context, project *storage.Project) error {
	docs, err := idx.storage.ListDocuments(ctx, project.ID)
	if err != nil {
		return err
	}

	totalChunks := 0
	for _, doc := range docs {
		chunks, err := idx.storage.ListChunksByDocument(ctx, doc.ID)
		if err != nil {
			return err
		}
		totalChunks += len(chunks)
	}

	project.TotalDocuments = len(docs)
	project.TotalChunks = totalChunks
	project.LastIndexedAt = time.Now()

	return idx.storage.UpdateProject(ctx, project)
}
