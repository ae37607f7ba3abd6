package storage

import (
	"context"
	"time"

	"github.com/codescope/codescope/pkg/types"
)

// Storage defines the interface for persisting and querying indexed documents,
// chunks and their embeddings
type Storage interface {
	// Project operations
	CreateProject(ctx context.Context, project *Project) error
	GetProject(ctx context.Context, rootPath string) (*Project, error)
	GetProjectByID(ctx context.Context, projectID int64) (*Project, error)
	UpdateProject(ctx context.Context, project *Project) error

	// Document operations
	UpsertDocument(ctx context.Context, doc *Document) error
	GetDocument(ctx context.Context, projectID int64, path string) (*Document, error)
	GetDocumentByID(ctx context.Context, docID int64) (*Document, error)
	DeleteDocument(ctx context.Context, docID int64) error
	ListDocuments(ctx context.Context, projectID int64) ([]*Document, error)

	// Chunk operations
	InsertChunk(ctx context.Context, chunk *Chunk) error
	GetChunk(ctx context.Context, chunkID int64) (*Chunk, error)
	ListChunksByDocument(ctx context.Context, docID int64) ([]*Chunk, error)
	DeleteChunksByDocument(ctx context.Context, docID int64) error

	// Embedding operations
	UpsertEmbedding(ctx context.Context, embedding *Embedding) error
	GetEmbedding(ctx context.Context, chunkID int64) (*Embedding, error)
	DeleteEmbedding(ctx context.Context, chunkID int64) error

	// Search operations
	SearchVector(ctx context.Context, projectID int64, vector []float32, limit int, filters *SearchFilters) ([]VectorResult, error)

	// Status operations
	GetStatus(ctx context.Context, projectID int64) (*ProjectStatus, error)

	// Database operations
	Close() error
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx represents a database transaction
type Tx interface {
	Commit() error
	Rollback() error
	Storage // Embed Storage interface for transaction operations
}

// Project represents an indexed document tree
type Project struct {
	ID             int64
	RootPath       string
	Name           string
	IndexVersion   string
	TotalDocuments int
	TotalChunks    int
	LastIndexedAt  time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Document represents a tracked source document
type Document struct {
	ID            int64
	ProjectID     int64
	Path          string // Relative to project root
	Language      string
	ContentHash   [32]byte
	SizeBytes     int64
	RuneCount     int
	LastIndexedAt time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Chunk represents a stored document slice with its provenance
type Chunk struct {
	ID          int64
	DocumentID  int64
	Content     string
	ContentHash [32]byte
	TokenCount  int
	StartOffset int
	EndOffset   int
	StartLine   int
	EndLine     int
	Kind        string
	Depth       int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Embedding represents a vector embedding for a chunk
type Embedding struct {
	ID        int64
	ChunkID   int64
	Vector    []byte // Serialized float32 array
	Dimension int
	Provider  string
	Model     string
	CreatedAt time.Time
}

// SearchFilters contains filters for narrowing search results
type SearchFilters struct {
	Languages    []string // Filter by document language
	Kinds        []string // Filter by chunk kind
	PathPattern  string   // Glob pattern for document paths
	MinRelevance float64  // Minimum relevance score
}

// VectorResult represents a result from vector similarity search
type VectorResult struct {
	ChunkID         int64
	SimilarityScore float64
}

// ProjectStatus contains statistics about an indexed project
type ProjectStatus struct {
	Project         *Project
	DocumentsCount  int
	ChunksCount     int
	EmbeddingsCount int
	IndexSizeMB     float64
	LastIndexedAt   time.Time
	Health          HealthStatus
}

// HealthStatus represents the health of the index
type HealthStatus struct {
	DatabaseAccessible    bool
	EmbeddingsAvailable   bool
	VectorSearchOptimized bool
}

// ToTypesChunk converts a stored chunk back to types.Chunk
func (c *Chunk) ToTypesChunk(sourceID string) types.Chunk {
	return types.Chunk{
		Content:     c.Content,
		ContentHash: c.ContentHash,
		TokenCount:  c.TokenCount,
		SourceID:    sourceID,
		StartOffset: c.StartOffset,
		EndOffset:   c.EndOffset,
		StartLine:   c.StartLine,
		EndLine:     c.EndLine,
		Kind:        types.ChunkKind(c.Kind),
		Depth:       c.Depth,
	}
}

// FromTypesChunk converts types.Chunk to a storage Chunk
func FromTypesChunk(c types.Chunk, docID int64) *Chunk {
	return &Chunk{
		DocumentID:  docID,
		Content:     c.Content,
		ContentHash: c.ContentHash,
		TokenCount:  c.TokenCount,
		StartOffset: c.StartOffset,
		EndOffset:   c.EndOffset,
		StartLine:   c.StartLine,
		EndLine:     c.EndLine,
		Kind:        string(c.Kind),
		Depth:       c.Depth,
	}
}
