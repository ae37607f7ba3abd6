package types

import (
	"crypto/sha256"
	"errors"
)

// ChunkKind describes what kind of region a chunk was cut from
type ChunkKind string

const (
	ChunkText     ChunkKind = "text"     // produced by the hierarchical splitter
	ChunkFunction ChunkKind = "function" // structural mode: function declaration
	ChunkMethod   ChunkKind = "method"   // structural mode: method declaration
	ChunkTypeDecl ChunkKind = "type"     // structural mode: type declaration
	ChunkDecl     ChunkKind = "decl"     // structural mode: const/var/import group
	ChunkSection  ChunkKind = "section"  // structural mode: markdown section
	ChunkFiller   ChunkKind = "filler"   // structural mode: gap between nodes
)

// Chunk is the unit of retrieval: a bounded, offset-tracked span of a source
// document. Chunks are immutable value objects; the splitter emits a fresh
// sequence per call and retains no state between calls.
//
// Offsets are rune offsets into the source document. StartOffset < EndOffset,
// and concatenating all chunks of a document in order (after removing
// overlap-duplicated prefixes) reconstructs the document exactly.
type Chunk struct {
	// Content
	Content     string
	ContentHash [32]byte // SHA-256 of Content, for deduplication
	TokenCount  int

	// Provenance
	SourceID    string // opaque document identifier, usually a file path
	StartOffset int    // rune offset, inclusive
	EndOffset   int    // rune offset, exclusive
	StartLine   int    // 1-based, derived for display
	EndLine     int

	// Diagnostics
	Kind  ChunkKind
	Depth int // recursion depth of the separator that finalized this chunk
}

// Len returns the chunk length in runes, the same unit as offsets
func (c *Chunk) Len() int {
	return c.EndOffset - c.StartOffset
}

// ComputeTokenCount estimates the number of tokens in the chunk
// Uses a simple heuristic: characters / 4
func (c *Chunk) ComputeTokenCount() int {
	c.TokenCount = len(c.Content) / 4
	return c.TokenCount
}

// ComputeContentHash computes the SHA-256 hash of the chunk content
func (c *Chunk) ComputeContentHash() {
	c.ContentHash = sha256.Sum256([]byte(c.Content))
}

// Validate checks the chunk's structural invariants
func (c *Chunk) Validate() error {
	if c.Content == "" {
		return errors.New("chunk content cannot be empty")
	}

	if c.StartOffset < 0 {
		return errors.New("start offset must be non-negative")
	}

	if c.StartOffset >= c.EndOffset {
		return errors.New("start offset must be before end offset")
	}

	if c.SourceID == "" {
		return errors.New("source ID is required")
	}

	var zeroHash [32]byte
	if c.ContentHash == zeroHash {
		return errors.New("content hash must be computed")
	}

	return nil
}
