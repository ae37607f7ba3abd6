package chunker

import (
	"fmt"
	"log"
	"sort"

	"github.com/codescope/codescope/internal/splitter"
	"github.com/codescope/codescope/internal/structural"
	"github.com/codescope/codescope/pkg/types"
)

// Document is the chunker's input: text plus the provenance and language
// hints supplied by the document source
type Document struct {
	Text     string
	SourceID string
	Language string
}

// Options configures chunking behavior
type Options struct {
	// MaxChunkSize is the chunk size budget in runes
	MaxChunkSize int

	// ChunkOverlap is the trailing overlap duplicated into the next chunk
	ChunkOverlap int

	// Structural enables node-boundary chunking for languages with a
	// registered parser. Hierarchical splitting remains the fallback.
	Structural bool

	// DisableFallback propagates parser failures instead of silently
	// falling back to hierarchical splitting
	DisableFallback bool
}

// DefaultOptions returns options suitable for indexing a mixed codebase
func DefaultOptions() Options {
	return Options{
		MaxChunkSize: splitter.DefaultMaxChunkSize,
		ChunkOverlap: splitter.DefaultChunkOverlap,
		Structural:   true,
	}
}

// Chunker turns documents into ordered chunk sequences. Structural mode uses
// parser-reported declaration boundaries; everything else goes through the
// hierarchical splitter. A Chunker holds no per-call state and is safe for
// concurrent use across documents.
type Chunker struct {
	opts     Options
	registry *structural.Registry
}

// New creates a Chunker, validating the size configuration up front
func New(opts Options, registry *structural.Registry) (*Chunker, error) {
	// The splitter owns the size-budget rules; validate through it
	cfg := splitter.Config{
		MaxChunkSize: opts.MaxChunkSize,
		ChunkOverlap: opts.ChunkOverlap,
		Separators:   splitter.TextSeparators,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	if registry == nil {
		registry = structural.NewRegistry()
	}

	return &Chunker{opts: opts, registry: registry}, nil
}

// Options returns the chunker's configuration
func (c *Chunker) Options() Options {
	return c.opts
}

// ChunkDocument produces the ordered chunk sequence for a document. An empty
// document yields an empty sequence. Chunk spans collectively cover the
// document text; offsets are rune offsets.
func (c *Chunker) ChunkDocument(doc Document) ([]types.Chunk, error) {
	split, err := splitter.New(splitter.Config{
		MaxChunkSize: c.opts.MaxChunkSize,
		ChunkOverlap: c.opts.ChunkOverlap,
		Separators:   splitter.ForLanguage(doc.Language),
	})
	if err != nil {
		return nil, err
	}

	if doc.Text == "" {
		return []types.Chunk{}, nil
	}

	var chunks []types.Chunk

	if c.opts.Structural && c.registry.Supports(doc.Language) {
		nodes, perr := c.registry.Parse(doc.Text, doc.Language)
		if perr != nil {
			if c.opts.DisableFallback {
				return nil, fmt.Errorf("structural parse of %s: %w", doc.SourceID, perr)
			}
			log.Printf("structural parse of %s failed, falling back to hierarchical splitting: %v", doc.SourceID, perr)
		} else if len(nodes) > 0 {
			chunks = c.chunkStructural(doc, nodes, split)
		}
	}

	if chunks == nil {
		chunks, err = split.Split(doc.Text, doc.SourceID)
		if err != nil {
			return nil, err
		}
	}

	annotateLines(doc.Text, chunks)
	return chunks, nil
}

// chunkStructural cuts at parser-reported node boundaries. Nodes within the
// budget become single chunks; oversized nodes are re-split hierarchically
// over their own span; gaps between nodes become filler chunks.
func (c *Chunker) chunkStructural(doc Document, nodes []types.Node, split *splitter.Splitter) []types.Chunk {
	runes := []rune(doc.Text)
	chunks := make([]types.Chunk, 0, len(nodes))
	cursor := 0

	for _, node := range nodes {
		if node.StartOffset > cursor {
			chunks = append(chunks, fillerChunks(split, runes, cursor, node.StartOffset, doc.SourceID)...)
		}

		if node.Len() <= c.opts.MaxChunkSize {
			chunks = append(chunks, nodeChunk(runes, node, doc.SourceID))
		} else {
			// The node body is the new input to the hierarchical algorithm;
			// sub-chunks keep the node's kind for provenance
			sub := split.SplitSpan(runes, node.StartOffset, node.EndOffset, doc.SourceID)
			for i := range sub {
				sub[i].Kind = nodeChunkKind(node.Kind)
			}
			chunks = append(chunks, sub...)
		}

		cursor = node.EndOffset
	}

	if cursor < len(runes) {
		chunks = append(chunks, fillerChunks(split, runes, cursor, len(runes), doc.SourceID)...)
	}

	return chunks
}

// nodeChunk builds a single chunk covering a whole structural node
func nodeChunk(runes []rune, node types.Node, sourceID string) types.Chunk {
	chunk := types.Chunk{
		Content:     string(runes[node.StartOffset:node.EndOffset]),
		SourceID:    sourceID,
		StartOffset: node.StartOffset,
		EndOffset:   node.EndOffset,
		Kind:        nodeChunkKind(node.Kind),
	}
	chunk.ComputeContentHash()
	chunk.ComputeTokenCount()
	return chunk
}

// fillerChunks splits inter-node gap text hierarchically
func fillerChunks(split *splitter.Splitter, runes []rune, start, end int, sourceID string) []types.Chunk {
	chunks := split.SplitSpan(runes, start, end, sourceID)
	for i := range chunks {
		chunks[i].Kind = types.ChunkFiller
	}
	return chunks
}

// nodeChunkKind maps structural node kinds to chunk kinds
func nodeChunkKind(kind types.NodeKind) types.ChunkKind {
	switch kind {
	case types.NodeFunction:
		return types.ChunkFunction
	case types.NodeMethod:
		return types.ChunkMethod
	case types.NodeType:
		return types.ChunkTypeDecl
	case types.NodeSection:
		return types.ChunkSection
	default:
		return types.ChunkDecl
	}
}

// annotateLines derives 1-based start/end line numbers from rune offsets
func annotateLines(text string, chunks []types.Chunk) {
	// Rune offsets of each line start
	lineStarts := []int{0}
	for i, r := range []rune(text) {
		if r == '\n' {
			lineStarts = append(lineStarts, i+1)
		}
	}

	lineOf := func(off int) int {
		// Last line start at or before off
		return sort.SearchInts(lineStarts, off+1)
	}

	for i := range chunks {
		chunks[i].StartLine = lineOf(chunks[i].StartOffset)
		end := chunks[i].EndOffset - 1
		if end < chunks[i].StartOffset {
			end = chunks[i].StartOffset
		}
		chunks[i].EndLine = lineOf(end)
	}
}
