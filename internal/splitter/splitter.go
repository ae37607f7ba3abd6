package splitter

import (
	"fmt"

	"github.com/codescope/codescope/pkg/types"
)

const (
	// DefaultMaxChunkSize is the default chunk size budget in runes
	DefaultMaxChunkSize = 1200

	// DefaultChunkOverlap is the default overlap between consecutive chunks
	DefaultChunkOverlap = 0
)

// Config holds the splitter configuration. Lengths and offsets are measured
// in runes throughout; a chunk's rune count never exceeds MaxChunkSize except
// for a single atomic piece that no remaining separator can divide.
type Config struct {
	// MaxChunkSize is the maximum permitted chunk length in runes.
	// The bound is inclusive: a chunk of exactly MaxChunkSize runes is valid.
	MaxChunkSize int

	// ChunkOverlap is the number of trailing runes of each chunk duplicated
	// at the start of the next chunk. Must be less than MaxChunkSize.
	ChunkOverlap int

	// Separators is the ordered separator list, coarsest first. The empty
	// string, if present, must be last: it splits between any two runes and
	// guarantees termination.
	Separators []string
}

// DefaultConfig returns a configuration suitable for plain text
func DefaultConfig() Config {
	return Config{
		MaxChunkSize: DefaultMaxChunkSize,
		ChunkOverlap: DefaultChunkOverlap,
		Separators:   TextSeparators,
	}
}

// Validate checks the configuration before any splitting occurs
func (c Config) Validate() error {
	if c.MaxChunkSize <= 0 {
		return fmt.Errorf("%w: max chunk size must be positive, got %d", types.ErrInvalidConfig, c.MaxChunkSize)
	}

	if c.ChunkOverlap < 0 {
		return fmt.Errorf("%w: chunk overlap must be non-negative, got %d", types.ErrInvalidConfig, c.ChunkOverlap)
	}

	if c.ChunkOverlap >= c.MaxChunkSize {
		return fmt.Errorf("%w: chunk overlap %d must be less than max chunk size %d",
			types.ErrInvalidConfig, c.ChunkOverlap, c.MaxChunkSize)
	}

	for i, sep := range c.Separators {
		if sep == "" && i != len(c.Separators)-1 {
			return fmt.Errorf("%w: empty-string separator must be last", types.ErrInvalidConfig)
		}
	}

	return nil
}

// Splitter divides documents into bounded-size chunks by recursively trying
// progressively finer separators. It is a pure function of its inputs: no
// state is shared across calls and concurrent use is safe.
type Splitter struct {
	cfg  Config
	seps [][]rune
}

// New creates a Splitter, validating the configuration up front
func New(cfg Config) (*Splitter, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	seps := make([][]rune, len(cfg.Separators))
	for i, s := range cfg.Separators {
		seps[i] = []rune(s)
	}

	return &Splitter{cfg: cfg, seps: seps}, nil
}

// Config returns the splitter's configuration
func (s *Splitter) Config() Config {
	return s.cfg
}

// span is a half-open rune interval of the document being split
type span struct {
	start, end int
	depth      int
}

// Split divides document into chunks that satisfy the size budget. Every
// chunk is a literal rune-span slice of the document; concatenating the
// chunks in order (minus overlap-duplicated prefixes) reconstructs the
// document exactly. An empty document yields an empty sequence.
func (s *Splitter) Split(document, sourceID string) ([]types.Chunk, error) {
	doc := []rune(document)
	chunks := make([]types.Chunk, 0)
	if len(doc) == 0 {
		return chunks, nil
	}

	for _, sp := range s.splitSpan(doc, span{start: 0, end: len(doc)}, 0) {
		chunks = append(chunks, s.newChunk(doc, sp, sourceID))
	}

	return chunks, nil
}

// SplitSpan splits the [start, end) rune sub-span of document, emitting
// chunks whose offsets are relative to the whole document. Structural-mode
// callers use this to re-split oversized node bodies in place.
func (s *Splitter) SplitSpan(document []rune, start, end int, sourceID string) []types.Chunk {
	if start >= end {
		return nil
	}

	spans := s.splitSpan(document, span{start: start, end: end}, 0)
	chunks := make([]types.Chunk, 0, len(spans))
	for _, sp := range spans {
		chunks = append(chunks, s.newChunk(document, sp, sourceID))
	}
	return chunks
}

func (s *Splitter) newChunk(doc []rune, sp span, sourceID string) types.Chunk {
	c := types.Chunk{
		Content:     string(doc[sp.start:sp.end]),
		SourceID:    sourceID,
		StartOffset: sp.start,
		EndOffset:   sp.end,
		Kind:        types.ChunkText,
		Depth:       sp.depth,
	}
	c.ComputeContentHash()
	c.ComputeTokenCount()
	return c
}

// splitSpan is the recursive-descent merge-and-split core. sepIdx is the
// index of the separator to apply; it doubles as the recursion depth.
// Separator-list exhaustion is the base case that guarantees termination.
func (s *Splitter) splitSpan(doc []rune, sp span, sepIdx int) []span {
	sp.depth = sepIdx

	// Base case: the whole span fits the budget
	if sp.end-sp.start <= s.cfg.MaxChunkSize {
		return []span{sp}
	}

	// Separator list exhausted: emit the oversized atomic piece unchanged
	// rather than corrupting it with a mid-token split
	if sepIdx >= len(s.seps) {
		return []span{sp}
	}

	pieces := cut(doc, sp.start, sp.end, s.seps[sepIdx])
	merged := s.merge(pieces, sepIdx)

	out := make([]span, 0, len(merged))
	for _, m := range merged {
		if m.end-m.start > s.cfg.MaxChunkSize {
			// A single piece was too large even alone: recurse with the
			// next, finer separator applied only to this span
			out = append(out, s.splitSpan(doc, m, sepIdx+1)...)
			continue
		}
		out = append(out, m)
	}

	return out
}

// merge greedily packs consecutive pieces into buffers at or under the size
// budget. Pieces are contiguous, so a buffer is itself a contiguous span.
// The first piece of a buffer is always accepted, even when it alone exceeds
// the budget; the caller recurses into such spans.
func (s *Splitter) merge(pieces []span, depth int) []span {
	bufStart := pieces[0].start

	var out []span
	for _, p := range pieces[1:] {
		if p.end-bufStart <= s.cfg.MaxChunkSize {
			continue
		}

		// Flush the buffer, which ends where the rejected piece begins
		flushed := span{start: bufStart, end: p.start, depth: depth}
		out = append(out, flushed)

		// Seed the next buffer with the trailing overlap of the flushed
		// chunk. The overlap is a literal span prefix, so every chunk stays
		// an exact slice of the document.
		overlap := s.cfg.ChunkOverlap
		if flushed.end-flushed.start < overlap {
			overlap = flushed.end - flushed.start
		}
		bufStart = p.start - overlap
	}

	last := pieces[len(pieces)-1]
	return append(out, span{start: bufStart, end: last.end, depth: depth})
}

// cut divides [start, end) into contiguous pieces at every occurrence of
// sep, with each separator attached to the piece that follows it. An empty
// separator cuts between every pair of runes.
func cut(doc []rune, start, end int, sep []rune) []span {
	if len(sep) == 0 {
		pieces := make([]span, 0, end-start)
		for i := start; i < end; i++ {
			pieces = append(pieces, span{start: i, end: i + 1})
		}
		return pieces
	}

	var pieces []span
	pieceStart := start

	for i := start; i+len(sep) <= end; {
		if !matchAt(doc, i, sep) {
			i++
			continue
		}
		if i > pieceStart {
			pieces = append(pieces, span{start: pieceStart, end: i})
		}
		pieceStart = i
		i += len(sep)
	}

	return append(pieces, span{start: pieceStart, end: end})
}

func matchAt(doc []rune, at int, sep []rune) bool {
	for i, r := range sep {
		if doc[at+i] != r {
			return false
		}
	}
	return true
}
