// Package types provides shared type definitions for the codescope MCP server.
//
// This package defines domain types used across multiple components of
// codescope, including chunks, structural nodes, and search results.
//
// # Core Types
//
// Chunk represents a bounded, offset-tracked span of a source document,
// emitted by the splitter and consumed by the embedding and storage layers:
//
//	chunk := &types.Chunk{
//	    Content:     body,
//	    SourceID:    "internal/server/server.go",
//	    StartOffset: 0,
//	    EndOffset:   412,
//	    Kind:        types.ChunkFunction,
//	}
//
// Node represents a top-level declaration boundary reported by a structural
// parser, used in structural chunking mode:
//
//	node := types.Node{
//	    Kind:        types.NodeFunction,
//	    Name:        "ParseFile",
//	    StartOffset: 120,
//	    EndOffset:   480,
//	}
//
// All offsets are rune offsets. Lengths and offsets always use the same unit;
// mixing bytes and runes breaks the coverage invariants the splitter
// guarantees.
//
// # Validation
//
// Domain types implement validation methods to ensure data integrity:
//
//	if err := chunk.Validate(); err != nil {
//	    log.Fatal(err)
//	}
//
// # Search Results
//
// SearchResult combines chunk payload with relevance scoring. Relevance
// scores are normalized to [0, 1], with higher values indicating better
// matches.
package types
