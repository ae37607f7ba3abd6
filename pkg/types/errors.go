package types

import "errors"

// Domain errors shared across the pipeline
var (
	// Splitter configuration errors
	ErrInvalidConfig = errors.New("invalid splitter configuration")

	// Structural parser errors
	ErrUnsupportedLanguage = errors.New("unsupported language")
	ErrParse               = errors.New("parse failed")

	// Search result errors
	ErrInvalidChunkID        = errors.New("invalid chunk ID")
	ErrInvalidRank           = errors.New("rank must be >= 1")
	ErrInvalidRelevanceScore = errors.New("relevance score must be between 0 and 1")
	ErrEmptyContent          = errors.New("content cannot be empty")
)
