package types

// SearchResult represents a single search result with relevance information
type SearchResult struct {
	// Identification
	ChunkID int64
	Rank    int // Position in result set (1-based)

	// Scoring
	RelevanceScore float64 // Cosine similarity, normalized to [0, 1]

	// Payload
	SourceID    string // document path relative to project root
	Language    string
	StartOffset int
	EndOffset   int
	StartLine   int
	EndLine     int
	Kind        ChunkKind
	Content     string
}

// Validate checks if the search result is valid
func (sr *SearchResult) Validate() error {
	if sr.ChunkID == 0 {
		return ErrInvalidChunkID
	}

	if sr.Rank < 1 {
		return ErrInvalidRank
	}

	if sr.RelevanceScore < 0 || sr.RelevanceScore > 1 {
		return ErrInvalidRelevanceScore
	}

	if sr.Content == "" {
		return ErrEmptyContent
	}

	return nil
}
