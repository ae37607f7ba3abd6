// Package splitter divides documents into bounded-size, offset-tracked
// chunks by recursively applying an ordered list of separators.
//
// The algorithm tries the coarsest separator first, greedily merges the
// resulting pieces back together under the size budget, and recurses with
// the next finer separator into any piece that is still too large. The
// empty-string separator, placed last, splits between any two runes, so the
// recursion always terminates within the budget. If the separator list is
// exhausted without an empty-string fallback, the oversized atomic piece is
// emitted unchanged rather than being cut mid-token.
//
// # Basic Usage
//
//	s, err := splitter.New(splitter.Config{
//	    MaxChunkSize: 1200,
//	    ChunkOverlap: 100,
//	    Separators:   splitter.ForLanguage("markdown"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	chunks, err := s.Split(document, "docs/readme.md")
//	for _, chunk := range chunks {
//	    fmt.Printf("[%d:%d] depth=%d %d runes\n",
//	        chunk.StartOffset, chunk.EndOffset, chunk.Depth, chunk.Len())
//	}
//
// # Guarantees
//
// Every chunk is a literal rune-span slice of the input document, so
// concatenating the chunks in order (after removing overlap-duplicated
// prefixes) reconstructs the document exactly. Offsets and lengths are both
// measured in runes. Splitting is deterministic and the Splitter holds no
// mutable state, so a single instance may be used from many goroutines.
//
// # Overlap
//
// With ChunkOverlap = k, each chunk after the first begins with the trailing
// k runes of its predecessor (fewer when the predecessor is shorter than k).
// The overlap is realized by widening the next chunk's span backward, never
// by copying text, so provenance offsets stay exact.
package splitter
