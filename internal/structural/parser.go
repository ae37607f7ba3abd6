package structural

import (
	"fmt"

	"github.com/codescope/codescope/pkg/types"
)

// Parser reports the top-level structural node boundaries of a document.
// Implementations must return nodes ordered by StartOffset, non-overlapping,
// with offsets measured in runes. Gaps between nodes are legal; the caller
// treats them as filler.
type Parser interface {
	// Language returns the language tag this parser handles
	Language() string

	// Parse extracts top-level node boundaries from text
	Parse(text string) ([]types.Node, error)
}

// Registry selects a Parser by language tag. Language support is a
// capability looked up at chunk time, not a hard-coded branch: new languages
// are added by registering another implementation.
type Registry struct {
	parsers map[string]Parser
}

// NewRegistry creates a registry with the built-in parsers registered
func NewRegistry() *Registry {
	r := &Registry{parsers: make(map[string]Parser)}
	r.Register(NewGoParser())
	r.Register(NewMarkdownParser())
	return r
}

// Register adds or replaces the parser for a language
func (r *Registry) Register(p Parser) {
	r.parsers[p.Language()] = p
}

// Supports reports whether a parser is registered for the language
func (r *Registry) Supports(language string) bool {
	_, ok := r.parsers[language]
	return ok
}

// Parse dispatches to the parser registered for language. Returns
// types.ErrUnsupportedLanguage when no parser is registered.
func (r *Registry) Parse(text, language string) ([]types.Node, error) {
	p, ok := r.parsers[language]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrUnsupportedLanguage, language)
	}

	nodes, err := p.Parse(text)
	if err != nil {
		return nil, err
	}

	if err := types.ValidateNodes(nodes); err != nil {
		return nil, fmt.Errorf("%w: %s parser returned invalid nodes: %v", types.ErrParse, language, err)
	}

	return nodes, nil
}
